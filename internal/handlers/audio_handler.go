package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/connectsphere/backend/internal/models"
	"github.com/connectsphere/backend/internal/services"
)

// AudioHandler handles HTTP requests related to audio notes
type AudioHandler struct {
	audioService services.AudioService
}

// NewAudioHandler creates a new AudioHandler
func NewAudioHandler(audioService services.AudioService) *AudioHandler {
	return &AudioHandler{audioService: audioService}
}

// RegisterAudioRoutes registers audio-note routes
func (h *AudioHandler) RegisterAudioRoutes(g *echo.Group) {
	g.POST("/audios", h.CreateAudioNote)
	g.GET("/audios", h.GetAudioNotes)
	g.DELETE("/audios/:id", h.DeleteAudioNote)
}

// CreateAudioNote creates a new audio note
func (h *AudioHandler) CreateAudioNote(c echo.Context) error {
	userID, err := userIDFromContext(c)
	if err != nil {
		return err
	}

	var req models.CreateAudioNoteRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}

	audio, err := h.audioService.Create(c.Request().Context(), userID, req)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusCreated, audio)
}

// GetAudioNotes retrieves a page of audio notes visible to the viewer
func (h *AudioHandler) GetAudioNotes(c echo.Context) error {
	userID, err := userIDFromContext(c)
	if err != nil {
		return err
	}

	audios, nextCursor, err := h.audioService.List(c.Request().Context(), userID, listOptions(c))
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, echo.Map{"audios": audios, "nextCursor": nextCursor})
}

// DeleteAudioNote deletes an audio note
func (h *AudioHandler) DeleteAudioNote(c echo.Context) error {
	userID, err := userIDFromContext(c)
	if err != nil {
		return err
	}
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}

	if err := h.audioService.Delete(c.Request().Context(), id, userID); err != nil {
		return httpError(err)
	}
	return c.NoContent(http.StatusNoContent)
}
