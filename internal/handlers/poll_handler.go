package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/connectsphere/backend/internal/models"
	"github.com/connectsphere/backend/internal/services"
)

// PollHandler handles HTTP requests related to polls
type PollHandler struct {
	pollService services.PollService
}

// NewPollHandler creates a new PollHandler
func NewPollHandler(pollService services.PollService) *PollHandler {
	return &PollHandler{pollService: pollService}
}

// RegisterPollRoutes registers poll-related routes
func (h *PollHandler) RegisterPollRoutes(g *echo.Group) {
	g.POST("/polls", h.CreatePoll)
	g.GET("/polls", h.GetPolls)
	g.GET("/polls/:id", h.GetPoll)
	g.DELETE("/polls/:id", h.DeletePoll)
}

// CreatePoll creates a new poll
func (h *PollHandler) CreatePoll(c echo.Context) error {
	userID, err := userIDFromContext(c)
	if err != nil {
		return err
	}

	var req models.CreatePollRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}

	poll, err := h.pollService.Create(c.Request().Context(), userID, req)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusCreated, poll)
}

// GetPoll retrieves a poll by ID
func (h *PollHandler) GetPoll(c echo.Context) error {
	userID, err := userIDFromContext(c)
	if err != nil {
		return err
	}
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}

	poll, err := h.pollService.Get(c.Request().Context(), id, userID)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, poll)
}

// GetPolls retrieves a page of polls visible to the viewer
func (h *PollHandler) GetPolls(c echo.Context) error {
	userID, err := userIDFromContext(c)
	if err != nil {
		return err
	}

	polls, nextCursor, err := h.pollService.List(c.Request().Context(), userID, listOptions(c))
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, echo.Map{"polls": polls, "nextCursor": nextCursor})
}

// DeletePoll deletes a poll and its votes
func (h *PollHandler) DeletePoll(c echo.Context) error {
	userID, err := userIDFromContext(c)
	if err != nil {
		return err
	}
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}

	if err := h.pollService.Delete(c.Request().Context(), id, userID); err != nil {
		return httpError(err)
	}
	return c.NoContent(http.StatusNoContent)
}
