package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/connectsphere/backend/internal/models"
	"github.com/connectsphere/backend/internal/services"
)

// StoryHandler handles HTTP requests related to ephemeral stories
type StoryHandler struct {
	storyService services.StoryService
}

// NewStoryHandler creates a new StoryHandler
func NewStoryHandler(storyService services.StoryService) *StoryHandler {
	return &StoryHandler{storyService: storyService}
}

// RegisterStoryRoutes registers story-related routes
func (h *StoryHandler) RegisterStoryRoutes(g *echo.Group) {
	g.POST("/stories", h.CreateStory)
	g.GET("/stories", h.GetStories)
}

// CreateStory posts a new story that expires after 24 hours
func (h *StoryHandler) CreateStory(c echo.Context) error {
	userID, err := userIDFromContext(c)
	if err != nil {
		return err
	}

	var req models.CreateStoryRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}

	story, err := h.storyService.Create(c.Request().Context(), userID, req)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusCreated, story)
}

// GetStories retrieves the unexpired stories visible to the viewer
func (h *StoryHandler) GetStories(c echo.Context) error {
	userID, err := userIDFromContext(c)
	if err != nil {
		return err
	}

	stories, err := h.storyService.ListActive(c.Request().Context(), userID)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, stories)
}
