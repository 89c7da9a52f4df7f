package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/connectsphere/backend/internal/models"
	"github.com/connectsphere/backend/internal/services"
)

// FeedHandler handles the kind-parameterized content feed
type FeedHandler struct {
	feedService services.FeedService
}

// NewFeedHandler creates a new FeedHandler
func NewFeedHandler(feedService services.FeedService) *FeedHandler {
	return &FeedHandler{feedService: feedService}
}

// RegisterFeedRoutes registers feed routes
func (h *FeedHandler) RegisterFeedRoutes(g *echo.Group) {
	g.GET("/feed", h.GetFeed)
}

// GetFeed retrieves a page of one content kind visible to the viewer
func (h *FeedHandler) GetFeed(c echo.Context) error {
	userID, err := userIDFromContext(c)
	if err != nil {
		return err
	}

	kind := models.ContentKind(c.QueryParam("kind"))
	if kind == "" {
		kind = models.KindPost
	}

	page, err := h.feedService.List(c.Request().Context(), kind, userID, listOptions(c))
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, page)
}
