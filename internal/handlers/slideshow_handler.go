package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/connectsphere/backend/internal/models"
	"github.com/connectsphere/backend/internal/services"
)

// SlideshowHandler handles HTTP requests related to slideshows
type SlideshowHandler struct {
	slideshowService services.SlideshowService
}

// NewSlideshowHandler creates a new SlideshowHandler
func NewSlideshowHandler(slideshowService services.SlideshowService) *SlideshowHandler {
	return &SlideshowHandler{slideshowService: slideshowService}
}

// RegisterSlideshowRoutes registers slideshow-related routes
func (h *SlideshowHandler) RegisterSlideshowRoutes(g *echo.Group) {
	g.POST("/slideshows", h.CreateSlideshow)
	g.GET("/slideshows", h.GetSlideshows)
	g.DELETE("/slideshows/:id", h.DeleteSlideshow)
}

// CreateSlideshow creates a new slideshow
func (h *SlideshowHandler) CreateSlideshow(c echo.Context) error {
	userID, err := userIDFromContext(c)
	if err != nil {
		return err
	}

	var req models.CreateSlideshowRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}

	slideshow, err := h.slideshowService.Create(c.Request().Context(), userID, req)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusCreated, slideshow)
}

// GetSlideshows retrieves a page of slideshows visible to the viewer
func (h *SlideshowHandler) GetSlideshows(c echo.Context) error {
	userID, err := userIDFromContext(c)
	if err != nil {
		return err
	}

	slideshows, nextCursor, err := h.slideshowService.List(c.Request().Context(), userID, listOptions(c))
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, echo.Map{"slideshows": slideshows, "nextCursor": nextCursor})
}

// DeleteSlideshow deletes a slideshow
func (h *SlideshowHandler) DeleteSlideshow(c echo.Context) error {
	userID, err := userIDFromContext(c)
	if err != nil {
		return err
	}
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}

	if err := h.slideshowService.Delete(c.Request().Context(), id, userID); err != nil {
		return httpError(err)
	}
	return c.NoContent(http.StatusNoContent)
}
