package handlers

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/connectsphere/backend/internal/services"
)

// TagHandler handles HTTP requests related to tags
type TagHandler struct {
	tagService services.TagService
}

// NewTagHandler creates a new TagHandler
func NewTagHandler(tagService services.TagService) *TagHandler {
	return &TagHandler{tagService: tagService}
}

// RegisterTagRoutes registers tag-related routes
func (h *TagHandler) RegisterTagRoutes(g *echo.Group) {
	g.GET("/tags/search", h.SearchTags)
}

// SearchTags returns tags matching the query with their post counts
func (h *TagHandler) SearchTags(c echo.Context) error {
	query := c.QueryParam("q")
	limit, _ := strconv.Atoi(c.QueryParam("limit"))

	results, err := h.tagService.Search(c.Request().Context(), query, limit)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, echo.Map{"results": results})
}
