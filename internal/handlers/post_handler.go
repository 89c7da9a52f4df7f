package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/connectsphere/backend/internal/models"
	"github.com/connectsphere/backend/internal/services"
)

// PostHandler handles HTTP requests related to posts
type PostHandler struct {
	postService services.PostService
}

// NewPostHandler creates a new PostHandler
func NewPostHandler(postService services.PostService) *PostHandler {
	return &PostHandler{postService: postService}
}

// RegisterPostRoutes registers post-related routes
func (h *PostHandler) RegisterPostRoutes(g *echo.Group) {
	g.POST("/posts", h.CreatePost)
	g.GET("/posts", h.GetPosts)
	g.GET("/posts/saved", h.GetSavedPosts)
	g.GET("/posts/:id", h.GetPost)
	g.PUT("/posts/:id/privacy", h.SetPrivacy)
	g.DELETE("/posts/:id", h.DeletePost)
}

// CreatePost creates a new post
func (h *PostHandler) CreatePost(c echo.Context) error {
	userID, err := userIDFromContext(c)
	if err != nil {
		return err
	}

	var req models.CreatePostRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}

	post, err := h.postService.Create(c.Request().Context(), userID, req)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusCreated, post)
}

// GetPost retrieves a post by ID
func (h *PostHandler) GetPost(c echo.Context) error {
	userID, err := userIDFromContext(c)
	if err != nil {
		return err
	}
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}

	post, err := h.postService.Get(c.Request().Context(), id, userID)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, post)
}

// GetPosts retrieves a page of posts visible to the viewer
func (h *PostHandler) GetPosts(c echo.Context) error {
	userID, err := userIDFromContext(c)
	if err != nil {
		return err
	}

	page, err := h.postService.List(c.Request().Context(), userID, listOptions(c))
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, page)
}

// GetSavedPosts retrieves a page of the viewer's bookmarked posts
func (h *PostHandler) GetSavedPosts(c echo.Context) error {
	userID, err := userIDFromContext(c)
	if err != nil {
		return err
	}

	page, err := h.postService.ListSaved(c.Request().Context(), userID, listOptions(c))
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, page)
}

// SetPrivacy toggles a post's item-level privacy flag
func (h *PostHandler) SetPrivacy(c echo.Context) error {
	userID, err := userIDFromContext(c)
	if err != nil {
		return err
	}
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}

	var req models.UpdatePostPrivacyRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}

	if err := h.postService.SetPrivacy(c.Request().Context(), id, userID, req.IsPrivate); err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, echo.Map{"isPrivate": req.IsPrivate})
}

// DeletePost deletes a post
func (h *PostHandler) DeletePost(c echo.Context) error {
	userID, err := userIDFromContext(c)
	if err != nil {
		return err
	}
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}

	if err := h.postService.Delete(c.Request().Context(), id, userID); err != nil {
		return httpError(err)
	}
	return c.NoContent(http.StatusNoContent)
}
