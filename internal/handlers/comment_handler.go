package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/connectsphere/backend/internal/models"
	"github.com/connectsphere/backend/internal/services"
)

// CommentHandler handles HTTP requests related to comments
type CommentHandler struct {
	commentService services.CommentService
}

// NewCommentHandler creates a new CommentHandler
func NewCommentHandler(commentService services.CommentService) *CommentHandler {
	return &CommentHandler{commentService: commentService}
}

// RegisterCommentRoutes registers comment-related routes
func (h *CommentHandler) RegisterCommentRoutes(g *echo.Group) {
	g.POST("/comments", h.CreateComment)
	g.GET("/comments", h.GetComments)
	g.GET("/comments/:id/replies", h.GetReplies)
	g.DELETE("/comments/:id", h.DeleteComment)
}

// CreateComment creates a comment or a reply on a content item
func (h *CommentHandler) CreateComment(c echo.Context) error {
	userID, err := userIDFromContext(c)
	if err != nil {
		return err
	}

	var req models.CreateCommentRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}

	comment, err := h.commentService.Create(c.Request().Context(), userID, req)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusCreated, comment)
}

// GetComments retrieves the top-level comments of a content item
func (h *CommentHandler) GetComments(c echo.Context) error {
	targetType := models.ContentKind(c.QueryParam("target_type"))
	targetID, err := parseQueryID(c, "target_id")
	if err != nil {
		return err
	}
	if !models.ValidCommentTarget(targetType) {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid target_type parameter")
	}

	comments, err := h.commentService.ListForTarget(c.Request().Context(), targetType, targetID)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, comments)
}

// GetReplies retrieves the direct replies of a comment
func (h *CommentHandler) GetReplies(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}

	replies, err := h.commentService.ListReplies(c.Request().Context(), id)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, replies)
}

// DeleteComment deletes a comment and its direct replies
func (h *CommentHandler) DeleteComment(c echo.Context) error {
	userID, err := userIDFromContext(c)
	if err != nil {
		return err
	}
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}

	if err := h.commentService.Delete(c.Request().Context(), id, userID); err != nil {
		return httpError(err)
	}
	return c.NoContent(http.StatusNoContent)
}
