package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/connectsphere/backend/internal/models"
	"github.com/connectsphere/backend/internal/services"
)

// ReactionHandler handles likes, bookmarks, poll votes and event RSVPs
type ReactionHandler struct {
	reactionService services.ReactionService
}

// NewReactionHandler creates a new ReactionHandler
func NewReactionHandler(reactionService services.ReactionService) *ReactionHandler {
	return &ReactionHandler{reactionService: reactionService}
}

// RegisterReactionRoutes registers reaction-related routes
func (h *ReactionHandler) RegisterReactionRoutes(g *echo.Group) {
	g.POST("/posts/:id/like", h.Like)
	g.DELETE("/posts/:id/like", h.Unlike)
	g.POST("/posts/:id/save", h.Save)
	g.DELETE("/posts/:id/save", h.Unsave)
	g.POST("/polls/:id/vote", h.Vote)
	g.POST("/events/:id/rsvp", h.RSVP)
}

// Like marks a post as liked by the viewer
func (h *ReactionHandler) Like(c echo.Context) error {
	return h.toggleLike(c, true)
}

// Unlike removes the viewer's like from a post
func (h *ReactionHandler) Unlike(c echo.Context) error {
	return h.toggleLike(c, false)
}

// Save bookmarks a post for the viewer
func (h *ReactionHandler) Save(c echo.Context) error {
	return h.toggleSave(c, true)
}

// Unsave removes the viewer's bookmark from a post
func (h *ReactionHandler) Unsave(c echo.Context) error {
	return h.toggleSave(c, false)
}

func (h *ReactionHandler) toggleLike(c echo.Context, active bool) error {
	userID, err := userIDFromContext(c)
	if err != nil {
		return err
	}
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}

	result, err := h.reactionService.ToggleLike(c.Request().Context(), id, userID, active)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, result)
}

func (h *ReactionHandler) toggleSave(c echo.Context, active bool) error {
	userID, err := userIDFromContext(c)
	if err != nil {
		return err
	}
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}

	result, err := h.reactionService.ToggleSave(c.Request().Context(), id, userID, active)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, result)
}

// Vote casts the viewer's single vote on a poll option
func (h *ReactionHandler) Vote(c echo.Context) error {
	userID, err := userIDFromContext(c)
	if err != nil {
		return err
	}
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}

	var req models.VoteRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}

	poll, err := h.reactionService.Vote(c.Request().Context(), id, req.OptionID, userID)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, poll)
}

// RSVP toggles the viewer's attendance of an event
func (h *ReactionHandler) RSVP(c echo.Context) error {
	userID, err := userIDFromContext(c)
	if err != nil {
		return err
	}
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}

	var req models.RSVPRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}

	event, err := h.reactionService.RSVP(c.Request().Context(), id, userID, req.Attending)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, event)
}
