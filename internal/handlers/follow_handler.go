package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/connectsphere/backend/internal/services"
)

// FollowHandler handles HTTP requests related to follow relationships
type FollowHandler struct {
	followService services.FollowService
}

// NewFollowHandler creates a new FollowHandler
func NewFollowHandler(followService services.FollowService) *FollowHandler {
	return &FollowHandler{followService: followService}
}

// RegisterFollowRoutes registers follow-related routes
func (h *FollowHandler) RegisterFollowRoutes(g *echo.Group) {
	g.POST("/users/:id/follow", h.Follow)
	g.DELETE("/users/:id/follow", h.Unfollow)
	g.GET("/users/:id/follow", h.Status)
	g.GET("/users/:id/followers", h.Followers)
	g.GET("/users/:id/following", h.Following)
	g.GET("/follow-requests", h.Requests)
	g.POST("/follow-requests/:followerId/approve", h.Approve)
	g.POST("/follow-requests/:followerId/reject", h.Reject)
}

// Follow creates a follow edge toward the target user. The edge starts
// pending when the target account is private.
func (h *FollowHandler) Follow(c echo.Context) error {
	userID, err := userIDFromContext(c)
	if err != nil {
		return err
	}
	targetID, err := pathID(c, "id")
	if err != nil {
		return err
	}

	state, err := h.followService.Follow(c.Request().Context(), userID, targetID)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, state)
}

// Unfollow removes any follow edge toward the target user
func (h *FollowHandler) Unfollow(c echo.Context) error {
	userID, err := userIDFromContext(c)
	if err != nil {
		return err
	}
	targetID, err := pathID(c, "id")
	if err != nil {
		return err
	}

	state, err := h.followService.Unfollow(c.Request().Context(), userID, targetID)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, state)
}

// Status reports the viewer's follow state toward the target user
func (h *FollowHandler) Status(c echo.Context) error {
	userID, err := userIDFromContext(c)
	if err != nil {
		return err
	}
	targetID, err := pathID(c, "id")
	if err != nil {
		return err
	}

	status, err := h.followService.Status(c.Request().Context(), userID, targetID)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, echo.Map{"status": status})
}

// Followers lists the users with an approved edge to the given user
func (h *FollowHandler) Followers(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}

	followers, err := h.followService.ListFollowers(c.Request().Context(), id)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, followers)
}

// Following lists the users the given user follows
func (h *FollowHandler) Following(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}

	following, err := h.followService.ListFollowing(c.Request().Context(), id)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, following)
}

// Requests lists the pending follow requests awaiting the viewer
func (h *FollowHandler) Requests(c echo.Context) error {
	userID, err := userIDFromContext(c)
	if err != nil {
		return err
	}

	requests, err := h.followService.ListRequests(c.Request().Context(), userID)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, requests)
}

// Approve accepts a pending follow request
func (h *FollowHandler) Approve(c echo.Context) error {
	userID, err := userIDFromContext(c)
	if err != nil {
		return err
	}
	followerID, err := pathID(c, "followerId")
	if err != nil {
		return err
	}

	ok, err := h.followService.Approve(c.Request().Context(), userID, followerID)
	if err != nil {
		return httpError(err)
	}
	if !ok {
		return echo.NewHTTPError(http.StatusNotFound, "No pending request from this user")
	}
	return c.JSON(http.StatusOK, echo.Map{"approved": true})
}

// Reject declines a pending follow request
func (h *FollowHandler) Reject(c echo.Context) error {
	userID, err := userIDFromContext(c)
	if err != nil {
		return err
	}
	followerID, err := pathID(c, "followerId")
	if err != nil {
		return err
	}

	ok, err := h.followService.Reject(c.Request().Context(), userID, followerID)
	if err != nil {
		return httpError(err)
	}
	if !ok {
		return echo.NewHTTPError(http.StatusNotFound, "No pending request from this user")
	}
	return c.JSON(http.StatusOK, echo.Map{"rejected": true})
}
