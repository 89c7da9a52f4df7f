package handlers

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/connectsphere/backend/internal/models"
	"github.com/connectsphere/backend/internal/services"
)

// UserHandler handles HTTP requests for user profiles
type UserHandler struct {
	userService services.UserService
}

// NewUserHandler creates a new UserHandler
func NewUserHandler(userService services.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

// RegisterUserRoutes registers user-related routes
func (h *UserHandler) RegisterUserRoutes(g *echo.Group) {
	g.GET("/users/me", h.Me)
	g.PUT("/users/me", h.UpdateProfile)
	g.GET("/users/search", h.Search)
	g.GET("/users/suggestions", h.SuggestUsernames)
	g.GET("/users/by-name/:name", h.GetByName)
	g.GET("/users/:id", h.Get)
	g.GET("/users/:id/stats", h.Stats)
}

// Me returns the authenticated user's own profile
func (h *UserHandler) Me(c echo.Context) error {
	userID, err := userIDFromContext(c)
	if err != nil {
		return err
	}

	user, err := h.userService.Get(c.Request().Context(), userID)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, user)
}

// Get returns a user's profile by ID
func (h *UserHandler) Get(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}

	user, err := h.userService.Get(c.Request().Context(), id)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, user)
}

// GetByName returns a user's profile by exact name
func (h *UserHandler) GetByName(c echo.Context) error {
	user, err := h.userService.GetByName(c.Request().Context(), c.Param("name"))
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, user)
}

// Search matches users by name substring
func (h *UserHandler) Search(c echo.Context) error {
	query := c.QueryParam("q")
	if query == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "Missing q parameter")
	}
	limit, _ := strconv.Atoi(c.QueryParam("limit"))

	users, err := h.userService.Search(c.Request().Context(), query, limit)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, users)
}

// UpdateProfile patches the authenticated user's profile
func (h *UserHandler) UpdateProfile(c echo.Context) error {
	userID, err := userIDFromContext(c)
	if err != nil {
		return err
	}

	var req models.UpdateProfileRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}

	user, err := h.userService.UpdateProfile(c.Request().Context(), userID, req)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, user)
}

// Stats aggregates a user's follower, following, post and like counts
func (h *UserHandler) Stats(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}

	stats, err := h.userService.Stats(c.Request().Context(), id)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, stats)
}

// SuggestUsernames proposes free variations of a taken username
func (h *UserHandler) SuggestUsernames(c echo.Context) error {
	base := c.QueryParam("base")
	if base == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "Missing base parameter")
	}
	count, _ := strconv.Atoi(c.QueryParam("count"))

	suggestions, err := h.userService.SuggestUsernames(c.Request().Context(), base, count)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, echo.Map{"suggestions": suggestions})
}
