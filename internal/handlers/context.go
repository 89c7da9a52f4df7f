package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/connectsphere/backend/internal/models"
	"github.com/connectsphere/backend/internal/safety"
	"github.com/connectsphere/backend/internal/services"
)

// userIDFromContext extracts the authenticated user's ID from the JWT
// claims stored by the auth middleware.
func userIDFromContext(c echo.Context) (int, error) {
	claims, ok := c.Get("user").(*models.JwtCustomClaims)
	if !ok || claims == nil {
		return 0, echo.NewHTTPError(http.StatusUnauthorized, "Missing user claims")
	}
	return claims.UserID, nil
}

// pathID parses a numeric path parameter.
func pathID(c echo.Context, name string) (int, error) {
	id, err := strconv.Atoi(c.Param(name))
	if err != nil || id < 1 {
		return 0, echo.NewHTTPError(http.StatusBadRequest, "Invalid "+name+" parameter")
	}
	return id, nil
}

// parseQueryID parses a required numeric query parameter.
func parseQueryID(c echo.Context, name string) (int, error) {
	id, err := strconv.Atoi(c.QueryParam(name))
	if err != nil || id < 1 {
		return 0, echo.NewHTTPError(http.StatusBadRequest, "Invalid "+name+" parameter")
	}
	return id, nil
}

// listOptions reads the shared pagination query parameters.
func listOptions(c echo.Context) services.ListOptions {
	opts := services.ListOptions{Cursor: c.QueryParam("cursor")}
	if limit, err := strconv.Atoi(c.QueryParam("limit")); err == nil {
		opts.Limit = limit
	}
	if ownerID, err := strconv.Atoi(c.QueryParam("user_id")); err == nil && ownerID > 0 {
		opts.OwnerID = &ownerID
	}
	if excludeID, err := strconv.Atoi(c.QueryParam("exclude_user_id")); err == nil && excludeID > 0 {
		opts.ExcludeOwnerID = &excludeID
	}
	return opts
}

// httpError translates service errors into HTTP status codes.
func httpError(err error) error {
	switch {
	case errors.Is(err, services.ErrNotFound):
		return echo.NewHTTPError(http.StatusNotFound, err.Error())
	case errors.Is(err, services.ErrForbidden):
		return echo.NewHTTPError(http.StatusForbidden, err.Error())
	case errors.Is(err, services.ErrConflict):
		return echo.NewHTTPError(http.StatusConflict, err.Error())
	case errors.Is(err, services.ErrInvalid):
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	case errors.Is(err, safety.ErrUnsafeContent):
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	default:
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
}
