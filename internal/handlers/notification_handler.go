package handlers

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/connectsphere/backend/internal/models"
	"github.com/connectsphere/backend/internal/services"
)

// NotificationHandler handles HTTP requests related to notifications
type NotificationHandler struct {
	notificationService services.NotificationService
}

// NewNotificationHandler creates a new NotificationHandler
func NewNotificationHandler(notificationService services.NotificationService) *NotificationHandler {
	return &NotificationHandler{notificationService: notificationService}
}

// RegisterNotificationRoutes registers notification-related routes
func (h *NotificationHandler) RegisterNotificationRoutes(g *echo.Group) {
	g.GET("/notifications", h.GetNotifications)
	g.GET("/notifications/unread-count", h.UnreadCount)
	g.POST("/notifications/read", h.MarkRead)
}

// GetNotifications retrieves the viewer's notifications, newest first
func (h *NotificationHandler) GetNotifications(c echo.Context) error {
	userID, err := userIDFromContext(c)
	if err != nil {
		return err
	}
	limit, _ := strconv.Atoi(c.QueryParam("limit"))

	notifications, err := h.notificationService.List(c.Request().Context(), userID, limit)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, notifications)
}

// UnreadCount counts the viewer's unread notifications
func (h *NotificationHandler) UnreadCount(c echo.Context) error {
	userID, err := userIDFromContext(c)
	if err != nil {
		return err
	}

	count, err := h.notificationService.UnreadCount(c.Request().Context(), userID)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, echo.Map{"count": count})
}

// MarkRead flags notifications as read; with an empty body all of the
// viewer's notifications are flagged
func (h *NotificationHandler) MarkRead(c echo.Context) error {
	userID, err := userIDFromContext(c)
	if err != nil {
		return err
	}

	var req models.MarkReadRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}

	if err := h.notificationService.MarkRead(c.Request().Context(), userID, req.IDs); err != nil {
		return httpError(err)
	}
	return c.NoContent(http.StatusNoContent)
}
