package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/connectsphere/backend/internal/models"
	"github.com/connectsphere/backend/internal/services"
)

// EventHandler handles HTTP requests related to events
type EventHandler struct {
	eventService services.EventService
}

// NewEventHandler creates a new EventHandler
func NewEventHandler(eventService services.EventService) *EventHandler {
	return &EventHandler{eventService: eventService}
}

// RegisterEventRoutes registers event-related routes
func (h *EventHandler) RegisterEventRoutes(g *echo.Group) {
	g.POST("/events", h.CreateEvent)
	g.GET("/events", h.GetEvents)
	g.GET("/events/:id", h.GetEvent)
	g.DELETE("/events/:id", h.DeleteEvent)
}

// CreateEvent creates a new event
func (h *EventHandler) CreateEvent(c echo.Context) error {
	userID, err := userIDFromContext(c)
	if err != nil {
		return err
	}

	var req models.CreateEventRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}

	event, err := h.eventService.Create(c.Request().Context(), userID, req)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusCreated, event)
}

// GetEvent retrieves an event by ID
func (h *EventHandler) GetEvent(c echo.Context) error {
	userID, err := userIDFromContext(c)
	if err != nil {
		return err
	}
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}

	event, err := h.eventService.Get(c.Request().Context(), id, userID)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, event)
}

// GetEvents retrieves a page of events visible to the viewer
func (h *EventHandler) GetEvents(c echo.Context) error {
	userID, err := userIDFromContext(c)
	if err != nil {
		return err
	}

	events, nextCursor, err := h.eventService.List(c.Request().Context(), userID, listOptions(c))
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, echo.Map{"events": events, "nextCursor": nextCursor})
}

// DeleteEvent deletes an event and its RSVPs
func (h *EventHandler) DeleteEvent(c echo.Context) error {
	userID, err := userIDFromContext(c)
	if err != nil {
		return err
	}
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}

	if err := h.eventService.Delete(c.Request().Context(), id, userID); err != nil {
		return httpError(err)
	}
	return c.NoContent(http.StatusNoContent)
}
