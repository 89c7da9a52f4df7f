package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/connectsphere/backend/internal/models"
	"github.com/connectsphere/backend/internal/services"
)

// ReportHandler handles HTTP requests related to content reports
type ReportHandler struct {
	reportService services.ReportService
}

// NewReportHandler creates a new ReportHandler
func NewReportHandler(reportService services.ReportService) *ReportHandler {
	return &ReportHandler{reportService: reportService}
}

// RegisterReportRoutes registers report-related routes
func (h *ReportHandler) RegisterReportRoutes(g *echo.Group) {
	g.POST("/reports", h.CreateReport)
	g.GET("/reports", h.GetReports)
	g.POST("/reports/:id/resolve", h.ResolveReport)
}

// CreateReport files a report against a content item
func (h *ReportHandler) CreateReport(c echo.Context) error {
	userID, err := userIDFromContext(c)
	if err != nil {
		return err
	}

	var req models.CreateReportRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}

	report, err := h.reportService.Create(c.Request().Context(), userID, req)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusCreated, report)
}

// GetReports lists reports, optionally filtered by status. Admin only.
func (h *ReportHandler) GetReports(c echo.Context) error {
	userID, err := userIDFromContext(c)
	if err != nil {
		return err
	}
	status := models.ReportStatus(c.QueryParam("status"))

	reports, err := h.reportService.List(c.Request().Context(), userID, status)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, reports)
}

// ResolveReport marks a report as resolved. Admin only.
func (h *ReportHandler) ResolveReport(c echo.Context) error {
	userID, err := userIDFromContext(c)
	if err != nil {
		return err
	}
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}

	report, err := h.reportService.Resolve(c.Request().Context(), userID, id)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, report)
}
