package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/socialpicture/backend/internal/models"
	"github.com/socialpicture/backend/internal/services"
)

// ReportHandler handles report-related HTTP requests
type ReportHandler struct {
	reportService *services.ReportService
}

// NewReportHandler creates a new ReportHandler
func NewReportHandler(reportService *services.ReportService) *ReportHandler {
	return &ReportHandler{reportService: reportService}
}

// RegisterReportRoutes registers report-related routes
func (h *ReportHandler) RegisterReportRoutes(g *echo.Group) {
	g.POST("/images/:image_id/reports", h.CreateReport)
	g.GET("/reports", h.GetReports)
	g.GET("/reports/mine", h.GetOwnReports)
	g.GET("/reports/:id", h.GetReport)
	g.PUT("/reports/:id/resolve", h.ResolveReport)
}

// CreateReport files a report against an image
func (h *ReportHandler) CreateReport(c echo.Context) error {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		return err
	}
	imageID, err := parseIDParam(c, "image_id")
	if err != nil {
		return err
	}

	var req models.CreateReportRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	view, err := h.reportService.CreateReport(userID, imageID, req.Reason)
	if err != nil {
		return serviceError(err)
	}
	return c.JSON(http.StatusCreated, view)
}

// GetReports lists reports for moderation (admin only)
func (h *ReportHandler) GetReports(c echo.Context) error {
	claims, err := getUserClaims(c)
	if err != nil {
		return err
	}
	if claims.Role != string(models.RoleAdmin) {
		return echo.NewHTTPError(http.StatusForbidden, "Admin access required")
	}

	includeResolved := c.QueryParam("include_resolved") == "true"
	views, err := h.reportService.GetReports(includeResolved)
	if err != nil {
		return serviceError(err)
	}
	return c.JSON(http.StatusOK, views)
}

// GetOwnReports lists reports filed by the authenticated user
func (h *ReportHandler) GetOwnReports(c echo.Context) error {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		return err
	}

	views, err := h.reportService.GetReportsByReporterID(userID)
	if err != nil {
		return serviceError(err)
	}
	return c.JSON(http.StatusOK, views)
}

// GetReport returns a single report (admin or the reporter)
func (h *ReportHandler) GetReport(c echo.Context) error {
	claims, err := getUserClaims(c)
	if err != nil {
		return err
	}
	id, err := parseIDParam(c, "id")
	if err != nil {
		return err
	}

	view, err := h.reportService.GetReportByID(id)
	if err != nil {
		return serviceError(err)
	}
	if claims.Role != string(models.RoleAdmin) && view.ReporterID != claims.UserID {
		return echo.NewHTTPError(http.StatusForbidden, "Admin access required")
	}
	return c.JSON(http.StatusOK, view)
}

// ResolveReport closes a pending report (admin only)
func (h *ReportHandler) ResolveReport(c echo.Context) error {
	claims, err := getUserClaims(c)
	if err != nil {
		return err
	}
	if claims.Role != string(models.RoleAdmin) {
		return echo.NewHTTPError(http.StatusForbidden, "Admin access required")
	}
	id, err := parseIDParam(c, "id")
	if err != nil {
		return err
	}

	var req models.ResolveReportRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	view, err := h.reportService.ResolveReport(id, claims.UserID, req.Status)
	if err != nil {
		return serviceError(err)
	}
	return c.JSON(http.StatusOK, view)
}
