package handlers

import (
	"context"
	"fmt"

	"github.com/MuhamadAgungGumelar/smartsales-dashboard-be/internal/core/auth"
	"github.com/MuhamadAgungGumelar/smartsales-dashboard-be/internal/modules/reports/services"
	"github.com/gofiber/fiber/v2"
)

// ReportExporter produces the downloadable reports
type ReportExporter interface {
	ExportDashboard(ctx context.Context, req services.DashboardExportRequest) (*services.ReportDocument, error)
	ExportPredictions(ctx context.Context, req services.PredictionExportRequest) (*services.ReportDocument, error)
}

type ReportHandler struct {
	exporter ReportExporter
}

func NewReportHandler(exporter ReportExporter) *ReportHandler {
	return &ReportHandler{
		exporter: exporter,
	}
}

// ExportDashboard godoc
// @Summary Export the sales dashboard
// @Description Render the sales dashboard as PDF or Excel (requires authentication)
// @Tags Reports
// @Produce application/pdf
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param Authorization header string true "Bearer token"
// @Param formato query string false "pdf (default) or excel"
// @Param periodo query string false "Number of months shown in the heading" default(12)
// @Success 200 {file} file
// @Failure 400 {object} map[string]interface{}
// @Failure 401 {object} map[string]interface{}
// @Failure 500 {object} map[string]interface{}
// @Router /reportes/dashboard-ventas/exportar [get]
func (h *ReportHandler) ExportDashboard(c *fiber.Ctx) error {
	doc, err := h.exporter.ExportDashboard(c.UserContext(), services.DashboardExportRequest{
		Authenticated: auth.IsAuthenticated(c),
		UserID:        auth.UserID(c),
		Format:        formatParam(c),
		Period:        c.Query("periodo", "12"),
	})
	if err != nil {
		return respondError(c, err)
	}

	return sendDocument(c, doc)
}

// ExportPredictions godoc
// @Summary Export AI sales predictions
// @Description Render the selected predictions, or the 100 most recent, as PDF or Excel (requires authentication)
// @Tags Reports
// @Produce application/pdf
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param Authorization header string true "Bearer token"
// @Param formato query string false "pdf (default) or excel"
// @Param ids query string false "Comma-separated prediction ids"
// @Success 200 {file} file
// @Failure 400 {object} map[string]interface{}
// @Failure 401 {object} map[string]interface{}
// @Failure 500 {object} map[string]interface{}
// @Router /reportes/predicciones/exportar [get]
func (h *ReportHandler) ExportPredictions(c *fiber.Ctx) error {
	doc, err := h.exporter.ExportPredictions(c.UserContext(), services.PredictionExportRequest{
		Authenticated: auth.IsAuthenticated(c),
		UserID:        auth.UserID(c),
		Format:        formatParam(c),
		IDs:           c.Query("ids"),
	})
	if err != nil {
		return respondError(c, err)
	}

	return sendDocument(c, doc)
}

// formatParam defaults to pdf only when formato is absent; an explicit empty
// value is passed through and rejected
func formatParam(c *fiber.Ctx) string {
	if !c.Context().QueryArgs().Has("formato") {
		return "pdf"
	}
	return c.Query("formato")
}

func sendDocument(c *fiber.Ctx, doc *services.ReportDocument) error {
	c.Set(fiber.HeaderContentType, doc.ContentType)
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf("%s; filename=%q", doc.Disposition, doc.Filename))
	return c.Status(fiber.StatusOK).Send(doc.Content)
}

func respondError(c *fiber.Ctx, err error) error {
	re := services.AsReportError(err)
	return c.Status(re.StatusCode()).JSON(fiber.Map{
		"success": false,
		"message": re.Message,
	})
}
