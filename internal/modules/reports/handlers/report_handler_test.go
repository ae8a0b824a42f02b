package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/MuhamadAgungGumelar/smartsales-dashboard-be/internal/core/auth"
	"github.com/MuhamadAgungGumelar/smartsales-dashboard-be/internal/modules/reports/services"
	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeExporter struct {
	dashboardReqs  []services.DashboardExportRequest
	predictionReqs []services.PredictionExportRequest
	doc            *services.ReportDocument
	err            error
}

func (f *fakeExporter) ExportDashboard(_ context.Context, req services.DashboardExportRequest) (*services.ReportDocument, error) {
	f.dashboardReqs = append(f.dashboardReqs, req)
	return f.doc, f.err
}

func (f *fakeExporter) ExportPredictions(_ context.Context, req services.PredictionExportRequest) (*services.ReportDocument, error) {
	f.predictionReqs = append(f.predictionReqs, req)
	return f.doc, f.err
}

const testSecret = "handler-secret"

func newReportApp(exporter ReportExporter) *fiber.App {
	app := fiber.New()
	app.Use(auth.Authenticate(auth.NewJWTService(testSecret)))

	h := NewReportHandler(exporter)
	app.Get("/reportes/dashboard-ventas/exportar", h.ExportDashboard)
	app.Get("/reportes/predicciones/exportar", h.ExportPredictions)
	return app
}

func bearer(t *testing.T) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": "u-1",
		"type":    "access",
		"exp":     time.Now().Add(time.Hour).Unix(),
	}).SignedString([]byte(testSecret))
	require.NoError(t, err)
	return "Bearer " + token
}

func get(t *testing.T, app *fiber.App, target, authorization string) (int, string, []byte, string) {
	t.Helper()
	req := httptest.NewRequest("GET", target, nil)
	if authorization != "" {
		req.Header.Set("Authorization", authorization)
	}
	resp, err := app.Test(req)
	require.NoError(t, err)
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, resp.Header.Get(fiber.HeaderContentType), body, resp.Header.Get(fiber.HeaderContentDisposition)
}

func TestExportDashboardSendsDocument(t *testing.T) {
	exporter := &fakeExporter{doc: &services.ReportDocument{
		Content:     []byte("%PDF-1.3 test"),
		ContentType: "application/pdf",
		Filename:    "dashboard_ventas_20261016_143000.pdf",
		Disposition: "inline",
	}}
	app := newReportApp(exporter)

	status, contentType, body, disposition := get(t, app, "/reportes/dashboard-ventas/exportar?formato=pdf&periodo=6", bearer(t))

	assert.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, "application/pdf", contentType)
	assert.Equal(t, `inline; filename="dashboard_ventas_20261016_143000.pdf"`, disposition)
	assert.Equal(t, "%PDF-1.3 test", string(body))

	require.Len(t, exporter.dashboardReqs, 1)
	assert.Equal(t, services.DashboardExportRequest{Authenticated: true, UserID: "u-1", Format: "pdf", Period: "6"}, exporter.dashboardReqs[0])
}

func TestExportDashboardDefaultsPeriod(t *testing.T) {
	exporter := &fakeExporter{doc: &services.ReportDocument{ContentType: "application/pdf", Disposition: "inline"}}
	app := newReportApp(exporter)

	get(t, app, "/reportes/dashboard-ventas/exportar", "")

	require.Len(t, exporter.dashboardReqs, 1)
	assert.False(t, exporter.dashboardReqs[0].Authenticated)
	assert.Equal(t, "12", exporter.dashboardReqs[0].Period)
	assert.Equal(t, "pdf", exporter.dashboardReqs[0].Format)
}

func TestExportPredictionsPassesSelection(t *testing.T) {
	exporter := &fakeExporter{doc: &services.ReportDocument{
		Content:     []byte("xlsx"),
		ContentType: "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
		Filename:    "predicciones_ia_20261016_143000.xlsx",
		Disposition: "attachment",
	}}
	app := newReportApp(exporter)

	status, _, _, disposition := get(t, app, "/reportes/predicciones/exportar?formato=excel&ids=1,2,3", bearer(t))

	assert.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, `attachment; filename="predicciones_ia_20261016_143000.xlsx"`, disposition)
	require.Len(t, exporter.predictionReqs, 1)
	assert.Equal(t, "1,2,3", exporter.predictionReqs[0].IDs)
	assert.Equal(t, "excel", exporter.predictionReqs[0].Format)
}

func TestExportErrorsAreJSON(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantMsg    string
	}{
		{
			name:       "unauthenticated",
			err:        &services.ReportError{Kind: services.KindAuthorization, Message: services.MsgAuthRequired},
			wantStatus: fiber.StatusUnauthorized,
			wantMsg:    services.MsgAuthRequired,
		},
		{
			name:       "bad format",
			err:        &services.ReportError{Kind: services.KindValidation, Message: services.MsgUnsupportedFormat},
			wantStatus: fiber.StatusBadRequest,
			wantMsg:    services.MsgUnsupportedFormat,
		},
		{
			name:       "unexpected",
			err:        errors.New("pq: relation \"sales\" does not exist"),
			wantStatus: fiber.StatusInternalServerError,
			wantMsg:    services.MsgExportFailed,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app := newReportApp(&fakeExporter{err: tt.err})

			status, contentType, body, disposition := get(t, app, "/reportes/predicciones/exportar?formato=csv", "")

			assert.Equal(t, tt.wantStatus, status)
			assert.Contains(t, contentType, "application/json")
			assert.Empty(t, disposition)

			var payload map[string]interface{}
			require.NoError(t, json.Unmarshal(body, &payload))
			assert.Equal(t, false, payload["success"])
			// causes are never leaked to the client
			assert.Equal(t, tt.wantMsg, payload["message"])
		})
	}
}

func TestExportFormatDefaultsOnlyWhenAbsent(t *testing.T) {
	tests := []struct {
		name       string
		target     string
		wantFormat string
	}{
		{name: "absent", target: "/reportes/predicciones/exportar", wantFormat: "pdf"},
		{name: "explicit empty", target: "/reportes/predicciones/exportar?formato=", wantFormat: ""},
		{name: "excel", target: "/reportes/predicciones/exportar?formato=excel", wantFormat: "excel"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			exporter := &fakeExporter{doc: &services.ReportDocument{ContentType: "application/pdf", Disposition: "inline"}}
			app := newReportApp(exporter)

			get(t, app, tt.target, bearer(t))

			require.Len(t, exporter.predictionReqs, 1)
			assert.Equal(t, tt.wantFormat, exporter.predictionReqs[0].Format)
		})
	}
}
