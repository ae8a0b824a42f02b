package services

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/MuhamadAgungGumelar/smartsales-dashboard-be/internal/core/analytics"
	"github.com/MuhamadAgungGumelar/smartsales-dashboard-be/internal/core/export"
	"github.com/MuhamadAgungGumelar/smartsales-dashboard-be/internal/modules/reports/repositories"
	"github.com/MuhamadAgungGumelar/smartsales-dashboard-be/internal/shared/utils"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

const (
	defaultPeriod     = "12"
	filenameTimestamp = "20060102_150405"
)

// Renderer turns a composed report into a finished document
type Renderer interface {
	Render(report *export.Report, format export.ExportFormat) (*export.Rendered, error)
}

// Options tunes the presentation of every report
type Options struct {
	CurrencyPrefix string
	BrandName      string
	Location       *time.Location
	Clock          func() time.Time
}

// DashboardExportRequest is the input of ExportDashboard
type DashboardExportRequest struct {
	Authenticated bool
	UserID        string
	Format        string
	Period        string
}

// PredictionExportRequest is the input of ExportPredictions
type PredictionExportRequest struct {
	Authenticated bool
	UserID        string
	Format        string
	IDs           string
}

// ReportDocument is a rendered report ready to be sent to the client
type ReportDocument struct {
	Content     []byte
	ContentType string
	Filename    string
	Disposition string
}

type ExportService struct {
	sales    repositories.SalesRepo
	preds    repositories.PredictionRepo
	stats    repositories.StatsRepo
	renderer Renderer
	composer *Composer
	logger   zerolog.Logger
	location *time.Location
	clock    func() time.Time
}

func NewExportService(
	sales repositories.SalesRepo,
	preds repositories.PredictionRepo,
	stats repositories.StatsRepo,
	renderer Renderer,
	logger zerolog.Logger,
	opts Options,
) *ExportService {
	if opts.Location == nil {
		opts.Location = time.UTC
	}
	if opts.Clock == nil {
		opts.Clock = time.Now
	}

	return &ExportService{
		sales:    sales,
		preds:    preds,
		stats:    stats,
		renderer: renderer,
		composer: NewComposer(opts.CurrencyPrefix, opts.BrandName),
		logger:   logger.With().Str("component", "report_export").Logger(),
		location: opts.Location,
		clock:    opts.Clock,
	}
}

// checkRequest validates the caller and the format before any data is read
func checkRequest(authenticated bool, raw string) (export.ExportFormat, error) {
	if !authenticated {
		return "", unauthorized()
	}
	format, ok := export.ParseFormat(raw)
	if !ok {
		return "", unsupportedFormat()
	}
	return format, nil
}

func (s *ExportService) requestLogger(report, userID string, format export.ExportFormat) zerolog.Logger {
	return s.logger.With().
		Str("request_id", uuid.NewString()).
		Str("user_id", userID).
		Str("report", report).
		Str("format", string(format)).
		Logger()
}

// ExportDashboard renders the sales dashboard: headline metrics, monthly
// sales, current-month categories and customers, top products and trends.
func (s *ExportService) ExportDashboard(ctx context.Context, req DashboardExportRequest) (*ReportDocument, error) {
	format, err := checkRequest(req.Authenticated, req.Format)
	if err != nil {
		return nil, err
	}

	period := req.Period
	if n, err := strconv.Atoi(period); err != nil || n <= 0 {
		period = defaultPeriod
	}

	logger := s.requestLogger("dashboard_ventas", req.UserID, format)
	now := s.clock().In(s.location)

	payload, err := s.stats.DashboardPayload(ctx, now)
	if err != nil {
		return nil, s.fail(logger, "failed to load dashboard statistics", err)
	}
	data := analytics.NormalizeDashboardPayload(payload)

	monthStart := analytics.MonthStart(now)
	lines, err := s.sales.GetCompletedLinesSince(ctx, monthStart)
	if err != nil {
		return nil, s.fail(logger, "failed to load category sales", err)
	}
	sales, err := s.sales.GetCompletedSalesSince(ctx, monthStart)
	if err != nil {
		return nil, s.fail(logger, "failed to load customer sales", err)
	}

	report := s.composer.ComposeDashboard(DashboardInput{
		Data:        data,
		Categories:  analytics.BucketCategories(lines, analytics.TopCategories),
		Customers:   analytics.BucketCustomers(sales, analytics.TopCustomers),
		Period:      period,
		GeneratedAt: now,
	})

	return s.render(logger, report, format, "dashboard_ventas_")
}

// ExportPredictions renders the forecast report for the selected
// predictions, or the most recent ones when no usable selection is given.
func (s *ExportService) ExportPredictions(ctx context.Context, req PredictionExportRequest) (*ReportDocument, error) {
	format, err := checkRequest(req.Authenticated, req.Format)
	if err != nil {
		return nil, err
	}

	logger := s.requestLogger("predicciones_ia", req.UserID, format)
	now := s.clock().In(s.location)

	preds, err := s.selectPredictions(ctx, logger, req.IDs)
	if err != nil {
		return nil, s.fail(logger, "failed to load predictions", err)
	}

	windows := analytics.GetTrendWindows(now)
	var totals analytics.SalesWindows
	if totals.HistoryTotal, err = s.sales.SumCompleted(ctx, analytics.DateRange{Start: windows.HistoryStart, End: now, Field: "sold_at"}); err != nil {
		return nil, s.fail(logger, "failed to total historical sales", err)
	}
	if totals.LastTotal, err = s.sales.SumCompleted(ctx, windows.Last); err != nil {
		return nil, s.fail(logger, "failed to total recent sales", err)
	}
	if totals.PreviousTotal, err = s.sales.SumCompleted(ctx, windows.Previous); err != nil {
		return nil, s.fail(logger, "failed to total previous sales", err)
	}

	model, err := s.preds.GetActiveModel(ctx)
	if err != nil {
		return nil, s.fail(logger, "failed to load active model", err)
	}

	report := s.composer.ComposePredictions(PredictionsInput{
		Predictions: preds,
		Summary:     analytics.SummarizePredictions(preds, totals),
		Model:       model,
		GeneratedAt: now,
	})

	return s.render(logger, report, format, "predicciones_ia_")
}

func (s *ExportService) selectPredictions(ctx context.Context, logger zerolog.Logger, raw string) ([]analytics.PredictionRecord, error) {
	if raw == "" {
		return s.preds.GetRecent(ctx, analytics.RecentPredictions)
	}

	ids, err := analytics.ParsePredictionIDs(raw)
	if err != nil {
		utils.LogWarn(logger, "Ignoring malformed prediction ids, using most recent predictions", map[string]interface{}{
			"ids":   raw,
			"error": err.Error(),
		})
		return s.preds.GetRecent(ctx, analytics.RecentPredictions)
	}
	if len(ids) == 0 {
		return s.preds.GetRecent(ctx, analytics.RecentPredictions)
	}

	return s.preds.GetByIDs(ctx, ids)
}

func (s *ExportService) render(logger zerolog.Logger, report *export.Report, format export.ExportFormat, prefix string) (*ReportDocument, error) {
	start := time.Now()
	rendered, err := s.renderer.Render(report, format)
	if err != nil {
		return nil, s.fail(logger, "failed to render report", err)
	}

	disposition := "attachment"
	if format == export.FormatPDF {
		disposition = "inline"
	}

	doc := &ReportDocument{
		Content:     rendered.Content,
		ContentType: rendered.ContentType,
		Filename:    prefix + report.GeneratedAt.UTC().Format(filenameTimestamp) + rendered.Extension,
		Disposition: disposition,
	}

	logger.Info().
		Int("sections", len(report.SectionsFor(format))).
		Int("bytes", len(doc.Content)).
		Dur("elapsed", time.Since(start)).
		Str("filename", doc.Filename).
		Msg("Report exported")

	return doc, nil
}

func (s *ExportService) fail(logger zerolog.Logger, msg string, err error) error {
	if errors.Is(err, context.Canceled) {
		utils.LogWarn(logger, msg, map[string]interface{}{"error": err.Error()})
	} else {
		utils.LogError(logger, msg, err, nil)
	}
	return exportFailed(fmt.Errorf("%s: %w", msg, err))
}
