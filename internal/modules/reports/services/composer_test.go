package services

import (
	"fmt"
	"testing"

	"github.com/MuhamadAgungGumelar/smartsales-dashboard-be/internal/core/analytics"
	"github.com/MuhamadAgungGumelar/smartsales-dashboard-be/internal/core/export"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sectionKeys(r *export.Report, format export.ExportFormat) []string {
	var keys []string
	for _, s := range r.SectionsFor(format) {
		keys = append(keys, s.Key)
	}
	return keys
}

func fullDashboard() DashboardInput {
	return DashboardInput{
		Data: analytics.NormalizeDashboardPayload(statsPayload(1234.5, []float64{100, 50, 200})),
		Categories: []analytics.CategoryBucket{
			{Category: "Ropa", TotalRevenue: decimal.NewFromInt(500), TotalQuantity: 5, SaleCount: 2},
		},
		Customers: []analytics.CustomerBucket{
			{CustomerID: uuid.New(), Name: "Ana Pérez", Email: "ana@example.com", TotalSpend: decimal.NewFromInt(800), PurchaseCount: 3},
		},
		Period:      "12",
		GeneratedAt: testNow,
	}
}

func TestComposeDashboardSectionsPerFormat(t *testing.T) {
	in := fullDashboard()
	in.Data.Products = []analytics.ProductPerformance{{Name: "Laptop", Units: 4, Revenue: 1000}}

	report := NewComposer("Bs.", "SmartSales365").ComposeDashboard(in)

	assert.Equal(t, []string{SectionStats, SectionMonthly, SectionProducts, SectionCustomers}, sectionKeys(report, export.FormatPDF))
	assert.Equal(t, []string{SectionStats, SectionMonthly, SectionCategories, SectionProducts, SectionCustomers, SectionTrends}, sectionKeys(report, export.FormatExcel))

	assert.Equal(t, "Reporte generado el 16/10/2026 14:30:00 - SmartSales365", report.Footer)
	require.Len(t, report.Meta, 2)
	assert.Equal(t, "Últimos 12 meses", report.Meta[1].Value)

	customers, ok := report.Section(SectionCustomers)
	require.True(t, ok)
	assert.True(t, customers.PageBreakBefore)
}

func TestComposeDashboardHeadlineValues(t *testing.T) {
	report := NewComposer("Bs.", "SmartSales365").ComposeDashboard(fullDashboard())

	stats, ok := report.Section(SectionStats)
	require.True(t, ok)
	require.Len(t, stats.Table.Rows, 4)

	assert.Equal(t, []interface{}{"Ventas del Mes", "Bs. 1,234.50", "+0.0%", "NEUTRAL"}, stats.Table.Rows[0])
	assert.Equal(t, int64(4), stats.Table.Rows[3][1])
}

func TestComposeDashboardOmitsEmptySections(t *testing.T) {
	in := DashboardInput{
		Data:        analytics.NormalizeDashboardPayload(statsPayload(0, []float64{0, 0})),
		Period:      "12",
		GeneratedAt: testNow,
	}

	report := NewComposer("Bs.", "SmartSales365").ComposeDashboard(in)

	assert.Equal(t, []string{SectionStats}, sectionKeys(report, export.FormatExcel))
}

func TestComposeDashboardTrendRows(t *testing.T) {
	report := NewComposer("Bs.", "SmartSales365").ComposeDashboard(fullDashboard())

	trends, ok := report.Section(SectionTrends)
	require.True(t, ok)
	require.Len(t, trends.Table.Rows, 3)

	assert.Equal(t, "+0.0%", trends.Table.Rows[0][2])
	assert.Equal(t, "→", trends.Table.Rows[0][3])
	assert.Equal(t, "-50.0%", trends.Table.Rows[1][2])
	assert.Equal(t, "↓", trends.Table.Rows[1][3])
	assert.Equal(t, "+300.0%", trends.Table.Rows[2][2])
	assert.Equal(t, "↑", trends.Table.Rows[2][3])

	require.Len(t, trends.Charts, 1)
	assert.Equal(t, export.ChartLine, trends.Charts[0].Type)
}

func TestComposePredictionsSingleCategory(t *testing.T) {
	preds := []analytics.PredictionRecord{
		prediction(2, 5, "200", 0.9, ""),
		prediction(1, 3, "100", 0.7, ""),
	}

	report := NewComposer("Bs.", "SmartSales365").ComposePredictions(PredictionsInput{
		Predictions: preds,
		Summary:     analytics.SummarizePredictions(preds, analytics.SalesWindows{}),
		GeneratedAt: testNow,
	})

	assert.Equal(t, []string{SectionPredictionSummary, SectionPredictionListing}, sectionKeys(report, export.FormatPDF))
	assert.Len(t, report.Meta, 1)
	assert.Equal(t, "Reporte generado el 16/10/2026 14:30:00 - SmartSales365 - Sistema de Predicciones con IA", report.Footer)

	summary, ok := report.Section(SectionPredictionSummary)
	require.True(t, ok)
	// zero sales windows are not listed
	assert.Len(t, summary.Table.Rows, 5)
	assert.Equal(t, "80.0%", summary.Table.Rows[2][1])
	assert.Equal(t, "#10B981", summary.ExcelHeaderColor)

	listing, ok := report.Section(SectionPredictionListing)
	require.True(t, ok)
	assert.False(t, listing.PageBreakBefore)
	assert.Equal(t, 100, listing.PDFRowLimit)
	require.Len(t, listing.Table.Rows, 2)
	assert.Equal(t, "2026-11-03", listing.Table.Rows[0][0])
	assert.InDelta(t, 70.0, listing.Table.Rows[0][2], 1e-9)
	assert.Equal(t, analytics.DefaultPredictionCategory, listing.Table.Rows[0][3])
	require.Len(t, listing.Charts, 2)
	assert.True(t, listing.Charts[1].BelowPrevious)
}

func TestComposePredictionsCategoryBreakdown(t *testing.T) {
	preds := []analytics.PredictionRecord{
		prediction(1, 1, "100", 0.6, "Ropa"),
		prediction(2, 2, "300", 0.8, "Hogar"),
		prediction(3, 3, "50", 1.0, "Ropa"),
	}

	report := NewComposer("Bs.", "SmartSales365").ComposePredictions(PredictionsInput{
		Predictions: preds,
		Summary:     analytics.SummarizePredictions(preds, analytics.SalesWindows{LastTotal: decimal.NewFromInt(10)}),
		GeneratedAt: testNow,
	})

	cats, ok := report.Section(SectionPredictionCategory)
	require.True(t, ok)
	assert.True(t, cats.PageBreakBefore)
	require.Len(t, cats.Table.Rows, 2)
	assert.Equal(t, "Hogar", cats.Table.Rows[0][0])
	assert.Equal(t, "Ropa", cats.Table.Rows[1][0])
	assert.InDelta(t, 80.0, cats.Table.Rows[1][3], 1e-9)

	listing, ok := report.Section(SectionPredictionListing)
	require.True(t, ok)
	assert.True(t, listing.PageBreakBefore)

	summary, _ := report.Section(SectionPredictionSummary)
	assert.Len(t, summary.Table.Rows, 6)
}

func TestComposePredictionsLongListingStartsNewPage(t *testing.T) {
	var preds []analytics.PredictionRecord
	for i := 1; i <= 31; i++ {
		preds = append(preds, prediction(int64(i), 1+i%28, fmt.Sprintf("%d", i*10), 0.5, ""))
	}

	report := NewComposer("Bs.", "SmartSales365").ComposePredictions(PredictionsInput{
		Predictions: preds,
		Summary:     analytics.SummarizePredictions(preds, analytics.SalesWindows{}),
		GeneratedAt: testNow,
	})

	listing, ok := report.Section(SectionPredictionListing)
	require.True(t, ok)
	assert.True(t, listing.PageBreakBefore)
}

func TestComposePredictionsModel(t *testing.T) {
	score := 0.0
	records := int64(12500)
	model := &analytics.ModelDescriptor{
		Name:            "RandomForest",
		Version:         "1.2",
		Status:          "active",
		QualityScore:    &score,
		TrainingRecords: &records,
	}

	report := NewComposer("Bs.", "SmartSales365").ComposePredictions(PredictionsInput{
		Model:       model,
		GeneratedAt: testNow,
	})

	pdfMeta := report.MetaFor(export.FormatPDF)
	require.Len(t, pdfMeta, 4)
	assert.Equal(t, "RandomForest v1.2", pdfMeta[1].Value)
	assert.Equal(t, "ACTIVE", pdfMeta[2].Value)
	// a zero quality score is not shown
	assert.Equal(t, "Registros de Entrenamiento:", pdfMeta[3].Label)
	assert.Equal(t, "12,500", pdfMeta[3].Value)

	assert.Len(t, report.MetaFor(export.FormatExcel), 1)
	assert.Equal(t, []string{SectionModel, SectionPredictionSummary}, sectionKeys(report, export.FormatExcel))
	assert.Equal(t, []string{SectionPredictionSummary}, sectionKeys(report, export.FormatPDF))
}
