package services

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/MuhamadAgungGumelar/smartsales-dashboard-be/internal/core/analytics"
	"github.com/MuhamadAgungGumelar/smartsales-dashboard-be/internal/core/export"
)

// Section keys
const (
	SectionStats              = "stats"
	SectionMonthly            = "monthly_sales"
	SectionCategories         = "category_sales"
	SectionProducts           = "top_products"
	SectionCustomers          = "top_customers"
	SectionTrends             = "monthly_trends"
	SectionModel              = "model_info"
	SectionPredictionSummary  = "prediction_summary"
	SectionPredictionCategory = "prediction_categories"
	SectionPredictionListing  = "prediction_listing"
)

const predictionPDFRows = 100

// longer listings start on a fresh page
const predictionListingBreakRows = 30

// Section header palette
const (
	colorStats      = "#0066FF"
	colorMonthly    = "#10B981"
	colorCategories = "#8B5CF6"
	colorProducts   = "#F59E0B"
	colorCustomers  = "#10B981"
	colorTrends     = "#3B82F6"
	colorModel      = "#8B5CF6"
	colorSummary    = "#8B5CF6"
	colorSummaryXLS = "#10B981"
	colorPredCats   = "#10B981"
	colorListing    = "#8B5CF6"

	accentDashboard   = "#0066FF"
	accentPredictions = "#8B5CF6"
)

const (
	inch            = 25.4
	displayDateTime = "02/01/2006 15:04:05"
)

// DashboardInput is everything the dashboard report shows
type DashboardInput struct {
	Data        analytics.DashboardData
	Categories  []analytics.CategoryBucket
	Customers   []analytics.CustomerBucket
	Period      string
	GeneratedAt time.Time
}

// PredictionsInput is everything the predictions report shows
type PredictionsInput struct {
	Predictions []analytics.PredictionRecord
	Summary     analytics.PredictionSummary
	Model       *analytics.ModelDescriptor
	GeneratedAt time.Time
}

// Composer turns canonical records into renderer-neutral reports
type Composer struct {
	currency string
	brand    string
}

func NewComposer(currency, brand string) *Composer {
	return &Composer{currency: currency, brand: brand}
}

func (c *Composer) money(v float64) string {
	return export.FormatMoney(c.currency, v)
}

// withCurrency labels a monetary column header, e.g. "Total (Bs.)"
func (c *Composer) withCurrency(label string) string {
	if c.currency == "" {
		return label
	}
	return fmt.Sprintf("%s (%s)", label, c.currency)
}

func (c *Composer) baseReport(title, sheet, accent string, at time.Time) *export.Report {
	return &export.Report{
		Title:          title,
		SheetName:      sheet,
		AccentColor:    accent,
		CurrencyPrefix: c.currency,
		GeneratedAt:    at,
		Meta: []export.MetaRow{
			{Label: "Fecha de Generación:", Value: at.Format(displayDateTime)},
		},
	}
}

// ComposeDashboard builds the sales dashboard report. Sections without
// data are left out.
func (c *Composer) ComposeDashboard(in DashboardInput) *export.Report {
	report := c.baseReport("Reporte de Dashboard de Ventas", "Dashboard Ventas", accentDashboard, in.GeneratedAt)
	report.Meta = append(report.Meta, export.MetaRow{
		Label: "Período Analizado:",
		Value: fmt.Sprintf("Últimos %s meses", in.Period),
	})
	report.Footer = fmt.Sprintf("Reporte generado el %s - %s", in.GeneratedAt.Format(displayDateTime), c.brand)
	report.ColumnWidths = map[string]float64{"A": 25, "B": 30, "C": 20, "D": 18, "E": 18, "F": 25, "G": 25}

	if in.Data.HasStats && len(in.Data.Headline) > 0 {
		report.Sections = append(report.Sections, c.statsSection(in.Data.Headline))
	}
	if analytics.HasActivity(in.Data.Monthly) {
		report.Sections = append(report.Sections, c.monthlySection(in.Data.Monthly))
	}
	if len(in.Categories) > 0 {
		report.Sections = append(report.Sections, c.categorySection(in.Categories))
	}
	if products := analytics.RankProducts(in.Data.Products, analytics.TopProducts); len(products) > 0 {
		report.Sections = append(report.Sections, c.productSection(products))
	}
	if len(in.Customers) > 0 {
		report.Sections = append(report.Sections, c.customerSection(in.Customers))
	}
	if analytics.HasActivity(in.Data.Monthly) {
		report.Sections = append(report.Sections, c.trendSection(in.Data.Monthly))
	}

	return report
}

func (c *Composer) statsSection(metrics []analytics.HeadlineMetric) export.ReportSection {
	rows := make([][]interface{}, 0, len(metrics))
	for _, m := range metrics {
		var value interface{} = int64(math.Round(m.Value))
		if m.Money {
			value = c.money(m.Value)
		}
		rows = append(rows, []interface{}{
			m.Label,
			value,
			export.FormatSignedPercent(m.Change),
			strings.ToUpper(m.Trend),
		})
	}

	return export.ReportSection{
		Key:         SectionStats,
		Title:       "Estadísticas Principales",
		HeaderColor: colorStats,
		Table: export.Table{
			Columns: []export.Column{
				{Header: "Métrica", Width: 2 * inch},
				{Header: "Valor", Width: 2 * inch},
				{Header: "Cambio %", Width: 1.5 * inch},
				{Header: "Tendencia", Width: 1.5 * inch},
			},
			Rows: rows,
		},
	}
}

func (c *Composer) monthlySection(points []analytics.MonthlySeriesPoint) export.ReportSection {
	rows := make([][]interface{}, len(points))
	for i, p := range points {
		rows[i] = []interface{}{p.Label, p.Value}
	}

	return export.ReportSection{
		Key:         SectionMonthly,
		Title:       "Ventas Mensuales",
		HeaderColor: colorMonthly,
		Table: export.Table{
			Columns: []export.Column{
				{Header: "Mes", Width: 3 * inch},
				{Header: c.withCurrency("Ventas"), Kind: export.ColumnMoney, Width: 3 * inch},
			},
			Rows: rows,
		},
		Charts: []export.ChartSpec{{
			Type:           export.ChartBar,
			Title:          "Ventas Mensuales",
			XAxisTitle:     "Mes",
			YAxisTitle:     c.withCurrency("Ventas"),
			CategoryColumn: 0,
			ValueColumn:    1,
			AnchorColumn:   "E",
		}},
	}
}

func (c *Composer) categorySection(buckets []analytics.CategoryBucket) export.ReportSection {
	rows := make([][]interface{}, len(buckets))
	for i, b := range buckets {
		rows[i] = []interface{}{b.Category, b.TotalRevenue.InexactFloat64(), b.TotalQuantity, b.SaleCount}
	}

	return export.ReportSection{
		Key:         SectionCategories,
		Title:       "Ventas por Categoría",
		HeaderColor: colorCategories,
		Target:      export.TargetExcel,
		Table: export.Table{
			Columns: []export.Column{
				{Header: "Categoría"},
				{Header: c.withCurrency("Total Ventas"), Kind: export.ColumnMoney},
				{Header: "Cantidad Vendida", Kind: export.ColumnInt},
				{Header: "N° Ventas", Kind: export.ColumnInt},
			},
			Rows: rows,
		},
		Charts: []export.ChartSpec{{
			Type:           export.ChartBar,
			Title:          "Ventas por Categoría",
			XAxisTitle:     "Categoría",
			YAxisTitle:     c.withCurrency("Ventas"),
			CategoryColumn: 0,
			ValueColumn:    1,
			AnchorColumn:   "F",
		}},
	}
}

func (c *Composer) productSection(products []analytics.ProductRankEntry) export.ReportSection {
	rows := make([][]interface{}, len(products))
	for i, p := range products {
		rows[i] = []interface{}{p.Rank, p.Name, p.Units, p.Revenue, p.AveragePerUnit}
	}

	return export.ReportSection{
		Key:         SectionProducts,
		Title:       fmt.Sprintf("Productos Más Vendidos (Top %d)", analytics.TopProducts),
		HeaderColor: colorProducts,
		Table: export.Table{
			Columns: []export.Column{
				{Header: "#", Kind: export.ColumnInt, Width: 0.5 * inch},
				{Header: "Producto", Width: 3 * inch, Truncate: 40},
				{Header: "Unidades Vendidas", Kind: export.ColumnInt, Width: 1.5 * inch},
				{Header: c.withCurrency("Total"), Kind: export.ColumnMoney, Width: 1.5 * inch},
				{Header: "Promedio/Unidad", Kind: export.ColumnMoney, Width: 1.5 * inch},
			},
			Rows: rows,
		},
		Charts: []export.ChartSpec{{
			Type:           export.ChartBar,
			Title:          "Top Productos por Ventas",
			XAxisTitle:     "Producto",
			YAxisTitle:     c.withCurrency("Total"),
			CategoryColumn: 1,
			ValueColumn:    3,
			AnchorColumn:   "G",
		}},
	}
}

func (c *Composer) customerSection(customers []analytics.CustomerBucket) export.ReportSection {
	rows := make([][]interface{}, len(customers))
	for i, cu := range customers {
		rows[i] = []interface{}{i + 1, cu.Name, cu.Email, cu.TotalSpend.InexactFloat64(), cu.PurchaseCount}
	}

	return export.ReportSection{
		Key:             SectionCustomers,
		Title:           fmt.Sprintf("Clientes Más Activos (Top %d)", analytics.TopCustomers),
		HeaderColor:     colorCustomers,
		PageBreakBefore: true,
		Table: export.Table{
			Columns: []export.Column{
				{Header: "#", Kind: export.ColumnInt, Width: 0.5 * inch},
				{Header: "Cliente", Width: 2 * inch, Truncate: 30, Align: "L"},
				{Header: "Email", Width: 2 * inch, Truncate: 30, Align: "L"},
				{Header: c.withCurrency("Total Compras"), Kind: export.ColumnMoney, Width: 1.5 * inch},
				{Header: "N° Compras", Kind: export.ColumnInt, Width: 1 * inch},
			},
			Rows: rows,
		},
		Charts: []export.ChartSpec{{
			Type:           export.ChartBar,
			Title:          "Top Clientes por Compras",
			XAxisTitle:     "Cliente",
			YAxisTitle:     c.withCurrency("Total Compras"),
			CategoryColumn: 1,
			ValueColumn:    3,
			AnchorColumn:   "G",
		}},
	}
}

func (c *Composer) trendSection(points []analytics.MonthlySeriesPoint) export.ReportSection {
	rows := make([][]interface{}, len(points))
	for i, p := range points {
		rows[i] = []interface{}{p.Label, p.Value, export.FormatSignedPercent(p.Growth), analytics.TrendArrow(p.Growth)}
	}

	return export.ReportSection{
		Key:         SectionTrends,
		Title:       "Análisis de Tendencias Mensuales",
		HeaderColor: colorTrends,
		Target:      export.TargetExcel,
		Table: export.Table{
			Columns: []export.Column{
				{Header: "Mes"},
				{Header: c.withCurrency("Ventas"), Kind: export.ColumnMoney},
				{Header: "Crecimiento %"},
				{Header: "Tendencia"},
			},
			Rows: rows,
		},
		Charts: []export.ChartSpec{{
			Type:           export.ChartLine,
			Title:          "Tendencia de Ventas Mensuales",
			XAxisTitle:     "Mes",
			YAxisTitle:     c.withCurrency("Ventas"),
			CategoryColumn: 0,
			ValueColumn:    1,
			AnchorColumn:   "F",
		}},
	}
}

// ComposePredictions builds the forecast report
func (c *Composer) ComposePredictions(in PredictionsInput) *export.Report {
	report := c.baseReport("Reporte de Predicciones de IA", "Predicciones IA", accentPredictions, in.GeneratedAt)
	report.Footer = fmt.Sprintf("Reporte generado el %s - %s - Sistema de Predicciones con IA",
		in.GeneratedAt.Format(displayDateTime), c.brand)
	report.ColumnWidths = map[string]float64{"A": 25, "B": 30, "C": 20, "D": 25, "E": 15, "F": 15}

	if in.Model != nil {
		report.Meta = append(report.Meta, c.modelMeta(in.Model)...)
		report.Sections = append(report.Sections, c.modelSection(in.Model))
	}

	report.Sections = append(report.Sections, c.summarySection(in.Summary))

	withCategories := analytics.DistinctPredictionCategories(in.Predictions) > 1
	if withCategories {
		buckets := analytics.BucketPredictionCategories(in.Predictions, analytics.TopCategories)
		report.Sections = append(report.Sections, c.predictionCategorySection(buckets))
	}

	if len(in.Predictions) > 0 {
		breakBefore := withCategories || len(in.Predictions) > predictionListingBreakRows
		report.Sections = append(report.Sections, c.listingSection(in.Predictions, breakBefore))
	}

	return report
}

// modelFields lists the model descriptor as label/value pairs
func modelFields(m *analytics.ModelDescriptor) [][2]string {
	fields := [][2]string{
		{"Nombre", m.Name},
		{"Versión", m.Version},
		{"Estado", strings.ToUpper(m.Status)},
	}
	if m.QualityScore != nil && *m.QualityScore != 0 {
		fields = append(fields, [2]string{"R² Score (Calidad)", fmt.Sprintf("%.3f", *m.QualityScore)})
	}
	if m.TrainingRecords != nil && *m.TrainingRecords != 0 {
		fields = append(fields, [2]string{"Registros de Entrenamiento", export.FormatCount(*m.TrainingRecords)})
	}
	return fields
}

func (c *Composer) modelMeta(m *analytics.ModelDescriptor) []export.MetaRow {
	rows := []export.MetaRow{
		{Label: "Modelo de IA:", Value: fmt.Sprintf("%s v%s", m.Name, m.Version), Target: export.TargetPDF},
		{Label: "Estado del Modelo:", Value: strings.ToUpper(m.Status), Target: export.TargetPDF},
	}
	for _, f := range modelFields(m)[3:] {
		rows = append(rows, export.MetaRow{Label: f[0] + ":", Value: f[1], Target: export.TargetPDF})
	}
	return rows
}

func (c *Composer) modelSection(m *analytics.ModelDescriptor) export.ReportSection {
	fields := modelFields(m)
	rows := make([][]interface{}, len(fields))
	for i, f := range fields {
		rows[i] = []interface{}{f[0], f[1]}
	}

	return export.ReportSection{
		Key:         SectionModel,
		Title:       "Información del Modelo",
		HeaderColor: colorModel,
		Target:      export.TargetExcel,
		Table: export.Table{
			Columns: []export.Column{{Header: "Campo"}, {Header: "Valor"}},
			Rows:    rows,
		},
	}
}

func (c *Composer) summarySection(s analytics.PredictionSummary) export.ReportSection {
	rows := [][]interface{}{
		{"Total de Predicciones", s.TotalPredictions},
		{"Total Valor Predicho", c.money(s.TotalPredictedValue)},
		{"Confianza Promedio", export.FormatPercent(s.AverageConfidence * 100)},
		{"Factor de Crecimiento", export.FormatSignedPercent(s.GrowthFactor)},
		{"Promedio Mensual Histórico", c.money(s.HistoricalMonthlyAverage)},
	}
	if s.LastWindowSales != 0 {
		rows = append(rows, []interface{}{"Ventas Últimos 30 Días", c.money(s.LastWindowSales)})
	}
	if s.PreviousWindowSales != 0 {
		rows = append(rows, []interface{}{"Ventas 30 Días Anteriores", c.money(s.PreviousWindowSales)})
	}

	return export.ReportSection{
		Key:              SectionPredictionSummary,
		Title:            "Resumen Ejecutivo de Predicciones",
		HeaderColor:      colorSummary,
		ExcelHeaderColor: colorSummaryXLS,
		Table: export.Table{
			Columns: []export.Column{
				{Header: "Métrica", Width: 3 * inch, Align: "L"},
				{Header: "Valor", Width: 3 * inch, Align: "L"},
			},
			Rows: rows,
		},
	}
}

func (c *Composer) predictionCategorySection(buckets []analytics.PredictionCategoryBucket) export.ReportSection {
	rows := make([][]interface{}, len(buckets))
	for i, b := range buckets {
		rows[i] = []interface{}{b.Category, b.TotalPredicted, b.Count, b.AverageConfidence * 100}
	}

	return export.ReportSection{
		Key:             SectionPredictionCategory,
		Title:           "Análisis por Categoría",
		HeaderColor:     colorPredCats,
		PageBreakBefore: true,
		Table: export.Table{
			Columns: []export.Column{
				{Header: "Categoría", Width: 2 * inch},
				{Header: c.withCurrency("Total Predicho"), Kind: export.ColumnAmount, Width: 1.5 * inch},
				{Header: "N° Predicciones", Kind: export.ColumnInt, Width: 1.5 * inch},
				{Header: "Confianza Promedio (%)", Kind: export.ColumnPercent, Width: 1.5 * inch},
			},
			Rows: rows,
		},
		Charts: []export.ChartSpec{{
			Type:           export.ChartBar,
			Title:          "Predicciones por Categoría",
			XAxisTitle:     "Categoría",
			YAxisTitle:     c.withCurrency("Valor Predicho"),
			CategoryColumn: 0,
			ValueColumn:    1,
			AnchorColumn:   "F",
			Width:          454,
			Height:         265,
		}},
	}
}

func (c *Composer) listingSection(preds []analytics.PredictionRecord, breakBefore bool) export.ReportSection {
	sorted := analytics.SortPredictionsChronologically(preds)
	rows := make([][]interface{}, len(sorted))
	for i, p := range sorted {
		rows[i] = []interface{}{
			p.PredictedFor.Format("2006-01-02"),
			p.PredictedValue.InexactFloat64(),
			p.Confidence * 100,
			analytics.PredictionCategory(p),
		}
	}

	return export.ReportSection{
		Key:             SectionPredictionListing,
		Title:           "Predicciones Detalladas",
		HeaderColor:     colorListing,
		PageBreakBefore: breakBefore,
		PDFRowLimit:     predictionPDFRows,
		TruncationNote:  "Nota: Se muestran %d de %d predicciones totales.",
		Table: export.Table{
			Columns: []export.Column{
				{Header: "Fecha", Width: 1.5 * inch},
				{Header: c.withCurrency("Valor Predicho"), Kind: export.ColumnAmount, Width: 2 * inch},
				{Header: "Confianza (%)", Kind: export.ColumnPercent, Width: 1.5 * inch},
				{Header: "Categoría", Width: 2 * inch},
			},
			Rows: rows,
		},
		Charts: []export.ChartSpec{
			{
				Type:           export.ChartLine,
				Title:          "Evolución de Predicciones en el Tiempo",
				XAxisTitle:     "Fecha",
				YAxisTitle:     c.withCurrency("Valor Predicho"),
				CategoryColumn: 0,
				ValueColumn:    1,
				AnchorColumn:   "F",
				Width:          567,
				Height:         302,
			},
			{
				Type:           export.ChartBar,
				Title:          "Nivel de Confianza de Predicciones",
				XAxisTitle:     "Fecha",
				YAxisTitle:     "Confianza (%)",
				CategoryColumn: 0,
				ValueColumn:    2,
				AnchorColumn:   "F",
				BelowPrevious:  true,
				Width:          567,
				Height:         302,
			},
		},
	}
}
