package export

import (
	"fmt"
	"time"
)

var fixedTime = time.Date(2026, 10, 16, 9, 30, 0, 0, time.UTC)

// sampleReport builds a report with a headline table, a ranked table with a
// bar chart, a PDF-only section and a long listing capped in the PDF
func sampleReport(listingRows int) *Report {
	listing := make([][]interface{}, listingRows)
	for i := range listing {
		listing[i] = []interface{}{
			fixedTime.AddDate(0, 0, i).Format("2006-01-02"),
			float64(100 + i),
			87.54,
			"General",
		}
	}

	return &Report{
		Title:          "Reporte de Prueba",
		SheetName:      "Dashboard Ventas",
		AccentColor:    "#0066FF",
		CurrencyPrefix: "Bs.",
		GeneratedAt:    fixedTime,
		Meta: []MetaRow{
			{Label: "Fecha de Generación:", Value: "16/10/2026 09:30:00"},
			{Label: "Modelo de IA:", Value: "forecast v1", Target: TargetPDF},
		},
		Sections: []ReportSection{
			{
				Key:         "stats",
				Title:       "Estadísticas Principales",
				HeaderColor: "#0066FF",
				Table: Table{
					Columns: []Column{
						{Header: "Métrica", Width: 50},
						{Header: "Valor", Width: 50},
						{Header: "Cambio %", Width: 40},
					},
					Rows: [][]interface{}{
						{"Ventas del Mes", FormatMoney("Bs.", 1234.5), FormatSignedPercent(12.5)},
						{"Total Pedidos", int64(12), FormatSignedPercent(0)},
					},
				},
			},
			{
				Key:         "products",
				Title:       "Productos Más Vendidos (Top 15)",
				HeaderColor: "#F59E0B",
				Table: Table{
					Columns: []Column{
						{Header: "#", Kind: ColumnInt, Width: 12},
						{Header: "Producto", Width: 70, Truncate: 40, Align: "L"},
						{Header: "Total (Bs.)", Kind: ColumnMoney, Width: 40},
					},
					Rows: [][]interface{}{
						{1, "Laptop Gamer con un nombre de producto extremadamente largo", 1234.5},
						{2, "Mouse", 90.0},
					},
				},
				Charts: []ChartSpec{{
					Type:           ChartBar,
					Title:          "Top Productos por Ventas",
					XAxisTitle:     "Producto",
					YAxisTitle:     "Total (Bs.)",
					CategoryColumn: 1,
					ValueColumn:    2,
					AnchorColumn:   "G",
				}},
			},
			{
				Key:             "pdf_only",
				Title:           "Solo PDF",
				HeaderColor:     "#10B981",
				Target:          TargetPDF,
				PageBreakBefore: true,
				Table: Table{
					Columns: []Column{{Header: "Campo"}},
					Rows:    [][]interface{}{{"valor"}},
				},
			},
			{
				Key:            "listing",
				Title:          "Predicciones Detalladas",
				HeaderColor:    "#8B5CF6",
				PDFRowLimit:    100,
				TruncationNote: "Nota: Se muestran %d de %d predicciones totales.",
				Table: Table{
					Columns: []Column{
						{Header: "Fecha", Width: 38},
						{Header: "Valor Predicho (Bs.)", Kind: ColumnAmount, Width: 50},
						{Header: "Confianza", Kind: ColumnPercent, Width: 38},
						{Header: "Categoría", Width: 50},
					},
					Rows: listing,
				},
				Charts: []ChartSpec{
					{Type: ChartLine, Title: "Evolución", CategoryColumn: 0, ValueColumn: 1, AnchorColumn: "F"},
					{Type: ChartBar, Title: "Confianza", CategoryColumn: 0, ValueColumn: 2, AnchorColumn: "F", BelowPrevious: true},
				},
			},
		},
		Footer:       fmt.Sprintf("Reporte generado el %s - SmartSales365", fixedTime.Format("02/01/2006 15:04:05")),
		ColumnWidths: map[string]float64{"A": 25, "B": 30, "C": 20, "D": 18},
	}
}
