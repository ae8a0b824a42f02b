package export

import (
	"fmt"
	"io"

	"github.com/jung-kurt/gofpdf"
)

const (
	pdfHeadingColor = "#1F2937"
	pdfMetaFill     = "#F3F4F6"
	pdfAltRowFill   = "#F9FAFB"

	pdfHeaderRowHeight = 8.0
	pdfRowHeight       = 7.0
	pdfMarginX         = 15.0
	pdfMarginY         = 12.7
)

// PDFExporter implements PDF export using gofpdf
type PDFExporter struct {
	orientation string
	pageSize    string
}

// NewPDFExporter creates a new PDF exporter
func NewPDFExporter() *PDFExporter {
	return &PDFExporter{
		orientation: "P", // Portrait
		pageSize:    "A4",
	}
}

// Export renders the report as an A4 document: title, metadata block, one
// table per section and the footer line
func (p *PDFExporter) Export(report *Report, writer io.Writer) error {
	pdf := gofpdf.New(p.orientation, "mm", p.pageSize, "")
	pdf.SetMargins(pdfMarginX, pdfMarginY, pdfMarginX)
	// Rows are broken manually so the header row can be repeated
	pdf.SetAutoPageBreak(false, pdfMarginY)

	// Fixed dates keep the output byte-identical for the same report
	pdf.SetCreationDate(report.GeneratedAt)
	pdf.SetModificationDate(report.GeneratedAt)
	pdf.SetCatalogSort(true)
	pdf.SetTitle(report.Title, true)

	r := &pdfRenderer{
		pdf:    pdf,
		tr:     pdf.UnicodeTranslatorFromDescriptor(""),
		report: report,
	}

	pdf.AddPage()
	r.title()
	r.meta()
	for _, section := range report.SectionsFor(FormatPDF) {
		r.section(section)
	}
	r.footer()

	if err := pdf.Output(writer); err != nil {
		return fmt.Errorf("failed to write PDF: %w", err)
	}

	return nil
}

// GetContentType returns the MIME type for PDF files
func (p *PDFExporter) GetContentType() string {
	return "application/pdf"
}

// GetFileExtension returns the file extension for PDF files
func (p *PDFExporter) GetFileExtension() string {
	return ".pdf"
}

type pdfRenderer struct {
	pdf    *gofpdf.Fpdf
	tr     func(string) string
	report *Report
}

func (r *pdfRenderer) setTextColor(hex string) {
	red, green, blue := hexToRGB(hex)
	r.pdf.SetTextColor(red, green, blue)
}

func (r *pdfRenderer) setFillColor(hex string) {
	red, green, blue := hexToRGB(hex)
	r.pdf.SetFillColor(red, green, blue)
}

func (r *pdfRenderer) usableWidth() float64 {
	pageWidth, _ := r.pdf.GetPageSize()
	left, _, right, _ := r.pdf.GetMargins()
	return pageWidth - left - right
}

// ensureSpace starts a new page when h millimetres do not fit on the current one
func (r *pdfRenderer) ensureSpace(h float64) bool {
	_, pageHeight := r.pdf.GetPageSize()
	_, _, _, bottom := r.pdf.GetMargins()
	if r.pdf.GetY()+h > pageHeight-bottom {
		r.pdf.AddPage()
		return true
	}
	return false
}

func (r *pdfRenderer) title() {
	r.pdf.SetFont("Helvetica", "B", 24)
	r.setTextColor(r.report.AccentColor)
	r.pdf.CellFormat(0, 14, r.tr(r.report.Title), "", 1, "C", false, 0, "")
	r.pdf.Ln(6)
}

func (r *pdfRenderer) meta() {
	rows := r.report.MetaFor(FormatPDF)
	if len(rows) == 0 {
		return
	}

	labelWidth, valueWidth := 60.0, 95.0
	x := r.pdf.GetX() + (r.usableWidth()-labelWidth-valueWidth)/2

	r.pdf.SetDrawColor(128, 128, 128)
	r.pdf.SetLineWidth(0.2)
	for _, row := range rows {
		r.pdf.SetX(x)
		r.setTextColor(pdfHeadingColor)
		r.setFillColor(pdfMetaFill)
		r.pdf.SetFont("Helvetica", "B", 11)
		r.pdf.CellFormat(labelWidth, 9, r.tr(row.Label), "1", 0, "L", true, 0, "")
		r.pdf.SetFont("Helvetica", "", 11)
		r.pdf.CellFormat(valueWidth, 9, r.tr(row.Value), "1", 1, "L", false, 0, "")
	}
	r.pdf.Ln(8)
}

func (r *pdfRenderer) section(s ReportSection) {
	if s.PageBreakBefore {
		r.pdf.AddPage()
	} else {
		r.ensureSpace(12 + pdfHeaderRowHeight + pdfRowHeight)
	}

	r.pdf.SetFont("Helvetica", "B", 16)
	r.setTextColor(pdfHeadingColor)
	r.pdf.CellFormat(0, 10, r.tr(s.Title), "", 1, "L", false, 0, "")
	r.pdf.Ln(2)

	rows := s.Table.Rows
	total := len(rows)
	if s.PDFRowLimit > 0 && total > s.PDFRowLimit {
		rows = rows[:s.PDFRowLimit]
	}

	widths, x := r.columnLayout(s.Table.Columns)
	r.tableHeader(s, widths, x)

	r.pdf.SetLineWidth(0.2)
	for i, row := range rows {
		if r.ensureSpace(pdfRowHeight) {
			r.tableHeader(s, widths, x)
		}

		fill := pdfAltRowFill
		if i%2 == 0 {
			fill = "#FFFFFF"
		}
		r.setFillColor(fill)
		r.setTextColor(pdfHeadingColor)
		r.pdf.SetFont("Helvetica", "", 10)

		r.pdf.SetX(x)
		for j, col := range s.Table.Columns {
			var value interface{}
			if j < len(row) {
				value = row[j]
			}
			text := formatPDFCell(col, value, r.report.CurrencyPrefix)
			r.pdf.CellFormat(widths[j], pdfRowHeight, r.tr(text), "1", 0, alignOf(col), true, 0, "")
		}
		r.pdf.Ln(-1)
	}

	if len(rows) < total && s.TruncationNote != "" {
		r.pdf.Ln(4)
		r.ensureSpace(6)
		r.pdf.SetFont("Helvetica", "I", 9)
		r.setTextColor("#4B5563")
		r.pdf.CellFormat(0, 6, r.tr(fmt.Sprintf(s.TruncationNote, len(rows), total)), "", 1, "L", false, 0, "")
	}

	r.pdf.Ln(8)
}

func (r *pdfRenderer) tableHeader(s ReportSection, widths []float64, x float64) {
	r.setFillColor(s.HeaderColor)
	r.pdf.SetTextColor(255, 255, 255)
	r.pdf.SetDrawColor(128, 128, 128)
	r.pdf.SetFont("Helvetica", "B", 11)

	r.pdf.SetX(x)
	for j, col := range s.Table.Columns {
		r.pdf.CellFormat(widths[j], pdfHeaderRowHeight, r.tr(col.Header), "1", 0, "C", true, 0, "")
	}
	r.pdf.Ln(-1)
}

// columnLayout scales the declared widths down to the printable width when
// needed and returns them with the x offset that centres the table
func (r *pdfRenderer) columnLayout(columns []Column) ([]float64, float64) {
	usable := r.usableWidth()
	left, _, _, _ := r.pdf.GetMargins()

	widths := make([]float64, len(columns))
	total := 0.0
	for i, col := range columns {
		w := col.Width
		if w <= 0 {
			w = usable / float64(len(columns))
		}
		widths[i] = w
		total += w
	}

	if total > usable {
		scale := usable / total
		for i := range widths {
			widths[i] *= scale
		}
		total = usable
	}

	return widths, left + (usable-total)/2
}

func (r *pdfRenderer) footer() {
	if r.report.Footer == "" {
		return
	}
	r.pdf.Ln(6)
	r.ensureSpace(8)
	r.pdf.SetFont("Helvetica", "I", 9)
	r.setTextColor("#4B5563")
	r.pdf.CellFormat(0, 6, r.tr(r.report.Footer), "", 1, "L", false, 0, "")
}

func alignOf(col Column) string {
	if col.Align == "" {
		return "C"
	}
	return col.Align
}
