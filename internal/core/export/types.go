package export

import (
	"io"
	"time"
)

// ExportFormat represents the export file format
type ExportFormat string

const (
	FormatPDF   ExportFormat = "pdf"
	FormatExcel ExportFormat = "excel"
)

// ParseFormat maps a request parameter to a format
func ParseFormat(raw string) (ExportFormat, bool) {
	switch ExportFormat(raw) {
	case FormatPDF:
		return FormatPDF, true
	case FormatExcel:
		return FormatExcel, true
	default:
		return "", false
	}
}

// Exporter is the interface for all export formats
type Exporter interface {
	Export(report *Report, writer io.Writer) error
	GetContentType() string
	GetFileExtension() string
}

// Target restricts a section or metadata row to one renderer
type Target int

const (
	TargetAll Target = iota
	TargetPDF
	TargetExcel
)

func (t Target) includes(format ExportFormat) bool {
	switch t {
	case TargetPDF:
		return format == FormatPDF
	case TargetExcel:
		return format == FormatExcel
	default:
		return true
	}
}

// ColumnKind decides how a renderer presents a cell
type ColumnKind int

const (
	// ColumnText cells are written as given; the PDF truncates them to Column.Truncate runes
	ColumnText ColumnKind = iota
	// ColumnInt cells hold whole numbers
	ColumnInt
	// ColumnMoney cells hold float64 amounts shown with the currency prefix in the PDF
	ColumnMoney
	// ColumnAmount cells hold float64 amounts shown without prefix in the PDF
	ColumnAmount
	// ColumnPercent cells hold float64 percentages (12.5 means 12.5%)
	ColumnPercent
)

// Column describes one table column
type Column struct {
	Header   string
	Kind     ColumnKind
	Width    float64 // PDF width in mm
	Truncate int     // PDF only, 0 = no limit
	Align    string  // PDF alignment, "C" when empty
}

// Table is a header row plus raw cell values
type Table struct {
	Columns []Column
	Rows    [][]interface{}
}

// ChartType selects the spreadsheet chart drawn next to a table
type ChartType string

const (
	ChartBar  ChartType = "bar"
	ChartLine ChartType = "line"
)

// ChartSpec binds a spreadsheet chart to the rows of its section table.
// Columns are zero-based indexes into Table.Columns.
type ChartSpec struct {
	Type           ChartType
	Title          string
	XAxisTitle     string
	YAxisTitle     string
	CategoryColumn int
	ValueColumn    int
	AnchorColumn   string // column letter the chart is anchored at
	BelowPrevious  bool   // anchor under the table instead of beside its first row
	Width          uint
	Height         uint
}

// MetaRow is one label/value line of the metadata block
type MetaRow struct {
	Label  string
	Value  string
	Target Target
}

// ReportSection is one titled table of a report
type ReportSection struct {
	Key         string
	Title       string
	HeaderColor string // hex color of the header row
	// ExcelHeaderColor overrides HeaderColor in the spreadsheet when set
	ExcelHeaderColor string
	Table            Table
	Charts           []ChartSpec
	Target           Target
	// PageBreakBefore starts the section on a new PDF page
	PageBreakBefore bool
	// PDFRowLimit caps the rows printed in the PDF, 0 = no limit
	PDFRowLimit int
	// TruncationNote is formatted with the shown and total row counts when PDFRowLimit applies
	TruncationNote string
}

// Report is the renderer-neutral description of an export document
type Report struct {
	Title          string
	SheetName      string
	AccentColor    string
	CurrencyPrefix string
	GeneratedAt    time.Time
	Meta           []MetaRow
	Sections       []ReportSection
	Footer         string
	// ColumnWidths are the fixed spreadsheet widths per column letter
	ColumnWidths map[string]float64
}

// SectionsFor returns the sections rendered by the given format, in order
func (r *Report) SectionsFor(format ExportFormat) []ReportSection {
	sections := make([]ReportSection, 0, len(r.Sections))
	for _, s := range r.Sections {
		if s.Target.includes(format) {
			sections = append(sections, s)
		}
	}
	return sections
}

// MetaFor returns the metadata rows rendered by the given format
func (r *Report) MetaFor(format ExportFormat) []MetaRow {
	rows := make([]MetaRow, 0, len(r.Meta))
	for _, m := range r.Meta {
		if m.Target.includes(format) {
			rows = append(rows, m)
		}
	}
	return rows
}

// Section returns the section with the given key
func (r *Report) Section(key string) (ReportSection, bool) {
	for _, s := range r.Sections {
		if s.Key == key {
			return s, true
		}
	}
	return ReportSection{}, false
}
