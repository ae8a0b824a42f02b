package export

import (
	"fmt"
	"io"
	"math"
	"sort"

	"github.com/xuri/excelize/v2"
)

const (
	defaultSheetName  = "Sheet1"
	excelRowPixels    = 20
	excelChartWidth   = 480
	excelChartHeight  = 280
	excelSectionColor = "1F2937"
)

// ExcelExporter implements Excel export using excelize
type ExcelExporter struct{}

// NewExcelExporter creates a new Excel exporter
func NewExcelExporter() *ExcelExporter {
	return &ExcelExporter{}
}

// Export writes the report to a single sheet with sections stacked
// vertically and a chart beside every section that declares one
func (e *ExcelExporter) Export(report *Report, writer io.Writer) error {
	f := excelize.NewFile()
	defer f.Close()

	sheet := report.SheetName
	if sheet == "" {
		sheet = defaultSheetName
	}
	if sheet != defaultSheetName {
		if err := f.SetSheetName(defaultSheetName, sheet); err != nil {
			return fmt.Errorf("failed to name sheet: %w", err)
		}
	}

	w := &sheetWriter{
		f:            f,
		sheet:        sheet,
		headerStyles: make(map[string]int),
	}
	if err := w.initStyles(report); err != nil {
		return fmt.Errorf("failed to create styles: %w", err)
	}

	row, err := w.writeHeading(report)
	if err != nil {
		return err
	}

	for _, section := range report.SectionsFor(FormatExcel) {
		if row, err = w.writeSection(section, row); err != nil {
			return fmt.Errorf("section %q: %w", section.Key, err)
		}
	}

	cols := make([]string, 0, len(report.ColumnWidths))
	for col := range report.ColumnWidths {
		cols = append(cols, col)
	}
	sort.Strings(cols)
	for _, col := range cols {
		if err := f.SetColWidth(sheet, col, col, report.ColumnWidths[col]); err != nil {
			return fmt.Errorf("failed to set width of column %s: %w", col, err)
		}
	}

	if err := f.Write(writer); err != nil {
		return fmt.Errorf("failed to write Excel file: %w", err)
	}

	return nil
}

// GetContentType returns the MIME type for Excel files
func (e *ExcelExporter) GetContentType() string {
	return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
}

// GetFileExtension returns the file extension for Excel files
func (e *ExcelExporter) GetFileExtension() string {
	return ".xlsx"
}

type sheetWriter struct {
	f     *excelize.File
	sheet string

	titleStyle   int
	sectionStyle int
	labelStyle   int
	altRowStyle  int
	headerStyles map[string]int
}

func (w *sheetWriter) initStyles(report *Report) error {
	var err error

	w.titleStyle, err = w.f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Size: 18, Color: stripHashFromColor(report.AccentColor)},
		Alignment: &excelize.Alignment{
			Horizontal: "center",
			Vertical:   "center",
		},
	})
	if err != nil {
		return err
	}

	w.sectionStyle, err = w.f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Size: 14, Color: excelSectionColor},
	})
	if err != nil {
		return err
	}

	w.labelStyle, err = w.f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
	})
	if err != nil {
		return err
	}

	w.altRowStyle, err = w.f.NewStyle(&excelize.Style{
		Fill: excelize.Fill{
			Type:    "pattern",
			Pattern: 1,
			Color:   []string{stripHashFromColor(pdfAltRowFill)},
		},
	})
	return err
}

// headerStyle returns the header row style for a fill color, creating it once
func (w *sheetWriter) headerStyle(color string) (int, error) {
	color = stripHashFromColor(color)
	if id, ok := w.headerStyles[color]; ok {
		return id, nil
	}

	id, err := w.f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Color: "FFFFFF"},
		Fill: excelize.Fill{
			Type:    "pattern",
			Pattern: 1,
			Color:   []string{color},
		},
		Alignment: &excelize.Alignment{
			Horizontal: "center",
			Vertical:   "center",
		},
	})
	if err != nil {
		return 0, err
	}
	w.headerStyles[color] = id
	return id, nil
}

// writeHeading writes the merged title and the metadata rows starting at
// row 3, returning the first row available for sections
func (w *sheetWriter) writeHeading(report *Report) (int, error) {
	if err := w.f.SetCellValue(w.sheet, "A1", report.Title); err != nil {
		return 0, err
	}
	if err := w.f.MergeCell(w.sheet, "A1", "D1"); err != nil {
		return 0, err
	}
	if err := w.f.SetCellStyle(w.sheet, "A1", "D1", w.titleStyle); err != nil {
		return 0, err
	}
	if err := w.f.SetRowHeight(w.sheet, 1, 30); err != nil {
		return 0, err
	}

	row := 3
	for _, meta := range report.MetaFor(FormatExcel) {
		label := fmt.Sprintf("A%d", row)
		if err := w.f.SetCellValue(w.sheet, label, meta.Label); err != nil {
			return 0, err
		}
		if err := w.f.SetCellStyle(w.sheet, label, label, w.labelStyle); err != nil {
			return 0, err
		}
		if err := w.f.SetCellValue(w.sheet, fmt.Sprintf("B%d", row), meta.Value); err != nil {
			return 0, err
		}
		row++
	}

	return row + 1, nil
}

// writeSection writes the section title, header row, data rows and charts
// beginning at row and returns the first free row after the section
func (w *sheetWriter) writeSection(s ReportSection, row int) (int, error) {
	titleCell := fmt.Sprintf("A%d", row)
	if err := w.f.SetCellValue(w.sheet, titleCell, s.Title); err != nil {
		return 0, err
	}
	if err := w.f.SetCellStyle(w.sheet, titleCell, titleCell, w.sectionStyle); err != nil {
		return 0, err
	}
	row++

	color := s.HeaderColor
	if s.ExcelHeaderColor != "" {
		color = s.ExcelHeaderColor
	}
	headerStyle, err := w.headerStyle(color)
	if err != nil {
		return 0, err
	}

	for j, col := range s.Table.Columns {
		cell, _ := excelize.CoordinatesToCellName(j+1, row)
		if err := w.f.SetCellValue(w.sheet, cell, col.Header); err != nil {
			return 0, err
		}
		if err := w.f.SetCellStyle(w.sheet, cell, cell, headerStyle); err != nil {
			return 0, err
		}
	}
	row++

	firstData := row
	for i, values := range s.Table.Rows {
		for j, col := range s.Table.Columns {
			if j >= len(values) {
				break
			}
			cell, _ := excelize.CoordinatesToCellName(j+1, row)
			if err := w.f.SetCellValue(w.sheet, cell, excelCellValue(col, values[j])); err != nil {
				return 0, err
			}
		}
		if i%2 == 1 && len(s.Table.Columns) > 0 {
			first, _ := excelize.CoordinatesToCellName(1, row)
			last, _ := excelize.CoordinatesToCellName(len(s.Table.Columns), row)
			if err := w.f.SetCellStyle(w.sheet, first, last, w.altRowStyle); err != nil {
				return 0, err
			}
		}
		row++
	}
	lastData := row - 1

	next := row + 2
	if len(s.Table.Rows) == 0 {
		return next, nil
	}

	for _, chart := range s.Charts {
		anchorRow := firstData
		if chart.BelowPrevious {
			anchorRow = lastData + 3
		}
		height, err := w.addChart(chart, anchorRow, firstData, lastData, len(s.Table.Columns))
		if err != nil {
			return 0, err
		}
		if end := anchorRow + chartRows(height) + 2; end > next {
			next = end
		}
	}

	return next, nil
}

// addChart anchors a chart bound to the data rows of its section and
// returns its height in pixels. The series is named after the header cell
// of its value column.
func (w *sheetWriter) addChart(spec ChartSpec, anchorRow, firstData, lastData, columns int) (uint, error) {
	catCol, err := excelize.ColumnNumberToName(spec.CategoryColumn + 1)
	if err != nil {
		return 0, err
	}
	valCol, err := excelize.ColumnNumberToName(spec.ValueColumn + 1)
	if err != nil {
		return 0, err
	}

	width, height := spec.Width, spec.Height
	if width == 0 {
		width = excelChartWidth
	}
	if height == 0 {
		height = excelChartHeight
	}

	chartType := excelize.Col
	if spec.Type == ChartLine {
		chartType = excelize.Line
	}

	chart := &excelize.Chart{
		Type: chartType,
		Series: []excelize.ChartSeries{
			{
				Name:       cellRef(w.sheet, valCol, firstData-1),
				Categories: rangeRef(w.sheet, catCol, firstData, lastData),
				Values:     rangeRef(w.sheet, valCol, firstData, lastData),
			},
		},
		Title:     []excelize.RichTextRun{{Text: spec.Title}},
		XAxis:     excelize.ChartAxis{Title: []excelize.RichTextRun{{Text: spec.XAxisTitle}}},
		YAxis:     excelize.ChartAxis{Title: []excelize.RichTextRun{{Text: spec.YAxisTitle}}, MajorGridLines: true},
		Legend:    excelize.ChartLegend{Position: "none"},
		Dimension: excelize.ChartDimension{Width: width, Height: height},
	}

	anchorCol := spec.AnchorColumn
	if anchorCol == "" {
		// one empty column right of the table
		if anchorCol, err = excelize.ColumnNumberToName(columns + 2); err != nil {
			return 0, err
		}
	}

	anchor := fmt.Sprintf("%s%d", anchorCol, anchorRow)
	if err := w.f.AddChart(w.sheet, anchor, chart); err != nil {
		return 0, fmt.Errorf("failed to add chart %q: %w", spec.Title, err)
	}
	return height, nil
}

// rangeRef builds an absolute single-column reference such as 'Sheet'!$B$7:$B$18
func rangeRef(sheet, col string, first, last int) string {
	return fmt.Sprintf("'%s'!$%s$%d:$%s$%d", sheet, col, first, col, last)
}

// cellRef builds an absolute single-cell reference such as 'Sheet'!$B$6
func cellRef(sheet, col string, row int) string {
	return fmt.Sprintf("'%s'!$%s$%d", sheet, col, row)
}

func chartRows(height uint) int {
	return int(math.Ceil(float64(height) / excelRowPixels))
}
