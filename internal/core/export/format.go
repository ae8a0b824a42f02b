package export

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/dustin/go-humanize"
)

// FormatAmount renders v with a thousands separator and 2 decimals (1,234.50)
func FormatAmount(v float64) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		v = 0
	}
	return humanize.FormatFloat("#,###.##", v)
}

// FormatMoney prefixes FormatAmount with the currency literal ("Bs. 1,234.50")
func FormatMoney(prefix string, v float64) string {
	if prefix == "" {
		return FormatAmount(v)
	}
	return prefix + " " + FormatAmount(v)
}

// FormatSignedPercent renders a percentage with an explicit sign (+12.5%, -3.0%)
func FormatSignedPercent(v float64) string {
	return fmt.Sprintf("%+.1f%%", v)
}

// FormatPercent renders an unsigned percentage with one decimal (87.5%)
func FormatPercent(v float64) string {
	return fmt.Sprintf("%.1f%%", v)
}

// FormatCount renders a whole number with thousands separators
func FormatCount(v int64) string {
	return humanize.Comma(v)
}

// Truncate shortens s to at most n runes
func Truncate(s string, n int) string {
	if n <= 0 {
		return s
	}
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}

// toFloat extracts a float64 from the cell values composed for a table
func toFloat(value interface{}) float64 {
	switch v := value.(type) {
	case float64:
		return v
	case float32:
		return float64(v)
	case int:
		return float64(v)
	case int64:
		return float64(v)
	case int32:
		return float64(v)
	case string:
		f, _ := strconv.ParseFloat(v, 64)
		return f
	default:
		return 0
	}
}

// formatPDFCell renders a cell value as text for the paginated document
func formatPDFCell(col Column, value interface{}, prefix string) string {
	switch col.Kind {
	case ColumnMoney:
		return FormatMoney(prefix, toFloat(value))
	case ColumnAmount:
		return FormatAmount(toFloat(value))
	case ColumnPercent:
		return FormatPercent(toFloat(value))
	case ColumnInt:
		if s, ok := value.(string); ok {
			return s
		}
		return strconv.FormatInt(int64(math.Round(toFloat(value))), 10)
	default:
		if value == nil {
			return ""
		}
		return Truncate(fmt.Sprint(value), col.Truncate)
	}
}

// excelCellValue returns the raw value stored in the spreadsheet
func excelCellValue(col Column, value interface{}) interface{} {
	switch col.Kind {
	case ColumnMoney, ColumnAmount:
		return toFloat(value)
	case ColumnPercent:
		return math.Round(toFloat(value)*10) / 10
	default:
		return value
	}
}

// hexToRGB converts hex color to RGB values
func hexToRGB(hex string) (int, int, int) {
	hex = stripHashFromColor(hex)
	if len(hex) != 6 {
		return 255, 255, 255
	}

	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return 255, 255, 255
	}
	return int(v >> 16 & 0xFF), int(v >> 8 & 0xFF), int(v & 0xFF)
}

// stripHashFromColor removes # from hex color codes
func stripHashFromColor(color string) string {
	return strings.ToUpper(strings.TrimPrefix(color, "#"))
}
