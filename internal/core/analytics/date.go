package analytics

import "time"

// Fixed trend windows
const (
	HistoryDays = 90
	WindowDays  = 30
)

// MonthStart returns midnight of the first day of now's month
func MonthStart(now time.Time) time.Time {
	return time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
}

// PreviousMonthStart returns midnight of the first day of the month before now's
func PreviousMonthStart(now time.Time) time.Time {
	return MonthStart(now).AddDate(0, -1, 0)
}

// ThisMonthRange covers the current month up to now
func ThisMonthRange(now time.Time) *DateRange {
	return &DateRange{Start: MonthStart(now), End: now, Field: "sold_at"}
}

// LastMonthRange covers the whole previous calendar month
func LastMonthRange(now time.Time) *DateRange {
	return &DateRange{Start: PreviousMonthStart(now), End: MonthStart(now), Field: "sold_at"}
}

// TrendWindows holds the windows used by the prediction growth factor
type TrendWindows struct {
	HistoryStart time.Time // now - 90 days
	Last         DateRange // [now-30d, now)
	Previous     DateRange // [now-60d, now-30d)
}

// GetTrendWindows computes the 90-day history start and the two adjacent
// 30-day windows ending at now
func GetTrendWindows(now time.Time) TrendWindows {
	lastStart := now.AddDate(0, 0, -WindowDays)
	prevStart := lastStart.AddDate(0, 0, -WindowDays)

	return TrendWindows{
		HistoryStart: now.AddDate(0, 0, -HistoryDays),
		Last:         DateRange{Start: lastStart, End: now, Field: "sold_at"},
		Previous:     DateRange{Start: prevStart, End: lastStart, Field: "sold_at"},
	}
}

// GetMonthlyRanges returns one range per calendar month for the last
// `months` months including the current (partial) month, oldest first
func GetMonthlyRanges(now time.Time, months int) []DateRange {
	if months <= 0 {
		return nil
	}

	ranges := make([]DateRange, 0, months)
	current := MonthStart(now).AddDate(0, -(months - 1), 0)

	for i := 0; i < months; i++ {
		monthEnd := current.AddDate(0, 1, 0)
		if monthEnd.After(now) {
			monthEnd = now
		}

		ranges = append(ranges, DateRange{
			Start: current,
			End:   monthEnd,
			Field: "sold_at",
		})

		current = current.AddDate(0, 1, 0)
	}

	return ranges
}

var shortMonths = [...]string{"Ene", "Feb", "Mar", "Abr", "May", "Jun", "Jul", "Ago", "Sep", "Oct", "Nov", "Dic"}

// MonthLabel renders a month as "Ene 2026"
func MonthLabel(t time.Time) string {
	return shortMonths[t.Month()-1] + " " + t.Format("2006")
}
