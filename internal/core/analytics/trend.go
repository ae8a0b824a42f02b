package analytics

import "math"

// Trend directions reported with headline metrics
const (
	TrendUp      = "up"
	TrendDown    = "down"
	TrendNeutral = "neutral"
)

// GrowthPercent returns the relative change from previous to current in
// percent. A zero baseline yields 0 regardless of current.
func GrowthPercent(current, previous float64) float64 {
	if previous == 0 {
		return 0
	}
	return (current - previous) / previous * 100
}

// TrendDirection maps a change to up/down/neutral
func TrendDirection(change float64) string {
	switch {
	case change > 0:
		return TrendUp
	case change < 0:
		return TrendDown
	default:
		return TrendNeutral
	}
}

// TrendArrow maps a change to ↑, ↓ or →
func TrendArrow(change float64) string {
	switch {
	case change > 0:
		return "↑"
	case change < 0:
		return "↓"
	default:
		return "→"
	}
}

// MonthlySeries pairs labels with values in order and computes the
// month-over-month growth of every point after the first. Labels without a
// matching value are dropped.
func MonthlySeries(labels []string, values []float64) []MonthlySeriesPoint {
	n := len(labels)
	if len(values) < n {
		n = len(values)
	}

	points := make([]MonthlySeriesPoint, n)
	for i := 0; i < n; i++ {
		points[i] = MonthlySeriesPoint{Label: labels[i], Value: values[i]}
		if i > 0 {
			points[i].Growth = GrowthPercent(values[i], values[i-1])
			points[i].HasGrowth = true
		}
	}
	return points
}

// HasActivity reports whether any point of the series is non-zero
func HasActivity(points []MonthlySeriesPoint) bool {
	for _, p := range points {
		if p.Value != 0 {
			return true
		}
	}
	return false
}

// NewHeadlineMetric builds a headline row comparing current against previous
func NewHeadlineMetric(key, label string, current, previous float64, money bool) HeadlineMetric {
	change := GrowthPercent(current, previous)
	return HeadlineMetric{
		Key:    key,
		Label:  label,
		Value:  current,
		Change: change,
		Trend:  TrendDirection(change),
		Money:  money,
	}
}

// Round rounds v to the given number of decimals
func Round(v float64, decimals int) float64 {
	p := math.Pow(10, float64(decimals))
	return math.Round(v*p) / p
}
