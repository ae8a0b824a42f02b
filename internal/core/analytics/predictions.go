package analytics

import (
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// DefaultPredictionCategory labels predictions that have no category
const DefaultPredictionCategory = "General"

// ErrInvalidPredictionIDs is returned when an id list contains a non-numeric token
var ErrInvalidPredictionIDs = errors.New("invalid prediction id list")

// ParsePredictionIDs parses a comma-separated id list. Blank tokens are
// skipped; any other token that is not an integer fails the whole list.
func ParsePredictionIDs(raw string) ([]int64, error) {
	var ids []int64
	for _, token := range strings.Split(raw, ",") {
		token = strings.TrimSpace(token)
		if token == "" {
			continue
		}
		id, err := strconv.ParseInt(token, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("%w: %q", ErrInvalidPredictionIDs, token)
		}
		ids = append(ids, id)
	}
	return ids, nil
}

// SalesWindows carries the completed-sales totals used to cross-check a
// prediction set against actuals
type SalesWindows struct {
	HistoryTotal  decimal.Decimal // last 90 days
	LastTotal     decimal.Decimal // last 30 days
	PreviousTotal decimal.Decimal // the 30 days before that
}

// SummarizePredictions totals the prediction set and derives the growth
// factor from real sales, never from the predictions themselves
func SummarizePredictions(preds []PredictionRecord, windows SalesWindows) PredictionSummary {
	total := decimal.Zero
	confidence := 0.0
	for _, p := range preds {
		total = total.Add(p.PredictedValue)
		confidence += p.Confidence
	}

	avgConfidence := 0.0
	if len(preds) > 0 {
		avgConfidence = confidence / float64(len(preds))
	}

	last := windows.LastTotal.InexactFloat64()
	previous := windows.PreviousTotal.InexactFloat64()
	monthlyAverage := windows.HistoryTotal.Div(decimal.NewFromInt(3)).InexactFloat64()

	return PredictionSummary{
		TotalPredictions:         len(preds),
		TotalPredictedValue:      total.InexactFloat64(),
		AverageConfidence:        avgConfidence,
		GrowthFactor:             Round(GrowthPercent(last, previous), 2),
		HistoricalMonthlyAverage: Round(monthlyAverage, 2),
		LastWindowSales:          Round(last, 2),
		PreviousWindowSales:      Round(previous, 2),
	}
}

// PredictionCategory returns the category label of a prediction
func PredictionCategory(p PredictionRecord) string {
	if p.Category == nil || *p.Category == "" {
		return DefaultPredictionCategory
	}
	return *p.Category
}

// BucketPredictionCategories groups predictions by category with summed
// value, count and mean confidence, ordered by total descending
func BucketPredictionCategories(preds []PredictionRecord, limit int) []PredictionCategoryBucket {
	type acc struct {
		total      decimal.Decimal
		count      int
		confidence float64
	}

	byName := make(map[string]*acc)
	for _, p := range preds {
		name := PredictionCategory(p)
		a, ok := byName[name]
		if !ok {
			a = &acc{total: decimal.Zero}
			byName[name] = a
		}
		a.total = a.total.Add(p.PredictedValue)
		a.count++
		a.confidence += p.Confidence
	}

	buckets := make([]PredictionCategoryBucket, 0, len(byName))
	for name, a := range byName {
		buckets = append(buckets, PredictionCategoryBucket{
			Category:          name,
			TotalPredicted:    a.total.InexactFloat64(),
			Count:             a.count,
			AverageConfidence: a.confidence / float64(a.count),
		})
	}

	sort.Slice(buckets, func(i, j int) bool {
		if buckets[i].TotalPredicted != buckets[j].TotalPredicted {
			return buckets[i].TotalPredicted > buckets[j].TotalPredicted
		}
		return buckets[i].Category < buckets[j].Category
	})

	return truncate(buckets, limit)
}

// DistinctPredictionCategories counts the categories present in a set
func DistinctPredictionCategories(preds []PredictionRecord) int {
	seen := make(map[string]struct{})
	for _, p := range preds {
		seen[PredictionCategory(p)] = struct{}{}
	}
	return len(seen)
}

// SortPredictionsChronologically returns a copy ordered by prediction date
// ascending, ties broken by id
func SortPredictionsChronologically(preds []PredictionRecord) []PredictionRecord {
	sorted := make([]PredictionRecord, len(preds))
	copy(sorted, preds)
	sort.SliceStable(sorted, func(i, j int) bool {
		if !sorted[i].PredictedFor.Equal(sorted[j].PredictedFor) {
			return sorted[i].PredictedFor.Before(sorted[j].PredictedFor)
		}
		return sorted[i].ID < sorted[j].ID
	})
	return sorted
}
