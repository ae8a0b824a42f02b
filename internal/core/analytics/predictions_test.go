package analytics

import (
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePredictionIDs(t *testing.T) {
	ids, err := ParsePredictionIDs(" 3, 1 ,,7")
	require.NoError(t, err)
	assert.Equal(t, []int64{3, 1, 7}, ids)

	_, err = ParsePredictionIDs("1,2,abc")
	assert.True(t, errors.Is(err, ErrInvalidPredictionIDs))

	ids, err = ParsePredictionIDs(" , ")
	require.NoError(t, err)
	assert.Empty(t, ids)
}

func prediction(id int64, day int, value string, confidence float64, category *string) PredictionRecord {
	return PredictionRecord{
		ID:             id,
		PredictedFor:   time.Date(2026, 11, day, 0, 0, 0, 0, time.UTC),
		PredictedValue: decimal.RequireFromString(value),
		Confidence:     confidence,
		Category:       category,
	}
}

func TestSummarizePredictions(t *testing.T) {
	preds := []PredictionRecord{
		prediction(1, 1, "100.50", 0.8, nil),
		prediction(2, 2, "199.50", 0.6, strPtr("Hogar")),
	}
	windows := SalesWindows{
		HistoryTotal:  decimal.NewFromInt(3000),
		LastTotal:     decimal.NewFromInt(1200),
		PreviousTotal: decimal.NewFromInt(1000),
	}

	s := SummarizePredictions(preds, windows)
	assert.Equal(t, 2, s.TotalPredictions)
	assert.InDelta(t, 300.0, s.TotalPredictedValue, 1e-9)
	assert.InDelta(t, 0.7, s.AverageConfidence, 1e-9)
	assert.InDelta(t, 20.0, s.GrowthFactor, 1e-9)
	assert.InDelta(t, 1000.0, s.HistoricalMonthlyAverage, 1e-9)
	assert.InDelta(t, 1200.0, s.LastWindowSales, 1e-9)
}

func TestSummarizePredictionsEmptySetAndZeroBaseline(t *testing.T) {
	s := SummarizePredictions(nil, SalesWindows{LastTotal: decimal.NewFromInt(500)})
	assert.Zero(t, s.TotalPredictions)
	assert.Zero(t, s.AverageConfidence)
	assert.Zero(t, s.GrowthFactor)
	assert.Zero(t, s.HistoricalMonthlyAverage)
}

func TestBucketPredictionCategories(t *testing.T) {
	preds := []PredictionRecord{
		prediction(1, 1, "100", 0.5, nil),
		prediction(2, 2, "300", 0.9, strPtr("Hogar")),
		prediction(3, 3, "50", 0.7, strPtr("Hogar")),
		prediction(4, 4, "10", 1.0, strPtr("")),
	}

	buckets := BucketPredictionCategories(preds, TopCategories)
	require.Len(t, buckets, 2)

	assert.Equal(t, "Hogar", buckets[0].Category)
	assert.InDelta(t, 350.0, buckets[0].TotalPredicted, 1e-9)
	assert.Equal(t, 2, buckets[0].Count)
	assert.InDelta(t, 0.8, buckets[0].AverageConfidence, 1e-9)

	assert.Equal(t, DefaultPredictionCategory, buckets[1].Category)
	assert.Equal(t, 2, buckets[1].Count)
	assert.Equal(t, 2, DistinctPredictionCategories(preds))
}

func TestSortPredictionsChronologically(t *testing.T) {
	preds := []PredictionRecord{
		prediction(9, 20, "1", 0, nil),
		prediction(5, 3, "1", 0, nil),
		prediction(4, 3, "1", 0, nil),
	}

	sorted := SortPredictionsChronologically(preds)
	assert.Equal(t, []int64{4, 5, 9}, []int64{sorted[0].ID, sorted[1].ID, sorted[2].ID})
	assert.Equal(t, int64(9), preds[0].ID)
}
