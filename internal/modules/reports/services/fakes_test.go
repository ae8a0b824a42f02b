package services

import (
	"context"
	"time"

	"github.com/MuhamadAgungGumelar/smartsales-dashboard-be/internal/core/analytics"
	"github.com/shopspring/decimal"
)

type fakeSalesRepo struct {
	lines  []analytics.SaleLineRecord
	sales  []analytics.SaleRecord
	totals map[time.Time]decimal.Decimal
	err    error

	linesSince []time.Time
	salesSince []time.Time
	sumRanges  []analytics.DateRange
}

func (f *fakeSalesRepo) calls() int {
	return len(f.linesSince) + len(f.salesSince) + len(f.sumRanges)
}

func (f *fakeSalesRepo) GetCompletedLinesSince(_ context.Context, since time.Time) ([]analytics.SaleLineRecord, error) {
	f.linesSince = append(f.linesSince, since)
	return f.lines, f.err
}

func (f *fakeSalesRepo) GetCompletedSalesSince(_ context.Context, since time.Time) ([]analytics.SaleRecord, error) {
	f.salesSince = append(f.salesSince, since)
	return f.sales, f.err
}

func (f *fakeSalesRepo) SumCompleted(_ context.Context, dr analytics.DateRange) (decimal.Decimal, error) {
	f.sumRanges = append(f.sumRanges, dr)
	if f.err != nil {
		return decimal.Zero, f.err
	}
	return f.totals[dr.Start], nil
}

type fakePredictionRepo struct {
	recent []analytics.PredictionRecord
	byID   map[int64]analytics.PredictionRecord
	model  *analytics.ModelDescriptor
	err    error

	recentLimits []int
	requested    [][]int64
	modelCalls   int
}

func (f *fakePredictionRepo) calls() int {
	return len(f.recentLimits) + len(f.requested) + f.modelCalls
}

func (f *fakePredictionRepo) GetByIDs(_ context.Context, ids []int64) ([]analytics.PredictionRecord, error) {
	f.requested = append(f.requested, ids)
	if f.err != nil {
		return nil, f.err
	}
	var out []analytics.PredictionRecord
	for _, id := range ids {
		if p, ok := f.byID[id]; ok {
			out = append(out, p)
		}
	}
	return out, nil
}

func (f *fakePredictionRepo) GetRecent(_ context.Context, limit int) ([]analytics.PredictionRecord, error) {
	f.recentLimits = append(f.recentLimits, limit)
	return f.recent, f.err
}

func (f *fakePredictionRepo) GetActiveModel(_ context.Context) (*analytics.ModelDescriptor, error) {
	f.modelCalls++
	return f.model, nil
}

type fakeStatsRepo struct {
	payload map[string]interface{}
	err     error
	calls   int
}

func (f *fakeStatsRepo) DashboardPayload(_ context.Context, _ time.Time) (map[string]interface{}, error) {
	f.calls++
	return f.payload, f.err
}

// statsPayload mirrors what the statistics repository produces
func statsPayload(revenue float64, monthly []float64) map[string]interface{} {
	labels := make([]interface{}, len(monthly))
	values := make([]interface{}, len(monthly))
	for i, v := range monthly {
		labels[i] = time.Date(2026, time.Month(i+1), 1, 0, 0, 0, 0, time.UTC).Format("Jan 2006")
		values[i] = v
	}

	return map[string]interface{}{
		analytics.KeySuccess: true,
		analytics.KeyStats: map[string]interface{}{
			"ventas_mes":        map[string]interface{}{"value": revenue, "change": 0.0, "trend": "neutral"},
			"total_pedidos":     map[string]interface{}{"value": 0, "change": 0.0, "trend": "neutral"},
			"nuevos_clientes":   map[string]interface{}{"value": 0, "change": 0.0, "trend": "neutral"},
			"productos_activos": map[string]interface{}{"value": 4, "change": 0.0, "trend": "neutral"},
			analytics.KeyMonthlySales: map[string]interface{}{
				"labels": labels,
				"values": values,
			},
		},
	}
}

func prediction(id int64, day int, value string, confidence float64, category string) analytics.PredictionRecord {
	p := analytics.PredictionRecord{
		ID:             id,
		PredictedFor:   time.Date(2026, 11, day, 0, 0, 0, 0, time.UTC),
		PredictedValue: decimal.RequireFromString(value),
		Confidence:     confidence,
	}
	if category != "" {
		p.Category = &category
	}
	return p
}
