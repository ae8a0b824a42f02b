package repositories

import (
	"context"
	"fmt"
	"time"

	"github.com/MuhamadAgungGumelar/smartsales-dashboard-be/internal/core/analytics"
	"github.com/MuhamadAgungGumelar/smartsales-dashboard-be/internal/modules/reports/models"
	"gorm.io/gorm"
)

// MonthlyHistory is the number of months in the ventas_mensuales series
const MonthlyHistory = 12

// StatsRepo produces the dashboard-statistics payload in the shape the
// dashboard endpoint serves it
type StatsRepo interface {
	DashboardPayload(ctx context.Context, now time.Time) (map[string]interface{}, error)
}

type statsRepo struct {
	db         *gorm.DB
	aggregator *analytics.Aggregator
}

func NewStatsRepo(db *gorm.DB) StatsRepo {
	return &statsRepo{
		db:         db,
		aggregator: analytics.NewAggregator(db),
	}
}

// metricPair is a current-period value and the previous period's value
type metricPair struct {
	current  float64
	previous float64
}

// dashboardSnapshot holds the raw numbers behind the payload
type dashboardSnapshot struct {
	revenue       metricPair
	orders        metricPair
	newCustomers  metricPair
	activeProduct float64
	monthLabels   []string
	monthValues   []float64
	topProducts   []map[string]interface{}
}

func (r *statsRepo) DashboardPayload(ctx context.Context, now time.Time) (map[string]interface{}, error) {
	snap, err := r.snapshot(ctx, now)
	if err != nil {
		return nil, err
	}
	return snap.payload(), nil
}

func (r *statsRepo) snapshot(ctx context.Context, now time.Time) (*dashboardSnapshot, error) {
	thisMonth := analytics.ThisMonthRange(now)
	lastMonth := analytics.LastMonthRange(now)
	completed := map[string]interface{}{"status": models.SaleStatusCompleted}
	sales := models.Sale{}.TableName()

	var snap dashboardSnapshot

	for _, p := range []struct {
		dr     *analytics.DateRange
		target *float64
	}{
		{thisMonth, &snap.revenue.current},
		{lastMonth, &snap.revenue.previous},
	} {
		total, err := r.aggregator.Sum(ctx, sales, "total", completed, p.dr)
		if err != nil {
			return nil, fmt.Errorf("monthly revenue: %w", err)
		}
		*p.target = total.InexactFloat64()
	}

	for _, p := range []struct {
		table  string
		field  string
		dr     *analytics.DateRange
		filter map[string]interface{}
		target *float64
	}{
		{sales, "sold_at", thisMonth, completed, &snap.orders.current},
		{sales, "sold_at", lastMonth, completed, &snap.orders.previous},
		{models.Customer{}.TableName(), "created_at", thisMonth, nil, &snap.newCustomers.current},
		{models.Customer{}.TableName(), "created_at", lastMonth, nil, &snap.newCustomers.previous},
	} {
		dr := *p.dr
		dr.Field = p.field
		count, err := r.aggregator.Count(ctx, p.table, p.filter, &dr)
		if err != nil {
			return nil, fmt.Errorf("count %s: %w", p.table, err)
		}
		*p.target = float64(count)
	}

	active, err := r.aggregator.Count(ctx, models.Product{}.TableName(),
		map[string]interface{}{"deleted_at IS NULL AND is_active = ?": true}, nil)
	if err != nil {
		return nil, fmt.Errorf("count active products: %w", err)
	}
	snap.activeProduct = float64(active)

	months := analytics.GetMonthlyRanges(now, MonthlyHistory)
	for i := range months {
		total, err := r.aggregator.Sum(ctx, sales, "total", completed, &months[i])
		if err != nil {
			return nil, fmt.Errorf("revenue for %s: %w", analytics.MonthLabel(months[i].Start), err)
		}
		snap.monthLabels = append(snap.monthLabels, analytics.MonthLabel(months[i].Start))
		snap.monthValues = append(snap.monthValues, total.InexactFloat64())
	}

	rows, err := r.aggregator.Aggregate(ctx, analytics.AggregateQuery{
		Table:   "sale_lines sl JOIN sales s ON s.id = sl.sale_id JOIN products p ON p.id = sl.product_id",
		GroupBy: []string{"p.id", "p.name"},
		Aggregates: map[string]string{
			"cantidad": "SUM(sl.quantity)",
			"total":    "SUM(sl.subtotal)",
		},
		Filters:   map[string]interface{}{"s.status": models.SaleStatusCompleted},
		DateRange: &analytics.DateRange{Start: months[0].Start, End: now, Field: "s.sold_at"},
		OrderBy:   []string{"total DESC", "p.name"},
		Limit:     analytics.TopProducts,
	})
	if err != nil {
		return nil, fmt.Errorf("top products: %w", err)
	}
	for _, row := range rows {
		snap.topProducts = append(snap.topProducts, map[string]interface{}{
			"nombre":   row["name"],
			"cantidad": row["cantidad"],
			"total":    row["total"],
		})
	}

	return &snap, nil
}

// payload renders the snapshot using the internal key convention
func (s *dashboardSnapshot) payload() map[string]interface{} {
	metric := func(m metricPair) map[string]interface{} {
		change := analytics.Round(analytics.GrowthPercent(m.current, m.previous), 1)
		return map[string]interface{}{
			"value":  m.current,
			"change": change,
			"trend":  analytics.TrendDirection(change),
		}
	}

	products := make([]interface{}, len(s.topProducts))
	for i, p := range s.topProducts {
		products[i] = p
	}

	return map[string]interface{}{
		analytics.KeySuccess: true,
		analytics.KeyStats: map[string]interface{}{
			"ventas_mes":      metric(s.revenue),
			"total_pedidos":   metric(s.orders),
			"nuevos_clientes": metric(s.newCustomers),
			"productos_activos": map[string]interface{}{
				"value":  s.activeProduct,
				"change": 0.0,
				"trend":  analytics.TrendNeutral,
			},
			analytics.KeyMonthlySales: map[string]interface{}{
				"labels": s.monthLabels,
				"values": s.monthValues,
			},
			analytics.KeyProductsTop: products,
		},
	}
}
