package analytics

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Aggregator provides generic database aggregation helpers used by the
// read-only reporting repositories
type Aggregator struct {
	db *gorm.DB
}

// NewAggregator creates a new aggregator
func NewAggregator(db *gorm.DB) *Aggregator {
	return &Aggregator{db: db}
}

// Aggregate performs a generic aggregation query
func (a *Aggregator) Aggregate(ctx context.Context, query AggregateQuery) ([]map[string]interface{}, error) {
	selectParts := []string{}

	// Add GROUP BY columns to SELECT
	selectParts = append(selectParts, query.GroupBy...)

	// Add aggregate functions to SELECT
	for alias, agg := range query.Aggregates {
		selectParts = append(selectParts, fmt.Sprintf("%s AS %s", agg, alias))
	}

	db := a.scoped(ctx, query.Table, query.Filters, query.DateRange).
		Select(strings.Join(selectParts, ", "))

	if len(query.GroupBy) > 0 {
		db = db.Group(strings.Join(query.GroupBy, ", "))
	}
	for _, order := range query.OrderBy {
		db = db.Order(order)
	}
	if query.Limit > 0 {
		db = db.Limit(query.Limit)
	}

	var results []map[string]interface{}
	if err := db.Find(&results).Error; err != nil {
		return nil, fmt.Errorf("aggregate query failed: %w", err)
	}

	return results, nil
}

// Count performs a COUNT query with filters and an optional date range
func (a *Aggregator) Count(ctx context.Context, table string, filters map[string]interface{}, dr *DateRange) (int64, error) {
	var count int64
	if err := a.scoped(ctx, table, filters, dr).Count(&count).Error; err != nil {
		return 0, fmt.Errorf("count query failed: %w", err)
	}
	return count, nil
}

// Sum performs a SUM over a monetary column. NULL sums come back as zero.
func (a *Aggregator) Sum(ctx context.Context, table, column string, filters map[string]interface{}, dr *DateRange) (decimal.Decimal, error) {
	var row struct {
		Total decimal.Decimal
	}

	err := a.scoped(ctx, table, filters, dr).
		Select(fmt.Sprintf("COALESCE(SUM(%s), 0) AS total", column)).
		Scan(&row).Error
	if err != nil {
		return decimal.Zero, fmt.Errorf("sum query failed: %w", err)
	}

	return row.Total, nil
}

// scoped applies table, WHERE filters and the half-open date range
func (a *Aggregator) scoped(ctx context.Context, table string, filters map[string]interface{}, dr *DateRange) *gorm.DB {
	db := a.db.WithContext(ctx).Table(table)

	conditions := make([]string, 0, len(filters))
	for condition := range filters {
		conditions = append(conditions, condition)
	}
	// stable SQL text for the same filters
	sort.Strings(conditions)

	for _, condition := range conditions {
		if strings.Contains(condition, "?") {
			db = db.Where(condition, filters[condition])
		} else {
			db = db.Where(fmt.Sprintf("%s = ?", condition), filters[condition])
		}
	}

	if dr != nil {
		field := dr.Field
		if field == "" {
			field = "created_at"
		}
		if !dr.Start.IsZero() {
			db = db.Where(fmt.Sprintf("%s >= ?", field), dr.Start)
		}
		if !dr.End.IsZero() {
			db = db.Where(fmt.Sprintf("%s < ?", field), dr.End)
		}
	}

	return db
}
