package repositories

import (
	"context"
	"fmt"
	"time"

	"github.com/MuhamadAgungGumelar/smartsales-dashboard-be/internal/core/analytics"
	"github.com/MuhamadAgungGumelar/smartsales-dashboard-be/internal/modules/reports/models"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// SalesRepo reads completed sales for the reports. All reads are scoped to
// status "completed".
type SalesRepo interface {
	GetCompletedLinesSince(ctx context.Context, since time.Time) ([]analytics.SaleLineRecord, error)
	GetCompletedSalesSince(ctx context.Context, since time.Time) ([]analytics.SaleRecord, error)
	SumCompleted(ctx context.Context, dr analytics.DateRange) (decimal.Decimal, error)
}

type salesRepo struct {
	db         *gorm.DB
	aggregator *analytics.Aggregator
}

func NewSalesRepo(db *gorm.DB) SalesRepo {
	return &salesRepo{
		db:         db,
		aggregator: analytics.NewAggregator(db),
	}
}

func (r *salesRepo) GetCompletedLinesSince(ctx context.Context, since time.Time) ([]analytics.SaleLineRecord, error) {
	var lines []analytics.SaleLineRecord
	err := r.db.WithContext(ctx).
		Table(models.SaleLine{}.TableName()+" sl").
		Select("sl.sale_id, sl.product_id, p.name AS product_name, c.name AS category_name, sl.quantity, sl.unit_price, sl.subtotal").
		Joins("JOIN sales s ON s.id = sl.sale_id").
		Joins("JOIN products p ON p.id = sl.product_id").
		Joins("LEFT JOIN categories c ON c.id = p.category_id").
		Where("s.status = ? AND s.sold_at >= ?", models.SaleStatusCompleted, since).
		Order("s.sold_at, sl.id").
		Scan(&lines).Error
	if err != nil {
		return nil, fmt.Errorf("load completed sale lines: %w", err)
	}
	return lines, nil
}

func (r *salesRepo) GetCompletedSalesSince(ctx context.Context, since time.Time) ([]analytics.SaleRecord, error) {
	var sales []analytics.SaleRecord
	err := r.db.WithContext(ctx).
		Table(models.Sale{}.TableName()+" s").
		Select(`s.id, s.sold_at, s.status, s.total, COALESCE(s.payment_method, '') AS payment_method, s.customer_id,
			COALESCE(cu.first_name, '') AS customer_first_name,
			COALESCE(cu.last_name, '') AS customer_last_name,
			COALESCE(cu.email, '') AS customer_email`).
		Joins("LEFT JOIN customers cu ON cu.id = s.customer_id").
		Where("s.status = ? AND s.sold_at >= ?", models.SaleStatusCompleted, since).
		Order("s.sold_at, s.id").
		Scan(&sales).Error
	if err != nil {
		return nil, fmt.Errorf("load completed sales: %w", err)
	}
	return sales, nil
}

// SumCompleted totals completed sales inside the half-open range
func (r *salesRepo) SumCompleted(ctx context.Context, dr analytics.DateRange) (decimal.Decimal, error) {
	if dr.Field == "" {
		dr.Field = "sold_at"
	}
	return r.aggregator.Sum(ctx, models.Sale{}.TableName(), "total",
		map[string]interface{}{"status": models.SaleStatusCompleted}, &dr)
}
