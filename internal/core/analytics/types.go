package analytics

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// SaleStatusCompleted is the only status counted toward revenue
const SaleStatusCompleted = "completed"

// Truncation caps applied to ranked sections
const (
	TopCategories = 10
	TopCustomers  = 10
	TopProducts   = 15
	// RecentPredictions is the default prediction selection size
	RecentPredictions = 100
)

// SaleRecord is a flat sale row joined with its customer
type SaleRecord struct {
	ID                uuid.UUID
	SoldAt            time.Time
	Status            string
	Total             decimal.Decimal
	PaymentMethod     string
	CustomerID        *uuid.UUID
	CustomerFirstName string
	CustomerLastName  string
	CustomerEmail     string
}

// SaleLineRecord is a flat sale line row joined with product and category
type SaleLineRecord struct {
	SaleID       uuid.UUID
	ProductID    uuid.UUID
	ProductName  string
	CategoryName *string
	Quantity     int
	UnitPrice    decimal.Decimal
	Subtotal     decimal.Decimal
}

// CategoryBucket aggregates completed sale lines of one category
type CategoryBucket struct {
	Category      string
	TotalRevenue  decimal.Decimal
	TotalQuantity int
	SaleCount     int
}

// CustomerBucket aggregates completed sales of one customer
type CustomerBucket struct {
	CustomerID    uuid.UUID
	Name          string
	Email         string
	TotalSpend    decimal.Decimal
	PurchaseCount int
}

// ProductPerformance is the canonical product entry after normalization
type ProductPerformance struct {
	Name    string
	Units   int64
	Revenue float64
}

// ProductRankEntry is a ranked product with its derived average
type ProductRankEntry struct {
	Rank           int
	Name           string
	Units          int64
	Revenue        float64
	AveragePerUnit float64
}

// MonthlySeriesPoint is one month of revenue. Growth is only meaningful
// when HasGrowth is set (every point but the first).
type MonthlySeriesPoint struct {
	Label     string
	Value     float64
	Growth    float64
	HasGrowth bool
}

// HeadlineMetric is one row of the headline statistics table
type HeadlineMetric struct {
	Key    string
	Label  string
	Value  float64
	Change float64
	Trend  string
	Money  bool
}

// DashboardData is the canonical shape of the dashboard-statistics payload
type DashboardData struct {
	HasStats bool
	Headline []HeadlineMetric
	Monthly  []MonthlySeriesPoint
	Products []ProductPerformance
}

// PredictionRecord is a forecast row produced by the forecasting collaborator
type PredictionRecord struct {
	ID             int64
	PredictedFor   time.Time
	PredictedValue decimal.Decimal
	Confidence     float64 // fraction 0..1
	Category       *string
}

// PredictionSummary cross-checks a prediction set against real sales
type PredictionSummary struct {
	TotalPredictions         int
	TotalPredictedValue      float64
	AverageConfidence        float64
	GrowthFactor             float64
	HistoricalMonthlyAverage float64
	LastWindowSales          float64
	PreviousWindowSales      float64
}

// PredictionCategoryBucket groups predictions by category ("General" when none)
type PredictionCategoryBucket struct {
	Category          string
	TotalPredicted    float64
	Count             int
	AverageConfidence float64
}

// ModelDescriptor describes the forecasting model behind a prediction set
type ModelDescriptor struct {
	Name            string
	Version         string
	Status          string
	QualityScore    *float64
	TrainingRecords *int64
}

// DateRange represents a time period for filtering
type DateRange struct {
	Start time.Time
	End   time.Time
	Field string // Date field to filter on (e.g., "sold_at")
}

// AggregateQuery represents a generic database aggregation query
type AggregateQuery struct {
	Table      string                 // Table or JOIN clause
	GroupBy    []string               // GROUP BY columns
	Aggregates map[string]string      // Aggregate functions: {"total": "SUM(total)", "count": "COUNT(*)"}
	Filters    map[string]interface{} // WHERE conditions
	DateRange  *DateRange             // Date range filter
	OrderBy    []string               // ORDER BY clauses
	Limit      int                    // LIMIT (0 = no limit)
}
