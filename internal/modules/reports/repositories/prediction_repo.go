package repositories

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/MuhamadAgungGumelar/smartsales-dashboard-be/internal/core/analytics"
	"github.com/MuhamadAgungGumelar/smartsales-dashboard-be/internal/modules/reports/models"
	"github.com/lib/pq"
	"gorm.io/gorm"
)

// PredictionRepo reads forecast rows and the active model descriptor
type PredictionRepo interface {
	GetByIDs(ctx context.Context, ids []int64) ([]analytics.PredictionRecord, error)
	GetRecent(ctx context.Context, limit int) ([]analytics.PredictionRecord, error)
	GetActiveModel(ctx context.Context) (*analytics.ModelDescriptor, error)
}

type predictionRepo struct {
	db *gorm.DB
}

func NewPredictionRepo(db *gorm.DB) PredictionRepo {
	return &predictionRepo{db: db}
}

func (r *predictionRepo) base(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).
		Table(models.SalesPrediction{}.TableName()+" sp").
		Select("sp.id, sp.predicted_for, sp.predicted_value, sp.confidence, c.name AS category").
		Joins("LEFT JOIN categories c ON c.id = sp.category_id").
		Order("sp.predicted_for DESC, sp.id DESC")
}

// GetByIDs returns the predictions with the given ids; unknown ids are ignored
func (r *predictionRepo) GetByIDs(ctx context.Context, ids []int64) ([]analytics.PredictionRecord, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	var preds []analytics.PredictionRecord
	if err := r.base(ctx).Where("sp.id = ANY(?)", pq.Array(ids)).Scan(&preds).Error; err != nil {
		return nil, fmt.Errorf("load predictions by id: %w", err)
	}
	return preds, nil
}

// GetRecent returns the most recent predictions by prediction date
func (r *predictionRepo) GetRecent(ctx context.Context, limit int) ([]analytics.PredictionRecord, error) {
	query := r.base(ctx)
	if limit > 0 {
		query = query.Limit(limit)
	}

	var preds []analytics.PredictionRecord
	if err := query.Scan(&preds).Error; err != nil {
		return nil, fmt.Errorf("load recent predictions: %w", err)
	}
	return preds, nil
}

// GetActiveModel returns the active model, or nil when none is active
func (r *predictionRepo) GetActiveModel(ctx context.Context) (*analytics.ModelDescriptor, error) {
	var model models.PredictionModel
	err := r.db.WithContext(ctx).
		Where("is_active = ?", true).
		Order("trained_at DESC NULLS LAST, id DESC").
		First(&model).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load active model: %w", err)
	}

	return describeModel(model)
}

// describeModel maps a model row to its descriptor, decoding the metrics blob
func describeModel(model models.PredictionModel) (*analytics.ModelDescriptor, error) {
	desc := &analytics.ModelDescriptor{
		Name:    model.Name,
		Version: model.Version,
		Status:  model.Status,
	}

	if len(model.Metrics) == 0 {
		return desc, nil
	}

	var metrics models.ModelMetrics
	if err := json.Unmarshal(model.Metrics, &metrics); err != nil {
		return nil, fmt.Errorf("decode metrics of model %d: %w", model.ID, err)
	}
	desc.QualityScore = metrics.R2Score
	desc.TrainingRecords = metrics.TrainingRecords

	return desc, nil
}
