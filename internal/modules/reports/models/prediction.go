package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
)

// SalesPrediction is a forecast row written by the forecasting service
type SalesPrediction struct {
	ID             int64           `gorm:"primaryKey;autoIncrement" json:"id"`
	PredictedFor   time.Time       `gorm:"type:date;not null;index" json:"predicted_for"`
	PredictedValue decimal.Decimal `gorm:"type:decimal(14,2);not null" json:"predicted_value"`
	Confidence     float64         `gorm:"type:double precision;not null;default:0" json:"confidence"` // 0..1
	CategoryID     *uuid.UUID      `gorm:"type:uuid" json:"category_id,omitempty"`
	Category       *Category       `gorm:"foreignKey:CategoryID" json:"category,omitempty"`
	ModelID        *int64          `json:"model_id,omitempty"`
	CreatedAt      time.Time       `gorm:"autoCreateTime" json:"created_at"`
}

// TableName specifies the table name
func (SalesPrediction) TableName() string {
	return "sales_predictions"
}

// PredictionModel describes a trained forecasting model. Quality metrics are
// kept as JSON because each training run reports a different set.
type PredictionModel struct {
	ID        int64          `gorm:"primaryKey;autoIncrement" json:"id"`
	Name      string         `gorm:"type:text;not null" json:"name"`
	Version   string         `gorm:"type:text;not null" json:"version"`
	Status    string         `gorm:"type:text;not null;default:'training'" json:"status"`
	IsActive  bool           `gorm:"type:boolean;default:false;index" json:"is_active"`
	Metrics   datatypes.JSON `gorm:"type:jsonb" json:"metrics"`
	TrainedAt *time.Time     `json:"trained_at,omitempty"`
	CreatedAt time.Time      `gorm:"autoCreateTime" json:"created_at"`
}

// TableName specifies the table name
func (PredictionModel) TableName() string {
	return "prediction_models"
}

// ModelMetrics is the shape stored in PredictionModel.Metrics
type ModelMetrics struct {
	R2Score         *float64 `json:"r2_score,omitempty"`
	TrainingRecords *int64   `json:"training_records,omitempty"`
	MAE             *float64 `json:"mae,omitempty"`
}
