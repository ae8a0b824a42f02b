package repositories

import (
	"testing"

	"github.com/MuhamadAgungGumelar/smartsales-dashboard-be/internal/modules/reports/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
)

func TestDescribeModel(t *testing.T) {
	desc, err := describeModel(models.PredictionModel{
		ID:      3,
		Name:    "RandomForest",
		Version: "2.1",
		Status:  "ready",
		Metrics: datatypes.JSON(`{"r2_score": 0.912, "training_records": 15000, "mae": 12.4}`),
	})
	require.NoError(t, err)

	assert.Equal(t, "RandomForest", desc.Name)
	assert.Equal(t, "2.1", desc.Version)
	require.NotNil(t, desc.QualityScore)
	assert.InDelta(t, 0.912, *desc.QualityScore, 1e-9)
	require.NotNil(t, desc.TrainingRecords)
	assert.Equal(t, int64(15000), *desc.TrainingRecords)
}

func TestDescribeModelWithoutMetrics(t *testing.T) {
	desc, err := describeModel(models.PredictionModel{Name: "baseline", Version: "1", Status: "training"})
	require.NoError(t, err)
	assert.Nil(t, desc.QualityScore)
	assert.Nil(t, desc.TrainingRecords)
}

func TestDescribeModelRejectsBrokenMetrics(t *testing.T) {
	_, err := describeModel(models.PredictionModel{ID: 9, Metrics: datatypes.JSON(`{"r2_score": "high"`)})
	assert.Error(t, err)
}
