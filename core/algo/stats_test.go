package algo

import (
	"testing"

	"github.com/huangsam/outlier/schema"
	"github.com/stretchr/testify/assert"
)

func TestSummarize(t *testing.T) {
	t.Run("perfectly correlated", func(t *testing.T) {
		points := []schema.MetricPoint{
			{Path: "a", Churn: 1, Complexity: 2},
			{Path: "b", Churn: 2, Complexity: 4},
			{Path: "c", Churn: 3, Complexity: 6},
		}
		s := Summarize(points)
		assert.Equal(t, 3, s.Files)
		assert.InDelta(t, 1.0, s.Pearson, 1e-9)
		assert.InDelta(t, 1.0, s.Spearman, 1e-9)
		assert.InDelta(t, 2.0, s.ChurnMean, 1e-9)
		assert.InDelta(t, 4.0, s.ComplexityMean, 1e-9)
	})

	t.Run("constant axis is reported as zero", func(t *testing.T) {
		points := []schema.MetricPoint{
			{Path: "a", Churn: 1, Complexity: 0},
			{Path: "b", Churn: 5, Complexity: 0},
		}
		s := Summarize(points)
		assert.Zero(t, s.Pearson)
		assert.Zero(t, s.Spearman)
	})

	t.Run("empty", func(t *testing.T) {
		s := Summarize(nil)
		assert.Equal(t, &schema.CorrelationSummary{}, s)
	})
}

func TestFractionalRanks(t *testing.T) {
	assert.Equal(t, []float64{1, 2.5, 2.5, 4}, fractionalRanks([]float64{1, 5, 5, 9}))
	assert.Equal(t, []float64{3, 1, 2}, fractionalRanks([]float64{30, 10, 20}))
}
