package algo

import (
	"math"
	"sort"

	"github.com/huangsam/outlier/schema"
	"gonum.org/v1/gonum/stat"
)

// Summarize computes correlation coefficients and distribution markers for
// the joined points. Coefficients that are undefined (fewer than two points
// or a constant axis) are reported as 0.
func Summarize(points []schema.MetricPoint) *schema.CorrelationSummary {
	summary := &schema.CorrelationSummary{Files: len(points)}
	if len(points) == 0 {
		return summary
	}

	churn := make([]float64, len(points))
	complexity := make([]float64, len(points))
	for i, p := range points {
		churn[i] = float64(p.Churn)
		complexity[i] = float64(p.Complexity)
	}

	summary.ChurnMean = stat.Mean(churn, nil)
	summary.ComplexityMean = stat.Mean(complexity, nil)
	summary.ChurnP90 = quantile(0.9, churn)
	summary.ComplexityP90 = quantile(0.9, complexity)

	if len(points) > 1 {
		summary.Pearson = finite(stat.Correlation(churn, complexity, nil))
		summary.Spearman = finite(stat.Correlation(fractionalRanks(churn), fractionalRanks(complexity), nil))
	}
	return summary
}

// quantile returns the empirical p-quantile without disturbing the input.
func quantile(p float64, values []float64) float64 {
	sorted := append([]float64(nil), values...)
	sort.Float64s(sorted)
	return stat.Quantile(p, stat.Empirical, sorted, nil)
}

// fractionalRanks assigns 1-based ranks, averaging ties.
func fractionalRanks(values []float64) []float64 {
	idx := make([]int, len(values))
	for i := range idx {
		idx[i] = i
	}
	sort.SliceStable(idx, func(a, b int) bool { return values[idx[a]] < values[idx[b]] })

	ranks := make([]float64, len(values))
	for start := 0; start < len(idx); {
		end := start + 1
		for end < len(idx) && values[idx[end]] == values[idx[start]] {
			end++
		}
		avg := float64(start+end+1) / 2
		for k := start; k < end; k++ {
			ranks[idx[k]] = avg
		}
		start = end
	}
	return ranks
}

func finite(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}
