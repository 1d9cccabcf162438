package outwriter

import (
	"time"

	"github.com/huangsam/outlier/schema"
)

// sampleResult is a two file analysis on a 2x2 grid: a.go is an outlier at (2,2)
// and b.go sits at the origin.
func sampleResult() *schema.AnalysisResult {
	normal := schema.NewGrid(2, 2)
	outliers := schema.NewGrid(2, 2)
	normal.Insert(0, 0)
	outliers.Insert(2, 2)

	a := schema.MetricPoint{Path: "a.go", Churn: 3, Complexity: 20}
	b := schema.MetricPoint{Path: "b.go", Churn: 1, Complexity: 2}
	return &schema.AnalysisResult{
		RepoPath:      "/repo",
		Metric:        schema.CCNMetric,
		Since:         "2024-11-03",
		TopN:          2,
		FilesAnalyzed: 2,
		TopChurn:      schema.RankedList{{Path: "a.go", Value: 3}, {Path: "b.go", Value: 1}},
		TopComplexity: schema.RankedList{{Path: "a.go", Value: 20}},
		Files: []schema.PlottedFile{
			{MetricPoint: a, GridCoordinate: schema.GridCoordinate{X: 2, Y: 2}, Outlier: true},
			{MetricPoint: b, GridCoordinate: schema.GridCoordinate{X: 0, Y: 0}},
		},
		Outliers: []schema.MetricPoint{a},
		Summary:  &schema.CorrelationSummary{Files: 2, Pearson: 1, Spearman: 1, ChurnMean: 2, ComplexityMean: 11},
		Plot: &schema.PlotResult{
			XAxis:         schema.AxisComplexity,
			YAxis:         schema.AxisChurn,
			XMax:          20,
			YMax:          3,
			Normal:        normal,
			Outliers:      outliers,
			OutlierPoints: []schema.MetricPoint{a},
			Coordinates: map[string]schema.GridCoordinate{
				"a.go": {X: 2, Y: 2},
				"b.go": {X: 0, Y: 0},
			},
		},
		StartedAt: time.Date(2025, 11, 3, 12, 0, 0, 0, time.UTC),
		Duration:  150 * time.Millisecond,
	}
}
