// Package algo has the ranking, correlation and plotting algorithms.
package algo

import (
	"github.com/huangsam/outlier/schema"
)

// Correlate joins churn and complexity for the given files. A file ends up in
// the result only if it has both a churn count and a complexity score; the
// result follows the order of files and lists each path once.
func Correlate(churn map[string]int, complexity schema.ComplexityRecord, files []string) []schema.MetricPoint {
	points := make([]schema.MetricPoint, 0, len(files))
	seen := make(map[string]struct{}, len(files))
	for _, f := range files {
		if _, dup := seen[f]; dup {
			continue
		}
		c, ok := churn[f]
		if !ok {
			continue
		}
		score, ok := complexity[f]
		if !ok {
			continue
		}
		seen[f] = struct{}{}
		points = append(points, schema.MetricPoint{Path: f, Churn: c, Complexity: score})
	}
	return points
}
