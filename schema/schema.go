// Package schema has models, enums and shared constants for all parts of outlier.
package schema

import (
	"time"

	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// ChurnRecord counts how often each file appears in a change log.
// Iteration order is the order in which files were first seen.
type ChurnRecord struct {
	counts *orderedmap.OrderedMap[string, int]
}

// NewChurnRecord returns an empty ChurnRecord.
func NewChurnRecord() *ChurnRecord {
	return &ChurnRecord{counts: orderedmap.New[string, int]()}
}

// Increment bumps the count for path and reports whether path was new.
func (c *ChurnRecord) Increment(path string) bool {
	n, present := c.counts.Get(path)
	c.counts.Set(path, n+1)
	return !present
}

// Count returns the occurrence count of path, zero when unseen.
func (c *ChurnRecord) Count(path string) int {
	n, _ := c.counts.Get(path)
	return n
}

// Len returns the number of distinct files.
func (c *ChurnRecord) Len() int {
	return c.counts.Len()
}

// Files returns the distinct files in first-seen order.
func (c *ChurnRecord) Files() []string {
	files := make([]string, 0, c.counts.Len())
	for pair := c.counts.Oldest(); pair != nil; pair = pair.Next() {
		files = append(files, pair.Key)
	}
	return files
}

// Counts returns a copy of the counts as a plain map.
func (c *ChurnRecord) Counts() map[string]int {
	out := make(map[string]int, c.counts.Len())
	for pair := c.counts.Oldest(); pair != nil; pair = pair.Next() {
		out[pair.Key] = pair.Value
	}
	return out
}

// FileComplexity is the analyzer result for one file.
type FileComplexity struct {
	Path      string `json:"path"`
	Language  string `json:"language"`
	CCN       int    `json:"ccn"`       // Sum of the cyclomatic complexity of every function
	NLOC      int    `json:"nloc"`      // Lines holding code, excluding blanks and comments
	Functions int    `json:"functions"` // Number of functions found
}

// ComplexityRecord maps a file path to its score under one metric.
// Files that could not be analyzed are absent.
type ComplexityRecord map[string]int

// MetricPoint is a file that has both a churn count and a complexity score.
type MetricPoint struct {
	Path       string `json:"path"`
	Churn      int    `json:"churn"`
	Complexity int    `json:"complexity"`
}

// Value returns the field of p selected by role.
func (p MetricPoint) Value(role AxisRole) int {
	if role == AxisChurn {
		return p.Churn
	}
	return p.Complexity
}

// GridCoordinate is the discretized position of a MetricPoint.
type GridCoordinate struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// RankedEntry is one line of a ranked list.
type RankedEntry struct {
	Path  string `json:"path"`
	Value int    `json:"value"`
}

// RankedList is a descending list of ranked entries.
type RankedList []RankedEntry

// CorrelationSummary describes how churn and complexity move together.
type CorrelationSummary struct {
	Files          int     `json:"files"`
	Pearson        float64 `json:"pearson"`
	Spearman       float64 `json:"spearman"`
	ChurnMean      float64 `json:"churn_mean"`
	ComplexityMean float64 `json:"complexity_mean"`
	ChurnP90       float64 `json:"churn_p90"`
	ComplexityP90  float64 `json:"complexity_p90"`
}

// PlottedFile is a MetricPoint with its grid position and classification.
type PlottedFile struct {
	MetricPoint
	GridCoordinate
	Outlier bool `json:"outlier"`
}

// AnalysisResult holds everything one run produces.
type AnalysisResult struct {
	RepoPath      string              `json:"repo_path"`
	Metric        Metric              `json:"metric"`
	Since         string              `json:"since"`
	Until         string              `json:"until,omitempty"`
	TopN          int                 `json:"top"`
	FilesAnalyzed int                 `json:"files_analyzed"`
	TopChurn      RankedList          `json:"top_churn"`
	TopComplexity RankedList          `json:"top_complexity"`
	Files         []PlottedFile       `json:"files"`
	Outliers      []MetricPoint       `json:"outliers"`
	Summary       *CorrelationSummary `json:"summary,omitempty"`
	Plot          *PlotResult         `json:"-"`
	StartedAt     time.Time           `json:"started_at"`
	Duration      time.Duration       `json:"duration_ns"`
}
