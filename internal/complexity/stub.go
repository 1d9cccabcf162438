//go:build !cgo

package complexity

import (
	"context"

	"github.com/huangsam/outlier/schema"
)

// Analyzer computes complexity metrics for source files.
// This is a stub implementation for non-CGO builds.
type Analyzer struct{}

// NewAnalyzer creates a new complexity analyzer.
func NewAnalyzer() *Analyzer {
	return &Analyzer{}
}

// IsAvailable returns false when CGO is disabled.
func IsAvailable() bool {
	return false
}

// Supports reports false for every language.
func (a *Analyzer) Supports(schema.Language) bool {
	return false
}

// AnalyzeSource always fails with ErrNoCGO.
func (a *Analyzer) AnalyzeSource(context.Context, []byte, schema.Language) (Result, error) {
	return Result{}, ErrNoCGO
}
