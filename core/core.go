// Package core has core logic for churn and complexity analysis.
package core

import (
	"context"
	"os"

	"github.com/huangsam/outlier/internal/complexity"
	"github.com/huangsam/outlier/internal/contract"
	"github.com/huangsam/outlier/internal/outwriter"
)

// ExecutorFunc defines the function signature for executing different report modes.
type ExecutorFunc func(ctx context.Context, cfg *contract.Config, mgr contract.HistoryManager) error

// ExecuteReport runs the full analysis and prints every section.
// It serves as the main entry point of the root command.
func ExecuteReport(ctx context.Context, cfg *contract.Config, mgr contract.HistoryManager) error {
	return execute(ctx, cfg, mgr, outwriter.AllSections)
}

// ExecuteChurn prints the files with the most churn.
func ExecuteChurn(ctx context.Context, cfg *contract.Config, mgr contract.HistoryManager) error {
	return execute(ctx, cfg, mgr, outwriter.ChurnSection)
}

// ExecuteComplexity prints the most complex files among those that changed.
func ExecuteComplexity(ctx context.Context, cfg *contract.Config, mgr contract.HistoryManager) error {
	return execute(ctx, cfg, mgr, outwriter.ComplexitySection)
}

// ExecutePlot prints the churn vs complexity plot and its outliers.
func ExecutePlot(ctx context.Context, cfg *contract.Config, mgr contract.HistoryManager) error {
	return execute(ctx, cfg, mgr, outwriter.PlotSection)
}

func execute(ctx context.Context, cfg *contract.Config, mgr contract.HistoryManager, sections outwriter.Section) error {
	deps := Deps{
		Git:      contract.NewGitClient(cfg.GitBackend),
		History:  mgr,
		Progress: os.Stderr,
	}
	if sections.NeedsComplexity() {
		provider, err := complexity.NewProvider(cfg.Metric)
		if err != nil {
			return err
		}
		deps.Complexity = provider
	}

	res, err := RunAnalysis(ctx, cfg, deps)
	if err != nil {
		return err
	}
	return outwriter.NewOutWriter().WriteReport(res, cfg, sections)
}
