package core

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/huangsam/outlier/core/agg"
	"github.com/huangsam/outlier/core/algo"
	"github.com/huangsam/outlier/internal/contract"
	"github.com/huangsam/outlier/schema"
	"golang.org/x/sync/errgroup"
)

// Deps holds the collaborators of one analysis run.
type Deps struct {
	Git        contract.GitClient
	Complexity contract.ComplexityProvider // nil skips complexity and the plot
	History    contract.HistoryManager     // nil disables archiving
	Progress   io.Writer                   // nil discards progress lines
}

// RunAnalysis fetches churn, measures complexity and correlates the two.
func RunAnalysis(ctx context.Context, cfg *contract.Config, deps Deps) (*schema.AnalysisResult, error) {
	start := time.Now()
	progress := deps.Progress
	if progress == nil {
		progress = io.Discard
	}

	// --- 1. Churn ---
	churn, err := agg.FetchChurn(ctx, cfg, deps.Git)
	_, _ = fmt.Fprintln(progress, "Retrieving git log...")
	if err != nil {
		return nil, err
	}
	files := agg.FilterFiles(cfg, churn.Files())

	res := &schema.AnalysisResult{
		RepoPath:  cfg.RepoPath,
		Metric:    cfg.Metric,
		Since:     cfg.SinceLabel(),
		Until:     cfg.UntilLabel(),
		TopN:      cfg.TopN,
		TopChurn:  algo.TopN(algo.Rank(churn.Counts()), cfg.Accepts, cfg.TopN),
		StartedAt: start,
	}
	if deps.Complexity == nil {
		res.FilesAnalyzed = len(files)
		res.Duration = time.Since(start)
		return res, nil
	}

	// --- 2. Complexity ---
	_, _ = fmt.Fprintln(progress, "Computing complexity...")
	complexity, err := collectComplexity(ctx, cfg, deps.Complexity, files)
	if err != nil {
		return nil, err
	}
	res.FilesAnalyzed = len(files)
	_, _ = fmt.Fprintf(progress, "%d files analyzed.\n", res.FilesAnalyzed)
	res.TopComplexity = algo.TopN(algo.Rank(complexity), cfg.Accepts, cfg.TopN)

	// --- 3. Correlation and plot ---
	points := algo.Correlate(churn.Counts(), complexity, files)
	plot := algo.Discretize(points, schema.AxisComplexity, schema.AxisChurn, cfg.PlotWidth, cfg.PlotHeight)
	res.Plot = plot
	res.Files = algo.Classify(points, plot)
	res.Outliers = plot.OutlierPoints
	res.Summary = algo.Summarize(points)
	res.Duration = time.Since(start)

	archiveRun(cfg, deps.History, res)
	return res, nil
}

// collectComplexity measures every file on a bounded worker pool.
// Files missing from the work tree and files the provider rejects are left out.
func collectComplexity(ctx context.Context, cfg *contract.Config, provider contract.ComplexityProvider, files []string) (schema.ComplexityRecord, error) {
	type measured struct {
		ok    bool
		value int
	}
	results := make([]measured, len(files))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(max(cfg.Workers, 1))
	for i, file := range files {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			absPath := filepath.Join(cfg.RepoPath, filepath.FromSlash(file))
			if info, err := os.Stat(absPath); err != nil || !info.Mode().IsRegular() {
				return nil
			}
			slog.Info("Analyzing " + file)
			fc, err := provider.Analyze(gctx, absPath)
			if err != nil {
				slog.Debug("Skipping file", "file", file, "error", err)
				return nil
			}
			value, err := cfg.Metric.Select(fc)
			if err != nil {
				return err
			}
			results[i] = measured{ok: true, value: value}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	record := make(schema.ComplexityRecord, len(files))
	for i, r := range results {
		if r.ok {
			record[files[i]] = r.value
		}
	}
	return record, nil
}

// archiveRun stores the run when a history backend is configured.
// Archive failures never fail the analysis.
func archiveRun(cfg *contract.Config, mgr contract.HistoryManager, res *schema.AnalysisResult) {
	if mgr == nil {
		return
	}
	store := mgr.GetRunStore()
	if store == nil {
		return
	}
	meta := schema.RunMeta{
		StartTime:  res.StartedAt,
		RepoPath:   cfg.RepoPath,
		Metric:     cfg.Metric,
		Since:      res.Since,
		Until:      res.Until,
		PlotWidth:  cfg.PlotWidth,
		PlotHeight: cfg.PlotHeight,
	}
	runID, err := store.BeginRun(meta)
	if err != nil {
		contract.LogWarn("Run archive initialization failed", err)
		return
	}
	if err := store.RecordFiles(runID, res.Files); err != nil {
		contract.LogWarn("Failed to archive run files", err)
	}
	if err := store.EndRun(runID, res.StartedAt.Add(res.Duration), len(res.Files), len(res.Outliers)); err != nil {
		contract.LogWarn("Failed to finalize run archive", err)
	}
}
