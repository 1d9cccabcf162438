package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"slices"
	"strings"
	"sync"

	"github.com/huangsam/outlier/core"
	"github.com/huangsam/outlier/internal/complexity"
	"github.com/huangsam/outlier/internal/contract"
	"github.com/huangsam/outlier/internal/outwriter"
	"github.com/huangsam/outlier/schema"
	"github.com/mark3labs/mcp-go/mcp"
)

// toolHandler holds common dependencies for MCP tool handlers.
type toolHandler struct {
	baseInput contract.ConfigRawInput
	client    contract.GitClient
	mgr       contract.HistoryManager

	mu        sync.Mutex
	providers map[schema.Metric]*complexity.Provider
}

func newToolHandler(baseInput contract.ConfigRawInput, client contract.GitClient, mgr contract.HistoryManager) *toolHandler {
	return &toolHandler{
		baseInput: baseInput,
		client:    client,
		mgr:       mgr,
		providers: make(map[schema.Metric]*complexity.Provider),
	}
}

// churnResponse is the payload of get_churn_outliers.
type churnResponse struct {
	RepoPath string            `json:"repo_path"`
	Since    string            `json:"since"`
	Until    string            `json:"until,omitempty"`
	Top      int               `json:"top"`
	Files    schema.RankedList `json:"files"`
}

// complexityResponse is the payload of get_complexity_outliers.
type complexityResponse struct {
	RepoPath      string            `json:"repo_path"`
	Metric        schema.Metric     `json:"metric"`
	Since         string            `json:"since"`
	Until         string            `json:"until,omitempty"`
	Top           int               `json:"top"`
	FilesAnalyzed int               `json:"files_analyzed"`
	Files         schema.RankedList `json:"files"`
}

// plotResponse is the payload of get_churn_vs_complexity.
type plotResponse struct {
	RepoPath string                     `json:"repo_path"`
	Metric   schema.Metric              `json:"metric"`
	Since    string                     `json:"since"`
	Until    string                     `json:"until,omitempty"`
	Plot     string                     `json:"plot"`
	Outliers []schema.PlottedFile       `json:"outliers"`
	Summary  *schema.CorrelationSummary `json:"summary,omitempty"`
}

func (h *toolHandler) handleGetChurnOutliers(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cfg, err := h.configFor(ctx, request)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("invalid parameters: %v", err)), nil
	}
	res, err := core.RunAnalysis(ctx, cfg, core.Deps{Git: h.client, Progress: io.Discard})
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("analysis failed: %v", err)), nil
	}
	return jsonResult(churnResponse{
		RepoPath: res.RepoPath,
		Since:    res.Since,
		Until:    res.Until,
		Top:      res.TopN,
		Files:    nonNil(res.TopChurn),
	})
}

func (h *toolHandler) handleGetComplexityOutliers(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	res, errResult := h.analyze(ctx, request)
	if errResult != nil {
		return errResult, nil
	}
	return jsonResult(complexityResponse{
		RepoPath:      res.RepoPath,
		Metric:        res.Metric,
		Since:         res.Since,
		Until:         res.Until,
		Top:           res.TopN,
		FilesAnalyzed: res.FilesAnalyzed,
		Files:         nonNil(res.TopComplexity),
	})
}

func (h *toolHandler) handleGetChurnVsComplexity(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	res, errResult := h.analyze(ctx, request)
	if errResult != nil {
		return errResult, nil
	}
	outliers := make([]schema.PlottedFile, 0, len(res.Outliers))
	for _, f := range res.Files {
		if f.Outlier {
			outliers = append(outliers, f)
		}
	}
	return jsonResult(plotResponse{
		RepoPath: res.RepoPath,
		Metric:   res.Metric,
		Since:    res.Since,
		Until:    res.Until,
		Plot:     outwriter.RenderPlot(res),
		Outliers: outliers,
		Summary:  res.Summary,
	})
}

func (h *toolHandler) handleGetSupportedLanguages(_ context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	langs := make(map[string][]string, len(schema.LanguageExtensions))
	for _, lang := range schema.AllLanguages() {
		langs[string(lang)] = schema.LanguageExtensions[lang]
	}
	return jsonResult(langs)
}

// analyze runs the full pipeline, churn and complexity, for one tool call.
// A non-nil result carries the error to hand back to the client.
func (h *toolHandler) analyze(ctx context.Context, request mcp.CallToolRequest) (*schema.AnalysisResult, *mcp.CallToolResult) {
	cfg, err := h.configFor(ctx, request)
	if err != nil {
		return nil, mcp.NewToolResultError(fmt.Sprintf("invalid parameters: %v", err))
	}
	provider, err := h.provider(cfg.Metric)
	if err != nil {
		return nil, mcp.NewToolResultError(fmt.Sprintf("complexity analysis unavailable: %v", err))
	}
	res, err := core.RunAnalysis(ctx, cfg, core.Deps{
		Git:        h.client,
		Complexity: provider,
		History:    h.mgr,
		Progress:   io.Discard,
	})
	if err != nil {
		return nil, mcp.NewToolResultError(fmt.Sprintf("analysis failed: %v", err))
	}
	return res, nil
}

// configFor validates the base input overridden by the call arguments.
func (h *toolHandler) configFor(ctx context.Context, request mcp.CallToolRequest) (*contract.Config, error) {
	input := h.baseInput
	input.Languages = slices.Clone(h.baseInput.Languages)

	if p := request.GetString("repo_path", ""); p != "" {
		input.RepoPathStr = p
	}
	if p := request.GetString("path", ""); p != "" {
		input.Filter = p
	}
	if s := request.GetString("since", ""); s != "" {
		input.Since = s
	}
	if u := request.GetString("until", ""); u != "" {
		input.Until = u
	}
	if top := request.GetInt("top", 0); top != 0 {
		input.Top = top
	}
	if l := request.GetString("languages", ""); l != "" {
		input.Languages = strings.Split(l, ",")
	}
	if m := request.GetString("metric", ""); m != "" {
		input.Metric = m
	}
	if w := request.GetInt("plot_width", 0); w != 0 {
		input.PlotWidth = w
	}
	if ht := request.GetInt("plot_height", 0); ht != 0 {
		input.PlotHeight = ht
	}

	cfg := &contract.Config{}
	if err := contract.ProcessAndValidate(ctx, cfg, h.client, &input); err != nil {
		return nil, err
	}
	return cfg, nil
}

// provider returns the cached complexity provider for metric, creating it on first use.
func (h *toolHandler) provider(metric schema.Metric) (*complexity.Provider, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if p, ok := h.providers[metric]; ok {
		return p, nil
	}
	p, err := complexity.NewProvider(metric, complexity.WithCache(complexityCacheSize))
	if err != nil {
		return nil, err
	}
	h.providers[metric] = p
	return p, nil
}

func jsonResult(data any) (*mcp.CallToolResult, error) {
	jsonData, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to encode result: %v", err)), nil
	}
	return mcp.NewToolResultText(string(jsonData)), nil
}

func nonNil(list schema.RankedList) schema.RankedList {
	if list == nil {
		return schema.RankedList{}
	}
	return list
}
