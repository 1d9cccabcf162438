// Package mcp provides the Model Context Protocol (MCP) server implementation.
package mcp

import (
	"context"

	"github.com/huangsam/outlier/internal/contract"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// complexityCacheSize bounds the per-metric file complexity cache of a server.
const complexityCacheSize = 4096

// NewMCPServer initializes and configures the outlier MCP server without starting it.
// Every tool call starts from baseInput and overrides it with the call arguments.
func NewMCPServer(baseInput contract.ConfigRawInput, client contract.GitClient, mgr contract.HistoryManager, version string) *server.MCPServer {
	s := server.NewMCPServer(
		"Outlier Analysis Server",
		version,
		server.WithLogging(),
	)

	h := newToolHandler(baseInput, client, mgr)
	window := []mcp.ToolOption{
		mcp.WithString("repo_path", mcp.Description("Path to the Git repository (defaults to current directory if not specified).")),
		mcp.WithString("path", mcp.Description("Only consider files under this repository-relative path prefix.")),
		mcp.WithString("since", mcp.Description("Start of the churn window (e.g. '6 months ago', '2024-01-31'). Defaults to 12 months ago.")),
		mcp.WithString("until", mcp.Description("End of the churn window. Defaults to now.")),
		mcp.WithNumber("top", mcp.Description("Number of files to list.")),
		mcp.WithString("languages", mcp.Description("Comma-separated languages to analyze (see get_supported_languages). Defaults to all.")),
	}
	metric := mcp.WithString("metric", mcp.Description("Complexity metric. Defaults to CCN."), mcp.Enum("CCN", "NLOC"))

	// --- 1. Tool: get_churn_outliers ---
	s.AddTool(mcp.NewTool("get_churn_outliers",
		append([]mcp.ToolOption{
			mcp.WithDescription("List the files that changed most often in the git history window."),
		}, window...)...,
	), h.handleGetChurnOutliers)

	// --- 2. Tool: get_complexity_outliers ---
	s.AddTool(mcp.NewTool("get_complexity_outliers",
		append([]mcp.ToolOption{
			mcp.WithDescription("List the most complex files among those that changed in the git history window."),
			metric,
		}, window...)...,
	), h.handleGetComplexityOutliers)

	// --- 3. Tool: get_churn_vs_complexity ---
	s.AddTool(mcp.NewTool("get_churn_vs_complexity",
		append([]mcp.ToolOption{
			mcp.WithDescription("Plot churn against complexity and report the files that score high on both, the best refactoring candidates."),
			metric,
			mcp.WithNumber("plot_width", mcp.Description("Width of the plot grid. Defaults to 70.")),
			mcp.WithNumber("plot_height", mcp.Description("Height of the plot grid. Defaults to 30.")),
		}, window...)...,
	), h.handleGetChurnVsComplexity)

	// --- 4. Tool: get_supported_languages ---
	s.AddTool(mcp.NewTool("get_supported_languages",
		mcp.WithDescription("List the languages outlier can analyze and the file endings each one claims."),
	), h.handleGetSupportedLanguages)

	return s
}

// StartMCPServer starts the outlier MCP server on stdio.
func StartMCPServer(_ context.Context, baseInput contract.ConfigRawInput, client contract.GitClient, mgr contract.HistoryManager, version string) error {
	s := NewMCPServer(baseInput, client, mgr, version)
	return server.ServeStdio(s)
}
