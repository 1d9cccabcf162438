package mcp_test

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/huangsam/outlier/internal/contract"
	mcp_internal "github.com/huangsam/outlier/internal/mcp"
	"github.com/huangsam/outlier/schema"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

const testLog = "4\t0\tbig.go\n1\t0\tsmall.go\n\n" +
	"2\t2\tbig.go\n1\t0\tnotes.txt\n\n" +
	"1\t0\tbig.go\n"

func newTestServer(t *testing.T) (*server.MCPServer, string) {
	t.Helper()
	root := t.TempDir()
	big := "package main\n\n" + strings.Repeat("var x = 1\n", 12)
	files := map[string]string{
		"big.go":    big,
		"small.go":  "package main\n",
		"notes.txt": "hello\n",
	}
	for name, content := range files {
		require.NoError(t, os.WriteFile(filepath.Join(root, name), []byte(content), 0o644))
	}

	client := &contract.MockGitClient{}
	client.On("GetRepoRoot", mock.Anything, mock.Anything).Return(root, nil)
	client.On("GetChangeLog", mock.Anything, root, mock.Anything, mock.Anything).Return([]byte(testLog), nil)

	base := contract.ConfigRawInput{
		RepoPathStr: root,
		Metric:      string(schema.NLOCMetric),
		Top:         10,
		Workers:     2,
		Output:      string(schema.TextOut),
		PlotWidth:   schema.DefaultPlotWidth,
		PlotHeight:  schema.DefaultPlotHeight,
		Color:       "no",
	}
	return mcp_internal.NewMCPServer(base, client, nil, "test"), root
}

func callTool(t *testing.T, s *server.MCPServer, name string, args map[string]any) *mcp.CallToolResult {
	t.Helper()
	tool := s.GetTool(name)
	require.NotNil(t, tool, "Tool %s should exist", name)
	res, err := tool.Handler(context.Background(), mcp.CallToolRequest{
		Params: mcp.CallToolParams{Name: name, Arguments: args},
	})
	require.NoError(t, err, "The MCP handler should not return a raw error for tool logic failures")
	require.NotEmpty(t, res.Content)
	return res
}

func resultText(res *mcp.CallToolResult) string {
	return res.Content[0].(mcp.TextContent).Text
}

func TestMCPServer_GetChurnOutliers(t *testing.T) {
	s, _ := newTestServer(t)

	res := callTool(t, s, "get_churn_outliers", map[string]any{"top": 2.0})
	require.False(t, res.IsError, resultText(res))

	var payload struct {
		Top   int                  `json:"top"`
		Files []schema.RankedEntry `json:"files"`
	}
	require.NoError(t, json.Unmarshal([]byte(resultText(res)), &payload))
	assert.Equal(t, 2, payload.Top)
	assert.Equal(t, []schema.RankedEntry{{Path: "big.go", Value: 3}, {Path: "small.go", Value: 1}}, payload.Files)
}

func TestMCPServer_GetComplexityOutliers(t *testing.T) {
	s, _ := newTestServer(t)

	res := callTool(t, s, "get_complexity_outliers", map[string]any{"languages": "go"})
	require.False(t, res.IsError, resultText(res))

	var payload struct {
		Metric        schema.Metric        `json:"metric"`
		FilesAnalyzed int                  `json:"files_analyzed"`
		Files         []schema.RankedEntry `json:"files"`
	}
	require.NoError(t, json.Unmarshal([]byte(resultText(res)), &payload))
	assert.Equal(t, schema.NLOCMetric, payload.Metric)
	assert.Equal(t, 2, payload.FilesAnalyzed)
	require.Len(t, payload.Files, 2)
	assert.Equal(t, "big.go", payload.Files[0].Path)
	assert.Equal(t, "small.go", payload.Files[1].Path)
	assert.Greater(t, payload.Files[0].Value, payload.Files[1].Value)
}

func TestMCPServer_GetChurnVsComplexity(t *testing.T) {
	s, _ := newTestServer(t)

	res := callTool(t, s, "get_churn_vs_complexity", map[string]any{"plot_width": 10.0, "plot_height": 5.0})
	require.False(t, res.IsError, resultText(res))

	var payload struct {
		Plot     string               `json:"plot"`
		Outliers []schema.PlottedFile `json:"outliers"`
	}
	require.NoError(t, json.Unmarshal([]byte(resultText(res)), &payload))
	assert.Contains(t, payload.Plot, "Complexity(NLOC)")
	assert.Contains(t, payload.Plot, "Churn")
	require.Len(t, payload.Outliers, 1)
	assert.Equal(t, "big.go", payload.Outliers[0].Path)
	assert.Equal(t, schema.GridCoordinate{X: 10, Y: 5}, payload.Outliers[0].GridCoordinate)
}

func TestMCPServer_GetSupportedLanguages(t *testing.T) {
	s, _ := newTestServer(t)

	res := callTool(t, s, "get_supported_languages", nil)
	require.False(t, res.IsError)

	var langs map[string][]string
	require.NoError(t, json.Unmarshal([]byte(resultText(res)), &langs))
	assert.Len(t, langs, len(schema.LanguageExtensions))
	assert.Equal(t, []string{".go"}, langs["go"])
}

func TestMCPServerHandlers_ValidationErrors(t *testing.T) {
	s, _ := newTestServer(t)

	tests := []struct {
		name    string
		tool    string
		args    map[string]any
		wantErr string
	}{
		{"unknown metric", "get_complexity_outliers", map[string]any{"metric": "LOC"}, "unknown complexity metric"},
		{"top out of range", "get_churn_outliers", map[string]any{"top": 5000.0}, "top must be greater than 0"},
		{"bad plot size", "get_churn_vs_complexity", map[string]any{"plot_width": 100000.0}, "plot-width must be between"},
		{"unsupported language", "get_churn_outliers", map[string]any{"languages": "cobol"}, "unsupported languages: cobol"},
		{"bad since", "get_churn_outliers", map[string]any{"since": "the day before"}, "unable to parse date"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := callTool(t, s, tt.tool, tt.args)
			assert.True(t, res.IsError, "The response should indicate an error state")
			assert.Contains(t, resultText(res), "invalid parameters")
			assert.Contains(t, resultText(res), tt.wantErr)
		})
	}
}
