//go:build integration

// Package integration contains integration tests for outlier.
// These tests are excluded from normal test runs due to build tags.
// To run these tests: go test -tags integration ./integration
package integration

import (
	"encoding/json"
	"os/exec"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type jsonReport struct {
	Metric        string `json:"metric"`
	FilesAnalyzed int    `json:"files_analyzed"`
	TopChurn      []struct {
		Path  string `json:"path"`
		Value int    `json:"value"`
	} `json:"top_churn"`
	Outliers []struct {
		Path string `json:"path"`
	} `json:"outliers"`
}

// TestChurnVerification cross-checks churn counts against git log.
func TestChurnVerification(t *testing.T) {
	dir := newFixtureRepo(t)

	out, err := runOutlier(t, dir, nil, "churn", "--since", "10 years ago", "--output", "json")
	require.NoError(t, err)

	var report jsonReport
	require.NoError(t, json.Unmarshal([]byte(out), &report))
	require.NotEmpty(t, report.TopChurn)
	assert.Equal(t, "big.go", report.TopChurn[0].Path)

	for _, entry := range report.TopChurn {
		t.Run(entry.Path, func(t *testing.T) {
			assert.Equal(t, gitCommitCount(t, dir, entry.Path), entry.Value, "commit count mismatch for %s", entry.Path)
		})
	}
}

// TestTextReport runs the default report on the fixture repo.
func TestTextReport(t *testing.T) {
	dir := newFixtureRepo(t)

	out, err := runOutlier(t, dir, nil, "-m", "NLOC", "-l", "go", "--since", "10 years ago")
	require.NoError(t, err)
	assert.Contains(t, out, "=  Churn outliers")
	assert.Contains(t, out, "Complexity(NLOC)")
	assert.Contains(t, out, "big.go")
	assert.NotContains(t, out, "tool.py")
	assert.True(t, strings.HasSuffix(out, strings.Repeat("=", 99)+"\n"))
}

// TestNotAGitRepository checks the exit status git itself uses.
func TestNotAGitRepository(t *testing.T) {
	_, err := runOutlier(t, t.TempDir(), nil, "churn")
	require.Error(t, err)
	var exitErr *exec.ExitError
	require.ErrorAs(t, err, &exitErr)
	assert.Equal(t, 128, exitErr.ExitCode())
}

// TestExternalRepoVerification clones a small public repo and runs verification.
func TestExternalRepoVerification(t *testing.T) {
	testRepoURL := "https://github.com/mitchellh/go-homedir"
	dir := t.TempDir()

	if err := exec.Command("git", "clone", "-q", testRepoURL, dir).Run(); err != nil {
		t.Skipf("failed to clone test repo: %v", err)
	}

	out, err := runOutlier(t, dir, nil, "-m", "NLOC", "--since", "2000-01-01", "--output", "json")
	require.NoError(t, err)

	var report jsonReport
	require.NoError(t, json.Unmarshal([]byte(out), &report))
	assert.Equal(t, "NLOC", report.Metric)
	for _, entry := range report.TopChurn {
		t.Run(entry.Path, func(t *testing.T) {
			assert.Equal(t, gitCommitCount(t, dir, entry.Path), entry.Value, "commit count mismatch for %s", entry.Path)
		})
	}
}
