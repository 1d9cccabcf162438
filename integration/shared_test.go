//go:build basic || database || integration

package integration

import (
	"bytes"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
)

var (
	// sharedOutlierPath holds the path to a shared outlier binary built once for all tests.
	sharedOutlierPath string

	// buildOnce ensures we only build the binary once.
	buildOnce sync.Once

	// buildMutex protects the shared binary path.
	buildMutex sync.Mutex

	// tempDir holds the temp directory for cleanup.
	tempDir string
)

// TestMain handles setup and cleanup for all integration tests.
func TestMain(m *testing.M) {
	code := m.Run()

	// Cleanup the shared binary after all tests
	if tempDir != "" {
		_ = os.RemoveAll(tempDir)
	}

	os.Exit(code)
}

// getOutlierBinary returns the path to the outlier binary, building it once if needed.
func getOutlierBinary() string {
	buildMutex.Lock()
	defer buildMutex.Unlock()

	buildOnce.Do(func() {
		var err error
		tempDir, err = os.MkdirTemp("", "outlier-integration-*")
		if err != nil {
			panic(fmt.Sprintf("failed to create temp dir: %v", err))
		}

		outlierPath := filepath.Join(tempDir, "outlier")
		buildCmd := exec.Command("go", "build", "-o", outlierPath, "./cmd/outlier")
		buildCmd.Dir = ".." // Build from parent directory (project root)
		if out, err := buildCmd.CombinedOutput(); err != nil {
			panic(fmt.Sprintf("failed to build outlier: %v\n%s", err, out))
		}

		sharedOutlierPath = outlierPath
	})

	return sharedOutlierPath
}

// runOutlier runs the binary in dir and returns its stdout.
func runOutlier(t *testing.T, dir string, env []string, args ...string) (string, error) {
	t.Helper()
	cmd := exec.Command(getOutlierBinary(), args...)
	cmd.Dir = dir
	cmd.Env = append(os.Environ(), env...)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		t.Logf("Command failed: %s\nStderr: %s", cmd.String(), stderr.String())
		return stdout.String(), err
	}
	return stdout.String(), nil
}

// newFixtureRepo creates a git repository with a few commits of Go and Python files.
// big.go changes in every commit and grows the most.
func newFixtureRepo(t *testing.T) string {
	t.Helper()
	if _, err := exec.LookPath("git"); err != nil {
		t.Skip("git not available")
	}
	dir := t.TempDir()
	git := func(args ...string) {
		cmd := exec.Command("git", args...)
		cmd.Dir = dir
		cmd.Env = append(os.Environ(),
			"GIT_AUTHOR_NAME=outlier", "GIT_AUTHOR_EMAIL=outlier@example.com",
			"GIT_COMMITTER_NAME=outlier", "GIT_COMMITTER_EMAIL=outlier@example.com",
		)
		out, err := cmd.CombinedOutput()
		require.NoError(t, err, string(out))
	}
	write := func(name, content string) {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
	}

	git("init", "-q")
	body := "package main\n\nfunc f(x int) int {\n"
	for i := range 4 {
		body += fmt.Sprintf("\tif x > %d {\n\t\tx--\n\t}\n", i)
		write("big.go", body+"\treturn x\n}\n")
		if i == 0 {
			write("small.go", "package main\n")
			write("tool.py", "def main():\n    return 1\n")
		}
		if i == 2 {
			write("tool.py", "def main():\n    return 2\n")
		}
		git("add", "-A")
		git("commit", "-q", "-m", fmt.Sprintf("change %d", i))
	}
	return dir
}

// gitCommitCount counts the non-merge commits that touched file.
func gitCommitCount(t *testing.T, dir, file string) int {
	t.Helper()
	out, err := exec.Command("git", "-C", dir, "log", "--no-merges", "--oneline", "--", file).Output()
	require.NoError(t, err)
	trimmed := strings.TrimSpace(string(out))
	if trimmed == "" {
		return 0
	}
	return len(strings.Split(trimmed, "\n"))
}
