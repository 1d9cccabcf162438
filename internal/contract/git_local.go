package contract

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os/exec"
	"strings"
	"time"
)

// ErrNotGitRepository is returned when the analyzed path is not inside a Git work tree.
var ErrNotGitRepository = errors.New("not a git repository")

// GitDateFormat is the date representation passed to --since and --until.
const GitDateFormat = "2006-01-02"

// LocalGitClient implements the GitClient interface by executing the
// local 'git' binary installed on the machine.
type LocalGitClient struct{}

var _ GitClient = &LocalGitClient{} // Compile-time check

// NewLocalGitClient creates a new instance of the local Git client.
func NewLocalGitClient() *LocalGitClient {
	return &LocalGitClient{}
}

// Run executes a git command and returns its stdout output.
func (c *LocalGitClient) Run(ctx context.Context, repoPath string, args ...string) ([]byte, error) {
	fullArgs := append([]string{"-C", repoPath}, args...)
	cmd := exec.CommandContext(ctx, "git", fullArgs...)
	out, err := cmd.Output()
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		stderr := strings.TrimSpace(string(exitErr.Stderr))
		if strings.Contains(strings.ToLower(stderr), "not a git repository") {
			return nil, fmt.Errorf("%w: %q", ErrNotGitRepository, repoPath)
		}
		return nil, &GitError{Dir: repoPath, Stderr: stderr}
	} else if err != nil {
		return nil, fmt.Errorf("git command failed: %w. Ensure Git is installed and available on your PATH", err)
	}
	return out, nil
}

// GetRepoRoot implements the GitClient interface.
func (c *LocalGitClient) GetRepoRoot(ctx context.Context, contextPath string) (string, error) {
	out, err := c.Run(ctx, contextPath, "rev-parse", "--show-toplevel")
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(out)), nil
}

// GetChangeLog implements the GitClient interface.
func (c *LocalGitClient) GetChangeLog(ctx context.Context, repoPath string, since, until time.Time) ([]byte, error) {
	args := ChangeLogArgs(since, until)
	slog.Info("Git command", "args", args)
	out, err := c.Run(ctx, repoPath, args...)
	var gitErr *GitError
	if errors.As(err, &gitErr) && gitErr.NoCommits() {
		slog.Info("Repository has no commits yet")
		return []byte{}, nil
	}
	return out, err
}

// ChangeLogArgs builds the git log arguments for a churn window.
func ChangeLogArgs(since, until time.Time) []string {
	args := []string{"log", "--numstat", "--no-merges"}
	if !since.IsZero() {
		args = append(args, "--since="+since.Format(GitDateFormat))
	}
	if !until.IsZero() {
		args = append(args, "--until="+until.Format(GitDateFormat))
	}
	return append(args, "--pretty=")
}

// GitError is a git invocation that exited with a non-zero status.
type GitError struct {
	Dir    string
	Stderr string
}

// Error implements the error interface.
func (e *GitError) Error() string {
	return fmt.Sprintf("git command failed in %q: %s", e.Dir, e.Stderr)
}

// NoCommits reports whether git failed because the branch has no commits yet.
func (e *GitError) NoCommits() bool {
	return strings.Contains(strings.ToLower(e.Stderr), "does not have any commits yet")
}
