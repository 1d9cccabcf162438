package contract

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	gogit "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	fdiff "github.com/go-git/go-git/v5/plumbing/format/diff"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/huangsam/outlier/schema"
)

// errRawCommand is returned by GoGitClient.Run, which has no git binary behind it.
var errRawCommand = errors.New("raw git commands are not available with the go-git backend")

// GoGitClient implements the GitClient interface in-process with go-git.
// It produces change logs in the same numstat shape as the git binary,
// including "-" counts for binary files.
type GoGitClient struct{}

var _ GitClient = &GoGitClient{} // Compile-time check

// NewGoGitClient creates a new instance of the go-git client.
func NewGoGitClient() *GoGitClient {
	return &GoGitClient{}
}

// Run implements the GitClient interface.
func (c *GoGitClient) Run(_ context.Context, _ string, _ ...string) ([]byte, error) {
	return nil, errRawCommand
}

// GetRepoRoot implements the GitClient interface.
func (c *GoGitClient) GetRepoRoot(_ context.Context, contextPath string) (string, error) {
	repo, err := openRepository(contextPath)
	if err != nil {
		return "", err
	}
	wt, err := repo.Worktree()
	if err != nil {
		return "", fmt.Errorf("cannot open worktree of %q: %w", contextPath, err)
	}
	return filepath.Clean(wt.Filesystem.Root()), nil
}

// GetChangeLog implements the GitClient interface.
func (c *GoGitClient) GetChangeLog(ctx context.Context, repoPath string, since, until time.Time) ([]byte, error) {
	repo, err := openRepository(repoPath)
	if err != nil {
		return nil, err
	}

	head, err := repo.Head()
	if errors.Is(err, plumbing.ErrReferenceNotFound) {
		return []byte{}, nil
	} else if err != nil {
		return nil, fmt.Errorf("cannot resolve HEAD in %q: %w", repoPath, err)
	}

	opts := &gogit.LogOptions{From: head.Hash()}
	if !since.IsZero() {
		s := startOfDay(since)
		opts.Since = &s
	}
	if !until.IsZero() {
		u := startOfDay(until).Add(24*time.Hour - time.Nanosecond)
		opts.Until = &u
	}

	iter, err := repo.Log(opts)
	if err != nil {
		return nil, fmt.Errorf("cannot walk history of %q: %w", repoPath, err)
	}
	defer iter.Close()

	var buf bytes.Buffer
	err = iter.ForEach(func(commit *object.Commit) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		if commit.NumParents() > 1 {
			return nil
		}
		patch, err := firstParentPatch(ctx, commit)
		if err != nil {
			return fmt.Errorf("cannot diff commit %s: %w", commit.Hash, err)
		}
		var block bytes.Buffer
		for _, fp := range patch.FilePatches() {
			writeNumstat(&block, fp)
		}
		if block.Len() == 0 {
			return nil
		}
		if buf.Len() > 0 {
			buf.WriteByte('\n')
		}
		buf.Write(block.Bytes())
		return nil
	})
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// firstParentPatch diffs commit against its first parent, or against the empty tree for a root commit.
func firstParentPatch(ctx context.Context, commit *object.Commit) (*object.Patch, error) {
	to, err := commit.Tree()
	if err != nil {
		return nil, err
	}
	from := &object.Tree{}
	if commit.NumParents() > 0 {
		parent, err := commit.Parent(0)
		if err != nil {
			return nil, err
		}
		if from, err = parent.Tree(); err != nil {
			return nil, err
		}
	}
	return from.PatchContext(ctx, to)
}

// writeNumstat writes one numstat line for fp. Binary files get "-" counts like git prints.
// Patches with no content and no binary flag (submodule bumps) are skipped.
func writeNumstat(w *bytes.Buffer, fp fdiff.FilePatch) {
	from, to := fp.Files()
	var name string
	switch {
	case from == nil && to == nil:
		return
	case from == nil:
		name = to.Path()
	case to == nil:
		name = from.Path()
	case from.Path() != to.Path():
		name = from.Path() + " => " + to.Path()
	default:
		name = from.Path()
	}

	if fp.IsBinary() {
		fmt.Fprintf(w, "-\t-\t%s\n", name)
		return
	}
	chunks := fp.Chunks()
	if len(chunks) == 0 {
		return
	}
	var added, deleted int
	for _, chunk := range chunks {
		content := chunk.Content()
		if content == "" {
			continue
		}
		n := strings.Count(content, "\n")
		if !strings.HasSuffix(content, "\n") {
			n++
		}
		switch chunk.Type() {
		case fdiff.Add:
			added += n
		case fdiff.Delete:
			deleted += n
		}
	}
	fmt.Fprintf(w, "%d\t%d\t%s\n", added, deleted, name)
}

// openRepository opens the repository containing path, searching parent directories.
func openRepository(path string) (*gogit.Repository, error) {
	repo, err := gogit.PlainOpenWithOptions(path, &gogit.PlainOpenOptions{DetectDotGit: true})
	if errors.Is(err, gogit.ErrRepositoryNotExists) {
		return nil, fmt.Errorf("%w: %q", ErrNotGitRepository, path)
	} else if err != nil {
		return nil, fmt.Errorf("cannot open repository %q: %w", path, err)
	}
	return repo, nil
}

func startOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// NewGitClient returns the client for the requested backend.
func NewGitClient(backend schema.GitBackend) GitClient {
	if backend == schema.GoGitGitBackend {
		return NewGoGitClient()
	}
	return NewLocalGitClient()
}
