// Package agg has aggregation logic for Git change logs.
package agg

import (
	"context"
	"log/slog"
	"strings"

	"github.com/huangsam/outlier/internal/contract"
	"github.com/huangsam/outlier/schema"
)

// pathField is the index of the file path in a numstat line: added, removed, path.
const pathField = 2

// ExtractChurn counts how often each file appears in a numstat change log.
// Lines with fewer than three whitespace-separated fields are skipped, which
// covers the blank lines git prints between commits.
func ExtractChurn(log []byte) *schema.ChurnRecord {
	churn := schema.NewChurnRecord()
	for line := range strings.Lines(string(log)) {
		if path := parseFileName(line); path != "" {
			churn.Increment(path)
		}
	}
	return churn
}

// parseFileName returns the path token of a numstat line, or "" when the line
// does not carry one.
func parseFileName(line string) string {
	fields := strings.Fields(line)
	if len(fields) <= pathField {
		return ""
	}
	return fields[pathField]
}

// FetchChurn retrieves the change log for the configured window and extracts churn from it.
func FetchChurn(ctx context.Context, cfg *contract.Config, client contract.GitClient) (*schema.ChurnRecord, error) {
	out, err := client.GetChangeLog(ctx, cfg.RepoPath, cfg.Since(), cfg.Until())
	if err != nil {
		return nil, err
	}
	churn := ExtractChurn(out)
	slog.Debug("Parsed change log", "bytes", len(out), "files", churn.Len())
	return churn, nil
}

// FilterFiles keeps the files accepted by the configured filters, preserving order.
func FilterFiles(cfg *contract.Config, files []string) []string {
	filtered := make([]string, 0, len(files))
	for _, f := range files {
		if cfg.Accepts(f) {
			filtered = append(filtered, f)
		}
	}
	return filtered
}
