package outwriter

import (
	"fmt"
	"io"
	"maps"
	"slices"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/huangsam/outlier/internal/contract"
	"github.com/huangsam/outlier/schema"
	"github.com/olekukonko/tablewriter"
)

const statusTimeFormat = "2006-01-02 15:04:05"

// writeLanguages prints every supported language with its file endings.
// Machine formats get one record per language.
func writeLanguages(w io.Writer, cfg *contract.Config) error {
	langs := schema.AllLanguages()
	switch cfg.Output {
	case schema.JSONOut:
		out := make(map[string][]string, len(langs))
		for _, lang := range langs {
			out[string(lang)] = schema.LanguageExtensions[lang]
		}
		return writeJSON(w, out)
	case schema.TableOut:
		p := newPalette(cfg.UseColors)
		table := tablewriter.NewWriter(w)
		table.Header([]string{"Language", "Extensions"})
		data := make([][]string, 0, len(langs))
		for _, lang := range langs {
			data = append(data, []string{p.header(string(lang)), strings.Join(schema.LanguageExtensions[lang], " ")})
		}
		if err := table.Bulk(data); err != nil {
			return err
		}
		return table.Render()
	default:
		for _, lang := range langs {
			if _, err := fmt.Fprintf(w, "%-12s %s\n", lang, strings.Join(schema.LanguageExtensions[lang], " ")); err != nil {
				return err
			}
		}
		return nil
	}
}

// writeHistoryStatus prints the archive status in the configured format.
func writeHistoryStatus(w io.Writer, status schema.HistoryStatus, cfg *contract.Config) error {
	if cfg.Output == schema.JSONOut {
		return writeJSON(w, status)
	}

	lines := []string{
		fmt.Sprintf("History Backend: %s", status.Backend),
		fmt.Sprintf("Connected: %t", status.Connected),
	}
	if status.Connected {
		lines = append(lines, fmt.Sprintf("Total Runs: %d", status.TotalRuns))
		if status.TotalRuns > 0 {
			lines = append(lines,
				fmt.Sprintf("Last Run ID: %d", status.LastRunID),
				fmt.Sprintf("Last Run: %s (%s)", status.LastRunTime.Format(statusTimeFormat), humanize.Time(status.LastRunTime)),
				fmt.Sprintf("Oldest Run: %s (%s)", status.OldestRunTime.Format(statusTimeFormat), humanize.Time(status.OldestRunTime)),
				fmt.Sprintf("Total Files Archived: %s", humanize.Comma(int64(status.TotalFiles))),
			)
		}
		lines = append(lines, "Table Sizes:")
		for _, table := range slices.Sorted(maps.Keys(status.TableSizes)) {
			lines = append(lines, fmt.Sprintf("  %s: %s rows", table, humanize.Comma(status.TableSizes[table])))
		}
	}
	_, err := fmt.Fprintln(w, strings.Join(lines, "\n"))
	return err
}
