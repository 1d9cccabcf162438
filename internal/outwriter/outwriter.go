// Package outwriter has output and writer logic.
package outwriter

import (
	"errors"
	"fmt"
	"io"

	"github.com/huangsam/outlier/internal/contract"
	"github.com/huangsam/outlier/internal/parquet"
	"github.com/huangsam/outlier/schema"
)

// Section selects which parts of an analysis get printed.
type Section uint8

// All report sections, in print order.
const (
	ChurnSection Section = 1 << iota
	ComplexitySection
	PlotSection

	AllSections = ChurnSection | ComplexitySection | PlotSection
)

// DefaultHTMLFile is where the html output goes when no output file is given.
const DefaultHTMLFile = "outlier-plot.html"

// ErrOutputFileRequired is returned for binary formats that cannot go to a terminal.
var ErrOutputFileRequired = errors.New("output file is required for this format")

// Has reports whether s includes every section in other.
func (s Section) Has(other Section) bool {
	return s&other == other
}

// NeedsComplexity reports whether printing s requires complexity scores.
func (s Section) NeedsComplexity() bool {
	return s&(ComplexitySection|PlotSection) != 0
}

// OutWriter provides a unified interface for all output operations.
// It encapsulates the various output formats and provides a clean API for the core logic.
type OutWriter struct{}

// NewOutWriter creates a new instance of the output writer.
func NewOutWriter() *OutWriter {
	return &OutWriter{}
}

// WriteReport prints the selected sections of res using the configured output format.
func (ow *OutWriter) WriteReport(res *schema.AnalysisResult, cfg *contract.Config, sections Section) error {
	switch cfg.Output {
	case schema.TableOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeTableReport(w, res, cfg, sections)
		}, "Wrote table")
	case schema.JSONOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSON(w, res)
		}, "Wrote JSON")
	case schema.CSVOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeCSVReport(w, res)
		}, "Wrote CSV")
	case schema.ParquetOut:
		if cfg.OutputFile == "" {
			return fmt.Errorf("%w: %s", ErrOutputFileRequired, cfg.Output)
		}
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return parquet.WriteRows(w, parquet.FromPlottedFiles(res.Files))
		}, "Wrote Parquet")
	case schema.HTMLOut:
		outputFile := cfg.OutputFile
		if outputFile == "" {
			outputFile = DefaultHTMLFile
		}
		return writeWithFile(outputFile, func(w io.Writer) error {
			return writeHTMLReport(w, res)
		}, "Wrote HTML plot")
	default:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeTextReport(w, res, sections)
		}, "Wrote report")
	}
}

// WriteLanguages prints the supported languages and their file endings.
func (ow *OutWriter) WriteLanguages(cfg *contract.Config) error {
	return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
		return writeLanguages(w, cfg)
	}, "Wrote languages")
}

// WriteHistoryStatus prints the state of the run archive.
func (ow *OutWriter) WriteHistoryStatus(status schema.HistoryStatus, cfg *contract.Config) error {
	return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
		return writeHistoryStatus(w, status, cfg)
	}, "Wrote history status")
}
