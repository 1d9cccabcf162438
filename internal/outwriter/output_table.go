package outwriter

import (
	"fmt"
	"io"
	"strconv"

	"github.com/huangsam/outlier/internal/contract"
	"github.com/huangsam/outlier/schema"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
)

// palette holds the sprint functions for one report, plain when colors are off.
type palette struct {
	header  func(a ...any) string
	outlier func(a ...any) string
	normal  func(a ...any) string
}

func newPalette(useColors bool) palette {
	if !useColors {
		return palette{header: fmt.Sprint, outlier: fmt.Sprint, normal: fmt.Sprint}
	}
	return palette{
		header:  contract.HeaderColor.SprintFunc(),
		outlier: contract.OutlierColor.SprintFunc(),
		normal:  contract.NormalColor.SprintFunc(),
	}
}

// writeTableReport prints the selected sections as tables.
func writeTableReport(w io.Writer, res *schema.AnalysisResult, cfg *contract.Config, sections Section) error {
	p := newPalette(cfg.UseColors)
	maxPathWidth := GetMaxTablePathWidth(cfg)

	if sections.Has(ChurnSection) {
		title := fmt.Sprintf("Top %d files by churn since %s", res.TopN, res.Since)
		if err := writeRankedTable(w, p, title, "Changes", res.TopChurn, maxPathWidth); err != nil {
			return err
		}
	}
	if sections.Has(ComplexitySection) {
		title := fmt.Sprintf("Top %d files by complexity (%s) since %s", res.TopN, res.Metric, res.Since)
		if err := writeRankedTable(w, p, title, string(res.Metric), res.TopComplexity, maxPathWidth); err != nil {
			return err
		}
	}
	if sections.Has(PlotSection) && res.Plot != nil {
		if _, err := fmt.Fprintf(w, "\n%s\n%s\n", p.header("Churn vs complexity since "+res.Since), RenderPlot(res)); err != nil {
			return err
		}
		if err := writeOutlierTable(w, p, res, maxPathWidth); err != nil {
			return err
		}
		if err := writeSummaryTable(w, p, res.Summary); err != nil {
			return err
		}
	}

	_, err := fmt.Fprintf(w, "Analyzed %d files in %v\n", res.FilesAnalyzed, res.Duration)
	return err
}

// writeRankedTable prints one ranked list under a colored title.
func writeRankedTable(w io.Writer, p palette, title, valueHeader string, list schema.RankedList, maxPathWidth int) error {
	if _, err := fmt.Fprintf(w, "\n%s\n", p.header(title)); err != nil {
		return err
	}
	table := tablewriter.NewWriter(w)
	table.Header([]string{"Rank", valueHeader, "Path"})
	table.Configure(func(cfg *tablewriter.Config) {
		cfg.Row.Alignment.PerColumn = []tw.Align{tw.AlignRight, tw.AlignRight, tw.AlignLeft}
	})

	data := make([][]string, 0, len(list))
	for i, e := range list {
		data = append(data, []string{
			strconv.Itoa(i + 1),
			strconv.Itoa(e.Value),
			contract.TruncatePath(e.Path, maxPathWidth),
		})
	}
	if err := table.Bulk(data); err != nil {
		return err
	}
	return table.Render()
}

// writeOutlierTable prints every plotted file, highlighting outliers.
func writeOutlierTable(w io.Writer, p palette, res *schema.AnalysisResult, maxPathWidth int) error {
	if _, err := fmt.Fprintf(w, "\n%s\n", p.header(fmt.Sprintf("Detected outliers: %d of %d files", len(res.Outliers), len(res.Files)))); err != nil {
		return err
	}
	if len(res.Outliers) == 0 {
		_, err := fmt.Fprintln(w, "No outliers were found.")
		return err
	}

	table := tablewriter.NewWriter(w)
	table.Header([]string{"Path", "Churn", string(res.Metric), "X", "Y"})
	table.Configure(func(cfg *tablewriter.Config) {
		cfg.Row.Alignment.Global = tw.AlignRight
	})

	var data [][]string
	for _, f := range res.Files {
		if !f.Outlier {
			continue
		}
		data = append(data, []string{
			p.outlier(contract.TruncatePath(f.Path, maxPathWidth)),
			strconv.Itoa(f.Churn),
			strconv.Itoa(f.Complexity),
			strconv.Itoa(f.X),
			strconv.Itoa(f.Y),
		})
	}
	if err := table.Bulk(data); err != nil {
		return err
	}
	return table.Render()
}

// writeSummaryTable prints the correlation coefficients and distribution markers.
func writeSummaryTable(w io.Writer, p palette, summary *schema.CorrelationSummary) error {
	if summary == nil {
		return nil
	}
	if _, err := fmt.Fprintf(w, "\n%s\n", p.header("Correlation summary")); err != nil {
		return err
	}
	table := tablewriter.NewWriter(w)
	table.Header([]string{"Measure", "Value"})
	table.Configure(func(cfg *tablewriter.Config) {
		cfg.Row.Alignment.PerColumn = []tw.Align{tw.AlignLeft, tw.AlignRight}
	})

	f := func(v float64) string { return strconv.FormatFloat(v, 'f', 3, 64) }
	data := [][]string{
		{p.normal("Files"), strconv.Itoa(summary.Files)},
		{p.normal("Pearson"), f(summary.Pearson)},
		{p.normal("Spearman"), f(summary.Spearman)},
		{p.normal("Churn mean"), f(summary.ChurnMean)},
		{p.normal("Complexity mean"), f(summary.ComplexityMean)},
		{p.normal("Churn p90"), f(summary.ChurnP90)},
		{p.normal("Complexity p90"), f(summary.ComplexityP90)},
	}
	if err := table.Bulk(data); err != nil {
		return err
	}
	return table.Render()
}
