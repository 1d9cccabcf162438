package outwriter

import (
	"fmt"
	"io"
	"strings"

	"github.com/huangsam/outlier/schema"
)

var bigSeparator = strings.Repeat("=", 99)

// textReport accumulates the plain report and keeps the first write error.
type textReport struct {
	w   io.Writer
	err error
}

func (r *textReport) print(s string) {
	if r.err != nil {
		return
	}
	_, r.err = io.WriteString(r.w, s+"\n")
}

func (r *textReport) headline(title string) {
	r.print("\n" + bigSeparator)
	r.print("=  " + title)
	r.print(bigSeparator + "\n")
}

func (r *textReport) subsection(text string) {
	r.print("\n-= " + text + " =-")
}

// writeTextReport prints the classic plain text report.
func writeTextReport(w io.Writer, res *schema.AnalysisResult, sections Section) error {
	r := &textReport{w: w}
	if sections.Has(ChurnSection) {
		r.headline("Churn outliers")
		r.subsection(fmt.Sprintf("The top %d files with churn in descending order since %s:", res.TopN, res.Since))
		r.print("Changes Filenames")
		for _, e := range res.TopChurn {
			r.print(fmt.Sprintf("%-8d%-10s", e.Value, e.Path))
		}
	}
	if sections.Has(ComplexitySection) {
		r.headline("Complexity outliers")
		r.subsection(fmt.Sprintf("The top %d files with complexity (%s) in descending order since %s:", res.TopN, res.Metric, res.Since))
		r.print("Complexity Filenames")
		for _, e := range res.TopComplexity {
			r.print(fmt.Sprintf("%-11d%-10s", e.Value, e.Path))
		}
	}
	if sections.Has(PlotSection) && res.Plot != nil {
		r.headline("Churn vs complexity outliers")
		r.subsection("Plot of churn vs complexity for all files since " + res.Since + ". Outliers are marked with O")
		r.print(RenderPlot(res))
		r.subsection("Detected outliers (marked with O in the outlier plot)")
		r.print(RenderOutlierList(res.Outliers))
	}
	r.print("\n" + bigSeparator)
	return r.err
}
