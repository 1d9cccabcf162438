package outwriter

import (
	"strings"

	"github.com/huangsam/outlier/schema"
)

// Diagram markers.
const (
	outlierMark = "o"
	normalMark  = "."
	blankMark   = " "
	rowPrefix   = "|"
	baseline    = "-"
)

// RenderDiagram draws both grids as ASCII art, topmost row first.
// The first line is yLabel and the last is a baseline followed by xLabel.
// Rows where neither grid has a point are printed as a bare delimiter.
func RenderDiagram(normal, outliers *schema.Grid, xLabel, yLabel string) string {
	maxX, maxY := normal.MaxX, normal.MaxY

	lines := make([]string, 0, maxY+3)
	lines = append(lines, yLabel)
	for y := maxY; y >= 0; y-- {
		normalRow, outlierRow := normal.Row(y), outliers.Row(y)
		var line strings.Builder
		line.WriteString(rowPrefix)
		if !normalRow.IsEmpty() || !outlierRow.IsEmpty() {
			for x := 0; x <= maxX; x++ {
				switch {
				case outlierRow.Has(x):
					line.WriteString(outlierMark)
				case normalRow.Has(x):
					line.WriteString(normalMark)
				default:
					line.WriteString(blankMark)
				}
			}
		}
		lines = append(lines, line.String())
	}
	lines = append(lines, strings.Repeat(baseline, maxX+1)+xLabel)
	return strings.Join(lines, "\n")
}

// RenderOutlierList lists outlier paths one per line, in the given order.
func RenderOutlierList(points []schema.MetricPoint) string {
	if len(points) == 0 {
		return "No outliers were found.\n"
	}
	paths := make([]string, len(points))
	for i, p := range points {
		paths[i] = p.Path
	}
	return strings.Join(paths, "\n") + "\n"
}

// plotLabels returns the x and y axis labels for a plot of metric.
func plotLabels(metric schema.Metric) (xLabel, yLabel string) {
	return schema.AxisComplexity.String() + "(" + string(metric) + ")", schema.AxisChurn.String()
}

// RenderPlot draws res.Plot with the standard axis labels, or "" when nothing was plotted.
func RenderPlot(res *schema.AnalysisResult) string {
	if res.Plot == nil {
		return ""
	}
	xLabel, yLabel := plotLabels(res.Metric)
	return RenderDiagram(res.Plot.Normal, res.Plot.Outliers, xLabel, yLabel)
}
