package outwriter

import (
	"io"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
	"github.com/huangsam/outlier/schema"
)

const (
	normalPointColor  = "#5470c6"
	outlierPointColor = "#ee6666"
	midpointColor     = "#999999"
	pointSymbolSize   = 10
)

// writeHTMLReport renders res as a standalone echarts scatter page.
// Points are placed on the grid coordinates so the midpoint lines match the outlier rule.
func writeHTMLReport(w io.Writer, res *schema.AnalysisResult) error {
	return newScatter(res).Render(w)
}

func newScatter(res *schema.AnalysisResult) *charts.Scatter {
	xLabel, yLabel := plotLabels(res.Metric)
	maxX, maxY := 0, 0
	if res.Plot != nil {
		maxX, maxY = res.Plot.Normal.MaxX, res.Plot.Normal.MaxY
	}

	scatter := charts.NewScatter()
	scatter.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{PageTitle: "outlier", Width: "100%", Height: "700px"}),
		charts.WithTitleOpts(opts.Title{
			Title:    "Churn vs complexity",
			Subtitle: "Since " + res.Since + ". Outliers lie in the upper right quadrant",
		}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true), Trigger: "item"}),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(true), Top: "5%"}),
		charts.WithXAxisOpts(opts.XAxis{Name: xLabel, Type: "value", Min: 0, Max: maxX}),
		charts.WithYAxisOpts(opts.YAxis{Name: yLabel, Type: "value", Min: 0, Max: maxY}),
	)

	normal := make([]opts.ScatterData, 0, len(res.Files))
	outliers := make([]opts.ScatterData, 0, len(res.Outliers))
	for _, f := range res.Files {
		point := opts.ScatterData{
			Name:       f.Path,
			Value:      []any{f.X, f.Y, f.Path, f.Churn, f.Complexity},
			SymbolSize: pointSymbolSize,
		}
		if f.Outlier {
			outliers = append(outliers, point)
		} else {
			normal = append(normal, point)
		}
	}

	scatter.AddSeries("Files", normal,
		charts.WithItemStyleOpts(opts.ItemStyle{Color: normalPointColor}),
		charts.WithMarkLineNameXAxisItemOpts(opts.MarkLineNameXAxisItem{Name: "complexity midpoint", XAxis: float64(maxX) / 2}),
		charts.WithMarkLineNameYAxisItemOpts(opts.MarkLineNameYAxisItem{Name: "churn midpoint", YAxis: float64(maxY) / 2}),
		charts.WithMarkLineStyleOpts(opts.MarkLineStyle{
			Symbol:    []string{"none", "none"},
			LineStyle: &opts.LineStyle{Color: midpointColor, Type: "dashed"},
		}),
	)
	scatter.AddSeries("Outliers", outliers,
		charts.WithItemStyleOpts(opts.ItemStyle{Color: outlierPointColor}),
	)
	return scatter
}
