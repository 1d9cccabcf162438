package algo

import (
	"math"

	"github.com/huangsam/outlier/schema"
)

// Scale maps value from [0, observedMax] onto [0, outputRange], rounding half up.
// A zero observedMax means the axis is degenerate and every value maps to 0.
func Scale(value, observedMax, outputRange int) int {
	if observedMax == 0 {
		return 0
	}
	return int(math.Round(float64(value) / float64(observedMax) * float64(outputRange)))
}

// IsOutlier reports whether c lies strictly inside the upper-right quadrant of
// a maxX by maxY grid. A point on either midline is not an outlier.
func IsOutlier(c schema.GridCoordinate, maxX, maxY int) bool {
	return 2*c.X > maxX && 2*c.Y > maxY
}

// Discretize places every point on a maxX by maxY grid, using xAxis and yAxis
// to pick the plotted fields, and splits them into normal points and outliers.
func Discretize(points []schema.MetricPoint, xAxis, yAxis schema.AxisRole, maxX, maxY int) *schema.PlotResult {
	result := &schema.PlotResult{
		XAxis:       xAxis,
		YAxis:       yAxis,
		Normal:      schema.NewGrid(maxX, maxY),
		Outliers:    schema.NewGrid(maxX, maxY),
		Coordinates: make(map[string]schema.GridCoordinate, len(points)),
	}

	for _, p := range points {
		result.XMax = max(result.XMax, p.Value(xAxis))
		result.YMax = max(result.YMax, p.Value(yAxis))
	}

	for _, p := range points {
		c := schema.GridCoordinate{
			X: Scale(p.Value(xAxis), result.XMax, maxX),
			Y: Scale(p.Value(yAxis), result.YMax, maxY),
		}
		result.Coordinates[p.Path] = c
		if IsOutlier(c, maxX, maxY) {
			result.Outliers.Insert(c.X, c.Y)
			result.OutlierPoints = append(result.OutlierPoints, p)
		} else {
			result.Normal.Insert(c.X, c.Y)
		}
	}
	return result
}

// Classify flattens a plot result back into per-file rows, in point order.
func Classify(points []schema.MetricPoint, plot *schema.PlotResult) []schema.PlottedFile {
	files := make([]schema.PlottedFile, 0, len(points))
	for _, p := range points {
		c := plot.Coordinates[p.Path]
		files = append(files, schema.PlottedFile{
			MetricPoint:    p,
			GridCoordinate: c,
			Outlier:        IsOutlier(c, plot.Normal.MaxX, plot.Normal.MaxY),
		})
	}
	return files
}
