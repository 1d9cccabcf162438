package schema

import (
	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// Row is the set of distinct x-coordinates plotted on one grid row.
// The zero Row is empty: no point has landed on it yet.
type Row struct {
	cols *orderedmap.OrderedMap[int, struct{}]
}

// IsEmpty reports whether no point has been added to the row.
func (r Row) IsEmpty() bool {
	return r.cols == nil
}

// Has reports whether x is present in the row.
func (r Row) Has(x int) bool {
	if r.cols == nil {
		return false
	}
	_, ok := r.cols.Get(x)
	return ok
}

// Add inserts x and reports whether it was not already present.
func (r *Row) Add(x int) bool {
	if r.cols == nil {
		r.cols = orderedmap.New[int, struct{}]()
	}
	if _, ok := r.cols.Get(x); ok {
		return false
	}
	r.cols.Set(x, struct{}{})
	return true
}

// Columns returns the x-coordinates in insertion order.
func (r Row) Columns() []int {
	if r.cols == nil {
		return nil
	}
	out := make([]int, 0, r.cols.Len())
	for pair := r.cols.Oldest(); pair != nil; pair = pair.Next() {
		out = append(out, pair.Key)
	}
	return out
}

// Grid holds one Row for every y in [0, MaxY].
type Grid struct {
	MaxX int
	MaxY int
	rows []Row
}

// NewGrid allocates a grid whose rows are all empty.
func NewGrid(maxX, maxY int) *Grid {
	if maxY < 0 {
		maxY = 0
	}
	return &Grid{MaxX: maxX, MaxY: maxY, rows: make([]Row, maxY+1)}
}

// Row returns the row at y. Out of range rows are reported empty.
func (g *Grid) Row(y int) Row {
	if y < 0 || y >= len(g.rows) {
		return Row{}
	}
	return g.rows[y]
}

// Insert places x on row y, ignoring duplicates and out of range rows.
func (g *Grid) Insert(x, y int) {
	if y < 0 || y >= len(g.rows) {
		return
	}
	g.rows[y].Add(x)
}

// Rows returns the number of rows, always MaxY+1.
func (g *Grid) Rows() int {
	return len(g.rows)
}

// PlotResult is the discretized, classified form of a set of MetricPoints.
type PlotResult struct {
	XAxis         AxisRole
	YAxis         AxisRole
	XMax          int // Largest raw value observed on the x axis
	YMax          int // Largest raw value observed on the y axis
	Normal        *Grid
	Outliers      *Grid
	OutlierPoints []MetricPoint
	Coordinates   map[string]GridCoordinate
}
