package schema

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
)

func TestRow(t *testing.T) {
	var r Row
	assert.True(t, r.IsEmpty())
	assert.False(t, r.Has(3))
	assert.Nil(t, r.Columns())

	assert.True(t, r.Add(3))
	assert.True(t, r.Add(1))
	assert.False(t, r.Add(3), "duplicates are ignored")
	assert.False(t, r.IsEmpty())
	assert.True(t, r.Has(1))
	assert.Equal(t, []int{3, 1}, r.Columns())
}

func TestGrid(t *testing.T) {
	g := NewGrid(4, 2)
	assert.Equal(t, 3, g.Rows())

	g.Insert(1, 0)
	g.Insert(4, 2)
	g.Insert(2, 2)
	g.Insert(2, 2)
	g.Insert(0, 3)  // out of range
	g.Insert(0, -1) // out of range

	got := make([][]int, g.Rows())
	for y := range g.Rows() {
		got[y] = g.Row(y).Columns()
	}
	want := [][]int{{1}, nil, {4, 2}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("grid rows mismatch (-want +got):\n%s", diff)
	}
	assert.True(t, g.Row(1).IsEmpty())
	assert.True(t, g.Row(9).IsEmpty())
}

func TestNewGrid_NegativeHeight(t *testing.T) {
	g := NewGrid(2, -5)
	assert.Equal(t, 0, g.MaxY)
	assert.Equal(t, 1, g.Rows())
}

func TestChurnRecord(t *testing.T) {
	c := NewChurnRecord()
	assert.True(t, c.Increment("b.go"))
	assert.True(t, c.Increment("a.go"))
	assert.False(t, c.Increment("b.go"))

	assert.Equal(t, 2, c.Len())
	assert.Equal(t, 2, c.Count("b.go"))
	assert.Equal(t, 0, c.Count("missing.go"))
	assert.Equal(t, []string{"b.go", "a.go"}, c.Files())
	assert.Equal(t, map[string]int{"a.go": 1, "b.go": 2}, c.Counts())
}

func TestMetricPointValue(t *testing.T) {
	p := MetricPoint{Path: "a.go", Churn: 3, Complexity: 20}
	assert.Equal(t, 3, p.Value(AxisChurn))
	assert.Equal(t, 20, p.Value(AxisComplexity))
	assert.Equal(t, "Churn", AxisChurn.String())
	assert.Equal(t, "Complexity", AxisComplexity.String())
	assert.Equal(t, "AxisRole(7)", AxisRole(7).String())
}
