package algo

import (
	"sort"

	"github.com/huangsam/outlier/schema"
)

// Rank sorts path/value pairs by value in descending order. Equal values are
// ordered by path, also descending, so the output is fully deterministic.
func Rank(values map[string]int) schema.RankedList {
	ranked := make(schema.RankedList, 0, len(values))
	for path, v := range values {
		ranked = append(ranked, schema.RankedEntry{Path: path, Value: v})
	}
	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].Value != ranked[j].Value {
			return ranked[i].Value > ranked[j].Value
		}
		return ranked[i].Path > ranked[j].Path
	})
	return ranked
}

// TopN returns the first 'limit' entries of a ranked list whose path passes keep.
// A nil keep accepts everything.
func TopN(ranked schema.RankedList, keep func(string) bool, limit int) schema.RankedList {
	top := make(schema.RankedList, 0, min(max(limit, 0), len(ranked)))
	for _, entry := range ranked {
		if len(top) >= limit {
			break
		}
		if keep == nil || keep(entry.Path) {
			top = append(top, entry)
		}
	}
	return top
}
