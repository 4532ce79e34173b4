package core

import (
	"cmp"
	"fmt"
	"slices"
)

// Sort returns a copy of rows ordered by column. The input is not modified.
//
// Each cell is resolved on its own: numbers, and text that parses as a
// number, compare numerically; other text compares lexicographically.
// Numeric keys sort before text keys, and rows too short to have the column
// sort after both. The sort is stable; reverse negates the comparison so
// rows with equal keys keep their input order in both directions.
func Sort(rows []Row, h Header, column string, reverse bool) ([]Row, error) {
	idx := h.Index(column)
	if idx < 0 {
		return nil, fmt.Errorf("sort by %q: %w", column, ErrUnknownColumn)
	}

	keys := make([]key, len(rows))
	for i, row := range rows {
		keys[i] = newKey(row, idx)
	}

	order := make([]int, len(rows))
	for i := range order {
		order[i] = i
	}

	slices.SortStableFunc(order, func(a, b int) int {
		c := compareKeys(keys[a], keys[b])
		if reverse {
			return -c
		}
		return c
	})

	sorted := make([]Row, len(rows))
	for i, j := range order {
		sorted[i] = rows[j]
	}
	return sorted, nil
}

// keyClass orders keys of different kinds against each other.
type keyClass int

const (
	classNumber keyClass = iota
	classText
	classMissing
)

type key struct {
	class keyClass
	num   float64
	text  string
}

func newKey(row Row, idx int) key {
	if idx >= len(row) {
		return key{class: classMissing}
	}
	v := row[idx]
	if f, ok := sortKey(v); ok {
		return key{class: classNumber, num: f}
	}
	return key{class: classText, text: v.String()}
}

func compareKeys(a, b key) int {
	if a.class != b.class {
		return cmp.Compare(a.class, b.class)
	}
	switch a.class {
	case classNumber:
		return cmp.Compare(a.num, b.num)
	case classText:
		return cmp.Compare(a.text, b.text)
	default:
		return 0
	}
}
