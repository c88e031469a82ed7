package analysis

import (
	"github.com/KaramelBytes/sleepstat-cli/internal/dataset"
)

// CategoryCount is one bar of a categorical distribution.
type CategoryCount struct {
	Value string  `json:"value" yaml:"value"`
	Count int     `json:"count" yaml:"count"`
	Share float64 `json:"share" yaml:"share"`
}

// CategoryCounts tallies labels in first-appearance order. Empty labels are
// skipped; Share is relative to the labels counted.
func CategoryCounts(labels []string) []CategoryCount {
	index := make(map[string]int)
	out := make([]CategoryCount, 0)
	total := 0
	for _, l := range labels {
		if l == "" {
			continue
		}
		total++
		i, ok := index[l]
		if !ok {
			i = len(out)
			index[l] = i
			out = append(out, CategoryCount{Value: l})
		}
		out[i].Count++
	}
	for i := range out {
		out[i].Share = float64(out[i].Count) / float64(total)
	}
	return out
}

// Heatmap is a two-way table of record counts, optionally with the mean of
// a value per cell.
type Heatmap struct {
	Rows   []string `json:"rows" yaml:"rows"`
	Cols   []string `json:"cols" yaml:"cols"`
	Counts [][]int  `json:"counts" yaml:"counts"`
	// Means is set when CrossTab was given a value. Cells without a value
	// hold ZeroVarianceFallback.
	Means [][]float64 `json:"means,omitempty" yaml:"means,omitempty"`
	Total int         `json:"total" yaml:"total"`
}

// Count returns the cell for the given row and column labels.
func (h Heatmap) Count(row, col string) int {
	for i, r := range h.Rows {
		if r != row {
			continue
		}
		for j, c := range h.Cols {
			if c == col {
				return h.Counts[i][j]
			}
		}
	}
	return 0
}

// CrossTab counts records per (row, col) key pair. Row and column labels
// follow first appearance. When value is non-nil, Means holds the mean of
// value per cell over records where it is present; Counts still counts every
// record.
func CrossTab(ds *dataset.Dataset, rowKey, colKey KeyFunc, value ValueFunc) Heatmap {
	rowIdx := map[string]int{}
	colIdx := map[string]int{}
	var h Heatmap
	type cell struct{ r, c int }
	cells := make([]cell, ds.Len())
	for i, rec := range ds.Records {
		rk, ck := rowKey(rec), colKey(rec)
		ri, ok := rowIdx[rk]
		if !ok {
			ri = len(h.Rows)
			rowIdx[rk] = ri
			h.Rows = append(h.Rows, rk)
		}
		ci, ok := colIdx[ck]
		if !ok {
			ci = len(h.Cols)
			colIdx[ck] = ci
			h.Cols = append(h.Cols, ck)
		}
		cells[i] = cell{ri, ci}
	}

	h.Counts = make([][]int, len(h.Rows))
	for i := range h.Counts {
		h.Counts[i] = make([]int, len(h.Cols))
	}
	for _, c := range cells {
		h.Counts[c.r][c.c]++
	}
	h.Total = len(cells)

	if value != nil {
		sums := make([][]float64, len(h.Rows))
		n := make([][]int, len(h.Rows))
		h.Means = make([][]float64, len(h.Rows))
		for i := range h.Rows {
			sums[i] = make([]float64, len(h.Cols))
			n[i] = make([]int, len(h.Cols))
			h.Means[i] = make([]float64, len(h.Cols))
		}
		for i, rec := range ds.Records {
			v := value(rec)
			if !isFinite(v) {
				continue
			}
			c := cells[i]
			sums[c.r][c.c] += v
			n[c.r][c.c]++
		}
		for i := range h.Rows {
			for j := range h.Cols {
				h.Means[i][j] = ZeroVarianceFallback
				if n[i][j] > 0 {
					h.Means[i][j] = sums[i][j] / float64(n[i][j])
				}
			}
		}
	}
	return h
}
