package analysis

import (
	"fmt"
	"sort"

	"github.com/KaramelBytes/sleepstat-cli/internal/dataset"
	"github.com/montanaflynn/stats"
)

// MissingKey labels records whose grouping value is absent.
const MissingKey = "(missing)"

// KeyFunc maps a record to its group.
type KeyFunc func(dataset.Record) string

// ValueFunc extracts the measured value of a record. NaN means missing.
type ValueFunc func(dataset.Record) float64

// FieldKey groups by the value of field, formatted as a string.
func FieldKey(field string) KeyFunc {
	return func(r dataset.Record) string {
		if s := r.Label(field); s != "" {
			return s
		}
		return MissingKey
	}
}

// ConstKey puts every record in one group.
func ConstKey(label string) KeyFunc {
	return func(dataset.Record) string { return label }
}

// BinKey groups by the bin the numeric field falls in, e.g. age buckets.
// Keys come from BinKeys, so bins never merge.
func BinKey(field string, bins []Bin) KeyFunc {
	keys := BinKeys(bins)
	return func(r dataset.Record) string {
		if i := AssignToBin(r.NumberOrNaN(field), bins); i >= 0 {
			return keys[i]
		}
		return MissingKey
	}
}

// BinKeys returns one distinct key per bin. A key is the bin label, with
// "#<index>" appended when narrow bins round to the same label.
func BinKeys(bins []Bin) []string {
	seen := make(map[string]int, len(bins))
	for _, b := range bins {
		seen[b.Label]++
	}
	keys := make([]string, len(bins))
	for i, b := range bins {
		keys[i] = b.Label
		if seen[b.Label] > 1 {
			keys[i] = fmt.Sprintf("%s#%d", b.Label, i)
		}
	}
	return keys
}

// FieldValue reads a numeric field, NaN when absent.
func FieldValue(field string) ValueFunc {
	return func(r dataset.Record) float64 { return r.NumberOrNaN(field) }
}

// GroupSummary describes the distribution of one value within a group.
// Quartiles use Quantile (R type 7).
type GroupSummary struct {
	Key    string  `json:"key" yaml:"key"`
	Count  int     `json:"count" yaml:"count"`
	Mean   float64 `json:"mean" yaml:"mean"`
	Median float64 `json:"median" yaml:"median"`
	Q1     float64 `json:"q1" yaml:"q1"`
	Q3     float64 `json:"q3" yaml:"q3"`
	Min    float64 `json:"min" yaml:"min"`
	Max    float64 `json:"max" yaml:"max"`
}

// GroupSummaries partitions ds by key and summarizes value in each group.
// A record whose value is missing belongs to no group. Groups appear in the
// order their key first occurs among the kept records.
func GroupSummaries(ds *dataset.Dataset, key KeyFunc, value ValueFunc) []GroupSummary {
	grouped := make(map[string][]float64)
	order := make([]string, 0)
	for _, r := range ds.Records {
		v := value(r)
		if !isFinite(v) {
			continue
		}
		k := key(r)
		if _, exists := grouped[k]; !exists {
			order = append(order, k)
		}
		grouped[k] = append(grouped[k], v)
	}

	out := make([]GroupSummary, 0, len(order))
	for _, k := range order {
		out = append(out, summarize(k, grouped[k]))
	}
	return out
}

// summarize expects at least one value.
func summarize(key string, vals []float64) GroupSummary {
	sorted := append([]float64(nil), vals...)
	sort.Float64s(sorted)
	mean, _ := stats.Mean(sorted)
	median, _ := stats.Median(sorted)
	return GroupSummary{
		Key:    key,
		Count:  len(sorted),
		Mean:   mean,
		Median: median,
		Q1:     Quantile(sorted, 0.25),
		Q3:     Quantile(sorted, 0.75),
		Min:    sorted[0],
		Max:    sorted[len(sorted)-1],
	}
}

// Series is one field's per-group means in a grouped bar chart.
type Series struct {
	Field  string    `json:"field" yaml:"field"`
	Means  []float64 `json:"means" yaml:"means"`
	Counts []int     `json:"counts" yaml:"counts"`
}

// GroupedBars is the data behind a grouped bar chart: one bar per field
// within each group.
type GroupedBars struct {
	Groups []string `json:"groups" yaml:"groups"`
	Series []Series `json:"series" yaml:"series"`
}

// GroupedMeans computes the mean of each field per group. Groups follow
// first appearance over all records. A group with no value for a field gets
// mean ZeroVarianceFallback and count 0.
func GroupedMeans(ds *dataset.Dataset, key KeyFunc, fields []string) GroupedBars {
	index := make(map[string]int)
	var groups []string
	keys := make([]int, ds.Len())
	for i, r := range ds.Records {
		k := key(r)
		gi, ok := index[k]
		if !ok {
			gi = len(groups)
			index[k] = gi
			groups = append(groups, k)
		}
		keys[i] = gi
	}

	out := GroupedBars{Groups: groups, Series: make([]Series, len(fields))}
	for fi, f := range fields {
		sums := make([]float64, len(groups))
		counts := make([]int, len(groups))
		for i, r := range ds.Records {
			v := r.NumberOrNaN(f)
			if !isFinite(v) {
				continue
			}
			sums[keys[i]] += v
			counts[keys[i]]++
		}
		means := make([]float64, len(groups))
		for gi := range groups {
			means[gi] = ZeroVarianceFallback
			if counts[gi] > 0 {
				means[gi] = sums[gi] / float64(counts[gi])
			}
		}
		out.Series[fi] = Series{Field: f, Means: means, Counts: counts}
	}
	return out
}
