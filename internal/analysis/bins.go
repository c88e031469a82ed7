package analysis

import (
	"fmt"
	"math"
	"sort"

	"github.com/KaramelBytes/sleepstat-cli/internal/dataset"
	"github.com/montanaflynn/stats"
)

// Bin is the half-open interval [Lower, Upper). The last bin of a binning
// also contains its Upper bound.
type Bin struct {
	Lower float64 `json:"lower" yaml:"lower"`
	Upper float64 `json:"upper" yaml:"upper"`
	Label string  `json:"label" yaml:"label"`
}

// Width returns Upper - Lower.
func (b Bin) Width() float64 { return b.Upper - b.Lower }

// EqualWidthBins partitions [floor(min), ceil(max)] of the finite values
// into numBins intervals of equal width. Adjacent bins share a boundary
// exactly and the last upper bound is ceil(max).
//
// With no finite values, or when floor(min) == ceil(max), every bin has zero
// width and AssignToBin maps any finite value to bin 0. numBins <= 0 returns
// nil.
func EqualWidthBins(values []float64, numBins int) []Bin {
	if numBins <= 0 {
		return nil
	}
	vals := finite(values)
	var lo, hi float64
	if len(vals) > 0 {
		mn, _ := stats.Min(vals)
		mx, _ := stats.Max(vals)
		lo, hi = math.Floor(mn), math.Ceil(mx)
	}
	width := (hi - lo) / float64(numBins)
	bins := make([]Bin, numBins)
	for i := range bins {
		lower := lo + float64(i)*width
		upper := lo + float64(i+1)*width
		if i == numBins-1 {
			upper = hi
		}
		bins[i] = Bin{Lower: lower, Upper: upper, Label: binLabel(lower, upper)}
	}
	return bins
}

func binLabel(lower, upper float64) string {
	return fmt.Sprintf("%.1f-%.1f", lower, upper)
}

// AssignToBin returns the index of the bin containing value, treating the
// last upper bound as inclusive. NaN, ±Inf, an empty bin list and values
// outside [bins[0].Lower, bins[last].Upper] give -1. A zero-width binning
// sends every finite value to 0.
func AssignToBin(value float64, bins []Bin) int {
	if len(bins) == 0 || !isFinite(value) {
		return -1
	}
	first, last := bins[0], bins[len(bins)-1]
	if first.Lower == last.Upper {
		return 0
	}
	if value < first.Lower || value > last.Upper {
		return -1
	}
	i := sort.Search(len(bins), func(i int) bool { return value < bins[i].Upper })
	if i == len(bins) {
		return len(bins) - 1
	}
	return i
}

// BinCount is one histogram bar.
type BinCount struct {
	Bin   `yaml:",inline"`
	Count int `json:"count" yaml:"count"`
}

// Histogram bins values with EqualWidthBins and counts each bin. Missing and
// out-of-range values are dropped, so the counts sum to the number of finite
// values.
func Histogram(values []float64, numBins int) []BinCount {
	bins := EqualWidthBins(values, numBins)
	out := make([]BinCount, len(bins))
	for i, b := range bins {
		out[i].Bin = b
	}
	for _, v := range values {
		if i := AssignToBin(v, bins); i >= 0 {
			out[i].Count++
		}
	}
	return out
}

// FieldHistogram is Histogram over one numeric column of ds.
func FieldHistogram(ds *dataset.Dataset, field string, numBins int) []BinCount {
	return Histogram(ds.Column(field), numBins)
}
