package analysis

import (
	"math"
	"sort"

	"github.com/KaramelBytes/sleepstat-cli/internal/dataset"
	"gonum.org/v1/gonum/stat"
)

// Pearson returns the product-moment correlation of xs and ys over the
// index pairs where both values are present. Fewer than MinSamples pairs or
// a constant variable yields ZeroVarianceFallback. The result is symmetric
// in its arguments and clamped to [-1, 1].
func Pearson(xs, ys []float64) float64 {
	px, py := completePairs(xs, ys)
	if len(px) < MinSamples || constant(px) || constant(py) {
		return ZeroVarianceFallback
	}
	r := finiteOr(stat.Correlation(px, py, nil), ZeroVarianceFallback)
	if r > 1 {
		r = 1
	} else if r < -1 {
		r = -1
	}
	return r
}

// CorrelationMatrix computes Pearson for every ordered pair of fields,
// diagonal included. A zero-variance field has 0 on its diagonal. Unknown or
// categorical fields read as all-missing and so correlate at 0.
func CorrelationMatrix(ds *dataset.Dataset, fields []string) [][]float64 {
	cols := make([][]float64, len(fields))
	for i, f := range fields {
		cols[i] = ds.Column(f)
	}
	mat := make([][]float64, len(fields))
	for i := range mat {
		mat[i] = make([]float64, len(fields))
		for j := range mat[i] {
			mat[i][j] = Pearson(cols[i], cols[j])
		}
	}
	return mat
}

// PairCorr is one off-diagonal cell of a correlation matrix.
type PairCorr struct {
	A string  `json:"a" yaml:"a"`
	B string  `json:"b" yaml:"b"`
	R float64 `json:"r" yaml:"r"`
}

// TopPairs lists the upper triangle of mat ordered by |r| descending, ties
// broken by name. n <= 0 returns every pair.
func TopPairs(fields []string, mat [][]float64, n int) []PairCorr {
	var pairs []PairCorr
	for i := range fields {
		for j := i + 1; j < len(fields); j++ {
			pairs = append(pairs, PairCorr{A: fields[i], B: fields[j], R: mat[i][j]})
		}
	}
	sort.SliceStable(pairs, func(i, j int) bool {
		ai, aj := math.Abs(pairs[i].R), math.Abs(pairs[j].R)
		if ai == aj {
			return pairs[i].A+pairs[i].B < pairs[j].A+pairs[j].B
		}
		return ai > aj
	})
	if n > 0 && len(pairs) > n {
		pairs = pairs[:n]
	}
	return pairs
}
