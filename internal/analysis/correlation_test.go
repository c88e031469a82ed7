package analysis

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPearsonSymmetric(t *testing.T) {
	cases := []struct {
		name   string
		xs, ys []float64
	}{
		{"positive", []float64{1, 2, 3, 4, 5}, []float64{2.1, 3.9, 6.2, 7.8, 10.1}},
		{"negative", []float64{6.1, 7.8, 5.9, 8.2}, []float64{7, 3, 8, 3}},
		{"missing", []float64{1, math.NaN(), 3, 4, 9}, []float64{4, 2, math.NaN(), 1, 0.5}},
		{"ragged", []float64{1, 2, 3}, []float64{3, 1, 2, 7, 7}},
		{"constant", []float64{4, 4, 4}, []float64{1, 2, 3}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, Pearson(tc.xs, tc.ys), Pearson(tc.ys, tc.xs))
		})
	}
}

func TestPearsonSelfCorrelation(t *testing.T) {
	xs := []float64{6.1, 7.8, 5.9, 8.2, 7.1}
	assert.InDelta(t, 1.0, Pearson(xs, xs), 1e-12)

	same := []float64{7, 7, 7, 7}
	assert.Equal(t, ZeroVarianceFallback, Pearson(same, same))
}

func TestPearsonInsufficientSamples(t *testing.T) {
	assert.Equal(t, 0.0, Pearson(nil, nil))
	assert.Equal(t, 0.0, Pearson([]float64{}, []float64{}))
	assert.Equal(t, 0.0, Pearson([]float64{1}, []float64{2}))
	// only one complete pair survives
	assert.Equal(t, 0.0, Pearson([]float64{1, math.NaN(), 3}, []float64{2, 5, math.NaN()}))
}

func TestPearsonUsesCompletePairsOnly(t *testing.T) {
	xs := []float64{1, math.NaN(), 2, 3, 4}
	ys := []float64{2, 100, 4, math.NaN(), 8}
	// Complete pairs (1,2) (2,4) (4,8) lie on a line.
	assert.InDelta(t, 1.0, Pearson(xs, ys), eps)
}

func TestPearsonKnownValues(t *testing.T) {
	assert.InDelta(t, -1.0, Pearson([]float64{1, 2, 3}, []float64{9, 6, 3}), eps)

	// Σdxdy = 8, Σdx² = Σdy² = 10.
	r := Pearson([]float64{1, 2, 3, 4, 5}, []float64{2, 1, 4, 3, 5})
	assert.InDelta(t, 0.8, r, eps)
}

func TestPearsonNeverNaN(t *testing.T) {
	inputs := [][2][]float64{
		{{1, math.Inf(1), 3}, {1, 2, 3}},
		{{math.NaN(), math.NaN()}, {1, 2}},
		{{1e308, -1e308, 1e308}, {1, 2, 3}},
	}
	for _, in := range inputs {
		r := Pearson(in[0], in[1])
		assert.False(t, math.IsNaN(r) || math.IsInf(r, 0), "Pearson(%v, %v) = %v", in[0], in[1], r)
		assert.LessOrEqual(t, math.Abs(r), 1.0)
	}
}

func TestPearsonDoesNotMutateInput(t *testing.T) {
	xs := []float64{3, math.NaN(), 1, 2}
	ys := []float64{1, 2, 3, math.NaN()}
	Pearson(xs, ys)
	assert.Equal(t, 3.0, xs[0])
	assert.True(t, math.IsNaN(xs[1]))
	assert.True(t, math.IsNaN(ys[3]))
}

func TestScenarioCorrelation(t *testing.T) {
	ds := sleepScenario()
	r := Pearson(ds.Column("Sleep Duration"), ds.Column("Quality of Sleep"))
	assert.InDelta(t, 1.0, r, eps)
}

func TestCorrelationMatrix(t *testing.T) {
	ds := numericDataset(map[string][]float64{
		"A": {1, 2, 3, 4, 5, 6},
		"B": {2, 1, 4, 3, 6, 5},
		"C": {3, 3, 3, 3, 3, 3},
	})
	fields := []string{"A", "B", "C", "Missing"}
	mat := CorrelationMatrix(ds, fields)
	require.Len(t, mat, 4)
	for i := range mat {
		require.Len(t, mat[i], 4)
		for j := range mat[i] {
			assert.Equal(t, mat[i][j], mat[j][i], "cell %d,%d", i, j)
		}
	}
	assert.InDelta(t, 1.0, mat[0][0], 1e-12)
	assert.InDelta(t, 1.0, mat[1][1], 1e-12)
	// zero variance and unknown fields fall back on the diagonal too
	assert.Equal(t, 0.0, mat[2][2])
	assert.Equal(t, 0.0, mat[3][3])
	assert.Equal(t, 0.0, mat[0][2])
	assert.InDelta(t, Pearson(ds.Column("A"), ds.Column("B")), mat[0][1], 0)
}

func TestCorrelationMatrixEmptyDataset(t *testing.T) {
	ds := numericDataset(map[string][]float64{"A": nil, "B": nil})
	mat := CorrelationMatrix(ds, []string{"A", "B"})
	assert.Equal(t, [][]float64{{0, 0}, {0, 0}}, mat)
}

func TestTopPairs(t *testing.T) {
	fields := []string{"A", "B", "C"}
	mat := [][]float64{
		{1, 0.2, -0.9},
		{0.2, 1, 0.5},
		{-0.9, 0.5, 1},
	}
	pairs := TopPairs(fields, mat, 2)
	require.Len(t, pairs, 2)
	assert.Equal(t, PairCorr{A: "A", B: "C", R: -0.9}, pairs[0])
	assert.Equal(t, PairCorr{A: "B", B: "C", R: 0.5}, pairs[1])
	assert.Len(t, TopPairs(fields, mat, 0), 3)
}
