package analysis

import (
	"github.com/KaramelBytes/sleepstat-cli/internal/dataset"
	"github.com/montanaflynn/stats"
	"gonum.org/v1/gonum/stat"
)

// Regression is an ordinary least-squares fit y = Intercept + Slope·x.
type Regression struct {
	Slope     float64 `json:"slope" yaml:"slope"`
	Intercept float64 `json:"intercept" yaml:"intercept"`
	R2        float64 `json:"r2" yaml:"r2"`
}

// Predict evaluates the fitted line at x.
func (r Regression) Predict(x float64) float64 {
	return r.Intercept + r.Slope*x
}

// LinearRegression fits y on x by least squares over complete pairs.
//
//   - fewer than MinSamples pairs: {0, 0, 0}
//   - all x identical: slope ZeroVarianceFallback, intercept mean(y), R² 0
//   - all y identical: slope 0, intercept y, R² ConstantResponseR2
func LinearRegression(xs, ys []float64) Regression {
	px, py := completePairs(xs, ys)
	if len(px) < MinSamples {
		return Regression{}
	}
	if constant(py) {
		return Regression{Slope: 0, Intercept: py[0], R2: ConstantResponseR2}
	}
	if constant(px) {
		my, _ := stats.Mean(py)
		return Regression{Slope: ZeroVarianceFallback, Intercept: my, R2: 0}
	}
	alpha, beta := stat.LinearRegression(px, py, nil, false)
	r2 := stat.RSquared(px, py, nil, alpha, beta)
	return Regression{
		Slope:     finiteOr(beta, ZeroVarianceFallback),
		Intercept: finiteOr(alpha, ZeroVarianceFallback),
		R2:        finiteOr(r2, ConstantResponseR2),
	}
}

// Relationship bundles what a scatter plot of two fields needs. N is the
// number of complete pairs. Defined is false when the coefficients come from
// the fallback policy rather than from the data.
type Relationship struct {
	X           string     `json:"x" yaml:"x"`
	Y           string     `json:"y" yaml:"y"`
	N           int        `json:"n" yaml:"n"`
	Defined     bool       `json:"defined" yaml:"defined"`
	Correlation float64    `json:"correlation" yaml:"correlation"`
	Regression  Regression `json:"regression" yaml:"regression"`
}

// Relate computes correlation and regression of field y on field x.
func Relate(ds *dataset.Dataset, x, y string) Relationship {
	xs, ys := ds.Column(x), ds.Column(y)
	px, py := completePairs(xs, ys)
	return Relationship{
		X:           x,
		Y:           y,
		N:           len(px),
		Defined:     len(px) >= MinSamples && !constant(px) && !constant(py),
		Correlation: Pearson(xs, ys),
		Regression:  LinearRegression(xs, ys),
	}
}

// Point is one scatter plot mark.
type Point struct {
	X float64 `json:"x" yaml:"x"`
	Y float64 `json:"y" yaml:"y"`
}

// Scatter is the data behind a scatter plot with a trend line.
type Scatter struct {
	Relationship `yaml:",inline"`
	Points []Point `json:"points" yaml:"points"`
	// TrendLine spans the observed x range. Empty when N is 0.
	TrendLine []Point `json:"trendLine,omitempty" yaml:"trendLine,omitempty"`
}

// ScatterSeries returns the complete pairs of x and y in dataset order plus
// the fitted line evaluated at the smallest and largest x.
func ScatterSeries(ds *dataset.Dataset, x, y string) Scatter {
	rel := Relate(ds, x, y)
	px, py := completePairs(ds.Column(x), ds.Column(y))
	out := Scatter{Relationship: rel, Points: make([]Point, len(px))}
	for i := range px {
		out.Points[i] = Point{X: px[i], Y: py[i]}
	}
	if len(px) > 0 {
		lo, _ := stats.Min(px)
		hi, _ := stats.Max(px)
		out.TrendLine = []Point{
			{X: lo, Y: rel.Regression.Predict(lo)},
			{X: hi, Y: rel.Regression.Predict(hi)},
		}
	}
	return out
}
