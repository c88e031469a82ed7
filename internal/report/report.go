package report

import (
	"fmt"
	"math"
	"sort"
	"strings"
	"time"

	"github.com/KaramelBytes/sleepstat-cli/internal/analysis"
	"github.com/KaramelBytes/sleepstat-cli/internal/dataset"
	"github.com/google/uuid"
	"github.com/montanaflynn/stats"
)

const (
	// defaultRelationships is how many top-ranked pairs get a regression
	// when no explicit pairs are requested.
	defaultRelationships = 3
	// maxDistributionValues skips free-text-like columns such as blood
	// pressure readings in the categorical distributions.
	maxDistributionValues = 20
	topValues             = 5
)

// Options controls which sections Build fills in.
type Options struct {
	// Fields are the numeric columns for the correlation matrix and
	// histograms. Empty means every numeric column.
	Fields []string
	Bins   int
	// TopPairs limits the ranked correlation pairs; 0 lists all.
	TopPairs int
	// Pairs are explicit x/y regressions. Empty means the strongest pairs.
	Pairs [][2]string
	// GroupBy lists the columns to group by; Value is summarized within each
	// group and defaults to the first field.
	GroupBy []string
	Value   string
	// CrossTabs are row/column field pairs.
	CrossTabs  [][2]string
	SampleRows int
}

// DefaultOptions returns the defaults used by the analyze command.
func DefaultOptions() Options {
	return Options{Bins: 10, TopPairs: 10, SampleRows: 5}
}

// FieldSummary describes one column of the dataset.
type FieldSummary struct {
	Name    string       `json:"name" yaml:"name"`
	Unit    string       `json:"unit,omitempty" yaml:"unit,omitempty"`
	Kind    dataset.Kind `json:"kind" yaml:"kind"`
	NonNull int          `json:"nonNull" yaml:"nonNull"`
	Missing int          `json:"missing" yaml:"missing"`
	// Numeric stats
	Min  float64 `json:"min,omitempty" yaml:"min,omitempty"`
	Max  float64 `json:"max,omitempty" yaml:"max,omitempty"`
	Mean float64 `json:"mean,omitempty" yaml:"mean,omitempty"`
	Std  float64 `json:"std,omitempty" yaml:"std,omitempty"`
	// Categorical top values
	Unique int                      `json:"unique,omitempty" yaml:"unique,omitempty"`
	Top    []analysis.CategoryCount `json:"top,omitempty" yaml:"top,omitempty"`
}

// CorrelationSection backs the correlation heatmap.
type CorrelationSection struct {
	Fields   []string            `json:"fields" yaml:"fields"`
	Matrix   [][]float64         `json:"matrix" yaml:"matrix"`
	TopPairs []analysis.PairCorr `json:"topPairs" yaml:"topPairs"`
}

// HistogramSection backs one histogram.
type HistogramSection struct {
	Field string              `json:"field" yaml:"field"`
	Unit  string              `json:"unit,omitempty" yaml:"unit,omitempty"`
	Bins  []analysis.BinCount `json:"bins" yaml:"bins"`
}

// DistributionSection backs a demographic bar or pie chart.
type DistributionSection struct {
	Field  string                   `json:"field" yaml:"field"`
	Counts []analysis.CategoryCount `json:"counts" yaml:"counts"`
}

// GroupSection holds the summaries of Value per group of By.
type GroupSection struct {
	By        string                  `json:"by" yaml:"by"`
	Value     string                  `json:"value" yaml:"value"`
	Summaries []analysis.GroupSummary `json:"summaries" yaml:"summaries"`
	Means     *analysis.GroupedBars   `json:"means,omitempty" yaml:"means,omitempty"`
}

// CrossTabSection is a category heatmap between two fields.
type CrossTabSection struct {
	RowField         string `json:"rowField" yaml:"rowField"`
	ColField         string `json:"colField" yaml:"colField"`
	Value            string `json:"value,omitempty" yaml:"value,omitempty"`
	analysis.Heatmap `yaml:",inline"`
}

// Report is the derived data for one dataset. Sections left empty are
// omitted from every output format.
type Report struct {
	ID          string    `json:"id" yaml:"id"`
	GeneratedAt time.Time `json:"generatedAt" yaml:"generatedAt"`
	Dataset     string    `json:"dataset" yaml:"dataset"`
	Rows        int       `json:"rows" yaml:"rows"`
	Processed   int       `json:"processed" yaml:"processed"`

	Fields        []FieldSummary          `json:"fields,omitempty" yaml:"fields,omitempty"`
	Correlation   *CorrelationSection     `json:"correlation,omitempty" yaml:"correlation,omitempty"`
	Relationships []analysis.Relationship `json:"relationships,omitempty" yaml:"relationships,omitempty"`
	Scatter       *analysis.Scatter       `json:"scatter,omitempty" yaml:"scatter,omitempty"`
	Histograms    []HistogramSection      `json:"histograms,omitempty" yaml:"histograms,omitempty"`
	Distributions []DistributionSection   `json:"distributions,omitempty" yaml:"distributions,omitempty"`
	Groups        []GroupSection          `json:"groups,omitempty" yaml:"groups,omitempty"`
	CrossTabs     []CrossTabSection       `json:"crossTabs,omitempty" yaml:"crossTabs,omitempty"`
	SampleHeader  []string                `json:"sampleHeader,omitempty" yaml:"sampleHeader,omitempty"`
	Samples       [][]string              `json:"samples,omitempty" yaml:"samples,omitempty"`
	Warnings      []string                `json:"warnings,omitempty" yaml:"warnings,omitempty"`
}

// New returns an empty report for ds with a fresh ID.
func New(ds *dataset.Dataset) *Report {
	r := &Report{
		ID:          uuid.NewString(),
		GeneratedAt: time.Now().UTC(),
	}
	if ds != nil {
		r.Dataset = ds.Name
		r.Rows = ds.Rows
		r.Processed = ds.Processed
		r.Warnings = append(r.Warnings, ds.Warnings...)
	}
	return r
}

// Build computes every section selected by opt.
func Build(ds *dataset.Dataset, opt Options) (*Report, error) {
	r := New(ds)
	r.Fields = Schema(ds)

	fields, err := NumericFields(ds, opt.Fields)
	if err != nil {
		return nil, err
	}
	if len(fields) >= 2 {
		r.Correlation = Correlations(ds, fields, opt.TopPairs)
	}

	pairs := opt.Pairs
	if len(pairs) == 0 && r.Correlation != nil {
		for i, p := range r.Correlation.TopPairs {
			if i == defaultRelationships {
				break
			}
			pairs = append(pairs, [2]string{p.A, p.B})
		}
	}
	for _, p := range pairs {
		rel, err := Relationship(ds, p[0], p[1])
		if err != nil {
			return nil, err
		}
		r.Relationships = append(r.Relationships, rel)
	}

	for _, f := range fields {
		h, err := Histogram(ds, f, opt.Bins)
		if err != nil {
			return nil, err
		}
		r.Histograms = append(r.Histograms, h)
	}
	r.Distributions = Distributions(ds)

	value := opt.Value
	if value == "" && len(fields) > 0 {
		value = fields[0]
	}
	for _, by := range opt.GroupBy {
		g, err := Groups(ds, GroupOptions{By: by, Value: value, Means: fields})
		if err != nil {
			return nil, err
		}
		r.Groups = append(r.Groups, g)
	}

	for _, ct := range opt.CrossTabs {
		c, err := CrossTab(ds, ct[0], ct[1], "", opt.Bins)
		if err != nil {
			return nil, err
		}
		r.CrossTabs = append(r.CrossTabs, c)
	}

	r.SampleHeader, r.Samples = Samples(ds, opt.SampleRows)
	return r, nil
}

// NumericFields resolves names to numeric columns. Empty names selects every
// numeric column of ds.
func NumericFields(ds *dataset.Dataset, names []string) ([]string, error) {
	if len(names) == 0 {
		return ds.NumericFields(), nil
	}
	out := make([]string, 0, len(names))
	for _, n := range names {
		f, err := ds.NumericField(n)
		if err != nil {
			return nil, err
		}
		out = append(out, f.Name)
	}
	return out, nil
}

// Schema summarizes each column of ds.
func Schema(ds *dataset.Dataset) []FieldSummary {
	out := make([]FieldSummary, 0, len(ds.Fields))
	for _, f := range ds.Fields {
		s := FieldSummary{Name: f.Name, Unit: f.Unit, Kind: f.Kind}
		s.NonNull = ds.NonMissing(f.Name)
		s.Missing = ds.Len() - s.NonNull
		switch f.Kind {
		case dataset.KindNumeric:
			vals := presentValues(ds.Column(f.Name))
			s.Min, _ = stats.Min(vals)
			s.Max, _ = stats.Max(vals)
			s.Mean, _ = stats.Mean(vals)
			if len(vals) > 1 {
				s.Std, _ = stats.StandardDeviationSample(vals)
			}
		case dataset.KindCategorical:
			counts := analysis.CategoryCounts(ds.Labels(f.Name))
			s.Unique = len(counts)
			s.Top = topCounts(counts, topValues)
		}
		out = append(out, s)
	}
	return out
}

// Correlations computes the matrix over fields and ranks its pairs.
func Correlations(ds *dataset.Dataset, fields []string, top int) *CorrelationSection {
	mat := analysis.CorrelationMatrix(ds, fields)
	return &CorrelationSection{
		Fields:   fields,
		Matrix:   mat,
		TopPairs: analysis.TopPairs(fields, mat, top),
	}
}

// Relationship resolves both numeric fields and relates y to x.
func Relationship(ds *dataset.Dataset, x, y string) (analysis.Relationship, error) {
	fx, err := ds.NumericField(x)
	if err != nil {
		return analysis.Relationship{}, err
	}
	fy, err := ds.NumericField(y)
	if err != nil {
		return analysis.Relationship{}, err
	}
	return analysis.Relate(ds, fx.Name, fy.Name), nil
}

// Scatter is Relationship plus the plotted points and trend line.
func Scatter(ds *dataset.Dataset, x, y string) (*analysis.Scatter, error) {
	fx, err := ds.NumericField(x)
	if err != nil {
		return nil, err
	}
	fy, err := ds.NumericField(y)
	if err != nil {
		return nil, err
	}
	sc := analysis.ScatterSeries(ds, fx.Name, fy.Name)
	return &sc, nil
}

// Histogram bins one numeric field.
func Histogram(ds *dataset.Dataset, field string, bins int) (HistogramSection, error) {
	f, err := ds.NumericField(field)
	if err != nil {
		return HistogramSection{}, err
	}
	if bins <= 0 {
		return HistogramSection{}, fmt.Errorf("invalid bin count %d for %s", bins, f.Name)
	}
	return HistogramSection{Field: f.Name, Unit: f.Unit, Bins: analysis.FieldHistogram(ds, f.Name, bins)}, nil
}

// Distributions counts the values of every categorical column with at most
// maxDistributionValues distinct values.
func Distributions(ds *dataset.Dataset) []DistributionSection {
	var out []DistributionSection
	for _, name := range ds.CategoricalFields() {
		counts := analysis.CategoryCounts(ds.Labels(name))
		if len(counts) == 0 || len(counts) > maxDistributionValues {
			continue
		}
		out = append(out, DistributionSection{Field: name, Counts: counts})
	}
	return out
}

// GroupOptions selects how records are grouped.
type GroupOptions struct {
	// By is the grouping column; empty puts every record in one group.
	By string
	// BinBy groups by equal-width bins of a numeric column instead of By.
	BinBy string
	Bins  int
	// Value is summarized within each group.
	Value string
	// Means lists numeric fields for the grouped bar chart. Optional.
	Means []string
}

// AllKey labels the single group used when no grouping column is given.
const AllKey = "All"

// Groups summarizes opt.Value per group.
func Groups(ds *dataset.Dataset, opt GroupOptions) (GroupSection, error) {
	vf, err := ds.NumericField(opt.Value)
	if err != nil {
		return GroupSection{}, err
	}
	key, label, err := groupKey(ds, opt)
	if err != nil {
		return GroupSection{}, err
	}
	g := GroupSection{
		By:        label,
		Value:     vf.Name,
		Summaries: analysis.GroupSummaries(ds, key, analysis.FieldValue(vf.Name)),
	}
	if len(opt.Means) > 0 {
		means := analysis.GroupedMeans(ds, key, opt.Means)
		g.Means = &means
	}
	return g, nil
}

func groupKey(ds *dataset.Dataset, opt GroupOptions) (analysis.KeyFunc, string, error) {
	switch {
	case opt.BinBy != "":
		return binnedKey(ds, opt.BinBy, opt.Bins)
	case opt.By != "":
		f, err := ds.Field(opt.By)
		if err != nil {
			return nil, "", err
		}
		return analysis.FieldKey(f.Name), f.Name, nil
	default:
		return analysis.ConstKey(AllKey), AllKey, nil
	}
}

func binnedKey(ds *dataset.Dataset, field string, bins int) (analysis.KeyFunc, string, error) {
	f, err := ds.NumericField(field)
	if err != nil {
		return nil, "", err
	}
	if bins <= 0 {
		return nil, "", fmt.Errorf("invalid bin count %d for %s", bins, f.Name)
	}
	b := analysis.EqualWidthBins(ds.Column(f.Name), bins)
	return analysis.BinKey(f.Name, b), fmt.Sprintf("%s (%d bins)", f.Name, bins), nil
}

// CrossTab builds a heatmap of rows against cols. Numeric axes are split into
// bins equal-width bins. value, when set, adds the per-cell mean.
func CrossTab(ds *dataset.Dataset, rows, cols, value string, bins int) (CrossTabSection, error) {
	rk, rl, err := axisKey(ds, rows, bins)
	if err != nil {
		return CrossTabSection{}, err
	}
	ck, cl, err := axisKey(ds, cols, bins)
	if err != nil {
		return CrossTabSection{}, err
	}
	out := CrossTabSection{RowField: rl, ColField: cl}
	var vf analysis.ValueFunc
	if value != "" {
		f, err := ds.NumericField(value)
		if err != nil {
			return CrossTabSection{}, err
		}
		vf = analysis.FieldValue(f.Name)
		out.Value = f.Name
	}
	out.Heatmap = analysis.CrossTab(ds, rk, ck, vf)
	return out, nil
}

func axisKey(ds *dataset.Dataset, name string, bins int) (analysis.KeyFunc, string, error) {
	f, err := ds.Field(name)
	if err != nil {
		return nil, "", err
	}
	if f.Kind == dataset.KindNumeric {
		return binnedKey(ds, f.Name, bins)
	}
	return analysis.FieldKey(f.Name), f.Name, nil
}

// Samples returns the header and the first n records as strings.
func Samples(ds *dataset.Dataset, n int) ([]string, [][]string) {
	if n <= 0 || ds.Len() == 0 {
		return nil, nil
	}
	if n > ds.Len() {
		n = ds.Len()
	}
	header := make([]string, len(ds.Fields))
	for i, f := range ds.Fields {
		header[i] = f.Name
	}
	rows := make([][]string, n)
	for i := 0; i < n; i++ {
		row := make([]string, len(ds.Fields))
		for j, f := range ds.Fields {
			row[j] = ds.Records[i].Label(f.Name)
		}
		rows[i] = row
	}
	return header, rows
}

func presentValues(col []float64) []float64 {
	out := make([]float64, 0, len(col))
	for _, v := range col {
		if !math.IsNaN(v) {
			out = append(out, v)
		}
	}
	return out
}

func topCounts(counts []analysis.CategoryCount, n int) []analysis.CategoryCount {
	sorted := append([]analysis.CategoryCount(nil), counts...)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Count > sorted[j].Count })
	if len(sorted) > n {
		sorted = sorted[:n]
	}
	return sorted
}

// Title is the dataset name for headings, never empty.
func (r *Report) Title() string {
	if s := strings.TrimSpace(r.Dataset); s != "" {
		return s
	}
	return "(unnamed)"
}
