package dataset

import (
	"math"
	"strconv"
)

// Kind classifies a column.
type Kind string

const (
	KindNumeric     Kind = "numeric"
	KindCategorical Kind = "categorical"
)

// Field describes one column of a dataset.
type Field struct {
	Name string `json:"name" yaml:"name"`
	Unit string `json:"unit,omitempty" yaml:"unit,omitempty"`
	Kind Kind   `json:"kind" yaml:"kind"`
}

// Record is one respondent. A field lives in exactly one of the two maps.
// Records are never mutated after loading.
type Record struct {
	Numbers map[string]float64 `json:"numbers" yaml:"numbers"`
	Labels  map[string]string  `json:"labels" yaml:"labels"`
}

// NewRecord returns an empty record ready to be filled by a loader.
func NewRecord() Record {
	return Record{Numbers: map[string]float64{}, Labels: map[string]string{}}
}

// Number returns the numeric value of field. Missing or categorical fields
// report ok=false.
func (r Record) Number(field string) (float64, bool) {
	v, ok := r.Numbers[field]
	return v, ok
}

// NumberOrNaN is Number with NaN standing in for a missing value.
func (r Record) NumberOrNaN(field string) float64 {
	if v, ok := r.Numbers[field]; ok {
		return v
	}
	return math.NaN()
}

// Label returns the value of field as a string. Numeric values are
// formatted with %g so they can serve as group keys.
func (r Record) Label(field string) string {
	if s, ok := r.Labels[field]; ok {
		return s
	}
	if v, ok := r.Numbers[field]; ok {
		return strconv.FormatFloat(v, 'g', -1, 64)
	}
	return ""
}

// Value returns the raw value (float64 or string), or nil when absent.
func (r Record) Value(field string) any {
	if v, ok := r.Numbers[field]; ok {
		return v
	}
	if s, ok := r.Labels[field]; ok {
		return s
	}
	return nil
}
