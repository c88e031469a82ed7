package dataset

import (
	"fmt"
	"math"
	"strings"
)

// Dataset is an ordered, immutable collection of records loaded from one
// source. Order only matters for stable rendering.
type Dataset struct {
	Name    string   `json:"name" yaml:"name"`
	Fields  []Field  `json:"fields" yaml:"fields"`
	Records []Record `json:"-" yaml:"-"`
	// Rows counts data rows seen in the source, Processed those kept.
	Rows      int      `json:"rows" yaml:"rows"`
	Processed int      `json:"processed" yaml:"processed"`
	Warnings  []string `json:"warnings,omitempty" yaml:"warnings,omitempty"`
}

// Len returns the number of records.
func (d *Dataset) Len() int {
	if d == nil {
		return 0
	}
	return len(d.Records)
}

// Field resolves a column by name, ignoring case and surrounding space.
func (d *Dataset) Field(name string) (Field, error) {
	want := strings.ToLower(strings.TrimSpace(name))
	for _, f := range d.Fields {
		if strings.ToLower(f.Name) == want {
			return f, nil
		}
	}
	return Field{}, fmt.Errorf("%w: %q", ErrUnknownField, name)
}

// NumericField resolves name and checks it holds numbers.
func (d *Dataset) NumericField(name string) (Field, error) {
	f, err := d.Field(name)
	if err != nil {
		return Field{}, err
	}
	if f.Kind != KindNumeric {
		return Field{}, &FieldKindError{Field: f.Name, Have: f.Kind, Want: KindNumeric}
	}
	return f, nil
}

// NumericFields lists numeric columns in source order.
func (d *Dataset) NumericFields() []string {
	var out []string
	for _, f := range d.Fields {
		if f.Kind == KindNumeric {
			out = append(out, f.Name)
		}
	}
	return out
}

// CategoricalFields lists categorical columns in source order.
func (d *Dataset) CategoricalFields() []string {
	var out []string
	for _, f := range d.Fields {
		if f.Kind == KindCategorical {
			out = append(out, f.Name)
		}
	}
	return out
}

// Column returns the values of a numeric field, NaN where a record has none.
// The slice is freshly allocated.
func (d *Dataset) Column(field string) []float64 {
	out := make([]float64, d.Len())
	for i, r := range d.Records {
		out[i] = r.NumberOrNaN(field)
	}
	return out
}

// Labels returns the values of field formatted as strings.
func (d *Dataset) Labels(field string) []string {
	out := make([]string, d.Len())
	for i, r := range d.Records {
		out[i] = r.Label(field)
	}
	return out
}

// NonMissing counts records that carry a value for field.
func (d *Dataset) NonMissing(field string) int {
	n := 0
	for _, r := range d.Records {
		if v, ok := r.Numbers[field]; ok && !math.IsNaN(v) {
			n++
			continue
		}
		if s, ok := r.Labels[field]; ok && s != "" {
			n++
		}
	}
	return n
}
