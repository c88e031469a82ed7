package analysis

import (
	"math"

	"github.com/KaramelBytes/sleepstat-cli/internal/dataset"
)

const eps = 1e-9

// sleepScenario is six respondents whose sleep quality is duration minus one.
func sleepScenario() *dataset.Dataset {
	duration := []float64{6, 7, 8, 6, 7, 8}
	quality := []float64{5, 6, 7, 5, 6, 7}
	gender := []string{"Male", "Female", "Male", "Female", "Male", "Female"}
	ds := &dataset.Dataset{
		Name: "scenario",
		Fields: []dataset.Field{
			{Name: "Gender", Kind: dataset.KindCategorical},
			{Name: "Sleep Duration", Unit: "hours", Kind: dataset.KindNumeric},
			{Name: "Quality of Sleep", Kind: dataset.KindNumeric},
		},
	}
	for i := range duration {
		r := dataset.NewRecord()
		r.Labels["Gender"] = gender[i]
		r.Numbers["Sleep Duration"] = duration[i]
		r.Numbers["Quality of Sleep"] = quality[i]
		ds.Records = append(ds.Records, r)
	}
	ds.Rows, ds.Processed = len(ds.Records), len(ds.Records)
	return ds
}

// numericDataset builds records from parallel columns. NaN cells are left
// out of the record.
func numericDataset(cols map[string][]float64) *dataset.Dataset {
	ds := &dataset.Dataset{Name: "numeric"}
	n := 0
	for name, vals := range cols {
		ds.Fields = append(ds.Fields, dataset.Field{Name: name, Kind: dataset.KindNumeric})
		if len(vals) > n {
			n = len(vals)
		}
	}
	for i := 0; i < n; i++ {
		r := dataset.NewRecord()
		for name, vals := range cols {
			if i < len(vals) && !math.IsNaN(vals[i]) {
				r.Numbers[name] = vals[i]
			}
		}
		ds.Records = append(ds.Records, r)
	}
	return ds
}
