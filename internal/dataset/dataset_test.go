package dataset

import (
	"errors"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/xuri/excelize/v2"
)

var surveyRows = []string{
	"Person ID;Gender;Sleep Duration (hours);Quality of Sleep;Stress Level;BMI Category",
	"1;Male;6,1;6;6;Overweight",
	"2;Female;7,8;8;3;Normal",
	"3;Male;;5;7;Obese",
	"4;Female;8,2;9;3;Normal Weight",
	"5;Male;5,9;4;8;Overweight",
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

func TestLoadCSVSemicolonLocale(t *testing.T) {
	path := writeFile(t, "survey.csv", strings.Join(surveyRows, "\n"))
	ds, err := LoadCSV(path, DefaultOptions())
	if err != nil {
		t.Fatalf("LoadCSV: %v", err)
	}
	if ds.Name != "survey.csv" {
		t.Fatalf("name = %q", ds.Name)
	}
	if ds.Len() != 5 || ds.Rows != 5 || ds.Processed != 5 {
		t.Fatalf("len=%d rows=%d processed=%d", ds.Len(), ds.Rows, ds.Processed)
	}
	sd, err := ds.Field("sleep duration")
	if err != nil {
		t.Fatalf("Field: %v", err)
	}
	if sd.Name != "Sleep Duration" || sd.Unit != "hours" || sd.Kind != KindNumeric {
		t.Fatalf("sleep duration field = %#v", sd)
	}
	col := ds.Column("Sleep Duration")
	want := []float64{6.1, 7.8, math.NaN(), 8.2, 5.9}
	for i := range want {
		if math.IsNaN(want[i]) {
			if !math.IsNaN(col[i]) {
				t.Fatalf("col[%d] = %v, want NaN", i, col[i])
			}
			continue
		}
		if math.Abs(col[i]-want[i]) > 1e-9 {
			t.Fatalf("col[%d] = %v, want %v", i, col[i], want[i])
		}
	}
	if got := ds.NonMissing("Sleep Duration"); got != 4 {
		t.Fatalf("non-missing = %d, want 4", got)
	}
	bmi, _ := ds.Field("BMI Category")
	if bmi.Kind != KindCategorical {
		t.Fatalf("bmi kind = %q", bmi.Kind)
	}
	if got := ds.Records[3].Label("BMI Category"); got != "Normal Weight" {
		t.Fatalf("label = %q", got)
	}
	if got := ds.Records[0].Label("Quality of Sleep"); got != "6" {
		t.Fatalf("numeric label = %q", got)
	}
	if got := strings.Join(ds.NumericFields(), ","); got != "Person ID,Sleep Duration,Quality of Sleep,Stress Level" {
		t.Fatalf("numeric fields = %s", got)
	}
	if got := strings.Join(ds.CategoricalFields(), ","); got != "Gender,BMI Category" {
		t.Fatalf("categorical fields = %s", got)
	}
}

func TestLoadCSVMaxRows(t *testing.T) {
	path := writeFile(t, "survey.csv", strings.Join(surveyRows, "\n"))
	opt := DefaultOptions()
	opt.MaxRows = 3
	ds, err := LoadCSV(path, opt)
	if err != nil {
		t.Fatalf("LoadCSV: %v", err)
	}
	if ds.Len() != 3 || ds.Rows != 5 || ds.Processed != 3 {
		t.Fatalf("len=%d rows=%d processed=%d", ds.Len(), ds.Rows, ds.Processed)
	}
	if len(ds.Warnings) != 1 || ds.Warnings[0] != "processed only 3/5 rows due to MaxRows" {
		t.Fatalf("warnings = %#v", ds.Warnings)
	}
}

func TestLoadCSVEmpty(t *testing.T) {
	path := writeFile(t, "empty.csv", "")
	if _, err := LoadCSV(path, DefaultOptions()); !errors.Is(err, ErrEmptyDataset) {
		t.Fatalf("err = %v, want ErrEmptyDataset", err)
	}
}

func TestHeaderOnlyDataset(t *testing.T) {
	path := writeFile(t, "header.csv", "Age,Gender\n")
	ds, err := LoadCSV(path, DefaultOptions())
	if err != nil {
		t.Fatalf("LoadCSV: %v", err)
	}
	if ds.Len() != 0 {
		t.Fatalf("len = %d", ds.Len())
	}
	// No values seen: nothing proves the column numeric.
	if f, _ := ds.Field("Age"); f.Kind != KindCategorical {
		t.Fatalf("age kind = %q", f.Kind)
	}
}

func TestFieldErrors(t *testing.T) {
	ds, err := Builtin()
	if err != nil {
		t.Fatalf("Builtin: %v", err)
	}
	if _, err := ds.Field("Shoe Size"); !errors.Is(err, ErrUnknownField) {
		t.Fatalf("err = %v, want ErrUnknownField", err)
	}
	_, err = ds.NumericField("Gender")
	var kindErr *FieldKindError
	if !errors.As(err, &kindErr) {
		t.Fatalf("err = %v, want FieldKindError", err)
	}
	if kindErr.Field != "Gender" || kindErr.Want != KindNumeric {
		t.Fatalf("kind err = %#v", kindErr)
	}
}

func TestBuiltinSample(t *testing.T) {
	ds, err := Builtin()
	if err != nil {
		t.Fatalf("Builtin: %v", err)
	}
	if ds.Len() != 40 {
		t.Fatalf("len = %d, want 40", ds.Len())
	}
	if len(ds.Fields) != 13 {
		t.Fatalf("fields = %d, want 13", len(ds.Fields))
	}
	for _, name := range []string{"Age", "Sleep Duration", "Quality of Sleep", "Stress Level", "Heart Rate", "Daily Steps"} {
		if _, err := ds.NumericField(name); err != nil {
			t.Fatalf("numeric field %s: %v", name, err)
		}
	}
	for _, name := range []string{"Gender", "Occupation", "BMI Category", "Blood Pressure", "Sleep Disorder"} {
		f, err := ds.Field(name)
		if err != nil || f.Kind != KindCategorical {
			t.Fatalf("field %s = %#v, %v", name, f, err)
		}
	}
}

func TestLoadDispatch(t *testing.T) {
	ds, err := Load("", DefaultOptions())
	if err != nil || ds.Name != "sleep_health_sample.csv" {
		t.Fatalf("Load builtin = %v, %v", ds, err)
	}
	if _, err := Load("notes.docx", DefaultOptions()); !errors.Is(err, ErrUnsupportedFormat) {
		t.Fatalf("err = %v, want ErrUnsupportedFormat", err)
	}
}

func TestLoadXLSX(t *testing.T) {
	f := excelize.NewFile()
	defer f.Close()
	if _, err := f.NewSheet("Survey"); err != nil {
		t.Fatalf("new sheet: %v", err)
	}
	rows := [][]any{
		{"Gender", "Sleep Duration", "Quality of Sleep"},
		{"Male", 6.0, 5},
		{"Female", 7.0, 6},
		{"Male", 8.0, 7},
	}
	for i, row := range rows {
		cellRef, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			t.Fatalf("cell name: %v", err)
		}
		if err := f.SetSheetRow("Survey", cellRef, &row); err != nil {
			t.Fatalf("set row: %v", err)
		}
	}
	path := filepath.Join(t.TempDir(), "survey.xlsx")
	if err := f.SaveAs(path); err != nil {
		t.Fatalf("save: %v", err)
	}

	opt := DefaultOptions()
	opt.Sheet = "survey"
	ds, err := Load(path, opt)
	if err != nil {
		t.Fatalf("Load xlsx: %v", err)
	}
	if ds.Len() != 3 {
		t.Fatalf("len = %d", ds.Len())
	}
	if f, _ := ds.Field("Quality of Sleep"); f.Kind != KindNumeric {
		t.Fatalf("quality kind = %q", f.Kind)
	}
	if v, ok := ds.Records[2].Number("Sleep Duration"); !ok || v != 8 {
		t.Fatalf("sleep duration = %v, %v", v, ok)
	}

	opt.Sheet = "Missing"
	if _, err := LoadXLSX(path, opt); err == nil || !strings.Contains(err.Error(), "Available sheets") {
		t.Fatalf("err = %v, want sheet not found", err)
	}
}
