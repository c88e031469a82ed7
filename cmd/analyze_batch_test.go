package cmd

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestAnalyzeBatch_OutDirCollisions(t *testing.T) {
	home := isolateHome(t)

	// Two CSV files with the same basename in different directories
	d1 := filepath.Join(home, "d1")
	d2 := filepath.Join(home, "d2")
	for _, d := range []string{d1, d2} {
		if err := os.MkdirAll(d, 0o755); err != nil {
			t.Fatalf("mkdir %s: %v", d, err)
		}
	}
	writeFile(t, filepath.Join(d1, "survey.csv"), scenarioCSV)
	writeFile(t, filepath.Join(d2, "survey.csv"), strings.Replace(scenarioCSV, "Male,6,5", "Male,9,8", 1))

	outDir := filepath.Join(home, "reports")
	out := runCmd(t, "analyze-batch", filepath.Join(home, "d*", "survey.csv"), "--out-dir", outDir, "--sample-rows", "0", "--jobs", "2")
	if !strings.Contains(out, "[2/2]") {
		t.Fatalf("missing progress output: %s", out)
	}

	first := filepath.Join(outDir, "survey.md")
	second := filepath.Join(outDir, "survey__2.md")
	for _, p := range []string{first, second} {
		b, err := os.ReadFile(p)
		if err != nil {
			t.Fatalf("missing report %s: %v", p, err)
		}
		if !strings.Contains(string(b), "[CORRELATIONS]") {
			t.Fatalf("report %s lacks correlations", p)
		}
		if strings.Contains(string(b), "[HEAD AND SAMPLE ROWS]") {
			t.Fatalf("expected no sample rows in %s", p)
		}
	}
	// results keep input order: d1 is written first
	b, _ := os.ReadFile(second)
	if !strings.Contains(string(b), "max 9") {
		t.Fatalf("second report should come from d2:\n%s", b)
	}

	// a rerun must not overwrite existing reports
	runCmd(t, "analyze-batch", filepath.Join(d1, "survey.csv"), "--out-dir", outDir, "--quiet")
	if _, err := os.Stat(filepath.Join(outDir, "survey__3.md")); err != nil {
		t.Fatalf("expected collision suffix on rerun: %v", err)
	}
}

func TestAnalyzeBatch_JSONStdoutAndErrors(t *testing.T) {
	home := isolateHome(t)
	p := filepath.Join(home, "a.csv")
	writeFile(t, p, scenarioCSV)

	out := runCmd(t, "analyze-batch", p, "--format", "json")
	if !strings.Contains(out, `"dataset": "a.csv"`) {
		t.Fatalf("json output: %s", out)
	}

	if _, err := execute(t, "analyze-batch", filepath.Join(home, "none*.csv")); err == nil {
		t.Fatal("expected error when nothing matches")
	}
	bad := filepath.Join(home, "notes.pdf")
	writeFile(t, bad, "%PDF")
	if _, err := execute(t, "analyze-batch", p, bad); err == nil {
		t.Fatal("expected error for unsupported input")
	}
}
