package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	c, err := Load("")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if c.DefaultBins != 10 || c.Format != "markdown" || c.MaxRows != 100000 || c.TopPairs != 10 {
		t.Fatalf("unexpected defaults: %+v", c)
	}
	if len(c.DefaultFields) != len(DefaultFields) {
		t.Fatalf("default fields: %v", c.DefaultFields)
	}
	if c.LogLevel != "info" {
		t.Fatalf("log level: %q", c.LogLevel)
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	in := &Global{
		DefaultBins:   6,
		DefaultFields: []string{"Age", "Heart Rate"},
		Format:        "json",
		Delimiter:     ";",
		MaxRows:       500,
		LogLevel:      "debug",
	}
	if err := Save(in, path); err != nil {
		t.Fatalf("save: %v", err)
	}
	out, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if out.DefaultBins != 6 || out.Format != "json" || out.Delimiter != ";" || out.MaxRows != 500 {
		t.Fatalf("round trip mismatch: %+v", out)
	}
	if len(out.DefaultFields) != 2 || out.DefaultFields[1] != "Heart Rate" {
		t.Fatalf("fields: %v", out.DefaultFields)
	}
}

func TestEnvOverridesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("default_bins: 4\nformat: yaml\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("SLEEPSTAT_DEFAULT_BINS", "12")
	c, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if c.DefaultBins != 12 {
		t.Fatalf("env should win over file, got %d", c.DefaultBins)
	}
	if c.Format != "yaml" {
		t.Fatalf("file should win over defaults, got %q", c.Format)
	}
}

func TestLoadMissingExplicitFile(t *testing.T) {
	c, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	if err != nil {
		t.Fatalf("missing file should fall back to defaults: %v", err)
	}
	if c.DefaultBins != 10 {
		t.Fatalf("bins: %d", c.DefaultBins)
	}
}

func TestLoadBrokenFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("default_bins: [\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Fatal("expected error for malformed yaml")
	}
}
