package utils

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/goccy/go-json"
)

// EnsureDir ensures the provided directory exists.
func EnsureDir(dir string) error {
	return os.MkdirAll(dir, 0o755)
}

// SafeWriteFile writes data to a temp file and atomically renames it into place.
func SafeWriteFile(path string, data []byte) error {
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("atomic rename: %w", err)
	}
	return nil
}

// PrettyJSON marshals a value as indented JSON.
func PrettyJSON(v any) ([]byte, error) {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal json: %w", err)
	}
	return b, nil
}

// UniquePath returns path unchanged when it is not in taken, otherwise the
// first free "name__N.ext" variant. The returned path is added to taken.
func UniquePath(path string, taken map[string]bool) string {
	candidate := path
	ext := filepath.Ext(path)
	stem := strings.TrimSuffix(path, ext)
	for n := 2; taken[candidate]; n++ {
		candidate = fmt.Sprintf("%s__%d%s", stem, n, ext)
	}
	taken[candidate] = true
	return candidate
}
