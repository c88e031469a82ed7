package dataset

import (
	"fmt"
	"path/filepath"
	"strings"
)

// BuiltinName selects the embedded sleep health sample in Load.
const BuiltinName = "builtin"

// Load picks a loader by extension. An empty path or BuiltinName returns
// the embedded sample.
func Load(path string, opt Options) (*Dataset, error) {
	if path == "" || path == BuiltinName {
		return Builtin()
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv", ".tsv", ".txt":
		return LoadCSV(path, opt)
	case ".xlsx":
		return LoadXLSX(path, opt)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, filepath.Ext(path))
	}
}
