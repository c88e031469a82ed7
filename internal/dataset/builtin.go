package dataset

import (
	"bytes"
	_ "embed"
)

//go:embed data/sleep_health_sample.csv
var sleepHealthSample []byte

// Builtin returns a fresh copy of the embedded sleep health survey sample.
func Builtin() (*Dataset, error) {
	return ReadCSV(bytes.NewReader(sleepHealthSample), "sleep_health_sample.csv", DefaultOptions())
}
