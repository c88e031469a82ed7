package dataset

import (
	"bufio"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"
)

// Options controls how raw rows are turned into records.
type Options struct {
	// MaxRows limits rows kept; 0 means unlimited.
	MaxRows int
	// Delimiter for CSV. If 0, sniffed from the header line among ',', ';', '\t'.
	Delimiter rune
	// Numeric parsing locale. If DecimalSeparator is 0, auto-detect per value.
	DecimalSeparator   rune
	ThousandsSeparator rune
	// Sheet selects an XLSX worksheet by name; empty means the first sheet.
	Sheet string
}

// DefaultOptions returns reasonable defaults for survey-sized files.
func DefaultOptions() Options {
	return Options{MaxRows: 100000}
}

// LoadCSV reads a delimited file with a header row into a Dataset.
func LoadCSV(path string, opt Options) (*Dataset, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open csv: %w", err)
	}
	defer f.Close()
	return ReadCSV(f, filepath.Base(path), opt)
}

// ReadCSV parses CSV content from r. name labels the resulting dataset.
func ReadCSV(r io.Reader, name string, opt Options) (*Dataset, error) {
	br := bufio.NewReader(r)
	delim := opt.Delimiter
	if delim == 0 {
		delim = sniffDelimiter(br, name)
	}
	cr := csv.NewReader(br)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true
	cr.Comma = delim

	header, err := cr.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("%s: %w", name, ErrEmptyDataset)
		}
		return nil, fmt.Errorf("read header: %w", err)
	}
	header = append([]string(nil), header...)
	var rows [][]string
	for {
		rec, err := cr.Read()
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return nil, fmt.Errorf("read row %d: %w", len(rows)+1, err)
		}
		rows = append(rows, rec)
	}
	return build(name, header, rows, opt)
}

// build types every column and converts rows into records. A column is
// numeric when each non-empty cell parses as a number.
func build(name string, header []string, rows [][]string, opt Options) (*Dataset, error) {
	ncol := len(header)
	if ncol == 0 {
		return nil, fmt.Errorf("%s: %w", name, ErrEmptyDataset)
	}
	ds := &Dataset{Name: name, Rows: len(rows)}

	maxRows := opt.MaxRows
	if maxRows <= 0 {
		maxRows = math.MaxInt
	}
	if len(rows) > maxRows {
		rows = rows[:maxRows]
		ds.Warnings = append(ds.Warnings, fmt.Sprintf("processed only %d/%d rows due to MaxRows", maxRows, ds.Rows))
	}
	ds.Processed = len(rows)

	units := make([]string, ncol)
	names := make([]string, ncol)
	for i, h := range header {
		names[i], units[i] = splitUnits(strings.TrimSpace(h))
		if names[i] == "" {
			names[i] = fmt.Sprintf("column_%d", i+1)
		}
	}

	// parsed[i][j] holds the number for row i, column j when it parses.
	numeric := make([]bool, ncol)
	seen := make([]bool, ncol)
	for j := range numeric {
		numeric[j] = true
	}
	parsed := make([][]float64, len(rows))
	for i, rec := range rows {
		parsed[i] = make([]float64, ncol)
		for j := 0; j < ncol; j++ {
			v := cell(rec, j)
			if v == "" {
				parsed[i][j] = math.NaN()
				continue
			}
			if strings.Contains(v, "%") && units[j] == "" {
				units[j] = "%"
			}
			x, ok := parseNumeric(v, opt)
			if !ok {
				numeric[j] = false
				continue
			}
			seen[j] = true
			parsed[i][j] = x
		}
	}

	ds.Fields = make([]Field, ncol)
	for j := range header {
		kind := KindCategorical
		if numeric[j] && seen[j] {
			kind = KindNumeric
		}
		ds.Fields[j] = Field{Name: names[j], Unit: units[j], Kind: kind}
	}

	ds.Records = make([]Record, len(rows))
	for i, rec := range rows {
		r := NewRecord()
		for j, f := range ds.Fields {
			v := cell(rec, j)
			if v == "" {
				continue
			}
			if f.Kind == KindNumeric {
				r.Numbers[f.Name] = parsed[i][j]
			} else {
				r.Labels[f.Name] = v
			}
		}
		ds.Records[i] = r
	}
	return ds, nil
}

func cell(rec []string, j int) string {
	if j >= len(rec) {
		return ""
	}
	return strings.TrimSpace(rec[j])
}

// sniffDelimiter peeks at the header line and picks the most frequent of
// ',', ';' and tab. A .tsv name wins outright.
func sniffDelimiter(br *bufio.Reader, name string) rune {
	if strings.HasSuffix(strings.ToLower(name), ".tsv") {
		return '\t'
	}
	head, _ := br.Peek(4096)
	line := string(head)
	if i := strings.IndexByte(line, '\n'); i >= 0 {
		line = line[:i]
	}
	best, bestN := ',', 0
	for _, c := range []rune{',', ';', '\t'} {
		if n := strings.Count(line, string(c)); n > bestN {
			best, bestN = c, n
		}
	}
	return best
}

func parseNumeric(s string, opt Options) (float64, bool) {
	raw := strings.TrimSpace(s)
	if strings.Contains(raw, "%") {
		raw = strings.ReplaceAll(raw, "%", "")
	}
	raw = strings.ReplaceAll(raw, "\u00A0", " ")
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, false
	}
	dec := opt.DecimalSeparator
	thou := opt.ThousandsSeparator
	if dec == 0 {
		cpos := strings.LastIndex(raw, ",")
		dpos := strings.LastIndex(raw, ".")
		switch {
		case cpos >= 0 && dpos >= 0:
			if cpos > dpos {
				dec, thou = ',', '.'
			} else {
				dec, thou = '.', ','
			}
		case cpos >= 0:
			dec = ','
		default:
			dec = '.'
		}
	}
	if thou == 0 {
		for _, sep := range []rune{',', '.', ' '} {
			if sep != dec {
				raw = strings.ReplaceAll(raw, string(sep), "")
			}
		}
	} else if thou != dec {
		raw = strings.ReplaceAll(raw, string(thou), "")
	}
	if dec != '.' {
		raw = strings.ReplaceAll(raw, string(dec), ".")
	}
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsInf(f, 0) || math.IsNaN(f) {
		return 0, false
	}
	return f, true
}

var unitPatterns = []*regexp.Regexp{
	regexp.MustCompile(`^(.*)\s*\(([^)]+)\)\s*$`),  // Sleep Duration (hours)
	regexp.MustCompile(`^(.*)\s*\[([^\]]+)\]\s*$`), // Heart Rate [bpm]
}

func splitUnits(name string) (clean string, unit string) {
	s := strings.TrimSpace(name)
	for _, re := range unitPatterns {
		if m := re.FindStringSubmatch(s); len(m) >= 3 {
			base := strings.TrimSpace(m[1])
			u := strings.TrimSpace(m[2])
			if base != "" && u != "" {
				return base, u
			}
		}
	}
	return s, ""
}
