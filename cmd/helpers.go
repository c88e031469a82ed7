package cmd

import (
	"fmt"
	"strings"

	"github.com/KaramelBytes/sleepstat-cli/internal/dataset"
	"github.com/KaramelBytes/sleepstat-cli/internal/report"
	"github.com/KaramelBytes/sleepstat-cli/internal/utils"
	"github.com/spf13/cobra"
)

// datasetOptions merges the input parsing flags over the config.
func datasetOptions() (dataset.Options, error) {
	c := settings()
	opt := dataset.DefaultOptions()
	if c.MaxRows > 0 {
		opt.MaxRows = c.MaxRows
	}
	if flagMaxRows > 0 {
		opt.MaxRows = flagMaxRows
	}
	opt.Sheet = flagSheet

	delim := flagDelimiter
	if delim == "" {
		delim = c.Delimiter
	}
	switch delim {
	case "":
	case ",":
		opt.Delimiter = ','
	case "\t", "tab":
		opt.Delimiter = '\t'
	case ";":
		opt.Delimiter = ';'
	default:
		return opt, fmt.Errorf("unsupported --delimiter: %s", delim)
	}

	dec := flagDecimal
	if dec == "" {
		dec = c.DecimalSeparator
	}
	switch strings.ToLower(strings.TrimSpace(dec)) {
	case ",", "comma":
		opt.DecimalSeparator = ','
	case ".", "dot":
		opt.DecimalSeparator = '.'
	case "":
	default:
		return opt, fmt.Errorf("unsupported --decimal: %s (use '.'|'comma')", dec)
	}
	switch strings.ToLower(flagThousands) {
	case ",":
		opt.ThousandsSeparator = ','
	case ".":
		opt.ThousandsSeparator = '.'
	case "space", " ":
		opt.ThousandsSeparator = ' '
	case "":
	default:
		return opt, fmt.Errorf("unsupported --thousands: %s (use ','|'.'|'space')", flagThousands)
	}
	return opt, nil
}

// loadDataset loads args[0], or the embedded sample when no path is given.
func loadDataset(args []string) (*dataset.Dataset, error) {
	path := dataset.BuiltinName
	if len(args) > 0 {
		path = args[0]
	}
	opt, err := datasetOptions()
	if err != nil {
		return nil, err
	}
	ds, err := dataset.Load(path, opt)
	if err != nil {
		return nil, fmt.Errorf("load dataset: %w", err)
	}
	logger.Debug("dataset loaded", "name", ds.Name, "rows", ds.Rows, "processed", ds.Processed, "fields", len(ds.Fields))
	for _, w := range ds.Warnings {
		logger.Warn(w, "dataset", ds.Name)
	}
	return ds, nil
}

// selectFields resolves names, or falls back to the configured default
// fields present in ds, or every numeric field.
func selectFields(ds *dataset.Dataset, names []string) ([]string, error) {
	if len(names) > 0 {
		return report.NumericFields(ds, names)
	}
	var out []string
	for _, name := range settings().DefaultFields {
		if f, err := ds.NumericField(name); err == nil {
			out = append(out, f.Name)
		}
	}
	if len(out) < 2 {
		return ds.NumericFields(), nil
	}
	return out, nil
}

// binCount prefers an explicit flag value over the configured default.
func binCount(cmd *cobra.Command, flag string, v int) int {
	if cmd.Flags().Changed(flag) {
		return v
	}
	return settings().DefaultBins
}

// parsePairs reads "x:y" pairs.
func parsePairs(raw []string) ([][2]string, error) {
	var out [][2]string
	for _, p := range raw {
		a, b, ok := strings.Cut(p, ":")
		a, b = strings.TrimSpace(a), strings.TrimSpace(b)
		if !ok || a == "" || b == "" {
			return nil, fmt.Errorf("invalid pair %q (use field:field)", p)
		}
		out = append(out, [2]string{a, b})
	}
	return out, nil
}

func outputFormat() (report.Format, error) {
	f := outFormat
	if f == "" {
		f = settings().Format
	}
	return report.ParseFormat(f)
}

// emit encodes r and writes it to --output or the command's stdout.
func emit(cmd *cobra.Command, r *report.Report) error {
	format, err := outputFormat()
	if err != nil {
		return err
	}
	b, err := r.Encode(format)
	if err != nil {
		return err
	}
	if outputPath != "" {
		if err := utils.SafeWriteFile(outputPath, b); err != nil {
			return fmt.Errorf("write output: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "✓ Wrote %s report to %s\n", format, outputPath)
		return nil
	}
	_, err = cmd.OutOrStdout().Write(b)
	return err
}
