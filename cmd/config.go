package cmd

import (
	"fmt"
	"strconv"
	"strings"

	cfgpkg "github.com/KaramelBytes/sleepstat-cli/internal/config"
	"github.com/KaramelBytes/sleepstat-cli/internal/report"
	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "View or set sleepstat configuration",
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show effective configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		c := settings()
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "default_bins: %d\n", c.DefaultBins)
		fmt.Fprintf(out, "default_fields: %s\n", strings.Join(c.DefaultFields, ", "))
		fmt.Fprintf(out, "format: %s\n", c.Format)
		fmt.Fprintf(out, "top_pairs: %d\n", c.TopPairs)
		if c.Delimiter != "" {
			fmt.Fprintf(out, "delimiter: %q\n", c.Delimiter)
		}
		if c.DecimalSeparator != "" {
			fmt.Fprintf(out, "decimal_separator: %q\n", c.DecimalSeparator)
		}
		fmt.Fprintf(out, "max_rows: %d\n", c.MaxRows)
		fmt.Fprintf(out, "sample_rows: %d\n", c.SampleRows)
		fmt.Fprintf(out, "log_level: %s\n", c.LogLevel)
		return nil
	},
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Set a config value and save to disk",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		key, val := args[0], args[1]
		if cfg == nil {
			c, err := cfgpkg.Load(cfgFile)
			if err != nil {
				return err
			}
			cfg = c
		}
		switch key {
		case "default_bins":
			i, err := strconv.Atoi(val)
			if err != nil || i <= 0 {
				return fmt.Errorf("invalid positive int for default_bins: %v", val)
			}
			cfg.DefaultBins = i
		case "default_fields":
			var fields []string
			for _, f := range strings.Split(val, ",") {
				if f = strings.TrimSpace(f); f != "" {
					fields = append(fields, f)
				}
			}
			cfg.DefaultFields = fields
		case "format":
			f, err := report.ParseFormat(val)
			if err != nil {
				return err
			}
			cfg.Format = string(f)
		case "top_pairs":
			i, err := strconv.Atoi(val)
			if err != nil || i < 0 {
				return fmt.Errorf("invalid int for top_pairs: %v", val)
			}
			cfg.TopPairs = i
		case "delimiter":
			switch val {
			case ",", ";", "tab", "":
				cfg.Delimiter = val
			default:
				return fmt.Errorf("invalid delimiter: %q (use ',' | ';' | 'tab')", val)
			}
		case "decimal_separator":
			switch strings.ToLower(val) {
			case ".", "dot", ",", "comma", "":
				cfg.DecimalSeparator = val
			default:
				return fmt.Errorf("invalid decimal_separator: %q (use '.'|'comma')", val)
			}
		case "max_rows":
			i, err := strconv.Atoi(val)
			if err != nil || i < 0 {
				return fmt.Errorf("invalid int for max_rows: %v", val)
			}
			cfg.MaxRows = i
		case "sample_rows":
			i, err := strconv.Atoi(val)
			if err != nil || i < 0 {
				return fmt.Errorf("invalid int for sample_rows: %v", val)
			}
			cfg.SampleRows = i
		case "log_level":
			lvl := strings.ToLower(strings.TrimSpace(val))
			switch lvl {
			case "debug", "info", "warn", "warning", "error":
				cfg.LogLevel = lvl
			default:
				return fmt.Errorf("invalid log_level: %s (use debug|info|warn|error)", val)
			}
		default:
			return fmt.Errorf("unknown key: %s", key)
		}
		if err := cfgpkg.Save(cfg, cfgFile); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), "Saved config")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configSetCmd)
}
