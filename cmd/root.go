package cmd

import (
	"fmt"
	"log/slog"
	"os"

	cfgpkg "github.com/KaramelBytes/sleepstat-cli/internal/config"
	"github.com/KaramelBytes/sleepstat-cli/internal/logging"
	"github.com/spf13/cobra"
)

var (
	// Global flags
	cfgFile    string
	debug      bool
	outFormat  string
	outputPath string

	// Input parsing flags (override config if set)
	flagDelimiter string
	flagDecimal   string
	flagThousands string
	flagMaxRows   int
	flagSheet     string

	// Loaded configuration
	cfg    *cfgpkg.Global
	logger = logging.Discard()
)

var rootCmd = &cobra.Command{
	Use:   "sleepstat",
	Short: "sleepstat: statistics behind sleep and health survey charts",
	Long: `sleepstat computes the derived data behind sleep and health survey visualizations:
correlation matrices, scatter plot regressions, histograms, grouped summaries and
category heatmaps. Reports are written as Markdown, JSON or YAML.

Every command takes an optional dataset path (.csv, .tsv, .xlsx). Without one, the
embedded sleep health sample is used.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute is the entry point called by main.main()
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "✗ Error:", err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(loadConfig)

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&cfgFile, "config", "", "config file (default is ~/.sleepstat/config.yaml)")
	pf.BoolVar(&debug, "debug", false, "enable debug output")
	pf.StringVar(&outFormat, "format", "", "output format: markdown|json|yaml (overrides config)")
	pf.StringVarP(&outputPath, "output", "o", "", "write output to a file instead of stdout")
	pf.StringVar(&flagDelimiter, "delimiter", "", "CSV delimiter: ',' | ';' | 'tab' (auto-detect if omitted)")
	pf.StringVar(&flagDecimal, "decimal", "", "decimal separator for numbers: '.'|'comma' (auto-detect if omitted)")
	pf.StringVar(&flagThousands, "thousands", "", "thousands separator for numbers: ','|'.'|'space' (auto-detect if omitted)")
	pf.IntVar(&flagMaxRows, "max-rows", 0, "maximum rows to process (overrides config; 0 keeps config)")
	pf.StringVar(&flagSheet, "sheet", "", "XLSX: sheet name to analyze (default first sheet)")
}

func loadConfig() {
	c, err := cfgpkg.Load(cfgFile)
	if err != nil {
		// Non-fatal: fall back to defaults
		fmt.Fprintf(os.Stderr, "⚠ Warning: failed to load config: %v\n", err)
		c = defaults()
	}
	cfg = c

	level := logging.ParseLevel(cfg.LogLevel)
	if debug {
		level = slog.LevelDebug
	}
	logger = logging.New(rootCmd.ErrOrStderr(), level)
	logger.Debug("config loaded", "file", cfgFile, "format", cfg.Format, "bins", cfg.DefaultBins)
}

// settings returns the loaded configuration, or defaults when none was loaded.
func settings() *cfgpkg.Global {
	if cfg != nil {
		return cfg
	}
	return defaults()
}

func defaults() *cfgpkg.Global {
	return &cfgpkg.Global{
		DefaultBins:   10,
		DefaultFields: cfgpkg.DefaultFields,
		Format:        "markdown",
		TopPairs:      10,
		MaxRows:       100000,
		SampleRows:    5,
		LogLevel:      "info",
	}
}
