package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// DefaultFields are the numeric survey columns analyzed when no field list
// is given.
var DefaultFields = []string{
	"Sleep Duration",
	"Quality of Sleep",
	"Physical Activity Level",
	"Stress Level",
	"Heart Rate",
	"Daily Steps",
	"Age",
}

// Global configuration structure.
type Global struct {
	DefaultBins   int      `mapstructure:"default_bins" yaml:"default_bins"`
	DefaultFields []string `mapstructure:"default_fields" yaml:"default_fields"`
	Format        string   `mapstructure:"format" yaml:"format"`
	TopPairs      int      `mapstructure:"top_pairs" yaml:"top_pairs"`

	// Input parsing
	Delimiter        string `mapstructure:"delimiter" yaml:"delimiter"`
	DecimalSeparator string `mapstructure:"decimal_separator" yaml:"decimal_separator"`
	MaxRows          int    `mapstructure:"max_rows" yaml:"max_rows"`
	SampleRows       int    `mapstructure:"sample_rows" yaml:"sample_rows"`

	LogLevel string `mapstructure:"log_level" yaml:"log_level"`
}

// Dir returns ~/.sleepstat.
func Dir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home dir: %w", err)
	}
	return filepath.Join(home, ".sleepstat"), nil
}

// Save writes the given configuration to the cfgFile path. If cfgFile is empty,
// it writes to ~/.sleepstat/config.yaml, creating the directory if necessary.
func Save(c *Global, cfgFile string) error {
	path := cfgFile
	if path == "" {
		dir, err := Dir()
		if err != nil {
			return err
		}
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("mkdir config dir: %w", err)
		}
		path = filepath.Join(dir, "config.yaml")
	}
	b, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshal yaml: %w", err)
	}
	if err := os.WriteFile(path, b, 0o644); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}

// Load loads configuration from file, env, and defaults.
// Precedence: flags (cfgFile) > env > config file > defaults.
func Load(cfgFile string) (*Global, error) {
	v := viper.New()
	v.SetEnvPrefix("SLEEPSTAT")
	v.AutomaticEnv()

	v.SetDefault("default_bins", 10)
	v.SetDefault("default_fields", DefaultFields)
	v.SetDefault("format", "markdown")
	v.SetDefault("top_pairs", 10)
	v.SetDefault("delimiter", "")
	v.SetDefault("decimal_separator", "")
	v.SetDefault("max_rows", 100000)
	v.SetDefault("sample_rows", 5)
	v.SetDefault("log_level", "info")

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		dir, err := Dir()
		if err != nil {
			return nil, err
		}
		v.AddConfigPath(dir)
		v.SetConfigName("config")
		v.SetConfigType("yaml")
	}
	if err := v.ReadInConfig(); err != nil {
		// a missing file is fine, a broken one is not
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	var c Global
	if err := v.Unmarshal(&c); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	if c.DefaultBins <= 0 {
		c.DefaultBins = 10
	}
	return &c, nil
}
