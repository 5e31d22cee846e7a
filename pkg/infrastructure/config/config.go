// Package config loads wavecalc settings from a TOML file.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"slices"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/vsinha/wavecalc/pkg/domain/entities"
)

// DefaultFile is read from the working directory when no path is given
const DefaultFile = "wavecalc.toml"

// Color modes
const (
	ColorAuto   = "auto"
	ColorAlways = "always"
	ColorNever  = "never"
)

var validFormats = []string{"text", "json", "csv"}

// Config contains every setting the CLI reads from file or flags
type Config struct {
	// Precision is the number of significant digits kept by every calculation
	Precision int `toml:"precision"`

	// Format is text, json or csv
	Format string `toml:"format"`

	// OutputDir, when set, receives wave_results.<ext> instead of stdout
	OutputDir string `toml:"output_dir,omitempty"`

	// ReportDir is where named reports are saved
	ReportDir string `toml:"report_dir,omitempty"`

	// ReportName saves the report as <report_dir>/<report_name>.txt
	ReportName string `toml:"report_name,omitempty"`

	// Color is auto, always or never
	Color string `toml:"color"`

	Verbose bool `toml:"verbose"`

	// LogLevel is debug, info, warn or error
	LogLevel string `toml:"log_level"`

	// LogFile also receives JSON log records when set
	LogFile string `toml:"log_file,omitempty"`
}

// Default returns the built-in settings
func Default() Config {
	return Config{
		Precision: entities.DefaultSignificantDigits,
		Format:    "text",
		Color:     ColorAuto,
		LogLevel:  "warn",
	}
}

// Load reads path on top of the defaults. An empty path loads DefaultFile
// if it exists and the defaults otherwise.
func Load(path string) (Config, error) {
	cfg := Default()

	if path == "" {
		if _, err := os.Stat(DefaultFile); errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		path = DefaultFile
	}

	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("failed to read config %s: %w", path, err)
	}

	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, key := range undecoded {
			keys[i] = key.String()
		}
		return Config{}, fmt.Errorf("unknown keys in config %s: %s", path, strings.Join(keys, ", "))
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("invalid config %s: %w", path, err)
	}

	return cfg, nil
}

// Validate checks every field for a supported value
func (c Config) Validate() error {
	if c.Precision < 1 {
		return fmt.Errorf("precision must be positive, got %d", c.Precision)
	}
	if !slices.Contains(validFormats, c.Format) {
		return fmt.Errorf("unsupported format %q (expected: %s)", c.Format, strings.Join(validFormats, ", "))
	}
	switch c.Color {
	case ColorAuto, ColorAlways, ColorNever:
	default:
		return fmt.Errorf("unsupported color mode %q (expected: auto, always, never)", c.Color)
	}
	return nil
}

// Write saves c as TOML, used to generate a starter config file. An
// existing file is never overwritten, and a failed write leaves no file.
func (c Config) Write(path string) (err error) {
	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(c); err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}

	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_EXCL, 0644)
	if err != nil {
		return fmt.Errorf("failed to create config %s: %w", path, err)
	}
	defer func() {
		if closeErr := file.Close(); closeErr != nil && err == nil {
			err = fmt.Errorf("failed to close config %s: %w", path, closeErr)
		}
		if err != nil {
			os.Remove(path)
		}
	}()

	if _, err := file.Write(buf.Bytes()); err != nil {
		return fmt.Errorf("failed to write config %s: %w", path, err)
	}
	return nil
}
