// Package config provides the TOML configuration for the viewer and
// highlight driver, with live reload from disk.
package config

import (
	"fmt"
	"os"
	"unicode/utf8"

	"github.com/pelletier/go-toml/v2"

	"github.com/NivWeisman/rainbow-csv/internal/palette"
)

// Config is the on-disk configuration. Absent keys keep their
// defaults.
type Config struct {
	// Delimiter is the field separator, a single character. Use "\t"
	// for TSV.
	Delimiter string `toml:"delimiter"`

	// UseLighterPalette selects the lighter palette variant, intended
	// for dark backgrounds.
	UseLighterPalette bool `toml:"use_lighter_palette"`

	// StandardPalette is the base column colors as hex strings.
	StandardPalette []string `toml:"standard_palette"`

	// LighterPalette overrides the derived lighter variant. When
	// empty it is computed from StandardPalette.
	LighterPalette []string `toml:"lighter_palette"`

	// LogLevel is one of debug, info, warn, error.
	LogLevel string `toml:"log_level"`
}

// ValidationError describes an invalid configuration value.
type ValidationError struct {
	Field   string
	Message string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	return fmt.Sprintf("config: %s: %s", e.Field, e.Message)
}

// Default returns the built-in configuration.
func Default() *Config {
	std := palette.Default()
	hexes := make([]string, len(std))
	for i, c := range std {
		hexes[i] = c.Hex()
	}
	return &Config{
		Delimiter:         ",",
		UseLighterPalette: true,
		StandardPalette:   hexes,
		LogLevel:          "info",
	}
}

// Validate checks the configuration for values the viewer cannot use.
func (c *Config) Validate() error {
	if utf8.RuneCountInString(c.Delimiter) != 1 {
		return &ValidationError{
			Field:   "delimiter",
			Message: fmt.Sprintf("must be a single character, got %q", c.Delimiter),
		}
	}
	if c.Delimiter == `"` {
		return &ValidationError{
			Field:   "delimiter",
			Message: "cannot be the quote character",
		}
	}

	if len(c.StandardPalette) == 0 {
		return &ValidationError{
			Field:   "standard_palette",
			Message: "must have at least one color",
		}
	}
	if _, err := palette.ParseHexAll(c.StandardPalette); err != nil {
		return &ValidationError{
			Field:   "standard_palette",
			Message: err.Error(),
		}
	}
	if _, err := palette.ParseHexAll(c.LighterPalette); err != nil {
		return &ValidationError{
			Field:   "lighter_palette",
			Message: err.Error(),
		}
	}

	switch c.LogLevel {
	case "", "debug", "info", "warn", "error":
	default:
		return &ValidationError{
			Field:   "log_level",
			Message: fmt.Sprintf("unknown level %q", c.LogLevel),
		}
	}
	return nil
}

// DelimiterRune returns the delimiter as a rune, comma when unset.
func (c *Config) DelimiterRune() rune {
	if c.Delimiter == "" {
		return ','
	}
	r, _ := utf8.DecodeRuneInString(c.Delimiter)
	return r
}

// Palette builds the palette configuration. A missing lighter palette
// is derived from the standard one.
func (c *Config) Palette() (palette.Config, error) {
	std, err := palette.ParseHexAll(c.StandardPalette)
	if err != nil {
		return palette.Config{}, fmt.Errorf("standard palette: %w", err)
	}

	lighter, err := palette.ParseHexAll(c.LighterPalette)
	if err != nil {
		return palette.Config{}, fmt.Errorf("lighter palette: %w", err)
	}
	if len(lighter) == 0 {
		lighter = std.Lighter(palette.LightenAmount)
	}

	return palette.Config{
		Standard:   std,
		Lighter:    lighter,
		UseLighter: c.UseLighterPalette,
	}, nil
}

// fileConfig mirrors Config with optional fields, so keys absent from
// the file can be told apart from explicit zero values.
type fileConfig struct {
	Delimiter         *string  `toml:"delimiter"`
	UseLighterPalette *bool    `toml:"use_lighter_palette"`
	StandardPalette   []string `toml:"standard_palette"`
	LighterPalette    []string `toml:"lighter_palette"`
	LogLevel          *string  `toml:"log_level"`
}

func (f *fileConfig) applyTo(c *Config) {
	if f.Delimiter != nil {
		c.Delimiter = *f.Delimiter
	}
	if f.UseLighterPalette != nil {
		c.UseLighterPalette = *f.UseLighterPalette
	}
	if f.StandardPalette != nil {
		c.StandardPalette = f.StandardPalette
	}
	if f.LighterPalette != nil {
		c.LighterPalette = f.LighterPalette
	}
	if f.LogLevel != nil {
		c.LogLevel = *f.LogLevel
	}
}

// Load reads and validates the configuration at path. Keys absent from
// the file keep their default values.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file %s: %w", path, err)
	}

	var file fileConfig
	if err := toml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parsing config file %s: %w", path, err)
	}

	cfg := Default()
	file.applyTo(cfg)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadOrDefault reads the configuration at path, falling back to the
// defaults when path is empty or the file does not exist.
func LoadOrDefault(path string) (*Config, error) {
	if path == "" {
		return Default(), nil
	}
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return Default(), nil
	}
	return Load(path)
}

// Save writes the configuration to path as TOML.
func (c *Config) Save(path string) error {
	data, err := toml.Marshal(c)
	if err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config file %s: %w", path, err)
	}
	return nil
}
