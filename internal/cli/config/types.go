// Package config provides configuration management for the gumcodegen CLI.
//
// Configuration is layered, lowest to highest precedence: built-in
// defaults, the project's gumproject.yaml, GUMCODEGEN_* environment
// variables, and explicitly set command-line flags.
package config

import (
	"fmt"

	"github.com/leapstack-labs/gumcodegen/internal/cli/output"
	"github.com/leapstack-labs/gumcodegen/internal/codegen"
)

// Config holds all CLI configuration options.
type Config struct {
	// ProjectRoot is the resolved project directory. Never read from files.
	ProjectRoot string `koanf:"-"`
	// ConfigFile is the project file that was loaded, if any
	ConfigFile string `koanf:"-"`

	OutputDir    string `koanf:"output_dir"`
	StatePath    string `koanf:"state_path"`
	Verbose      bool   `koanf:"verbose"`
	OutputFormat string `koanf:"output"`

	// Generation settings
	Library                     string             `koanf:"library"`
	RootNamespace               string             `koanf:"root_namespace"`
	CanvasWidth                 int                `koanf:"canvas_width"`
	CanvasHeight                int                `koanf:"canvas_height"`
	AdjustPixelValuesForDensity bool               `koanf:"adjust_pixel_values_for_density"`
	Usings                      []string           `koanf:"usings"`
	Localization                LocalizationConfig `koanf:"localization"`
}

// LocalizationConfig configures string-table lookups.
type LocalizationConfig struct {
	Active         bool   `koanf:"active"`
	StringIDPrefix string `koanf:"string_id_prefix"`
	LookupFormat   string `koanf:"lookup_format"`
}

// Default configuration values.
const (
	DefaultOutputDir = "Generated"
	DefaultStateFile = ".gumcodegen/state.db"
	DefaultOutput    = "auto" // Auto-detect: TTY=text, non-TTY=markdown
	DefaultLibrary   = "gum"
)

// Validate checks that the configuration can drive a generation.
func (c *Config) Validate() error {
	if _, err := output.ParseMode(c.OutputFormat); err != nil {
		return err
	}
	_, err := c.Options()
	return err
}

// Options converts the configuration into generator options.
func (c *Config) Options() (codegen.Options, error) {
	lib, err := codegen.ParseOutputLibrary(c.Library)
	if err != nil {
		return codegen.Options{}, err
	}
	if c.CanvasWidth <= 0 || c.CanvasHeight <= 0 {
		return codegen.Options{}, fmt.Errorf("canvas size must be positive, got %dx%d", c.CanvasWidth, c.CanvasHeight)
	}

	opts := codegen.DefaultOptions()
	opts.CanvasWidth = c.CanvasWidth
	opts.CanvasHeight = c.CanvasHeight
	opts.AdjustPixelValuesForDensity = c.AdjustPixelValuesForDensity
	opts.OutputLibrary = lib
	opts.RootNamespace = c.RootNamespace
	opts.CommonUsingStatements = append([]string(nil), c.Usings...)
	opts.Localization.Active = c.Localization.Active
	if c.Localization.StringIDPrefix != "" {
		opts.Localization.StringIDPrefix = c.Localization.StringIDPrefix
	}
	if c.Localization.LookupFormat != "" {
		opts.Localization.LookupFormat = c.Localization.LookupFormat
	}
	return opts, nil
}
