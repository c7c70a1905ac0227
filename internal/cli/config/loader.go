package config

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/spf13/pflag"

	"github.com/leapstack-labs/gumcodegen/internal/codegen"
	"github.com/leapstack-labs/gumcodegen/internal/loader"
)

// EnvPrefix prefixes every configuration environment variable.
const EnvPrefix = "GUMCODEGEN_"

// loggerKey is used to store the logger in context.
type loggerKey struct{}

// configKey is used to store the loaded configuration in context.
type configKey struct{}

// flagKeys maps flag names whose config key is not the snake_case name.
var flagKeys = map[string]string{
	"state": "state_path",
}

// ignoredFlags never become config keys.
var ignoredFlags = map[string]bool{
	"config":      true,
	"project-dir": true,
	"help":        true,
}

// inferProjectRoot determines the project root.
// Priority:
//  1. Explicit --project-dir flag
//  2. Directory of an explicit --config file
//  3. Upward search from CWD for gumproject.yaml
//  4. Current working directory
func inferProjectRoot(cfgFile string, flags *pflag.FlagSet) string {
	if flags != nil && flags.Changed("project-dir") {
		if projectDir, _ := flags.GetString("project-dir"); projectDir != "" {
			if abs, err := filepath.Abs(projectDir); err == nil {
				return abs
			}
			return filepath.Clean(projectDir)
		}
	}

	if cfgFile != "" {
		if abs, err := filepath.Abs(cfgFile); err == nil {
			return filepath.Dir(abs)
		}
	}

	cwd, err := os.Getwd()
	if err != nil || cwd == "" {
		return "."
	}
	if root, err := loader.FindProjectRoot(cwd); err == nil {
		return root
	}
	return cwd
}

// resolvePathRelativeTo resolves a path relative to baseDir if it's not absolute.
// Returns the path unchanged if it's empty, absolute or in-memory.
func resolvePathRelativeTo(path, baseDir string) string {
	if path == "" || path == ":memory:" || filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(baseDir, path)
}

// defaults returns the lowest configuration layer.
func defaults() map[string]any {
	opts := codegen.DefaultOptions()
	return map[string]any{
		"output_dir":                      DefaultOutputDir,
		"state_path":                      DefaultStateFile,
		"verbose":                         false,
		"output":                          DefaultOutput,
		"library":                         DefaultLibrary,
		"root_namespace":                  "",
		"canvas_width":                    opts.CanvasWidth,
		"canvas_height":                   opts.CanvasHeight,
		"adjust_pixel_values_for_density": false,
		"localization.active":             false,
		"localization.string_id_prefix":   opts.Localization.StringIDPrefix,
		"localization.lookup_format":      opts.Localization.LookupFormat,
	}
}

// LoadConfig loads configuration from defaults, the project file,
// environment variables and flags.
// Precedence (highest to lowest): flags > env vars > project file > defaults
func LoadConfig(cfgFile string, flags *pflag.FlagSet) (*Config, error) {
	k := koanf.New(".")

	projectRoot := inferProjectRoot(cfgFile, flags)

	// Paths given as flags are relative to CWD, not to the project root.
	flagPaths := make(map[string]string)
	if flags != nil {
		for _, name := range []string{"output-dir", "state"} {
			if f := flags.Lookup(name); f != nil && f.Changed && f.Value.String() != "" {
				if f.Value.String() == ":memory:" {
					flagPaths[name] = ":memory:"
					continue
				}
				abs, err := filepath.Abs(f.Value.String())
				if err != nil {
					return nil, fmt.Errorf("invalid --%s: %w", name, err)
				}
				flagPaths[name] = abs
			}
		}
	}

	// 1. Defaults
	if err := k.Load(confmap.Provider(defaults(), "."), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	// 2. Project file
	configFile := cfgFile
	if configFile == "" {
		candidate := filepath.Join(projectRoot, loader.ProjectFile)
		if _, err := os.Stat(candidate); err == nil {
			configFile = candidate
		}
	}
	if configFile != "" {
		if err := k.Load(file.Provider(configFile), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("error reading config file %s: %w", configFile, err)
		}
	}

	// 3. Environment: GUMCODEGEN_OUTPUT_DIR -> output_dir,
	// GUMCODEGEN_LOCALIZATION__ACTIVE -> localization.active
	if err := k.Load(env.Provider(EnvPrefix, ".", func(s string) string {
		return strings.ReplaceAll(strings.ToLower(strings.TrimPrefix(s, EnvPrefix)), "__", ".")
	}), nil); err != nil {
		return nil, fmt.Errorf("failed to load env vars: %w", err)
	}

	// 4. Flags, only those explicitly set
	if flags != nil {
		if err := k.Load(posflag.ProviderWithFlag(flags, ".", k, func(f *pflag.Flag) (string, any) {
			if !f.Changed || ignoredFlags[f.Name] {
				return "", nil
			}
			key, ok := flagKeys[f.Name]
			if !ok {
				key = strings.ReplaceAll(f.Name, "-", "_")
			}
			return key, posflag.FlagVal(flags, f)
		}), nil); err != nil {
			return nil, fmt.Errorf("failed to load flags: %w", err)
		}
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}

	cfg.ProjectRoot = projectRoot
	cfg.ConfigFile = configFile

	if p, ok := flagPaths["output-dir"]; ok {
		cfg.OutputDir = p
	} else {
		cfg.OutputDir = resolvePathRelativeTo(cfg.OutputDir, projectRoot)
	}
	if p, ok := flagPaths["state"]; ok {
		cfg.StatePath = p
	} else {
		cfg.StatePath = resolvePathRelativeTo(cfg.StatePath, projectRoot)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return &cfg, nil
}

// LoggerKey returns the context key used for storing the logger.
// This allows the commands package to retrieve the logger from context
// without creating an import cycle with the cli package.
func LoggerKey() any {
	return loggerKey{}
}

// ConfigKey returns the context key used for storing the configuration.
func ConfigKey() any {
	return configKey{}
}

// GetConfig retrieves the configuration from the command context.
// Returns nil when no configuration was loaded.
func GetConfig(ctx context.Context) *Config {
	if ctx == nil {
		return nil
	}
	cfg, _ := ctx.Value(configKey{}).(*Config)
	return cfg
}

// GetLogger retrieves the logger from the command context.
func GetLogger(ctx context.Context) *slog.Logger {
	if ctx != nil {
		if l, ok := ctx.Value(loggerKey{}).(*slog.Logger); ok {
			return l
		}
	}
	// Return discard logger as safe fallback
	return slog.New(slog.DiscardHandler)
}

// NewLogger creates the CLI logger: text on stderr, debug when verbose.
func NewLogger(verbose bool) *slog.Logger {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}
