package commands

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/leapstack-labs/gumcodegen/internal/cli/config"
	"github.com/leapstack-labs/gumcodegen/internal/cli/output"
	"github.com/leapstack-labs/gumcodegen/internal/engine"
	"github.com/leapstack-labs/gumcodegen/internal/loader"
)

// CommandContext holds common dependencies for CLI commands.
type CommandContext struct {
	Cfg      *config.Config
	Logger   *slog.Logger
	Engine   *engine.Engine
	Renderer *output.Renderer
}

// NewCommandContext creates a CommandContext with engine and renderer.
// Returns the context and a cleanup function that must be called (typically via defer).
func NewCommandContext(cmd *cobra.Command) (*CommandContext, func(), error) {
	cmdCtx, err := NewCommandContextWithoutEngine(cmd)
	if err != nil {
		return nil, nil, err
	}

	eng, err := CreateEngine(cmdCtx.Cfg, cmdCtx.Logger)
	if err != nil {
		return nil, nil, err
	}
	cmdCtx.Engine = eng

	cleanup := func() {
		if err := eng.Close(); err != nil {
			cmdCtx.Logger.Warn("failed to close engine", "error", err)
		}
	}
	return cmdCtx, cleanup, nil
}

// NewCommandContextWithoutEngine creates a CommandContext without an engine.
// Useful for commands that don't need the ledger.
func NewCommandContextWithoutEngine(cmd *cobra.Command) (*CommandContext, error) {
	cfg, err := getConfig(cmd)
	if err != nil {
		return nil, err
	}
	logger := config.GetLogger(cmd.Context())
	mode, err := output.ParseMode(cfg.OutputFormat)
	if err != nil {
		return nil, err
	}
	r := output.NewRenderer(cmd.OutOrStdout(), cmd.ErrOrStderr(), mode)

	return &CommandContext{
		Cfg:      cfg,
		Logger:   logger,
		Renderer: r,
	}, nil
}

// getConfig returns the configuration loaded by the root command, loading
// it from the command's flags when the command runs standalone.
func getConfig(cmd *cobra.Command) (*config.Config, error) {
	if cfg := config.GetConfig(cmd.Context()); cfg != nil {
		return cfg, nil
	}
	cfgFile := ""
	if f := cmd.Flags().Lookup("config"); f != nil {
		cfgFile = f.Value.String()
	}
	return config.LoadConfig(cfgFile, cmd.Flags())
}

// CreateEngine creates an engine from the configuration.
func CreateEngine(cfg *config.Config, logger *slog.Logger) (*engine.Engine, error) {
	opts, err := cfg.Options()
	if err != nil {
		return nil, err
	}

	// Ensure state directory exists
	if cfg.StatePath != "" && cfg.StatePath != ":memory:" {
		stateDir := filepath.Dir(cfg.StatePath)
		if stateDir != "." && stateDir != "" {
			if err := os.MkdirAll(stateDir, 0o750); err != nil {
				return nil, fmt.Errorf("failed to create state directory: %w", err)
			}
		}
	}

	return engine.New(engine.Config{
		ProjectDir: cfg.ProjectRoot,
		OutputDir:  cfg.OutputDir,
		StatePath:  cfg.StatePath,
		Options:    opts,
		Logger:     logger,
	})
}

// loadProject loads the project and reports document errors as warnings.
// Only failures that prevent generation are returned.
func loadProject(cmdCtx *CommandContext) (*loader.Result, error) {
	result, err := cmdCtx.Engine.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load project: %w", err)
	}
	if cmdCtx.Renderer.EffectiveMode() != output.ModeJSON {
		for _, e := range result.Errors {
			cmdCtx.Renderer.Warning(e.Error())
		}
	}
	return result, nil
}
