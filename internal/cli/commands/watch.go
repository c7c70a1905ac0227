package commands

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/leapstack-labs/gumcodegen/internal/cli/output"
	"github.com/leapstack-labs/gumcodegen/internal/engine"
)

// NewWatchCommand creates the watch command.
func NewWatchCommand() *cobra.Command {
	var skipInitial bool

	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Regenerate code whenever element documents change",
		Long: `Generate the project, then watch the screens, components and standards
folders and regenerate the affected elements after every change.

An element is affected when its own document changed, when an element it
derives from changed, or when the type of one of its instances changed.
Press Ctrl+C to stop.`,
		Example: `  gumcodegen watch
  gumcodegen watch --skip-initial -v`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runWatch(cmd, skipInitial)
		},
	}

	cmd.Flags().BoolVar(&skipInitial, "skip-initial", false, "Do not generate before watching")
	return cmd
}

func runWatch(cmd *cobra.Command, skipInitial bool) error {
	cmdCtx, cleanup, err := NewCommandContext(cmd)
	if err != nil {
		return err
	}
	defer cleanup()

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	if _, err := loadProject(cmdCtx); err != nil {
		return err
	}

	r := cmdCtx.Renderer
	report := func(result *engine.GenerateResult, err error) {
		if err != nil {
			r.Error(err.Error())
			return
		}
		if r.EffectiveMode() == output.ModeJSON {
			_ = r.JSON(generateJSON(result, false, false, cmdCtx.Cfg.OutputDir, nil))
			return
		}
		for _, o := range result.Generated() {
			r.StatusLine(o.Element, "success", relPath(cmdCtx.Cfg.OutputDir, o.Path))
		}
		r.Muted(result.Summary())
	}

	if !skipInitial {
		report(cmdCtx.Engine.Generate(ctx, engine.GenerateOptions{}))
	}

	if r.EffectiveMode() != output.ModeJSON {
		r.Muted("Watching " + cmdCtx.Cfg.ProjectRoot + " (Ctrl+C to stop)")
	}
	return cmdCtx.Engine.Watch(ctx, report)
}
