package commands

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/leapstack-labs/gumcodegen/internal/cli/output"
	"github.com/leapstack-labs/gumcodegen/pkg/core"
)

// NewRunsCommand creates the runs command.
func NewRunsCommand() *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "runs [run-id]",
		Short: "Show the generation history",
		Long: `List recent generation runs from the ledger, newest first.
With a run ID, list the files that run wrote.`,
		Example: `  gumcodegen runs
  gumcodegen runs --limit 3 --output json
  gumcodegen runs 3f1c9a6e-0b1d-4a51-9c55-0f8e0c1d2b7a`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 1 {
				return runShowRun(cmd, args[0])
			}
			return runListRuns(cmd, limit)
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 10, "Number of runs to show")
	return cmd
}

func runListRuns(cmd *cobra.Command, limit int) error {
	cmdCtx, cleanup, err := NewCommandContext(cmd)
	if err != nil {
		return err
	}
	defer cleanup()

	runs, err := cmdCtx.Engine.StateStore().ListRuns(limit)
	if err != nil {
		return err
	}

	infos := make([]output.RunInfo, 0, len(runs))
	for _, run := range runs {
		infos = append(infos, runInfo(run))
	}

	r := cmdCtx.Renderer
	switch r.EffectiveMode() {
	case output.ModeJSON:
		return r.JSON(infos)
	case output.ModeMarkdown:
		r.Println(output.FormatHeader(1, fmt.Sprintf("Runs (%d)", len(infos))))
		r.Println("")
		for _, info := range infos {
			r.StatusLine(info.ID, info.Status, fmt.Sprintf("%s, %d generated, %d skipped", info.StartedAt, info.Generated, info.Skipped))
		}
	default:
		r.Header(1, "Runs")
		if len(infos) == 0 {
			r.Muted("No runs recorded")
			return nil
		}
		rows := make([][]string, 0, len(infos))
		for _, info := range infos {
			rows = append(rows, []string{
				info.ID, info.Status, info.StartedAt,
				(time.Duration(info.DurationMS) * time.Millisecond).String(),
				fmt.Sprintf("%d", info.Generated), fmt.Sprintf("%d", info.Skipped),
			})
		}
		r.Table([]string{"Run", "Status", "Started", "Duration", "Generated", "Skipped"}, rows)
	}
	return nil
}

func runShowRun(cmd *cobra.Command, id string) error {
	cmdCtx, cleanup, err := NewCommandContext(cmd)
	if err != nil {
		return err
	}
	defer cleanup()

	store := cmdCtx.Engine.StateStore()
	run, err := store.GetRun(id)
	if err != nil {
		return err
	}
	if run == nil {
		return fmt.Errorf("run %s not found", id)
	}
	outputs, err := store.ListOutputs(id)
	if err != nil {
		return err
	}

	r := cmdCtx.Renderer
	info := runInfo(run)
	switch r.EffectiveMode() {
	case output.ModeJSON:
		entries := make([]output.GeneratedEntry, 0, len(outputs))
		for _, o := range outputs {
			entries = append(entries, output.GeneratedEntry{Element: o.Element, Path: o.OutputPath})
		}
		return r.JSON(struct {
			output.RunInfo
			Outputs []output.GeneratedEntry `json:"outputs"`
		}{info, entries})
	default:
		r.Header(1, "Run "+info.ID)
		r.KeyValue("Status", info.Status)
		r.KeyValue("Started", info.StartedAt)
		if info.CompletedAt != "" {
			r.KeyValue("Completed", info.CompletedAt)
		}
		if info.Error != "" {
			r.KeyValue("Error", info.Error)
		}
		r.Println("")
		for _, o := range outputs {
			r.StatusLine(o.Element, "success", relPath(cmdCtx.Cfg.OutputDir, o.OutputPath))
		}
	}
	return nil
}

func runInfo(run *core.Run) output.RunInfo {
	info := output.RunInfo{
		ID:         run.ID,
		Status:     string(run.Status),
		StartedAt:  run.StartedAt.Format(time.RFC3339),
		DurationMS: run.Duration().Milliseconds(),
		Generated:  run.Generated,
		Skipped:    run.Skipped,
		Error:      run.Error,
	}
	if run.CompletedAt != nil {
		info.CompletedAt = run.CompletedAt.Format(time.RFC3339)
	}
	return info
}
