package commands

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/leapstack-labs/gumcodegen/internal/cli/output"
	"github.com/leapstack-labs/gumcodegen/internal/engine"
)

// GenerateOptions holds options for the generate command.
type GenerateOptions struct {
	Force  bool
	DryRun bool
	Stdout bool
}

// NewGenerateCommand creates the generate command.
func NewGenerateCommand() *cobra.Command {
	opts := &GenerateOptions{}

	cmd := &cobra.Command{
		Use:   "generate [element...]",
		Short: "Generate C# code for the project's elements",
		Long: `Generate a partial C# class for every screen, component and standard.

Base elements are generated before the elements deriving from them.
Elements whose documents (and base documents) are unchanged since the last
run are skipped unless --force is given. Pass element names to limit the
run, e.g. "Controls/Button".`,
		Example: `  # Generate everything that changed
  gumcodegen generate

  # Regenerate one component even if unchanged
  gumcodegen generate Controls/Button --force

  # Print the code instead of writing files
  gumcodegen generate MainMenu --stdout`,
		Aliases: []string{"gen"},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGenerate(cmd, args, opts)
		},
	}

	cmd.Flags().BoolVarP(&opts.Force, "force", "f", false, "Regenerate elements even when their sources are unchanged")
	cmd.Flags().BoolVar(&opts.DryRun, "dry-run", false, "Generate without writing files or recording a run")
	cmd.Flags().BoolVar(&opts.Stdout, "stdout", false, "Print generated code instead of writing files (implies --dry-run)")

	return cmd
}

func runGenerate(cmd *cobra.Command, args []string, opts *GenerateOptions) error {
	cmdCtx, cleanup, err := NewCommandContext(cmd)
	if err != nil {
		return err
	}
	defer cleanup()

	if _, err := loadProject(cmdCtx); err != nil {
		return err
	}

	dryRun := opts.DryRun || opts.Stdout
	result, genErr := cmdCtx.Engine.Generate(cmd.Context(), engine.GenerateOptions{
		Elements: args,
		Force:    opts.Force || opts.Stdout,
		DryRun:   dryRun,
	})
	if result == nil {
		return genErr
	}

	r := cmdCtx.Renderer
	switch r.EffectiveMode() {
	case output.ModeJSON:
		if err := r.JSON(generateJSON(result, dryRun, opts.Stdout, cmdCtx.Cfg.OutputDir, genErr)); err != nil {
			return err
		}
	case output.ModeMarkdown:
		generateMarkdown(r, result, dryRun, opts.Stdout, cmdCtx.Cfg.OutputDir)
	default:
		generateText(r, result, dryRun, opts.Stdout, cmdCtx.Cfg.OutputDir)
	}
	return genErr
}

func generateText(r *output.Renderer, result *engine.GenerateResult, dryRun, stdout bool, outputDir string) {
	if stdout {
		for _, o := range result.Generated() {
			r.Header(2, o.Element)
			r.Code("csharp", o.Code)
		}
		return
	}

	title := "Generation"
	if dryRun {
		title = "Generation (dry run)"
	}
	r.Header(1, title)
	for _, o := range result.Outputs {
		if o.Skipped {
			r.StatusLine(o.Element, "skipped", o.SkipReason)
			continue
		}
		r.StatusLine(o.Element, "success", relPath(outputDir, o.Path))
	}
	r.Println("")
	r.Muted(result.Summary())
}

func generateMarkdown(r *output.Renderer, result *engine.GenerateResult, dryRun, stdout bool, outputDir string) {
	if stdout {
		for _, o := range result.Generated() {
			r.Println(output.FormatHeader(2, o.Element))
			r.Println("")
			r.Println(output.FormatCodeBlock("csharp", o.Code))
			r.Println("")
		}
		return
	}

	r.Println(output.FormatHeader(1, "Generation"))
	r.Println("")
	if result.Run != nil {
		r.Println(output.FormatKeyValue("Run", result.Run.ID))
		r.Println(output.FormatKeyValue("Status", string(result.Run.Status)))
	}
	if dryRun {
		r.Println(output.FormatKeyValue("Dry Run", "true"))
	}
	r.Println(output.FormatKeyValue("Generated", fmt.Sprintf("%d", len(result.Generated()))))
	r.Println(output.FormatKeyValue("Skipped", fmt.Sprintf("%d", len(result.Skipped()))))
	r.Println("")

	for _, o := range result.Outputs {
		if o.Skipped {
			r.StatusLine(o.Element, "skipped", o.SkipReason)
			continue
		}
		r.StatusLine(o.Element, "generated", relPath(outputDir, o.Path))
	}
}

func generateJSON(result *engine.GenerateResult, dryRun, withCode bool, outputDir string, genErr error) output.GenerateOutput {
	doc := output.GenerateOutput{
		Status:     "completed",
		DryRun:     dryRun,
		Elements:   make([]output.GeneratedEntry, 0, len(result.Outputs)),
		Generated:  len(result.Generated()),
		Skipped:    len(result.Skipped()),
		DurationMS: result.Duration.Milliseconds(),
	}
	if result.Run != nil {
		doc.RunID = result.Run.ID
		doc.Status = string(result.Run.Status)
	}
	if genErr != nil {
		doc.Error = genErr.Error()
		if result.Run == nil {
			doc.Status = "failed"
		}
	}

	for _, o := range result.Outputs {
		entry := output.GeneratedEntry{
			Element:    o.Element,
			Path:       relPath(outputDir, o.Path),
			Skipped:    o.Skipped,
			SkipReason: o.SkipReason,
		}
		if withCode {
			entry.Code = o.Code
		}
		doc.Elements = append(doc.Elements, entry)
	}
	return doc
}

// relPath shortens path relative to base for display.
func relPath(base, path string) string {
	if rel, err := filepath.Rel(base, path); err == nil {
		return rel
	}
	return path
}
