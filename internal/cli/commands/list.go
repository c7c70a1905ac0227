package commands

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/leapstack-labs/gumcodegen/internal/cli/output"
	"github.com/leapstack-labs/gumcodegen/internal/codegen"
	"github.com/leapstack-labs/gumcodegen/internal/engine"
	"github.com/leapstack-labs/gumcodegen/internal/loader"
	"github.com/leapstack-labs/gumcodegen/pkg/core"
)

// ListOptions holds options for the list command.
type ListOptions struct {
	Kind        string
	ProjectOnly bool
}

// NewListCommand creates the list command.
func NewListCommand() *cobra.Command {
	opts := &ListOptions{}

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List all elements of the project",
		Long: `List every screen, component and standard with its base type, target
runtime, generated class and last generation.

Output adapts to environment:
  - Terminal: Styled table
  - Piped/Scripted: Markdown format (agent-friendly)

Use --output to override: auto, text, markdown, json`,
		Example: `  # List all elements (auto-detect output format)
  gumcodegen list

  # List only components as JSON
  gumcodegen list --kind components --output json

  # Hide the built-in standards
  gumcodegen list --project-only`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runList(cmd, opts)
		},
	}

	cmd.Flags().StringVar(&opts.Kind, "kind", "", "Only list elements of this kind (screens, components, standards)")
	cmd.Flags().BoolVar(&opts.ProjectOnly, "project-only", false, "Hide built-in standards")

	_ = cmd.RegisterFlagCompletionFunc("kind", func(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
		return []string{string(core.KindScreen), string(core.KindComponent), string(core.KindStandard)}, cobra.ShellCompDirectiveNoFileComp
	})

	return cmd
}

func runList(cmd *cobra.Command, opts *ListOptions) error {
	if opts.Kind != "" && !validKind(opts.Kind) {
		return fmt.Errorf("unknown kind %q (expected screens, components or standards)", opts.Kind)
	}

	cmdCtx, cleanup, err := NewCommandContext(cmd)
	if err != nil {
		return err
	}
	defer cleanup()

	result, err := loadProject(cmdCtx)
	if err != nil {
		return err
	}

	infos := collectElements(cmdCtx.Engine, opts)

	r := cmdCtx.Renderer
	switch r.EffectiveMode() {
	case output.ModeJSON:
		return r.JSON(listJSON(infos, result))
	case output.ModeMarkdown:
		listMarkdown(r, infos)
	default:
		listText(r, infos)
	}
	return nil
}

func validKind(kind string) bool {
	for _, k := range loader.Kinds {
		if string(k) == kind {
			return true
		}
	}
	return false
}

// collectElements gathers display information for the selected elements.
func collectElements(eng *engine.Engine, opts *ListOptions) []output.ElementInfo {
	gen := eng.Generator()
	graph := eng.Graph()
	store := eng.StateStore()

	var infos []output.ElementInfo
	for _, el := range eng.Registry().Elements() {
		if opts.Kind != "" && string(el.Kind) != opts.Kind {
			continue
		}
		doc := eng.Document(el.Name)
		builtin := doc != nil && doc.Builtin
		if opts.ProjectOnly && builtin {
			continue
		}

		rt := gen.RuntimeOf(el)
		info := output.ElementInfo{
			Name:      el.Name,
			Kind:      el.Kind.Label(),
			BaseType:  el.BaseType,
			Runtime:   rt.String(),
			Class:     codegen.ClassName(el.Name, rt),
			Namespace: gen.Namespace(el),
			FilePath:  el.FilePath,
			Builtin:   builtin,
			Generate:  el.Settings.Generate,
			Instances: make([]string, 0, len(el.Instances)),
			States:    make([]string, 0),
			Derived:   graph.GetChildren(el.Name),
		}
		if info.Derived == nil {
			info.Derived = []string{}
		}
		for _, inst := range el.Instances {
			info.Instances = append(info.Instances, inst.Name)
		}
		for _, s := range el.AllStates() {
			info.States = append(info.States, stateLabel(s))
		}

		if store != nil {
			if last, err := store.GetLatestOutput(el.Name); err == nil && last != nil {
				info.LastOutput = &output.LastOutputInfo{
					RunID:      last.RunID,
					OutputPath: last.OutputPath,
					CodeHash:   last.CodeHash,
					CreatedAt:  last.CreatedAt.Format(time.RFC3339),
				}
			}
		}
		infos = append(infos, info)
	}
	return infos
}

// stateLabel names a state the way the state command accepts it.
func stateLabel(s *core.State) string {
	if s.Category == "" {
		return s.Name
	}
	return s.Category + "/" + s.Name
}

func listText(r *output.Renderer, infos []output.ElementInfo) {
	r.Header(1, fmt.Sprintf("Elements (%d total)", len(infos)))

	rows := make([][]string, 0, len(infos))
	for _, info := range infos {
		last := "-"
		if info.LastOutput != nil {
			last = info.LastOutput.CreatedAt
		}
		if !info.Generate {
			last = "disabled"
		}
		rows = append(rows, []string{info.Name, info.Kind, info.BaseType, info.Runtime, info.Class, last})
	}
	r.Table([]string{"Element", "Kind", "Base", "Runtime", "Class", "Last Generated"}, rows)
}

func listMarkdown(r *output.Renderer, infos []output.ElementInfo) {
	r.Println(output.FormatHeader(1, fmt.Sprintf("Elements (%d total)", len(infos))))
	r.Println("")

	for _, info := range infos {
		r.Println(output.FormatHeader(2, info.Name))
		r.Println(output.FormatKeyValue("Kind", info.Kind))
		if info.BaseType != "" {
			r.Println(output.FormatKeyValue("Base", info.BaseType))
		}
		r.Println(output.FormatKeyValue("Class", fmt.Sprintf("%s.%s (%s)", info.Namespace, info.Class, info.Runtime)))
		if info.FilePath != "" {
			r.Println(output.FormatKeyValue("File", info.FilePath))
		}
		if info.Builtin {
			r.Println(output.FormatKeyValue("Built-in", "true"))
		}
		if !info.Generate {
			r.Println(output.FormatKeyValue("Generate", "false"))
		}
		if len(info.Instances) > 0 {
			r.Println(output.FormatKeyValue("Instances", strings.Join(info.Instances, ", ")))
		}
		if len(info.States) > 1 {
			r.Println(output.FormatKeyValue("States", strings.Join(info.States, ", ")))
		}
		if len(info.Derived) > 0 {
			r.Println(output.FormatKeyValue("Derived", strings.Join(info.Derived, ", ")))
		}
		if info.LastOutput != nil {
			r.Println(output.FormatKeyValue("Last Generated", info.LastOutput.CreatedAt))
		}
		r.Println("")
	}
}

func listJSON(infos []output.ElementInfo, result *loader.Result) output.ListOutput {
	doc := output.ListOutput{
		Elements: infos,
		Errors:   make([]output.LoadIssue, 0, len(result.Errors)),
		Summary: output.ListSummary{
			Total:  len(infos),
			ByKind: make(map[string]int),
		},
	}
	if doc.Elements == nil {
		doc.Elements = []output.ElementInfo{}
	}
	for _, info := range infos {
		doc.Summary.ByKind[info.Kind]++
	}
	for _, e := range result.Errors {
		doc.Errors = append(doc.Errors, output.LoadIssue{Path: e.Path, Type: e.Type, Message: e.Message})
	}
	return doc
}
