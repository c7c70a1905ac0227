package commands

// snippet.go - commands printing the code for one part of an element

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/leapstack-labs/gumcodegen/internal/cli/output"
	"github.com/leapstack-labs/gumcodegen/pkg/core"
)

// NewStateCommand creates the state command.
func NewStateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "state <element> <state>",
		Short: "Print the assignments applying one state",
		Long: `Print the C# statements that apply one state of an element.

Name a categorized state as "Category/State" or by its bare name; the
default state is "Default".`,
		Example: `  gumcodegen state Controls/Button ButtonCategory/Highlighted
  gumcodegen state MainMenu Default`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSnippet(cmd, args[0], args[1], stateSnippet)
		},
	}
}

// NewInstanceCommand creates the instance command.
func NewInstanceCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "instance <element> <instance>",
		Short: "Print the code creating one instance",
		Long: `Print the C# that declares, creates, parents and initializes one
instance of an element, as it appears in the generated class.`,
		Example: `  gumcodegen instance MainMenu OkButton`,
		Args:    cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSnippet(cmd, args[0], args[1], instanceSnippet)
		},
	}
}

type snippetFunc func(cmdCtx *CommandContext, el *core.Element, target string) (string, error)

func runSnippet(cmd *cobra.Command, element, target string, fn snippetFunc) error {
	cmdCtx, cleanup, err := NewCommandContext(cmd)
	if err != nil {
		return err
	}
	defer cleanup()

	if _, err := loadProject(cmdCtx); err != nil {
		return err
	}

	el, err := cmdCtx.Engine.Element(element)
	if err != nil {
		return fmt.Errorf("%s: %w", element, err)
	}
	code, err := fn(cmdCtx, el, target)
	if err != nil {
		return err
	}

	r := cmdCtx.Renderer
	switch r.EffectiveMode() {
	case output.ModeJSON:
		return r.JSON(output.SnippetOutput{Element: el.Name, Target: target, Code: code})
	case output.ModeMarkdown:
		r.Println(output.FormatCodeBlock("csharp", strings.TrimSuffix(code, "\n")))
	default:
		r.Code("csharp", strings.TrimSuffix(code, "\n"))
	}
	return nil
}

func stateSnippet(cmdCtx *CommandContext, el *core.Element, target string) (string, error) {
	state := findState(el, target)
	if state == nil {
		labels := make([]string, 0)
		for _, s := range el.AllStates() {
			labels = append(labels, stateLabel(s))
		}
		return "", fmt.Errorf("element %s has no state %q (available: %s)", el.Name, target, strings.Join(labels, ", "))
	}
	return cmdCtx.Engine.Generator().StateCode(el, state), nil
}

func instanceSnippet(cmdCtx *CommandContext, el *core.Element, target string) (string, error) {
	inst := el.Instance(target)
	if inst == nil {
		names := make([]string, 0, len(el.Instances))
		for _, i := range el.Instances {
			names = append(names, i.Name)
		}
		return "", fmt.Errorf("element %s has no instance %q (available: %s)", el.Name, target, strings.Join(names, ", "))
	}
	return cmdCtx.Engine.Generator().InstanceCode(el, inst), nil
}

// findState resolves "Category/State", a bare state name or the default
// state's name.
func findState(el *core.Element, name string) *core.State {
	if category, state, ok := strings.Cut(name, "/"); ok {
		if c := el.Category(category); c != nil {
			return c.State(state)
		}
		return nil
	}
	for _, s := range el.AllStates() {
		if s.Name == name {
			return s
		}
	}
	return nil
}
