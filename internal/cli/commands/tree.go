package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/leapstack-labs/gumcodegen/internal/cli/output"
	"github.com/leapstack-labs/gumcodegen/internal/dag"
	"github.com/leapstack-labs/gumcodegen/pkg/core"
)

// NewTreeCommand creates the tree command.
func NewTreeCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tree [element]",
		Short: "Show the element inheritance tree",
		Long: `Show which elements derive from which.

Without arguments the whole forest is printed, rooted at the elements that
have no base type. With an element name only that element and everything
deriving from it is printed.`,
		Example: `  # Whole project
  gumcodegen tree

  # Everything built on the Container standard
  gumcodegen tree Container`,
		Args: cobra.MaximumNArgs(1),
		RunE: runTree,
	}
	return cmd
}

func runTree(cmd *cobra.Command, args []string) error {
	cmdCtx, cleanup, err := NewCommandContext(cmd)
	if err != nil {
		return err
	}
	defer cleanup()

	if _, err := loadProject(cmdCtx); err != nil {
		return err
	}

	graph := cmdCtx.Engine.Graph()
	roots := graph.GetRoots()
	if len(args) == 1 {
		if _, err := cmdCtx.Engine.Element(args[0]); err != nil {
			return fmt.Errorf("%s: %w", args[0], err)
		}
		roots = []string{args[0]}
	}

	nodes := make([]output.TreeNode, 0, len(roots))
	for _, root := range roots {
		nodes = append(nodes, buildTree(graph, root))
	}

	r := cmdCtx.Renderer
	if r.EffectiveMode() == output.ModeJSON {
		return r.JSON(nodes)
	}

	var b strings.Builder
	for _, n := range nodes {
		b.WriteString(nodeLabel(n))
		b.WriteByte('\n')
		writeTree(&b, n.Children, "")
	}
	text := strings.TrimSuffix(b.String(), "\n")
	if r.EffectiveMode() == output.ModeMarkdown {
		r.Println(output.FormatHeader(1, "Inheritance"))
		r.Println("")
		r.Println(output.FormatCodeBlock("", text))
		return nil
	}
	r.Header(1, "Inheritance")
	r.Println(text)
	return nil
}

func buildTree(graph *dag.Graph[*core.Element], id string) output.TreeNode {
	node := output.TreeNode{Name: id}
	if n, ok := graph.GetNode(id); ok && n.Data != nil {
		node.Kind = n.Data.Kind.Label()
	}
	for _, child := range graph.GetChildren(id) {
		node.Children = append(node.Children, buildTree(graph, child))
	}
	return node
}

func nodeLabel(n output.TreeNode) string {
	if n.Kind == "" {
		return n.Name
	}
	return fmt.Sprintf("%s (%s)", n.Name, n.Kind)
}

func writeTree(b *strings.Builder, children []output.TreeNode, prefix string) {
	for i, child := range children {
		branch, next := "├── ", "│   "
		if i == len(children)-1 {
			branch, next = "└── ", "    "
		}
		b.WriteString(prefix + branch + nodeLabel(child) + "\n")
		writeTree(b, child.Children, prefix+next)
	}
}
