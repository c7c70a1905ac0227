package codegen

import (
	"fmt"
	"strings"
)

// Node is an element of the generated-code tree: a Line, a Blank or a Block.
// Nodes carry no indentation; depth is implied by Block nesting and applied
// once when the tree is rendered.
type Node interface {
	node()
}

// Line is a single statement or declaration. A line that is empty or only
// whitespace is a skip marker and is never rendered.
type Line string

// Blank is an intentional empty line.
type Blank struct{}

// Block is a header followed by an indented body. Unless Bare is set the
// body is wrapped in braces on their own lines.
type Block struct {
	// Header is the line before the body, e.g. "public Button()". Empty for
	// an anonymous brace scope.
	Header string
	Body   []Node
	// Bare indents the body without braces, as for switch cases.
	Bare bool
}

func (Line) node()   {}
func (Blank) node()  {}
func (*Block) node() {}

// Linef formats a Line.
func Linef(format string, args ...any) Line {
	return Line(fmt.Sprintf(format, args...))
}

// Braced creates a braced block.
func Braced(header string, body ...Node) *Block {
	return &Block{Header: header, Body: body}
}

// Bare creates a block whose body is indented without braces.
func Bare(header string, body ...Node) *Block {
	return &Block{Header: header, Body: body, Bare: true}
}

// Append adds nodes to the block body.
func (b *Block) Append(nodes ...Node) {
	b.Body = append(b.Body, nodes...)
}

// IsSkip reports whether a line renders to nothing.
func (l Line) IsSkip() bool {
	return strings.TrimSpace(string(l)) == ""
}

// Flatten returns the statements of a tree in render order, without
// indentation, braces or skipped lines. Block headers are included.
func Flatten(nodes []Node) []string {
	var out []string
	var walk func([]Node)
	walk = func(nodes []Node) {
		for _, n := range nodes {
			switch n := n.(type) {
			case Line:
				if !n.IsSkip() {
					out = append(out, strings.Split(string(n), "\n")...)
				}
			case *Block:
				if n.Header != "" {
					out = append(out, n.Header)
				}
				walk(n.Body)
			}
		}
	}
	walk(nodes)
	return out
}

// FindBlock returns the first block, depth first, whose header satisfies
// match.
func FindBlock(nodes []Node, match func(header string) bool) *Block {
	for _, n := range nodes {
		b, ok := n.(*Block)
		if !ok {
			continue
		}
		if match(b.Header) {
			return b
		}
		if found := FindBlock(b.Body, match); found != nil {
			return found
		}
	}
	return nil
}

// HeaderPrefix matches block headers starting with prefix.
func HeaderPrefix(prefix string) func(string) bool {
	return func(header string) bool { return strings.HasPrefix(header, prefix) }
}
