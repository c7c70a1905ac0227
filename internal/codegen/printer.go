package codegen

import (
	"bytes"
	"strings"
)

const indentSize = 4

// Printer renders a node tree to text with its own depth tracking.
type Printer struct {
	output *bytes.Buffer
	depth  int
}

func newPrinter() *Printer {
	return &Printer{output: &bytes.Buffer{}}
}

// Render renders nodes to source text.
func Render(nodes []Node) string {
	p := newPrinter()
	p.nodes(nodes)
	return p.String()
}

// String returns the rendered output.
func (p *Printer) String() string {
	return p.output.String()
}

func (p *Printer) nodes(nodes []Node) {
	for _, n := range nodes {
		switch n := n.(type) {
		case Line:
			p.line(n)
		case Blank:
			p.writeln()
		case *Block:
			p.block(n)
		}
	}
}

// line writes each physical line of l at the current depth. Whitespace-only
// lines are dropped.
func (p *Printer) line(l Line) {
	if l.IsSkip() {
		return
	}
	for _, s := range strings.Split(string(l), "\n") {
		p.write(s)
		p.writeln()
	}
}

func (p *Printer) block(b *Block) {
	if b.Header != "" {
		p.write(b.Header)
		p.writeln()
	}
	if !b.Bare {
		p.write("{")
		p.writeln()
	}
	p.indent()
	p.nodes(b.Body)
	p.dedent()
	if !b.Bare {
		p.write("}")
		p.writeln()
	}
}

func (p *Printer) write(s string) {
	if s != "" {
		p.writeIndent()
	}
	p.output.WriteString(s)
}

func (p *Printer) writeln() {
	p.output.WriteByte('\n')
}

func (p *Printer) writeIndent() {
	p.output.WriteString(strings.Repeat(" ", p.depth*indentSize))
}

func (p *Printer) indent() {
	p.depth++
}

func (p *Printer) dedent() {
	if p.depth > 0 {
		p.depth--
	}
}
