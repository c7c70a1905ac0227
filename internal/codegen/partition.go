package codegen

import (
	"strings"

	"github.com/leapstack-labs/gumcodegen/pkg/core"
)

// partition holds the variables of one scope, each in exactly one bucket.
// Buckets are emitted in a fixed order by emitGroup.
type partition struct {
	stateRefs  []*core.Variable
	color      []*core.Variable
	position   []*core.Variable
	bold       []*core.Variable
	parent     []*core.Variable
	suppressed []*core.Variable
	plain      []*core.Variable
}

// partition classifies vars for sc. Color, bold and position variables are
// only grouped on Forms, where they combine into composite statements.
func (g *Generator) partition(sc scope, vars []*core.Variable) partition {
	var p partition
	forms := sc.rt == RuntimeForms
	text := forms && g.standardOf(sc) == "Text"
	positioned := forms && !(sc.inst == nil && sc.el.Kind == core.KindScreen)

	for _, v := range vars {
		root := v.RootName()
		switch {
		case v.IsStateReference():
			p.stateRefs = append(p.stateRefs, v)
		case root == varParent:
			p.parent = append(p.parent, v)
		case text && colorNames[root]:
			p.color = append(p.color, v)
		case positioned && positionNames[root]:
			p.position = append(p.position, v)
		case text && root == varIsBold:
			p.bold = append(p.bold, v)
		case isSuppressed(root, sc.rt):
			p.suppressed = append(p.suppressed, v)
		default:
			p.plain = append(p.plain, v)
		}
	}
	return p
}

// standardOf returns the name of the standard type that decides which
// variable groups apply to sc. Instances use the root standard of their
// type; the container uses its direct base type.
func (g *Generator) standardOf(sc scope) string {
	if sc.inst == nil {
		return sc.el.BaseType
	}
	if std := g.reg.RootStandard(sc.inst.BaseType); std != nil {
		return std.Name
	}
	return ""
}

type emitOptions struct {
	// spacing emits the stack spacing reset for Forms stack instances
	spacing bool
}

// emitGroup emits the assignments of vars to sc.
func (g *Generator) emitGroup(sc scope, vars []*core.Variable, opts emitOptions) []Node {
	p := g.partition(sc, vars)

	var out []Node
	add := func(line Line) {
		if !line.IsSkip() {
			out = append(out, line)
		}
	}

	if opts.spacing && sc.rt == RuntimeForms && sc.inst != nil && strings.HasSuffix(sc.inst.BaseType, "/StackLayout") {
		add(Linef("%s.Spacing = 0;", sc.inst.Name))
	}
	for _, v := range p.stateRefs {
		add(g.codeLine(sc, v))
	}
	if sc.rt == RuntimeForms {
		for _, line := range g.variableGroups(sc, p) {
			add(line)
		}
	}
	for _, v := range p.plain {
		add(g.codeLine(sc, v))
	}
	return out
}
