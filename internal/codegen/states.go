package codegen

import (
	"fmt"
	"strings"

	"github.com/leapstack-labs/gumcodegen/pkg/core"
)

// stateEnums declares one enum per category with a member per state.
func (g *Generator) stateEnums(el *core.Element) []Node {
	var out []Node
	for _, cat := range el.Categories {
		enum := Braced("public enum " + cat.Name)
		for _, state := range cat.States {
			enum.Append(Line(state.Name + ","))
		}
		out = append(out, enum)
	}
	return out
}

// stateProperties declares one property per category whose setter applies
// the selected state. On Forms the property is bindable and the state is
// applied from a static change handler.
func (g *Generator) stateProperties(el *core.Element, rt Runtime) []Node {
	className := ClassName(el.Name, rt)

	var out []Node
	for _, cat := range el.Categories {
		out = append(out, Blank{})

		if rt == RuntimeGum {
			out = append(out,
				Linef("%s m%sState;", cat.Name, cat.Name),
				Braced(fmt.Sprintf("public %s %sState", cat.Name, cat.Name),
					Linef("get => m%sState;", cat.Name),
					Braced("set",
						Linef("m%sState = value;", cat.Name),
						g.stateSwitch(el, cat, ""),
					),
				),
			)
			continue
		}

		enumName := cat.Name + "?"
		handler := Braced(fmt.Sprintf("private static void Handle%sStatePropertyChanged(BindableObject bindable, object oldValue, object newValue)", cat.Name),
			Linef("var casted = bindable as %s;", className),
			Linef("var value = (%s)newValue;", enumName),
			g.stateSwitch(el, cat, "casted"),
		)
		for _, inst := range el.Instances {
			if strings.HasSuffix(inst.BaseType, "/SkiaSharpCanvasView") {
				handler.Append(Linef("casted.%s.InvalidateSurface();", inst.Name))
			}
		}
		if strings.HasSuffix(el.BaseType, "/SkiaGumCanvasView") {
			handler.Append(Line("casted.InvalidateSurface();"))
		}

		out = append(out,
			Linef("public static readonly BindableProperty %sStateProperty = BindableProperty.Create(nameof(%sState),typeof(%s),typeof(%s), defaultBindingMode: BindingMode.TwoWay, propertyChanged:Handle%sStatePropertyChanged);",
				cat.Name, cat.Name, enumName, className, cat.Name),
			Braced(fmt.Sprintf("public %s %sState", enumName, cat.Name),
				Linef("get => (%s)GetValue(%sStateProperty);", enumName, cat.Name),
				Linef("set => SetValue(%sStateProperty, value);", cat.Name),
			),
			handler,
		)
	}
	return out
}

// stateSwitch has one case per state of cat and no default case.
func (g *Generator) stateSwitch(el *core.Element, cat *core.Category, this string) *Block {
	sw := Braced("switch (value)")
	for _, state := range cat.States {
		c := Bare(fmt.Sprintf("case %s.%s:", cat.Name, state.Name))
		c.Append(g.stateAssignments(el, state, this)...)
		c.Append(Line("break;"))
		sw.Append(c)
	}
	return sw
}

// stateAssignments applies the variables of state, grouped by the object
// they target in order of first appearance. Parent variables of every group
// follow all other assignments of the state so geometry is set before
// re-parenting.
func (g *Generator) stateAssignments(el *core.Element, state *core.State, this string) []Node {
	var order []string
	groups := map[string][]*core.Variable{}
	for _, v := range state.Variables {
		if _, ok := groups[v.SourceObject]; !ok {
			order = append(order, v.SourceObject)
		}
		groups[v.SourceObject] = append(groups[v.SourceObject], v)
	}

	type deferred struct {
		sc      scope
		parents []*core.Variable
	}
	var (
		out     []Node
		reparent []deferred
	)
	for _, source := range order {
		var inst *core.Instance
		if source != "" {
			if inst = g.instanceIn(el, source); inst == nil {
				continue
			}
		}

		var vars, parents []*core.Variable
		for _, v := range groups[source] {
			switch {
			case !g.includeVariable(el, inst, v):
			case v.RootName() == varParent:
				parents = append(parents, v)
			default:
				vars = append(vars, v)
			}
		}
		sc := scope{el: el, inst: inst, state: state, rt: g.RuntimeOfInstance(el, inst), this: this}
		out = append(out, g.emitGroup(sc, vars, emitOptions{})...)
		if len(parents) > 0 {
			reparent = append(reparent, deferred{sc: sc, parents: parents})
		}
	}
	for _, d := range reparent {
		for _, v := range d.parents {
			if line := g.codeLine(d.sc, v); !line.IsSkip() {
				out = append(out, line)
			}
		}
	}
	return out
}
