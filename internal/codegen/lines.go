package codegen

import (
	"fmt"
	"strings"

	"github.com/leapstack-labs/gumcodegen/pkg/core"
	"github.com/leapstack-labs/gumcodegen/pkg/units"
)

// codeLine returns the statement assigning v in sc. Variables that need a
// statement other than a plain property assignment are replaced first. A
// skip line means v produces no code.
func (g *Generator) codeLine(sc scope, v *core.Variable) Line {
	root := v.RootName()

	if root == varParent {
		return g.parentLine(sc, v)
	}
	if sc.rt == RuntimeForms && root == varChildrenLayout {
		if e, ok := v.Value.(core.Enum); ok && e.Type == units.ChildrenLayoutTypeName {
			i, err := units.Member(units.ChildrenLayoutTypeName, e.Member)
			if err != nil {
				return ""
			}
			return g.childrenLayoutLine(sc, units.ChildrenLayout(i))
		}
	}
	if line, ok := g.localizedLine(sc, v); ok {
		return line
	}

	var value string
	if sc.rt == RuntimeForms {
		value = g.formsValue(sc.el, v)
	} else {
		value = g.gumValue(sc.el, v, v.Value)
	}
	if value == "" {
		return ""
	}
	return Linef("%s.%s = %s;", sc.target(), propertyName(root, sc.rt), value)
}

// parentLine adds the scope's instance to the instance named by v. Parents
// that do not name an instance of the element produce nothing.
func (g *Generator) parentLine(sc scope, v *core.Variable) Line {
	name, _ := v.Value.(core.Text)
	parent := g.instanceIn(sc.el, string(name))
	if sc.inst == nil || parent == nil {
		return ""
	}
	if sc.rt == RuntimeForms && g.hasSingleContent(parent) {
		return Linef("%s.Content = %s;", sc.member(parent.Name), sc.member(sc.inst.Name))
	}
	return Linef("%s.Children.Add(%s);", sc.member(parent.Name), sc.member(sc.inst.Name))
}

// hasSingleContent reports whether a Forms parent holds one Content view
// rather than a Children collection. The decisive type is the base just
// above the root standard, since every Forms control derives from Container.
func (g *Generator) hasSingleContent(parent *core.Instance) bool {
	el := g.reg.ElementForInstance(parent)
	if el == nil {
		return false
	}
	var componentType string
	bases := g.reg.BaseElements(el)
	switch {
	case len(bases) > 1:
		componentType = bases[len(bases)-2].Name
	case len(bases) == 1:
		componentType = el.Name
	}
	for _, suffix := range []string{"/ScrollView", "/StickyScrollView", "/Frame"} {
		if strings.HasSuffix(componentType, suffix) {
			return true
		}
	}
	return false
}

// childrenLayoutLine maps a children layout onto a Forms stack orientation.
// Only stack layouts can stack; any other object that asks to gets an
// inline error.
func (g *Generator) childrenLayoutLine(sc scope, layout units.ChildrenLayout) Line {
	orientation := "Vertical"
	if layout == units.LeftToRightStack {
		orientation = "Horizontal"
	}

	switch {
	case sc.inst != nil && strings.HasSuffix(sc.inst.BaseType, "/StackLayout"):
		return Linef("%s.Orientation = StackOrientation.%s;", sc.member(sc.inst.Name), orientation)
	case sc.inst == nil && strings.HasSuffix(sc.el.BaseType, "/StackLayout"):
		return Linef("%s.Orientation = StackOrientation.%s;", sc.target(), orientation)
	case layout == units.Regular:
		return ""
	}

	msg := fmt.Sprintf("Error: The object %s cannot have a layout of %s.", sc.name(), layout)
	if sc.inst != nil && strings.HasSuffix(sc.inst.BaseType, "/SkiaGumCanvasView") {
		msg += fmt.Sprintf("\nTo stack objects in a Skia canvas, add a Container which has its ChildrenLayout set to %s", layout)
	} else {
		msg += "\nIt should probably inherit from StackLayout to be a top-to-bottom stack"
	}
	return Line(msg)
}

// localizedLine assigns a string-table lookup when v holds a string ID.
func (g *Generator) localizedLine(sc scope, v *core.Variable) (Line, bool) {
	loc := g.opts.Localization
	text, ok := v.Value.(core.Text)
	if !loc.Active || !ok || loc.StringIDPrefix == "" || !strings.HasPrefix(string(text), loc.StringIDPrefix) {
		return "", false
	}
	return Linef("%s.%s = %s;", sc.target(), v.RootName(), loc.Lookup(string(text))), true
}
