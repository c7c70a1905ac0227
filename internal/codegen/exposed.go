package codegen

import (
	"fmt"

	"github.com/leapstack-labs/gumcodegen/pkg/core"
)

// BindingMode is the shape of a generated exposed-variable property.
type BindingMode int

// Binding modes.
const (
	// BindingNone is a plain property forwarding to the variable.
	BindingNone BindingMode = iota
	// BindingEventAssignment is a bindable property whose change handler
	// pushes the value onto a non-bindable instance.
	BindingEventAssignment
	// BindingBoundInstance is a bindable property the instance binds to.
	BindingBoundInstance
)

func (m BindingMode) String() string {
	switch m {
	case BindingEventAssignment:
		return "event-assignment"
	case BindingBoundInstance:
		return "bound-instance"
	default:
		return "none"
	}
}

// BindingModeOf classifies an exposed variable of el.
func (g *Generator) BindingModeOf(el *core.Element, v *core.Variable) BindingMode {
	if g.RuntimeOf(el) != RuntimeForms {
		return BindingNone
	}
	if v.SourceObject != "" && g.finder(el, nil).Bool(v.SourceObject+"."+formsMarker) {
		return BindingBoundInstance
	}
	return BindingEventAssignment
}

func (g *Generator) exposedProperties(el *core.Element) []Node {
	var out []Node
	for _, v := range el.ExposedVariables() {
		out = append(out, g.exposedProperty(el, v)...)
		out = append(out, Blank{})
	}
	return out
}

func (g *Generator) exposedProperty(el *core.Element, v *core.Variable) []Node {
	name := stripSpaces(v.ExposedAsName)
	typ := g.exposedType(el, v)
	className := ClassName(el.Name, RuntimeForms)

	bindable := Braced("public "+typ+" "+name,
		Linef("get => (%s)GetValue(%sProperty);", typ, name),
		Linef("set => SetValue(%sProperty, value);", name),
	)

	switch g.BindingModeOf(el, v) {
	case BindingBoundInstance:
		return []Node{
			Linef("public static readonly BindableProperty %sProperty = BindableProperty.Create(nameof(%s),typeof(%s),typeof(%s), defaultBindingMode: BindingMode.TwoWay);",
				name, name, typ, className),
			bindable,
		}

	case BindingEventAssignment:
		var defaultValue string
		val := g.finder(el, nil).Value(v.Name)
		if val == nil {
			val = v.Value
		}
		if s := g.gumValue(el, v, val); s != "" {
			defaultValue = ", defaultValue:" + s
		}

		handler := Braced(fmt.Sprintf("private static void Handle%sPropertyChanged(BindableObject bindable, object oldValue, object newValue)", name),
			Linef("var casted = bindable as %s;", className),
		)
		if v.SourceObject != "" {
			handler.Append(
				Linef("casted.%s.%s = (%s)newValue;", v.SourceObject, v.RootName(), typ),
				Linef("casted.%s?.EffectiveManagers?.InvalidateSurface();", v.SourceObject),
			)
		} else {
			handler.Append(Linef("casted.%s = (%s)newValue;", stripSpaces(v.Name), typ))
		}

		return []Node{
			Linef("public static readonly BindableProperty %sProperty = BindableProperty.Create(nameof(%s),typeof(%s),typeof(%s), defaultBindingMode: BindingMode.TwoWay, propertyChanged:Handle%sPropertyChanged%s);",
				name, name, typ, className, name, defaultValue),
			bindable,
			handler,
		}
	}

	field := stripSpaces(v.Name)
	return []Node{Braced("public "+typ+" "+name,
		Linef("get => %s;", field),
		Linef("set => %s = value;", field),
	)}
}

// exposedType is the declared type of an exposed property. State selections
// use the category enum of the element that owns the category.
func (g *Generator) exposedType(el *core.Element, v *core.Variable) string {
	ref, ok := v.Value.(core.StateRef)
	if !ok {
		cat, isState := core.CategoryForType(v.Type)
		if !isState {
			return v.Type
		}
		ref = core.StateRef{Category: cat}
	}
	owner, cat := g.stateOwner(el, v, ref)
	if owner == nil {
		return v.Type
	}
	return ClassName(owner.Name, g.RuntimeOf(owner)) + "." + cat.Name
}

// bindings binds Forms instances to the container's exposed properties.
func (g *Generator) bindings(el *core.Element) []Node {
	var out []Node
	for _, v := range el.ExposedVariables() {
		inst := el.Instance(v.SourceObject)
		if inst == nil || !g.finder(el, nil).Bool(v.SourceObject+"."+formsMarker) {
			continue
		}
		out = append(out, Linef("%s.SetBinding(%s.%sProperty, nameof(%s));",
			inst.Name, ClassName(inst.BaseType, RuntimeForms), stripSpaces(v.RootName()), stripSpaces(v.ExposedAsName)))
	}
	return out
}
