package testutil

import (
	"github.com/leapstack-labs/gumcodegen/pkg/core"
	"github.com/leapstack-labs/gumcodegen/pkg/units"
)

// ElementBuilder assembles elements for tests.
type ElementBuilder struct {
	el *core.Element
}

// Screen starts a screen element.
func Screen(name, baseType string) *ElementBuilder {
	return newBuilder(core.KindScreen, name, baseType)
}

// Component starts a component element.
func Component(name, baseType string) *ElementBuilder {
	return newBuilder(core.KindComponent, name, baseType)
}

// StandardElement starts a standard element.
func StandardElement(name string) *ElementBuilder {
	return newBuilder(core.KindStandard, name, "")
}

func newBuilder(kind core.ElementKind, name, baseType string) *ElementBuilder {
	return &ElementBuilder{el: &core.Element{
		Name:         name,
		Kind:         kind,
		BaseType:     baseType,
		DefaultState: &core.State{Name: "Default"},
		Settings:     core.DefaultElementSettings(),
	}}
}

// Instance adds a locally declared instance.
func (b *ElementBuilder) Instance(name, baseType string) *ElementBuilder {
	b.el.Instances = append(b.el.Instances, &core.Instance{Name: name, BaseType: baseType})
	return b
}

// InheritedInstance adds an instance declared by the base element.
func (b *ElementBuilder) InheritedInstance(name, baseType string) *ElementBuilder {
	b.el.Instances = append(b.el.Instances, &core.Instance{Name: name, BaseType: baseType, DefinedByBase: true})
	return b
}

// Vars appends variables to the default state.
func (b *ElementBuilder) Vars(vars ...*core.Variable) *ElementBuilder {
	b.el.DefaultState.Variables = append(b.el.DefaultState.Variables, vars...)
	return b
}

// Category adds a category with the given states.
func (b *ElementBuilder) Category(name string, states ...*core.State) *ElementBuilder {
	for _, s := range states {
		s.Category = name
	}
	b.el.Categories = append(b.el.Categories, &core.Category{Name: name, States: states})
	return b
}

// Settings replaces the element's code output settings.
func (b *ElementBuilder) Settings(s core.ElementSettings) *ElementBuilder {
	b.el.Settings = s
	return b
}

// Build returns the element.
func (b *ElementBuilder) Build() *core.Element {
	return b.el
}

// StateOf builds a named state.
func StateOf(name string, vars ...*core.Variable) *core.State {
	return &core.State{Name: name, Variables: vars}
}

// Var builds a value-setting variable, deriving its source object from name.
func Var(name, typeName string, value core.Value) *core.Variable {
	source, _ := core.SplitVariableName(name)
	return &core.Variable{
		Name:         name,
		Type:         typeName,
		Value:        value,
		SourceObject: source,
		SetsValue:    true,
	}
}

// Float builds a float variable.
func Float(name string, f float32) *core.Variable { return Var(name, "float", core.Number(f)) }

// Int builds an int variable.
func Int(name string, i int) *core.Variable { return Var(name, "int", core.Integer(i)) }

// String builds a string variable.
func String(name, s string) *core.Variable { return Var(name, "string", core.Text(s)) }

// Bool builds a bool variable.
func Bool(name string, b bool) *core.Variable { return Var(name, "bool", core.Bool(b)) }

// Enum builds an enum variable.
func Enum(name, typeName, member string) *core.Variable {
	return Var(name, typeName, core.Enum{Type: typeName, Member: member})
}

// StateVar builds a variable selecting member of category.
func StateVar(name, category, member string) *core.Variable {
	return Var(name, category+core.StateTypeSuffix, core.StateRef{Category: category, Member: member})
}

// Exposed marks v as exposed under the given property name.
func Exposed(v *core.Variable, as string) *core.Variable {
	v.ExposedAsName = as
	return v
}

// Inert marks v as metadata that sets no value.
func Inert(v *core.Variable) *core.Variable {
	v.SetsValue = false
	return v
}

// Box returns the position and size variables for prefix ("" or "Name.")
// in the common PixelsFromLeft/PixelsFromTop/Absolute configuration.
func Box(prefix string, x, y, width, height float32) []*core.Variable {
	return []*core.Variable{
		Float(prefix+"X", x),
		Float(prefix+"Y", y),
		Float(prefix+"Width", width),
		Float(prefix+"Height", height),
	}
}

// Standards returns the built-in standard elements with the default values
// of the Gum runtime.
func Standards() []*core.Element {
	common := func() []*core.Variable {
		return []*core.Variable{
			Float("X", 0),
			Float("Y", 0),
			Float("Width", 150),
			Float("Height", 150),
			Enum("X Units", units.PositionUnitTypeName, "PixelsFromLeft"),
			Enum("Y Units", units.PositionUnitTypeName, "PixelsFromTop"),
			Enum("Width Units", units.DimensionUnitTypeName, "Absolute"),
			Enum("Height Units", units.DimensionUnitTypeName, "Absolute"),
			Enum("X Origin", units.HorizontalAlignmentTypeName, "Left"),
			Enum("Y Origin", units.VerticalAlignmentTypeName, "Top"),
			Bool("Visible", true),
			Float("Rotation", 0),
			String("Parent", ""),
			Bool("IsXamarinFormsControl", false),
			Bool("HasEvents", true),
			Bool("ExposeChildrenEvents", true),
		}
	}

	container := StandardElement("Container").
		Vars(common()...).
		Vars(
			Bool("Clips Children", false),
			Bool("Wraps Children", false),
			Enum("Children Layout", units.ChildrenLayoutTypeName, "Regular"),
		).Build()

	text := StandardElement("Text").
		Vars(common()...).
		Vars(
			String("Text", "Hello"),
			Int("Red", 255),
			Int("Green", 255),
			Int("Blue", 255),
			Int("Alpha", 255),
			Int("FontSize", 18),
			String("Font", "Arial"),
			Bool("IsBold", false),
			Enum("HorizontalAlignment", units.HorizontalAlignmentTypeName, "Left"),
			Enum("VerticalAlignment", units.VerticalAlignmentTypeName, "Top"),
		).Build()
	text.DefaultState.Variable("Width").Value = core.Number(100)
	text.DefaultState.Variable("Height").Value = core.Number(50)

	sprite := StandardElement("Sprite").
		Vars(common()...).
		Vars(String("SourceFile", ""), Bool("FlipHorizontal", false)).
		Build()

	rect := StandardElement("ColoredRectangle").
		Vars(common()...).
		Vars(Int("Red", 255), Int("Green", 255), Int("Blue", 255), Int("Alpha", 255)).
		Build()

	return []*core.Element{container, text, sprite, rect}
}
