package codegen

import (
	"strings"

	"github.com/leapstack-labs/gumcodegen/pkg/core"
	"github.com/leapstack-labs/gumcodegen/pkg/units"
)

const densityDivisor = "DeviceDisplay.MainDisplayInfo.Density"

// gumValue renders val, which belongs to variable v of el, as a Gum runtime
// expression. An empty result means the value cannot be expressed and the
// assignment is skipped.
func (g *Generator) gumValue(el *core.Element, v *core.Variable, val core.Value) string {
	switch val := val.(type) {
	case core.Number:
		return floatLiteral(float32(val))
	case core.Integer:
		return val.String()
	case core.Text:
		if v.RootName() == varParent {
			return string(val)
		}
		return quote(string(val))
	case core.Bool:
		return val.String()
	case core.StateRef:
		return g.stateValue(el, v, val, RuntimeGum)
	case core.Enum:
		return enumValue(val)
	}
	return ""
}

// formsValue renders the value of v as a Forms runtime expression.
func (g *Generator) formsValue(el *core.Element, v *core.Variable) string {
	root := v.RootName()

	switch val := v.Value.(type) {
	case core.Number:
		n := core.FormatFloat(float32(val))
		switch root {
		case "X", "Y":
			return n + "f"
		case "CornerRadius":
			return "(int)(" + n + " / " + densityDivisor + ")"
		default:
			return n + " / " + densityDivisor
		}
	case core.Integer:
		return val.String()
	case core.Text:
		if root == varParent {
			return string(val)
		}
		return quote(string(val))
	case core.Bool:
		return val.String()
	case core.StateRef:
		return g.stateValue(el, v, val, RuntimeForms)
	case core.Enum:
		switch val.Type {
		case units.HorizontalAlignmentTypeName, units.VerticalAlignmentTypeName:
			return textAlignment(val.Member)
		}
		return enumValue(val)
	}
	return ""
}

// stateValue qualifies a state reference with the class owning its category.
func (g *Generator) stateValue(el *core.Element, v *core.Variable, ref core.StateRef, rt Runtime) string {
	owner, cat := g.stateOwner(el, v, ref)
	if owner == nil {
		return ""
	}
	return ClassName(owner.Name, rt) + "." + cat.Name + "." + ref.Member
}

// stateOwner finds the element and category a state-reference variable of
// el selects from. Instance variables look in the instance's type.
func (g *Generator) stateOwner(el *core.Element, v *core.Variable, ref core.StateRef) (*core.Element, *core.Category) {
	if ref.Category == "" {
		return nil, nil
	}
	target := el
	if v.SourceObject != "" {
		target = g.reg.ElementForInstance(g.instanceIn(el, v.SourceObject))
	}
	return g.reg.CategoryOwner(target, ref.Category)
}

// instanceIn finds an instance declared on el or any of its bases.
func (g *Generator) instanceIn(el *core.Element, name string) *core.Instance {
	if inst := el.Instance(name); inst != nil {
		return inst
	}
	for _, base := range g.reg.BaseElements(el) {
		if inst := base.Instance(name); inst != nil {
			return inst
		}
	}
	return nil
}

func enumValue(e core.Enum) string {
	if e.Type == units.PositionUnitTypeName {
		i, err := units.Member(units.PositionUnitTypeName, e.Member)
		if err != nil {
			return ""
		}
		return units.GeneralUnitTypeName + "." + units.ToGeneralUnit(units.PositionUnit(i)).String()
	}
	return e.Type + "." + e.Member
}

func textAlignment(member string) string {
	switch member {
	case "Left", "Top":
		return "Xamarin.Forms.TextAlignment.Start"
	case "Center":
		return "Xamarin.Forms.TextAlignment.Center"
	case "Right", "Bottom":
		return "Xamarin.Forms.TextAlignment.End"
	}
	return ""
}

func floatLiteral(f float32) string {
	return core.FormatFloat(f) + "f"
}

func quote(s string) string {
	return `"` + strings.ReplaceAll(s, "\n", `\n`) + `"`
}
