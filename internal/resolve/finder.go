// Package resolve computes effective variable values by walking state,
// element and instance inheritance.
package resolve

import (
	"github.com/leapstack-labs/gumcodegen/internal/registry"
	"github.com/leapstack-labs/gumcodegen/pkg/core"
	"github.com/leapstack-labs/gumcodegen/pkg/units"
)

// Finder resolves variable paths such as "Width" or "Label.Width" against a
// state of an element. A Finder is read-only and safe for concurrent use.
type Finder struct {
	reg   *registry.Registry
	el    *core.Element
	state *core.State
}

// New creates a finder over state of el. A nil state means el's default state.
func New(reg *registry.Registry, el *core.Element, state *core.State) *Finder {
	if state == nil && el != nil {
		state = el.DefaultState
	}
	return &Finder{reg: reg, el: el, state: state}
}

// Value returns the effective value for path, or nil when nothing in the
// chain assigns it. Lookup order:
//  1. the state itself
//  2. the element's default state, when the state is categorized
//  3. the default states of the element's base elements, nearest first
//  4. for "Instance.Root" paths, the instance type's default chain with Root
func (f *Finder) Value(path string) core.Value {
	if v := f.find(path, true, map[string]bool{}); v != nil {
		return v.Value
	}
	return nil
}

// Variable returns the variable that defines path anywhere in the chain,
// whether or not it carries a value. A nil result marks path as unknown to
// the element, which is how orphaned variables are detected.
func (f *Finder) Variable(path string) *core.Variable {
	return f.find(path, false, map[string]bool{})
}

func (f *Finder) find(path string, needValue bool, seen map[string]bool) *core.Variable {
	if f.el == nil {
		return nil
	}
	if seen[f.el.Name] {
		return nil
	}
	seen[f.el.Name] = true
	defer delete(seen, f.el.Name)

	match := func(s *core.State) *core.Variable {
		v := s.Variable(path)
		if v == nil || (needValue && v.Value == nil) {
			return nil
		}
		return v
	}

	if v := match(f.state); v != nil {
		return v
	}
	if f.state != f.el.DefaultState {
		if v := match(f.el.DefaultState); v != nil {
			return v
		}
	}

	bases := f.reg.BaseElements(f.el)
	for _, base := range bases {
		if v := match(base.DefaultState); v != nil {
			return v
		}
	}

	source, root := core.SplitVariableName(path)
	if source == "" {
		return nil
	}
	inst := f.el.Instance(source)
	for i := 0; inst == nil && i < len(bases); i++ {
		inst = bases[i].Instance(source)
	}
	instEl := f.reg.ElementForInstance(inst)
	if instEl == nil {
		return nil
	}
	return New(f.reg, instEl, nil).find(root, needValue, seen)
}

// Float returns the numeric value at path as a float32, or 0.
func (f *Finder) Float(path string) float32 {
	switch n := f.Value(path).(type) {
	case core.Number:
		return float32(n)
	case core.Integer:
		return float32(n)
	}
	return 0
}

// Int returns the numeric value at path truncated to an int, or 0.
func (f *Finder) Int(path string) int {
	switch n := f.Value(path).(type) {
	case core.Number:
		return int(n)
	case core.Integer:
		return int(n)
	}
	return 0
}

// Bool returns the value at path as a bool, or false.
func (f *Finder) Bool(path string) bool {
	if b, ok := f.Value(path).(core.Bool); ok {
		return bool(b)
	}
	return false
}

// Text returns the value at path as a string, or "".
func (f *Finder) Text(path string) string {
	if s, ok := f.Value(path).(core.Text); ok {
		return string(s)
	}
	return ""
}

// PositionUnit returns the position unit at path, or PixelsFromLeft.
func (f *Finder) PositionUnit(path string) units.PositionUnit {
	return units.PositionUnit(f.enum(path, units.PositionUnitTypeName))
}

// DimensionUnit returns the dimension unit at path, or Absolute.
func (f *Finder) DimensionUnit(path string) units.DimensionUnit {
	return units.DimensionUnit(f.enum(path, units.DimensionUnitTypeName))
}

// HorizontalAlignment returns the horizontal alignment at path, or Left.
func (f *Finder) HorizontalAlignment(path string) units.HorizontalAlignment {
	return units.HorizontalAlignment(f.enum(path, units.HorizontalAlignmentTypeName))
}

// VerticalAlignment returns the vertical alignment at path, or Top.
func (f *Finder) VerticalAlignment(path string) units.VerticalAlignment {
	return units.VerticalAlignment(f.enum(path, units.VerticalAlignmentTypeName))
}

// ChildrenLayout returns the children layout at path, or Regular.
func (f *Finder) ChildrenLayout(path string) units.ChildrenLayout {
	return units.ChildrenLayout(f.enum(path, units.ChildrenLayoutTypeName))
}

func (f *Finder) enum(path, typeName string) int {
	e, ok := f.Value(path).(core.Enum)
	if !ok {
		return 0
	}
	i, err := units.Member(typeName, e.Member)
	if err != nil {
		return 0
	}
	return i
}
