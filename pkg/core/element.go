package core

import "strings"

// ElementKind distinguishes the three kinds of layout elements.
type ElementKind string

// Element kind constants. The string values double as the project folder
// names elements are loaded from.
const (
	KindScreen    ElementKind = "screens"
	KindComponent ElementKind = "components"
	KindStandard  ElementKind = "standards"
)

// Label returns the singular display name of the kind.
func (k ElementKind) Label() string {
	switch k {
	case KindScreen:
		return "Screen"
	case KindComponent:
		return "Component"
	case KindStandard:
		return "Standard"
	default:
		return string(k)
	}
}

// OutputFolder returns the folder generated code for this kind is written to.
func (k ElementKind) OutputFolder() string {
	return k.Label() + "s"
}

// Element is a screen, component or standard element definition.
// The generator only reads elements; they are never mutated after load.
type Element struct {
	// Name is the hierarchical, '/'-delimited name (e.g. "Controls/Button")
	Name string
	// Kind is Screen, Component or Standard
	Kind ElementKind
	// BaseType names the element this one derives from. Empty for roots.
	BaseType string
	// DefaultState is always active. Never nil for loaded elements.
	DefaultState *State
	// Categories hold named, mutually exclusive states
	Categories []*Category
	// Instances are the element's children in declaration order
	Instances []*Instance
	// Settings controls code output for this element
	Settings ElementSettings
	// FilePath is the document the element was loaded from. Empty for built-ins.
	FilePath string
}

// Instance returns the instance with the given name, or nil.
func (e *Element) Instance(name string) *Instance {
	if e == nil || name == "" {
		return nil
	}
	for _, inst := range e.Instances {
		if inst.Name == name {
			return inst
		}
	}
	return nil
}

// Category returns the category declared directly on the element, or nil.
func (e *Element) Category(name string) *Category {
	if e == nil {
		return nil
	}
	for _, c := range e.Categories {
		if c.Name == name {
			return c
		}
	}
	return nil
}

// AllStates returns the default state followed by every categorized state.
func (e *Element) AllStates() []*State {
	states := []*State{e.DefaultState}
	for _, c := range e.Categories {
		states = append(states, c.States...)
	}
	return states
}

// IsDefault reports whether s is the element's default state.
func (e *Element) IsDefault(s *State) bool {
	return e != nil && s == e.DefaultState
}

// ClassSegment returns the last segment of the element name.
func (e *Element) ClassSegment() string {
	return LastSegment(e.Name)
}

// Folders returns the folder segments of the element name, excluding the
// class segment.
func (e *Element) Folders() []string {
	parts := strings.Split(e.Name, "/")
	return parts[:len(parts)-1]
}

// ExposedVariables returns default-state variables with an ExposedAsName.
func (e *Element) ExposedVariables() []*Variable {
	var out []*Variable
	for _, v := range e.DefaultState.Variables {
		if v.ExposedAsName != "" {
			out = append(out, v)
		}
	}
	return out
}

// Instance is a named placement of an element type inside a container.
type Instance struct {
	// Name is unique within the containing element
	Name string
	// BaseType names an element or built-in standard
	BaseType string
	// DefinedByBase is true when the instance is inherited from the
	// container's base element rather than declared locally
	DefinedByBase bool
}

// Category is a named set of mutually exclusive states.
type Category struct {
	Name   string
	States []*State
}

// State returns the named state in the category, or nil.
func (c *Category) State(name string) *State {
	for _, s := range c.States {
		if s.Name == name {
			return s
		}
	}
	return nil
}

// State is a named bundle of variable assignments.
type State struct {
	Name      string
	Variables []*Variable
	// Category is the owning category name. Empty for the default state.
	Category string
}

// Variable returns the variable with the exact (possibly instance-prefixed)
// name, or nil.
func (s *State) Variable(name string) *Variable {
	if s == nil {
		return nil
	}
	for _, v := range s.Variables {
		if v.Name == name {
			return v
		}
	}
	return nil
}

// Variable is a single assignment in a state.
type Variable struct {
	// Name is the full variable name, instance-prefixed when it targets a
	// child (e.g. "Label.X Units")
	Name string
	// Type is the declared document type (float, string, bool, an enum type
	// name, or "<Category>State")
	Type string
	// Value is nil when the variable carries no value
	Value Value
	// SourceObject names the targeted instance; empty targets the container
	SourceObject string
	// ExposedAsName requests a public property on the container
	ExposedAsName string
	// SetsValue is false for inert metadata that must not produce code
	SetsValue bool
}

// RootName returns the variable name without its instance prefix.
func (v *Variable) RootName() string {
	if v.SourceObject == "" {
		return v.Name
	}
	return strings.TrimPrefix(v.Name, v.SourceObject+".")
}

// IsStateReference reports whether the variable selects a category state.
func (v *Variable) IsStateReference() bool {
	_, ok := v.Value.(StateRef)
	return ok
}

// SplitVariableName splits a dotted variable name into its source object and
// root name. Only the first dot separates them.
func SplitVariableName(name string) (sourceObject, root string) {
	if i := strings.IndexByte(name, '.'); i >= 0 {
		return name[:i], name[i+1:]
	}
	return "", name
}

// LastSegment returns the part of a '/'-delimited name after the last '/'.
func LastSegment(name string) string {
	if i := strings.LastIndexByte(name, '/'); i >= 0 {
		return name[i+1:]
	}
	return name
}

// StateTypeSuffix marks variable types that select a category state.
const StateTypeSuffix = "State"

// CategoryForType returns the category a state-reference type selects, and
// whether typeName is a state-reference type at all. The bare "State" type
// selects an uncategorized state and yields an empty category.
func CategoryForType(typeName string) (string, bool) {
	if !strings.HasSuffix(typeName, StateTypeSuffix) {
		return "", false
	}
	return strings.TrimSuffix(typeName, StateTypeSuffix), true
}
