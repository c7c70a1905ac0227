package codegen

import (
	"strings"

	"github.com/leapstack-labs/gumcodegen/pkg/core"
)

// Runtime is the visual runtime an element or instance is rendered with.
type Runtime int

// Runtimes.
const (
	RuntimeGum Runtime = iota
	RuntimeForms
)

func (r Runtime) String() string {
	if r == RuntimeForms {
		return "forms"
	}
	return "gum"
}

// formsMarker is the variable that switches an element to the Forms runtime.
const formsMarker = "IsXamarinFormsControl"

// RuntimeOf returns the runtime of an element.
func (g *Generator) RuntimeOf(el *core.Element) Runtime {
	if g.finder(el, nil).Bool(formsMarker) {
		return RuntimeForms
	}
	return RuntimeGum
}

// RuntimeOfInstance returns the runtime of an instance inside el.
func (g *Generator) RuntimeOfInstance(el *core.Element, inst *core.Instance) Runtime {
	if inst == nil {
		return g.RuntimeOf(el)
	}
	if g.finder(el, nil).Bool(inst.Name + "." + formsMarker) {
		return RuntimeForms
	}
	return RuntimeGum
}

// ClassName returns the generated class name for a Gum type name.
func ClassName(gumType string, rt Runtime) string {
	if rt == RuntimeForms {
		if gumType == "Text" {
			return "Label"
		}
		return core.LastSegment(gumType)
	}
	return core.LastSegment(gumType) + "Runtime"
}

// Namespace returns the namespace of the generated class. An explicit
// element namespace wins; otherwise the root namespace is extended with the
// element kind and its folders. Empty means no namespace block.
func (g *Generator) Namespace(el *core.Element) string {
	if el.Settings.Namespace != "" {
		return el.Settings.Namespace
	}
	root := strings.TrimSpace(g.opts.RootNamespace)
	if root == "" {
		return ""
	}

	parts := []string{root, el.Kind.OutputFolder()}
	parts = append(parts, el.Folders()...)
	return strings.Join(parts, ".")
}

// isFormsType reports whether an instance is, or derives from, the Forms
// type named by suffix (e.g. "StackLayout").
func (g *Generator) isFormsType(inst *core.Instance, formsType string) bool {
	el := g.reg.ElementForInstance(inst)
	return g.reg.InheritsFrom(el, "/"+formsType, true)
}
