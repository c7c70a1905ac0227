// Package codegen translates layout elements into C# partial classes for the
// Gum runtime or the Forms runtime.
//
// Generation is pure: a Generator reads elements through a registry and an
// immutable Options value, builds a tree of Nodes and renders it once. It
// never performs I/O and never fails. Problems found in a document, such as
// dangling references or unsupported layouts, surface as inline diagnostics
// in the generated code.
package codegen

import (
	"strings"

	"github.com/leapstack-labs/gumcodegen/internal/registry"
	"github.com/leapstack-labs/gumcodegen/internal/resolve"
	"github.com/leapstack-labs/gumcodegen/pkg/core"
)

// Generator emits code for the elements of one registry.
// A Generator is safe for concurrent use.
type Generator struct {
	reg  *registry.Registry
	opts Options
}

// New creates a generator.
func New(reg *registry.Registry, opts Options) *Generator {
	return &Generator{reg: reg, opts: opts}
}

// Options returns the generator's options.
func (g *Generator) Options() Options {
	return g.opts
}

func (g *Generator) finder(el *core.Element, state *core.State) *resolve.Finder {
	return resolve.New(g.reg, el, state)
}

// scope is the target of one group of assignments: the container itself
// (inst == nil) or one of its instances, in one state.
type scope struct {
	el    *core.Element
	inst  *core.Instance
	state *core.State
	rt    Runtime
	// this replaces "this" inside static change handlers, e.g. "casted"
	this string
}

// gumPrefix is the variable-name prefix of the scope: "" or "Name.".
func (s scope) gumPrefix() string {
	if s.inst == nil {
		return ""
	}
	return s.inst.Name + "."
}

// target is the code expression the scope assigns to.
func (s scope) target() string {
	this := s.this
	if this == "" {
		this = "this"
	}
	if s.inst == nil {
		return this
	}
	return this + "." + s.inst.Name
}

// member qualifies an instance name with the scope's receiver when the
// scope runs inside a static handler.
func (s scope) member(name string) string {
	if s.this == "" {
		return name
	}
	return s.this + "." + name
}

// name is the element or instance name used in diagnostics.
func (s scope) name() string {
	if s.inst == nil {
		return s.el.Name
	}
	return s.inst.Name
}

// Generate returns the complete generated code for el.
func (g *Generator) Generate(el *core.Element) string {
	return Render(g.Nodes(el))
}

// Nodes returns the code tree for el.
func (g *Generator) Nodes(el *core.Element) []Node {
	rt := g.RuntimeOf(el)
	className := ClassName(el.Name, rt)

	var file []Node
	for _, using := range g.opts.CommonUsingStatements {
		file = append(file, Line(using))
	}
	for _, using := range el.Settings.UsingStatements {
		file = append(file, Line(using))
	}

	class := Braced("public partial class " + className)
	class.Append(g.stateEnums(el)...)
	class.Append(g.stateProperties(el, rt)...)
	for _, inst := range el.Instances {
		if !inst.DefinedByBase {
			class.Append(g.instanceDeclaration(el, inst))
		}
	}
	if g.declaresMainLayout(el) {
		class.Append(Line("protected AbsoluteLayout MainLayout{get; private set;}"))
	}
	class.Append(Blank{})
	class.Append(g.exposedProperties(el)...)
	class.Append(g.constructor(el, rt))
	class.Append(g.applyDefaultVariables(el))
	if g.opts.Localization.Active {
		class.Append(g.applyLocalization(el))
	}
	class.Append(Line("partial void CustomInitialize();"))

	if ns := g.Namespace(el); ns != "" {
		return append(file, Braced("namespace "+ns, class))
	}
	return append(file, class)
}

// InstanceCode returns the code that declares, creates and places one
// instance, as it appears across the generated class.
func (g *Generator) InstanceCode(el *core.Element, inst *core.Instance) string {
	nodes := []Node{g.instanceDeclaration(el, inst)}
	nodes = append(nodes, g.instantiation(el, inst)...)
	nodes = append(nodes, g.instanceAssignments(el, inst)...)
	nodes = append(nodes, g.parentAssignments(el, inst)...)
	return Render(nodes)
}

func (g *Generator) instanceDeclaration(el *core.Element, inst *core.Instance) Line {
	return Linef("public %s %s { get; private set; }",
		ClassName(inst.BaseType, g.RuntimeOfInstance(el, inst)), inst.Name)
}

// StateCode returns the assignments that apply state to el, as they appear
// in the state's switch case.
func (g *Generator) StateCode(el *core.Element, state *core.State) string {
	return Render(g.stateAssignments(el, state, ""))
}

// declaresMainLayout reports whether a Forms element wraps its children in
// a generated AbsoluteLayout.
func (g *Generator) declaresMainLayout(el *core.Element) bool {
	if g.opts.OutputLibrary != LibraryForms {
		return false
	}
	if el.Kind == core.KindScreen && el.BaseType != "" {
		return false
	}
	for _, suffix := range []string{"/AbsoluteLayout", "/SkiaGumCanvasView", "/StackLayout"} {
		if strings.HasSuffix(el.BaseType, suffix) {
			return false
		}
	}
	return el.BaseType != "Container"
}

func (g *Generator) constructor(el *core.Element, rt Runtime) *Block {
	className := ClassName(el.Name, rt)
	if rt == RuntimeGum {
		ctor := Braced("public " + className + "(bool fullInstantiation = true)")
		full := Braced("if(fullInstantiation)")
		if el.BaseType == "Container" {
			full.Append(Line("this.SetContainedObject(new InvisibleRenderable());"))
		}
		full.Append(Blank{})
		full.Append(g.constructorBody(el, rt)...)
		ctor.Append(full)
		return ctor
	}

	ctor := Braced("public " + className + "(bool fullInstantiation = true)")
	ctor.Append(
		Line("var wasSuspended = GraphicalUiElement.IsAllLayoutSuspended;"),
		Line("GraphicalUiElement.IsAllLayoutSuspended = true;"),
	)
	isAbsolute := g.reg.InheritsFrom(el, "/AbsoluteLayout", false)
	isStack := g.reg.InheritsFrom(el, "/StackLayout", false)
	isSkia := g.reg.InheritsFrom(el, "/SkiaGumCanvasView", false)
	switch {
	case isAbsolute:
		ctor.Append(Line("var MainLayout = this;"))
	case !isSkia && !isStack && !(el.Kind == core.KindScreen && el.BaseType != ""):
		ctor.Append(
			Line("MainLayout = new AbsoluteLayout();"),
			Line("BaseGrid.Children.Add(MainLayout);"),
		)
	}
	ctor.Append(g.constructorBody(el, rt)...)
	ctor.Append(Line("GraphicalUiElement.IsAllLayoutSuspended = wasSuspended;"))
	return ctor
}

// constructorBody is shared by both runtimes. Parents are assigned after
// every instance has been created and had its defaults applied.
func (g *Generator) constructorBody(el *core.Element, rt Runtime) []Node {
	var body []Node
	body = append(body, g.containerAssignments(el, rt)...)
	body = append(body, Blank{})
	for _, inst := range el.Instances {
		if !inst.DefinedByBase {
			body = append(body, g.instantiation(el, inst)...)
		}
	}
	body = append(body, Blank{})
	if rt == RuntimeForms {
		body = append(body, g.bindings(el)...)
	}
	body = append(body, Braced("if(fullInstantiation)", Line("ApplyDefaultVariables();")))
	for _, inst := range el.Instances {
		body = append(body, g.parentAssignments(el, inst)...)
	}
	return append(body, Line("CustomInitialize();"))
}

func (g *Generator) instantiation(el *core.Element, inst *core.Instance) []Node {
	rt := g.RuntimeOfInstance(el, inst)
	out := []Node{Linef("%s = new %s();", inst.Name, ClassName(inst.BaseType, rt))}
	if rt == RuntimeForms && g.hasExposedVariables(el, inst) {
		out = append(out, Linef("%s.BindingContext = this;", inst.Name))
	}
	if rt == RuntimeGum {
		out = append(out, Linef(`%s.Name = "%s";`, inst.Name, inst.Name))
	} else if !inst.DefinedByBase {
		out = append(out, Linef(`%s.AutomationId = "%s";`, inst.Name, inst.Name))
	}
	return out
}

func (g *Generator) hasExposedVariables(el *core.Element, inst *core.Instance) bool {
	for _, v := range el.ExposedVariables() {
		if v.SourceObject == inst.Name {
			return true
		}
	}
	return false
}

// containerAssignments applies the default state to the container itself.
func (g *Generator) containerAssignments(el *core.Element, rt Runtime) []Node {
	var vars []*core.Variable
	for _, v := range el.DefaultState.Variables {
		if g.includeVariable(el, nil, v) {
			vars = append(vars, v)
		}
	}
	sc := scope{el: el, state: el.DefaultState, rt: rt}
	return g.emitGroup(sc, vars, emitOptions{})
}

// instanceAssignments applies the default state to one instance. Parent
// variables are left to parentAssignments.
func (g *Generator) instanceAssignments(el *core.Element, inst *core.Instance) []Node {
	var vars []*core.Variable
	for _, v := range el.DefaultState.Variables {
		if v.RootName() != varParent && g.includeVariable(el, inst, v) {
			vars = append(vars, v)
		}
	}
	sc := scope{el: el, inst: inst, state: el.DefaultState, rt: g.RuntimeOfInstance(el, inst)}
	return g.emitGroup(sc, vars, emitOptions{spacing: true})
}

// parentAssignments adds inst to its parent. Instances without a parent
// variable are added to the container, unless the base class already did.
func (g *Generator) parentAssignments(el *core.Element, inst *core.Instance) []Node {
	rt := g.RuntimeOfInstance(el, inst)
	sc := scope{el: el, inst: inst, state: el.DefaultState, rt: rt}

	var out []Node
	for _, v := range el.DefaultState.Variables {
		if v.RootName() != varParent || !g.includeVariable(el, inst, v) {
			continue
		}
		if line := g.codeLine(sc, v); !line.IsSkip() {
			out = append(out, line)
		}
	}
	if len(out) > 0 || inst.DefinedByBase {
		return out
	}

	if rt == RuntimeGum {
		return []Node{Linef("this.Children.Add(%s);", inst.Name)}
	}
	switch {
	case strings.HasSuffix(inst.BaseType, "/GumCollectionView"):
		temp := "tempFor" + inst.Name
		return []Node{
			Linef("var %s = GumScrollBar.CreateScrollableAbsoluteLayout(%s, ScrollableLayoutParentPlacement.Free);", temp, inst.Name),
			Linef("MainLayout.Children.Add(%s);", temp),
		}
	case strings.HasSuffix(inst.BaseType, "/ScrollView"):
		return []Node{Linef("MainLayout.Children.Add(%s);", inst.Name)}
	case strings.HasSuffix(el.BaseType, "/StackLayout"):
		return []Node{Linef("this.Children.Add(%s);", inst.Name)}
	}
	return []Node{Linef("MainLayout.Children.Add(%s);", inst.Name)}
}

// includeVariable decides whether a default or state variable produces code
// for inst (or the container when inst is nil). Variables without a value,
// inert metadata and orphans are excluded. An orphan is a variable the
// target's type no longer defines. State selections are kept when the
// target owns the selected category.
func (g *Generator) includeVariable(el *core.Element, inst *core.Instance, v *core.Variable) bool {
	if v.Value == nil || !v.SetsValue {
		return false
	}

	var target, definer *core.Element
	if inst == nil {
		if v.SourceObject != "" {
			return false
		}
		target, definer = el, g.reg.Element(el.BaseType)
	} else {
		if v.SourceObject != inst.Name {
			return false
		}
		target = g.reg.ElementForInstance(inst)
		if target == nil {
			return false
		}
		definer = target
	}

	if ref, ok := v.Value.(core.StateRef); ok {
		owner, _ := g.reg.CategoryOwner(target, ref.Category)
		return owner != nil
	}
	if definer == nil {
		return true
	}
	return g.finder(definer, nil).Variable(v.RootName()) != nil
}

// applyDefaultVariables re-applies the default state of every instance,
// including instances inherited from the base class.
func (g *Generator) applyDefaultVariables(el *core.Element) *Block {
	method := Braced("private void ApplyDefaultVariables()")
	for _, inst := range el.Instances {
		method.Append(g.instanceAssignments(el, inst)...)
		if g.opts.Localization.Active && g.localizesElement(inst) {
			method.Append(Linef("%s.ApplyLocalization();", inst.Name))
		}
		method.Append(Blank{})
	}
	return method
}

// applyLocalization re-assigns every localized default text.
func (g *Generator) applyLocalization(el *core.Element) *Block {
	method := Braced("public void ApplyLocalization()")
	for _, v := range el.DefaultState.Variables {
		inst := g.instanceIn(el, v.SourceObject)
		if inst == nil {
			continue
		}
		sc := scope{el: el, inst: inst, state: el.DefaultState, rt: g.RuntimeOfInstance(el, inst)}
		if line, ok := g.localizedLine(sc, v); ok {
			method.Append(line)
		}
	}
	for _, inst := range el.Instances {
		if g.localizesElement(inst) {
			method.Append(Linef("%s.ApplyLocalization();", inst.Name))
		}
	}
	return method
}

// localizesElement reports whether inst is a component that localizes its
// own texts.
func (g *Generator) localizesElement(inst *core.Instance) bool {
	instEl := g.reg.ElementForInstance(inst)
	return instEl != nil && instEl.Kind == core.KindComponent && instEl.Settings.LocalizeElement
}
