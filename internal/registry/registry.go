// Package registry indexes loaded elements by name and answers inheritance
// questions about them. Every walk up a base-type chain goes through the
// memoized Ancestry query; callers only supply the predicate.
package registry

import (
	"errors"
	"fmt"
	"slices"
	"strings"
	"sync"

	"github.com/leapstack-labs/gumcodegen/internal/dag"
	"github.com/leapstack-labs/gumcodegen/pkg/core"
)

// ErrInheritanceCycle is returned by Validate when elements inherit from
// each other in a loop.
var ErrInheritanceCycle = errors.New("inheritance cycle")

// Registry maps element names to elements.
type Registry struct {
	mu sync.RWMutex

	// byName maps element names to elements: "Controls/Button" → *Element
	byName map[string]*core.Element

	// chains memoizes Ancestry by element name
	chains map[string][]string
}

// New creates a registry holding the given elements.
func New(elements ...*core.Element) *Registry {
	r := &Registry{
		byName: make(map[string]*core.Element),
		chains: make(map[string][]string),
	}
	for _, el := range elements {
		r.byName[el.Name] = el
	}
	return r
}

// Register adds or replaces an element and drops memoized chains.
func (r *Registry) Register(el *core.Element) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.byName[el.Name] = el
	r.chains = make(map[string][]string)
}

// Remove deletes an element by name.
func (r *Registry) Remove(name string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.byName, name)
	r.chains = make(map[string][]string)
}

// Element returns the named element, or nil for a dangling reference.
func (r *Registry) Element(name string) *core.Element {
	if name == "" {
		return nil
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.byName[name]
}

// ElementForInstance returns the element an instance is an instance of.
func (r *Registry) ElementForInstance(inst *core.Instance) *core.Element {
	if inst == nil {
		return nil
	}
	return r.Element(inst.BaseType)
}

// Elements returns all elements sorted by name.
func (r *Registry) Elements() []*core.Element {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*core.Element, 0, len(r.byName))
	for _, el := range r.byName {
		out = append(out, el)
	}
	slices.SortFunc(out, func(a, b *core.Element) int { return strings.Compare(a.Name, b.Name) })
	return out
}

// Len returns the number of registered elements.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.byName)
}

// Ancestry returns the chain of base-type names above el, nearest first.
// The chain ends at the first empty base type, at a base type that does not
// resolve (which is still included), or before a name would repeat.
func (r *Registry) Ancestry(el *core.Element) []string {
	if el == nil {
		return nil
	}

	r.mu.RLock()
	chain, ok := r.chains[el.Name]
	r.mu.RUnlock()
	if ok {
		return chain
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	seen := map[string]bool{el.Name: true}
	chain = []string{}
	for cur := el; cur != nil && cur.BaseType != "" && !seen[cur.BaseType]; cur = r.byName[cur.BaseType] {
		chain = append(chain, cur.BaseType)
		seen[cur.BaseType] = true
	}
	r.chains[el.Name] = chain
	return chain
}

// BaseElements returns the resolved ancestors of el, nearest first.
func (r *Registry) BaseElements(el *core.Element) []*core.Element {
	var out []*core.Element
	for _, name := range r.Ancestry(el) {
		base := r.Element(name)
		if base == nil {
			break
		}
		out = append(out, base)
	}
	return out
}

// Find returns the first name in el's chain matching pred. The element's
// own name is considered first when includeSelf is set.
func (r *Registry) Find(el *core.Element, includeSelf bool, pred func(name string) bool) (string, bool) {
	if el == nil {
		return "", false
	}
	if includeSelf && pred(el.Name) {
		return el.Name, true
	}
	for _, name := range r.Ancestry(el) {
		if pred(name) {
			return name, true
		}
	}
	return "", false
}

// InheritsFrom reports whether any base type of el (or el itself when
// includeSelf) ends with suffix, e.g. "/StackLayout".
func (r *Registry) InheritsFrom(el *core.Element, suffix string, includeSelf bool) bool {
	_, ok := r.Find(el, includeSelf, func(name string) bool {
		return strings.HasSuffix(name, suffix)
	})
	return ok
}

// RootStandard returns the first standard element reached by following base
// types from typeName, or nil when the chain dangles.
func (r *Registry) RootStandard(typeName string) *core.Element {
	el := r.Element(typeName)
	if el == nil {
		return nil
	}
	if el.Kind == core.KindStandard {
		return el
	}
	for _, base := range r.BaseElements(el) {
		if base.Kind == core.KindStandard {
			return base
		}
	}
	return nil
}

// CategoryOwner finds the category named name on el or its ancestors.
func (r *Registry) CategoryOwner(el *core.Element, name string) (*core.Element, *core.Category) {
	if el == nil {
		return nil, nil
	}
	if c := el.Category(name); c != nil {
		return el, c
	}
	for _, base := range r.BaseElements(el) {
		if c := base.Category(name); c != nil {
			return base, c
		}
	}
	return nil, nil
}

// Graph returns the inheritance graph over every registered element.
// Edges to unresolved base types are omitted.
func (r *Registry) Graph() *dag.Graph[*core.Element] {
	elements := r.Elements()
	g := dag.NewGraph[*core.Element]()
	for _, el := range elements {
		g.AddNode(el.Name, el)
	}
	for _, el := range elements {
		if r.Element(el.BaseType) != nil {
			_ = g.AddEdge(el.BaseType, el.Name)
		}
	}
	return g
}

// Validate reports inheritance cycles. Dangling base types are tolerated.
func (r *Registry) Validate() error {
	for _, el := range r.Elements() {
		if el.BaseType != "" && el.BaseType == el.Name {
			return fmt.Errorf("%w: %s inherits from itself", ErrInheritanceCycle, el.Name)
		}
	}
	if hasCycle, path := r.Graph().HasCycle(); hasCycle {
		return fmt.Errorf("%w: %s", ErrInheritanceCycle, strings.Join(path, " -> "))
	}
	return nil
}
