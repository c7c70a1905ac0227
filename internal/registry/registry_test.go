package registry

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/gumcodegen/pkg/core"
)

func element(kind core.ElementKind, name, base string) *core.Element {
	return &core.Element{Name: name, Kind: kind, BaseType: base, DefaultState: &core.State{}}
}

func sample() *Registry {
	return New(
		element(core.KindStandard, "Container", ""),
		element(core.KindStandard, "Text", ""),
		element(core.KindComponent, "XamarinForms/StackLayout", "Container"),
		element(core.KindComponent, "Controls/Menu", "XamarinForms/StackLayout"),
		element(core.KindComponent, "Controls/SubMenu", "Controls/Menu"),
		element(core.KindScreen, "Broken", "Missing/Thing"),
	)
}

func TestRegistry_Element(t *testing.T) {
	r := sample()
	assert.Equal(t, 6, r.Len())
	assert.NotNil(t, r.Element("Controls/Menu"))
	assert.Nil(t, r.Element("Nope"))
	assert.Nil(t, r.Element(""))
	assert.Equal(t, "Text", r.ElementForInstance(&core.Instance{Name: "Label", BaseType: "Text"}).Name)
	assert.Nil(t, r.ElementForInstance(nil))
}

func TestRegistry_Ancestry(t *testing.T) {
	r := sample()

	sub := r.Element("Controls/SubMenu")
	assert.Equal(t, []string{"Controls/Menu", "XamarinForms/StackLayout", "Container"}, r.Ancestry(sub))

	// memoized chain is returned on subsequent calls
	assert.Equal(t, r.Ancestry(sub), r.Ancestry(sub))

	// dangling base types end the chain but are still reported
	assert.Equal(t, []string{"Missing/Thing"}, r.Ancestry(r.Element("Broken")))
	assert.Empty(t, r.BaseElements(r.Element("Broken")))
	assert.Empty(t, r.Ancestry(r.Element("Container")))
	assert.Nil(t, r.Ancestry(nil))
}

func TestRegistry_BaseElements(t *testing.T) {
	r := sample()
	var names []string
	for _, el := range r.BaseElements(r.Element("Controls/SubMenu")) {
		names = append(names, el.Name)
	}
	assert.Equal(t, []string{"Controls/Menu", "XamarinForms/StackLayout", "Container"}, names)
}

func TestRegistry_InheritsFrom(t *testing.T) {
	r := sample()
	sub := r.Element("Controls/SubMenu")
	stack := r.Element("XamarinForms/StackLayout")

	assert.True(t, r.InheritsFrom(sub, "/StackLayout", false))
	assert.False(t, r.InheritsFrom(stack, "/StackLayout", false))
	assert.True(t, r.InheritsFrom(stack, "/StackLayout", true))
	assert.False(t, r.InheritsFrom(sub, "/AbsoluteLayout", true))
	assert.False(t, r.InheritsFrom(nil, "/StackLayout", true))
}

func TestRegistry_RootStandard(t *testing.T) {
	r := sample()
	assert.Equal(t, "Container", r.RootStandard("Controls/SubMenu").Name)
	assert.Equal(t, "Text", r.RootStandard("Text").Name)
	assert.Nil(t, r.RootStandard("Broken"))
	assert.Nil(t, r.RootStandard("Nope"))
}

func TestRegistry_CategoryOwner(t *testing.T) {
	r := sample()
	menu := r.Element("Controls/Menu")
	menu.Categories = []*core.Category{{Name: "Expansion"}}

	owner, cat := r.CategoryOwner(r.Element("Controls/SubMenu"), "Expansion")
	require.NotNil(t, owner)
	assert.Equal(t, "Controls/Menu", owner.Name)
	assert.Equal(t, "Expansion", cat.Name)

	owner, cat = r.CategoryOwner(r.Element("Controls/SubMenu"), "Size")
	assert.Nil(t, owner)
	assert.Nil(t, cat)
}

func TestRegistry_RegisterInvalidatesChains(t *testing.T) {
	r := sample()
	sub := r.Element("Controls/SubMenu")
	assert.Len(t, r.Ancestry(sub), 3)

	r.Register(element(core.KindComponent, "Controls/Menu", "Container"))
	assert.Equal(t, []string{"Controls/Menu", "Container"}, r.Ancestry(sub))

	r.Remove("Controls/Menu")
	assert.Equal(t, []string{"Controls/Menu"}, r.Ancestry(sub))
}

func TestRegistry_GraphAndValidate(t *testing.T) {
	r := sample()
	g := r.Graph()
	assert.Equal(t, 6, g.NodeCount())
	assert.Equal(t, 3, g.EdgeCount())
	require.NoError(t, r.Validate())

	r.Register(element(core.KindComponent, "Loop/A", "Loop/B"))
	r.Register(element(core.KindComponent, "Loop/B", "Loop/A"))
	err := r.Validate()
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInheritanceCycle)

	// chain walks stop at the first repeated name
	assert.Equal(t, []string{"Loop/B"}, r.Ancestry(r.Element("Loop/A")))
}

func TestRegistry_ValidateSelfInheritance(t *testing.T) {
	r := New(element(core.KindComponent, "Self", "Self"))
	assert.ErrorIs(t, r.Validate(), ErrInheritanceCycle)
	assert.Empty(t, r.Ancestry(r.Element("Self")))
}
