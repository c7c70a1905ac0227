package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVariableRootName(t *testing.T) {
	v := &Variable{Name: "Label.X Units", SourceObject: "Label"}
	assert.Equal(t, "X Units", v.RootName())

	v = &Variable{Name: "Width"}
	assert.Equal(t, "Width", v.RootName())
}

func TestSplitVariableName(t *testing.T) {
	src, root := SplitVariableName("Label.Text")
	assert.Equal(t, "Label", src)
	assert.Equal(t, "Text", root)

	src, root = SplitVariableName("Height Units")
	assert.Empty(t, src)
	assert.Equal(t, "Height Units", root)
}

func TestElementLookups(t *testing.T) {
	shown := &State{Name: "Shown", Category: "Visibility"}
	el := &Element{
		Name:         "Controls/Forms/Button",
		DefaultState: &State{Name: "Default"},
		Categories:   []*Category{{Name: "Visibility", States: []*State{shown, {Name: "Hidden"}}}},
		Instances:    []*Instance{{Name: "Label", BaseType: "Text"}},
	}

	require.NotNil(t, el.Instance("Label"))
	assert.Nil(t, el.Instance("Missing"))
	assert.Nil(t, el.Instance(""))
	assert.Same(t, shown, el.Category("Visibility").State("Shown"))
	assert.Nil(t, el.Category("Size"))
	assert.Len(t, el.AllStates(), 3)
	assert.True(t, el.IsDefault(el.DefaultState))
	assert.False(t, el.IsDefault(shown))
	assert.Equal(t, "Button", el.ClassSegment())
	assert.Equal(t, []string{"Controls", "Forms"}, el.Folders())
}

func TestExposedVariables(t *testing.T) {
	el := &Element{DefaultState: &State{Variables: []*Variable{
		{Name: "Label.Text", SourceObject: "Label", ExposedAsName: "Caption"},
		{Name: "Label.X", SourceObject: "Label"},
	}}}

	exposed := el.ExposedVariables()
	require.Len(t, exposed, 1)
	assert.Equal(t, "Caption", exposed[0].ExposedAsName)
}

func TestCategoryForType(t *testing.T) {
	cat, ok := CategoryForType("VisibilityState")
	assert.True(t, ok)
	assert.Equal(t, "Visibility", cat)

	cat, ok = CategoryForType("State")
	assert.True(t, ok)
	assert.Empty(t, cat)

	_, ok = CategoryForType("float")
	assert.False(t, ok)
}

func TestElementKind(t *testing.T) {
	assert.Equal(t, "Screens", KindScreen.OutputFolder())
	assert.Equal(t, "Component", KindComponent.Label())
	assert.Equal(t, "Standards", KindStandard.OutputFolder())
}
