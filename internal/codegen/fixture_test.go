package codegen

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/gumcodegen/internal/registry"
	"github.com/leapstack-labs/gumcodegen/internal/testutil"
	"github.com/leapstack-labs/gumcodegen/pkg/core"
	"github.com/leapstack-labs/gumcodegen/pkg/units"
)

// newGenerator registers the standard elements plus elements and returns a
// generator over them.
func newGenerator(t *testing.T, opts Options, elements ...*core.Element) *Generator {
	t.Helper()
	reg := registry.New(append(testutil.Standards(), elements...)...)
	require.NoError(t, reg.Validate())
	return New(reg, opts)
}

// formsLayouts are the Forms base components projects derive from.
func formsLayouts() []*core.Element {
	formsBase := func(name string) *core.Element {
		return testutil.Component(name, "Container").
			Vars(testutil.Bool("IsXamarinFormsControl", true)).
			Build()
	}
	return []*core.Element{
		formsBase("XamarinForms/AbsoluteLayout"),
		formsBase("XamarinForms/StackLayout"),
		formsBase("XamarinForms/Frame"),
		formsBase("XamarinForms/ScrollView"),
		formsBase("XamarinForms/SkiaGumCanvasView"),
	}
}

// buttonComponent is a Gum component with one Text child and a Visibility
// category.
func buttonComponent() *core.Element {
	return testutil.Component("Controls/Button", "Container").
		Instance("Label", "Text").
		Vars(testutil.Float("Width", 200)).
		Vars(testutil.Float("Label.X", 5), testutil.Float("Label.Width", 100)).
		Vars(testutil.Enum("Label.X Units", units.PositionUnitTypeName, "PixelsFromLeft")).
		Category("Visibility",
			testutil.StateOf("Shown", testutil.Bool("Visible", true)),
			testutil.StateOf("Hidden", testutil.Bool("Visible", false)),
		).
		Build()
}

// indexOf returns the index of the first line equal to s, or -1.
func indexOf(lines []string, s string) int {
	for i, l := range lines {
		if l == s {
			return i
		}
	}
	return -1
}
