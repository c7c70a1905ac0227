package codegen

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/gumcodegen/internal/testutil"
	"github.com/leapstack-labs/gumcodegen/pkg/core"
	"github.com/leapstack-labs/gumcodegen/pkg/units"
)

func formsOptions() Options {
	opts := DefaultOptions()
	opts.OutputLibrary = LibraryForms
	return opts
}

func formsButton(vars ...*core.Variable) *core.Element {
	return testutil.Component("Controls/Button", "XamarinForms/AbsoluteLayout").
		Instance("Label", "Text").
		Vars(vars...).
		Build()
}

func newFormsGenerator(t *testing.T, elements ...*core.Element) *Generator {
	t.Helper()
	return newGenerator(t, formsOptions(), append(formsLayouts(), elements...)...)
}

func body(t *testing.T, nodes []Node, header string) []string {
	t.Helper()
	b := FindBlock(nodes, HeaderPrefix(header))
	require.NotNil(t, b, "no block %q", header)
	return Flatten(b.Body)
}

func TestGenerate_FormsAbsoluteChild(t *testing.T) {
	button := formsButton(
		testutil.Bool("Label.IsXamarinFormsControl", true),
		testutil.Float("Label.X", 5),
		testutil.Float("Label.Width", 100),
	)
	g := newFormsGenerator(t, button)
	nodes := g.Nodes(button)

	require.NotNil(t, FindBlock(nodes, HeaderPrefix("public partial class Button")))

	defaults := body(t, nodes, "private void ApplyDefaultVariables()")
	assert.Equal(t, []string{
		"AbsoluteLayout.SetLayoutBounds(this.Label, new Rectangle(5f, 0f, 100f, 50f ));",
		"AbsoluteLayout.SetLayoutFlags(this.Label, AbsoluteLayoutFlags.None);",
		"this.Label.WidthRequest = 100f;",
		"this.Label.HeightRequest = 50f;",
	}, defaults)

	ctor := body(t, nodes, "public Button(bool fullInstantiation = true)")
	assert.Equal(t, "var wasSuspended = GraphicalUiElement.IsAllLayoutSuspended;", ctor[0])
	assert.Equal(t, "GraphicalUiElement.IsAllLayoutSuspended = wasSuspended;", ctor[len(ctor)-1])
	assert.Contains(t, ctor, "var MainLayout = this;")
	assert.Contains(t, ctor, "Label = new Label();")
	assert.Contains(t, ctor, `Label.AutomationId = "Label";`)
	assert.Contains(t, ctor, "MainLayout.Children.Add(Label);")

	out := g.Generate(button)
	assert.Contains(t, out, "public Label Label { get; private set; }")
	assert.NotContains(t, out, "MainLayout{get; private set;}")
}

func TestGenerate_FormsTextGroups(t *testing.T) {
	button := formsButton(
		testutil.Bool("Label.IsXamarinFormsControl", true),
		testutil.Int("Label.Red", 10),
		testutil.Bool("Label.IsBold", true),
		testutil.Float("Label.FontSize", 24),
	)
	g := newFormsGenerator(t, button)

	defaults := body(t, g.Nodes(button), "private void ApplyDefaultVariables()")
	color := indexOf(defaults, "this.Label.TextColor = Color.FromRgba(10, 255, 255, 255);")
	bounds := indexOf(defaults, "AbsoluteLayout.SetLayoutBounds(this.Label, new Rectangle(0f, 0f, 100f, 50f ));")
	bold := indexOf(defaults, "this.Label.FontAttributes = Xamarin.Forms.FontAttributes.Bold;")
	size := indexOf(defaults, "this.Label.FontSize = 24 / DeviceDisplay.MainDisplayInfo.Density;")

	require.NotEqual(t, -1, color)
	require.NotEqual(t, -1, bold)
	require.NotEqual(t, -1, size)
	assert.Less(t, color, bounds)
	assert.Less(t, bounds, bold)
	assert.Less(t, bold, size, "plain assignments follow the grouped ones")
	assert.NotContains(t, defaults, "this.Label.Red = 10 / DeviceDisplay.MainDisplayInfo.Density;")
}

func TestGenerate_FormsChildrenLayout(t *testing.T) {
	button := testutil.Component("Controls/Button", "XamarinForms/AbsoluteLayout").
		Instance("Stack", "XamarinForms/StackLayout").
		Instance("Box", "XamarinForms/Frame").
		Vars(
			testutil.Enum("Stack.Children Layout", units.ChildrenLayoutTypeName, "LeftToRightStack"),
			testutil.Enum("Box.Children Layout", units.ChildrenLayoutTypeName, "TopToBottomStack"),
		).
		Build()
	g := newFormsGenerator(t, button)

	defaults := body(t, g.Nodes(button), "private void ApplyDefaultVariables()")
	assert.Equal(t, "Stack.Spacing = 0;", defaults[0])
	assert.Contains(t, defaults, "this.Stack.IsClippedToBounds = false;")
	assert.Contains(t, defaults, "Stack.Orientation = StackOrientation.Horizontal;")
	assert.Less(t, indexOf(defaults, "this.Stack.IsClippedToBounds = false;"),
		indexOf(defaults, "Stack.Orientation = StackOrientation.Horizontal;"))

	assert.Contains(t, defaults, "this.Box.IsClippedToBounds = false;")
	assert.Contains(t, defaults, "Error: The object Box cannot have a layout of TopToBottomStack.")
	assert.Contains(t, defaults, "It should probably inherit from StackLayout to be a top-to-bottom stack")
	assert.NotContains(t, defaults, "Box.Spacing = 0;")
}

func TestGenerate_FormsContentParent(t *testing.T) {
	button := testutil.Component("Controls/Button", "XamarinForms/AbsoluteLayout").
		Instance("Scroll", "XamarinForms/ScrollView").
		Instance("Inner", "XamarinForms/StackLayout").
		Vars(testutil.String("Inner.Parent", "Scroll")).
		Build()
	g := newFormsGenerator(t, button)

	ctor := body(t, g.Nodes(button), "public Button(")
	assert.Contains(t, ctor, "MainLayout.Children.Add(Scroll);")
	assert.Contains(t, ctor, "Scroll.Content = Inner;")
	assert.NotContains(t, ctor, "MainLayout.Children.Add(Inner);")
}

func TestGenerate_FormsStateProperty(t *testing.T) {
	view := testutil.Component("Controls/Chart", "XamarinForms/SkiaGumCanvasView").
		Instance("Canvas", "Controls/SkiaSharpCanvasView").
		Category("Visibility",
			testutil.StateOf("Shown", testutil.Bool("Visible", true)),
			testutil.StateOf("Hidden", testutil.Bool("Visible", false)),
		).
		Build()
	g := newFormsGenerator(t, view)
	nodes := g.Nodes(view)

	assert.Contains(t, Flatten(nodes), "public static readonly BindableProperty VisibilityStateProperty = "+
		"BindableProperty.Create(nameof(VisibilityState),typeof(Visibility?),typeof(Chart), "+
		"defaultBindingMode: BindingMode.TwoWay, propertyChanged:HandleVisibilityStatePropertyChanged);")
	assert.Equal(t, []string{
		"get => (Visibility?)GetValue(VisibilityStateProperty);",
		"set => SetValue(VisibilityStateProperty, value);",
	}, body(t, nodes, "public Visibility? VisibilityState"))

	handler := body(t, nodes, "private static void HandleVisibilityStatePropertyChanged(")
	assert.Equal(t, []string{
		"var casted = bindable as Chart;",
		"var value = (Visibility?)newValue;",
		"switch (value)",
		"case Visibility.Shown:",
		"casted.IsVisible = true;",
		"break;",
		"case Visibility.Hidden:",
		"casted.IsVisible = false;",
		"break;",
		"casted.Canvas.InvalidateSurface();",
		"casted.InvalidateSurface();",
	}, handler)
}

func TestGenerate_ExposedEventAssignment(t *testing.T) {
	button := formsButton(testutil.Exposed(testutil.String("Label.Text", "Hi"), "Caption"))
	g := newFormsGenerator(t, button)
	nodes := g.Nodes(button)

	assert.Equal(t, BindingEventAssignment, g.BindingModeOf(button, button.DefaultState.Variable("Label.Text")))
	assert.Contains(t, Flatten(nodes), "public static readonly BindableProperty CaptionProperty = "+
		"BindableProperty.Create(nameof(Caption),typeof(string),typeof(Button), "+
		"defaultBindingMode: BindingMode.TwoWay, propertyChanged:HandleCaptionPropertyChanged, defaultValue:\"Hi\");")
	assert.Equal(t, []string{
		"var casted = bindable as Button;",
		"casted.Label.Text = (string)newValue;",
		"casted.Label?.EffectiveManagers?.InvalidateSurface();",
	}, body(t, nodes, "private static void HandleCaptionPropertyChanged("))
	assert.NotContains(t, Flatten(nodes), "Label.BindingContext = this;")
	assert.NotContains(t, g.Generate(button), "SetBinding")
}

func TestGenerate_ExposedBoundInstance(t *testing.T) {
	button := formsButton(
		testutil.Bool("Label.IsXamarinFormsControl", true),
		testutil.Exposed(testutil.String("Label.Text", "Hi"), "Caption"),
	)
	g := newFormsGenerator(t, button)
	nodes := g.Nodes(button)

	assert.Equal(t, BindingBoundInstance, g.BindingModeOf(button, button.DefaultState.Variable("Label.Text")))
	assert.Contains(t, Flatten(nodes), "public static readonly BindableProperty CaptionProperty = "+
		"BindableProperty.Create(nameof(Caption),typeof(string),typeof(Button), defaultBindingMode: BindingMode.TwoWay);")
	assert.Equal(t, []string{
		"get => (string)GetValue(CaptionProperty);",
		"set => SetValue(CaptionProperty, value);",
	}, body(t, nodes, "public string Caption"))

	ctor := body(t, nodes, "public Button(")
	created := indexOf(ctor, "Label = new Label();")
	assert.Equal(t, "Label.BindingContext = this;", ctor[created+1])
	assert.Contains(t, ctor, "Label.SetBinding(Label.TextProperty, nameof(Caption));")
	assert.Less(t, indexOf(ctor, "Label.SetBinding(Label.TextProperty, nameof(Caption));"), indexOf(ctor, "ApplyDefaultVariables();"))
}

func TestGenerate_ExposedPlainProperty(t *testing.T) {
	button := buttonComponent()
	button.DefaultState.Variables = append(button.DefaultState.Variables,
		testutil.Exposed(testutil.String("Label.Text", "Hi"), "Caption Text"))

	menu := testutil.Screen("Menu", "").
		Instance("Toggle1", "Controls/Toggle").
		Vars(testutil.Exposed(testutil.StateVar("Toggle1.ModeState", "Mode", "On"), "ToggleMode")).
		Build()
	g := newGenerator(t, DefaultOptions(), button, toggleComponent(), menu)

	assert.Equal(t, BindingNone, g.BindingModeOf(button, button.DefaultState.Variable("Label.Text")))
	assert.Equal(t, []string{
		"get => Label.Text;",
		"set => Label.Text = value;",
	}, body(t, g.Nodes(button), "public string CaptionText"))

	nodes := g.Nodes(menu)
	assert.Equal(t, []string{
		"get => Toggle1.ModeState;",
		"set => Toggle1.ModeState = value;",
	}, body(t, nodes, "public ToggleRuntime.Mode ToggleMode"))
	assert.Contains(t, Flatten(nodes), "this.Toggle1.ModeState = ToggleRuntime.Mode.On;")
}
