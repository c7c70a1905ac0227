package codegen

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/gumcodegen/internal/testutil"
	"github.com/leapstack-labs/gumcodegen/pkg/core"
	"github.com/leapstack-labs/gumcodegen/pkg/units"
)

func TestGenerate_GumComponent(t *testing.T) {
	g := newGenerator(t, DefaultOptions(), buttonComponent())
	el := g.reg.Element("Controls/Button")

	want := `public partial class ButtonRuntime
{
    public enum Visibility
    {
        Shown,
        Hidden,
    }

    Visibility mVisibilityState;
    public Visibility VisibilityState
    {
        get => mVisibilityState;
        set
        {
            mVisibilityState = value;
            switch (value)
            {
                case Visibility.Shown:
                    this.Visible = true;
                    break;
                case Visibility.Hidden:
                    this.Visible = false;
                    break;
            }
        }
    }
    public TextRuntime Label { get; private set; }

    public ButtonRuntime(bool fullInstantiation = true)
    {
        if(fullInstantiation)
        {
            this.SetContainedObject(new InvisibleRenderable());

            this.Width = 200f;

            Label = new TextRuntime();
            Label.Name = "Label";

            if(fullInstantiation)
            {
                ApplyDefaultVariables();
            }
            this.Children.Add(Label);
            CustomInitialize();
        }
    }
    private void ApplyDefaultVariables()
    {
        this.Label.X = 5f;
        this.Label.Width = 100f;
        this.Label.XUnits = GeneralUnitType.PixelsFromSmall;

    }
    partial void CustomInitialize();
}
`
	assert.Equal(t, want, g.Generate(el))
}

func TestGenerate_Idempotent(t *testing.T) {
	g := newGenerator(t, DefaultOptions(), buttonComponent())
	el := g.reg.Element("Controls/Button")

	assert.Equal(t, g.Generate(el), g.Generate(el))
}

func TestGenerate_InertVariablesProduceNothing(t *testing.T) {
	button := buttonComponent()
	button.DefaultState.Variables = append(button.DefaultState.Variables,
		testutil.Inert(testutil.String("Label.Text", "Secret")),
		testutil.Inert(testutil.Float("Height", 321)),
	)
	g := newGenerator(t, DefaultOptions(), button)

	out := g.Generate(button)
	assert.NotContains(t, out, "Secret")
	assert.NotContains(t, out, "321")
}

func TestGenerate_InheritedInstances(t *testing.T) {
	icon := testutil.Component("Controls/IconButton", "Controls/Button").
		InheritedInstance("Label", "Text").
		Instance("Icon", "Sprite").
		Vars(testutil.Float("Label.Y", 7)).
		Build()
	g := newGenerator(t, DefaultOptions(), buttonComponent(), icon)

	out := g.Generate(icon)
	assert.NotContains(t, out, "public TextRuntime Label")
	assert.NotContains(t, out, "Label = new")
	assert.NotContains(t, out, "this.Children.Add(Label);")
	assert.Contains(t, out, "this.Label.Y = 7f;")
	assert.Contains(t, out, "public SpriteRuntime Icon { get; private set; }")
	assert.Contains(t, out, "this.Children.Add(Icon);")
}

func TestGenerate_ParentsAssignedLast(t *testing.T) {
	button := testutil.Component("Controls/Button", "Container").
		Instance("Label", "Text").
		Instance("Panel", "Container").
		Vars(testutil.String("Label.Parent", "Panel"), testutil.Float("Label.X", 3)).
		Build()
	g := newGenerator(t, DefaultOptions(), button)

	ctor := FindBlock(g.Nodes(button), HeaderPrefix("public ButtonRuntime("))
	require.NotNil(t, ctor)
	got := Flatten(ctor.Body)

	created := indexOf(got, "Label = new TextRuntime();")
	applied := indexOf(got, "ApplyDefaultVariables();")
	parented := indexOf(got, "Panel.Children.Add(Label);")
	require.NotEqual(t, -1, created)
	require.NotEqual(t, -1, parented)
	assert.Less(t, created, applied)
	assert.Less(t, applied, parented)
	assert.Contains(t, got, "this.Children.Add(Panel);")
	assert.NotContains(t, got, "this.Children.Add(Label);")

	defaults := FindBlock(g.Nodes(button), HeaderPrefix("private void ApplyDefaultVariables()"))
	require.NotNil(t, defaults)
	assert.Contains(t, Flatten(defaults.Body), "this.Label.X = 3f;")
	assert.NotContains(t, Flatten(defaults.Body), "Panel.Children.Add(Label);")
}

func TestGenerate_DanglingReferences(t *testing.T) {
	button := testutil.Component("Controls/Button", "Container").
		Instance("Label", "Text").
		Instance("Ghost", "Missing").
		Vars(
			testutil.String("Label.Parent", "Nowhere"),
			testutil.Float("Label.Bogus", 3),
			testutil.Float("Ghost.X", 1),
			testutil.Float("Phantom.X", 2),
		).
		Build()
	g := newGenerator(t, DefaultOptions(), button)

	out := g.Generate(button)
	assert.Contains(t, out, "Ghost = new MissingRuntime();")
	assert.Contains(t, out, "this.Children.Add(Label);")
	assert.NotContains(t, out, "Nowhere")
	assert.NotContains(t, out, "Bogus")
	assert.NotContains(t, out, "this.Ghost.X")
	assert.NotContains(t, out, "Phantom")
}

func TestGenerate_NamespaceAndUsings(t *testing.T) {
	opts := DefaultOptions()
	opts.RootNamespace = "Game"
	opts.CommonUsingStatements = []string{"using Gum.Wireframe;"}

	button := buttonComponent()
	g := newGenerator(t, opts, button)

	out := g.Generate(button)
	assert.True(t, strings.HasPrefix(out, "using Gum.Wireframe;\nnamespace Game.Components.Controls\n{\n    public partial class ButtonRuntime\n"), out)

	button.Settings.Namespace = "Custom.Ui"
	button.Settings.UsingStatements = []string{"using Custom;"}
	out = g.Generate(button)
	assert.True(t, strings.HasPrefix(out, "using Gum.Wireframe;\nusing Custom;\nnamespace Custom.Ui\n"), out)
}

func TestNamespace(t *testing.T) {
	opts := DefaultOptions()
	opts.RootNamespace = "Game"
	menu := testutil.Screen("Menus/Main", "").Build()
	g := newGenerator(t, opts, menu)

	assert.Equal(t, "Game.Screens.Menus", g.Namespace(menu))
	assert.Equal(t, "Game.Standards", g.Namespace(g.reg.Element("Text")))

	g = newGenerator(t, DefaultOptions(), menu)
	assert.Empty(t, g.Namespace(menu))
}

func TestGenerate_Localization(t *testing.T) {
	opts := DefaultOptions()
	opts.Localization.Active = true

	dialog := testutil.Component("Controls/Dialog", "Container").
		Settings(core.ElementSettings{LocalizeElement: true, Generate: true}).
		Build()
	screen := testutil.Screen("Menu", "").
		Instance("Title", "Text").
		Instance("Dialog1", "Controls/Dialog").
		Vars(testutil.String("Title.Text", "T_Greeting")).
		Build()
	g := newGenerator(t, opts, dialog, screen)

	nodes := g.Nodes(screen)
	defaults := FindBlock(nodes, HeaderPrefix("private void ApplyDefaultVariables()"))
	require.NotNil(t, defaults)
	assert.Contains(t, Flatten(defaults.Body), `this.Title.Text = Strings.Get("T_Greeting");`)
	assert.Contains(t, Flatten(defaults.Body), "Dialog1.ApplyLocalization();")

	apply := FindBlock(nodes, HeaderPrefix("public void ApplyLocalization()"))
	require.NotNil(t, apply)
	assert.Equal(t, []string{
		`this.Title.Text = Strings.Get("T_Greeting");`,
		"Dialog1.ApplyLocalization();",
	}, Flatten(apply.Body))

	opts.Localization.Active = false
	g = newGenerator(t, opts, dialog, screen)
	out := g.Generate(screen)
	assert.Contains(t, out, `this.Title.Text = "T_Greeting";`)
	assert.NotContains(t, out, "ApplyLocalization")
}

func TestStateCode(t *testing.T) {
	button := buttonComponent()
	g := newGenerator(t, DefaultOptions(), button)

	hidden := button.Category("Visibility").State("Hidden")
	assert.Equal(t, "this.Visible = false;\n", g.StateCode(button, hidden))
}

func TestStateCode_ParentsAfterEverythingElse(t *testing.T) {
	card := testutil.Component("Controls/Card", "Container").
		Instance("Label", "Text").
		Instance("Panel", "Container").
		Category("Placement",
			testutil.StateOf("Moved",
				testutil.String("Label.Parent", "Panel"),
				testutil.Float("Label.Rotation", 3),
				testutil.Float("Width", 50),
			),
		).
		Build()
	g := newGenerator(t, DefaultOptions(), card)

	moved := card.Category("Placement").State("Moved")
	want := "this.Label.Rotation = 3f;\n" +
		"this.Width = 50f;\n" +
		"Panel.Children.Add(Label);\n"
	assert.Equal(t, want, g.StateCode(card, moved))
}

func TestGenerate_FormsStateHandlerUsesCastedReceiver(t *testing.T) {
	card := testutil.Component("Controls/Card", "XamarinForms/AbsoluteLayout").
		Instance("Label", "Text").
		Instance("Panel", "Container").
		Instance("Stack", "XamarinForms/StackLayout").
		Category("Placement",
			testutil.StateOf("Moved",
				testutil.String("Label.Parent", "Panel"),
				testutil.Float("Label.Rotation", 3),
				testutil.Bool("Label.Visible", false),
				testutil.Enum("Stack.Children Layout", units.ChildrenLayoutTypeName, "LeftToRightStack"),
			),
		).
		Build()
	g := newFormsGenerator(t, card)

	handler := body(t, g.Nodes(card), "private static void HandlePlacementStatePropertyChanged(")
	rotation := indexOf(handler, "casted.Label.Rotation = 3f;")
	visible := indexOf(handler, "casted.Label.Visible = false;")
	orientation := indexOf(handler, "casted.Stack.Orientation = StackOrientation.Horizontal;")
	parented := indexOf(handler, "casted.Panel.Children.Add(casted.Label);")
	brk := indexOf(handler, "break;")

	require.NotEqual(t, -1, rotation)
	require.NotEqual(t, -1, visible)
	require.NotEqual(t, -1, orientation)
	require.NotEqual(t, -1, parented)
	assert.Less(t, rotation, parented)
	assert.Less(t, visible, parented)
	assert.Less(t, orientation, parented)
	assert.Equal(t, brk-1, parented, "re-parenting is the last statement of the case")
	assert.NotContains(t, handler, "Panel.Children.Add(Label);")
}

func TestGenerate_IntValuesHaveNoFloatSuffix(t *testing.T) {
	button := testutil.Component("Controls/Button", "Container").
		Instance("Label", "Text").
		Vars(testutil.Int("Label.Red", 128), testutil.Int("Label.FontSize", 24)).
		Build()
	g := newGenerator(t, DefaultOptions(), button)

	defaults := body(t, g.Nodes(button), "private void ApplyDefaultVariables()")
	assert.Contains(t, defaults, "this.Label.Red = 128;")
	assert.Contains(t, defaults, "this.Label.FontSize = 24;")
	assert.NotContains(t, defaults, "this.Label.Red = 128f;")
}

func TestInstanceCode(t *testing.T) {
	button := buttonComponent()
	g := newGenerator(t, DefaultOptions(), button)

	want := "public TextRuntime Label { get; private set; }\n" +
		"Label = new TextRuntime();\n" +
		"Label.Name = \"Label\";\n" +
		"this.Label.X = 5f;\n" +
		"this.Label.Width = 100f;\n" +
		"this.Label.XUnits = GeneralUnitType.PixelsFromSmall;\n" +
		"this.Children.Add(Label);\n"
	assert.Equal(t, want, g.InstanceCode(button, button.Instance("Label")))
}

func TestRuntimeOf(t *testing.T) {
	formsButton := testutil.Component("Controls/Button", "XamarinForms/AbsoluteLayout").
		Instance("Label", "Text").
		Instance("Caption", "Text").
		Vars(testutil.Bool("Label.IsXamarinFormsControl", true)).
		Build()
	g := newGenerator(t, DefaultOptions(), append(formsLayouts(), formsButton)...)

	assert.Equal(t, RuntimeForms, g.RuntimeOf(formsButton))
	assert.Equal(t, RuntimeForms, g.RuntimeOfInstance(formsButton, formsButton.Instance("Label")))
	assert.Equal(t, RuntimeGum, g.RuntimeOfInstance(formsButton, formsButton.Instance("Caption")))
	assert.Equal(t, RuntimeGum, g.RuntimeOf(g.reg.Element("Container")))
}
