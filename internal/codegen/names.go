package codegen

import "strings"

// Document variable names the generator treats specially.
const (
	varParent         = "Parent"
	varChildrenLayout = "Children Layout"
	varClipsChildren  = "Clips Children"
	varIsBold         = "IsBold"
)

// positionNames are the root names consumed by the layout translator.
var positionNames = map[string]bool{
	"X":            true,
	"Y":            true,
	"Width":        true,
	"Height":       true,
	"X Units":      true,
	"Y Units":      true,
	"Width Units":  true,
	"Height Units": true,
	"X Origin":     true,
	"Y Origin":     true,
}

// colorNames are the Text color channels merged into one TextColor.
var colorNames = map[string]bool{
	"Red":   true,
	"Green": true,
	"Blue":  true,
	"Alpha": true,
}

// formsSuppressed have no Forms equivalent and produce no code.
var formsSuppressed = map[string]bool{
	"Clips Children":        true,
	"ExposeChildrenEvents":  true,
	"FlipHorizontal":        true,
	"HasEvents":             true,
	"IsXamarinFormsControl": true,
	"Name":                  true,
	"Wraps Children":        true,
	"X Origin":              true,
	"XOrigin":               true,
	"Y Origin":              true,
	"YOrigin":               true,
}

// gumSuppressed are editor metadata that produce no Gum code.
var gumSuppressed = map[string]bool{
	"IsXamarinFormsControl": true,
	"ExposeChildrenEvents":  true,
	"HasEvents":             true,
}

// formsNames maps Gum root names to Forms property names.
var formsNames = map[string]string{
	"Height":              "HeightRequest",
	"Width":               "WidthRequest",
	"X":                   "PixelX",
	"Y":                   "PixelY",
	"Visible":             "IsVisible",
	"HorizontalAlignment": "HorizontalTextAlignment",
	"VerticalAlignment":   "VerticalTextAlignment",
}

// isSuppressed reports whether root produces no code on rt.
func isSuppressed(root string, rt Runtime) bool {
	if rt == RuntimeForms {
		return formsSuppressed[root]
	}
	return gumSuppressed[root]
}

// propertyName returns the code property for a root variable name.
func propertyName(root string, rt Runtime) string {
	if rt == RuntimeForms {
		if name, ok := formsNames[root]; ok {
			return name
		}
	}
	return stripSpaces(root)
}

func stripSpaces(s string) string {
	return strings.ReplaceAll(s, " ", "")
}
