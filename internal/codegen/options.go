package codegen

import (
	"fmt"
	"strings"
)

// OutputLibrary is the UI library a project targets as a whole.
type OutputLibrary string

// Output libraries.
const (
	LibraryGum   OutputLibrary = "gum"
	LibraryForms OutputLibrary = "forms"
)

// ParseOutputLibrary parses a library name, case-insensitively.
func ParseOutputLibrary(s string) (OutputLibrary, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "gum", "skia":
		return LibraryGum, nil
	case "forms", "xamarinforms", "xamarin.forms":
		return LibraryForms, nil
	}
	return "", fmt.Errorf("unknown output library %q (expected gum or forms)", s)
}

// Localization configures string-table lookups in generated code.
type Localization struct {
	// Active is true when the project has a string database
	Active bool
	// StringIDPrefix marks text values that are string IDs
	StringIDPrefix string
	// LookupFormat is the lookup expression; "{0}" is replaced by the ID
	LookupFormat string
}

// Lookup returns the lookup expression for a string ID.
func (l Localization) Lookup(id string) string {
	return strings.ReplaceAll(l.LookupFormat, "{0}", id)
}

// Options is the immutable configuration of one generation call. It is
// passed by value and never modified, so independent elements can be
// generated concurrently with the same Options.
type Options struct {
	// CanvasWidth and CanvasHeight are the design resolution in pixels
	CanvasWidth  int
	CanvasHeight int
	// AdjustPixelValuesForDensity divides absolute-layout pixel values by
	// the device display density
	AdjustPixelValuesForDensity bool
	// OutputLibrary is the project-wide target library
	OutputLibrary OutputLibrary
	// RootNamespace prefixes derived namespaces. Empty disables them.
	RootNamespace string
	// CommonUsingStatements open every generated file
	CommonUsingStatements []string
	Localization          Localization
}

// Default canvas size.
const (
	DefaultCanvasWidth  = 480
	DefaultCanvasHeight = 854
)

// DefaultOptions returns the options used when nothing is configured.
func DefaultOptions() Options {
	return Options{
		CanvasWidth:   DefaultCanvasWidth,
		CanvasHeight:  DefaultCanvasHeight,
		OutputLibrary: LibraryGum,
		Localization: Localization{
			StringIDPrefix: "T_",
			LookupFormat:   `Strings.Get("{0}")`,
		},
	}
}
