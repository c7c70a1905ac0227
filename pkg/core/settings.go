package core

// ElementSettings controls how code is generated for a single element.
// It is read from the `codeOutput:` block of the element document.
type ElementSettings struct {
	// Namespace overrides the namespace derived from the project root namespace
	Namespace string `mapstructure:"namespace"`
	// UsingStatements are emitted verbatim after the project-wide usings
	UsingStatements []string `mapstructure:"usings"`
	// LocalizeElement marks the element as exposing ApplyLocalization, so
	// containers holding an instance of it forward the call
	LocalizeElement bool `mapstructure:"localize"`
	// Generate is false when the element must be skipped by the engine
	Generate bool `mapstructure:"generate"`
}

// DefaultElementSettings returns the settings used when a document has no
// codeOutput block.
func DefaultElementSettings() ElementSettings {
	return ElementSettings{Generate: true}
}
