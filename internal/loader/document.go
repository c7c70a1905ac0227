package loader

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	"github.com/go-viper/mapstructure/v2"
	"gopkg.in/yaml.v3"

	"github.com/leapstack-labs/gumcodegen/pkg/core"
)

// documentYAML is the on-disk shape of an element document.
// Unknown fields are rejected.
type documentYAML struct {
	BaseType   string         `yaml:"baseType"`
	CodeOutput map[string]any `yaml:"codeOutput"`
	Instances  []instanceYAML `yaml:"instances"`
	Variables  []variableYAML `yaml:"variables"`
	Categories []categoryYAML `yaml:"categories"`
	// Meta is an extension point for editor data the generator ignores
	Meta map[string]any `yaml:"meta"`
}

type instanceYAML struct {
	Name          string `yaml:"name"`
	BaseType      string `yaml:"baseType"`
	DefinedByBase bool   `yaml:"definedByBase"`
}

type variableYAML struct {
	Name      string `yaml:"name"`
	Type      string `yaml:"type"`
	Value     any    `yaml:"value"`
	ExposedAs string `yaml:"exposedAs"`
	// SetsValue defaults to true
	SetsValue *bool `yaml:"setsValue"`
}

type categoryYAML struct {
	Name   string      `yaml:"name"`
	States []stateYAML `yaml:"states"`
}

type stateYAML struct {
	Name      string         `yaml:"name"`
	Variables []variableYAML `yaml:"variables"`
}

// ParseError is a document that could not be decoded.
type ParseError struct {
	Path    string
	Message string
}

func (e *ParseError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("%s: %s", e.Path, e.Message)
	}
	return e.Message
}

// ParseDocument decodes an element document. name and kind come from the
// document's location in the project.
func ParseDocument(kind core.ElementKind, name string, content []byte) (*core.Element, error) {
	var doc documentYAML
	dec := yaml.NewDecoder(bytes.NewReader(content))
	dec.KnownFields(true)
	if err := dec.Decode(&doc); err != nil && !errors.Is(err, io.EOF) {
		return nil, &ParseError{Message: fmt.Sprintf("invalid YAML: %v", err)}
	}

	settings, err := decodeSettings(doc.CodeOutput)
	if err != nil {
		return nil, err
	}

	el := &core.Element{
		Name:     name,
		Kind:     kind,
		BaseType: doc.BaseType,
		Settings: settings,
	}

	seen := make(map[string]bool)
	for _, inst := range doc.Instances {
		if inst.Name == "" {
			return nil, &ParseError{Message: "instance without a name"}
		}
		if seen[inst.Name] {
			return nil, &ParseError{Message: fmt.Sprintf("duplicate instance %q", inst.Name)}
		}
		seen[inst.Name] = true
		el.Instances = append(el.Instances, &core.Instance{
			Name:          inst.Name,
			BaseType:      inst.BaseType,
			DefinedByBase: inst.DefinedByBase,
		})
	}

	if el.DefaultState, err = buildState("Default", "", doc.Variables); err != nil {
		return nil, err
	}

	for _, c := range doc.Categories {
		if c.Name == "" {
			return nil, &ParseError{Message: "category without a name"}
		}
		cat := &core.Category{Name: c.Name}
		for _, s := range c.States {
			state, err := buildState(s.Name, c.Name, s.Variables)
			if err != nil {
				return nil, err
			}
			cat.States = append(cat.States, state)
		}
		el.Categories = append(el.Categories, cat)
	}

	return el, nil
}

func buildState(name, category string, vars []variableYAML) (*core.State, error) {
	state := &core.State{Name: name, Category: category}
	for _, v := range vars {
		variable, err := buildVariable(v)
		if err != nil {
			return nil, &ParseError{Message: fmt.Sprintf("state %q: %v", name, err)}
		}
		state.Variables = append(state.Variables, variable)
	}
	return state, nil
}

func buildVariable(v variableYAML) (*core.Variable, error) {
	if v.Name == "" {
		return nil, errors.New("variable without a name")
	}
	value, err := core.ParseValue(v.Type, v.Value)
	if err != nil {
		return nil, fmt.Errorf("variable %q: %w", v.Name, err)
	}

	source, _ := core.SplitVariableName(v.Name)
	setsValue := true
	if v.SetsValue != nil {
		setsValue = *v.SetsValue
	}
	return &core.Variable{
		Name:          v.Name,
		Type:          v.Type,
		Value:         value,
		SourceObject:  source,
		ExposedAsName: v.ExposedAs,
		SetsValue:     setsValue,
	}, nil
}

// decodeSettings decodes the codeOutput block over the default settings.
func decodeSettings(raw map[string]any) (core.ElementSettings, error) {
	settings := core.DefaultElementSettings()
	if len(raw) == 0 {
		return settings, nil
	}

	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           &settings,
		ErrorUnused:      true,
		WeaklyTypedInput: true,
	})
	if err != nil {
		return settings, err
	}
	if err := dec.Decode(raw); err != nil {
		return settings, &ParseError{Message: fmt.Sprintf("codeOutput: %v", err)}
	}
	return settings, nil
}
