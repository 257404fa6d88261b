// Package param implements the dynamic build parameter: a primary list of
// values and a dependent list whose allowed values depend on the primary
// choice.
package param

import (
	"strings"

	"github.com/sourceplane/dynparam/internal/model"
)

// Kind is the parameter type name used in job documents.
const Kind = "dynamic"

// DisplayName is shown to users choosing a parameter type.
const DisplayName = "Dynamic Parameter"

// Definition is the configuration of one dynamic parameter. It is never
// mutated after construction; reconfiguring a job replaces the instance.
type Definition struct {
	Name        string
	Description string

	// SecondaryName is the form field name of the dependent value.
	SecondaryName string

	// PrimaryOptions is newline-delimited literal text.
	PrimaryOptions string
	DefaultPrimary string

	// SecondaryOptions holds key:label lines. It is ignored whenever
	// SecondaryOptionsFile is set.
	SecondaryOptions     string
	SecondaryOptionsFile string

	// ExactMatch requires a line key to equal the primary value instead of
	// merely starting with it.
	ExactMatch bool
}

// New creates a definition. No validation is performed.
func New(name, description, primaryOptions, defaultPrimary, secondaryOptions, secondaryName, secondaryOptionsFile string) *Definition {
	return &Definition{
		Name:                 name,
		Description:          description,
		SecondaryName:        secondaryName,
		PrimaryOptions:       primaryOptions,
		DefaultPrimary:       defaultPrimary,
		SecondaryOptions:     secondaryOptions,
		SecondaryOptionsFile: secondaryOptionsFile,
	}
}

// FromSpec creates a definition from its job document form.
func FromSpec(spec model.ParameterSpec) *Definition {
	d := New(spec.Name, spec.Description, spec.Options, spec.Default,
		spec.DependentOptions, spec.DependentName, spec.DependentOptionsFile)
	d.ExactMatch = spec.ExactMatch
	return d
}

// PrimaryOptionList returns the primary values in configured order.
func (d *Definition) PrimaryOptionList() []string {
	return splitLines(d.PrimaryOptions)
}

// Bind pairs submitted values under the configured field names.
func (d *Definition) Bind(primary, secondary string) SelectedValue {
	return SelectedValue{
		Name:           d.Name,
		Value:          primary,
		SecondaryName:  d.SecondaryName,
		SecondaryValue: secondary,
	}
}

// SelectedValue is the pair of values submitted for one build.
type SelectedValue struct {
	Name           string `json:"name" yaml:"name"`
	Value          string `json:"value" yaml:"value"`
	SecondaryName  string `json:"secondaryName" yaml:"secondaryName"`
	SecondaryValue string `json:"secondaryValue" yaml:"secondaryValue"`
}

// Env returns the values keyed by field name, as exported to build steps.
func (v SelectedValue) Env() map[string]string {
	env := map[string]string{v.Name: v.Value}
	if v.SecondaryName != "" {
		env[v.SecondaryName] = v.SecondaryValue
	}
	return env
}

// splitLines splits on \n or \r\n. Trailing empty lines are dropped so a
// source ending in a newline does not produce a blank option.
func splitLines(s string) []string {
	if s == "" {
		return []string{}
	}
	lines := strings.Split(s, "\n")
	for i := 0; i < len(lines)-1; i++ {
		lines[i] = strings.TrimSuffix(lines[i], "\r")
	}
	end := len(lines)
	for end > 0 && lines[end-1] == "" {
		end--
	}
	return lines[:end]
}
