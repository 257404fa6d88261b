package registry

import (
	"fmt"
	"sort"
	"sync"

	"github.com/sourceplane/dynparam/internal/model"
	"github.com/sourceplane/dynparam/internal/param"
)

// Parameter is a configured job parameter. Kind tags which payload is set.
type Parameter struct {
	Kind    string
	Name    string
	Dynamic *param.Definition
	String  *StringParameter
}

// StringParameter is a free-text parameter with a default value.
type StringParameter struct {
	Name        string
	Description string
	Default     string
}

// Bind returns the submitted value, or the default when none was given.
func (p *StringParameter) Bind(value string, ok bool) param.SelectedValue {
	if !ok {
		value = p.Default
	}
	return param.SelectedValue{Name: p.Name, Value: value}
}

// StringKind is the type name of StringParameter.
const StringKind = "string"

// Factory builds a parameter from its persisted form.
type Factory func(spec model.ParameterSpec) (Parameter, error)

type parameterType struct {
	displayName string
	factory     Factory
}

// Types is the set of parameter types the host can instantiate.
type Types struct {
	mu    sync.RWMutex
	types map[string]parameterType
}

// NewTypes creates an empty type set
func NewTypes() *Types {
	return &Types{types: make(map[string]parameterType)}
}

// DefaultTypes returns a type set with the dynamic and string kinds.
func DefaultTypes() *Types {
	t := NewTypes()
	t.Register(param.Kind, param.DisplayName, func(spec model.ParameterSpec) (Parameter, error) {
		return Parameter{Kind: param.Kind, Name: spec.Name, Dynamic: param.FromSpec(spec)}, nil
	})
	t.Register(StringKind, "String Parameter", func(spec model.ParameterSpec) (Parameter, error) {
		return Parameter{Kind: StringKind, Name: spec.Name, String: &StringParameter{
			Name:        spec.Name,
			Description: spec.Description,
			Default:     spec.Default,
		}}, nil
	})
	return t
}

// Register adds or replaces a parameter type
func (t *Types) Register(kind, displayName string, factory Factory) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.types[kind] = parameterType{displayName: displayName, factory: factory}
}

// Build instantiates spec using the factory registered for spec.Type.
func (t *Types) Build(spec model.ParameterSpec) (Parameter, error) {
	t.mu.RLock()
	pt, ok := t.types[spec.Type]
	t.mu.RUnlock()
	if !ok {
		return Parameter{}, fmt.Errorf("unknown parameter type %q for parameter %s", spec.Type, spec.Name)
	}

	p, err := pt.factory(spec)
	if err != nil {
		return Parameter{}, fmt.Errorf("failed to build parameter %s: %w", spec.Name, err)
	}
	return p, nil
}

// DisplayName returns the user-facing name of a registered kind
func (t *Types) DisplayName(kind string) (string, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	pt, ok := t.types[kind]
	return pt.displayName, ok
}

// Kinds returns all registered kinds, sorted
func (t *Types) Kinds() []string {
	t.mu.RLock()
	defer t.mu.RUnlock()

	kinds := make([]string, 0, len(t.types))
	for k := range t.types {
		kinds = append(kinds, k)
	}
	sort.Strings(kinds)
	return kinds
}
