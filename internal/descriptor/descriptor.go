// Package descriptor presents dynamic parameters to the UI: it fills the
// primary and dependent selection lists and binds submitted values.
package descriptor

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/url"

	"github.com/sourceplane/dynparam/internal/lookup"
	"github.com/sourceplane/dynparam/internal/param"
	"github.com/sourceplane/dynparam/internal/registry"
)

// Option is one entry of a selection list
type Option struct {
	Name  string `json:"name" yaml:"name"`
	Value string `json:"value" yaml:"value"`
}

// ListBox is the option sink populated for a selection control.
type ListBox []Option

// Add appends an option whose name and value are both s
func (l *ListBox) Add(s string) {
	*l = append(*l, Option{Name: s, Value: s})
}

// Values returns the option values in order
func (l ListBox) Values() []string {
	values := make([]string, len(l))
	for i, o := range l {
		values[i] = o.Value
	}
	return values
}

// Descriptor serves the parameter's UI endpoints.
type Descriptor struct {
	Lookup   *lookup.Adapter
	Resolver *param.Resolver
	Logger   *slog.Logger
}

// New creates a descriptor
func New(adapter *lookup.Adapter, resolver *param.Resolver, logger *slog.Logger) *Descriptor {
	if logger == nil {
		logger = slog.Default()
	}
	return &Descriptor{Lookup: adapter, Resolver: resolver, Logger: logger}
}

// DisplayName is the name shown when choosing a parameter type
func (d *Descriptor) DisplayName() string {
	return param.DisplayName
}

// FillValueItems lists the primary options of parameter name. A parameter
// that cannot be found yields an empty list.
func (d *Descriptor) FillValueItems(identity, name string) ListBox {
	d.Logger.Debug("Filling primary options", "parameter", name)
	m := ListBox{}

	def, err := d.Lookup.Find(identity, name)
	if err != nil {
		return m
	}
	for _, s := range def.PrimaryOptionList() {
		m.Add(s)
	}
	return m
}

// FillDynamicValueItems lists the dependent options of parameter name for
// primary value. Lookup failures yield an empty list and no error. Option
// source and format failures are logged and returned alongside an empty
// list, so callers can show a safe fallback and still tell the cases apart.
func (d *Descriptor) FillDynamicValueItems(identity, name, value string) (ListBox, error) {
	d.Logger.Debug("Filling dependent options", "parameter", name, "value", value)
	m := ListBox{}

	def, err := d.Lookup.Find(identity, name)
	if err != nil {
		return m, nil
	}

	labels, err := d.Resolver.ResolveSecondaryOptions(def, value)
	if err != nil {
		d.Logger.Error("Failed to resolve dependent options",
			"parameter", name, "identity", identity, "value", value, "error", err)
		return m, err
	}
	for _, s := range labels {
		m.Add(s)
	}
	return m, nil
}

// CreateValue binds a form submission: the primary value is read from the
// parameter's name and the dependent value from its secondary name.
func (d *Descriptor) CreateValue(identity, name string, form url.Values) (param.SelectedValue, error) {
	def, err := d.Lookup.Find(identity, name)
	if err != nil {
		return param.SelectedValue{}, err
	}

	primary, ok := firstValue(form, def.Name)
	if !ok {
		return param.SelectedValue{}, fmt.Errorf("missing value for parameter %s", def.Name)
	}
	secondary, ok := firstValue(form, def.SecondaryName)
	if !ok {
		return param.SelectedValue{}, fmt.Errorf("missing value for parameter %s", def.SecondaryName)
	}

	value := def.Bind(primary, secondary)
	d.Logger.Info("Bound parameter values",
		"parameter", def.Name, "value", value.Value,
		"secondaryParameter", def.SecondaryName, "secondaryValue", value.SecondaryValue)
	return value, nil
}

// BindJob binds a form submission for every parameter of job. Dynamic
// parameters require both values; string parameters fall back to their
// default.
func (d *Descriptor) BindJob(identity string, job *registry.Job, form url.Values) ([]param.SelectedValue, error) {
	values := make([]param.SelectedValue, 0, len(job.Parameters))
	for _, p := range job.Parameters {
		switch p.Kind {
		case param.Kind:
			v, err := d.CreateValue(identity, p.Name, form)
			if err != nil {
				return nil, err
			}
			values = append(values, v)
		case registry.StringKind:
			v, ok := firstValue(form, p.Name)
			values = append(values, p.String.Bind(v, ok))
		}
	}
	return values, nil
}

type jsonSubmission struct {
	Value        *string `json:"value"`
	DynamicValue *string `json:"dynamicValue"`
}

// CreateValueJSON binds a structured submission of the form
// {"value": "...", "dynamicValue": "..."}.
func (d *Descriptor) CreateValueJSON(identity, name string, data []byte) (param.SelectedValue, error) {
	def, err := d.Lookup.Find(identity, name)
	if err != nil {
		return param.SelectedValue{}, err
	}

	var sub jsonSubmission
	if err := json.Unmarshal(data, &sub); err != nil {
		return param.SelectedValue{}, fmt.Errorf("failed to parse submission for parameter %s: %w", def.Name, err)
	}
	if sub.Value == nil || sub.DynamicValue == nil {
		return param.SelectedValue{}, errors.New("submission requires value and dynamicValue")
	}
	return def.Bind(*sub.Value, *sub.DynamicValue), nil
}

func firstValue(form url.Values, key string) (string, bool) {
	values, ok := form[key]
	if !ok || len(values) == 0 {
		return "", false
	}
	return values[0], true
}
