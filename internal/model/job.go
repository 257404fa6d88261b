package model

// JobDocument is a job configuration file (k8s-style declarative format)
type JobDocument struct {
	APIVersion string   `yaml:"apiVersion" json:"apiVersion"`
	Kind       string   `yaml:"kind" json:"kind"`
	Metadata   Metadata `yaml:"metadata" json:"metadata"`
	Spec       JobSpec  `yaml:"spec" json:"spec"`
}

// Metadata holds standard object metadata
type Metadata struct {
	Name        string `yaml:"name" json:"name"`
	Description string `yaml:"description" json:"description"`
}

// JobSpec holds the parameters a job accepts and the steps it runs
type JobSpec struct {
	Parameters []ParameterSpec `yaml:"parameters" json:"parameters"`
	Steps      []Step          `yaml:"steps" json:"steps"`
}

// ParameterSpec is the persisted form of a build parameter. Type selects
// which parameter kind interprets the remaining fields.
type ParameterSpec struct {
	Name        string `yaml:"name" json:"name"`
	Type        string `yaml:"type" json:"type"`
	Description string `yaml:"description,omitempty" json:"description,omitempty"`

	// Primary list (dynamic) or default value (string)
	Options string `yaml:"options,omitempty" json:"options,omitempty"`
	Default string `yaml:"default,omitempty" json:"default,omitempty"`

	// Dependent list (dynamic only)
	DependentName        string `yaml:"dependentName,omitempty" json:"dependentName,omitempty"`
	DependentOptions     string `yaml:"dependentOptions,omitempty" json:"dependentOptions,omitempty"`
	DependentOptionsFile string `yaml:"dependentOptionsFile,omitempty" json:"dependentOptionsFile,omitempty"`
	ExactMatch           bool   `yaml:"exactMatch,omitempty" json:"exactMatch,omitempty"`
}

// Step is a single execution unit within a job
type Step struct {
	Name      string `yaml:"name" json:"name"`
	Run       string `yaml:"run" json:"run"`
	OnFailure string `yaml:"onFailure,omitempty" json:"onFailure,omitempty"` // stop, continue
}
