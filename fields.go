package skit

import "fmt"

// FieldKind enumerates the input widgets a form field can render as.
type FieldKind string

const (
	FieldText   FieldKind = "text"
	FieldNumber FieldKind = "number"
	FieldSecret FieldKind = "secret"
	FieldSelect FieldKind = "select"
)

// FieldSpec is one field as the host receives it.
type FieldSpec struct {
	Key         string    `json:"key"`
	Label       string    `json:"label"`
	Kind        FieldKind `json:"kind"`
	Placeholder string    `json:"placeholder,omitempty"`
	Options     []string  `json:"options,omitempty"`
	Required    bool      `json:"required,omitempty"`
}

// Fields is a fluent builder for form field lists. Misuse is caught at
// Build time instead of surfacing as a host-side complaint mid-prompt:
// empty or duplicate keys, and select fields without options, are rejected.
type Fields struct {
	specs []FieldSpec
}

// NewFields creates an empty builder.
func NewFields() *Fields {
	return &Fields{}
}

// Text adds a free-text field.
func (f *Fields) Text(key, label string) *Fields {
	return f.add(FieldSpec{Key: key, Label: label, Kind: FieldText})
}

// Number adds a numeric field.
func (f *Fields) Number(key, label string) *Fields {
	return f.add(FieldSpec{Key: key, Label: label, Kind: FieldNumber})
}

// Secret adds a masked field.
func (f *Fields) Secret(key, label string) *Fields {
	return f.add(FieldSpec{Key: key, Label: label, Kind: FieldSecret})
}

// Select adds a single-choice field over the given options.
func (f *Fields) Select(key, label string, options ...string) *Fields {
	return f.add(FieldSpec{Key: key, Label: label, Kind: FieldSelect, Options: options})
}

// Placeholder sets the placeholder of the most recently added field.
func (f *Fields) Placeholder(text string) *Fields {
	if n := len(f.specs); n > 0 {
		f.specs[n-1].Placeholder = text
	}
	return f
}

// Required marks the most recently added field as mandatory.
func (f *Fields) Required() *Fields {
	if n := len(f.specs); n > 0 {
		f.specs[n-1].Required = true
	}
	return f
}

func (f *Fields) add(spec FieldSpec) *Fields {
	f.specs = append(f.specs, spec)
	return f
}

// Build validates the field list and returns the specs to send to the host.
func (f *Fields) Build() ([]FieldSpec, error) {
	if len(f.specs) == 0 {
		return nil, fmt.Errorf("form has no fields")
	}

	seen := make(map[string]bool, len(f.specs))
	for _, spec := range f.specs {
		if spec.Key == "" {
			return nil, fmt.Errorf("form field %q has an empty key", spec.Label)
		}
		if seen[spec.Key] {
			return nil, fmt.Errorf("form has duplicate field key %q", spec.Key)
		}
		seen[spec.Key] = true

		if spec.Kind == FieldSelect && len(spec.Options) == 0 {
			return nil, fmt.Errorf("select field %q has no options", spec.Key)
		}
	}

	return f.specs, nil
}
