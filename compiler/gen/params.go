package gen

import (
	"github.com/syssam/dtogen/compiler/load"
)

// The following types describe the output of the pipelines. They are consumed
// by renderers and never mutated after a pipeline returns.
type (
	// Params is the parameter record of one artifact of one entity.
	Params struct {
		// Kind of the artifact.
		Kind Kind
		// Entity the artifact was computed for.
		Entity *load.Entity
		// Name is the type name of the artifact.
		Name string
		// File is the file name of the artifact, without extension.
		File string
		// Fields holds the included fields in declaration order.
		Fields []*ParamField
		// Imports holds one record per import source.
		Imports []*Import
		// ExtraTypes holds the auxiliary types the renderer emits next to the artifact.
		ExtraTypes []*ExtraType
		// ExtraModels holds the type names declared as extra documentation models.
		ExtraModels []string
		// Validators holds the distinct validator names in use.
		Validators []string
	}

	// ParamField is a field of an artifact with its resolved attributes.
	ParamField struct {
		Name string
		// Type is the declared type name, after dependency-free substitution.
		Type string
		Kind load.Kind
		List bool
		// Required means the field must be present.
		Required bool
		// Nullable means the field accepts null.
		Nullable bool
		// Override is the resolved type name of a relation input.
		Override string
		// Coercion is the artifact type name a composite type field is
		// instantiated as. Renderers use it for nested validation.
		Coercion string
		// ResponseOnly marks fields documented as response properties.
		ResponseOnly bool
		Doc          string
		// Validators holds the validator annotations of the field.
		Validators []Spec
		// APIProps holds the documentation annotation properties of the field.
		APIProps []Spec
	}

	// ExtraType is an auxiliary type synthesized for a relation input.
	ExtraType struct {
		Name   string
		Fields []*ParamField
	}

	// Spec is an annotation argument: a name and value. Verbatim values are
	// inserted as is, others are encoded as string literals.
	Spec struct {
		Name     string `yaml:"name"`
		Value    string `yaml:"value,omitempty"`
		Verbatim bool   `yaml:"verbatim,omitempty"`
	}

	// Override holds the transient per-field decisions of a pipeline.
	// It is merged with the field descriptor into a ParamField.
	Override struct {
		Required     bool
		Nullable     bool
		ReadOnly     bool
		List         bool
		Type         string
		Coercion     string
		ResponseOnly bool
	}
)

// ExtraTypeNames returns the names of the auxiliary types.
func (p *Params) ExtraTypeNames() []string {
	names := make([]string, 0, len(p.ExtraTypes))
	for _, t := range p.ExtraTypes {
		names = append(names, t.Name)
	}
	return names
}

// Field returns the field with the given name.
func (p *Params) Field(name string) (*ParamField, bool) {
	for _, f := range p.Fields {
		if f.Name == name {
			return f, true
		}
	}
	return nil, false
}

// Spec returns the annotation spec with the given name.
func (f *ParamField) Spec(name string) (Spec, bool) {
	for _, s := range f.APIProps {
		if s.Name == name {
			return s, true
		}
	}
	return Spec{}, false
}

// Validator returns the validator spec with the given name.
func (f *ParamField) Validator(name string) (Spec, bool) {
	for _, s := range f.Validators {
		if s.Name == name {
			return s, true
		}
	}
	return Spec{}, false
}

// Object reports if the field is rendered as a structured type.
func (f *ParamField) Object() bool {
	return f.Override != "" || f.Kind == load.KindObject || f.Kind == load.KindType
}
