package load

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/syssam/dtogen/schema/directive"
)

// Kind is the kind of a schema field.
type Kind uint8

// Field kinds.
const (
	// KindScalar is a primitive field (String, Int, DateTime, ...).
	KindScalar Kind = iota
	// KindObject is a relation to another entity.
	KindObject
	// KindType is an embedded structured type (composite type).
	KindType
	// KindEnum is an enum field.
	KindEnum
)

var kindNames = [...]string{
	KindScalar: "scalar",
	KindObject: "object",
	KindType:   "type",
	KindEnum:   "enum",
}

// String returns the schema name of the kind.
func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return fmt.Sprintf("Kind(%d)", uint8(k))
}

// UnmarshalYAML decodes a kind from its name.
func (k *Kind) UnmarshalYAML(node *yaml.Node) error {
	for i, name := range kindNames {
		if node.Value == name {
			*k = Kind(i)
			return nil
		}
	}
	return fmt.Errorf("load: unknown field kind %q", node.Value)
}

// MarshalYAML encodes the kind as its name.
func (k Kind) MarshalYAML() (any, error) { return k.String(), nil }

// Entity represents a schema entity handed over by the schema introspection.
type Entity struct {
	Name   string   `yaml:"name"`
	Fields []*Field `yaml:"fields,omitempty"`
	Output Output   `yaml:"output,omitempty"`
}

// Field returns the field with the given name, or nil.
func (e *Entity) Field(name string) *Field {
	for _, f := range e.Fields {
		if f.Name == name {
			return f
		}
	}
	return nil
}

// Output holds the output location of each artifact of an entity. The values
// are opaque path tokens used only to compute relative import paths.
type Output struct {
	Entity  string `yaml:"entity,omitempty"`
	Create  string `yaml:"create,omitempty"`
	Update  string `yaml:"update,omitempty"`
	Connect string `yaml:"connect,omitempty"`
}

// ConnectDir returns the connect location, falling back to the create one.
func (o Output) ConnectDir() string {
	if o.Connect != "" {
		return o.Connect
	}
	return o.Create
}

// Field represents a field of a schema entity.
type Field struct {
	Name string `yaml:"name"`
	// Type is the declared type name. For relations and composite types it
	// is the name of the referenced entity.
	Type      string `yaml:"type"`
	Kind      Kind   `yaml:"kind,omitempty"`
	List      bool   `yaml:"list,omitempty"`
	Required  bool   `yaml:"required,omitempty"`
	ReadOnly  bool   `yaml:"readOnly,omitempty"`
	Default   bool   `yaml:"hasDefault,omitempty"`
	ID        bool   `yaml:"id,omitempty"`
	Unique    bool   `yaml:"unique,omitempty"`
	UpdatedAt bool   `yaml:"updatedAt,omitempty"`
	Doc       string `yaml:"doc,omitempty"`
	// RelationFromFields holds the foreign-key scalars owned by a relation.
	RelationFromFields []string      `yaml:"relationFromFields,omitempty"`
	Directives         directive.Set `yaml:"directives,omitempty"`
}

// Has reports if the field carries the given directive.
func (f *Field) Has(d directive.Directive) bool { return f.Directives.Has(d) }

// HasAny reports if the field carries any of the given directives.
func (f *Field) HasAny(ds ...directive.Directive) bool { return f.Directives.HasAny(ds...) }

// Schema is a loaded schema document.
type Schema struct {
	// Generator holds the raw generator block, decoded by the caller.
	Generator yaml.Node `yaml:"generator,omitempty"`
	Entities  []*Entity `yaml:"entities"`
}

// Lookup returns the entity with the given name.
func (s *Schema) Lookup(name string) (*Entity, bool) {
	for _, e := range s.Entities {
		if e.Name == name {
			return e, true
		}
	}
	return nil, false
}

// Parse decodes a schema document. JSON input is accepted as YAML.
func Parse(r io.Reader) (*Schema, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	s := &Schema{}
	if err := dec.Decode(s); err != nil {
		if errors.Is(err, io.EOF) {
			return s, nil
		}
		return nil, fmt.Errorf("load: decode schema: %w", err)
	}
	if err := s.check(); err != nil {
		return nil, err
	}
	return s, nil
}

// ParseBytes decodes a schema document from memory.
func ParseBytes(b []byte) (*Schema, error) {
	return Parse(bytes.NewReader(b))
}

// LoadFile reads and decodes the schema document at path.
func LoadFile(path string) (*Schema, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("load: %w", err)
	}
	defer f.Close()
	s, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return s, nil
}

// check rejects documents the generator cannot address unambiguously.
// Dangling relation targets are left to the generator.
func (s *Schema) check() error {
	seen := make(map[string]bool, len(s.Entities))
	for _, e := range s.Entities {
		switch {
		case e == nil || e.Name == "":
			return errors.New("load: entity name cannot be empty")
		case seen[e.Name]:
			return fmt.Errorf("load: entity %q redeclared", e.Name)
		}
		seen[e.Name] = true
		fields := make(map[string]bool, len(e.Fields))
		for _, f := range e.Fields {
			switch {
			case f == nil || f.Name == "":
				return fmt.Errorf("load: field name cannot be empty in entity %q", e.Name)
			case f.Type == "":
				return fmt.Errorf("load: missing type for field %s.%s", e.Name, f.Name)
			case fields[f.Name]:
				return fmt.Errorf("load: field %q redeclared for entity %q", f.Name, e.Name)
			}
			fields[f.Name] = true
		}
	}
	return nil
}
