// Package directive defines the closed set of field directives understood by
// the DTO generator and a typed set for looking them up.
package directive

import (
	"fmt"
	"slices"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

// Directive is a field directive kind.
type Directive uint8

// Directive kinds.
const (
	_ Directive = iota

	// ReadOnly marks a field as read-only for input artifacts.
	ReadOnly
	// EntityHidden hides a field from the entity (read-model) artifact.
	EntityHidden
	// CreateHidden hides a field from the create artifact.
	CreateHidden
	// UpdateHidden hides a field from the update artifact.
	UpdateHidden
	// CreateOptional keeps a defaulted or generated field in the create artifact as optional.
	CreateOptional
	// UpdateOptional keeps an identifier or generated field in the update artifact as optional.
	UpdateOptional
	// UpdateFull makes an update replace a nested type wholesale (uses the create artifact).
	UpdateFull
	// RelationRequired marks a relation as required.
	RelationRequired
	// RelationIncludeID keeps the foreign-key scalars of a relation in input artifacts.
	RelationIncludeID
	// RelationModifiersOnCreate is a shorthand whose arguments (create, connect)
	// enable the matching create-time relation permissions.
	RelationModifiersOnCreate
	// RelationModifiersOnUpdate is a shorthand whose arguments (create, connect, update)
	// enable the matching update-time relation permissions.
	RelationModifiersOnUpdate
	RelationCanCreateOnCreate
	RelationCanConnectOnCreate
	RelationCanCreateOnUpdate
	RelationCanConnectOnUpdate
	RelationCanUpdateOnUpdate
	// CreateAPIResponse documents a create field as response-only.
	CreateAPIResponse
	// UpdateAPIResponse documents an update field as response-only.
	UpdateAPIResponse

	numDirectives
)

var names = [numDirectives]string{
	ReadOnly:                   "DtoReadOnly",
	EntityHidden:               "DtoEntityHidden",
	CreateHidden:               "DtoCreateHidden",
	UpdateHidden:               "DtoUpdateHidden",
	CreateOptional:             "DtoCreateOptional",
	UpdateOptional:             "DtoUpdateOptional",
	UpdateFull:                 "DtoUpdateFull",
	RelationRequired:           "DtoRelationRequired",
	RelationIncludeID:          "DtoRelationIncludeId",
	RelationModifiersOnCreate:  "DtoRelationModifiersOnCreate",
	RelationModifiersOnUpdate:  "DtoRelationModifiersOnUpdate",
	RelationCanCreateOnCreate:  "DtoRelationCanCreateOnCreate",
	RelationCanConnectOnCreate: "DtoRelationCanConnectOnCreate",
	RelationCanCreateOnUpdate:  "DtoRelationCanCreateOnUpdate",
	RelationCanConnectOnUpdate: "DtoRelationCanConnectOnUpdate",
	RelationCanUpdateOnUpdate:  "DtoRelationCanUpdateOnUpdate",
	CreateAPIResponse:          "DtoCreateApiResponse",
	UpdateAPIResponse:          "DtoUpdateApiResponse",
}

// Groups of directives checked together by the pipelines.
var (
	// OnCreate holds the relation permissions of the create artifact.
	OnCreate = []Directive{RelationCanCreateOnCreate, RelationCanConnectOnCreate}
	// OnUpdate holds the relation permissions of the update artifact.
	OnUpdate = []Directive{RelationCanCreateOnUpdate, RelationCanConnectOnUpdate, RelationCanUpdateOnUpdate}
)

// modifiers maps a modifier shorthand argument to the permission it enables.
var modifiers = map[Directive]map[string]Directive{
	RelationModifiersOnCreate: {
		"create":  RelationCanCreateOnCreate,
		"connect": RelationCanConnectOnCreate,
	},
	RelationModifiersOnUpdate: {
		"create":  RelationCanCreateOnUpdate,
		"connect": RelationCanConnectOnUpdate,
		"update":  RelationCanUpdateOnUpdate,
	},
}

// String returns the schema spelling of the directive.
func (d Directive) String() string {
	if d == 0 || d >= numDirectives {
		return fmt.Sprintf("Directive(%d)", uint8(d))
	}
	return names[d]
}

// Valid reports if d is a known directive.
func (d Directive) Valid() bool { return d > 0 && d < numDirectives }

// Parse returns the directive for the given schema name. A leading "@" is
// accepted.
func Parse(name string) (Directive, error) {
	name = strings.TrimPrefix(strings.TrimSpace(name), "@")
	for d := Directive(1); d < numDirectives; d++ {
		if names[d] == name {
			return d, nil
		}
	}
	return 0, fmt.Errorf("directive: unknown directive %q", name)
}

// Arg is the optional argument list of a directive.
type Arg []string

// Set maps directives present on a field to their arguments.
// A nil Set is valid for lookups.
type Set map[Directive]Arg

// NewSet returns a set holding the given directives without arguments.
func NewSet(ds ...Directive) Set {
	s := make(Set, len(ds))
	for _, d := range ds {
		s.Add(d)
	}
	return s
}

// Add adds d with its arguments. Modifier shorthands also add the
// permissions named by their arguments.
func (s Set) Add(d Directive, args ...string) Set {
	s[d] = Arg(args)
	if perms, ok := modifiers[d]; ok {
		for _, a := range args {
			if p, ok := perms[strings.ToLower(strings.TrimSpace(a))]; ok {
				if _, exists := s[p]; !exists {
					s[p] = nil
				}
			}
		}
	}
	return s
}

// Has reports if d is present.
func (s Set) Has(d Directive) bool {
	_, ok := s[d]
	return ok
}

// HasAny reports if at least one of ds is present.
func (s Set) HasAny(ds ...Directive) bool {
	return slices.ContainsFunc(ds, s.Has)
}

// Arg returns the argument list of d and whether d is present.
func (s Set) Arg(d Directive) (Arg, bool) {
	a, ok := s[d]
	return a, ok
}

// Names returns the schema names of the directives in the set, sorted.
func (s Set) Names() []string {
	ns := make([]string, 0, len(s))
	for d := range s {
		ns = append(ns, d.String())
	}
	sort.Strings(ns)
	return ns
}

// UnmarshalYAML decodes a set written either as a list of names or as a
// mapping from name to an optional scalar or list argument.
func (s *Set) UnmarshalYAML(node *yaml.Node) error {
	set := make(Set)
	switch node.Kind {
	case yaml.SequenceNode:
		for _, n := range node.Content {
			d, err := Parse(n.Value)
			if err != nil {
				return err
			}
			set.Add(d)
		}
	case yaml.MappingNode:
		for i := 0; i+1 < len(node.Content); i += 2 {
			d, err := Parse(node.Content[i].Value)
			if err != nil {
				return err
			}
			var args []string
			switch v := node.Content[i+1]; v.Kind {
			case yaml.SequenceNode:
				if err := v.Decode(&args); err != nil {
					return fmt.Errorf("directive %s: %w", d, err)
				}
			case yaml.ScalarNode:
				if v.Tag != "!!null" && v.Value != "" {
					args = []string{v.Value}
				}
			default:
				return fmt.Errorf("directive %s: unexpected argument kind %v", d, v.Kind)
			}
			set.Add(d, args...)
		}
	default:
		return fmt.Errorf("directive: expected list or mapping, got %v", node.Kind)
	}
	*s = set
	return nil
}

// MarshalYAML encodes the set as a mapping from name to argument list.
func (s Set) MarshalYAML() (any, error) {
	m := make(map[string][]string, len(s))
	for d, a := range s {
		m[d.String()] = a
	}
	return m, nil
}
