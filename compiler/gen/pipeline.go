package gen

import (
	"fmt"
	"slices"

	"github.com/syssam/dtogen/compiler/load"
	"github.com/syssam/dtogen/schema/directive"
)

// policy parameterizes the field pipeline for one artifact kind.
type policy struct {
	kind Kind
	// hidden drops the field from the artifact.
	hidden directive.Directive
	// optional keeps a generated field as non-required.
	optional directive.Directive
	// response documents the field as response-only.
	response directive.Directive
	// relations is nil for artifacts holding relations as entity references.
	relations *relationMode
	// inputs drops read-only fields and tracked foreign keys.
	inputs bool
	// includeID lets RelationIncludeID clear the read-only flag of a tracked
	// foreign key.
	includeID bool
	// required is the base requiredness of a field.
	required func(*load.Field) bool
	// generated reports fields whose value is produced by the database.
	generated func(*load.Field) bool
	// foundation returns the imports every artifact of the kind holds.
	foundation func(*Config) []*Import
	// identifies selects the only fields of the artifact. They are required
	// when a single field qualifies, optional alternatives otherwise.
	identifies func(*load.Field) bool
}

var policies = map[Kind]*policy{
	KindEntity: {
		kind:     KindEntity,
		hidden:   directive.EntityHidden,
		required: func(*load.Field) bool { return true },
		foundation: func(*Config) []*Import {
			return []*Import{{From: TransformerModule, Names: []string{exposeName}}}
		},
	},
	KindCreate: {
		kind:      KindCreate,
		hidden:    directive.CreateHidden,
		optional:  directive.CreateOptional,
		response:  directive.CreateAPIResponse,
		relations: &createMode,
		inputs:    true,
		includeID: true,
		required:  IsRequired,
		generated: func(f *load.Field) bool {
			return IsIDWithDefault(f) || IsUpdatedAt(f) || IsRequiredWithDefault(f)
		},
	},
	KindUpdate: {
		kind:      KindUpdate,
		hidden:    directive.UpdateHidden,
		optional:  directive.UpdateOptional,
		response:  directive.UpdateAPIResponse,
		relations: &updateMode,
		inputs:    true,
		required:  func(*load.Field) bool { return false },
		generated: func(f *load.Field) bool {
			return IsID(f) || IsUpdatedAt(f) || IsRequiredWithDefault(f)
		},
	},
	KindConnect: {
		kind:     KindConnect,
		required: func(*load.Field) bool { return false },
		identifies: func(f *load.Field) bool {
			return (IsScalar(f) || IsEnum(f)) && (IsID(f) || IsUnique(f))
		},
	},
}

// EntityParams computes the entity (read-model) artifact of e.
func EntityParams(e *load.Entity, all []*load.Entity, c *Config) (*Params, error) {
	return ComputeParams(KindEntity, e, all, c)
}

// CreateParams computes the create artifact of e.
func CreateParams(e *load.Entity, all []*load.Entity, c *Config) (*Params, error) {
	return ComputeParams(KindCreate, e, all, c)
}

// UpdateParams computes the update artifact of e.
func UpdateParams(e *load.Entity, all []*load.Entity, c *Config) (*Params, error) {
	return ComputeParams(KindUpdate, e, all, c)
}

// ConnectParams computes the connect-by-identifier artifact of e.
func ConnectParams(e *load.Entity, all []*load.Entity, c *Config) (*Params, error) {
	return ComputeParams(KindConnect, e, all, c)
}

// ComputeParams computes the artifact of kind k of e. The entity set all is
// only read. The returned error is a *RelationError if a relation or composite
// type field references an entity missing from all.
func ComputeParams(k Kind, e *load.Entity, all []*load.Entity, c *Config) (*Params, error) {
	p, ok := policies[k]
	if !ok {
		return nil, fmt.Errorf("dtogen: unknown artifact kind %s", k)
	}
	b := &builder{
		policy: p,
		cfg:    c.orDefault(),
		owner:  e,
		all:    all,
		fks:    RelationScalars(e.Fields),
	}
	if p.identifies != nil {
		for _, f := range e.Fields {
			if p.identifies(f) {
				b.identifiers++
			}
		}
	}
	for _, f := range e.Fields {
		if err := b.field(f); err != nil {
			return nil, err
		}
	}
	return b.params(), nil
}

// builder accumulates the output of one pipeline run.
type builder struct {
	*policy
	cfg   *Config
	owner *load.Entity
	all   []*load.Entity
	fks   map[string][]string
	// identifiers counts the fields selected by identifies.
	identifiers int

	fields      []*ParamField
	refs        []*Import
	extraTypes  []*ExtraType
	extraModels []string
	validators  []string
	// annotation symbols in use
	useTransform bool
	useAPI       bool
	useResponse  bool
}

// field folds f into the artifact.
func (b *builder) field(f *load.Field) error {
	if f.Has(b.hidden) {
		return nil
	}
	ov := &Override{
		Required: b.required(f),
		Nullable: !IsRequired(f),
		ReadOnly: IsReadOnly(f),
		List:     f.List,
	}
	if b.identifies != nil {
		if !b.identifies(f) {
			return nil
		}
		ov.Required = b.identifiers == 1
		ov.Nullable = false
		b.add(f, ov, "")
		return nil
	}
	owners, tracked := b.fks[f.Name]
	if b.inputs {
		if tracked && b.includeID && f.Has(directive.RelationIncludeID) {
			ov.ReadOnly = false
		}
		if ov.ReadOnly {
			return nil
		}
		if tracked && !f.Has(directive.RelationIncludeID) {
			return nil
		}
	}
	var thunk string
	switch {
	case IsRelation(f):
		keep, err := b.relation(f, ov)
		if err != nil || !keep {
			return err
		}
		thunk = ov.Type
		if b.kind == KindEntity {
			thunk = b.cfg.Naming.TypeName(KindEntity, f.Type)
		}
	case IsType(f):
		if err := b.nestedType(f, ov); err != nil {
			return err
		}
		thunk = ov.Coercion
		if b.kind == KindEntity {
			thunk = b.cfg.Naming.TypeName(KindEntity, f.Type)
		}
	case tracked && b.kind == KindEntity:
		ov.Required = true
		ov.Nullable = !anyOwnerRequired(b.owner, owners)
	}
	if !IsRelation(f) && b.generated != nil && b.generated(f) {
		if !f.Has(b.optional) {
			return nil
		}
		ov.Required = false
	}
	if f.Has(b.optional) {
		ov.Required = false
	}
	ov.ResponseOnly = f.Has(b.response)
	b.add(f, ov, thunk)
	return nil
}

// relation resolves the override of a relation field. It reports false if
// the field is dropped from the artifact.
func (b *builder) relation(f *load.Field, ov *Override) (bool, error) {
	ov.Required = f.Has(directive.RelationRequired)
	if b.relations == nil {
		target := lookupEntity(b.all, f.Type)
		if target == nil {
			return false, NewRelationError(b.owner.Name, f.Name, f.Type)
		}
		switch {
		case f.List, IsRequired(f):
			ov.Nullable = false
		default:
			ov.Nullable = !ov.Required
		}
		b.ref(artifactImport(b.cfg.Naming, b.owner, b.kind, target, KindEntity))
		return true, nil
	}
	if !f.HasAny(b.relations.perms()...) {
		return false, nil
	}
	in, err := synthesizeRelation(f, b.owner, b.all, b.cfg, *b.relations)
	if err != nil {
		return false, err
	}
	ov.Type = in.Type
	ov.Nullable = false
	if in.Composite {
		ov.List = false
	}
	if f.List || b.kind == KindUpdate {
		ov.Required = false
	}
	for _, imp := range in.Imports {
		b.ref(imp)
	}
	b.extraTypes = append(b.extraTypes, in.ExtraTypes...)
	b.extraModels = appendUnique(b.extraModels, in.ExtraModels...)
	b.validators = appendUnique(b.validators, in.Validators...)
	return true, nil
}

// nestedType resolves the artifact a composite type field is instantiated as.
func (b *builder) nestedType(f *load.Field, ov *Override) error {
	target := lookupEntity(b.all, f.Type)
	if target == nil {
		return NewRelationError(b.owner.Name, f.Name, f.Type)
	}
	k := b.kind
	if k == KindUpdate && f.Has(directive.UpdateFull) {
		k = KindCreate
	}
	if k != KindEntity {
		ov.Coercion = b.cfg.Naming.TypeName(k, target.Name)
	}
	b.ref(artifactImport(b.cfg.Naming, b.owner, b.kind, target, k))
	return nil
}

// add appends the resolved field and its annotations.
func (b *builder) add(f *load.Field, ov *Override, thunk string) {
	pf := &ParamField{
		Name:         f.Name,
		Type:         f.Type,
		Kind:         f.Kind,
		List:         ov.List,
		Required:     ov.Required,
		Nullable:     ov.Nullable,
		Override:     ov.Type,
		Coercion:     ov.Coercion,
		ResponseOnly: ov.ResponseOnly,
		Doc:          f.Doc,
	}
	if b.cfg.NoDependencies && IsScalar(f) {
		if sub, ok := substitutes[f.Type]; ok {
			pf.Type = sub
		}
	}
	if b.kind != KindEntity && b.cfg.validation() {
		hint := ov.Type
		if hint == "" {
			hint = ov.Coercion
		}
		if hint == "" {
			hint = b.cfg.Naming.TypeName(b.kind, f.Type)
		}
		pf.Validators = validatorSpecs(pf, hint)
		b.validators = appendUnique(b.validators, specNames(pf.Validators)...)
	}
	if b.cfg.documentation() {
		pf.APIProps = apiPropertySpecs(pf, thunk)
		if pf.ResponseOnly {
			b.useResponse = true
		} else {
			b.useAPI = true
		}
		if b.kind == KindEntity && thunk != "" {
			b.useTransform = true
		}
	}
	b.fields = append(b.fields, pf)
}

// ref registers a cross-entity import.
func (b *builder) ref(imp *Import) {
	if imp != nil {
		b.refs = append(b.refs, imp)
	}
}

// params assembles the artifact record.
func (b *builder) params() *Params {
	n := b.cfg.Naming
	var extraModels []string
	if b.cfg.documentation() {
		extraModels = b.extraModels
	}
	return &Params{
		Kind:   b.kind,
		Entity: b.owner,
		Name:   n.TypeName(b.kind, b.owner.Name),
		File:   n.FileName(b.kind, b.owner.Name),
		Fields: b.fields,
		Imports: CanonicalizeImports(
			b.foundationImports(),
			ClientImports(b.fields, b.cfg),
			libraryImports(b.validators, b.useTransform, b.useAPI, b.useResponse, len(extraModels) > 0),
			b.refs,
		),
		ExtraTypes:  b.extraTypes,
		ExtraModels: extraModels,
		Validators:  b.validators,
	}
}

func (b *builder) foundationImports() []*Import {
	if b.foundation == nil {
		return nil
	}
	return b.foundation(b.cfg)
}

// appendUnique appends the values missing from s.
func appendUnique(s []string, vs ...string) []string {
	for _, v := range vs {
		if !slices.Contains(s, v) {
			s = append(s, v)
		}
	}
	return s
}
