package gen

import (
	"slices"

	"github.com/syssam/dtogen/compiler/load"
	"github.com/syssam/dtogen/schema/directive"
)

// RelationScalars returns the foreign-key scalars of the given fields, mapped
// to the names of the relation fields owning them.
func RelationScalars(fields []*load.Field) map[string][]string {
	idx := make(map[string][]string)
	for _, f := range fields {
		if !IsRelation(f) {
			continue
		}
		for _, fk := range f.RelationFromFields {
			if !slices.Contains(idx[fk], f.Name) {
				idx[fk] = append(idx[fk], f.Name)
			}
		}
	}
	return idx
}

// anyOwnerRequired reports if any of the named relation fields is required,
// either by the schema or by directive.
func anyOwnerRequired(e *load.Entity, owners []string) bool {
	for _, name := range owners {
		f := e.Field(name)
		if f != nil && (IsRequired(f) || HasDirective(f, directive.RelationRequired)) {
			return true
		}
	}
	return false
}

// relationMode describes how relation inputs are synthesized for an artifact.
type relationMode struct {
	kind Kind
	// create, connect and update are the directives permitting each
	// operation. The zero Directive disables the operation.
	create, connect, update directive.Directive
	// wrapLists wraps list relations in a composite even with a single
	// operation enabled.
	wrapLists bool
}

// perms returns the permission directives of the mode.
func (m relationMode) perms() []directive.Directive {
	var ds []directive.Directive
	for _, d := range []directive.Directive{m.create, m.connect, m.update} {
		if d.Valid() {
			ds = append(ds, d)
		}
	}
	return ds
}

var (
	createMode = relationMode{
		kind:    KindCreate,
		create:  directive.RelationCanCreateOnCreate,
		connect: directive.RelationCanConnectOnCreate,
	}
	updateMode = relationMode{
		kind:      KindUpdate,
		create:    directive.RelationCanCreateOnUpdate,
		connect:   directive.RelationCanConnectOnUpdate,
		update:    directive.RelationCanUpdateOnUpdate,
		wrapLists: true,
	}
)

// relationInput is the input shape of a relation field.
type relationInput struct {
	// Type is the type name replacing the declared type of the field.
	Type string
	// Composite reports if Type names a synthesized composite.
	Composite   bool
	Imports     []*Import
	ExtraTypes  []*ExtraType
	ExtraModels []string
	// Validators holds the validator names used by the composite fields.
	Validators []string
}

// operation is one enabled relation operation.
type operation struct {
	name string
	kind Kind
}

// synthesizeRelation resolves the input shape of a relation field of owner.
// It fails with a RelationError if the related entity is not in all.
func synthesizeRelation(f *load.Field, owner *load.Entity, all []*load.Entity, c *Config, mode relationMode) (*relationInput, error) {
	target := lookupEntity(all, f.Type)
	if target == nil {
		return nil, NewRelationError(owner.Name, f.Name, f.Type)
	}
	var ops []operation
	if f.Has(mode.create) {
		ops = append(ops, operation{name: "create", kind: KindCreate})
	}
	if f.Has(mode.connect) {
		ops = append(ops, operation{name: "connect", kind: KindConnect})
	}
	if f.Has(mode.update) {
		ops = append(ops, operation{name: "update", kind: KindUpdate})
	}
	in := &relationInput{}
	if len(ops) == 0 {
		return in, nil
	}
	n := c.Naming
	if len(ops) == 1 && !(mode.wrapLists && f.List) {
		in.Type = n.TypeName(ops[0].kind, target.Name)
		if imp := artifactImport(n, owner, mode.kind, target, ops[0].kind); imp != nil {
			in.Imports = append(in.Imports, imp)
		}
		return in, nil
	}
	in.Composite = true
	in.Type = n.TypeName(mode.kind, pascal(owner.Name)+pascal(f.Name)+"RelationInput")
	extra := &ExtraType{Name: in.Type}
	for _, op := range ops {
		sub := &ParamField{
			Name:     op.name,
			Type:     f.Type,
			Kind:     load.KindObject,
			List:     f.List,
			Override: n.TypeName(op.kind, target.Name),
		}
		if imp := artifactImport(n, owner, mode.kind, target, op.kind); imp != nil {
			in.Imports = append(in.Imports, imp)
		}
		if c.validation() {
			sub.Validators = validatorSpecs(sub, sub.Override)
			for _, name := range specNames(sub.Validators) {
				if !slices.Contains(in.Validators, name) {
					in.Validators = append(in.Validators, name)
				}
			}
		}
		if c.documentation() {
			sub.APIProps = apiPropertySpecs(sub, sub.Override)
			in.ExtraModels = append(in.ExtraModels, sub.Override)
		}
		extra.Fields = append(extra.Fields, sub)
	}
	in.ExtraTypes = append(in.ExtraTypes, extra)
	return in, nil
}

// lookupEntity returns the entity with the given name, or nil.
func lookupEntity(all []*load.Entity, name string) *load.Entity {
	for _, e := range all {
		if e.Name == name {
			return e
		}
	}
	return nil
}
