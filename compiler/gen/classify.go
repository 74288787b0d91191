package gen

import (
	"github.com/syssam/dtogen/compiler/load"
	"github.com/syssam/dtogen/schema/directive"
)

// =============================================================================
// Field classification
// =============================================================================

// IsRelation reports if the field references another entity.
func IsRelation(f *load.Field) bool { return f.Kind == load.KindObject }

// IsType reports if the field holds an embedded structured type.
func IsType(f *load.Field) bool { return f.Kind == load.KindType }

// IsEnum reports if the field is an enum.
func IsEnum(f *load.Field) bool { return f.Kind == load.KindEnum }

// IsScalar reports if the field is a primitive.
func IsScalar(f *load.Field) bool { return f.Kind == load.KindScalar }

// IsID reports if the field is the entity identifier.
func IsID(f *load.Field) bool { return f.ID }

// IsIDWithDefault reports if the field is an identifier generated by default.
func IsIDWithDefault(f *load.Field) bool { return f.ID && f.Default }

// IsUnique reports if the field identifies a record on its own.
func IsUnique(f *load.Field) bool { return f.Unique }

// IsReadOnly reports if the field is read-only in the schema or marked so by directive.
func IsReadOnly(f *load.Field) bool { return f.ReadOnly || f.Has(directive.ReadOnly) }

// IsRequired reports if the schema requires the field.
func IsRequired(f *load.Field) bool { return f.Required }

// IsRequiredWithDefault reports if the field is required but has a default value.
func IsRequiredWithDefault(f *load.Field) bool { return f.Required && f.Default }

// IsUpdatedAt reports if the field is an automatic update timestamp.
func IsUpdatedAt(f *load.Field) bool { return f.UpdatedAt }

// HasDirective reports if the field carries d.
func HasDirective(f *load.Field, d directive.Directive) bool { return f.Has(d) }

// HasAnyDirective reports if the field carries any of ds.
func HasAnyDirective(f *load.Field, ds ...directive.Directive) bool { return f.HasAny(ds...) }

// scalar type names.
const (
	typeString   = "String"
	typeBoolean  = "Boolean"
	typeInt      = "Int"
	typeBigInt   = "BigInt"
	typeFloat    = "Float"
	typeDecimal  = "Decimal"
	typeDateTime = "DateTime"
	typeJSON     = "Json"
	typeBytes    = "Bytes"
	typeObject   = "Object"
)

// substitutes maps scalar types that need the client module to their
// dependency-free equivalents.
var substitutes = map[string]string{
	typeDecimal: typeFloat,
	typeJSON:    typeObject,
}

// needsClient reports if a scalar type is declared by the client module.
func needsClient(typ string) bool {
	return typ == typeDecimal || typ == typeJSON
}
