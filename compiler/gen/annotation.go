package gen

import (
	"strconv"
	"strings"

	"github.com/syssam/dtogen/compiler/load"
)

// Validator names of the validation library.
const (
	validIsNotEmpty     = "IsNotEmpty"
	validIsOptional     = "IsOptional"
	validIsArray        = "IsArray"
	validIsString       = "IsString"
	validIsBoolean      = "IsBoolean"
	validIsInt          = "IsInt"
	validIsNumber       = "IsNumber"
	validIsDecimal      = "IsDecimal"
	validIsDateString   = "IsDateString"
	validIsEnum         = "IsEnum"
	validValidateNested = "ValidateNested"
)

// eachOption applies a validator to every element of a list.
const eachOption = "{ each: true }"

// scalarValidators maps scalar types to their validator.
var scalarValidators = map[string]string{
	typeString:   validIsString,
	typeBoolean:  validIsBoolean,
	typeInt:      validIsInt,
	typeBigInt:   validIsInt,
	typeFloat:    validIsNumber,
	typeDecimal:  validIsDecimal,
	typeDateTime: validIsDateString,
}

// validatorSpecs returns the validator specs of a field. The hint names the
// type nested values are transformed into.
func validatorSpecs(f *ParamField, hint string) []Spec {
	var (
		specs []Spec
		each  string
	)
	if f.Required {
		specs = append(specs, Spec{Name: validIsNotEmpty})
	} else {
		specs = append(specs, Spec{Name: validIsOptional})
	}
	if f.List {
		specs = append(specs, Spec{Name: validIsArray})
		each = eachOption
	}
	switch {
	case f.Object():
		specs = append(specs,
			Spec{Name: validValidateNested, Value: each, Verbatim: true},
			Spec{Name: typeName, Value: thunkPrefix + strings.TrimPrefix(hint, thunkPrefix), Verbatim: true},
		)
	case f.Kind == load.KindEnum:
		value := f.Type
		if each != "" {
			value += ", " + each
		}
		specs = append(specs, Spec{Name: validIsEnum, Value: value, Verbatim: true})
	default:
		if name, ok := scalarValidators[f.Type]; ok {
			specs = append(specs, Spec{Name: name, Value: scalarArgs(name, each), Verbatim: true})
		}
	}
	return specs
}

// scalarArgs returns the arguments of a scalar validator. Validators with
// their own options take them before the validation options.
func scalarArgs(name, each string) string {
	switch name {
	case validIsNumber, validIsDecimal, validIsDateString:
		if each == "" {
			return ""
		}
		return "{}, " + each
	default:
		return each
	}
}

// scalarSchema holds the documented type and format of a scalar.
type scalarSchema struct {
	typ, format string
}

var scalarSchemas = map[string]scalarSchema{
	typeString:   {typ: "string"},
	typeBoolean:  {typ: "boolean"},
	typeInt:      {typ: "integer", format: "int32"},
	typeBigInt:   {typ: "integer", format: "int64"},
	typeFloat:    {typ: "number", format: "float"},
	typeDecimal:  {typ: "number", format: "double"},
	typeDateTime: {typ: "string", format: "date-time"},
	typeBytes:    {typ: "string", format: "byte"},
	typeObject:   {typ: "object"},
}

// apiPropertySpecs returns the documentation annotation properties of a
// field. A non-empty thunk is documented as the lazily resolved type.
func apiPropertySpecs(f *ParamField, thunk string) []Spec {
	var specs []Spec
	if f.Doc != "" {
		specs = append(specs, Spec{Name: "description", Value: f.Doc})
	}
	switch {
	case thunk != "":
		specs = append(specs, Spec{Name: "type", Value: thunkPrefix + strings.TrimPrefix(thunk, thunkPrefix), Verbatim: true})
	case f.Kind == load.KindEnum:
		specs = append(specs,
			Spec{Name: "enum", Value: f.Type, Verbatim: true},
			Spec{Name: "enumName", Value: f.Type},
		)
	case f.Kind == load.KindScalar:
		if s, ok := scalarSchemas[f.Type]; ok {
			specs = append(specs, Spec{Name: "type", Value: s.typ})
			if s.format != "" {
				specs = append(specs, Spec{Name: "format", Value: s.format})
			}
		}
	}
	if f.List {
		specs = append(specs, Spec{Name: "isArray", Value: strconv.FormatBool(true), Verbatim: true})
	}
	if !f.Required {
		specs = append(specs, Spec{Name: "required", Value: strconv.FormatBool(false), Verbatim: true})
	}
	if f.Nullable {
		specs = append(specs, Spec{Name: "nullable", Value: strconv.FormatBool(true), Verbatim: true})
	}
	return specs
}

// specNames returns the names of the given specs.
func specNames(specs []Spec) []string {
	names := make([]string, 0, len(specs))
	for _, s := range specs {
		names = append(names, s.Name)
	}
	return names
}
