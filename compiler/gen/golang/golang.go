// Package golang renders DTO artifact records as Go structs.
package golang

import (
	"fmt"
	"slices"
	"strings"

	"github.com/dave/jennifer/jen"
	"github.com/go-openapi/inflect"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/syssam/dtogen/compiler/gen"
	"github.com/syssam/dtogen/compiler/load"
)

// Header is the header comment of generated files.
const Header = "Code generated by dtogen. DO NOT EDIT."

var rules = inflect.NewDefaultRuleset()

// acronyms are rendered upper case in Go identifiers.
var acronyms = map[string]string{
	"id":   "ID",
	"ids":  "IDs",
	"url":  "URL",
	"uri":  "URI",
	"api":  "API",
	"json": "JSON",
	"uuid": "UUID",
	"http": "HTTP",
	"ip":   "IP",
	"sql":  "SQL",
}

// Renderer renders records as Go structs of a single package.
type Renderer struct {
	pkg    string
	naming gen.Naming
}

// New returns a renderer for the given package name.
func New(pkg string) *Renderer {
	return &Renderer{pkg: pkg}
}

// WithNaming sets the naming conventions used to reference entity artifacts.
// It must match the naming of the Config the records were computed with.
func (r *Renderer) WithNaming(n gen.Naming) *Renderer {
	r.naming = n
	return r
}

// Name implements gen.Renderer.
func (*Renderer) Name() string { return "golang" }

// Filename implements gen.Renderer.
func (*Renderer) Filename(p *gen.Params) string {
	return rules.Underscore(p.Name) + ".go"
}

// Render implements gen.Renderer. The record struct is followed by the
// auxiliary types of the record.
func (r *Renderer) Render(p *gen.Params) (*jen.File, error) {
	if p == nil || p.Entity == nil {
		return nil, fmt.Errorf("golang: missing entity in record")
	}
	f := jen.NewFile(r.pkg)
	f.HeaderComment(Header)
	f.Commentf("%s is the %s artifact of %s.", p.Name, p.Kind, p.Entity.Name)
	f.Type().Id(p.Name).Struct(r.fields(p.Fields)...)
	for _, t := range p.ExtraTypes {
		f.Line()
		f.Commentf("%s is a relation input of %s.", t.Name, p.Name)
		f.Type().Id(t.Name).Struct(r.fields(t.Fields)...)
	}
	return f, nil
}

func (r *Renderer) fields(fields []*gen.ParamField) []jen.Code {
	code := make([]jen.Code, 0, len(fields))
	for _, f := range fields {
		s := jen.Id(GoName(f.Name)).Add(r.goType(f)).Tag(tags(f))
		if doc := comment(f); doc != "" {
			code = append(code, jen.Comment(doc))
		}
		code = append(code, s)
	}
	return code
}

func comment(f *gen.ParamField) string {
	doc := strings.TrimSpace(f.Doc)
	if f.ResponseOnly {
		if doc != "" {
			doc += " "
		}
		doc += "(response only)"
	}
	return doc
}

// goType returns the Go type of a field. Single structured values and
// optional or nullable scalars are pointers.
func (r *Renderer) goType(f *gen.ParamField) jen.Code {
	base, nillable := r.baseType(f)
	switch {
	case f.List:
		return jen.Index().Add(base)
	case nillable:
		return base
	case f.Object(), f.Nullable, !f.Required:
		return jen.Op("*").Add(base)
	default:
		return base
	}
}

// baseType returns the element type of a field and whether its zero value
// is nil.
func (r *Renderer) baseType(f *gen.ParamField) (jen.Code, bool) {
	switch {
	case f.Override != "":
		return jen.Id(f.Override), false
	case f.Coercion != "":
		return jen.Id(f.Coercion), false
	case f.Kind == load.KindObject || f.Kind == load.KindType:
		return jen.Id(r.naming.TypeName(gen.KindEntity, f.Type)), false
	case f.Kind == load.KindEnum:
		return jen.String(), false
	}
	switch f.Type {
	case "String", "Decimal":
		return jen.String(), false
	case "Boolean":
		return jen.Bool(), false
	case "Int":
		return jen.Int(), false
	case "BigInt":
		return jen.Int64(), false
	case "Float":
		return jen.Float64(), false
	case "DateTime":
		return jen.Qual("time", "Time"), false
	case "Json":
		return jen.Qual("encoding/json", "RawMessage"), true
	case "Bytes":
		return jen.Index().Byte(), true
	case "Object":
		return jen.Map(jen.String()).Any(), true
	default:
		return jen.Any(), true
	}
}

// tags returns the struct tags of a field.
func tags(f *gen.ParamField) map[string]string {
	name := f.Name
	if !f.Required {
		name += ",omitempty"
	}
	t := map[string]string{"json": name}
	if v := validateTag(f); v != "" {
		t["validate"] = v
	}
	return t
}

// validateTag maps the validator specs of a field to a validate tag.
// IsString, IsBoolean, IsInt, IsNumber, IsDateString and IsArray are
// enforced by the Go type of the field. IsEnum is left out as enum values
// are not part of the schema descriptor. Decimals are rendered as strings
// and validated as numeric.
func validateTag(f *gen.ParamField) string {
	var rs []string
	dive := func() {
		if f.List && !slices.Contains(rs, "dive") {
			rs = append(rs, "dive")
		}
	}
	for _, s := range f.Validators {
		switch s.Name {
		case "IsNotEmpty":
			rs = append(rs, "required")
		case "IsOptional":
			rs = append(rs, "omitempty")
		case "ValidateNested":
			dive()
		case "IsDecimal":
			dive()
			rs = append(rs, "numeric")
		}
	}
	return strings.Join(rs, ",")
}

// GoName returns the exported Go identifier of a field name.
func GoName(name string) string {
	words := strings.Split(rules.Underscore(name), "_")
	// Casers are stateful and renderers run in parallel.
	title := cases.Title(language.Und, cases.NoLower)
	var b strings.Builder
	for _, w := range words {
		if w == "" {
			continue
		}
		if a, ok := acronyms[w]; ok {
			b.WriteString(a)
			continue
		}
		b.WriteString(title.String(w))
	}
	return b.String()
}
