package gen

import (
	"slices"

	"github.com/syssam/dtogen/compiler/load"
)

// Import sources of the annotation libraries.
const (
	ValidatorModule   = "class-validator"
	TransformerModule = "class-transformer"
	DocModule         = "@nestjs/swagger"
)

// Names imported from the annotation libraries.
const (
	exposeName          = "Expose"
	typeName            = "Type"
	apiPropertyName     = "ApiProperty"
	apiResponseName     = "ApiResponseProperty"
	apiExtraModelsName  = "ApiExtraModels"
	clientNamespaceName = "Prisma"
)

// Import is an import statement: a source and the names imported from it.
type Import struct {
	From  string   `yaml:"from"`
	Names []string `yaml:"names,omitempty"`
}

// CanonicalizeImports merges the given import groups into one record per
// source. Records keep the position of the first occurrence of their source
// and hold the union of the requested names in first-seen order. Callers pass
// groups in precedence order to keep the output stable.
func CanonicalizeImports(groups ...[]*Import) []*Import {
	var (
		out []*Import
		idx = make(map[string]*Import)
	)
	for _, group := range groups {
		for _, imp := range group {
			if imp == nil {
				continue
			}
			merged, ok := idx[imp.From]
			if !ok {
				merged = &Import{From: imp.From}
				idx[imp.From] = merged
				out = append(out, merged)
			}
			for _, name := range imp.Names {
				if !slices.Contains(merged.Names, name) {
					merged.Names = append(merged.Names, name)
				}
			}
		}
	}
	return out
}

// ClientImports returns the client-module imports required by the scalar and
// enum types of the given fields.
func ClientImports(fields []*ParamField, c *Config) []*Import {
	c = c.orDefault()
	var names []string
	for _, f := range fields {
		switch {
		case f.Kind == load.KindEnum:
			if !slices.Contains(names, f.Type) {
				names = append(names, f.Type)
			}
		case f.Kind == load.KindScalar && needsClient(f.Type):
			if !slices.Contains(names, clientNamespaceName) {
				names = append(names, clientNamespaceName)
			}
		}
	}
	if len(names) == 0 {
		return nil
	}
	return []*Import{{From: c.clientImportPath(), Names: names}}
}

// libraryImports returns the imports of the annotation libraries used by an
// artifact, in the order: validator, transformer, documentation.
func libraryImports(validators []string, transform bool, api, response bool, extraModels bool) []*Import {
	var (
		imports  []*Import
		validate []string
	)
	for _, name := range validators {
		if name == typeName {
			transform = true
			continue
		}
		validate = append(validate, name)
	}
	if len(validate) > 0 {
		imports = append(imports, &Import{From: ValidatorModule, Names: validate})
	}
	if transform {
		imports = append(imports, &Import{From: TransformerModule, Names: []string{typeName}})
	}
	var doc []string
	if api {
		doc = append(doc, apiPropertyName)
	}
	if response {
		doc = append(doc, apiResponseName)
	}
	if extraModels {
		doc = append(doc, apiExtraModelsName)
	}
	if len(doc) > 0 {
		imports = append(imports, &Import{From: DocModule, Names: doc})
	}
	return imports
}
