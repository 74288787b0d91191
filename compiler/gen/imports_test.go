package gen

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/syssam/dtogen/compiler/load"
)

func TestCanonicalizeImports(t *testing.T) {
	t.Run("merges same source", func(t *testing.T) {
		got := CanonicalizeImports(
			[]*Import{{From: ValidatorModule, Names: []string{"IsString"}}},
			[]*Import{
				{From: "../book/book.entity", Names: []string{"Book"}},
				{From: ValidatorModule, Names: []string{"IsInt", "IsString"}},
			},
		)
		assert.Equal(t, []*Import{
			{From: ValidatorModule, Names: []string{"IsString", "IsInt"}},
			{From: "../book/book.entity", Names: []string{"Book"}},
		}, got)
	})

	t.Run("idempotent", func(t *testing.T) {
		in := []*Import{
			{From: TransformerModule, Names: []string{"Expose"}},
			{From: DocModule, Names: []string{"ApiProperty"}},
			{From: TransformerModule, Names: []string{"Type", "Expose"}},
			nil,
		}
		once := CanonicalizeImports(in)
		twice := CanonicalizeImports(once)
		assert.Equal(t, once, twice)
		assert.Len(t, once, 2)
	})

	t.Run("does not alias input", func(t *testing.T) {
		in := []*Import{{From: DocModule, Names: []string{"ApiProperty"}}}
		out := CanonicalizeImports(in, []*Import{{From: DocModule, Names: []string{"ApiExtraModels"}}})
		assert.Equal(t, []string{"ApiProperty"}, in[0].Names)
		assert.Equal(t, []string{"ApiProperty", "ApiExtraModels"}, out[0].Names)
	})

	t.Run("empty", func(t *testing.T) {
		assert.Empty(t, CanonicalizeImports())
		assert.Empty(t, CanonicalizeImports(nil, []*Import{}))
	})
}

func TestClientImports(t *testing.T) {
	fields := []*ParamField{
		{Name: "role", Type: "Role", Kind: load.KindEnum},
		{Name: "price", Type: "Decimal"},
		{Name: "meta", Type: "Json"},
		{Name: "status", Type: "Status", Kind: load.KindEnum},
		{Name: "other", Type: "Role", Kind: load.KindEnum},
		{Name: "author", Type: "Author", Kind: load.KindObject},
	}
	assert.Equal(t, []*Import{
		{From: DefaultClientImportPath, Names: []string{"Role", "Prisma", "Status"}},
	}, ClientImports(fields, nil))
	assert.Equal(t, "../client", ClientImports(fields, &Config{ClientImportPath: "../client"})[0].From)
	assert.Nil(t, ClientImports([]*ParamField{{Name: "name", Type: "String"}}, nil))
}

func TestLibraryImports(t *testing.T) {
	tests := []struct {
		name       string
		validators []string
		transform  bool
		api        bool
		response   bool
		extra      bool
		want       []*Import
	}{
		{name: "none"},
		{
			name:       "type goes to transformer",
			validators: []string{"IsOptional", "Type", "ValidateNested"},
			want: []*Import{
				{From: ValidatorModule, Names: []string{"IsOptional", "ValidateNested"}},
				{From: TransformerModule, Names: []string{"Type"}},
			},
		},
		{
			name:     "documentation",
			api:      true,
			response: true,
			extra:    true,
			want: []*Import{
				{From: DocModule, Names: []string{"ApiProperty", "ApiResponseProperty", "ApiExtraModels"}},
			},
		},
		{
			name:      "transform only",
			transform: true,
			want:      []*Import{{From: TransformerModule, Names: []string{"Type"}}},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, libraryImports(tt.validators, tt.transform, tt.api, tt.response, tt.extra))
		})
	}
}

func TestImportOrder(t *testing.T) {
	// Two fields of different kinds needing validators: one record, before
	// cross-entity imports.
	p := &Params{}
	fields := []*ParamField{
		{Name: "name", Type: "String", Required: true},
		{Name: "role", Type: "Role", Kind: load.KindEnum},
	}
	var validators []string
	for _, f := range fields {
		validators = appendUnique(validators, specNames(validatorSpecs(f, ""))...)
	}
	p.Imports = CanonicalizeImports(
		libraryImports(validators, false, false, false, false),
		[]*Import{{From: "../role/role.entity", Names: []string{"RoleEntity"}}},
	)
	assert.Equal(t, []*Import{
		{From: ValidatorModule, Names: []string{"IsNotEmpty", "IsString", "IsOptional", "IsEnum"}},
		{From: "../role/role.entity", Names: []string{"RoleEntity"}},
	}, p.Imports)
}
