package load

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/syssam/dtogen/schema/directive"
)

func TestLoadFile(t *testing.T) {
	s, err := LoadFile(filepath.Join("testdata", "blog.yaml"))
	require.NoError(t, err)
	require.Len(t, s.Entities, 2)

	author, ok := s.Lookup("Author")
	require.True(t, ok)
	require.Equal(t, "src/author/dto", author.Output.ConnectDir())
	require.Len(t, author.Fields, 3)
	books := author.Fields[2]
	require.Equal(t, KindObject, books.Kind)
	require.True(t, books.List)
	require.True(t, books.HasAny(directive.OnCreate...))
	require.True(t, books.Has(directive.RelationCanConnectOnCreate))

	book, ok := s.Lookup("Book")
	require.True(t, ok)
	require.Equal(t, []string{"authorId"}, book.Fields[3].RelationFromFields)
	require.Equal(t, KindScalar, book.Fields[1].Kind)

	var gen struct {
		ClassValidation bool `yaml:"classValidation"`
	}
	require.NoError(t, s.Generator.Decode(&gen))
	require.True(t, gen.ClassValidation)

	_, ok = s.Lookup("Missing")
	require.False(t, ok)
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name, doc, err string
	}{
		{
			name: "redeclared entity",
			doc:  "entities: [{name: A}, {name: A}]",
			err:  `load: entity "A" redeclared`,
		},
		{
			name: "empty entity name",
			doc:  "entities: [{fields: []}]",
			err:  "load: entity name cannot be empty",
		},
		{
			name: "missing field type",
			doc:  "entities: [{name: A, fields: [{name: f}]}]",
			err:  "load: missing type for field A.f",
		},
		{
			name: "redeclared field",
			doc:  "entities: [{name: A, fields: [{name: f, type: Int}, {name: f, type: Int}]}]",
			err:  `load: field "f" redeclared for entity "A"`,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseBytes([]byte(tt.doc))
			require.EqualError(t, err, tt.err)
		})
	}

	_, err := ParseBytes([]byte("entities: [{name: A, fields: [{name: f, type: Int, kind: blob}]}]"))
	require.ErrorContains(t, err, `unknown field kind "blob"`)
	_, err = ParseBytes([]byte("entities: [{name: A, bogus: true}]"))
	require.Error(t, err)
}

func TestParseJSON(t *testing.T) {
	s, err := ParseBytes([]byte(`{"entities": [{"name": "Tag", "fields": [{"name": "label", "type": "String", "directives": ["DtoCreateOptional"]}]}]}`))
	require.NoError(t, err)
	require.True(t, s.Entities[0].Fields[0].Has(directive.CreateOptional))

	s, err = ParseBytes(nil)
	require.NoError(t, err)
	require.Empty(t, s.Entities)
}

func TestKind(t *testing.T) {
	require.Equal(t, "enum", KindEnum.String())
	require.Equal(t, "Kind(9)", Kind(9).String())
}
