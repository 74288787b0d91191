package gen

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/syssam/dtogen/compiler/load"
	"github.com/syssam/dtogen/schema/directive"
)

func TestRelationScalars(t *testing.T) {
	fields := []*load.Field{
		{Name: "authorId", Type: "Int"},
		{Name: "editorId", Type: "Int"},
		{Name: "author", Type: "User", Kind: load.KindObject, RelationFromFields: []string{"authorId"}},
		{Name: "editor", Type: "User", Kind: load.KindObject, RelationFromFields: []string{"editorId", "authorId"}},
		// Scalars never own foreign keys.
		{Name: "title", Type: "String", RelationFromFields: []string{"authorId"}},
	}
	assert.Equal(t, map[string][]string{
		"authorId": {"author", "editor"},
		"editorId": {"editor"},
	}, RelationScalars(fields))
	assert.Empty(t, RelationScalars(nil))
}

func TestAnyOwnerRequired(t *testing.T) {
	e := &load.Entity{
		Name: "Post",
		Fields: []*load.Field{
			{Name: "author", Type: "User", Kind: load.KindObject},
			{Name: "editor", Type: "User", Kind: load.KindObject, Required: true},
			{Name: "reviewer", Type: "User", Kind: load.KindObject, Directives: directive.NewSet(directive.RelationRequired)},
		},
	}
	assert.False(t, anyOwnerRequired(e, []string{"author"}))
	assert.True(t, anyOwnerRequired(e, []string{"author", "editor"}))
	assert.True(t, anyOwnerRequired(e, []string{"reviewer"}))
	assert.False(t, anyOwnerRequired(e, []string{"missing"}))
}

func TestSynthesizeRelation(t *testing.T) {
	all := blog()
	author, book := all[0], all[1]
	cfg := &Config{ClassValidation: true}

	t.Run("single operation", func(t *testing.T) {
		f := &load.Field{Name: "author", Type: "Author", Kind: load.KindObject, Directives: directive.NewSet(directive.RelationCanConnectOnCreate)}
		in, err := synthesizeRelation(f, book, all, cfg, createMode)
		require.NoError(t, err)
		assert.False(t, in.Composite)
		assert.Equal(t, "ConnectAuthorDto", in.Type)
		assert.Equal(t, []*Import{{From: "../../author/dto/connect-author.dto", Names: []string{"ConnectAuthorDto"}}}, in.Imports)
		assert.Empty(t, in.ExtraTypes)
		assert.Empty(t, in.Validators)
	})

	t.Run("composite", func(t *testing.T) {
		f := &load.Field{
			Name: "author", Type: "Author", Kind: load.KindObject,
			Directives: directive.Set{}.Add(directive.RelationModifiersOnUpdate, "create", "connect", "update"),
		}
		in, err := synthesizeRelation(f, book, all, cfg, updateMode)
		require.NoError(t, err)
		assert.True(t, in.Composite)
		assert.Equal(t, "UpdateBookAuthorRelationInputDto", in.Type)
		require.Len(t, in.ExtraTypes, 1)
		var names []string
		for _, sub := range in.ExtraTypes[0].Fields {
			names = append(names, sub.Name)
			assert.False(t, sub.List)
			assert.False(t, sub.Required)
		}
		assert.Equal(t, []string{"create", "connect", "update"}, names)
		assert.Equal(t, []string{"CreateAuthorDto", "ConnectAuthorDto", "UpdateAuthorDto"}, in.ExtraModels)
		assert.Equal(t, []string{"IsOptional", "ValidateNested", "Type"}, in.Validators)
		assert.Len(t, in.Imports, 3)
	})

	t.Run("create mode ignores update permission", func(t *testing.T) {
		f := &load.Field{
			Name: "books", Type: "Book", Kind: load.KindObject, List: true,
			Directives: directive.NewSet(directive.RelationCanCreateOnCreate, directive.RelationCanUpdateOnUpdate),
		}
		in, err := synthesizeRelation(f, author, all, cfg, createMode)
		require.NoError(t, err)
		assert.False(t, in.Composite)
		assert.Equal(t, "CreateBookDto", in.Type)
	})

	t.Run("no documentation", func(t *testing.T) {
		f := author.Fields[2]
		in, err := synthesizeRelation(f, author, all, &Config{NoDependencies: true}, createMode)
		require.NoError(t, err)
		assert.True(t, in.Composite)
		assert.Empty(t, in.ExtraModels)
		assert.Empty(t, in.Validators)
		for _, sub := range in.ExtraTypes[0].Fields {
			assert.Empty(t, sub.APIProps)
			assert.Empty(t, sub.Validators)
		}
	})

	t.Run("missing target", func(t *testing.T) {
		f := &load.Field{Name: "owner", Type: "Owner", Kind: load.KindObject, Directives: directive.NewSet(directive.RelationCanConnectOnCreate)}
		_, err := synthesizeRelation(f, book, all, cfg, createMode)
		require.Error(t, err)
		assert.True(t, IsRelationError(err))
		assert.EqualError(t, err, `dtogen: related type "Owner" for Book.owner not found`)
	})
}
