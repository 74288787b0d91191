package gen

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRelationError(t *testing.T) {
	t.Run("Error message", func(t *testing.T) {
		err := NewRelationError("Author", "books", "Book")
		assert.Equal(t, `dtogen: related type "Book" for Author.books not found`, err.Error())
	})

	t.Run("Is matches ErrUnresolvedRelation", func(t *testing.T) {
		err := fmt.Errorf("compute: %w", NewRelationError("Author", "books", "Book"))
		assert.True(t, errors.Is(err, ErrUnresolvedRelation))
		assert.False(t, errors.Is(err, ErrInvalidConfig))
	})

	t.Run("IsRelationError helper", func(t *testing.T) {
		assert.True(t, IsRelationError(NewRelationError("A", "b", "C")))
		assert.False(t, IsRelationError(errors.New("other")))
	})
}

func TestConfigError(t *testing.T) {
	t.Run("Error message with value", func(t *testing.T) {
		err := NewConfigError("Workers", -1, "must be positive")

		assert.Contains(t, err.Error(), "dtogen: config error")
		assert.Contains(t, err.Error(), "Workers")
		assert.Contains(t, err.Error(), "-1")
		assert.Contains(t, err.Error(), "must be positive")
	})

	t.Run("Error message without value", func(t *testing.T) {
		err := NewConfigError("ClientImportPath", nil, "cannot be empty")

		assert.Contains(t, err.Error(), "ClientImportPath")
		assert.NotContains(t, err.Error(), "value:")
	})

	t.Run("Is matches ErrInvalidConfig", func(t *testing.T) {
		err := NewConfigError("Naming", nil, "bad")
		assert.True(t, errors.Is(err, ErrInvalidConfig))
		assert.True(t, IsConfigError(err))
		assert.False(t, IsConfigError(errors.New("other")))
	})
}

func TestGenerationError(t *testing.T) {
	t.Run("Error message with all fields", func(t *testing.T) {
		cause := errors.New("disk full")
		err := NewGenerationError("write", "author.go", "cannot write", cause)

		assert.Contains(t, err.Error(), "in phase write")
		assert.Contains(t, err.Error(), "(file: author.go)")
		assert.Contains(t, err.Error(), "cannot write")
		assert.Contains(t, err.Error(), "disk full")
		assert.Equal(t, cause, err.Unwrap())
		assert.True(t, errors.Is(err, cause))
	})

	t.Run("Is matches ErrGenerationFailed", func(t *testing.T) {
		err := NewGenerationError("render", "", "", nil)
		assert.True(t, errors.Is(err, ErrGenerationFailed))
		assert.True(t, IsGenerationError(err))
		assert.Equal(t, "dtogen: generation error in phase render", err.Error())
	})
}
