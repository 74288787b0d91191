package gen

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWithNoDependencies(t *testing.T) {
	c := &Config{}
	require.NoError(t, WithNoDependencies(true)(c))
	assert.True(t, c.NoDependencies)
	assert.False(t, c.validation())
	assert.False(t, c.documentation())
}

func TestWithClassValidation(t *testing.T) {
	c := &Config{}
	require.NoError(t, WithClassValidation(true)(c))
	assert.True(t, c.ClassValidation)
	assert.True(t, c.validation())

	c.NoDependencies = true
	assert.False(t, c.validation(), "no dependencies wins")
}

func TestWithClientImportPath(t *testing.T) {
	t.Run("sets path", func(t *testing.T) {
		c := &Config{}
		require.NoError(t, WithClientImportPath("../prisma/client")(c))
		assert.Equal(t, "../prisma/client", c.clientImportPath())
	})

	t.Run("default path", func(t *testing.T) {
		assert.Equal(t, DefaultClientImportPath, (&Config{}).clientImportPath())
	})

	t.Run("empty path returns error", func(t *testing.T) {
		err := WithClientImportPath("")(&Config{})
		require.Error(t, err)
		assert.True(t, IsConfigError(err))
	})
}

func TestWithNaming(t *testing.T) {
	tests := []struct {
		name    string
		naming  Naming
		wantErr string
	}{
		{name: "empty", naming: Naming{}},
		{name: "affixes", naming: Naming{EntityPrefix: "Db", EntitySuffix: "Entity", DtoSuffix: "Input"}},
		{name: "invalid prefix", naming: Naming{EntityPrefix: "my-"}, wantErr: "EntityPrefix"},
		{name: "invalid suffix", naming: Naming{EntitySuffix: "Entity", DtoSuffix: "Dto!"}, wantErr: "DtoSuffix"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := &Config{}
			err := WithNaming(tt.naming)(c)
			if tt.wantErr != "" {
				var cfgErr *ConfigError
				require.ErrorAs(t, err, &cfgErr)
				assert.Equal(t, tt.wantErr, cfgErr.Option)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.naming, c.Naming)
		})
	}
}

func TestNewConfig(t *testing.T) {
	t.Run("applies options", func(t *testing.T) {
		c, err := NewConfig(
			WithClassValidation(true),
			WithClientImportPath("@generated/client"),
		)
		require.NoError(t, err)
		assert.True(t, c.ClassValidation)
		assert.Equal(t, "@generated/client", c.ClientImportPath)
	})

	t.Run("first error", func(t *testing.T) {
		_, err := NewConfig(WithClientImportPath(""), WithNaming(Naming{DtoSuffix: "-"}))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "ClientImportPath")
	})

	t.Run("must panics", func(t *testing.T) {
		assert.Panics(t, func() { MustNewConfig(WithClientImportPath("")) })
		assert.NotPanics(t, func() { MustNewConfig() })
	})
}

func TestApplyAll(t *testing.T) {
	c := &Config{}
	err := c.ApplyAll(
		WithClientImportPath(""),
		WithClassValidation(true),
		WithNaming(Naming{DtoSuffix: "-"}),
	)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvalidConfig))
	assert.Contains(t, err.Error(), "ClientImportPath")
	assert.Contains(t, err.Error(), "DtoSuffix")
	assert.True(t, c.ClassValidation)
}

func TestConfigOrDefault(t *testing.T) {
	var c *Config
	assert.NotNil(t, c.orDefault())
	assert.Equal(t, DefaultClientImportPath, c.orDefault().clientImportPath())
}
