package gen

import (
	"errors"
	"go/token"
)

// Option configures code generation.
type Option func(*Config) error

// WithNoDependencies disables validator and documentation annotations.
func WithNoDependencies(on bool) Option {
	return func(c *Config) error {
		c.NoDependencies = on
		return nil
	}
}

// WithClassValidation enables validator annotations on create and update artifacts.
func WithClassValidation(on bool) Option {
	return func(c *Config) error {
		c.ClassValidation = on
		return nil
	}
}

// WithClientImportPath sets the source of client-module imports.
// For example: "@prisma/client" or "../prisma/client".
func WithClientImportPath(path string) Option {
	return func(c *Config) error {
		if path == "" {
			return NewConfigError("ClientImportPath", nil, "client import path cannot be empty")
		}
		c.ClientImportPath = path
		return nil
	}
}

// WithNaming sets the artifact naming conventions.
// Affixes must be usable inside an identifier.
func WithNaming(n Naming) Option {
	return func(c *Config) error {
		for _, affix := range []struct{ opt, v string }{
			{"EntityPrefix", n.EntityPrefix},
			{"EntitySuffix", n.EntitySuffix},
			{"DtoSuffix", n.DtoSuffix},
		} {
			if affix.v != "" && !token.IsIdentifier("X"+affix.v) {
				return NewConfigError(affix.opt, affix.v, "affix is not a valid identifier part")
			}
		}
		c.Naming = n
		return nil
	}
}

// Apply applies options to the config.
// It returns the first error encountered.
func (c *Config) Apply(opts ...Option) error {
	for _, opt := range opts {
		if err := opt(c); err != nil {
			return err
		}
	}
	return nil
}

// ApplyAll applies options and collects all errors.
// Returns a joined error if any options failed.
func (c *Config) ApplyAll(opts ...Option) error {
	var errs []error
	for _, opt := range opts {
		if err := opt(c); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// NewConfig creates a new Config with the given options.
func NewConfig(opts ...Option) (*Config, error) {
	c := &Config{}
	if err := c.Apply(opts...); err != nil {
		return nil, err
	}
	return c, nil
}

// MustNewConfig creates a new Config with the given options.
// It panics if any option fails.
func MustNewConfig(opts ...Option) *Config {
	c, err := NewConfig(opts...)
	if err != nil {
		panic(err)
	}
	return c
}
