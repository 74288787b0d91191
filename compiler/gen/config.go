package gen

// DefaultClientImportPath is the default source of client-module imports.
const DefaultClientImportPath = "@prisma/client"

// Config holds the generator configuration. It is read-only for the pipelines
// and passed explicitly to every entry point.
type Config struct {
	// NoDependencies disables validator and documentation annotations and
	// their imports, and substitutes Decimal and Json with Float and Object.
	NoDependencies bool
	// ClassValidation enables validator annotations on input artifacts.
	ClassValidation bool
	// ClientImportPath overrides the source of client-module imports.
	ClientImportPath string
	// Naming holds the artifact naming conventions.
	Naming Naming
}

// clientImportPath returns the configured client import source or the default.
func (c *Config) clientImportPath() string {
	if c.ClientImportPath != "" {
		return c.ClientImportPath
	}
	return DefaultClientImportPath
}

// validation reports if validator annotations are synthesized.
func (c *Config) validation() bool { return c.ClassValidation && !c.NoDependencies }

// documentation reports if documentation annotations are synthesized.
func (c *Config) documentation() bool { return !c.NoDependencies }

// orDefault returns c, or an empty configuration if c is nil.
func (c *Config) orDefault() *Config {
	if c == nil {
		return &Config{}
	}
	return c
}
