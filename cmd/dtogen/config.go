package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/syssam/dtogen/compiler/gen"
)

// Environment variables overriding the generator block of the schema.
const (
	envOut              = "DTOGEN_OUT"
	envPackage          = "DTOGEN_PACKAGE"
	envManifest         = "DTOGEN_MANIFEST"
	envNoDependencies   = "DTOGEN_NO_DEPENDENCIES"
	envClassValidation  = "DTOGEN_CLASS_VALIDATION"
	envClientImportPath = "DTOGEN_CLIENT_IMPORT_PATH"
)

var envKeys = []string{envOut, envPackage, envManifest, envNoDependencies, envClassValidation, envClientImportPath}

// settings holds the resolved generation settings. Values are layered:
// the generator block of the schema, then the environment, then flags.
type settings struct {
	Output           string `yaml:"output"`
	Package          string `yaml:"package"`
	Manifest         string `yaml:"manifest"`
	NoDependencies   bool   `yaml:"noDependencies"`
	ClassValidation  bool   `yaml:"classValidation"`
	ClientImportPath string `yaml:"clientImportPath"`
	EntityPrefix     string `yaml:"entityPrefix"`
	EntitySuffix     string `yaml:"entitySuffix"`
	DtoSuffix        string `yaml:"dtoSuffix"`
}

// defaultSettings are used when no layer sets a value.
func defaultSettings() settings {
	return settings{Output: "dto", Package: "dto"}
}

// decodeBlock applies the generator block of a schema document.
func (s *settings) decodeBlock(node *yaml.Node) error {
	if node == nil || node.Kind == 0 {
		return nil
	}
	if err := node.Decode(s); err != nil {
		return fmt.Errorf("decode generator block: %w", err)
	}
	return nil
}

// applyEnv applies the known variables of env.
func (s *settings) applyEnv(env map[string]string) error {
	for _, key := range envKeys {
		v, ok := env[key]
		if !ok || v == "" {
			continue
		}
		switch key {
		case envOut:
			s.Output = v
		case envPackage:
			s.Package = v
		case envManifest:
			s.Manifest = v
		case envClientImportPath:
			s.ClientImportPath = v
		case envNoDependencies, envClassValidation:
			b, err := strconv.ParseBool(v)
			if err != nil {
				return fmt.Errorf("invalid %s: %w", key, err)
			}
			if key == envNoDependencies {
				s.NoDependencies = b
			} else {
				s.ClassValidation = b
			}
		}
	}
	return nil
}

// options returns the generator options of the settings.
func (s settings) options() []gen.Option {
	opts := []gen.Option{
		gen.WithNoDependencies(s.NoDependencies),
		gen.WithClassValidation(s.ClassValidation),
		gen.WithNaming(gen.Naming{
			EntityPrefix: s.EntityPrefix,
			EntitySuffix: s.EntitySuffix,
			DtoSuffix:    s.DtoSuffix,
		}),
	}
	if s.ClientImportPath != "" {
		opts = append(opts, gen.WithClientImportPath(s.ClientImportPath))
	}
	return opts
}

// readEnv returns the variables of the env file at path, overridden by the
// process environment. A missing file is not an error.
func readEnv(path string) (map[string]string, error) {
	env := make(map[string]string)
	if path != "" {
		vars, err := godotenv.Read(path)
		switch {
		case errors.Is(err, fs.ErrNotExist):
		case err != nil:
			return nil, fmt.Errorf("read env file %s: %w", path, err)
		default:
			env = vars
		}
	}
	for _, key := range envKeys {
		if v, ok := os.LookupEnv(key); ok {
			env[key] = v
		}
	}
	return env, nil
}
