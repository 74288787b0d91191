// Package manifest encodes computed artifact records as a YAML or MessagePack
// document for renderers running outside of the Go toolchain.
package manifest

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/vmihailenco/msgpack/v5"
	"gopkg.in/yaml.v3"

	"github.com/syssam/dtogen/compiler/gen"
	"github.com/syssam/dtogen/compiler/load"
)

// Manifest is the document root.
type Manifest struct {
	Artifacts []*Artifact `yaml:"artifacts"`
}

// Artifact describes one record.
type Artifact struct {
	Entity      string        `yaml:"entity"`
	Kind        string        `yaml:"kind"`
	Name        string        `yaml:"name"`
	File        string        `yaml:"file"`
	Imports     []*gen.Import `yaml:"imports,omitempty"`
	Fields      []*Field      `yaml:"fields,omitempty"`
	ExtraTypes  []*Type       `yaml:"extraTypes,omitempty"`
	ExtraModels []string      `yaml:"extraModels,omitempty"`
	Validators  []string      `yaml:"validators,omitempty"`
}

// Type is an auxiliary type of an artifact.
type Type struct {
	Name   string   `yaml:"name"`
	Fields []*Field `yaml:"fields,omitempty"`
}

// Field is a field of an artifact or auxiliary type.
type Field struct {
	Name          string     `yaml:"name"`
	Type          string     `yaml:"type"`
	Kind          load.Kind  `yaml:"kind"`
	List          bool       `yaml:"list,omitempty"`
	Required      bool       `yaml:"required,omitempty"`
	Nullable      bool       `yaml:"nullable,omitempty"`
	Override      string     `yaml:"override,omitempty"`
	Coercion      string     `yaml:"coercion,omitempty"`
	ResponseOnly  bool       `yaml:"responseOnly,omitempty"`
	Doc           string     `yaml:"doc,omitempty"`
	Validators    []gen.Spec `yaml:"validators,omitempty"`
	APIProperties []gen.Spec `yaml:"apiProperties,omitempty"`
}

// New builds the manifest of the given records, in order.
func New(records []*gen.Params) *Manifest {
	m := &Manifest{Artifacts: make([]*Artifact, 0, len(records))}
	for _, p := range records {
		a := &Artifact{
			Entity:      p.Entity.Name,
			Kind:        p.Kind.String(),
			Name:        p.Name,
			File:        p.File,
			Imports:     p.Imports,
			Fields:      fields(p.Fields),
			ExtraModels: p.ExtraModels,
			Validators:  p.Validators,
		}
		for _, t := range p.ExtraTypes {
			a.ExtraTypes = append(a.ExtraTypes, &Type{Name: t.Name, Fields: fields(t.Fields)})
		}
		m.Artifacts = append(m.Artifacts, a)
	}
	return m
}

func fields(fs []*gen.ParamField) []*Field {
	out := make([]*Field, 0, len(fs))
	for _, f := range fs {
		out = append(out, &Field{
			Name:          f.Name,
			Type:          f.Type,
			Kind:          f.Kind,
			List:          f.List,
			Required:      f.Required,
			Nullable:      f.Nullable,
			Override:      f.Override,
			Coercion:      f.Coercion,
			ResponseOnly:  f.ResponseOnly,
			Doc:           f.Doc,
			Validators:    f.Validators,
			APIProperties: f.APIProps,
		})
	}
	return out
}

// Encode writes the manifest of the given records to w.
func Encode(w io.Writer, records []*gen.Params) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(New(records)); err != nil {
		return fmt.Errorf("manifest: encode: %w", err)
	}
	return enc.Close()
}

// EncodeMsgpack writes the manifest of the given records to w as MessagePack.
// Keys follow the YAML field names.
func EncodeMsgpack(w io.Writer, records []*gen.Params) error {
	enc := msgpack.NewEncoder(w)
	enc.SetCustomStructTag("yaml")
	if err := enc.Encode(New(records)); err != nil {
		return fmt.Errorf("manifest: encode: %w", err)
	}
	return nil
}

// WriteFile writes the manifest of the given records to path. Paths with the
// ".msgpack" extension are written as MessagePack, others as YAML.
func WriteFile(path string, records []*gen.Params) error {
	encode := Encode
	if filepath.Ext(path) == ".msgpack" {
		encode = EncodeMsgpack
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("manifest: %w", err)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("manifest: %w", err)
	}
	if err := encode(f, records); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
