package gen

import (
	"fmt"
	"path"
	"path/filepath"
	"strings"

	"github.com/go-openapi/inflect"
	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/syssam/dtogen/compiler/load"
)

// Kind is the kind of an output artifact.
type Kind uint8

// Artifact kinds.
const (
	// KindEntity is the read-model artifact.
	KindEntity Kind = iota
	// KindCreate is the creation-input artifact.
	KindCreate
	// KindUpdate is the update-input artifact.
	KindUpdate
	// KindConnect is the connect-by-identifier artifact referenced by
	// relation inputs.
	KindConnect
)

// Kinds lists the artifact kinds computed for every entity.
var Kinds = []Kind{KindEntity, KindCreate, KindUpdate, KindConnect}

// String returns the name of the kind.
func (k Kind) String() string {
	switch k {
	case KindEntity:
		return "entity"
	case KindCreate:
		return "create"
	case KindUpdate:
		return "update"
	case KindConnect:
		return "connect"
	default:
		return fmt.Sprintf("Kind(%d)", uint8(k))
	}
}

// DefaultDtoSuffix is appended to input artifact names.
const DefaultDtoSuffix = "Dto"

// thunkPrefix prefixes lazily evaluated type references in annotations.
const thunkPrefix = "() => "

var rules = inflect.NewDefaultRuleset()

// inflected caches inflection results. Names are inflected once per field
// and artifact by every pipeline run.
var inflected = mustCache(4096)

func mustCache(size int) *lru.Cache[string, string] {
	c, err := lru.New[string, string](size)
	if err != nil {
		panic(err)
	}
	return c
}

// Naming holds the artifact naming conventions.
type Naming struct {
	EntityPrefix string
	EntitySuffix string
	// DtoSuffix defaults to DefaultDtoSuffix.
	DtoSuffix string
}

func (n Naming) dtoSuffix() string {
	if n.DtoSuffix != "" {
		return n.DtoSuffix
	}
	return DefaultDtoSuffix
}

// TypeName returns the type name of the artifact of kind k for the given
// entity (or composite) name.
func (n Naming) TypeName(k Kind, name string) string {
	name = pascal(name)
	switch k {
	case KindCreate:
		return "Create" + name + n.dtoSuffix()
	case KindUpdate:
		return "Update" + name + n.dtoSuffix()
	case KindConnect:
		return "Connect" + name + n.dtoSuffix()
	default:
		return n.EntityPrefix + name + n.EntitySuffix
	}
}

// FileName returns the file name (without extension) of the artifact of
// kind k for the given entity name.
func (n Naming) FileName(k Kind, name string) string {
	name = kebab(name)
	switch k {
	case KindCreate:
		return "create-" + name + ".dto"
	case KindUpdate:
		return "update-" + name + ".dto"
	case KindConnect:
		return "connect-" + name + ".dto"
	default:
		return name + ".entity"
	}
}

// outputDir returns the output location of the artifact of kind k.
func outputDir(o load.Output, k Kind) string {
	switch k {
	case KindCreate:
		return o.Create
	case KindUpdate:
		return o.Update
	case KindConnect:
		return o.ConnectDir()
	default:
		return o.Entity
	}
}

// relativeImport returns the import source of file in dir "to", as seen from dir "from".
func relativeImport(from, to, file string) string {
	rel, err := filepath.Rel(filepath.FromSlash(from), filepath.FromSlash(to))
	if err != nil {
		rel = to
	}
	p := path.Join(filepath.ToSlash(rel), file)
	if !strings.HasPrefix(p, ".") {
		p = "./" + p
	}
	return p
}

// artifactImport returns the import of the artifact of kind k of target,
// as seen from the artifact of kind cur of owner. It returns nil when the
// referenced artifact is the one being generated.
func artifactImport(n Naming, owner *load.Entity, cur Kind, target *load.Entity, k Kind) *Import {
	if owner.Name == target.Name && cur == k {
		return nil
	}
	return &Import{
		From:  relativeImport(outputDir(owner.Output, cur), outputDir(target.Output, k), n.FileName(k, target.Name)),
		Names: []string{n.TypeName(k, target.Name)},
	}
}

func pascal(s string) string { return inflect1("pascal:", s, rules.Camelize) }

func kebab(s string) string { return inflect1("kebab:", s, rules.Dasherize) }

// inflect1 returns fn(s), cached under the given key prefix.
func inflect1(prefix, s string, fn func(string) string) string {
	key := prefix + s
	if v, ok := inflected.Get(key); ok {
		return v
	}
	v := fn(s)
	inflected.Add(key, v)
	return v
}
