// Package gen derives the DTO artifacts of a directive-annotated schema.
//
// For every entity of a schema four artifacts are computed: the entity
// (read-model), the create input, the update input and the connect input
// that relation inputs use to reference an existing record. Each computation is a
// pure function of the entity, the full entity set and a Config, and returns
// a Params record that renderers turn into source text.
//
// # Pipeline
//
// A single field pipeline serves all artifact kinds. It is
// parameterized by a policy per kind:
//
//	Entity  hidden: DtoEntityHidden  relations: entity references
//	Create  hidden: DtoCreateHidden  relations: create/connect inputs
//	Update  hidden: DtoUpdateHidden  relations: create/connect/update inputs
//	Connect identifier and unique scalars only
//
// For each field the pipeline classifies the field, computes an Override,
// delegates relations to the relation input synthesizer, and collects the
// validator and documentation annotation specs. Imports of all stages are
// merged by CanonicalizeImports before the record is returned.
//
// # Relations
//
// A relation enabled for exactly one operation collapses to a direct reference
// to the related artifact (CreateBookDto, ConnectBookDto, ...). When more than
// one operation is enabled a composite input is synthesized and returned in
// Params.ExtraTypes:
//
//	CreateAuthorBooksRelationInputDto {
//	    create  []CreateBookDto
//	    connect []ConnectBookDto
//	}
//
// # Error Handling
//
// Computing a record fails only when a relation or composite type field
// references an entity missing from the entity set:
//
//	p, err := gen.CreateParams(e, schema.Entities, cfg)
//	if gen.IsRelationError(err) {
//	    // the schema is structurally invalid
//	}
//
// ConfigError and GenerationError are returned by options and by the
// Generator.
//
// # Configuration
//
// Configuration is done via the functional options pattern:
//
//	cfg, err := gen.NewConfig(
//	    gen.WithClassValidation(true),
//	    gen.WithClientImportPath("../prisma/client"),
//	)
//
// # Generation
//
// Generator computes all records in parallel and writes them with a Renderer:
//
//	records, err := gen.NewGenerator(cfg, schema.Entities, "./dto").
//	    WithRenderer(golang.New("dto")).
//	    WithLogger(logger).
//	    Generate(ctx)
package gen
