package gen

import (
	"context"
	"runtime"
	"sync"

	"github.com/dave/jennifer/jen"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/syssam/dtogen/compiler/load"
)

// Renderer turns artifact records into Go source files.
type Renderer interface {
	// Name identifies the renderer in logs.
	Name() string
	// Render returns the file of the given record.
	Render(p *Params) (*jen.File, error)
	// Filename returns the path of the record file, relative to the
	// output directory.
	Filename(p *Params) string
}

// Generator computes the artifact records of an entity set in parallel and
// writes them using a Renderer.
type Generator struct {
	cfg      *Config
	entities []*load.Entity
	outDir   string
	workers  int
	log      *zap.Logger
	renderer Renderer

	// Metrics for performance monitoring
	mu      sync.Mutex
	metrics *WriterMetrics
}

// NewGenerator creates a new generator for the given entity set.
// You must call WithRenderer() before calling Generate().
//
// Example:
//
//	g := gen.NewGenerator(cfg, schema.Entities, outDir).
//		WithRenderer(golang.New("dto")).
//		WithWorkers(4)
//	records, err := g.Generate(ctx)
func NewGenerator(c *Config, entities []*load.Entity, outDir string) *Generator {
	return &Generator{
		cfg:      c.orDefault(),
		entities: entities,
		outDir:   outDir,
		workers:  runtime.GOMAXPROCS(0),
		log:      zap.NewNop(),
		metrics:  &WriterMetrics{},
	}
}

// WithWorkers sets the number of parallel workers.
func (g *Generator) WithWorkers(n int) *Generator {
	if n > 0 {
		g.workers = n
	}
	return g
}

// WithLogger sets the logger of the generator.
func (g *Generator) WithLogger(l *zap.Logger) *Generator {
	if l != nil {
		g.log = l
	}
	return g
}

// WithRenderer sets the renderer used by Generate.
func (g *Generator) WithRenderer(r Renderer) *Generator {
	if r != nil {
		g.renderer = r
	}
	return g
}

// Metrics returns the generation metrics.
func (g *Generator) Metrics() *WriterMetrics {
	return g.metrics
}

// Compute computes the records of every (entity, kind) pair in parallel.
// Records are returned in entity declaration order, then in Kinds order.
// The first failure cancels the remaining computations.
func (g *Generator) Compute(ctx context.Context) ([]*Params, error) {
	records := make([]*Params, len(g.entities)*len(Kinds))
	errg, ctx := errgroup.WithContext(ctx)
	errg.SetLimit(g.workers)
	for i, e := range g.entities {
		for j, k := range Kinds {
			idx := i*len(Kinds) + j
			errg.Go(func() error {
				select {
				case <-ctx.Done():
					return ctx.Err()
				default:
				}
				p, err := ComputeParams(k, e, g.entities, g.cfg)
				if err != nil {
					return err
				}
				g.log.Debug("computed artifact",
					zap.String("entity", e.Name),
					zap.Stringer("kind", k),
					zap.String("name", p.Name),
					zap.Int("fields", len(p.Fields)),
					zap.Int("imports", len(p.Imports)),
				)
				records[idx] = p
				return nil
			})
		}
	}
	if err := errg.Wait(); err != nil {
		return nil, err
	}
	return records, nil
}

// Generate computes all records and writes one file per record.
// Returns an error if no renderer has been set via WithRenderer().
func (g *Generator) Generate(ctx context.Context) ([]*Params, error) {
	if g.renderer == nil {
		return nil, NewConfigError("Renderer", nil, "no renderer set: call WithRenderer() before Generate()")
	}
	log := g.log.With(zap.String("run", uuid.NewString()))
	records, err := g.Compute(ctx)
	if err != nil {
		return nil, err
	}
	errg, ctx := errgroup.WithContext(ctx)
	errg.SetLimit(g.workers)
	for _, p := range records {
		errg.Go(func() error {
			select {
			case <-ctx.Done():
				return ctx.Err()
			default:
			}
			name := g.renderer.Filename(p)
			f, err := g.renderer.Render(p)
			if err != nil {
				return NewGenerationError("render", name, g.renderer.Name(), err)
			}
			return g.writeFile(f, name)
		})
	}
	if err := errg.Wait(); err != nil {
		return nil, err
	}
	log.Info("generated artifacts",
		zap.String("renderer", g.renderer.Name()),
		zap.String("dir", g.outDir),
		zap.Int("files", g.metrics.FilesGenerated),
		zap.Int64("bytes", g.metrics.TotalBytes),
	)
	return records, nil
}
