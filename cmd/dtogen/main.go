// dtogen derives Entity, Create and Update DTOs from a directive-annotated
// schema document.
//
//	dtogen -schema schema.yaml -out ./dto -pkg dto
//	dtogen -schema schema.yaml -manifest dto.yaml -watch
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"runtime"
	"syscall"

	"go.uber.org/zap"

	"github.com/syssam/dtogen/compiler/gen"
	"github.com/syssam/dtogen/compiler/gen/golang"
	"github.com/syssam/dtogen/compiler/gen/manifest"
	"github.com/syssam/dtogen/compiler/load"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	if err := run(ctx, os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "dtogen: %v\n", err)
		os.Exit(1)
	}
}

// flags holds the command line.
type flags struct {
	schema   string
	out      string
	pkg      string
	manifest string
	env      string
	workers  int
	watch    bool
	debug    bool
	// set holds the names of the flags given explicitly.
	set map[string]bool
}

func parseFlags(args []string) (*flags, error) {
	f := &flags{set: make(map[string]bool)}
	fs := flag.NewFlagSet("dtogen", flag.ContinueOnError)
	fs.StringVar(&f.schema, "schema", "schema.yaml", "path to the schema document")
	fs.StringVar(&f.out, "out", "", "output directory of the Go DTOs")
	fs.StringVar(&f.pkg, "pkg", "", "package name of the Go DTOs")
	fs.StringVar(&f.manifest, "manifest", "", "write a manifest of the artifacts to this path (.msgpack for MessagePack, YAML otherwise)")
	fs.StringVar(&f.env, "env", ".env", "env file holding DTOGEN_* defaults")
	fs.IntVar(&f.workers, "workers", runtime.GOMAXPROCS(0), "number of parallel workers")
	fs.BoolVar(&f.watch, "watch", false, "regenerate when the schema changes")
	fs.BoolVar(&f.debug, "debug", false, "enable debug logging")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	fs.Visit(func(fl *flag.Flag) { f.set[fl.Name] = true })
	return f, nil
}

// apply applies the explicitly given flags to s.
func (f *flags) apply(s *settings) {
	if f.set["out"] {
		s.Output = f.out
	}
	if f.set["pkg"] {
		s.Package = f.pkg
	}
	if f.set["manifest"] {
		s.Manifest = f.manifest
	}
}

func newLogger(debug bool) (*zap.Logger, error) {
	cfg := zap.NewProductionConfig()
	if debug {
		cfg = zap.NewDevelopmentConfig()
	}
	return cfg.Build()
}

func run(ctx context.Context, args []string) error {
	f, err := parseFlags(args)
	if err != nil {
		return err
	}
	logger, err := newLogger(f.debug)
	if err != nil {
		return fmt.Errorf("create logger: %w", err)
	}
	defer func() { _ = logger.Sync() }()

	env, err := readEnv(f.env)
	if err != nil {
		return err
	}
	build := func(ctx context.Context) error {
		return generate(ctx, f, env, logger)
	}
	if err := build(ctx); err != nil {
		if !f.watch {
			return err
		}
		logger.Error("generation failed", zap.Error(err))
	}
	if f.watch {
		return watch(ctx, f.schema, logger, build)
	}
	return nil
}

// generate loads the schema and writes the artifacts.
func generate(ctx context.Context, f *flags, env map[string]string, logger *zap.Logger) error {
	schema, err := load.LoadFile(f.schema)
	if err != nil {
		return err
	}
	s := defaultSettings()
	if err := s.decodeBlock(&schema.Generator); err != nil {
		return err
	}
	if err := s.applyEnv(env); err != nil {
		return err
	}
	f.apply(&s)
	cfg, err := gen.NewConfig(s.options()...)
	if err != nil {
		return err
	}
	logger.Debug("loaded schema",
		zap.String("path", f.schema),
		zap.Int("entities", len(schema.Entities)),
		zap.Bool("classValidation", cfg.ClassValidation),
		zap.Bool("noDependencies", cfg.NoDependencies),
	)
	g := gen.NewGenerator(cfg, schema.Entities, s.Output).
		WithWorkers(f.workers).
		WithLogger(logger).
		WithRenderer(golang.New(s.Package).WithNaming(cfg.Naming))
	records, err := g.Generate(ctx)
	if err != nil {
		return err
	}
	if s.Manifest != "" {
		if err := manifest.WriteFile(s.Manifest, records); err != nil {
			return err
		}
		logger.Info("wrote manifest", zap.String("path", s.Manifest), zap.Int("artifacts", len(records)))
	}
	return nil
}
