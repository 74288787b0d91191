package gen

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/dave/jennifer/jen"
	"go.uber.org/zap"
	"golang.org/x/tools/imports"
)

// WriterMetrics tracks generation performance
type WriterMetrics struct {
	FilesGenerated int
	TotalBytes     int64
	FormatTime     int64 // nanoseconds
	WriteTime      int64 // nanoseconds
}

// writeFile renders f, formats it and writes it to name under the output
// directory.
func (g *Generator) writeFile(f *jen.File, name string) error {
	// 1. Render
	var buf bytes.Buffer
	if err := f.Render(&buf); err != nil {
		return NewGenerationError("render", name, "render file", err)
	}

	// 2. Format using goimports (removes unused imports and adds missing ones)
	start := time.Now()
	fullPath := filepath.Join(g.outDir, name)
	formatted, err := imports.Process(fullPath, buf.Bytes(), nil)
	if err != nil {
		// Write unformatted file for debugging (errors intentionally ignored as we're already in error state)
		debugPath := fullPath + ".error"
		_ = os.MkdirAll(filepath.Dir(debugPath), 0o755)
		_ = os.WriteFile(debugPath, buf.Bytes(), 0o644)
		return NewGenerationError("format", name, fmt.Sprintf("unformatted written to %s", debugPath), err)
	}
	formatTime := time.Since(start)

	// 3. Ensure directory exists
	start = time.Now()
	if err := os.MkdirAll(filepath.Dir(fullPath), 0o755); err != nil {
		return NewGenerationError("write", name, "create directory", err)
	}

	// 4. Write file
	if err := os.WriteFile(fullPath, formatted, 0o644); err != nil {
		return NewGenerationError("write", name, "write file", err)
	}
	writeTime := time.Since(start)

	g.mu.Lock()
	g.metrics.FilesGenerated++
	g.metrics.TotalBytes += int64(len(formatted))
	g.metrics.FormatTime += formatTime.Nanoseconds()
	g.metrics.WriteTime += writeTime.Nanoseconds()
	g.mu.Unlock()

	g.log.Debug("wrote file", zap.String("path", fullPath), zap.Int("bytes", len(formatted)))
	return nil
}
