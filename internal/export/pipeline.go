// Package export post-processes a generated site so it can be served from
// any static file host, including under a sub-path.
//
// Each step is a Pass. Passes are idempotent: running the pipeline twice
// over the same directory leaves it as one run did.
package export

import (
	"context"
	"os"

	"github.com/tareeqi/tareeqweb/internal/errors"
	"github.com/tareeqi/tareeqweb/internal/logging"
)

// Pass is one post-processing step over the output directory.
type Pass interface {
	Name() string
	Run(ctx context.Context, outDir string) error
}

// Pipeline runs passes in order and stops at the first failure.
type Pipeline struct {
	passes []Pass
	logger logging.Logger
}

// NewPipeline creates a pipeline running passes in the given order.
func NewPipeline(logger logging.Logger, passes ...Pass) *Pipeline {
	if logger == nil {
		logger = logging.NewNopLogger()
	}
	return &Pipeline{passes: passes, logger: logger.WithComponent("export")}
}

// Options select the inputs of the default passes.
type Options struct {
	PublicDir       string
	BasePath        string
	ImageExtensions []string
}

// Default returns copy-public, nojekyll, image-case and rewrite-paths.
func Default(opts Options, logger logging.Logger) *Pipeline {
	if logger == nil {
		logger = logging.NewNopLogger()
	}
	return NewPipeline(logger,
		NewCopyPublic(opts.PublicDir, logger),
		NewNoJekyll(),
		NewImageCase(opts.ImageExtensions, logger),
		NewRewritePaths(opts.BasePath, logger),
	)
}

// Passes returns the pass names in run order.
func (p *Pipeline) Passes() []string {
	names := make([]string, len(p.passes))
	for i, pass := range p.passes {
		names[i] = pass.Name()
	}
	return names
}

// Run executes every pass against outDir.
func (p *Pipeline) Run(ctx context.Context, outDir string) error {
	info, err := os.Stat(outDir)
	if err != nil {
		return errors.WrapIO(err, errors.ErrCodeFileNotFound, "output directory not found").WithPath(outDir)
	}
	if !info.IsDir() {
		return errors.NewIOError(errors.ErrCodeInvalidPath, "output path is not a directory", nil).WithPath(outDir)
	}

	for _, pass := range p.passes {
		if err := ctx.Err(); err != nil {
			return err
		}

		perf := logging.StartOperation(p.logger, pass.Name())
		if err := pass.Run(ctx, outDir); err != nil {
			perf.EndWithError(ctx, err)
			return errors.ErrPassFailed(pass.Name(), err)
		}
		perf.End(ctx)
	}
	return nil
}
