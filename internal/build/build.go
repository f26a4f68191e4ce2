package build

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/kilnworks/rpmkiln/internal/config"
	"github.com/kilnworks/rpmkiln/internal/engine"
	"github.com/kilnworks/rpmkiln/internal/paths"
	"github.com/kilnworks/rpmkiln/internal/rpmspec"
)

// Controls a build run.
type Options struct {
	Config  *config.Config   // Run configuration, including the platform table.
	Targets []rpmspec.Target // Targets to build, in order.
}

// Returned after a successful run.
type Result struct {
	Artifacts []string // Paths of the extracted package files.
}

// Builds every target against the container engine.
//
// The selected platform is resolved once; an unknown platform id fails the
// run before any target is processed. Targets are built strictly one at a
// time, and the run stops at the first target that fails. The output
// directory is shared across targets and runs; it is created if missing and
// never assumed empty.
func Run(ctx context.Context, eng *engine.Engine, opts Options) (*Result, error) {
	platform, err := opts.Config.ResolvePlatform()
	if err != nil {
		return nil, err
	}

	output := opts.Config.OutputDir
	if err := os.MkdirAll(output, paths.DefaultDirMode); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrFileSystemOperation, err)
	}

	slog.Info("building targets",
		"platform", platform.ID,
		"base", platform.Base,
		"engine", eng.Command(),
		"targets", len(opts.Targets),
		"output", output,
	)

	p := &pipeline{
		eng:      eng,
		cfg:      opts.Config,
		platform: platform,
		output:   output,
	}

	result := &Result{}
	for _, target := range opts.Targets {
		artifacts, err := p.buildTarget(ctx, target)
		if err != nil {
			return nil, fmt.Errorf("target %s: %w", target.Name(), err)
		}
		result.Artifacts = append(result.Artifacts, artifacts...)
	}

	return result, nil
}
