package build

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/google/uuid"

	"github.com/kilnworks/rpmkiln/internal/config"
	"github.com/kilnworks/rpmkiln/internal/engine"
	"github.com/kilnworks/rpmkiln/internal/rpmspec"
)

// Holds shared state for building all targets of a run.
type pipeline struct {
	eng      *engine.Engine  // Container engine driver.
	cfg      *config.Config  // Run configuration.
	platform config.Platform // Resolved build platform.
	output   string          // Directory for extracted artifacts.
}

// Tracks the named engine resources created during one build attempt.
//
// Names are random-suffixed so concurrent runs, even across processes,
// cannot collide. A resource exists from the moment its engine operation is
// invoked until cleanup removes it.
type attempt struct {
	image     string // Image name, tagged :latest. Set before the image build.
	container string // Container name. Empty until a run is attempted.
}

// Builds a single target end-to-end.
//
// Stages a build context in a temporary directory, builds a uniquely named
// image from it, runs the image as a uniquely named container, and extracts
// the built packages from the container's exported filesystem. The temporary
// directory, the container, and the image are released on every exit path
// unless the configuration retains build products. A failure in any stage
// aborts the attempt; nothing is retried.
func (p *pipeline) buildTarget(ctx context.Context, target rpmspec.Target) ([]string, error) {
	buildDir, err := os.MkdirTemp("", "rpmkiln-build-")
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrFileSystemOperation, err)
	}
	if p.cfg.KeepBuildProducts {
		slog.Info("keeping build directory", "path", buildDir)
	} else {
		defer os.RemoveAll(buildDir)
	}

	slog.Debug("assembling build context", "target", target.Name(), "dir", buildDir)
	if err := p.assembleContext(buildDir, target); err != nil {
		return nil, err
	}

	a := &attempt{image: fmt.Sprintf("rpm-image-%s:latest", uuid.New())}
	defer p.cleanup(ctx, a)

	slog.Info("building image", "target", target.Name(), "image", a.image)
	if err := p.eng.BuildImage(ctx, buildDir, a.image, p.cfg.NoCache); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrImageBuild, err)
	}

	// The engine registers the container name as soon as run is invoked,
	// even when the build script fails, so record it before running.
	a.container = fmt.Sprintf("rpm-builder-%s", uuid.New())

	interactive := p.cfg.ShellBefore || p.cfg.ShellAfter
	slog.Info("running build container", "container", a.container, "interactive", interactive)
	if err := p.eng.RunContainer(ctx, a.image, a.container, interactive); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrContainerRun, err)
	}

	return p.extract(ctx, a.container)
}

// Extracts built packages from the container's exported filesystem.
//
// The export subprocess and the extraction loop run concurrently over a
// pipe. The subprocess's exit status is checked only after the archive has
// been consumed; a non-zero exit fails the attempt even when entries were
// already extracted successfully.
func (p *pipeline) extract(ctx context.Context, container string) ([]string, error) {
	stream, err := p.eng.Export(ctx, container)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrExtract, err)
	}

	artifacts, extractErr := extractArtifacts(stream, p.output)
	closeErr := stream.Close()

	if extractErr != nil {
		return nil, fmt.Errorf("%w: %w", ErrExtract, extractErr)
	}
	if closeErr != nil {
		return nil, fmt.Errorf("%w: %w", ErrExtract, closeErr)
	}

	return artifacts, nil
}

// Best-effort removal of the attempt's container and image.
//
// Runs on every exit path of the attempt unless build products are retained.
// The container is removed before the image, since an image cannot be
// removed while a dependent container exists. Image removal is attempted
// even when the image build failed, in which case the engine reports a
// missing image. Failures are logged and never replace the attempt's own
// error.
func (p *pipeline) cleanup(ctx context.Context, a *attempt) {
	if p.cfg.KeepBuildProducts {
		slog.Info("keeping build products", "image", a.image, "container", a.container)
		return
	}

	// Cleanup must proceed even when the attempt was cancelled.
	ctx = context.WithoutCancel(ctx)

	if a.container != "" {
		if err := p.eng.RemoveContainer(ctx, a.container); err != nil {
			slog.Warn("failed to remove build container", "container", a.container, "error", err)
		}
	}

	if err := p.eng.RemoveImage(ctx, a.image); err != nil {
		slog.Warn("failed to remove build image", "image", a.image, "error", err)
	}
}
