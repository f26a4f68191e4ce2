// Package build orchestrates RPM builds inside disposable containers.
//
// Each target is processed as a strictly sequential pipeline: a temporary
// build context is staged (spec file, sources, generated entrypoint script
// and image definition), a uniquely named image is built from it, the image
// runs as a uniquely named container executing rpmbuild, and the built
// packages are recovered from the container's exported filesystem as a
// streamed tar archive. The container and image are removed on every exit
// path, after extraction and regardless of which stage failed, unless the
// configuration retains build products.
//
// Engine operations are delegated to the engine package. No stage is
// retried: image build and container run failures are assumed to need human
// intervention and are surfaced with the subprocess diagnostics attached.
//
// Example usage:
//
//	result, err := build.Run(ctx, engine.New("docker"), build.Options{
//	    Config:  cfg,
//	    Targets: cfg.Targets,
//	})
//	if err != nil {
//	    return err
//	}
package build
