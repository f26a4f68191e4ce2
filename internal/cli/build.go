package cli

import (
	"context"
	"errors"
	"log/slog"

	"github.com/kilnworks/rpmkiln/internal/build"
	"github.com/kilnworks/rpmkiln/internal/config"
	"github.com/kilnworks/rpmkiln/internal/engine"
	"github.com/kilnworks/rpmkiln/internal/rpmspec"
)

// Represents the 'rpmkiln build' command.
type BuildCmd struct {
	Platform          string   `short:"p" help:"Platform to build RPMs for." placeholder:"ID"`
	Engine            string   `help:"Container engine command to invoke." placeholder:"CMD"`
	Output            string   `short:"o" help:"Directory for extracted packages." placeholder:"DIR"`
	NoCache           bool     `help:"Disable the engine's image build cache."`
	KeepBuildProducts bool     `help:"Keep the build directory, container, and image."`
	ShellBefore       bool     `help:"Drop to an interactive shell before rpmbuild runs."`
	ShellAfter        bool     `help:"Drop to an interactive shell after rpmbuild runs."`

	Specs []string `arg:"" optional:"" help:"RPM spec files to build, in addition to configured targets." type:"existingfile"`
}

// Executes the build command.
//
// Loads the run configuration, overlays command-line overrides, and builds
// every target sequentially. Spec files given as arguments become targets
// with no extra sources, appended after the configured targets.
func (c *BuildCmd) Run(ctx context.Context) error {
	cfg, err := config.Load(RootCmd.Config)
	if err != nil {
		return err
	}
	c.apply(cfg)

	targets := append([]rpmspec.Target{}, cfg.Targets...)
	for _, spec := range c.Specs {
		targets = append(targets, rpmspec.Target{Spec: spec})
	}
	if len(targets) == 0 {
		return errors.New("no build targets: configure targets or pass spec files")
	}

	result, err := build.Run(ctx, engine.New(cfg.Engine), build.Options{
		Config:  cfg,
		Targets: targets,
	})
	if err != nil {
		return err
	}

	slog.Info("build complete", "artifacts", len(result.Artifacts), "output", cfg.OutputDir)
	for _, artifact := range result.Artifacts {
		slog.Info("built", "artifact", artifact)
	}
	return nil
}

// Overlays command-line overrides onto the loaded configuration.
//
// String flags override when set; boolean flags only ever enable, so a
// config file setting cannot be switched off from the command line.
func (c *BuildCmd) apply(cfg *config.Config) {
	if c.Platform != "" {
		cfg.Platform = c.Platform
	}
	if c.Engine != "" {
		cfg.Engine = c.Engine
	}
	if c.Output != "" {
		cfg.OutputDir = c.Output
	}
	cfg.NoCache = cfg.NoCache || c.NoCache
	cfg.KeepBuildProducts = cfg.KeepBuildProducts || c.KeepBuildProducts
	cfg.ShellBefore = cfg.ShellBefore || c.ShellBefore
	cfg.ShellAfter = cfg.ShellAfter || c.ShellAfter
}
