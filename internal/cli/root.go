package cli

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/alecthomas/kong"
	"github.com/joho/godotenv"

	"github.com/kilnworks/rpmkiln/internal"
)

// Represents the root command for the rpmkiln tool.
var RootCmd struct {
	Quiet  bool   `short:"q" help:"Suppress informational output."`
	Debug  bool   `short:"d" help:"Enable debug output."`
	Config string `short:"c" help:"Path to the configuration file." placeholder:"PATH"`

	Build     BuildCmd     `cmd:"" help:"Build RPM packages in disposable containers."`
	Platforms PlatformsCmd `cmd:"" help:"List the configured build platforms."`
	Version   VersionCmd   `cmd:"" help:"Show version information."`
}

// Parses arguments, configures logging, and runs the selected subcommand.
func Execute() error {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	// Optional env file; absence is the normal case.
	_ = godotenv.Load()

	kongCtx := kong.Parse(&RootCmd,
		kong.Name(internal.Name),
		kong.Description("Builds RPM packages for Red Hat-compatible distributions inside disposable containers."),
		kong.UsageOnError(),
		kong.Vars{
			"version": internal.VersionString(),
		},
		kong.BindTo(ctx, (*context.Context)(nil)),
	)

	configureLogger()

	return kongCtx.Run()
}

// Configures the global logger based on CLI flags and build-time defaults.
func configureLogger() {
	debug := RootCmd.Debug || internal.IsDebug()
	quiet := RootCmd.Quiet || internal.IsQuiet()
	internal.SetDebug(debug)
	internal.SetQuiet(quiet)

	level := slog.LevelInfo
	if debug {
		level = slog.LevelDebug
	} else if quiet {
		level = slog.LevelWarn
	}

	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})
	slog.SetDefault(slog.New(handler).WithGroup(internal.Name))
}
