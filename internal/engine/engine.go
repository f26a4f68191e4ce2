package engine

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/exec"
)

// Drives a container engine through its command-line interface.
//
// The engine command name is configurable (docker by default) and every
// operation is a subprocess invocation. Exit code zero means success; any
// other code is a failure, with the process's error output attached to the
// returned error for diagnosis.
type Engine struct {
	command string
}

// Creates an engine driver that invokes the given command.
func New(command string) *Engine {
	return &Engine{command: command}
}

// Returns the engine command name.
func (e *Engine) Command() string {
	return e.command
}

// Builds an image from a context directory and tags it with the given name.
//
// The directory must contain the image definition and every file it
// references. When noCache is set the engine is told to ignore its layer
// cache. Blocks until the build subprocess exits.
func (e *Engine) BuildImage(ctx context.Context, contextDir, image string, noCache bool) error {
	args := []string{"build"}
	if noCache {
		args = append(args, "--no-cache")
	}
	args = append(args, "-t", image, contextDir)

	return e.run(ctx, args)
}

// Runs an image as a named container to completion.
//
// Output streams are attached so build logs surface as they are produced.
// When interactive is set, a terminal session is allocated and stdin is
// connected, allowing a human to drive a shell inside the container.
// Blocks until the container's process exits; a non-zero exit is an error.
//
// The engine creates the named container even when its process fails, so a
// caller must arrange removal once this method has been invoked, regardless
// of the outcome.
func (e *Engine) RunContainer(ctx context.Context, image, container string, interactive bool) error {
	args := []string{
		"run",
		"--attach=stdout",
		"--attach=stderr",
		"--name=" + container,
	}
	if interactive {
		args = append(args, "-i", "-t")
	}
	args = append(args, image)

	if interactive {
		return e.runInteractive(ctx, args)
	}
	return e.run(ctx, args)
}

// Exports a container's filesystem as a streamed tar archive.
//
// The returned stream reads directly from the subprocess's standard output;
// nothing is buffered beyond the pipe. The caller must consume the stream
// and then call [ExportStream.Close], which reaps the subprocess and reports
// a non-zero exit.
func (e *Engine) Export(ctx context.Context, container string) (*ExportStream, error) {
	return newExportStream(ctx, e.command, "export", container)
}

// Removes a container by name.
func (e *Engine) RemoveContainer(ctx context.Context, container string) error {
	return e.run(ctx, []string{"rm", container})
}

// Removes an image by name.
//
// Fails while a container created from the image still exists, so callers
// must remove dependent containers first.
func (e *Engine) RemoveImage(ctx context.Context, image string) error {
	return e.run(ctx, []string{"rmi", image})
}

// Runs an engine subprocess to completion, forwarding its output to the
// logger and retaining an error-output tail for diagnostics.
func (e *Engine) run(ctx context.Context, args []string) error {
	slog.Debug("executing", "command", e.command, "args", args)

	stdout := newLineWriter(slog.LevelInfo, args[0])
	tail := newTailWriter(errTailLimit)
	stderr := newLineWriter(slog.LevelWarn, args[0])

	cmd := exec.CommandContext(ctx, e.command, args...)
	cmd.Stdout = stdout
	cmd.Stderr = io.MultiWriter(stderr, tail)

	err := cmd.Run()
	stdout.Flush()
	stderr.Flush()

	if err != nil {
		return e.commandError(args[0], err, tail.String())
	}
	return nil
}

// Runs an engine subprocess with the calling process's terminal attached.
//
// Used for interactive shell sessions, where output forwarding through the
// logger would break the terminal.
func (e *Engine) runInteractive(ctx context.Context, args []string) error {
	slog.Debug("executing interactively", "command", e.command, "args", args)

	cmd := exec.CommandContext(ctx, e.command, args...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	if err := cmd.Run(); err != nil {
		return e.commandError(args[0], err, "")
	}
	return nil
}

// Converts a subprocess failure into a descriptive error.
func (e *Engine) commandError(op string, err error, tail string) error {
	if exitErr, ok := err.(*exec.ExitError); ok {
		if tail != "" {
			return fmt.Errorf("%s %s exited with code %d: %s", e.command, op, exitErr.ExitCode(), tail)
		}
		return fmt.Errorf("%s %s exited with code %d", e.command, op, exitErr.ExitCode())
	}
	return fmt.Errorf("%s %s: %w", e.command, op, err)
}
