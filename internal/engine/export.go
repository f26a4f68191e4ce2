package engine

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os/exec"
)

// A live byte stream from an engine export subprocess.
//
// Bytes become readable as the exporter produces them; the consumer and the
// subprocess run concurrently over a pipe, so memory use does not scale with
// the archive size. The subprocess's exit code is only known after the
// stream has been consumed, which is why Close both reaps the process and
// reports its failure: a consumer that extracted entries successfully must
// still treat a non-zero exit as fatal.
type ExportStream struct {
	cmd    *exec.Cmd
	out    io.ReadCloser
	tail   *tailWriter
	closed bool
}

// Starts an export subprocess and returns its output as a stream.
func newExportStream(ctx context.Context, command string, args ...string) (*ExportStream, error) {
	slog.Debug("executing", "command", command, "args", args)

	tail := newTailWriter(errTailLimit)

	cmd := exec.CommandContext(ctx, command, args...)
	cmd.Stderr = tail

	out, err := cmd.StdoutPipe()
	if err != nil {
		return nil, fmt.Errorf("%s %s: %w", command, args[0], err)
	}

	if err := cmd.Start(); err != nil {
		return nil, fmt.Errorf("%s %s: %w", command, args[0], err)
	}

	return &ExportStream{cmd: cmd, out: out, tail: tail}, nil
}

// Reads from the subprocess's standard output.
func (s *ExportStream) Read(p []byte) (int, error) {
	return s.out.Read(p)
}

// Reaps the subprocess and reports its exit status.
//
// Must be called exactly once, after the caller has finished reading. If the
// stream was not fully drained, the pipe is closed first so the subprocess
// does not block forever on a full pipe. A non-zero exit is returned as an
// error carrying the process's error-output tail.
func (s *ExportStream) Close() error {
	if s.closed {
		return nil
	}
	s.closed = true

	s.out.Close()

	if err := s.cmd.Wait(); err != nil {
		if exitErr, ok := err.(*exec.ExitError); ok {
			if tail := s.tail.String(); tail != "" {
				return fmt.Errorf("export exited with code %d: %s", exitErr.ExitCode(), tail)
			}
			return fmt.Errorf("export exited with code %d", exitErr.ExitCode())
		}
		return fmt.Errorf("export: %w", err)
	}
	return nil
}
