package engine

import (
	"bytes"
	"context"
	"log/slog"
)

// Maximum number of error-output bytes retained for error messages.
const errTailLimit = 4096

// Forwards subprocess output to the logger one line at a time.
//
// Partial lines are buffered across writes and emitted on Flush, so a
// subprocess that ends without a trailing newline still has its last line
// logged.
type lineWriter struct {
	level slog.Level
	op    string
	buf   bytes.Buffer
}

// Creates a line writer logging at the given level, labeled with the engine
// operation that produced the output.
func newLineWriter(level slog.Level, op string) *lineWriter {
	return &lineWriter{level: level, op: op}
}

// Buffers the written bytes and logs each completed line.
func (w *lineWriter) Write(p []byte) (int, error) {
	w.buf.Write(p)
	for {
		line, err := w.buf.ReadString('\n')
		if err != nil {
			// Incomplete line; keep it buffered for the next write.
			w.buf.WriteString(line)
			break
		}
		w.emit(line[:len(line)-1])
	}
	return len(p), nil
}

// Logs any buffered partial line.
func (w *lineWriter) Flush() {
	if w.buf.Len() > 0 {
		w.emit(w.buf.String())
		w.buf.Reset()
	}
}

func (w *lineWriter) emit(line string) {
	slog.Default().Log(context.Background(), w.level, line, "op", w.op)
}

// Retains the tail of everything written to it, up to a fixed limit.
type tailWriter struct {
	limit int
	b     []byte
}

func newTailWriter(limit int) *tailWriter {
	return &tailWriter{limit: limit}
}

func (w *tailWriter) Write(p []byte) (int, error) {
	w.b = append(w.b, p...)
	if len(w.b) > w.limit {
		w.b = w.b[len(w.b)-w.limit:]
	}
	return len(p), nil
}

// Returns the retained tail with surrounding whitespace trimmed.
func (w *tailWriter) String() string {
	return string(bytes.TrimSpace(w.b))
}
