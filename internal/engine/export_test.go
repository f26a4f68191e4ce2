package engine

import (
	"context"
	"io"
	"path/filepath"
	"strings"
	"testing"
)

func TestExportStream(t *testing.T) {
	eng := New(writeStubEngine(t, `printf 'archive bytes'`+"\n"))

	stream, err := eng.Export(context.Background(), "rpm-builder-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	data, err := io.ReadAll(stream)
	if err != nil {
		t.Fatalf("reading stream: %v", err)
	}
	if string(data) != "archive bytes" {
		t.Errorf("stream = %q, want %q", data, "archive bytes")
	}

	if err := stream.Close(); err != nil {
		t.Fatalf("Close() = %v, want nil", err)
	}
	if err := stream.Close(); err != nil {
		t.Fatalf("second Close() = %v, want nil", err)
	}
}

func TestExportStreamFailureAfterOutput(t *testing.T) {
	// A failing exporter must surface its exit code even when the stream
	// already delivered bytes.
	eng := New(writeStubEngine(t, `printf 'partial'`+"\n"+`echo "export blew up" >&2`+"\n"+"exit 2\n"))

	stream, err := eng.Export(context.Background(), "rpm-builder-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	data, err := io.ReadAll(stream)
	if err != nil {
		t.Fatalf("reading stream: %v", err)
	}
	if string(data) != "partial" {
		t.Errorf("stream = %q, want %q", data, "partial")
	}

	closeErr := stream.Close()
	if closeErr == nil {
		t.Fatal("Close() = nil, want error")
	}
	if !strings.Contains(closeErr.Error(), "code 2") {
		t.Errorf("error %q missing exit code", closeErr)
	}
	if !strings.Contains(closeErr.Error(), "export blew up") {
		t.Errorf("error %q missing process diagnostics", closeErr)
	}
}

func TestExportCommandMissing(t *testing.T) {
	eng := New(filepath.Join(t.TempDir(), "does-not-exist"))

	if _, err := eng.Export(context.Background(), "ctr"); err == nil {
		t.Fatal("expected error, got nil")
	}
}
