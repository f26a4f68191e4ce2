package build

import (
	"archive/tar"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/kilnworks/rpmkiln/internal/paths"
)

const (

	// Archive path prefixes of the rpmbuild output directories.
	rpmsPrefix  = "home/rpmuser/rpmbuild/RPMS/"
	srpmsPrefix = "home/rpmuser/rpmbuild/SRPMS/"

	// Shared prefix stripped from matching entries to form output paths.
	stripPrefix = "home/rpmuser/rpmbuild/"

	// Extension of package files recovered from the archive.
	packageExt = ".rpm"

	// Size of the intermediate copy buffer. Bounds peak memory per entry
	// regardless of entry size.
	copyBufferSize = 1 << 20
)

// Extracts package files from a streamed tar archive into the output
// directory.
//
// Entries are processed one at a time in stream order; an entry's bytes are
// copied through a fixed-size buffer, so memory use does not scale with the
// archive or entry size. Only regular files under the rpmbuild RPMS or SRPMS
// directories with the package extension are extracted; everything else is
// skipped. Output paths mirror the archive paths with the shared rpmbuild
// prefix removed. Returns the written paths in extraction order.
func extractArtifacts(r io.Reader, outputDir string) ([]string, error) {
	var artifacts []string
	buf := make([]byte, copyBufferSize)

	tr := tar.NewReader(r)
	for {
		hdr, err := tr.Next()
		if err == io.EOF {
			return artifacts, nil
		}
		if err != nil {
			return nil, fmt.Errorf("read archive: %w", err)
		}

		rel, ok := artifactPath(hdr.Name)
		if !ok || hdr.Typeflag != tar.TypeReg {
			continue
		}

		slog.Info("extracting", "artifact", rel)

		dest := filepath.Join(outputDir, filepath.FromSlash(rel))
		if err := writeArtifact(dest, tr, buf); err != nil {
			return nil, err
		}
		artifacts = append(artifacts, dest)
	}
}

// Maps an archive entry name to its output-relative path.
//
// An entry matches when it lies under one of the rpmbuild output prefixes
// and carries the package extension. The shared prefix is removed as an
// exact literal prefix; the remainder keeps all of its path segments even
// when they begin with characters that also appear in the prefix.
func artifactPath(name string) (string, bool) {
	if !strings.HasPrefix(name, rpmsPrefix) && !strings.HasPrefix(name, srpmsPrefix) {
		return "", false
	}
	if !strings.HasSuffix(name, packageExt) {
		return "", false
	}

	rel := name[len(stripPrefix):]
	if rel == "" {
		return "", false
	}
	return rel, true
}

// Writes one archive entry to disk via the shared copy buffer.
//
// The destination subdirectory is created if missing; an existing directory
// is not an error, since the output tree is shared across targets and runs.
func writeArtifact(dest string, r io.Reader, buf []byte) error {
	if err := os.MkdirAll(filepath.Dir(dest), paths.DefaultDirMode); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}

	f, err := os.Create(dest)
	if err != nil {
		return fmt.Errorf("create artifact: %w", err)
	}

	if _, err := io.CopyBuffer(f, r, buf); err != nil {
		f.Close()
		return fmt.Errorf("write artifact %s: %w", dest, err)
	}

	if err := f.Close(); err != nil {
		return fmt.Errorf("write artifact %s: %w", dest, err)
	}
	return nil
}
