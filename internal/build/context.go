package build

import (
	"fmt"
	"io"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/kilnworks/rpmkiln/internal/paths"
	"github.com/kilnworks/rpmkiln/internal/rpmspec"
	"github.com/kilnworks/rpmkiln/internal/templates"
)

// Name of the generated entrypoint script inside the build context.
const entrypointName = "build_rpm.sh"

// Name of the generated image definition inside the build context.
const dockerfileName = "Dockerfile"

// Shell command rendered into the entrypoint for interactive debugging.
const interactiveShell = "/bin/bash -i"

// Stages a self-contained build context for one target.
//
// The directory ends up holding everything the image build needs: the copied
// spec file, copied local sources, any globally configured extra files, the
// generated entrypoint script, and the generated image definition. Remote
// sources are not fetched here; the image definition instructs the engine to
// fetch them during the build. Any I/O failure aborts the attempt, since an
// incomplete context cannot produce a usable build environment.
func (p *pipeline) assembleContext(dir string, target rpmspec.Target) error {
	specBasename, err := copyIntoContext(target.Spec, dir)
	if err != nil {
		return err
	}

	reqs, err := rpmspec.BuildRequirements(target.Spec)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrFileSystemOperation, err)
	}

	localSources := make([]templates.LocalSource, 0, len(target.Sources))
	for _, src := range target.Sources {
		basename, err := copyIntoContext(src, dir)
		if err != nil {
			return err
		}
		localSources = append(localSources, templates.LocalSource{Basename: basename})
	}

	remoteSources := make([]templates.RemoteSource, 0, len(target.RemoteSources))
	for _, raw := range target.RemoteSources {
		remoteSources = append(remoteSources, templates.RemoteSource{
			URL:      raw,
			Basename: urlBasename(raw),
		})
	}

	if err := p.writeEntrypoint(dir, specBasename); err != nil {
		return err
	}

	for _, tmpl := range p.cfg.ContextFiles {
		if _, err := copyIntoContext(p.platform.Substitute(tmpl), dir); err != nil {
			return err
		}
	}

	setup := make([]string, 0, len(p.cfg.SetupCommands))
	for _, tmpl := range p.cfg.SetupCommands {
		setup = append(setup, p.platform.Substitute(tmpl))
	}

	return p.writeDockerfile(dir, templates.DockerfileData{
		Image:         p.platform.Base,
		SetupCommands: setup,
		SpecBasename:  specBasename,
		BuildRequires: joinRequirements(reqs),
		LocalSources:  localSources,
		RemoteSources: remoteSources,
	})
}

// Renders the entrypoint script and writes it with executable permission.
func (p *pipeline) writeEntrypoint(dir, specBasename string) error {
	data := templates.EntrypointData{SpecBasename: specBasename}
	if p.cfg.ShellBefore {
		data.PreCommands = []string{interactiveShell}
	}
	if p.cfg.ShellAfter {
		data.PostCommands = []string{interactiveShell}
	}

	script, err := templates.Entrypoint(data)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrFileSystemOperation, err)
	}

	dest := filepath.Join(dir, entrypointName)
	if err := os.WriteFile(dest, []byte(script), paths.ScriptFileMode); err != nil {
		return fmt.Errorf("%w: %w", ErrFileSystemOperation, err)
	}
	return nil
}

// Renders the image definition and writes it into the context.
func (p *pipeline) writeDockerfile(dir string, data templates.DockerfileData) error {
	dockerfile, err := templates.Dockerfile(data)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrFileSystemOperation, err)
	}

	dest := filepath.Join(dir, dockerfileName)
	if err := os.WriteFile(dest, []byte(dockerfile), paths.DefaultFileMode); err != nil {
		return fmt.Errorf("%w: %w", ErrFileSystemOperation, err)
	}
	return nil
}

// Copies a file into the context directory, preserving its base name and
// permission bits. Returns the base name.
func copyIntoContext(src, dir string) (string, error) {
	basename := filepath.Base(src)

	in, err := os.Open(src)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrFileSystemOperation, err)
	}
	defer in.Close()

	info, err := in.Stat()
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrFileSystemOperation, err)
	}

	out, err := os.OpenFile(filepath.Join(dir, basename), os.O_WRONLY|os.O_CREATE|os.O_TRUNC, info.Mode().Perm())
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrFileSystemOperation, err)
	}

	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return "", fmt.Errorf("%w: %w", ErrFileSystemOperation, err)
	}
	if err := out.Close(); err != nil {
		return "", fmt.Errorf("%w: %w", ErrFileSystemOperation, err)
	}

	return basename, nil
}

// Derives a file name from the tail of a URL's path.
//
// Falls back to lexical handling when the URL does not parse.
func urlBasename(raw string) string {
	if u, err := url.Parse(raw); err == nil && u.Path != "" {
		return path.Base(u.Path)
	}
	return path.Base(raw)
}

// Joins requirement names for the image definition's install step.
//
// Returns "" for an empty list, which omits the install step entirely.
func joinRequirements(reqs []string) string {
	return strings.Join(reqs, " ")
}
