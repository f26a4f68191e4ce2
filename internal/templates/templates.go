package templates

import (
	"bytes"
	"embed"
	"fmt"
	"text/template"
)

//go:embed entrypoint.sh.tmpl dockerfile.tmpl
var files embed.FS

// Parameters for the container entrypoint script.
type EntrypointData struct {
	SpecBasename string   // Spec file name under rpmbuild/SPECS.
	PreCommands  []string // Shell lines executed before rpmbuild.
	PostCommands []string // Shell lines executed after rpmbuild.
}

// A file copied from the build context into the image.
type LocalSource struct {
	Basename string
}

// A file fetched by URL during the image build.
type RemoteSource struct {
	URL      string
	Basename string
}

// Parameters for the build image definition.
type DockerfileData struct {
	Image         string         // Base image reference.
	SetupCommands []string       // Dockerfile lines injected before package setup.
	SpecBasename  string         // Spec file name copied into rpmbuild/SPECS.
	BuildRequires string         // Space-joined build requirement names; empty omits the install step.
	LocalSources  []LocalSource  // Files copied into rpmbuild/SOURCES.
	RemoteSources []RemoteSource // URLs fetched into rpmbuild/SOURCES.
}

// Renders the entrypoint script executed as the build container's process.
func Entrypoint(data EntrypointData) (string, error) {
	return render("entrypoint.sh.tmpl", data)
}

// Renders the image definition consumed by the engine's build operation.
func Dockerfile(data DockerfileData) (string, error) {
	return render("dockerfile.tmpl", data)
}

// Parses and executes an embedded template with the given data.
//
// Missing keys are errors rather than silently rendering empty text.
func render(name string, data any) (string, error) {
	tpl, err := template.New(name).Option("missingkey=error").ParseFS(files, name)
	if err != nil {
		return "", fmt.Errorf("parse template %s: %w", name, err)
	}

	var buf bytes.Buffer
	if err := tpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("render template %s: %w", name, err)
	}
	return buf.String(), nil
}
