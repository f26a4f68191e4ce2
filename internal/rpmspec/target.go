package rpmspec

import "path/filepath"

// Describes one RPM package to build.
//
// Targets are declared in the run configuration or derived from spec file
// paths passed on the command line. The build pipeline treats targets as
// read-only input.
type Target struct {
	Spec          string   `yaml:"spec"`                     // Path to the RPM spec file.
	Sources       []string `yaml:"sources,omitempty"`        // Local source files copied into the build context.
	RemoteSources []string `yaml:"remote_sources,omitempty"` // Source URLs fetched inside the build container.
}

// Returns the spec file's base name, used to label the target in logs.
func (t Target) Name() string {
	return filepath.Base(t.Spec)
}
