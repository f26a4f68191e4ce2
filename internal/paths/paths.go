package paths

import (
	"os"
	"path/filepath"

	"github.com/adrg/xdg"
)

const (

	// Name used for directory and file naming.
	toolName = "rpmkiln"

	// Default permission mode for directories.
	DefaultDirMode os.FileMode = 0755

	// Default permission mode for files.
	DefaultFileMode os.FileMode = 0644

	// Permission mode for generated executable scripts.
	ScriptFileMode os.FileMode = 0555
)

// Default path to the configuration file.
//
//	Linux:   ~/.config/rpmkiln/rpmkiln.yaml
//	macOS:   ~/Library/Application Support/rpmkiln/rpmkiln.yaml
func ConfigFile() string {
	return filepath.Join(xdg.ConfigHome, toolName, "rpmkiln.yaml")
}

// Default directory for extracted package artifacts, relative to the
// working directory.
func DefaultOutput() string {
	return filepath.Join("dist", "rpmbuild")
}
