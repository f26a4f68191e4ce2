package config

import (
	"errors"
	"fmt"
	"os"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/kilnworks/rpmkiln/internal/paths"
	"github.com/kilnworks/rpmkiln/internal/rpmspec"
)

// Returned when the selected platform id is not in the platform table.
var ErrUnknownPlatform = errors.New("unknown platform")

// Placeholder substituted with the platform id in context file paths and
// setup command templates.
const platformPlaceholder = "{platform_id}"

// Describes one buildable distribution.
type Platform struct {
	ID   string `yaml:"-"`    // Platform identifier, filled in from the table key.
	Base string `yaml:"base"` // Base container image reference.
}

// Holds the full run configuration.
//
// The value is built once per run from the config file, environment, and
// command-line flags, and passed explicitly to every component. Nothing
// reads configuration from ambient state after loading.
type Config struct {
	Platforms         map[string]Platform `yaml:"platforms"`           // Supported distributions, id to platform.
	Platform          string              `yaml:"platform"`            // Selected platform id.
	Engine            string              `yaml:"engine"`              // Container engine command to invoke.
	NoCache           bool                `yaml:"no_cache"`            // Disable the engine's image build cache.
	KeepBuildProducts bool                `yaml:"keep_build_products"` // Retain the build context, container, and image.
	ContextFiles      []string            `yaml:"context_files"`       // Extra file path templates copied into the build context.
	SetupCommands     []string            `yaml:"setup_commands"`      // Dockerfile line templates injected into the image definition.
	OutputDir         string              `yaml:"output_dir"`          // Directory for extracted package artifacts.
	ShellBefore       bool                `yaml:"shell_before"`        // Drop to an interactive shell before rpmbuild.
	ShellAfter        bool                `yaml:"shell_after"`         // Drop to an interactive shell after rpmbuild.
	Targets           []rpmspec.Target    `yaml:"targets"`             // Build targets processed in order.
}

// Returns the built-in configuration.
func Default() *Config {
	return &Config{
		Platforms: map[string]Platform{
			"centos6": {Base: "centos:6.8"},
			"centos7": {Base: "centos:7"},
		},
		Platform:  "centos7",
		Engine:    "docker",
		OutputDir: paths.DefaultOutput(),
	}
}

// Loads configuration from a YAML file on top of the defaults.
//
// An empty path falls back to the default location; a missing file there is
// not an error. An explicitly given path must exist.
func Load(path string) (*Config, error) {
	cfg := Default()

	explicit := path != ""
	if !explicit {
		path = paths.ConfigFile()
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if !explicit && os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("read config: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}

	return cfg, nil
}

// Resolves the selected platform id against the platform table.
//
// The returned platform carries its table key as the ID. Resolution failure
// is fatal for the whole run.
func (c *Config) ResolvePlatform() (Platform, error) {
	p, ok := c.Platforms[c.Platform]
	if !ok {
		return Platform{}, fmt.Errorf("%w: %s", ErrUnknownPlatform, c.Platform)
	}
	p.ID = c.Platform
	return p, nil
}

// Returns the platform ids in sorted order.
func (c *Config) PlatformIDs() []string {
	ids := make([]string, 0, len(c.Platforms))
	for id := range c.Platforms {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Substitutes the platform id into a configured template string.
func (p Platform) Substitute(s string) string {
	return strings.ReplaceAll(s, platformPlaceholder, p.ID)
}
