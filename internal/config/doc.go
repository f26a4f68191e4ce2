// Package config loads and validates the run configuration.
//
// Configuration comes from a YAML file (by default under the XDG config
// directory), overlaid on built-in defaults and further overridden by
// command-line flags in the cli package. The platform table maps platform
// ids to base container images; selecting an id not present in the table is
// a fatal error surfaced before any target is processed.
package config
