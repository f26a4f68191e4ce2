// Parses flags and configures logging for the rpmkiln tool.
//
// The tool accepts the following global flags:
//
//	-q, --quiet    Suppress informational output.
//	-d, --debug    Enable debug output.
//	-c, --config   Path to the configuration file.
//
// Flags override build-time defaults set via linker flags and values from
// the configuration file. After parsing, the global logger is reconfigured
// to reflect the final level before any command runs.
package cli
