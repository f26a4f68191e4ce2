// Provides platform-appropriate paths and permission modes for the tool.
//
// The configuration file follows XDG conventions on Linux and platform-native
// conventions on macOS and Windows. The tool name "rpmkiln" is used as the
// subdirectory under each base path.
package paths
