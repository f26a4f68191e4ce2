// Package templates renders the generated build context files.
//
// Two templates are embedded in the binary: the entrypoint script that runs
// rpmbuild inside the container, and the Dockerfile that defines the
// disposable build image. Both are parameterized with flat data structs and
// rendered with missing-key errors enabled.
package templates
