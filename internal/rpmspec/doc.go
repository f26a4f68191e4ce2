// Package rpmspec models RPM build targets and reads spec file metadata.
//
// A [Target] names a spec file together with the local files and remote URLs
// that populate the rpmbuild SOURCES directory. [BuildRequirements] scans a
// spec file for BuildRequires declarations so the build image can install
// the declared packages before rpmbuild runs.
package rpmspec
