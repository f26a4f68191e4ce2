package templates

import (
	"strings"
	"testing"
)

func TestEntrypoint(t *testing.T) {
	script, err := Entrypoint(EntrypointData{SpecBasename: "pkg.spec"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !strings.HasPrefix(script, "#!/bin/sh") {
		t.Errorf("script missing shebang:\n%s", script)
	}
	if !strings.Contains(script, `rpmbuild -ba "rpmbuild/SPECS/pkg.spec"`) {
		t.Errorf("script missing rpmbuild invocation:\n%s", script)
	}
	if strings.Contains(script, "/bin/bash -i") {
		t.Errorf("script contains shell command without shell flags:\n%s", script)
	}
}

func TestEntrypointShellCommands(t *testing.T) {
	script, err := Entrypoint(EntrypointData{
		SpecBasename: "pkg.spec",
		PreCommands:  []string{"/bin/bash -i"},
		PostCommands: []string{"/bin/bash -i"},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	buildLine := strings.Index(script, "rpmbuild -ba")
	first := strings.Index(script, "/bin/bash -i")
	last := strings.LastIndex(script, "/bin/bash -i")

	if first == -1 || first == last {
		t.Fatalf("expected two shell commands:\n%s", script)
	}
	if !(first < buildLine && buildLine < last) {
		t.Errorf("shell commands not around rpmbuild invocation:\n%s", script)
	}
}

func TestDockerfile(t *testing.T) {
	out, err := Dockerfile(DockerfileData{
		Image:         "centos:7",
		SetupCommands: []string{"COPY extra.repo /etc/yum.repos.d/"},
		SpecBasename:  "pkg.spec",
		BuildRequires: "foo bar",
		LocalSources:  []LocalSource{{Basename: "pkg.tar.gz"}},
		RemoteSources: []RemoteSource{{URL: "https://example.com/dep-1.0.tar.gz", Basename: "dep-1.0.tar.gz"}},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	wantLines := []string{
		"FROM centos:7",
		"COPY extra.repo /etc/yum.repos.d/",
		"RUN yum install -y foo bar",
		"COPY --chown=rpmuser pkg.spec rpmbuild/SPECS/",
		"COPY --chown=rpmuser pkg.tar.gz rpmbuild/SOURCES/",
		`RUN curl -fsSL -o "rpmbuild/SOURCES/dep-1.0.tar.gz" "https://example.com/dep-1.0.tar.gz"`,
		"COPY --chown=rpmuser build_rpm.sh .",
		`ENTRYPOINT ["./build_rpm.sh"]`,
	}
	for _, line := range wantLines {
		if !strings.Contains(out, line) {
			t.Errorf("Dockerfile missing %q:\n%s", line, out)
		}
	}

	// Setup commands come before the package setup.
	if strings.Index(out, "COPY extra.repo") > strings.Index(out, "RUN yum install") {
		t.Errorf("setup command rendered after package setup:\n%s", out)
	}
}

func TestDockerfileNoBuildRequires(t *testing.T) {
	out, err := Dockerfile(DockerfileData{
		Image:        "centos:7",
		SpecBasename: "pkg.spec",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if got := strings.Count(out, "RUN yum install"); got != 1 {
		t.Errorf("yum install steps = %d, want 1 (base tooling only):\n%s", got, out)
	}
}
