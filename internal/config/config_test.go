package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg.Platform != "centos7" {
		t.Fatalf("Platform = %q, want %q", cfg.Platform, "centos7")
	}
	if cfg.Engine != "docker" {
		t.Fatalf("Engine = %q, want %q", cfg.Engine, "docker")
	}
	if cfg.Platforms["centos7"].Base != "centos:7" {
		t.Fatalf("centos7 base = %q, want %q", cfg.Platforms["centos7"].Base, "centos:7")
	}
	if cfg.OutputDir == "" {
		t.Fatal("OutputDir is empty")
	}
	if cfg.KeepBuildProducts || cfg.NoCache || cfg.ShellBefore || cfg.ShellAfter {
		t.Fatal("boolean options must default to false")
	}
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rpmkiln.yaml")
	content := `
platform: rocky9
engine: podman
output_dir: out/rpms
no_cache: true
platforms:
  rocky9:
    base: rockylinux:9
setup_commands:
  - "COPY {platform_id}.repo /etc/yum.repos.d/"
targets:
  - spec: pkg/a.spec
    sources: [pkg/a.tar.gz]
    remote_sources: ["https://example.com/b-1.0.tar.gz"]
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Platform != "rocky9" {
		t.Errorf("Platform = %q, want %q", cfg.Platform, "rocky9")
	}
	if cfg.Engine != "podman" {
		t.Errorf("Engine = %q, want %q", cfg.Engine, "podman")
	}
	if !cfg.NoCache {
		t.Error("NoCache = false, want true")
	}
	if cfg.OutputDir != "out/rpms" {
		t.Errorf("OutputDir = %q, want %q", cfg.OutputDir, "out/rpms")
	}

	// File entries extend the built-in platform table.
	if cfg.Platforms["rocky9"].Base != "rockylinux:9" {
		t.Errorf("rocky9 base = %q, want %q", cfg.Platforms["rocky9"].Base, "rockylinux:9")
	}
	if _, ok := cfg.Platforms["centos7"]; !ok {
		t.Error("built-in centos7 platform missing after load")
	}

	if len(cfg.Targets) != 1 {
		t.Fatalf("len(Targets) = %d, want 1", len(cfg.Targets))
	}
	target := cfg.Targets[0]
	if target.Spec != "pkg/a.spec" {
		t.Errorf("Spec = %q, want %q", target.Spec, "pkg/a.spec")
	}
	if len(target.Sources) != 1 || target.Sources[0] != "pkg/a.tar.gz" {
		t.Errorf("Sources = %v", target.Sources)
	}
	if len(target.RemoteSources) != 1 {
		t.Errorf("RemoteSources = %v", target.RemoteSources)
	}
}

func TestLoadExplicitMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Fatal("expected error, got nil")
	}
}

func TestLoadInvalidYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rpmkiln.yaml")
	if err := os.WriteFile(path, []byte("platform: [unterminated"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Fatal("expected error, got nil")
	}
}

func TestResolvePlatform(t *testing.T) {
	cfg := Default()

	p, err := cfg.ResolvePlatform()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.ID != "centos7" {
		t.Errorf("ID = %q, want %q", p.ID, "centos7")
	}
	if p.Base != "centos:7" {
		t.Errorf("Base = %q, want %q", p.Base, "centos:7")
	}
}

func TestResolvePlatformUnknown(t *testing.T) {
	cfg := Default()
	cfg.Platform = "fedora41"

	_, err := cfg.ResolvePlatform()
	if !errors.Is(err, ErrUnknownPlatform) {
		t.Fatalf("error = %v, want ErrUnknownPlatform", err)
	}
}

func TestPlatformIDs(t *testing.T) {
	cfg := Default()
	ids := cfg.PlatformIDs()

	want := []string{"centos6", "centos7"}
	if len(ids) != len(want) {
		t.Fatalf("len = %d, want %d", len(ids), len(want))
	}
	for i := range ids {
		if ids[i] != want[i] {
			t.Errorf("ids[%d] = %q, want %q", i, ids[i], want[i])
		}
	}
}

func TestPlatformSubstitute(t *testing.T) {
	p := Platform{ID: "centos7", Base: "centos:7"}

	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "placeholder replaced",
			input: "configs/{platform_id}/extra.repo",
			want:  "configs/centos7/extra.repo",
		},
		{
			name:  "multiple placeholders",
			input: "{platform_id}-{platform_id}",
			want:  "centos7-centos7",
		},
		{
			name:  "no placeholder",
			input: "plain.txt",
			want:  "plain.txt",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := p.Substitute(tt.input); got != tt.want {
				t.Errorf("Substitute(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}
