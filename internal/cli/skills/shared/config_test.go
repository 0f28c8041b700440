package shared

import (
	"os"
	"path/filepath"
	"testing"
)

func writeFile(t *testing.T, dir, name, content string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write %s: %v", name, err)
	}
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	tests := []struct {
		name string
		got  string
		want string
	}{
		{"Gin.EntityDir", cfg.Gin.EntityDir, "internal/domain/entity"},
		{"Gin.RepositoryDir", cfg.Gin.RepositoryDir, "internal/domain/repository"},
		{"Gin.RepositoryImplDir", cfg.Gin.RepositoryImplDir, "internal/infrastructure/repository"},
		{"Gin.UsecaseDir", cfg.Gin.UsecaseDir, "internal/usecase"},
		{"Gin.HandlerDir", cfg.Gin.HandlerDir, "internal/handler"},
		{"Gin.InfrastructureDir", cfg.Gin.InfrastructureDir, "internal/infrastructure"},
		{"Gin.MiddlewareDir", cfg.Gin.MiddlewareDir, "pkg/middleware"},
		{"Gin.APIPrefix", cfg.Gin.APIPrefix, "/api/v1"},
		{"Monorepo.Scope", cfg.Monorepo.Scope, "@monorepo"},
		{"PackageRunner", cfg.PackageRunner, "npx"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.got != tt.want {
				t.Errorf("DefaultConfig().%s = %q, want %q", tt.name, tt.got, tt.want)
			}
		})
	}

	if err := ValidateConfig(cfg); err != nil {
		t.Errorf("ValidateConfig(DefaultConfig()) error = %v, want nil", err)
	}
}

func TestLoadConfig_NoFile(t *testing.T) {
	cfg, err := LoadConfig(t.TempDir(), "")
	if err != nil {
		t.Fatalf("LoadConfig() error = %v, want nil", err)
	}

	want := DefaultConfig()
	if cfg.Gin.EntityDir != want.Gin.EntityDir {
		t.Errorf("Gin.EntityDir = %q, want %q", cfg.Gin.EntityDir, want.Gin.EntityDir)
	}
	if cfg.Gin.Port != want.Gin.Port {
		t.Errorf("Gin.Port = %d, want %d", cfg.Gin.Port, want.Gin.Port)
	}
}

func TestLoadConfig_SkillsYaml(t *testing.T) {
	tmp := t.TempDir()
	content := `generate:
  package_runner: bunx
  gin:
    entity_dir: "internal/model"
    docs_title: "Shop API"
    docs_servers:
      - "https://api.example.com"
  monorepo:
    scope: "@acme"
`
	writeFile(t, tmp, "skills.yaml", content)

	cfg, err := LoadConfig(tmp, "")
	if err != nil {
		t.Fatalf("LoadConfig() error = %v, want nil", err)
	}

	tests := []struct {
		name string
		got  string
		want string
	}{
		{"PackageRunner", cfg.PackageRunner, "bunx"},
		{"Gin.EntityDir", cfg.Gin.EntityDir, "internal/model"},
		{"Gin.DocsTitle", cfg.Gin.DocsTitle, "Shop API"},
		{"Gin.HandlerDir", cfg.Gin.HandlerDir, "internal/handler"},
		{"Monorepo.Scope", cfg.Monorepo.Scope, "@acme"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.got != tt.want {
				t.Errorf("LoadConfig().%s = %q, want %q", tt.name, tt.got, tt.want)
			}
		})
	}

	if len(cfg.Gin.DocsServers) != 1 || cfg.Gin.DocsServers[0] != "https://api.example.com" {
		t.Errorf("Gin.DocsServers = %v, want [https://api.example.com]", cfg.Gin.DocsServers)
	}
}

func TestLoadConfig_DotSkillsYamlPriority(t *testing.T) {
	tmp := t.TempDir()

	// Both files exist; .skills.yaml should win
	writeFile(t, tmp, ".skills.yaml", "generate:\n  gin:\n    handler_dir: \"from-dot-skills\"\n")
	writeFile(t, tmp, "skills.yaml", "generate:\n  gin:\n    handler_dir: \"from-skills\"\n")

	cfg, err := LoadConfig(tmp, "")
	if err != nil {
		t.Fatalf("LoadConfig() error = %v, want nil", err)
	}

	if cfg.Gin.HandlerDir != "from-dot-skills" {
		t.Errorf("Gin.HandlerDir = %q, want %q (should prefer .skills.yaml)", cfg.Gin.HandlerDir, "from-dot-skills")
	}
}

func TestLoadConfig_ExplicitPath(t *testing.T) {
	tmp := t.TempDir()
	writeFile(t, tmp, "skills.yaml", "generate:\n  gin:\n    handler_dir: \"ignored\"\n")
	writeFile(t, tmp, "custom.yaml", "generate:\n  gin:\n    handler_dir: \"explicit\"\n")

	cfg, err := LoadConfig(tmp, filepath.Join(tmp, "custom.yaml"))
	if err != nil {
		t.Fatalf("LoadConfig() error = %v, want nil", err)
	}
	if cfg.Gin.HandlerDir != "explicit" {
		t.Errorf("Gin.HandlerDir = %q, want %q", cfg.Gin.HandlerDir, "explicit")
	}

	if _, err := LoadConfig(tmp, filepath.Join(tmp, "missing.yaml")); err == nil {
		t.Error("LoadConfig() error = nil, want error for missing explicit config")
	}
}

func TestLoadConfig_InvalidYAML(t *testing.T) {
	tmp := t.TempDir()
	writeFile(t, tmp, ".skills.yaml", "{{invalid yaml}}")

	_, err := LoadConfig(tmp, "")
	if err == nil {
		t.Fatal("LoadConfig() error = nil, want error for invalid YAML")
	}
}

func TestLoadConfig_ValidationFailures(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"unknown runner", "generate:\n  package_runner: yarn\n"},
		{"absolute dir", "generate:\n  gin:\n    entity_dir: \"/etc\"\n"},
		{"escaping dir", "generate:\n  gin:\n    handler_dir: \"../outside\"\n"},
		{"bad port", "generate:\n  gin:\n    port: 70000\n"},
		{"bad prefix", "generate:\n  gin:\n    api_prefix: \"api\"\n"},
		{"bad server", "generate:\n  gin:\n    docs_servers: [\"not a url\"]\n"},
		{"bad scope", "generate:\n  monorepo:\n    scope: \"acme\"\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tmp := t.TempDir()
			writeFile(t, tmp, "skills.yaml", tt.content)
			if _, err := LoadConfig(tmp, ""); err == nil {
				t.Errorf("LoadConfig() error = nil, want validation error")
			}
		})
	}
}

func TestDetectModule(t *testing.T) {
	tmp := t.TempDir()
	goMod := `module github.com/example/myproject

go 1.21

require (
	github.com/some/dep v1.0.0
)
`
	writeFile(t, tmp, "go.mod", goMod)

	mod, err := DetectModule(tmp)
	if err != nil {
		t.Fatalf("DetectModule() error = %v, want nil", err)
	}
	if mod != "github.com/example/myproject" {
		t.Errorf("DetectModule() = %q, want %q", mod, "github.com/example/myproject")
	}
}

func TestDetectModule_NoGoMod(t *testing.T) {
	_, err := DetectModule(t.TempDir())
	if err == nil {
		t.Fatal("DetectModule() error = nil, want error when go.mod missing")
	}
}

func TestDetectModule_NoModuleLine(t *testing.T) {
	tmp := t.TempDir()
	writeFile(t, tmp, "go.mod", "go 1.21\n")

	_, err := DetectModule(tmp)
	if err == nil {
		t.Fatal("DetectModule() error = nil, want error when module line missing")
	}
}

func TestResolveModule(t *testing.T) {
	tmp := t.TempDir()
	writeFile(t, tmp, "go.mod", "module github.com/auto/detected\n\ngo 1.21\n")

	mod, err := ResolveModule("github.com/custom/mod", tmp)
	if err != nil {
		t.Fatalf("ResolveModule() error = %v", err)
	}
	if mod != "github.com/custom/mod" {
		t.Errorf("ResolveModule() = %q, want %q", mod, "github.com/custom/mod")
	}

	mod, err = ResolveModule("", tmp)
	if err != nil {
		t.Fatalf("ResolveModule() error = %v", err)
	}
	if mod != "github.com/auto/detected" {
		t.Errorf("ResolveModule() = %q, want %q", mod, "github.com/auto/detected")
	}
}

// Prevent a regression: ensure we use filepath conventions correctly
func TestDefaultConfig_PathSeparators(t *testing.T) {
	g := DefaultConfig().Gin
	paths := []string{g.EntityDir, g.RepositoryDir, g.RepositoryImplDir, g.UsecaseDir, g.HandlerDir, g.InfrastructureDir, g.MiddlewareDir}
	for _, p := range paths {
		if p != filepath.ToSlash(p) {
			t.Errorf("path %q contains non-forward-slash separators", p)
		}
	}
}
