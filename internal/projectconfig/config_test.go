package projectconfig

import (
	"os"
	"path/filepath"
	"testing"
)

func TestNew_ReturnsAllDefaults(t *testing.T) {
	cfg := New()

	assertEqual(t, "Catalog.Path", "", cfg.Catalog.Path)

	// Server
	assertEqualInt(t, "Server.Port", 3000, cfg.Server.Port)
	if len(cfg.Server.AllowedOrigins) != 1 || cfg.Server.AllowedOrigins[0] != "*" {
		t.Errorf("Server.AllowedOrigins = %v, want [*]", cfg.Server.AllowedOrigins)
	}
	if cfg.Server.RateLimit != 20 {
		t.Errorf("Server.RateLimit = %v, want 20", cfg.Server.RateLimit)
	}
	assertEqualInt(t, "Server.RateBurst", 40, cfg.Server.RateBurst)
	assertBoolPtr(t, "Server.NoBrowser", false, cfg.Server.NoBrowser)

	// Output
	assertEqual(t, "Output.Format", "table", cfg.Output.Format)
	assertBoolPtr(t, "Output.Color", true, cfg.Output.Color)

	assertEqualInt(t, "Recommend.Limit", 3, cfg.Recommend.Limit)
}

func TestLoad_FullConfig(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, FileName, `
catalog:
  path: data/models.yaml
server:
  port: 8080
  allowed_origins: ["https://pricing.example.com"]
  rate_limit: 5.5
  rate_burst: 10
  no_browser: true
output:
  format: json
  color: false
recommend:
  limit: 2
`)

	cfg, err := Load(dir)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	assertEqual(t, "Catalog.Path", filepath.Join(dir, "data", "models.yaml"), cfg.Catalog.Path)
	assertEqualInt(t, "Server.Port", 8080, cfg.Server.Port)
	if len(cfg.Server.AllowedOrigins) != 1 || cfg.Server.AllowedOrigins[0] != "https://pricing.example.com" {
		t.Errorf("Server.AllowedOrigins = %v", cfg.Server.AllowedOrigins)
	}
	if cfg.Server.RateLimit != 5.5 {
		t.Errorf("Server.RateLimit = %v, want 5.5", cfg.Server.RateLimit)
	}
	assertEqualInt(t, "Server.RateBurst", 10, cfg.Server.RateBurst)
	assertBoolPtr(t, "Server.NoBrowser", true, cfg.Server.NoBrowser)
	assertEqual(t, "Output.Format", "json", cfg.Output.Format)
	assertBoolPtr(t, "Output.Color", false, cfg.Output.Color)
	assertEqualInt(t, "Recommend.Limit", 2, cfg.Recommend.Limit)
}

func TestLoad_PartialConfig(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, FileName, `
server:
  port: 9090
`)

	cfg, err := Load(dir)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	assertEqualInt(t, "Server.Port", 9090, cfg.Server.Port)
	// Everything else keeps its default.
	assertEqualInt(t, "Server.RateBurst", DefaultRateBurst, cfg.Server.RateBurst)
	assertEqual(t, "Output.Format", DefaultOutputFormat, cfg.Output.Format)
	assertBoolPtr(t, "Output.Color", true, cfg.Output.Color)
	assertEqual(t, "Catalog.Path", "", cfg.Catalog.Path)
}

func TestLoad_AbsoluteCatalogPathKept(t *testing.T) {
	dir := t.TempDir()
	abs := filepath.Join(t.TempDir(), "catalog.yaml")
	writeFile(t, dir, FileName, "catalog:\n  path: "+abs+"\n")

	cfg, err := Load(dir)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	assertEqual(t, "Catalog.Path", abs, cfg.Catalog.Path)
}

func TestLoad_MissingFile_ReturnsDefaults(t *testing.T) {
	dir := t.TempDir()

	cfg, err := Load(dir)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	assertEqualInt(t, "Server.Port", DefaultServerPort, cfg.Server.Port)
	assertEqual(t, "Output.Format", DefaultOutputFormat, cfg.Output.Format)
}

func TestLoad_InvalidYAML_ReturnsError(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, FileName, "server: [unclosed")

	if _, err := Load(dir); err == nil {
		t.Fatal("expected error for invalid YAML")
	}
}

func TestLoad_WalksUpDirectories(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, FileName, "output:\n  format: markdown\n")

	nested := filepath.Join(root, "a", "b", "c")
	if err := os.MkdirAll(nested, 0o755); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(nested)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	assertEqual(t, "Output.Format", "markdown", cfg.Output.Format)
}

func TestLoadFile_Missing(t *testing.T) {
	if _, err := LoadFile(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Fatal("expected error for missing explicit config file")
	}
}

func TestBoolPointerFields(t *testing.T) {
	dir := t.TempDir()
	// Explicit false must override the default true.
	writeFile(t, dir, FileName, "output:\n  color: false\n")

	cfg, err := Load(dir)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	assertBoolPtr(t, "Output.Color", false, cfg.Output.Color)
	assertBoolPtr(t, "Server.NoBrowser", false, cfg.Server.NoBrowser)
}

func writeFile(t *testing.T, dir, name, content string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

func assertEqual(t *testing.T, field, want, got string) {
	t.Helper()
	if got != want {
		t.Errorf("%s = %q, want %q", field, got, want)
	}
}

func assertEqualInt(t *testing.T, field string, want, got int) {
	t.Helper()
	if got != want {
		t.Errorf("%s = %d, want %d", field, got, want)
	}
}

func assertBoolPtr(t *testing.T, field string, want bool, got *bool) {
	t.Helper()
	if got == nil {
		t.Errorf("%s is nil, want *%v", field, want)
		return
	}
	if *got != want {
		t.Errorf("%s = %v, want %v", field, *got, want)
	}
}
