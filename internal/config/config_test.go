package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestDefaultValidates(t *testing.T) {
	cfg := Default()
	if err := cfg.normalize(); err != nil {
		t.Fatalf("normalize: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate: %v", err)
	}
	if cfg.Naming.MaxLength != 60 {
		t.Fatalf("expected generic max length 60, got %d", cfg.Naming.MaxLength)
	}
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, _, exists, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if exists {
		t.Fatal("expected exists=false for missing config")
	}
	if cfg.OCR.Language != "eng" {
		t.Fatalf("expected default language, got %q", cfg.OCR.Language)
	}
}

func TestLoadParsesOverrides(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "pdfocr.toml")
	body := strings.Join([]string{
		"[ocr]",
		`language = "deu"`,
		"optimize = 1",
		"",
		"[naming]",
		`convention = "estate"`,
	}, "\n")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, resolved, exists, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if !exists {
		t.Fatal("expected config file to be found")
	}
	if resolved != path {
		t.Fatalf("resolved path %q != %q", resolved, path)
	}
	if cfg.OCR.Language != "deu" {
		t.Fatalf("language = %q", cfg.OCR.Language)
	}
	if cfg.OCR.Optimize != 1 {
		t.Fatalf("optimize = %d", cfg.OCR.Optimize)
	}
	if cfg.Naming.Convention != ConventionEstate {
		t.Fatalf("convention = %q", cfg.Naming.Convention)
	}
	if cfg.Naming.MaxLength != 140 {
		t.Fatalf("expected estate max length 140, got %d", cfg.Naming.MaxLength)
	}
}

func TestLoadRejectsBadConvention(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "pdfocr.toml")
	if err := os.WriteFile(path, []byte("[naming]\nconvention = \"chaotic\"\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, _, _, err := Load(path); err == nil {
		t.Fatal("expected validation error for unknown convention")
	}
}

func TestEnvironmentOverridesAPIKey(t *testing.T) {
	t.Setenv("LLM_API_KEY", "env-key")
	cfg, _, _, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.LLM.APIKey != "env-key" {
		t.Fatalf("expected env override, got %q", cfg.LLM.APIKey)
	}
}

func TestRequireLLM(t *testing.T) {
	cfg := Default()
	cfg.LLM.APIKey = ""
	if err := cfg.RequireLLM(); err == nil {
		t.Fatal("expected error without api key")
	}
	cfg.LLM.APIKey = "k"
	if err := cfg.RequireLLM(); err != nil {
		t.Fatalf("RequireLLM: %v", err)
	}
}

func TestExpandPathTilde(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skip("no home directory")
	}
	got, err := ExpandPath("~/x/y")
	if err != nil {
		t.Fatal(err)
	}
	if got != filepath.Join(home, "x", "y") {
		t.Fatalf("ExpandPath = %q", got)
	}
}

func TestCreateSample(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sub", "config.toml")
	if err := CreateSample(path); err != nil {
		t.Fatalf("CreateSample: %v", err)
	}
	body, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(body), "[ocr]") {
		t.Fatal("sample config missing [ocr] section")
	}
}
