package config

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/pelletier/go-toml/v2"
)

//go:embed sample_config.toml
var sampleConfig string

// Paths contains directory configuration.
type Paths struct {
	LogDir    string `toml:"log_dir"`
	ReviewDir string `toml:"review_dir"`
}

// Detection controls how the text-layer probe decides whether a PDF is
// already searchable and how much text is handed to the analysis model.
type Detection struct {
	SamplePages  int `toml:"sample_pages"`
	MinTextChars int `toml:"min_text_chars"`
	MaxPages     int `toml:"max_pages"`
	MaxTextChars int `toml:"max_text_chars"`
}

// OCR contains the ocrmypdf invocation settings.
type OCR struct {
	Binary         string `toml:"binary"`
	Language       string `toml:"language"`
	RotatePages    bool   `toml:"rotate_pages"`
	Deskew         bool   `toml:"deskew"`
	Clean          bool   `toml:"clean"`
	ForceOCR       bool   `toml:"force_ocr"`
	Optimize       int    `toml:"optimize"`
	JPEGQuality    int    `toml:"jpeg_quality"`
	PNGQuality     int    `toml:"png_quality"`
	OversampleDPI  int    `toml:"oversample_dpi"`
	TimeoutSeconds int    `toml:"timeout_seconds"`
	KeepBackup     bool   `toml:"keep_backup"`
}

// LLM contains the cloud model connection settings used for analysis.
type LLM struct {
	APIKey         string `toml:"api_key"`
	BaseURL        string `toml:"base_url"`
	Model          string `toml:"model"`
	Referer        string `toml:"referer"`
	Title          string `toml:"title"`
	TimeoutSeconds int    `toml:"timeout_seconds"`
}

// Naming selects and tunes the filename convention.
type Naming struct {
	Convention       string `toml:"convention"`
	MaxLength        int    `toml:"max_length"`
	ChecksumSidecars bool   `toml:"checksum_sidecars"`
}

// Cache configures the content-addressed analysis cache.
type Cache struct {
	Enabled bool   `toml:"enabled"`
	Path    string `toml:"path"`
}

// Workflow contains batch pacing settings.
type Workflow struct {
	APICallDelayMS int `toml:"api_call_delay_ms"`
}

// Logging contains configuration for log output.
type Logging struct {
	Format string `toml:"format"`
	Level  string `toml:"level"`
}

// Naming convention identifiers accepted in naming.convention.
const (
	ConventionGeneric = "generic"
	ConventionEstate  = "estate"
)

// Config encapsulates all configuration values for pdfocr.
type Config struct {
	Paths     Paths     `toml:"paths"`
	Detection Detection `toml:"detection"`
	OCR       OCR       `toml:"ocr"`
	LLM       LLM       `toml:"llm"`
	Naming    Naming    `toml:"naming"`
	Cache     Cache     `toml:"cache"`
	Workflow  Workflow  `toml:"workflow"`
	Logging   Logging   `toml:"logging"`
}

// DefaultConfigPath returns the absolute path to the default configuration file location.
func DefaultConfigPath() (string, error) {
	return expandPath("~/.config/pdfocr/config.toml")
}

// Load locates, parses, and validates a configuration file. The returned
// config has all path fields expanded and normalized, and API keys overlaid
// from the environment. The boolean reports whether a file was found.
func Load(path string) (*Config, string, bool, error) {
	cfg := Default()

	resolvedPath, exists, err := resolveConfigPath(path)
	if err != nil {
		return nil, "", false, err
	}

	if exists {
		file, err := os.Open(resolvedPath)
		if err != nil {
			return nil, "", false, fmt.Errorf("open config: %w", err)
		}
		defer file.Close()

		decoder := toml.NewDecoder(file)
		if err := decoder.Decode(&cfg); err != nil {
			return nil, "", false, fmt.Errorf("parse config: %w", err)
		}
	}

	cfg.overlayEnvironment()

	if err := cfg.normalize(); err != nil {
		return nil, "", false, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, "", false, err
	}

	return &cfg, resolvedPath, exists, nil
}

// overlayEnvironment loads a .env file when present and applies API key
// overrides. Environment values always win over the config file.
func (c *Config) overlayEnvironment() {
	_ = godotenv.Load()
	for _, key := range []string{"LLM_API_KEY", "GEMINI_API_KEY"} {
		if value := strings.TrimSpace(os.Getenv(key)); value != "" {
			c.LLM.APIKey = value
			break
		}
	}
}

func resolveConfigPath(path string) (string, bool, error) {
	if path != "" {
		expanded, err := expandPath(path)
		if err != nil {
			return "", false, err
		}
		_, err = os.Stat(expanded)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return expanded, false, nil
			}
			return "", false, fmt.Errorf("stat config: %w", err)
		}
		return expanded, true, nil
	}

	defaultPath, err := DefaultConfigPath()
	if err != nil {
		return "", false, err
	}

	projectPath, err := filepath.Abs("pdfocr.toml")
	if err != nil {
		return "", false, err
	}

	if info, err := os.Stat(defaultPath); err == nil && !info.IsDir() {
		return defaultPath, true, nil
	}
	if info, err := os.Stat(projectPath); err == nil && !info.IsDir() {
		return projectPath, true, nil
	}

	return defaultPath, false, nil
}

// EnsureDirectories creates the directories pdfocr writes into.
func (c *Config) EnsureDirectories() error {
	for _, dir := range []string{c.Paths.LogDir, c.Paths.ReviewDir} {
		if strings.TrimSpace(dir) == "" {
			continue
		}
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create directory %q: %w", dir, err)
		}
	}
	if c.Cache.Enabled && strings.TrimSpace(c.Cache.Path) != "" {
		if err := os.MkdirAll(filepath.Dir(c.Cache.Path), 0o755); err != nil {
			return fmt.Errorf("create cache directory: %w", err)
		}
	}
	return nil
}

func expandPath(pathValue string) (string, error) {
	if pathValue == "" {
		return pathValue, nil
	}
	if strings.HasPrefix(pathValue, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home directory: %w", err)
		}
		if pathValue == "~" {
			pathValue = home
		} else if len(pathValue) > 1 && (pathValue[1] == '/' || pathValue[1] == '\\') {
			pathValue = filepath.Join(home, pathValue[2:])
		}
	}
	cleaned := filepath.Clean(pathValue)
	absolute, err := filepath.Abs(cleaned)
	if err != nil {
		return "", fmt.Errorf("resolve absolute path for %q: %w", cleaned, err)
	}
	return absolute, nil
}

// ExpandPath exposes the repository path expansion rules for other packages.
func ExpandPath(pathValue string) (string, error) {
	return expandPath(pathValue)
}

// CreateSample writes a sample configuration file to the specified location.
func CreateSample(path string) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create config directory: %w", err)
		}
	}
	if err := os.WriteFile(path, []byte(sampleConfig), 0o644); err != nil {
		return fmt.Errorf("write sample config: %w", err)
	}
	return nil
}

// OCRBinary returns the ocrmypdf executable name.
func (c *Config) OCRBinary() string {
	if strings.TrimSpace(c.OCR.Binary) == "" {
		return "ocrmypdf"
	}
	return c.OCR.Binary
}

// TesseractBinary returns the tesseract executable name used by the OCR engine.
func (c *Config) TesseractBinary() string {
	return "tesseract"
}
