// Package config loads, normalizes, and validates the pdfocr TOML
// configuration. API keys may also arrive through the environment or a
// .env file, which takes precedence over the file contents.
package config
