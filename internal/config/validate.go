package config

import (
	"errors"
	"fmt"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateDetection(); err != nil {
		return err
	}
	if err := c.validateOCR(); err != nil {
		return err
	}
	if err := c.validateNaming(); err != nil {
		return err
	}
	if err := c.validateWorkflow(); err != nil {
		return err
	}
	if err := c.validateLogging(); err != nil {
		return err
	}
	return nil
}

func (c *Config) validateDetection() error {
	if c.Detection.SamplePages <= 0 {
		return errors.New("detection.sample_pages must be positive")
	}
	if c.Detection.MinTextChars < 0 {
		return errors.New("detection.min_text_chars must not be negative")
	}
	if c.Detection.MaxPages <= 0 {
		return errors.New("detection.max_pages must be positive")
	}
	if c.Detection.MaxTextChars <= 0 {
		return errors.New("detection.max_text_chars must be positive")
	}
	return nil
}

func (c *Config) validateOCR() error {
	if c.OCR.Optimize < 0 || c.OCR.Optimize > 3 {
		return errors.New("ocr.optimize must be between 0 and 3")
	}
	if c.OCR.JPEGQuality < 0 || c.OCR.JPEGQuality > 100 {
		return errors.New("ocr.jpeg_quality must be between 0 and 100")
	}
	if c.OCR.PNGQuality < 0 || c.OCR.PNGQuality > 100 {
		return errors.New("ocr.png_quality must be between 0 and 100")
	}
	if c.OCR.OversampleDPI < 0 {
		return errors.New("ocr.oversample_dpi must not be negative")
	}
	if c.OCR.TimeoutSeconds <= 0 {
		return errors.New("ocr.timeout_seconds must be positive")
	}
	return nil
}

func (c *Config) validateNaming() error {
	switch c.Naming.Convention {
	case ConventionGeneric, ConventionEstate:
	default:
		return fmt.Errorf("naming.convention must be %q or %q", ConventionGeneric, ConventionEstate)
	}
	if c.Naming.MaxLength <= 0 {
		return errors.New("naming.max_length must be positive")
	}
	return nil
}

func (c *Config) validateWorkflow() error {
	if c.Workflow.APICallDelayMS < 0 {
		return errors.New("workflow.api_call_delay_ms must not be negative")
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("logging.format must be console or json, got %q", c.Logging.Format)
	}
	return nil
}

// RequireLLM verifies the analysis model settings are present. Called by
// commands that will actually hit the cloud API so scan/ocr work offline.
func (c *Config) RequireLLM() error {
	if c.LLM.APIKey == "" {
		defaultPath, err := DefaultConfigPath()
		if err != nil {
			defaultPath = "~/.config/pdfocr/config.toml"
		}
		return fmt.Errorf("llm.api_key is required. Set LLM_API_KEY or GEMINI_API_KEY, or edit %s (create with 'pdfocr config init')", defaultPath)
	}
	if c.LLM.Model == "" {
		return errors.New("llm.model must be set")
	}
	if c.LLM.BaseURL == "" {
		return errors.New("llm.base_url must be set")
	}
	return nil
}
