package config

import "strings"

// DefaultMaxLength returns the filename length ceiling for a convention.
// The estate ceiling leaves room for a "-NN" tie-breaker suffix.
func DefaultMaxLength(convention string) int {
	if convention == ConventionEstate {
		return 140
	}
	return 60
}

// normalize expands paths and fills derived defaults after decode.
func (c *Config) normalize() error {
	var err error
	if c.Paths.LogDir, err = expandPath(c.Paths.LogDir); err != nil {
		return err
	}
	if c.Paths.ReviewDir, err = expandPath(c.Paths.ReviewDir); err != nil {
		return err
	}
	if c.Cache.Path, err = expandPath(c.Cache.Path); err != nil {
		return err
	}

	c.OCR.Binary = strings.TrimSpace(c.OCR.Binary)
	c.OCR.Language = strings.TrimSpace(c.OCR.Language)
	if c.OCR.Language == "" {
		c.OCR.Language = defaultOCRLanguage
	}

	c.LLM.APIKey = strings.TrimSpace(c.LLM.APIKey)
	c.LLM.BaseURL = strings.TrimSpace(c.LLM.BaseURL)
	c.LLM.Model = strings.TrimSpace(c.LLM.Model)

	c.Naming.Convention = strings.ToLower(strings.TrimSpace(c.Naming.Convention))
	if c.Naming.Convention == "" {
		c.Naming.Convention = defaultNamingConvention
	}
	if c.Naming.MaxLength <= 0 {
		c.Naming.MaxLength = DefaultMaxLength(c.Naming.Convention)
	}

	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	if c.Logging.Format == "" {
		c.Logging.Format = defaultLogFormat
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
	return nil
}
