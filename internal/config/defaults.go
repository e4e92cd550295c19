package config

const (
	defaultLogDir            = "~/.local/share/pdfocr/logs"
	defaultReviewDir         = "~/.local/share/pdfocr/review"
	defaultCachePath         = "~/.local/share/pdfocr/analysis.db"
	defaultSamplePages       = 3
	defaultMinTextChars      = 10
	defaultMaxPages          = 10
	defaultMaxTextChars      = 5000
	defaultOCRBinary         = "ocrmypdf"
	defaultOCRLanguage       = "eng"
	defaultOCROptimize       = 3
	defaultOCRJPEGQuality    = 85
	defaultOCRPNGQuality     = 85
	defaultOCROversampleDPI  = 300
	defaultOCRTimeoutSeconds = 600
	defaultLLMBaseURL        = "https://generativelanguage.googleapis.com/v1beta/openai/chat/completions"
	defaultLLMModel          = "gemini-2.5-flash"
	defaultLLMTimeoutSecs    = 60
	defaultNamingConvention  = ConventionGeneric
	defaultAPICallDelayMS    = 500
	defaultLogFormat         = "console"
	defaultLogLevel          = "info"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			LogDir:    defaultLogDir,
			ReviewDir: defaultReviewDir,
		},
		Detection: Detection{
			SamplePages:  defaultSamplePages,
			MinTextChars: defaultMinTextChars,
			MaxPages:     defaultMaxPages,
			MaxTextChars: defaultMaxTextChars,
		},
		OCR: OCR{
			Binary:         defaultOCRBinary,
			Language:       defaultOCRLanguage,
			RotatePages:    true,
			Deskew:         true,
			Clean:          true,
			ForceOCR:       true,
			Optimize:       defaultOCROptimize,
			JPEGQuality:    defaultOCRJPEGQuality,
			PNGQuality:     defaultOCRPNGQuality,
			OversampleDPI:  defaultOCROversampleDPI,
			TimeoutSeconds: defaultOCRTimeoutSeconds,
		},
		LLM: LLM{
			BaseURL:        defaultLLMBaseURL,
			Model:          defaultLLMModel,
			TimeoutSeconds: defaultLLMTimeoutSecs,
		},
		Naming: Naming{
			Convention:       defaultNamingConvention,
			ChecksumSidecars: true,
		},
		Cache: Cache{
			Enabled: true,
			Path:    defaultCachePath,
		},
		Workflow: Workflow{
			APICallDelayMS: defaultAPICallDelayMS,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
