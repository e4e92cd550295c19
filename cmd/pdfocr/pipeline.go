package main

import (
	"fmt"
	"log/slog"

	"github.com/rzimmerman2022/PDF-OCR-Automation/internal/analysiscache"
	"github.com/rzimmerman2022/PDF-OCR-Automation/internal/config"
	"github.com/rzimmerman2022/PDF-OCR-Automation/internal/identify"
	"github.com/rzimmerman2022/PDF-OCR-Automation/internal/logging"
	"github.com/rzimmerman2022/PDF-OCR-Automation/internal/ocr"
	"github.com/rzimmerman2022/PDF-OCR-Automation/internal/rename"
	"github.com/rzimmerman2022/PDF-OCR-Automation/internal/services/llm"
	"github.com/rzimmerman2022/PDF-OCR-Automation/internal/services/ocrmypdf"
)

func buildLogger(cfg *config.Config) (*slog.Logger, error) {
	logger, err := logging.NewForRun(cfg.Logging.Level, cfg.Logging.Format, cfg.Paths.LogDir)
	if err != nil {
		return nil, fmt.Errorf("initialize logging: %w", err)
	}
	return logger, nil
}

func newOCRStage(cfg *config.Config, logger *slog.Logger) *ocr.Processor {
	client := ocrmypdf.NewCLI(ocrmypdf.Settings{
		Language:      cfg.OCR.Language,
		RotatePages:   cfg.OCR.RotatePages,
		Deskew:        cfg.OCR.Deskew,
		Clean:         cfg.OCR.Clean,
		ForceOCR:      cfg.OCR.ForceOCR,
		Optimize:      cfg.OCR.Optimize,
		JPEGQuality:   cfg.OCR.JPEGQuality,
		PNGQuality:    cfg.OCR.PNGQuality,
		OversampleDPI: cfg.OCR.OversampleDPI,
	}, ocrmypdf.WithBinary(cfg.OCRBinary()))

	return ocr.NewProcessor(client, ocr.Options{
		SamplePages:    cfg.Detection.SamplePages,
		MinTextChars:   cfg.Detection.MinTextChars,
		TimeoutSeconds: cfg.OCR.TimeoutSeconds,
		KeepBackup:     cfg.OCR.KeepBackup,
	}, logging.NewComponentLogger(logger, "ocr"))
}

type renameStageOptions struct {
	convention string
	dryRun     bool
	useCache   bool
}

// newRenameStage wires the model client, analyzer, and optional analysis
// cache into a renamer. The returned closer releases the cache database.
func newRenameStage(cfg *config.Config, logger *slog.Logger, stageOpts renameStageOptions) (*rename.Renamer, func() error, error) {
	if err := cfg.RequireLLM(); err != nil {
		return nil, nil, err
	}

	convention := stageOpts.convention
	maxLength := cfg.Naming.MaxLength
	if convention == "" {
		convention = cfg.Naming.Convention
	} else if convention != cfg.Naming.Convention {
		maxLength = config.DefaultMaxLength(convention)
	}
	if convention != config.ConventionGeneric && convention != config.ConventionEstate {
		return nil, nil, fmt.Errorf("unknown naming convention %q", convention)
	}

	client := llm.NewClient(llm.Config{
		APIKey:         cfg.LLM.APIKey,
		BaseURL:        cfg.LLM.BaseURL,
		Model:          cfg.LLM.Model,
		Referer:        cfg.LLM.Referer,
		Title:          cfg.LLM.Title,
		TimeoutSeconds: cfg.LLM.TimeoutSeconds,
	})
	analyzer := identify.NewAnalyzer(client)

	var cache rename.Cache
	closer := func() error { return nil }
	if stageOpts.useCache && cfg.Cache.Enabled {
		store, err := analysiscache.Open(cfg.Cache.Path)
		if err != nil {
			return nil, nil, fmt.Errorf("open analysis cache: %w", err)
		}
		cache = store
		closer = store.Close
	}

	renamer := rename.NewRenamer(analyzer, cache, rename.Options{
		Convention:       convention,
		MaxLength:        maxLength,
		MaxPages:         cfg.Detection.MaxPages,
		MaxTextChars:     cfg.Detection.MaxTextChars,
		Model:            cfg.LLM.Model,
		ChecksumSidecars: cfg.Naming.ChecksumSidecars,
		DryRun:           stageOpts.dryRun,
	}, logging.NewComponentLogger(logger, "rename"))
	return renamer, closer, nil
}
