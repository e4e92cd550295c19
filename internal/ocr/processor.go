package ocr

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/rzimmerman2022/PDF-OCR-Automation/internal/fileutil"
	"github.com/rzimmerman2022/PDF-OCR-Automation/internal/logging"
	"github.com/rzimmerman2022/PDF-OCR-Automation/internal/pdftext"
	"github.com/rzimmerman2022/PDF-OCR-Automation/internal/services"
	"github.com/rzimmerman2022/PDF-OCR-Automation/internal/services/ocrmypdf"
)

// tempSuffix names the sibling file ocrmypdf writes into before the atomic
// swap.
const tempSuffix = ".ocr.tmp.pdf"

// verifyText is swapped in tests to avoid depending on real PDF output.
var verifyText = pdftext.Probe

// Status classifies the outcome of one OCR pass.
type Status string

const (
	StatusProcessed      Status = "processed"
	StatusAlreadyHadText Status = "already_had_text"
)

// Outcome reports what happened to one file.
type Outcome struct {
	Path      string        `json:"path"`
	Status    Status        `json:"status"`
	Pages     int           `json:"pages"`
	TextChars int           `json:"text_chars"`
	Duration  time.Duration `json:"duration"`
}

// Options tunes processor behaviour.
type Options struct {
	SamplePages    int
	MinTextChars   int
	TimeoutSeconds int
	KeepBackup     bool
}

// Processor runs the OCR stage for individual files.
type Processor struct {
	client ocrmypdf.Client
	opts   Options
	logger *slog.Logger
}

// NewProcessor constructs a Processor around an OCR client.
func NewProcessor(client ocrmypdf.Client, opts Options, logger *slog.Logger) *Processor {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Processor{client: client, opts: opts, logger: logger}
}

// ProcessFile OCRs a single PDF in place. The original is only replaced
// after the new file is verified to carry a text layer.
func (p *Processor) ProcessFile(ctx context.Context, path string) (Outcome, error) {
	started := time.Now()
	outcome := Outcome{Path: path}
	logger := logging.WithContext(services.WithFile(ctx, path), p.logger)

	backupPath := fileutil.BackupPath(path)
	if err := fileutil.CopyFileVerified(path, backupPath); err != nil {
		return outcome, services.Wrap(services.ErrExternalTool, "ocr", "backup", "create backup copy", err)
	}

	tempPath := path + tempSuffix
	runCtx := ctx
	if p.opts.TimeoutSeconds > 0 {
		var cancel context.CancelFunc
		runCtx, cancel = context.WithTimeout(ctx, time.Duration(p.opts.TimeoutSeconds)*time.Second)
		defer cancel()
	}

	err := p.client.Process(runCtx, path, tempPath)
	if err != nil {
		removeQuietly(tempPath)
		if ocrmypdf.AlreadyHasText(err) {
			removeQuietly(backupPath)
			outcome.Status = StatusAlreadyHadText
			outcome.Duration = time.Since(started)
			logger.Info("text layer already present, skipping OCR")
			return outcome, nil
		}
		removeQuietly(backupPath)
		if runCtx.Err() != nil && ctx.Err() == nil {
			return outcome, services.Wrap(services.ErrTimeout, "ocr", "process", "ocr run exceeded time limit", err)
		}
		return outcome, services.Wrap(services.ErrExternalTool, "ocr", "process", "ocrmypdf failed", err)
	}

	probe, err := verifyText(tempPath, p.opts.SamplePages, p.opts.MinTextChars)
	if err != nil {
		removeQuietly(tempPath)
		removeQuietly(backupPath)
		return outcome, services.Wrap(services.ErrExternalTool, "ocr", "verify", "probe OCR output", err)
	}
	if !probe.HasText {
		removeQuietly(tempPath)
		removeQuietly(backupPath)
		return outcome, services.Wrap(services.ErrExternalTool, "ocr", "verify", "ocr output carries no text layer", fmt.Errorf("%d chars extracted", probe.TextChars))
	}

	if err := os.Rename(tempPath, path); err != nil {
		removeQuietly(tempPath)
		return outcome, services.Wrap(services.ErrExternalTool, "ocr", "replace", "swap processed file into place", err)
	}
	if !p.opts.KeepBackup {
		removeQuietly(backupPath)
	}

	outcome.Status = StatusProcessed
	outcome.Pages = probe.Pages
	outcome.TextChars = probe.TextChars
	outcome.Duration = time.Since(started)
	logger.Info("ocr complete",
		logging.Int("pages", outcome.Pages),
		logging.Int("text_chars", outcome.TextChars),
		logging.Duration("duration", outcome.Duration))
	return outcome, nil
}

func removeQuietly(path string) {
	_ = os.Remove(path)
}
