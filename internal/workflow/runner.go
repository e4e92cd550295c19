package workflow

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/gofrs/flock"
	"github.com/google/uuid"
	"github.com/schollz/progressbar/v3"

	"github.com/rzimmerman2022/PDF-OCR-Automation/internal/config"
	"github.com/rzimmerman2022/PDF-OCR-Automation/internal/logging"
	"github.com/rzimmerman2022/PDF-OCR-Automation/internal/naming"
	"github.com/rzimmerman2022/PDF-OCR-Automation/internal/ocr"
	"github.com/rzimmerman2022/PDF-OCR-Automation/internal/pdftext"
	"github.com/rzimmerman2022/PDF-OCR-Automation/internal/rename"
	"github.com/rzimmerman2022/PDF-OCR-Automation/internal/scanner"
	"github.com/rzimmerman2022/PDF-OCR-Automation/internal/services"
)

// LockFileName is the per-directory lock that serializes runs.
const LockFileName = ".pdfocr.lock"

// ErrDirectoryLocked indicates another run holds the directory lock.
var ErrDirectoryLocked = errors.New("directory is locked by another run")

// OCRStage processes one file in place.
type OCRStage interface {
	ProcessFile(ctx context.Context, path string) (ocr.Outcome, error)
}

// RenameStage renames one file from its content.
type RenameStage interface {
	RenameFile(ctx context.Context, path string) (rename.Result, error)
}

// FileResult records everything that happened to one file during a run.
type FileResult struct {
	Path    string         `json:"path"`
	HasText bool           `json:"has_text"`
	OCR     *ocr.Outcome   `json:"ocr,omitempty"`
	Rename  *rename.Result `json:"rename,omitempty"`
	Error   string         `json:"error,omitempty"`
	Review  bool           `json:"needs_review,omitempty"`
}

// Summary aggregates a run.
type Summary struct {
	RunID      string             `json:"run_id"`
	Directory  string             `json:"directory"`
	StartedAt  time.Time          `json:"started_at"`
	FinishedAt time.Time          `json:"finished_at"`
	Files      []FileResult       `json:"files"`
	Collisions []naming.Collision `json:"collisions,omitempty"`

	Scanned        int `json:"scanned"`
	AlreadyHadText int `json:"already_had_text"`
	OCRProcessed   int `json:"ocr_processed"`
	Renamed        int `json:"renamed"`
	Skipped        int `json:"skipped"`
	Review         int `json:"needs_review"`
	Failed         int `json:"failed"`
}

// RunOptions selects which stages a run executes. When Files is non-empty
// the run covers exactly those paths instead of walking the directory.
type RunOptions struct {
	OCR      bool
	Rename   bool
	ForceOCR bool
	Progress bool
	Files    []string
}

// Runner drives the linear batch pipeline.
type Runner struct {
	cfg     *config.Config
	ocr     OCRStage
	renamer RenameStage
	logger  *slog.Logger

	sleep func(time.Duration)
	probe func(path string, samplePages, minTextChars int) (pdftext.Result, error)
}

// NewRunner constructs a Runner. Stages left nil are skipped even when the
// run options request them.
func NewRunner(cfg *config.Config, ocrStage OCRStage, renameStage RenameStage, logger *slog.Logger) *Runner {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Runner{
		cfg:     cfg,
		ocr:     ocrStage,
		renamer: renameStage,
		logger:  logger,
		sleep:   time.Sleep,
		probe:   pdftext.Probe,
	}
}

// Run executes the selected stages over every PDF in dir, one file at a
// time, and writes the run report before returning.
func (r *Runner) Run(ctx context.Context, dir string, opts RunOptions) (*Summary, error) {
	lock := flock.New(filepath.Join(dir, LockFileName))
	locked, err := lock.TryLock()
	if err != nil {
		return nil, fmt.Errorf("acquire directory lock: %w", err)
	}
	if !locked {
		return nil, fmt.Errorf("%w: %s", ErrDirectoryLocked, dir)
	}
	defer func() {
		_ = lock.Unlock()
		_ = os.Remove(lock.Path())
	}()

	files := opts.Files
	if len(files) == 0 {
		files, err = scanner.CollectPDFs(dir)
		if err != nil {
			return nil, err
		}
	}

	summary := &Summary{
		RunID:     uuid.NewString(),
		Directory: dir,
		StartedAt: time.Now().UTC(),
		Scanned:   len(files),
	}
	ctx = services.WithRequestID(ctx, summary.RunID)
	logger := r.logger.With(logging.String(logging.FieldCorrelationID, summary.RunID))
	logger.Info("run started",
		logging.String("directory", dir),
		logging.Int("files", len(files)),
		logging.Bool("ocr", opts.OCR),
		logging.Bool("rename", opts.Rename))

	var bar *progressbar.ProgressBar
	if opts.Progress && len(files) > 0 {
		bar = progressbar.NewOptions(len(files),
			progressbar.OptionSetDescription("processing"),
			progressbar.OptionSetWriter(os.Stderr),
			progressbar.OptionClearOnFinish(),
			progressbar.OptionShowCount())
	}

	delay := time.Duration(r.cfg.Workflow.APICallDelayMS) * time.Millisecond
	apiCalls := 0

	for _, path := range files {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		result := r.processFile(ctx, path, opts, delay, &apiCalls)
		summary.Files = append(summary.Files, result)
		r.tally(summary, result)
		if bar != nil {
			_ = bar.Add(1)
		}
	}
	if bar != nil {
		_ = bar.Finish()
	}

	summary.FinishedAt = time.Now().UTC()
	if err := r.writeReport(summary); err != nil {
		logger.Warn("run report not written", logging.Error(err))
	}
	logger.Info("run finished",
		logging.Int("renamed", summary.Renamed),
		logging.Int("ocr_processed", summary.OCRProcessed),
		logging.Int("needs_review", summary.Review),
		logging.Int("failed", summary.Failed))
	return summary, nil
}

func (r *Runner) processFile(ctx context.Context, path string, opts RunOptions, delay time.Duration, apiCalls *int) FileResult {
	result := FileResult{Path: path}
	ctx = services.WithFile(ctx, path)
	logger := logging.WithContext(ctx, r.logger)

	probe, err := r.probe(path, r.cfg.Detection.SamplePages, r.cfg.Detection.MinTextChars)
	if err != nil {
		result.Error = err.Error()
		logger.Warn("probe failed", logging.Error(err))
		return result
	}
	result.HasText = probe.HasText

	if opts.OCR && r.ocr != nil && (!probe.HasText || opts.ForceOCR) {
		outcome, ocrErr := r.ocr.ProcessFile(services.WithStage(ctx, "ocr"), path)
		if ocrErr != nil {
			result.Error = ocrErr.Error()
			result.Review = services.NeedsReview(ocrErr)
			logger.Warn("ocr failed", logging.Error(ocrErr))
			return result
		}
		result.OCR = &outcome
		result.HasText = true
	}

	if opts.Rename && r.renamer != nil {
		// Pace consecutive cloud calls with the configured fixed delay.
		if *apiCalls > 0 && delay > 0 {
			r.sleep(delay)
		}
		renameResult, renameErr := r.renamer.RenameFile(services.WithStage(ctx, "rename"), path)
		if renameErr == nil && !renameResult.Cached {
			*apiCalls++
		}
		if renameErr != nil {
			*apiCalls++
			result.Error = renameErr.Error()
			result.Review = services.NeedsReview(renameErr)
			logger.Warn("rename failed", logging.Error(renameErr))
			return result
		}
		result.Rename = &renameResult
		if renameResult.Status == rename.StatusReview {
			result.Review = true
		}
	}
	return result
}

func (r *Runner) tally(summary *Summary, result FileResult) {
	if result.Error != "" {
		if result.Review {
			summary.Review++
		} else {
			summary.Failed++
		}
		return
	}
	if result.OCR != nil {
		switch result.OCR.Status {
		case ocr.StatusProcessed:
			summary.OCRProcessed++
		case ocr.StatusAlreadyHadText:
			summary.AlreadyHadText++
		}
	} else if result.HasText {
		summary.AlreadyHadText++
	}
	if result.Rename != nil {
		switch result.Rename.Status {
		case rename.StatusRenamed, rename.StatusDryRun:
			summary.Renamed++
		case rename.StatusSkipped:
			summary.Skipped++
		case rename.StatusReview:
			summary.Review++
		}
		if result.Rename.Collision != nil {
			summary.Collisions = append(summary.Collisions, *result.Rename.Collision)
		}
	}
}

// writeReport persists the run report, and a separate collision log when
// any tie-break fired.
func (r *Runner) writeReport(summary *Summary) error {
	logDir := r.cfg.Paths.LogDir
	if logDir == "" {
		return errors.New("log directory not configured")
	}
	if err := os.MkdirAll(logDir, 0o755); err != nil {
		return fmt.Errorf("ensure log directory: %w", err)
	}

	reportPath := filepath.Join(logDir, fmt.Sprintf("rename_log_%s.json", summary.RunID))
	if err := writeJSON(reportPath, summary); err != nil {
		return err
	}
	if len(summary.Collisions) > 0 {
		collisionPath := filepath.Join(logDir, fmt.Sprintf("collision_log_%s.json", summary.RunID))
		if err := writeJSON(collisionPath, summary.Collisions); err != nil {
			return err
		}
	}
	return r.writeReviewLog(summary)
}

// writeReviewLog records files flagged for manual review in the review
// directory, so they can be handled without digging through run reports.
func (r *Runner) writeReviewLog(summary *Summary) error {
	var flagged []FileResult
	for _, result := range summary.Files {
		if result.Review {
			flagged = append(flagged, result)
		}
	}
	if len(flagged) == 0 {
		return nil
	}
	reviewDir := r.cfg.Paths.ReviewDir
	if reviewDir == "" {
		return nil
	}
	if err := os.MkdirAll(reviewDir, 0o755); err != nil {
		return fmt.Errorf("ensure review directory: %w", err)
	}
	return writeJSON(filepath.Join(reviewDir, fmt.Sprintf("review_%s.json", summary.RunID)), flagged)
}

func writeJSON(path string, payload any) error {
	data, err := json.MarshalIndent(payload, "", "  ")
	if err != nil {
		return fmt.Errorf("encode %s: %w", filepath.Base(path), err)
	}
	if err := os.WriteFile(path, append(data, '\n'), 0o644); err != nil {
		return fmt.Errorf("write %s: %w", filepath.Base(path), err)
	}
	return nil
}
