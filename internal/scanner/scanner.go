// Package scanner discovers PDF files in a directory and probes each one
// for an existing searchable text layer.
package scanner

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/rzimmerman2022/PDF-OCR-Automation/internal/fileutil"
	"github.com/rzimmerman2022/PDF-OCR-Automation/internal/logging"
	"github.com/rzimmerman2022/PDF-OCR-Automation/internal/pdftext"
)

// FileStatus describes one probed PDF.
type FileStatus struct {
	Path      string `json:"path"`
	SizeBytes int64  `json:"size_bytes"`
	Pages     int    `json:"pages"`
	TextChars int    `json:"text_chars"`
	WordCount int    `json:"word_count"`
	HasText   bool   `json:"has_text"`
	Sample    string `json:"sample,omitempty"`
	Error     string `json:"error,omitempty"`
}

// Report summarizes a directory scan.
type Report struct {
	Directory string       `json:"directory"`
	ScannedAt time.Time    `json:"scanned_at"`
	Files     []FileStatus `json:"files"`
	WithText  int          `json:"with_text"`
	NeedOCR   int          `json:"need_ocr"`
	Failed    int          `json:"failed"`
}

// Scanner probes directories of PDFs for searchable text.
type Scanner struct {
	samplePages  int
	minTextChars int
	logger       *slog.Logger
}

// New constructs a Scanner with the given detection thresholds.
func New(samplePages, minTextChars int, logger *slog.Logger) *Scanner {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Scanner{samplePages: samplePages, minTextChars: minTextChars, logger: logger}
}

// CollectPDFs lists the PDF files directly inside dir, sorted by name.
// Backup copies and extraction artifacts are skipped.
func CollectPDFs(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read directory %s: %w", dir, err)
	}
	var paths []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		if fileutil.IsBackup(name) {
			continue
		}
		if !strings.EqualFold(filepath.Ext(name), ".pdf") {
			continue
		}
		paths = append(paths, filepath.Join(dir, name))
	}
	sort.Strings(paths)
	return paths, nil
}

// ScanDirectory probes every PDF in dir and reports which need OCR.
func (s *Scanner) ScanDirectory(ctx context.Context, dir string) (*Report, error) {
	paths, err := CollectPDFs(dir)
	if err != nil {
		return nil, err
	}

	report := &Report{
		Directory: dir,
		ScannedAt: time.Now().UTC(),
		Files:     make([]FileStatus, 0, len(paths)),
	}
	for _, path := range paths {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		status := s.probe(path)
		report.Files = append(report.Files, status)
		switch {
		case status.Error != "":
			report.Failed++
		case status.HasText:
			report.WithText++
		default:
			report.NeedOCR++
		}
	}

	s.logger.Info("directory scan complete",
		logging.String("directory", dir),
		logging.Int("files", len(report.Files)),
		logging.Int("with_text", report.WithText),
		logging.Int("need_ocr", report.NeedOCR),
		logging.Int("failed", report.Failed))
	return report, nil
}

func (s *Scanner) probe(path string) FileStatus {
	status := FileStatus{Path: path}
	if info, err := os.Stat(path); err == nil {
		status.SizeBytes = info.Size()
	}
	result, err := pdftext.Probe(path, s.samplePages, s.minTextChars)
	if err != nil {
		status.Error = err.Error()
		s.logger.Warn("probe failed",
			logging.String(logging.FieldFile, path),
			logging.Error(err))
		return status
	}
	status.Pages = result.Pages
	status.TextChars = result.TextChars
	status.WordCount = result.WordCount
	status.HasText = result.HasText
	status.Sample = result.Sample
	return status
}
