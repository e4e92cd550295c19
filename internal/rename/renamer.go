package rename

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/rzimmerman2022/PDF-OCR-Automation/internal/analysiscache"
	"github.com/rzimmerman2022/PDF-OCR-Automation/internal/config"
	"github.com/rzimmerman2022/PDF-OCR-Automation/internal/identify"
	"github.com/rzimmerman2022/PDF-OCR-Automation/internal/logging"
	"github.com/rzimmerman2022/PDF-OCR-Automation/internal/naming"
	"github.com/rzimmerman2022/PDF-OCR-Automation/internal/pdftext"
	"github.com/rzimmerman2022/PDF-OCR-Automation/internal/services"
)

// Swapped in tests to avoid depending on real PDF fixtures.
var (
	extractText = pdftext.ExtractText
	probeFile   = pdftext.Probe
)

// Status classifies the outcome for one file.
type Status string

const (
	StatusRenamed Status = "renamed"
	StatusSkipped Status = "skipped"
	StatusDryRun  Status = "dry_run"
	StatusReview  Status = "needs_review"
)

// Result records what happened to one file.
type Result struct {
	Path        string            `json:"path"`
	NewPath     string            `json:"new_path,omitempty"`
	Status      Status            `json:"status"`
	Convention  string            `json:"convention"`
	Confidence  string            `json:"confidence,omitempty"`
	Cached      bool              `json:"cached"`
	Collision   *naming.Collision `json:"collision,omitempty"`
	SidecarPath string            `json:"sidecar_path,omitempty"`
	Reason      string            `json:"reason,omitempty"`
}

// Analyzer is the subset of identify.Analyzer the renamer needs.
type Analyzer interface {
	AnalyzeGeneric(ctx context.Context, doc identify.Document) (identify.GenericAnalysis, error)
	AnalyzeEstate(ctx context.Context, doc identify.Document) (identify.EstateAnalysis, error)
}

var _ Analyzer = (*identify.Analyzer)(nil)

// Cache is the subset of the analysis cache the renamer needs. A nil Cache
// disables caching.
type Cache interface {
	Get(ctx context.Context, contentHash, convention string) (*analysiscache.Entry, error)
	Put(ctx context.Context, entry analysiscache.Entry) error
}

// Options tunes renamer behaviour.
type Options struct {
	Convention       string
	MaxLength        int
	MaxPages         int
	MaxTextChars     int
	Model            string
	ChecksumSidecars bool
	DryRun           bool
}

// Renamer applies content-based names to PDF files.
type Renamer struct {
	analyzer Analyzer
	cache    Cache
	opts     Options
	logger   *slog.Logger

	now func() time.Time
}

// NewRenamer constructs a Renamer. cache may be nil to disable caching.
func NewRenamer(analyzer Analyzer, cache Cache, opts Options, logger *slog.Logger) *Renamer {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Renamer{analyzer: analyzer, cache: cache, opts: opts, logger: logger, now: time.Now}
}

// proposal pairs a proposed base name with the analysis it came from.
type proposal struct {
	base       string
	confidence string
	payload    string
	cached     bool
	fallback   bool
}

// RenameFile analyzes one PDF and renames it in place within its directory.
func (r *Renamer) RenameFile(ctx context.Context, path string) (Result, error) {
	result := Result{Path: path, Convention: r.opts.Convention}
	ctx = services.WithFile(ctx, path)
	logger := logging.WithContext(ctx, r.logger)

	text, err := extractText(path, r.opts.MaxPages, r.opts.MaxTextChars)
	if err != nil {
		return result, services.Wrap(services.ErrExternalTool, "rename", "extract", "extract text", err)
	}
	if strings.TrimSpace(text) == "" {
		return result, services.Wrap(services.ErrValidation, "rename", "extract", "no text extracted - may need OCR", nil)
	}

	pages := 0
	if probe, probeErr := probeFile(path, 1, 1); probeErr == nil {
		pages = probe.Pages
	}
	doc := identify.Document{CurrentName: filepath.Base(path), Text: text, Pages: pages}

	contentHash, err := naming.Checksum(path)
	if err != nil {
		return result, services.Wrap(services.ErrExternalTool, "rename", "hash", "hash file contents", err)
	}

	prop, err := r.propose(ctx, contentHash, doc)
	if err != nil {
		return result, err
	}
	result.Confidence = prop.confidence
	result.Cached = prop.cached

	dir := filepath.Dir(path)
	ext := strings.ToLower(filepath.Ext(path))
	currentName := filepath.Base(path)

	if strings.EqualFold(currentName, prop.base+ext) {
		result.Status = StatusSkipped
		result.Reason = "already named"
		logger.Info("rename skipped, name already matches")
		return result, nil
	}

	finalName, collision, err := r.resolve(dir, prop.base, ext)
	if err != nil {
		return result, services.Wrap(services.ErrValidation, "rename", "resolve", "resolve target filename", err)
	}
	result.Collision = collision

	if r.opts.Convention == config.ConventionEstate && !naming.ValidateEstate(finalName) {
		result.Status = StatusReview
		result.Reason = fmt.Sprintf("proposed name %q fails convention validation", finalName)
		logger.Warn("proposed name failed validation", logging.String("proposed", finalName))
		return result, nil
	}

	newPath := filepath.Join(dir, finalName)
	result.NewPath = newPath

	if r.opts.DryRun {
		result.Status = StatusDryRun
		logger.Info("dry run", logging.String("proposed", finalName))
		return result, nil
	}

	if err := os.Rename(path, newPath); err != nil {
		result.NewPath = ""
		return result, services.Wrap(services.ErrExternalTool, "rename", "apply", "rename file", err)
	}
	result.Status = StatusRenamed
	logger.Info("renamed", logging.String("new_name", finalName), logging.Bool("cached", prop.cached))

	if r.opts.Convention == config.ConventionEstate && r.opts.ChecksumSidecars {
		if tag, ok := naming.EstateSecurityTag(finalName); ok && naming.SecurityRequiresChecksum(tag) {
			sidecar, sidecarErr := naming.WriteChecksumSidecar(newPath)
			if sidecarErr != nil {
				logger.Warn("checksum sidecar failed", logging.Error(sidecarErr))
			} else {
				result.SidecarPath = sidecar
			}
		}
	}
	return result, nil
}

func (r *Renamer) propose(ctx context.Context, contentHash string, doc identify.Document) (proposal, error) {
	if r.cache != nil {
		entry, err := r.cache.Get(ctx, contentHash, r.opts.Convention)
		if err == nil {
			return proposal{base: entry.ProposedBase, confidence: entry.Confidence, payload: entry.AnalysisJSON, cached: true}, nil
		}
		if !errors.Is(err, analysiscache.ErrNotFound) {
			return proposal{}, services.Wrap(services.ErrExternalTool, "rename", "cache", "read analysis cache", err)
		}
	}

	var prop proposal
	switch r.opts.Convention {
	case config.ConventionEstate:
		analysis, err := r.analyzer.AnalyzeEstate(ctx, doc)
		if err != nil {
			analysis = identify.FallbackEstate(r.now())
			prop.fallback = true
			r.logger.Warn("analysis failed, using fallback name",
				logging.String(logging.FieldFile, doc.CurrentName),
				logging.Error(err))
		}
		prop.base = analysis.Components.BaseName()
		prop.confidence = analysis.Confidence
		prop.payload = encodeAnalysis(analysis)
	default:
		analysis, err := r.analyzer.AnalyzeGeneric(ctx, doc)
		if err != nil {
			analysis = identify.FallbackGeneric(r.now())
			prop.fallback = true
			r.logger.Warn("analysis failed, using fallback name",
				logging.String(logging.FieldFile, doc.CurrentName),
				logging.Error(err))
		}
		prop.base = naming.SanitizeBaseName(analysis.Filename, r.opts.MaxLength)
		if prop.base == "" {
			prop.base = naming.FallbackBaseName(r.now())
		}
		prop.confidence = analysis.Confidence
		prop.payload = encodeAnalysis(analysis)
	}

	// Fallback names are placeholders; caching them would pin a transient
	// model failure across runs.
	if r.cache != nil && !prop.fallback {
		entry := analysiscache.Entry{
			ContentHash:  contentHash,
			Convention:   r.opts.Convention,
			SourceName:   doc.CurrentName,
			ProposedBase: prop.base,
			AnalysisJSON: prop.payload,
			Confidence:   prop.confidence,
			Model:        r.opts.Model,
		}
		if err := r.cache.Put(ctx, entry); err != nil {
			r.logger.Warn("cache write failed", logging.Error(err))
		}
	}
	return prop, nil
}

func (r *Renamer) resolve(dir, base, ext string) (string, *naming.Collision, error) {
	if r.opts.Convention == config.ConventionEstate {
		return naming.ResolveEstate(dir, base, ext)
	}
	name, err := naming.ResolveGeneric(dir, base, ext)
	return name, nil, err
}

func encodeAnalysis(analysis any) string {
	data, err := json.Marshal(analysis)
	if err != nil {
		return "{}"
	}
	return string(data)
}
