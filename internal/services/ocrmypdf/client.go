// Package ocrmypdf wraps the ocrmypdf command-line tool used to add a
// searchable text layer to scanned PDFs.
package ocrmypdf

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strconv"
	"strings"
)

var commandContext = exec.CommandContext

// Exit codes documented by ocrmypdf. Codes 6 and 15 indicate the input
// already carries text and are treated as success by callers that only need
// a text layer to exist.
const (
	ExitOK               = 0
	ExitBadArgs          = 1
	ExitInputFile        = 2
	ExitOutputFile       = 3
	ExitEncryptedPDF     = 4
	ExitInvalidOutputPDF = 5
	ExitAlreadyHasText   = 6
	ExitChildProcess     = 7
	ExitInvalidConfig    = 8
	ExitDPITooLow        = 9
	ExitTimeout          = 10
	ExitSomePagesHadText = 15
)

var exitMessages = map[int]string{
	ExitBadArgs:          "invalid command line arguments",
	ExitInputFile:        "input file not found or not a valid PDF",
	ExitOutputFile:       "output file could not be written",
	ExitEncryptedPDF:     "input PDF is encrypted; remove the password first",
	ExitInvalidOutputPDF: "generated output PDF is invalid",
	ExitAlreadyHasText:   "PDF already contains text; use force mode to re-process",
	ExitChildProcess:     "OCR engine (tesseract/ghostscript) reported an error",
	ExitInvalidConfig:    "invalid configuration or missing dependency",
	ExitDPITooLow:        "image resolution too low for reliable OCR",
	ExitTimeout:          "OCR run exceeded its time limit",
	ExitSomePagesHadText: "some pages already contained text and were skipped",
}

// ExitError describes a non-zero ocrmypdf exit with its diagnostic text.
type ExitError struct {
	Code   int
	Detail string
}

func (e *ExitError) Error() string {
	msg, ok := exitMessages[e.Code]
	if !ok {
		msg = "unexpected failure"
	}
	if e.Detail != "" {
		return fmt.Sprintf("ocrmypdf exit %d: %s: %s", e.Code, msg, e.Detail)
	}
	return fmt.Sprintf("ocrmypdf exit %d: %s", e.Code, msg)
}

// AlreadyHasText reports whether err represents exit codes 6 or 15, both of
// which mean a text layer is already present on at least part of the input.
func AlreadyHasText(err error) bool {
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code == ExitAlreadyHasText || exitErr.Code == ExitSomePagesHadText
	}
	return false
}

// Settings controls the OCR pass. Zero values disable the corresponding
// preprocessing step.
type Settings struct {
	Language      string
	RotatePages   bool
	Deskew        bool
	Clean         bool
	ForceOCR      bool
	Optimize      int
	JPEGQuality   int
	PNGQuality    int
	OversampleDPI int
}

// Client defines OCR processing behaviour.
type Client interface {
	Process(ctx context.Context, inputPath, outputPath string) error
	Version(ctx context.Context) (string, error)
}

// Option configures the CLI client.
type Option func(*CLI)

// WithBinary overrides the default binary name.
func WithBinary(binary string) Option {
	return func(c *CLI) {
		if binary != "" {
			c.binary = binary
		}
	}
}

// CLI wraps the ocrmypdf command-line tool.
type CLI struct {
	binary   string
	settings Settings
}

// NewCLI constructs a CLI client with the given settings.
func NewCLI(settings Settings, opts ...Option) *CLI {
	cli := &CLI{binary: "ocrmypdf", settings: settings}
	for _, opt := range opts {
		opt(cli)
	}
	return cli
}

func (c *CLI) buildArgs(inputPath, outputPath string) []string {
	s := c.settings
	args := make([]string, 0, 16)
	if s.RotatePages {
		args = append(args, "--rotate-pages")
	}
	if s.Deskew {
		args = append(args, "--deskew")
	}
	if s.Clean {
		args = append(args, "--clean")
	}
	if s.ForceOCR {
		args = append(args, "--force-ocr")
	}
	if s.Optimize > 0 {
		args = append(args, "--optimize", strconv.Itoa(s.Optimize))
	}
	if s.JPEGQuality > 0 {
		args = append(args, "--jpeg-quality", strconv.Itoa(s.JPEGQuality))
	}
	if s.PNGQuality > 0 {
		args = append(args, "--png-quality", strconv.Itoa(s.PNGQuality))
	}
	if s.OversampleDPI > 0 {
		args = append(args, "--oversample", strconv.Itoa(s.OversampleDPI))
	}
	if s.Language != "" {
		args = append(args, "--language", s.Language)
	}
	return append(args, inputPath, outputPath)
}

// Process runs a full OCR pass, writing the result to outputPath. It returns
// an *ExitError for non-zero exits so callers can inspect the code.
func (c *CLI) Process(ctx context.Context, inputPath, outputPath string) error {
	if inputPath == "" {
		return errors.New("input path required")
	}
	if outputPath == "" {
		return errors.New("output path required")
	}

	cmd := commandContext(ctx, c.binary, c.buildArgs(inputPath, outputPath)...) //nolint:gosec
	var output bytes.Buffer
	cmd.Stdout = &output
	cmd.Stderr = &output

	err := cmd.Run()
	if err == nil {
		return nil
	}
	if ctx.Err() != nil {
		return ctx.Err()
	}
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return &ExitError{Code: exitErr.ExitCode(), Detail: lastLine(output.String())}
	}
	return fmt.Errorf("run ocrmypdf: %w", err)
}

// Version reports the installed ocrmypdf version string.
func (c *CLI) Version(ctx context.Context) (string, error) {
	cmd := commandContext(ctx, c.binary, "--version") //nolint:gosec
	out, err := cmd.Output()
	if err != nil {
		return "", fmt.Errorf("ocrmypdf --version: %w", err)
	}
	return strings.TrimSpace(string(out)), nil
}

// lastLine returns the final non-empty line of combined tool output, which
// is where ocrmypdf places its error summary.
func lastLine(output string) string {
	lines := strings.Split(strings.TrimSpace(output), "\n")
	for i := len(lines) - 1; i >= 0; i-- {
		if line := strings.TrimSpace(lines[i]); line != "" {
			return line
		}
	}
	return ""
}

var _ Client = (*CLI)(nil)
