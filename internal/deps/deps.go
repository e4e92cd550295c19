// Package deps verifies the external tools the OCR pipeline shells out to.
package deps

import (
	"context"
	"fmt"
	"os/exec"
	"strings"
)

var commandContext = exec.CommandContext

// Requirement defines an external dependency the pipeline relies on.
type Requirement struct {
	Name        string
	Command     string
	Description string
	Optional    bool
}

// Status reports the availability of a dependency.
type Status struct {
	Name        string
	Command     string
	Description string
	Optional    bool
	Available   bool
	Detail      string
}

// Requirements returns the binary checks for the configured OCR and
// Tesseract commands.
func Requirements(ocrBinary, tesseractBinary string) []Requirement {
	return []Requirement{
		{
			Name:        "OCRmyPDF",
			Command:     ocrBinary,
			Description: "Adds searchable text layers to scanned PDFs",
		},
		{
			Name:        "Tesseract",
			Command:     tesseractBinary,
			Description: "OCR engine invoked by OCRmyPDF",
		},
		{
			Name:        "Ghostscript",
			Command:     "gs",
			Description: "PDF rasterizer used by OCRmyPDF",
			Optional:    true,
		},
	}
}

// CheckBinaries evaluates the provided requirements and reports availability.
// For available binaries the detail column carries the detected version.
func CheckBinaries(ctx context.Context, requirements []Requirement) []Status {
	results := make([]Status, 0, len(requirements))
	for _, req := range requirements {
		cmd := strings.TrimSpace(req.Command)
		status := Status{
			Name:        req.Name,
			Command:     cmd,
			Description: strings.TrimSpace(req.Description),
			Optional:    req.Optional,
		}
		if cmd == "" {
			status.Detail = "command not configured"
			results = append(results, status)
			continue
		}
		if _, err := exec.LookPath(cmd); err != nil {
			status.Detail = fmt.Sprintf("binary %q not found", cmd)
			results = append(results, status)
			continue
		}
		status.Available = true
		status.Detail = probeVersion(ctx, cmd)
		results = append(results, status)
	}
	return results
}

// AllRequiredAvailable reports whether every non-optional dependency is
// present.
func AllRequiredAvailable(statuses []Status) bool {
	for _, status := range statuses {
		if !status.Optional && !status.Available {
			return false
		}
	}
	return true
}

// probeVersion asks a binary for its version and returns the first line of
// output. ocrmypdf and tesseract both answer --version; failures degrade to
// an empty detail rather than an error.
func probeVersion(ctx context.Context, binary string) string {
	cmd := commandContext(ctx, binary, "--version") //nolint:gosec
	out, err := cmd.CombinedOutput()
	if err != nil {
		return ""
	}
	return firstLine(string(out))
}

func firstLine(output string) string {
	output = strings.TrimSpace(output)
	if idx := strings.IndexByte(output, '\n'); idx >= 0 {
		output = output[:idx]
	}
	return strings.TrimSpace(output)
}
