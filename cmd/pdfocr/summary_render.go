package main

import (
	"fmt"
	"path/filepath"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/rzimmerman2022/PDF-OCR-Automation/internal/workflow"
)

// renderSummary prints a run summary either as JSON or as a per-file table
// with aggregate counts.
func renderSummary(cmd *cobra.Command, summary *workflow.Summary, jsonOut bool) error {
	out := cmd.OutOrStdout()
	if jsonOut || !isTerminal(out) {
		return writeJSON(cmd, summary)
	}

	if len(summary.Files) == 0 {
		fmt.Fprintf(out, "No PDF files found in %s\n", summary.Directory)
		return nil
	}

	rows := make([][]string, 0, len(summary.Files))
	for _, file := range summary.Files {
		action := "-"
		detail := ""
		switch {
		case file.Error != "":
			action = "error"
			detail = file.Error
		case file.Rename != nil:
			action = string(file.Rename.Status)
			if file.Rename.NewPath != "" {
				detail = filepath.Base(file.Rename.NewPath)
			} else if file.Rename.Reason != "" {
				detail = file.Rename.Reason
			}
		case file.OCR != nil:
			action = string(file.OCR.Status)
			detail = strconv.Itoa(file.OCR.TextChars) + " chars"
		case file.HasText:
			action = "searchable"
		}
		rows = append(rows, []string{filepath.Base(file.Path), yesNo(file.HasText), action, detail})
	}
	fmt.Fprintln(out, renderTable([]string{"File", "Has text", "Action", "Detail"}, rows))

	fmt.Fprintf(out, "run %s: %d scanned, %d ocr'd, %d already searchable, %d renamed, %d skipped, %d review, %d failed\n",
		summary.RunID, summary.Scanned, summary.OCRProcessed, summary.AlreadyHadText,
		summary.Renamed, summary.Skipped, summary.Review, summary.Failed)
	if len(summary.Collisions) > 0 {
		fmt.Fprintf(out, "%d filename collision(s) resolved; see collision_log_%s.json\n",
			len(summary.Collisions), summary.RunID)
	}
	return nil
}
