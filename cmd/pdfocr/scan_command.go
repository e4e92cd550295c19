package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/rzimmerman2022/PDF-OCR-Automation/internal/logging"
	"github.com/rzimmerman2022/PDF-OCR-Automation/internal/scanner"
	"github.com/rzimmerman2022/PDF-OCR-Automation/internal/textutil"
)

func newScanCommand(ctx *commandContext) *cobra.Command {
	var jsonOut bool

	cmd := &cobra.Command{
		Use:   "scan [dir]",
		Short: "Report which PDFs already carry a searchable text layer",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			logger, err := buildLogger(cfg)
			if err != nil {
				return err
			}

			dir := "."
			if len(args) == 1 {
				dir = args[0]
			}

			s := scanner.New(cfg.Detection.SamplePages, cfg.Detection.MinTextChars,
				logging.NewComponentLogger(logger, "scanner"))
			report, err := s.ScanDirectory(cmd.Context(), dir)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if jsonOut || !isTerminal(out) {
				return writeJSON(cmd, report)
			}

			if len(report.Files) == 0 {
				fmt.Fprintf(out, "No PDF files found in %s\n", dir)
				return nil
			}

			rows := make([][]string, 0, len(report.Files))
			for _, file := range report.Files {
				if file.Error != "" {
					rows = append(rows, []string{file.Path, "-", "-", "-", "error", file.Error})
					continue
				}
				rows = append(rows, []string{
					file.Path,
					strconv.Itoa(file.Pages),
					strconv.Itoa(file.TextChars),
					strconv.Itoa(file.WordCount),
					yesNo(file.HasText),
					textutil.FlattenExcerpt(file.Sample, 48),
				})
			}
			fmt.Fprintln(out, renderTable(
				[]string{"File", "Pages", "Chars", "Words", "Has text", "Sample"},
				rows, 1, 2, 3))
			fmt.Fprintf(out, "%d scanned: %d searchable, %d need OCR, %d failed\n",
				len(report.Files), report.WithText, report.NeedOCR, report.Failed)
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOut, "json", false, "Emit the report as JSON")
	return cmd
}
