package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/rzimmerman2022/PDF-OCR-Automation/internal/workflow"
)

func newOCRCommand(ctx *commandContext) *cobra.Command {
	var force bool
	var language string
	var jsonOut bool

	cmd := &cobra.Command{
		Use:   "ocr [dir | file...]",
		Short: "Add searchable text layers to PDFs that lack them",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			if language != "" {
				cfg.OCR.Language = language
			}
			logger, err := buildLogger(cfg)
			if err != nil {
				return err
			}

			dir, files, err := resolveTargets(args)
			if err != nil {
				return err
			}

			runner := workflow.NewRunner(cfg, newOCRStage(cfg, logger), nil, logger)
			summary, err := runner.Run(cmd.Context(), dir, workflow.RunOptions{
				OCR:      true,
				ForceOCR: force,
				Progress: isTerminal(os.Stderr),
				Files:    files,
			})
			if err != nil {
				return err
			}
			return renderSummary(cmd, summary, jsonOut)
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "Re-OCR files that already carry a text layer")
	cmd.Flags().StringVarP(&language, "language", "l", "", "Tesseract language pack override (e.g. eng, deu)")
	cmd.Flags().BoolVar(&jsonOut, "json", false, "Emit the run summary as JSON")
	return cmd
}
