package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/rzimmerman2022/PDF-OCR-Automation/internal/workflow"
)

func newRenameCommand(ctx *commandContext) *cobra.Command {
	var dryRun bool
	var convention string
	var noCache bool
	var jsonOut bool

	cmd := &cobra.Command{
		Use:   "rename [dir | file...]",
		Short: "Rename PDFs from their content using the configured model",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			logger, err := buildLogger(cfg)
			if err != nil {
				return err
			}

			dir, files, err := resolveTargets(args)
			if err != nil {
				return err
			}

			renamer, closeCache, err := newRenameStage(cfg, logger, renameStageOptions{
				convention: convention,
				dryRun:     dryRun,
				useCache:   !noCache,
			})
			if err != nil {
				return err
			}
			defer closeCache()

			runner := workflow.NewRunner(cfg, nil, renamer, logger)
			summary, err := runner.Run(cmd.Context(), dir, workflow.RunOptions{
				Rename:   true,
				Progress: isTerminal(os.Stderr),
				Files:    files,
			})
			if err != nil {
				return err
			}
			return renderSummary(cmd, summary, jsonOut)
		},
	}

	cmd.Flags().BoolVarP(&dryRun, "dry-run", "n", false, "Show proposed names without renaming")
	cmd.Flags().StringVar(&convention, "convention", "", "Naming convention override (generic or estate)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "Skip the analysis cache and always call the model")
	cmd.Flags().BoolVar(&jsonOut, "json", false, "Emit the run summary as JSON")
	return cmd
}
