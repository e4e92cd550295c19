package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/rzimmerman2022/PDF-OCR-Automation/internal/workflow"
)

func newProcessCommand(ctx *commandContext) *cobra.Command {
	var force bool
	var dryRun bool
	var convention string
	var noCache bool
	var jsonOut bool

	cmd := &cobra.Command{
		Use:   "process [dir]",
		Short: "Run the full pipeline: detect, OCR, then rename",
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

			renamer, closeCache, err := newRenameStage(cfg, logger, renameStageOptions{
				convention: convention,
				dryRun:     dryRun,
				useCache:   !noCache,
			})
			if err != nil {
				return err
			}
			defer closeCache()

			runner := workflow.NewRunner(cfg, newOCRStage(cfg, logger), renamer, logger)
			summary, err := runner.Run(cmd.Context(), dir, workflow.RunOptions{
				OCR:      true,
				Rename:   true,
				ForceOCR: force,
				Progress: isTerminal(os.Stderr),
			})
			if err != nil {
				return err
			}
			return renderSummary(cmd, summary, jsonOut)
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "Re-OCR files that already carry a text layer")
	cmd.Flags().BoolVarP(&dryRun, "dry-run", "n", false, "Show proposed names without renaming")
	cmd.Flags().StringVar(&convention, "convention", "", "Naming convention override (generic or estate)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "Skip the analysis cache and always call the model")
	cmd.Flags().BoolVar(&jsonOut, "json", false, "Emit the run summary as JSON")
	return cmd
}
