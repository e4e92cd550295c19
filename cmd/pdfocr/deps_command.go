package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rzimmerman2022/PDF-OCR-Automation/internal/deps"
	"github.com/rzimmerman2022/PDF-OCR-Automation/internal/services/llm"
)

func newDepsCommand(ctx *commandContext) *cobra.Command {
	var checkLLM bool

	cmd := &cobra.Command{
		Use:   "deps",
		Short: "Check availability of the external OCR toolchain",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}

			statuses := deps.CheckBinaries(cmd.Context(),
				deps.Requirements(cfg.OCRBinary(), cfg.TesseractBinary()))

			out := cmd.OutOrStdout()
			rows := make([][]string, 0, len(statuses))
			for _, status := range statuses {
				state := "missing"
				if status.Available {
					state = "ok"
				} else if status.Optional {
					state = "missing (optional)"
				}
				rows = append(rows, []string{status.Name, status.Command, state, status.Detail})
			}
			fmt.Fprintln(out, renderTable([]string{"Dependency", "Command", "Status", "Detail"}, rows))

			if checkLLM {
				if err := cfg.RequireLLM(); err != nil {
					return err
				}
				client := llm.NewClient(llm.Config{
					APIKey:         cfg.LLM.APIKey,
					BaseURL:        cfg.LLM.BaseURL,
					Model:          cfg.LLM.Model,
					Referer:        cfg.LLM.Referer,
					Title:          cfg.LLM.Title,
					TimeoutSeconds: cfg.LLM.TimeoutSeconds,
				})
				if err := client.HealthCheck(cmd.Context()); err != nil {
					return fmt.Errorf("llm health check failed: %w", err)
				}
				fmt.Fprintf(out, "LLM reachable (model %s)\n", cfg.LLM.Model)
			}

			if !deps.AllRequiredAvailable(statuses) {
				return fmt.Errorf("required dependencies are missing")
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&checkLLM, "llm", false, "Also ping the configured model endpoint")
	return cmd
}
