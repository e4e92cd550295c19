package main

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/rzimmerman2022/PDF-OCR-Automation/internal/naming"
)

func newValidateCommand() *cobra.Command {
	return &cobra.Command{
		Use:         "validate <file>...",
		Short:       "Check filenames against the estate naming convention",
		Args:        cobra.MinimumNArgs(1),
		Annotations: map[string]string{"skipConfigLoad": "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			invalid := 0
			for _, arg := range args {
				name := filepath.Base(arg)
				if naming.ValidateEstate(name) {
					fmt.Fprintf(out, "valid    %s\n", name)
					continue
				}
				invalid++
				fmt.Fprintf(out, "invalid  %s\n", name)
			}
			if invalid > 0 {
				return fmt.Errorf("%d of %d filename(s) do not conform", invalid, len(args))
			}
			return nil
		},
	}
}
