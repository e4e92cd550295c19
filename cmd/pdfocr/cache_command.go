package main

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/rzimmerman2022/PDF-OCR-Automation/internal/analysiscache"
)

func newCacheCommand(ctx *commandContext) *cobra.Command {
	cacheCmd := &cobra.Command{
		Use:   "cache",
		Short: "Analysis cache maintenance",
	}
	cacheCmd.AddCommand(newCacheStatsCommand(ctx))
	cacheCmd.AddCommand(newCacheClearCommand(ctx))
	return cacheCmd
}

func openCache(ctx *commandContext) (*analysiscache.Store, error) {
	cfg, err := ctx.ensureConfig()
	if err != nil {
		return nil, err
	}
	if !cfg.Cache.Enabled {
		return nil, errors.New("analysis cache is disabled in configuration")
	}
	return analysiscache.Open(cfg.Cache.Path)
}

func newCacheStatsCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show cached analysis counts",
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := openCache(ctx)
			if err != nil {
				return err
			}
			defer store.Close()

			stats, err := store.Stats(cmd.Context())
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if !isTerminal(out) {
				return writeJSON(cmd, stats)
			}
			rows := make([][]string, 0, len(stats.ByConvention))
			for convention, count := range stats.ByConvention {
				rows = append(rows, []string{convention, strconv.FormatInt(count, 10)})
			}
			fmt.Fprintln(out, renderTable([]string{"Convention", "Entries"}, rows, 1))
			fmt.Fprintf(out, "%d total entries in %s\n", stats.Entries, stats.Path)
			return nil
		},
	}
}

func newCacheClearCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Delete all cached analysis entries",
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := openCache(ctx)
			if err != nil {
				return err
			}
			defer store.Close()

			deleted, err := store.Clear(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Cleared %d cached analysis entries\n", deleted)
			return nil
		},
	}
}
