package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"scrub/internal/catalog"
)

func newStatusCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show the extraction catalog",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}

			store, err := catalog.Open(cfg.CatalogPath())
			if err != nil {
				return err
			}
			defer store.Close()

			extractions, err := store.List(cmd.Context())
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if len(extractions) == 0 {
				fmt.Fprintln(out, "No extractions recorded yet. Run `scrub extract` first.")
				return nil
			}

			fmt.Fprintln(out, renderCatalogTable(extractions))

			summary, err := store.Summarize(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprintf(out, "%d episodes across %d seasons, %s of audio (%s)\n",
				summary.Episodes, summary.Seasons,
				formatBytes(summary.TotalBytes), formatSeconds(summary.TotalDurationSeconds))
			return nil
		},
	}
}
