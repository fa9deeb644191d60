package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"scrub/internal/catalog"
	"scrub/internal/extract"
	"scrub/internal/progress"
)

func newExtractCommand(ctx *commandContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "extract",
		Short: "Extract normalized audio from episode video files",
		Long: "Extract walks the video directory, converts each SxxEyy episode to a\n" +
			"16 kHz mono WAV under the audio directory, and records the outcome in the\n" +
			"extraction catalog. Episodes with existing audio are skipped.",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			logger, err := ctx.runLogger(cfg)
			if err != nil {
				return err
			}

			store, err := catalog.Open(cfg.CatalogPath())
			if err != nil {
				return err
			}
			defer store.Close()

			reporter := progress.NewTerminal(cmd.OutOrStdout())
			extractor := extract.New(cfg, logger, store, reporter)
			stats, err := extractor.Run(cmd.Context())
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Extracted %d episodes (%d skipped, %d failed) to %s\n",
				stats.Extracted, stats.Skipped, stats.Errored, cfg.Paths.AudioDir)
			if stats.Unmatched > 0 {
				fmt.Fprintf(out, "%d files had no SxxEyy episode code; see the run log\n", stats.Unmatched)
			}
			if stats.Errored > 0 {
				return fmt.Errorf("%d of %d episodes failed", stats.Errored, stats.Total)
			}
			return nil
		},
	}
	return cmd
}
