package main

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"scrub/internal/cleaner"
	"scrub/internal/progress"
)

func newCleanCommand(ctx *commandContext) *cobra.Command {
	var (
		fileFlag   string
		outputFlag string
		forceFlag  bool
	)

	cmd := &cobra.Command{
		Use:   "clean [directory]",
		Short: "Remove noise segments from transcript documents",
		Long: "Clean walks the transcript directory (or the given directory), classifies\n" +
			"noise segments in each JSON transcript, and writes a cleaned sibling file.\n" +
			"Existing cleaned outputs are skipped unless --force is set.",
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			logger, err := ctx.runLogger(cfg)
			if err != nil {
				return err
			}

			reporter := progress.NewTerminal(cmd.OutOrStdout())
			runner := cleaner.NewRunner(cfg, logger, reporter, forceFlag)
			out := cmd.OutOrStdout()

			if file := strings.TrimSpace(fileFlag); file != "" {
				result, skipped, err := runner.RunFile(file, strings.TrimSpace(outputFlag))
				if err != nil {
					return err
				}
				if skipped {
					return nil
				}
				fmt.Fprintf(out, "Cleaned %s: kept %d of %d segments, %d words\n",
					file, result.KeptSegments, result.OriginalSegments, result.WordCount)
				return nil
			}
			if strings.TrimSpace(outputFlag) != "" {
				return errors.New("--output requires --file")
			}

			root := cfg.Paths.TranscriptDir
			if len(args) == 1 {
				root = args[0]
			}
			if info, err := os.Stat(root); err != nil || !info.IsDir() {
				return fmt.Errorf("transcript directory %s is not accessible", root)
			}

			stats, err := runner.Run(root)
			if err != nil {
				return err
			}
			fmt.Fprintf(out, "Cleaned %d documents (%d skipped, %d failed) under %s\n",
				stats.Processed, stats.Skipped, stats.Errored, root)
			if stats.Errored > 0 {
				return fmt.Errorf("%d of %d documents failed", stats.Errored, stats.Total)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&fileFlag, "file", "f", "", "Clean a single transcript file instead of a directory")
	cmd.Flags().StringVarP(&outputFlag, "output", "o", "", "Output path for --file (defaults to the suffixed sibling)")
	cmd.Flags().BoolVar(&forceFlag, "force", false, "Reprocess documents even when cleaned output already exists")
	return cmd
}
