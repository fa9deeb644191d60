package cleaner

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"scrub/internal/config"
	"scrub/internal/logging"
	"scrub/internal/progress"
	"scrub/internal/transcript"
)

// ErrNoDocuments is returned by directory runs that discover zero transcript
// documents.
var ErrNoDocuments = errors.New("no transcript documents found")

// Stats holds per-invocation run counters. Created fresh per run, never
// persisted.
type Stats struct {
	Total     int
	Processed int
	Skipped   int
	Errored   int
}

// Runner executes the cleaning stage over one file or a directory tree.
// Documents are processed strictly sequentially; a failure in one document
// never aborts the batch.
type Runner struct {
	suffix       string
	skipExisting bool
	logger       *slog.Logger
	reporter     progress.Reporter
}

// NewRunner builds a runner from configuration. When force is set, the
// idempotent skip of existing outputs is disabled for this run.
func NewRunner(cfg *config.Config, logger *slog.Logger, reporter progress.Reporter, force bool) *Runner {
	if reporter == nil {
		reporter = progress.Nop()
	}
	return &Runner{
		suffix:       cfg.Cleaner.OutputSuffix,
		skipExisting: cfg.Cleaner.SkipExisting && !force,
		logger:       logging.NewComponentLogger(logger, "cleaner"),
		reporter:     reporter,
	}
}

// Discover returns the lexicographically sorted transcript documents under
// root, excluding files that already carry the cleaned-output suffix. The
// stable order keeps run logs reproducible across invocations.
func (r *Runner) Discover(root string) ([]string, error) {
	var files []string
	err := filepath.WalkDir(root, func(path string, entry fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if entry.IsDir() {
			return nil
		}
		if !strings.EqualFold(filepath.Ext(path), ".json") {
			return nil
		}
		if isCleanedOutput(path, r.suffix) {
			return nil
		}
		files = append(files, path)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walk %s: %w", root, err)
	}
	sort.Strings(files)
	return files, nil
}

// Run cleans every transcript document under root. Discovery of zero
// documents is fatal; per-document failures are counted and logged without
// stopping the batch.
func (r *Runner) Run(root string) (Stats, error) {
	var stats Stats

	files, err := r.Discover(root)
	if err != nil {
		return stats, err
	}
	if len(files) == 0 {
		return stats, fmt.Errorf("%w under %s", ErrNoDocuments, root)
	}

	for _, path := range files {
		stats.Total++
		name := filepath.Base(path)
		outputPath := OutputPath(path, r.suffix)

		if r.skipExisting && outputExists(outputPath) {
			stats.Skipped++
			r.reporter.Skip(name, "output exists")
			r.logger.Debug("skipping document", logging.String("path", path))
			continue
		}

		r.reporter.Start(name)
		result, err := r.processOne(path, outputPath)
		if err != nil {
			stats.Errored++
			r.reporter.Fail(name, err)
			r.logger.Error("document failed", logging.String("path", path), logging.Error(err))
			continue
		}

		stats.Processed++
		r.reporter.Done(name, fmt.Sprintf("%d segments -> %d kept (%d removed)",
			result.OriginalSegments, result.KeptSegments, result.Removed()))
		r.logResult(path, result)
	}

	r.logger.Info("run complete",
		logging.Int("total", stats.Total),
		logging.Int("processed", stats.Processed),
		logging.Int("skipped", stats.Skipped),
		logging.Int("errored", stats.Errored),
	)
	return stats, nil
}

// RunFile cleans a single explicit document, bypassing discovery. When
// outputPath is empty the suffix-derived sibling path is used.
func (r *Runner) RunFile(inputPath, outputPath string) (Result, bool, error) {
	if strings.TrimSpace(inputPath) == "" {
		return Result{}, false, errors.New("input path is required")
	}
	if _, err := os.Stat(inputPath); err != nil {
		return Result{}, false, fmt.Errorf("input %s: %w", inputPath, err)
	}
	if outputPath == "" {
		outputPath = OutputPath(inputPath, r.suffix)
	}

	name := filepath.Base(inputPath)
	if r.skipExisting && outputExists(outputPath) {
		r.reporter.Skip(name, "output exists")
		return Result{}, true, nil
	}

	r.reporter.Start(name)
	result, err := r.processOne(inputPath, outputPath)
	if err != nil {
		r.reporter.Fail(name, err)
		return Result{}, false, err
	}
	r.reporter.Done(name, fmt.Sprintf("%d segments -> %d kept (%d removed)",
		result.OriginalSegments, result.KeptSegments, result.Removed()))
	r.logResult(inputPath, result)
	return result, false, nil
}

// processOne runs the Loaded -> Classified -> Recomputed -> Saved sequence
// for one document.
func (r *Runner) processOne(inputPath, outputPath string) (Result, error) {
	doc, err := transcript.Load(inputPath)
	if err != nil {
		return Result{}, err
	}
	result, err := Clean(doc)
	if err != nil {
		return Result{}, err
	}
	if err := doc.Save(outputPath); err != nil {
		return Result{}, err
	}
	return result, nil
}

func (r *Runner) logResult(path string, result Result) {
	r.logger.Info("document cleaned",
		logging.String("path", path),
		logging.Int("segments_original", result.OriginalSegments),
		logging.Int("segments_kept", result.KeptSegments),
		logging.Int("segments_removed", result.Removed()),
		logging.Int("word_count", result.WordCount),
	)
	for _, removal := range result.Removals {
		r.logger.Debug("segment removed",
			logging.Int("index", removal.Index),
			logging.String("text", removal.Text),
			logging.String("reason", removal.Reason),
		)
	}
}

func outputExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
