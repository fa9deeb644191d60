// Package extract implements the audio extraction stage: it enumerates
// episode video files, shells out to ffmpeg for normalized PCM audio, and
// records outcomes in the extraction catalog. The stage holds a run lock so
// two extractions never race on the same output tree.
package extract

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/gofrs/flock"

	"scrub/internal/catalog"
	"scrub/internal/config"
	"scrub/internal/episodeid"
	"scrub/internal/ffprobe"
	"scrub/internal/logging"
	"scrub/internal/progress"
)

// ErrNoVideos is returned when discovery finds no episode video files.
var ErrNoVideos = errors.New("no episode video files found")

// Job is one planned video-to-audio conversion.
type Job struct {
	VideoPath string
	AudioPath string
	ID        episodeid.ID
	Title     string
}

// Stats holds per-invocation extraction counters.
type Stats struct {
	Total     int
	Extracted int
	Skipped   int
	Errored   int
	Unmatched int
}

// Extractor drives the audio extraction stage.
type Extractor struct {
	cfg      *config.Config
	logger   *slog.Logger
	store    *catalog.Store
	reporter progress.Reporter
}

// New builds an extractor. The catalog store is optional; when nil, outcomes
// are only logged.
func New(cfg *config.Config, logger *slog.Logger, store *catalog.Store, reporter progress.Reporter) *Extractor {
	if reporter == nil {
		reporter = progress.Nop()
	}
	return &Extractor{
		cfg:      cfg,
		logger:   logging.NewComponentLogger(logger, "extract"),
		store:    store,
		reporter: reporter,
	}
}

// Plan discovers episode videos under the video root and derives their
// season-scoped output paths. Files without a parseable episode code are
// returned separately so the run can report them without failing.
func (e *Extractor) Plan() ([]Job, []string, error) {
	var (
		jobs      []Job
		unmatched []string
	)

	err := filepath.WalkDir(e.cfg.Paths.VideoDir, func(path string, entry fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if entry.IsDir() {
			return nil
		}
		if !e.isVideoFile(path) {
			return nil
		}
		id, ok := episodeid.Parse(path)
		if !ok {
			unmatched = append(unmatched, path)
			return nil
		}
		jobs = append(jobs, Job{
			VideoPath: path,
			AudioPath: filepath.Join(e.cfg.Paths.AudioDir, id.SeasonDir(), id.Code()+".wav"),
			ID:        id,
			Title:     episodeid.DeriveTitle(path),
		})
		return nil
	})
	if err != nil {
		return nil, nil, fmt.Errorf("walk %s: %w", e.cfg.Paths.VideoDir, err)
	}

	sort.Slice(jobs, func(i, j int) bool { return jobs[i].VideoPath < jobs[j].VideoPath })
	sort.Strings(unmatched)
	return jobs, unmatched, nil
}

func (e *Extractor) isVideoFile(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	for _, allowed := range e.cfg.Extraction.VideoExts {
		if ext == allowed {
			return true
		}
	}
	return false
}

// Run executes the full extraction stage: preflight, discovery, sequential
// conversion with skip-if-exists, and catalog updates. Per-file failures are
// counted and the run continues.
func (e *Extractor) Run(ctx context.Context) (Stats, error) {
	var stats Stats

	if err := e.preflight(); err != nil {
		return stats, err
	}

	lock := flock.New(filepath.Join(e.cfg.Paths.LogDir, "scrub-extract.lock"))
	locked, err := lock.TryLock()
	if err != nil {
		return stats, fmt.Errorf("acquire extraction lock: %w", err)
	}
	if !locked {
		return stats, errors.New("another extraction run is already in progress")
	}
	defer func() { _ = lock.Unlock() }()

	jobs, unmatched, err := e.Plan()
	if err != nil {
		return stats, err
	}
	stats.Unmatched = len(unmatched)
	for _, path := range unmatched {
		e.logger.Warn("no episode code in filename", logging.String("path", path))
	}
	if len(jobs) == 0 {
		return stats, fmt.Errorf("%w under %s", ErrNoVideos, e.cfg.Paths.VideoDir)
	}

	for _, job := range jobs {
		stats.Total++
		name := job.ID.Code()

		if info, err := os.Stat(job.AudioPath); err == nil && !info.IsDir() {
			stats.Skipped++
			e.reporter.Skip(name, "audio exists")
			continue
		}

		e.reporter.Start(name)
		started := time.Now()
		result, err := e.extractOne(ctx, job)
		if err != nil {
			stats.Errored++
			e.reporter.Fail(name, err)
			e.logger.Error("extraction failed",
				logging.String("episode", name),
				logging.String("video", job.VideoPath),
				logging.Error(err),
			)
			continue
		}

		stats.Extracted++
		e.reporter.Done(name, fmt.Sprintf("%.1f MB, %s audio in %s",
			float64(result.SizeBytes())/(1024*1024),
			formatDuration(result.DurationSeconds()),
			time.Since(started).Round(time.Second)))
		e.logger.Info("episode extracted",
			logging.String("episode", name),
			logging.String("title", job.Title),
			logging.String("audio", job.AudioPath),
			logging.Int64("size_bytes", result.SizeBytes()),
			logging.Float64("duration_seconds", result.DurationSeconds()),
		)
	}

	e.logger.Info("run complete",
		logging.Int("total", stats.Total),
		logging.Int("extracted", stats.Extracted),
		logging.Int("skipped", stats.Skipped),
		logging.Int("errored", stats.Errored),
		logging.Int("unmatched", stats.Unmatched),
	)
	return stats, nil
}

// extractOne converts a single episode and records it in the catalog. The
// partially written output is removed when ffmpeg fails.
func (e *Extractor) extractOne(ctx context.Context, job Job) (ffprobe.Result, error) {
	if err := os.MkdirAll(filepath.Dir(job.AudioPath), 0o755); err != nil {
		return ffprobe.Result{}, fmt.Errorf("create season directory: %w", err)
	}

	runCtx, cancel := context.WithTimeout(ctx, time.Duration(e.cfg.Extraction.TimeoutSeconds)*time.Second)
	defer cancel()

	args := []string{
		"-hide_banner", "-loglevel", "error", "-y",
		"-i", job.VideoPath,
		"-vn",
		"-acodec", "pcm_s16le",
		"-ar", strconv.Itoa(e.cfg.Extraction.SampleRate),
		"-ac", strconv.Itoa(e.cfg.Extraction.Channels),
		job.AudioPath,
	}
	cmd := exec.CommandContext(runCtx, e.cfg.Extraction.FFmpegBinary, args...)
	if output, err := cmd.CombinedOutput(); err != nil {
		_ = os.Remove(job.AudioPath)
		return ffprobe.Result{}, fmt.Errorf("ffmpeg: %w: %s", err, strings.TrimSpace(string(output)))
	}

	result, err := ffprobe.Inspect(runCtx, e.cfg.Extraction.FFprobeBinary, job.AudioPath)
	if err != nil {
		return ffprobe.Result{}, err
	}

	if e.store != nil {
		record := catalog.Extraction{
			Episode:         job.ID.Code(),
			Season:          job.ID.Season,
			Title:           job.Title,
			VideoPath:       job.VideoPath,
			AudioPath:       job.AudioPath,
			SizeBytes:       result.SizeBytes(),
			DurationSeconds: result.DurationSeconds(),
		}
		if err := e.store.Record(ctx, record); err != nil {
			// Conversion already succeeded; the catalog entry is advisory.
			e.logger.Warn("catalog update failed",
				logging.String("episode", job.ID.Code()),
				logging.Error(err),
			)
		}
	}
	return result, nil
}

func formatDuration(seconds float64) string {
	d := time.Duration(seconds * float64(time.Second)).Round(time.Second)
	return d.String()
}
