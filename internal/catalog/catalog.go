// Package catalog persists the outcome of audio extraction runs in a SQLite
// database so `scrub status` can report the archive's state without
// re-probing every file. The catalog is advisory: skip decisions during
// extraction remain filesystem-based.
package catalog

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	_ "modernc.org/sqlite"
)

const schema = `
CREATE TABLE IF NOT EXISTS extractions (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    episode TEXT NOT NULL UNIQUE,
    season INTEGER NOT NULL,
    title TEXT,
    video_path TEXT NOT NULL,
    audio_path TEXT NOT NULL,
    size_bytes INTEGER NOT NULL DEFAULT 0,
    duration_seconds REAL NOT NULL DEFAULT 0,
    extracted_at TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_extractions_season ON extractions(season);
`

// Extraction records one episode's extracted audio file.
type Extraction struct {
	ID              int64
	Episode         string
	Season          int
	Title           string
	VideoPath       string
	AudioPath       string
	SizeBytes       int64
	DurationSeconds float64
	ExtractedAt     time.Time
}

// Summary aggregates catalog contents for status output.
type Summary struct {
	Episodes             int
	Seasons              int
	TotalBytes           int64
	TotalDurationSeconds float64
}

// Store manages extraction history backed by SQLite.
type Store struct {
	db   *sql.DB
	path string
}

// Open initializes or connects to the catalog database and applies the schema.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open catalog db: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, execErr := db.Exec(pragma); execErr != nil {
			_ = db.Close()
			return nil, fmt.Errorf("apply pragma %q: %w", pragma, execErr)
		}
	}

	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("apply catalog schema: %w", err)
	}
	return &Store{db: db, path: path}, nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Record upserts an extraction keyed by episode code.
func (s *Store) Record(ctx context.Context, e Extraction) error {
	if e.Episode == "" {
		return errors.New("extraction requires an episode code")
	}
	timestamp := e.ExtractedAt
	if timestamp.IsZero() {
		timestamp = time.Now().UTC()
	}

	_, err := s.db.ExecContext(
		ctx,
		`INSERT INTO extractions (
            episode, season, title, video_path, audio_path,
            size_bytes, duration_seconds, extracted_at
        ) VALUES (?, ?, ?, ?, ?, ?, ?, ?)
        ON CONFLICT(episode) DO UPDATE SET
            season = excluded.season,
            title = excluded.title,
            video_path = excluded.video_path,
            audio_path = excluded.audio_path,
            size_bytes = excluded.size_bytes,
            duration_seconds = excluded.duration_seconds,
            extracted_at = excluded.extracted_at`,
		e.Episode,
		e.Season,
		nullableString(e.Title),
		e.VideoPath,
		e.AudioPath,
		e.SizeBytes,
		e.DurationSeconds,
		timestamp.Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("record extraction: %w", err)
	}
	return nil
}

// ByEpisode fetches the extraction for an episode code, or nil when absent.
func (s *Store) ByEpisode(ctx context.Context, episode string) (*Extraction, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+columns+` FROM extractions WHERE episode = ?`, episode)
	extraction, err := scanExtraction(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get extraction: %w", err)
	}
	return extraction, nil
}

// List returns all extractions ordered by episode code.
func (s *Store) List(ctx context.Context) ([]Extraction, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT `+columns+` FROM extractions ORDER BY episode`)
	if err != nil {
		return nil, fmt.Errorf("list extractions: %w", err)
	}
	defer rows.Close()

	var extractions []Extraction
	for rows.Next() {
		extraction, err := scanExtraction(rows)
		if err != nil {
			return nil, err
		}
		extractions = append(extractions, *extraction)
	}
	return extractions, rows.Err()
}

// Summarize aggregates episode, season, size, and duration totals.
func (s *Store) Summarize(ctx context.Context) (Summary, error) {
	row := s.db.QueryRowContext(ctx, `
        SELECT COUNT(1), COUNT(DISTINCT season),
               COALESCE(SUM(size_bytes), 0), COALESCE(SUM(duration_seconds), 0)
        FROM extractions`)

	var summary Summary
	if err := row.Scan(&summary.Episodes, &summary.Seasons, &summary.TotalBytes, &summary.TotalDurationSeconds); err != nil {
		return Summary{}, fmt.Errorf("summarize catalog: %w", err)
	}
	return summary, nil
}

const columns = "id, episode, season, title, video_path, audio_path, size_bytes, duration_seconds, extracted_at"

func scanExtraction(scanner interface{ Scan(dest ...any) error }) (*Extraction, error) {
	var (
		extraction   Extraction
		title        sql.NullString
		extractedRaw string
	)
	if err := scanner.Scan(
		&extraction.ID,
		&extraction.Episode,
		&extraction.Season,
		&title,
		&extraction.VideoPath,
		&extraction.AudioPath,
		&extraction.SizeBytes,
		&extraction.DurationSeconds,
		&extractedRaw,
	); err != nil {
		return nil, err
	}
	extraction.Title = title.String
	if parsed, err := time.Parse(time.RFC3339Nano, extractedRaw); err == nil {
		extraction.ExtractedAt = parsed
	}
	return &extraction, nil
}

func nullableString(value string) any {
	if value == "" {
		return nil
	}
	return value
}
