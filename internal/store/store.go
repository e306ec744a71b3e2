// Package store mirrors exported records into a local SQLite database so
// successive runs can be queried and compared.
package store

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"akandict-go-scraper/internal/models"
)

const schemaSQL = `
CREATE TABLE IF NOT EXISTS runs (
	id          TEXT PRIMARY KEY,
	started_at  TIMESTAMP NOT NULL,
	finished_at TIMESTAMP NOT NULL,
	links       INTEGER NOT NULL,
	scraped     INTEGER NOT NULL,
	saved       INTEGER NOT NULL,
	output_path TEXT
);
CREATE TABLE IF NOT EXISTS words (
	url            TEXT PRIMARY KEY,
	english_word   TEXT NOT NULL,
	twi_word       TEXT NOT NULL,
	part_of_speech TEXT NOT NULL,
	run_id         TEXT NOT NULL REFERENCES runs(id),
	updated_at     TIMESTAMP NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_words_english ON words(english_word);
CREATE TABLE IF NOT EXISTS failures (
	run_id TEXT NOT NULL REFERENCES runs(id),
	url    TEXT NOT NULL,
	stage  TEXT NOT NULL,
	reason TEXT NOT NULL
);
`

type Store struct {
	db *sql.DB
}

// Open opens (creating if needed) the database at path and applies the schema.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite %s: %w", path, err)
	}
	if err := initSchema(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("init schema: %w", err)
	}
	return &Store{db: db}, nil
}

func initSchema(db *sql.DB) error {
	for _, s := range strings.Split(schemaSQL, ";") {
		s = strings.TrimSpace(s)
		if s == "" {
			continue
		}
		if _, err := db.Exec(s); err != nil {
			return err
		}
	}
	return nil
}

func (s *Store) Close() error { return s.db.Close() }

// SaveRun records one run with its retained records and failures in a
// single transaction. Words are upserted by url.
func (s *Store) SaveRun(ctx context.Context, rep *models.Report, records []models.WordRecord) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	finished := rep.StartedAt.Add(rep.Duration)
	if _, err := tx.ExecContext(ctx,
		`INSERT INTO runs (id, started_at, finished_at, links, scraped, saved, output_path) VALUES (?, ?, ?, ?, ?, ?, ?)`,
		rep.RunID, rep.StartedAt, finished, rep.Links, rep.Scraped, rep.Saved, rep.OutputPath,
	); err != nil {
		return fmt.Errorf("insert run: %w", err)
	}

	upsert, err := tx.PrepareContext(ctx, `INSERT INTO words (url, english_word, twi_word, part_of_speech, run_id, updated_at)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(url) DO UPDATE SET
		  english_word = excluded.english_word,
		  twi_word = excluded.twi_word,
		  part_of_speech = excluded.part_of_speech,
		  run_id = excluded.run_id,
		  updated_at = excluded.updated_at`)
	if err != nil {
		return err
	}
	defer upsert.Close()
	for _, r := range records {
		if _, err := upsert.ExecContext(ctx, r.URL, r.EnglishWord, r.TwiWord, r.PartOfSpeech, rep.RunID, finished); err != nil {
			return fmt.Errorf("upsert word %s: %w", r.URL, err)
		}
	}

	for _, f := range rep.Failures {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO failures (run_id, url, stage, reason) VALUES (?, ?, ?, ?)`,
			rep.RunID, f.URL, string(f.Stage), f.Reason,
		); err != nil {
			return fmt.Errorf("insert failure: %w", err)
		}
	}

	return tx.Commit()
}

// Words returns every stored record ordered like the export.
func (s *Store) Words(ctx context.Context) ([]models.WordRecord, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT english_word, twi_word, part_of_speech, url FROM words ORDER BY english_word, url`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.WordRecord
	for rows.Next() {
		var r models.WordRecord
		if err := rows.Scan(&r.EnglishWord, &r.TwiWord, &r.PartOfSpeech, &r.URL); err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

// Failures returns the failures recorded for runID.
func (s *Store) Failures(ctx context.Context, runID string) ([]models.FailedURL, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT url, stage, reason FROM failures WHERE run_id = ? ORDER BY rowid`, runID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.FailedURL
	for rows.Next() {
		var f models.FailedURL
		var stage string
		if err := rows.Scan(&f.URL, &stage, &f.Reason); err != nil {
			return nil, err
		}
		f.Stage = models.Stage(stage)
		out = append(out, f)
	}
	return out, rows.Err()
}

// LastRun returns the id and finish time of the most recent run.
func (s *Store) LastRun(ctx context.Context) (string, time.Time, error) {
	var (
		id string
		at time.Time
	)
	err := s.db.QueryRowContext(ctx, `SELECT id, finished_at FROM runs ORDER BY finished_at DESC LIMIT 1`).Scan(&id, &at)
	return id, at, err
}
