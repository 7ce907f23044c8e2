// Package index keeps a SQLite log of every generation: run identity,
// header hash, and the full decision sequence. The index is diagnostic
// infrastructure, not pipeline state; the pipeline never reads it.
package index

import (
	"database/sql"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/fatori-v/go-defines/internal/selector"
)

// #region schema
// Seeds are stored as decimal text: they are unsigned 64-bit and SQLite
// INTEGER is signed.
const schema = `
CREATE TABLE IF NOT EXISTS generations (
	generation_id TEXT PRIMARY KEY,
	run_name      TEXT NOT NULL,
	seed          TEXT NOT NULL,
	board         TEXT,
	policy        TEXT NOT NULL,
	header_hash   TEXT NOT NULL,
	created_at    TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS decision_log (
	id            INTEGER PRIMARY KEY AUTOINCREMENT,
	generation_id TEXT NOT NULL,
	position      INTEGER NOT NULL,
	target_name   TEXT NOT NULL,
	kind          TEXT,
	enabled       INTEGER NOT NULL,
	attribute     TEXT,
	FOREIGN KEY (generation_id) REFERENCES generations(generation_id)
);
CREATE INDEX IF NOT EXISTS idx_decision_generation ON decision_log(generation_id);
`

// #endregion schema

// #region store-struct
// Store manages the generation index in SQLite.
type Store struct {
	db *sql.DB
}

// #endregion store-struct

// #region constructor
// NewStore opens a SQLite database and runs migrations.
func NewStore(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		return nil, fmt.Errorf("pragma: %w", err)
	}
	if _, err := db.Exec("PRAGMA foreign_keys=ON"); err != nil {
		return nil, fmt.Errorf("pragma fk: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return &Store{db: db}, nil
}

// #endregion constructor

// #region close
// Close closes the underlying database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// #endregion close

// #region record
// RecordGeneration inserts one generation and its decision sequence
// atomically. A missing GenerationID or CreatedAt is filled in; the
// completed record is returned.
func (s *Store) RecordGeneration(rec GenerationRecord, decisions []selector.Decision) (GenerationRecord, error) {
	if rec.GenerationID == "" {
		rec.GenerationID = uuid.New().String()
	}
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = time.Now().UTC()
	}

	tx, err := s.db.Begin()
	if err != nil {
		return GenerationRecord{}, fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.Exec(
		`INSERT INTO generations (generation_id, run_name, seed, board, policy, header_hash, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		rec.GenerationID, rec.RunName, strconv.FormatUint(rec.Seed, 10),
		nullIfEmpty(rec.Board), rec.Policy, rec.HeaderHash,
		rec.CreatedAt.Format(time.RFC3339Nano),
	)
	if err != nil {
		return GenerationRecord{}, fmt.Errorf("insert generation: %w", err)
	}

	for i, d := range decisions {
		enabled := 0
		if d.Enabled {
			enabled = 1
		}
		_, err = tx.Exec(
			`INSERT INTO decision_log (generation_id, position, target_name, kind, enabled, attribute)
			 VALUES (?, ?, ?, ?, ?, ?)`,
			rec.GenerationID, i, d.Target.Name, nullIfEmpty(string(d.Target.Kind)),
			enabled, nullIfEmpty(d.Attribute),
		)
		if err != nil {
			return GenerationRecord{}, fmt.Errorf("insert decision %d: %w", i, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return GenerationRecord{}, fmt.Errorf("commit: %w", err)
	}
	return rec, nil
}

// #endregion record

// #region get
// GetGeneration retrieves one generation and its ordered decision rows.
func (s *Store) GetGeneration(id string) (GenerationRecord, []DecisionRow, error) {
	rec, err := s.scanGeneration(s.db.QueryRow(
		`SELECT generation_id, run_name, seed, board, policy, header_hash, created_at
		 FROM generations WHERE generation_id = ?`, id))
	if err != nil {
		return GenerationRecord{}, nil, fmt.Errorf("get generation %s: %w", id, err)
	}

	rows, err := s.db.Query(
		`SELECT position, target_name, kind, enabled, attribute
		 FROM decision_log WHERE generation_id = ? ORDER BY position ASC`, id)
	if err != nil {
		return GenerationRecord{}, nil, fmt.Errorf("query decisions: %w", err)
	}
	defer rows.Close()

	var decisions []DecisionRow
	for rows.Next() {
		var d DecisionRow
		var kind, attribute sql.NullString
		var enabled int
		if err := rows.Scan(&d.Position, &d.TargetName, &kind, &enabled, &attribute); err != nil {
			return GenerationRecord{}, nil, fmt.Errorf("scan decision: %w", err)
		}
		d.Kind = kind.String
		d.Enabled = enabled != 0
		d.Attribute = attribute.String
		decisions = append(decisions, d)
	}
	return rec, decisions, rows.Err()
}

// #endregion get

// #region list
// ListGenerations returns the most recent generations, newest first.
func (s *Store) ListGenerations(limit int) ([]GenerationRecord, error) {
	rows, err := s.db.Query(
		`SELECT generation_id, run_name, seed, board, policy, header_hash, created_at
		 FROM generations ORDER BY created_at DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("list generations: %w", err)
	}
	defer rows.Close()

	var records []GenerationRecord
	for rows.Next() {
		rec, err := s.scanGeneration(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}

// #endregion list

// #region helpers

type rowScanner interface {
	Scan(dest ...any) error
}

func (s *Store) scanGeneration(row rowScanner) (GenerationRecord, error) {
	var rec GenerationRecord
	var seedStr, createdStr string
	var board sql.NullString

	if err := row.Scan(&rec.GenerationID, &rec.RunName, &seedStr, &board,
		&rec.Policy, &rec.HeaderHash, &createdStr); err != nil {
		return GenerationRecord{}, fmt.Errorf("scan generation: %w", err)
	}

	seed, err := strconv.ParseUint(seedStr, 10, 64)
	if err != nil {
		return GenerationRecord{}, fmt.Errorf("parse seed %q: %w", seedStr, err)
	}
	rec.Seed = seed
	rec.Board = board.String
	rec.CreatedAt, _ = time.Parse(time.RFC3339Nano, createdStr)
	return rec, nil
}

func nullIfEmpty(s string) any {
	if s == "" {
		return nil
	}
	return s
}

// #endregion helpers
