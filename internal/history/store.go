// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package history

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite" // Pure Go SQLite driver

	"github.com/jeranaias/linuxblox/internal/util"
)

// DefaultMaxEntries is used when Open is given a non-positive cap.
const DefaultMaxEntries = 50

var (
	// ErrNotFound is returned when no snapshot matches an ID.
	ErrNotFound = errors.New("snapshot not found")
	// ErrAmbiguous is returned when an ID prefix matches several snapshots.
	ErrAmbiguous = errors.New("snapshot id prefix is ambiguous")
)

// Snapshot is one journaled copy of the document.
type Snapshot struct {
	ID        string
	SessionID string
	Path      string
	TakenAt   time.Time
	Reason    string
	Size      int
	// Content is only filled by Get and Restore.
	Content []byte
}

// Store is the SQLite-backed journal.
type Store struct {
	db         *sql.DB
	maxEntries int
	now        func() time.Time
}

// Open opens (or creates) the journal database at path.
func Open(path string, maxEntries int) (*Store, error) {
	if maxEntries <= 0 {
		maxEntries = DefaultMaxEntries
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("failed to create history directory: %w", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open history database: %w", err)
	}

	// SQLite only supports one writer at a time
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA synchronous=NORMAL",
		"PRAGMA busy_timeout=5000",
	}
	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, fmt.Errorf("failed to set pragma: %w", err)
		}
	}

	if _, err := db.Exec(Schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	return &Store{db: db, maxEntries: maxEntries, now: time.Now}, nil
}

// Close closes the database.
func (s *Store) Close() error {
	return s.db.Close()
}

// Record stores content as a new snapshot and prunes old entries.
func (s *Store) Record(sessionID, path string, content []byte, reason string) error {
	_, err := s.db.Exec(
		"INSERT INTO snapshots (id, session_id, path, taken_at, reason, content) VALUES (?, ?, ?, ?, ?, ?)",
		uuid.NewString(), sessionID, path, s.now().UnixNano(), reason, content,
	)
	if err != nil {
		return fmt.Errorf("failed to record snapshot: %w", err)
	}
	return s.prune()
}

func (s *Store) prune() error {
	_, err := s.db.Exec(
		`DELETE FROM snapshots WHERE id NOT IN (
			SELECT id FROM snapshots ORDER BY taken_at DESC, rowid DESC LIMIT ?
		)`, s.maxEntries)
	if err != nil {
		return fmt.Errorf("failed to prune snapshots: %w", err)
	}
	return nil
}

// List returns up to limit snapshots, newest first, without content.
// A non-positive limit returns everything.
func (s *Store) List(limit int) ([]Snapshot, error) {
	if limit <= 0 {
		limit = -1
	}
	rows, err := s.db.Query(
		`SELECT id, session_id, path, taken_at, reason, length(content)
		 FROM snapshots ORDER BY taken_at DESC, rowid DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list snapshots: %w", err)
	}
	defer rows.Close()

	var out []Snapshot
	for rows.Next() {
		var snap Snapshot
		var takenAt int64
		if err := rows.Scan(&snap.ID, &snap.SessionID, &snap.Path, &takenAt, &snap.Reason, &snap.Size); err != nil {
			return nil, fmt.Errorf("failed to scan snapshot: %w", err)
		}
		snap.TakenAt = time.Unix(0, takenAt)
		out = append(out, snap)
	}
	return out, rows.Err()
}

// Get returns the snapshot whose ID equals or starts with id.
func (s *Store) Get(id string) (Snapshot, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return Snapshot{}, ErrNotFound
	}
	rows, err := s.db.Query(
		`SELECT id, session_id, path, taken_at, reason, content
		 FROM snapshots WHERE substr(id, 1, ?) = ? LIMIT 2`, len(id), id)
	if err != nil {
		return Snapshot{}, fmt.Errorf("failed to query snapshot: %w", err)
	}
	defer rows.Close()

	var found []Snapshot
	for rows.Next() {
		var snap Snapshot
		var takenAt int64
		if err := rows.Scan(&snap.ID, &snap.SessionID, &snap.Path, &takenAt, &snap.Reason, &snap.Content); err != nil {
			return Snapshot{}, fmt.Errorf("failed to scan snapshot: %w", err)
		}
		snap.TakenAt = time.Unix(0, takenAt)
		snap.Size = len(snap.Content)
		found = append(found, snap)
	}
	if err := rows.Err(); err != nil {
		return Snapshot{}, err
	}

	switch len(found) {
	case 0:
		return Snapshot{}, fmt.Errorf("%w: %s", ErrNotFound, id)
	case 1:
		return found[0], nil
	default:
		return Snapshot{}, fmt.Errorf("%w: %s", ErrAmbiguous, id)
	}
}

// Restore writes a snapshot's content back to the path it was taken from.
func (s *Store) Restore(id string) (Snapshot, error) {
	snap, err := s.Get(id)
	if err != nil {
		return Snapshot{}, err
	}
	perm := os.FileMode(0644)
	if info, err := os.Stat(snap.Path); err == nil {
		perm = info.Mode().Perm() | 0200
	}
	if err := util.AtomicWriteFile(snap.Path, snap.Content, perm); err != nil {
		return Snapshot{}, fmt.Errorf("failed to restore snapshot: %w", err)
	}
	return snap, nil
}
