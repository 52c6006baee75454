// Package snapshot persists fetched memory-graph overviews in SQLite so
// the playground can compare how the graph evolves between sessions.
// Snapshots are immutable observations; nothing here writes back to the
// graph database.
package snapshot

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"

	"iremember/pkg/memgraph"
)

// ErrNotFound is returned when a snapshot id does not exist.
var ErrNotFound = errors.New("snapshot not found")

const schema = `
CREATE TABLE IF NOT EXISTS snapshots (
	id TEXT PRIMARY KEY,
	label TEXT NOT NULL DEFAULT '',
	created_at TIMESTAMP NOT NULL,
	node_count INTEGER NOT NULL,
	edge_count INTEGER NOT NULL,
	graph_json TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_snapshots_created_at ON snapshots(created_at DESC);
`

// Store is a SQLite-backed snapshot store.
type Store struct {
	db *sql.DB
}

// Open opens (and if needed bootstraps) the snapshot database.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open snapshot database: %w", err)
	}

	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to enable foreign keys: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping snapshot database: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create snapshot schema: %w", err)
	}

	return &Store{db: db}, nil
}

// Save stores a graph document under a fresh uuid and returns the
// resulting snapshot.
func (s *Store) Save(ctx context.Context, label string, doc memgraph.Document) (*Snapshot, error) {
	payload, err := json.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal graph document: %w", err)
	}

	snap := &Snapshot{
		ID:        uuid.NewString(),
		Label:     label,
		CreatedAt: time.Now().UTC(),
		NodeCount: len(doc.Nodes),
		EdgeCount: len(doc.Edges),
		Document:  doc,
	}

	query := `
		INSERT INTO snapshots (id, label, created_at, node_count, edge_count, graph_json)
		VALUES (?, ?, ?, ?, ?, ?)
	`
	if _, err := s.db.ExecContext(ctx, query, snap.ID, snap.Label, snap.CreatedAt, snap.NodeCount, snap.EdgeCount, string(payload)); err != nil {
		return nil, fmt.Errorf("failed to save snapshot: %w", err)
	}
	return snap, nil
}

// Get retrieves one snapshot including its graph payload.
func (s *Store) Get(ctx context.Context, id string) (*Snapshot, error) {
	query := `
		SELECT id, label, created_at, node_count, edge_count, graph_json
		FROM snapshots
		WHERE id = ?
	`
	var snap Snapshot
	var payload string
	err := s.db.QueryRowContext(ctx, query, id).Scan(
		&snap.ID, &snap.Label, &snap.CreatedAt, &snap.NodeCount, &snap.EdgeCount, &payload,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get snapshot: %w", err)
	}
	if err := json.Unmarshal([]byte(payload), &snap.Document); err != nil {
		return nil, fmt.Errorf("failed to decode snapshot payload: %w", err)
	}
	return &snap, nil
}

// List returns snapshot summaries, newest first.
func (s *Store) List(ctx context.Context, limit, offset int) ([]Summary, error) {
	if limit <= 0 {
		limit = 20
	}
	query := `
		SELECT id, label, created_at, node_count, edge_count
		FROM snapshots
		ORDER BY created_at DESC
		LIMIT ? OFFSET ?
	`
	rows, err := s.db.QueryContext(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list snapshots: %w", err)
	}
	defer rows.Close()

	var out []Summary
	for rows.Next() {
		var sum Summary
		if err := rows.Scan(&sum.ID, &sum.Label, &sum.CreatedAt, &sum.NodeCount, &sum.EdgeCount); err != nil {
			return nil, fmt.Errorf("failed to scan snapshot row: %w", err)
		}
		out = append(out, sum)
	}
	return out, rows.Err()
}

// Delete removes a snapshot.
func (s *Store) Delete(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM snapshots WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete snapshot: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read delete result: %w", err)
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

// DiffSnapshots loads two snapshots and computes their graph diff.
func (s *Store) DiffSnapshots(ctx context.Context, fromID, toID string) (*Diff, error) {
	from, err := s.Get(ctx, fromID)
	if err != nil {
		return nil, fmt.Errorf("from snapshot: %w", err)
	}
	to, err := s.Get(ctx, toID)
	if err != nil {
		return nil, fmt.Errorf("to snapshot: %w", err)
	}
	d := ComputeDiff(from.Document, to.Document)
	d.FromID = fromID
	d.ToID = toID
	return &d, nil
}

// Ping checks the database connection.
func (s *Store) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// Close closes the database.
func (s *Store) Close() error {
	return s.db.Close()
}
