// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package store persists tracking sessions in a local SQLite database so
// progress survives process restarts. The table is replaced wholesale on
// each load; status marks persist independently of the table, matching
// the session semantics in internal/tracker.
// See docs/ARCHITECTURE.md § Session Store.
package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/pdiddy/paper-tracker/internal/tracker"
	"github.com/pdiddy/paper-tracker/pkg/types"
)

const dbFile = "tracker.db"

// Store manages the session database.
type Store struct {
	db      *sql.DB
	dataDir string
}

// SessionInfo describes a stored session.
type SessionInfo struct {
	Name          string
	Source        string
	UserID        string
	PrioritizeURL bool
	EntryCount    int
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// Open opens or creates the session database under cfg.DataDir, creating
// the schema if needed.
func Open(cfg types.StoreConfig) (*Store, error) {
	dataDir := cfg.DataDir
	if dataDir == "" {
		dataDir = ".paper-tracker"
	}
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}

	dbPath := filepath.Join(dataDir, dbFile)
	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	s := &Store{db: db, dataDir: dataDir}
	if err := s.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}
	return s, nil
}

// Close releases the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// DataDir returns the directory holding the database and descriptors.
func (s *Store) DataDir() string {
	return s.dataDir
}

func (s *Store) createSchema() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS sessions (
			name TEXT PRIMARY KEY,
			source TEXT,
			user_id TEXT,
			prioritize_url INTEGER NOT NULL DEFAULT 0,
			created_at TEXT,
			updated_at TEXT
		)`,
		`CREATE TABLE IF NOT EXISTS entries (
			session TEXT NOT NULL REFERENCES sessions(name) ON DELETE CASCADE,
			position INTEGER NOT NULL,
			key TEXT NOT NULL,
			title TEXT,
			doi TEXT,
			url TEXT,
			link TEXT,
			link_kind TEXT,
			fields TEXT,
			PRIMARY KEY (session, position)
		)`,
		`CREATE TABLE IF NOT EXISTS columns (
			session TEXT NOT NULL REFERENCES sessions(name) ON DELETE CASCADE,
			position INTEGER NOT NULL,
			name TEXT NOT NULL,
			PRIMARY KEY (session, position)
		)`,
		`CREATE TABLE IF NOT EXISTS status (
			session TEXT NOT NULL,
			key TEXT NOT NULL,
			state TEXT NOT NULL,
			updated_at TEXT,
			PRIMARY KEY (session, key)
		)`,
		`CREATE INDEX IF NOT EXISTS idx_entries_key ON entries(session, key)`,
	}
	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}
	return nil
}

// SaveTable stores a freshly loaded table under the session name,
// replacing any previous table rows. Status marks for the session are
// kept: progress persists across uploads. A new session gets a creation
// timestamp and the supplied user token.
func (s *Store) SaveTable(ctx context.Context, name, source, userID string, cfg types.LinkConfig, tbl *types.Table) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	now := time.Now().UTC().Format(time.RFC3339)
	prioritize := 0
	if cfg.PrioritizeURL {
		prioritize = 1
	}
	_, err = tx.ExecContext(ctx,
		`INSERT INTO sessions (name, source, user_id, prioritize_url, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?)
		 ON CONFLICT(name) DO UPDATE SET
			source=excluded.source, prioritize_url=excluded.prioritize_url,
			updated_at=excluded.updated_at`,
		name, source, userID, prioritize, now, now,
	)
	if err != nil {
		return fmt.Errorf("upserting session: %w", err)
	}

	for _, table := range []string{"entries", "columns"} {
		if _, err := tx.ExecContext(ctx,
			fmt.Sprintf(`DELETE FROM %s WHERE session = ?`, table), name); err != nil {
			return fmt.Errorf("clearing old %s: %w", table, err)
		}
	}

	colStmt, err := tx.PrepareContext(ctx,
		`INSERT INTO columns (session, position, name) VALUES (?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("preparing column insert: %w", err)
	}
	defer colStmt.Close()
	for i, col := range tbl.Columns {
		if _, err := colStmt.ExecContext(ctx, name, i, col); err != nil {
			return fmt.Errorf("inserting column %s: %w", col, err)
		}
	}

	entryStmt, err := tx.PrepareContext(ctx,
		`INSERT INTO entries (session, position, key, title, doi, url, link, link_kind, fields)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("preparing entry insert: %w", err)
	}
	defer entryStmt.Close()

	for i, e := range tbl.Entries {
		fieldsJSON, _ := json.Marshal(e.Fields)
		_, err := entryStmt.ExecContext(ctx,
			name, i, e.Key, e.Title, e.DOI, e.URL, e.Link, string(e.LinkKind), string(fieldsJSON))
		if err != nil {
			return fmt.Errorf("inserting entry %s: %w", e.Key, err)
		}
	}

	return tx.Commit()
}

// LoadSession rebuilds a session (table plus status marks) from the
// database. Returns sql.ErrNoRows wrapped when the session is unknown.
func (s *Store) LoadSession(ctx context.Context, name string) (*tracker.Session, *SessionInfo, error) {
	info, err := s.sessionInfo(ctx, name)
	if err != nil {
		return nil, nil, err
	}

	tbl := &types.Table{}
	colRows, err := s.db.QueryContext(ctx,
		`SELECT name FROM columns WHERE session = ? ORDER BY position`, name)
	if err != nil {
		return nil, nil, fmt.Errorf("querying columns: %w", err)
	}
	defer colRows.Close()
	for colRows.Next() {
		var col string
		if err := colRows.Scan(&col); err != nil {
			return nil, nil, fmt.Errorf("scanning column: %w", err)
		}
		tbl.Columns = append(tbl.Columns, col)
	}
	if err := colRows.Err(); err != nil {
		return nil, nil, fmt.Errorf("reading columns: %w", err)
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT key, title, doi, url, link, link_kind, fields
		 FROM entries WHERE session = ? ORDER BY position`, name)
	if err != nil {
		return nil, nil, fmt.Errorf("querying entries: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var e types.Entry
		var kind, fieldsJSON string
		if err := rows.Scan(&e.Key, &e.Title, &e.DOI, &e.URL, &e.Link, &kind, &fieldsJSON); err != nil {
			return nil, nil, fmt.Errorf("scanning entry: %w", err)
		}
		e.LinkKind = types.LinkKind(kind)
		if fieldsJSON != "" {
			json.Unmarshal([]byte(fieldsJSON), &e.Fields)
		}
		tbl.Entries = append(tbl.Entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, fmt.Errorf("reading entries: %w", err)
	}

	session := tracker.NewSession(tbl)

	statusRows, err := s.db.QueryContext(ctx,
		`SELECT key, state FROM status WHERE session = ?`, name)
	if err != nil {
		return nil, nil, fmt.Errorf("querying status: %w", err)
	}
	defer statusRows.Close()
	for statusRows.Next() {
		var key, state string
		if err := statusRows.Scan(&key, &state); err != nil {
			return nil, nil, fmt.Errorf("scanning status: %w", err)
		}
		switch types.Status(state) {
		case types.StatusCompleted:
			session.MarkDone(key)
		case types.StatusFailed:
			session.MarkFailed(key)
		}
	}
	if err := statusRows.Err(); err != nil {
		return nil, nil, fmt.Errorf("reading status: %w", err)
	}

	return session, info, nil
}

// SetStatus persists one status mark. StatusPending deletes the row.
func (s *Store) SetStatus(ctx context.Context, name, key string, status types.Status) error {
	if !status.Valid() {
		return fmt.Errorf("unknown status %q", status)
	}

	if status == types.StatusPending {
		_, err := s.db.ExecContext(ctx,
			`DELETE FROM status WHERE session = ? AND key = ?`, name, key)
		if err != nil {
			return fmt.Errorf("clearing status for %s: %w", key, err)
		}
		return nil
	}

	now := time.Now().UTC().Format(time.RFC3339)
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO status (session, key, state, updated_at) VALUES (?, ?, ?, ?)
		 ON CONFLICT(session, key) DO UPDATE SET state=excluded.state, updated_at=excluded.updated_at`,
		name, key, string(status), now)
	if err != nil {
		return fmt.Errorf("saving status for %s: %w", key, err)
	}
	return nil
}

// SyncStatus rewrites the session's status rows from the in-memory sets.
// Used after bulk operations (import, verify, clear).
func (s *Store) SyncStatus(ctx context.Context, name string, session *tracker.Session) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM status WHERE session = ?`, name); err != nil {
		return fmt.Errorf("clearing status: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO status (session, key, state, updated_at) VALUES (?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("preparing status insert: %w", err)
	}
	defer stmt.Close()

	now := time.Now().UTC().Format(time.RFC3339)
	for _, key := range session.CompletedKeys() {
		if _, err := stmt.ExecContext(ctx, name, key, string(types.StatusCompleted), now); err != nil {
			return fmt.Errorf("inserting status for %s: %w", key, err)
		}
	}
	for _, key := range session.FailedKeys() {
		if _, err := stmt.ExecContext(ctx, name, key, string(types.StatusFailed), now); err != nil {
			return fmt.Errorf("inserting status for %s: %w", key, err)
		}
	}

	return tx.Commit()
}

// ListSessions returns all stored sessions, most recently updated first.
func (s *Store) ListSessions(ctx context.Context) ([]SessionInfo, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT s.name, s.source, s.user_id, s.prioritize_url, s.created_at, s.updated_at,
			(SELECT count(*) FROM entries e WHERE e.session = s.name)
		 FROM sessions s ORDER BY s.updated_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("querying sessions: %w", err)
	}
	defer rows.Close()

	var infos []SessionInfo
	for rows.Next() {
		info, err := scanSessionInfo(rows)
		if err != nil {
			return nil, err
		}
		infos = append(infos, *info)
	}
	return infos, rows.Err()
}

// DeleteSession removes a session and all its rows.
func (s *Store) DeleteSession(ctx context.Context, name string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	for _, table := range []string{"status", "entries", "columns", "sessions"} {
		col := "session"
		if table == "sessions" {
			col = "name"
		}
		if _, err := tx.ExecContext(ctx,
			fmt.Sprintf(`DELETE FROM %s WHERE %s = ?`, table, col), name); err != nil {
			return fmt.Errorf("deleting from %s: %w", table, err)
		}
	}
	return tx.Commit()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func (s *Store) sessionInfo(ctx context.Context, name string) (*SessionInfo, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT s.name, s.source, s.user_id, s.prioritize_url, s.created_at, s.updated_at,
			(SELECT count(*) FROM entries e WHERE e.session = s.name)
		 FROM sessions s WHERE s.name = ?`, name)
	info, err := scanSessionInfo(row)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("session %q not found: %w", name, err)
	}
	return info, err
}

func scanSessionInfo(row rowScanner) (*SessionInfo, error) {
	var info SessionInfo
	var prioritize int
	var created, updated string
	if err := row.Scan(&info.Name, &info.Source, &info.UserID, &prioritize,
		&created, &updated, &info.EntryCount); err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("scanning session: %w", err)
	}
	info.PrioritizeURL = prioritize != 0
	info.CreatedAt, _ = time.Parse(time.RFC3339, created)
	info.UpdatedAt, _ = time.Parse(time.RFC3339, updated)
	return &info, nil
}
