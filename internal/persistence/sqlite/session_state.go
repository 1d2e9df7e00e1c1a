// Package sqlite persists the client session cache in a small key-value
// table. It is the only durable storage in the system; the data repositories
// are in-memory by design.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/example/mindease/internal/persistence"
	_ "modernc.org/sqlite"
)

// Storage keys mirror the two entries the client keeps in local storage.
const (
	tokenKey    = "mindease_token"
	identityKey = "mindease_user"
)

// Store implements persistence.SessionStateStore on a SQLite database.
type Store struct {
	db *sql.DB
}

// Open connects to the database identified by the DSN.
func Open(dsn string) (*Store, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite database: %w", err)
	}
	return &Store{db: db}, nil
}

// Close releases the underlying database handle.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// Migrate creates the session state table when it does not exist yet.
func (s *Store) Migrate(ctx context.Context) error {
	const schema = `
		CREATE TABLE IF NOT EXISTS session_state (
			key        TEXT PRIMARY KEY,
			value      BLOB NOT NULL,
			updated_at TEXT NOT NULL
		)
	`
	if _, err := s.db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("failed to create session_state table: %w", err)
	}
	return nil
}

// SaveSessionState stores the token and identity blob together. Both rows are
// written in one transaction so a reader never observes a half-populated
// session.
func (s *Store) SaveSessionState(ctx context.Context, state persistence.SessionState) error {
	return s.withTransaction(ctx, func(tx *sql.Tx) error {
		now := time.Now().UTC().Format(time.RFC3339)
		const upsert = `
			INSERT INTO session_state (key, value, updated_at) VALUES (?, ?, ?)
			ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at
		`
		if _, err := tx.ExecContext(ctx, upsert, tokenKey, []byte(state.Token), now); err != nil {
			return fmt.Errorf("failed to store token: %w", err)
		}
		if _, err := tx.ExecContext(ctx, upsert, identityKey, state.Identity, now); err != nil {
			return fmt.Errorf("failed to store identity: %w", err)
		}
		return nil
	})
}

// LoadSessionState reads both entries. ErrNotFound is returned only when
// neither row exists; a half-populated cache comes back with the missing
// value empty so the caller can discard the leftover row.
func (s *Store) LoadSessionState(ctx context.Context) (persistence.SessionState, error) {
	token, tokenErr := s.loadValue(ctx, tokenKey)
	if tokenErr != nil && !errors.Is(tokenErr, persistence.ErrNotFound) {
		return persistence.SessionState{}, tokenErr
	}
	identity, identityErr := s.loadValue(ctx, identityKey)
	if identityErr != nil && !errors.Is(identityErr, persistence.ErrNotFound) {
		return persistence.SessionState{}, identityErr
	}
	if tokenErr != nil && identityErr != nil {
		return persistence.SessionState{}, persistence.ErrNotFound
	}

	return persistence.SessionState{Token: string(token), Identity: identity}, nil
}

// ClearSessionState removes both entries unconditionally.
func (s *Store) ClearSessionState(ctx context.Context) error {
	return s.withTransaction(ctx, func(tx *sql.Tx) error {
		const remove = `DELETE FROM session_state WHERE key IN (?, ?)`
		if _, err := tx.ExecContext(ctx, remove, tokenKey, identityKey); err != nil {
			return fmt.Errorf("failed to clear session state: %w", err)
		}
		return nil
	})
}

func (s *Store) loadValue(ctx context.Context, key string) ([]byte, error) {
	const query = `SELECT value FROM session_state WHERE key = ?`

	var value []byte
	err := s.db.QueryRowContext(ctx, query, key).Scan(&value)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, persistence.ErrNotFound
		}
		return nil, fmt.Errorf("failed to load %s: %w", key, err)
	}
	return value, nil
}

func (s *Store) withTransaction(ctx context.Context, fn func(tx *sql.Tx) error) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	if err := fn(tx); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			return fmt.Errorf("transaction failed (rollback error: %v): %w", rbErr, err)
		}
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}
