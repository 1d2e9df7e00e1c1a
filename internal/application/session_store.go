package application

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sync"
)

// SessionStateStore persists the cached session across process restarts.
// Save replaces both values together; Load fails with ErrNotFound only when
// nothing is cached and reports a half-populated cache as-is so Restore can
// discard the leftover.
type SessionStateStore interface {
	SaveSessionState(ctx context.Context, token string, identity []byte) error
	LoadSessionState(ctx context.Context) (token string, identity []byte, err error)
	ClearSessionState(ctx context.Context) error
}

// SessionStore holds the active session in memory and mirrors it to a
// durable store. It is safe for concurrent use.
type SessionStore struct {
	store  SessionStateStore
	logger *slog.Logger

	mu       sync.RWMutex
	token    string
	identity Identity
	active   bool
}

// NewSessionStore constructs a SessionStore backed by the given durable store.
func NewSessionStore(store SessionStateStore, logger *slog.Logger) *SessionStore {
	return &SessionStore{
		store:  store,
		logger: defaultLogger(logger),
	}
}

// Set caches the identity and token, persisting them before updating the
// in-memory copy so a crash never leaves memory ahead of the durable state.
func (s *SessionStore) Set(ctx context.Context, identity Identity, token string) error {
	if s == nil {
		return fmt.Errorf("SessionStore is nil")
	}
	if s.store == nil {
		return fmt.Errorf("session state store not configured")
	}

	blob, err := json.Marshal(identity)
	if err != nil {
		return fmt.Errorf("failed to encode identity: %w", err)
	}
	if err := s.store.SaveSessionState(ctx, token, blob); err != nil {
		return fmt.Errorf("failed to persist session: %w", err)
	}

	s.mu.Lock()
	s.token = token
	s.identity = identity
	s.active = true
	s.mu.Unlock()
	return nil
}

// Restore loads the cached session from the durable store. A missing or
// unreadable cache is not an error: the store simply stays signed out, and
// any partial leftovers are cleared so both values always travel together.
func (s *SessionStore) Restore(ctx context.Context) (Identity, bool, error) {
	if s == nil {
		return Identity{}, false, fmt.Errorf("SessionStore is nil")
	}
	if s.store == nil {
		return Identity{}, false, fmt.Errorf("session state store not configured")
	}

	logger := serviceLogger(ctx, s.logger, "SessionStore", "Restore")

	token, blob, err := s.store.LoadSessionState(ctx)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return Identity{}, false, nil
		}
		return Identity{}, false, fmt.Errorf("failed to load session: %w", err)
	}

	var identity Identity
	if token == "" || json.Unmarshal(blob, &identity) != nil || identity.ID == "" {
		logger.WarnContext(ctx, "discarding unreadable session cache")
		if clearErr := s.store.ClearSessionState(ctx); clearErr != nil {
			return Identity{}, false, fmt.Errorf("failed to clear corrupt session: %w", clearErr)
		}
		return Identity{}, false, nil
	}

	s.mu.Lock()
	s.token = token
	s.identity = identity
	s.active = true
	s.mu.Unlock()

	logger.With("user_id", identity.ID).InfoContext(ctx, "session restored")
	return identity, true, nil
}

// Logout clears the session from memory and from the durable store. It is
// safe to call with no active session.
func (s *SessionStore) Logout(ctx context.Context) error {
	if s == nil {
		return fmt.Errorf("SessionStore is nil")
	}
	if s.store == nil {
		return fmt.Errorf("session state store not configured")
	}

	s.mu.Lock()
	s.token = ""
	s.identity = Identity{}
	s.active = false
	s.mu.Unlock()

	if err := s.store.ClearSessionState(ctx); err != nil {
		return fmt.Errorf("failed to clear session: %w", err)
	}
	return nil
}

// Current returns the cached identity and whether a session is active.
func (s *SessionStore) Current() (Identity, bool) {
	if s == nil {
		return Identity{}, false
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.identity, s.active
}

// Token returns the cached bearer token, or "" when signed out.
func (s *SessionStore) Token() string {
	if s == nil {
		return ""
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}

// IsAuthenticated reports whether a session is active.
func (s *SessionStore) IsAuthenticated() bool {
	if s == nil {
		return false
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.active
}

// AuthorizationHeader renders the cached token as a bearer header value, or
// "" when signed out.
func (s *SessionStore) AuthorizationHeader() string {
	token := s.Token()
	if token == "" {
		return ""
	}
	return "Bearer " + token
}
