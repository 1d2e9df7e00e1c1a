package memory

import (
	"context"
	"sync"
	"time"

	"github.com/example/mindease/internal/persistence"
)

// JournalRepository implements persistence.JournalRepository over a seeded
// in-memory table.
type JournalRepository struct {
	mu      sync.RWMutex
	entries []persistence.JournalEntry
	latency time.Duration
}

// NewJournalRepository constructs the journal table from the provided seed.
func NewJournalRepository(seed []persistence.JournalEntry, latency time.Duration) *JournalRepository {
	entries := make([]persistence.JournalEntry, 0, len(seed))
	for _, e := range seed {
		entries = append(entries, cloneEntry(e))
	}
	return &JournalRepository{entries: entries, latency: latency}
}

// ListEntriesByOwner returns the owner's entries in insertion order.
func (r *JournalRepository) ListEntriesByOwner(ctx context.Context, ownerID string) ([]persistence.JournalEntry, error) {
	if err := wait(ctx, r.latency); err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	matched := make([]persistence.JournalEntry, 0)
	for _, e := range r.entries {
		if e.OwnerID == ownerID {
			matched = append(matched, cloneEntry(e))
		}
	}
	return matched, nil
}

// GetEntry returns the entry with the given id or ErrNotFound.
func (r *JournalRepository) GetEntry(ctx context.Context, id string) (persistence.JournalEntry, error) {
	if err := wait(ctx, r.latency); err != nil {
		return persistence.JournalEntry{}, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, e := range r.entries {
		if e.ID == id {
			return cloneEntry(e), nil
		}
	}
	return persistence.JournalEntry{}, persistence.ErrNotFound
}

// CreateEntry appends a new record. The id must not collide with an existing
// entry.
func (r *JournalRepository) CreateEntry(ctx context.Context, entry persistence.JournalEntry) (persistence.JournalEntry, error) {
	if err := wait(ctx, r.latency); err != nil {
		return persistence.JournalEntry{}, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	for _, e := range r.entries {
		if e.ID == entry.ID {
			return persistence.JournalEntry{}, persistence.ErrDuplicate
		}
	}
	r.entries = append(r.entries, cloneEntry(entry))
	return cloneEntry(entry), nil
}

// UpdateEntry replaces the stored record in place, keeping its position.
// Field merging is the caller's responsibility.
func (r *JournalRepository) UpdateEntry(ctx context.Context, entry persistence.JournalEntry) (persistence.JournalEntry, error) {
	if err := wait(ctx, r.latency); err != nil {
		return persistence.JournalEntry{}, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	for i, e := range r.entries {
		if e.ID == entry.ID {
			r.entries[i] = cloneEntry(entry)
			return cloneEntry(entry), nil
		}
	}
	return persistence.JournalEntry{}, persistence.ErrNotFound
}

// DeleteEntry removes the record with the given id, preserving the relative
// order of the remaining entries.
func (r *JournalRepository) DeleteEntry(ctx context.Context, id string) error {
	if err := wait(ctx, r.latency); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	for i, e := range r.entries {
		if e.ID == id {
			r.entries = append(r.entries[:i], r.entries[i+1:]...)
			return nil
		}
	}
	return persistence.ErrNotFound
}

func cloneEntry(e persistence.JournalEntry) persistence.JournalEntry {
	e.Tags = cloneStrings(e.Tags)
	return e
}
