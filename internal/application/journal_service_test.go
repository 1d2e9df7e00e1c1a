package application

import (
	"context"
	"errors"
	"testing"
	"time"
)

type journalRepositoryStub struct {
	entries map[string]JournalEntry
	order   []string

	err error
}

func newJournalRepositoryStub(entries ...JournalEntry) *journalRepositoryStub {
	stub := &journalRepositoryStub{entries: make(map[string]JournalEntry)}
	for _, entry := range entries {
		stub.entries[entry.ID] = entry
		stub.order = append(stub.order, entry.ID)
	}
	return stub
}

func (s *journalRepositoryStub) ListEntriesByOwner(_ context.Context, ownerID string) ([]JournalEntry, error) {
	if s.err != nil {
		return nil, s.err
	}
	var entries []JournalEntry
	for _, id := range s.order {
		if entry := s.entries[id]; entry.OwnerID == ownerID {
			entries = append(entries, entry)
		}
	}
	return entries, nil
}

func (s *journalRepositoryStub) GetEntry(_ context.Context, id string) (JournalEntry, error) {
	if s.err != nil {
		return JournalEntry{}, s.err
	}
	entry, ok := s.entries[id]
	if !ok {
		return JournalEntry{}, ErrNotFound
	}
	return entry, nil
}

func (s *journalRepositoryStub) CreateEntry(_ context.Context, entry JournalEntry) (JournalEntry, error) {
	if s.err != nil {
		return JournalEntry{}, s.err
	}
	s.entries[entry.ID] = entry
	s.order = append(s.order, entry.ID)
	return entry, nil
}

func (s *journalRepositoryStub) UpdateEntry(_ context.Context, entry JournalEntry) (JournalEntry, error) {
	if s.err != nil {
		return JournalEntry{}, s.err
	}
	if _, ok := s.entries[entry.ID]; !ok {
		return JournalEntry{}, ErrNotFound
	}
	s.entries[entry.ID] = entry
	return entry, nil
}

func (s *journalRepositoryStub) DeleteEntry(_ context.Context, id string) error {
	if s.err != nil {
		return s.err
	}
	if _, ok := s.entries[id]; !ok {
		return ErrNotFound
	}
	delete(s.entries, id)
	for i, existing := range s.order {
		if existing == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	return nil
}

func TestJournalService_Create(t *testing.T) {
	t.Parallel()

	now := func() time.Time { return time.Date(2024, 1, 15, 10, 0, 0, 0, time.UTC) }

	t.Run("stamps owner, id, and date", func(t *testing.T) {
		t.Parallel()

		repo := newJournalRepositoryStub()
		svc := NewJournalService(repo, func() string { return "entry-1" }, now)

		entry, err := svc.Create(context.Background(), CreateJournalEntryParams{
			Principal: seekerPrincipal,
			Input: JournalEntryInput{
				Title:   " A good day ",
				Content: "Felt calm after the walk.",
				Mood:    MoodHappy,
				Tags:    []string{"gratitude"},
				Private: true,
			},
		})
		if err != nil {
			t.Fatalf("Create failed: %v", err)
		}

		if entry.ID != "entry-1" || entry.OwnerID != "1" {
			t.Fatalf("unexpected entry: %#v", entry)
		}
		if entry.Title != "A good day" {
			t.Fatalf("expected trimmed title, got %q", entry.Title)
		}
		if entry.Date != "2024-01-15" {
			t.Fatalf("expected stamped date, got %q", entry.Date)
		}
	})

	t.Run("reports field errors for incomplete entries", func(t *testing.T) {
		t.Parallel()

		svc := NewJournalService(newJournalRepositoryStub(), nil, now)

		_, err := svc.Create(context.Background(), CreateJournalEntryParams{
			Principal: seekerPrincipal,
			Input:     JournalEntryInput{Mood: Mood("ecstatic")},
		})
		var vErr *ValidationError
		if !errors.As(err, &vErr) {
			t.Fatalf("expected ValidationError, got %v", err)
		}
		for _, field := range []string{"title", "content", "mood"} {
			if _, ok := vErr.FieldErrors[field]; !ok {
				t.Fatalf("expected field error for %s, got %#v", field, vErr.FieldErrors)
			}
		}
	})
}

func TestJournalService_Update(t *testing.T) {
	t.Parallel()

	seed := JournalEntry{
		ID:      "entry-1",
		OwnerID: "1",
		Title:   "Original title",
		Content: "Original content",
		Mood:    MoodNeutral,
		Tags:    []string{"one"},
		Date:    "2024-01-10",
		Private: true,
	}

	t.Run("merges only the provided fields", func(t *testing.T) {
		t.Parallel()

		repo := newJournalRepositoryStub(seed)
		svc := NewJournalService(repo, nil, nil)

		title := "New title"
		mood := MoodHappy
		entry, err := svc.Update(context.Background(), UpdateJournalEntryParams{
			Principal: seekerPrincipal,
			EntryID:   "entry-1",
			Patch:     JournalEntryPatch{Title: &title, Mood: &mood},
		})
		if err != nil {
			t.Fatalf("Update failed: %v", err)
		}

		if entry.Title != "New title" || entry.Mood != MoodHappy {
			t.Fatalf("expected patched fields, got %#v", entry)
		}
		if entry.Content != "Original content" || !entry.Private || entry.Date != "2024-01-10" {
			t.Fatalf("expected unpatched fields retained, got %#v", entry)
		}
		if len(entry.Tags) != 1 || entry.Tags[0] != "one" {
			t.Fatalf("expected tags retained, got %#v", entry.Tags)
		}
	})

	t.Run("rejects updates by a non-owner", func(t *testing.T) {
		t.Parallel()

		svc := NewJournalService(newJournalRepositoryStub(seed), nil, nil)

		title := "Hijacked"
		_, err := svc.Update(context.Background(), UpdateJournalEntryParams{
			Principal: Principal{UserID: "2", Role: RoleSeeker},
			EntryID:   "entry-1",
			Patch:     JournalEntryPatch{Title: &title},
		})
		if !errors.Is(err, ErrUnauthorized) {
			t.Fatalf("expected ErrUnauthorized, got %v", err)
		}
	})

	t.Run("rejects a patch that blanks required fields", func(t *testing.T) {
		t.Parallel()

		svc := NewJournalService(newJournalRepositoryStub(seed), nil, nil)

		empty := ""
		_, err := svc.Update(context.Background(), UpdateJournalEntryParams{
			Principal: seekerPrincipal,
			EntryID:   "entry-1",
			Patch:     JournalEntryPatch{Title: &empty},
		})
		var vErr *ValidationError
		if !errors.As(err, &vErr) {
			t.Fatalf("expected ValidationError, got %v", err)
		}
	})

	t.Run("reports not-found for unknown entries", func(t *testing.T) {
		t.Parallel()

		svc := NewJournalService(newJournalRepositoryStub(seed), nil, nil)

		_, err := svc.Update(context.Background(), UpdateJournalEntryParams{
			Principal: seekerPrincipal,
			EntryID:   "missing",
		})
		if !errors.Is(err, ErrNotFound) {
			t.Fatalf("expected ErrNotFound, got %v", err)
		}
	})
}

func TestJournalService_Delete(t *testing.T) {
	t.Parallel()

	seed := JournalEntry{ID: "entry-1", OwnerID: "1", Title: "Mine"}

	t.Run("removes the owner's entry", func(t *testing.T) {
		t.Parallel()

		repo := newJournalRepositoryStub(seed)
		svc := NewJournalService(repo, nil, nil)

		if err := svc.Delete(context.Background(), seekerPrincipal, "entry-1"); err != nil {
			t.Fatalf("Delete failed: %v", err)
		}
		if _, ok := repo.entries["entry-1"]; ok {
			t.Fatal("expected the entry to be removed")
		}
	})

	t.Run("rejects deletes by a non-owner", func(t *testing.T) {
		t.Parallel()

		repo := newJournalRepositoryStub(seed)
		svc := NewJournalService(repo, nil, nil)

		err := svc.Delete(context.Background(), Principal{UserID: "2", Role: RoleSeeker}, "entry-1")
		if !errors.Is(err, ErrUnauthorized) {
			t.Fatalf("expected ErrUnauthorized, got %v", err)
		}
		if _, ok := repo.entries["entry-1"]; !ok {
			t.Fatal("expected the entry to survive")
		}
	})

	t.Run("reports not-found for unknown entries", func(t *testing.T) {
		t.Parallel()

		svc := NewJournalService(newJournalRepositoryStub(seed), nil, nil)

		if err := svc.Delete(context.Background(), seekerPrincipal, "missing"); !errors.Is(err, ErrNotFound) {
			t.Fatalf("expected ErrNotFound, got %v", err)
		}
	})
}

func TestJournalService_List(t *testing.T) {
	t.Parallel()

	repo := newJournalRepositoryStub(
		JournalEntry{ID: "entry-1", OwnerID: "1"},
		JournalEntry{ID: "entry-2", OwnerID: "2"},
		JournalEntry{ID: "entry-3", OwnerID: "1"},
	)
	svc := NewJournalService(repo, nil, nil)

	entries, err := svc.List(context.Background(), seekerPrincipal)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(entries) != 2 || entries[0].ID != "entry-1" || entries[1].ID != "entry-3" {
		t.Fatalf("expected the caller's entries in order, got %#v", entries)
	}
}
