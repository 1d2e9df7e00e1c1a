package application

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"
)

// JournalRepository captures the persistence operations needed by the journal service.
type JournalRepository interface {
	ListEntriesByOwner(ctx context.Context, ownerID string) ([]JournalEntry, error)
	GetEntry(ctx context.Context, id string) (JournalEntry, error)
	CreateEntry(ctx context.Context, entry JournalEntry) (JournalEntry, error)
	UpdateEntry(ctx context.Context, entry JournalEntry) (JournalEntry, error)
	DeleteEntry(ctx context.Context, id string) error
}

// JournalService orchestrates validation and owner checks for journal entries.
// Entries are private: every read and mutation is scoped to the calling
// principal.
type JournalService struct {
	entries     JournalRepository
	idGenerator func() string
	now         func() time.Time
	logger      *slog.Logger
}

// NewJournalService constructs a journal service with the provided dependencies.
func NewJournalService(entries JournalRepository, idGenerator func() string, now func() time.Time) *JournalService {
	return NewJournalServiceWithLogger(entries, idGenerator, now, nil)
}

// NewJournalServiceWithLogger constructs a journal service with a specified logger.
func NewJournalServiceWithLogger(entries JournalRepository, idGenerator func() string, now func() time.Time, logger *slog.Logger) *JournalService {
	if idGenerator == nil {
		idGenerator = func() string { return "" }
	}
	if now == nil {
		now = time.Now
	}
	return &JournalService{
		entries:     entries,
		idGenerator: idGenerator,
		now:         now,
		logger:      defaultLogger(logger),
	}
}

func (s *JournalService) loggerWith(ctx context.Context, operation string, attrs ...any) *slog.Logger {
	return serviceLogger(ctx, s.logger, "JournalService", operation, attrs...)
}

// List returns the caller's entries in creation order.
func (s *JournalService) List(ctx context.Context, principal Principal) (entries []JournalEntry, err error) {
	if s == nil {
		err = fmt.Errorf("JournalService is nil")
		return
	}
	if s.entries == nil {
		err = fmt.Errorf("journal repository not configured")
		return
	}

	logger := s.loggerWith(ctx, "List", "principal_id", principal.UserID)
	defer func() {
		if err != nil {
			logger.ErrorContext(ctx, "failed to list journal entries", "error", err, "error_kind", ErrorKind(err))
			return
		}
		logger.With("count", len(entries)).InfoContext(ctx, "journal entries listed")
	}()

	entries, err = s.entries.ListEntriesByOwner(ctx, principal.UserID)
	return
}

// Create validates and stores a new entry owned by the caller. The entry date
// is stamped from the clock.
func (s *JournalService) Create(ctx context.Context, params CreateJournalEntryParams) (entry JournalEntry, err error) {
	if s == nil {
		err = fmt.Errorf("JournalService is nil")
		return
	}
	if s.entries == nil {
		err = fmt.Errorf("journal repository not configured")
		return
	}

	logger := s.loggerWith(ctx, "Create", "principal_id", params.Principal.UserID)
	defer func() {
		if err != nil {
			logger.ErrorContext(ctx, "failed to create journal entry", "error", err, "error_kind", ErrorKind(err))
			return
		}
		logger.With("entry_id", entry.ID).InfoContext(ctx, "journal entry created")
	}()

	if vErr := validateJournalInput(params.Input); vErr.HasErrors() {
		err = vErr
		return
	}

	entry = JournalEntry{
		ID:      s.idGenerator(),
		OwnerID: params.Principal.UserID,
		Title:   strings.TrimSpace(params.Input.Title),
		Content: params.Input.Content,
		Mood:    params.Input.Mood,
		Tags:    append([]string(nil), params.Input.Tags...),
		Date:    s.now().Format("2006-01-02"),
		Private: params.Input.Private,
	}

	entry, err = s.entries.CreateEntry(ctx, entry)
	return
}

// Update merges a partial patch into an existing entry. Only the owner may
// update; fields absent from the patch keep their prior values.
func (s *JournalService) Update(ctx context.Context, params UpdateJournalEntryParams) (entry JournalEntry, err error) {
	if s == nil {
		err = fmt.Errorf("JournalService is nil")
		return
	}
	if s.entries == nil {
		err = fmt.Errorf("journal repository not configured")
		return
	}

	logger := s.loggerWith(ctx, "Update",
		"principal_id", params.Principal.UserID,
		"entry_id", params.EntryID,
	)
	defer func() {
		if err != nil {
			logger.ErrorContext(ctx, "failed to update journal entry", "error", err, "error_kind", ErrorKind(err))
			return
		}
		logger.InfoContext(ctx, "journal entry updated")
	}()

	var current JournalEntry
	current, err = s.entries.GetEntry(ctx, params.EntryID)
	if err != nil {
		return
	}
	if current.OwnerID != params.Principal.UserID {
		err = ErrUnauthorized
		return
	}

	validation := &ValidationError{}
	if params.Patch.Title != nil {
		title := strings.TrimSpace(*params.Patch.Title)
		if title == "" {
			validation.add("title", "title must not be empty")
		}
		current.Title = title
	}
	if params.Patch.Content != nil {
		if *params.Patch.Content == "" {
			validation.add("content", "content must not be empty")
		}
		current.Content = *params.Patch.Content
	}
	if params.Patch.Mood != nil {
		if !params.Patch.Mood.Valid() {
			validation.add("mood", "mood is not recognized")
		}
		current.Mood = *params.Patch.Mood
	}
	if params.Patch.Tags != nil {
		current.Tags = append([]string(nil), (*params.Patch.Tags)...)
	}
	if params.Patch.Private != nil {
		current.Private = *params.Patch.Private
	}
	if validation.HasErrors() {
		err = validation
		return
	}

	entry, err = s.entries.UpdateEntry(ctx, current)
	return
}

// Delete removes an entry. Only the owner may delete.
func (s *JournalService) Delete(ctx context.Context, principal Principal, entryID string) (err error) {
	if s == nil {
		return fmt.Errorf("JournalService is nil")
	}
	if s.entries == nil {
		return fmt.Errorf("journal repository not configured")
	}

	logger := s.loggerWith(ctx, "Delete",
		"principal_id", principal.UserID,
		"entry_id", entryID,
	)
	defer func() {
		if err != nil {
			logger.ErrorContext(ctx, "failed to delete journal entry", "error", err, "error_kind", ErrorKind(err))
			return
		}
		logger.InfoContext(ctx, "journal entry deleted")
	}()

	var current JournalEntry
	current, err = s.entries.GetEntry(ctx, entryID)
	if err != nil {
		return
	}
	if current.OwnerID != principal.UserID {
		err = ErrUnauthorized
		return
	}

	err = s.entries.DeleteEntry(ctx, entryID)
	return
}

func validateJournalInput(input JournalEntryInput) *ValidationError {
	validation := &ValidationError{}
	if strings.TrimSpace(input.Title) == "" {
		validation.add("title", "title is required")
	}
	if input.Content == "" {
		validation.add("content", "content is required")
	}
	if !input.Mood.Valid() {
		validation.add("mood", "mood is not recognized")
	}
	return validation
}
