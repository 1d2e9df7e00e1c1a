package http

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/example/mindease/internal/application"
)

type journalService interface {
	List(ctx context.Context, principal application.Principal) ([]application.JournalEntry, error)
	Create(ctx context.Context, params application.CreateJournalEntryParams) (application.JournalEntry, error)
	Update(ctx context.Context, params application.UpdateJournalEntryParams) (application.JournalEntry, error)
	Delete(ctx context.Context, principal application.Principal, entryID string) error
}

type JournalHandler struct {
	service   journalService
	responder responder
	logger    *slog.Logger
}

func NewJournalHandler(service journalService, logger *slog.Logger) *JournalHandler {
	base := defaultLogger(logger)
	return &JournalHandler{service: service, responder: newResponder(base), logger: base}
}

func (h *JournalHandler) log(ctx context.Context, operation string, attrs ...any) *slog.Logger {
	if h == nil {
		return slog.Default()
	}
	return handlerLogger(ctx, h.logger, "JournalHandler", operation, attrs...)
}

// List returns the caller's journal entries.
func (h *JournalHandler) List(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.service == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	principal, ok := PrincipalFromContext(r.Context())
	if !ok {
		h.responder.writeError(r.Context(), w, http.StatusUnauthorized, errMissingSessionToken)
		return
	}

	logger := h.log(r.Context(), "List", "principal_id", principal.UserID)

	entries, err := h.service.List(r.Context(), principal)
	if err != nil {
		logger.ErrorContext(r.Context(), "failed to list journal entries", "error", err, "error_kind", application.ErrorKind(err))
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	payload := make([]journalEntryDTO, 0, len(entries))
	for _, entry := range entries {
		payload = append(payload, newJournalEntryDTO(entry))
	}
	h.responder.writeJSON(r.Context(), w, http.StatusOK, payload)
}

// Create stores a new journal entry owned by the caller.
func (h *JournalHandler) Create(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.service == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	principal, ok := PrincipalFromContext(r.Context())
	if !ok {
		h.responder.writeError(r.Context(), w, http.StatusUnauthorized, errMissingSessionToken)
		return
	}

	var req createJournalEntryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.log(r.Context(), "Create", "error_kind", "bad_request").ErrorContext(r.Context(), "failed to decode journal request", "error", err)
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errBadRequestBody)
		return
	}

	logger := h.log(r.Context(), "Create", "principal_id", principal.UserID)

	entry, err := h.service.Create(r.Context(), application.CreateJournalEntryParams{
		Principal: principal,
		Input: application.JournalEntryInput{
			Title:   req.Title,
			Content: req.Content,
			Mood:    application.Mood(req.Mood),
			Tags:    req.Tags,
			Private: req.IsPrivate,
		},
	})
	if err != nil {
		logger.ErrorContext(r.Context(), "failed to create journal entry", "error", err, "error_kind", application.ErrorKind(err))
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	logger.With("entry_id", entry.ID).InfoContext(r.Context(), "journal entry created")
	h.responder.writeJSON(r.Context(), w, http.StatusCreated, newJournalEntryDTO(entry))
}

// Update merges a partial patch into the entry resolved from the request path.
func (h *JournalHandler) Update(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.service == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	principal, ok := PrincipalFromContext(r.Context())
	if !ok {
		h.responder.writeError(r.Context(), w, http.StatusUnauthorized, errMissingSessionToken)
		return
	}

	entryID, ok := EntryIDFromContext(r.Context())
	if !ok {
		http.NotFound(w, r)
		return
	}

	var req updateJournalEntryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.log(r.Context(), "Update", "error_kind", "bad_request").ErrorContext(r.Context(), "failed to decode journal patch", "error", err)
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errBadRequestBody)
		return
	}

	logger := h.log(r.Context(), "Update",
		"principal_id", principal.UserID,
		"entry_id", entryID,
	)

	var moodPatch *application.Mood
	if req.Mood != nil {
		mood := application.Mood(*req.Mood)
		moodPatch = &mood
	}

	entry, err := h.service.Update(r.Context(), application.UpdateJournalEntryParams{
		Principal: principal,
		EntryID:   entryID,
		Patch: application.JournalEntryPatch{
			Title:   req.Title,
			Content: req.Content,
			Mood:    moodPatch,
			Tags:    req.Tags,
			Private: req.IsPrivate,
		},
	})
	if err != nil {
		logger.ErrorContext(r.Context(), "failed to update journal entry", "error", err, "error_kind", application.ErrorKind(err))
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	logger.InfoContext(r.Context(), "journal entry updated")
	h.responder.writeJSON(r.Context(), w, http.StatusOK, newJournalEntryDTO(entry))
}

// Delete removes the entry resolved from the request path.
func (h *JournalHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.service == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	principal, ok := PrincipalFromContext(r.Context())
	if !ok {
		h.responder.writeError(r.Context(), w, http.StatusUnauthorized, errMissingSessionToken)
		return
	}

	entryID, ok := EntryIDFromContext(r.Context())
	if !ok {
		http.NotFound(w, r)
		return
	}

	logger := h.log(r.Context(), "Delete",
		"principal_id", principal.UserID,
		"entry_id", entryID,
	)

	if err := h.service.Delete(r.Context(), principal, entryID); err != nil {
		logger.ErrorContext(r.Context(), "failed to delete journal entry", "error", err, "error_kind", application.ErrorKind(err))
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	logger.InfoContext(r.Context(), "journal entry deleted")
	h.responder.writeJSON(r.Context(), w, http.StatusNoContent, nil)
}

type createJournalEntryRequest struct {
	Title     string   `json:"title"`
	Content   string   `json:"content"`
	Mood      string   `json:"mood"`
	Tags      []string `json:"tags"`
	IsPrivate bool     `json:"isPrivate"`
}

type updateJournalEntryRequest struct {
	Title     *string   `json:"title,omitempty"`
	Content   *string   `json:"content,omitempty"`
	Mood      *string   `json:"mood,omitempty"`
	Tags      *[]string `json:"tags,omitempty"`
	IsPrivate *bool     `json:"isPrivate,omitempty"`
}

type journalEntryDTO struct {
	ID        string   `json:"id"`
	UserID    string   `json:"userId"`
	Title     string   `json:"title"`
	Content   string   `json:"content"`
	Mood      string   `json:"mood"`
	Tags      []string `json:"tags"`
	Date      string   `json:"date"`
	IsPrivate bool     `json:"isPrivate"`
}

func newJournalEntryDTO(entry application.JournalEntry) journalEntryDTO {
	return journalEntryDTO{
		ID:        entry.ID,
		UserID:    entry.OwnerID,
		Title:     entry.Title,
		Content:   entry.Content,
		Mood:      string(entry.Mood),
		Tags:      entry.Tags,
		Date:      entry.Date,
		IsPrivate: entry.Private,
	}
}
