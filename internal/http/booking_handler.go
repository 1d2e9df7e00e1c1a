package http

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/example/mindease/internal/application"
)

type bookingService interface {
	ListForPrincipal(ctx context.Context, principal application.Principal) ([]application.Booking, error)
	Create(ctx context.Context, params application.CreateBookingParams) (application.Booking, error)
	Earnings(ctx context.Context, principal application.Principal) (application.EarningsSummary, error)
}

type BookingHandler struct {
	service   bookingService
	responder responder
	logger    *slog.Logger
}

func NewBookingHandler(service bookingService, logger *slog.Logger) *BookingHandler {
	base := defaultLogger(logger)
	return &BookingHandler{service: service, responder: newResponder(base), logger: base}
}

func (h *BookingHandler) log(ctx context.Context, operation string, attrs ...any) *slog.Logger {
	if h == nil {
		return slog.Default()
	}
	return handlerLogger(ctx, h.logger, "BookingHandler", operation, attrs...)
}

// List returns the caller's counselling sessions.
func (h *BookingHandler) List(w http.ResponseWriter, r *http.Request) {
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

	bookings, err := h.service.ListForPrincipal(r.Context(), principal)
	if err != nil {
		logger.ErrorContext(r.Context(), "failed to list bookings", "error", err, "error_kind", application.ErrorKind(err))
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	payload := make([]bookingDTO, 0, len(bookings))
	for _, b := range bookings {
		payload = append(payload, newBookingDTO(b))
	}
	h.responder.writeJSON(r.Context(), w, http.StatusOK, payload)
}

// Create books a session with a counsellor for the calling seeker.
func (h *BookingHandler) Create(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.service == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	principal, ok := PrincipalFromContext(r.Context())
	if !ok {
		h.responder.writeError(r.Context(), w, http.StatusUnauthorized, errMissingSessionToken)
		return
	}

	var req createBookingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.log(r.Context(), "Create", "error_kind", "bad_request").ErrorContext(r.Context(), "failed to decode booking request", "error", err)
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errBadRequestBody)
		return
	}

	logger := h.log(r.Context(), "Create",
		"principal_id", principal.UserID,
		"counsellor_id", req.CounsellorID,
	)

	booking, err := h.service.Create(r.Context(), application.CreateBookingParams{
		Principal: principal,
		Input: application.BookingInput{
			CounsellorID: req.CounsellorID,
			Date:         req.Date,
			Time:         req.Time,
			Notes:        req.Notes,
		},
	})
	if err != nil {
		logger.ErrorContext(r.Context(), "failed to create booking", "error", err, "error_kind", application.ErrorKind(err))
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	logger.With("booking_id", booking.ID).InfoContext(r.Context(), "booking created")
	h.responder.writeJSON(r.Context(), w, http.StatusCreated, newBookingDTO(booking))
}

// Earnings summarizes the calling counsellor's booking history.
func (h *BookingHandler) Earnings(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.service == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	principal, ok := PrincipalFromContext(r.Context())
	if !ok {
		h.responder.writeError(r.Context(), w, http.StatusUnauthorized, errMissingSessionToken)
		return
	}

	logger := h.log(r.Context(), "Earnings", "principal_id", principal.UserID)

	summary, err := h.service.Earnings(r.Context(), principal)
	if err != nil {
		logger.ErrorContext(r.Context(), "failed to compute earnings", "error", err, "error_kind", application.ErrorKind(err))
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	h.responder.writeJSON(r.Context(), w, http.StatusOK, earningsDTO{
		TotalEarned:       summary.TotalEarned,
		CompletedSessions: summary.CompletedSessions,
		UpcomingSessions:  summary.UpcomingSessions,
	})
}

type createBookingRequest struct {
	CounsellorID string  `json:"counsellorId"`
	Date         string  `json:"date"`
	Time         string  `json:"time"`
	Notes        *string `json:"notes,omitempty"`
}

type bookingDTO struct {
	ID             string  `json:"id"`
	CounsellorID   string  `json:"counsellorId"`
	CounsellorName string  `json:"counsellorName"`
	UserID         string  `json:"userId"`
	UserName       string  `json:"userName"`
	Date           string  `json:"date"`
	Time           string  `json:"time"`
	Duration       int     `json:"duration"`
	Status         string  `json:"status"`
	Notes          *string `json:"notes,omitempty"`
	Rating         *int    `json:"rating,omitempty"`
	Feedback       *string `json:"feedback,omitempty"`
}

func newBookingDTO(b application.Booking) bookingDTO {
	return bookingDTO{
		ID:             b.ID,
		CounsellorID:   b.CounsellorID,
		CounsellorName: b.CounsellorName,
		UserID:         b.SeekerID,
		UserName:       b.SeekerName,
		Date:           b.Date,
		Time:           b.Time,
		Duration:       b.DurationMinutes,
		Status:         string(b.Status),
		Notes:          b.Notes,
		Rating:         b.Rating,
		Feedback:       b.Feedback,
	}
}

type earningsDTO struct {
	TotalEarned       float64 `json:"totalEarned"`
	CompletedSessions int     `json:"completedSessions"`
	UpcomingSessions  int     `json:"upcomingSessions"`
}
