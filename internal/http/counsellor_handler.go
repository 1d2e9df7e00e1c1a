package http

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/example/mindease/internal/application"
)

type directoryService interface {
	ListCounsellors(ctx context.Context, filter application.CounsellorFilter) ([]application.Counsellor, error)
	GetCounsellor(ctx context.Context, id string) (application.Counsellor, error)
}

type CounsellorHandler struct {
	service   directoryService
	responder responder
	logger    *slog.Logger
}

func NewCounsellorHandler(service directoryService, logger *slog.Logger) *CounsellorHandler {
	base := defaultLogger(logger)
	return &CounsellorHandler{service: service, responder: newResponder(base), logger: base}
}

func (h *CounsellorHandler) log(ctx context.Context, operation string, attrs ...any) *slog.Logger {
	if h == nil {
		return slog.Default()
	}
	return handlerLogger(ctx, h.logger, "CounsellorHandler", operation, attrs...)
}

// List returns the directory narrowed by specialization, ageGroup, and
// maxPrice query parameters.
func (h *CounsellorHandler) List(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.service == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	query := r.URL.Query()
	filter := application.CounsellorFilter{
		Specialization: query.Get("specialization"),
		AgeGroup:       query.Get("ageGroup"),
	}
	if raw := query.Get("maxPrice"); raw != "" {
		maxPrice, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			h.responder.writeJSON(r.Context(), w, http.StatusUnprocessableEntity, errorResponse{
				Message: "The request contains invalid fields.",
				Errors:  map[string]string{"maxPrice": "maxPrice must be a number"},
			})
			return
		}
		filter.MaxPrice = &maxPrice
	}

	logger := h.log(r.Context(), "List")

	counsellors, err := h.service.ListCounsellors(r.Context(), filter)
	if err != nil {
		logger.ErrorContext(r.Context(), "failed to list counsellors", "error", err, "error_kind", application.ErrorKind(err))
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	payload := make([]counsellorDTO, 0, len(counsellors))
	for _, c := range counsellors {
		payload = append(payload, newCounsellorDTO(c))
	}
	h.responder.writeJSON(r.Context(), w, http.StatusOK, payload)
}

// Get returns a single profile resolved from the request path.
func (h *CounsellorHandler) Get(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.service == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	id, ok := CounsellorIDFromContext(r.Context())
	if !ok {
		http.NotFound(w, r)
		return
	}

	logger := h.log(r.Context(), "Get", "counsellor_id", id)

	counsellor, err := h.service.GetCounsellor(r.Context(), id)
	if err != nil {
		logger.ErrorContext(r.Context(), "failed to get counsellor", "error", err, "error_kind", application.ErrorKind(err))
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	h.responder.writeJSON(r.Context(), w, http.StatusOK, newCounsellorDTO(counsellor))
}

type counsellorDTO struct {
	ID              string   `json:"id"`
	Name            string   `json:"name"`
	Avatar          string   `json:"avatar"`
	Specializations []string `json:"specializations"`
	AgeGroups       []string `json:"ageGroups"`
	PricePerSession float64  `json:"pricePerSession"`
	Rating          float64  `json:"rating"`
	TotalSessions   int      `json:"totalSessions"`
	Bio             string   `json:"bio"`
	Availability    []string `json:"availability"`
	Verified        bool     `json:"verified"`
}

func newCounsellorDTO(c application.Counsellor) counsellorDTO {
	return counsellorDTO{
		ID:              c.ID,
		Name:            c.Name,
		Avatar:          c.Avatar,
		Specializations: c.Specializations,
		AgeGroups:       c.AgeGroups,
		PricePerSession: c.PricePerSession,
		Rating:          c.Rating,
		TotalSessions:   c.TotalSessions,
		Bio:             c.Bio,
		Availability:    c.Availability,
		Verified:        c.Verified,
	}
}
