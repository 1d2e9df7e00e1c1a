package http

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/example/mindease/internal/application"
)

type contentService interface {
	ListResources(ctx context.Context, filter application.ResourceFilter) ([]application.Resource, error)
	GetResource(ctx context.Context, id string) (application.Resource, error)
}

type ResourceHandler struct {
	service   contentService
	responder responder
	logger    *slog.Logger
}

func NewResourceHandler(service contentService, logger *slog.Logger) *ResourceHandler {
	base := defaultLogger(logger)
	return &ResourceHandler{service: service, responder: newResponder(base), logger: base}
}

func (h *ResourceHandler) log(ctx context.Context, operation string, attrs ...any) *slog.Logger {
	if h == nil {
		return slog.Default()
	}
	return handlerLogger(ctx, h.logger, "ResourceHandler", operation, attrs...)
}

// List returns library items narrowed by category, type, and difficulty
// query parameters.
func (h *ResourceHandler) List(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.service == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	query := r.URL.Query()
	filter := application.ResourceFilter{
		Category:   query.Get("category"),
		Type:       application.ResourceType(query.Get("type")),
		Difficulty: application.Difficulty(query.Get("difficulty")),
	}

	logger := h.log(r.Context(), "List")

	resources, err := h.service.ListResources(r.Context(), filter)
	if err != nil {
		logger.ErrorContext(r.Context(), "failed to list resources", "error", err, "error_kind", application.ErrorKind(err))
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	payload := make([]resourceDTO, 0, len(resources))
	for _, res := range resources {
		payload = append(payload, newResourceDTO(res))
	}
	h.responder.writeJSON(r.Context(), w, http.StatusOK, payload)
}

// Get returns a single library item resolved from the request path.
func (h *ResourceHandler) Get(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.service == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	id, ok := ResourceIDFromContext(r.Context())
	if !ok {
		http.NotFound(w, r)
		return
	}

	logger := h.log(r.Context(), "Get", "resource_id", id)

	resource, err := h.service.GetResource(r.Context(), id)
	if err != nil {
		logger.ErrorContext(r.Context(), "failed to get resource", "error", err, "error_kind", application.ErrorKind(err))
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	h.responder.writeJSON(r.Context(), w, http.StatusOK, newResourceDTO(resource))
}

type resourceDTO struct {
	ID            string   `json:"id"`
	Title         string   `json:"title"`
	Description   string   `json:"description"`
	Type          string   `json:"type"`
	Category      string   `json:"category"`
	Duration      *int     `json:"duration,omitempty"`
	ReadTime      *int     `json:"readTime,omitempty"`
	Author        string   `json:"author"`
	PublishedDate string   `json:"publishedDate"`
	Thumbnail     string   `json:"thumbnail"`
	Content       *string  `json:"content,omitempty"`
	URL           *string  `json:"url,omitempty"`
	Tags          []string `json:"tags"`
	Difficulty    string   `json:"difficulty"`
	Rating        float64  `json:"rating"`
}

func newResourceDTO(res application.Resource) resourceDTO {
	return resourceDTO{
		ID:            res.ID,
		Title:         res.Title,
		Description:   res.Description,
		Type:          string(res.Type),
		Category:      res.Category,
		Duration:      res.DurationMinutes,
		ReadTime:      res.ReadTimeMinutes,
		Author:        res.Author,
		PublishedDate: res.PublishedDate,
		Thumbnail:     res.Thumbnail,
		Content:       res.Content,
		URL:           res.URL,
		Tags:          res.Tags,
		Difficulty:    string(res.Difficulty),
		Rating:        res.Rating,
	}
}
