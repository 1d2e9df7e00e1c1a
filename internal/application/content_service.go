package application

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
)

// ResourceLibrary captures the persistence operations needed by the content service.
type ResourceLibrary interface {
	ListResources(ctx context.Context, filter ResourceFilter) ([]Resource, error)
	GetResource(ctx context.Context, id string) (Resource, error)
}

// ContentService exposes the wellness resource library.
type ContentService struct {
	resources ResourceLibrary
	logger    *slog.Logger
}

// NewContentService constructs a content service with the provided dependencies.
func NewContentService(resources ResourceLibrary) *ContentService {
	return NewContentServiceWithLogger(resources, nil)
}

// NewContentServiceWithLogger constructs a content service with a specified logger.
func NewContentServiceWithLogger(resources ResourceLibrary, logger *slog.Logger) *ContentService {
	return &ContentService{resources: resources, logger: defaultLogger(logger)}
}

func (s *ContentService) loggerWith(ctx context.Context, operation string, attrs ...any) *slog.Logger {
	return serviceLogger(ctx, s.logger, "ContentService", operation, attrs...)
}

// ListResources returns library items narrowed by the filter.
func (s *ContentService) ListResources(ctx context.Context, filter ResourceFilter) (resources []Resource, err error) {
	if s == nil {
		err = fmt.Errorf("ContentService is nil")
		return
	}
	if s.resources == nil {
		err = fmt.Errorf("resource library not configured")
		return
	}

	logger := s.loggerWith(ctx, "ListResources")
	defer func() {
		if err != nil {
			logger.ErrorContext(ctx, "failed to list resources", "error", err, "error_kind", ErrorKind(err))
			return
		}
		logger.With("count", len(resources)).InfoContext(ctx, "resources listed")
	}()

	filter.Category = strings.TrimSpace(filter.Category)

	resources, err = s.resources.ListResources(ctx, filter)
	return
}

// GetResource returns a single library item by id.
func (s *ContentService) GetResource(ctx context.Context, id string) (resource Resource, err error) {
	if s == nil {
		err = fmt.Errorf("ContentService is nil")
		return
	}
	if s.resources == nil {
		err = fmt.Errorf("resource library not configured")
		return
	}

	logger := s.loggerWith(ctx, "GetResource", "resource_id", id)
	defer func() {
		if err != nil {
			logger.ErrorContext(ctx, "failed to get resource", "error", err, "error_kind", ErrorKind(err))
		}
	}()

	if strings.TrimSpace(id) == "" {
		err = ErrNotFound
		return
	}

	resource, err = s.resources.GetResource(ctx, id)
	return
}
