package application

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
)

// CounsellorDirectory captures the persistence operations needed by the
// directory and booking services.
type CounsellorDirectory interface {
	ListCounsellors(ctx context.Context, filter CounsellorFilter) ([]Counsellor, error)
	GetCounsellor(ctx context.Context, id string) (Counsellor, error)
}

// DirectoryService exposes the counsellor directory to authenticated users.
type DirectoryService struct {
	counsellors CounsellorDirectory
	logger      *slog.Logger
}

// NewDirectoryService constructs a directory service with the provided dependencies.
func NewDirectoryService(counsellors CounsellorDirectory) *DirectoryService {
	return NewDirectoryServiceWithLogger(counsellors, nil)
}

// NewDirectoryServiceWithLogger constructs a directory service with a specified logger.
func NewDirectoryServiceWithLogger(counsellors CounsellorDirectory, logger *slog.Logger) *DirectoryService {
	return &DirectoryService{counsellors: counsellors, logger: defaultLogger(logger)}
}

func (s *DirectoryService) loggerWith(ctx context.Context, operation string, attrs ...any) *slog.Logger {
	return serviceLogger(ctx, s.logger, "DirectoryService", operation, attrs...)
}

// ListCounsellors returns the directory narrowed by the filter. Filter text
// is trimmed before matching; an empty filter returns everyone.
func (s *DirectoryService) ListCounsellors(ctx context.Context, filter CounsellorFilter) (counsellors []Counsellor, err error) {
	if s == nil {
		err = fmt.Errorf("DirectoryService is nil")
		return
	}
	if s.counsellors == nil {
		err = fmt.Errorf("counsellor directory not configured")
		return
	}

	logger := s.loggerWith(ctx, "ListCounsellors")
	defer func() {
		if err != nil {
			logger.ErrorContext(ctx, "failed to list counsellors", "error", err, "error_kind", ErrorKind(err))
			return
		}
		logger.With("count", len(counsellors)).InfoContext(ctx, "counsellors listed")
	}()

	filter.Specialization = strings.TrimSpace(filter.Specialization)
	filter.AgeGroup = strings.TrimSpace(filter.AgeGroup)

	counsellors, err = s.counsellors.ListCounsellors(ctx, filter)
	return
}

// GetCounsellor returns a single profile by id.
func (s *DirectoryService) GetCounsellor(ctx context.Context, id string) (counsellor Counsellor, err error) {
	if s == nil {
		err = fmt.Errorf("DirectoryService is nil")
		return
	}
	if s.counsellors == nil {
		err = fmt.Errorf("counsellor directory not configured")
		return
	}

	logger := s.loggerWith(ctx, "GetCounsellor", "counsellor_id", id)
	defer func() {
		if err != nil {
			logger.ErrorContext(ctx, "failed to get counsellor", "error", err, "error_kind", ErrorKind(err))
		}
	}()

	if strings.TrimSpace(id) == "" {
		err = ErrNotFound
		return
	}

	counsellor, err = s.counsellors.GetCounsellor(ctx, id)
	return
}
