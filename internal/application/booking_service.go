package application

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"
)

// BookingRepository captures the persistence operations needed by the booking service.
type BookingRepository interface {
	ListBookingsBySeeker(ctx context.Context, seekerID string) ([]Booking, error)
	ListBookingsByCounsellor(ctx context.Context, counsellorID string) ([]Booking, error)
	CreateBooking(ctx context.Context, booking Booking) (Booking, error)
}

const defaultSessionMinutes = 60

// BookingService orchestrates validation and persistence for counselling sessions.
type BookingService struct {
	bookings    BookingRepository
	counsellors CounsellorDirectory
	idGenerator func() string
	now         func() time.Time
	logger      *slog.Logger
}

// NewBookingService constructs a booking service with the provided dependencies.
func NewBookingService(bookings BookingRepository, counsellors CounsellorDirectory, idGenerator func() string, now func() time.Time) *BookingService {
	return NewBookingServiceWithLogger(bookings, counsellors, idGenerator, now, nil)
}

// NewBookingServiceWithLogger constructs a booking service with a specified logger.
func NewBookingServiceWithLogger(bookings BookingRepository, counsellors CounsellorDirectory, idGenerator func() string, now func() time.Time, logger *slog.Logger) *BookingService {
	if idGenerator == nil {
		idGenerator = func() string { return "" }
	}
	if now == nil {
		now = time.Now
	}
	return &BookingService{
		bookings:    bookings,
		counsellors: counsellors,
		idGenerator: idGenerator,
		now:         now,
		logger:      defaultLogger(logger),
	}
}

func (s *BookingService) loggerWith(ctx context.Context, operation string, attrs ...any) *slog.Logger {
	return serviceLogger(ctx, s.logger, "BookingService", operation, attrs...)
}

// ListForPrincipal returns the caller's sessions: a seeker sees the sessions
// they booked, a counsellor sees the sessions booked with them.
func (s *BookingService) ListForPrincipal(ctx context.Context, principal Principal) (bookings []Booking, err error) {
	if s == nil {
		err = fmt.Errorf("BookingService is nil")
		return
	}
	if s.bookings == nil {
		err = fmt.Errorf("booking repository not configured")
		return
	}

	logger := s.loggerWith(ctx, "ListForPrincipal",
		"principal_id", principal.UserID,
		"role", string(principal.Role),
	)
	defer func() {
		if err != nil {
			logger.ErrorContext(ctx, "failed to list bookings", "error", err, "error_kind", ErrorKind(err))
			return
		}
		logger.With("count", len(bookings)).InfoContext(ctx, "bookings listed")
	}()

	switch principal.Role {
	case RoleSeeker:
		bookings, err = s.bookings.ListBookingsBySeeker(ctx, principal.UserID)
	case RoleCounsellor:
		bookings, err = s.bookings.ListBookingsByCounsellor(ctx, principal.UserID)
	default:
		err = ErrUnauthorized
	}
	return
}

// Create books a session with a counsellor for the calling seeker. The
// session always starts out upcoming with the standard duration.
func (s *BookingService) Create(ctx context.Context, params CreateBookingParams) (booking Booking, err error) {
	if s == nil {
		err = fmt.Errorf("BookingService is nil")
		return
	}
	if s.bookings == nil {
		err = fmt.Errorf("booking repository not configured")
		return
	}
	if s.counsellors == nil {
		err = fmt.Errorf("counsellor directory not configured")
		return
	}

	logger := s.loggerWith(ctx, "Create",
		"principal_id", params.Principal.UserID,
		"counsellor_id", params.Input.CounsellorID,
	)
	defer func() {
		if err != nil {
			logger.ErrorContext(ctx, "failed to create booking", "error", err, "error_kind", ErrorKind(err))
			return
		}
		logger.With("booking_id", booking.ID).InfoContext(ctx, "booking created")
	}()

	if params.Principal.Role != RoleSeeker {
		err = ErrUnauthorized
		return
	}

	validation := &ValidationError{}
	counsellorID := strings.TrimSpace(params.Input.CounsellorID)
	date := strings.TrimSpace(params.Input.Date)
	startTime := strings.TrimSpace(params.Input.Time)
	if counsellorID == "" {
		validation.add("counsellorId", "counsellor is required")
	}
	if date == "" {
		validation.add("date", "date is required")
	}
	if startTime == "" {
		validation.add("time", "time is required")
	}
	if validation.HasErrors() {
		err = validation
		return
	}

	// A booking may only reference an existing profile; the directory's
	// not-found surfaces unchanged.
	var counsellor Counsellor
	counsellor, err = s.counsellors.GetCounsellor(ctx, counsellorID)
	if err != nil {
		return
	}

	booking = Booking{
		ID:              s.idGenerator(),
		CounsellorID:    counsellor.ID,
		CounsellorName:  counsellor.Name,
		SeekerID:        params.Principal.UserID,
		SeekerName:      params.Principal.Name,
		Date:            date,
		Time:            startTime,
		DurationMinutes: defaultSessionMinutes,
		Status:          BookingUpcoming,
		Notes:           params.Input.Notes,
	}

	booking, err = s.bookings.CreateBooking(ctx, booking)
	return
}

// Earnings summarizes the calling counsellor's booking history. Only
// completed sessions earn; the rate is the counsellor's listed price, or
// zero when the caller has no directory profile.
func (s *BookingService) Earnings(ctx context.Context, principal Principal) (summary EarningsSummary, err error) {
	if s == nil {
		err = fmt.Errorf("BookingService is nil")
		return
	}
	if s.bookings == nil {
		err = fmt.Errorf("booking repository not configured")
		return
	}
	if s.counsellors == nil {
		err = fmt.Errorf("counsellor directory not configured")
		return
	}

	logger := s.loggerWith(ctx, "Earnings", "principal_id", principal.UserID)
	defer func() {
		if err != nil {
			logger.ErrorContext(ctx, "failed to compute earnings", "error", err, "error_kind", ErrorKind(err))
			return
		}
		logger.With("completed_sessions", summary.CompletedSessions).InfoContext(ctx, "earnings computed")
	}()

	if principal.Role != RoleCounsellor {
		err = ErrUnauthorized
		return
	}

	price := 0.0
	counsellor, getErr := s.counsellors.GetCounsellor(ctx, principal.UserID)
	switch {
	case getErr == nil:
		price = counsellor.PricePerSession
	case errors.Is(getErr, ErrNotFound):
		// No directory profile, sessions still count but earn nothing.
	default:
		err = getErr
		return
	}

	var bookings []Booking
	bookings, err = s.bookings.ListBookingsByCounsellor(ctx, principal.UserID)
	if err != nil {
		return
	}

	for _, booking := range bookings {
		switch booking.Status {
		case BookingCompleted:
			summary.CompletedSessions++
			summary.TotalEarned += price
		case BookingUpcoming:
			summary.UpcomingSessions++
		}
	}
	return
}
