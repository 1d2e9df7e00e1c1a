package memory

import (
	"context"
	"sync"
	"time"

	"github.com/example/mindease/internal/persistence"
)

// BookingRepository implements persistence.BookingRepository over a seeded
// in-memory table. Bookings are append-only: nothing in the API updates or
// deletes a record, and nothing moves a booking out of its created status.
type BookingRepository struct {
	mu       sync.RWMutex
	bookings []persistence.Booking
	latency  time.Duration
}

// NewBookingRepository constructs the booking table from the provided seed.
func NewBookingRepository(seed []persistence.Booking, latency time.Duration) *BookingRepository {
	bookings := make([]persistence.Booking, 0, len(seed))
	for _, b := range seed {
		bookings = append(bookings, cloneBooking(b))
	}
	return &BookingRepository{bookings: bookings, latency: latency}
}

// ListBookingsBySeeker returns the seeker's bookings in insertion order.
func (r *BookingRepository) ListBookingsBySeeker(ctx context.Context, seekerID string) ([]persistence.Booking, error) {
	if err := wait(ctx, r.latency); err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	matched := make([]persistence.Booking, 0)
	for _, b := range r.bookings {
		if b.SeekerID == seekerID {
			matched = append(matched, cloneBooking(b))
		}
	}
	return matched, nil
}

// ListBookingsByCounsellor returns the counsellor's bookings in insertion order.
func (r *BookingRepository) ListBookingsByCounsellor(ctx context.Context, counsellorID string) ([]persistence.Booking, error) {
	if err := wait(ctx, r.latency); err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	matched := make([]persistence.Booking, 0)
	for _, b := range r.bookings {
		if b.CounsellorID == counsellorID {
			matched = append(matched, cloneBooking(b))
		}
	}
	return matched, nil
}

// CreateBooking appends a new record. The id must not collide with an
// existing booking.
func (r *BookingRepository) CreateBooking(ctx context.Context, booking persistence.Booking) (persistence.Booking, error) {
	if err := wait(ctx, r.latency); err != nil {
		return persistence.Booking{}, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	for _, b := range r.bookings {
		if b.ID == booking.ID {
			return persistence.Booking{}, persistence.ErrDuplicate
		}
	}
	r.bookings = append(r.bookings, cloneBooking(booking))
	return cloneBooking(booking), nil
}

func cloneBooking(b persistence.Booking) persistence.Booking {
	b.Notes = cloneStringPtr(b.Notes)
	b.Rating = cloneIntPtr(b.Rating)
	b.Feedback = cloneStringPtr(b.Feedback)
	return b
}
