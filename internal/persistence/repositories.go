package persistence

import "context"

// CounsellorFilter narrows directory queries. Zero values mean no restriction;
// populated fields combine with logical AND.
type CounsellorFilter struct {
	Specialization string
	AgeGroup       string
	MaxPrice       *float64
}

// CounsellorRepository exposes read operations over the counsellor directory.
type CounsellorRepository interface {
	ListCounsellors(ctx context.Context, filter CounsellorFilter) ([]Counsellor, error)
	GetCounsellor(ctx context.Context, id string) (Counsellor, error)
}

// BookingRepository stores counselling session bookings.
type BookingRepository interface {
	ListBookingsBySeeker(ctx context.Context, seekerID string) ([]Booking, error)
	ListBookingsByCounsellor(ctx context.Context, counsellorID string) ([]Booking, error)
	CreateBooking(ctx context.Context, booking Booking) (Booking, error)
}

// ResourceFilter narrows wellness library queries.
type ResourceFilter struct {
	Category   string
	Type       ResourceType
	Difficulty Difficulty
}

// ResourceRepository exposes read operations over the wellness library.
type ResourceRepository interface {
	ListResources(ctx context.Context, filter ResourceFilter) ([]Resource, error)
	GetResource(ctx context.Context, id string) (Resource, error)
}

// JournalRepository exposes CRUD operations for journal entries.
type JournalRepository interface {
	ListEntriesByOwner(ctx context.Context, ownerID string) ([]JournalEntry, error)
	GetEntry(ctx context.Context, id string) (JournalEntry, error)
	CreateEntry(ctx context.Context, entry JournalEntry) (JournalEntry, error)
	UpdateEntry(ctx context.Context, entry JournalEntry) (JournalEntry, error)
	DeleteEntry(ctx context.Context, id string) error
}

// CredentialRepository looks up seeded account credentials.
type CredentialRepository interface {
	GetCredentialByEmail(ctx context.Context, email string) (Credential, error)
}

// SessionStateStore persists the client session cache. Save replaces both
// values atomically; Load fails with ErrNotFound unless both are present.
type SessionStateStore interface {
	SaveSessionState(ctx context.Context, state SessionState) error
	LoadSessionState(ctx context.Context) (SessionState, error)
	ClearSessionState(ctx context.Context) error
}
