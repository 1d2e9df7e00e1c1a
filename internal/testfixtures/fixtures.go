// Package testfixtures provides deterministic test data builders for the
// MindEase domain. Every fixture yields stable values with optional
// overrides, so tests stay readable and order independent.
package testfixtures

import (
	"fmt"
	"sync/atomic"
	"time"

	"github.com/example/mindease/internal/application"
	"github.com/example/mindease/internal/persistence"
)

var (
	identityCounter   uint64
	counsellorCounter uint64
	bookingCounter    uint64
	journalCounter    uint64
)

var referenceTime = time.Date(2024, time.January, 2, 15, 4, 5, 0, time.UTC)

// ReferenceTime returns the canonical baseline timestamp used by fixtures.
func ReferenceTime() time.Time {
	return referenceTime
}

// --------------------------- Identity fixtures ---------------------------

// IdentityFixture represents a deterministic platform account.
type IdentityFixture struct {
	ID           string
	Email        string
	Name         string
	Role         application.Role
	Avatar       string
	PasswordHash string
}

// IdentityOption configures the generated identity fixture.
type IdentityOption func(*IdentityFixture)

// NewIdentityFixture returns a deterministic identity fixture with optional
// overrides. The default role is seeker.
func NewIdentityFixture(opts ...IdentityOption) IdentityFixture {
	idx := atomic.AddUint64(&identityCounter, 1)
	id := fmt.Sprintf("identity-%03d", idx)
	fixture := IdentityFixture{
		ID:           id,
		Email:        fmt.Sprintf("%s@example.com", id),
		Name:         fmt.Sprintf("Identity %03d", idx),
		Role:         application.RoleSeeker,
		Avatar:       fmt.Sprintf("https://example.com/avatars/%s.jpg", id),
		PasswordHash: fmt.Sprintf("hash-%03d", idx),
	}
	for _, opt := range opts {
		opt(&fixture)
	}
	return fixture
}

// WithIdentityID overrides the generated identity ID.
func WithIdentityID(id string) IdentityOption {
	return func(f *IdentityFixture) {
		f.ID = id
	}
}

// WithIdentityEmail overrides the generated email address.
func WithIdentityEmail(email string) IdentityOption {
	return func(f *IdentityFixture) {
		f.Email = email
	}
}

// WithIdentityName overrides the generated display name.
func WithIdentityName(name string) IdentityOption {
	return func(f *IdentityFixture) {
		f.Name = name
	}
}

// WithIdentityRole sets the role on the generated fixture.
func WithIdentityRole(role application.Role) IdentityOption {
	return func(f *IdentityFixture) {
		f.Role = role
	}
}

// WithIdentityPasswordHash overrides the generated password hash.
func WithIdentityPasswordHash(hash string) IdentityOption {
	return func(f *IdentityFixture) {
		f.PasswordHash = hash
	}
}

// Application returns the fixture as an application.Identity value.
func (f IdentityFixture) Application() application.Identity {
	return application.Identity{
		ID:     f.ID,
		Email:  f.Email,
		Name:   f.Name,
		Role:   f.Role,
		Avatar: f.Avatar,
	}
}

// Credentials returns the fixture as application.Credentials. The role is
// stripped, matching how stored accounts carry no role.
func (f IdentityFixture) Credentials() application.Credentials {
	identity := f.Application()
	identity.Role = ""
	return application.Credentials{
		Identity:     identity,
		PasswordHash: f.PasswordHash,
	}
}

// Principal returns an application.Principal derived from the fixture.
func (f IdentityFixture) Principal() application.Principal {
	return application.Principal{
		UserID: f.ID,
		Name:   f.Name,
		Email:  f.Email,
		Role:   f.Role,
	}
}

// Persistence returns the fixture as a persistence.Credential value.
func (f IdentityFixture) Persistence() persistence.Credential {
	return persistence.Credential{
		ID:           f.ID,
		Email:        f.Email,
		Name:         f.Name,
		Avatar:       f.Avatar,
		PasswordHash: f.PasswordHash,
	}
}

// -------------------------- Counsellor fixtures --------------------------

// CounsellorFixture represents a deterministic directory profile.
type CounsellorFixture struct {
	ID              string
	Name            string
	Avatar          string
	Specializations []string
	AgeGroups       []string
	PricePerSession float64
	Rating          float64
	TotalSessions   int
	Bio             string
	Availability    []string
	Verified        bool
}

// CounsellorOption configures the generated counsellor fixture.
type CounsellorOption func(*CounsellorFixture)

// NewCounsellorFixture returns a deterministic counsellor fixture with
// optional overrides.
func NewCounsellorFixture(opts ...CounsellorOption) CounsellorFixture {
	idx := atomic.AddUint64(&counsellorCounter, 1)
	id := fmt.Sprintf("counsellor-%03d", idx)
	fixture := CounsellorFixture{
		ID:              id,
		Name:            fmt.Sprintf("Counsellor %03d", idx),
		Avatar:          fmt.Sprintf("https://example.com/avatars/%s.jpg", id),
		Specializations: []string{"anxiety"},
		AgeGroups:       []string{"adults"},
		PricePerSession: 80,
		Rating:          4.5,
		TotalSessions:   int(100 + idx),
		Bio:             "Licensed therapist.",
		Availability:    []string{"Mon", "Wed"},
		Verified:        true,
	}
	for _, opt := range opts {
		opt(&fixture)
	}
	return fixture
}

// WithCounsellorID overrides the generated counsellor ID.
func WithCounsellorID(id string) CounsellorOption {
	return func(f *CounsellorFixture) {
		f.ID = id
	}
}

// WithCounsellorName overrides the generated name.
func WithCounsellorName(name string) CounsellorOption {
	return func(f *CounsellorFixture) {
		f.Name = name
	}
}

// WithCounsellorPrice sets the per-session price.
func WithCounsellorPrice(price float64) CounsellorOption {
	return func(f *CounsellorFixture) {
		f.PricePerSession = price
	}
}

// WithCounsellorSpecializations sets the specialization list.
func WithCounsellorSpecializations(specializations ...string) CounsellorOption {
	return func(f *CounsellorFixture) {
		f.Specializations = append([]string(nil), specializations...)
	}
}

// WithCounsellorAgeGroups sets the served age groups.
func WithCounsellorAgeGroups(ageGroups ...string) CounsellorOption {
	return func(f *CounsellorFixture) {
		f.AgeGroups = append([]string(nil), ageGroups...)
	}
}

// Application returns the fixture as an application.Counsellor value.
func (f CounsellorFixture) Application() application.Counsellor {
	return application.Counsellor{
		ID:              f.ID,
		Name:            f.Name,
		Avatar:          f.Avatar,
		Specializations: append([]string(nil), f.Specializations...),
		AgeGroups:       append([]string(nil), f.AgeGroups...),
		PricePerSession: f.PricePerSession,
		Rating:          f.Rating,
		TotalSessions:   f.TotalSessions,
		Bio:             f.Bio,
		Availability:    append([]string(nil), f.Availability...),
		Verified:        f.Verified,
	}
}

// Persistence returns the fixture as a persistence.Counsellor value.
func (f CounsellorFixture) Persistence() persistence.Counsellor {
	return persistence.Counsellor{
		ID:              f.ID,
		Name:            f.Name,
		Avatar:          f.Avatar,
		Specializations: append([]string(nil), f.Specializations...),
		AgeGroups:       append([]string(nil), f.AgeGroups...),
		PricePerSession: f.PricePerSession,
		Rating:          f.Rating,
		TotalSessions:   f.TotalSessions,
		Bio:             f.Bio,
		Availability:    append([]string(nil), f.Availability...),
		Verified:        f.Verified,
	}
}

// ---------------------------- Booking fixtures ----------------------------

// BookingFixture represents a deterministic counselling session record.
type BookingFixture struct {
	ID              string
	CounsellorID    string
	CounsellorName  string
	SeekerID        string
	SeekerName      string
	Date            string
	Time            string
	DurationMinutes int
	Status          application.BookingStatus
	Notes           *string
	Rating          *int
	Feedback        *string
}

// BookingOption configures the generated booking fixture.
type BookingOption func(*BookingFixture)

// NewBookingFixture returns a deterministic booking fixture with optional
// overrides. The default status is upcoming.
func NewBookingFixture(opts ...BookingOption) BookingFixture {
	idx := atomic.AddUint64(&bookingCounter, 1)
	day := referenceTime.AddDate(0, 0, int(idx))
	fixture := BookingFixture{
		ID:              fmt.Sprintf("booking-%03d", idx),
		CounsellorID:    "counsellor-001",
		CounsellorName:  "Counsellor 001",
		SeekerID:        "identity-001",
		SeekerName:      "Identity 001",
		Date:            day.Format("2006-01-02"),
		Time:            "10:00",
		DurationMinutes: 60,
		Status:          application.BookingUpcoming,
	}
	for _, opt := range opts {
		opt(&fixture)
	}
	return fixture
}

// WithBookingID overrides the generated booking ID.
func WithBookingID(id string) BookingOption {
	return func(f *BookingFixture) {
		f.ID = id
	}
}

// WithBookingCounsellor sets the counsellor id and name.
func WithBookingCounsellor(id, name string) BookingOption {
	return func(f *BookingFixture) {
		f.CounsellorID = id
		f.CounsellorName = name
	}
}

// WithBookingSeeker sets the seeker id and name.
func WithBookingSeeker(id, name string) BookingOption {
	return func(f *BookingFixture) {
		f.SeekerID = id
		f.SeekerName = name
	}
}

// WithBookingStatus sets the lifecycle status.
func WithBookingStatus(status application.BookingStatus) BookingOption {
	return func(f *BookingFixture) {
		f.Status = status
	}
}

// WithBookingNotes sets the optional notes field.
func WithBookingNotes(notes string) BookingOption {
	return func(f *BookingFixture) {
		value := notes
		f.Notes = &value
	}
}

// Application returns the fixture as an application.Booking value.
func (f BookingFixture) Application() application.Booking {
	return application.Booking{
		ID:              f.ID,
		CounsellorID:    f.CounsellorID,
		CounsellorName:  f.CounsellorName,
		SeekerID:        f.SeekerID,
		SeekerName:      f.SeekerName,
		Date:            f.Date,
		Time:            f.Time,
		DurationMinutes: f.DurationMinutes,
		Status:          f.Status,
		Notes:           copyStringPtr(f.Notes),
		Rating:          copyIntPtr(f.Rating),
		Feedback:        copyStringPtr(f.Feedback),
	}
}

// Persistence returns the fixture as a persistence.Booking value.
func (f BookingFixture) Persistence() persistence.Booking {
	return persistence.Booking{
		ID:              f.ID,
		CounsellorID:    f.CounsellorID,
		CounsellorName:  f.CounsellorName,
		SeekerID:        f.SeekerID,
		SeekerName:      f.SeekerName,
		Date:            f.Date,
		Time:            f.Time,
		DurationMinutes: f.DurationMinutes,
		Status:          persistence.BookingStatus(f.Status),
		Notes:           copyStringPtr(f.Notes),
		Rating:          copyIntPtr(f.Rating),
		Feedback:        copyStringPtr(f.Feedback),
	}
}

// ---------------------------- Journal fixtures ----------------------------

// JournalEntryFixture represents a deterministic journal entry record.
type JournalEntryFixture struct {
	ID      string
	OwnerID string
	Title   string
	Content string
	Mood    application.Mood
	Tags    []string
	Date    string
	Private bool
}

// JournalEntryOption configures the generated journal entry fixture.
type JournalEntryOption func(*JournalEntryFixture)

// NewJournalEntryFixture returns a deterministic journal entry fixture with
// optional overrides.
func NewJournalEntryFixture(opts ...JournalEntryOption) JournalEntryFixture {
	idx := atomic.AddUint64(&journalCounter, 1)
	day := referenceTime.AddDate(0, 0, int(idx))
	fixture := JournalEntryFixture{
		ID:      fmt.Sprintf("entry-%03d", idx),
		OwnerID: "identity-001",
		Title:   fmt.Sprintf("Entry %03d", idx),
		Content: "Reflected on the week.",
		Mood:    application.MoodNeutral,
		Tags:    []string{"reflection"},
		Date:    day.Format("2006-01-02"),
		Private: true,
	}
	for _, opt := range opts {
		opt(&fixture)
	}
	return fixture
}

// WithJournalEntryID overrides the generated entry ID.
func WithJournalEntryID(id string) JournalEntryOption {
	return func(f *JournalEntryFixture) {
		f.ID = id
	}
}

// WithJournalEntryOwner sets the owning seeker's id.
func WithJournalEntryOwner(ownerID string) JournalEntryOption {
	return func(f *JournalEntryFixture) {
		f.OwnerID = ownerID
	}
}

// WithJournalEntryMood sets the recorded mood.
func WithJournalEntryMood(mood application.Mood) JournalEntryOption {
	return func(f *JournalEntryFixture) {
		f.Mood = mood
	}
}

// WithJournalEntryPrivate sets the privacy flag.
func WithJournalEntryPrivate(private bool) JournalEntryOption {
	return func(f *JournalEntryFixture) {
		f.Private = private
	}
}

// Application returns the fixture as an application.JournalEntry value.
func (f JournalEntryFixture) Application() application.JournalEntry {
	return application.JournalEntry{
		ID:      f.ID,
		OwnerID: f.OwnerID,
		Title:   f.Title,
		Content: f.Content,
		Mood:    f.Mood,
		Tags:    append([]string(nil), f.Tags...),
		Date:    f.Date,
		Private: f.Private,
	}
}

// Persistence returns the fixture as a persistence.JournalEntry value.
func (f JournalEntryFixture) Persistence() persistence.JournalEntry {
	return persistence.JournalEntry{
		ID:      f.ID,
		OwnerID: f.OwnerID,
		Title:   f.Title,
		Content: f.Content,
		Mood:    persistence.Mood(f.Mood),
		Tags:    append([]string(nil), f.Tags...),
		Date:    f.Date,
		Private: f.Private,
	}
}

// Input returns the fixture as an application.JournalEntryInput.
func (f JournalEntryFixture) Input() application.JournalEntryInput {
	return application.JournalEntryInput{
		Title:   f.Title,
		Content: f.Content,
		Mood:    f.Mood,
		Tags:    append([]string(nil), f.Tags...),
		Private: f.Private,
	}
}

// helper to deep copy optional strings.
func copyStringPtr(src *string) *string {
	if src == nil {
		return nil
	}
	value := *src
	return &value
}

func copyIntPtr(src *int) *int {
	if src == nil {
		return nil
	}
	value := *src
	return &value
}
