package application

// Role identifies which side of the platform an identity belongs to. It is
// fixed when the identity is created.
type Role string

const (
	// RoleSeeker is the end user booking and attending counselling sessions.
	RoleSeeker Role = "seeker"
	// RoleCounsellor is the professional offering sessions.
	RoleCounsellor Role = "counsellor"
)

// Valid reports whether the role is one of the known values.
func (r Role) Valid() bool {
	return r == RoleSeeker || r == RoleCounsellor
}

// Identity represents an authenticated user of the platform.
type Identity struct {
	ID     string `json:"id"`
	Email  string `json:"email"`
	Name   string `json:"name"`
	Role   Role   `json:"role"`
	Avatar string `json:"avatar,omitempty"`
}

// Principal represents the authenticated user invoking a service method.
type Principal struct {
	UserID string
	Name   string
	Email  string
	Role   Role
}

// Credentials models the authentication attributes held for a seeded account.
type Credentials struct {
	Identity     Identity
	PasswordHash string
}

// LoginParams captures the data required to authenticate a user.
type LoginParams struct {
	Email    string
	Password string
	Role     Role
}

// SignupParams captures the data required to register a new account.
type SignupParams struct {
	Email    string
	Password string
	Name     string
	Role     Role
}

// AuthResult bundles the identity and freshly minted token returned by a
// successful login, signup, or refresh.
type AuthResult struct {
	Identity Identity
	Token    string
}

// Counsellor represents a directory profile exposed by the application services.
type Counsellor struct {
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

// CounsellorFilter narrows directory listings. Empty fields mean no
// restriction; populated fields combine with logical AND.
type CounsellorFilter struct {
	Specialization string
	AgeGroup       string
	MaxPrice       *float64
}

// BookingStatus enumerates the lifecycle states of a booking.
type BookingStatus string

const (
	BookingUpcoming  BookingStatus = "upcoming"
	BookingCompleted BookingStatus = "completed"
	BookingCancelled BookingStatus = "cancelled"
)

// Booking represents a counselling session exposed by the application services.
type Booking struct {
	ID              string
	CounsellorID    string
	CounsellorName  string
	SeekerID        string
	SeekerName      string
	Date            string
	Time            string
	DurationMinutes int
	Status          BookingStatus
	Notes           *string
	Rating          *int
	Feedback        *string
}

// BookingInput captures caller provided booking fields.
type BookingInput struct {
	CounsellorID string
	Date         string
	Time         string
	Notes        *string
}

// CreateBookingParams wraps the data required to book a session. The seeker
// identity is always threaded explicitly from the caller's principal.
type CreateBookingParams struct {
	Principal Principal
	Input     BookingInput
}

// EarningsSummary aggregates a counsellor's booking history.
type EarningsSummary struct {
	TotalEarned       float64
	CompletedSessions int
	UpcomingSessions  int
}

// ResourceType enumerates the kinds of wellness content in the library.
type ResourceType string

const (
	ResourceArticle  ResourceType = "article"
	ResourceVideo    ResourceType = "video"
	ResourcePodcast  ResourceType = "podcast"
	ResourceExercise ResourceType = "exercise"
)

// Difficulty grades a resource for its intended audience.
type Difficulty string

const (
	DifficultyBeginner     Difficulty = "beginner"
	DifficultyIntermediate Difficulty = "intermediate"
	DifficultyAdvanced     Difficulty = "advanced"
)

// Resource represents a wellness library item exposed by the application services.
type Resource struct {
	ID              string
	Title           string
	Description     string
	Type            ResourceType
	Category        string
	DurationMinutes *int
	ReadTimeMinutes *int
	Author          string
	PublishedDate   string
	Thumbnail       string
	Content         *string
	URL             *string
	Tags            []string
	Difficulty      Difficulty
	Rating          float64
}

// ResourceFilter narrows wellness library listings.
type ResourceFilter struct {
	Category   string
	Type       ResourceType
	Difficulty Difficulty
}

// Mood enumerates the feelings a seeker can attach to a journal entry.
type Mood string

const (
	MoodVeryHappy Mood = "very-happy"
	MoodHappy     Mood = "happy"
	MoodNeutral   Mood = "neutral"
	MoodSad       Mood = "sad"
	MoodVerySad   Mood = "very-sad"
)

// Valid reports whether the mood is one of the known values.
func (m Mood) Valid() bool {
	switch m {
	case MoodVeryHappy, MoodHappy, MoodNeutral, MoodSad, MoodVerySad:
		return true
	}
	return false
}

// JournalEntry represents a private note owned by a single seeker.
type JournalEntry struct {
	ID      string
	OwnerID string
	Title   string
	Content string
	Mood    Mood
	Tags    []string
	Date    string
	Private bool
}

// JournalEntryInput captures caller provided journal fields.
type JournalEntryInput struct {
	Title   string
	Content string
	Mood    Mood
	Tags    []string
	Private bool
}

// CreateJournalEntryParams wraps the data required to create a journal entry.
type CreateJournalEntryParams struct {
	Principal Principal
	Input     JournalEntryInput
}

// JournalEntryPatch carries a partial update; nil fields keep their prior
// values.
type JournalEntryPatch struct {
	Title   *string
	Content *string
	Mood    *Mood
	Tags    *[]string
	Private *bool
}

// UpdateJournalEntryParams wraps the data required to update a journal entry.
type UpdateJournalEntryParams struct {
	Principal Principal
	EntryID   string
	Patch     JournalEntryPatch
}
