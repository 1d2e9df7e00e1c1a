package persistence

// BookingStatus enumerates the lifecycle states a booking record can carry.
type BookingStatus string

const (
	// BookingUpcoming is the state every newly created booking starts in.
	BookingUpcoming BookingStatus = "upcoming"
	// BookingCompleted marks a session that already took place. No exposed
	// operation sets this state; it appears only in seed data.
	BookingCompleted BookingStatus = "completed"
	// BookingCancelled marks a session that was called off. Seed data only,
	// same as BookingCompleted.
	BookingCancelled BookingStatus = "cancelled"
)

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

// Mood enumerates the feelings a seeker can attach to a journal entry.
type Mood string

const (
	MoodVeryHappy Mood = "very-happy"
	MoodHappy     Mood = "happy"
	MoodNeutral   Mood = "neutral"
	MoodSad       Mood = "sad"
	MoodVerySad   Mood = "very-sad"
)

// Counsellor represents a professional profile in the directory.
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

// Booking represents a counselling session booked by a seeker.
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

// Resource represents a wellness library item.
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

// Credential represents a seeded account the auth layer accepts. The role is
// deliberately absent: the login request supplies it.
type Credential struct {
	ID           string
	Email        string
	Name         string
	Avatar       string
	PasswordHash string
}

// SessionState is the durable snapshot of the client session cache: the
// bearer token and the serialized identity blob, stored together.
type SessionState struct {
	Token    string
	Identity []byte
}
