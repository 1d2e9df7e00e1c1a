package memory

import "github.com/example/mindease/internal/persistence"

// SeedCounsellors returns the directory the platform ships with.
func SeedCounsellors() []persistence.Counsellor {
	return []persistence.Counsellor{
		{
			ID:              "1",
			Name:            "Dr. Sarah Johnson",
			Avatar:          "https://images.unsplash.com/photo-1559839734-2b71ea197ec2?w=300&h=300&fit=crop&crop=face",
			Specializations: []string{"Anxiety", "Depression", "Stress Management"},
			AgeGroups:       []string{"Adults", "Young Adults"},
			PricePerSession: 80,
			Rating:          4.9,
			TotalSessions:   1250,
			Bio:             "Licensed clinical psychologist with 10+ years of experience helping individuals overcome anxiety and depression.",
			Availability:    []string{"Monday 9:00-17:00", "Tuesday 9:00-17:00", "Wednesday 9:00-17:00"},
			Verified:        true,
		},
		{
			ID:              "2",
			Name:            "Michael Chen",
			Avatar:          "https://images.unsplash.com/photo-1612349317150-e413f6a5b16d?w=300&h=300&fit=crop&crop=face",
			Specializations: []string{"Couples Therapy", "Family Counseling", "Communication"},
			AgeGroups:       []string{"Adults", "Couples"},
			PricePerSession: 90,
			Rating:          4.8,
			TotalSessions:   890,
			Bio:             "Specialized in relationship counseling and family therapy. Helping couples build stronger connections.",
			Availability:    []string{"Thursday 10:00-18:00", "Friday 10:00-18:00", "Saturday 9:00-15:00"},
			Verified:        true,
		},
		{
			ID:              "3",
			Name:            "Dr. Emily Rodriguez",
			Avatar:          "https://images.unsplash.com/photo-1594824804732-ca8db42265d0?w=300&h=300&fit=crop&crop=face",
			Specializations: []string{"Teen Counseling", "Academic Stress", "Self-Esteem"},
			AgeGroups:       []string{"Teenagers", "Young Adults"},
			PricePerSession: 70,
			Rating:          4.7,
			TotalSessions:   650,
			Bio:             "Passionate about helping teenagers and young adults navigate life challenges and build confidence.",
			Availability:    []string{"Monday 14:00-20:00", "Wednesday 14:00-20:00", "Friday 14:00-20:00"},
			Verified:        true,
		},
		{
			ID:              "4",
			Name:            "Dr. James Wilson",
			Avatar:          "https://images.unsplash.com/photo-1582750433449-648ed127bb54?w=300&h=300&fit=crop&crop=face",
			Specializations: []string{"PTSD", "Trauma Recovery", "Military Veterans"},
			AgeGroups:       []string{"Adults"},
			PricePerSession: 100,
			Rating:          4.9,
			TotalSessions:   980,
			Bio:             "Specialized in trauma therapy and PTSD treatment, with extensive experience working with veterans.",
			Availability:    []string{"Tuesday 8:00-16:00", "Thursday 8:00-16:00"},
			Verified:        true,
		},
	}
}

// SeedBookings returns the booking history the platform ships with. The
// completed record is the only source of non-upcoming statuses in the system.
func SeedBookings() []persistence.Booking {
	rating := 5
	feedback := "Great session, very helpful advice!"
	return []persistence.Booking{
		{
			ID:              "1",
			CounsellorID:    "1",
			CounsellorName:  "Dr. Sarah Johnson",
			SeekerID:        "1",
			SeekerName:      "John Doe",
			Date:            "2024-01-15",
			Time:            "10:00",
			DurationMinutes: 60,
			Status:          persistence.BookingUpcoming,
		},
		{
			ID:              "2",
			CounsellorID:    "2",
			CounsellorName:  "Michael Chen",
			SeekerID:        "1",
			SeekerName:      "John Doe",
			Date:            "2024-01-10",
			Time:            "14:00",
			DurationMinutes: 60,
			Status:          persistence.BookingCompleted,
			Rating:          &rating,
			Feedback:        &feedback,
		},
	}
}

// SeedResources returns the wellness library the platform ships with.
func SeedResources() []persistence.Resource {
	readTime8 := 8
	readTime12 := 12
	duration10 := 10
	duration5 := 5
	anxietyContent := "Anxiety is a natural response to stress, but when it becomes overwhelming..."
	panicContent := "When you feel a panic attack coming on, try these breathing exercises..."
	teenContent := "Self-esteem is crucial for teenagers as they navigate social pressures..."
	meditationURL := "https://example.com/meditation-video"
	return []persistence.Resource{
		{
			ID:              "1",
			Title:           "Understanding Anxiety: A Beginner's Guide",
			Description:     "Learn the basics of anxiety disorders and coping strategies",
			Type:            persistence.ResourceArticle,
			Category:        "Anxiety",
			ReadTimeMinutes: &readTime8,
			Author:          "Dr. Sarah Johnson",
			PublishedDate:   "2024-01-10",
			Thumbnail:       "https://images.unsplash.com/photo-1544367567-0f2fcb009e0b?w=400&h=300&fit=crop",
			Content:         &anxietyContent,
			Tags:            []string{"anxiety", "coping", "mental-health"},
			Difficulty:      persistence.DifficultyBeginner,
			Rating:          4.8,
		},
		{
			ID:              "2",
			Title:           "10-Minute Mindfulness Meditation",
			Description:     "A guided meditation session to reduce stress and improve focus",
			Type:            persistence.ResourceVideo,
			Category:        "Mindfulness",
			DurationMinutes: &duration10,
			Author:          "Michael Chen",
			PublishedDate:   "2024-01-08",
			Thumbnail:       "https://images.unsplash.com/photo-1506905925346-21bda4d32df4?w=400&h=300&fit=crop",
			URL:             &meditationURL,
			Tags:            []string{"meditation", "mindfulness", "stress-relief"},
			Difficulty:      persistence.DifficultyBeginner,
			Rating:          4.9,
		},
		{
			ID:              "3",
			Title:           "Breathing Exercises for Panic Attacks",
			Description:     "Simple breathing techniques to manage panic attacks",
			Type:            persistence.ResourceExercise,
			Category:        "Panic Attacks",
			DurationMinutes: &duration5,
			Author:          "Dr. Emily Rodriguez",
			PublishedDate:   "2024-01-05",
			Thumbnail:       "https://images.unsplash.com/photo-1571019613454-1cb2f99b2d8b?w=400&h=300&fit=crop",
			Content:         &panicContent,
			Tags:            []string{"breathing", "panic-attacks", "techniques"},
			Difficulty:      persistence.DifficultyBeginner,
			Rating:          4.7,
		},
		{
			ID:              "4",
			Title:           "Building Self-Esteem in Teenagers",
			Description:     "Practical strategies for teens to build confidence and self-worth",
			Type:            persistence.ResourceArticle,
			Category:        "Self-Esteem",
			ReadTimeMinutes: &readTime12,
			Author:          "Dr. James Wilson",
			PublishedDate:   "2024-01-03",
			Thumbnail:       "https://images.unsplash.com/photo-1522202176988-66273c2fd55f?w=400&h=300&fit=crop",
			Content:         &teenContent,
			Tags:            []string{"self-esteem", "teenagers", "confidence"},
			Difficulty:      persistence.DifficultyIntermediate,
			Rating:          4.6,
		},
	}
}

// SeedJournalEntries returns the journal history the platform ships with.
func SeedJournalEntries() []persistence.JournalEntry {
	return []persistence.JournalEntry{
		{
			ID:      "1",
			OwnerID: "1",
			Title:   "Today was challenging but I made it through",
			Content: "Had a difficult day at work, but I used the breathing techniques from my counsellor and it really helped...",
			Mood:    persistence.MoodNeutral,
			Tags:    []string{"work", "stress", "coping"},
			Date:    "2024-01-12",
			Private: true,
		},
		{
			ID:      "2",
			OwnerID: "1",
			Title:   "Feeling grateful today",
			Content: "Spent time with family and felt really supported. It's amazing how much difference human connection makes...",
			Mood:    persistence.MoodHappy,
			Tags:    []string{"gratitude", "family", "support"},
			Date:    "2024-01-10",
			Private: false,
		},
	}
}

// SeedCredentials returns the two accounts the platform accepts. The caller
// supplies the hash so the seed stays free of plaintext secrets.
func SeedCredentials(passwordHash string) []persistence.Credential {
	return []persistence.Credential{
		{
			ID:           "1",
			Email:        "user@test.com",
			Name:         "John Doe",
			Avatar:       "https://images.unsplash.com/photo-1472099645785-5658abf4ff4e?w=150&h=150&fit=crop&crop=face",
			PasswordHash: passwordHash,
		},
		{
			ID:           "2",
			Email:        "counsellor@test.com",
			Name:         "Dr. Sarah Johnson",
			Avatar:       "https://images.unsplash.com/photo-1559839734-2b71ea197ec2?w=150&h=150&fit=crop&crop=face",
			PasswordHash: passwordHash,
		},
	}
}
