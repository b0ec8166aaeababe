package entities

import "time"

// MoodEntry is one mood check-in recorded by a user.
type MoodEntry struct {
	ID         string    `json:"id"`
	UserID     string    `json:"user_id"`
	Mood       string    `json:"mood"`
	Intensity  int       `json:"intensity"` // 1-5
	Note       string    `json:"note,omitempty"`
	RecordedAt time.Time `json:"recorded_at"`
}

// MoodSummary aggregates a user's recent mood entries.
type MoodSummary struct {
	UserID       string         `json:"user_id"`
	TotalEntries int            `json:"total_entries"`
	MoodCounts   map[string]int `json:"mood_counts"`
	AvgIntensity float64        `json:"avg_intensity"`
}
