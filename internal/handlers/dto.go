package handlers

import (
	"time"

	"innerlog/internal/models"
	"innerlog/internal/mood"
)

// EntryDTO is the read-side shape for a journal entry: the stored mood color
// is translated into the display text and emoji, and photo_url is surfaced
// as images.
type EntryDTO struct {
	ID         string   `json:"id"`
	Date       string   `json:"date"`
	Mood       string   `json:"mood"`
	MoodEmoji  string   `json:"moodEmoji"`
	Entry      string   `json:"entry"`
	Images     []string `json:"images"`
	CreatedAt  string   `json:"created_at"`
	MoodRating string   `json:"mood_rating"`
}

func toEntryDTO(e models.JournalEntry) EntryDTO {
	// photo-less rows store NULL, but the list contract is always an array
	images := []string(e.PhotoURL)
	if images == nil {
		images = []string{}
	}
	return EntryDTO{
		ID:         e.ID,
		Date:       e.CreatedAt.Format("2006-01-02"),
		Mood:       mood.Text(e.MoodRating),
		MoodEmoji:  mood.Emoji(e.MoodRating),
		Entry:      e.EntryText,
		Images:     images,
		CreatedAt:  e.CreatedAt.Format(time.RFC3339),
		MoodRating: e.MoodRating,
	}
}

func toEntryDTOs(entries []models.JournalEntry) []EntryDTO {
	out := make([]EntryDTO, 0, len(entries))
	for _, e := range entries {
		out = append(out, toEntryDTO(e))
	}
	return out
}

// ProfileDTO keeps birthdate date-only on the wire.
type ProfileDTO struct {
	ID                 string  `json:"id"`
	FirstName          *string `json:"first_name"`
	Birthdate          *string `json:"birthdate"`
	Sex                *string `json:"sex"`
	GenderIdentity     *string `json:"gender_identity"`
	HobbyIDs           []int64 `json:"hobby_ids"`
	ActivityLevel      *int    `json:"activity_level"`
	OnboardingComplete bool    `json:"onboarding_complete"`
	CreatedAt          string  `json:"created_at"`
}

func toDateStringPtr(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.Format("2006-01-02")
	return &s
}

func toProfileDTO(p models.Profile) ProfileDTO {
	return ProfileDTO{
		ID:                 p.ID,
		FirstName:          p.FirstName,
		Birthdate:          toDateStringPtr(p.Birthdate),
		Sex:                p.Sex,
		GenderIdentity:     p.GenderIdentity,
		HobbyIDs:           p.HobbyIDs,
		ActivityLevel:      p.ActivityLevel,
		OnboardingComplete: p.OnboardingComplete,
		CreatedAt:          p.CreatedAt.Format(time.RFC3339),
	}
}
