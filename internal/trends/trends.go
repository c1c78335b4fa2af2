// Package trends buckets a month of journal entries into week-of-month
// groups for the mood trend chart.
package trends

import (
	"fmt"
	"math"
	"time"

	"innerlog/internal/models"
	"innerlog/internal/mood"
)

// DateRange is a span of day-of-month numbers covered by one bucket.
type DateRange struct {
	Start int `json:"start"`
	End   int `json:"end"`
}

// WeekBucket is one week-of-month group. It is derived on every request and
// never persisted.
type WeekBucket struct {
	Week                  string         `json:"week"`
	WeekNumber            int            `json:"weekNumber"`
	AvgMood               float64        `json:"avgMood"`
	TotalEntries          int            `json:"totalEntries"`
	ConsistencyPercentage int            `json:"consistencyPercentage"`
	PositivePercentage    float64        `json:"positivePercentage"`
	NeutralPercentage     float64        `json:"neutralPercentage"`
	NegativePercentage    float64        `json:"negativePercentage"`
	MoodRatingCounts      map[string]int `json:"moodRatingCounts"`
	MoodTagCounts         map[string]int `json:"moodTagCounts"`
	DateRange             DateRange      `json:"dateRange"`
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}

// Aggregate groups entries from the month containing now into 7-day
// week-of-month buckets (the last one truncated at the month's end) and
// computes per-bucket averages and distributions. With no entries it returns
// an empty slice, not a row of empty buckets.
func Aggregate(entries []models.JournalEntry, now time.Time) []WeekBucket {
	if len(entries) == 0 {
		return []WeekBucket{}
	}

	daysInMonth := time.Date(now.Year(), now.Month()+1, 0, 0, 0, 0, 0, now.Location()).Day()
	maxWeeks := (daysInMonth + 6) / 7

	groups := make([][]models.JournalEntry, maxWeeks+1)
	for _, e := range entries {
		week := (e.CreatedAt.Day() + 6) / 7
		if week < 1 || week > maxWeeks {
			continue
		}
		groups[week] = append(groups[week], e)
	}

	buckets := make([]WeekBucket, 0, maxWeeks)
	for week := 1; week <= maxWeeks; week++ {
		startDay := (week-1)*7 + 1
		endDay := week * 7
		if endDay > daysInMonth {
			endDay = daysInMonth
		}

		ratingCounts := make(map[string]int, len(mood.Colors))
		for _, c := range mood.Colors {
			ratingCounts[c] = 0
		}
		tagCounts := make(map[string]int, len(mood.Tags))
		for _, tag := range mood.Tags {
			tagCounts[tag] = 0
		}

		scoreSum := 0
		daysWithEntries := make(map[int]struct{})
		for _, e := range groups[week] {
			scoreSum += mood.Score(e.MoodRating)
			if _, ok := ratingCounts[e.MoodRating]; ok {
				ratingCounts[e.MoodRating]++
			}
			if e.MoodTag != nil {
				if _, ok := tagCounts[*e.MoodTag]; ok {
					tagCounts[*e.MoodTag]++
				}
			}
			if day := e.CreatedAt.Day(); day >= startDay && day <= endDay {
				daysWithEntries[day] = struct{}{}
			}
		}

		total := len(groups[week])
		var avgMood, positive, neutral, negative float64
		if total > 0 {
			avgMood = round1(float64(scoreSum) / float64(total))
			positive = round1(float64(tagCounts[mood.TagPositive]) / float64(total) * 100)
			neutral = round1(float64(tagCounts[mood.TagNeutral]) / float64(total) * 100)
			negative = round1(float64(tagCounts[mood.TagNegative]) / float64(total) * 100)
		}
		daysInWeek := endDay - startDay + 1
		consistency := int(math.Round(float64(len(daysWithEntries)) / float64(daysInWeek) * 100))

		buckets = append(buckets, WeekBucket{
			Week:                  fmt.Sprintf("Week %d", week),
			WeekNumber:            week,
			AvgMood:               avgMood,
			TotalEntries:          total,
			ConsistencyPercentage: consistency,
			PositivePercentage:    positive,
			NeutralPercentage:     neutral,
			NegativePercentage:    negative,
			MoodRatingCounts:      ratingCounts,
			MoodTagCounts:         tagCounts,
			DateRange:             DateRange{Start: startDay, End: endDay},
		})
	}
	return buckets
}
