package models

import (
	"time"

	"github.com/jmoiron/sqlx/types"
	"github.com/lib/pq"
)

type JournalEntry struct {
	ID             string             `db:"id" json:"id"`
	UserID         string             `db:"user_id" json:"user_id"`
	EntryText      string             `db:"entry_text" json:"entry_text"`
	MoodRating     string             `db:"mood_rating" json:"mood_rating"`
	MoodTag        *string            `db:"mood_tag" json:"mood_tag"`   // set by the analysis side, never by the user
	PhotoURL       pq.StringArray     `db:"photo_url" json:"photo_url"` // null when the entry has no attachments
	Insights       types.NullJSONText `db:"insights" json:"insights"`   // attached once, best effort, after generation
	SentimentLabel *string            `db:"sentiment_label" json:"sentiment_label"`
	SentimentScore *float64           `db:"sentiment_score" json:"sentiment_score"`
	CreatedAt      time.Time          `db:"created_at" json:"created_at"`
}

type AIInsight struct {
	ID                    string             `db:"id" json:"id"`
	UserID                string             `db:"user_id" json:"user_id"`
	JournalID             *string            `db:"journal_id" json:"journal_id"`
	InsightType           string             `db:"insight_type" json:"insight_type"`
	Explanation           *string            `db:"explanation" json:"explanation"`
	Suggestions           types.NullJSONText `db:"suggestions" json:"suggestions"`
	Patterns              *string            `db:"patterns" json:"patterns"`
	ConfidenceScore       *float64           `db:"confidence_score" json:"confidence_score"`
	MoodTriggers          types.NullJSONText `db:"mood_triggers" json:"mood_triggers"`
	RecommendedActivities types.NullJSONText `db:"recommended_activities" json:"recommended_activities"`
	MoodImprovementTips   types.NullJSONText `db:"mood_improvement_tips" json:"mood_improvement_tips"`
	PositivePatterns      types.NullJSONText `db:"positive_patterns" json:"positive_patterns"`
	WeeklySummary         types.NullJSONText `db:"weekly_summary" json:"weekly_summary"`
	TrendAnalysis         types.NullJSONText `db:"trend_analysis" json:"trend_analysis"`
	TodayRecommendations  types.NullJSONText `db:"today_recommendations" json:"today_recommendations"`
	TodayAffirmation      *string            `db:"today_affirmation" json:"today_affirmation"`
	PredictionAccuracy    *float64           `db:"prediction_accuracy" json:"prediction_accuracy"`
	QuickTip              *string            `db:"quick_tip" json:"quick_tip"`
	Day                   *string            `db:"day" json:"day"`
	IsActive              bool               `db:"is_active" json:"is_active"`
	ExpiresAt             *time.Time         `db:"expires_at" json:"expires_at"`
	CreatedAt             time.Time          `db:"created_at" json:"created_at"`
}

type WeeklySummary struct {
	ID            string             `db:"id" json:"id"`
	UserID        string             `db:"user_id" json:"user_id"`
	WeekStartDate time.Time          `db:"week_start_date" json:"week_start_date"`
	WeekEndDate   *time.Time         `db:"week_end_date" json:"week_end_date"`
	SummaryText   string             `db:"summary_text" json:"summary_text"`
	MoodGraphData types.NullJSONText `db:"mood_graph_data" json:"mood_graph_data"`
	CreatedAt     time.Time          `db:"created_at" json:"created_at"`
}

type Profile struct {
	ID                 string        `db:"id" json:"id"`
	FirstName          *string       `db:"first_name" json:"first_name"`
	Birthdate          *time.Time    `db:"birthdate" json:"birthdate"`
	Sex                *string       `db:"sex" json:"sex"`
	GenderIdentity     *string       `db:"gender_identity" json:"gender_identity"`
	HobbyIDs           pq.Int64Array `db:"hobby_ids" json:"hobby_ids"`
	ActivityLevel      *int          `db:"activity_level" json:"activity_level"`
	OnboardingComplete bool          `db:"onboarding_complete" json:"onboarding_complete"`
	CreatedAt          time.Time     `db:"created_at" json:"created_at"`
}

type UserHobby struct {
	UserID    string    `db:"user_id" json:"user_id"`
	HobbyID   int       `db:"hobby_id" json:"hobby_id"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}
