package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/jmoiron/sqlx/types"
	"go.uber.org/zap"

	"innerlog/internal/insights"
	"innerlog/internal/models"
)

type InsightStore struct {
	db     *sqlx.DB
	logger *zap.Logger
}

func NewInsightStore(db *sqlx.DB, logger *zap.Logger) *InsightStore {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &InsightStore{db: db, logger: logger}
}

// jsonList marshals a string list for a JSONB column, storing [] rather than
// NULL when the payload omitted the field.
func jsonList(v []string) types.JSONText {
	if v == nil {
		v = []string{}
	}
	b, _ := json.Marshal(v)
	return types.JSONText(b)
}

// jsonRaw passes a raw JSON fragment through, or NULL when absent.
func jsonRaw(r json.RawMessage) interface{} {
	if len(r) == 0 {
		return nil
	}
	return types.JSONText(r)
}

// InsertFromPayload records one generation event. insightType is TypeDaily
// or TypeWeeklySummary; journalID references the triggering (or anchor)
// entry.
func (s *InsightStore) InsertFromPayload(ctx context.Context, userID, journalID, insightType string, p *insights.Payload) error {
	if userID == "" || journalID == "" || p == nil {
		return fmt.Errorf("%w: user_id, journal_id and payload are required", ErrValidation)
	}

	var explanation *string
	if summary := p.SummaryText(); summary != "" {
		explanation = &summary
	}
	var patterns *string
	if len(p.PositivePatterns) > 0 {
		joined := strings.Join(p.PositivePatterns, ", ")
		patterns = &joined
	}
	var recs json.RawMessage
	if p.TodayRecommendations != nil {
		recs, _ = json.Marshal(p.TodayRecommendations)
	}
	day := time.Now().Format("Mon")

	_, err := s.db.ExecContext(ctx, `INSERT INTO ai_insights
		(user_id, journal_id, insight_type, explanation, suggestions, patterns,
		 confidence_score, mood_triggers, recommended_activities, mood_improvement_tips,
		 positive_patterns, weekly_summary, trend_analysis, today_recommendations,
		 today_affirmation, prediction_accuracy, quick_tip, day, is_active)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, true)`,
		userID, journalID, insightType, explanation,
		jsonList(p.Suggestions), patterns, p.ConfidenceScore,
		jsonList(p.MoodTriggers), jsonList(p.ActivityTitles()), jsonList(p.MoodImprovementTips),
		jsonList(p.PositivePatterns), jsonRaw(p.WeeklySummary), jsonRaw(p.TrendAnalysis), jsonRaw(recs),
		p.TodayAffirmation, p.PredictionAccuracy, p.QuickTip, day)
	if err != nil {
		return fmt.Errorf("insert insight: %w", err)
	}
	return nil
}

const insightColumns = `id, user_id, journal_id, insight_type, explanation, suggestions, patterns,
	confidence_score, mood_triggers, recommended_activities, mood_improvement_tips,
	positive_patterns, weekly_summary, trend_analysis, today_recommendations,
	today_affirmation, prediction_accuracy, quick_tip, day, is_active, expires_at, created_at`

// Recent returns the user's most recent insight rows, newest first.
// ErrNotFound when the user has none.
func (s *InsightStore) Recent(ctx context.Context, userID string, limit int) ([]models.AIInsight, error) {
	if userID == "" {
		return nil, fmt.Errorf("%w: user_id is required", ErrValidation)
	}
	if limit <= 0 {
		limit = 7
	}
	rows := []models.AIInsight{}
	err := s.db.SelectContext(ctx, &rows,
		`SELECT `+insightColumns+` FROM ai_insights
		 WHERE user_id=$1 ORDER BY created_at DESC LIMIT $2`,
		userID, limit)
	if err != nil {
		return nil, fmt.Errorf("query insights: %w", err)
	}
	if len(rows) == 0 {
		return nil, ErrNotFound
	}
	return rows, nil
}

// LatestWeeklySummary returns the user's newest weekly AI summary row.
func (s *InsightStore) LatestWeeklySummary(ctx context.Context, userID string) (*models.WeeklySummary, error) {
	if userID == "" {
		return nil, fmt.Errorf("%w: user_id is required", ErrValidation)
	}
	var w models.WeeklySummary
	err := s.db.GetContext(ctx, &w,
		`SELECT id, user_id, week_start_date, week_end_date, summary_text, mood_graph_data, created_at
		 FROM weekly_ai_summaries
		 WHERE user_id=$1 ORDER BY week_start_date DESC LIMIT 1`,
		userID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("query weekly summary: %w", err)
	}
	return &w, nil
}
