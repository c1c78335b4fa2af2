package db

import (
	"context"

	"github.com/jmoiron/sqlx"
)

func RunMigrations(db *sqlx.DB) error {
	schema := `
CREATE EXTENSION IF NOT EXISTS pgcrypto;

CREATE TABLE IF NOT EXISTS journal_entries (
    id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
    user_id TEXT NOT NULL,
    entry_text TEXT NOT NULL,
    mood_rating TEXT NOT NULL,
    mood_tag TEXT,
    photo_url TEXT[],
    insights JSONB,
    sentiment_label TEXT,
    sentiment_score DOUBLE PRECISION,
    created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE INDEX IF NOT EXISTS idx_journal_entries_user_created
    ON journal_entries (user_id, created_at DESC);

CREATE TABLE IF NOT EXISTS ai_insights (
    id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
    user_id TEXT NOT NULL,
    journal_id UUID,
    insight_type TEXT NOT NULL,
    explanation TEXT,
    suggestions JSONB,
    patterns TEXT,
    confidence_score DOUBLE PRECISION,
    mood_triggers JSONB,
    recommended_activities JSONB,
    mood_improvement_tips JSONB,
    positive_patterns JSONB,
    weekly_summary JSONB,
    trend_analysis JSONB,
    today_recommendations JSONB,
    today_affirmation TEXT,
    prediction_accuracy DOUBLE PRECISION,
    quick_tip TEXT,
    day TEXT,
    is_active BOOLEAN NOT NULL DEFAULT true,
    expires_at TIMESTAMPTZ,
    created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE INDEX IF NOT EXISTS idx_ai_insights_user_created
    ON ai_insights (user_id, created_at DESC);

CREATE TABLE IF NOT EXISTS weekly_ai_summaries (
    id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
    user_id TEXT NOT NULL,
    week_start_date DATE NOT NULL,
    week_end_date DATE,
    summary_text TEXT NOT NULL,
    mood_graph_data JSONB,
    created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE TABLE IF NOT EXISTS profiles (
    id TEXT PRIMARY KEY,
    first_name TEXT,
    birthdate DATE,
    sex TEXT,
    gender_identity TEXT,
    hobby_ids BIGINT[],
    activity_level INTEGER,
    onboarding_complete BOOLEAN NOT NULL DEFAULT false,
    created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE TABLE IF NOT EXISTS user_hobby (
    user_id TEXT NOT NULL,
    hobby_id INTEGER NOT NULL,
    created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
    PRIMARY KEY (user_id, hobby_id)
);
`
	_, err := db.ExecContext(context.Background(), schema)
	if err != nil {
		return err
	}

	alters := `
DO $$ BEGIN
    IF NOT EXISTS (
        SELECT 1 FROM information_schema.columns WHERE table_name='journal_entries' AND column_name='sentiment_label'
    ) THEN
        ALTER TABLE journal_entries ADD COLUMN sentiment_label TEXT;
    END IF;
    IF NOT EXISTS (
        SELECT 1 FROM information_schema.columns WHERE table_name='journal_entries' AND column_name='sentiment_score'
    ) THEN
        ALTER TABLE journal_entries ADD COLUMN sentiment_score DOUBLE PRECISION;
    END IF;
    IF NOT EXISTS (
        SELECT 1 FROM information_schema.columns WHERE table_name='ai_insights' AND column_name='expires_at'
    ) THEN
        ALTER TABLE ai_insights ADD COLUMN expires_at TIMESTAMPTZ;
    END IF;
END $$;`
	_, err = db.ExecContext(context.Background(), alters)
	return err
}
