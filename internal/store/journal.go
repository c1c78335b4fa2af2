package store

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/jmoiron/sqlx/types"
	"github.com/lib/pq"
	"go.uber.org/zap"

	"innerlog/internal/models"
	"innerlog/internal/mood"
)

const journalColumns = `id, user_id, entry_text, mood_rating, mood_tag, photo_url, insights, sentiment_label, sentiment_score, created_at`

type JournalStore struct {
	db     *sqlx.DB
	logger *zap.Logger
}

func NewJournalStore(db *sqlx.DB, logger *zap.Logger) *JournalStore {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &JournalStore{db: db, logger: logger}
}

type CreateEntryParams struct {
	UserID         string
	EntryText      string
	MoodRating     string
	PhotoURLs      []string
	MoodTag        *string
	SentimentLabel *string
	SentimentScore *float64
}

// Create inserts one journal entry and returns the stored row. The insert is
// a single statement, so a failure leaves nothing behind for readers to see.
func (s *JournalStore) Create(ctx context.Context, p CreateEntryParams) (*models.JournalEntry, error) {
	if p.UserID == "" || p.EntryText == "" || p.MoodRating == "" {
		return nil, fmt.Errorf("%w: user_id, entry_text and mood_rating are required", ErrValidation)
	}

	// photo_url stays NULL, not an empty array, when nothing was uploaded
	var photos interface{}
	if len(p.PhotoURLs) > 0 {
		photos = pq.StringArray(p.PhotoURLs)
	}

	var e models.JournalEntry
	err := s.db.QueryRowxContext(ctx, `INSERT INTO journal_entries
		(user_id, entry_text, mood_rating, mood_tag, photo_url, sentiment_label, sentiment_score)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING `+journalColumns,
		p.UserID, p.EntryText, p.MoodRating, p.MoodTag, photos, p.SentimentLabel, p.SentimentScore,
	).StructScan(&e)
	if err != nil {
		return nil, fmt.Errorf("insert journal entry: %w", err)
	}
	return &e, nil
}

type ListFilters struct {
	Mood     string // numeric rating "1".."5"; anything else applies no filter
	DateFrom string // inclusive created_at lower bound
	DateTo   string // inclusive created_at upper bound
	Search   string // case-insensitive substring over entry_text
}

type Page struct {
	Limit  int
	Offset int
}

type EntryPage struct {
	Entries []models.JournalEntry
	Total   int
	HasMore bool
}

// List returns the user's entries newest first, filtered and paginated.
func (s *JournalStore) List(ctx context.Context, userID string, f ListFilters, page Page) (*EntryPage, error) {
	if userID == "" {
		return nil, fmt.Errorf("%w: user_id is required", ErrValidation)
	}
	if page.Limit <= 0 {
		page.Limit = 50
	}
	if page.Offset < 0 {
		page.Offset = 0
	}

	where := "WHERE user_id=$1"
	args := []interface{}{userID}

	if f.Mood != "" {
		// out-of-range ratings impose no filter at all
		if color, ok := mood.ColorFromRating(f.Mood); ok {
			args = append(args, color)
			where += fmt.Sprintf(" AND mood_rating=$%d", len(args))
		}
	}
	if f.DateFrom != "" {
		args = append(args, f.DateFrom)
		where += fmt.Sprintf(" AND created_at >= $%d", len(args))
	}
	if f.DateTo != "" {
		args = append(args, f.DateTo)
		where += fmt.Sprintf(" AND created_at <= $%d", len(args))
	}
	if f.Search != "" {
		args = append(args, "%"+f.Search+"%")
		where += fmt.Sprintf(" AND entry_text ILIKE $%d", len(args))
	}

	var total int
	if err := s.db.GetContext(ctx, &total, "SELECT COUNT(*) FROM journal_entries "+where, args...); err != nil {
		return nil, fmt.Errorf("count journal entries: %w", err)
	}

	args = append(args, page.Limit, page.Offset)
	query := fmt.Sprintf("SELECT %s FROM journal_entries %s ORDER BY created_at DESC LIMIT $%d OFFSET $%d",
		journalColumns, where, len(args)-1, len(args))

	entries := []models.JournalEntry{}
	if err := s.db.SelectContext(ctx, &entries, query, args...); err != nil {
		return nil, fmt.Errorf("list journal entries: %w", err)
	}

	return &EntryPage{
		Entries: entries,
		Total:   total,
		HasMore: page.Offset+page.Limit < total,
	}, nil
}

// EntriesBetween returns the user's entries inside the inclusive window,
// oldest first. Both the trend chart and the weekly consolidation read
// through this.
func (s *JournalStore) EntriesBetween(ctx context.Context, userID string, from, to time.Time) ([]models.JournalEntry, error) {
	if userID == "" {
		return nil, fmt.Errorf("%w: user_id is required", ErrValidation)
	}
	entries := []models.JournalEntry{}
	err := s.db.SelectContext(ctx, &entries,
		`SELECT `+journalColumns+` FROM journal_entries
		 WHERE user_id=$1 AND created_at >= $2 AND created_at <= $3
		 ORDER BY created_at ASC`,
		userID, from, to)
	if err != nil {
		return nil, fmt.Errorf("query journal window: %w", err)
	}
	return entries, nil
}

// AttachInsights stores a generated payload on an already committed entry
// and fills mood_tag if the payload carries one. The entry is final at this
// point, so a failure is only logged.
func (s *JournalStore) AttachInsights(ctx context.Context, entryID string, payload json.RawMessage, moodTag *string) {
	_, err := s.db.ExecContext(ctx,
		`UPDATE journal_entries SET insights=$2, mood_tag=COALESCE($3, mood_tag) WHERE id=$1`,
		entryID, types.JSONText(payload), moodTag)
	if err != nil {
		s.logger.Warn("could not attach insights",
			zap.String("entry_id", entryID), zap.Error(err))
	}
}
