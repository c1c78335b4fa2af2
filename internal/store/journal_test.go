package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"innerlog/internal/mood"
)

func newMockDB(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock) {
	t.Helper()
	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = mockDB.Close() })
	return sqlx.NewDb(mockDB, "sqlmock"), mock
}

var journalCols = []string{
	"id", "user_id", "entry_text", "mood_rating", "mood_tag", "photo_url",
	"insights", "sentiment_label", "sentiment_score", "created_at",
}

func TestJournalCreateValidation(t *testing.T) {
	db, _ := newMockDB(t)
	s := NewJournalStore(db, zap.NewNop())

	cases := []CreateEntryParams{
		{EntryText: "text", MoodRating: mood.Green},
		{UserID: "u1", MoodRating: mood.Green},
		{UserID: "u1", EntryText: "text"},
	}
	for _, p := range cases {
		_, err := s.Create(context.Background(), p)
		assert.ErrorIs(t, err, ErrValidation)
	}
}

func TestJournalCreate(t *testing.T) {
	db, mock := newMockDB(t)
	s := NewJournalStore(db, zap.NewNop())

	created := time.Date(2025, 7, 20, 10, 0, 0, 0, time.UTC)
	mock.ExpectQuery(`INSERT INTO journal_entries`).
		WithArgs("u1", "Had a good day", mood.Green, nil, nil, nil, nil).
		WillReturnRows(sqlmock.NewRows(journalCols).
			AddRow("e1", "u1", "Had a good day", mood.Green, nil, nil, nil, nil, nil, created))

	e, err := s.Create(context.Background(), CreateEntryParams{
		UserID: "u1", EntryText: "Had a good day", MoodRating: mood.Green,
	})
	require.NoError(t, err)
	assert.Equal(t, "e1", e.ID)
	assert.Equal(t, mood.Green, e.MoodRating)
	assert.Nil(t, e.PhotoURL)
	assert.False(t, e.Insights.Valid)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestJournalListMoodFilter(t *testing.T) {
	db, mock := newMockDB(t)
	s := NewJournalStore(db, zap.NewNop())

	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM journal_entries WHERE user_id=\$1 AND mood_rating=\$2`).
		WithArgs("u1", mood.Green).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))
	mock.ExpectQuery(`SELECT .+ FROM journal_entries WHERE user_id=\$1 AND mood_rating=\$2 ORDER BY created_at DESC LIMIT \$3 OFFSET \$4`).
		WithArgs("u1", mood.Green, 50, 0).
		WillReturnRows(sqlmock.NewRows(journalCols).
			AddRow("e1", "u1", "good", mood.Green, nil, nil, nil, nil, nil, time.Now()))

	// the numeric rating is translated to its color before querying
	page, err := s.List(context.Background(), "u1", ListFilters{Mood: "4"}, Page{})
	require.NoError(t, err)
	require.Len(t, page.Entries, 1)
	assert.Equal(t, 1, page.Total)
	assert.False(t, page.HasMore)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestJournalListIgnoresInvalidMood(t *testing.T) {
	db, mock := newMockDB(t)
	s := NewJournalStore(db, zap.NewNop())

	// no mood_rating clause: an out-of-range value imposes no filter
	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM journal_entries WHERE user_id=\$1$`).
		WithArgs("u1").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
	mock.ExpectQuery(`SELECT .+ FROM journal_entries WHERE user_id=\$1 ORDER BY created_at DESC LIMIT \$2 OFFSET \$3`).
		WithArgs("u1", 50, 0).
		WillReturnRows(sqlmock.NewRows(journalCols))

	page, err := s.List(context.Background(), "u1", ListFilters{Mood: "9"}, Page{})
	require.NoError(t, err)
	assert.Empty(t, page.Entries)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestJournalListHasMore(t *testing.T) {
	db, mock := newMockDB(t)
	s := NewJournalStore(db, zap.NewNop())

	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM journal_entries`).
		WithArgs("u1").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(60))
	mock.ExpectQuery(`SELECT .+ FROM journal_entries`).
		WithArgs("u1", 50, 0).
		WillReturnRows(sqlmock.NewRows(journalCols))

	page, err := s.List(context.Background(), "u1", ListFilters{}, Page{})
	require.NoError(t, err)
	assert.Equal(t, 60, page.Total)
	assert.True(t, page.HasMore) // 0 + 50 < 60
}

func TestJournalListRequiresUser(t *testing.T) {
	db, _ := newMockDB(t)
	s := NewJournalStore(db, zap.NewNop())

	_, err := s.List(context.Background(), "", ListFilters{}, Page{})
	assert.ErrorIs(t, err, ErrValidation)
}

func TestAttachInsightsSwallowsFailure(t *testing.T) {
	db, mock := newMockDB(t)
	s := NewJournalStore(db, zap.NewNop())

	mock.ExpectExec(`UPDATE journal_entries SET insights=`).
		WillReturnError(sql.ErrConnDone)

	// best effort: the error is logged, never returned
	s.AttachInsights(context.Background(), "e1", json.RawMessage(`{"quick_tip":"x"}`), nil)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAttachInsights(t *testing.T) {
	db, mock := newMockDB(t)
	s := NewJournalStore(db, zap.NewNop())

	tag := mood.TagPositive
	mock.ExpectExec(`UPDATE journal_entries SET insights=\$2, mood_tag=COALESCE\(\$3, mood_tag\) WHERE id=\$1`).
		WithArgs("e1", sqlmock.AnyArg(), "positive").
		WillReturnResult(sqlmock.NewResult(0, 1))

	s.AttachInsights(context.Background(), "e1", json.RawMessage(`{"quick_tip":"x"}`), &tag)
	assert.NoError(t, mock.ExpectationsWereMet())
}
