package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"innerlog/internal/insights"
	"innerlog/internal/store"
)

func newInsightsHandler(t *testing.T, gen insights.Generator) (*InsightsHandler, sqlmock.Sqlmock) {
	db, mock := newMockDB(t)
	logger := zap.NewNop()
	h := NewInsightsHandler(
		store.NewJournalStore(db, logger),
		store.NewInsightStore(db, logger),
		gen, logger)
	h.now = func() time.Time { return time.Date(2025, 7, 15, 12, 0, 0, 0, time.UTC) }
	return h, mock
}

func postJSON(path, body string) *http.Request {
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	return req
}

func TestGenerateWeeklySummary(t *testing.T) {
	raw := `{"weekly_summary":{"summary":"A steady week."},"quick_tip":"Keep journaling"}`
	h, mock := newInsightsHandler(t, stubGenerator{payload: stubPayload(t, raw)})

	rows := sqlmock.NewRows(journalCols).
		AddRow("e1", "u1", "monday entry", "Yellow", nil, nil, nil, nil, nil, time.Date(2025, 7, 9, 8, 0, 0, 0, time.UTC)).
		AddRow("e2", "u1", "friday entry", "Green", nil, nil, nil, nil, nil, time.Date(2025, 7, 13, 8, 0, 0, 0, time.UTC))
	mock.ExpectQuery(`SELECT .+ FROM journal_entries\s+WHERE user_id=\$1 AND created_at >= \$2`).
		WithArgs("u1", sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnRows(rows)
	mock.ExpectExec(`INSERT INTO ai_insights`).
		WillReturnResult(sqlmock.NewResult(0, 1))

	rec := httptest.NewRecorder()
	h.GenerateWeeklySummary(rec, postJSON("/weekly-summaries", `{"userId":"u1"}`))

	require.Equal(t, http.StatusOK, rec.Code)
	var resp struct {
		Success  bool            `json:"success"`
		Insights json.RawMessage `json:"insights"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	assert.JSONEq(t, raw, string(resp.Insights))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGenerateWeeklySummaryNoEntries(t *testing.T) {
	h, mock := newInsightsHandler(t, stubGenerator{})

	mock.ExpectQuery(`SELECT .+ FROM journal_entries`).
		WithArgs("u1", sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows(journalCols))

	rec := httptest.NewRecorder()
	h.GenerateWeeklySummary(rec, postJSON("/weekly-summaries", `{"userId":"u1"}`))

	assert.Equal(t, http.StatusNotFound, rec.Code)
	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "No journal entries found for the past week.", resp["error"])
}

func TestGenerateWeeklySummaryGenerationFailure(t *testing.T) {
	genErr := &insights.GenerationError{Diagnostic: "Traceback: model unavailable"}
	h, mock := newInsightsHandler(t, stubGenerator{err: genErr})

	mock.ExpectQuery(`SELECT .+ FROM journal_entries`).
		WithArgs("u1", sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows(journalCols).
			AddRow("e1", "u1", "entry", "Yellow", nil, nil, nil, nil, nil, time.Now()))

	rec := httptest.NewRecorder()
	h.GenerateWeeklySummary(rec, postJSON("/weekly-summaries", `{"userId":"u1"}`))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "AI insight generation failed", resp["error"])
	assert.Equal(t, "Traceback: model unavailable", resp["details"])
}

func TestGenerateWeeklySummaryMissingUser(t *testing.T) {
	h, _ := newInsightsHandler(t, stubGenerator{})

	rec := httptest.NewRecorder()
	h.GenerateWeeklySummary(rec, postJSON("/weekly-summaries", `{}`))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestLatestWeeklySummary(t *testing.T) {
	h, mock := newInsightsHandler(t, stubGenerator{})

	cols := []string{"id", "user_id", "week_start_date", "week_end_date", "summary_text", "mood_graph_data", "created_at"}
	weekStart := time.Date(2025, 7, 7, 0, 0, 0, 0, time.UTC)
	mock.ExpectQuery(`FROM weekly_ai_summaries`).
		WithArgs("u1").
		WillReturnRows(sqlmock.NewRows(cols).
			AddRow("s1", "u1", weekStart, nil, "A steady week.", nil, time.Now()))

	req := httptest.NewRequest(http.MethodGet, "/weekly_ai_summaries?userId=u1", nil)
	rec := httptest.NewRecorder()
	h.LatestWeeklySummary(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "A steady week.", resp["mood_summary"])
	assert.Equal(t, "2025-07-07", resp["week_start"])
}

func TestLatestWeeklySummaryNotFound(t *testing.T) {
	h, mock := newInsightsHandler(t, stubGenerator{})

	cols := []string{"id"}
	mock.ExpectQuery(`FROM weekly_ai_summaries`).
		WithArgs("u1").
		WillReturnRows(sqlmock.NewRows(cols))

	req := httptest.NewRequest(http.MethodGet, "/weekly_ai_summaries?userId=u1", nil)
	rec := httptest.NewRecorder()
	h.LatestWeeklySummary(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "No weekly AI summary found.", resp["error"])
}

func TestRecentInsightsNotFound(t *testing.T) {
	h, mock := newInsightsHandler(t, stubGenerator{})

	mock.ExpectQuery(`FROM ai_insights`).
		WithArgs("u1", 7).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	req := httptest.NewRequest(http.MethodGet, "/ai-insights?userId=u1", nil)
	rec := httptest.NewRecorder()
	h.Recent(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "No AI insight found", resp["error"])
}
