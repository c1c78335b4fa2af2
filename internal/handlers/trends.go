package handlers

import (
	"net/http"
	"time"

	"go.uber.org/zap"

	"innerlog/internal/store"
	"innerlog/internal/trends"
)

type TrendsHandler struct {
	entries *store.JournalStore
	logger  *zap.Logger

	// now is swapped in tests to pin the month window
	now func() time.Time
}

func NewTrendsHandler(entries *store.JournalStore, logger *zap.Logger) *TrendsHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &TrendsHandler{entries: entries, logger: logger, now: time.Now}
}

// Weekly buckets the current month's entries into week-of-month aggregates.
func (h *TrendsHandler) Weekly(w http.ResponseWriter, r *http.Request) {
	userID := r.URL.Query().Get("userId")
	if userID == "" {
		writeError(w, http.StatusBadRequest, "userId is required")
		return
	}
	if !requireUserMatch(w, r, userID) {
		return
	}

	now := h.now()
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	monthEnd := monthStart.AddDate(0, 1, 0).Add(-time.Nanosecond)
	windowEnd := now
	if monthEnd.Before(windowEnd) {
		windowEnd = monthEnd
	}

	entries, err := h.entries.EntriesBetween(r.Context(), userID, monthStart, windowEnd)
	if err != nil {
		h.logger.Error("failed to load entries for trends", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "Failed to fetch weekly trends")
		return
	}

	if len(entries) == 0 {
		writeJSON(w, http.StatusOK, map[string]interface{}{
			"success": true,
			"trends":  []trends.WeekBucket{},
			"message": "No journal entries found for the current month",
		})
		return
	}

	buckets := trends.Aggregate(entries, now)
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"trends":  buckets,
		"dateRange": map[string]string{
			"from": monthStart.Format("2006-01-02"),
			"to":   windowEnd.Format("2006-01-02"),
		},
		"month": map[string]interface{}{
			"year":  now.Year(),
			"month": int(now.Month()),
			"name":  now.Format("January 2006"),
		},
	})
}
