package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"go.uber.org/zap"

	"innerlog/internal/insights"
	"innerlog/internal/store"
)

type InsightsHandler struct {
	entries   *store.JournalStore
	insights  *store.InsightStore
	generator insights.Generator
	logger    *zap.Logger

	now func() time.Time
}

func NewInsightsHandler(entries *store.JournalStore, ins *store.InsightStore, gen insights.Generator, logger *zap.Logger) *InsightsHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &InsightsHandler{entries: entries, insights: ins, generator: gen, logger: logger, now: time.Now}
}

type weeklySummaryRequest struct {
	UserID string `json:"userId"`
}

// GenerateWeeklySummary consolidates the past seven days of entries into a
// single document, runs the generator over it and stores the result as a
// weekly summary insight.
func (h *InsightsHandler) GenerateWeeklySummary(w http.ResponseWriter, r *http.Request) {
	var req weeklySummaryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.UserID == "" {
		writeError(w, http.StatusBadRequest, "userId is required")
		return
	}
	if !requireUserMatch(w, r, req.UserID) {
		return
	}

	now := h.now()
	entries, err := h.entries.EntriesBetween(r.Context(), req.UserID, now.AddDate(0, 0, -7), now)
	if err != nil {
		h.logger.Error("failed to load entries for weekly summary", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "Failed to fetch journal entries")
		return
	}
	if len(entries) == 0 {
		writeError(w, http.StatusNotFound, "No journal entries found for the past week.")
		return
	}

	anchorID, consolidated := insights.ConsolidateWeekly(entries)
	payload, err := h.generator.Generate(r.Context(), anchorID, consolidated)
	if err != nil {
		var genErr *insights.GenerationError
		if errors.As(err, &genErr) {
			h.logger.Error("weekly summary generation failed",
				zap.String("user_id", req.UserID), zap.Error(err))
			writeErrorDetails(w, http.StatusInternalServerError,
				"AI insight generation failed", genErr.Diagnostic)
			return
		}
		h.logger.Error("weekly summary generation failed", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "AI insight generation failed")
		return
	}

	if err := h.insights.InsertFromPayload(r.Context(), req.UserID, anchorID, store.TypeWeeklySummary, payload); err != nil {
		h.logger.Warn("failed to record weekly summary", zap.Error(err))
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success":  true,
		"insights": payload.Raw,
	})
}

// LatestWeeklySummary returns the most recent stored weekly summary.
func (h *InsightsHandler) LatestWeeklySummary(w http.ResponseWriter, r *http.Request) {
	userID := r.URL.Query().Get("userId")
	if userID == "" {
		writeError(w, http.StatusBadRequest, "userId is required")
		return
	}
	if !requireUserMatch(w, r, userID) {
		return
	}

	summary, err := h.insights.LatestWeeklySummary(r.Context(), userID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "No weekly AI summary found.")
			return
		}
		h.logger.Error("failed to load weekly summary", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "Failed to fetch weekly summary")
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success":      true,
		"mood_summary": summary.SummaryText,
		"week_start":   summary.WeekStartDate.Format("2006-01-02"),
	})
}

// Recent returns the user's latest generated insights, newest first.
func (h *InsightsHandler) Recent(w http.ResponseWriter, r *http.Request) {
	userID := r.URL.Query().Get("userId")
	if userID == "" {
		writeError(w, http.StatusBadRequest, "userId is required")
		return
	}
	if !requireUserMatch(w, r, userID) {
		return
	}

	rows, err := h.insights.Recent(r.Context(), userID, 7)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "No AI insight found")
			return
		}
		h.logger.Error("failed to load insights", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "Failed to fetch insights")
		return
	}

	writeJSON(w, http.StatusOK, rows)
}
