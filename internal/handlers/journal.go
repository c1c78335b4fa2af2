package handlers

import (
	"errors"
	"mime/multipart"
	"net/http"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"innerlog/internal/insights"
	"innerlog/internal/models"
	"innerlog/internal/sentiment"
	"innerlog/internal/storage"
	"innerlog/internal/store"
)

const maxUploadBytes = 32 << 20

type JournalHandler struct {
	entries   *store.JournalStore
	insights  *store.InsightStore
	uploader  *storage.Uploader
	generator insights.Generator
	sentiment *sentiment.Client // nil when no analysis service is configured
	logger    *zap.Logger
}

func NewJournalHandler(entries *store.JournalStore, ins *store.InsightStore, uploader *storage.Uploader, gen insights.Generator, sent *sentiment.Client, logger *zap.Logger) *JournalHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &JournalHandler{
		entries:   entries,
		insights:  ins,
		uploader:  uploader,
		generator: gen,
		sentiment: sent,
		logger:    logger,
	}
}

// Create accepts a multipart form with userId, entry_text, mood_rating and
// zero or more photo files. Photos are uploaded first, then the entry is
// stored; insight generation runs afterwards and never fails the request.
func (h *JournalHandler) Create(w http.ResponseWriter, r *http.Request) {
	if !strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data") {
		writeError(w, http.StatusUnsupportedMediaType, "Content type must be multipart/form-data")
		return
	}
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		writeError(w, http.StatusBadRequest, "Could not parse form data")
		return
	}

	userID := r.FormValue("userId")
	entryText := r.FormValue("entry_text")
	moodRating := r.FormValue("mood_rating")
	if userID == "" || entryText == "" || moodRating == "" {
		writeError(w, http.StatusBadRequest, "userId, entry_text and mood_rating are required")
		return
	}
	if !requireUserMatch(w, r, userID) {
		return
	}

	var files []*multipart.FileHeader
	if r.MultipartForm != nil {
		files = r.MultipartForm.File["file"]
	}
	photoURLs := h.uploader.UploadAll(r.Context(), userID, files)

	params := store.CreateEntryParams{
		UserID:     userID,
		EntryText:  entryText,
		MoodRating: moodRating,
		PhotoURLs:  photoURLs,
	}

	// Sentiment is advisory. The entry saves without it.
	if h.sentiment != nil {
		if res, err := h.sentiment.Analyze(r.Context(), entryText); err != nil {
			h.logger.Warn("sentiment analysis failed", zap.Error(err))
		} else {
			tag := sentiment.TagFor(res.Sentiment)
			params.MoodTag = &tag
			params.SentimentLabel = &res.Sentiment
			params.SentimentScore = &res.Confidence
		}
	}

	entry, err := h.entries.Create(r.Context(), params)
	if err != nil {
		if errors.Is(err, store.ErrValidation) {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		h.logger.Error("failed to save journal entry", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "Failed to save journal entry")
		return
	}

	payload := h.generateInsights(r, entry)

	resp := map[string]interface{}{
		"success": true,
		"message": "Journal entry saved successfully",
		"entry":   entry,
	}
	if payload != nil {
		resp["insights"] = payload.Raw
	}
	writeJSON(w, http.StatusOK, resp)
}

// generateInsights runs the generator for a freshly saved entry and attaches
// the result to the row. Any failure is logged and the entry stands as saved.
func (h *JournalHandler) generateInsights(r *http.Request, entry *models.JournalEntry) *insights.Payload {
	payload, err := h.generator.Generate(r.Context(), entry.ID, entry.EntryText)
	if err != nil {
		h.logger.Warn("insight generation failed",
			zap.String("entry_id", entry.ID), zap.Error(err))
		return nil
	}

	h.entries.AttachInsights(r.Context(), entry.ID, payload.Raw, payload.MoodTag)
	if err := h.insights.InsertFromPayload(r.Context(), entry.UserID, entry.ID, store.TypeDaily, payload); err != nil {
		h.logger.Warn("failed to record insight", zap.String("entry_id", entry.ID), zap.Error(err))
	}

	entry.Insights.JSONText = []byte(payload.Raw)
	entry.Insights.Valid = true
	if payload.MoodTag != nil {
		entry.MoodTag = payload.MoodTag
	}
	return payload
}

// List returns a user's entries newest first, optionally filtered by mood
// rating, date window and a text search.
func (h *JournalHandler) List(w http.ResponseWriter, r *http.Request) {
	userID := r.URL.Query().Get("userId")
	if userID == "" {
		writeError(w, http.StatusBadRequest, "userId is required")
		return
	}
	if !requireUserMatch(w, r, userID) {
		return
	}

	q := r.URL.Query()
	filters := store.ListFilters{
		Mood:     q.Get("mood"),
		DateFrom: q.Get("dateFrom"),
		DateTo:   q.Get("dateTo"),
		Search:   q.Get("search"),
	}
	page := store.Page{}
	if v, err := strconv.Atoi(q.Get("limit")); err == nil {
		page.Limit = v
	}
	if v, err := strconv.Atoi(q.Get("offset")); err == nil {
		page.Offset = v
	}

	result, err := h.entries.List(r.Context(), userID, filters, page)
	if err != nil {
		h.logger.Error("failed to list journal entries", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "Failed to fetch journal entries")
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"entries": toEntryDTOs(result.Entries),
		"total":   result.Total,
		"hasMore": result.HasMore,
	})
}
