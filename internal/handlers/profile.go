package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"go.uber.org/zap"

	"innerlog/internal/store"
)

type ProfileHandler struct {
	profiles *store.ProfileStore
	logger   *zap.Logger
}

func NewProfileHandler(profiles *store.ProfileStore, logger *zap.Logger) *ProfileHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ProfileHandler{profiles: profiles, logger: logger}
}

type profileRequest struct {
	ID                 string  `json:"id"`
	FirstName          *string `json:"first_name"`
	Birthdate          *string `json:"birthdate"` // YYYY-MM-DD
	Sex                *string `json:"sex"`
	GenderIdentity     *string `json:"gender_identity"`
	HobbyIDs           []int64 `json:"hobby_ids"`
	ActivityLevel      *int    `json:"activity_level"`
	OnboardingComplete *bool   `json:"onboarding_complete"`
}

// Update applies onboarding fields to an existing profile row.
func (h *ProfileHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req profileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.ID == "" {
		writeError(w, http.StatusBadRequest, "id is required")
		return
	}
	if !requireUserMatch(w, r, req.ID) {
		return
	}

	profile, err := h.profiles.UpdateProfile(r.Context(), req.ID, store.ProfileUpdate{
		FirstName:          req.FirstName,
		Birthdate:          req.Birthdate,
		Sex:                req.Sex,
		GenderIdentity:     req.GenderIdentity,
		HobbyIDs:           req.HobbyIDs,
		ActivityLevel:      req.ActivityLevel,
		OnboardingComplete: req.OnboardingComplete,
	})
	if err != nil {
		switch {
		case errors.Is(err, store.ErrNotFound):
			writeError(w, http.StatusNotFound, "Profile not found")
		case errors.Is(err, store.ErrValidation):
			writeError(w, http.StatusBadRequest, err.Error())
		default:
			h.logger.Error("failed to update profile", zap.Error(err))
			writeError(w, http.StatusInternalServerError, "Failed to update profile")
		}
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"data":    toProfileDTO(*profile),
	})
}

type hobbiesRequest struct {
	UserID   string  `json:"userId"`
	HobbyIDs []int64 `json:"hobbyIds"`
}

// SaveHobbies records the user's hobby selections.
func (h *ProfileHandler) SaveHobbies(w http.ResponseWriter, r *http.Request) {
	var req hobbiesRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if !requireUserMatch(w, r, req.UserID) {
		return
	}

	rows, err := h.profiles.UpsertHobbies(r.Context(), req.UserID, req.HobbyIDs)
	if err != nil {
		if errors.Is(err, store.ErrValidation) {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		h.logger.Error("failed to save hobbies", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "Failed to save user hobbies")
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"message": "User hobbies saved successfully",
		"data":    rows,
	})
}
