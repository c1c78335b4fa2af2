package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"go.uber.org/zap"

	"innerlog/internal/models"
)

type ProfileStore struct {
	db     *sqlx.DB
	logger *zap.Logger
}

func NewProfileStore(db *sqlx.DB, logger *zap.Logger) *ProfileStore {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ProfileStore{db: db, logger: logger}
}

const profileColumns = `id, first_name, birthdate, sex, gender_identity, hobby_ids, activity_level, onboarding_complete, created_at`

// ProfileUpdate carries the onboarding fields; nil pointers are left
// untouched.
type ProfileUpdate struct {
	FirstName          *string
	Birthdate          *string // YYYY-MM-DD
	Sex                *string
	GenderIdentity     *string
	HobbyIDs           []int64
	ActivityLevel      *int
	OnboardingComplete *bool
}

// UpdateProfile applies the provided fields to the profile row keyed by the
// auth provider's user id and returns the row. ErrNotFound when no such
// profile exists.
func (s *ProfileStore) UpdateProfile(ctx context.Context, id string, upd ProfileUpdate) (*models.Profile, error) {
	if id == "" {
		return nil, fmt.Errorf("%w: id is required", ErrValidation)
	}

	setClauses := []string{}
	args := []interface{}{}
	add := func(column string, value interface{}) {
		args = append(args, value)
		setClauses = append(setClauses, fmt.Sprintf("%s=$%d", column, len(args)))
	}
	if upd.FirstName != nil {
		add("first_name", *upd.FirstName)
	}
	if upd.Birthdate != nil {
		add("birthdate", *upd.Birthdate)
	}
	if upd.Sex != nil {
		add("sex", *upd.Sex)
	}
	if upd.GenderIdentity != nil {
		add("gender_identity", *upd.GenderIdentity)
	}
	if upd.HobbyIDs != nil {
		add("hobby_ids", pq.Int64Array(upd.HobbyIDs))
	}
	if upd.ActivityLevel != nil {
		add("activity_level", *upd.ActivityLevel)
	}
	if upd.OnboardingComplete != nil {
		add("onboarding_complete", *upd.OnboardingComplete)
	}

	var p models.Profile
	var err error
	if len(setClauses) == 0 {
		err = s.db.GetContext(ctx, &p,
			`SELECT `+profileColumns+` FROM profiles WHERE id=$1`, id)
	} else {
		args = append(args, id)
		query := fmt.Sprintf("UPDATE profiles SET %s WHERE id=$%d RETURNING %s",
			joinClauses(setClauses), len(args), profileColumns)
		err = s.db.QueryRowxContext(ctx, query, args...).StructScan(&p)
	}
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("update profile: %w", err)
	}
	return &p, nil
}

func joinClauses(parts []string) string {
	out := parts[0]
	for i := 1; i < len(parts); i++ {
		out += ", " + parts[i]
	}
	return out
}

// UpsertHobbies records the user's hobby selections, ignoring pairs that
// already exist, and returns the affected rows.
func (s *ProfileStore) UpsertHobbies(ctx context.Context, userID string, hobbyIDs []int64) ([]models.UserHobby, error) {
	if userID == "" || len(hobbyIDs) == 0 {
		return nil, fmt.Errorf("%w: userId and hobbyIds are required", ErrValidation)
	}

	rows := []models.UserHobby{}
	err := s.db.SelectContext(ctx, &rows,
		`INSERT INTO user_hobby (user_id, hobby_id)
		 SELECT $1, unnest($2::int[])
		 ON CONFLICT (user_id, hobby_id) DO UPDATE SET user_id = EXCLUDED.user_id
		 RETURNING user_id, hobby_id, created_at`,
		userID, pq.Int64Array(hobbyIDs))
	if err != nil {
		return nil, fmt.Errorf("upsert hobbies: %w", err)
	}
	return rows, nil
}
