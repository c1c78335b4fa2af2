package store

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

var profileCols = []string{
	"id", "first_name", "birthdate", "sex", "gender_identity",
	"hobby_ids", "activity_level", "onboarding_complete", "created_at",
}

func strPtr(s string) *string { return &s }
func boolPtr(b bool) *bool    { return &b }

func TestUpdateProfile(t *testing.T) {
	db, mock := newMockDB(t)
	s := NewProfileStore(db, zap.NewNop())

	mock.ExpectQuery(`UPDATE profiles SET first_name=\$1, onboarding_complete=\$2 WHERE id=\$3 RETURNING`).
		WithArgs("Ada", true, "u1").
		WillReturnRows(sqlmock.NewRows(profileCols).
			AddRow("u1", "Ada", nil, nil, nil, nil, nil, true, time.Now()))

	p, err := s.UpdateProfile(context.Background(), "u1", ProfileUpdate{
		FirstName:          strPtr("Ada"),
		OnboardingComplete: boolPtr(true),
	})
	require.NoError(t, err)
	require.NotNil(t, p.FirstName)
	assert.Equal(t, "Ada", *p.FirstName)
	assert.True(t, p.OnboardingComplete)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateProfileNotFound(t *testing.T) {
	db, mock := newMockDB(t)
	s := NewProfileStore(db, zap.NewNop())

	mock.ExpectQuery(`UPDATE profiles SET first_name=\$1 WHERE id=\$2 RETURNING`).
		WithArgs("Ada", "missing").
		WillReturnRows(sqlmock.NewRows(profileCols))

	_, err := s.UpdateProfile(context.Background(), "missing", ProfileUpdate{FirstName: strPtr("Ada")})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestUpdateProfileNoFieldsReadsRow(t *testing.T) {
	db, mock := newMockDB(t)
	s := NewProfileStore(db, zap.NewNop())

	mock.ExpectQuery(`SELECT .+ FROM profiles WHERE id=\$1`).
		WithArgs("u1").
		WillReturnRows(sqlmock.NewRows(profileCols).
			AddRow("u1", nil, nil, nil, nil, nil, nil, false, time.Now()))

	p, err := s.UpdateProfile(context.Background(), "u1", ProfileUpdate{})
	require.NoError(t, err)
	assert.Equal(t, "u1", p.ID)
}

func TestUpdateProfileValidation(t *testing.T) {
	db, _ := newMockDB(t)
	s := NewProfileStore(db, zap.NewNop())

	_, err := s.UpdateProfile(context.Background(), "", ProfileUpdate{})
	assert.ErrorIs(t, err, ErrValidation)
}

func TestUpsertHobbies(t *testing.T) {
	db, mock := newMockDB(t)
	s := NewProfileStore(db, zap.NewNop())

	cols := []string{"user_id", "hobby_id", "created_at"}
	mock.ExpectQuery(`INSERT INTO user_hobby`).
		WithArgs("u1", sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows(cols).
			AddRow("u1", 3, time.Now()).
			AddRow("u1", 8, time.Now()))

	rows, err := s.UpsertHobbies(context.Background(), "u1", []int64{3, 8})
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, 3, rows[0].HobbyID)
	assert.Equal(t, 8, rows[1].HobbyID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpsertHobbiesValidation(t *testing.T) {
	db, _ := newMockDB(t)
	s := NewProfileStore(db, zap.NewNop())

	_, err := s.UpsertHobbies(context.Background(), "", []int64{1})
	assert.ErrorIs(t, err, ErrValidation)
	_, err = s.UpsertHobbies(context.Background(), "u1", nil)
	assert.ErrorIs(t, err, ErrValidation)
}
