package ledger

import (
	"errors"
	"lms/models"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnsureUser_ExistingRecordSkipsProvider(t *testing.T) {
	db := setupTestDB(t)
	seedUser(t, db, "user_1")

	calls := 0
	fetch := func(userID string) (*Profile, error) {
		calls++
		return nil, errors.New("should not be called")
	}

	user, err := EnsureUser(db, "user_1", fetch)
	require.NoError(t, err)
	assert.Equal(t, "user_1", user.ID)
	assert.Equal(t, 0, calls)
}

func TestEnsureUser_MaterializesFromProvider(t *testing.T) {
	db := setupTestDB(t)

	calls := 0
	fetch := func(userID string) (*Profile, error) {
		calls++
		return &Profile{
			Name:     "Ada Lovelace",
			Email:    "ada@example.com",
			ImageURL: "https://img.example.com/ada.png",
			Role:     models.RoleEducator,
		}, nil
	}

	user, err := EnsureUser(db, "ext_ada", fetch)
	require.NoError(t, err)
	assert.Equal(t, "ext_ada", user.ID)
	assert.Equal(t, "Ada Lovelace", user.Name)
	assert.Equal(t, models.RoleEducator, user.Role)
	assert.Equal(t, 1, calls)

	// Second access hits the local cache only.
	_, err = EnsureUser(db, "ext_ada", fetch)
	require.NoError(t, err)
	assert.Equal(t, 1, calls)

	var count int64
	require.NoError(t, db.Model(&models.User{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestEnsureUser_ProviderOutage(t *testing.T) {
	db := setupTestDB(t)

	fetch := func(userID string) (*Profile, error) {
		return nil, errors.New("connection refused")
	}

	_, err := EnsureUser(db, "ext_unknown", fetch)
	assert.ErrorIs(t, err, ErrUpstream)

	// No half-created record on failure.
	var count int64
	require.NoError(t, db.Model(&models.User{}).Count(&count).Error)
	assert.Equal(t, int64(0), count)
}
