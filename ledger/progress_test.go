package ledger

import (
	"fmt"
	"lms/models"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMarkCompleted_RequiresEnrollment(t *testing.T) {
	db := setupTestDB(t)
	user := seedUser(t, db, "user_1")
	course := seedCourse(t, db, "edu_1", 100, 0)

	_, err := MarkCompleted(db, user.ID, course.ID, "lec_1")
	assert.ErrorIs(t, err, ErrNotEnrolled)

	// The rejected call must leave no progress behind.
	progress, err := GetProgress(db, user.ID, course.ID)
	require.NoError(t, err)
	assert.Nil(t, progress)
}

func TestMarkCompleted_Idempotent(t *testing.T) {
	db := setupTestDB(t)
	user := seedUser(t, db, "user_1")
	course := seedCourse(t, db, "edu_1", 100, 0)
	enrollOrFail(t, db, user.ID, course.ID)

	already, err := MarkCompleted(db, user.ID, course.ID, "lec_1")
	require.NoError(t, err)
	assert.False(t, already)

	for i := 0; i < 3; i++ {
		already, err = MarkCompleted(db, user.ID, course.ID, "lec_1")
		require.NoError(t, err)
		assert.True(t, already)
	}

	already, err = MarkCompleted(db, user.ID, course.ID, "lec_2")
	require.NoError(t, err)
	assert.False(t, already)

	// Set size equals the number of distinct lectures marked.
	progress, err := GetProgress(db, user.ID, course.ID)
	require.NoError(t, err)
	require.NotNil(t, progress)
	assert.Len(t, progress.LectureCompleted, 2)
	assert.ElementsMatch(t, []string{"lec_1", "lec_2"}, progress.LectureCompleted)
}

func TestMarkCompleted_ConcurrentDistinctLectures(t *testing.T) {
	db := setupTestDB(t)
	user := seedUser(t, db, "user_1")
	course := seedCourse(t, db, "edu_1", 100, 0)
	enrollOrFail(t, db, user.ID, course.ID)

	// Near-simultaneous completions of different lectures must not lose
	// each other to a read-modify-write race.
	const n = 8
	var wg sync.WaitGroup
	errs := make(chan error, n)

	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			if _, err := MarkCompleted(db, user.ID, course.ID, fmt.Sprintf("lec_%d", i)); err != nil {
				errs <- err
			}
		}(i)
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		require.NoError(t, err)
	}

	progress, err := GetProgress(db, user.ID, course.ID)
	require.NoError(t, err)
	require.NotNil(t, progress)
	assert.Len(t, progress.LectureCompleted, n)
}

func TestMarkCompleted_ConcurrentSameLecture(t *testing.T) {
	db := setupTestDB(t)
	user := seedUser(t, db, "user_1")
	course := seedCourse(t, db, "edu_1", 100, 0)
	enrollOrFail(t, db, user.ID, course.ID)

	const n = 8
	var wg sync.WaitGroup
	var freshCount int64
	errs := make(chan error, n)

	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			already, err := MarkCompleted(db, user.ID, course.ID, "lec_1")
			if err != nil {
				errs <- err
				return
			}
			if !already {
				atomic.AddInt64(&freshCount, 1)
			}
		}()
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		require.NoError(t, err)
	}

	// Exactly one call records the completion; the set holds one lecture.
	assert.Equal(t, int64(1), freshCount)

	progress, err := GetProgress(db, user.ID, course.ID)
	require.NoError(t, err)
	require.NotNil(t, progress)
	assert.Equal(t, []string{"lec_1"}, progress.LectureCompleted)
}

func TestGetProgress_NotStartedIsNotAnError(t *testing.T) {
	db := setupTestDB(t)
	user := seedUser(t, db, "user_1")
	course := seedCourse(t, db, "edu_1", 100, 0)
	enrollOrFail(t, db, user.ID, course.ID)

	progress, err := GetProgress(db, user.ID, course.ID)
	require.NoError(t, err)
	assert.Nil(t, progress)
}

func TestProgress_IndependentPerUserAndCourse(t *testing.T) {
	db := setupTestDB(t)
	alice := seedUser(t, db, "alice")
	bob := seedUser(t, db, "bob")
	course := seedCourse(t, db, "edu_1", 100, 0)
	enrollOrFail(t, db, alice.ID, course.ID)
	enrollOrFail(t, db, bob.ID, course.ID)

	_, err := MarkCompleted(db, alice.ID, course.ID, "lec_1")
	require.NoError(t, err)

	progress, err := GetProgress(db, bob.ID, course.ID)
	require.NoError(t, err)
	assert.Nil(t, progress)

	var count int64
	require.NoError(t, db.Model(&models.LectureCompletion{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}
