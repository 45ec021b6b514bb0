package ledger

import (
	"lms/models"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnroll_Idempotent(t *testing.T) {
	db := setupTestDB(t)
	user := seedUser(t, db, "user_1")
	course := seedCourse(t, db, "edu_1", 100, 0)

	created, err := Enroll(db, user.ID, course.ID)
	require.NoError(t, err)
	assert.True(t, created)

	created, err = Enroll(db, user.ID, course.ID)
	require.NoError(t, err)
	assert.False(t, created)

	var count int64
	require.NoError(t, db.Model(&models.Enrollment{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestEnroll_ConcurrentDuplicatesConverge(t *testing.T) {
	db := setupTestDB(t)
	user := seedUser(t, db, "user_1")
	course := seedCourse(t, db, "edu_1", 100, 0)

	const n = 8
	var wg sync.WaitGroup
	var createdCount int64
	errs := make(chan error, n)

	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			created, err := Enroll(db, user.ID, course.ID)
			if err != nil {
				errs <- err
				return
			}
			if created {
				atomic.AddInt64(&createdCount, 1)
			}
		}()
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		require.NoError(t, err)
	}

	// Exactly one call wins the insert; all converge on one row.
	assert.Equal(t, int64(1), createdCount)

	var count int64
	require.NoError(t, db.Model(&models.Enrollment{}).
		Where("user_id = ? AND course_id = ?", user.ID, course.ID).
		Count(&count).Error)
	assert.Equal(t, int64(1), count)

	// Both views agree after the race.
	enrolled, err := IsEnrolled(db, user.ID, course.ID)
	require.NoError(t, err)
	assert.True(t, enrolled)

	courses, err := EnrolledCourses(db, user.ID)
	require.NoError(t, err)
	require.Len(t, courses, 1)
	assert.Equal(t, course.ID, courses[0].ID)

	students, err := EnrolledStudents(db, course.ID)
	require.NoError(t, err)
	require.Len(t, students, 1)
	assert.Equal(t, user.ID, students[0].ID)
}

func TestEnrollment_BidirectionalConsistency(t *testing.T) {
	db := setupTestDB(t)
	alice := seedUser(t, db, "alice")
	bob := seedUser(t, db, "bob")
	courseA := seedCourse(t, db, "edu_1", 100, 0)
	courseB := seedCourse(t, db, "edu_1", 50, 0)

	enrollOrFail(t, db, alice.ID, courseA.ID)
	enrollOrFail(t, db, alice.ID, courseB.ID)
	enrollOrFail(t, db, bob.ID, courseA.ID)

	// Both views derive from the same rows, so they must agree with
	// IsEnrolled in every direction.
	for _, tc := range []struct {
		userID   string
		courseID string
		want     bool
	}{
		{alice.ID, courseA.ID, true},
		{alice.ID, courseB.ID, true},
		{bob.ID, courseA.ID, true},
		{bob.ID, courseB.ID, false},
	} {
		enrolled, err := IsEnrolled(db, tc.userID, tc.courseID)
		require.NoError(t, err)
		assert.Equal(t, tc.want, enrolled)

		courses, err := EnrolledCourses(db, tc.userID)
		require.NoError(t, err)
		inCourses := false
		for _, c := range courses {
			if c.ID == tc.courseID {
				inCourses = true
			}
		}
		assert.Equal(t, tc.want, inCourses)

		students, err := EnrolledStudents(db, tc.courseID)
		require.NoError(t, err)
		inStudents := false
		for _, u := range students {
			if u.ID == tc.userID {
				inStudents = true
			}
		}
		assert.Equal(t, tc.want, inStudents)
	}
}

func TestEnrolledCourses_PreservesEnrollmentOrder(t *testing.T) {
	db := setupTestDB(t)
	user := seedUser(t, db, "user_1")
	first := seedCourse(t, db, "edu_1", 10, 0)
	second := seedCourse(t, db, "edu_1", 20, 0)

	enrollOrFail(t, db, user.ID, first.ID)
	enrollOrFail(t, db, user.ID, second.ID)

	courses, err := EnrolledCourses(db, user.ID)
	require.NoError(t, err)
	require.Len(t, courses, 2)
	assert.Equal(t, first.ID, courses[0].ID)
	assert.Equal(t, second.ID, courses[1].ID)
}

func TestEnrolledCourses_EmptyForNewUser(t *testing.T) {
	db := setupTestDB(t)
	user := seedUser(t, db, "user_1")

	courses, err := EnrolledCourses(db, user.ID)
	require.NoError(t, err)
	assert.Empty(t, courses)
}
