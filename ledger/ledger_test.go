package ledger

import (
	"lms/models"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)

	// One connection: every pooled connection to ":memory:" would otherwise
	// see its own empty database.
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	err = db.AutoMigrate(
		&models.User{},
		&models.Course{},
		&models.Chapter{},
		&models.Lecture{},
		&models.Rating{},
		&models.Enrollment{},
		&models.Purchase{},
		&models.LectureCompletion{},
	)
	require.NoError(t, err)

	return db
}

func seedUser(t *testing.T, db *gorm.DB, id string) models.User {
	t.Helper()

	user := models.User{
		ID:    id,
		Name:  "Test User " + id,
		Email: id + "@example.com",
		Role:  models.RoleStudent,
	}
	require.NoError(t, db.Create(&user).Error)
	return user
}

func seedCourse(t *testing.T, db *gorm.DB, educatorID string, price, discount float64) models.Course {
	t.Helper()

	course := models.Course{
		ID:          uuid.NewString(),
		EducatorID:  educatorID,
		Title:       "Course " + uuid.NewString()[:8],
		Price:       price,
		Discount:    discount,
		IsPublished: true,
	}
	require.NoError(t, db.Create(&course).Error)
	return course
}

func enrollOrFail(t *testing.T, db *gorm.DB, userID, courseID string) {
	t.Helper()

	created, err := Enroll(db, userID, courseID)
	require.NoError(t, err)
	require.True(t, created)
}
