package ledger

import (
	"lms/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// MarkCompleted records that a user finished a lecture. Requires an
// enrollment; unauthorized calls fail without leaving any progress row. The
// completion set only grows: inserting an already-present lecture is reported
// as alreadyCompleted, not an error, and the ON CONFLICT insert keeps
// concurrent completions of different lectures from losing each other.
func MarkCompleted(db *gorm.DB, userID, courseID, lectureID string) (alreadyCompleted bool, err error) {
	enrolled, err := IsEnrolled(db, userID, courseID)
	if err != nil {
		return false, err
	}
	if !enrolled {
		return false, ErrNotEnrolled
	}

	completion := models.LectureCompletion{
		UserID:    userID,
		CourseID:  courseID,
		LectureID: lectureID,
	}

	result := db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}, {Name: "course_id"}, {Name: "lecture_id"}},
		DoNothing: true,
	}).Create(&completion)
	if result.Error != nil {
		return false, result.Error
	}

	return result.RowsAffected == 0, nil
}

// GetProgress returns the user's completion set for a course. A user who has
// not started yet gets nil, which is a valid state, not an error.
func GetProgress(db *gorm.DB, userID, courseID string) (*models.CourseProgress, error) {
	var completions []models.LectureCompletion
	err := db.Where("user_id = ? AND course_id = ?", userID, courseID).
		Order("created_at asc").
		Find(&completions).Error
	if err != nil {
		return nil, err
	}

	if len(completions) == 0 {
		return nil, nil
	}

	progress := &models.CourseProgress{
		UserID:           userID,
		CourseID:         courseID,
		LectureCompleted: make([]string, 0, len(completions)),
	}
	for _, c := range completions {
		progress.LectureCompleted = append(progress.LectureCompleted, c.LectureID)
	}

	return progress, nil
}
