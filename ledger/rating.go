package ledger

import (
	"lms/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Rate records a user's rating for a course. Ratings are integers in [1,5]
// and require enrollment. A user rating the same course again overwrites the
// previous value; the upsert is keyed on (course_id, user_id) so concurrent
// ratings from one user can never produce two rows.
func Rate(db *gorm.DB, userID, courseID string, rating int) error {
	if rating < 1 || rating > 5 {
		return ErrInvalidRating
	}

	enrolled, err := IsEnrolled(db, userID, courseID)
	if err != nil {
		return err
	}
	if !enrolled {
		return ErrNotEnrolled
	}

	entry := models.Rating{
		CourseID: courseID,
		UserID:   userID,
		Rating:   rating,
	}

	return db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "course_id"}, {Name: "user_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"rating", "updated_at"}),
	}).Create(&entry).Error
}

// AverageRating is the floor of the mean over a course's ratings, 0 when
// there are none. Truncation, not rounding: displayed star counts depend on
// it.
func AverageRating(ratings []models.Rating) int {
	if len(ratings) == 0 {
		return 0
	}

	sum := 0
	for _, r := range ratings {
		sum += r.Rating
	}
	return sum / len(ratings)
}
