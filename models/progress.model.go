package models

import "time"

// LectureCompletion is one completed lecture for a (user, course) pair. The
// unique index gives the set semantics: inserting a duplicate is a no-op, and
// concurrent inserts for different lectures cannot lose each other. Rows are
// never deleted, even if the course or user later disappears.
type LectureCompletion struct {
	ID        uint   `json:"-" gorm:"primaryKey"`
	UserID    string `json:"userId" gorm:"uniqueIndex:idx_user_course_lecture;not null"`
	CourseID  string `json:"courseId" gorm:"uniqueIndex:idx_user_course_lecture;index;not null"`
	LectureID string `json:"lectureId" gorm:"uniqueIndex:idx_user_course_lecture;not null"`

	CreatedAt time.Time `json:"completedAt"`
}

// CourseProgress is the read view assembled from LectureCompletion rows,
// shaped like the record the API exposes.
type CourseProgress struct {
	UserID           string   `json:"userId"`
	CourseID         string   `json:"courseId"`
	LectureCompleted []string `json:"lectureCompleted"`
}
