package models

import "time"

// Course represents a published learning course
type Course struct {
	ID          string  `json:"_id" gorm:"primaryKey"`
	EducatorID  string  `json:"educator" gorm:"index;not null"`
	Title       string  `json:"courseTitle"`
	Description string  `json:"courseDescription"`
	Price       float64 `json:"coursePrice"`
	Discount    float64 `json:"discount" gorm:"default:0"` // percentage, 0-100
	Thumbnail   string  `json:"courseThumbnail"`
	IsPublished bool    `json:"isPublished" gorm:"default:false"`

	Chapters []Chapter `json:"courseContent" gorm:"foreignKey:CourseID;constraint:OnDelete:CASCADE"`
	Ratings  []Rating  `json:"courseRatings" gorm:"foreignKey:CourseID;constraint:OnDelete:CASCADE"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Chapter is an ordered section of a course. ChapterOrder is unique and
// contiguous within the course after every edit.
type Chapter struct {
	ID           string `json:"chapterId" gorm:"primaryKey"`
	CourseID     string `json:"-" gorm:"index;not null"`
	ChapterOrder int    `json:"chapterOrder"`
	Title        string `json:"chapterTitle"`

	Lectures []Lecture `json:"chapterContent" gorm:"foreignKey:ChapterID;constraint:OnDelete:CASCADE"`
}

// Lecture is a single playable unit. Duration is whole minutes.
type Lecture struct {
	ID            string `json:"lectureId" gorm:"primaryKey"`
	ChapterID     string `json:"-" gorm:"index;not null"`
	LectureOrder  int    `json:"lectureOrder"`
	Title         string `json:"lectureTitle"`
	Duration      int    `json:"lectureDuration"` // minutes, non-negative
	LectureURL    string `json:"lectureUrl"`
	IsPreviewFree bool   `json:"isPreviewFree"`
}

// Rating holds one score per (course, user) pair, last write wins.
type Rating struct {
	ID       uint   `json:"-" gorm:"primaryKey"`
	CourseID string `json:"-" gorm:"uniqueIndex:idx_course_user_rating;not null"`
	UserID   string `json:"userId" gorm:"uniqueIndex:idx_course_user_rating;not null"`
	Rating   int    `json:"rating"`

	UpdatedAt time.Time `json:"-"`
}
