package models

import (
	"time"

	"github.com/google/uuid"
)

const DefaultCourseCapacity = 20

type Course struct {
	ID          uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	Name        string    `gorm:"size:255;not null" json:"name"`
	Subject     string    `gorm:"size:100;not null;index" json:"subject"`
	Description string    `gorm:"type:text" json:"description"`
	TeacherID   uuid.UUID `gorm:"not null;index" json:"teacher_id"`
	Capacity    int       `gorm:"not null;default:20" json:"capacity"`

	Teacher       User           `gorm:"foreignkey:TeacherID" json:"teacher"`
	Enrollments   []Enrollment   `gorm:"foreignkey:CourseID" json:"enrollments,omitempty"`
	ClassSessions []ClassSession `gorm:"foreignkey:CourseID" json:"class_sessions,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
