package models

import (
	"time"

	"github.com/google/uuid"
)

// Enrollment is one student's seat in a course. OrderID ties the row to the
// payment order that paid for it, which makes the enrollment step idempotent:
// replaying a confirmed order can never produce a second row.
type Enrollment struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	CourseID  uuid.UUID `gorm:"not null;uniqueIndex:idx_course_student" json:"course_id"`
	StudentID uuid.UUID `gorm:"not null;uniqueIndex:idx_course_student" json:"student_id"`
	OrderID   string    `gorm:"size:255;not null;unique" json:"order_id"`

	Student User `gorm:"foreignkey:StudentID" json:"student"`

	CreatedAt time.Time `json:"created_at"`
}
