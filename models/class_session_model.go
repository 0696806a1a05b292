package models

import (
	"time"

	"github.com/google/uuid"
)

const (
	ClassScheduled = "scheduled"
	ClassLive      = "live"
	ClassCompleted = "completed"
	ClassCancelled = "cancelled"
)

// ClassSession is a single scheduled class of a course. StartsAt is stored
// in UTC; clients send RFC3339 timestamps with an explicit offset.
type ClassSession struct {
	ID          uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	CourseID    uuid.UUID `gorm:"not null;index" json:"course_id"`
	Title       string    `gorm:"size:255;not null" json:"title"`
	StartsAt    time.Time `gorm:"not null" json:"starts_at"`
	MeetingLink *string   `gorm:"size:512" json:"meeting_link"`
	Status      string    `gorm:"size:20;not null;default:'scheduled'" json:"status"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ClassTransitionAllowed reports whether the owning teacher may move a class
// from one status to another. Completed and cancelled are terminal.
func ClassTransitionAllowed(from, to string) bool {
	switch from {
	case ClassScheduled:
		return to == ClassLive || to == ClassCancelled
	case ClassLive:
		return to == ClassCompleted || to == ClassCancelled
	default:
		return false
	}
}
