package models

import (
	"time"

	"github.com/google/uuid"
)

const (
	VerificationActionSubmitted = "submitted"
	VerificationActionApproved  = "approved"
	VerificationActionRejected  = "rejected"
)

// VerificationEvent is an append-only audit record of verification
// submissions and admin decisions. Rows are never updated or deleted.
type VerificationEvent struct {
	ID        uuid.UUID  `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	TeacherID uuid.UUID  `gorm:"not null;index" json:"teacher_id"`
	AdminID   *uuid.UUID `json:"admin_id"`
	Action    string     `gorm:"size:20;not null" json:"action"`
	Reason    *string    `gorm:"type:text" json:"reason"`
	CreatedAt time.Time  `json:"created_at"`
}
