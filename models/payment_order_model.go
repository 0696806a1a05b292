package models

import (
	"time"

	"github.com/google/uuid"
)

const (
	OrderCreated  = "created"
	OrderVerified = "verified"
	OrderFailed   = "failed"

	// OrderClosed marks a verified order whose enrollment can never be
	// granted, because the student already holds a seat through another
	// order or the course filled up first. Closed orders are excluded from
	// reconciliation and need a manual refund follow-up.
	OrderClosed = "closed"
)

// PaymentOrder mirrors one gateway order. Amount is in the smallest currency
// unit. Status moves to verified only after the callback signature checks
// out; the enrollment step runs after that write is durable.
type PaymentOrder struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	OrderID   string    `gorm:"size:255;not null;unique" json:"order_id"`
	CourseID  uuid.UUID `gorm:"not null;index" json:"course_id"`
	StudentID uuid.UUID `gorm:"not null;index" json:"student_id"`
	Amount    int64     `gorm:"not null" json:"amount"`
	Currency  string    `gorm:"size:3;not null" json:"currency"`
	Status    string    `gorm:"size:20;not null;default:'created'" json:"status"`

	PaymentID  *string `gorm:"size:255;unique" json:"payment_id"`
	ReceiptURL *string `gorm:"size:512" json:"receipt_url"`

	Course  Course `gorm:"foreignkey:CourseID" json:"course"`
	Student User   `gorm:"foreignkey:StudentID" json:"-"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
