package models

import (
	"time"

	"github.com/google/uuid"
)

const (
	VerificationUnsubmitted = "unsubmitted"
	VerificationPending     = "pending"
	VerificationVerified    = "verified"
	VerificationRejected    = "rejected"
)

// TeacherProfile carries the supplementary data a teacher submits for
// verification. Document fields hold durable object-storage URLs; they are
// only written once every upload of a submission has succeeded.
type TeacherProfile struct {
	UserID     uuid.UUID `gorm:"primary_key" json:"user_id"`
	Phone      *string   `gorm:"size:20" json:"phone"`
	Address    *string   `gorm:"type:text" json:"address"`
	Experience *string   `gorm:"type:text" json:"experience"`

	SecondarySchool *string `gorm:"size:255" json:"secondary_school"`
	SecondaryMarks  *string `gorm:"size:20" json:"secondary_marks"`
	HigherSchool    *string `gorm:"size:255" json:"higher_school"`
	HigherMarks     *string `gorm:"size:20" json:"higher_marks"`
	UGCollege       *string `gorm:"size:255" json:"ug_college"`
	UGMarks         *string `gorm:"size:20" json:"ug_marks"`
	PGCollege       *string `gorm:"size:255" json:"pg_college"`
	PGMarks         *string `gorm:"size:20" json:"pg_marks"`

	AadhaarURL   *string `gorm:"size:512" json:"aadhaar_url"`
	SecondaryURL *string `gorm:"size:512" json:"secondary_url"`
	HigherURL    *string `gorm:"size:512" json:"higher_url"`
	UGURL        *string `gorm:"size:512" json:"ug_url"`
	PGURL        *string `gorm:"size:512" json:"pg_url"`

	Status string `gorm:"size:20;not null;default:'unsubmitted'" json:"status"`

	User User `gorm:"foreignkey:UserID" json:"user"`

	CreatedAt time.Time `json:"-"`
	UpdatedAt time.Time `json:"-"`
}

// CanSubmitVerification reports whether a teacher may (re)submit from the
// given status. Pending and verified profiles are locked against writes.
func CanSubmitVerification(status string) bool {
	return status == VerificationUnsubmitted || status == VerificationRejected
}

// CanReviewVerification reports whether an admin decision applies to the
// given status. Only pending submissions are reviewable.
func CanReviewVerification(status string) bool {
	return status == VerificationPending
}
