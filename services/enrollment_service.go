package services

import (
	"errors"

	"github.com/anjiri1684/tutor_marketplace/database"
	"github.com/anjiri1684/tutor_marketplace/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var (
	ErrCourseFull      = errors.New("course is at capacity")
	ErrAlreadyEnrolled = errors.New("student is already enrolled in this course")
)

// EnrollStudent appends a student to a course roster. The capacity check and
// the insert run under a row lock on the course, so two confirmations racing
// for the last seat cannot both succeed. The operation is keyed by the
// payment order id: replaying a confirmed order is a no-op success.
func EnrollStudent(courseID, studentID uuid.UUID, orderID string) error {
	return database.DB.Transaction(func(tx *gorm.DB) error {
		var existing models.Enrollment
		err := tx.Where("order_id = ?", orderID).First(&existing).Error
		if err == nil {
			return nil
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		var course models.Course
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&course, "id = ?", courseID).Error; err != nil {
			return err
		}

		var duplicate int64
		if err := tx.Model(&models.Enrollment{}).
			Where("course_id = ? AND student_id = ?", courseID, studentID).
			Count(&duplicate).Error; err != nil {
			return err
		}

		var enrolled int64
		if err := tx.Model(&models.Enrollment{}).
			Where("course_id = ?", courseID).
			Count(&enrolled).Error; err != nil {
			return err
		}

		if err := admitDecision(duplicate > 0, enrolled, course.Capacity); err != nil {
			return err
		}

		enrollment := models.Enrollment{
			CourseID:  courseID,
			StudentID: studentID,
			OrderID:   orderID,
		}
		if err := tx.Create(&enrollment).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return ErrAlreadyEnrolled
			}
			return err
		}
		return nil
	})
}

// admitDecision applies the roster rules to the state read under the course
// lock: a second seat for the same student loses to the existing one, and a
// full roster admits nobody.
func admitDecision(duplicate bool, enrolled int64, capacity int) error {
	if duplicate {
		return ErrAlreadyEnrolled
	}
	if enrolled >= int64(capacity) {
		return ErrCourseFull
	}
	return nil
}
