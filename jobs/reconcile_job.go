package jobs

import (
	"errors"
	"log"
	"time"

	"github.com/anjiri1684/tutor_marketplace/database"
	"github.com/anjiri1684/tutor_marketplace/models"
	"github.com/anjiri1684/tutor_marketplace/services"
)

// ReconcileVerifiedOrders completes enrollments for payment orders that were
// verified but never made it onto a roster, which happens if the process
// dies between the two steps of a confirmation. Enrollment is idempotent on
// the order id, so re-driving it here is safe.
func ReconcileVerifiedOrders() {
	log.Println("Running job: ReconcileVerifiedOrders...")

	cutoff := time.Now().Add(-1 * time.Minute)

	var orphanedOrders []models.PaymentOrder
	err := database.DB.
		Where("status = ? AND updated_at < ?", models.OrderVerified, cutoff).
		Where("order_id NOT IN (?)", database.DB.Model(&models.Enrollment{}).Select("order_id")).
		Find(&orphanedOrders).Error
	if err != nil {
		log.Printf("Error scanning for orphaned verified orders: %v", err)
		return
	}

	if len(orphanedOrders) == 0 {
		return
	}

	for _, order := range orphanedOrders {
		err := services.EnrollStudent(order.CourseID, order.StudentID, order.OrderID)
		if err == nil {
			log.Printf("✅ Reconciled enrollment for verified order %s", order.OrderID)
			continue
		}
		if unfulfillable(err) {
			// The payment is real but the seat can never be granted, so
			// close the order to stop the scan from re-selecting it. Closed
			// orders need a manual refund follow-up.
			closeErr := database.DB.Model(&models.PaymentOrder{}).
				Where("id = ? AND status = ?", order.ID, models.OrderVerified).
				Update("status", models.OrderClosed).Error
			if closeErr != nil {
				log.Printf("🔥 Failed to close unfulfillable order %s: %v", order.OrderID, closeErr)
				continue
			}
			log.Printf("⚠️ Closed verified order %s without an enrollment: %v", order.OrderID, err)
			continue
		}
		log.Printf("🔥 Reconciliation failed for order %s: %v", order.OrderID, err)
	}
}

// unfulfillable reports whether the enrollment error is permanent for this
// order rather than transient. There is no unenroll operation, so a full
// course or an existing seat never clears on its own.
func unfulfillable(err error) bool {
	return errors.Is(err, services.ErrAlreadyEnrolled) || errors.Is(err, services.ErrCourseFull)
}
