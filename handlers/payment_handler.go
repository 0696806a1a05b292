package handlers

import (
	"errors"
	"fmt"
	"log"

	"github.com/anjiri1684/tutor_marketplace/configs"
	"github.com/anjiri1684/tutor_marketplace/database"
	"github.com/anjiri1684/tutor_marketplace/models"
	"github.com/anjiri1684/tutor_marketplace/notifications"
	"github.com/anjiri1684/tutor_marketplace/payments"
	"github.com/anjiri1684/tutor_marketplace/services"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type CreateOrderRequest struct {
	CourseID string `json:"course_id" validate:"required,uuid"`
	Amount   int64  `json:"amount" validate:"required,gt=0"`
	Currency string `json:"currency" validate:"omitempty,iso4217"`
}

// CreateEnrollmentOrder registers a pending order with the gateway and
// persists it locally. The capacity check here is a best-effort precheck;
// the authoritative one runs inside the enrollment transaction.
func CreateEnrollmentOrder(c *fiber.Ctx) error {
	studentID := authUserID(c)

	var req CreateOrderRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	courseID, _ := uuid.Parse(req.CourseID)

	currency := req.Currency
	if currency == "" {
		currency = "INR"
	}

	var course models.Course
	if err := database.DB.First(&course, "id = ?", courseID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Course not found"})
	}

	var alreadyEnrolled int64
	database.DB.Model(&models.Enrollment{}).
		Where("course_id = ? AND student_id = ?", courseID, studentID).
		Count(&alreadyEnrolled)
	if alreadyEnrolled > 0 {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": "You are already enrolled in this course"})
	}

	var enrolledCount int64
	database.DB.Model(&models.Enrollment{}).Where("course_id = ?", courseID).Count(&enrolledCount)
	if enrolledCount >= int64(course.Capacity) {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": "Course is at capacity"})
	}

	receipt := fmt.Sprintf("enroll_%s_%s", courseID, studentID)
	gatewayOrder, err := payments.CreateGatewayOrder(req.Amount, currency, receipt)
	if err != nil {
		log.Printf("🔥 Gateway order creation failed: %v", err)
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{"error": "Failed to create payment order"})
	}

	order := models.PaymentOrder{
		OrderID:   gatewayOrder.ID,
		CourseID:  courseID,
		StudentID: studentID,
		Amount:    req.Amount,
		Currency:  currency,
		Status:    models.OrderCreated,
	}
	if err := database.DB.Create(&order).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to record payment order"})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"order_id": order.OrderID,
		"amount":   order.Amount,
		"currency": order.Currency,
		"key_id":   configs.C.GatewayKeyID,
	})
}

type ConfirmPaymentRequest struct {
	OrderID   string `json:"order_id" validate:"required"`
	PaymentID string `json:"payment_id" validate:"required"`
	Signature string `json:"signature" validate:"required"`
}

// ConfirmEnrollmentPayment verifies the gateway callback signature and, on
// success, enrolls the student. The verified status is persisted before the
// enrollment step so a crash in between is recoverable, and the enrollment
// itself is idempotent on the order id: retrying the identical confirmation
// can never double-enroll.
func ConfirmEnrollmentPayment(c *fiber.Ctx) error {
	studentID := authUserID(c)

	var req ConfirmPaymentRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	var order models.PaymentOrder
	if err := database.DB.First(&order, "order_id = ?", req.OrderID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Payment order not found"})
	}
	if order.StudentID != studentID {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "This payment order does not belong to you"})
	}

	if !payments.VerifyPaymentSignature(req.OrderID, req.PaymentID, req.Signature, configs.C.GatewayKeySecret) {
		if order.Status == models.OrderCreated {
			order.Status = models.OrderFailed
			database.DB.Save(&order)
		}
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Payment signature mismatch"})
	}

	// Claim the confirmation with a conditional update: only the request
	// that actually flips the status counts as the first one, so two racing
	// confirmations of the same order cannot both send the receipt and the
	// email.
	claim := database.DB.Model(&models.PaymentOrder{}).
		Where("id = ? AND status IN ?", order.ID, []string{models.OrderCreated, models.OrderFailed}).
		Updates(map[string]interface{}{"status": models.OrderVerified, "payment_id": req.PaymentID})
	if claim.Error != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to record payment verification"})
	}
	firstConfirmation := claim.RowsAffected > 0

	if err := services.EnrollStudent(order.CourseID, order.StudentID, order.OrderID); err != nil {
		switch {
		case errors.Is(err, services.ErrCourseFull):
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": "Course is at capacity"})
		case errors.Is(err, services.ErrAlreadyEnrolled):
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": "You are already enrolled in this course"})
		default:
			// The order stays verified; the reconciliation job retries the
			// enrollment, so the payment cannot be lost.
			log.Printf("🔥 Enrollment failed for verified order %s: %v", order.OrderID, err)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Payment verified but enrollment is still processing. Please retry shortly."})
		}
	}

	if firstConfirmation {
		go services.GenerateEnrollmentReceipt(order.ID.String())
		go func() {
			var student models.User
			var course models.Course
			if database.DB.First(&student, "id = ?", order.StudentID).Error == nil &&
				database.DB.First(&course, "id = ?", order.CourseID).Error == nil {
				notifications.SendEmail(
					student.FirstName,
					student.Email,
					"Your Enrollment is Confirmed!",
					"<h1>Enrollment Confirmed</h1><p>Your payment was successful and you are now enrolled in "+course.Name+".</p>",
				)
			}
		}()
	}

	return c.JSON(fiber.Map{"status": models.OrderVerified, "message": "Payment verified and enrollment confirmed"})
}

func ListMyOrders(c *fiber.Ctx) error {
	studentID := authUserID(c)

	var orders []models.PaymentOrder
	if err := database.DB.Preload("Course").
		Where("student_id = ?", studentID).
		Order("created_at desc").
		Find(&orders).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to retrieve orders"})
	}
	return c.JSON(orders)
}
