package handlers

import (
	"github.com/anjiri1684/tutor_marketplace/database"
	"github.com/anjiri1684/tutor_marketplace/models"
	"github.com/anjiri1684/tutor_marketplace/notifications"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

func ListPendingVerifications(c *fiber.Ctx) error {
	var pendingProfiles []models.TeacherProfile
	if err := database.DB.Preload("User").
		Where("status = ?", models.VerificationPending).
		Find(&pendingProfiles).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Database error"})
	}
	return c.JSON(pendingProfiles)
}

// ReviewVerification records an admin decision on a pending submission.
// The status write and the audit event land in one transaction; the event
// row is the durable record of who decided, when and why.
func ReviewVerification(c *fiber.Ctx) error {
	type ReviewRequest struct {
		Status string `json:"status" validate:"required,oneof=verified rejected"`
		Reason string `json:"reason"`
	}

	var req ReviewRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	if req.Status == models.VerificationRejected && req.Reason == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "A reason is required when rejecting"})
	}

	teacherID, err := uuid.Parse(c.Params("teacherId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid teacher ID"})
	}
	adminID := authUserID(c)

	var profile models.TeacherProfile
	if err := database.DB.Preload("User").First(&profile, "user_id = ?", teacherID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Verification submission not found"})
	}

	if !models.CanReviewVerification(profile.Status) {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{
			"error": "Submission is " + profile.Status + ", only pending submissions can be reviewed",
		})
	}

	action := models.VerificationActionApproved
	if req.Status == models.VerificationRejected {
		action = models.VerificationActionRejected
	}

	err = database.DB.Transaction(func(tx *gorm.DB) error {
		profile.Status = req.Status
		if err := tx.Save(&profile).Error; err != nil {
			return err
		}

		event := models.VerificationEvent{
			TeacherID: teacherID,
			AdminID:   &adminID,
			Action:    action,
		}
		if req.Reason != "" {
			event.Reason = &req.Reason
		}
		return tx.Create(&event).Error
	})
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to record decision"})
	}

	switch req.Status {
	case models.VerificationVerified:
		go notifications.SendEmail(
			profile.User.FirstName,
			profile.User.Email,
			"Your Teacher Verification has been Approved!",
			"<h1>Congratulations!</h1><p>Your verification has been approved. You can now create courses and start teaching.</p>",
		)
	case models.VerificationRejected:
		go notifications.SendEmail(
			profile.User.FirstName,
			profile.User.Email,
			"Update on Your Teacher Verification",
			"<h1>Verification Update</h1><p>Your verification was not approved: "+req.Reason+"</p><p>You may correct your details and submit again.</p>",
		)
	}

	return c.JSON(fiber.Map{"message": "Verification decision recorded successfully"})
}

func ListVerificationEvents(c *fiber.Ctx) error {
	teacherID, err := uuid.Parse(c.Params("teacherId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid teacher ID"})
	}

	var events []models.VerificationEvent
	if err := database.DB.
		Where("teacher_id = ?", teacherID).
		Order("created_at asc").
		Find(&events).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Database error"})
	}
	return c.JSON(events)
}
