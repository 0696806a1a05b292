package handlers

import (
	"errors"
	"time"

	"github.com/anjiri1684/tutor_marketplace/database"
	"github.com/anjiri1684/tutor_marketplace/models"
	ws "github.com/anjiri1684/tutor_marketplace/websocket"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type AddClassRequest struct {
	Title       string `json:"title" validate:"required,min=3"`
	StartsAt    string `json:"starts_at" validate:"required"`
	MeetingLink string `json:"meeting_link" validate:"omitempty,url"`
}

// parseClassStart accepts an RFC3339 timestamp with an explicit offset and
// normalizes it to UTC for storage.
func parseClassStart(value string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return time.Time{}, errors.New("starts_at must be an RFC3339 timestamp with a UTC offset")
	}
	return t.UTC(), nil
}

func ownedCourse(c *fiber.Ctx, teacherID uuid.UUID) (*models.Course, error) {
	courseID, err := uuid.Parse(c.Params("courseId"))
	if err != nil {
		return nil, c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid course ID"})
	}

	var course models.Course
	if err := database.DB.First(&course, "id = ?", courseID).Error; err != nil {
		return nil, c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Course not found"})
	}
	if course.TeacherID != teacherID {
		return nil, c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "This is not your course to manage"})
	}
	return &course, nil
}

func AddClass(c *fiber.Ctx) error {
	teacherID := authUserID(c)

	course, errResp := ownedCourse(c, teacherID)
	if course == nil {
		return errResp
	}

	var req AddClassRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	startsAt, err := parseClassStart(req.StartsAt)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	session := models.ClassSession{
		CourseID: course.ID,
		Title:    req.Title,
		StartsAt: startsAt,
	}
	if req.MeetingLink != "" {
		session.MeetingLink = &req.MeetingLink
	}

	if err := database.DB.Create(&session).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to schedule class"})
	}

	return c.Status(fiber.StatusCreated).JSON(session)
}

// UpdateClassStatus applies a teacher-controlled transition. Moving a class
// to live pushes an announcement to enrolled students over the websocket hub.
func UpdateClassStatus(c *fiber.Ctx) error {
	teacherID := authUserID(c)

	course, errResp := ownedCourse(c, teacherID)
	if course == nil {
		return errResp
	}

	classID, err := uuid.Parse(c.Params("classId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid class ID"})
	}

	type StatusRequest struct {
		Status string `json:"status" validate:"required,oneof=live completed cancelled"`
	}
	var req StatusRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	var session models.ClassSession
	if err := database.DB.First(&session, "id = ? AND course_id = ?", classID, course.ID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Class not found"})
	}

	if !models.ClassTransitionAllowed(session.Status, req.Status) {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{
			"error": "Cannot move a " + session.Status + " class to " + req.Status,
		})
	}

	session.Status = req.Status
	if err := database.DB.Save(&session).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to update class status"})
	}

	if session.Status == models.ClassLive {
		ws.Broadcast <- &ws.ClassAnnouncement{
			CourseID:    course.ID,
			CourseName:  course.Name,
			ClassID:     session.ID,
			Title:       session.Title,
			MeetingLink: session.MeetingLink,
			StartsAt:    session.StartsAt,
		}
	}

	return c.JSON(session)
}
