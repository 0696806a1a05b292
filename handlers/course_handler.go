package handlers

import (
	"github.com/anjiri1684/tutor_marketplace/database"
	"github.com/anjiri1684/tutor_marketplace/models"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type CreateCourseRequest struct {
	Name        string `json:"name" validate:"required,min=3"`
	Subject     string `json:"subject" validate:"required,min=2"`
	Description string `json:"description"`
	Capacity    int    `json:"capacity" validate:"omitempty,gt=0,lte=100"`
}

// CreateCourse is gated on the verification workflow: only a teacher whose
// profile has been approved may own courses.
func CreateCourse(c *fiber.Ctx) error {
	teacherID := authUserID(c)

	var profile models.TeacherProfile
	if err := database.DB.First(&profile, "user_id = ?", teacherID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Teacher profile not found"})
	}
	if profile.Status != models.VerificationVerified {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "Only verified teachers can create courses"})
	}

	var req CreateCourseRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	capacity := req.Capacity
	if capacity == 0 {
		capacity = models.DefaultCourseCapacity
	}

	course := models.Course{
		Name:        req.Name,
		Subject:     req.Subject,
		Description: req.Description,
		TeacherID:   teacherID,
		Capacity:    capacity,
	}
	if err := database.DB.Create(&course).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to create course"})
	}

	return c.Status(fiber.StatusCreated).JSON(course)
}

// SearchCourses matches the subject exactly, ignoring case. The full
// matching set is returned; there is no pagination.
func SearchCourses(c *fiber.Ctx) error {
	subject := c.Query("subject")
	if subject == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "A subject query parameter is required"})
	}

	var courses []models.Course
	if err := database.DB.Preload("Teacher").
		Where("LOWER(subject) = LOWER(?)", subject).
		Find(&courses).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to search courses"})
	}

	return c.JSON(courses)
}

func GetCourse(c *fiber.Ctx) error {
	courseID, err := uuid.Parse(c.Params("courseId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid course ID"})
	}

	var course models.Course
	if err := database.DB.Preload("Teacher").Preload("ClassSessions").
		First(&course, "id = ?", courseID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Course not found"})
	}

	var enrolledCount int64
	database.DB.Model(&models.Enrollment{}).Where("course_id = ?", courseID).Count(&enrolledCount)

	return c.JSON(fiber.Map{
		"course":         course,
		"enrolled_count": enrolledCount,
		"seats_left":     int64(course.Capacity) - enrolledCount,
	})
}

func ListMyCourses(c *fiber.Ctx) error {
	teacherID := authUserID(c)

	var courses []models.Course
	if err := database.DB.
		Preload("ClassSessions", func(db *gorm.DB) *gorm.DB { return db.Order("starts_at asc") }).
		Where("teacher_id = ?", teacherID).
		Find(&courses).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to retrieve courses"})
	}

	return c.JSON(courses)
}

func ListEnrolledCourses(c *fiber.Ctx) error {
	studentID := authUserID(c)

	var courses []models.Course
	if err := database.DB.Preload("Teacher").
		Preload("ClassSessions", func(db *gorm.DB) *gorm.DB { return db.Order("starts_at asc") }).
		Joins("JOIN enrollments ON enrollments.course_id = courses.id").
		Where("enrollments.student_id = ?", studentID).
		Find(&courses).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to retrieve courses"})
	}

	return c.JSON(courses)
}
