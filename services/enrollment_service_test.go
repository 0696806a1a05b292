package services

import (
	"errors"
	"os"
	"testing"

	"github.com/anjiri1684/tutor_marketplace/configs"
	"github.com/anjiri1684/tutor_marketplace/database"
	"github.com/anjiri1684/tutor_marketplace/models"
	"github.com/google/uuid"
)

func TestAdmitDecision(t *testing.T) {
	tests := []struct {
		name      string
		duplicate bool
		enrolled  int64
		capacity  int
		want      error
	}{
		{"open seat", false, 3, 20, nil},
		{"last seat", false, 19, 20, nil},
		{"empty course", false, 0, 1, nil},
		{"full course", false, 20, 20, ErrCourseFull},
		{"over capacity", false, 25, 20, ErrCourseFull},
		{"second seat for same student", true, 3, 20, ErrAlreadyEnrolled},
		{"duplicate wins over full", true, 20, 20, ErrAlreadyEnrolled},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := admitDecision(tt.duplicate, tt.enrolled, tt.capacity)
			if !errors.Is(got, tt.want) {
				t.Errorf("admitDecision(%v, %d, %d) = %v, want %v", tt.duplicate, tt.enrolled, tt.capacity, got, tt.want)
			}
		})
	}
}

// The tests below run EnrollStudent against a real database, since the row
// lock and the unique indexes are part of the behavior under test.

func setupEnrollmentDB(t *testing.T) {
	t.Helper()
	if os.Getenv("INTEGRATION_TESTS") != "1" {
		t.Skip("set INTEGRATION_TESTS=1 to run")
	}
	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("set TEST_DATABASE_URL to run")
	}

	configs.C = &configs.Config{DatabaseURL: dsn, JWTSecret: "enrollment-test-secret"}
	database.ConnectDB()
	database.Migrate()
	err := database.DB.Exec("TRUNCATE users, teacher_profiles, verification_events, courses, class_sessions, enrollments, payment_orders CASCADE").Error
	if err != nil {
		t.Fatalf("failed to reset tables: %v", err)
	}
}

func seedUser(t *testing.T, role string) models.User {
	t.Helper()
	user := models.User{
		FirstName:    "Test",
		LastName:     role,
		Email:        uuid.NewString() + "@example.com",
		Password:     "not-a-real-hash",
		Role:         role,
		MailVerified: true,
	}
	if err := database.DB.Create(&user).Error; err != nil {
		t.Fatalf("failed to seed %s: %v", role, err)
	}
	return user
}

func seedCourse(t *testing.T, capacity int) models.Course {
	t.Helper()
	teacher := seedUser(t, models.RoleTeacher)
	course := models.Course{
		Name:      "Linear Algebra",
		Subject:   "Algebra",
		TeacherID: teacher.ID,
		Capacity:  capacity,
	}
	if err := database.DB.Create(&course).Error; err != nil {
		t.Fatalf("failed to seed course: %v", err)
	}
	return course
}

func rosterCount(t *testing.T, courseID uuid.UUID) int64 {
	t.Helper()
	var count int64
	if err := database.DB.Model(&models.Enrollment{}).Where("course_id = ?", courseID).Count(&count).Error; err != nil {
		t.Fatalf("failed to count enrollments: %v", err)
	}
	return count
}

func TestEnrollStudentReplaySameOrderIsNoOp(t *testing.T) {
	setupEnrollmentDB(t)
	course := seedCourse(t, 5)
	student := seedUser(t, models.RoleStudent)

	if err := EnrollStudent(course.ID, student.ID, "order_replay_1"); err != nil {
		t.Fatalf("first enrollment: %v", err)
	}
	if err := EnrollStudent(course.ID, student.ID, "order_replay_1"); err != nil {
		t.Fatalf("replayed enrollment: %v", err)
	}
	if got := rosterCount(t, course.ID); got != 1 {
		t.Errorf("roster size = %d, want 1", got)
	}
}

func TestEnrollStudentRejectsSecondSeatViaDifferentOrder(t *testing.T) {
	setupEnrollmentDB(t)
	course := seedCourse(t, 5)
	student := seedUser(t, models.RoleStudent)

	if err := EnrollStudent(course.ID, student.ID, "order_seat_a"); err != nil {
		t.Fatalf("first enrollment: %v", err)
	}
	err := EnrollStudent(course.ID, student.ID, "order_seat_b")
	if !errors.Is(err, ErrAlreadyEnrolled) {
		t.Fatalf("second order error = %v, want ErrAlreadyEnrolled", err)
	}
	if got := rosterCount(t, course.ID); got != 1 {
		t.Errorf("roster size = %d, want 1", got)
	}
}

func TestEnrollStudentRejectsWhenCourseIsFull(t *testing.T) {
	setupEnrollmentDB(t)
	course := seedCourse(t, 1)
	first := seedUser(t, models.RoleStudent)
	second := seedUser(t, models.RoleStudent)

	if err := EnrollStudent(course.ID, first.ID, "order_seat_1"); err != nil {
		t.Fatalf("filling the course: %v", err)
	}
	err := EnrollStudent(course.ID, second.ID, "order_seat_2")
	if !errors.Is(err, ErrCourseFull) {
		t.Fatalf("enrollment into full course error = %v, want ErrCourseFull", err)
	}
	if got := rosterCount(t, course.ID); got != 1 {
		t.Errorf("roster size = %d, want 1", got)
	}
}
