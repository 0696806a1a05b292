package routes

import (
	"github.com/anjiri1684/tutor_marketplace/handlers"
	"github.com/anjiri1684/tutor_marketplace/middleware"
	"github.com/gofiber/fiber/v2"
)

func CourseRoutes(app *fiber.App) {
	course := app.Group("/api/course")

	course.Get("/search", handlers.SearchCourses)
	course.Get("/:courseId", handlers.GetCourse)

	owner := course.Group("", middleware.Protected(), middleware.TeacherRequired())
	owner.Post("", handlers.CreateCourse)
	owner.Post("/:courseId/classes", handlers.AddClass)
	owner.Put("/:courseId/classes/:classId/status", handlers.UpdateClassStatus)
}
