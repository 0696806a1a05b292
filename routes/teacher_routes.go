package routes

import (
	"github.com/anjiri1684/tutor_marketplace/handlers"
	"github.com/anjiri1684/tutor_marketplace/middleware"
	"github.com/gofiber/fiber/v2"
)

func TeacherRoutes(app *fiber.App) {
	teacher := app.Group("/api/teacher")

	teacher.Post("/signup", handlers.RegisterTeacher)
	teacher.Get("/verify", handlers.VerifyEmail)
	teacher.Post("/login", handlers.LoginAs("teacher"))
	teacher.Post("/refresh", handlers.RefreshSession)
	teacher.Post("/logout", middleware.Protected(), handlers.Logout)

	protected := teacher.Group("", middleware.Protected(), middleware.TeacherRequired())
	protected.Post("/verification", handlers.SubmitVerification)
	protected.Get("/verification", handlers.GetMyVerification)
	protected.Get("/courses", handlers.ListMyCourses)
}
