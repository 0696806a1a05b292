package routes

import (
	"github.com/anjiri1684/tutor_marketplace/handlers"
	"github.com/anjiri1684/tutor_marketplace/middleware"
	"github.com/gofiber/fiber/v2"
)

func StudentRoutes(app *fiber.App) {
	student := app.Group("/api/student")

	student.Post("/signup", handlers.RegisterStudent)
	student.Get("/verify", handlers.VerifyEmail)
	student.Post("/login", handlers.LoginAs("student"))
	student.Post("/refresh", handlers.RefreshSession)
	student.Post("/logout", middleware.Protected(), handlers.Logout)

	student.Get("/courses", middleware.Protected(), middleware.StudentRequired(), handlers.ListEnrolledCourses)
	student.Get("/orders", middleware.Protected(), middleware.StudentRequired(), handlers.ListMyOrders)
}
