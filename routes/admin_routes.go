package routes

import (
	"github.com/anjiri1684/tutor_marketplace/handlers"
	"github.com/anjiri1684/tutor_marketplace/middleware"
	"github.com/gofiber/fiber/v2"
)

func AdminRoutes(app *fiber.App) {
	admin := app.Group("/api/admin")

	admin.Post("/login", handlers.LoginAs("admin"))
	admin.Post("/refresh", handlers.RefreshSession)
	admin.Post("/logout", middleware.Protected(), handlers.Logout)

	protected := admin.Group("", middleware.Protected(), middleware.AdminRequired())
	protected.Get("/verifications/pending", handlers.ListPendingVerifications)
	protected.Put("/verifications/:teacherId", handlers.ReviewVerification)
	protected.Get("/verifications/:teacherId/events", handlers.ListVerificationEvents)
}
