package routes

import (
	"github.com/anjiri1684/tutor_marketplace/handlers"
	"github.com/anjiri1684/tutor_marketplace/middleware"
	"github.com/gofiber/fiber/v2"
)

// PaymentRoutes is only mounted when the gateway credentials are configured.
func PaymentRoutes(app *fiber.App) {
	payment := app.Group("/api/payment", middleware.Protected(), middleware.StudentRequired())

	payment.Post("/order", handlers.CreateEnrollmentOrder)
	payment.Post("/confirm", handlers.ConfirmEnrollmentPayment)
}
