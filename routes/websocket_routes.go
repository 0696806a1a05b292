package routes

import (
	"github.com/anjiri1684/tutor_marketplace/handlers"
	"github.com/gofiber/fiber/v2"
)

func WebsocketRoutes(app *fiber.App) {
	app.Use("/api/ws", handlers.WebsocketUpgrade)
	app.Get("/api/ws", handlers.ClassFeed())
}
