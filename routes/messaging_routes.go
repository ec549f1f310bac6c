package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/tutorlink/api/handlers"
	"github.com/tutorlink/api/middleware"
)

func MessagingRoutes(app *fiber.App) {
	api := app.Group("/api/v1")

	messages := api.Group("/messages", middleware.Protected())
	messages.Get("/conversations", handlers.GetConversations)
	messages.Get("/:chatId", handlers.GetThreadMessages)
	messages.Post("", handlers.SendMessage)
}
