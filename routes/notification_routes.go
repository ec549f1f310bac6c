package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/tutorlink/api/handlers"
	"github.com/tutorlink/api/middleware"
)

func NotificationRoutes(app *fiber.App) {
	api := app.Group("/api/v1")

	notification := api.Group("/notifications", middleware.Protected())
	notification.Get("/me", handlers.GetMyNotifications)
	notification.Put("/read-all", handlers.MarkAllNotificationsRead)
	notification.Put("/:notificationId/read", handlers.MarkNotificationRead)
	notification.Delete("/:notificationId", handlers.DeleteNotification)
}
