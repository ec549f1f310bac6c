package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/tutorlink/api/handlers"
	"github.com/tutorlink/api/middleware"
)

func ProfileRoutes(app *fiber.App) {
	api := app.Group("/api/v1")

	profile := api.Group("/profile", middleware.Protected())
	profile.Get("/me", handlers.GetMyProfile)
	profile.Put("/me", handlers.UpdateMyProfile)

	tutorProfile := api.Group("/profile", middleware.Protected(), middleware.TutorRequired())
	tutorProfile.Put("/me/tutor", handlers.UpdateMyTutorProfile)
}
