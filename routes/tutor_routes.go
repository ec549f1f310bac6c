package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/tutorlink/api/handlers"
	"github.com/tutorlink/api/middleware"
)

func TutorRoutes(app *fiber.App) {
	api := app.Group("/api/v1")

	tutors := api.Group("/tutors")
	tutors.Get("", handlers.ListTutors)
	tutors.Get("/:tutorId", handlers.GetTutorProfile)
	tutors.Get("/:tutorId/slots", handlers.GetTutorSlots)

	match := api.Group("/tutors", middleware.Protected(), middleware.StudentRequired())
	match.Get("/:tutorId/compatibility", handlers.GetCompatibilityScore)

	tutor := api.Group("/tutor", middleware.Protected(), middleware.TutorRequired())
	tutor.Post("/suggest-tags", handlers.SuggestTags)
	tutor.Post("/students", handlers.AssignStudent)
	tutor.Get("/students", handlers.ListMyStudents)
}
