package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/tutorlink/api/handlers"
	"github.com/tutorlink/api/middleware"
)

func BookingRoutes(app *fiber.App) {
	api := app.Group("/api/v1")

	booking := api.Group("/bookings", middleware.Protected())
	booking.Get("/me", handlers.GetMyBookings)
	booking.Get("/:bookingId", handlers.GetBooking)
	booking.Post("/:bookingId/cancel", handlers.CancelBooking)

	studentBooking := api.Group("/bookings", middleware.Protected(), middleware.StudentRequired())
	studentBooking.Post("", handlers.RequestSession)

	tutorBooking := api.Group("/tutor/bookings", middleware.Protected(), middleware.TutorRequired())
	tutorBooking.Post("/:bookingId/confirm", handlers.ConfirmBooking)
	tutorBooking.Put("/:bookingId/meeting-link", handlers.SetMeetingLink)
}
