package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/tutorlink/api/ai"
	"github.com/tutorlink/api/services"
)

var (
	bookingSvc      *services.BookingService
	chatSvc         *services.ChatService
	notificationSvc *services.NotificationService
	availability    *services.AvailabilityCalculator
	aiClient        *ai.Client
)

// Init wires the domain services. Must run after database.ConnectDB.
func Init(db *gorm.DB, client *ai.Client) {
	bookingSvc = services.NewBookingService(db)
	chatSvc = services.NewChatService(db)
	notificationSvc = services.NewNotificationService(db)
	availability = services.NewAvailabilityCalculator(nil)
	aiClient = client
}

func serviceError(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	switch {
	case errors.Is(err, services.ErrValidation):
		code = fiber.StatusBadRequest
	case errors.Is(err, services.ErrNotFound):
		code = fiber.StatusNotFound
	case errors.Is(err, services.ErrUnauthorized):
		code = fiber.StatusForbidden
	case errors.Is(err, services.ErrInvalidTransition):
		code = fiber.StatusConflict
	}
	return c.Status(code).JSON(fiber.Map{"error": err.Error()})
}
