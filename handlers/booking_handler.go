package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"

	"github.com/tutorlink/api/services"
)

type CreateBookingRequest struct {
	TutorID          string  `json:"tutor_id" validate:"required,uuid"`
	DateTime         string  `json:"date_time" validate:"required"`
	DurationMinutes  int     `json:"duration_minutes" validate:"required"`
	ReasonForSession string  `json:"reason_for_session" validate:"required"`
	Notes            *string `json:"notes,omitempty"`
}

func RequestSession(c *fiber.Ctx) error {
	token := c.Locals("user").(*jwt.Token)
	claims := token.Claims.(jwt.MapClaims)
	studentID, _ := uuid.Parse(claims["user_id"].(string))

	var req CreateBookingRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	tutorID, _ := uuid.Parse(req.TutorID)
	dateTime, err := time.Parse(time.RFC3339, req.DateTime)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "date_time must be RFC3339, e.g. 2026-09-01T14:00:00Z"})
	}

	booking, err := bookingSvc.RequestSession(services.SessionRequest{
		StudentID:        studentID,
		TutorID:          tutorID,
		DateTime:         dateTime,
		DurationMinutes:  req.DurationMinutes,
		ReasonForSession: req.ReasonForSession,
		Notes:            req.Notes,
	})
	if err != nil {
		return serviceError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(booking)
}

func ConfirmBooking(c *fiber.Ctx) error {
	token := c.Locals("user").(*jwt.Token)
	claims := token.Claims.(jwt.MapClaims)
	tutorID, _ := uuid.Parse(claims["user_id"].(string))

	bookingID, err := uuid.Parse(c.Params("bookingId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid booking ID"})
	}

	booking, err := bookingSvc.ConfirmBooking(bookingID, tutorID)
	if err != nil {
		return serviceError(c, err)
	}

	return c.JSON(booking)
}

func CancelBooking(c *fiber.Ctx) error {
	token := c.Locals("user").(*jwt.Token)
	claims := token.Claims.(jwt.MapClaims)
	userID, _ := uuid.Parse(claims["user_id"].(string))

	bookingID, err := uuid.Parse(c.Params("bookingId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid booking ID"})
	}

	booking, err := bookingSvc.CancelBooking(bookingID, userID)
	if err != nil {
		return serviceError(c, err)
	}

	return c.JSON(booking)
}

type MeetingLinkRequest struct {
	MeetingLink string `json:"meeting_link" validate:"required,url"`
}

func SetMeetingLink(c *fiber.Ctx) error {
	token := c.Locals("user").(*jwt.Token)
	claims := token.Claims.(jwt.MapClaims)
	tutorID, _ := uuid.Parse(claims["user_id"].(string))

	bookingID, err := uuid.Parse(c.Params("bookingId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid booking ID"})
	}

	var req MeetingLinkRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	booking, err := bookingSvc.AttachMeetingLink(bookingID, tutorID, req.MeetingLink)
	if err != nil {
		return serviceError(c, err)
	}

	return c.JSON(booking)
}

func GetMyBookings(c *fiber.Ctx) error {
	token := c.Locals("user").(*jwt.Token)
	claims := token.Claims.(jwt.MapClaims)
	userID, _ := uuid.Parse(claims["user_id"].(string))

	list, err := bookingSvc.ListBookingsForUser(userID)
	if err != nil {
		return serviceError(c, err)
	}

	return c.JSON(list)
}

func GetBooking(c *fiber.Ctx) error {
	token := c.Locals("user").(*jwt.Token)
	claims := token.Claims.(jwt.MapClaims)
	userID, _ := uuid.Parse(claims["user_id"].(string))

	bookingID, err := uuid.Parse(c.Params("bookingId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid booking ID"})
	}

	booking, err := bookingSvc.GetBooking(bookingID)
	if err != nil {
		return serviceError(c, err)
	}
	if !booking.IsParty(userID) {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "Not a party to this booking"})
	}

	return c.JSON(booking)
}
