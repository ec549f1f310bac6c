package handlers

import (
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/tutorlink/api/database"
	"github.com/tutorlink/api/models"
)

// ListTutors returns every tutor profile, optionally filtered by a
// ?subject= query against the tutor's expertise tags.
func ListTutors(c *fiber.Ctx) error {
	var profiles []models.TutorProfile
	err := database.DB.Preload("User").Find(&profiles).Error
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to fetch tutors"})
	}

	subject := strings.TrimSpace(c.Query("subject"))
	if subject == "" {
		return c.JSON(profiles)
	}

	filtered := make([]models.TutorProfile, 0, len(profiles))
	for _, p := range profiles {
		for _, tag := range p.SubjectMatterExpertise {
			if strings.EqualFold(tag, subject) {
				filtered = append(filtered, p)
				break
			}
		}
	}
	return c.JSON(filtered)
}

func GetTutorProfile(c *fiber.Ctx) error {
	tutorID := c.Params("tutorId")

	var profile models.TutorProfile
	err := database.DB.Preload("User").First(&profile, "user_id = ?", tutorID).Error
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Tutor not found"})
	}

	return c.JSON(profile)
}

// GetTutorSlots returns the bookable time slots for a tutor on a given
// ?date=YYYY-MM-DD (defaults to today).
func GetTutorSlots(c *fiber.Ctx) error {
	tutorID := c.Params("tutorId")

	var profile models.TutorProfile
	err := database.DB.First(&profile, "user_id = ?", tutorID).Error
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Tutor not found"})
	}

	date := time.Now()
	if raw := c.Query("date"); raw != "" {
		parsed, err := time.Parse("2006-01-02", raw)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "date must be YYYY-MM-DD"})
		}
		date = parsed
	}

	return c.JSON(fiber.Map{
		"tutor_id": profile.UserID,
		"date":     date.Format("2006-01-02"),
		"slots":    availability.AvailableSlots(date),
	})
}
