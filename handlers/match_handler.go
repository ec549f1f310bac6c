package handlers

import (
	"errors"
	"log"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"

	"github.com/tutorlink/api/ai"
	"github.com/tutorlink/api/database"
	"github.com/tutorlink/api/models"
)

// GetCompatibilityScore estimates how well the calling student matches a
// tutor. The model service is best-effort: when it is down the endpoint
// answers with available=false instead of an error, so profile pages render
// without a score rather than breaking.
func GetCompatibilityScore(c *fiber.Ctx) error {
	token := c.Locals("user").(*jwt.Token)
	claims := token.Claims.(jwt.MapClaims)
	studentID := claims["user_id"].(string)

	tutorID := c.Params("tutorId")

	var student models.User
	if err := database.DB.First(&student, "id = ? AND role = ?", studentID, models.RoleStudent).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Student not found"})
	}

	var profile models.TutorProfile
	if err := database.DB.First(&profile, "user_id = ?", tutorID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Tutor not found"})
	}

	req := ai.CompatibilityScoreRequest{
		StudentSubjectInterests:     strings.Join(student.SubjectInterests, ", "),
		TutorSubjectMatterExpertise: strings.Join(profile.SubjectMatterExpertise, ", "),
	}
	if student.LearningPreferences != nil {
		req.StudentLearningPreferences = *student.LearningPreferences
	}
	if profile.TeachingStyle != nil {
		req.TutorTeachingStyle = *profile.TeachingStyle
	}

	score, err := aiClient.GenerateCompatibilityScore(c.Context(), student.ID.String(), tutorID, req)
	if err != nil {
		if errors.Is(err, ai.ErrUnavailable) {
			log.Printf("⚠️ Compatibility score unavailable for %s/%s: %v", studentID, tutorID, err)
			return c.JSON(fiber.Map{"available": false})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to generate compatibility score"})
	}

	return c.JSON(fiber.Map{
		"available":           true,
		"compatibility_score": score.CompatibilityScore,
		"justification":       score.Justification,
	})
}

type SuggestTagsRequest struct {
	ExpertiseDescription string `json:"expertise_description,omitempty"`
}

// SuggestTags proposes subject tags for the calling tutor's profile, based on
// the supplied description or the one already saved. Suggestions outside the
// platform's subject list are dropped.
func SuggestTags(c *fiber.Ctx) error {
	token := c.Locals("user").(*jwt.Token)
	claims := token.Claims.(jwt.MapClaims)
	tutorID := claims["user_id"].(string)

	var req SuggestTagsRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}

	description := strings.TrimSpace(req.ExpertiseDescription)
	if description == "" {
		var profile models.TutorProfile
		if err := database.DB.First(&profile, "user_id = ?", tutorID).Error; err != nil {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Tutor profile not found"})
		}
		if profile.DescriptionOfExpertise != nil {
			description = strings.TrimSpace(*profile.DescriptionOfExpertise)
		}
	}
	if description == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "An expertise description is required"})
	}

	tags, err := aiClient.SuggestTags(c.Context(), description)
	if err != nil {
		if errors.Is(err, ai.ErrUnavailable) {
			log.Printf("⚠️ Tag suggestion unavailable for %s: %v", tutorID, err)
			return c.JSON(fiber.Map{"suggested_tags": []string{}})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to suggest tags"})
	}

	return c.JSON(fiber.Map{"suggested_tags": models.FilterToSubjects(tags)})
}
