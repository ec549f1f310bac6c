package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"gorm.io/datatypes"

	"github.com/tutorlink/api/database"
	"github.com/tutorlink/api/models"
)

func GetMyProfile(c *fiber.Ctx) error {
	token := c.Locals("user").(*jwt.Token)
	claims := token.Claims.(jwt.MapClaims)
	userID := claims["user_id"].(string)

	var user models.User
	if err := database.DB.First(&user, "id = ?", userID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "User not found"})
	}

	if user.Role != models.RoleTutor {
		return c.JSON(user)
	}

	var profile models.TutorProfile
	if err := database.DB.First(&profile, "user_id = ?", userID).Error; err != nil {
		return c.JSON(user)
	}
	return c.JSON(fiber.Map{"user": user, "tutor_profile": profile})
}

type UpdateProfileRequest struct {
	FullName            *string  `json:"full_name,omitempty" validate:"omitempty,min=2"`
	AvatarURL           *string  `json:"avatar_url,omitempty" validate:"omitempty,url"`
	Bio                 *string  `json:"bio,omitempty"`
	LearningPreferences *string  `json:"learning_preferences,omitempty"`
	SubjectInterests    []string `json:"subject_interests,omitempty"`
}

func UpdateMyProfile(c *fiber.Ctx) error {
	token := c.Locals("user").(*jwt.Token)
	claims := token.Claims.(jwt.MapClaims)
	userID := claims["user_id"].(string)

	var req UpdateProfileRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	var user models.User
	if err := database.DB.First(&user, "id = ?", userID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "User not found"})
	}

	if req.FullName != nil {
		user.FullName = *req.FullName
	}
	if req.AvatarURL != nil {
		user.AvatarURL = req.AvatarURL
	}
	if req.Bio != nil {
		user.Bio = req.Bio
	}
	if user.Role == models.RoleStudent {
		if req.LearningPreferences != nil {
			user.LearningPreferences = req.LearningPreferences
		}
		if req.SubjectInterests != nil {
			user.SubjectInterests = datatypes.NewJSONSlice(models.FilterToSubjects(req.SubjectInterests))
		}
	}

	if err := database.DB.Save(&user).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to update profile"})
	}

	return c.JSON(user)
}

type UpdateTutorProfileRequest struct {
	Headline               *string  `json:"headline,omitempty"`
	SubjectMatterExpertise []string `json:"subject_matter_expertise,omitempty"`
	DescriptionOfExpertise *string  `json:"description_of_expertise,omitempty"`
	TeachingStyle          *string  `json:"teaching_style,omitempty"`
	YearsOfExperience      *int     `json:"years_of_experience,omitempty" validate:"omitempty,gte=0,lte=80"`
}

func UpdateMyTutorProfile(c *fiber.Ctx) error {
	token := c.Locals("user").(*jwt.Token)
	claims := token.Claims.(jwt.MapClaims)
	userID := claims["user_id"].(string)

	var req UpdateTutorProfileRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	var profile models.TutorProfile
	if err := database.DB.First(&profile, "user_id = ?", userID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Tutor profile not found"})
	}

	if req.Headline != nil {
		profile.Headline = req.Headline
	}
	if req.SubjectMatterExpertise != nil {
		profile.SubjectMatterExpertise = datatypes.NewJSONSlice(models.FilterToSubjects(req.SubjectMatterExpertise))
	}
	if req.DescriptionOfExpertise != nil {
		profile.DescriptionOfExpertise = req.DescriptionOfExpertise
	}
	if req.TeachingStyle != nil {
		profile.TeachingStyle = req.TeachingStyle
	}
	if req.YearsOfExperience != nil {
		profile.YearsOfExperience = *req.YearsOfExperience
	}

	if err := database.DB.Save(&profile).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to update tutor profile"})
	}

	return c.JSON(profile)
}

type AssignStudentRequest struct {
	StudentID string `json:"student_id" validate:"required,uuid"`
}

// AssignStudent links a student to the tutor so the pair can chat without a
// booking between them.
func AssignStudent(c *fiber.Ctx) error {
	token := c.Locals("user").(*jwt.Token)
	claims := token.Claims.(jwt.MapClaims)
	tutorID := claims["user_id"].(string)

	var req AssignStudentRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	var student models.User
	err := database.DB.First(&student, "id = ? AND role = ?", req.StudentID, models.RoleStudent).Error
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Student not found"})
	}

	var profile models.TutorProfile
	if err := database.DB.First(&profile, "user_id = ?", tutorID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Tutor profile not found"})
	}

	studentID, _ := uuid.Parse(req.StudentID)
	if !profile.HasAssignedStudent(studentID) {
		profile.AssignedStudentIDs = append(profile.AssignedStudentIDs, student.ID.String())
		if err := database.DB.Save(&profile).Error; err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to assign student"})
		}
	}

	return c.JSON(profile)
}

func ListMyStudents(c *fiber.Ctx) error {
	token := c.Locals("user").(*jwt.Token)
	claims := token.Claims.(jwt.MapClaims)
	tutorID := claims["user_id"].(string)

	var profile models.TutorProfile
	if err := database.DB.First(&profile, "user_id = ?", tutorID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Tutor profile not found"})
	}

	students := []models.User{}
	if len(profile.AssignedStudentIDs) > 0 {
		ids := []string(profile.AssignedStudentIDs)
		err := database.DB.Where("id IN ? AND role = ?", ids, models.RoleStudent).Find(&students).Error
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to fetch students"})
		}
	}

	return c.JSON(students)
}
