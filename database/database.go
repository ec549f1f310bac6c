package database

import (
	"fmt"
	"log"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/datatypes"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	config "github.com/tutorlink/api/configs"
	"github.com/tutorlink/api/models"
)

var DB *gorm.DB

func ConnectDB() {
	var err error
	dsn := config.Config("DATABASE_URL")

	DB, err = gorm.Open(postgres.Open(dsn), &gorm.Config{
		SkipDefaultTransaction: true,
		DisableForeignKeyConstraintWhenMigrating: true,
	})
	if err != nil {
		log.Fatalf("🔥 Failed to connect to database: %v", err)
	}

	fmt.Println("✅ Database connected successfully")
}

func Migrate() {
	err := DB.AutoMigrate(
		&models.User{},
		&models.TutorProfile{},
		&models.Booking{},
		&models.Notification{},
		&models.ChatMessage{},
	)
	if err != nil {
		log.Fatalf("🔥 Failed to migrate database: %v", err)
	}
	fmt.Println("✅ Database migration successful")
}

// SeedDemoData loads the demo roster (two students, three tutors) on an empty
// database so a fresh deployment is browsable. No-op once any user exists.
func SeedDemoData() {
	var count int64
	if err := DB.Model(&models.User{}).Count(&count).Error; err != nil {
		log.Fatalf("🔥 Failed to check for existing users: %v", err)
	}
	if count > 0 {
		return
	}

	password := config.Config("DEMO_USER_PASSWORD")
	if password == "" {
		log.Println("DEMO_USER_PASSWORD not set, skipping demo data seed.")
		return
	}
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		log.Fatalf("🔥 Failed to hash demo password: %v", err)
	}

	strPtr := func(s string) *string { return &s }

	students := []models.User{
		{
			FullName:            "Alice Wonderland",
			Email:               "alice@example.com",
			Password:            string(hashed),
			Role:                models.RoleStudent,
			Bio:                 strPtr("Eager to learn calculus and creative writing. I prefer visual explanations and practical examples."),
			LearningPreferences: strPtr("Visual learning, practical examples, interactive sessions."),
			SubjectInterests:    datatypes.NewJSONSlice([]string{"Calculus", "Creative Writing", "History", "Counseling"}),
		},
		{
			FullName:            "Bob The Builder",
			Email:               "bob@example.com",
			Password:            string(hashed),
			Role:                models.RoleStudent,
			Bio:                 strPtr("Looking for help with Physics and programming. I like a structured approach."),
			LearningPreferences: strPtr("Structured lessons, hands-on coding, regular quizzes."),
			SubjectInterests:    datatypes.NewJSONSlice([]string{"Physics", "Python", "Computer Science"}),
		},
	}

	type tutorSeed struct {
		user    models.User
		profile models.TutorProfile
	}
	tutors := []tutorSeed{
		{
			user: models.User{
				FullName: "Dr. Elara Vance",
				Email:    "elara.vance@example.com",
				Password: string(hashed),
				Role:     models.RoleTutor,
				Bio:      strPtr("PhD in Mathematics with 10 years of teaching experience. Also offer academic counseling."),
			},
			profile: models.TutorProfile{
				Headline:               strPtr("PhD Math Tutor & Academic Counselor"),
				SubjectMatterExpertise: datatypes.NewJSONSlice([]string{"Calculus", "Algebra", "Statistics", "Differential Equations", "Counseling"}),
				DescriptionOfExpertise: strPtr("I specialize in advanced mathematics, including calculus, linear algebra, and statistics. I also provide academic counseling to help students navigate their studies."),
				TeachingStyle:          strPtr("Patient, concept-focused, with real-world applications."),
				YearsOfExperience:      10,
			},
		},
		{
			user: models.User{
				FullName: "Marcus Chen",
				Email:    "marcus.chen@example.com",
				Password: string(hashed),
				Role:     models.RoleTutor,
				Bio:      strPtr("Software engineer and coding mentor. Passionate about Python, JavaScript, and Web Development."),
			},
			profile: models.TutorProfile{
				Headline:               strPtr("Coding Mentor - Python, JavaScript, Web Dev"),
				SubjectMatterExpertise: datatypes.NewJSONSlice([]string{"Python", "JavaScript", "React", "Computer Science"}),
				DescriptionOfExpertise: strPtr("I am a full-stack developer with expertise in Python and JavaScript frameworks. I enjoy teaching data structures and algorithms, and helping students build cool projects."),
				TeachingStyle:          strPtr("Hands-on, project-based learning, encouraging experimentation."),
				YearsOfExperience:      5,
			},
		},
		{
			user: models.User{
				FullName: "Sophia Lorenza",
				Email:    "sophia.lorenza@example.com",
				Password: string(hashed),
				Role:     models.RoleTutor,
				Bio:      strPtr("Literature enthusiast and experienced writing coach. Offers guidance and counseling for academic stress."),
			},
			profile: models.TutorProfile{
				Headline:               strPtr("Writing Coach & Student Counselor"),
				SubjectMatterExpertise: datatypes.NewJSONSlice([]string{"Essay Writing", "Literature", "Creative Writing", "Grammar", "Counseling"}),
				DescriptionOfExpertise: strPtr("I help students unlock their potential in writing, from structuring compelling essays to analyzing complex literary texts. I also offer counseling sessions for students needing support with academic stress and study habits."),
				TeachingStyle:          strPtr("Encouraging, feedback-oriented, focusing on critical thinking and clarity."),
				YearsOfExperience:      7,
			},
		},
	}

	err = DB.Transaction(func(tx *gorm.DB) error {
		for i := range students {
			if err := tx.Create(&students[i]).Error; err != nil {
				return err
			}
		}
		for i := range tutors {
			if err := tx.Create(&tutors[i].user).Error; err != nil {
				return err
			}
			tutors[i].profile.UserID = tutors[i].user.ID
			if err := tx.Create(&tutors[i].profile).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		log.Fatalf("🔥 Failed to seed demo data: %v", err)
	}

	log.Println("✅ Demo data seeded successfully")
}
