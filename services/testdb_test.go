package services

import (
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/tutorlink/api/models"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	err = db.AutoMigrate(
		&models.User{},
		&models.TutorProfile{},
		&models.Booking{},
		&models.Notification{},
		&models.ChatMessage{},
	)
	require.NoError(t, err)

	return db
}

func createStudent(t *testing.T, db *gorm.DB, name string) models.User {
	t.Helper()

	user := models.User{
		FullName: name,
		Email:    name + "@student.test",
		Password: "hashed",
		Role:     models.RoleStudent,
	}
	require.NoError(t, db.Create(&user).Error)
	return user
}

func createTutor(t *testing.T, db *gorm.DB, name string) models.User {
	t.Helper()

	user := models.User{
		FullName: name,
		Email:    name + "@tutor.test",
		Password: "hashed",
		Role:     models.RoleTutor,
	}
	require.NoError(t, db.Create(&user).Error)

	profile := models.TutorProfile{
		UserID:                 user.ID,
		SubjectMatterExpertise: datatypes.NewJSONSlice([]string{"Calculus"}),
	}
	require.NoError(t, db.Create(&profile).Error)

	return user
}
