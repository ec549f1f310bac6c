package services

import (
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/tutorlink/api/models"
	"github.com/tutorlink/api/utils"
)

func linkByBooking(t *testing.T, db *gorm.DB, student, tutor models.User) {
	t.Helper()

	booking := models.Booking{
		StudentID:        student.ID,
		TutorID:          tutor.ID,
		StudentName:      student.FullName,
		TutorName:        tutor.FullName,
		DateTime:         time.Now().Add(24 * time.Hour),
		DurationMinutes:  60,
		Status:           models.BookingPending,
		ReasonForSession: "Session",
	}
	require.NoError(t, db.Create(&booking).Error)
}

func assignStudent(t *testing.T, db *gorm.DB, tutor, student models.User) {
	t.Helper()

	var profile models.TutorProfile
	require.NoError(t, db.First(&profile, "user_id = ?", tutor.ID).Error)
	profile.AssignedStudentIDs = append(profile.AssignedStudentIDs, student.ID.String())
	require.NoError(t, db.Save(&profile).Error)
}

func TestCanMessage(t *testing.T) {
	db := newTestDB(t)
	svc := NewChatService(db)
	student := createStudent(t, db, "alice")
	tutor := createTutor(t, db, "elara")
	stranger := createTutor(t, db, "sophia")

	t.Run("unlinked users cannot chat", func(t *testing.T) {
		allowed, err := svc.CanMessage(student.ID, tutor.ID)
		require.NoError(t, err)
		assert.False(t, allowed)
	})

	t.Run("any booking opens the channel", func(t *testing.T) {
		linkByBooking(t, db, student, tutor)
		allowed, err := svc.CanMessage(student.ID, tutor.ID)
		require.NoError(t, err)
		assert.True(t, allowed)
	})

	t.Run("assignment opens the channel without a booking", func(t *testing.T) {
		assignStudent(t, db, stranger, student)
		allowed, err := svc.CanMessage(stranger.ID, student.ID)
		require.NoError(t, err)
		assert.True(t, allowed)
	})
}

func TestSendMessage(t *testing.T) {
	db := newTestDB(t)
	svc := NewChatService(db)
	student := createStudent(t, db, "alice")
	tutor := createTutor(t, db, "elara")
	stranger := createTutor(t, db, "sophia")
	linkByBooking(t, db, student, tutor)

	t.Run("rejects blank text", func(t *testing.T) {
		_, err := svc.SendMessage(student.ID, tutor.ID, "   ")
		assert.ErrorIs(t, err, ErrValidation)
	})

	t.Run("rejects messaging yourself", func(t *testing.T) {
		_, err := svc.SendMessage(student.ID, student.ID, "hi me")
		assert.ErrorIs(t, err, ErrValidation)
	})

	t.Run("rejects unknown recipient", func(t *testing.T) {
		_, err := svc.SendMessage(student.ID, uuid.New(), "hello?")
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("rejects unlinked users", func(t *testing.T) {
		_, err := svc.SendMessage(student.ID, stranger.ID, "hello")
		assert.ErrorIs(t, err, ErrUnauthorized)
	})

	t.Run("delivers and notifies the recipient", func(t *testing.T) {
		message, err := svc.SendMessage(student.ID, tutor.ID, "See you tomorrow!")
		require.NoError(t, err)
		assert.Equal(t, utils.ChatID(student.ID, tutor.ID), message.ChatID)
		assert.False(t, message.Read)

		var notification models.Notification
		err = db.Where("user_id = ?", tutor.ID).
			Order("created_at desc").First(&notification).Error
		require.NoError(t, err)
		assert.Equal(t, "New message from "+student.FullName, notification.Title)
		assert.Equal(t, "See you tomorrow!", notification.Message)
	})

	t.Run("truncates long text in the notification preview", func(t *testing.T) {
		long := strings.Repeat("x", 80)
		_, err := svc.SendMessage(student.ID, tutor.ID, long)
		require.NoError(t, err)

		var notification models.Notification
		err = db.Where("user_id = ?", tutor.ID).
			Order("created_at desc").First(&notification).Error
		require.NoError(t, err)
		assert.Equal(t, strings.Repeat("x", 50)+"...", notification.Message)
	})
}

func TestListThread(t *testing.T) {
	db := newTestDB(t)
	svc := NewChatService(db)
	student := createStudent(t, db, "alice")
	tutor := createTutor(t, db, "elara")
	linkByBooking(t, db, student, tutor)

	first, err := svc.SendMessage(student.ID, tutor.ID, "Hi!")
	require.NoError(t, err)
	_, err = svc.SendMessage(tutor.ID, student.ID, "Hello Alice")
	require.NoError(t, err)

	chatID := first.ChatID

	t.Run("rejects non-participants", func(t *testing.T) {
		outsider := createStudent(t, db, "mallory")
		_, err := svc.ListThread(chatID, outsider.ID)
		assert.ErrorIs(t, err, ErrUnauthorized)
	})

	t.Run("returns oldest first and marks received messages read", func(t *testing.T) {
		messages, err := svc.ListThread(chatID, tutor.ID)
		require.NoError(t, err)
		require.Len(t, messages, 2)
		assert.Equal(t, "Hi!", messages[0].Text)
		assert.True(t, messages[0].Read)

		var unread int64
		err = db.Model(&models.ChatMessage{}).
			Where("chat_id = ? AND receiver_id = ? AND read = ?", chatID, tutor.ID, false).
			Count(&unread).Error
		require.NoError(t, err)
		assert.Zero(t, unread)
	})
}

func TestListConversations(t *testing.T) {
	db := newTestDB(t)
	svc := NewChatService(db)
	student := createStudent(t, db, "alice")
	activeTutor := createTutor(t, db, "elara")
	quietTutor := createTutor(t, db, "marcus")
	linkByBooking(t, db, student, activeTutor)
	assignStudent(t, db, quietTutor, student)

	_, err := svc.SendMessage(activeTutor.ID, student.ID, "Welcome aboard")
	require.NoError(t, err)

	conversations, err := svc.ListConversations(student.ID)
	require.NoError(t, err)
	require.Len(t, conversations, 2)

	// The contact with message traffic sorts first; the silent assignment
	// still shows up so the student can start that thread.
	assert.Equal(t, activeTutor.ID, conversations[0].OtherUserID)
	require.NotNil(t, conversations[0].LastMessage)
	assert.Equal(t, "Welcome aboard", conversations[0].LastMessage.Text)
	assert.Equal(t, int64(1), conversations[0].UnreadCount)

	assert.Equal(t, quietTutor.ID, conversations[1].OtherUserID)
	assert.Nil(t, conversations[1].LastMessage)
	assert.Zero(t, conversations[1].UnreadCount)
}
