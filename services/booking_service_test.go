package services

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/tutorlink/api/models"
)

func futureTime(hours int) time.Time {
	return time.Now().Add(time.Duration(hours) * time.Hour).Truncate(time.Second)
}

func validRequest(student, tutor models.User) SessionRequest {
	return SessionRequest{
		StudentID:        student.ID,
		TutorID:          tutor.ID,
		DateTime:         futureTime(48),
		DurationMinutes:  60,
		ReasonForSession: "Calculus exam prep",
	}
}

func TestRequestSessionValidation(t *testing.T) {
	db := newTestDB(t)
	svc := NewBookingService(db)
	student := createStudent(t, db, "alice")
	tutor := createTutor(t, db, "elara")

	t.Run("rejects past session time", func(t *testing.T) {
		req := validRequest(student, tutor)
		req.DateTime = time.Now().Add(-time.Hour)
		_, err := svc.RequestSession(req)
		assert.ErrorIs(t, err, ErrValidation)
	})

	t.Run("rejects too short duration", func(t *testing.T) {
		req := validRequest(student, tutor)
		req.DurationMinutes = 20
		_, err := svc.RequestSession(req)
		assert.ErrorIs(t, err, ErrValidation)
	})

	t.Run("rejects too long duration", func(t *testing.T) {
		req := validRequest(student, tutor)
		req.DurationMinutes = 300
		_, err := svc.RequestSession(req)
		assert.ErrorIs(t, err, ErrValidation)
	})

	t.Run("rejects blank reason", func(t *testing.T) {
		req := validRequest(student, tutor)
		req.ReasonForSession = "   "
		_, err := svc.RequestSession(req)
		assert.ErrorIs(t, err, ErrValidation)
	})

	t.Run("rejects unknown tutor", func(t *testing.T) {
		req := validRequest(student, tutor)
		req.TutorID = uuid.New()
		_, err := svc.RequestSession(req)
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("rejects tutor posing as student", func(t *testing.T) {
		req := validRequest(student, tutor)
		req.StudentID = tutor.ID
		_, err := svc.RequestSession(req)
		assert.ErrorIs(t, err, ErrNotFound)
	})
}

func TestRequestSessionCreatesPendingBookingAndNotifiesTutor(t *testing.T) {
	db := newTestDB(t)
	svc := NewBookingService(db)
	student := createStudent(t, db, "alice")
	tutor := createTutor(t, db, "elara")

	booking, err := svc.RequestSession(validRequest(student, tutor))
	require.NoError(t, err)

	assert.Equal(t, models.BookingPending, booking.Status)
	assert.Equal(t, student.FullName, booking.StudentName)
	assert.Equal(t, tutor.FullName, booking.TutorName)

	var notifications []models.Notification
	require.NoError(t, db.Find(&notifications).Error)
	require.Len(t, notifications, 1)
	assert.Equal(t, tutor.ID, notifications[0].UserID)
	assert.Equal(t, "New Session Request", notifications[0].Title)
	assert.Equal(t, models.NotificationBookingRequest, notifications[0].Type)
	assert.Contains(t, notifications[0].Message, student.FullName)
}

func TestConfirmBooking(t *testing.T) {
	db := newTestDB(t)
	svc := NewBookingService(db)
	student := createStudent(t, db, "alice")
	tutor := createTutor(t, db, "elara")

	booking, err := svc.RequestSession(validRequest(student, tutor))
	require.NoError(t, err)

	t.Run("rejects unknown booking", func(t *testing.T) {
		_, err := svc.ConfirmBooking(uuid.New(), tutor.ID)
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("rejects anyone but the booked tutor", func(t *testing.T) {
		_, err := svc.ConfirmBooking(booking.ID, student.ID)
		assert.ErrorIs(t, err, ErrUnauthorized)
	})

	t.Run("confirms a pending booking and notifies the student", func(t *testing.T) {
		confirmed, err := svc.ConfirmBooking(booking.ID, tutor.ID)
		require.NoError(t, err)
		assert.Equal(t, models.BookingConfirmed, confirmed.Status)

		var notification models.Notification
		err = db.Where("user_id = ? AND type = ?", student.ID, models.NotificationBookingConfirmed).
			First(&notification).Error
		require.NoError(t, err)
		assert.Equal(t, "Session Confirmed!", notification.Title)
		assert.Contains(t, notification.Message, tutor.FullName)
	})

	t.Run("rejects a second confirmation", func(t *testing.T) {
		_, err := svc.ConfirmBooking(booking.ID, tutor.ID)
		assert.ErrorIs(t, err, ErrInvalidTransition)
	})
}

func TestConfirmBookingRejectsCancelled(t *testing.T) {
	db := newTestDB(t)
	svc := NewBookingService(db)
	student := createStudent(t, db, "alice")
	tutor := createTutor(t, db, "elara")

	booking, err := svc.RequestSession(validRequest(student, tutor))
	require.NoError(t, err)
	_, err = svc.CancelBooking(booking.ID, student.ID)
	require.NoError(t, err)

	_, err = svc.ConfirmBooking(booking.ID, tutor.ID)
	assert.ErrorIs(t, err, ErrInvalidTransition)
}

func TestCancelBooking(t *testing.T) {
	db := newTestDB(t)
	svc := NewBookingService(db)
	student := createStudent(t, db, "alice")
	tutor := createTutor(t, db, "elara")

	booking, err := svc.RequestSession(validRequest(student, tutor))
	require.NoError(t, err)

	t.Run("rejects an outsider", func(t *testing.T) {
		outsider := createStudent(t, db, "mallory")
		_, err := svc.CancelBooking(booking.ID, outsider.ID)
		assert.ErrorIs(t, err, ErrUnauthorized)
	})

	t.Run("either party can cancel, other party is notified", func(t *testing.T) {
		cancelled, err := svc.CancelBooking(booking.ID, tutor.ID)
		require.NoError(t, err)
		assert.Equal(t, models.BookingCancelled, cancelled.Status)

		var notification models.Notification
		err = db.Where("user_id = ? AND title = ?", student.ID, "Session Cancelled").
			First(&notification).Error
		require.NoError(t, err)
		assert.Contains(t, notification.Message, tutor.FullName)
	})

	t.Run("rejects cancelling twice", func(t *testing.T) {
		_, err := svc.CancelBooking(booking.ID, student.ID)
		assert.ErrorIs(t, err, ErrInvalidTransition)
	})
}

func TestCancelBookingRejectsCompletedSession(t *testing.T) {
	db := newTestDB(t)
	svc := NewBookingService(db)
	student := createStudent(t, db, "alice")
	tutor := createTutor(t, db, "elara")

	// A confirmed booking whose time has passed counts as completed even
	// though the stored status still says confirmed.
	booking := models.Booking{
		StudentID:        student.ID,
		TutorID:          tutor.ID,
		StudentName:      student.FullName,
		TutorName:        tutor.FullName,
		DateTime:         time.Now().Add(-2 * time.Hour),
		DurationMinutes:  60,
		Status:           models.BookingConfirmed,
		ReasonForSession: "History essay review",
	}
	require.NoError(t, db.Create(&booking).Error)

	_, err := svc.CancelBooking(booking.ID, student.ID)
	assert.ErrorIs(t, err, ErrInvalidTransition)
}

func TestAttachMeetingLink(t *testing.T) {
	db := newTestDB(t)
	svc := NewBookingService(db)
	student := createStudent(t, db, "alice")
	tutor := createTutor(t, db, "elara")

	booking, err := svc.RequestSession(validRequest(student, tutor))
	require.NoError(t, err)

	t.Run("rejects a blank link", func(t *testing.T) {
		_, err := svc.AttachMeetingLink(booking.ID, tutor.ID, "  ")
		assert.ErrorIs(t, err, ErrValidation)
	})

	t.Run("rejects a pending booking", func(t *testing.T) {
		_, err := svc.AttachMeetingLink(booking.ID, tutor.ID, "https://meet.test/abc")
		assert.ErrorIs(t, err, ErrInvalidTransition)
	})

	_, err = svc.ConfirmBooking(booking.ID, tutor.ID)
	require.NoError(t, err)

	t.Run("rejects the student setting the link", func(t *testing.T) {
		_, err := svc.AttachMeetingLink(booking.ID, student.ID, "https://meet.test/abc")
		assert.ErrorIs(t, err, ErrUnauthorized)
	})

	t.Run("sets the link and notifies the student", func(t *testing.T) {
		updated, err := svc.AttachMeetingLink(booking.ID, tutor.ID, "https://meet.test/abc")
		require.NoError(t, err)
		require.NotNil(t, updated.MeetingLink)
		assert.Equal(t, "https://meet.test/abc", *updated.MeetingLink)

		var notification models.Notification
		err = db.Where("user_id = ? AND title = ?", student.ID, "Session Link Updated").
			First(&notification).Error
		require.NoError(t, err)
	})
}

func TestListBookingsForUserPartition(t *testing.T) {
	db := newTestDB(t)
	svc := NewBookingService(db)
	student := createStudent(t, db, "alice")
	tutor := createTutor(t, db, "elara")

	makeBooking := func(offset time.Duration, status string) models.Booking {
		b := models.Booking{
			StudentID:        student.ID,
			TutorID:          tutor.ID,
			StudentName:      student.FullName,
			TutorName:        tutor.FullName,
			DateTime:         time.Now().Add(offset),
			DurationMinutes:  60,
			Status:           status,
			ReasonForSession: "Session",
		}
		require.NoError(t, db.Create(&b).Error)
		return b
	}

	pastConfirmed := makeBooking(-time.Hour, models.BookingConfirmed)
	futureCancelled := makeBooking(time.Hour, models.BookingCancelled)
	soonConfirmed := makeBooking(2*time.Hour, models.BookingConfirmed)
	laterPending := makeBooking(72*time.Hour, models.BookingPending)

	list, err := svc.ListBookingsForUser(student.ID)
	require.NoError(t, err)

	require.Len(t, list.Upcoming, 2)
	assert.Equal(t, soonConfirmed.ID, list.Upcoming[0].ID)
	assert.Equal(t, laterPending.ID, list.Upcoming[1].ID)

	require.Len(t, list.Past, 2)
	// Past is most-recent-first, and the elapsed confirmed session reads
	// as completed without any stored status change.
	assert.Equal(t, futureCancelled.ID, list.Past[0].ID)
	assert.Equal(t, pastConfirmed.ID, list.Past[1].ID)
	assert.Equal(t, models.BookingCompleted, list.Past[1].Status)

	var stored models.Booking
	require.NoError(t, db.First(&stored, "id = ?", pastConfirmed.ID).Error)
	assert.Equal(t, models.BookingConfirmed, stored.Status)
}

func TestBookingLifecycle(t *testing.T) {
	db := newTestDB(t)
	svc := NewBookingService(db)
	student := createStudent(t, db, "bob")
	tutor := createTutor(t, db, "marcus")

	booking, err := svc.RequestSession(validRequest(student, tutor))
	require.NoError(t, err)

	_, err = svc.ConfirmBooking(booking.ID, tutor.ID)
	require.NoError(t, err)

	_, err = svc.AttachMeetingLink(booking.ID, tutor.ID, "https://meet.test/xyz")
	require.NoError(t, err)

	cancelled, err := svc.CancelBooking(booking.ID, student.ID)
	require.NoError(t, err)
	assert.Equal(t, models.BookingCancelled, cancelled.Status)

	_, err = svc.ConfirmBooking(booking.ID, tutor.ID)
	assert.ErrorIs(t, err, ErrInvalidTransition)
	_, err = svc.AttachMeetingLink(booking.ID, tutor.ID, "https://meet.test/other")
	assert.ErrorIs(t, err, ErrInvalidTransition)
}

func TestHasBookingBetween(t *testing.T) {
	db := newTestDB(t)
	svc := NewBookingService(db)
	student := createStudent(t, db, "alice")
	tutor := createTutor(t, db, "elara")
	stranger := createTutor(t, db, "sophia")

	_, err := svc.RequestSession(validRequest(student, tutor))
	require.NoError(t, err)

	linked, err := svc.HasBookingBetween(tutor.ID, student.ID)
	require.NoError(t, err)
	assert.True(t, linked)

	linked, err = svc.HasBookingBetween(student.ID, stranger.ID)
	require.NoError(t, err)
	assert.False(t, linked)
}

func TestGetBookingNotFound(t *testing.T) {
	db := newTestDB(t)
	svc := NewBookingService(db)

	_, err := svc.GetBooking(uuid.New())
	assert.ErrorIs(t, err, ErrNotFound)
	assert.NotErrorIs(t, err, gorm.ErrRecordNotFound)
}
