package services

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/tutorlink/api/models"
)

const (
	MinSessionMinutes = 30
	MaxSessionMinutes = 240
)

// BookingService owns the booking state machine. Every transition that
// mandates a notification writes it in the same transaction as the status
// change, so callers never observe one without the other.
type BookingService struct {
	db *gorm.DB
}

func NewBookingService(db *gorm.DB) *BookingService {
	return &BookingService{db: db}
}

type SessionRequest struct {
	StudentID        uuid.UUID
	TutorID          uuid.UUID
	DateTime         time.Time
	DurationMinutes  int
	ReasonForSession string
	Notes            *string
}

func (s *BookingService) RequestSession(req SessionRequest) (*models.Booking, error) {
	if req.DateTime.Before(time.Now()) {
		return nil, fmt.Errorf("%w: session time cannot be in the past", ErrValidation)
	}
	if req.DurationMinutes < MinSessionMinutes || req.DurationMinutes > MaxSessionMinutes {
		return nil, fmt.Errorf("%w: duration must be between %d and %d minutes",
			ErrValidation, MinSessionMinutes, MaxSessionMinutes)
	}
	if strings.TrimSpace(req.ReasonForSession) == "" {
		return nil, fmt.Errorf("%w: reason for session is required", ErrValidation)
	}

	var student, tutor models.User
	if err := s.db.First(&student, "id = ? AND role = ?", req.StudentID, models.RoleStudent).Error; err != nil {
		return nil, fmt.Errorf("%w: student %s", ErrNotFound, req.StudentID)
	}
	if err := s.db.First(&tutor, "id = ? AND role = ?", req.TutorID, models.RoleTutor).Error; err != nil {
		return nil, fmt.Errorf("%w: tutor %s", ErrNotFound, req.TutorID)
	}

	booking := models.Booking{
		StudentID:        student.ID,
		TutorID:          tutor.ID,
		StudentName:      student.FullName,
		TutorName:        tutor.FullName,
		DateTime:         req.DateTime,
		DurationMinutes:  req.DurationMinutes,
		Status:           models.BookingPending,
		ReasonForSession: strings.TrimSpace(req.ReasonForSession),
		Notes:            req.Notes,
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&booking).Error; err != nil {
			return err
		}

		link := bookingLink(booking.ID)
		notification := models.Notification{
			UserID:  tutor.ID,
			Title:   "New Session Request",
			Message: fmt.Sprintf("%s requested a session.", student.FullName),
			Type:    models.NotificationBookingRequest,
			Link:    &link,
		}
		return tx.Create(&notification).Error
	})
	if err != nil {
		return nil, fmt.Errorf("create booking: %w", err)
	}

	return &booking, nil
}

func (s *BookingService) ConfirmBooking(bookingID, actingTutorID uuid.UUID) (*models.Booking, error) {
	var booking models.Booking
	if err := s.db.First(&booking, "id = ?", bookingID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: booking %s", ErrNotFound, bookingID)
		}
		return nil, err
	}
	if booking.TutorID != actingTutorID {
		return nil, fmt.Errorf("%w: only the tutor can confirm this booking", ErrUnauthorized)
	}
	if booking.Status != models.BookingPending {
		return nil, fmt.Errorf("%w: cannot confirm a %s booking", ErrInvalidTransition, booking.Status)
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		// Guarded update: the transition only lands if the stored status
		// still matches the precondition the caller observed.
		res := tx.Model(&models.Booking{}).
			Where("id = ? AND status = ?", booking.ID, models.BookingPending).
			Update("status", models.BookingConfirmed)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return fmt.Errorf("%w: booking is no longer pending", ErrInvalidTransition)
		}
		booking.Status = models.BookingConfirmed

		link := bookingLink(booking.ID)
		notification := models.Notification{
			UserID: booking.StudentID,
			Title:  "Session Confirmed!",
			Message: fmt.Sprintf("Your session for %q with %s on %s has been confirmed.",
				booking.ReasonForSession, booking.TutorName,
				booking.DateTime.Format("Jan 2, 2006 at 3:04 PM")),
			Type: models.NotificationBookingConfirmed,
			Link: &link,
		}
		return tx.Create(&notification).Error
	})
	if err != nil {
		return nil, err
	}

	return &booking, nil
}

func (s *BookingService) CancelBooking(bookingID, actingUserID uuid.UUID) (*models.Booking, error) {
	var booking models.Booking
	if err := s.db.First(&booking, "id = ?", bookingID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: booking %s", ErrNotFound, bookingID)
		}
		return nil, err
	}
	if !booking.IsParty(actingUserID) {
		return nil, fmt.Errorf("%w: only a party to the booking can cancel it", ErrUnauthorized)
	}
	now := time.Now()
	if booking.IsTerminal(now) {
		return nil, fmt.Errorf("%w: cannot cancel a %s booking",
			ErrInvalidTransition, booking.EffectiveStatus(now))
	}

	previousStatus := booking.Status
	otherPartyID := booking.TutorID
	cancelledBy := booking.StudentName
	if actingUserID == booking.TutorID {
		otherPartyID = booking.StudentID
		cancelledBy = booking.TutorName
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&models.Booking{}).
			Where("id = ? AND status = ?", booking.ID, previousStatus).
			Update("status", models.BookingCancelled)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return fmt.Errorf("%w: booking status changed concurrently", ErrInvalidTransition)
		}
		booking.Status = models.BookingCancelled

		link := bookingLink(booking.ID)
		notification := models.Notification{
			UserID: otherPartyID,
			Title:  "Session Cancelled",
			Message: fmt.Sprintf("The session %q on %s was cancelled by %s.",
				booking.ReasonForSession, booking.DateTime.Format("Jan 2, 2006"), cancelledBy),
			Type: models.NotificationGeneric,
			Link: &link,
		}
		return tx.Create(&notification).Error
	})
	if err != nil {
		return nil, err
	}

	return &booking, nil
}

func (s *BookingService) AttachMeetingLink(bookingID, actingTutorID uuid.UUID, meetingLink string) (*models.Booking, error) {
	meetingLink = strings.TrimSpace(meetingLink)
	if meetingLink == "" {
		return nil, fmt.Errorf("%w: meeting link is required", ErrValidation)
	}

	var booking models.Booking
	if err := s.db.First(&booking, "id = ?", bookingID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: booking %s", ErrNotFound, bookingID)
		}
		return nil, err
	}
	if booking.TutorID != actingTutorID {
		return nil, fmt.Errorf("%w: only the tutor can set the meeting link", ErrUnauthorized)
	}
	if booking.EffectiveStatus(time.Now()) != models.BookingConfirmed {
		return nil, fmt.Errorf("%w: meeting link can only be set on a confirmed booking", ErrInvalidTransition)
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&models.Booking{}).
			Where("id = ? AND status = ?", booking.ID, models.BookingConfirmed).
			Update("meeting_link", meetingLink)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return fmt.Errorf("%w: booking is no longer confirmed", ErrInvalidTransition)
		}
		booking.MeetingLink = &meetingLink

		link := bookingLink(booking.ID)
		notification := models.Notification{
			UserID: booking.StudentID,
			Title:  "Session Link Updated",
			Message: fmt.Sprintf("The meeting link for your session %q with %s has been updated.",
				booking.ReasonForSession, booking.TutorName),
			Type: models.NotificationConfirmation,
			Link: &link,
		}
		return tx.Create(&notification).Error
	})
	if err != nil {
		return nil, err
	}

	return &booking, nil
}

// BookingList partitions a user's bookings the way the bookings screen shows
// them: upcoming soonest-first, past most-recent-first.
type BookingList struct {
	Upcoming []models.Booking `json:"upcoming"`
	Past     []models.Booking `json:"past"`
}

func (s *BookingService) ListBookingsForUser(userID uuid.UUID) (*BookingList, error) {
	var bookings []models.Booking
	err := s.db.
		Where("student_id = ? OR tutor_id = ?", userID, userID).
		Order("date_time asc").
		Find(&bookings).Error
	if err != nil {
		return nil, fmt.Errorf("list bookings: %w", err)
	}

	now := time.Now()
	list := &BookingList{Upcoming: []models.Booking{}, Past: []models.Booking{}}
	for _, b := range bookings {
		b.Status = b.EffectiveStatus(now)
		upcoming := !b.DateTime.Before(now) &&
			(b.Status == models.BookingPending || b.Status == models.BookingConfirmed)
		if upcoming {
			list.Upcoming = append(list.Upcoming, b)
		} else {
			list.Past = append(list.Past, b)
		}
	}

	// Source order is ascending; past wants the most recent session first.
	for i, j := 0, len(list.Past)-1; i < j; i, j = i+1, j-1 {
		list.Past[i], list.Past[j] = list.Past[j], list.Past[i]
	}

	return list, nil
}

func (s *BookingService) GetBooking(bookingID uuid.UUID) (*models.Booking, error) {
	var booking models.Booking
	if err := s.db.First(&booking, "id = ?", bookingID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: booking %s", ErrNotFound, bookingID)
		}
		return nil, err
	}
	booking.Status = booking.EffectiveStatus(time.Now())
	return &booking, nil
}

// HasBookingBetween reports whether any booking links the two users,
// regardless of status. Used to gate chat visibility.
func (s *BookingService) HasBookingBetween(userA, userB uuid.UUID) (bool, error) {
	var count int64
	err := s.db.Model(&models.Booking{}).
		Where("(student_id = ? AND tutor_id = ?) OR (student_id = ? AND tutor_id = ?)",
			userA, userB, userB, userA).
		Count(&count).Error
	return count > 0, err
}

func bookingLink(id uuid.UUID) string {
	return "/bookings#" + id.String()
}
