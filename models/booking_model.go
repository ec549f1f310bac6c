package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	BookingPending   = "pending"
	BookingConfirmed = "confirmed"
	BookingCancelled = "cancelled"
	BookingCompleted = "completed"
)

type Booking struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	StudentID uuid.UUID `gorm:"not null;index" json:"student_id"`
	TutorID   uuid.UUID `gorm:"not null;index" json:"tutor_id"`

	// Denormalized for display, copied from the users at creation time.
	StudentName string `gorm:"size:255;not null" json:"student_name"`
	TutorName   string `gorm:"size:255;not null" json:"tutor_name"`

	DateTime         time.Time `gorm:"not null" json:"date_time"`
	DurationMinutes  int       `gorm:"not null" json:"duration_minutes"`
	Status           string    `gorm:"size:20;not null;default:'pending'" json:"status"`
	ReasonForSession string    `gorm:"size:255;not null" json:"reason_for_session"`
	MeetingLink      *string   `gorm:"size:255" json:"meeting_link"`
	Notes            *string   `gorm:"type:text" json:"notes"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (b *Booking) BeforeCreate(tx *gorm.DB) error {
	if b.ID == uuid.Nil {
		b.ID = uuid.New()
	}
	return nil
}

// EffectiveStatus is the status as shown to users. Completion is never stored:
// a confirmed booking whose start time has elapsed reads as completed.
func (b *Booking) EffectiveStatus(now time.Time) string {
	if b.Status == BookingConfirmed && b.DateTime.Before(now) {
		return BookingCompleted
	}
	return b.Status
}

// IsTerminal reports whether no further transition is permitted.
func (b *Booking) IsTerminal(now time.Time) bool {
	s := b.EffectiveStatus(now)
	return s == BookingCancelled || s == BookingCompleted
}

func (b *Booking) IsParty(userID uuid.UUID) bool {
	return b.StudentID == userID || b.TutorID == userID
}
