package models

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestEffectiveStatus(t *testing.T) {
	now := time.Now()

	tests := []struct {
		name     string
		booking  Booking
		expected string
	}{
		{"pending stays pending even after its time", Booking{Status: BookingPending, DateTime: now.Add(-time.Hour)}, BookingPending},
		{"confirmed future stays confirmed", Booking{Status: BookingConfirmed, DateTime: now.Add(time.Hour)}, BookingConfirmed},
		{"confirmed past reads as completed", Booking{Status: BookingConfirmed, DateTime: now.Add(-time.Hour)}, BookingCompleted},
		{"cancelled stays cancelled", Booking{Status: BookingCancelled, DateTime: now.Add(-time.Hour)}, BookingCancelled},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.booking.EffectiveStatus(now))
		})
	}
}

func TestIsTerminal(t *testing.T) {
	now := time.Now()

	assert.False(t, (&Booking{Status: BookingPending, DateTime: now.Add(time.Hour)}).IsTerminal(now))
	assert.False(t, (&Booking{Status: BookingConfirmed, DateTime: now.Add(time.Hour)}).IsTerminal(now))
	assert.True(t, (&Booking{Status: BookingCancelled, DateTime: now.Add(time.Hour)}).IsTerminal(now))
	assert.True(t, (&Booking{Status: BookingConfirmed, DateTime: now.Add(-time.Hour)}).IsTerminal(now))
}

func TestIsParty(t *testing.T) {
	student := uuid.New()
	tutor := uuid.New()
	booking := &Booking{StudentID: student, TutorID: tutor}

	assert.True(t, booking.IsParty(student))
	assert.True(t, booking.IsParty(tutor))
	assert.False(t, booking.IsParty(uuid.New()))
}
