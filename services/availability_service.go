package services

import "time"

// SlotPolicy maps a calendar date to the time-of-day slots a tutor can offer
// on it. The default is a fixed placeholder schedule, not real availability
// data; deployments can inject their own policy.
type SlotPolicy func(date time.Time) []string

var (
	evenDaySlots = []string{"09:00 AM", "10:30 AM", "01:00 PM", "02:30 PM", "04:00 PM"}
	oddDaySlots  = []string{"09:30 AM", "11:00 AM", "01:30 PM", "03:00 PM", "04:30 PM"}
)

// DefaultSlotPolicy alternates between two fixed slot sets by parity of the
// day of the month.
func DefaultSlotPolicy(date time.Time) []string {
	if date.Day()%2 == 0 {
		return evenDaySlots
	}
	return oddDaySlots
}

type AvailabilityCalculator struct {
	policy SlotPolicy
}

func NewAvailabilityCalculator(policy SlotPolicy) *AvailabilityCalculator {
	if policy == nil {
		policy = DefaultSlotPolicy
	}
	return &AvailabilityCalculator{policy: policy}
}

// AvailableSlots returns the offerable slots for a date, in schedule order.
func (c *AvailabilityCalculator) AvailableSlots(date time.Time) []string {
	slots := c.policy(date)
	out := make([]string, len(slots))
	copy(out, slots)
	return out
}
