package domain

import "github.com/m04kA/Restaurant-BookingService/pkg/types"

// SlotReason explains why a slot cannot be booked
type SlotReason string

const (
	ReasonClosedDay    SlotReason = "closed_day"
	ReasonOutsideHours SlotReason = "outside_hours"
	ReasonBlocked      SlotReason = "blocked"
	ReasonFullyBooked  SlotReason = "fully_booked"
)

// AvailableSlot represents a start time offered to a guest for booking
type AvailableSlot struct {
	StartTime       types.TimeString
	DurationMinutes int
	Bookable        bool
	Reason          SlotReason // Пустая строка, если слот доступен
	SeatsLeft       int        // Остаток онлайн-мест на момент расчёта
}

// IsFull returns true if the slot has no online seats left
func (s *AvailableSlot) IsFull() bool {
	return s.SeatsLeft <= 0
}

// CanFit returns true if a party of the given size fits into the slot
func (s *AvailableSlot) CanFit(partySize int) bool {
	return s.Bookable && partySize <= s.SeatsLeft
}
