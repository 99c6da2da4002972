package domain

import (
	"time"

	"github.com/m04kA/Restaurant-BookingService/pkg/types"
)

// VenuePolicy represents the operating configuration of the venue:
// hours, slot granularity, seating durations and capacity limits.
// Хранится одной строкой в БД и правится администратором без рестарта.
type VenuePolicy struct {
	ID                    int64
	OpenTime              types.TimeString
	CloseTime             types.TimeString
	SlotStepMinutes       int
	ClosedWeekday         *int // День недели без приёма броней (0 = воскресенье), nil = работаем без выходных
	DaytimeSeatingMinutes int
	EveningSeatingMinutes int
	EveningFrom           types.TimeString
	ReservableSeats       int // Потолок для онлайн-бронирований
	TotalSeats            int // Общая вместимость зала
	WalkInBuffer          int
	MaxPartySize          int
	UpdatedAt             time.Time
}

// HasWeeklyClosedDay returns true if a weekly closed day is configured
func (p *VenuePolicy) HasWeeklyClosedDay() bool {
	return p.ClosedWeekday != nil
}

// IsOperatingDay returns false for the configured weekly closed day
func (p *VenuePolicy) IsOperatingDay(date time.Time) bool {
	if p.ClosedWeekday == nil {
		return true
	}
	return int(date.Weekday()) != *p.ClosedWeekday
}

// SeatingDurationMinutes returns the seating duration for a slot start time.
// Со времени EveningFrom действует вечерняя посадка, до него — дневная.
func (p *VenuePolicy) SeatingDurationMinutes(start types.TimeString) int {
	if start.IsBefore(p.EveningFrom) {
		return p.DaytimeSeatingMinutes
	}
	return p.EveningSeatingMinutes
}

// OperatingSlots generates all bookable start times of an operating day:
// от открытия с шагом SlotStepMinutes, строго до закрытия.
// Если close <= open, день не имеет слотов (это не ошибка).
func (p *VenuePolicy) OperatingSlots() []types.TimeString {
	if p.SlotStepMinutes <= 0 {
		return nil
	}

	var slots []types.TimeString
	current := p.OpenTime
	for current.IsBefore(p.CloseTime) {
		slots = append(slots, current)

		next, err := current.AddMinutes(p.SlotStepMinutes)
		if err != nil {
			break
		}
		current = next
	}
	return slots
}

// WithinOperatingHours reports whether [start, end) fits inside opening hours
func (p *VenuePolicy) WithinOperatingHours(start, end types.TimeString) bool {
	if start.IsBefore(p.OpenTime) {
		return false
	}
	return !end.IsAfter(p.CloseTime)
}

// DefaultPolicy возвращает политику по умолчанию, используется как fallback,
// пока строка в БД не создана
func DefaultPolicy() VenuePolicy {
	closedWeekday := DefaultClosedWeekday
	return VenuePolicy{
		ID:                    1,
		OpenTime:              types.TimeString(DefaultOpenTime),
		CloseTime:             types.TimeString(DefaultCloseTime),
		SlotStepMinutes:       DefaultSlotStepMinutes,
		ClosedWeekday:         &closedWeekday,
		DaytimeSeatingMinutes: DefaultDaytimeSeatingMinutes,
		EveningSeatingMinutes: DefaultEveningSeatingMinutes,
		EveningFrom:           types.TimeString(DefaultEveningFrom),
		ReservableSeats:       DefaultReservableSeats,
		TotalSeats:            DefaultTotalSeats,
		WalkInBuffer:          DefaultWalkInBuffer,
		MaxPartySize:          DefaultMaxPartySize,
	}
}
