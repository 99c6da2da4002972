package domain

import (
	"time"

	"github.com/m04kA/Restaurant-BookingService/pkg/types"
)

// ReservationStatus represents the status of a reservation
type ReservationStatus string

const (
	StatusConfirmed ReservationStatus = "confirmed"
	StatusCancelled ReservationStatus = "cancelled"
	StatusNoShow    ReservationStatus = "no_show"
)

// Walk-in гости регистрируются администратором без контактных данных.
// Синтетический гость нужен, чтобы walk-in записи не попадали в программу
// лояльности реальных гостей и не получали уведомления.
const (
	WalkInGuestName  = "Гость без брони"
	WalkInGuestEmail = "walkin@venue.local"
)

// Reservation represents a claim on seats for a date and time slot
type Reservation struct {
	ID              int64
	CancelToken     string
	Date            time.Time // Календарная дата без времени
	StartTime       types.TimeString
	DurationMinutes int
	Guests          int
	GuestName       string
	GuestEmail      string
	GuestPhone      *string
	IsWalkIn        bool
	Status          ReservationStatus
	ReminderSent    bool
	Notes           *string

	CancelledAt *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsActive returns true if the reservation still occupies seats.
// No-show остаётся активной: места были удержаны, визит засчитывается.
func (r *Reservation) IsActive() bool {
	return r.Status != StatusCancelled
}

// CanBeCancelled returns true if the reservation can be cancelled
func (r *Reservation) CanBeCancelled() bool {
	return r.Status != StatusCancelled
}

// IsCancelled returns true if the reservation has been cancelled
func (r *Reservation) IsCancelled() bool {
	return r.Status == StatusCancelled
}

// CountsForLoyalty returns true if the reservation contributes to the guest's visit history
func (r *Reservation) CountsForLoyalty() bool {
	return r.IsActive() && !r.IsWalkIn && r.GuestEmail != WalkInGuestEmail
}

// StartAt returns the wall-clock start instant of the reservation
func (r *Reservation) StartAt() time.Time {
	return CombineDateTime(r.Date, r.StartTime)
}

// EndAt returns the wall-clock end instant of the reservation
func (r *Reservation) EndAt() time.Time {
	return r.StartAt().Add(time.Duration(r.DurationMinutes) * time.Minute)
}

// CombineDateTime собирает момент времени из календарной даты и времени "HH:MM"
// в локальной таймзоне заведения. Невалидное время трактуется как полночь.
func CombineDateTime(date time.Time, t types.TimeString) time.Time {
	minutes, err := t.Minutes()
	if err != nil {
		minutes = 0
	}
	return time.Date(date.Year(), date.Month(), date.Day(), minutes/60, minutes%60, 0, 0, time.Local)
}

// DayReservationsFilter фильтр для получения бронирований за день
type DayReservationsFilter struct {
	Date             time.Time          // Обязательный параметр
	Status           *ReservationStatus // Фильтр по статусу (опционально)
	IncludeCancelled bool               // Включать ли отменённые бронирования
}
