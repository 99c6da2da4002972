package create_reservation

import (
	"fmt"
	"net/mail"
	"time"

	"github.com/m04kA/Restaurant-BookingService/internal/domain"
	"github.com/m04kA/Restaurant-BookingService/pkg/types"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	if req.StartTime.IsZero() {
		return fmt.Errorf("%w: startTime is required", ErrInvalidInput)
	}

	if err := req.StartTime.Validate(); err != nil {
		return fmt.Errorf("%w: invalid startTime format: %v", ErrInvalidInput, err)
	}

	if req.Guests < 1 {
		return fmt.Errorf("%w: guests must be positive", ErrInvalidInput)
	}

	if req.GuestName == "" {
		return fmt.Errorf("%w: guestName is required", ErrInvalidInput)
	}
	if len(req.GuestName) > domain.MaxGuestNameLength {
		return fmt.Errorf("%w: guestName is too long", ErrInvalidInput)
	}

	if _, err := mail.ParseAddress(req.GuestEmail); err != nil {
		return fmt.Errorf("%w: invalid guestEmail: %v", ErrInvalidInput, err)
	}

	// Синтетический адрес walk-in гостей зарезервирован
	if req.GuestEmail == domain.WalkInGuestEmail {
		return fmt.Errorf("%w: guestEmail is reserved", ErrInvalidInput)
	}

	if req.Notes != nil && len(*req.Notes) > domain.MaxNotesLength {
		return fmt.Errorf("%w: notes are too long", ErrInvalidInput)
	}

	return nil
}

// validateSlotOnGrid проверяет, что время начала лежит на сетке слотов:
// отсчитывается от открытия с шагом политики
func validateSlotOnGrid(policy *domain.VenuePolicy, start types.TimeString) error {
	startMinutes, err := start.Minutes()
	if err != nil {
		return fmt.Errorf("%w: invalid startTime: %v", ErrInvalidInput, err)
	}

	openMinutes, err := policy.OpenTime.Minutes()
	if err != nil {
		return fmt.Errorf("%w: invalid policy open time: %v", ErrInternal, err)
	}

	if policy.SlotStepMinutes <= 0 || (startMinutes-openMinutes)%policy.SlotStepMinutes != 0 {
		return fmt.Errorf("%w: startTime is not on the slot grid", ErrInvalidInput)
	}

	return nil
}

// isDateInPast проверяет, что дата в прошлом (раньше сегодняшнего дня)
func isDateInPast(date, now time.Time) bool {
	dateOnly := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())
	nowOnly := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	return dateOnly.Before(nowOnly)
}
