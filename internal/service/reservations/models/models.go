package models

import (
	"errors"
	"time"

	"github.com/m04kA/Restaurant-BookingService/internal/domain"
)

var (
	// ErrInvalidStatus возвращается при некорректном статусе
	ErrInvalidStatus = errors.New("invalid reservation status")
)

// Request модели

// DayListRequest запрос списка бронирований за день
type DayListRequest struct {
	Date             time.Time `json:"date"`
	Status           *string   `json:"status,omitempty"`           // Фильтр по статусу (опционально)
	IncludeCancelled bool      `json:"includeCancelled,omitempty"` // Включить отменённые бронирования
}

// Response модели

// LoyaltyResponse статус лояльности гостя, пересчитывается на каждую выдачу
type LoyaltyResponse struct {
	DiscountPercent int  `json:"discountPercent"`
	VisitIndex      int  `json:"visitIndex"`
	NextMilestone   *int `json:"nextMilestone,omitempty"`
}

// ReservationResponse ответ с данными бронирования
type ReservationResponse struct {
	ID              int64   `json:"id"`
	Date            string  `json:"date"`      // "2025-10-15"
	StartTime       string  `json:"startTime"` // "18:00"
	DurationMinutes int     `json:"durationMinutes"`
	Guests          int     `json:"guests"`
	GuestName       string  `json:"guestName"`
	GuestEmail      string  `json:"guestEmail"`
	GuestPhone      *string `json:"guestPhone,omitempty"`
	IsWalkIn        bool    `json:"isWalkIn"`
	Status          string  `json:"status"`
	ReminderSent    bool    `json:"reminderSent"`
	Notes           *string `json:"notes,omitempty"`

	// Лояльность заполняется в списках за день для реальных гостей
	Loyalty *LoyaltyResponse `json:"loyalty,omitempty"`

	CancelledAt *string `json:"cancelledAt,omitempty"` // ISO 8601 format

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// CancelResponse результат отмены бронирования
type CancelResponse struct {
	ID               int64   `json:"id"`
	Status           string  `json:"status"`
	AlreadyCancelled bool    `json:"alreadyCancelled"`
	CancelledAt      *string `json:"cancelledAt,omitempty"` // ISO 8601 format
}

// DayListResponse список бронирований за день со сводкой занятости
type DayListResponse struct {
	Date         string                `json:"date"`
	Reservations []ReservationResponse `json:"reservations"`

	// Сводка по активным записям дня
	ReservedGuests int `json:"reservedGuests"`
	WalkInGuests   int `json:"walkInGuests"`
	TotalGuests    int `json:"totalGuests"`
}

// Методы конвертации

// FromDomainReservation конвертирует domain модель в DTO
func FromDomainReservation(r *domain.Reservation) *ReservationResponse {
	if r == nil {
		return nil
	}

	resp := &ReservationResponse{
		ID:              r.ID,
		Date:            r.Date.Format(domain.DateFormat),
		StartTime:       r.StartTime.String(),
		DurationMinutes: r.DurationMinutes,
		Guests:          r.Guests,
		GuestName:       r.GuestName,
		GuestEmail:      r.GuestEmail,
		GuestPhone:      r.GuestPhone,
		IsWalkIn:        r.IsWalkIn,
		Status:          string(r.Status),
		ReminderSent:    r.ReminderSent,
		Notes:           r.Notes,
		CreatedAt:       r.CreatedAt,
		UpdatedAt:       r.UpdatedAt,
	}

	// Конвертируем CancelledAt в строку ISO 8601
	if r.CancelledAt != nil {
		cancelledStr := r.CancelledAt.Format(time.RFC3339)
		resp.CancelledAt = &cancelledStr
	}

	return resp
}

// FromDomainLoyalty конвертирует статус лояльности в DTO
func FromDomainLoyalty(loyalty domain.LoyaltyStatus) *LoyaltyResponse {
	return &LoyaltyResponse{
		DiscountPercent: loyalty.DiscountPercent,
		VisitIndex:      loyalty.VisitIndex,
		NextMilestone:   loyalty.NextMilestone,
	}
}

// CancelResponseFrom собирает результат отмены
func CancelResponseFrom(r *domain.Reservation, alreadyCancelled bool) *CancelResponse {
	resp := &CancelResponse{
		ID:               r.ID,
		Status:           string(r.Status),
		AlreadyCancelled: alreadyCancelled,
	}

	if r.CancelledAt != nil {
		cancelledStr := r.CancelledAt.Format(time.RFC3339)
		resp.CancelledAt = &cancelledStr
	}

	return resp
}

// ToDomainReservationStatus конвертирует строку в domain.ReservationStatus с валидацией
func ToDomainReservationStatus(status string) (domain.ReservationStatus, error) {
	s := domain.ReservationStatus(status)

	validStatuses := []domain.ReservationStatus{
		domain.StatusConfirmed,
		domain.StatusCancelled,
		domain.StatusNoShow,
	}

	for _, valid := range validStatuses {
		if s == valid {
			return s, nil
		}
	}

	return "", ErrInvalidStatus
}
