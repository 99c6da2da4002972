package models

import (
	"time"

	"github.com/m04kA/Restaurant-BookingService/internal/domain"
)

// Request модели

// UpdatePolicyRequest запрос на обновление политики зала
// Все поля опциональны - обновляются только переданные значения
type UpdatePolicyRequest struct {
	OpenTime              *string `json:"openTime,omitempty"`  // "10:00"
	CloseTime             *string `json:"closeTime,omitempty"` // "22:00"
	SlotStepMinutes       *int    `json:"slotStepMinutes,omitempty"`
	ClosedWeekday         *int    `json:"closedWeekday,omitempty"` // 0 = воскресенье
	NoClosedWeekday       bool    `json:"noClosedWeekday,omitempty"`
	DaytimeSeatingMinutes *int    `json:"daytimeSeatingMinutes,omitempty"`
	EveningSeatingMinutes *int    `json:"eveningSeatingMinutes,omitempty"`
	EveningFrom           *string `json:"eveningFrom,omitempty"`
	ReservableSeats       *int    `json:"reservableSeats,omitempty"`
	TotalSeats            *int    `json:"totalSeats,omitempty"`
	WalkInBuffer          *int    `json:"walkInBuffer,omitempty"`
	MaxPartySize          *int    `json:"maxPartySize,omitempty"`
}

// Response модели

// PolicyResponse ответ с политикой зала
type PolicyResponse struct {
	OpenTime              string    `json:"openTime"`
	CloseTime             string    `json:"closeTime"`
	SlotStepMinutes       int       `json:"slotStepMinutes"`
	ClosedWeekday         *int      `json:"closedWeekday,omitempty"`
	DaytimeSeatingMinutes int       `json:"daytimeSeatingMinutes"`
	EveningSeatingMinutes int       `json:"eveningSeatingMinutes"`
	EveningFrom           string    `json:"eveningFrom"`
	ReservableSeats       int       `json:"reservableSeats"`
	TotalSeats            int       `json:"totalSeats"`
	WalkInBuffer          int       `json:"walkInBuffer"`
	MaxPartySize          int       `json:"maxPartySize"`
	UpdatedAt             time.Time `json:"updatedAt"`
}

// FromDomainPolicy конвертирует domain модель в DTO
func FromDomainPolicy(p *domain.VenuePolicy) *PolicyResponse {
	if p == nil {
		return nil
	}

	return &PolicyResponse{
		OpenTime:              p.OpenTime.String(),
		CloseTime:             p.CloseTime.String(),
		SlotStepMinutes:       p.SlotStepMinutes,
		ClosedWeekday:         p.ClosedWeekday,
		DaytimeSeatingMinutes: p.DaytimeSeatingMinutes,
		EveningSeatingMinutes: p.EveningSeatingMinutes,
		EveningFrom:           p.EveningFrom.String(),
		ReservableSeats:       p.ReservableSeats,
		TotalSeats:            p.TotalSeats,
		WalkInBuffer:          p.WalkInBuffer,
		MaxPartySize:          p.MaxPartySize,
		UpdatedAt:             p.UpdatedAt,
	}
}
