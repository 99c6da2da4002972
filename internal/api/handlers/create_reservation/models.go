package create_reservation

import (
	"time"

	"github.com/m04kA/Restaurant-BookingService/internal/domain"
	createReservation "github.com/m04kA/Restaurant-BookingService/internal/usecase/create_reservation"
	"github.com/m04kA/Restaurant-BookingService/pkg/types"
)

// CreateReservationRequest HTTP request model
type CreateReservationRequest struct {
	Date       string  `json:"date"`      // "2025-10-15"
	StartTime  string  `json:"startTime"` // "18:00"
	Guests     int     `json:"guests"`
	GuestName  string  `json:"guestName"`
	GuestEmail string  `json:"guestEmail"`
	GuestPhone *string `json:"guestPhone,omitempty"`
	Notes      *string `json:"notes,omitempty"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case (с парсингом даты)
func (r *CreateReservationRequest) ToUseCaseRequest() (*createReservation.Request, error) {
	date, err := time.ParseInLocation(domain.DateFormat, r.Date, time.Local)
	if err != nil {
		return nil, err
	}

	return &createReservation.Request{
		Date:       date,
		StartTime:  types.TimeString(r.StartTime),
		Guests:     r.Guests,
		GuestName:  r.GuestName,
		GuestEmail: r.GuestEmail,
		GuestPhone: r.GuestPhone,
		Notes:      r.Notes,
	}, nil
}

// LoyaltyInfo статус лояльности гостя с учётом созданной брони
type LoyaltyInfo struct {
	DiscountPercent int  `json:"discountPercent"`
	VisitIndex      int  `json:"visitIndex"`
	NextMilestone   *int `json:"nextMilestone,omitempty"`
}

// ReservationResponse HTTP response model
type ReservationResponse struct {
	ID              int64       `json:"id"`
	CancelToken     string      `json:"cancelToken"`
	Date            string      `json:"date"`
	StartTime       string      `json:"startTime"`
	DurationMinutes int         `json:"durationMinutes"`
	Guests          int         `json:"guests"`
	GuestName       string      `json:"guestName"`
	GuestEmail      string      `json:"guestEmail"`
	Status          string      `json:"status"`
	Loyalty         LoyaltyInfo `json:"loyalty"`
	CreatedAt       time.Time   `json:"createdAt"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *createReservation.Response) *ReservationResponse {
	return &ReservationResponse{
		ID:              resp.ID,
		CancelToken:     resp.CancelToken,
		Date:            resp.Date.Format(domain.DateFormat),
		StartTime:       resp.StartTime.String(),
		DurationMinutes: resp.DurationMinutes,
		Guests:          resp.Guests,
		GuestName:       resp.GuestName,
		GuestEmail:      resp.GuestEmail,
		Status:          resp.Status,
		Loyalty: LoyaltyInfo{
			DiscountPercent: resp.Loyalty.DiscountPercent,
			VisitIndex:      resp.Loyalty.VisitIndex,
			NextMilestone:   resp.Loyalty.NextMilestone,
		},
		CreatedAt: resp.CreatedAt,
	}
}
