package create_walkin

import (
	"time"

	"github.com/m04kA/Restaurant-BookingService/internal/domain"
	createWalkin "github.com/m04kA/Restaurant-BookingService/internal/usecase/create_walkin"
	"github.com/m04kA/Restaurant-BookingService/pkg/types"
)

// CreateWalkinRequest HTTP request model
type CreateWalkinRequest struct {
	Date      string  `json:"date"`      // "2025-10-15"
	StartTime string  `json:"startTime"` // "19:37" - любое время, не обязано лежать на сетке
	Guests    int     `json:"guests"`
	Notes     *string `json:"notes,omitempty"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case (с парсингом даты)
func (r *CreateWalkinRequest) ToUseCaseRequest() (*createWalkin.Request, error) {
	date, err := time.ParseInLocation(domain.DateFormat, r.Date, time.Local)
	if err != nil {
		return nil, err
	}

	return &createWalkin.Request{
		Date:      date,
		StartTime: types.TimeString(r.StartTime),
		Guests:    r.Guests,
		Notes:     r.Notes,
	}, nil
}

// WalkinResponse HTTP response model
type WalkinResponse struct {
	ID              int64     `json:"id"`
	Date            string    `json:"date"`
	StartTime       string    `json:"startTime"`
	DurationMinutes int       `json:"durationMinutes"`
	Guests          int       `json:"guests"`
	Status          string    `json:"status"`
	CreatedAt       time.Time `json:"createdAt"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *createWalkin.Response) *WalkinResponse {
	return &WalkinResponse{
		ID:              resp.ID,
		Date:            resp.Date.Format(domain.DateFormat),
		StartTime:       resp.StartTime.String(),
		DurationMinutes: resp.DurationMinutes,
		Guests:          resp.Guests,
		Status:          resp.Status,
		CreatedAt:       resp.CreatedAt,
	}
}
