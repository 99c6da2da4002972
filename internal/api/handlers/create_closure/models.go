package create_closure

import (
	"time"

	"github.com/m04kA/Restaurant-BookingService/internal/domain"
	"github.com/m04kA/Restaurant-BookingService/internal/service/closures/models"
)

// CreateClosureRequest HTTP request model
type CreateClosureRequest struct {
	StartAt string `json:"startAt"` // "2025-10-15 18:00"
	EndAt   string `json:"endAt"`   // "2025-10-15 23:00"
	Reason  string `json:"reason"`
}

// ToServiceRequest конвертирует HTTP запрос в модель сервиса (с парсингом времени)
func (r *CreateClosureRequest) ToServiceRequest() (*models.CreateClosureRequest, error) {
	startAt, err := time.ParseInLocation(domain.DateTimeFormat, r.StartAt, time.Local)
	if err != nil {
		return nil, err
	}

	endAt, err := time.ParseInLocation(domain.DateTimeFormat, r.EndAt, time.Local)
	if err != nil {
		return nil, err
	}

	return &models.CreateClosureRequest{
		StartAt: startAt,
		EndAt:   endAt,
		Reason:  r.Reason,
	}, nil
}
