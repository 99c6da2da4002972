package models

import (
	"time"

	"github.com/m04kA/Restaurant-BookingService/internal/domain"
)

// Request модели

// CreateClosureRequest запрос на создание закрытия зала
type CreateClosureRequest struct {
	StartAt time.Time `json:"startAt"`
	EndAt   time.Time `json:"endAt"`
	Reason  string    `json:"reason"`
}

// Response модели

// ClosureResponse ответ с данными закрытия
type ClosureResponse struct {
	ID        int64     `json:"id"`
	StartAt   string    `json:"startAt"` // "2025-10-15 18:00"
	EndAt     string    `json:"endAt"`   // "2025-10-15 23:00"
	Reason    string    `json:"reason"`
	CreatedAt time.Time `json:"createdAt"`
}

// ClosureListResponse список закрытий, отсортированный по началу интервала
type ClosureListResponse struct {
	Closures []ClosureResponse `json:"closures"`
}

// Методы конвертации

// FromDomainClosure конвертирует domain модель в DTO
func FromDomainClosure(c *domain.Closure) *ClosureResponse {
	if c == nil {
		return nil
	}

	return &ClosureResponse{
		ID:        c.ID,
		StartAt:   c.StartAt.Format(domain.DateTimeFormat),
		EndAt:     c.EndAt.Format(domain.DateTimeFormat),
		Reason:    c.Reason,
		CreatedAt: c.CreatedAt,
	}
}
