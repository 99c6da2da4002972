package get_available_slots

import (
	"context"
	"time"

	"github.com/m04kA/Restaurant-BookingService/internal/domain"
)

// ReservationRepository интерфейс репозитория бронирований
type ReservationRepository interface {
	GetForDate(ctx context.Context, date time.Time) ([]*domain.Reservation, error)
}

// ClosureRepository интерфейс репозитория закрытий зала
type ClosureRepository interface {
	GetOverlapping(ctx context.Context, start, end time.Time) ([]*domain.Closure, error)
}

// PolicyProvider интерфейс доступа к действующей политике зала
type PolicyProvider interface {
	Current(ctx context.Context) (*domain.VenuePolicy, error)
}

// SlotsCache интерфейс кеша сетки слотов: сетка не зависит от размера
// компании, поэтому одна запись обслуживает все запросы на дату
type SlotsCache interface {
	GetSlots(ctx context.Context, date time.Time) ([]domain.AvailableSlot, bool)
	SaveSlots(ctx context.Context, date time.Time, slots []domain.AvailableSlot) error
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
