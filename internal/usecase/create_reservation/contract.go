package create_reservation

import (
	"context"
	"time"

	"github.com/m04kA/Restaurant-BookingService/internal/domain"
)

// ReservationRepository интерфейс репозитория бронирований
type ReservationRepository interface {
	Create(ctx context.Context, reservation *domain.Reservation) (*domain.Reservation, error)
	GetForDate(ctx context.Context, date time.Time) ([]*domain.Reservation, error)
	CountVisits(ctx context.Context, email string) (int, error)
}

// ClosureRepository интерфейс репозитория закрытий зала
type ClosureRepository interface {
	GetOverlapping(ctx context.Context, start, end time.Time) ([]*domain.Closure, error)
}

// PolicyProvider интерфейс доступа к действующей политике зала
type PolicyProvider interface {
	Current(ctx context.Context) (*domain.VenuePolicy, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// Notifier интерфейс отправки уведомлений гостям
type Notifier interface {
	Send(ctx context.Context, to, subject, body string) error
}

// SlotsCache интерфейс кеша сетки слотов
type SlotsCache interface {
	InvalidateDate(ctx context.Context, date time.Time) error
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
