package reservations

import (
	"context"
	"time"

	"github.com/m04kA/Restaurant-BookingService/internal/domain"
)

// ReservationRepository интерфейс репозитория бронирований
type ReservationRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Reservation, error)
	GetByToken(ctx context.Context, token string) (*domain.Reservation, error)
	CancelByToken(ctx context.Context, token string) (*domain.Reservation, error)
	UpdateStatus(ctx context.Context, id int64, from, to domain.ReservationStatus) error
	GetWithFilter(ctx context.Context, filter domain.DayReservationsFilter) ([]*domain.Reservation, error)
	CountVisits(ctx context.Context, email string) (int, error)
}

// Notifier интерфейс отправки уведомлений гостям
type Notifier interface {
	Send(ctx context.Context, to, subject, body string) error
}

// SlotsCache интерфейс кеша сетки слотов
type SlotsCache interface {
	InvalidateDate(ctx context.Context, date time.Time) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
