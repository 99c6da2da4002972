package closures

import (
	"context"
	"time"

	"github.com/m04kA/Restaurant-BookingService/internal/domain"
)

// ClosureRepository интерфейс репозитория закрытий зала
type ClosureRepository interface {
	Create(ctx context.Context, closure *domain.Closure) (*domain.Closure, error)
	List(ctx context.Context) ([]*domain.Closure, error)
	Delete(ctx context.Context, id int64) (*domain.Closure, error)
}

// SlotsCache интерфейс кеша сетки слотов
type SlotsCache interface {
	InvalidateRange(ctx context.Context, from, to time.Time) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
