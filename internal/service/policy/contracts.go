package policy

import (
	"context"

	"github.com/m04kA/Restaurant-BookingService/internal/domain"
)

// PolicyRepository интерфейс репозитория политики зала
type PolicyRepository interface {
	Get(ctx context.Context) (*domain.VenuePolicy, error)
	Update(ctx context.Context, policy *domain.VenuePolicy) (*domain.VenuePolicy, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
