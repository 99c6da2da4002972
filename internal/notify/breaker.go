package notify

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sony/gobreaker/v2"
)

// BreakerNotifier оборачивает notifier в circuit breaker:
// после серии ошибок доставки канал на время отключается, чтобы
// падающий SMTP/брокер не задерживал обработку бронирований
type BreakerNotifier struct {
	inner   Notifier
	breaker *gobreaker.CircuitBreaker[struct{}]
	logger  Logger
}

// WithBreaker оборачивает notifier в circuit breaker
func WithBreaker(inner Notifier, logger Logger) *BreakerNotifier {
	n := &BreakerNotifier{
		inner:  inner,
		logger: logger,
	}

	n.breaker = gobreaker.NewCircuitBreaker[struct{}](gobreaker.Settings{
		Name:        "notifier",
		MaxRequests: 1,
		Timeout:     30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 5
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logger.Warn("Notifier circuit breaker %s: %s -> %s", name, from, to)
		},
	})

	return n
}

// Send отправляет уведомление через breaker
func (n *BreakerNotifier) Send(ctx context.Context, to, subject, body string) error {
	_, err := n.breaker.Execute(func() (struct{}, error) {
		return struct{}{}, n.inner.Send(ctx, to, subject, body)
	})

	if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
		return fmt.Errorf("%w: circuit breaker open", ErrUnavailable)
	}

	return err
}
