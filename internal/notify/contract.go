package notify

import "context"

// Notifier интерфейс доставки уведомлений гостям.
// Доставка best-effort: ошибка уведомления никогда не отменяет бронирование.
type Notifier interface {
	Send(ctx context.Context, to, subject, body string) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
