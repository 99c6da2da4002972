package notify

import "errors"

var (
	// ErrSendFailed возвращается при ошибке отправки уведомления
	ErrSendFailed = errors.New("notify: failed to send notification")

	// ErrUnavailable возвращается, когда канал доставки недоступен
	// (circuit breaker открыт или соединение потеряно)
	ErrUnavailable = errors.New("notify: notifier unavailable")
)
