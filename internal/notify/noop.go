package notify

import "context"

// NoopNotifier заглушка для режима notifier.mode = "off":
// уведомления никуда не отправляются, факт фиксируется в логе
type NoopNotifier struct {
	logger Logger
}

// NewNoopNotifier создает notifier-заглушку
func NewNoopNotifier(logger Logger) *NoopNotifier {
	return &NoopNotifier{logger: logger}
}

// Send логирует уведомление вместо отправки
func (n *NoopNotifier) Send(_ context.Context, to, subject, _ string) error {
	n.logger.Info("Notification skipped (notifier disabled): to=%s, subject=%q", to, subject)
	return nil
}
