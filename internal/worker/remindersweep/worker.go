package remindersweep

import (
	"context"
	"time"

	"github.com/m04kA/Restaurant-BookingService/internal/notify"
)

// Worker фоновая рассылка напоминаний о предстоящих визитах.
// Гарантия at-least-once: флаг reminder_sent выставляется только после
// успешной отправки, поэтому сбой доставки означает повтор в следующем
// проходе, а не потерянное напоминание.
type Worker struct {
	reservationRepo ReservationRepository
	notifier        Notifier
	timeProvider    TimeProvider
	logger          Logger

	interval time.Duration
	lead     time.Duration
	window   time.Duration
}

// NewWorker создает новый воркер напоминаний.
// interval — период между проходами, lead — за сколько до визита напоминать,
// window — ширина окна выборки одного прохода.
func NewWorker(
	reservationRepo ReservationRepository,
	notifier Notifier,
	logger Logger,
	interval, lead, window time.Duration,
) *Worker {
	return &Worker{
		reservationRepo: reservationRepo,
		notifier:        notifier,
		timeProvider:    &RealTimeProvider{},
		logger:          logger,
		interval:        interval,
		lead:            lead,
		window:          window,
	}
}

// Run запускает цикл рассылки до отмены контекста
func (w *Worker) Run(ctx context.Context) {
	w.logger.Info("Run: reminder sweep started, interval=%s lead=%s window=%s", w.interval, w.lead, w.window)

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	// Первый проход сразу: после рестарта не ждём целый интервал
	w.Sweep(ctx)

	for {
		select {
		case <-ticker.C:
			w.Sweep(ctx)
		case <-ctx.Done():
			w.logger.Info("Run: reminder sweep stopped")
			return
		}
	}
}

// Sweep выполняет один проход: выбирает подтверждённые брони, начинающиеся
// в окне [now+lead, now+lead+window), и рассылает напоминания. Неудачная
// отправка оставляет флаг снятым - бронь попадёт в следующий проход.
func (w *Worker) Sweep(ctx context.Context) {
	now := w.timeProvider.Now()
	from := now.Add(w.lead)
	to := from.Add(w.window)

	due, err := w.reservationRepo.GetDueReminders(ctx, from, to)
	if err != nil {
		w.logger.Error("Sweep: failed to fetch due reminders: %v", err)
		return
	}

	if len(due) == 0 {
		return
	}

	w.logger.Info("Sweep: found %d reservations due for reminder", len(due))

	sent := 0
	for _, reservation := range due {
		subject, body := notify.ReminderMessage(reservation)
		if err := w.notifier.Send(ctx, reservation.GuestEmail, subject, body); err != nil {
			w.logger.Warn("Sweep: failed to send reminder for reservation id=%d: %v", reservation.ID, err)
			continue
		}

		if err := w.reservationRepo.MarkReminderSent(ctx, reservation.ID); err != nil {
			// Письмо ушло, флаг не выставлен: следующий проход отправит повторно
			w.logger.Error("Sweep: failed to mark reminder sent for reservation id=%d: %v", reservation.ID, err)
			continue
		}

		sent++
	}

	w.logger.Info("Sweep: sent %d of %d reminders", sent, len(due))
}
