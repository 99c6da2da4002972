package remindersweep

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/Restaurant-BookingService/internal/domain"
	"github.com/m04kA/Restaurant-BookingService/pkg/types"
)

// --- mocks ---

type mockReminderRepo struct {
	getDueFunc func(ctx context.Context, from, to time.Time) ([]*domain.Reservation, error)
	markFunc   func(ctx context.Context, id int64) error

	markedIDs []int64
}

func (m *mockReminderRepo) GetDueReminders(ctx context.Context, from, to time.Time) ([]*domain.Reservation, error) {
	return m.getDueFunc(ctx, from, to)
}

func (m *mockReminderRepo) MarkReminderSent(ctx context.Context, id int64) error {
	if m.markFunc != nil {
		if err := m.markFunc(ctx, id); err != nil {
			return err
		}
	}
	m.markedIDs = append(m.markedIDs, id)
	return nil
}

type sentMessage struct {
	to      string
	subject string
}

type mockNotifier struct {
	sent    []sentMessage
	failFor map[string]error // Адреса, доставка на которые падает
}

func (m *mockNotifier) Send(ctx context.Context, to, subject, body string) error {
	if err, ok := m.failFor[to]; ok {
		return err
	}
	m.sent = append(m.sent, sentMessage{to: to, subject: subject})
	return nil
}

type fixedTimeProvider struct {
	now time.Time
}

func (p *fixedTimeProvider) Now() time.Time {
	return p.now
}

type noopLogger struct{}

func (l *noopLogger) Info(format string, v ...interface{})  {}
func (l *noopLogger) Warn(format string, v ...interface{})  {}
func (l *noopLogger) Error(format string, v ...interface{}) {}

// Репозиторий в памяти: повторяет фильтр выборки напоминаний,
// чтобы проверить семантику at-least-once через несколько проходов
type memReminderRepo struct {
	mu           sync.Mutex
	reservations []*domain.Reservation
}

func (m *memReminderRepo) GetDueReminders(ctx context.Context, from, to time.Time) ([]*domain.Reservation, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	due := make([]*domain.Reservation, 0)
	for _, r := range m.reservations {
		if r.Status != domain.StatusConfirmed || r.IsWalkIn || r.ReminderSent {
			continue
		}
		startAt := r.StartAt()
		if !startAt.Before(from) && startAt.Before(to) {
			due = append(due, r)
		}
	}
	return due, nil
}

func (m *memReminderRepo) MarkReminderSent(ctx context.Context, id int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, r := range m.reservations {
		if r.ID == id {
			r.ReminderSent = true
		}
	}
	return nil
}

// --- helpers ---

func sweepNow() time.Time {
	return time.Date(2025, 6, 18, 12, 0, 0, 0, time.Local)
}

func confirmedFor(id int64, email string, date time.Time, startTime string) *domain.Reservation {
	return &domain.Reservation{
		ID:              id,
		CancelToken:     "token",
		Date:            date,
		StartTime:       types.TimeString(startTime),
		DurationMinutes: 120,
		Guests:          2,
		GuestName:       "Олег",
		GuestEmail:      email,
		Status:          domain.StatusConfirmed,
	}
}

func newWorker(repo ReservationRepository, notifier Notifier) *Worker {
	w := NewWorker(repo, notifier, &noopLogger{}, 30*time.Minute, 24*time.Hour, time.Hour)
	w.timeProvider = &fixedTimeProvider{now: sweepNow()}
	return w
}

// --- tests ---

func TestSweep_WindowBounds(t *testing.T) {
	var gotFrom, gotTo time.Time
	repo := &mockReminderRepo{
		getDueFunc: func(ctx context.Context, from, to time.Time) ([]*domain.Reservation, error) {
			gotFrom, gotTo = from, to
			return nil, nil
		},
	}
	w := newWorker(repo, &mockNotifier{})

	w.Sweep(context.Background())

	// now=18.06 12:00, lead=24h, window=1h
	assert.Equal(t, time.Date(2025, 6, 19, 12, 0, 0, 0, time.Local), gotFrom)
	assert.Equal(t, time.Date(2025, 6, 19, 13, 0, 0, 0, time.Local), gotTo)
}

func TestSweep_SendsAndMarks(t *testing.T) {
	tomorrow := time.Date(2025, 6, 19, 0, 0, 0, 0, time.Local)
	repo := &mockReminderRepo{
		getDueFunc: func(ctx context.Context, from, to time.Time) ([]*domain.Reservation, error) {
			return []*domain.Reservation{
				confirmedFor(1, "anna@example.com", tomorrow, "12:15"),
				confirmedFor(2, "oleg@example.com", tomorrow, "12:30"),
			}, nil
		},
	}
	notifier := &mockNotifier{}
	w := newWorker(repo, notifier)

	w.Sweep(context.Background())

	require.Len(t, notifier.sent, 2)
	assert.Equal(t, "anna@example.com", notifier.sent[0].to)
	assert.Equal(t, "Напоминание о брони", notifier.sent[0].subject)
	assert.Equal(t, []int64{1, 2}, repo.markedIDs)
}

func TestSweep_SendFailureSkipsMark(t *testing.T) {
	tomorrow := time.Date(2025, 6, 19, 0, 0, 0, 0, time.Local)
	repo := &mockReminderRepo{
		getDueFunc: func(ctx context.Context, from, to time.Time) ([]*domain.Reservation, error) {
			return []*domain.Reservation{
				confirmedFor(1, "broken@example.com", tomorrow, "12:15"),
				confirmedFor(2, "oleg@example.com", tomorrow, "12:30"),
			}, nil
		},
	}
	notifier := &mockNotifier{
		failFor: map[string]error{"broken@example.com": errors.New("smtp down")},
	}
	w := newWorker(repo, notifier)

	w.Sweep(context.Background())

	// Сбой первой доставки не останавливает проход и не помечает бронь
	require.Len(t, notifier.sent, 1)
	assert.Equal(t, "oleg@example.com", notifier.sent[0].to)
	assert.Equal(t, []int64{2}, repo.markedIDs)
}

func TestSweep_MarkFailureDoesNotStopSweep(t *testing.T) {
	tomorrow := time.Date(2025, 6, 19, 0, 0, 0, 0, time.Local)
	repo := &mockReminderRepo{
		getDueFunc: func(ctx context.Context, from, to time.Time) ([]*domain.Reservation, error) {
			return []*domain.Reservation{
				confirmedFor(1, "anna@example.com", tomorrow, "12:15"),
				confirmedFor(2, "oleg@example.com", tomorrow, "12:30"),
			}, nil
		},
		markFunc: func(ctx context.Context, id int64) error {
			if id == 1 {
				return errors.New("db down")
			}
			return nil
		},
	}
	notifier := &mockNotifier{}
	w := newWorker(repo, notifier)

	w.Sweep(context.Background())

	assert.Len(t, notifier.sent, 2)
	assert.Equal(t, []int64{2}, repo.markedIDs)
}

func TestSweep_FetchErrorStopsPass(t *testing.T) {
	repo := &mockReminderRepo{
		getDueFunc: func(ctx context.Context, from, to time.Time) ([]*domain.Reservation, error) {
			return nil, errors.New("db down")
		},
	}
	notifier := &mockNotifier{}
	w := newWorker(repo, notifier)

	w.Sweep(context.Background())

	assert.Empty(t, notifier.sent)
}

func TestSweep_ReservationRemindedExactlyOnceAcrossPasses(t *testing.T) {
	tomorrow := time.Date(2025, 6, 19, 0, 0, 0, 0, time.Local)
	repo := &memReminderRepo{
		reservations: []*domain.Reservation{
			confirmedFor(1, "anna@example.com", tomorrow, "12:15"),
		},
	}
	notifier := &mockNotifier{}
	w := newWorker(repo, notifier)

	// Окна соседних проходов перекрываются, но флаг исключает повтор
	w.Sweep(context.Background())
	w.Sweep(context.Background())

	assert.Len(t, notifier.sent, 1)
	assert.True(t, repo.reservations[0].ReminderSent)
}

func TestSweep_FailedDeliveryRetriedNextPass(t *testing.T) {
	tomorrow := time.Date(2025, 6, 19, 0, 0, 0, 0, time.Local)
	repo := &memReminderRepo{
		reservations: []*domain.Reservation{
			confirmedFor(1, "anna@example.com", tomorrow, "12:15"),
		},
	}
	notifier := &mockNotifier{
		failFor: map[string]error{"anna@example.com": errors.New("smtp down")},
	}
	w := newWorker(repo, notifier)

	w.Sweep(context.Background())
	require.Empty(t, notifier.sent)
	require.False(t, repo.reservations[0].ReminderSent)

	// Доставка восстановилась - следующий проход подхватывает бронь
	notifier.failFor = nil
	w.Sweep(context.Background())

	assert.Len(t, notifier.sent, 1)
	assert.True(t, repo.reservations[0].ReminderSent)
}

func TestSweep_OutsideWindowNotSelected(t *testing.T) {
	repo := &memReminderRepo{
		reservations: []*domain.Reservation{
			// Начало ровно на верхней границе окна [12:00, 13:00) следующего дня
			confirmedFor(1, "anna@example.com", time.Date(2025, 6, 19, 0, 0, 0, 0, time.Local), "13:00"),
			// Уже в прошлом относительно окна
			confirmedFor(2, "oleg@example.com", time.Date(2025, 6, 18, 0, 0, 0, 0, time.Local), "18:00"),
		},
	}
	notifier := &mockNotifier{}
	w := newWorker(repo, notifier)

	w.Sweep(context.Background())

	assert.Empty(t, notifier.sent)
}

func TestRun_StopsOnContextCancel(t *testing.T) {
	repo := &mockReminderRepo{
		getDueFunc: func(ctx context.Context, from, to time.Time) ([]*domain.Reservation, error) {
			return nil, nil
		},
	}
	w := newWorker(repo, &mockNotifier{})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	done := make(chan struct{})
	go func() {
		w.Run(ctx)
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("worker did not stop after context cancellation")
	}
}
