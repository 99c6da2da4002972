package create_reservation

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/Restaurant-BookingService/internal/domain"
	"github.com/m04kA/Restaurant-BookingService/pkg/ptr"
	"github.com/m04kA/Restaurant-BookingService/pkg/types"
)

// --- mocks ---

type mockReservationRepo struct {
	createFunc      func(ctx context.Context, reservation *domain.Reservation) (*domain.Reservation, error)
	getForDateFunc  func(ctx context.Context, date time.Time) ([]*domain.Reservation, error)
	countVisitsFunc func(ctx context.Context, email string) (int, error)
}

func (m *mockReservationRepo) Create(ctx context.Context, reservation *domain.Reservation) (*domain.Reservation, error) {
	return m.createFunc(ctx, reservation)
}

func (m *mockReservationRepo) GetForDate(ctx context.Context, date time.Time) ([]*domain.Reservation, error) {
	return m.getForDateFunc(ctx, date)
}

func (m *mockReservationRepo) CountVisits(ctx context.Context, email string) (int, error) {
	return m.countVisitsFunc(ctx, email)
}

type mockClosureRepo struct {
	getOverlappingFunc func(ctx context.Context, start, end time.Time) ([]*domain.Closure, error)
}

func (m *mockClosureRepo) GetOverlapping(ctx context.Context, start, end time.Time) ([]*domain.Closure, error) {
	return m.getOverlappingFunc(ctx, start, end)
}

type mockPolicyProvider struct {
	policy *domain.VenuePolicy
	err    error
}

func (m *mockPolicyProvider) Current(ctx context.Context) (*domain.VenuePolicy, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.policy, nil
}

// fakeTxManager сериализует вызовы мьютексом, имитируя сериализуемые транзакции
type fakeTxManager struct {
	mu sync.Mutex
}

func (m *fakeTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return fn(ctx)
}

type sentMessage struct {
	to      string
	subject string
}

type mockNotifier struct {
	mu   sync.Mutex
	sent []sentMessage
	err  error
}

func (m *mockNotifier) Send(ctx context.Context, to, subject, body string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	m.sent = append(m.sent, sentMessage{to: to, subject: subject})
	return nil
}

type mockSlotsCache struct {
	mu          sync.Mutex
	invalidated []time.Time
}

func (m *mockSlotsCache) InvalidateDate(ctx context.Context, date time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.invalidated = append(m.invalidated, date)
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

// --- helpers ---

func testNow() time.Time {
	return time.Date(2025, 6, 10, 12, 0, 0, 0, time.Local)
}

// 2025-06-18 — среда, рабочий день при выходном в понедельник
func futureDate() time.Time {
	return time.Date(2025, 6, 18, 0, 0, 0, 0, time.Local)
}

func defaultPolicyPtr() *domain.VenuePolicy {
	policy := domain.DefaultPolicy()
	return &policy
}

func emptyDayRepo() *mockReservationRepo {
	return &mockReservationRepo{
		createFunc: func(ctx context.Context, reservation *domain.Reservation) (*domain.Reservation, error) {
			created := *reservation
			created.ID = 1
			created.CreatedAt = testNow()
			created.UpdatedAt = testNow()
			return &created, nil
		},
		getForDateFunc: func(ctx context.Context, date time.Time) ([]*domain.Reservation, error) {
			return nil, nil
		},
		countVisitsFunc: func(ctx context.Context, email string) (int, error) {
			return 1, nil
		},
	}
}

func noClosures() *mockClosureRepo {
	return &mockClosureRepo{
		getOverlappingFunc: func(ctx context.Context, start, end time.Time) ([]*domain.Closure, error) {
			return nil, nil
		},
	}
}

type testEnv struct {
	uc       *UseCase
	notifier *mockNotifier
	cache    *mockSlotsCache
}

func newTestEnv(repo *mockReservationRepo, closures *mockClosureRepo, policy *domain.VenuePolicy) *testEnv {
	notifier := &mockNotifier{}
	cache := &mockSlotsCache{}

	uc := NewUseCase(
		repo,
		closures,
		&mockPolicyProvider{policy: policy},
		&fakeTxManager{},
		notifier,
		cache,
		&noopLogger{},
	)
	uc.timeProvider = &fixedTimeProvider{now: testNow()}

	return &testEnv{uc: uc, notifier: notifier, cache: cache}
}

func validRequest() *Request {
	return &Request{
		Date:       futureDate(),
		StartTime:  types.TimeString("18:00"),
		Guests:     4,
		GuestName:  "Анна",
		GuestEmail: "anna@example.com",
	}
}

// --- tests ---

func TestExecute_Success(t *testing.T) {
	env := newTestEnv(emptyDayRepo(), noClosures(), defaultPolicyPtr())

	resp, err := env.uc.Execute(context.Background(), validRequest())

	require.NoError(t, err)
	assert.Equal(t, int64(1), resp.ID)
	assert.NotEmpty(t, resp.CancelToken)
	assert.Equal(t, types.TimeString("18:00"), resp.StartTime)
	assert.Equal(t, domain.DefaultEveningSeatingMinutes, resp.DurationMinutes)
	assert.Equal(t, string(domain.StatusConfirmed), resp.Status)
	assert.Equal(t, 1, resp.Loyalty.VisitIndex)
	assert.Equal(t, 0, resp.Loyalty.DiscountPercent)

	require.Len(t, env.notifier.sent, 1)
	assert.Equal(t, "anna@example.com", env.notifier.sent[0].to)

	require.Len(t, env.cache.invalidated, 1)
	assert.Equal(t, futureDate(), env.cache.invalidated[0])
}

func TestExecute_DaytimeDuration(t *testing.T) {
	env := newTestEnv(emptyDayRepo(), noClosures(), defaultPolicyPtr())

	req := validRequest()
	req.StartTime = types.TimeString("12:00")

	resp, err := env.uc.Execute(context.Background(), req)

	require.NoError(t, err)
	assert.Equal(t, domain.DefaultDaytimeSeatingMinutes, resp.DurationMinutes)
}

func TestExecute_InvalidInput(t *testing.T) {
	env := newTestEnv(emptyDayRepo(), noClosures(), defaultPolicyPtr())

	cases := []struct {
		name   string
		modify func(req *Request)
	}{
		{"zero guests", func(req *Request) { req.Guests = 0 }},
		{"negative guests", func(req *Request) { req.Guests = -2 }},
		{"empty name", func(req *Request) { req.GuestName = "" }},
		{"bad email", func(req *Request) { req.GuestEmail = "not-an-email" }},
		{"reserved email", func(req *Request) { req.GuestEmail = domain.WalkInGuestEmail }},
		{"zero date", func(req *Request) { req.Date = time.Time{} }},
		{"bad time", func(req *Request) { req.StartTime = types.TimeString("25:99") }},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := validRequest()
			tc.modify(req)

			_, err := env.uc.Execute(context.Background(), req)

			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}
}

func TestExecute_PastDate(t *testing.T) {
	env := newTestEnv(emptyDayRepo(), noClosures(), defaultPolicyPtr())

	req := validRequest()
	req.Date = time.Date(2025, 6, 9, 0, 0, 0, 0, time.Local)

	_, err := env.uc.Execute(context.Background(), req)

	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestExecute_ClosedDay(t *testing.T) {
	env := newTestEnv(emptyDayRepo(), noClosures(), defaultPolicyPtr())

	req := validRequest()
	req.Date = time.Date(2025, 6, 16, 0, 0, 0, 0, time.Local) // Понедельник

	_, err := env.uc.Execute(context.Background(), req)

	assert.ErrorIs(t, err, ErrClosedDay)
	assert.Empty(t, env.notifier.sent)
	assert.Empty(t, env.cache.invalidated)
}

func TestExecute_OutsideHours(t *testing.T) {
	env := newTestEnv(emptyDayRepo(), noClosures(), defaultPolicyPtr())

	cases := []struct {
		name  string
		start string
	}{
		{"before opening", "09:00"},
		{"seating runs past closing", "21:00"},
		{"at closing time", "22:30"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := validRequest()
			req.StartTime = types.TimeString(tc.start)

			_, err := env.uc.Execute(context.Background(), req)

			assert.ErrorIs(t, err, ErrOutsideHours)
		})
	}
}

func TestExecute_SlotOffGrid(t *testing.T) {
	env := newTestEnv(emptyDayRepo(), noClosures(), defaultPolicyPtr())

	req := validRequest()
	req.StartTime = types.TimeString("18:07")

	_, err := env.uc.Execute(context.Background(), req)

	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestExecute_Blocked(t *testing.T) {
	closures := &mockClosureRepo{
		getOverlappingFunc: func(ctx context.Context, start, end time.Time) ([]*domain.Closure, error) {
			return []*domain.Closure{
				{ID: 7, StartAt: start, EndAt: end, Reason: "банкет"},
			}, nil
		},
	}
	env := newTestEnv(emptyDayRepo(), closures, defaultPolicyPtr())

	_, err := env.uc.Execute(context.Background(), validRequest())

	assert.ErrorIs(t, err, ErrBlocked)
	assert.Empty(t, env.notifier.sent)
}

func TestExecute_TooManyGuests(t *testing.T) {
	env := newTestEnv(emptyDayRepo(), noClosures(), defaultPolicyPtr())

	req := validRequest()
	req.Guests = domain.DefaultMaxPartySize + 1

	_, err := env.uc.Execute(context.Background(), req)

	assert.ErrorIs(t, err, ErrTooManyGuests)
}

func TestExecute_FullyBooked(t *testing.T) {
	repo := emptyDayRepo()
	repo.getForDateFunc = func(ctx context.Context, date time.Time) ([]*domain.Reservation, error) {
		// Онлайн-пул полностью занят одной бронью
		return []*domain.Reservation{
			{
				Date:            futureDate(),
				StartTime:       types.TimeString("18:00"),
				DurationMinutes: 120,
				Guests:          domain.DefaultReservableSeats,
				Status:          domain.StatusConfirmed,
			},
		}, nil
	}
	env := newTestEnv(repo, noClosures(), defaultPolicyPtr())

	_, err := env.uc.Execute(context.Background(), validRequest())

	assert.ErrorIs(t, err, ErrFullyBooked)
	assert.Empty(t, env.notifier.sent)
	assert.Empty(t, env.cache.invalidated)
}

func TestExecute_FullyBooked_WalkInsBeyondBuffer(t *testing.T) {
	repo := emptyDayRepo()
	repo.getForDateFunc = func(ctx context.Context, date time.Time) ([]*domain.Reservation, error) {
		// 38 онлайн + 10 walk-in при буфере 8: пул онлайн-мест равен нулю
		return []*domain.Reservation{
			{
				Date:            futureDate(),
				StartTime:       types.TimeString("18:00"),
				DurationMinutes: 120,
				Guests:          38,
				Status:          domain.StatusConfirmed,
			},
			{
				Date:            futureDate(),
				StartTime:       types.TimeString("18:00"),
				DurationMinutes: 120,
				Guests:          10,
				IsWalkIn:        true,
				Status:          domain.StatusConfirmed,
			},
		}, nil
	}
	env := newTestEnv(repo, noClosures(), defaultPolicyPtr())

	req := validRequest()
	req.Guests = 1

	_, err := env.uc.Execute(context.Background(), req)

	assert.ErrorIs(t, err, ErrFullyBooked)
}

func TestExecute_CancelledReservationsFreeSeats(t *testing.T) {
	repo := emptyDayRepo()
	repo.getForDateFunc = func(ctx context.Context, date time.Time) ([]*domain.Reservation, error) {
		return []*domain.Reservation{
			{
				Date:            futureDate(),
				StartTime:       types.TimeString("18:00"),
				DurationMinutes: 120,
				Guests:          domain.DefaultReservableSeats,
				Status:          domain.StatusCancelled,
			},
		}, nil
	}
	env := newTestEnv(repo, noClosures(), defaultPolicyPtr())

	_, err := env.uc.Execute(context.Background(), validRequest())

	assert.NoError(t, err)
}

func TestExecute_NonOverlappingSlotsDoNotCompete(t *testing.T) {
	repo := emptyDayRepo()
	repo.getForDateFunc = func(ctx context.Context, date time.Time) ([]*domain.Reservation, error) {
		// Дневная бронь заканчивается в 13:30, вечерняя начинается в 18:00
		return []*domain.Reservation{
			{
				Date:            futureDate(),
				StartTime:       types.TimeString("12:00"),
				DurationMinutes: 90,
				Guests:          domain.DefaultReservableSeats,
				Status:          domain.StatusConfirmed,
			},
		}, nil
	}
	env := newTestEnv(repo, noClosures(), defaultPolicyPtr())

	_, err := env.uc.Execute(context.Background(), validRequest())

	assert.NoError(t, err)
}

func TestExecute_LoyaltyMilestones(t *testing.T) {
	cases := []struct {
		visits        int
		discount      int
		nextMilestone *int
	}{
		{visits: 1, discount: 0, nextMilestone: nil},
		{visits: 4, discount: 0, nextMilestone: ptr.Ptr(5)},
		{visits: 5, discount: 5, nextMilestone: nil},
		{visits: 9, discount: 5, nextMilestone: ptr.Ptr(10)},
		{visits: 10, discount: 10, nextMilestone: nil},
		{visits: 14, discount: 10, nextMilestone: ptr.Ptr(15)},
		{visits: 15, discount: 15, nextMilestone: nil},
		{visits: 40, discount: 15, nextMilestone: nil},
	}

	for _, tc := range cases {
		t.Run(fmt.Sprintf("visits=%d", tc.visits), func(t *testing.T) {
			repo := emptyDayRepo()
			repo.countVisitsFunc = func(ctx context.Context, email string) (int, error) {
				return tc.visits, nil
			}
			env := newTestEnv(repo, noClosures(), defaultPolicyPtr())

			resp, err := env.uc.Execute(context.Background(), validRequest())

			require.NoError(t, err)
			assert.Equal(t, tc.discount, resp.Loyalty.DiscountPercent)
			assert.Equal(t, tc.visits, resp.Loyalty.VisitIndex)
			assert.Equal(t, tc.nextMilestone, resp.Loyalty.NextMilestone)
		})
	}
}

func TestExecute_NotifierFailureKeepsReservation(t *testing.T) {
	env := newTestEnv(emptyDayRepo(), noClosures(), defaultPolicyPtr())
	env.notifier.err = errors.New("smtp down")

	resp, err := env.uc.Execute(context.Background(), validRequest())

	require.NoError(t, err)
	assert.Equal(t, int64(1), resp.ID)
	assert.Empty(t, env.notifier.sent)
}

func TestExecute_RejectionOrder_ClosedDayBeforeBlocked(t *testing.T) {
	// На выходной день наложено закрытие: ответ должен быть про выходной
	closures := &mockClosureRepo{
		getOverlappingFunc: func(ctx context.Context, start, end time.Time) ([]*domain.Closure, error) {
			return []*domain.Closure{{ID: 1, StartAt: start, EndAt: end}}, nil
		},
	}
	env := newTestEnv(emptyDayRepo(), closures, defaultPolicyPtr())

	req := validRequest()
	req.Date = time.Date(2025, 6, 16, 0, 0, 0, 0, time.Local) // Понедельник

	_, err := env.uc.Execute(context.Background(), req)

	assert.ErrorIs(t, err, ErrClosedDay)
}

func TestExecute_RejectionOrder_BlockedBeforeCapacity(t *testing.T) {
	closures := &mockClosureRepo{
		getOverlappingFunc: func(ctx context.Context, start, end time.Time) ([]*domain.Closure, error) {
			return []*domain.Closure{{ID: 1, StartAt: start, EndAt: end}}, nil
		},
	}
	repo := emptyDayRepo()
	repo.getForDateFunc = func(ctx context.Context, date time.Time) ([]*domain.Reservation, error) {
		return []*domain.Reservation{
			{
				Date:            futureDate(),
				StartTime:       types.TimeString("18:00"),
				DurationMinutes: 120,
				Guests:          domain.DefaultTotalSeats,
				Status:          domain.StatusConfirmed,
			},
		}, nil
	}
	env := newTestEnv(repo, noClosures(), defaultPolicyPtr())
	env.uc.closureRepo = closures

	_, err := env.uc.Execute(context.Background(), validRequest())

	assert.ErrorIs(t, err, ErrBlocked)
}

// inMemoryReservationRepo потокобезопасный репозиторий для конкурентных тестов
type inMemoryReservationRepo struct {
	mu           sync.Mutex
	nextID       int64
	reservations []*domain.Reservation
}

func (m *inMemoryReservationRepo) Create(ctx context.Context, reservation *domain.Reservation) (*domain.Reservation, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.nextID++
	created := *reservation
	created.ID = m.nextID
	created.CreatedAt = testNow()
	created.UpdatedAt = testNow()
	m.reservations = append(m.reservations, &created)
	return &created, nil
}

func (m *inMemoryReservationRepo) GetForDate(ctx context.Context, date time.Time) ([]*domain.Reservation, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make([]*domain.Reservation, len(m.reservations))
	copy(out, m.reservations)
	return out, nil
}

func (m *inMemoryReservationRepo) CountVisits(ctx context.Context, email string) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	count := 0
	for _, r := range m.reservations {
		if r.GuestEmail == email && !r.IsWalkIn && !r.IsCancelled() {
			count++
		}
	}
	return count, nil
}

func (m *inMemoryReservationRepo) totalGuests() int {
	m.mu.Lock()
	defer m.mu.Unlock()

	total := 0
	for _, r := range m.reservations {
		total += r.Guests
	}
	return total
}

func TestExecute_ConcurrentRequestsNeverOverbook(t *testing.T) {
	repo := &inMemoryReservationRepo{}
	env := newTestEnv(nil, noClosures(), defaultPolicyPtr())
	env.uc.reservationRepo = repo

	const workers = 30
	const partySize = 4

	var wg sync.WaitGroup
	results := make(chan error, workers)

	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()

			req := validRequest()
			req.Guests = partySize
			req.GuestEmail = fmt.Sprintf("guest%d@example.com", n)

			_, err := env.uc.Execute(context.Background(), req)
			results <- err
		}(i)
	}

	wg.Wait()
	close(results)

	admitted, rejected := 0, 0
	for err := range results {
		if err == nil {
			admitted++
			continue
		}
		require.ErrorIs(t, err, ErrFullyBooked)
		rejected++
	}

	// 40 онлайн-мест вмещают ровно 10 компаний по 4 гостя
	assert.Equal(t, domain.DefaultReservableSeats/partySize, admitted)
	assert.Equal(t, workers-admitted, rejected)
	assert.LessOrEqual(t, repo.totalGuests(), domain.DefaultReservableSeats)
}
