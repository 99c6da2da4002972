package create_walkin

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/Restaurant-BookingService/internal/domain"
	"github.com/m04kA/Restaurant-BookingService/pkg/types"
)

// --- mocks ---

type mockReservationRepo struct {
	createFunc     func(ctx context.Context, reservation *domain.Reservation) (*domain.Reservation, error)
	getForDateFunc func(ctx context.Context, date time.Time) ([]*domain.Reservation, error)
}

func (m *mockReservationRepo) Create(ctx context.Context, reservation *domain.Reservation) (*domain.Reservation, error) {
	return m.createFunc(ctx, reservation)
}

func (m *mockReservationRepo) GetForDate(ctx context.Context, date time.Time) ([]*domain.Reservation, error) {
	return m.getForDateFunc(ctx, date)
}

type mockPolicyProvider struct {
	policy *domain.VenuePolicy
}

func (m *mockPolicyProvider) Current(ctx context.Context) (*domain.VenuePolicy, error) {
	return m.policy, nil
}

type fakeTxManager struct{}

func (m *fakeTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type mockSlotsCache struct {
	invalidated []time.Time
}

func (m *mockSlotsCache) InvalidateDate(ctx context.Context, date time.Time) error {
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

func futureDate() time.Time {
	return time.Date(2025, 6, 18, 0, 0, 0, 0, time.Local)
}

func newUseCaseWithDay(reservations []*domain.Reservation) (*UseCase, *mockReservationRepo, *mockSlotsCache) {
	repo := &mockReservationRepo{
		createFunc: func(ctx context.Context, reservation *domain.Reservation) (*domain.Reservation, error) {
			created := *reservation
			created.ID = 10
			created.CreatedAt = testNow()
			return &created, nil
		},
		getForDateFunc: func(ctx context.Context, date time.Time) ([]*domain.Reservation, error) {
			return reservations, nil
		},
	}

	policy := domain.DefaultPolicy()
	cache := &mockSlotsCache{}

	uc := NewUseCase(repo, &mockPolicyProvider{policy: &policy}, &fakeTxManager{}, cache, &noopLogger{})
	uc.timeProvider = &fixedTimeProvider{now: testNow()}

	return uc, repo, cache
}

func validRequest() *Request {
	return &Request{
		Date:      futureDate(),
		StartTime: types.TimeString("19:03"),
		Guests:    3,
	}
}

// --- tests ---

func TestExecute_Success(t *testing.T) {
	uc, repo, cache := newUseCaseWithDay(nil)

	var created *domain.Reservation
	baseCreate := repo.createFunc
	repo.createFunc = func(ctx context.Context, reservation *domain.Reservation) (*domain.Reservation, error) {
		created = reservation
		return baseCreate(ctx, reservation)
	}

	resp, err := uc.Execute(context.Background(), validRequest())

	require.NoError(t, err)
	assert.Equal(t, int64(10), resp.ID)
	assert.Equal(t, 3, resp.Guests)
	assert.Equal(t, string(domain.StatusConfirmed), resp.Status)

	require.NotNil(t, created)
	assert.True(t, created.IsWalkIn)
	assert.Equal(t, domain.WalkInGuestName, created.GuestName)
	assert.Equal(t, domain.WalkInGuestEmail, created.GuestEmail)
	assert.NotEmpty(t, created.CancelToken)

	require.Len(t, cache.invalidated, 1)
}

func TestExecute_OffGridTimeAccepted(t *testing.T) {
	uc, _, _ := newUseCaseWithDay(nil)

	req := validRequest()
	req.StartTime = types.TimeString("18:47")

	resp, err := uc.Execute(context.Background(), req)

	require.NoError(t, err)
	assert.Equal(t, types.TimeString("18:47"), resp.StartTime)
}

func TestExecute_LateSeatingPastClosingAccepted(t *testing.T) {
	uc, _, _ := newUseCaseWithDay(nil)

	// Посадка в 22:00 заканчивается в полночь, сильно позже закрытия
	req := validRequest()
	req.StartTime = types.TimeString("22:00")

	resp, err := uc.Execute(context.Background(), req)

	require.NoError(t, err)
	assert.Equal(t, domain.DefaultEveningSeatingMinutes, resp.DurationMinutes)
}

func TestExecute_BeforeOpeningRejected(t *testing.T) {
	uc, _, _ := newUseCaseWithDay(nil)

	req := validRequest()
	req.StartTime = types.TimeString("09:30")

	_, err := uc.Execute(context.Background(), req)

	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestExecute_ClosedDayRejected(t *testing.T) {
	uc, _, _ := newUseCaseWithDay(nil)

	req := validRequest()
	req.Date = time.Date(2025, 6, 16, 0, 0, 0, 0, time.Local) // Понедельник

	_, err := uc.Execute(context.Background(), req)

	assert.ErrorIs(t, err, ErrClosedDay)
}

func TestExecute_NoPartySizeLimit(t *testing.T) {
	uc, _, _ := newUseCaseWithDay(nil)

	// Больше онлайн-лимита на компанию, но в пустом зале помещается
	req := validRequest()
	req.Guests = domain.DefaultMaxPartySize * 2

	resp, err := uc.Execute(context.Background(), req)

	require.NoError(t, err)
	assert.Equal(t, domain.DefaultMaxPartySize*2, resp.Guests)
}

func TestExecute_OnlyTotalCapacityMatters(t *testing.T) {
	// Онлайн-пул исчерпан: 40 гостей по броням и 6 walk-in
	day := []*domain.Reservation{
		{
			Date:            futureDate(),
			StartTime:       types.TimeString("19:00"),
			DurationMinutes: 120,
			Guests:          domain.DefaultReservableSeats,
			Status:          domain.StatusConfirmed,
		},
		{
			Date:            futureDate(),
			StartTime:       types.TimeString("19:00"),
			DurationMinutes: 120,
			Guests:          6,
			IsWalkIn:        true,
			Status:          domain.StatusConfirmed,
		},
	}

	uc, _, _ := newUseCaseWithDay(day)

	// 46 из 48 мест заняты: двое ещё помещаются
	req := validRequest()
	req.StartTime = types.TimeString("19:00")
	req.Guests = 2

	_, err := uc.Execute(context.Background(), req)
	require.NoError(t, err)

	// А трое уже нет
	req = validRequest()
	req.StartTime = types.TimeString("19:00")
	req.Guests = 3

	_, err = uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrFullyBooked)
}

func TestExecute_InvalidInput(t *testing.T) {
	uc, _, _ := newUseCaseWithDay(nil)

	cases := []struct {
		name   string
		modify func(req *Request)
	}{
		{"zero guests", func(req *Request) { req.Guests = 0 }},
		{"zero date", func(req *Request) { req.Date = time.Time{} }},
		{"bad time", func(req *Request) { req.StartTime = types.TimeString("9am") }},
		{"past date", func(req *Request) { req.Date = time.Date(2025, 6, 1, 0, 0, 0, 0, time.Local) }},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := validRequest()
			tc.modify(req)

			_, err := uc.Execute(context.Background(), req)

			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}
}
