package policy

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/Restaurant-BookingService/internal/domain"
	policyRepo "github.com/m04kA/Restaurant-BookingService/internal/infra/storage/policy"
	"github.com/m04kA/Restaurant-BookingService/internal/service/policy/models"
	"github.com/m04kA/Restaurant-BookingService/pkg/ptr"
	"github.com/m04kA/Restaurant-BookingService/pkg/types"
)

// --- mocks ---

type mockPolicyRepo struct {
	getFunc    func(ctx context.Context) (*domain.VenuePolicy, error)
	updateFunc func(ctx context.Context, policy *domain.VenuePolicy) (*domain.VenuePolicy, error)

	updateCalls int
}

func (m *mockPolicyRepo) Get(ctx context.Context) (*domain.VenuePolicy, error) {
	return m.getFunc(ctx)
}

func (m *mockPolicyRepo) Update(ctx context.Context, policy *domain.VenuePolicy) (*domain.VenuePolicy, error) {
	m.updateCalls++
	return m.updateFunc(ctx, policy)
}

type noopLogger struct{}

func (l *noopLogger) Info(format string, v ...interface{})  {}
func (l *noopLogger) Warn(format string, v ...interface{})  {}
func (l *noopLogger) Error(format string, v ...interface{}) {}

// --- helpers ---

func storedPolicy() *domain.VenuePolicy {
	return &domain.VenuePolicy{
		ID:                    1,
		OpenTime:              types.TimeString("09:00"),
		CloseTime:             types.TimeString("23:00"),
		SlotStepMinutes:       30,
		ClosedWeekday:         ptr.Ptr(1),
		DaytimeSeatingMinutes: 60,
		EveningSeatingMinutes: 90,
		EveningFrom:           types.TimeString("18:00"),
		ReservableSeats:       30,
		TotalSeats:            50,
		WalkInBuffer:          10,
		MaxPartySize:          6,
		UpdatedAt:             time.Date(2025, 6, 1, 12, 0, 0, 0, time.Local),
	}
}

func repoWithStored() *mockPolicyRepo {
	return &mockPolicyRepo{
		getFunc: func(ctx context.Context) (*domain.VenuePolicy, error) {
			return storedPolicy(), nil
		},
		updateFunc: func(ctx context.Context, policy *domain.VenuePolicy) (*domain.VenuePolicy, error) {
			return policy, nil
		},
	}
}

// --- Current ---

func TestCurrent_ReturnsStoredPolicy(t *testing.T) {
	svc := NewService(repoWithStored(), &noopLogger{})

	policy, err := svc.Current(context.Background())

	require.NoError(t, err)
	assert.Equal(t, types.TimeString("09:00"), policy.OpenTime)
	assert.Equal(t, 30, policy.SlotStepMinutes)
}

func TestCurrent_FallsBackToDefaultsWhenMissing(t *testing.T) {
	repo := &mockPolicyRepo{
		getFunc: func(ctx context.Context) (*domain.VenuePolicy, error) {
			return nil, policyRepo.ErrPolicyNotFound
		},
	}
	svc := NewService(repo, &noopLogger{})

	policy, err := svc.Current(context.Background())

	require.NoError(t, err)
	defaults := domain.DefaultPolicy()
	assert.Equal(t, defaults.OpenTime, policy.OpenTime)
	assert.Equal(t, defaults.TotalSeats, policy.TotalSeats)
	require.NotNil(t, policy.ClosedWeekday)
	assert.Equal(t, domain.DefaultClosedWeekday, *policy.ClosedWeekday)
}

func TestCurrent_RepositoryError(t *testing.T) {
	repo := &mockPolicyRepo{
		getFunc: func(ctx context.Context) (*domain.VenuePolicy, error) {
			return nil, errors.New("connection refused")
		},
	}
	svc := NewService(repo, &noopLogger{})

	_, err := svc.Current(context.Background())

	assert.ErrorIs(t, err, ErrInternal)
}

// --- Get ---

func TestGet_Success(t *testing.T) {
	svc := NewService(repoWithStored(), &noopLogger{})

	resp, err := svc.Get(context.Background())

	require.NoError(t, err)
	assert.Equal(t, "09:00", resp.OpenTime)
	assert.Equal(t, "23:00", resp.CloseTime)
	assert.Equal(t, "18:00", resp.EveningFrom)
	require.NotNil(t, resp.ClosedWeekday)
	assert.Equal(t, 1, *resp.ClosedWeekday)
	assert.Equal(t, 50, resp.TotalSeats)
}

// --- Update ---

func TestUpdate_PartialUpdateKeepsOtherFields(t *testing.T) {
	repo := repoWithStored()
	svc := NewService(repo, &noopLogger{})

	resp, err := svc.Update(context.Background(), &models.UpdatePolicyRequest{
		SlotStepMinutes: ptr.Ptr(15),
		TotalSeats:      ptr.Ptr(60),
	})

	require.NoError(t, err)
	assert.Equal(t, 1, repo.updateCalls)
	assert.Equal(t, 15, resp.SlotStepMinutes)
	assert.Equal(t, 60, resp.TotalSeats)

	// Непереданные поля сохраняют текущее значение
	assert.Equal(t, "09:00", resp.OpenTime)
	assert.Equal(t, 30, resp.ReservableSeats)
	assert.Equal(t, 6, resp.MaxPartySize)
}

func TestUpdate_ChangesOperatingHours(t *testing.T) {
	svc := NewService(repoWithStored(), &noopLogger{})

	resp, err := svc.Update(context.Background(), &models.UpdatePolicyRequest{
		OpenTime:    ptr.Ptr("11:00"),
		CloseTime:   ptr.Ptr("21:30"),
		EveningFrom: ptr.Ptr("17:30"),
	})

	require.NoError(t, err)
	assert.Equal(t, "11:00", resp.OpenTime)
	assert.Equal(t, "21:30", resp.CloseTime)
	assert.Equal(t, "17:30", resp.EveningFrom)
}

func TestUpdate_SetsClosedWeekday(t *testing.T) {
	svc := NewService(repoWithStored(), &noopLogger{})

	resp, err := svc.Update(context.Background(), &models.UpdatePolicyRequest{
		ClosedWeekday: ptr.Ptr(3),
	})

	require.NoError(t, err)
	require.NotNil(t, resp.ClosedWeekday)
	assert.Equal(t, 3, *resp.ClosedWeekday)
}

func TestUpdate_ClearsClosedWeekday(t *testing.T) {
	svc := NewService(repoWithStored(), &noopLogger{})

	resp, err := svc.Update(context.Background(), &models.UpdatePolicyRequest{
		NoClosedWeekday: true,
	})

	require.NoError(t, err)
	assert.Nil(t, resp.ClosedWeekday)
}

func TestUpdate_InvalidTimeRejected(t *testing.T) {
	tests := []struct {
		name string
		req  *models.UpdatePolicyRequest
	}{
		{name: "открытие", req: &models.UpdatePolicyRequest{OpenTime: ptr.Ptr("25:99")}},
		{name: "закрытие", req: &models.UpdatePolicyRequest{CloseTime: ptr.Ptr("abc")}},
		{name: "начало вечера", req: &models.UpdatePolicyRequest{EveningFrom: ptr.Ptr("17-30")}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := repoWithStored()
			svc := NewService(repo, &noopLogger{})

			_, err := svc.Update(context.Background(), tt.req)

			assert.ErrorIs(t, err, ErrInvalidInput)
			assert.Equal(t, 0, repo.updateCalls)
		})
	}
}

func TestUpdate_ValidationRejections(t *testing.T) {
	tests := []struct {
		name string
		req  *models.UpdatePolicyRequest
	}{
		{name: "шаг сетки меньше минимума", req: &models.UpdatePolicyRequest{SlotStepMinutes: ptr.Ptr(domain.MinSlotStepMinutes - 1)}},
		{name: "шаг сетки больше максимума", req: &models.UpdatePolicyRequest{SlotStepMinutes: ptr.Ptr(domain.MaxSlotStepMinutes + 1)}},
		{name: "дневная посадка слишком короткая", req: &models.UpdatePolicyRequest{DaytimeSeatingMinutes: ptr.Ptr(domain.MinSeatingMinutes - 1)}},
		{name: "вечерняя посадка слишком длинная", req: &models.UpdatePolicyRequest{EveningSeatingMinutes: ptr.Ptr(domain.MaxSeatingMinutes + 1)}},
		{name: "несуществующий день недели", req: &models.UpdatePolicyRequest{ClosedWeekday: ptr.Ptr(7)}},
		{name: "отрицательный потолок броней", req: &models.UpdatePolicyRequest{ReservableSeats: ptr.Ptr(-1)}},
		{name: "зал меньше потолка броней", req: &models.UpdatePolicyRequest{TotalSeats: ptr.Ptr(10)}},
		{name: "отрицательный буфер walk-in", req: &models.UpdatePolicyRequest{WalkInBuffer: ptr.Ptr(-1)}},
		{name: "нулевой размер компании", req: &models.UpdatePolicyRequest{MaxPartySize: ptr.Ptr(0)}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := repoWithStored()
			svc := NewService(repo, &noopLogger{})

			_, err := svc.Update(context.Background(), tt.req)

			assert.ErrorIs(t, err, ErrInvalidInput)
			assert.Equal(t, 0, repo.updateCalls)
		})
	}
}

func TestUpdate_RepositoryError(t *testing.T) {
	repo := repoWithStored()
	repo.updateFunc = func(ctx context.Context, policy *domain.VenuePolicy) (*domain.VenuePolicy, error) {
		return nil, errors.New("connection refused")
	}
	svc := NewService(repo, &noopLogger{})

	_, err := svc.Update(context.Background(), &models.UpdatePolicyRequest{SlotStepMinutes: ptr.Ptr(15)})

	assert.ErrorIs(t, err, ErrInternal)
}
