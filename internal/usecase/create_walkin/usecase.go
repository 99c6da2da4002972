package create_walkin

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/Restaurant-BookingService/internal/domain"
)

// UseCase use case для регистрации гостей без брони (walk-in).
// Запись ведёт персонал: проверяется только общая вместимость зала,
// закрытия и часы работы не блокируют посадку.
type UseCase struct {
	reservationRepo ReservationRepository
	policyProvider  PolicyProvider
	txManager       TransactionManager
	slotsCache      SlotsCache
	timeProvider    TimeProvider
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	reservationRepo ReservationRepository,
	policyProvider PolicyProvider,
	txManager TransactionManager,
	slotsCache SlotsCache,
	logger Logger,
) *UseCase {
	return &UseCase{
		reservationRepo: reservationRepo,
		policyProvider:  policyProvider,
		txManager:       txManager,
		slotsCache:      slotsCache,
		timeProvider:    &RealTimeProvider{},
		logger:          logger,
	}
}

// Execute выполняет use case регистрации walk-in гостей
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateWalkIn: date=%s, time=%s, guests=%d",
		req.Date.Format(domain.DateFormat), req.StartTime, req.Guests)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateWalkIn: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем текущее время
	now := uc.timeProvider.Now()

	// 3. Дата в прошлом не регистрируется
	if isDateInPast(req.Date, now) {
		uc.logger.Warn("CreateWalkIn: date %s is in the past", req.Date.Format(domain.DateFormat))
		return nil, fmt.Errorf("%w: date is in the past", ErrInvalidInput)
	}

	// Переменная для хранения результата
	var result *domain.Reservation

	// 4. Выполняем проверки и запись в сериализуемой транзакции
	err := uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 4.1. Получаем действующую политику зала
		policy, err := uc.policyProvider.Current(txCtx)
		if err != nil {
			uc.logger.Error("CreateWalkIn: failed to get venue policy: %v", err)
			return fmt.Errorf("%w: failed to get venue policy: %v", ErrInternal, err)
		}

		// 4.2. В выходной день зал закрыт и для walk-in гостей
		if !policy.IsOperatingDay(req.Date) {
			uc.logger.Warn("CreateWalkIn: venue is closed on %s", req.Date.Format(domain.DateFormat))
			return ErrClosedDay
		}

		// 4.3. Посадка раньше открытия невозможна даже для персонала
		if req.StartTime.IsBefore(policy.OpenTime) {
			uc.logger.Warn("CreateWalkIn: time %s predates opening %s", req.StartTime, policy.OpenTime)
			return fmt.Errorf("%w: startTime predates opening hours", ErrInvalidInput)
		}

		// 4.4. Длительность посадки определяется временем начала.
		// Конец интервала считаем от момента посадки: поздний walk-in
		// может заканчиваться уже после закрытия, это допустимо.
		duration := policy.SeatingDurationMinutes(req.StartTime)
		startAt := domain.CombineDateTime(req.Date, req.StartTime)
		endAt := startAt.Add(time.Duration(duration) * time.Minute)

		// 4.5. Получаем все бронирования даты с блокировкой (FOR UPDATE)
		reservations, err := uc.reservationRepo.GetForDate(txCtx, req.Date)
		if err != nil {
			uc.logger.Error("CreateWalkIn: failed to get reservations: %v", err)
			return fmt.Errorf("%w: failed to get reservations: %v", ErrInternal, err)
		}

		// 4.6. Walk-in ограничен только общей вместимостью зала
		sums := domain.SumsForInterval(reservations, startAt, endAt)
		if !domain.WalkInAdmitted(req.Guests, sums, policy.TotalSeats) {
			uc.logger.Warn("CreateWalkIn: not enough seats for %d guests (total=%d of %d)",
				req.Guests, sums.Total(), policy.TotalSeats)
			return ErrFullyBooked
		}

		// 4.7. Создаем запись с синтетической гостевой идентичностью:
		// walk-in не участвует в лояльности и не получает уведомлений
		reservation := &domain.Reservation{
			CancelToken:     uuid.NewString(),
			Date:            req.Date,
			StartTime:       req.StartTime,
			DurationMinutes: duration,
			Guests:          req.Guests,
			GuestName:       domain.WalkInGuestName,
			GuestEmail:      domain.WalkInGuestEmail,
			IsWalkIn:        true,
			Status:          domain.StatusConfirmed,
			Notes:           req.Notes,
		}

		created, err := uc.reservationRepo.Create(txCtx, reservation)
		if err != nil {
			uc.logger.Error("CreateWalkIn: failed to create walk-in record: %v", err)
			return fmt.Errorf("%w: failed to create walk-in record: %v", ErrInternal, err)
		}

		result = created
		return nil
	})

	if err != nil {
		return nil, err
	}

	uc.logger.Info("CreateWalkIn: successfully recorded walk-in id=%d for %d guests", result.ID, result.Guests)

	// 5. Сбрасываем кеш слотов на эту дату
	if uc.slotsCache != nil {
		if err := uc.slotsCache.InvalidateDate(ctx, req.Date); err != nil {
			uc.logger.Warn("CreateWalkIn: failed to invalidate slots cache: %v", err)
		}
	}

	return &Response{
		ID:              result.ID,
		Date:            result.Date,
		StartTime:       result.StartTime,
		DurationMinutes: result.DurationMinutes,
		Guests:          result.Guests,
		Status:          string(result.Status),
		CreatedAt:       result.CreatedAt,
	}, nil
}
