package create_reservation

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/Restaurant-BookingService/internal/domain"
	"github.com/m04kA/Restaurant-BookingService/internal/notify"
)

// UseCase use case для создания онлайн-бронирования
type UseCase struct {
	reservationRepo ReservationRepository
	closureRepo     ClosureRepository
	policyProvider  PolicyProvider
	txManager       TransactionManager
	notifier        Notifier
	slotsCache      SlotsCache
	timeProvider    TimeProvider
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	reservationRepo ReservationRepository,
	closureRepo ClosureRepository,
	policyProvider PolicyProvider,
	txManager TransactionManager,
	notifier Notifier,
	slotsCache SlotsCache,
	logger Logger,
) *UseCase {
	return &UseCase{
		reservationRepo: reservationRepo,
		closureRepo:     closureRepo,
		policyProvider:  policyProvider,
		txManager:       txManager,
		notifier:        notifier,
		slotsCache:      slotsCache,
		timeProvider:    &RealTimeProvider{},
		logger:          logger,
	}
}

// Execute выполняет use case создания бронирования.
// Все проверки вместимости и запись выполняются в сериализуемой транзакции,
// поэтому два конкурентных запроса не могут занять одни и те же места.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateReservation: date=%s, time=%s, guests=%d, email=%s",
		req.Date.Format(domain.DateFormat), req.StartTime, req.Guests, req.GuestEmail)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateReservation: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем текущее время
	now := uc.timeProvider.Now()

	// 3. Дата в прошлом не бронируется
	if isDateInPast(req.Date, now) {
		uc.logger.Warn("CreateReservation: date %s is in the past", req.Date.Format(domain.DateFormat))
		return nil, fmt.Errorf("%w: date is in the past", ErrInvalidInput)
	}

	// Переменные для хранения результата
	var result *domain.Reservation
	var loyalty domain.LoyaltyStatus

	// 4. Выполняем проверки и запись в сериализуемой транзакции
	err := uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 4.1. Получаем действующую политику зала
		policy, err := uc.policyProvider.Current(txCtx)
		if err != nil {
			uc.logger.Error("CreateReservation: failed to get venue policy: %v", err)
			return fmt.Errorf("%w: failed to get venue policy: %v", ErrInternal, err)
		}

		// 4.2. Еженедельный выходной день
		if !policy.IsOperatingDay(req.Date) {
			uc.logger.Warn("CreateReservation: venue is closed on %s", req.Date.Format(domain.DateFormat))
			return ErrClosedDay
		}

		// 4.3. Длительность посадки определяется временем начала
		duration := policy.SeatingDurationMinutes(req.StartTime)

		endTime, err := req.StartTime.AddMinutes(duration)
		if err != nil {
			uc.logger.Warn("CreateReservation: slot %s does not fit into the day: %v", req.StartTime, err)
			return ErrOutsideHours
		}

		// 4.4. Интервал посадки должен помещаться в часы работы
		if !policy.WithinOperatingHours(req.StartTime, endTime) {
			uc.logger.Warn("CreateReservation: slot %s-%s is outside operating hours %s-%s",
				req.StartTime, endTime, policy.OpenTime, policy.CloseTime)
			return ErrOutsideHours
		}

		// 4.5. Время начала должно лежать на сетке слотов
		if err := validateSlotOnGrid(policy, req.StartTime); err != nil {
			uc.logger.Warn("CreateReservation: slot grid check failed: %v", err)
			return err
		}

		startAt := domain.CombineDateTime(req.Date, req.StartTime)
		endAt := startAt.Add(time.Duration(duration) * time.Minute)

		// 4.6. Закрытия зала: любое пересечение блокирует бронь
		closures, err := uc.closureRepo.GetOverlapping(txCtx, startAt, endAt)
		if err != nil {
			uc.logger.Error("CreateReservation: failed to get closures: %v", err)
			return fmt.Errorf("%w: failed to get closures: %v", ErrInternal, err)
		}
		if len(closures) > 0 {
			uc.logger.Warn("CreateReservation: slot %s is blocked by closure id=%d", req.StartTime, closures[0].ID)
			return ErrBlocked
		}

		// 4.7. Лимит размера компании для онлайн-брони
		if req.Guests > policy.MaxPartySize {
			uc.logger.Warn("CreateReservation: party of %d exceeds max party size %d", req.Guests, policy.MaxPartySize)
			return ErrTooManyGuests
		}

		// 4.8. Получаем все бронирования даты с блокировкой (FOR UPDATE)
		reservations, err := uc.reservationRepo.GetForDate(txCtx, req.Date)
		if err != nil {
			uc.logger.Error("CreateReservation: failed to get reservations: %v", err)
			return fmt.Errorf("%w: failed to get reservations: %v", ErrInternal, err)
		}

		// 4.9. Проверяем вместимость с учётом буфера walk-in гостей
		sums := domain.SumsForInterval(reservations, startAt, endAt)
		if !domain.Admitted(req.Guests, sums, policy.ReservableSeats, policy.TotalSeats, policy.WalkInBuffer) {
			uc.logger.Warn("CreateReservation: not enough seats for %d guests (reserved=%d, walkins=%d)",
				req.Guests, sums.ReservedGuests, sums.WalkInGuests)
			return ErrFullyBooked
		}

		uc.logger.Info("CreateReservation: slot available, reserved=%d, walkins=%d of %d/%d",
			sums.ReservedGuests, sums.WalkInGuests, policy.ReservableSeats, policy.TotalSeats)

		// 4.10. Создаем бронирование
		reservation := &domain.Reservation{
			CancelToken:     uuid.NewString(),
			Date:            req.Date,
			StartTime:       req.StartTime,
			DurationMinutes: duration,
			Guests:          req.Guests,
			GuestName:       req.GuestName,
			GuestEmail:      req.GuestEmail,
			GuestPhone:      req.GuestPhone,
			IsWalkIn:        false,
			Status:          domain.StatusConfirmed,
			Notes:           req.Notes,
		}

		created, err := uc.reservationRepo.Create(txCtx, reservation)
		if err != nil {
			uc.logger.Error("CreateReservation: failed to create reservation: %v", err)
			return fmt.Errorf("%w: failed to create reservation: %v", ErrInternal, err)
		}

		// 4.11. Порядковый номер визита включает только что созданную бронь
		visits, err := uc.reservationRepo.CountVisits(txCtx, req.GuestEmail)
		if err != nil {
			uc.logger.Error("CreateReservation: failed to count visits for %s: %v", req.GuestEmail, err)
			return fmt.Errorf("%w: failed to count visits: %v", ErrInternal, err)
		}
		loyalty = domain.LoyaltyFor(visits)

		result = created
		return nil
	})

	if err != nil {
		return nil, err
	}

	uc.logger.Info("CreateReservation: successfully created reservation id=%d, visit=%d, discount=%d%%",
		result.ID, loyalty.VisitIndex, loyalty.DiscountPercent)

	// 5. Сбрасываем кеш слотов на эту дату
	if uc.slotsCache != nil {
		if err := uc.slotsCache.InvalidateDate(ctx, req.Date); err != nil {
			uc.logger.Warn("CreateReservation: failed to invalidate slots cache: %v", err)
		}
	}

	// 6. Отправляем подтверждение: неудача не отменяет созданную бронь
	uc.sendConfirmation(ctx, result, loyalty)

	return buildResponse(result, loyalty), nil
}

// sendConfirmation отправляет письмо-подтверждение. Ошибка отправки логируется,
// бронь при этом остаётся созданной.
func (uc *UseCase) sendConfirmation(ctx context.Context, reservation *domain.Reservation, loyalty domain.LoyaltyStatus) {
	if uc.notifier == nil {
		return
	}

	subject, body := notify.ConfirmationMessage(reservation, loyalty)
	if err := uc.notifier.Send(ctx, reservation.GuestEmail, subject, body); err != nil {
		uc.logger.Warn("CreateReservation: failed to send confirmation to %s: %v", reservation.GuestEmail, err)
		return
	}

	uc.logger.Info("CreateReservation: confirmation sent to %s", reservation.GuestEmail)
}

func buildResponse(reservation *domain.Reservation, loyalty domain.LoyaltyStatus) *Response {
	return &Response{
		ID:              reservation.ID,
		CancelToken:     reservation.CancelToken,
		Date:            reservation.Date,
		StartTime:       reservation.StartTime,
		DurationMinutes: reservation.DurationMinutes,
		Guests:          reservation.Guests,
		GuestName:       reservation.GuestName,
		GuestEmail:      reservation.GuestEmail,
		Status:          string(reservation.Status),
		Loyalty: LoyaltyInfo{
			DiscountPercent: loyalty.DiscountPercent,
			VisitIndex:      loyalty.VisitIndex,
			NextMilestone:   loyalty.NextMilestone,
		},
		CreatedAt: reservation.CreatedAt,
	}
}
