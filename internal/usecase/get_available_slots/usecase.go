package get_available_slots

import (
	"context"
	"fmt"
	"time"

	"github.com/m04kA/Restaurant-BookingService/internal/domain"
)

// UseCase use case для получения сетки слотов на дату.
// Сетка не зависит от гостя, поэтому кешируется целиком; ответ
// персонализируется под размер компании уже после кеша. Отображение может
// слегка отставать от конкурентных записей: решение о допуске всё равно
// перепроверяется атомарно при создании брони.
type UseCase struct {
	reservationRepo ReservationRepository
	closureRepo     ClosureRepository
	policyProvider  PolicyProvider
	slotsCache      SlotsCache
	timeProvider    TimeProvider
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	reservationRepo ReservationRepository,
	closureRepo ClosureRepository,
	policyProvider PolicyProvider,
	slotsCache SlotsCache,
	logger Logger,
) *UseCase {
	return &UseCase{
		reservationRepo: reservationRepo,
		closureRepo:     closureRepo,
		policyProvider:  policyProvider,
		slotsCache:      slotsCache,
		timeProvider:    &RealTimeProvider{},
		logger:          logger,
	}
}

// Execute выполняет use case получения доступных слотов
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetAvailableSlots: date=%s, guests=%d", req.Date.Format(domain.DateFormat), req.Guests)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GetAvailableSlots: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем текущее время
	now := uc.timeProvider.Now()

	// 3. Прошедшие даты не бронируются: пустой список, не ошибка
	if isDateInPast(req.Date, now) {
		return emptyResponse(req.Date), nil
	}

	// 4. Получаем действующую политику зала
	policy, err := uc.policyProvider.Current(ctx)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to get venue policy: %v", err)
		return nil, fmt.Errorf("%w: failed to get venue policy: %v", ErrInternal, err)
	}

	// 5. Выходной день даёт пустую сетку
	if !policy.IsOperatingDay(req.Date) {
		uc.logger.Info("GetAvailableSlots: venue is closed on %s", req.Date.Format(domain.DateFormat))
		return emptyResponse(req.Date), nil
	}

	// 6. Берём сетку из кеша, при промахе строим заново
	grid, err := uc.loadDayGrid(ctx, policy, req.Date)
	if err != nil {
		return nil, err
	}

	// 7. Для сегодняшней даты убираем уже прошедшие слоты
	grid = dropStartedSlots(grid, req.Date, now)

	// 8. Персонализируем сетку под размер компании
	slots := personalizeSlots(grid, req.Guests)

	uc.logger.Info("GetAvailableSlots: returning %d slots for %s", len(slots), req.Date.Format(domain.DateFormat))

	return &Response{Date: req.Date, Slots: slots}, nil
}

// loadDayGrid возвращает гостенезависимую сетку слотов на дату
func (uc *UseCase) loadDayGrid(ctx context.Context, policy *domain.VenuePolicy, date time.Time) ([]domain.AvailableSlot, error) {
	if uc.slotsCache != nil {
		if grid, ok := uc.slotsCache.GetSlots(ctx, date); ok {
			return grid, nil
		}
	}

	dayStart := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())
	dayEnd := dayStart.AddDate(0, 0, 1)

	closures, err := uc.closureRepo.GetOverlapping(ctx, dayStart, dayEnd)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to get closures: %v", err)
		return nil, fmt.Errorf("%w: failed to get closures: %v", ErrInternal, err)
	}

	reservations, err := uc.reservationRepo.GetForDate(ctx, date)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to get reservations: %v", err)
		return nil, fmt.Errorf("%w: failed to get reservations: %v", ErrInternal, err)
	}

	grid := buildDayGrid(policy, date, closures, reservations)

	if uc.slotsCache != nil {
		if err := uc.slotsCache.SaveSlots(ctx, date, grid); err != nil {
			uc.logger.Warn("GetAvailableSlots: failed to cache slots: %v", err)
		}
	}

	return grid, nil
}

// personalizeSlots отвечает на вопрос «поместится ли эта компания» для каждого слота
func personalizeSlots(grid []domain.AvailableSlot, guests int) []Slot {
	slots := make([]Slot, 0, len(grid))

	for i := range grid {
		gridSlot := &grid[i]

		slot := Slot{
			StartTime:       gridSlot.StartTime,
			DurationMinutes: gridSlot.DurationMinutes,
			SeatsLeft:       gridSlot.SeatsLeft,
		}

		if gridSlot.CanFit(guests) {
			slot.Bookable = true
		} else {
			slot.Reason = string(gridSlot.Reason)
			// Слот открыт, но мест меньше, чем гостей в компании
			if slot.Reason == "" {
				slot.Reason = string(domain.ReasonFullyBooked)
			}
		}

		slots = append(slots, slot)
	}

	return slots
}

func emptyResponse(date time.Time) *Response {
	return &Response{Date: date, Slots: []Slot{}}
}
