package get_available_slots

import (
	"time"

	"github.com/m04kA/Restaurant-BookingService/internal/domain"
	"github.com/m04kA/Restaurant-BookingService/pkg/types"
)

// buildDayGrid строит сетку слотов на день без учёта размера компании.
// Для каждого времени сетки: длительность по правилу дневной/вечерней посадки,
// затем проверки в порядке отказов бронирования — часы работы, закрытия,
// остаток мест.
func buildDayGrid(
	policy *domain.VenuePolicy,
	date time.Time,
	closures []*domain.Closure,
	reservations []*domain.Reservation,
) []domain.AvailableSlot {
	starts := policy.OperatingSlots()
	grid := make([]domain.AvailableSlot, 0, len(starts))

	for _, start := range starts {
		duration := policy.SeatingDurationMinutes(start)
		slot := domain.AvailableSlot{
			StartTime:       start,
			DurationMinutes: duration,
		}

		// Посадка должна помещаться в часы работы
		endTime, err := start.AddMinutes(duration)
		if err != nil || !policy.WithinOperatingHours(start, endTime) {
			slot.Reason = domain.ReasonOutsideHours
			grid = append(grid, slot)
			continue
		}

		startAt := domain.CombineDateTime(date, start)
		endAt := startAt.Add(time.Duration(duration) * time.Minute)

		// Закрытия зала блокируют слот целиком
		if domain.AnyOverlaps(closures, startAt, endAt) {
			slot.Reason = domain.ReasonBlocked
			grid = append(grid, slot)
			continue
		}

		// Остаток мест: онлайн-пул с учётом буфера walk-in,
		// но не больше, чем осталось до общей вместимости
		sums := domain.SumsForInterval(reservations, startAt, endAt)
		seatsLeft := seatsLeftFor(sums, policy)

		slot.SeatsLeft = seatsLeft
		if seatsLeft <= 0 {
			slot.Reason = domain.ReasonFullyBooked
		} else {
			slot.Bookable = true
		}
		grid = append(grid, slot)
	}

	return grid
}

// seatsLeftFor наибольший размер компании, который ещё может быть допущен
// в интервал: ограничен и онлайн-пулом, и общей вместимостью
func seatsLeftFor(sums domain.CapacitySums, policy *domain.VenuePolicy) int {
	online := domain.OnlineSeatsRemaining(sums, policy.ReservableSeats, policy.WalkInBuffer)

	untilTotal := policy.TotalSeats - sums.Total()
	if untilTotal < 0 {
		untilTotal = 0
	}

	if online < untilTotal {
		return online
	}
	return untilTotal
}

// dropStartedSlots для сегодняшней даты убирает слоты, чьё время уже прошло.
// Для будущих дат сетка возвращается целиком.
func dropStartedSlots(grid []domain.AvailableSlot, date, now time.Time) []domain.AvailableSlot {
	if !isSameDay(date, now) {
		return grid
	}

	current := types.NewTimeString(now)
	upcoming := make([]domain.AvailableSlot, 0, len(grid))
	for _, slot := range grid {
		if slot.StartTime.IsBefore(current) {
			continue
		}
		upcoming = append(upcoming, slot)
	}
	return upcoming
}

// isSameDay проверяет, что две даты относятся к одному и тому же дню
func isSameDay(date1, date2 time.Time) bool {
	y1, m1, d1 := date1.Date()
	y2, m2, d2 := date2.Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}

// isDateInPast проверяет, что дата в прошлом (раньше сегодняшнего дня)
func isDateInPast(date, now time.Time) bool {
	dateOnly := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())
	nowOnly := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	return dateOnly.Before(nowOnly)
}
