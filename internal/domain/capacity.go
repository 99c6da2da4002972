package domain

import "time"

// CapacitySums суммы гостей по подтверждённым бронированиям,
// пересекающим интервал. Отменённые бронирования не учитываются.
type CapacitySums struct {
	ReservedGuests int // Онлайн-бронирования
	WalkInGuests   int // Гости без брони
}

// Total returns the combined guest count across both categories
func (s CapacitySums) Total() int {
	return s.ReservedGuests + s.WalkInGuests
}

// IntervalsOverlap reports whether two half-open intervals [aStart, aEnd)
// and [bStart, bEnd) intersect
func IntervalsOverlap(aStart, aEnd, bStart, bEnd time.Time) bool {
	return aStart.Before(bEnd) && bStart.Before(aEnd)
}

// SumsForInterval складывает гостей всех активных бронирований даты,
// чьи интервалы пересекают [start, end)
func SumsForInterval(reservations []*Reservation, start, end time.Time) CapacitySums {
	var sums CapacitySums
	for _, r := range reservations {
		if !r.IsActive() {
			continue
		}
		if !IntervalsOverlap(r.StartAt(), r.EndAt(), start, end) {
			continue
		}
		if r.IsWalkIn {
			sums.WalkInGuests += r.Guests
		} else {
			sums.ReservedGuests += r.Guests
		}
	}
	return sums
}

// OnlineSeatsRemaining вычисляет остаток мест для онлайн-бронирований.
// Буфер поглощает первых walk-in гостей: пока их меньше буфера, онлайн-пул
// не уменьшается. Walk-in сверх буфера конкурируют с онлайн-бронированиями.
func OnlineSeatsRemaining(sums CapacitySums, reservableCap, walkInBuffer int) int {
	overflow := sums.WalkInGuests - walkInBuffer
	if overflow < 0 {
		overflow = 0
	}
	remaining := reservableCap - sums.ReservedGuests - overflow
	if remaining < 0 {
		return 0
	}
	return remaining
}

// Admitted решает, помещается ли онлайн-бронирование на partySize гостей:
// сверяет и онлайн-пул, и общую вместимость зала
func Admitted(partySize int, sums CapacitySums, reservableCap, totalCap, walkInBuffer int) bool {
	if partySize > OnlineSeatsRemaining(sums, reservableCap, walkInBuffer) {
		return false
	}
	return sums.Total()+partySize <= totalCap
}

// WalkInAdmitted решает, помещается ли walk-in: проверяется только общая
// вместимость, онлайн-пул и буфер не участвуют
func WalkInAdmitted(partySize int, sums CapacitySums, totalCap int) bool {
	return sums.Total()+partySize <= totalCap
}
