package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/Restaurant-BookingService/pkg/types"
)

func TestDefaultPolicy(t *testing.T) {
	policy := DefaultPolicy()

	assert.Equal(t, "10:00", policy.OpenTime.String())
	assert.Equal(t, "22:00", policy.CloseTime.String())
	assert.Equal(t, 40, policy.ReservableSeats)
	assert.Equal(t, 48, policy.TotalSeats)
	assert.Equal(t, 8, policy.WalkInBuffer)
	require.NotNil(t, policy.ClosedWeekday)
	assert.Equal(t, 1, *policy.ClosedWeekday)
}

func TestOperatingSlots_FullDay(t *testing.T) {
	policy := DefaultPolicy()

	slots := policy.OperatingSlots()

	// 10:00..21:45 с шагом 15 минут
	require.Len(t, slots, 48)
	assert.Equal(t, "10:00", slots[0].String())
	assert.Equal(t, "21:45", slots[len(slots)-1].String())
}

func TestOperatingSlots_CloseBeforeOpen(t *testing.T) {
	policy := DefaultPolicy()
	policy.OpenTime = types.TimeString("22:00")
	policy.CloseTime = types.TimeString("10:00")

	assert.Empty(t, policy.OperatingSlots())
}

func TestOperatingSlots_ZeroStep(t *testing.T) {
	policy := DefaultPolicy()
	policy.SlotStepMinutes = 0

	assert.Empty(t, policy.OperatingSlots())
}

func TestIsOperatingDay(t *testing.T) {
	policy := DefaultPolicy()

	monday := time.Date(2025, 6, 16, 0, 0, 0, 0, time.Local)
	tuesday := time.Date(2025, 6, 17, 0, 0, 0, 0, time.Local)

	assert.False(t, policy.IsOperatingDay(monday))
	assert.True(t, policy.IsOperatingDay(tuesday))
}

func TestIsOperatingDay_NoClosedWeekday(t *testing.T) {
	policy := DefaultPolicy()
	policy.ClosedWeekday = nil

	monday := time.Date(2025, 6, 16, 0, 0, 0, 0, time.Local)
	assert.True(t, policy.IsOperatingDay(monday))
}

func TestSeatingDurationMinutes_EveningBoundary(t *testing.T) {
	policy := DefaultPolicy()

	assert.Equal(t, 90, policy.SeatingDurationMinutes(types.TimeString("12:00")))
	assert.Equal(t, 90, policy.SeatingDurationMinutes(types.TimeString("16:45")))
	// Ровно с EveningFrom начинается вечерняя посадка
	assert.Equal(t, 120, policy.SeatingDurationMinutes(types.TimeString("17:00")))
	assert.Equal(t, 120, policy.SeatingDurationMinutes(types.TimeString("20:00")))
}

func TestWithinOperatingHours(t *testing.T) {
	policy := DefaultPolicy()

	assert.True(t, policy.WithinOperatingHours(types.TimeString("10:00"), types.TimeString("11:30")))
	assert.True(t, policy.WithinOperatingHours(types.TimeString("20:00"), types.TimeString("22:00")))

	// Конец вылезает за закрытие
	assert.False(t, policy.WithinOperatingHours(types.TimeString("21:00"), types.TimeString("23:00")))
	// Начало до открытия
	assert.False(t, policy.WithinOperatingHours(types.TimeString("09:00"), types.TimeString("10:30")))
}
