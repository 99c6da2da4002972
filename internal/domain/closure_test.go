package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func closureBetween(start, end string) *Closure {
	date := testDate()
	s, e := intervalOn(date, start, end)
	return &Closure{StartAt: s, EndAt: e, Reason: "банкет"}
}

func TestClosureOverlaps_TouchingEndpointsDoNotCount(t *testing.T) {
	closure := closureBetween("11:00", "12:00")
	start, end := intervalOn(testDate(), "10:00", "11:00")

	assert.False(t, closure.Overlaps(start, end))
}

func TestClosureOverlaps_ContainedInterval(t *testing.T) {
	closure := closureBetween("11:00", "12:00")
	start, end := intervalOn(testDate(), "10:30", "10:45")

	assert.False(t, closure.Overlaps(start, end))

	start, end = intervalOn(testDate(), "11:15", "11:30")
	assert.True(t, closure.Overlaps(start, end))
}

func TestClosureOverlaps_PartialOverlap(t *testing.T) {
	closure := closureBetween("10:00", "11:00")

	start, end := intervalOn(testDate(), "10:30", "11:30")
	assert.True(t, closure.Overlaps(start, end))

	start, end = intervalOn(testDate(), "09:00", "10:01")
	assert.True(t, closure.Overlaps(start, end))
}

func TestAnyOverlaps(t *testing.T) {
	closures := []*Closure{
		closureBetween("12:00", "14:00"),
		closureBetween("18:00", "20:00"),
	}

	start, end := intervalOn(testDate(), "14:00", "16:00")
	assert.False(t, AnyOverlaps(closures, start, end))

	start, end = intervalOn(testDate(), "19:30", "21:00")
	assert.True(t, AnyOverlaps(closures, start, end))

	assert.False(t, AnyOverlaps(nil, start, end))
}

func TestClosureIsValid(t *testing.T) {
	assert.True(t, closureBetween("10:00", "11:00").IsValid())
	assert.False(t, closureBetween("11:00", "11:00").IsValid())
	assert.False(t, closureBetween("12:00", "11:00").IsValid())
}

func TestClosureOverlaps_AcrossDates(t *testing.T) {
	// Закрытие на весь день не задевает бронирования следующего дня
	closure := &Closure{
		StartAt: time.Date(2025, 6, 18, 0, 0, 0, 0, time.Local),
		EndAt:   time.Date(2025, 6, 19, 0, 0, 0, 0, time.Local),
	}

	nextDay := time.Date(2025, 6, 19, 0, 0, 0, 0, time.Local)
	start, end := intervalOn(nextDay, "10:00", "11:30")

	assert.False(t, closure.Overlaps(start, end))
}
