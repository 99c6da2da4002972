package domain

// Default venue policy values.
// Применяются при первом запуске, пока администратор не настроил политику.
const (
	DefaultOpenTime              = "10:00"
	DefaultCloseTime             = "22:00"
	DefaultSlotStepMinutes       = 15
	DefaultClosedWeekday         = 1 // Понедельник
	DefaultDaytimeSeatingMinutes = 90
	DefaultEveningSeatingMinutes = 120
	DefaultEveningFrom           = "17:00"
	DefaultReservableSeats       = 40
	DefaultTotalSeats            = 48
	DefaultWalkInBuffer          = 8
	DefaultMaxPartySize          = 8
)

// Business validation constants
const (
	MinSlotStepMinutes     = 5
	MaxSlotStepMinutes     = 120
	MinSeatingMinutes      = 15
	MaxSeatingMinutes      = 480 // 8 часов
	MaxGuestNameLength     = 200
	MaxNotesLength         = 500
	MaxClosureReasonLength = 500
)

// Time format constants
const (
	TimeFormat     = "15:04"            // HH:MM
	DateFormat     = "2006-01-02"       // YYYY-MM-DD
	DateTimeFormat = "2006-01-02 15:04" // YYYY-MM-DD HH:MM
)

// ActiveStatuses список статусов, занимающих места.
// Используется при подсчёте занятости и истории визитов.
var ActiveStatuses = []ReservationStatus{
	StatusConfirmed,
	StatusNoShow,
}
