package create_reservation

import "errors"

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("create_reservation: invalid input data")

	// ErrClosedDay возвращается, когда на выбранную дату приём броней закрыт (выходной день)
	ErrClosedDay = errors.New("create_reservation: venue is closed on this date")

	// ErrOutsideHours возвращается, когда интервал посадки не помещается в часы работы
	ErrOutsideHours = errors.New("create_reservation: slot is outside operating hours")

	// ErrBlocked возвращается, когда интервал пересекает закрытие зала
	ErrBlocked = errors.New("create_reservation: slot is blocked by a closure")

	// ErrTooManyGuests возвращается, когда компания превышает лимит гостей на онлайн-бронь
	ErrTooManyGuests = errors.New("create_reservation: party size exceeds per-booking maximum")

	// ErrFullyBooked возвращается, когда для компании не хватает мест
	ErrFullyBooked = errors.New("create_reservation: not enough seats for this slot")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_reservation: internal error")
)
