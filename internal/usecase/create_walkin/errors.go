package create_walkin

import "errors"

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("create_walkin: invalid input data")

	// ErrClosedDay возвращается, когда на выбранную дату зал не работает (выходной день)
	ErrClosedDay = errors.New("create_walkin: venue is closed on this date")

	// ErrFullyBooked возвращается, когда общая вместимость зала исчерпана
	ErrFullyBooked = errors.New("create_walkin: not enough seats for this party")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_walkin: internal error")
)
