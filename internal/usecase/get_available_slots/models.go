package get_available_slots

import (
	"time"

	"github.com/m04kA/Restaurant-BookingService/pkg/types"
)

// Request модель запроса доступных слотов
type Request struct {
	Date   time.Time // Дата визита
	Guests int       // Размер компании
}

// Slot один слот сетки с ответом «поместится ли эта компания»
type Slot struct {
	StartTime       types.TimeString // Время начала
	DurationMinutes int              // Длительность посадки
	Bookable        bool             // Доступен ли слот этой компании
	Reason          string           // Причина недоступности, пустая для доступного слота
	SeatsLeft       int              // Остаток онлайн-мест
}

// Response модель ответа со слотами на дату
type Response struct {
	Date  time.Time // Запрошенная дата
	Slots []Slot    // Слоты в порядке времени начала
}
