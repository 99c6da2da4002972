package create_walkin

import (
	"time"

	"github.com/m04kA/Restaurant-BookingService/pkg/types"
)

// Request модель запроса на регистрацию гостей без брони
type Request struct {
	Date      time.Time        // Дата визита
	StartTime types.TimeString // Время посадки (произвольное, не обязано лежать на сетке)
	Guests    int              // Размер компании
	Notes     *string          // Заметки персонала (опционально)
}

// Response модель ответа с созданной записью
type Response struct {
	ID              int64            // ID записи
	Date            time.Time        // Дата визита
	StartTime       types.TimeString // Время посадки
	DurationMinutes int              // Длительность посадки
	Guests          int              // Размер компании
	Status          string           // Статус записи

	CreatedAt time.Time // Время создания
}
