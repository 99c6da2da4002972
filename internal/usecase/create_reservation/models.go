package create_reservation

import (
	"time"

	"github.com/m04kA/Restaurant-BookingService/pkg/types"
)

// Request модель запроса на создание бронирования
type Request struct {
	Date       time.Time        // Дата визита (без времени)
	StartTime  types.TimeString // Время начала слота (например, "18:00")
	Guests     int              // Размер компании
	GuestName  string           // Имя гостя
	GuestEmail string           // Email гостя (ключ программы лояльности)
	GuestPhone *string          // Телефон (опционально)
	Notes      *string          // Пожелания гостя (опционально)
}

// LoyaltyInfo статус лояльности гостя с учётом созданной брони
type LoyaltyInfo struct {
	DiscountPercent int
	VisitIndex      int
	NextMilestone   *int
}

// Response модель ответа с созданным бронированием
type Response struct {
	ID              int64            // ID созданного бронирования
	CancelToken     string           // Токен для отмены без аутентификации
	Date            time.Time        // Дата визита
	StartTime       types.TimeString // Время начала
	DurationMinutes int              // Длительность посадки
	Guests          int              // Размер компании
	GuestName       string           // Имя гостя
	GuestEmail      string           // Email гостя
	Status          string           // Статус брони
	Loyalty         LoyaltyInfo      // Статус лояльности после этой брони

	CreatedAt time.Time // Время создания
}
