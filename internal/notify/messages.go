package notify

import (
	"fmt"
	"strings"

	"github.com/m04kA/Restaurant-BookingService/internal/domain"
)

// Человекочитаемый формат даты для писем
const letterDateFormat = "02.01.2006"

// ConfirmationMessage собирает письмо о подтверждении брони
func ConfirmationMessage(reservation *domain.Reservation, loyalty domain.LoyaltyStatus) (subject, body string) {
	subject = "Ваша бронь подтверждена"

	var b strings.Builder
	fmt.Fprintf(&b, "Здравствуйте, %s!\n\n", reservation.GuestName)
	fmt.Fprintf(&b, "Ваша бронь подтверждена.\n")
	fmt.Fprintf(&b, "Дата: %s\n", reservation.Date.Format(letterDateFormat))
	fmt.Fprintf(&b, "Время: %s\n", reservation.StartTime.String())
	fmt.Fprintf(&b, "Гостей: %d\n", reservation.Guests)
	fmt.Fprintf(&b, "Столик будет ждать вас %d минут(ы).\n", reservation.DurationMinutes)

	if loyalty.DiscountPercent > 0 {
		fmt.Fprintf(&b, "\nЭто ваш %d-й визит — действует скидка %d%%.\n", loyalty.VisitIndex, loyalty.DiscountPercent)
	} else {
		fmt.Fprintf(&b, "\nЭто ваш %d-й визит.\n", loyalty.VisitIndex)
	}
	if loyalty.NextMilestone != nil {
		fmt.Fprintf(&b, "Ещё один визит — и вы получите скидку %d%%!\n", *loyalty.NextMilestone)
	}

	fmt.Fprintf(&b, "\nОтменить бронь: используйте код %s\n", reservation.CancelToken)

	return subject, b.String()
}

// CancellationMessage собирает письмо об отмене брони
func CancellationMessage(reservation *domain.Reservation) (subject, body string) {
	subject = "Бронь отменена"

	var b strings.Builder
	fmt.Fprintf(&b, "Здравствуйте, %s!\n\n", reservation.GuestName)
	fmt.Fprintf(&b, "Ваша бронь на %s в %s отменена.\n",
		reservation.Date.Format(letterDateFormat), reservation.StartTime.String())
	fmt.Fprintf(&b, "Будем рады видеть вас снова!\n")

	return subject, b.String()
}

// ReminderMessage собирает письмо-напоминание о предстоящем визите
func ReminderMessage(reservation *domain.Reservation) (subject, body string) {
	subject = "Напоминание о брони"

	var b strings.Builder
	fmt.Fprintf(&b, "Здравствуйте, %s!\n\n", reservation.GuestName)
	fmt.Fprintf(&b, "Напоминаем: завтра ждём вас в гости.\n")
	fmt.Fprintf(&b, "Дата: %s\n", reservation.Date.Format(letterDateFormat))
	fmt.Fprintf(&b, "Время: %s\n", reservation.StartTime.String())
	fmt.Fprintf(&b, "Гостей: %d\n", reservation.Guests)
	fmt.Fprintf(&b, "\nЕсли планы изменились, отмените бронь кодом %s\n", reservation.CancelToken)

	return subject, b.String()
}
