package export_reservations

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strconv"

	"github.com/m04kA/Restaurant-BookingService/internal/service/reservations/models"
)

// csvHeader колонки дневной выгрузки для админки
var csvHeader = []string{
	"id",
	"date",
	"start_time",
	"duration_minutes",
	"guests",
	"guest_name",
	"guest_email",
	"guest_phone",
	"is_walkin",
	"status",
	"reminder_sent",
	"discount_percent",
	"visit_index",
	"notes",
}

// BuildCSV собирает дневной список бронирований в CSV документ
func BuildCSV(resp *models.DayListResponse) ([]byte, error) {
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	if err := writer.Write(csvHeader); err != nil {
		return nil, fmt.Errorf("write csv header: %w", err)
	}

	for i := range resp.Reservations {
		if err := writer.Write(toCSVRecord(&resp.Reservations[i])); err != nil {
			return nil, fmt.Errorf("write csv record: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, fmt.Errorf("flush csv: %w", err)
	}

	return buf.Bytes(), nil
}

func toCSVRecord(r *models.ReservationResponse) []string {
	phone := ""
	if r.GuestPhone != nil {
		phone = *r.GuestPhone
	}

	notes := ""
	if r.Notes != nil {
		notes = *r.Notes
	}

	// Скидка и номер визита заполняются только для реальных гостей
	discount, visitIndex := "", ""
	if r.Loyalty != nil {
		discount = strconv.Itoa(r.Loyalty.DiscountPercent)
		visitIndex = strconv.Itoa(r.Loyalty.VisitIndex)
	}

	return []string{
		strconv.FormatInt(r.ID, 10),
		r.Date,
		r.StartTime,
		strconv.Itoa(r.DurationMinutes),
		strconv.Itoa(r.Guests),
		r.GuestName,
		r.GuestEmail,
		phone,
		strconv.FormatBool(r.IsWalkIn),
		r.Status,
		strconv.FormatBool(r.ReminderSent),
		discount,
		visitIndex,
		notes,
	}
}
