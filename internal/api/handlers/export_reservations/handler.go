package export_reservations

import (
	"fmt"
	"net/http"
	"time"

	"github.com/m04kA/Restaurant-BookingService/internal/api/handlers"
	"github.com/m04kA/Restaurant-BookingService/internal/domain"
	"github.com/m04kA/Restaurant-BookingService/internal/service/reservations/models"
)

const (
	msgMissingDate = "дата обязательна"
	msgInvalidDate = "некорректный формат даты, ожидается YYYY-MM-DD"
)

type Handler struct {
	service ReservationService
	logger  Logger
}

func NewHandler(service ReservationService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/admin/reservations/export
// Query params: date (required, YYYY-MM-DD). Отдаёт text/csv вложением.
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	dateStr := r.URL.Query().Get("date")
	if dateStr == "" {
		h.logger.Warn("GET /admin/reservations/export - Missing date")
		handlers.RespondBadRequest(w, msgMissingDate)
		return
	}

	date, err := time.ParseInLocation(domain.DateFormat, dateStr, time.Local)
	if err != nil {
		h.logger.Warn("GET /admin/reservations/export - Invalid date format: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	// Выгружаем весь день, включая отменённые брони
	result, err := h.service.GetDayReservations(r.Context(), &models.DayListRequest{
		Date:             date,
		IncludeCancelled: true,
	})
	if err != nil {
		h.logger.Error("GET /admin/reservations/export - Failed to list reservations: date=%s, error=%v", dateStr, err)
		handlers.RespondInternalError(w)
		return
	}

	document, err := BuildCSV(result)
	if err != nil {
		h.logger.Error("GET /admin/reservations/export - Failed to build csv: date=%s, error=%v", dateStr, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /admin/reservations/export - Export built successfully: date=%s, rows=%d",
		dateStr, len(result.Reservations))

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", "reservations-"+dateStr+".csv"))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(document)
}
