package get_available_slots

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/m04kA/Restaurant-BookingService/internal/api/handlers"
	getAvailableSlots "github.com/m04kA/Restaurant-BookingService/internal/usecase/get_available_slots"
)

const (
	msgMissingDate   = "дата обязательна"
	msgInvalidDate   = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgInvalidGuests = "некорректное количество гостей"
)

type Handler struct {
	useCase GetAvailableSlotsUseCase
	logger  Logger
}

func NewHandler(useCase GetAvailableSlotsUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/slots
// Query params: guests (optional, по умолчанию 1), date (required, YYYY-MM-DD)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	// Извлекаем date из query параметров
	dateStr := r.URL.Query().Get("date")
	if dateStr == "" {
		h.logger.Warn("GET /slots - Missing date")
		handlers.RespondBadRequest(w, msgMissingDate)
		return
	}

	// Размер компании персонализирует ответ; без него показываем сетку для одного гостя
	guests := 1
	if guestsStr := r.URL.Query().Get("guests"); guestsStr != "" {
		parsed, err := strconv.Atoi(guestsStr)
		if err != nil || parsed < 1 {
			h.logger.Warn("GET /slots - Invalid guests: %q", guestsStr)
			handlers.RespondBadRequest(w, msgInvalidGuests)
			return
		}
		guests = parsed
	}

	// Формируем запрос к use case (с парсингом даты)
	useCaseReq, err := ToUseCaseRequest(dateStr, guests)
	if err != nil {
		h.logger.Warn("GET /slots - Invalid date format: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	// Вызываем use case
	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, getAvailableSlots.ErrInvalidInput):
			h.logger.Warn("GET /slots - Invalid request: date=%s, guests=%d, error=%v", dateStr, guests, err)
			handlers.RespondBadRequest(w, msgInvalidDate)

		default:
			h.logger.Error("GET /slots - Failed to get slots: date=%s, error=%v", dateStr, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	// Формируем HTTP ответ
	response := FromUseCaseResponse(result)

	h.logger.Info("GET /slots - Slots retrieved successfully: date=%s, guests=%d, slots_count=%d",
		dateStr, guests, len(result.Slots))
	handlers.RespondJSON(w, http.StatusOK, response)
}
