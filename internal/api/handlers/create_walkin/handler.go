package create_walkin

import (
	"errors"
	"net/http"

	"github.com/m04kA/Restaurant-BookingService/internal/api/handlers"
	createWalkin "github.com/m04kA/Restaurant-BookingService/internal/usecase/create_walkin"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidDate        = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgInvalidInput       = "некорректные данные записи"
	msgClosedDay          = "зал не работает в выбранную дату"
	msgFullyBooked        = "в зале недостаточно свободных мест"
)

type Handler struct {
	useCase CreateWalkinUseCase
	logger  Logger
}

func NewHandler(useCase CreateWalkinUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/admin/walkins
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req CreateWalkinRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /admin/walkins - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	// Конвертируем HTTP запрос в модель use case (с парсингом даты)
	useCaseReq, err := req.ToUseCaseRequest()
	if err != nil {
		h.logger.Warn("POST /admin/walkins - Failed to parse request: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	// Вызываем use case
	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, createWalkin.ErrInvalidInput):
			h.logger.Warn("POST /admin/walkins - Invalid input: date=%s, time=%s, error=%v",
				req.Date, req.StartTime, err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		case errors.Is(err, createWalkin.ErrClosedDay):
			h.logger.Warn("POST /admin/walkins - Venue closed: date=%s", req.Date)
			handlers.RespondBadRequest(w, msgClosedDay)

		case errors.Is(err, createWalkin.ErrFullyBooked):
			h.logger.Warn("POST /admin/walkins - Fully booked: date=%s, time=%s, guests=%d",
				req.Date, req.StartTime, req.Guests)
			handlers.RespondConflict(w, msgFullyBooked)

		default:
			h.logger.Error("POST /admin/walkins - Failed to record walk-in: date=%s, time=%s, error=%v",
				req.Date, req.StartTime, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	// Формируем HTTP ответ
	response := FromUseCaseResponse(result)

	h.logger.Info("POST /admin/walkins - Walk-in recorded successfully: reservation_id=%d, date=%s, time=%s, guests=%d",
		result.ID, req.Date, req.StartTime, req.Guests)
	handlers.RespondJSON(w, http.StatusCreated, response)
}
