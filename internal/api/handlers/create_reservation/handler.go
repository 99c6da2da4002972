package create_reservation

import (
	"errors"
	"net/http"

	"github.com/m04kA/Restaurant-BookingService/internal/api/handlers"
	createReservation "github.com/m04kA/Restaurant-BookingService/internal/usecase/create_reservation"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidDate        = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgInvalidInput       = "некорректные данные бронирования"
	msgClosedDay          = "зал не работает в выбранную дату"
	msgOutsideHours       = "выбранное время вне часов работы зала"
	msgBlocked            = "выбранное время закрыто для бронирования"
	msgTooManyGuests      = "слишком большая компания для онлайн-брони"
	msgFullyBooked        = "недостаточно свободных мест на выбранное время"
)

type Handler struct {
	useCase CreateReservationUseCase
	logger  Logger
}

func NewHandler(useCase CreateReservationUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/reservations
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req CreateReservationRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /reservations - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	// Конвертируем HTTP запрос в модель use case (с парсингом даты)
	useCaseReq, err := req.ToUseCaseRequest()
	if err != nil {
		h.logger.Warn("POST /reservations - Failed to parse request: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	// Вызываем use case
	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		// Обработка ошибок use case
		switch {
		case errors.Is(err, createReservation.ErrInvalidInput):
			h.logger.Warn("POST /reservations - Invalid input: date=%s, time=%s, error=%v",
				req.Date, req.StartTime, err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		case errors.Is(err, createReservation.ErrClosedDay):
			h.logger.Warn("POST /reservations - Venue closed: date=%s", req.Date)
			handlers.RespondBadRequest(w, msgClosedDay)

		case errors.Is(err, createReservation.ErrOutsideHours):
			h.logger.Warn("POST /reservations - Outside operating hours: date=%s, time=%s",
				req.Date, req.StartTime)
			handlers.RespondBadRequest(w, msgOutsideHours)

		case errors.Is(err, createReservation.ErrBlocked):
			h.logger.Warn("POST /reservations - Slot blocked by closure: date=%s, time=%s",
				req.Date, req.StartTime)
			handlers.RespondConflict(w, msgBlocked)

		case errors.Is(err, createReservation.ErrTooManyGuests):
			h.logger.Warn("POST /reservations - Party too large: date=%s, guests=%d",
				req.Date, req.Guests)
			handlers.RespondBadRequest(w, msgTooManyGuests)

		case errors.Is(err, createReservation.ErrFullyBooked):
			h.logger.Warn("POST /reservations - Fully booked: date=%s, time=%s, guests=%d",
				req.Date, req.StartTime, req.Guests)
			handlers.RespondConflict(w, msgFullyBooked)

		default:
			h.logger.Error("POST /reservations - Failed to create reservation: date=%s, time=%s, error=%v",
				req.Date, req.StartTime, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	// Формируем HTTP ответ
	response := FromUseCaseResponse(result)

	h.logger.Info("POST /reservations - Reservation created successfully: reservation_id=%d, date=%s, time=%s, guests=%d",
		result.ID, req.Date, req.StartTime, req.Guests)
	handlers.RespondJSON(w, http.StatusCreated, response)
}
