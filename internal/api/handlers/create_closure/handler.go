package create_closure

import (
	"errors"
	"net/http"

	"github.com/m04kA/Restaurant-BookingService/internal/api/handlers"
	"github.com/m04kA/Restaurant-BookingService/internal/service/closures"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidDateTime    = "некорректный формат времени, ожидается YYYY-MM-DD HH:MM"
	msgInvalidRange       = "конец интервала должен быть позже начала"
	msgInvalidInput       = "некорректные данные закрытия"
)

type Handler struct {
	service ClosureService
	logger  Logger
}

func NewHandler(service ClosureService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle POST /api/v1/admin/closures
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req CreateClosureRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /admin/closures - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	// Конвертируем HTTP запрос в модель сервиса (с парсингом времени)
	serviceReq, err := req.ToServiceRequest()
	if err != nil {
		h.logger.Warn("POST /admin/closures - Failed to parse request: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDateTime)
		return
	}

	// Создаем закрытие
	result, err := h.service.Create(r.Context(), serviceReq)
	if err != nil {
		switch {
		case errors.Is(err, closures.ErrInvalidRange):
			h.logger.Warn("POST /admin/closures - Invalid range: start=%s, end=%s", req.StartAt, req.EndAt)
			handlers.RespondBadRequest(w, msgInvalidRange)

		case errors.Is(err, closures.ErrInvalidInput):
			h.logger.Warn("POST /admin/closures - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("POST /admin/closures - Failed to create closure: start=%s, end=%s, error=%v",
				req.StartAt, req.EndAt, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /admin/closures - Closure created successfully: closure_id=%d, start=%s, end=%s",
		result.ID, req.StartAt, req.EndAt)
	handlers.RespondJSON(w, http.StatusCreated, result)
}
