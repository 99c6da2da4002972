package list_closures

import (
	"net/http"

	"github.com/m04kA/Restaurant-BookingService/internal/api/handlers"
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

// Handle GET /api/v1/admin/closures
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	result, err := h.service.List(r.Context())
	if err != nil {
		h.logger.Error("GET /admin/closures - Failed to list closures: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /admin/closures - Closures retrieved successfully: count=%d", len(result.Closures))
	handlers.RespondJSON(w, http.StatusOK, result)
}
