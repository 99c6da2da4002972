package create_closure

import (
	"context"

	"github.com/m04kA/Restaurant-BookingService/internal/service/closures/models"
)

type ClosureService interface {
	Create(ctx context.Context, req *models.CreateClosureRequest) (*models.ClosureResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
