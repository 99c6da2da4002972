package create_walkin

import (
	"context"

	createWalkin "github.com/m04kA/Restaurant-BookingService/internal/usecase/create_walkin"
)

type CreateWalkinUseCase interface {
	Execute(ctx context.Context, req *createWalkin.Request) (*createWalkin.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
