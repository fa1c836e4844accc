package accept_reservation

import (
	"context"

	acceptReservationUC "github.com/Dea2002/Site-WEB-Licenta-sub000/internal/usecase/accept_reservation"
)

type AcceptReservationUseCase interface {
	Execute(ctx context.Context, req *acceptReservationUC.Request) (*acceptReservationUC.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
