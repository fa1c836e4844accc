package submit_reservation

import (
	"context"

	submitReservationUC "github.com/Dea2002/Site-WEB-Licenta-sub000/internal/usecase/submit_reservation"
)

type SubmitReservationUseCase interface {
	Execute(ctx context.Context, req *submitReservationUC.Request) (*submitReservationUC.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
