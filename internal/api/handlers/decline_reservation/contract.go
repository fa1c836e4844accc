package decline_reservation

import (
	"context"

	"github.com/Dea2002/Site-WEB-Licenta-sub000/internal/service/reservations/models"
)

type ReservationService interface {
	Decline(ctx context.Context, id int64, req *models.DeclineReservationRequest) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
