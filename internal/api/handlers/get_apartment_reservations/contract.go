package get_apartment_reservations

import (
	"context"

	"github.com/Dea2002/Site-WEB-Licenta-sub000/internal/service/reservations/models"
)

type ReservationService interface {
	GetApartmentReservations(ctx context.Context, req *models.GetApartmentReservationsRequest) (*models.ReservationListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
