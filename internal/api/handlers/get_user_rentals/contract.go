package get_user_rentals

import (
	"context"

	"github.com/Dea2002/Site-WEB-Licenta-sub000/internal/domain"
)

type RentalsService interface {
	GetUserRentals(ctx context.Context, requesterID int64) ([]*domain.Rental, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
