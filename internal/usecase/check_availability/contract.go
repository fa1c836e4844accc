package check_availability

import (
	"context"
	"time"

	"github.com/Dea2002/Site-WEB-Licenta-sub000/internal/domain"
	"github.com/Dea2002/Site-WEB-Licenta-sub000/internal/integrations/apartmentservice"
	"github.com/Dea2002/Site-WEB-Licenta-sub000/internal/integrations/userservice"
)

// RentalRepository интерфейс репозитория аренд (источник леджера доступности)
type RentalRepository interface {
	GetBlockingIntervals(ctx context.Context, apartmentID int64) ([]domain.StayInterval, error)
}

// UserServiceClient интерфейс клиента UserService
type UserServiceClient interface {
	GetEligibility(ctx context.Context, userID int64) (*userservice.Eligibility, error)
}

// ApartmentServiceClient интерфейс клиента ApartmentService
type ApartmentServiceClient interface {
	GetApartment(ctx context.Context, apartmentID int64) (*apartmentservice.Apartment, error)
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
