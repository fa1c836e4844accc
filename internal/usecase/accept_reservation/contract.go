package accept_reservation

import (
	"context"
	"time"

	"github.com/Dea2002/Site-WEB-Licenta-sub000/internal/domain"
	"github.com/Dea2002/Site-WEB-Licenta-sub000/internal/integrations/apartmentservice"
	"github.com/Dea2002/Site-WEB-Licenta-sub000/internal/integrations/userservice"
)

// ReservationRepository интерфейс репозитория заявок
type ReservationRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.ReservationRequest, error)
	UpdateState(ctx context.Context, id int64, from, to domain.ReservationState) error
	Decline(ctx context.Context, id int64, reason string) error
}

// RentalRepository интерфейс репозитория аренд (источник леджера доступности)
type RentalRepository interface {
	GetBlockingIntervals(ctx context.Context, apartmentID int64) ([]domain.StayInterval, error)
	Create(ctx context.Context, rental *domain.Rental) (*domain.Rental, error)
}

// UserServiceClient интерфейс клиента UserService
type UserServiceClient interface {
	GetEligibility(ctx context.Context, userID int64) (*userservice.Eligibility, error)
}

// ApartmentServiceClient интерфейс клиента ApartmentService
type ApartmentServiceClient interface {
	GetApartment(ctx context.Context, apartmentID int64) (*apartmentservice.Apartment, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// TransitionNotifier интерфейс отправки событий жизненного цикла
type TransitionNotifier interface {
	Emit(event domain.TransitionEvent)
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
