package reservations

import (
	"context"

	"github.com/Dea2002/Site-WEB-Licenta-sub000/internal/domain"
)

// ReservationRepository интерфейс репозитория заявок
type ReservationRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.ReservationRequest, error)
	GetByRequester(ctx context.Context, requesterID int64, state *domain.ReservationState) ([]*domain.ReservationRequest, error)
	GetByApartmentWithFilter(ctx context.Context, filter domain.ReservationsFilter) ([]*domain.ReservationRequest, error)
	Decline(ctx context.Context, id int64, reason string) error
	Cancel(ctx context.Context, id int64, from, to domain.ReservationState) error
}

// RentalRepository интерфейс репозитория аренд
type RentalRepository interface {
	GetByRequestID(ctx context.Context, requestID int64) (*domain.Rental, error)
	Cancel(ctx context.Context, id int64, status domain.RentalStatus, reason string) error
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// TransitionNotifier интерфейс отправки событий жизненного цикла
type TransitionNotifier interface {
	Emit(event domain.TransitionEvent)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
