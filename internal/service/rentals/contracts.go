package rentals

import (
	"context"
	"time"

	"github.com/Dea2002/Site-WEB-Licenta-sub000/internal/domain"
)

// RentalRepository интерфейс репозитория аренд
type RentalRepository interface {
	GetByRequester(ctx context.Context, requesterID int64) ([]*domain.Rental, error)
	CompleteExpired(ctx context.Context, now time.Time) ([]*domain.Rental, error)
}

// ReservationRepository интерфейс репозитория заявок
type ReservationRepository interface {
	UpdateState(ctx context.Context, id int64, from, to domain.ReservationState) error
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// TransitionNotifier интерфейс отправки событий жизненного цикла
type TransitionNotifier interface {
	Emit(event domain.TransitionEvent)
}

// TimeProvider интерфейс для получения текущего времени
type TimeProvider interface {
	Now() time.Time
}

// RealTimeProvider реализация TimeProvider на основе системных часов
type RealTimeProvider struct{}

func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
