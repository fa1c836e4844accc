package rentals

import (
	"context"
	"errors"
	"fmt"

	"github.com/Dea2002/Site-WEB-Licenta-sub000/internal/domain"
	reservationRepo "github.com/Dea2002/Site-WEB-Licenta-sub000/internal/infra/storage/reservation"
)

// Service сервис аренд: завершение истёкших и чтение
type Service struct {
	rentalRepo      RentalRepository
	reservationRepo ReservationRepository
	txManager       TransactionManager
	notifier        TransitionNotifier
	timeProvider    TimeProvider
	logger          Logger
}

// NewService создает новый экземпляр сервиса аренд
func NewService(
	rentalRepo RentalRepository,
	reservationRepo ReservationRepository,
	txManager TransactionManager,
	notifier TransitionNotifier,
	logger Logger,
) *Service {
	return &Service{
		rentalRepo:      rentalRepo,
		reservationRepo: reservationRepo,
		txManager:       txManager,
		notifier:        notifier,
		timeProvider:    &RealTimeProvider{},
		logger:          logger,
	}
}

// CompleteExpired завершает аренды, у которых дата выезда уже наступила.
// Завершённая аренда продолжает блокировать свой интервал в леджере,
// меняется только статус. Возвращает число завершённых аренд.
func (s *Service) CompleteExpired(ctx context.Context) (int, error) {
	now := s.timeProvider.Now()

	var completed []*domain.Rental

	err := s.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		var err error
		completed, err = s.rentalRepo.CompleteExpired(txCtx, now)
		if err != nil {
			return fmt.Errorf("%w: CompleteExpired - repository error: %v", ErrInternal, err)
		}

		for _, rental := range completed {
			// Заявка переводится в completed вместе с арендой. Если её статус
			// уже поменялся конкурентно, пропускаем: аренда важнее.
			err := s.reservationRepo.UpdateState(txCtx, rental.RequestID, domain.StateAccepted, domain.StateCompleted)
			if err != nil && !errors.Is(err, reservationRepo.ErrStateConflict) {
				return fmt.Errorf("%w: CompleteExpired - reservation update error: %v", ErrInternal, err)
			}
			if errors.Is(err, reservationRepo.ErrStateConflict) {
				s.logger.Warn("CompleteExpired: reservation id=%d is not accepted, skipping state update", rental.RequestID)
			}
		}

		return nil
	})

	if err != nil {
		s.logger.Error("CompleteExpired: %v", err)
		return 0, err
	}

	if len(completed) > 0 {
		s.logger.Info("CompleteExpired: completed %d rentals", len(completed))
	}

	for _, rental := range completed {
		s.notifier.Emit(domain.TransitionEvent{
			RequestID:   rental.RequestID,
			ApartmentID: rental.ApartmentID,
			RequesterID: rental.RequesterID,
			OwnerID:     rental.OwnerID,
			FromState:   domain.StateAccepted,
			ToState:     domain.StateCompleted,
		})
	}

	return len(completed), nil
}

// GetUserRentals получает аренды пользователя
func (s *Service) GetUserRentals(ctx context.Context, requesterID int64) ([]*domain.Rental, error) {
	s.logger.Info("GetUserRentals: fetching rentals for user=%d", requesterID)

	rentals, err := s.rentalRepo.GetByRequester(ctx, requesterID)
	if err != nil {
		s.logger.Error("GetUserRentals: repository error for user=%d: %v", requesterID, err)
		return nil, fmt.Errorf("%w: GetUserRentals - repository error: %v", ErrInternal, err)
	}

	return rentals, nil
}
