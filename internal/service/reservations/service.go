package reservations

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/Dea2002/Site-WEB-Licenta-sub000/internal/domain"
	rentalRepo "github.com/Dea2002/Site-WEB-Licenta-sub000/internal/infra/storage/rental"
	reservationRepo "github.com/Dea2002/Site-WEB-Licenta-sub000/internal/infra/storage/reservation"
	"github.com/Dea2002/Site-WEB-Licenta-sub000/internal/service/reservations/models"
	"github.com/Dea2002/Site-WEB-Licenta-sub000/pkg/txmanager"
)

// Service сервис для чтения, отклонения и отмены заявок на бронирование
type Service struct {
	reservationRepo ReservationRepository
	rentalRepo      RentalRepository
	txManager       TransactionManager
	notifier        TransitionNotifier
	logger          Logger
}

// NewService создает новый экземпляр сервиса заявок
func NewService(
	reservationRepo ReservationRepository,
	rentalRepo RentalRepository,
	txManager TransactionManager,
	notifier TransitionNotifier,
	logger Logger,
) *Service {
	return &Service{
		reservationRepo: reservationRepo,
		rentalRepo:      rentalRepo,
		txManager:       txManager,
		notifier:        notifier,
		logger:          logger,
	}
}

// GetByID получает заявку по ID.
// Заявку видят только её заявитель и владелец квартиры.
func (s *Service) GetByID(ctx context.Context, id int64, userID int64) (*models.ReservationResponse, error) {
	s.logger.Info("GetByID: fetching reservation id=%d for user=%d", id, userID)

	reservation, err := s.getReservation(ctx, id, "GetByID")
	if err != nil {
		return nil, err
	}

	if reservation.RequesterID != userID && reservation.OwnerID != userID {
		s.logger.Warn("GetByID: access denied for user=%d to reservation id=%d", userID, id)
		return nil, ErrAccessDenied
	}

	return models.FromDomainReservation(reservation), nil
}

// GetUserReservations получает историю заявок пользователя,
// опционально фильтруя по статусу
func (s *Service) GetUserReservations(ctx context.Context, req *models.GetUserReservationsRequest) (*models.ReservationListResponse, error) {
	s.logger.Info("GetUserReservations: fetching reservations for user=%d, state=%v", req.RequesterID, req.State)

	var domainState *domain.ReservationState
	if req.State != nil {
		state, err := models.ToDomainReservationState(*req.State)
		if err != nil {
			s.logger.Warn("GetUserReservations: invalid state=%s for user=%d", *req.State, req.RequesterID)
			return nil, fmt.Errorf("%w: invalid state", ErrInvalidInput)
		}
		domainState = &state
	}

	reservations, err := s.reservationRepo.GetByRequester(ctx, req.RequesterID, domainState)
	if err != nil {
		s.logger.Error("GetUserReservations: repository error for user=%d: %v", req.RequesterID, err)
		return nil, fmt.Errorf("%w: GetUserReservations - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetUserReservations: fetched %d reservations for user=%d", len(reservations), req.RequesterID)
	return models.FromDomainReservationList(reservations), nil
}

// GetApartmentReservations получает заявки по квартире.
// Доступно только владельцу квартиры; владение проверяется по заявкам
// (owner_id денормализован в каждую строку).
func (s *Service) GetApartmentReservations(ctx context.Context, req *models.GetApartmentReservationsRequest) (*models.ReservationListResponse, error) {
	s.logger.Info("GetApartmentReservations: apartment=%d, user=%d", req.ApartmentID, req.UserID)

	filter := domain.ReservationsFilter{
		ApartmentID:     req.ApartmentID,
		From:            req.From,
		To:              req.To,
		IncludeTerminal: req.IncludeTerminal,
	}

	if req.State != nil {
		state, err := models.ToDomainReservationState(*req.State)
		if err != nil {
			s.logger.Warn("GetApartmentReservations: invalid state=%s", *req.State)
			return nil, fmt.Errorf("%w: invalid state", ErrInvalidInput)
		}
		filter.State = &state
	}

	reservations, err := s.reservationRepo.GetByApartmentWithFilter(ctx, filter)
	if err != nil {
		s.logger.Error("GetApartmentReservations: repository error for apartment=%d: %v", req.ApartmentID, err)
		return nil, fmt.Errorf("%w: GetApartmentReservations - repository error: %v", ErrInternal, err)
	}

	for _, r := range reservations {
		if r.OwnerID != req.UserID {
			s.logger.Warn("GetApartmentReservations: access denied for user=%d to apartment=%d", req.UserID, req.ApartmentID)
			return nil, ErrAccessDenied
		}
	}

	s.logger.Info("GetApartmentReservations: fetched %d reservations for apartment=%d", len(reservations), req.ApartmentID)
	return models.FromDomainReservationList(reservations), nil
}

// Decline отклоняет pending-заявку. Причина обязательна и непуста.
// Доступно только владельцу квартиры.
func (s *Service) Decline(ctx context.Context, id int64, req *models.DeclineReservationRequest) error {
	s.logger.Info("Decline: declining reservation id=%d by owner=%d", id, req.OwnerID)

	reason := strings.TrimSpace(req.Reason)
	if reason == "" {
		s.logger.Warn("Decline: empty reason for reservation id=%d", id)
		return ErrEmptyReason
	}
	if len(reason) > domain.MaxDeclineReasonLength {
		return fmt.Errorf("%w: reason exceeds %d characters", ErrInvalidInput, domain.MaxDeclineReasonLength)
	}

	reservation, err := s.getReservation(ctx, id, "Decline")
	if err != nil {
		return err
	}

	if reservation.OwnerID != req.OwnerID {
		s.logger.Warn("Decline: access denied for user=%d to reservation id=%d", req.OwnerID, id)
		return ErrAccessDenied
	}

	if !reservation.CanBeDeclined() {
		s.logger.Warn("Decline: reservation id=%d is in state %s", id, reservation.State)
		return ErrNotPending
	}

	if err := s.reservationRepo.Decline(ctx, id, reason); err != nil {
		if errors.Is(err, reservationRepo.ErrStateConflict) {
			return ErrNotPending
		}
		s.logger.Error("Decline: repository error for reservation id=%d: %v", id, err)
		return fmt.Errorf("%w: Decline - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Decline: reservation id=%d declined", id)

	s.notifier.Emit(domain.TransitionEvent{
		RequestID:   reservation.ID,
		ApartmentID: reservation.ApartmentID,
		RequesterID: reservation.RequesterID,
		OwnerID:     reservation.OwnerID,
		FromState:   domain.StatePending,
		ToState:     domain.StateDeclined,
		Reason:      &reason,
	})

	return nil
}

// Cancel отменяет заявку.
// Заявитель может отменить pending- и accepted-заявку, владелец — только
// accepted. Отмена принятой заявки освобождает интервал в леджере, поэтому
// выполняется в той же критической секции, что и accept.
func (s *Service) Cancel(ctx context.Context, id int64, req *models.CancelReservationRequest) error {
	s.logger.Info("Cancel: cancelling reservation id=%d by user=%d", id, req.UserID)

	reservation, err := s.getReservation(ctx, id, "Cancel")
	if err != nil {
		return err
	}

	byOwner := reservation.OwnerID == req.UserID && reservation.RequesterID != req.UserID
	if reservation.RequesterID != req.UserID && !byOwner {
		s.logger.Warn("Cancel: access denied for user=%d to reservation id=%d", req.UserID, id)
		return ErrAccessDenied
	}

	if byOwner && !reservation.CanBeCancelledByOwner() {
		s.logger.Warn("Cancel: owner cannot cancel reservation id=%d in state %s", id, reservation.State)
		return ErrCannotCancel
	}
	if !byOwner && !reservation.CanBeCancelledByRequester() {
		s.logger.Warn("Cancel: requester cannot cancel reservation id=%d in state %s", id, reservation.State)
		return ErrCannotCancel
	}

	fromState := reservation.State
	toState := reservation.CancelStateFor(byOwner)

	// Ошибки репозиториев оборачиваются через %w дважды: цепочка до ошибки
	// драйвера нужна для распознавания конфликта сериализации
	cancelTx := func(txCtx context.Context) error {
		// Перечитываем заявку с блокировкой: статус мог поменяться
		current, err := s.reservationRepo.GetByID(txCtx, id)
		if err != nil {
			if errors.Is(err, reservationRepo.ErrReservationNotFound) {
				return ErrReservationNotFound
			}
			return fmt.Errorf("%w: Cancel - repository error: %w", ErrInternal, err)
		}

		if current.State != fromState {
			return ErrCannotCancel
		}

		if err := s.reservationRepo.Cancel(txCtx, id, fromState, toState); err != nil {
			if errors.Is(err, reservationRepo.ErrStateConflict) {
				return ErrCannotCancel
			}
			return fmt.Errorf("%w: Cancel - repository error: %w", ErrInternal, err)
		}

		// Отмена принятой заявки освобождает интервал: снимаем аренду
		if fromState == domain.StateAccepted {
			rental, err := s.rentalRepo.GetByRequestID(txCtx, id)
			if err != nil {
				if errors.Is(err, rentalRepo.ErrRentalNotFound) {
					// Аренды нет — освобождать нечего, release идемпотентен
					s.logger.Warn("Cancel: no rental found for accepted reservation id=%d", id)
					return nil
				}
				return fmt.Errorf("%w: Cancel - rental lookup error: %w", ErrInternal, err)
			}

			rentalStatus := domain.RentalStatusCancelledByTenant
			if byOwner {
				rentalStatus = domain.RentalStatusCancelledByOwner
			}

			if err := s.rentalRepo.Cancel(txCtx, rental.ID, rentalStatus, string(toState)); err != nil {
				return fmt.Errorf("%w: Cancel - rental cancel error: %w", ErrInternal, err)
			}
		}

		return nil
	}

	err = s.txManager.DoSerializable(ctx, cancelTx)

	// Конкурентный accept мог оборвать эту транзакцию конфликтом
	// сериализации. Повторяем один раз: повтор видит актуальный статус
	// заявки и либо отменяет её, либо возвращает ErrCannotCancel.
	if txmanager.IsSerializationFailure(err) {
		s.logger.Warn("Cancel: serialization conflict for reservation id=%d, retrying", id)
		err = s.txManager.DoSerializable(ctx, cancelTx)
	}

	if err != nil {
		return err
	}

	s.logger.Info("Cancel: reservation id=%d cancelled with state=%s", id, toState)

	s.notifier.Emit(domain.TransitionEvent{
		RequestID:   reservation.ID,
		ApartmentID: reservation.ApartmentID,
		RequesterID: reservation.RequesterID,
		OwnerID:     reservation.OwnerID,
		FromState:   fromState,
		ToState:     toState,
	})

	return nil
}

func (s *Service) getReservation(ctx context.Context, id int64, op string) (*domain.ReservationRequest, error) {
	reservation, err := s.reservationRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, reservationRepo.ErrReservationNotFound) {
			s.logger.Warn("%s: reservation id=%d not found", op, id)
			return nil, ErrReservationNotFound
		}
		s.logger.Error("%s: repository error for reservation id=%d: %v", op, id, err)
		return nil, fmt.Errorf("%w: %s - repository error: %v", ErrInternal, op, err)
	}
	return reservation, nil
}
