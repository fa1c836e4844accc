package accept_reservation

import (
	"context"
	"errors"
	"fmt"

	"github.com/Dea2002/Site-WEB-Licenta-sub000/internal/domain"
	reservationRepo "github.com/Dea2002/Site-WEB-Licenta-sub000/internal/infra/storage/reservation"
	apartmentClient "github.com/Dea2002/Site-WEB-Licenta-sub000/internal/integrations/apartmentservice"
	"github.com/Dea2002/Site-WEB-Licenta-sub000/internal/pricing"
	"github.com/Dea2002/Site-WEB-Licenta-sub000/pkg/ptr"
	"github.com/Dea2002/Site-WEB-Licenta-sub000/pkg/txmanager"
)

// UseCase use case принятия заявки на бронирование.
// Проверка доступности и вставка в леджер выполняются как одна критическая
// секция в SERIALIZABLE транзакции: побеждает первый закоммитивший accept,
// проигравшая заявка автоматически отклоняется.
type UseCase struct {
	reservationRepo ReservationRepository
	rentalRepo      RentalRepository
	userClient      UserServiceClient
	apartmentClient ApartmentServiceClient
	txManager       TransactionManager
	notifier        TransitionNotifier
	timeProvider    TimeProvider
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	reservationRepo ReservationRepository,
	rentalRepo RentalRepository,
	userClient UserServiceClient,
	apartmentClient ApartmentServiceClient,
	txManager TransactionManager,
	notifier TransitionNotifier,
	logger Logger,
) *UseCase {
	return &UseCase{
		reservationRepo: reservationRepo,
		rentalRepo:      rentalRepo,
		userClient:      userClient,
		apartmentClient: apartmentClient,
		txManager:       txManager,
		notifier:        notifier,
		timeProvider:    &RealTimeProvider{},
		logger:          logger,
	}
}

// Execute выполняет use case принятия заявки
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("AcceptReservation: reservation=%d, owner=%d", req.ReservationID, req.OwnerID)

	if req.ReservationID <= 0 || req.OwnerID <= 0 {
		return nil, fmt.Errorf("%w: reservationID and ownerID must be positive", ErrInvalidInput)
	}

	// 1. Читаем заявку вне транзакции для ранних проверок
	reservation, err := uc.reservationRepo.GetByID(ctx, req.ReservationID)
	if err != nil {
		if errors.Is(err, reservationRepo.ErrReservationNotFound) {
			uc.logger.Warn("AcceptReservation: reservation id=%d not found", req.ReservationID)
			return nil, ErrReservationNotFound
		}
		uc.logger.Error("AcceptReservation: failed to get reservation id=%d: %v", req.ReservationID, err)
		return nil, fmt.Errorf("%w: failed to get reservation: %v", ErrInternal, err)
	}

	// 2. Принять заявку может только владелец квартиры
	if reservation.OwnerID != req.OwnerID {
		uc.logger.Warn("AcceptReservation: user id=%d is not the owner of reservation id=%d",
			req.OwnerID, req.ReservationID)
		return nil, ErrAccessDenied
	}

	if !reservation.CanBeAccepted() {
		uc.logger.Warn("AcceptReservation: reservation id=%d is in state %s", req.ReservationID, reservation.State)
		return nil, ErrNotPending
	}

	now := uc.timeProvider.Now()

	// 3. Внешние вызовы до критической секции: актуальная ценовая
	// конфигурация и актуальный статус скидки заявителя. Статус скидки
	// перепроверяется именно сейчас, а не на момент подачи — заявитель не
	// может зафиксировать скидку после истечения validUntil.
	apartment, err := uc.apartmentClient.GetApartment(ctx, reservation.ApartmentID)
	if err != nil {
		if errors.Is(err, apartmentClient.ErrApartmentNotFound) {
			uc.logger.Warn("AcceptReservation: apartment id=%d not found", reservation.ApartmentID)
			return nil, ErrApartmentNotFound
		}
		uc.logger.Error("AcceptReservation: failed to get apartment id=%d: %v", reservation.ApartmentID, err)
		return nil, fmt.Errorf("%w: failed to get apartment: %v", ErrInternal, err)
	}

	eligibility := domain.DiscountEligibility{}
	userEligibility, err := uc.userClient.GetEligibility(ctx, reservation.RequesterID)
	if err != nil {
		// Недоступность UserService не блокирует принятие: заявка принимается
		// по цене без скидки
		uc.logger.Error("AcceptReservation: failed to get eligibility for user id=%d, charging without discount: %v",
			reservation.RequesterID, err)
	} else {
		eligibility = domain.DiscountEligibility{
			Category:   userEligibility.Category,
			ValidUntil: userEligibility.ValidUntil,
		}
	}

	quote, err := pricing.Quote(apartment.Pricing.ToDomain(), reservation.Interval, reservation.RoomCount, eligibility, now)
	if err != nil {
		uc.logger.Error("AcceptReservation: failed to compute quote: %v", err)
		return nil, fmt.Errorf("%w: failed to compute quote: %v", ErrInternal, err)
	}

	var (
		result       *Response
		mintedRental *domain.Rental
	)

	// 4. Критическая секция: проверка леджера и вставка как одно целое.
	// Ошибки репозиториев оборачиваются через %w дважды: цепочка до ошибки
	// драйвера нужна для распознавания конфликта сериализации.
	criticalSection := func(txCtx context.Context) error {
		// 4.1. Перечитываем заявку с блокировкой строки
		current, err := uc.reservationRepo.GetByID(txCtx, req.ReservationID)
		if err != nil {
			if errors.Is(err, reservationRepo.ErrReservationNotFound) {
				return ErrReservationNotFound
			}
			return fmt.Errorf("%w: failed to get reservation: %w", ErrInternal, err)
		}

		if !current.CanBeAccepted() {
			return ErrNotPending
		}

		// 4.2. Читаем леджер квартиры с блокировкой (FOR UPDATE)
		intervals, err := uc.rentalRepo.GetBlockingIntervals(txCtx, current.ApartmentID)
		if err != nil {
			return fmt.Errorf("%w: failed to get ledger: %w", ErrInternal, err)
		}

		ledger := domain.NewAvailabilityLedger(intervals)

		// 4.3. Проигрыш гонки: интервал занят другой принятой заявкой.
		// Авто-отклонение с системной причиной — заявителю придёт
		// уведомление об отказе, а не страница с ошибкой.
		if !ledger.IsFree(current.Interval) {
			uc.logger.Warn("AcceptReservation: reservation id=%d lost the race, auto-declining", req.ReservationID)

			if err := uc.reservationRepo.Decline(txCtx, req.ReservationID, autoDeclineReason); err != nil {
				return fmt.Errorf("%w: failed to auto-decline: %w", ErrInternal, err)
			}

			result = &Response{
				ReservationID: req.ReservationID,
				State:         string(domain.StateDeclined),
				DeclineReason: ptr.Ptr(autoDeclineReason),
			}
			return nil
		}

		// 4.4. Минтим аренду по пересчитанной финальной цене
		rental := &domain.Rental{
			RequestID:   current.ID,
			ApartmentID: current.ApartmentID,
			RequesterID: current.RequesterID,
			OwnerID:     current.OwnerID,
			RoomCount:   current.RoomCount,
			Interval:    current.Interval,
			FinalPrice:  quote.FinalWithDiscount,
			Status:      domain.RentalStatusActive,
		}

		created, err := uc.rentalRepo.Create(txCtx, rental)
		if err != nil {
			return fmt.Errorf("%w: failed to create rental: %w", ErrInternal, err)
		}

		// 4.5. Переводим заявку в accepted
		if err := uc.reservationRepo.UpdateState(txCtx, req.ReservationID, domain.StatePending, domain.StateAccepted); err != nil {
			return fmt.Errorf("%w: failed to update reservation state: %w", ErrInternal, err)
		}

		mintedRental = created
		result = &Response{
			ReservationID: req.ReservationID,
			State:         string(domain.StateAccepted),
			Rental: &RentalInfo{
				ID:          created.ID,
				ApartmentID: created.ApartmentID,
				RequesterID: created.RequesterID,
				RoomCount:   created.RoomCount,
				CheckIn:     created.Interval.CheckIn,
				CheckOut:    created.Interval.CheckOut,
				FinalPrice:  created.FinalPrice,
				Quote:       quote,
				CreatedAt:   created.CreatedAt,
			},
		}
		return nil
	}

	err = uc.txManager.DoSerializable(ctx, criticalSection)

	// Две конкурентные accept-транзакции Postgres разрешает, обрывая
	// проигравшую с ошибкой сериализации. Повторяем секцию один раз:
	// повтор видит закоммиченную аренду победителя и уходит в ветку
	// авто-отклонения вместо того, чтобы отдать ошибку наружу.
	if txmanager.IsSerializationFailure(err) {
		uc.logger.Warn("AcceptReservation: serialization conflict for reservation id=%d, retrying", req.ReservationID)
		result, mintedRental = nil, nil
		err = uc.txManager.DoSerializable(ctx, criticalSection)
	}

	if err != nil {
		return nil, err
	}

	// 5. Уведомляем об исходе
	if result.Accepted() {
		uc.logger.Info("AcceptReservation: reservation id=%d accepted, rental id=%d minted at price %.2f",
			req.ReservationID, mintedRental.ID, mintedRental.FinalPrice)

		uc.notifier.Emit(domain.TransitionEvent{
			RequestID:   reservation.ID,
			ApartmentID: reservation.ApartmentID,
			RequesterID: reservation.RequesterID,
			OwnerID:     reservation.OwnerID,
			FromState:   domain.StatePending,
			ToState:     domain.StateAccepted,
		})
	} else {
		uc.logger.Info("AcceptReservation: reservation id=%d auto-declined on ledger conflict", req.ReservationID)

		uc.notifier.Emit(domain.TransitionEvent{
			RequestID:   reservation.ID,
			ApartmentID: reservation.ApartmentID,
			RequesterID: reservation.RequesterID,
			OwnerID:     reservation.OwnerID,
			FromState:   domain.StatePending,
			ToState:     domain.StateDeclined,
			Reason:      result.DeclineReason,
		})
	}

	return result, nil
}
