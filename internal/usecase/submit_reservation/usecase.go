package submit_reservation

import (
	"context"
	"errors"
	"fmt"

	"github.com/Dea2002/Site-WEB-Licenta-sub000/internal/domain"
	apartmentClient "github.com/Dea2002/Site-WEB-Licenta-sub000/internal/integrations/apartmentservice"
	userClient "github.com/Dea2002/Site-WEB-Licenta-sub000/internal/integrations/userservice"
	"github.com/Dea2002/Site-WEB-Licenta-sub000/internal/pricing"
)

// UseCase use case подачи заявки на бронирование.
// Проверка доступности здесь non-binding: интервал НЕ удерживается, пока
// заявка висит в pending. Обязывающая проверка выполняется при принятии.
type UseCase struct {
	reservationRepo ReservationRepository
	rentalRepo      RentalRepository
	userClient      UserServiceClient
	apartmentClient ApartmentServiceClient
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
	notifier TransitionNotifier,
	logger Logger,
) *UseCase {
	return &UseCase{
		reservationRepo: reservationRepo,
		rentalRepo:      rentalRepo,
		userClient:      userClient,
		apartmentClient: apartmentClient,
		notifier:        notifier,
		timeProvider:    &RealTimeProvider{},
		logger:          logger,
	}
}

// Execute выполняет use case подачи заявки
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("SubmitReservation: requester=%d, apartment=%d, rooms=%d, check_in=%s, check_out=%s",
		req.RequesterID, req.ApartmentID, req.RoomCount,
		req.CheckIn.Format(domain.DateFormat), req.CheckOut.Format(domain.DateFormat))

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("SubmitReservation: validation failed: %v", err)
		return nil, err
	}

	// 2. Валидация интервала (checkOut строго после checkIn)
	interval, err := domain.NewStayInterval(req.CheckIn, req.CheckOut)
	if err != nil {
		uc.logger.Warn("SubmitReservation: invalid interval: %v", err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInterval, err)
	}

	now := uc.timeProvider.Now()

	// 3. Получаем статус заявителя: право бронировать и категорию скидки
	eligibility, err := uc.userClient.GetEligibility(ctx, req.RequesterID)
	if err != nil {
		if errors.Is(err, userClient.ErrUserNotFound) {
			uc.logger.Warn("SubmitReservation: requester id=%d not found", req.RequesterID)
			return nil, ErrRequesterNotFound
		}
		uc.logger.Error("SubmitReservation: failed to get eligibility for user id=%d: %v", req.RequesterID, err)
		return nil, fmt.Errorf("%w: failed to get eligibility: %v", ErrInternal, err)
	}

	if !eligibility.CanBook {
		uc.logger.Warn("SubmitReservation: requester id=%d is not eligible to book", req.RequesterID)
		return nil, ErrIneligibleRequester
	}

	// 4. Получаем квартиру с ценовой конфигурацией
	apartment, err := uc.apartmentClient.GetApartment(ctx, req.ApartmentID)
	if err != nil {
		if errors.Is(err, apartmentClient.ErrApartmentNotFound) {
			uc.logger.Warn("SubmitReservation: apartment id=%d not found", req.ApartmentID)
			return nil, ErrApartmentNotFound
		}
		uc.logger.Error("SubmitReservation: failed to get apartment id=%d: %v", req.ApartmentID, err)
		return nil, fmt.Errorf("%w: failed to get apartment: %v", ErrInternal, err)
	}

	if req.RoomCount > apartment.TotalRooms {
		uc.logger.Warn("SubmitReservation: requested %d rooms, apartment id=%d has %d",
			req.RoomCount, req.ApartmentID, apartment.TotalRooms)
		return nil, ErrTooManyRooms
	}

	// 5. Non-binding проверка доступности: читаем леджер без транзакции.
	// Устаревшее чтение допустимо — обязывающая проверка будет при accept.
	intervals, err := uc.rentalRepo.GetBlockingIntervals(ctx, req.ApartmentID)
	if err != nil {
		uc.logger.Error("SubmitReservation: failed to get ledger for apartment id=%d: %v", req.ApartmentID, err)
		return nil, fmt.Errorf("%w: failed to get ledger: %v", ErrInternal, err)
	}

	ledger := domain.NewAvailabilityLedger(intervals)
	if !ledger.IsFree(interval) {
		uc.logger.Warn("SubmitReservation: interval %s..%s not available for apartment id=%d",
			interval.CheckIn.Format(domain.DateFormat), interval.CheckOut.Format(domain.DateFormat), req.ApartmentID)
		return nil, ErrIntervalUnavailable
	}

	// 6. Считаем квоту на момент подачи. При принятии она будет пересчитана
	// с актуальным статусом скидки.
	quote, err := pricing.Quote(
		apartment.Pricing.ToDomain(),
		interval,
		req.RoomCount,
		domain.DiscountEligibility{Category: eligibility.Category, ValidUntil: eligibility.ValidUntil},
		now,
	)
	if err != nil {
		uc.logger.Error("SubmitReservation: failed to compute quote: %v", err)
		return nil, fmt.Errorf("%w: failed to compute quote: %v", ErrInternal, err)
	}

	// 7. Создаем pending-заявку
	reservation := &domain.ReservationRequest{
		ApartmentID: req.ApartmentID,
		RequesterID: req.RequesterID,
		OwnerID:     apartment.OwnerID,
		RoomCount:   req.RoomCount,
		Interval:    interval,
		Quote:       quote,
		State:       domain.StatePending,
	}

	created, err := uc.reservationRepo.Create(ctx, reservation)
	if err != nil {
		uc.logger.Error("SubmitReservation: failed to create reservation: %v", err)
		return nil, fmt.Errorf("%w: failed to create reservation: %v", ErrInternal, err)
	}

	uc.logger.Info("SubmitReservation: successfully created reservation id=%d", created.ID)

	// 8. Уведомляем владельца о новой заявке
	uc.notifier.Emit(domain.TransitionEvent{
		RequestID:   created.ID,
		ApartmentID: created.ApartmentID,
		RequesterID: created.RequesterID,
		OwnerID:     created.OwnerID,
		ToState:     domain.StatePending,
	})

	return &Response{
		ID:          created.ID,
		ApartmentID: created.ApartmentID,
		RequesterID: created.RequesterID,
		OwnerID:     created.OwnerID,
		RoomCount:   created.RoomCount,
		CheckIn:     created.Interval.CheckIn,
		CheckOut:    created.Interval.CheckOut,
		State:       string(created.State),
		Quote:       created.Quote,
		CreatedAt:   created.CreatedAt,
		UpdatedAt:   created.UpdatedAt,
	}, nil
}
