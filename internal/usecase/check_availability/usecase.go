package check_availability

import (
	"context"
	"errors"
	"fmt"

	"github.com/Dea2002/Site-WEB-Licenta-sub000/internal/domain"
	apartmentClient "github.com/Dea2002/Site-WEB-Licenta-sub000/internal/integrations/apartmentservice"
	"github.com/Dea2002/Site-WEB-Licenta-sub000/internal/pricing"
)

// UseCase use case проверки доступности интервала с предварительным расчётом
type UseCase struct {
	rentalRepo      RentalRepository
	userClient      UserServiceClient
	apartmentClient ApartmentServiceClient
	timeProvider    TimeProvider
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	rentalRepo RentalRepository,
	userClient UserServiceClient,
	apartmentClient ApartmentServiceClient,
	logger Logger,
) *UseCase {
	return &UseCase{
		rentalRepo:      rentalRepo,
		userClient:      userClient,
		apartmentClient: apartmentClient,
		timeProvider:    &RealTimeProvider{},
		logger:          logger,
	}
}

// Execute выполняет use case проверки доступности
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CheckAvailability: apartment=%d, rooms=%d, check_in=%s, check_out=%s",
		req.ApartmentID, req.RoomCount,
		req.CheckIn.Format(domain.DateFormat), req.CheckOut.Format(domain.DateFormat))

	// 1. Валидация входных данных
	if req.ApartmentID <= 0 {
		return nil, fmt.Errorf("%w: apartmentID must be positive", ErrInvalidInput)
	}
	if req.RoomCount < domain.MinRoomCount {
		return nil, fmt.Errorf("%w: roomCount must be at least %d", ErrInvalidInput, domain.MinRoomCount)
	}

	interval, err := domain.NewStayInterval(req.CheckIn, req.CheckOut)
	if err != nil {
		uc.logger.Warn("CheckAvailability: invalid interval: %v", err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInterval, err)
	}

	// 2. Получаем квартиру с ценовой конфигурацией
	apartment, err := uc.apartmentClient.GetApartment(ctx, req.ApartmentID)
	if err != nil {
		if errors.Is(err, apartmentClient.ErrApartmentNotFound) {
			uc.logger.Warn("CheckAvailability: apartment id=%d not found", req.ApartmentID)
			return nil, ErrApartmentNotFound
		}
		uc.logger.Error("CheckAvailability: failed to get apartment id=%d: %v", req.ApartmentID, err)
		return nil, fmt.Errorf("%w: failed to get apartment: %v", ErrInternal, err)
	}

	if req.RoomCount > apartment.TotalRooms {
		return nil, ErrTooManyRooms
	}

	// 3. Читаем леджер без транзакции: ответ ни к чему не обязывает
	intervals, err := uc.rentalRepo.GetBlockingIntervals(ctx, req.ApartmentID)
	if err != nil {
		uc.logger.Error("CheckAvailability: failed to get ledger for apartment id=%d: %v", req.ApartmentID, err)
		return nil, fmt.Errorf("%w: failed to get ledger: %v", ErrInternal, err)
	}

	ledger := domain.NewAvailabilityLedger(intervals)

	// 4. Категория скидки — только если пользователь известен.
	// Анонимный запрос получает расчёт без скидки.
	eligibility := domain.DiscountEligibility{}
	if req.UserID != nil {
		userEligibility, err := uc.userClient.GetEligibility(ctx, *req.UserID)
		if err != nil {
			uc.logger.Warn("CheckAvailability: failed to get eligibility for user id=%d, quoting without discount: %v",
				*req.UserID, err)
		} else {
			eligibility = domain.DiscountEligibility{
				Category:   userEligibility.Category,
				ValidUntil: userEligibility.ValidUntil,
			}
		}
	}

	// 5. Предварительный расчёт стоимости
	quote, err := pricing.Quote(apartment.Pricing.ToDomain(), interval, req.RoomCount, eligibility, uc.timeProvider.Now())
	if err != nil {
		uc.logger.Error("CheckAvailability: failed to compute quote: %v", err)
		return nil, fmt.Errorf("%w: failed to compute quote: %v", ErrInternal, err)
	}

	free := ledger.IsFree(interval)
	uc.logger.Info("CheckAvailability: apartment=%d interval %s..%s free=%t",
		req.ApartmentID, interval.CheckIn.Format(domain.DateFormat),
		interval.CheckOut.Format(domain.DateFormat), free)

	return &Response{
		ApartmentID:       req.ApartmentID,
		CheckIn:           interval.CheckIn,
		CheckOut:          interval.CheckOut,
		Free:              free,
		NextBlockingStart: ledger.NextBlockingStart(interval.CheckIn),
		Quote:             quote,
	}, nil
}
