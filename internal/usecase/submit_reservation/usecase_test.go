package submit_reservation

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Dea2002/Site-WEB-Licenta-sub000/internal/domain"
	"github.com/Dea2002/Site-WEB-Licenta-sub000/internal/integrations/apartmentservice"
	"github.com/Dea2002/Site-WEB-Licenta-sub000/internal/integrations/userservice"
)

// --- fakes ---

type fakeReservationRepo struct {
	created   *domain.ReservationRequest
	createErr error
}

func (f *fakeReservationRepo) Create(_ context.Context, req *domain.ReservationRequest) (*domain.ReservationRequest, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	req.ID = 42
	req.CreatedAt = time.Now()
	req.UpdatedAt = req.CreatedAt
	f.created = req
	return req, nil
}

type fakeRentalRepo struct {
	intervals []domain.StayInterval
	err       error
}

func (f *fakeRentalRepo) GetBlockingIntervals(_ context.Context, _ int64) ([]domain.StayInterval, error) {
	return f.intervals, f.err
}

type fakeUserClient struct {
	eligibility *userservice.Eligibility
	err         error
}

func (f *fakeUserClient) GetEligibility(_ context.Context, _ int64) (*userservice.Eligibility, error) {
	return f.eligibility, f.err
}

type fakeApartmentClient struct {
	apartment *apartmentservice.Apartment
	err       error
}

func (f *fakeApartmentClient) GetApartment(_ context.Context, _ int64) (*apartmentservice.Apartment, error) {
	return f.apartment, f.err
}

type fakeNotifier struct {
	events []domain.TransitionEvent
}

func (f *fakeNotifier) Emit(event domain.TransitionEvent) {
	f.events = append(f.events, event)
}

type fakeTimeProvider struct {
	now time.Time
}

func (f *fakeTimeProvider) Now() time.Time {
	return f.now
}

type noopLogger struct{}

func (noopLogger) Info(string, ...interface{})  {}
func (noopLogger) Warn(string, ...interface{})  {}
func (noopLogger) Error(string, ...interface{}) {}

// --- helpers ---

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func testApartment() *apartmentservice.Apartment {
	return &apartmentservice.Apartment{
		ID:         7,
		OwnerID:    100,
		TotalRooms: 3,
		Pricing: apartmentservice.Pricing{
			BasePricePerRoomPerNight: 100,
			Utilities: apartmentservice.Utilities{
				Internet: 60, TV: 40, Water: 50, Gas: 70, Electricity: 80,
			},
			Discount1: 10,
			Discount2: 5,
			Discount3: 2,
		},
	}
}

func testEligibility() *userservice.Eligibility {
	return &userservice.Eligibility{
		UserID:     1,
		Category:   1,
		ValidUntil: date(2026, 12, 31),
		CanBook:    true,
	}
}

func validRequest() *Request {
	return &Request{
		RequesterID: 1,
		ApartmentID: 7,
		RoomCount:   2,
		CheckIn:     date(2026, 9, 1),
		CheckOut:    date(2026, 9, 5),
	}
}

func newTestUseCase(
	reservationRepo *fakeReservationRepo,
	rentalRepo *fakeRentalRepo,
	userClient *fakeUserClient,
	apartmentClient *fakeApartmentClient,
	notifier *fakeNotifier,
) *UseCase {
	uc := NewUseCase(reservationRepo, rentalRepo, userClient, apartmentClient, notifier, noopLogger{})
	uc.timeProvider = &fakeTimeProvider{now: date(2026, 8, 1)}
	return uc
}

// --- tests ---

func TestUseCase_Execute(t *testing.T) {
	t.Run("creates pending reservation with quote snapshot", func(t *testing.T) {
		reservationRepo := &fakeReservationRepo{}
		notifier := &fakeNotifier{}
		uc := newTestUseCase(
			reservationRepo,
			&fakeRentalRepo{},
			&fakeUserClient{eligibility: testEligibility()},
			&fakeApartmentClient{apartment: testApartment()},
			notifier,
		)

		resp, err := uc.Execute(context.Background(), validRequest())
		require.NoError(t, err)

		assert.Equal(t, int64(42), resp.ID)
		assert.Equal(t, string(domain.StatePending), resp.State)
		assert.Equal(t, int64(100), resp.OwnerID)

		// 4 ночи * 100 * 2 комнаты = 800, скидка 10% = 80, коммуналка 40
		assert.Equal(t, 4, resp.Quote.Nights)
		assert.InDelta(t, 800, resp.Quote.BaseCostAllRooms, 1e-9)
		assert.InDelta(t, 80, resp.Quote.DiscountAmount, 1e-9)
		assert.InDelta(t, 760, resp.Quote.FinalWithDiscount, 1e-9)
		assert.InDelta(t, 840, resp.Quote.FinalWithoutDiscount, 1e-9)

		require.Len(t, notifier.events, 1)
		assert.Equal(t, domain.StatePending, notifier.events[0].ToState)
	})

	t.Run("invalid interval", func(t *testing.T) {
		uc := newTestUseCase(
			&fakeReservationRepo{},
			&fakeRentalRepo{},
			&fakeUserClient{eligibility: testEligibility()},
			&fakeApartmentClient{apartment: testApartment()},
			&fakeNotifier{},
		)

		req := validRequest()
		req.CheckOut = req.CheckIn
		_, err := uc.Execute(context.Background(), req)
		assert.ErrorIs(t, err, ErrInvalidInterval)
	})

	t.Run("requester not found", func(t *testing.T) {
		uc := newTestUseCase(
			&fakeReservationRepo{},
			&fakeRentalRepo{},
			&fakeUserClient{err: userservice.ErrUserNotFound},
			&fakeApartmentClient{apartment: testApartment()},
			&fakeNotifier{},
		)

		_, err := uc.Execute(context.Background(), validRequest())
		assert.ErrorIs(t, err, ErrRequesterNotFound)
	})

	t.Run("requester cannot book", func(t *testing.T) {
		eligibility := testEligibility()
		eligibility.CanBook = false

		uc := newTestUseCase(
			&fakeReservationRepo{},
			&fakeRentalRepo{},
			&fakeUserClient{eligibility: eligibility},
			&fakeApartmentClient{apartment: testApartment()},
			&fakeNotifier{},
		)

		_, err := uc.Execute(context.Background(), validRequest())
		assert.ErrorIs(t, err, ErrIneligibleRequester)
	})

	t.Run("apartment not found", func(t *testing.T) {
		uc := newTestUseCase(
			&fakeReservationRepo{},
			&fakeRentalRepo{},
			&fakeUserClient{eligibility: testEligibility()},
			&fakeApartmentClient{err: apartmentservice.ErrApartmentNotFound},
			&fakeNotifier{},
		)

		_, err := uc.Execute(context.Background(), validRequest())
		assert.ErrorIs(t, err, ErrApartmentNotFound)
	})

	t.Run("too many rooms", func(t *testing.T) {
		uc := newTestUseCase(
			&fakeReservationRepo{},
			&fakeRentalRepo{},
			&fakeUserClient{eligibility: testEligibility()},
			&fakeApartmentClient{apartment: testApartment()},
			&fakeNotifier{},
		)

		req := validRequest()
		req.RoomCount = 4
		_, err := uc.Execute(context.Background(), req)
		assert.ErrorIs(t, err, ErrTooManyRooms)
	})

	t.Run("interval blocked by confirmed rental", func(t *testing.T) {
		blocked, err := domain.NewStayInterval(date(2026, 9, 3), date(2026, 9, 10))
		require.NoError(t, err)

		notifier := &fakeNotifier{}
		uc := newTestUseCase(
			&fakeReservationRepo{},
			&fakeRentalRepo{intervals: []domain.StayInterval{blocked}},
			&fakeUserClient{eligibility: testEligibility()},
			&fakeApartmentClient{apartment: testApartment()},
			notifier,
		)

		_, err = uc.Execute(context.Background(), validRequest())
		assert.ErrorIs(t, err, ErrIntervalUnavailable)
		assert.Empty(t, notifier.events)
	})

	t.Run("back-to-back stay is allowed", func(t *testing.T) {
		// Существующая аренда выезжает 1-го, новая заезжает 1-го же
		blocked, err := domain.NewStayInterval(date(2026, 8, 25), date(2026, 9, 1))
		require.NoError(t, err)

		uc := newTestUseCase(
			&fakeReservationRepo{},
			&fakeRentalRepo{intervals: []domain.StayInterval{blocked}},
			&fakeUserClient{eligibility: testEligibility()},
			&fakeApartmentClient{apartment: testApartment()},
			&fakeNotifier{},
		)

		resp, err := uc.Execute(context.Background(), validRequest())
		require.NoError(t, err)
		assert.Equal(t, string(domain.StatePending), resp.State)
	})

	t.Run("expired eligibility quotes without discount", func(t *testing.T) {
		eligibility := testEligibility()
		eligibility.ValidUntil = date(2026, 7, 1) // раньше, чем now (2026-08-01)

		uc := newTestUseCase(
			&fakeReservationRepo{},
			&fakeRentalRepo{},
			&fakeUserClient{eligibility: eligibility},
			&fakeApartmentClient{apartment: testApartment()},
			&fakeNotifier{},
		)

		resp, err := uc.Execute(context.Background(), validRequest())
		require.NoError(t, err)
		assert.Zero(t, resp.Quote.DiscountAmount)
		assert.InDelta(t, resp.Quote.FinalWithoutDiscount, resp.Quote.FinalWithDiscount, 1e-9)
	})

	t.Run("repository failure is internal error", func(t *testing.T) {
		uc := newTestUseCase(
			&fakeReservationRepo{createErr: errors.New("db down")},
			&fakeRentalRepo{},
			&fakeUserClient{eligibility: testEligibility()},
			&fakeApartmentClient{apartment: testApartment()},
			&fakeNotifier{},
		)

		_, err := uc.Execute(context.Background(), validRequest())
		assert.ErrorIs(t, err, ErrInternal)
	})
}
