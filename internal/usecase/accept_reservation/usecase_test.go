package accept_reservation

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Dea2002/Site-WEB-Licenta-sub000/internal/domain"
	reservationStorage "github.com/Dea2002/Site-WEB-Licenta-sub000/internal/infra/storage/reservation"
	"github.com/Dea2002/Site-WEB-Licenta-sub000/internal/integrations/apartmentservice"
	"github.com/Dea2002/Site-WEB-Licenta-sub000/internal/integrations/userservice"
)

// --- fakes ---

// fakeReservationRepo хранит заявки в памяти и честно выполняет
// guarded-переходы статусов
type fakeReservationRepo struct {
	reservations map[int64]*domain.ReservationRequest
}

func newFakeReservationRepo(reservations ...*domain.ReservationRequest) *fakeReservationRepo {
	repo := &fakeReservationRepo{reservations: make(map[int64]*domain.ReservationRequest)}
	for _, r := range reservations {
		repo.reservations[r.ID] = r
	}
	return repo
}

func (f *fakeReservationRepo) GetByID(_ context.Context, id int64) (*domain.ReservationRequest, error) {
	r, ok := f.reservations[id]
	if !ok {
		return nil, reservationStorage.ErrReservationNotFound
	}
	copied := *r
	return &copied, nil
}

func (f *fakeReservationRepo) UpdateState(_ context.Context, id int64, from, to domain.ReservationState) error {
	r, ok := f.reservations[id]
	if !ok {
		return reservationStorage.ErrReservationNotFound
	}
	if r.State != from {
		return reservationStorage.ErrStateConflict
	}
	r.State = to
	return nil
}

func (f *fakeReservationRepo) Decline(_ context.Context, id int64, reason string) error {
	r, ok := f.reservations[id]
	if !ok {
		return reservationStorage.ErrReservationNotFound
	}
	if r.State != domain.StatePending {
		return reservationStorage.ErrStateConflict
	}
	r.State = domain.StateDeclined
	r.DeclineReason = &reason
	return nil
}

// fakeRentalRepo аккумулирует созданные аренды: интервал принятой
// заявки блокирует последующие
type fakeRentalRepo struct {
	rentals   []*domain.Rental
	nextID    int64
	createErr error
}

func (f *fakeRentalRepo) GetBlockingIntervals(_ context.Context, apartmentID int64) ([]domain.StayInterval, error) {
	intervals := make([]domain.StayInterval, 0)
	for _, r := range f.rentals {
		if r.ApartmentID == apartmentID && r.IsBlocking() {
			intervals = append(intervals, r.Interval)
		}
	}
	return intervals, nil
}

func (f *fakeRentalRepo) Create(_ context.Context, rental *domain.Rental) (*domain.Rental, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	f.nextID++
	rental.ID = f.nextID
	rental.CreatedAt = time.Now()
	f.rentals = append(f.rentals, rental)
	return rental, nil
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

// fakeTxManager выполняет функцию напрямую: сериализация проверяется
// содержимым fake-репозиториев
type fakeTxManager struct{}

func (fakeTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

// serializationConflictTxManager обрывает первые failures вызовов ошибкой
// сериализации, как Postgres обрывает проигравшую SERIALIZABLE транзакцию
type serializationConflictTxManager struct {
	failures int
	calls    int
}

func (m *serializationConflictTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	m.calls++
	if m.calls <= m.failures {
		return fmt.Errorf("txmanager: commit transaction: %w", &pq.Error{Code: "40001"})
	}
	return fn(ctx)
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
		},
	}
}

func pendingReservation(t *testing.T, id int64, checkIn, checkOut time.Time) *domain.ReservationRequest {
	t.Helper()
	interval, err := domain.NewStayInterval(checkIn, checkOut)
	require.NoError(t, err)
	return &domain.ReservationRequest{
		ID:          id,
		ApartmentID: 7,
		RequesterID: 1,
		OwnerID:     100,
		RoomCount:   2,
		Interval:    interval,
		State:       domain.StatePending,
	}
}

func newTestUseCase(
	reservationRepo *fakeReservationRepo,
	rentalRepo *fakeRentalRepo,
	userClient *fakeUserClient,
	apartmentClient *fakeApartmentClient,
	notifier *fakeNotifier,
) *UseCase {
	uc := NewUseCase(reservationRepo, rentalRepo, userClient, apartmentClient, fakeTxManager{}, notifier, noopLogger{})
	uc.timeProvider = &fakeTimeProvider{now: date(2026, 8, 1)}
	return uc
}

// --- tests ---

func TestUseCase_Execute(t *testing.T) {
	validEligibility := &userservice.Eligibility{
		UserID:     1,
		Category:   1,
		ValidUntil: date(2026, 12, 31),
		CanBook:    true,
	}

	t.Run("accepts pending reservation and mints rental", func(t *testing.T) {
		reservation := pendingReservation(t, 10, date(2026, 9, 1), date(2026, 9, 5))
		reservationRepo := newFakeReservationRepo(reservation)
		rentalRepo := &fakeRentalRepo{}
		notifier := &fakeNotifier{}

		uc := newTestUseCase(reservationRepo, rentalRepo,
			&fakeUserClient{eligibility: validEligibility},
			&fakeApartmentClient{apartment: testApartment()},
			notifier,
		)

		resp, err := uc.Execute(context.Background(), &Request{ReservationID: 10, OwnerID: 100})
		require.NoError(t, err)
		require.True(t, resp.Accepted())

		require.NotNil(t, resp.Rental)
		// Финальная цена пересчитана на момент принятия: 800 - 80 + 40
		assert.InDelta(t, 760, resp.Rental.FinalPrice, 1e-9)

		assert.Equal(t, domain.StateAccepted, reservationRepo.reservations[10].State)
		require.Len(t, rentalRepo.rentals, 1)
		assert.Equal(t, domain.RentalStatusActive, rentalRepo.rentals[0].Status)

		require.Len(t, notifier.events, 1)
		assert.Equal(t, domain.StateAccepted, notifier.events[0].ToState)
	})

	t.Run("auto-declines when interval is taken", func(t *testing.T) {
		first := pendingReservation(t, 10, date(2026, 9, 1), date(2026, 9, 5))
		second := pendingReservation(t, 11, date(2026, 9, 3), date(2026, 9, 8))
		reservationRepo := newFakeReservationRepo(first, second)
		rentalRepo := &fakeRentalRepo{}
		notifier := &fakeNotifier{}

		uc := newTestUseCase(reservationRepo, rentalRepo,
			&fakeUserClient{eligibility: validEligibility},
			&fakeApartmentClient{apartment: testApartment()},
			notifier,
		)

		// Первая заявка выигрывает гонку
		resp, err := uc.Execute(context.Background(), &Request{ReservationID: 10, OwnerID: 100})
		require.NoError(t, err)
		require.True(t, resp.Accepted())

		// Вторая на пересекающийся интервал автоматически отклоняется
		resp, err = uc.Execute(context.Background(), &Request{ReservationID: 11, OwnerID: 100})
		require.NoError(t, err)
		assert.False(t, resp.Accepted())
		assert.Equal(t, string(domain.StateDeclined), resp.State)
		require.NotNil(t, resp.DeclineReason)
		assert.NotEmpty(t, *resp.DeclineReason)
		assert.Nil(t, resp.Rental)

		// Ровно одна аренда и ровно одна принятая заявка
		assert.Len(t, rentalRepo.rentals, 1)
		assert.Equal(t, domain.StateAccepted, reservationRepo.reservations[10].State)
		assert.Equal(t, domain.StateDeclined, reservationRepo.reservations[11].State)
		require.NotNil(t, reservationRepo.reservations[11].DeclineReason)

		require.Len(t, notifier.events, 2)
		assert.Equal(t, domain.StateDeclined, notifier.events[1].ToState)
	})

	t.Run("non-overlapping reservations both get accepted", func(t *testing.T) {
		first := pendingReservation(t, 10, date(2026, 9, 1), date(2026, 9, 5))
		second := pendingReservation(t, 11, date(2026, 9, 5), date(2026, 9, 10))
		reservationRepo := newFakeReservationRepo(first, second)
		rentalRepo := &fakeRentalRepo{}

		uc := newTestUseCase(reservationRepo, rentalRepo,
			&fakeUserClient{eligibility: validEligibility},
			&fakeApartmentClient{apartment: testApartment()},
			&fakeNotifier{},
		)

		resp, err := uc.Execute(context.Background(), &Request{ReservationID: 10, OwnerID: 100})
		require.NoError(t, err)
		assert.True(t, resp.Accepted())

		resp, err = uc.Execute(context.Background(), &Request{ReservationID: 11, OwnerID: 100})
		require.NoError(t, err)
		assert.True(t, resp.Accepted())

		assert.Len(t, rentalRepo.rentals, 2)
	})

	t.Run("reservation not found", func(t *testing.T) {
		uc := newTestUseCase(newFakeReservationRepo(), &fakeRentalRepo{},
			&fakeUserClient{eligibility: validEligibility},
			&fakeApartmentClient{apartment: testApartment()},
			&fakeNotifier{},
		)

		_, err := uc.Execute(context.Background(), &Request{ReservationID: 99, OwnerID: 100})
		assert.ErrorIs(t, err, ErrReservationNotFound)
	})

	t.Run("only the owner can accept", func(t *testing.T) {
		reservation := pendingReservation(t, 10, date(2026, 9, 1), date(2026, 9, 5))
		uc := newTestUseCase(newFakeReservationRepo(reservation), &fakeRentalRepo{},
			&fakeUserClient{eligibility: validEligibility},
			&fakeApartmentClient{apartment: testApartment()},
			&fakeNotifier{},
		)

		_, err := uc.Execute(context.Background(), &Request{ReservationID: 10, OwnerID: 999})
		assert.ErrorIs(t, err, ErrAccessDenied)
	})

	t.Run("already processed reservation", func(t *testing.T) {
		reservation := pendingReservation(t, 10, date(2026, 9, 1), date(2026, 9, 5))
		reservation.State = domain.StateDeclined

		uc := newTestUseCase(newFakeReservationRepo(reservation), &fakeRentalRepo{},
			&fakeUserClient{eligibility: validEligibility},
			&fakeApartmentClient{apartment: testApartment()},
			&fakeNotifier{},
		)

		_, err := uc.Execute(context.Background(), &Request{ReservationID: 10, OwnerID: 100})
		assert.ErrorIs(t, err, ErrNotPending)
	})

	t.Run("eligibility re-checked at accept time", func(t *testing.T) {
		reservation := pendingReservation(t, 10, date(2026, 9, 1), date(2026, 9, 5))
		expired := &userservice.Eligibility{
			UserID:     1,
			Category:   1,
			ValidUntil: date(2026, 7, 1), // истекла к моменту принятия
			CanBook:    true,
		}

		uc := newTestUseCase(newFakeReservationRepo(reservation), &fakeRentalRepo{},
			&fakeUserClient{eligibility: expired},
			&fakeApartmentClient{apartment: testApartment()},
			&fakeNotifier{},
		)

		resp, err := uc.Execute(context.Background(), &Request{ReservationID: 10, OwnerID: 100})
		require.NoError(t, err)
		require.True(t, resp.Accepted())

		// Цена без скидки: 800 + 40
		assert.InDelta(t, 840, resp.Rental.FinalPrice, 1e-9)
	})

	t.Run("user service failure does not block accept", func(t *testing.T) {
		reservation := pendingReservation(t, 10, date(2026, 9, 1), date(2026, 9, 5))

		uc := newTestUseCase(newFakeReservationRepo(reservation), &fakeRentalRepo{},
			&fakeUserClient{err: errors.New("user service is down")},
			&fakeApartmentClient{apartment: testApartment()},
			&fakeNotifier{},
		)

		resp, err := uc.Execute(context.Background(), &Request{ReservationID: 10, OwnerID: 100})
		require.NoError(t, err)
		require.True(t, resp.Accepted())
		assert.InDelta(t, 840, resp.Rental.FinalPrice, 1e-9)
	})

	t.Run("apartment not found", func(t *testing.T) {
		reservation := pendingReservation(t, 10, date(2026, 9, 1), date(2026, 9, 5))

		uc := newTestUseCase(newFakeReservationRepo(reservation), &fakeRentalRepo{},
			&fakeUserClient{eligibility: validEligibility},
			&fakeApartmentClient{err: apartmentservice.ErrApartmentNotFound},
			&fakeNotifier{},
		)

		_, err := uc.Execute(context.Background(), &Request{ReservationID: 10, OwnerID: 100})
		assert.ErrorIs(t, err, ErrApartmentNotFound)
	})

	t.Run("serialization conflict retries into auto-decline", func(t *testing.T) {
		// Проигравшая транзакция обрывается Postgres при первой попытке;
		// на повторе аренда победителя уже в леджере
		reservation := pendingReservation(t, 11, date(2026, 9, 3), date(2026, 9, 8))
		reservationRepo := newFakeReservationRepo(reservation)

		winnerInterval, err := domain.NewStayInterval(date(2026, 9, 1), date(2026, 9, 5))
		require.NoError(t, err)
		rentalRepo := &fakeRentalRepo{
			rentals: []*domain.Rental{{
				ID:          1,
				RequestID:   10,
				ApartmentID: 7,
				RequesterID: 2,
				OwnerID:     100,
				RoomCount:   2,
				Interval:    winnerInterval,
				Status:      domain.RentalStatusActive,
			}},
			nextID: 1,
		}
		notifier := &fakeNotifier{}

		txMgr := &serializationConflictTxManager{failures: 1}
		uc := NewUseCase(reservationRepo, rentalRepo,
			&fakeUserClient{eligibility: validEligibility},
			&fakeApartmentClient{apartment: testApartment()},
			txMgr, notifier, noopLogger{},
		)
		uc.timeProvider = &fakeTimeProvider{now: date(2026, 8, 1)}

		resp, err := uc.Execute(context.Background(), &Request{ReservationID: 11, OwnerID: 100})
		require.NoError(t, err)
		assert.False(t, resp.Accepted())
		assert.Equal(t, string(domain.StateDeclined), resp.State)
		assert.Equal(t, 2, txMgr.calls)

		assert.Equal(t, domain.StateDeclined, reservationRepo.reservations[11].State)
		assert.Len(t, rentalRepo.rentals, 1)

		require.Len(t, notifier.events, 1)
		assert.Equal(t, domain.StateDeclined, notifier.events[0].ToState)
	})

	t.Run("serialization conflict retries into accept when interval stays free", func(t *testing.T) {
		reservation := pendingReservation(t, 10, date(2026, 9, 1), date(2026, 9, 5))
		reservationRepo := newFakeReservationRepo(reservation)
		rentalRepo := &fakeRentalRepo{}

		txMgr := &serializationConflictTxManager{failures: 1}
		uc := NewUseCase(reservationRepo, rentalRepo,
			&fakeUserClient{eligibility: validEligibility},
			&fakeApartmentClient{apartment: testApartment()},
			txMgr, &fakeNotifier{}, noopLogger{},
		)
		uc.timeProvider = &fakeTimeProvider{now: date(2026, 8, 1)}

		resp, err := uc.Execute(context.Background(), &Request{ReservationID: 10, OwnerID: 100})
		require.NoError(t, err)
		assert.True(t, resp.Accepted())
		assert.Equal(t, 2, txMgr.calls)
		assert.Len(t, rentalRepo.rentals, 1)
	})

	t.Run("serialization conflict is retried only once", func(t *testing.T) {
		reservation := pendingReservation(t, 10, date(2026, 9, 1), date(2026, 9, 5))
		reservationRepo := newFakeReservationRepo(reservation)

		txMgr := &serializationConflictTxManager{failures: 2}
		uc := NewUseCase(reservationRepo, &fakeRentalRepo{},
			&fakeUserClient{eligibility: validEligibility},
			&fakeApartmentClient{apartment: testApartment()},
			txMgr, &fakeNotifier{}, noopLogger{},
		)
		uc.timeProvider = &fakeTimeProvider{now: date(2026, 8, 1)}

		_, err := uc.Execute(context.Background(), &Request{ReservationID: 10, OwnerID: 100})
		require.Error(t, err)
		assert.Equal(t, 2, txMgr.calls)
		assert.Equal(t, domain.StatePending, reservationRepo.reservations[10].State)
	})

	t.Run("rental creation failure is internal error", func(t *testing.T) {
		reservation := pendingReservation(t, 10, date(2026, 9, 1), date(2026, 9, 5))
		reservationRepo := newFakeReservationRepo(reservation)

		uc := newTestUseCase(reservationRepo, &fakeRentalRepo{createErr: errors.New("db down")},
			&fakeUserClient{eligibility: validEligibility},
			&fakeApartmentClient{apartment: testApartment()},
			&fakeNotifier{},
		)

		_, err := uc.Execute(context.Background(), &Request{ReservationID: 10, OwnerID: 100})
		assert.ErrorIs(t, err, ErrInternal)
	})
}
