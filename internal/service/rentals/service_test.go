package rentals

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Dea2002/Site-WEB-Licenta-sub000/internal/domain"
	reservationStorage "github.com/Dea2002/Site-WEB-Licenta-sub000/internal/infra/storage/reservation"
)

// --- fakes ---

type fakeRentalRepo struct {
	rentals []*domain.Rental
}

func (f *fakeRentalRepo) GetByRequester(_ context.Context, requesterID int64) ([]*domain.Rental, error) {
	out := make([]*domain.Rental, 0)
	for _, r := range f.rentals {
		if r.RequesterID == requesterID {
			out = append(out, r)
		}
	}
	return out, nil
}

func (f *fakeRentalRepo) CompleteExpired(_ context.Context, now time.Time) ([]*domain.Rental, error) {
	completed := make([]*domain.Rental, 0)
	for _, r := range f.rentals {
		if r.Status == domain.RentalStatusActive && !r.Interval.CheckOut.After(now) {
			r.Status = domain.RentalStatusCompleted
			completed = append(completed, r)
		}
	}
	return completed, nil
}

type fakeReservationRepo struct {
	states map[int64]domain.ReservationState
}

func (f *fakeReservationRepo) UpdateState(_ context.Context, id int64, from, to domain.ReservationState) error {
	state, ok := f.states[id]
	if !ok {
		return reservationStorage.ErrReservationNotFound
	}
	if state != from {
		return reservationStorage.ErrStateConflict
	}
	f.states[id] = to
	return nil
}

type fakeTxManager struct{}

func (fakeTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
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

func rentalWith(t *testing.T, id, requestID int64, checkIn, checkOut time.Time, status domain.RentalStatus) *domain.Rental {
	t.Helper()
	interval, err := domain.NewStayInterval(checkIn, checkOut)
	require.NoError(t, err)
	return &domain.Rental{
		ID:          id,
		RequestID:   requestID,
		ApartmentID: 7,
		RequesterID: 1,
		OwnerID:     100,
		RoomCount:   2,
		Interval:    interval,
		Status:      status,
	}
}

// --- tests ---

func TestService_CompleteExpired(t *testing.T) {
	now := date(2026, 9, 10)

	t.Run("completes expired rentals and their reservations", func(t *testing.T) {
		rentalRepo := &fakeRentalRepo{rentals: []*domain.Rental{
			rentalWith(t, 1, 10, date(2026, 9, 1), date(2026, 9, 5), domain.RentalStatusActive),
			rentalWith(t, 2, 11, date(2026, 9, 8), date(2026, 9, 15), domain.RentalStatusActive),
		}}
		reservationRepo := &fakeReservationRepo{states: map[int64]domain.ReservationState{
			10: domain.StateAccepted,
			11: domain.StateAccepted,
		}}
		notifier := &fakeNotifier{}

		svc := NewService(rentalRepo, reservationRepo, fakeTxManager{}, notifier, noopLogger{})
		svc.timeProvider = &fakeTimeProvider{now: now}

		n, err := svc.CompleteExpired(context.Background())
		require.NoError(t, err)
		assert.Equal(t, 1, n)

		assert.Equal(t, domain.RentalStatusCompleted, rentalRepo.rentals[0].Status)
		assert.Equal(t, domain.RentalStatusActive, rentalRepo.rentals[1].Status)
		assert.Equal(t, domain.StateCompleted, reservationRepo.states[10])
		assert.Equal(t, domain.StateAccepted, reservationRepo.states[11])

		require.Len(t, notifier.events, 1)
		assert.Equal(t, domain.StateCompleted, notifier.events[0].ToState)
		assert.Equal(t, int64(10), notifier.events[0].RequestID)
	})

	t.Run("tolerates reservation already out of accepted", func(t *testing.T) {
		rentalRepo := &fakeRentalRepo{rentals: []*domain.Rental{
			rentalWith(t, 1, 10, date(2026, 9, 1), date(2026, 9, 5), domain.RentalStatusActive),
		}}
		reservationRepo := &fakeReservationRepo{states: map[int64]domain.ReservationState{
			10: domain.StateCancelledByTenant,
		}}

		svc := NewService(rentalRepo, reservationRepo, fakeTxManager{}, &fakeNotifier{}, noopLogger{})
		svc.timeProvider = &fakeTimeProvider{now: now}

		n, err := svc.CompleteExpired(context.Background())
		require.NoError(t, err)
		assert.Equal(t, 1, n)
	})

	t.Run("nothing to complete", func(t *testing.T) {
		rentalRepo := &fakeRentalRepo{}
		reservationRepo := &fakeReservationRepo{states: map[int64]domain.ReservationState{}}
		notifier := &fakeNotifier{}

		svc := NewService(rentalRepo, reservationRepo, fakeTxManager{}, notifier, noopLogger{})
		svc.timeProvider = &fakeTimeProvider{now: now}

		n, err := svc.CompleteExpired(context.Background())
		require.NoError(t, err)
		assert.Zero(t, n)
		assert.Empty(t, notifier.events)
	})
}

func TestService_GetUserRentals(t *testing.T) {
	rentalRepo := &fakeRentalRepo{rentals: []*domain.Rental{
		rentalWith(t, 1, 10, date(2026, 9, 1), date(2026, 9, 5), domain.RentalStatusActive),
	}}
	svc := NewService(rentalRepo, &fakeReservationRepo{}, fakeTxManager{}, &fakeNotifier{}, noopLogger{})

	rentals, err := svc.GetUserRentals(context.Background(), 1)
	require.NoError(t, err)
	assert.Len(t, rentals, 1)
}
