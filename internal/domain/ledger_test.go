package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAvailabilityLedger_IsFree(t *testing.T) {
	ledger := NewAvailabilityLedger([]StayInterval{
		mustInterval(t, date(2026, 9, 10), date(2026, 9, 15)),
		mustInterval(t, date(2026, 9, 20), date(2026, 9, 25)),
	})

	t.Run("empty ledger is always free", func(t *testing.T) {
		empty := NewAvailabilityLedger(nil)
		assert.True(t, empty.IsFree(mustInterval(t, date(2026, 9, 1), date(2026, 9, 30))))
	})

	t.Run("gap between stays is free", func(t *testing.T) {
		assert.True(t, ledger.IsFree(mustInterval(t, date(2026, 9, 15), date(2026, 9, 20))))
	})

	t.Run("overlap with first stay", func(t *testing.T) {
		assert.False(t, ledger.IsFree(mustInterval(t, date(2026, 9, 8), date(2026, 9, 11))))
	})

	t.Run("overlap with second stay", func(t *testing.T) {
		assert.False(t, ledger.IsFree(mustInterval(t, date(2026, 9, 24), date(2026, 9, 28))))
	})

	t.Run("covering everything", func(t *testing.T) {
		assert.False(t, ledger.IsFree(mustInterval(t, date(2026, 9, 1), date(2026, 9, 30))))
	})

	t.Run("back-to-back turnover on the same day", func(t *testing.T) {
		// Выезд 10-го и заезд нового жильца 10-го же - не конфликт
		assert.True(t, ledger.IsFree(mustInterval(t, date(2026, 9, 5), date(2026, 9, 10))))
		assert.True(t, ledger.IsFree(mustInterval(t, date(2026, 9, 25), date(2026, 9, 30))))
	})
}

func TestAvailabilityLedger_Reserve(t *testing.T) {
	t.Run("reserve into empty ledger", func(t *testing.T) {
		ledger := NewAvailabilityLedger(nil)
		err := ledger.Reserve(mustInterval(t, date(2026, 9, 1), date(2026, 9, 5)))
		require.NoError(t, err)
		assert.Equal(t, 1, ledger.Len())
	})

	t.Run("conflicting reserve is rejected and ledger unchanged", func(t *testing.T) {
		ledger := NewAvailabilityLedger([]StayInterval{
			mustInterval(t, date(2026, 9, 10), date(2026, 9, 15)),
		})

		err := ledger.Reserve(mustInterval(t, date(2026, 9, 12), date(2026, 9, 18)))
		assert.ErrorIs(t, err, ErrIntervalConflict)
		assert.Equal(t, 1, ledger.Len())
	})

	t.Run("invalid interval is rejected", func(t *testing.T) {
		ledger := NewAvailabilityLedger(nil)
		err := ledger.Reserve(StayInterval{CheckIn: date(2026, 9, 5), CheckOut: date(2026, 9, 1)})
		assert.ErrorIs(t, err, ErrInvalidInterval)
	})

	t.Run("keeps intervals sorted by check-in", func(t *testing.T) {
		ledger := NewAvailabilityLedger(nil)
		require.NoError(t, ledger.Reserve(mustInterval(t, date(2026, 9, 20), date(2026, 9, 25))))
		require.NoError(t, ledger.Reserve(mustInterval(t, date(2026, 9, 1), date(2026, 9, 5))))
		require.NoError(t, ledger.Reserve(mustInterval(t, date(2026, 9, 10), date(2026, 9, 15))))

		intervals := ledger.Intervals()
		require.Len(t, intervals, 3)
		assert.Equal(t, date(2026, 9, 1), intervals[0].CheckIn)
		assert.Equal(t, date(2026, 9, 10), intervals[1].CheckIn)
		assert.Equal(t, date(2026, 9, 20), intervals[2].CheckIn)
	})

	t.Run("interval freed by release can be reserved again", func(t *testing.T) {
		ledger := NewAvailabilityLedger(nil)
		iv := mustInterval(t, date(2026, 9, 1), date(2026, 9, 5))

		require.NoError(t, ledger.Reserve(iv))
		assert.ErrorIs(t, ledger.Reserve(iv), ErrIntervalConflict)

		ledger.Release(iv)
		assert.NoError(t, ledger.Reserve(iv))
	})
}

func TestAvailabilityLedger_Release(t *testing.T) {
	t.Run("removes exact interval", func(t *testing.T) {
		iv := mustInterval(t, date(2026, 9, 10), date(2026, 9, 15))
		ledger := NewAvailabilityLedger([]StayInterval{iv})

		ledger.Release(iv)
		assert.Equal(t, 0, ledger.Len())
		assert.True(t, ledger.IsFree(iv))
	})

	t.Run("release is idempotent", func(t *testing.T) {
		iv := mustInterval(t, date(2026, 9, 10), date(2026, 9, 15))
		ledger := NewAvailabilityLedger([]StayInterval{iv})

		ledger.Release(iv)
		ledger.Release(iv)
		assert.Equal(t, 0, ledger.Len())
	})

	t.Run("non-matching interval is a no-op", func(t *testing.T) {
		ledger := NewAvailabilityLedger([]StayInterval{
			mustInterval(t, date(2026, 9, 10), date(2026, 9, 15)),
		})

		ledger.Release(mustInterval(t, date(2026, 9, 10), date(2026, 9, 16)))
		assert.Equal(t, 1, ledger.Len())
	})
}

func TestAvailabilityLedger_NextBlockingStart(t *testing.T) {
	ledger := NewAvailabilityLedger([]StayInterval{
		mustInterval(t, date(2026, 9, 10), date(2026, 9, 15)),
		mustInterval(t, date(2026, 9, 20), date(2026, 9, 25)),
	})

	t.Run("returns earliest start strictly after", func(t *testing.T) {
		next := ledger.NextBlockingStart(date(2026, 9, 1))
		require.NotNil(t, next)
		assert.Equal(t, date(2026, 9, 10), *next)
	})

	t.Run("start equal to the boundary is excluded", func(t *testing.T) {
		next := ledger.NextBlockingStart(date(2026, 9, 10))
		require.NotNil(t, next)
		assert.Equal(t, date(2026, 9, 20), *next)
	})

	t.Run("nil when nothing starts later", func(t *testing.T) {
		assert.Nil(t, ledger.NextBlockingStart(date(2026, 9, 20)))
	})
}

func TestAvailabilityLedger_NewSortsInput(t *testing.T) {
	ledger := NewAvailabilityLedger([]StayInterval{
		mustInterval(t, date(2026, 9, 20), date(2026, 9, 25)),
		mustInterval(t, date(2026, 9, 1), date(2026, 9, 5)),
	})

	intervals := ledger.Intervals()
	require.Len(t, intervals, 2)
	assert.True(t, intervals[0].CheckIn.Before(intervals[1].CheckIn))

	// Копия не даёт мутировать внутреннее состояние
	intervals[0].CheckIn = time.Time{}
	assert.Equal(t, date(2026, 9, 1), ledger.Intervals()[0].CheckIn)
}
