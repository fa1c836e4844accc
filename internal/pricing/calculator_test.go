package pricing

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Dea2002/Site-WEB-Licenta-sub000/internal/domain"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func testConfig() domain.ApartmentPricingConfig {
	return domain.ApartmentPricingConfig{
		BasePricePerRoomPerNight: 100,
		Utilities: domain.UtilityMonthlyPrices{
			Internet:    60,
			TV:          40,
			Water:       50,
			Gas:         70,
			Electricity: 80,
		},
		Discounts: domain.DiscountTiers{
			Discount1: 10,
			Discount2: 5,
			Discount3: 2,
		},
	}
}

func testInterval(t *testing.T) domain.StayInterval {
	t.Helper()
	iv, err := domain.NewStayInterval(date(2026, 9, 1), date(2026, 9, 5))
	require.NoError(t, err)
	return iv
}

func TestQuote(t *testing.T) {
	now := date(2026, 8, 1)

	t.Run("category 1 with valid eligibility", func(t *testing.T) {
		// 4 ночи, 2 комнаты, 100/комната/ночь, коммуналка 300/мес, скидка 10%
		eligibility := domain.DiscountEligibility{Category: 1, ValidUntil: date(2026, 12, 31)}

		quote, err := Quote(testConfig(), testInterval(t), 2, eligibility, now)
		require.NoError(t, err)

		assert.Equal(t, 4, quote.Nights)
		assert.InDelta(t, 400, quote.BaseCostPerRoom, 1e-9)
		assert.InDelta(t, 800, quote.BaseCostAllRooms, 1e-9)
		assert.InDelta(t, 10, quote.DailyUtility, 1e-9)
		assert.InDelta(t, 40, quote.TotalUtility, 1e-9)
		assert.InDelta(t, 10, quote.DiscountPercent, 1e-9)
		assert.InDelta(t, 80, quote.DiscountAmount, 1e-9)
		assert.InDelta(t, 760, quote.FinalWithDiscount, 1e-9)
		assert.InDelta(t, 840, quote.FinalWithoutDiscount, 1e-9)
	})

	t.Run("expired eligibility gives no discount", func(t *testing.T) {
		eligibility := domain.DiscountEligibility{Category: 1, ValidUntil: date(2026, 7, 31)}

		quote, err := Quote(testConfig(), testInterval(t), 2, eligibility, now)
		require.NoError(t, err)

		assert.Zero(t, quote.DiscountPercent)
		assert.Zero(t, quote.DiscountAmount)
		assert.InDelta(t, quote.FinalWithoutDiscount, quote.FinalWithDiscount, 1e-9)
	})

	t.Run("eligibility valid exactly until now still applies", func(t *testing.T) {
		eligibility := domain.DiscountEligibility{Category: 1, ValidUntil: now}

		quote, err := Quote(testConfig(), testInterval(t), 2, eligibility, now)
		require.NoError(t, err)
		assert.InDelta(t, 10, quote.DiscountPercent, 1e-9)
	})

	t.Run("category 4 never gets a discount", func(t *testing.T) {
		eligibility := domain.DiscountEligibility{Category: 4, ValidUntil: date(2026, 12, 31)}

		quote, err := Quote(testConfig(), testInterval(t), 2, eligibility, now)
		require.NoError(t, err)
		assert.Zero(t, quote.DiscountPercent)
		assert.Zero(t, quote.DiscountAmount)
	})

	t.Run("uncategorized requester gets no discount", func(t *testing.T) {
		quote, err := Quote(testConfig(), testInterval(t), 2, domain.DiscountEligibility{}, now)
		require.NoError(t, err)
		assert.Zero(t, quote.DiscountPercent)
	})

	t.Run("discount applies to base rent only", func(t *testing.T) {
		eligibility := domain.DiscountEligibility{Category: 2, ValidUntil: date(2026, 12, 31)}

		quote, err := Quote(testConfig(), testInterval(t), 1, eligibility, now)
		require.NoError(t, err)

		// 5% от 400, коммуналка не скидывается
		assert.InDelta(t, 20, quote.DiscountAmount, 1e-9)
		assert.InDelta(t, 400-20+40, quote.FinalWithDiscount, 1e-9)
	})

	t.Run("utilities are not scaled by room count", func(t *testing.T) {
		oneRoom, err := Quote(testConfig(), testInterval(t), 1, domain.DiscountEligibility{}, now)
		require.NoError(t, err)
		threeRooms, err := Quote(testConfig(), testInterval(t), 3, domain.DiscountEligibility{}, now)
		require.NoError(t, err)

		assert.InDelta(t, oneRoom.TotalUtility, threeRooms.TotalUtility, 1e-9)
		assert.InDelta(t, oneRoom.BaseCostAllRooms*3, threeRooms.BaseCostAllRooms, 1e-9)
	})

	t.Run("deterministic for identical inputs", func(t *testing.T) {
		eligibility := domain.DiscountEligibility{Category: 3, ValidUntil: date(2026, 12, 31)}

		first, err := Quote(testConfig(), testInterval(t), 2, eligibility, now)
		require.NoError(t, err)
		second, err := Quote(testConfig(), testInterval(t), 2, eligibility, now)
		require.NoError(t, err)

		assert.Equal(t, first, second)
	})

	t.Run("longer stay costs at least as much", func(t *testing.T) {
		short, err := domain.NewStayInterval(date(2026, 9, 1), date(2026, 9, 3))
		require.NoError(t, err)
		long, err := domain.NewStayInterval(date(2026, 9, 1), date(2026, 9, 10))
		require.NoError(t, err)

		shortQuote, err := Quote(testConfig(), short, 2, domain.DiscountEligibility{}, now)
		require.NoError(t, err)
		longQuote, err := Quote(testConfig(), long, 2, domain.DiscountEligibility{}, now)
		require.NoError(t, err)

		assert.GreaterOrEqual(t, longQuote.FinalWithDiscount, shortQuote.FinalWithDiscount)
	})

	t.Run("invalid room count", func(t *testing.T) {
		_, err := Quote(testConfig(), testInterval(t), 0, domain.DiscountEligibility{}, now)
		assert.ErrorIs(t, err, ErrInvalidRoomCount)
	})

	t.Run("invalid interval", func(t *testing.T) {
		iv := domain.StayInterval{CheckIn: date(2026, 9, 5), CheckOut: date(2026, 9, 1)}
		_, err := Quote(testConfig(), iv, 1, domain.DiscountEligibility{}, now)
		assert.ErrorIs(t, err, domain.ErrInvalidInterval)
	})
}
