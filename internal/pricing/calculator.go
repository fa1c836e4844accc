package pricing

import (
	"errors"
	"fmt"
	"time"

	"github.com/Dea2002/Site-WEB-Licenta-sub000/internal/domain"
)

var (
	// ErrInvalidRoomCount возвращается при количестве комнат меньше единицы
	ErrInvalidRoomCount = errors.New("pricing: room count must be at least 1")
)

// Quote computes the itemized cost of a stay. Pure function: identical inputs
// always produce identical breakdowns, eligibility is passed explicitly and
// never fetched ambiently.
//
// Base rent is per room per night; utilities are apartment-wide monthly
// figures prorated with a fixed /30 divisor and NOT scaled by room count.
// The discount applies to the base rent only, and only while the requester's
// eligibility is valid at the supplied moment.
func Quote(
	config domain.ApartmentPricingConfig,
	interval domain.StayInterval,
	roomCount int,
	eligibility domain.DiscountEligibility,
	now time.Time,
) (domain.PriceBreakdown, error) {
	if roomCount < domain.MinRoomCount {
		return domain.PriceBreakdown{}, fmt.Errorf("%w: got %d", ErrInvalidRoomCount, roomCount)
	}

	nights, err := interval.Nights()
	if err != nil {
		return domain.PriceBreakdown{}, err
	}

	baseCostPerRoom := config.BasePricePerRoomPerNight * float64(nights)
	baseCostAllRooms := baseCostPerRoom * float64(roomCount)

	dailyUtility := config.Utilities.Sum() / domain.UtilityProrationDays
	totalUtility := dailyUtility * float64(nights)

	var percent float64
	if eligibility.AppliesAt(now) {
		percent = config.Discounts.ForCategory(eligibility.Category)
	}
	discountAmount := baseCostAllRooms * percent / 100

	return domain.PriceBreakdown{
		Nights:               nights,
		BaseCostPerRoom:      baseCostPerRoom,
		BaseCostAllRooms:     baseCostAllRooms,
		DailyUtility:         dailyUtility,
		TotalUtility:         totalUtility,
		DiscountPercent:      percent,
		DiscountAmount:       discountAmount,
		FinalWithDiscount:    baseCostAllRooms - discountAmount + totalUtility,
		FinalWithoutDiscount: baseCostAllRooms + totalUtility,
	}, nil
}
