package domain

import (
	"errors"
	"fmt"
	"time"
)

// ErrInvalidPricingConfig возвращается для некорректной ценовой конфигурации квартиры
var ErrInvalidPricingConfig = errors.New("domain: invalid apartment pricing config")

// UtilityMonthlyPrices holds the five apartment-wide monthly utility figures.
type UtilityMonthlyPrices struct {
	Internet    float64
	TV          float64
	Water       float64
	Gas         float64
	Electricity float64
}

// Sum returns the combined monthly utility cost.
func (u UtilityMonthlyPrices) Sum() float64 {
	return u.Internet + u.TV + u.Water + u.Gas + u.Electricity
}

// DiscountTiers maps requester categories 1-3 to discount percentages (0-100).
// Category 4 and uncategorized requesters never receive a discount.
type DiscountTiers struct {
	Discount1 float64
	Discount2 float64
	Discount3 float64
}

// ForCategory returns the percentage for a discountable category, 0 otherwise.
func (d DiscountTiers) ForCategory(category int) float64 {
	switch category {
	case 1:
		return d.Discount1
	case 2:
		return d.Discount2
	case 3:
		return d.Discount3
	default:
		return 0
	}
}

// ApartmentPricingConfig is the pricing configuration owned by an apartment.
// Mutated only by the apartment owner; read-only to the engine.
type ApartmentPricingConfig struct {
	BasePricePerRoomPerNight float64
	Utilities                UtilityMonthlyPrices
	Discounts                DiscountTiers
}

// Validate rejects negative prices and out-of-range discount percentages.
// Enforced when the configuration is received from the provider, not at quote time.
func (c ApartmentPricingConfig) Validate() error {
	if c.BasePricePerRoomPerNight < 0 {
		return fmt.Errorf("%w: negative base price per room per night", ErrInvalidPricingConfig)
	}
	utilities := []float64{c.Utilities.Internet, c.Utilities.TV, c.Utilities.Water, c.Utilities.Gas, c.Utilities.Electricity}
	for _, v := range utilities {
		if v < 0 {
			return fmt.Errorf("%w: negative monthly utility price", ErrInvalidPricingConfig)
		}
	}
	tiers := []float64{c.Discounts.Discount1, c.Discounts.Discount2, c.Discounts.Discount3}
	for _, p := range tiers {
		if p < 0 || p > MaxDiscountPercent {
			return fmt.Errorf("%w: discount percentage must be within 0-100", ErrInvalidPricingConfig)
		}
	}
	return nil
}

// DiscountEligibility is the requester's time-bounded discount tier, derived
// from the faculty validation subsystem. After ValidUntil the stored category
// silently stops applying.
type DiscountEligibility struct {
	Category   int // 1..4, 0 = none
	ValidUntil time.Time
}

// AppliesAt reports whether the eligibility grants a discount at the given moment.
func (e DiscountEligibility) AppliesAt(now time.Time) bool {
	if e.Category < MinDiscountCategory || e.Category >= MaxDiscountCategory {
		return false
	}
	return !now.After(e.ValidUntil)
}

// PriceBreakdown is the itemized output of the pricing calculator.
// Produced fresh per quote; never mutated, only superseded by a new quote.
type PriceBreakdown struct {
	Nights               int
	BaseCostPerRoom      float64
	BaseCostAllRooms     float64
	DailyUtility         float64
	TotalUtility         float64
	DiscountPercent      float64
	DiscountAmount       float64
	FinalWithDiscount    float64
	FinalWithoutDiscount float64
}
