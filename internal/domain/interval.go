package domain

import (
	"errors"
	"fmt"
	"time"
)

// ErrInvalidInterval возвращается для некорректного интервала проживания (checkOut <= checkIn)
var ErrInvalidInterval = errors.New("domain: invalid stay interval")

// StayInterval represents a half-open date range [CheckIn, CheckOut) of one stay.
// Immutable once constructed via NewStayInterval.
type StayInterval struct {
	CheckIn  time.Time
	CheckOut time.Time
}

// NewStayInterval builds a validated stay interval.
// CheckOut must be strictly after CheckIn: a stay is at least one night.
func NewStayInterval(checkIn, checkOut time.Time) (StayInterval, error) {
	iv := StayInterval{CheckIn: truncateToDay(checkIn), CheckOut: truncateToDay(checkOut)}
	if err := iv.Validate(); err != nil {
		return StayInterval{}, err
	}
	return iv, nil
}

// Validate reports whether the interval satisfies checkOut > checkIn.
func (i StayInterval) Validate() error {
	if i.CheckIn.IsZero() || i.CheckOut.IsZero() {
		return fmt.Errorf("%w: check-in and check-out are required", ErrInvalidInterval)
	}
	if !i.CheckOut.After(i.CheckIn) {
		return fmt.Errorf("%w: check-out %s must be after check-in %s",
			ErrInvalidInterval, i.CheckOut.Format(DateFormat), i.CheckIn.Format(DateFormat))
	}
	return nil
}

// Nights returns the number of nights of the stay, rounded up to whole
// calendar days, minimum 1.
func (i StayInterval) Nights() (int, error) {
	if err := i.Validate(); err != nil {
		return 0, err
	}
	hours := i.CheckOut.Sub(i.CheckIn).Hours()
	nights := int(hours / 24)
	if float64(nights*24) < hours {
		nights++
	}
	if nights < 1 {
		nights = 1
	}
	return nights, nil
}

// Overlaps reports whether two half-open intervals share at least one night.
// Adjacency (check-out equal to the other check-in) is NOT overlap.
func (i StayInterval) Overlaps(other StayInterval) bool {
	return i.CheckIn.Before(other.CheckOut) && other.CheckIn.Before(i.CheckOut)
}

// IsAfter reports whether the interval starts on or after the other ends.
// Back-to-back check-out/check-in on the same day is allowed.
func (i StayInterval) IsAfter(other StayInterval) bool {
	return !i.CheckIn.Before(other.CheckOut)
}

// Equal reports whether two intervals cover the exact same dates.
func (i StayInterval) Equal(other StayInterval) bool {
	return i.CheckIn.Equal(other.CheckIn) && i.CheckOut.Equal(other.CheckOut)
}

func truncateToDay(t time.Time) time.Time {
	if t.IsZero() {
		return t
	}
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
