package domain

import "time"

// RentalStatus represents the status of a materialized booking
type RentalStatus string

const (
	RentalStatusActive            RentalStatus = "active"
	RentalStatusCancelledByOwner  RentalStatus = "cancelled_by_owner"
	RentalStatusCancelledByTenant RentalStatus = "cancelled_by_tenant"
	RentalStatusCompleted         RentalStatus = "completed"
)

// Rental is the booking minted the moment a reservation request is accepted.
// It holds a copy of the interval, room count and final price; an immutable
// financial record, cancellable but not editable.
type Rental struct {
	ID          int64
	RequestID   int64
	ApartmentID int64
	RequesterID int64
	OwnerID     int64
	RoomCount   int
	Interval    StayInterval
	FinalPrice  float64
	Status      RentalStatus

	CancellationReason *string
	CancelledAt        *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsBlocking returns true if the rental's interval still occupies the ledger
func (r *Rental) IsBlocking() bool {
	for _, s := range BlockingRentalStatuses {
		if r.Status == s {
			return true
		}
	}
	return false
}

// CanBeCancelled returns true if the rental can be cancelled
func (r *Rental) CanBeCancelled() bool {
	return r.Status == RentalStatusActive
}

// IsExpired returns true if the stay is over at the given moment
func (r *Rental) IsExpired(now time.Time) bool {
	return !now.Before(r.Interval.CheckOut)
}
