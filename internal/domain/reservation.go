package domain

import "time"

// ReservationState represents the lifecycle state of a reservation request
type ReservationState string

const (
	StatePending              ReservationState = "pending"
	StateAccepted             ReservationState = "accepted"
	StateDeclined             ReservationState = "declined"
	StateCancelledByRequester ReservationState = "cancelled_by_requester"
	StateCancelledByOwner     ReservationState = "cancelled_by_owner"
	StateCancelledByTenant    ReservationState = "cancelled_by_tenant"
	StateCompleted            ReservationState = "completed"
)

// ReservationRequest represents a requester's proposal to book an apartment
// for a stay interval. Owned jointly by the requester (may cancel while
// pending) and the apartment owner (may accept/decline while pending).
type ReservationRequest struct {
	ID          int64
	ApartmentID int64
	RequesterID int64
	OwnerID     int64
	RoomCount   int
	Interval    StayInterval
	Quote       PriceBreakdown
	State       ReservationState

	DeclineReason *string
	CancelledAt   *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsTerminal returns true if the request reached a terminal state
func (r *ReservationRequest) IsTerminal() bool {
	for _, s := range TerminalStates {
		if r.State == s {
			return true
		}
	}
	return false
}

// CanBeAccepted returns true if the request can transition to accepted
func (r *ReservationRequest) CanBeAccepted() bool {
	return r.State == StatePending
}

// CanBeDeclined returns true if the request can transition to declined
func (r *ReservationRequest) CanBeDeclined() bool {
	return r.State == StatePending
}

// CanBeCancelledByRequester returns true if the requester may cancel the request
func (r *ReservationRequest) CanBeCancelledByRequester() bool {
	return r.State == StatePending || r.State == StateAccepted
}

// CanBeCancelledByOwner returns true if the apartment owner may cancel the request
func (r *ReservationRequest) CanBeCancelledByOwner() bool {
	return r.State == StateAccepted
}

// CancelStateFor returns the terminal state a cancellation by the given
// party leads to: a pending request cancelled by its requester becomes
// cancelled_by_requester, an accepted one becomes cancelled_by_tenant,
// an owner cancellation becomes cancelled_by_owner.
func (r *ReservationRequest) CancelStateFor(byOwner bool) ReservationState {
	if byOwner {
		return StateCancelledByOwner
	}
	if r.State == StateAccepted {
		return StateCancelledByTenant
	}
	return StateCancelledByRequester
}

// TransitionEvent is the outbound signal emitted on every lifecycle state
// change, consumed by external notification/chat subsystems.
type TransitionEvent struct {
	RequestID   int64
	ApartmentID int64
	RequesterID int64
	OwnerID     int64
	FromState   ReservationState
	ToState     ReservationState
	Reason      *string
}

// ReservationsFilter фильтр для получения заявок по квартире
type ReservationsFilter struct {
	ApartmentID     int64             // Обязательный параметр
	State           *ReservationState // Фильтр по статусу (опционально)
	From            *time.Time        // Заявки с check-in не раньше даты (опционально)
	To              *time.Time        // Заявки с check-in не позже даты (опционально)
	IncludeTerminal bool              // Включать ли заявки в терминальных статусах
}
