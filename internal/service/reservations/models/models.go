package models

import (
	"fmt"
	"time"

	"github.com/Dea2002/Site-WEB-Licenta-sub000/internal/domain"
)

// ReservationResponse модель заявки для внешних слоёв
type ReservationResponse struct {
	ID          int64
	ApartmentID int64
	RequesterID int64
	OwnerID     int64
	RoomCount   int
	CheckIn     time.Time
	CheckOut    time.Time
	State       string

	Quote domain.PriceBreakdown

	DeclineReason *string
	CancelledAt   *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// ReservationListResponse список заявок
type ReservationListResponse struct {
	Reservations []*ReservationResponse
	Total        int
}

// GetUserReservationsRequest запрос истории заявок пользователя
type GetUserReservationsRequest struct {
	RequesterID int64
	State       *string // Фильтр по статусу (опционально)
}

// GetApartmentReservationsRequest запрос заявок по квартире (для владельца)
type GetApartmentReservationsRequest struct {
	ApartmentID     int64
	UserID          int64 // Пользователь, выполняющий запрос
	State           *string
	From            *time.Time
	To              *time.Time
	IncludeTerminal bool
}

// CancelReservationRequest запрос на отмену заявки
type CancelReservationRequest struct {
	UserID int64 // Отменяющий: заявитель или владелец квартиры
}

// DeclineReservationRequest запрос на отклонение заявки
type DeclineReservationRequest struct {
	OwnerID int64
	Reason  string
}

// FromDomainReservation конвертирует доменную заявку в модель ответа
func FromDomainReservation(r *domain.ReservationRequest) *ReservationResponse {
	return &ReservationResponse{
		ID:            r.ID,
		ApartmentID:   r.ApartmentID,
		RequesterID:   r.RequesterID,
		OwnerID:       r.OwnerID,
		RoomCount:     r.RoomCount,
		CheckIn:       r.Interval.CheckIn,
		CheckOut:      r.Interval.CheckOut,
		State:         string(r.State),
		Quote:         r.Quote,
		DeclineReason: r.DeclineReason,
		CancelledAt:   r.CancelledAt,
		CreatedAt:     r.CreatedAt,
		UpdatedAt:     r.UpdatedAt,
	}
}

// FromDomainReservationList конвертирует список доменных заявок
func FromDomainReservationList(list []*domain.ReservationRequest) *ReservationListResponse {
	out := make([]*ReservationResponse, 0, len(list))
	for _, r := range list {
		out = append(out, FromDomainReservation(r))
	}
	return &ReservationListResponse{Reservations: out, Total: len(out)}
}

// ToDomainReservationState валидирует и конвертирует статус из строки
func ToDomainReservationState(s string) (domain.ReservationState, error) {
	state := domain.ReservationState(s)
	switch state {
	case domain.StatePending,
		domain.StateAccepted,
		domain.StateDeclined,
		domain.StateCancelledByRequester,
		domain.StateCancelledByOwner,
		domain.StateCancelledByTenant,
		domain.StateCompleted:
		return state, nil
	default:
		return "", fmt.Errorf("unknown reservation state: %s", s)
	}
}
