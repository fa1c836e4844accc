package get_reservation

import (
	"time"

	checkAvailabilityHandler "github.com/Dea2002/Site-WEB-Licenta-sub000/internal/api/handlers/check_availability"
	"github.com/Dea2002/Site-WEB-Licenta-sub000/internal/domain"
	"github.com/Dea2002/Site-WEB-Licenta-sub000/internal/service/reservations/models"
)

// ReservationResponse HTTP response model
type ReservationResponse struct {
	ID            int64                                  `json:"id"`
	ApartmentID   int64                                  `json:"apartmentId"`
	RequesterID   int64                                  `json:"requesterId"`
	OwnerID       int64                                  `json:"ownerId"`
	RoomCount     int                                    `json:"roomCount"`
	CheckIn       string                                 `json:"checkIn"`
	CheckOut      string                                 `json:"checkOut"`
	State         string                                 `json:"state"`
	Quote         checkAvailabilityHandler.QuoteResponse `json:"quote"`
	DeclineReason *string                                `json:"declineReason,omitempty"`
	CancelledAt   *time.Time                             `json:"cancelledAt,omitempty"`
	CreatedAt     time.Time                              `json:"createdAt"`
	UpdatedAt     time.Time                              `json:"updatedAt"`
}

// FromServiceResponse конвертирует модель сервиса в HTTP модель
func FromServiceResponse(r *models.ReservationResponse) *ReservationResponse {
	return &ReservationResponse{
		ID:            r.ID,
		ApartmentID:   r.ApartmentID,
		RequesterID:   r.RequesterID,
		OwnerID:       r.OwnerID,
		RoomCount:     r.RoomCount,
		CheckIn:       r.CheckIn.Format(domain.DateFormat),
		CheckOut:      r.CheckOut.Format(domain.DateFormat),
		State:         r.State,
		Quote:         checkAvailabilityHandler.QuoteFromDomain(r.Quote),
		DeclineReason: r.DeclineReason,
		CancelledAt:   r.CancelledAt,
		CreatedAt:     r.CreatedAt,
		UpdatedAt:     r.UpdatedAt,
	}
}

// FromServiceList конвертирует список моделей сервиса в HTTP модели
func FromServiceList(list *models.ReservationListResponse) []*ReservationResponse {
	out := make([]*ReservationResponse, 0, len(list.Reservations))
	for _, r := range list.Reservations {
		out = append(out, FromServiceResponse(r))
	}
	return out
}
