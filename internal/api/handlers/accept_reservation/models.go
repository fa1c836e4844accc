package accept_reservation

import (
	"time"

	checkAvailabilityHandler "github.com/Dea2002/Site-WEB-Licenta-sub000/internal/api/handlers/check_availability"
	"github.com/Dea2002/Site-WEB-Licenta-sub000/internal/domain"
	acceptReservationUC "github.com/Dea2002/Site-WEB-Licenta-sub000/internal/usecase/accept_reservation"
)

// AcceptReservationRequest HTTP request model
type AcceptReservationRequest struct {
	OwnerID int64 `json:"ownerId"`
}

// RentalResponse данные созданной аренды
type RentalResponse struct {
	ID          int64                                  `json:"id"`
	ApartmentID int64                                  `json:"apartmentId"`
	RequesterID int64                                  `json:"requesterId"`
	RoomCount   int                                    `json:"roomCount"`
	CheckIn     string                                 `json:"checkIn"`
	CheckOut    string                                 `json:"checkOut"`
	FinalPrice  float64                                `json:"finalPrice"`
	Quote       checkAvailabilityHandler.QuoteResponse `json:"quote"`
	CreatedAt   time.Time                              `json:"createdAt"`
}

// AcceptReservationResponse HTTP response model.
// state = accepted: аренда создана. state = declined: интервал был занят,
// заявка автоматически отклонена с указанием причины.
type AcceptReservationResponse struct {
	ReservationID int64           `json:"reservationId"`
	State         string          `json:"state"`
	DeclineReason *string         `json:"declineReason,omitempty"`
	Rental        *RentalResponse `json:"rental,omitempty"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP модель
func FromUseCaseResponse(resp *acceptReservationUC.Response) *AcceptReservationResponse {
	out := &AcceptReservationResponse{
		ReservationID: resp.ReservationID,
		State:         resp.State,
		DeclineReason: resp.DeclineReason,
	}
	if resp.Rental != nil {
		out.Rental = &RentalResponse{
			ID:          resp.Rental.ID,
			ApartmentID: resp.Rental.ApartmentID,
			RequesterID: resp.Rental.RequesterID,
			RoomCount:   resp.Rental.RoomCount,
			CheckIn:     resp.Rental.CheckIn.Format(domain.DateFormat),
			CheckOut:    resp.Rental.CheckOut.Format(domain.DateFormat),
			FinalPrice:  resp.Rental.FinalPrice,
			Quote:       checkAvailabilityHandler.QuoteFromDomain(resp.Rental.Quote),
			CreatedAt:   resp.Rental.CreatedAt,
		}
	}
	return out
}
