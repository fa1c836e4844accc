package submit_reservation

import (
	"fmt"
	"time"

	checkAvailabilityHandler "github.com/Dea2002/Site-WEB-Licenta-sub000/internal/api/handlers/check_availability"
	"github.com/Dea2002/Site-WEB-Licenta-sub000/internal/domain"
	submitReservationUC "github.com/Dea2002/Site-WEB-Licenta-sub000/internal/usecase/submit_reservation"
)

// SubmitReservationRequest HTTP request model
type SubmitReservationRequest struct {
	RequesterID int64  `json:"requesterId"`
	ApartmentID int64  `json:"apartmentId"`
	RoomCount   int    `json:"roomCount"`
	CheckIn     string `json:"checkIn"`
	CheckOut    string `json:"checkOut"`
}

// ToUseCaseRequest конвертирует HTTP request в модель use case
func (r *SubmitReservationRequest) ToUseCaseRequest() (*submitReservationUC.Request, error) {
	checkIn, err := time.Parse(domain.DateFormat, r.CheckIn)
	if err != nil {
		return nil, fmt.Errorf("invalid checkIn: %w", err)
	}
	checkOut, err := time.Parse(domain.DateFormat, r.CheckOut)
	if err != nil {
		return nil, fmt.Errorf("invalid checkOut: %w", err)
	}

	return &submitReservationUC.Request{
		RequesterID: r.RequesterID,
		ApartmentID: r.ApartmentID,
		RoomCount:   r.RoomCount,
		CheckIn:     checkIn,
		CheckOut:    checkOut,
	}, nil
}

// ReservationResponse HTTP response model
type ReservationResponse struct {
	ID          int64                                  `json:"id"`
	ApartmentID int64                                  `json:"apartmentId"`
	RequesterID int64                                  `json:"requesterId"`
	OwnerID     int64                                  `json:"ownerId"`
	RoomCount   int                                    `json:"roomCount"`
	CheckIn     string                                 `json:"checkIn"`
	CheckOut    string                                 `json:"checkOut"`
	State       string                                 `json:"state"`
	Quote       checkAvailabilityHandler.QuoteResponse `json:"quote"`
	CreatedAt   time.Time                              `json:"createdAt"`
	UpdatedAt   time.Time                              `json:"updatedAt"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP модель
func FromUseCaseResponse(resp *submitReservationUC.Response) *ReservationResponse {
	return &ReservationResponse{
		ID:          resp.ID,
		ApartmentID: resp.ApartmentID,
		RequesterID: resp.RequesterID,
		OwnerID:     resp.OwnerID,
		RoomCount:   resp.RoomCount,
		CheckIn:     resp.CheckIn.Format(domain.DateFormat),
		CheckOut:    resp.CheckOut.Format(domain.DateFormat),
		State:       resp.State,
		Quote:       checkAvailabilityHandler.QuoteFromDomain(resp.Quote),
		CreatedAt:   resp.CreatedAt,
		UpdatedAt:   resp.UpdatedAt,
	}
}
