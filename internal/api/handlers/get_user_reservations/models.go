package get_user_reservations

import (
	getReservationHandler "github.com/Dea2002/Site-WEB-Licenta-sub000/internal/api/handlers/get_reservation"
)

// ReservationListResponse HTTP response model
type ReservationListResponse struct {
	Reservations []*getReservationHandler.ReservationResponse `json:"reservations"`
	Total        int                                          `json:"total"`
}
