package get_user_rentals

import (
	"time"

	"github.com/Dea2002/Site-WEB-Licenta-sub000/internal/domain"
)

// RentalResponse HTTP response model
type RentalResponse struct {
	ID                 int64      `json:"id"`
	RequestID          int64      `json:"requestId"`
	ApartmentID        int64      `json:"apartmentId"`
	RoomCount          int        `json:"roomCount"`
	CheckIn            string     `json:"checkIn"`
	CheckOut           string     `json:"checkOut"`
	FinalPrice         float64    `json:"finalPrice"`
	Status             string     `json:"status"`
	CancellationReason *string    `json:"cancellationReason,omitempty"`
	CancelledAt        *time.Time `json:"cancelledAt,omitempty"`
	CreatedAt          time.Time  `json:"createdAt"`
}

// RentalListResponse список аренд пользователя
type RentalListResponse struct {
	Rentals []*RentalResponse `json:"rentals"`
	Total   int               `json:"total"`
}

// FromDomainRental конвертирует доменную модель в HTTP модель
func FromDomainRental(r *domain.Rental) *RentalResponse {
	return &RentalResponse{
		ID:                 r.ID,
		RequestID:          r.RequestID,
		ApartmentID:        r.ApartmentID,
		RoomCount:          r.RoomCount,
		CheckIn:            r.Interval.CheckIn.Format(domain.DateFormat),
		CheckOut:           r.Interval.CheckOut.Format(domain.DateFormat),
		FinalPrice:         r.FinalPrice,
		Status:             string(r.Status),
		CancellationReason: r.CancellationReason,
		CancelledAt:        r.CancelledAt,
		CreatedAt:          r.CreatedAt,
	}
}

// FromDomainRentalList конвертирует список доменных моделей в HTTP модели
func FromDomainRentalList(rentals []*domain.Rental) *RentalListResponse {
	out := make([]*RentalResponse, 0, len(rentals))
	for _, r := range rentals {
		out = append(out, FromDomainRental(r))
	}
	return &RentalListResponse{
		Rentals: out,
		Total:   len(out),
	}
}
