package cancel_reservation

import (
	"github.com/Dea2002/Site-WEB-Licenta-sub000/internal/service/reservations/models"
)

// CancelReservationRequest HTTP request model
type CancelReservationRequest struct {
	UserID int64 `json:"userId"`
}

// ToServiceRequest конвертирует HTTP request в модель сервиса
func (r *CancelReservationRequest) ToServiceRequest() *models.CancelReservationRequest {
	return &models.CancelReservationRequest{
		UserID: r.UserID,
	}
}
