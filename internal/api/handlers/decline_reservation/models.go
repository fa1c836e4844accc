package decline_reservation

import (
	"github.com/Dea2002/Site-WEB-Licenta-sub000/internal/service/reservations/models"
)

// DeclineReservationRequest HTTP request model.
// Причина отклонения обязательна.
type DeclineReservationRequest struct {
	OwnerID int64  `json:"ownerId"`
	Reason  string `json:"reason"`
}

// ToServiceRequest конвертирует HTTP request в модель сервиса
func (r *DeclineReservationRequest) ToServiceRequest() *models.DeclineReservationRequest {
	return &models.DeclineReservationRequest{
		OwnerID: r.OwnerID,
		Reason:  r.Reason,
	}
}
