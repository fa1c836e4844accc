package decline_reservation

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/Dea2002/Site-WEB-Licenta-sub000/internal/api/handlers"
	"github.com/Dea2002/Site-WEB-Licenta-sub000/internal/service/reservations"
)

const (
	msgInvalidReservationID = "некорректный ID заявки"
	msgInvalidRequestBody   = "некорректное тело запроса"
	msgNotFound             = "заявка не найдена"
	msgForbidden            = "доступ запрещен"
	msgEmptyReason          = "причина отклонения обязательна"
	msgNotPending           = "заявка уже обработана"
)

type Handler struct {
	service ReservationService
	logger  Logger
}

func NewHandler(service ReservationService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle PATCH /api/v1/reservations/{reservationId}/decline
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	// Извлекаем reservationId из URL
	vars := mux.Vars(r)
	reservationID, err := strconv.ParseInt(vars["reservationId"], 10, 64)
	if err != nil {
		h.logger.Warn("PATCH /reservations/{id}/decline - Invalid reservation ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidReservationID)
		return
	}

	// Декодируем body
	var req DeclineReservationRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PATCH /reservations/{id}/decline - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	// Отклоняем заявку
	err = h.service.Decline(r.Context(), reservationID, req.ToServiceRequest())
	if err != nil {
		switch {
		case errors.Is(err, reservations.ErrReservationNotFound):
			h.logger.Warn("PATCH /reservations/{id}/decline - Reservation not found: reservation_id=%d", reservationID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, reservations.ErrAccessDenied):
			h.logger.Warn("PATCH /reservations/{id}/decline - Access denied: reservation_id=%d, owner_id=%d",
				reservationID, req.OwnerID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, reservations.ErrEmptyReason):
			h.logger.Warn("PATCH /reservations/{id}/decline - Empty reason: reservation_id=%d", reservationID)
			handlers.RespondBadRequest(w, msgEmptyReason)

		case errors.Is(err, reservations.ErrNotPending):
			h.logger.Warn("PATCH /reservations/{id}/decline - Not pending: reservation_id=%d", reservationID)
			handlers.RespondConflict(w, msgNotPending)

		case errors.Is(err, reservations.ErrInvalidInput):
			handlers.RespondBadRequest(w, msgInvalidRequestBody)

		default:
			h.logger.Error("PATCH /reservations/{id}/decline - Failed to decline reservation: reservation_id=%d, error=%v",
				reservationID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PATCH /reservations/{id}/decline - Reservation declined: reservation_id=%d, owner_id=%d",
		reservationID, req.OwnerID)
	handlers.RespondJSON(w, http.StatusOK, nil)
}
