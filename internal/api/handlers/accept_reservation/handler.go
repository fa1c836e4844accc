package accept_reservation

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/Dea2002/Site-WEB-Licenta-sub000/internal/api/handlers"
	acceptReservationUC "github.com/Dea2002/Site-WEB-Licenta-sub000/internal/usecase/accept_reservation"
)

const (
	msgInvalidReservationID = "некорректный ID заявки"
	msgInvalidRequestBody   = "некорректное тело запроса"
	msgNotFound             = "заявка не найдена"
	msgForbidden            = "доступ запрещен"
	msgNotPending           = "заявка уже обработана"
	msgApartmentNotFound    = "квартира не найдена"
)

type Handler struct {
	useCase AcceptReservationUseCase
	logger  Logger
}

func NewHandler(useCase AcceptReservationUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle PATCH /api/v1/reservations/{reservationId}/accept
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	// Извлекаем reservationId из URL
	vars := mux.Vars(r)
	reservationID, err := strconv.ParseInt(vars["reservationId"], 10, 64)
	if err != nil {
		h.logger.Warn("PATCH /reservations/{id}/accept - Invalid reservation ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidReservationID)
		return
	}

	// Декодируем body
	var req AcceptReservationRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PATCH /reservations/{id}/accept - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	// Принимаем заявку. Проигрыш гонки за интервал - не ошибка:
	// use case возвращает исход declined с причиной.
	resp, err := h.useCase.Execute(r.Context(), &acceptReservationUC.Request{
		ReservationID: reservationID,
		OwnerID:       req.OwnerID,
	})
	if err != nil {
		switch {
		case errors.Is(err, acceptReservationUC.ErrReservationNotFound):
			h.logger.Warn("PATCH /reservations/{id}/accept - Reservation not found: reservation_id=%d", reservationID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, acceptReservationUC.ErrAccessDenied):
			h.logger.Warn("PATCH /reservations/{id}/accept - Access denied: reservation_id=%d, owner_id=%d",
				reservationID, req.OwnerID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, acceptReservationUC.ErrNotPending):
			h.logger.Warn("PATCH /reservations/{id}/accept - Not pending: reservation_id=%d", reservationID)
			handlers.RespondConflict(w, msgNotPending)

		case errors.Is(err, acceptReservationUC.ErrApartmentNotFound):
			h.logger.Warn("PATCH /reservations/{id}/accept - Apartment not found: reservation_id=%d", reservationID)
			handlers.RespondNotFound(w, msgApartmentNotFound)

		case errors.Is(err, acceptReservationUC.ErrInvalidInput):
			handlers.RespondBadRequest(w, msgInvalidRequestBody)

		default:
			h.logger.Error("PATCH /reservations/{id}/accept - Failed to accept reservation: reservation_id=%d, error=%v",
				reservationID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	if resp.Accepted() {
		h.logger.Info("PATCH /reservations/{id}/accept - Reservation accepted: reservation_id=%d, rental_id=%d",
			reservationID, resp.Rental.ID)
	} else {
		h.logger.Info("PATCH /reservations/{id}/accept - Reservation auto-declined: reservation_id=%d", reservationID)
	}
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(resp))
}
