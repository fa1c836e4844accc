package get_apartment_reservations

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"github.com/Dea2002/Site-WEB-Licenta-sub000/internal/api/handlers"
	getReservationHandler "github.com/Dea2002/Site-WEB-Licenta-sub000/internal/api/handlers/get_reservation"
	"github.com/Dea2002/Site-WEB-Licenta-sub000/internal/api/middleware"
	"github.com/Dea2002/Site-WEB-Licenta-sub000/internal/domain"
	"github.com/Dea2002/Site-WEB-Licenta-sub000/internal/service/reservations"
	"github.com/Dea2002/Site-WEB-Licenta-sub000/internal/service/reservations/models"
)

const (
	msgInvalidApartmentID = "некорректный ID квартиры"
	msgUnauthorized       = "пользователь не аутентифицирован"
	msgInvalidState       = "некорректный статус заявки"
	msgInvalidDates       = "некорректный фильтр дат, формат YYYY-MM-DD"
	msgForbidden          = "доступ запрещен"
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

// Handle GET /api/v1/apartments/{apartmentId}/reservations
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	// Извлекаем apartmentId из URL
	vars := mux.Vars(r)
	apartmentID, err := strconv.ParseInt(vars["apartmentId"], 10, 64)
	if err != nil {
		h.logger.Warn("GET /apartments/{id}/reservations - Invalid apartment ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidApartmentID)
		return
	}

	// Идентичность берём из Auth middleware
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgUnauthorized)
		return
	}

	query := r.URL.Query()

	req := &models.GetApartmentReservationsRequest{
		ApartmentID: apartmentID,
		UserID:      userID,
	}

	if state := query.Get("state"); state != "" {
		req.State = &state
	}
	if raw := query.Get("from"); raw != "" {
		from, err := time.Parse(domain.DateFormat, raw)
		if err != nil {
			handlers.RespondBadRequest(w, msgInvalidDates)
			return
		}
		req.From = &from
	}
	if raw := query.Get("to"); raw != "" {
		to, err := time.Parse(domain.DateFormat, raw)
		if err != nil {
			handlers.RespondBadRequest(w, msgInvalidDates)
			return
		}
		req.To = &to
	}
	if query.Get("include_terminal") == "true" {
		req.IncludeTerminal = true
	}

	resp, err := h.service.GetApartmentReservations(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, reservations.ErrAccessDenied):
			h.logger.Warn("GET /apartments/{id}/reservations - Access denied: apartment_id=%d, user_id=%d",
				apartmentID, userID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, reservations.ErrInvalidInput):
			h.logger.Warn("GET /apartments/{id}/reservations - Invalid state filter: apartment_id=%d", apartmentID)
			handlers.RespondBadRequest(w, msgInvalidState)

		default:
			h.logger.Error("GET /apartments/{id}/reservations - Failed to get reservations: apartment_id=%d, error=%v",
				apartmentID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, &ReservationListResponse{
		Reservations: getReservationHandler.FromServiceList(resp),
		Total:        resp.Total,
	})
}
