package get_user_reservations

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/Dea2002/Site-WEB-Licenta-sub000/internal/api/handlers"
	getReservationHandler "github.com/Dea2002/Site-WEB-Licenta-sub000/internal/api/handlers/get_reservation"
	"github.com/Dea2002/Site-WEB-Licenta-sub000/internal/api/middleware"
	"github.com/Dea2002/Site-WEB-Licenta-sub000/internal/service/reservations"
	"github.com/Dea2002/Site-WEB-Licenta-sub000/internal/service/reservations/models"
)

const (
	msgInvalidUserID = "некорректный ID пользователя"
	msgUnauthorized  = "пользователь не аутентифицирован"
	msgForbidden     = "доступ запрещен"
	msgInvalidState  = "некорректный статус заявки"
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

// Handle GET /api/v1/users/{userId}/reservations
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	// Извлекаем userId из URL
	vars := mux.Vars(r)
	userID, err := strconv.ParseInt(vars["userId"], 10, 64)
	if err != nil {
		h.logger.Warn("GET /users/{id}/reservations - Invalid user ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidUserID)
		return
	}

	// История заявок видна только её владельцу: userId из пути должен
	// совпадать с аутентифицированным пользователем
	authUserID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgUnauthorized)
		return
	}
	if authUserID != userID {
		h.logger.Warn("GET /users/{id}/reservations - Access denied: path user_id=%d, auth user_id=%d",
			userID, authUserID)
		handlers.RespondForbidden(w, msgForbidden)
		return
	}

	req := &models.GetUserReservationsRequest{
		RequesterID: userID,
	}

	// Фильтр по статусу (опционально)
	if state := r.URL.Query().Get("state"); state != "" {
		req.State = &state
	}

	resp, err := h.service.GetUserReservations(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, reservations.ErrInvalidInput):
			h.logger.Warn("GET /users/{id}/reservations - Invalid state filter: user_id=%d", userID)
			handlers.RespondBadRequest(w, msgInvalidState)

		default:
			h.logger.Error("GET /users/{id}/reservations - Failed to get reservations: user_id=%d, error=%v",
				userID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, &ReservationListResponse{
		Reservations: getReservationHandler.FromServiceList(resp),
		Total:        resp.Total,
	})
}
