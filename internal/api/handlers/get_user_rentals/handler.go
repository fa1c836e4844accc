package get_user_rentals

import (
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/Dea2002/Site-WEB-Licenta-sub000/internal/api/handlers"
	"github.com/Dea2002/Site-WEB-Licenta-sub000/internal/api/middleware"
)

const (
	msgInvalidUserID = "некорректный ID пользователя"
	msgUnauthorized  = "пользователь не аутентифицирован"
	msgForbidden     = "доступ запрещен"
)

type Handler struct {
	service RentalsService
	logger  Logger
}

func NewHandler(service RentalsService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/users/{userId}/rentals
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	// Извлекаем userId из URL
	vars := mux.Vars(r)
	userID, err := strconv.ParseInt(vars["userId"], 10, 64)
	if err != nil {
		h.logger.Warn("GET /users/{id}/rentals - Invalid user ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidUserID)
		return
	}

	// Аренды видны только их арендатору: userId из пути должен совпадать
	// с аутентифицированным пользователем
	authUserID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgUnauthorized)
		return
	}
	if authUserID != userID {
		h.logger.Warn("GET /users/{id}/rentals - Access denied: path user_id=%d, auth user_id=%d",
			userID, authUserID)
		handlers.RespondForbidden(w, msgForbidden)
		return
	}

	rentals, err := h.service.GetUserRentals(r.Context(), userID)
	if err != nil {
		h.logger.Error("GET /users/{id}/rentals - Failed to get rentals: user_id=%d, error=%v", userID, err)
		handlers.RespondInternalError(w)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, FromDomainRentalList(rentals))
}
