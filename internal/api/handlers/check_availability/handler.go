package check_availability

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/Dea2002/Site-WEB-Licenta-sub000/internal/api/handlers"
	checkAvailabilityUC "github.com/Dea2002/Site-WEB-Licenta-sub000/internal/usecase/check_availability"
)

const (
	msgInvalidApartmentID = "некорректный ID квартиры"
	msgInvalidDates       = "некорректные даты: check_in и check_out обязательны, формат YYYY-MM-DD"
	msgInvalidInterval    = "дата выезда должна быть строго позже даты заезда"
	msgInvalidRooms       = "некорректное количество комнат"
	msgApartmentNotFound  = "квартира не найдена"
	msgTooManyRooms       = "запрошено больше комнат, чем есть в квартире"
)

type Handler struct {
	useCase CheckAvailabilityUseCase
	logger  Logger
}

func NewHandler(useCase CheckAvailabilityUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/apartments/{apartmentId}/availability
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	// Извлекаем apartmentId из URL
	vars := mux.Vars(r)
	apartmentID, err := strconv.ParseInt(vars["apartmentId"], 10, 64)
	if err != nil {
		h.logger.Warn("GET /apartments/{id}/availability - Invalid apartment ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidApartmentID)
		return
	}

	// Парсим query параметры
	query := r.URL.Query()

	checkIn, err := parseDate(query.Get("check_in"))
	if err != nil {
		handlers.RespondBadRequest(w, msgInvalidDates)
		return
	}
	checkOut, err := parseDate(query.Get("check_out"))
	if err != nil {
		handlers.RespondBadRequest(w, msgInvalidDates)
		return
	}

	roomCount := 1
	if raw := query.Get("rooms"); raw != "" {
		roomCount, err = strconv.Atoi(raw)
		if err != nil || roomCount < 1 {
			handlers.RespondBadRequest(w, msgInvalidRooms)
			return
		}
	}

	// Пользователь опционален: анонимный запрос получает расчёт без скидки
	var userID *int64
	if raw := query.Get("user_id"); raw != "" {
		parsed, err := strconv.ParseInt(raw, 10, 64)
		if err == nil && parsed > 0 {
			userID = &parsed
		}
	}

	req := &checkAvailabilityUC.Request{
		ApartmentID: apartmentID,
		RoomCount:   roomCount,
		CheckIn:     checkIn,
		CheckOut:    checkOut,
		UserID:      userID,
	}

	resp, err := h.useCase.Execute(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, checkAvailabilityUC.ErrInvalidInterval):
			h.logger.Warn("GET /apartments/{id}/availability - Invalid interval: apartment_id=%d", apartmentID)
			handlers.RespondBadRequest(w, msgInvalidInterval)

		case errors.Is(err, checkAvailabilityUC.ErrApartmentNotFound):
			h.logger.Warn("GET /apartments/{id}/availability - Apartment not found: apartment_id=%d", apartmentID)
			handlers.RespondNotFound(w, msgApartmentNotFound)

		case errors.Is(err, checkAvailabilityUC.ErrTooManyRooms):
			h.logger.Warn("GET /apartments/{id}/availability - Too many rooms: apartment_id=%d, rooms=%d",
				apartmentID, roomCount)
			handlers.RespondBadRequest(w, msgTooManyRooms)

		case errors.Is(err, checkAvailabilityUC.ErrInvalidInput):
			handlers.RespondBadRequest(w, msgInvalidRooms)

		default:
			h.logger.Error("GET /apartments/{id}/availability - Failed: apartment_id=%d, error=%v",
				apartmentID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(resp))
}
