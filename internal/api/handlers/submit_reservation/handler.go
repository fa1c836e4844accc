package submit_reservation

import (
	"errors"
	"net/http"

	"github.com/Dea2002/Site-WEB-Licenta-sub000/internal/api/handlers"
	submitReservationUC "github.com/Dea2002/Site-WEB-Licenta-sub000/internal/usecase/submit_reservation"
)

const (
	msgInvalidRequestBody  = "некорректное тело запроса"
	msgInvalidInterval     = "дата выезда должна быть строго позже даты заезда"
	msgIntervalUnavailable = "интервал пересекается с подтверждённой арендой"
	msgIneligible          = "статус пользователя не даёт права бронировать"
	msgRequesterNotFound   = "пользователь не найден"
	msgApartmentNotFound   = "квартира не найдена"
	msgTooManyRooms        = "запрошено больше комнат, чем есть в квартире"
	msgInvalidInput        = "некорректные входные данные"
)

type Handler struct {
	useCase SubmitReservationUseCase
	logger  Logger
}

func NewHandler(useCase SubmitReservationUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/reservations
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	// Декодируем body
	var req SubmitReservationRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /reservations - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	// Конвертируем в модель use case
	ucReq, err := req.ToUseCaseRequest()
	if err != nil {
		h.logger.Warn("POST /reservations - Invalid dates: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	// Подаём заявку
	resp, err := h.useCase.Execute(r.Context(), ucReq)
	if err != nil {
		switch {
		case errors.Is(err, submitReservationUC.ErrInvalidInterval):
			h.logger.Warn("POST /reservations - Invalid interval: requester_id=%d, apartment_id=%d",
				req.RequesterID, req.ApartmentID)
			handlers.RespondBadRequest(w, msgInvalidInterval)

		case errors.Is(err, submitReservationUC.ErrIntervalUnavailable):
			h.logger.Warn("POST /reservations - Interval unavailable: apartment_id=%d, check_in=%s, check_out=%s",
				req.ApartmentID, req.CheckIn, req.CheckOut)
			handlers.RespondConflict(w, msgIntervalUnavailable)

		case errors.Is(err, submitReservationUC.ErrIneligibleRequester):
			h.logger.Warn("POST /reservations - Requester not eligible: requester_id=%d", req.RequesterID)
			handlers.RespondForbidden(w, msgIneligible)

		case errors.Is(err, submitReservationUC.ErrRequesterNotFound):
			h.logger.Warn("POST /reservations - Requester not found: requester_id=%d", req.RequesterID)
			handlers.RespondNotFound(w, msgRequesterNotFound)

		case errors.Is(err, submitReservationUC.ErrApartmentNotFound):
			h.logger.Warn("POST /reservations - Apartment not found: apartment_id=%d", req.ApartmentID)
			handlers.RespondNotFound(w, msgApartmentNotFound)

		case errors.Is(err, submitReservationUC.ErrTooManyRooms):
			h.logger.Warn("POST /reservations - Too many rooms: apartment_id=%d, rooms=%d",
				req.ApartmentID, req.RoomCount)
			handlers.RespondBadRequest(w, msgTooManyRooms)

		case errors.Is(err, submitReservationUC.ErrInvalidInput):
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("POST /reservations - Failed to submit reservation: requester_id=%d, error=%v",
				req.RequesterID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /reservations - Reservation submitted: reservation_id=%d, requester_id=%d, apartment_id=%d",
		resp.ID, resp.RequesterID, resp.ApartmentID)
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(resp))
}
