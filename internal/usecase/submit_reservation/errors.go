package submit_reservation

import "errors"

var (
	// ErrInvalidInterval возвращается при некорректном интервале проживания
	ErrInvalidInterval = errors.New("submit_reservation: invalid stay interval")

	// ErrIntervalUnavailable возвращается, когда интервал пересекается с подтверждённой арендой
	ErrIntervalUnavailable = errors.New("submit_reservation: interval is not available")

	// ErrIneligibleRequester возвращается, когда статус пользователя не даёт права бронировать
	ErrIneligibleRequester = errors.New("submit_reservation: requester is not eligible to book")

	// ErrRequesterNotFound возвращается, когда пользователь не найден
	ErrRequesterNotFound = errors.New("submit_reservation: requester not found")

	// ErrApartmentNotFound возвращается, когда квартира не найдена
	ErrApartmentNotFound = errors.New("submit_reservation: apartment not found")

	// ErrTooManyRooms возвращается, когда запрошено больше комнат, чем есть в квартире
	ErrTooManyRooms = errors.New("submit_reservation: requested room count exceeds apartment rooms")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("submit_reservation: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("submit_reservation: internal error")
)
