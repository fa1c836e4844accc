package check_availability

import "errors"

var (
	// ErrInvalidInterval возвращается при некорректном интервале проживания
	ErrInvalidInterval = errors.New("check_availability: invalid stay interval")

	// ErrApartmentNotFound возвращается, когда квартира не найдена
	ErrApartmentNotFound = errors.New("check_availability: apartment not found")

	// ErrTooManyRooms возвращается, когда запрошено больше комнат, чем есть в квартире
	ErrTooManyRooms = errors.New("check_availability: requested room count exceeds apartment rooms")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("check_availability: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("check_availability: internal error")
)
