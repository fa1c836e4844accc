package apartmentservice

import "errors"

var (
	// ErrApartmentNotFound возвращается, когда квартира не найдена
	ErrApartmentNotFound = errors.New("apartmentservice client: apartment not found")

	// ErrInternal возвращается при внутренних ошибках клиента
	ErrInternal = errors.New("apartmentservice client: internal error")

	// ErrInvalidResponse возвращается при некорректном ответе от сервиса
	ErrInvalidResponse = errors.New("apartmentservice client: invalid response")
)
