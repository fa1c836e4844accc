package reservations

import "errors"

var (
	// ErrReservationNotFound возвращается, когда заявка не найдена
	ErrReservationNotFound = errors.New("reservation not found")

	// ErrAccessDenied возвращается, когда у пользователя нет прав доступа
	ErrAccessDenied = errors.New("access denied")

	// ErrEmptyReason возвращается при отклонении без указания причины
	ErrEmptyReason = errors.New("decline reason is required")

	// ErrNotPending возвращается при попытке отклонить заявку не в статусе pending
	ErrNotPending = errors.New("reservation is not pending")

	// ErrCannotCancel возвращается, когда заявка не может быть отменена
	ErrCannotCancel = errors.New("reservation cannot be cancelled")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service: internal error")
)
