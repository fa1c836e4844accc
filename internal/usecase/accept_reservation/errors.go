package accept_reservation

import "errors"

var (
	// ErrReservationNotFound возвращается, когда заявка не найдена
	ErrReservationNotFound = errors.New("accept_reservation: reservation not found")

	// ErrNotPending возвращается при попытке принять заявку не в статусе pending
	ErrNotPending = errors.New("accept_reservation: reservation is not pending")

	// ErrAccessDenied возвращается, когда принимает не владелец квартиры
	ErrAccessDenied = errors.New("accept_reservation: access denied")

	// ErrApartmentNotFound возвращается, когда квартира не найдена
	ErrApartmentNotFound = errors.New("accept_reservation: apartment not found")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("accept_reservation: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("accept_reservation: internal error")
)

// autoDeclineReason системная причина отклонения при проигрыше гонки:
// другая заявка на пересекающийся интервал была принята раньше
const autoDeclineReason = "интервал уже занят другой принятой заявкой, выберите другие даты"
