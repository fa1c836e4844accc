package reservation

import "errors"

var (
	// ErrReservationNotFound возвращается, когда заявка не найдена
	ErrReservationNotFound = errors.New("reservation.repository: reservation request not found")

	// ErrStateConflict возвращается, когда guarded-переход не прошёл:
	// заявка уже не в ожидаемом исходном статусе
	ErrStateConflict = errors.New("reservation.repository: reservation is not in the expected state")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("reservation.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("reservation.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("reservation.repository: failed to scan row")
)
