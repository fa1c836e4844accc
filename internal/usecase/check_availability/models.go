package check_availability

import (
	"time"

	"github.com/Dea2002/Site-WEB-Licenta-sub000/internal/domain"
)

// Request модель запроса проверки доступности
type Request struct {
	ApartmentID int64
	RoomCount   int
	CheckIn     time.Time
	CheckOut    time.Time
	UserID      *int64 // Опционально: для предварительного расчёта со скидкой
}

// Response модель ответа проверки доступности.
// Ответ ни к чему не обязывает: интервал не удерживается.
type Response struct {
	ApartmentID int64
	CheckIn     time.Time
	CheckOut    time.Time
	Free        bool

	// Ближайший check-in подтверждённой аренды после запрошенного заезда.
	// Ограничивает, насколько можно сдвинуть дату выезда.
	NextBlockingStart *time.Time

	// Предварительный расчёт стоимости
	Quote domain.PriceBreakdown
}
