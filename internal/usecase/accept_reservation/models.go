package accept_reservation

import (
	"time"

	"github.com/Dea2002/Site-WEB-Licenta-sub000/internal/domain"
)

// Request модель запроса на принятие заявки
type Request struct {
	ReservationID int64 // ID заявки
	OwnerID       int64 // ID владельца квартиры (из заголовка аутентификации)
}

// Response модель результата принятия.
// Принятие может закончиться одним из двух исходов: accepted (с арендой)
// или declined (проигрыш гонки, авто-отклонение).
type Response struct {
	ReservationID int64
	State         string  // accepted | declined
	DeclineReason *string // Заполнен при авто-отклонении

	// Созданная аренда (только при accepted)
	Rental *RentalInfo
}

// RentalInfo данные созданной аренды
type RentalInfo struct {
	ID          int64
	ApartmentID int64
	RequesterID int64
	RoomCount   int
	CheckIn     time.Time
	CheckOut    time.Time
	FinalPrice  float64
	Quote       domain.PriceBreakdown
	CreatedAt   time.Time
}

// Accepted возвращает true, если заявка была принята
func (r *Response) Accepted() bool {
	return r.State == string(domain.StateAccepted)
}
