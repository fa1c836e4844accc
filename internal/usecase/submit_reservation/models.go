package submit_reservation

import (
	"time"

	"github.com/Dea2002/Site-WEB-Licenta-sub000/internal/domain"
)

// Request модель запроса на подачу заявки на бронирование
type Request struct {
	RequesterID int64     // ID пользователя-заявителя
	ApartmentID int64     // ID квартиры
	RoomCount   int       // Количество комнат (>= 1)
	CheckIn     time.Time // Дата заезда
	CheckOut    time.Time // Дата выезда (строго позже заезда)
}

// Response модель ответа с созданной заявкой
type Response struct {
	ID          int64
	ApartmentID int64
	RequesterID int64
	OwnerID     int64
	RoomCount   int
	CheckIn     time.Time
	CheckOut    time.Time
	State       string

	// Снимок расчёта стоимости на момент подачи
	Quote domain.PriceBreakdown

	CreatedAt time.Time
	UpdatedAt time.Time
}
