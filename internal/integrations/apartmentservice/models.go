package apartmentservice

// Apartment модель квартиры из ApartmentService
type Apartment struct {
	ID         int64   `json:"id"`
	OwnerID    int64   `json:"owner_id"`
	TotalRooms int     `json:"total_rooms"`
	Pricing    Pricing `json:"pricing"`
}

// Pricing ценовая конфигурация квартиры.
// Задаётся владельцем, для движка read-only.
type Pricing struct {
	BasePricePerRoomPerNight float64   `json:"base_price_per_room_per_night"`
	Utilities                Utilities `json:"utilities"`
	Discount1                float64   `json:"discount1"`
	Discount2                float64   `json:"discount2"`
	Discount3                float64   `json:"discount3"`
}

// Utilities месячные коммунальные платежи квартиры
type Utilities struct {
	Internet    float64 `json:"internet"`
	TV          float64 `json:"tv"`
	Water       float64 `json:"water"`
	Gas         float64 `json:"gas"`
	Electricity float64 `json:"electricity"`
}

// ErrorResponse модель ошибки от ApartmentService
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}
