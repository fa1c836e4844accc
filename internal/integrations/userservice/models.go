package userservice

import "time"

// Eligibility модель статуса пользователя из UserService.
// Category 1-3 дают право на скидку, пока не истёк ValidUntil;
// категория 4 и отсутствие категории скидку не дают.
type Eligibility struct {
	UserID     int64     `json:"user_id"`
	Category   int       `json:"category"`
	ValidUntil time.Time `json:"valid_until"`
	CanBook    bool      `json:"can_book"` // Подтверждён ли статус (верификация вуза)
}

// ErrorResponse модель ошибки от UserService
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}
