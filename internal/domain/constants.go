package domain

// Utility proration
const (
	// UtilityProrationDays фиксированный делитель для пересчёта месячных
	// коммунальных платежей в дневную ставку. Намеренное упрощение:
	// реальная длина календарного месяца не учитывается.
	UtilityProrationDays = 30
)

// Business validation constants
const (
	MinRoomCount           = 1
	MaxDeclineReasonLength = 500
	MaxDiscountPercent     = 100
	MinDiscountCategory    = 1
	MaxDiscountCategory    = 4
)

// Time format constants
const (
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// TerminalStates список терминальных статусов заявки.
// Заявка в терминальном статусе неизменяема.
var TerminalStates = []ReservationState{
	StateDeclined,
	StateCancelledByRequester,
	StateCancelledByOwner,
	StateCancelledByTenant,
	StateCompleted,
}

// BlockingRentalStatuses статусы аренды, при которых её интервал
// остаётся в леджере доступности (занимает даты).
// Завершённые аренды остаются как исторический факт.
var BlockingRentalStatuses = []RentalStatus{
	RentalStatusActive,
	RentalStatusCompleted,
}
