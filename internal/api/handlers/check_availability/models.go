package check_availability

import (
	"time"

	"github.com/Dea2002/Site-WEB-Licenta-sub000/internal/domain"
	checkAvailabilityUC "github.com/Dea2002/Site-WEB-Licenta-sub000/internal/usecase/check_availability"
)

// QuoteResponse расчёт стоимости в HTTP ответе
type QuoteResponse struct {
	Nights               int     `json:"nights"`
	BaseCostPerRoom      float64 `json:"baseCostPerRoom"`
	BaseCostAllRooms     float64 `json:"baseCostAllRooms"`
	DailyUtility         float64 `json:"dailyUtility"`
	TotalUtility         float64 `json:"totalUtility"`
	DiscountPercent      float64 `json:"discountPercent"`
	DiscountAmount       float64 `json:"discountAmount"`
	FinalWithDiscount    float64 `json:"finalWithDiscount"`
	FinalWithoutDiscount float64 `json:"finalWithoutDiscount"`
}

// AvailabilityResponse HTTP response model
type AvailabilityResponse struct {
	ApartmentID       int64         `json:"apartmentId"`
	CheckIn           string        `json:"checkIn"`
	CheckOut          string        `json:"checkOut"`
	Free              bool          `json:"free"`
	NextBlockingStart *string       `json:"nextBlockingStart,omitempty"`
	Quote             QuoteResponse `json:"quote"`
}

// QuoteFromDomain конвертирует доменный расчёт в HTTP модель
func QuoteFromDomain(q domain.PriceBreakdown) QuoteResponse {
	return QuoteResponse{
		Nights:               q.Nights,
		BaseCostPerRoom:      q.BaseCostPerRoom,
		BaseCostAllRooms:     q.BaseCostAllRooms,
		DailyUtility:         q.DailyUtility,
		TotalUtility:         q.TotalUtility,
		DiscountPercent:      q.DiscountPercent,
		DiscountAmount:       q.DiscountAmount,
		FinalWithDiscount:    q.FinalWithDiscount,
		FinalWithoutDiscount: q.FinalWithoutDiscount,
	}
}

// FromUseCaseResponse конвертирует ответ use case в HTTP модель
func FromUseCaseResponse(resp *checkAvailabilityUC.Response) *AvailabilityResponse {
	out := &AvailabilityResponse{
		ApartmentID: resp.ApartmentID,
		CheckIn:     resp.CheckIn.Format(domain.DateFormat),
		CheckOut:    resp.CheckOut.Format(domain.DateFormat),
		Free:        resp.Free,
		Quote:       QuoteFromDomain(resp.Quote),
	}
	if resp.NextBlockingStart != nil {
		formatted := resp.NextBlockingStart.Format(domain.DateFormat)
		out.NextBlockingStart = &formatted
	}
	return out
}

// parseDate парсит дату формата YYYY-MM-DD
func parseDate(s string) (time.Time, error) {
	return time.Parse(domain.DateFormat, s)
}
