package apartmentservice

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/Dea2002/Site-WEB-Licenta-sub000/internal/domain"
)

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Client клиент для работы с ApartmentService
type Client struct {
	baseURL    string
	httpClient *http.Client
	log        Logger
}

// NewClient создает новый экземпляр клиента ApartmentService
func NewClient(baseURL string, timeout time.Duration, log Logger) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		log: log,
	}
}

// GetApartment получает квартиру вместе с её ценовой конфигурацией.
// Конфигурация валидируется сразу при получении: отрицательные цены и
// проценты вне 0-100 — ошибка провайдера, а не расчёта.
func (c *Client) GetApartment(ctx context.Context, apartmentID int64) (*Apartment, error) {
	url := fmt.Sprintf("%s/internal/apartments/%d", c.baseURL, apartmentID)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create request: %v", ErrInternal, err)
	}

	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to execute request: %v", ErrInternal, err)
	}
	defer resp.Body.Close()

	// Обработка статус-кодов
	switch resp.StatusCode {
	case http.StatusOK:
		// Продолжаем обработку
	case http.StatusBadRequest:
		return nil, fmt.Errorf("%w: invalid apartment ID format", ErrInvalidResponse)
	case http.StatusNotFound:
		return nil, ErrApartmentNotFound
	default:
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("%w: unexpected status code %d: %s", ErrInvalidResponse, resp.StatusCode, string(body))
	}

	// Парсим ответ
	var apartment Apartment
	if err := json.NewDecoder(resp.Body).Decode(&apartment); err != nil {
		return nil, fmt.Errorf("%w: failed to decode response: %v", ErrInvalidResponse, err)
	}

	if err := apartment.Pricing.ToDomain().Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidResponse, err)
	}

	return &apartment, nil
}

// ToDomain конвертирует ценовую конфигурацию в доменную модель
func (p Pricing) ToDomain() domain.ApartmentPricingConfig {
	return domain.ApartmentPricingConfig{
		BasePricePerRoomPerNight: p.BasePricePerRoomPerNight,
		Utilities: domain.UtilityMonthlyPrices{
			Internet:    p.Utilities.Internet,
			TV:          p.Utilities.TV,
			Water:       p.Utilities.Water,
			Gas:         p.Utilities.Gas,
			Electricity: p.Utilities.Electricity,
		},
		Discounts: domain.DiscountTiers{
			Discount1: p.Discount1,
			Discount2: p.Discount2,
			Discount3: p.Discount3,
		},
	}
}
