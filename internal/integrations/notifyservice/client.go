package notifyservice

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/Dea2002/Site-WEB-Licenta-sub000/internal/domain"
)

// ErrInternal возвращается при ошибках доставки события
var ErrInternal = errors.New("notifyservice client: internal error")

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Client клиент для отправки событий переходов в NotificationService.
// Движок отправляет события fire-and-forget: доставка не влияет на
// результат операции, ошибки только логируются.
type Client struct {
	baseURL    string
	httpClient *http.Client
	log        Logger
}

// NewClient создает новый экземпляр клиента NotificationService
func NewClient(baseURL string, timeout time.Duration, log Logger) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		log: log,
	}
}

// transitionPayload тело события перехода жизненного цикла
type transitionPayload struct {
	RequestID   int64   `json:"request_id"`
	ApartmentID int64   `json:"apartment_id"`
	RequesterID int64   `json:"requester_id"`
	OwnerID     int64   `json:"owner_id"`
	FromState   string  `json:"from_state"`
	ToState     string  `json:"to_state"`
	Reason      *string `json:"reason,omitempty"`
}

// PublishTransition отправляет событие перехода жизненного цикла заявки
func (c *Client) PublishTransition(ctx context.Context, event domain.TransitionEvent) error {
	payload := transitionPayload{
		RequestID:   event.RequestID,
		ApartmentID: event.ApartmentID,
		RequesterID: event.RequesterID,
		OwnerID:     event.OwnerID,
		FromState:   string(event.FromState),
		ToState:     string(event.ToState),
		Reason:      event.Reason,
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("%w: failed to marshal event: %v", ErrInternal, err)
	}

	url := fmt.Sprintf("%s/internal/notifications/reservation-transitions", c.baseURL)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("%w: failed to create request: %v", ErrInternal, err)
	}

	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: failed to execute request: %v", ErrInternal, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusMultipleChoices {
		return fmt.Errorf("%w: unexpected status code %d", ErrInternal, resp.StatusCode)
	}

	return nil
}
