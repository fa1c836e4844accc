package notifier

import (
	"context"
	"time"

	"github.com/Dea2002/Site-WEB-Licenta-sub000/internal/domain"
)

// Publisher интерфейс клиента NotificationService
type Publisher interface {
	PublishTransition(ctx context.Context, event domain.TransitionEvent) error
}

// Metrics интерфейс счётчика переходов (опционально)
type Metrics interface {
	IncReservationTransition(toState string)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Notifier отправляет события переходов жизненного цикла fire-and-forget.
// Доставка никогда не влияет на результат операции: ошибки только логируются.
type Notifier struct {
	publisher Publisher
	metrics   Metrics
	logger    Logger
	timeout   time.Duration
}

// New создает новый notifier. metrics может быть nil, если метрики выключены.
func New(publisher Publisher, metrics Metrics, logger Logger, timeout time.Duration) *Notifier {
	return &Notifier{
		publisher: publisher,
		metrics:   metrics,
		logger:    logger,
		timeout:   timeout,
	}
}

// Emit асинхронно публикует событие перехода.
// Контекст запроса не используется: уведомление должно уйти и после того,
// как HTTP-запрос завершился.
func (n *Notifier) Emit(event domain.TransitionEvent) {
	if n.metrics != nil {
		n.metrics.IncReservationTransition(string(event.ToState))
	}

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), n.timeout)
		defer cancel()

		if err := n.publisher.PublishTransition(ctx, event); err != nil {
			n.logger.Error("Notifier: failed to publish transition request=%d %s->%s: %v",
				event.RequestID, event.FromState, event.ToState, err)
			return
		}

		n.logger.Info("Notifier: published transition request=%d %s->%s",
			event.RequestID, event.FromState, event.ToState)
	}()
}
