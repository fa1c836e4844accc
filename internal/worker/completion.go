package worker

import (
	"context"
	"time"
)

// RentalCompleter интерфейс сервиса завершения аренд
type RentalCompleter interface {
	CompleteExpired(ctx context.Context) (int, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// CompletionWorker периодически завершает аренды с истекшей датой выезда
type CompletionWorker struct {
	completer RentalCompleter
	interval  time.Duration
	logger    Logger
}

// NewCompletionWorker создает новый воркер завершения аренд
func NewCompletionWorker(completer RentalCompleter, interval time.Duration, logger Logger) *CompletionWorker {
	return &CompletionWorker{
		completer: completer,
		interval:  interval,
		logger:    logger,
	}
}

// Run запускает цикл воркера. Блокируется до отмены контекста.
func (w *CompletionWorker) Run(ctx context.Context) {
	w.logger.Info("CompletionWorker: started with interval %s", w.interval)

	// Первый проход сразу при старте, не дожидаясь тикера
	w.runOnce(ctx)

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			w.logger.Info("CompletionWorker: stopped")
			return
		case <-ticker.C:
			w.runOnce(ctx)
		}
	}
}

func (w *CompletionWorker) runOnce(ctx context.Context) {
	n, err := w.completer.CompleteExpired(ctx)
	if err != nil {
		w.logger.Error("CompletionWorker: completion pass failed: %v", err)
		return
	}
	if n > 0 {
		w.logger.Info("CompletionWorker: completed %d rentals", n)
	}
}
