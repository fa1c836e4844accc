package worker

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

type fakeCompleter struct {
	calls int32
	err   error
}

func (f *fakeCompleter) CompleteExpired(_ context.Context) (int, error) {
	atomic.AddInt32(&f.calls, 1)
	return 1, f.err
}

type noopLogger struct{}

func (noopLogger) Info(string, ...interface{})  {}
func (noopLogger) Error(string, ...interface{}) {}

func TestCompletionWorker_Run(t *testing.T) {
	t.Run("runs immediately and then on ticks", func(t *testing.T) {
		completer := &fakeCompleter{}
		w := NewCompletionWorker(completer, 10*time.Millisecond, noopLogger{})

		ctx, cancel := context.WithCancel(context.Background())
		done := make(chan struct{})
		go func() {
			w.Run(ctx)
			close(done)
		}()

		assert.Eventually(t, func() bool {
			return atomic.LoadInt32(&completer.calls) >= 2
		}, time.Second, 5*time.Millisecond)

		cancel()
		select {
		case <-done:
		case <-time.After(time.Second):
			t.Fatal("worker did not stop after context cancellation")
		}
	})

	t.Run("keeps running after a failed pass", func(t *testing.T) {
		completer := &fakeCompleter{err: errors.New("db down")}
		w := NewCompletionWorker(completer, 10*time.Millisecond, noopLogger{})

		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()
		go w.Run(ctx)

		assert.Eventually(t, func() bool {
			return atomic.LoadInt32(&completer.calls) >= 3
		}, time.Second, 5*time.Millisecond)
	})
}
