package worker

import (
	"context"
	"errors"
	"sync"

	"go.uber.org/zap"

	"github.com/goldendrops/storefront/internal/events"
	"github.com/goldendrops/storefront/internal/service"
)

// ErrQueueFull is returned by Publish when the worker cannot accept more
// events.
var ErrQueueFull = errors.New("notification queue full")

// ErrWorkerStopped is returned by Publish once Stop has been called.
var ErrWorkerStopped = errors.New("notification worker stopped")

// NotificationWorker delivers events to the notification handlers off the
// request path. It satisfies events.Dispatcher so services publish to it
// directly.
type NotificationWorker struct {
	inner  events.Dispatcher
	queue  chan events.Event
	logger *zap.Logger

	mu      sync.RWMutex
	stopped bool
	done    chan struct{}
}

// NewNotificationWorker wraps inner with a queue of the given size.
func NewNotificationWorker(inner events.Dispatcher, size int, logger *zap.Logger) *NotificationWorker {
	if size <= 0 {
		size = 64
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &NotificationWorker{
		inner:  inner,
		queue:  make(chan events.Event, size),
		logger: logger,
		done:   make(chan struct{}),
	}
}

// StartNotificationWorker registers notification handlers on inner and starts
// delivering queued events.
func StartNotificationWorker(notifications *service.NotificationService, w *NotificationWorker) {
	if notifications != nil {
		notifications.RegisterHandlers()
	}
	go w.run()
}

// Publish enqueues event without blocking. Events are dropped, and logged,
// when the queue is full or the worker has stopped.
func (w *NotificationWorker) Publish(_ context.Context, event events.Event) error {
	w.mu.RLock()
	defer w.mu.RUnlock()
	if w.stopped {
		w.logger.Warn("dropping event after stop", zap.String("event_type", string(event.Type)), zap.String("event_id", event.ID))
		return ErrWorkerStopped
	}
	select {
	case w.queue <- event:
		return nil
	default:
		w.logger.Warn("dropping event", zap.String("event_type", string(event.Type)), zap.String("event_id", event.ID))
		return ErrQueueFull
	}
}

// Subscribe registers handler on the wrapped dispatcher.
func (w *NotificationWorker) Subscribe(eventType events.EventType, handler events.EventHandler) {
	w.inner.Subscribe(eventType, handler)
}

func (w *NotificationWorker) run() {
	defer close(w.done)
	for event := range w.queue {
		// Request contexts are gone by now.
		if err := w.inner.Publish(context.Background(), event); err != nil {
			w.logger.Warn("deliver event", zap.String("event_type", string(event.Type)), zap.Error(err))
		}
	}
}

// Stop closes the queue and waits for queued events to be delivered or for ctx
// to end. Later calls to Publish return ErrWorkerStopped.
func (w *NotificationWorker) Stop(ctx context.Context) error {
	w.mu.Lock()
	if !w.stopped {
		w.stopped = true
		close(w.queue)
	}
	w.mu.Unlock()

	select {
	case <-w.done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
