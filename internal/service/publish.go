package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/goldendrops/storefront/internal/events"
)

// publish emits event when a dispatcher is configured. Delivery failures never
// fail the operation that produced the event.
func publish(ctx context.Context, d events.Dispatcher, logger *zap.Logger, event events.Event) {
	if d == nil {
		return
	}
	if err := d.Publish(ctx, event); err != nil {
		logger.Warn("publish event", zap.String("event_type", string(event.Type)), zap.Error(err))
	}
}
