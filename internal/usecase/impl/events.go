// Package impl contains the resource operations behind the usecase interfaces.
package impl

import (
	"context"
	"log/slog"
	"time"

	deliverycontext "scribe/internal/delivery/context"
	"scribe/internal/domain/entity"
	"scribe/internal/domain/service"

	"github.com/google/uuid"
)

// eventEmitter publishes content events after a mutation has committed.
type eventEmitter struct {
	publisher service.EventPublisher
	now       func() time.Time
}

// emit never fails the caller. A lost event is logged and dropped.
func (e eventEmitter) emit(ctx context.Context, logger *slog.Logger, eventType, subject string, actor *entity.Identity) {
	if e.publisher == nil {
		return
	}

	event := &service.ContentEvent{
		ID:         uuid.NewString(),
		Type:       eventType,
		Subject:    subject,
		RequestID:  deliverycontext.GetRequestIDFromContext(ctx),
		OccurredAt: e.now().UTC(),
	}
	if actor != nil {
		event.Actor = actor.Name
	}

	if err := e.publisher.Publish(ctx, event); err != nil {
		logger.Warn("Failed to publish content event",
			slog.String("type", eventType),
			slog.String("subject", subject),
			slog.Any("error", err))
	}
}
