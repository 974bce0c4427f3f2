package pubsub

import "scribe/internal/domain/service"

// eventAttributes are the message attributes every transport attaches for filtering and tracing.
func eventAttributes(event *service.ContentEvent) map[string]string {
	attributes := map[string]string{
		"event_id":   event.ID,
		"event_type": event.Type,
		"subject":    event.Subject,
	}
	if event.Actor != "" {
		attributes["actor"] = event.Actor
	}
	if event.RequestID != "" {
		attributes["request_id"] = event.RequestID
	}

	return attributes
}
