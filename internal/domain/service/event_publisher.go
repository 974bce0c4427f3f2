package service

import (
	"context"
	"time"
)

// Content event types.
const (
	EventUserCreated     = "user.created"
	EventUserUpdated     = "user.updated"
	EventUserDeleted     = "user.deleted"
	EventBlogPostCreated = "blog_post.created"
	EventBlogPostUpdated = "blog_post.updated"
	EventBlogPostDeleted = "blog_post.deleted"
	EventTagCreated      = "tag.created"
	EventTagUpdated      = "tag.updated"
	EventTagDeleted      = "tag.deleted"
)

// ContentEvent records a committed mutation for downstream consumers.
type ContentEvent struct {
	ID         string    `json:"id"`
	Type       string    `json:"type"`
	Subject    string    `json:"subject"` // user name, blog post id or tag name
	Actor      string    `json:"actor,omitempty"`
	RequestID  string    `json:"request_id,omitempty"`
	OccurredAt time.Time `json:"occurred_at"`
}

// EventPublisher delivers content events to a message bus.
type EventPublisher interface {
	// Publish sends event. Delivery is at most once.
	Publish(ctx context.Context, event *ContentEvent) error

	// Close releases any resources held by the publisher.
	Close() error
}
