package service

import "context"

// LoginThrottle limits repeated failed authentication attempts per account name.
type LoginThrottle interface {
	// Allow reports whether another attempt for name may proceed.
	Allow(ctx context.Context, name string) (bool, error)

	// RecordFailure counts a failed attempt for name.
	RecordFailure(ctx context.Context, name string) error

	// Reset clears the failure count for name after a successful attempt.
	Reset(ctx context.Context, name string) error
}
