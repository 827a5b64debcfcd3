package messaging

import (
	"context"

	domainerrors "user-hub.backend/internal/domain/errors"
)

// Publisher is the outbound notification channel. Publish blocks until
// the broker acknowledges delivery or fails; there is no local retry.
type Publisher interface {
	Publish(ctx context.Context, topic string, data []byte) (string, error)
	Close() error
}

// DisabledPublisher stands in when the real publisher could not be
// constructed at startup. The process keeps serving; every publish
// attempt fails with the construction error.
type DisabledPublisher struct {
	Reason error
}

// Publish always fails with the recorded construction error
func (d *DisabledPublisher) Publish(_ context.Context, _ string, _ []byte) (string, error) {
	return "", domainerrors.NewError("notification channel unavailable", d.Reason)
}

// Close is a no-op
func (d *DisabledPublisher) Close() error { return nil }
