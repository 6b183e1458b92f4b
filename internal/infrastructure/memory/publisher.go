package memory

import (
	"context"

	"github.com/craftline/shopfront/internal/application/session"
)

// NoopPublisher drops registration events. Used in dev when RabbitMQ is not
// configured, and in tests.
type NoopPublisher struct{}

func NewNoopPublisher() *NoopPublisher { return &NoopPublisher{} }

func (NoopPublisher) PublishUserRegistered(ctx context.Context, evt session.UserRegisteredEvent) error {
	return nil
}
