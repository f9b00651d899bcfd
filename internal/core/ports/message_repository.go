package ports

import (
	"context"
	"time"

	"github.com/messagely/messaging-system/internal/core/domain"
)

// MessageRepository defines persistence operations for messages.
type MessageRepository interface {
	Create(ctx context.Context, m *domain.Message) error
	FindByID(ctx context.Context, id string) (*domain.Message, error)
	// ListFrom returns all messages sent by username, oldest first.
	ListFrom(ctx context.Context, username string) ([]*domain.Message, error)
	// ListTo returns all messages addressed to username, oldest first.
	ListTo(ctx context.Context, username string) ([]*domain.Message, error)
	// MarkRead moves a message from sent to read as a single conditional
	// update. It reports false without error when the message was already
	// read, so concurrent attempts converge on the same terminal state.
	// Returns domain.ErrMessageNotFound when no such message exists.
	MarkRead(ctx context.Context, id string, at time.Time) (bool, error)
}
