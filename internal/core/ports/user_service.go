package ports

import (
	"context"
	"time"

	"github.com/messagely/messaging-system/internal/core/domain"
)

// SentMessage is a history entry for messages the user sent, joined with the
// recipient's display attributes.
type SentMessage struct {
	ID     string
	Body   string
	SentAt time.Time
	ReadAt *time.Time
	ToUser domain.DisplayUser
}

// ReceivedMessage is a history entry for messages addressed to the user,
// joined with the sender's display attributes.
type ReceivedMessage struct {
	ID       string
	Body     string
	SentAt   time.Time
	ReadAt   *time.Time
	FromUser domain.DisplayUser
}

// UserService defines use-case operations over accounts and their message
// history. Authorization (self-only) is enforced at the transport layer.
type UserService interface {
	List(ctx context.Context) ([]domain.UserSummary, error)
	Get(ctx context.Context, username string) (*domain.User, error)
	MessagesFrom(ctx context.Context, username string) ([]SentMessage, error)
	MessagesTo(ctx context.Context, username string) ([]ReceivedMessage, error)
}
