package ports

import (
	"context"
	"time"

	"github.com/messagely/messaging-system/internal/core/domain"
)

// SendMessageInput carries all data needed to post a message. From is the
// authenticated caller, never client-supplied. IdempotencyKey is optional;
// when present, a replayed key returns the originally created message.
type SendMessageInput struct {
	From           string
	To             string
	Body           string
	IdempotencyKey string
}

// MessageDetail is the full message view including both participants'
// display attributes.
type MessageDetail struct {
	ID       string
	Body     string
	SentAt   time.Time
	ReadAt   *time.Time
	FromUser domain.DisplayUser
	ToUser   domain.DisplayUser
}

// ReadReceipt is returned after a mark-read action.
type ReadReceipt struct {
	ID     string
	ReadAt time.Time
}

// MessageService defines message use cases. Get and MarkRead resolve the
// caller's authorization against a fresh read of the message: Get is
// participant-only, MarkRead is recipient-only.
type MessageService interface {
	Send(ctx context.Context, in SendMessageInput) (*domain.Message, error)
	Get(ctx context.Context, id, caller string) (*MessageDetail, error)
	MarkRead(ctx context.Context, id, caller string) (*ReadReceipt, error)
}
