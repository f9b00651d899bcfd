package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/messagely/messaging-system/internal/core/domain"
	"github.com/messagely/messaging-system/internal/core/ports"
)

// IdempotencyStore abstracts the replay-suppression store (Redis). Lookup
// returns the message id recorded for a key, or "" when the key is unseen.
type IdempotencyStore interface {
	Lookup(ctx context.Context, key string) (string, error)
	Record(ctx context.Context, key, messageID string) error
}

// MessageService implements sending, retrieval, and the read transition.
// Authorization is resolved against a fresh read of the message on every call.
type MessageService struct {
	messages ports.MessageRepository
	users    ports.UserRepository
	idem     IdempotencyStore
	log      zerolog.Logger
}

func NewMessageService(messages ports.MessageRepository, users ports.UserRepository, idem IdempotencyStore, log zerolog.Logger) *MessageService {
	return &MessageService{messages: messages, users: users, idem: idem, log: log}
}

// Send creates a message from the authenticated caller to another user. Both
// usernames must resolve; self-messaging is allowed. When an idempotency key
// was seen before, the originally created message is returned unchanged.
func (s *MessageService) Send(ctx context.Context, in ports.SendMessageInput) (*domain.Message, error) {
	if strings.TrimSpace(in.Body) == "" {
		return nil, domain.ErrEmptyBody
	}

	if _, err := s.users.FindByUsername(ctx, in.From); err != nil {
		return nil, err
	}
	if _, err := s.users.FindByUsername(ctx, in.To); err != nil {
		return nil, err
	}

	if in.IdempotencyKey != "" {
		id, err := s.idem.Lookup(ctx, in.IdempotencyKey)
		if err != nil {
			s.log.Warn().Err(err).Str("key", in.IdempotencyKey).Msg("idempotency lookup failed, sending anyway")
		} else if id != "" {
			existing, err := s.messages.FindByID(ctx, id)
			if err == nil {
				s.log.Info().Str("key", in.IdempotencyKey).Str("message_id", id).Msg("idempotent replay")
				return existing, nil
			}
		}
	}

	msg := &domain.Message{
		ID:           uuid.NewString(),
		FromUsername: in.From,
		ToUsername:   in.To,
		Body:         in.Body,
		Status:       domain.StatusSent,
		SentAt:       time.Now().UTC(),
	}

	if err := s.messages.Create(ctx, msg); err != nil {
		return nil, err
	}

	if in.IdempotencyKey != "" {
		if err := s.idem.Record(ctx, in.IdempotencyKey, msg.ID); err != nil {
			s.log.Warn().Err(err).Str("key", in.IdempotencyKey).Msg("failed to record idempotency key")
		}
	}

	s.log.Info().Str("message_id", msg.ID).Str("from", in.From).Str("to", in.To).Msg("message sent")
	return msg, nil
}

// Get returns the full message detail. Participant-only: the caller must be
// the sender or the recipient.
func (s *MessageService) Get(ctx context.Context, id, caller string) (*ports.MessageDetail, error) {
	m, err := s.messages.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !m.HasParticipant(caller) {
		return nil, domain.ErrUnauthorized
	}

	from, err := s.users.FindByUsername(ctx, m.FromUsername)
	if err != nil {
		return nil, err
	}
	to, err := s.users.FindByUsername(ctx, m.ToUsername)
	if err != nil {
		return nil, err
	}

	return &ports.MessageDetail{
		ID:       m.ID,
		Body:     m.Body,
		SentAt:   m.SentAt,
		ReadAt:   m.ReadAt,
		FromUser: from.Display(),
		ToUser:   to.Display(),
	}, nil
}

// MarkRead transitions a message from sent to read. Recipient-only: the sender may
// view but never mark their own outgoing message. Marking an already-read
// message is an idempotent no-op returning the existing read timestamp.
func (s *MessageService) MarkRead(ctx context.Context, id, caller string) (*ports.ReadReceipt, error) {
	m, err := s.messages.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !m.IsRecipient(caller) {
		return nil, domain.ErrUnauthorized
	}

	if !m.Status.CanTransitionTo(domain.StatusRead) {
		if m.ReadAt == nil {
			return nil, fmt.Errorf("message %s is read but has no read timestamp", id)
		}
		s.log.Debug().Str("message_id", id).Msg("mark-read on already-read message")
		return &ports.ReadReceipt{ID: m.ID, ReadAt: *m.ReadAt}, nil
	}

	now := time.Now().UTC()
	updated, err := s.messages.MarkRead(ctx, id, now)
	if err != nil {
		return nil, err
	}
	if !updated {
		// Lost a concurrent race: re-read the terminal state.
		m, err = s.messages.FindByID(ctx, id)
		if err != nil {
			return nil, err
		}
		if m.ReadAt == nil {
			return nil, fmt.Errorf("message %s is read but has no read timestamp", id)
		}
		return &ports.ReadReceipt{ID: m.ID, ReadAt: *m.ReadAt}, nil
	}

	s.log.Info().Str("message_id", id).Str("reader", caller).Msg("message marked read")
	return &ports.ReadReceipt{ID: id, ReadAt: now}, nil
}
