package service

import (
	"context"

	"github.com/messagely/messaging-system/internal/core/domain"
	"github.com/messagely/messaging-system/internal/core/ports"
)

// UserService implements account listing, profile retrieval, and per-user
// message history with counterpart display attributes joined in.
type UserService struct {
	users    ports.UserRepository
	messages ports.MessageRepository
}

func NewUserService(users ports.UserRepository, messages ports.MessageRepository) *UserService {
	return &UserService{users: users, messages: messages}
}

func (s *UserService) List(ctx context.Context) ([]domain.UserSummary, error) {
	return s.users.List(ctx)
}

func (s *UserService) Get(ctx context.Context, username string) (*domain.User, error) {
	return s.users.FindByUsername(ctx, username)
}

// MessagesFrom returns the messages username sent, each joined with the
// recipient's display attributes.
func (s *UserService) MessagesFrom(ctx context.Context, username string) ([]ports.SentMessage, error) {
	msgs, err := s.messages.ListFrom(ctx, username)
	if err != nil {
		return nil, err
	}

	seen := make(map[string]domain.DisplayUser)
	out := make([]ports.SentMessage, 0, len(msgs))
	for _, m := range msgs {
		to, err := s.displayUser(ctx, m.ToUsername, seen)
		if err != nil {
			return nil, err
		}
		out = append(out, ports.SentMessage{
			ID:     m.ID,
			Body:   m.Body,
			SentAt: m.SentAt,
			ReadAt: m.ReadAt,
			ToUser: to,
		})
	}
	return out, nil
}

// MessagesTo returns the messages addressed to username, each joined with the
// sender's display attributes.
func (s *UserService) MessagesTo(ctx context.Context, username string) ([]ports.ReceivedMessage, error) {
	msgs, err := s.messages.ListTo(ctx, username)
	if err != nil {
		return nil, err
	}

	seen := make(map[string]domain.DisplayUser)
	out := make([]ports.ReceivedMessage, 0, len(msgs))
	for _, m := range msgs {
		from, err := s.displayUser(ctx, m.FromUsername, seen)
		if err != nil {
			return nil, err
		}
		out = append(out, ports.ReceivedMessage{
			ID:       m.ID,
			Body:     m.Body,
			SentAt:   m.SentAt,
			ReadAt:   m.ReadAt,
			FromUser: from,
		})
	}
	return out, nil
}

// displayUser fetches counterpart attributes, memoized for the duration of a
// single call only. Nothing is cached across requests.
func (s *UserService) displayUser(ctx context.Context, username string, seen map[string]domain.DisplayUser) (domain.DisplayUser, error) {
	if d, ok := seen[username]; ok {
		return d, nil
	}
	u, err := s.users.FindByUsername(ctx, username)
	if err != nil {
		return domain.DisplayUser{}, err
	}
	d := u.Display()
	seen[username] = d
	return d, nil
}
