package service

import (
	"context"
	"sort"
	"time"

	"github.com/messagely/messaging-system/internal/core/domain"
)

// In-memory doubles shared by the service tests.

type stubUserRepo struct {
	users map[string]*domain.User
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{users: make(map[string]*domain.User)}
}

func cloneUser(u *domain.User) *domain.User {
	if u == nil {
		return nil
	}
	clone := *u
	return &clone
}

func (r *stubUserRepo) Create(_ context.Context, user *domain.User) error {
	if _, exists := r.users[user.Username]; exists {
		return domain.ErrUserExists
	}
	r.users[user.Username] = cloneUser(user)
	return nil
}

func (r *stubUserRepo) FindByUsername(_ context.Context, username string) (*domain.User, error) {
	u, ok := r.users[username]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return cloneUser(u), nil
}

func (r *stubUserRepo) List(_ context.Context) ([]domain.UserSummary, error) {
	names := make([]string, 0, len(r.users))
	for name := range r.users {
		names = append(names, name)
	}
	sort.Strings(names)

	out := make([]domain.UserSummary, 0, len(names))
	for _, name := range names {
		out = append(out, r.users[name].Summary())
	}
	return out, nil
}

func (r *stubUserRepo) TouchLogin(_ context.Context, username string, at time.Time) error {
	u, ok := r.users[username]
	if !ok {
		return domain.ErrUserNotFound
	}
	u.LastLoginAt = at
	return nil
}

type stubMessageRepo struct {
	msgs map[string]*domain.Message
}

func newStubMessageRepo() *stubMessageRepo {
	return &stubMessageRepo{msgs: make(map[string]*domain.Message)}
}

func cloneMessage(m *domain.Message) *domain.Message {
	clone := *m
	if m.ReadAt != nil {
		at := *m.ReadAt
		clone.ReadAt = &at
	}
	return &clone
}

func (r *stubMessageRepo) Create(_ context.Context, m *domain.Message) error {
	r.msgs[m.ID] = cloneMessage(m)
	return nil
}

func (r *stubMessageRepo) FindByID(_ context.Context, id string) (*domain.Message, error) {
	m, ok := r.msgs[id]
	if !ok {
		return nil, domain.ErrMessageNotFound
	}
	return cloneMessage(m), nil
}

func (r *stubMessageRepo) ListFrom(_ context.Context, username string) ([]*domain.Message, error) {
	return r.list(func(m *domain.Message) bool { return m.FromUsername == username }), nil
}

func (r *stubMessageRepo) ListTo(_ context.Context, username string) ([]*domain.Message, error) {
	return r.list(func(m *domain.Message) bool { return m.ToUsername == username }), nil
}

func (r *stubMessageRepo) list(keep func(*domain.Message) bool) []*domain.Message {
	var out []*domain.Message
	for _, m := range r.msgs {
		if keep(m) {
			out = append(out, cloneMessage(m))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].SentAt.Before(out[j].SentAt) })
	return out
}

func (r *stubMessageRepo) MarkRead(_ context.Context, id string, at time.Time) (bool, error) {
	m, ok := r.msgs[id]
	if !ok {
		return false, domain.ErrMessageNotFound
	}
	if m.Status == domain.StatusRead {
		return false, nil
	}
	m.Status = domain.StatusRead
	m.ReadAt = &at
	return true, nil
}

// fakeHasher is a synchronous stand-in for the bcrypt pool; real digests are
// covered by the auth package tests.
type fakeHasher struct{}

func (fakeHasher) Hash(_ context.Context, plaintext string) (string, error) {
	return "digest:" + plaintext, nil
}

func (fakeHasher) Verify(_ context.Context, plaintext, digest string) bool {
	return digest == "digest:"+plaintext
}

type fakeIssuer struct{}

func (fakeIssuer) Issue(username string) (string, error) {
	return "token:" + username, nil
}

type stubIdemStore struct {
	keys map[string]string
}

func newStubIdemStore() *stubIdemStore {
	return &stubIdemStore{keys: make(map[string]string)}
}

func (s *stubIdemStore) Lookup(_ context.Context, key string) (string, error) {
	return s.keys[key], nil
}

func (s *stubIdemStore) Record(_ context.Context, key, messageID string) error {
	s.keys[key] = messageID
	return nil
}
