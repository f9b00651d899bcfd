package service

import (
	"context"
	"errors"
	"testing"

	"github.com/messagely/messaging-system/internal/core/domain"
	"github.com/messagely/messaging-system/internal/core/ports"
)

func TestUserService_List_OrderedSummaries(t *testing.T) {
	users, msgs := newStubUserRepo(), newStubMessageRepo()
	seedUsers(users, "carol", "alice", "bob")
	svc := NewUserService(users, msgs)

	got, err := svc.List(context.Background())
	if err != nil {
		t.Fatalf("List returned error: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("expected 3 users, got %d", len(got))
	}
	for i, want := range []string{"alice", "bob", "carol"} {
		if got[i].Username != want {
			t.Fatalf("expected %s at index %d, got %s", want, i, got[i].Username)
		}
	}
}

func TestUserService_Get(t *testing.T) {
	users, msgs := newStubUserRepo(), newStubMessageRepo()
	seedUsers(users, "alice")
	svc := NewUserService(users, msgs)

	u, err := svc.Get(context.Background(), "alice")
	if err != nil {
		t.Fatalf("Get returned error: %v", err)
	}
	if u.Username != "alice" || u.FirstName != "First-alice" {
		t.Fatalf("unexpected user: %+v", u)
	}

	if _, err := svc.Get(context.Background(), "ghost"); !errors.Is(err, domain.ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}

func TestUserService_MessagesTo_JoinsSender(t *testing.T) {
	users, msgs := newStubUserRepo(), newStubMessageRepo()
	seedUsers(users, "alice", "bob")
	msgSvc := newMessageService(users, msgs, newStubIdemStore())
	svc := NewUserService(users, msgs)

	sent, _ := msgSvc.Send(context.Background(), ports.SendMessageInput{From: "alice", To: "bob", Body: "hi"})

	got, err := svc.MessagesTo(context.Background(), "bob")
	if err != nil {
		t.Fatalf("MessagesTo returned error: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("expected 1 message, got %d", len(got))
	}
	m := got[0]
	if m.ID != sent.ID || m.Body != "hi" {
		t.Fatalf("unexpected message: %+v", m)
	}
	if m.FromUser.Username != "alice" || m.FromUser.FirstName != "First-alice" || m.FromUser.Phone == "" {
		t.Fatalf("sender display attributes not joined: %+v", m.FromUser)
	}
	if m.ReadAt != nil {
		t.Fatalf("unread message must have null read_at")
	}
}

func TestUserService_MessagesFrom_JoinsRecipient(t *testing.T) {
	users, msgs := newStubUserRepo(), newStubMessageRepo()
	seedUsers(users, "alice", "bob")
	msgSvc := newMessageService(users, msgs, newStubIdemStore())
	svc := NewUserService(users, msgs)

	_, _ = msgSvc.Send(context.Background(), ports.SendMessageInput{From: "alice", To: "bob", Body: "one"})
	_, _ = msgSvc.Send(context.Background(), ports.SendMessageInput{From: "alice", To: "bob", Body: "two"})

	got, err := svc.MessagesFrom(context.Background(), "alice")
	if err != nil {
		t.Fatalf("MessagesFrom returned error: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 messages, got %d", len(got))
	}
	for _, m := range got {
		if m.ToUser.Username != "bob" || m.ToUser.LastName != "Last-bob" {
			t.Fatalf("recipient display attributes not joined: %+v", m.ToUser)
		}
	}

	// bob sent nothing.
	none, err := svc.MessagesFrom(context.Background(), "bob")
	if err != nil {
		t.Fatalf("MessagesFrom returned error: %v", err)
	}
	if len(none) != 0 {
		t.Fatalf("expected no messages, got %d", len(none))
	}
}

// Compile-time interface checks keep the services honest against their ports.
var (
	_ ports.AuthService    = (*AuthService)(nil)
	_ ports.UserService    = (*UserService)(nil)
	_ ports.MessageService = (*MessageService)(nil)
)
