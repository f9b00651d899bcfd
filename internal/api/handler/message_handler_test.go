package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/messagely/messaging-system/internal/core/domain"
	"github.com/messagely/messaging-system/internal/core/ports"
)

type stubMessageService struct {
	sendFn     func(ctx context.Context, in ports.SendMessageInput) (*domain.Message, error)
	getFn      func(ctx context.Context, id, caller string) (*ports.MessageDetail, error)
	markReadFn func(ctx context.Context, id, caller string) (*ports.ReadReceipt, error)
}

func (s *stubMessageService) Send(ctx context.Context, in ports.SendMessageInput) (*domain.Message, error) {
	return s.sendFn(ctx, in)
}

func (s *stubMessageService) Get(ctx context.Context, id, caller string) (*ports.MessageDetail, error) {
	return s.getFn(ctx, id, caller)
}

func (s *stubMessageService) MarkRead(ctx context.Context, id, caller string) (*ports.ReadReceipt, error) {
	return s.markReadFn(ctx, id, caller)
}

func authedContext(e *echo.Echo, req *http.Request, identity string) (echo.Context, *httptest.ResponseRecorder) {
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.Set("username", identity)
	return c, rec
}

func TestMessageHandler_Create_Success(t *testing.T) {
	e := newEcho()
	sentAt := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	stub := &stubMessageService{
		sendFn: func(ctx context.Context, in ports.SendMessageInput) (*domain.Message, error) {
			if in.From != "alice" {
				t.Fatalf("sender must come from the token, got %q", in.From)
			}
			if in.IdempotencyKey != "k1" {
				t.Fatalf("idempotency key not forwarded, got %q", in.IdempotencyKey)
			}
			return &domain.Message{
				ID: "m1", FromUsername: in.From, ToUsername: in.To,
				Body: in.Body, Status: domain.StatusSent, SentAt: sentAt,
			}, nil
		},
	}
	handler := NewMessageHandler(stub)

	req := httptest.NewRequest(http.MethodPost, "/messages", strings.NewReader(`{"to_username":"bob","body":"hi"}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	req.Header.Set("Idempotency-Key", "k1")
	c, rec := authedContext(e, req, "alice")

	if err := handler.Create(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	msg, ok := resp["message"].(map[string]any)
	if !ok {
		t.Fatalf("expected message in response")
	}
	if msg["id"] != "m1" || msg["from_username"] != "alice" || msg["to_username"] != "bob" {
		t.Fatalf("unexpected message payload: %+v", msg)
	}
}

func TestMessageHandler_Create_NoIdentity(t *testing.T) {
	e := newEcho()
	stub := &stubMessageService{
		sendFn: func(ctx context.Context, in ports.SendMessageInput) (*domain.Message, error) {
			t.Fatalf("should not be called")
			return nil, nil
		},
	}
	handler := NewMessageHandler(stub)

	req := httptest.NewRequest(http.MethodPost, "/messages", strings.NewReader(`{"to_username":"bob","body":"hi"}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := handler.Create(c); err != nil {
		e.HTTPErrorHandler(err, c)
	}

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func TestMessageHandler_Create_MissingBody(t *testing.T) {
	e := newEcho()
	stub := &stubMessageService{
		sendFn: func(ctx context.Context, in ports.SendMessageInput) (*domain.Message, error) {
			t.Fatalf("should not be called")
			return nil, nil
		},
	}
	handler := NewMessageHandler(stub)

	req := httptest.NewRequest(http.MethodPost, "/messages", strings.NewReader(`{"to_username":"bob"}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	c, rec := authedContext(e, req, "alice")

	_ = handler.Create(c)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestMessageHandler_Create_UnknownRecipient(t *testing.T) {
	e := newEcho()
	stub := &stubMessageService{
		sendFn: func(ctx context.Context, in ports.SendMessageInput) (*domain.Message, error) {
			return nil, domain.ErrUserNotFound
		},
	}
	handler := NewMessageHandler(stub)

	req := httptest.NewRequest(http.MethodPost, "/messages", strings.NewReader(`{"to_username":"ghost","body":"hi"}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	c, rec := authedContext(e, req, "alice")

	_ = handler.Create(c)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}

func TestMessageHandler_Get_Success(t *testing.T) {
	e := newEcho()
	readAt := time.Date(2026, 8, 1, 13, 0, 0, 0, time.UTC)
	stub := &stubMessageService{
		getFn: func(ctx context.Context, id, caller string) (*ports.MessageDetail, error) {
			if id != "m1" || caller != "bob" {
				t.Fatalf("unexpected args: %s %s", id, caller)
			}
			return &ports.MessageDetail{
				ID: "m1", Body: "hi",
				SentAt: readAt.Add(-time.Hour), ReadAt: &readAt,
				FromUser: domain.DisplayUser{Username: "alice", FirstName: "Alice"},
				ToUser:   domain.DisplayUser{Username: "bob", FirstName: "Bob"},
			}, nil
		},
	}
	handler := NewMessageHandler(stub)

	req := httptest.NewRequest(http.MethodGet, "/messages/m1", nil)
	c, rec := authedContext(e, req, "bob")
	c.SetParamNames("id")
	c.SetParamValues("m1")

	if err := handler.Get(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	msg, ok := resp["message"].(map[string]any)
	if !ok {
		t.Fatalf("expected message in response")
	}
	from, _ := msg["from_user"].(map[string]any)
	if from["username"] != "alice" {
		t.Fatalf("sender attributes missing: %+v", msg)
	}
	if msg["read_at"] == nil {
		t.Fatalf("expected read_at in payload")
	}
}

func TestMessageHandler_Get_NotParticipant(t *testing.T) {
	e := newEcho()
	stub := &stubMessageService{
		getFn: func(ctx context.Context, id, caller string) (*ports.MessageDetail, error) {
			return nil, domain.ErrUnauthorized
		},
	}
	handler := NewMessageHandler(stub)

	req := httptest.NewRequest(http.MethodGet, "/messages/m1", nil)
	c, rec := authedContext(e, req, "carol")
	c.SetParamNames("id")
	c.SetParamValues("m1")

	_ = handler.Get(c)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func TestMessageHandler_Get_NotFound(t *testing.T) {
	e := newEcho()
	stub := &stubMessageService{
		getFn: func(ctx context.Context, id, caller string) (*ports.MessageDetail, error) {
			return nil, domain.ErrMessageNotFound
		},
	}
	handler := NewMessageHandler(stub)

	req := httptest.NewRequest(http.MethodGet, "/messages/missing", nil)
	c, rec := authedContext(e, req, "alice")
	c.SetParamNames("id")
	c.SetParamValues("missing")

	_ = handler.Get(c)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}

func TestMessageHandler_MarkRead_Success(t *testing.T) {
	e := newEcho()
	readAt := time.Date(2026, 8, 1, 13, 0, 0, 0, time.UTC)
	stub := &stubMessageService{
		markReadFn: func(ctx context.Context, id, caller string) (*ports.ReadReceipt, error) {
			if id != "m1" || caller != "bob" {
				t.Fatalf("unexpected args: %s %s", id, caller)
			}
			return &ports.ReadReceipt{ID: "m1", ReadAt: readAt}, nil
		},
	}
	handler := NewMessageHandler(stub)

	req := httptest.NewRequest(http.MethodPost, "/messages/m1/read", nil)
	c, rec := authedContext(e, req, "bob")
	c.SetParamNames("id")
	c.SetParamValues("m1")

	if err := handler.MarkRead(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	msg, ok := resp["message"].(map[string]any)
	if !ok || msg["id"] != "m1" || msg["read_at"] == nil {
		t.Fatalf("unexpected receipt payload: %+v", resp)
	}
}

func TestMessageHandler_MarkRead_NotRecipient(t *testing.T) {
	e := newEcho()
	stub := &stubMessageService{
		markReadFn: func(ctx context.Context, id, caller string) (*ports.ReadReceipt, error) {
			return nil, domain.ErrUnauthorized
		},
	}
	handler := NewMessageHandler(stub)

	req := httptest.NewRequest(http.MethodPost, "/messages/m1/read", nil)
	c, rec := authedContext(e, req, "alice")
	c.SetParamNames("id")
	c.SetParamValues("m1")

	_ = handler.MarkRead(c)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}
