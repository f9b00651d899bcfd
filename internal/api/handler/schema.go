package handler

import (
	"time"

	"github.com/messagely/messaging-system/internal/core/domain"
)

// errorResponse is the standard error envelope returned on all 4xx/5xx responses.
type errorResponse struct {
	Error string `json:"error"`
}

// --- Request types ---

// registerRequest caps the password at 72 bytes, the most bcrypt will hash.
type registerRequest struct {
	Username  string `json:"username"   validate:"required"`
	Password  string `json:"password"   validate:"required,min=5,max=72"`
	FirstName string `json:"first_name" validate:"required"`
	LastName  string `json:"last_name"  validate:"required"`
	Phone     string `json:"phone"      validate:"required"`
}

type loginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type sendMessageRequest struct {
	ToUsername string `json:"to_username" validate:"required"`
	Body       string `json:"body"        validate:"required"`
}

// --- Response types ---
// Owned by the transport layer so the JSON contract is not coupled to
// internal service changes.

type tokenResponse struct {
	Token string `json:"token"`
}

type usersResponse struct {
	Users []domain.UserSummary `json:"users"`
}

type userResponse struct {
	User *domain.User `json:"user"`
}

type receivedMessageItem struct {
	ID       string             `json:"id"`
	Body     string             `json:"body"`
	SentAt   time.Time          `json:"sent_at"`
	ReadAt   *time.Time         `json:"read_at"`
	FromUser domain.DisplayUser `json:"from_user"`
}

type sentMessageItem struct {
	ID     string             `json:"id"`
	Body   string             `json:"body"`
	SentAt time.Time          `json:"sent_at"`
	ReadAt *time.Time         `json:"read_at"`
	ToUser domain.DisplayUser `json:"to_user"`
}

type receivedMessagesResponse struct {
	Messages []receivedMessageItem `json:"messages"`
}

type sentMessagesResponse struct {
	Messages []sentMessageItem `json:"messages"`
}

type messageDetail struct {
	ID       string             `json:"id"`
	Body     string             `json:"body"`
	SentAt   time.Time          `json:"sent_at"`
	ReadAt   *time.Time         `json:"read_at"`
	FromUser domain.DisplayUser `json:"from_user"`
	ToUser   domain.DisplayUser `json:"to_user"`
}

type messageDetailResponse struct {
	Message messageDetail `json:"message"`
}

type createdMessage struct {
	ID           string    `json:"id"`
	FromUsername string    `json:"from_username"`
	ToUsername   string    `json:"to_username"`
	Body         string    `json:"body"`
	SentAt       time.Time `json:"sent_at"`
}

type createdMessageResponse struct {
	Message createdMessage `json:"message"`
}

type readReceipt struct {
	ID     string    `json:"id"`
	ReadAt time.Time `json:"read_at"`
}

type readReceiptResponse struct {
	Message readReceipt `json:"message"`
}
