package ports

import (
	"context"

	"github.com/messagely/messaging-system/internal/core/domain"
)

// RegisterInput carries all data needed to create an account. Every field is
// required.
type RegisterInput struct {
	Username  string
	Password  string
	FirstName string
	LastName  string
	Phone     string
}

// AuthService implements credential issuance: registration and login both end
// with a signed session token.
type AuthService interface {
	Register(ctx context.Context, in RegisterInput) (string, *domain.User, error)
	Login(ctx context.Context, username, password string) (string, *domain.User, error)
}
