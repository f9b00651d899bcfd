package ports

import (
	"context"
	"time"

	"github.com/messagely/messaging-system/internal/core/domain"
)

// UserRepository defines persistence operations for user accounts.
type UserRepository interface {
	// Create inserts a new user. Returns domain.ErrUserExists when the
	// username is already taken; a failed create leaves no side effects.
	Create(ctx context.Context, user *domain.User) error
	FindByUsername(ctx context.Context, username string) (*domain.User, error)
	// List returns all users ordered by username, summary fields only.
	List(ctx context.Context) ([]domain.UserSummary, error)
	// TouchLogin sets last_login_at. Returns domain.ErrUserNotFound when the
	// user does not exist.
	TouchLogin(ctx context.Context, username string, at time.Time) error
}
