package ports

import (
	"context"
	"time"

	"github.com/copebusiness/portal/internal/core/domain"
)

type SignupInput struct {
	Name     string
	Email    string
	Password string
}

// LoginResult is an established session plus its access token.
type LoginResult struct {
	Token     string
	ExpiresAt time.Time
	Session   domain.Session
}

// SignupResult either needs email confirmation or carries a login.
type SignupResult struct {
	NeedsConfirmation bool
	Login             *LoginResult
}

// SessionService owns caller identity and cached profiles.
type SessionService interface {
	// GetSession always returns a resolved session. The error is informative:
	// on failure the session is unauthenticated.
	GetSession(ctx context.Context, token string) (domain.Session, error)
	Login(ctx context.Context, email, password string) (*LoginResult, error)
	Signup(ctx context.Context, in SignupInput) (*SignupResult, error)
	ConfirmSignup(ctx context.Context, token string) (*LoginResult, error)
	// Logout revokes the token best-effort; local state is always cleared.
	Logout(ctx context.Context, token, userID string)
	UpdateProfile(ctx context.Context, userID string, patch domain.ProfilePatch) (*domain.Profile, error)
	ChangePassword(ctx context.Context, token, password, confirm string) error
	RequestPasswordReset(ctx context.Context, email string) error
	ResetPassword(ctx context.Context, token, password, confirm string) error
	Subscribe(fn func(domain.SessionChange)) (unsubscribe func())
}

// SessionCache lets other services refresh cached session state after they
// change data the session mirrors.
type SessionCache interface {
	MergeBalance(userID string, balance domain.Money)
}

// TaskScheduler runs background tasks. Tasks sharing a key run in the order
// they were scheduled.
type TaskScheduler interface {
	Schedule(key string, task func(ctx context.Context))
}
