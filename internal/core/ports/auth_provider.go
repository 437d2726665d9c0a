package ports

import (
	"context"
	"time"

	"github.com/copebusiness/portal/internal/core/domain"
)

type SignUpInput struct {
	Name     string
	Email    string
	Password string
}

// SignUpResult carries a live session unless email confirmation is pending.
type SignUpResult struct {
	UserID            string
	Session           *domain.AuthSession
	NeedsConfirmation bool
}

// ConfirmResult is returned once a pending signup is confirmed.
type ConfirmResult struct {
	Session *domain.AuthSession
	Name    string
	Email   string
}

// AuthProvider is the authentication backend. Listeners registered with
// OnAuthStateChange are invoked while the provider holds its internal lock,
// so they must not call back into the provider synchronously.
type AuthProvider interface {
	SignUp(ctx context.Context, in SignUpInput) (*SignUpResult, error)
	SignInWithPassword(ctx context.Context, email, password string) (*domain.AuthSession, error)
	GetSession(ctx context.Context, token string) (*domain.AuthSession, error)
	SignOut(ctx context.Context, token string) error
	UpdatePassword(ctx context.Context, token, password string) error
	ConfirmEmail(ctx context.Context, token string) (*ConfirmResult, error)
	RequestPasswordReset(ctx context.Context, email string) error
	ResetPassword(ctx context.Context, token, password string) error
	OnAuthStateChange(fn func(domain.AuthEvent)) (unsubscribe func())
}

// TokenRevoker keeps the IDs of signed-out access tokens until they expire.
type TokenRevoker interface {
	Revoke(ctx context.Context, tokenID string, until time.Time) error
	IsRevoked(ctx context.Context, tokenID string) (bool, error)
}

// TokenPurpose namespaces one-time tokens.
type TokenPurpose string

const (
	PurposeConfirmEmail  TokenPurpose = "confirm"
	PurposePasswordReset TokenPurpose = "reset"
)

// OneTimeTokenStore issues opaque tokens that can be consumed exactly once.
type OneTimeTokenStore interface {
	Issue(ctx context.Context, purpose TokenPurpose, userID string, ttl time.Duration) (string, error)
	Consume(ctx context.Context, purpose TokenPurpose, token string) (string, error)
}

// Mailer delivers confirmation and password reset links.
type Mailer interface {
	SendConfirmation(ctx context.Context, email, token string) error
	SendPasswordReset(ctx context.Context, email, token string) error
}
