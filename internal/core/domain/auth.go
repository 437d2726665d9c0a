package domain

import (
	"errors"
	"time"
)

// MinPasswordLength is the shortest password the auth backend accepts.
const MinPasswordLength = 6

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrEmailTaken         = errors.New("email already registered")
	ErrCredentialNotFound = errors.New("credential not found")
	ErrEmailNotConfirmed  = errors.New("email not confirmed")
	ErrUnauthenticated    = errors.New("authentication required")
	ErrForbidden          = errors.New("access forbidden")
	ErrInvalidToken       = errors.New("token is invalid or expired")
	ErrPasswordMismatch   = errors.New("passwords do not match")
	ErrPasswordTooShort   = errors.New("password must be at least 6 characters")
)

// Credential is the identity record held by the auth backend. It shares its
// ID with the application Profile.
type Credential struct {
	ID           string    `bson:"_id"`
	Email        string    `bson:"email"`
	PasswordHash string    `bson:"password_hash"`
	Name         string    `bson:"name"`
	Confirmed    bool      `bson:"confirmed"`
	CreatedAt    time.Time `bson:"created_at"`
	UpdatedAt    time.Time `bson:"updated_at"`
}

// AuthSession is a validated access token.
type AuthSession struct {
	AccessToken string
	TokenID     string
	UserID      string
	Email       string
	ExpiresAt   time.Time
}

// AuthEventType mirrors the events a hosted auth backend emits.
type AuthEventType string

const (
	EventSignedIn         AuthEventType = "SIGNED_IN"
	EventSignedOut        AuthEventType = "SIGNED_OUT"
	EventUserUpdated      AuthEventType = "USER_UPDATED"
	EventPasswordRecovery AuthEventType = "PASSWORD_RECOVERY"
)

type AuthEvent struct {
	Type   AuthEventType
	UserID string
	At     time.Time
}

// ValidatePasswordChange checks a new password and its confirmation.
func ValidatePasswordChange(password, confirm string) error {
	if password != confirm {
		return ErrPasswordMismatch
	}
	if len(password) < MinPasswordLength {
		return ErrPasswordTooShort
	}
	return nil
}
