package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/copebusiness/portal/internal/core/domain"
	"github.com/copebusiness/portal/internal/core/ports"
)

const (
	defaultTokenTTL   = 24 * time.Hour
	defaultConfirmTTL = 48 * time.Hour
	defaultResetTTL   = time.Hour
)

// AuthConfig tunes token issuance and signup behaviour.
type AuthConfig struct {
	JWTSecret                string
	Issuer                   string
	TokenTTL                 time.Duration
	ConfirmTTL               time.Duration
	ResetTTL                 time.Duration
	RequireEmailConfirmation bool
}

// AuthService is the authentication backend: credentials, access tokens and
// auth state events. State transitions and event delivery happen under mu, so
// listeners see events in order and must not call back into the service.
type AuthService struct {
	creds   ports.CredentialRepository
	revoker ports.TokenRevoker
	tokens  ports.OneTimeTokenStore
	mailer  ports.Mailer
	cfg     AuthConfig
	log     zerolog.Logger
	now     func() time.Time

	mu        sync.RWMutex
	listeners map[int]func(domain.AuthEvent)
	nextID    int
}

var _ ports.AuthProvider = (*AuthService)(nil)

func NewAuthService(
	creds ports.CredentialRepository,
	revoker ports.TokenRevoker,
	tokens ports.OneTimeTokenStore,
	mailer ports.Mailer,
	cfg AuthConfig,
	log zerolog.Logger,
) *AuthService {
	if cfg.TokenTTL <= 0 {
		cfg.TokenTTL = defaultTokenTTL
	}
	if cfg.ConfirmTTL <= 0 {
		cfg.ConfirmTTL = defaultConfirmTTL
	}
	if cfg.ResetTTL <= 0 {
		cfg.ResetTTL = defaultResetTTL
	}
	return &AuthService{
		creds:     creds,
		revoker:   revoker,
		tokens:    tokens,
		mailer:    mailer,
		cfg:       cfg,
		log:       log,
		now:       func() time.Time { return time.Now().UTC() },
		listeners: make(map[int]func(domain.AuthEvent)),
	}
}

type accessClaims struct {
	Email string `json:"email"`
	jwt.RegisteredClaims
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func (s *AuthService) SignUp(ctx context.Context, in ports.SignUpInput) (*ports.SignUpResult, error) {
	email := normalizeEmail(in.Email)
	if email == "" {
		return nil, domain.ErrInvalidCredentials
	}
	if len(in.Password) < domain.MinPasswordLength {
		return nil, domain.ErrPasswordTooShort
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("sign up: hash password: %w", err)
	}

	now := s.now()
	cred := &domain.Credential{
		ID:           uuid.NewString(),
		Email:        email,
		PasswordHash: string(hash),
		Name:         strings.TrimSpace(in.Name),
		Confirmed:    !s.cfg.RequireEmailConfirmation,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.creds.Create(ctx, cred); err != nil {
		return nil, fmt.Errorf("sign up: %w", err)
	}

	if !cred.Confirmed {
		token, err := s.tokens.Issue(ctx, ports.PurposeConfirmEmail, cred.ID, s.cfg.ConfirmTTL)
		if err != nil {
			return nil, fmt.Errorf("sign up: issue confirmation: %w", err)
		}
		if err := s.mailer.SendConfirmation(ctx, email, token); err != nil {
			s.log.Warn().Err(err).Str("user_id", cred.ID).Msg("confirmation mail not sent")
		}
		return &ports.SignUpResult{UserID: cred.ID, NeedsConfirmation: true}, nil
	}

	sess, err := s.signIn(cred)
	if err != nil {
		return nil, fmt.Errorf("sign up: %w", err)
	}
	return &ports.SignUpResult{UserID: cred.ID, Session: sess}, nil
}

func (s *AuthService) SignInWithPassword(ctx context.Context, email, password string) (*domain.AuthSession, error) {
	email = normalizeEmail(email)
	if email == "" || password == "" {
		return nil, domain.ErrInvalidCredentials
	}

	cred, err := s.creds.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrCredentialNotFound) {
			return nil, domain.ErrInvalidCredentials
		}
		return nil, fmt.Errorf("sign in: %w", err)
	}
	if bcrypt.CompareHashAndPassword([]byte(cred.PasswordHash), []byte(password)) != nil {
		return nil, domain.ErrInvalidCredentials
	}
	if !cred.Confirmed {
		return nil, domain.ErrEmailNotConfirmed
	}
	return s.signIn(cred)
}

// signIn issues a token and emits SIGNED_IN.
func (s *AuthService) signIn(cred *domain.Credential) (*domain.AuthSession, error) {
	sess, err := s.issueToken(cred)
	if err != nil {
		return nil, err
	}
	s.mu.Lock()
	s.emit(domain.EventSignedIn, cred.ID)
	s.mu.Unlock()
	return sess, nil
}

// GetSession validates a token and checks it has not been signed out.
func (s *AuthService) GetSession(ctx context.Context, token string) (*domain.AuthSession, error) {
	sess, err := s.parseToken(token)
	if err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	revoked, err := s.revoker.IsRevoked(ctx, sess.TokenID)
	if err != nil {
		return nil, fmt.Errorf("get session: %w", err)
	}
	if revoked {
		return nil, domain.ErrUnauthenticated
	}
	return sess, nil
}

// SignOut revokes the token until it would have expired anyway.
func (s *AuthService) SignOut(ctx context.Context, token string) error {
	sess, err := s.parseToken(token)
	if err != nil {
		// An expired or malformed token is already unusable.
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.revoker.Revoke(ctx, sess.TokenID, sess.ExpiresAt); err != nil {
		return fmt.Errorf("sign out: %w", err)
	}
	s.emit(domain.EventSignedOut, sess.UserID)
	return nil
}

func (s *AuthService) UpdatePassword(ctx context.Context, token, password string) error {
	sess, err := s.GetSession(ctx, token)
	if err != nil {
		return err
	}
	if err := s.setPassword(ctx, sess.UserID, password); err != nil {
		return fmt.Errorf("update password: %w", err)
	}

	s.mu.Lock()
	s.emit(domain.EventUserUpdated, sess.UserID)
	s.mu.Unlock()
	return nil
}

func (s *AuthService) ConfirmEmail(ctx context.Context, token string) (*ports.ConfirmResult, error) {
	userID, err := s.tokens.Consume(ctx, ports.PurposeConfirmEmail, token)
	if err != nil {
		return nil, err
	}
	cred, err := s.creds.FindByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("confirm email: %w", err)
	}
	if err := s.creds.Confirm(ctx, cred.ID, s.now()); err != nil {
		return nil, fmt.Errorf("confirm email: %w", err)
	}
	cred.Confirmed = true

	sess, err := s.signIn(cred)
	if err != nil {
		return nil, fmt.Errorf("confirm email: %w", err)
	}
	return &ports.ConfirmResult{Session: sess, Name: cred.Name, Email: cred.Email}, nil
}

// RequestPasswordReset mails a reset token. Unknown emails succeed silently.
func (s *AuthService) RequestPasswordReset(ctx context.Context, email string) error {
	cred, err := s.creds.FindByEmail(ctx, normalizeEmail(email))
	if err != nil {
		if errors.Is(err, domain.ErrCredentialNotFound) {
			s.log.Debug().Msg("password reset requested for unknown email")
			return nil
		}
		return fmt.Errorf("request password reset: %w", err)
	}

	token, err := s.tokens.Issue(ctx, ports.PurposePasswordReset, cred.ID, s.cfg.ResetTTL)
	if err != nil {
		return fmt.Errorf("request password reset: %w", err)
	}
	if err := s.mailer.SendPasswordReset(ctx, cred.Email, token); err != nil {
		return fmt.Errorf("request password reset: %w", err)
	}
	return nil
}

func (s *AuthService) ResetPassword(ctx context.Context, token, password string) error {
	if len(password) < domain.MinPasswordLength {
		return domain.ErrPasswordTooShort
	}
	userID, err := s.tokens.Consume(ctx, ports.PurposePasswordReset, token)
	if err != nil {
		return err
	}
	if err := s.setPassword(ctx, userID, password); err != nil {
		return fmt.Errorf("reset password: %w", err)
	}

	s.mu.Lock()
	s.emit(domain.EventPasswordRecovery, userID)
	s.mu.Unlock()
	return nil
}

// OnAuthStateChange registers fn for auth events. The returned func removes
// it; do not call it from within a listener.
func (s *AuthService) OnAuthStateChange(fn func(domain.AuthEvent)) func() {
	s.mu.Lock()
	id := s.nextID
	s.nextID++
	s.listeners[id] = fn
	s.mu.Unlock()

	return func() {
		s.mu.Lock()
		delete(s.listeners, id)
		s.mu.Unlock()
	}
}

// emit must be called with mu held.
func (s *AuthService) emit(t domain.AuthEventType, userID string) {
	ev := domain.AuthEvent{Type: t, UserID: userID, At: s.now()}
	for _, fn := range s.listeners {
		fn(ev)
	}
}

func (s *AuthService) setPassword(ctx context.Context, userID, password string) error {
	if len(password) < domain.MinPasswordLength {
		return domain.ErrPasswordTooShort
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	return s.creds.SetPassword(ctx, userID, string(hash), s.now())
}

func (s *AuthService) issueToken(cred *domain.Credential) (*domain.AuthSession, error) {
	now := s.now()
	exp := now.Add(s.cfg.TokenTTL)
	claims := accessClaims{
		Email: cred.Email,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Issuer:    s.cfg.Issuer,
			Subject:   cred.ID,
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(exp),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(s.cfg.JWTSecret))
	if err != nil {
		return nil, fmt.Errorf("sign token: %w", err)
	}
	return &domain.AuthSession{
		AccessToken: signed,
		TokenID:     claims.ID,
		UserID:      cred.ID,
		Email:       cred.Email,
		ExpiresAt:   exp,
	}, nil
}

func (s *AuthService) parseToken(token string) (*domain.AuthSession, error) {
	if token == "" {
		return nil, domain.ErrUnauthenticated
	}

	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(s.now),
		jwt.WithExpirationRequired(),
	}
	if s.cfg.Issuer != "" {
		opts = append(opts, jwt.WithIssuer(s.cfg.Issuer))
	}

	var claims accessClaims
	tkn, err := jwt.ParseWithClaims(token, &claims, func(*jwt.Token) (any, error) {
		return []byte(s.cfg.JWTSecret), nil
	}, opts...)
	if err != nil || !tkn.Valid || claims.Subject == "" || claims.ID == "" {
		return nil, domain.ErrUnauthenticated
	}

	return &domain.AuthSession{
		AccessToken: token,
		TokenID:     claims.ID,
		UserID:      claims.Subject,
		Email:       claims.Email,
		ExpiresAt:   claims.ExpiresAt.Time,
	}, nil
}
