package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/singleflight"

	"github.com/copebusiness/portal/internal/core/domain"
	"github.com/copebusiness/portal/internal/core/ports"
)

const (
	defaultProfileTTL   = 5 * time.Minute
	profileFetchTimeout = 10 * time.Second
)

// sessionEntry is the cached state of one user. generation is bumped on every
// sign-out; a profile fetch started under an older generation is discarded.
type sessionEntry struct {
	profile    *domain.Profile
	loadedAt   time.Time
	generation uint64
}

// SessionManager resolves callers to sessions and keeps a profile cache in
// step with auth events. It is the only writer of the cache.
type SessionManager struct {
	auth     ports.AuthProvider
	profiles ports.ProfileRepository
	tasks    ports.TaskScheduler
	log      zerolog.Logger
	ttl      time.Duration
	now      func() time.Time

	mu      sync.RWMutex
	entries map[string]*sessionEntry
	fetches singleflight.Group

	subMu   sync.Mutex
	subs    map[int]func(domain.SessionChange)
	nextSub int

	stopListening func()
}

var (
	_ ports.SessionService = (*SessionManager)(nil)
	_ ports.SessionCache   = (*SessionManager)(nil)
)

// NewSessionManager subscribes to auth events right away. Call Close to stop.
func NewSessionManager(
	auth ports.AuthProvider,
	profiles ports.ProfileRepository,
	tasks ports.TaskScheduler,
	profileTTL time.Duration,
	log zerolog.Logger,
) *SessionManager {
	if profileTTL <= 0 {
		profileTTL = defaultProfileTTL
	}
	m := &SessionManager{
		auth:     auth,
		profiles: profiles,
		tasks:    tasks,
		log:      log,
		ttl:      profileTTL,
		now:      func() time.Time { return time.Now().UTC() },
		entries:  make(map[string]*sessionEntry),
		subs:     make(map[int]func(domain.SessionChange)),
	}
	m.stopListening = auth.OnAuthStateChange(m.OnAuthStateChanged)
	return m
}

func (m *SessionManager) Close() {
	if m.stopListening != nil {
		m.stopListening()
	}
}

// OnAuthStateChanged runs inside the auth provider's lock. It only touches
// memory; profile fetches are handed to the task scheduler.
func (m *SessionManager) OnAuthStateChanged(ev domain.AuthEvent) {
	switch ev.Type {
	case domain.EventSignedOut:
		m.clear(ev.UserID)
	case domain.EventSignedIn:
		userID := ev.UserID
		gen := m.generation(userID)
		m.tasks.Schedule(userID, func(ctx context.Context) {
			if _, err := m.loadProfile(ctx, userID, gen); err != nil {
				m.log.Debug().Err(err).Str("user_id", userID).Msg("background profile fetch skipped")
			}
		})
	default:
		m.log.Debug().Str("event", string(ev.Type)).Str("user_id", ev.UserID).Msg("auth event ignored")
	}
}

// GetSession validates the token, then resolves the profile.
func (m *SessionManager) GetSession(ctx context.Context, token string) (domain.Session, error) {
	authSess, err := m.auth.GetSession(ctx, token)
	if err != nil {
		return domain.Session{}, err
	}
	if p, ok := m.cached(authSess.UserID); ok {
		return domain.AuthenticatedSession(p), nil
	}
	p, err := m.loadProfile(ctx, authSess.UserID, m.generation(authSess.UserID))
	if err != nil {
		return domain.Session{}, err
	}
	return domain.AuthenticatedSession(p), nil
}

// Login signs in and loads the profile. A user without a profile is signed
// back out.
func (m *SessionManager) Login(ctx context.Context, email, password string) (*ports.LoginResult, error) {
	authSess, err := m.auth.SignInWithPassword(ctx, email, password)
	if err != nil {
		return nil, err
	}

	p, err := m.loadProfile(ctx, authSess.UserID, m.generation(authSess.UserID))
	if err != nil {
		if serr := m.auth.SignOut(ctx, authSess.AccessToken); serr != nil {
			m.log.Warn().Err(serr).Str("user_id", authSess.UserID).Msg("sign out after failed profile fetch")
		}
		return nil, fmt.Errorf("login: %w", err)
	}

	m.log.Info().Str("user_id", p.ID).Str("role", string(p.Role)).Msg("user logged in")
	return &ports.LoginResult{
		Token:     authSess.AccessToken,
		ExpiresAt: authSess.ExpiresAt,
		Session:   domain.AuthenticatedSession(p),
	}, nil
}

// Signup registers a client. When confirmation is required no session is
// established and no profile is created yet.
func (m *SessionManager) Signup(ctx context.Context, in ports.SignupInput) (*ports.SignupResult, error) {
	res, err := m.auth.SignUp(ctx, ports.SignUpInput{Name: in.Name, Email: in.Email, Password: in.Password})
	if err != nil {
		return nil, err
	}
	if res.NeedsConfirmation {
		m.log.Info().Str("user_id", res.UserID).Msg("signup pending email confirmation")
		return &ports.SignupResult{NeedsConfirmation: true}, nil
	}

	login, err := m.establish(ctx, res.Session, in.Name, normalizeEmail(in.Email))
	if err != nil {
		return nil, fmt.Errorf("signup: %w", err)
	}
	return &ports.SignupResult{Login: login}, nil
}

// ConfirmSignup completes a signup that was waiting on email confirmation.
func (m *SessionManager) ConfirmSignup(ctx context.Context, token string) (*ports.LoginResult, error) {
	res, err := m.auth.ConfirmEmail(ctx, token)
	if err != nil {
		return nil, err
	}
	login, err := m.establish(ctx, res.Session, res.Name, res.Email)
	if err != nil {
		return nil, fmt.Errorf("confirm signup: %w", err)
	}
	return login, nil
}

// establish creates the client profile for a fresh identity and installs it.
// If the profile cannot be stored the session is signed out.
func (m *SessionManager) establish(ctx context.Context, sess *domain.AuthSession, name, email string) (*ports.LoginResult, error) {
	gen := m.generation(sess.UserID)

	p := &domain.Profile{
		ID:        sess.UserID,
		Name:      name,
		Email:     email,
		Role:      domain.RoleClient,
		CreatedAt: m.now(),
	}
	err := m.profiles.Create(ctx, p)
	if errors.Is(err, domain.ErrProfileExists) {
		p, err = m.profiles.FindByID(ctx, sess.UserID)
	}
	if err != nil {
		if serr := m.auth.SignOut(ctx, sess.AccessToken); serr != nil {
			m.log.Warn().Err(serr).Str("user_id", sess.UserID).Msg("sign out after failed profile creation")
		}
		return nil, err
	}

	if !m.install(sess.UserID, gen, p) {
		return nil, domain.ErrUnauthenticated
	}
	m.log.Info().Str("user_id", p.ID).Msg("client profile created")
	return &ports.LoginResult{
		Token:     sess.AccessToken,
		ExpiresAt: sess.ExpiresAt,
		Session:   domain.AuthenticatedSession(clone(p)),
	}, nil
}

func (m *SessionManager) Logout(ctx context.Context, token, userID string) {
	if err := m.auth.SignOut(ctx, token); err != nil {
		m.log.Warn().Err(err).Str("user_id", userID).Msg("token revoke failed, clearing local session")
	}
	m.clear(userID)
}

// UpdateProfile persists the patch first, then merges the stored profile into
// the cache.
func (m *SessionManager) UpdateProfile(ctx context.Context, userID string, patch domain.ProfilePatch) (*domain.Profile, error) {
	if patch.Empty() {
		return m.profiles.FindByID(ctx, userID)
	}
	p, err := m.profiles.Update(ctx, userID, patch)
	if err != nil {
		return nil, fmt.Errorf("update profile: %w", err)
	}

	m.mu.Lock()
	if e := m.entries[userID]; e != nil && e.profile != nil {
		e.profile = clone(p)
		e.loadedAt = m.now()
	}
	m.mu.Unlock()

	m.publish(domain.SessionChange{Kind: domain.SessionProfileUpdated, UserID: userID, Profile: clone(p)})
	return p, nil
}

// MergeBalance reflects a wallet change in the cached profile, if any.
func (m *SessionManager) MergeBalance(userID string, balance domain.Money) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if e := m.entries[userID]; e != nil && e.profile != nil {
		e.profile.WalletBalance = balance
	}
}

func (m *SessionManager) ChangePassword(ctx context.Context, token, password, confirm string) error {
	if err := domain.ValidatePasswordChange(password, confirm); err != nil {
		return err
	}
	return m.auth.UpdatePassword(ctx, token, password)
}

func (m *SessionManager) RequestPasswordReset(ctx context.Context, email string) error {
	return m.auth.RequestPasswordReset(ctx, email)
}

func (m *SessionManager) ResetPassword(ctx context.Context, token, password, confirm string) error {
	if err := domain.ValidatePasswordChange(password, confirm); err != nil {
		return err
	}
	return m.auth.ResetPassword(ctx, token, password)
}

// Subscribe registers fn for session changes. fn may be called from inside
// the auth provider's lock and must not block.
func (m *SessionManager) Subscribe(fn func(domain.SessionChange)) func() {
	m.subMu.Lock()
	id := m.nextSub
	m.nextSub++
	m.subs[id] = fn
	m.subMu.Unlock()

	return func() {
		m.subMu.Lock()
		delete(m.subs, id)
		m.subMu.Unlock()
	}
}

func (m *SessionManager) publish(ch domain.SessionChange) {
	m.subMu.Lock()
	fns := make([]func(domain.SessionChange), 0, len(m.subs))
	for _, fn := range m.subs {
		fns = append(fns, fn)
	}
	m.subMu.Unlock()

	for _, fn := range fns {
		fn(ch)
	}
}

func (m *SessionManager) cached(userID string) (*domain.Profile, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	e := m.entries[userID]
	if e == nil || e.profile == nil || m.now().Sub(e.loadedAt) > m.ttl {
		return nil, false
	}
	return clone(e.profile), true
}

func (m *SessionManager) generation(userID string) uint64 {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if e := m.entries[userID]; e != nil {
		return e.generation
	}
	return 0
}

// loadProfile fetches the profile once per user at a time and installs it if
// no sign-out happened since gen was read.
func (m *SessionManager) loadProfile(ctx context.Context, userID string, gen uint64) (*domain.Profile, error) {
	v, err, _ := m.fetches.Do(userID, func() (any, error) {
		fctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), profileFetchTimeout)
		defer cancel()
		return m.profiles.FindByID(fctx, userID)
	})
	if err != nil {
		return nil, fmt.Errorf("load profile: %w", err)
	}

	p := v.(*domain.Profile)
	if !m.install(userID, gen, p) {
		m.log.Debug().Str("user_id", userID).Msg("stale profile fetch discarded")
		return nil, domain.ErrUnauthenticated
	}
	return clone(p), nil
}

func (m *SessionManager) install(userID string, gen uint64, p *domain.Profile) bool {
	m.mu.Lock()
	e := m.entries[userID]
	if e == nil {
		e = &sessionEntry{}
		m.entries[userID] = e
	}
	if e.generation != gen {
		m.mu.Unlock()
		return false
	}
	fresh := e.profile == nil
	e.profile = clone(p)
	e.loadedAt = m.now()
	m.mu.Unlock()

	if fresh {
		m.publish(domain.SessionChange{Kind: domain.SessionSignedIn, UserID: userID, Profile: clone(p)})
	}
	return true
}

func (m *SessionManager) clear(userID string) {
	m.mu.Lock()
	e := m.entries[userID]
	if e == nil {
		e = &sessionEntry{}
		m.entries[userID] = e
	}
	had := e.profile != nil
	e.profile = nil
	e.generation++
	m.mu.Unlock()

	m.fetches.Forget(userID)
	if had {
		m.publish(domain.SessionChange{Kind: domain.SessionSignedOut, UserID: userID})
	}
}

func clone(p *domain.Profile) *domain.Profile {
	if p == nil {
		return nil
	}
	cp := *p
	return &cp
}
