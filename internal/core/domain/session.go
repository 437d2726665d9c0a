package domain

// Session is the resolved identity of a caller. A zero Session is
// unauthenticated and not loading.
type Session struct {
	User            *Profile `json:"user"`
	IsAuthenticated bool     `json:"is_authenticated"`
	IsLoading       bool     `json:"is_loading"`
}

// LoadingSession is the state before the first resolution completes.
func LoadingSession() Session {
	return Session{IsLoading: true}
}

// AuthenticatedSession wraps a loaded profile.
func AuthenticatedSession(p *Profile) Session {
	return Session{User: p, IsAuthenticated: p != nil}
}

// Role returns the user's role, or "" when there is no user.
func (s Session) Role() Role {
	if s.User == nil {
		return ""
	}
	return s.User.Role
}

// Actor converts the session to a use-case caller.
func (s Session) Actor() Actor {
	if s.User == nil {
		return Actor{}
	}
	return Actor{ID: s.User.ID, Role: s.User.Role, Name: s.User.Name}
}

// SessionChangeKind describes what happened to a cached session.
type SessionChangeKind string

const (
	SessionSignedIn       SessionChangeKind = "signed_in"
	SessionSignedOut      SessionChangeKind = "signed_out"
	SessionProfileUpdated SessionChangeKind = "profile_updated"
)

// SessionChange is published to session subscribers.
type SessionChange struct {
	Kind    SessionChangeKind
	UserID  string
	Profile *Profile
}
