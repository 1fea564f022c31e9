package rpeek

import "context"

// Session is the user context needed for write operations.
type Session struct {
	Modhash          string
	PrefersNightMode bool
}

// LoggedIn reports whether the session carries a modhash.
func (s *Session) LoggedIn() bool {
	return s != nil && s.Modhash != ""
}

// SessionService loads the current user's session.
type SessionService interface {
	Load(ctx context.Context) (*Session, error)
}
