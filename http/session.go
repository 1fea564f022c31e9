package http

import (
	"context"
	"io"
	"log/slog"

	"github.com/fwojciec/rpeek"
	"github.com/tidwall/gjson"
)

// MePath is the endpoint describing the logged-in user.
const MePath = "/api/me.json"

// Ensure SessionService implements rpeek.SessionService at compile time.
var _ rpeek.SessionService = (*SessionService)(nil)

// SessionService loads the session context from the API.
type SessionService struct {
	transport rpeek.Transport
	logger    *slog.Logger
}

// NewSessionService creates a SessionService. A nil logger discards output.
func NewSessionService(transport rpeek.Transport, logger *slog.Logger) *SessionService {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &SessionService{transport: transport, logger: logger}
}

// Load returns the current session. Any failure yields an anonymous
// session; the error is logged, never returned.
func (s *SessionService) Load(ctx context.Context) (*rpeek.Session, error) {
	body, err := s.transport.Do(ctx, &rpeek.Request{URL: MePath})
	if err != nil {
		s.logger.Warn("session lookup failed", "err", err)
		return &rpeek.Session{}, nil
	}

	data := gjson.GetBytes(body, "data")
	if !data.IsObject() {
		return &rpeek.Session{}, nil
	}
	return &rpeek.Session{
		Modhash:          data.Get("modhash").String(),
		PrefersNightMode: data.Get("pref_nightmode").Bool(),
	}, nil
}
