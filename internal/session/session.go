// Package session manages the bearer-token lifecycle shared by every
// pipeline stage of a run.
package session

import (
	"context"
	"time"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"
)

// RefreshAfter is the token age at which the guard re-authenticates.
// ZoomInfo tokens expire after one hour; refreshing at 55 minutes keeps a
// margin so a slow pass never sends a stale token.
const RefreshAfter = 55 * time.Minute

// Credentials holds the ZoomInfo login pair.
type Credentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Session is a bearer token and the time it was issued. It is a plain
// value, threaded through the run by the pass driver; it is never shared
// between goroutines.
type Session struct {
	Token    string
	IssuedAt time.Time
}

// AuthFunc exchanges credentials for a bearer token.
type AuthFunc func(ctx context.Context, username, password string) (string, error)

// Guard re-issues the session token once its age crosses RefreshAfter.
// It must be consulted before every outbound API call.
type Guard struct {
	creds Credentials
	auth  AuthFunc
	now   func() time.Time // injectable for testing
}

// NewGuard creates a token lifecycle guard.
func NewGuard(creds Credentials, auth AuthFunc) *Guard {
	return &Guard{
		creds: creds,
		auth:  auth,
		now:   time.Now,
	}
}

// WithNow sets a clock function for testing.
func (g *Guard) WithNow(now func() time.Time) *Guard {
	g.now = now
	return g
}

// Login performs the initial authentication for a run. Failure here is
// fatal: no stage can proceed without a token.
func (g *Guard) Login(ctx context.Context) (Session, error) {
	token, err := g.auth(ctx, g.creds.Username, g.creds.Password)
	if err != nil {
		return Session{}, eris.Wrap(err, "session: login")
	}
	return Session{Token: token, IssuedAt: g.now()}, nil
}

// EnsureFresh returns s unchanged while it is younger than RefreshAfter,
// and otherwise replaces token and timestamp wholesale. A refresh failure
// is fatal to the pass, not to a single record.
func (g *Guard) EnsureFresh(ctx context.Context, s Session) (Session, error) {
	age := g.now().Sub(s.IssuedAt)
	if age < RefreshAfter {
		return s, nil
	}

	zap.L().Info("session: token stale, re-authenticating",
		zap.Duration("age", age),
	)

	token, err := g.auth(ctx, g.creds.Username, g.creds.Password)
	if err != nil {
		return s, eris.Wrap(err, "session: refresh token")
	}
	return Session{Token: token, IssuedAt: g.now()}, nil
}
