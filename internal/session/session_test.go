package session

import (
	"context"
	"testing"
	"time"

	"github.com/rotisserie/eris"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func countingAuth(calls *int, token string, err error) AuthFunc {
	return func(ctx context.Context, username, password string) (string, error) {
		*calls++
		return token, err
	}
}

func TestLogin(t *testing.T) {
	issued := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	var calls int
	g := NewGuard(Credentials{Username: "u", Password: "p"}, countingAuth(&calls, "tok-1", nil)).
		WithNow(func() time.Time { return issued })

	s, err := g.Login(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "tok-1", s.Token)
	assert.Equal(t, issued, s.IssuedAt)
	assert.Equal(t, 1, calls)
}

func TestLoginFailureIsFatal(t *testing.T) {
	var calls int
	g := NewGuard(Credentials{}, countingAuth(&calls, "", eris.New("bad credentials")))

	_, err := g.Login(context.Background())
	require.Error(t, err)
}

func TestEnsureFreshBoundary(t *testing.T) {
	issued := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)

	tests := []struct {
		name        string
		elapsed     time.Duration
		wantRefresh bool
	}{
		{name: "one second before threshold", elapsed: 3299 * time.Second},
		{name: "at threshold", elapsed: 3300 * time.Second, wantRefresh: true},
		{name: "one second past threshold", elapsed: 3301 * time.Second, wantRefresh: true},
		{name: "fresh token", elapsed: time.Minute},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			now := issued.Add(tt.elapsed)
			var calls int
			g := NewGuard(Credentials{}, countingAuth(&calls, "tok-2", nil)).
				WithNow(func() time.Time { return now })

			s, err := g.EnsureFresh(context.Background(), Session{Token: "tok-1", IssuedAt: issued})
			require.NoError(t, err)

			if tt.wantRefresh {
				assert.Equal(t, 1, calls, "expected exactly one refresh")
				assert.Equal(t, "tok-2", s.Token)
				assert.Equal(t, now, s.IssuedAt)
			} else {
				assert.Zero(t, calls)
				assert.Equal(t, "tok-1", s.Token)
				assert.Equal(t, issued, s.IssuedAt)
			}
		})
	}
}

func TestEnsureFreshRefreshFailure(t *testing.T) {
	issued := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	var calls int
	g := NewGuard(Credentials{}, countingAuth(&calls, "", eris.New("auth endpoint unreachable"))).
		WithNow(func() time.Time { return issued.Add(time.Hour) })

	_, err := g.EnsureFresh(context.Background(), Session{Token: "tok-1", IssuedAt: issued})
	require.Error(t, err)
	assert.Equal(t, 1, calls)
}
