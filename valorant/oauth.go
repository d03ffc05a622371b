package valorant

import (
	"context"
	"sync"

	"golang.org/x/oauth2"
)

// NotifyHandler is called whenever a new token set is installed.
type NotifyHandler func(*oauth2.Token) error

// renewFunc performs one full token exchange against the auth backend using
// the session cookie jar.
type renewFunc func(ctx context.Context) (*oauth2.Token, error)

// reauthTokenSource serializes token renewal over the cookie session. All
// renewals run under the mutex, so callers that hit an expired token
// concurrently block on a single exchange instead of racing their own.
type reauthTokenSource struct {
	renew renewFunc
	f     NotifyHandler

	mu sync.Mutex
	t  *oauth2.Token
}

func newReauthTokenSource(renew renewFunc, f NotifyHandler) *reauthTokenSource {
	if f == nil {
		f = func(*oauth2.Token) error { return nil }
	}
	return &reauthTokenSource{
		renew: renew,
		f:     f,
	}
}

// token returns the cached token, renewing it first when it is locally
// expired.
func (s *reauthTokenSource) token(ctx context.Context) (*oauth2.Token, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.t == nil {
		return nil, ErrNotAuthenticated
	}
	if s.t.Valid() {
		return s.t, nil
	}
	return s.renewLocked(ctx)
}

// force renews the token unless stale has already been replaced by a
// concurrent caller, in which case the replacement is returned as-is. Two
// callers reacting to the same 401 trigger exactly one exchange.
func (s *reauthTokenSource) force(ctx context.Context, stale *oauth2.Token) (*oauth2.Token, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.t != stale {
		return s.t, nil
	}
	return s.renewLocked(ctx)
}

// renewLocked must be called with s.mu held. A failed exchange leaves the
// previous token untouched.
func (s *reauthTokenSource) renewLocked(ctx context.Context) (*oauth2.Token, error) {
	t, err := s.renew(ctx)
	if err != nil {
		return nil, err
	}
	s.t = t
	return t, s.f(t)
}

// set installs a token obtained outside the renewal path (login, restored
// session).
func (s *reauthTokenSource) set(t *oauth2.Token) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.t = t
	return s.f(t)
}

// current returns the cached token without renewing. Nil before the first
// set.
func (s *reauthTokenSource) current() *oauth2.Token {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.t
}
