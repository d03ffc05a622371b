// Package credstore persists authenticated sessions so a client can be
// rebuilt from its cookie jar instead of re-sending credentials.
package credstore

import (
	"errors"
	"time"
)

var (
	ErrNotFound = errors.New("no saved session")
)

// Cookie is the persisted subset of an http.Cookie. Only name and value
// matter to the auth backend, the rest is jar bookkeeping.
type Cookie struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// Session is a JSON-serializable snapshot of an authenticated session.
type Session struct {
	PUUID    string `json:"puuid"`
	GameName string `json:"game_name"`
	TagLine  string `json:"tag_line"`
	Affinity string `json:"affinity"`

	AccessToken      string    `json:"access_token"`
	IDToken          string    `json:"id_token"`
	EntitlementToken string    `json:"entitlement_token"`
	ExpiresAt        time.Time `json:"expires_at"`

	Cookies []Cookie  `json:"cookies"`
	SavedAt time.Time `json:"saved_at"`
}

// Store loads and saves sessions keyed by the account username. The
// username never reaches disk in cleartext, implementations derive a stable
// key from it.
type Store interface {
	Load(username string) (*Session, error)
	Save(username string, s *Session) error
	Delete(username string) error
}
