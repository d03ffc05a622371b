package valorant

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-test/deep"

	"pedro.to/valgo/region"
	"pedro.to/valgo/test"
)

func TestLoginFullFlow(t *testing.T) {
	t.Parallel()
	r := test.NewRiot(test.RiotOpts{
		Username: "user",
		Password: "pass",
		GameName: "Phoenix",
		TagLine:  "EUW",
		Affinity: "na1",
	})
	defer r.Close()
	c := loggedInClient(t, r)

	tok, err := c.Tokens()
	if err != nil {
		t.Fatal(err)
	}
	if tok.AccessToken == "" || tok.IDToken == "" || tok.EntitlementToken == "" {
		t.Fatal("expected a fully populated token set")
	}
	if !tok.ExpiresAt.After(time.Now()) {
		t.Fatal("expected a future expiry")
	}

	if got, want := c.Region(), (region.Info{
		Region: "na1", Shard: "na1", ChatRegion: "na1", ChatHost: "na2.chat.si.riotgames.com",
	}); got != want {
		t.Fatalf("unexpected region %+v", got)
	}
	if diff := deep.Equal(c.Endpoints(), region.Endpoints{
		PD:  "https://pd.na1.a.pvp.net",
		GLZ: "https://glz-na1-1.na1.a.pvp.net",
	}); diff != nil {
		t.Fatal(diff)
	}
	if c.PUUID() != r.Opts.PUUID {
		t.Fatalf("expected puuid %s, got %s", r.Opts.PUUID, c.PUUID())
	}
	if u := c.User(); u == nil || u.Acct.GameName != "Phoenix" || u.Acct.TagLine != "EUW" {
		t.Fatalf("unexpected user info %+v", c.User())
	}
	if c.ClientVersion() == "" {
		t.Fatal("expected client version to be resolved")
	}
}

func TestLoginInvalidCredentials(t *testing.T) {
	t.Parallel()
	r := test.NewRiot(test.RiotOpts{Username: "user", Password: "pass"})
	defer r.Close()
	c := newRiotClient(t, r)
	c.opts.Password = "wrong"

	err := c.Login(context.Background())
	if !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
	// No partial token set may survive the failed handshake.
	if _, err := c.Tokens(); !errors.Is(err, ErrNotAuthenticated) {
		t.Fatalf("expected ErrNotAuthenticated, got %v", err)
	}
}

func TestLoginChallengeRequired(t *testing.T) {
	t.Parallel()
	r := test.NewRiot(test.RiotOpts{Username: "user", Password: "pass", Multifactor: true})
	defer r.Close()
	c := newRiotClient(t, r)

	if err := c.Login(context.Background()); !errors.Is(err, ErrChallengeRequired) {
		t.Fatalf("expected ErrChallengeRequired, got %v", err)
	}
}

func TestLoginTokenParse(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name string
		body string
	}{
		{name: "fragment without tokens", body: `{"type":"response","response":{"parameters":{"uri":"https://playvalorant.com/opt_in#state=x"}}}`},
		{name: "missing redirect", body: `{"type":"response","response":{"parameters":{}}}`},
		{name: "unknown flow type", body: `{"type":"interstitial"}`},
	}
	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			sv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
				w.Header().Set("Content-Type", "application/json")
				if req.Method == http.MethodPost {
					fmt.Fprint(w, `{"type":"auth"}`)
					return
				}
				fmt.Fprint(w, tc.body)
			}))
			defer sv.Close()

			c, err := New(&Opts{
				Username:      "user",
				Password:      "pass",
				AuthURL:       sv.URL,
				ClientVersion: "release-test",
				UserAgent:     "test-agent",
			})
			if err != nil {
				t.Fatal(err)
			}
			if _, err := c.loginTokens(context.Background()); !errors.Is(err, ErrTokenParse) {
				t.Fatalf("expected ErrTokenParse, got %v", err)
			}
		})
	}
}

func TestReauthRenewsFromCookies(t *testing.T) {
	t.Parallel()
	r := test.NewRiot(test.RiotOpts{Username: "user", Password: "pass"})
	defer r.Close()
	c := loggedInClient(t, r)
	logins := r.LoginReqs

	tok, err := c.reauthTokens(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if tok.AccessToken == "" || tokenExtra(tok, "entitlements_token") == "" {
		t.Fatal("expected a full token set from cookie reauth")
	}
	if r.LoginReqs != logins {
		t.Fatal("cookie reauth must not submit credentials")
	}
	if got := r.Reauths(); got != 1 {
		t.Fatalf("expected 1 reauth request, got %d", got)
	}
}

func TestReauthFallsBackToLogin(t *testing.T) {
	t.Parallel()
	r := test.NewRiot(test.RiotOpts{Username: "user", Password: "pass"})
	defer r.Close()
	// Fresh client: no session cookie in the jar, the authorize endpoint
	// bounces to the login page and the client re-runs the credential
	// handshake.
	c := newRiotClient(t, r)
	if err := c.ensureVersion(context.Background()); err != nil {
		t.Fatal(err)
	}

	tok, err := c.reauthTokens(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if tok.AccessToken == "" {
		t.Fatal("expected tokens from the login fallback")
	}
	if r.LoginReqs != 1 {
		t.Fatalf("expected 1 credential submission, got %d", r.LoginReqs)
	}
}

func TestResolveRegionIdempotent(t *testing.T) {
	t.Parallel()
	r := test.NewRiot(test.RiotOpts{Username: "user", Password: "pass", Affinity: "euw1"})
	defer r.Close()
	c := loggedInClient(t, r)

	first, err := c.resolveRegion(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	second, err := c.resolveRegion(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if diff := deep.Equal(first, second); diff != nil {
		t.Fatal(diff)
	}
	if first.Region != "euw1" {
		t.Fatalf("expected euw1, got %s", first.Region)
	}
}

func TestResolveRegionUnknownAffinity(t *testing.T) {
	t.Parallel()
	r := test.NewRiot(test.RiotOpts{Username: "user", Password: "pass", Affinity: "moon1"})
	defer r.Close()
	c := newRiotClient(t, r)

	err := c.Login(context.Background())
	if !errors.Is(err, region.ErrUnknownRegion) {
		t.Fatalf("expected ErrUnknownRegion, got %v", err)
	}
}

func TestTokenClaims(t *testing.T) {
	t.Parallel()
	exp := time.Now().Add(30 * time.Minute).Truncate(time.Second)
	access := test.SignedToken("some-puuid", exp)

	if got := tokenSubject(access); got != "some-puuid" {
		t.Fatalf("expected subject some-puuid, got %q", got)
	}
	if got := tokenExpiry(access); !got.Equal(exp) {
		t.Fatalf("expected expiry %s, got %s", exp, got)
	}
	if got := tokenExpiry("not-a-jwt"); !got.IsZero() {
		t.Fatalf("expected zero expiry for a malformed token, got %s", got)
	}
}
