package valorant

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"pedro.to/valgo/test"
)

func newRiotClient(t *testing.T, r *test.Riot) *Client {
	t.Helper()
	u := r.URLs()
	c, err := New(&Opts{
		Username:        r.Opts.Username,
		Password:        r.Opts.Password,
		AuthURL:         u.Auth,
		ReauthURL:       u.Reauth,
		EntitlementsURL: u.Entitlements,
		UserinfoURL:     u.Userinfo,
		GeoURL:          u.Geo,
		VersionURL:      u.Version,
	})
	if err != nil {
		t.Fatal(err)
	}
	return c
}

func loggedInClient(t *testing.T, r *test.Riot) *Client {
	t.Helper()
	c := newRiotClient(t, r)
	if err := c.Login(context.Background()); err != nil {
		t.Fatal(err)
	}
	return c
}

func TestDispatcherReauthRetryOnce(t *testing.T) {
	t.Parallel()
	r := test.NewRiot(test.RiotOpts{Username: "user", Password: "pass"})
	defer r.Close()
	c := loggedInClient(t, r)

	var reqs int32
	pd := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		if atomic.AddInt32(&reqs, 1) == 1 {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		fmt.Fprint(w, `{"Balances":{"85ad13f7-3d1b-5128-9eb2-7cd8ee0b5741":475}}`)
	}))
	defer pd.Close()
	c.routes.PD = pd.URL

	w, err := c.Wallet(&WalletParams{})
	if err != nil {
		t.Fatal(err)
	}
	if got := w.Balances["85ad13f7-3d1b-5128-9eb2-7cd8ee0b5741"]; got != 475 {
		t.Fatalf("expected 475 VP, got %d", got)
	}
	if got := atomic.LoadInt32(&reqs); got != 2 {
		t.Fatalf("expected 2 requests, got %d", got)
	}
	if got := r.Reauths(); got != 1 {
		t.Fatalf("expected exactly 1 reauth, got %d", got)
	}
}

func TestDispatcherReauthBound(t *testing.T) {
	t.Parallel()
	r := test.NewRiot(test.RiotOpts{Username: "user", Password: "pass"})
	defer r.Close()
	c := loggedInClient(t, r)

	var reqs int32
	pd := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		atomic.AddInt32(&reqs, 1)
		w.WriteHeader(http.StatusForbidden)
	}))
	defer pd.Close()
	c.routes.PD = pd.URL

	_, err := c.Wallet(&WalletParams{})
	if !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized, got %v", err)
	}
	if got := atomic.LoadInt32(&reqs); got != 2 {
		t.Fatalf("expected 2 requests (one call, one retry), got %d", got)
	}
	if got := r.Reauths(); got != 1 {
		t.Fatalf("expected exactly 1 reauth, got %d", got)
	}
}

func TestDispatcherConcurrentSingleReauth(t *testing.T) {
	t.Parallel()
	r := test.NewRiot(test.RiotOpts{Username: "user", Password: "pass"})
	defer r.Close()
	c := loggedInClient(t, r)

	pd := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		fmt.Fprint(w, `{"Balances":{"vp":100}}`)
	}))
	defer pd.Close()
	c.routes.PD = pd.URL

	// Expire the installed token set. Both callers should observe the
	// expiry and collapse into a single renewal over the cookie jar.
	expired := buildToken(
		test.SignedToken(r.Opts.PUUID, time.Now().Add(-time.Minute)),
		test.SignedToken(r.Opts.PUUID, time.Now().Add(time.Hour)),
		"ENT", 0,
	)
	if err := c.ts.set(expired); err != nil {
		t.Fatal(err)
	}

	const n = 8
	var wg sync.WaitGroup
	wg.Add(n)
	errs := make(chan error, n)
	for i := 0; i < n; i++ {
		go func() {
			defer wg.Done()
			_, err := c.Wallet(&WalletParams{})
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		if err != nil {
			t.Fatal(err)
		}
	}
	if got := r.Reauths(); got != 1 {
		t.Fatalf("expected exactly 1 reauth for %d concurrent calls, got %d", n, got)
	}
}

func TestDispatcherMalformedResponse(t *testing.T) {
	t.Parallel()
	r := test.NewRiot(test.RiotOpts{Username: "user", Password: "pass"})
	defer r.Close()
	c := loggedInClient(t, r)

	pd := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		fmt.Fprint(w, `{"Balances": not json at all`)
	}))
	defer pd.Close()
	c.routes.PD = pd.URL

	_, err := c.Wallet(&WalletParams{})
	if !errors.Is(err, ErrMalformedResponse) {
		t.Fatalf("expected ErrMalformedResponse, got %v", err)
	}
}

func TestDispatcherStatusError(t *testing.T) {
	t.Parallel()
	r := test.NewRiot(test.RiotOpts{Username: "user", Password: "pass"})
	defer r.Close()
	c := loggedInClient(t, r)

	pd := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		fmt.Fprint(w, `{"httpStatus":404,"errorCode":"RESOURCE_NOT_FOUND"}`)
	}))
	defer pd.Close()
	c.routes.GLZ = pd.URL

	_, err := c.PregamePlayer(&PregamePlayerParams{})
	var se *StatusError
	if !errors.As(err, &se) {
		t.Fatalf("expected StatusError, got %v", err)
	}
	if se.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", se.Code)
	}
	if len(se.Body) == 0 {
		t.Fatal("expected raw body to be preserved")
	}
}

func TestDispatcherTimeout(t *testing.T) {
	t.Parallel()
	r := test.NewRiot(test.RiotOpts{Username: "user", Password: "pass"})
	defer r.Close()
	c := newRiotClient(t, r)
	c.opts.Timeout = 100 * time.Millisecond
	c.c.Timeout = c.opts.Timeout
	if err := c.Login(context.Background()); err != nil {
		t.Fatal(err)
	}

	pd := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		time.Sleep(500 * time.Millisecond)
	}))
	defer pd.Close()
	c.routes.PD = pd.URL

	_, err := c.Wallet(&WalletParams{})
	if !errors.Is(err, ErrTimeout) {
		t.Fatalf("expected ErrTimeout, got %v", err)
	}
}

func TestRawDispatch(t *testing.T) {
	t.Parallel()
	r := test.NewRiot(test.RiotOpts{Username: "user", Password: "pass"})
	defer r.Close()
	c := loggedInClient(t, r)

	pd := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		if req.URL.Path != "/store/v1/offers/" {
			t.Errorf("unexpected path %s", req.URL.Path)
		}
		fmt.Fprint(w, `{"Offers":[]}`)
	}))
	defer pd.Close()
	c.routes.PD = pd.URL

	raw, err := c.Raw(&RawParams{Path: "/store/v1/offers/"})
	if err != nil {
		t.Fatal(err)
	}
	if string(raw) != `{"Offers":[]}` {
		t.Fatalf("unexpected raw payload %s", raw)
	}
}

func TestClientNotAuthenticated(t *testing.T) {
	t.Parallel()
	r := test.NewRiot(test.RiotOpts{Username: "user", Password: "pass"})
	defer r.Close()
	c := newRiotClient(t, r)

	if _, err := c.Tokens(); !errors.Is(err, ErrNotAuthenticated) {
		t.Fatalf("expected ErrNotAuthenticated, got %v", err)
	}
	if _, err := c.UserInfo(&UserInfoParams{}); !errors.Is(err, ErrNotAuthenticated) {
		t.Fatalf("expected ErrNotAuthenticated, got %v", err)
	}
}
