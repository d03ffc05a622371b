package webserver

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	cfg "pedro.to/valgo/config"
	"pedro.to/valgo/test"
	"pedro.to/valgo/valorant"
)

func init() {
	// Tests run from the package dir, not the repo root.
	cfg.WebserverViewsDir = "views"
}

func newTestServer(t *testing.T) *WebServer {
	t.Helper()
	r := test.NewRiot(test.RiotOpts{Username: "user", Password: "pass"})
	t.Cleanup(r.Close)

	urls := r.URLs()
	c, err := valorant.New(&valorant.Opts{
		Username:        "user",
		Password:        "pass",
		AuthURL:         urls.Auth,
		ReauthURL:       urls.Reauth,
		EntitlementsURL: urls.Entitlements,
		UserinfoURL:     urls.Userinfo,
		GeoURL:          urls.Geo,
		VersionURL:      urls.Version,
		Timeout:         5 * time.Second,
	})
	if err != nil {
		t.Fatal(err)
	}
	if err := c.Login(context.Background()); err != nil {
		t.Fatal(err)
	}
	return New(c)
}

func TestHealth(t *testing.T) {
	t.Parallel()
	sv := newTestServer(t)
	app := sv.newServer()

	resp, err := app.Test(httptest.NewRequest("GET", "/health", nil))
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	body, _ := io.ReadAll(resp.Body)
	if string(body) != "ok" {
		t.Fatalf("unexpected body %s", body)
	}
}

func TestAPIRoutesMounted(t *testing.T) {
	t.Parallel()
	sv := newTestServer(t)

	pd := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"Balances": {"85ad13f7-3d1b-5128-9eb2-7cd8ee0b5741": 475}}`)
	}))
	defer pd.Close()
	sv.client.SetRoutes(pd.URL, "")

	app := sv.newServer()
	resp, err := app.Test(httptest.NewRequest("GET", "/api/wallet", nil))
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	body, _ := io.ReadAll(resp.Body)
	if !strings.Contains(string(body), "475") {
		t.Fatalf("wallet payload not proxied: %s", body)
	}
}

func TestIndexRendersStore(t *testing.T) {
	t.Parallel()
	sv := newTestServer(t)

	pd := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{
			"SkinsPanelLayout": {
				"SingleItemOffers": ["offer-1", "offer-2"],
				"SingleItemOffersRemainingDurationInSeconds": 37143
			}
		}`)
	}))
	defer pd.Close()
	sv.client.SetRoutes(pd.URL, "")

	app := sv.newServer()
	resp, err := app.Test(httptest.NewRequest("GET", "/", nil))
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	body, _ := io.ReadAll(resp.Body)
	got := string(body)
	if !strings.Contains(got, "offer-1") || !strings.Contains(got, "offer-2") {
		t.Fatalf("offers missing from page: %s", got)
	}
	if !strings.Contains(got, "na1") {
		t.Fatalf("region missing from page: %s", got)
	}
}
