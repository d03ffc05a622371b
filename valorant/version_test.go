package valorant

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"testing"

	"github.com/google/go-cmp/cmp"

	"pedro.to/valgo/test"
)

func TestClientPlatformBlob(t *testing.T) {
	t.Parallel()
	raw, err := base64.StdEncoding.DecodeString(ClientPlatform())
	if err != nil {
		t.Fatal(err)
	}
	var got map[string]string
	if err := json.Unmarshal(raw, &got); err != nil {
		t.Fatal(err)
	}
	want := map[string]string{
		"platformType":      "PC",
		"platformOS":        "Windows",
		"platformOSVersion": "10.0.19042.1.256.64bit",
		"platformChipset":   "Unknown",
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatal(diff)
	}
}

func TestEnsureVersion(t *testing.T) {
	t.Parallel()
	r := test.NewRiot(test.RiotOpts{Username: "user", Password: "pass"})
	defer r.Close()
	c := newRiotClient(t, r)

	if err := c.ensureVersion(context.Background()); err != nil {
		t.Fatal(err)
	}
	if c.version != "release-08.05-shipping-6-2323321" {
		t.Fatalf("unexpected version %q", c.version)
	}
	if c.ua != "RiotClient/83.0.1.240.2452 riot-status (Windows;10;;Professional, x64)" {
		t.Fatalf("unexpected user agent %q", c.ua)
	}

	// Version metadata is fetched once per client.
	if err := c.ensureVersion(context.Background()); err != nil {
		t.Fatal(err)
	}
	if r.VersionReqs != 1 {
		t.Fatalf("expected 1 version fetch, got %d", r.VersionReqs)
	}
}

func TestEnsureVersionPinned(t *testing.T) {
	t.Parallel()
	r := test.NewRiot(test.RiotOpts{Username: "user", Password: "pass"})
	defer r.Close()
	u := r.URLs()
	c, err := New(&Opts{
		Username:        "user",
		Password:        "pass",
		AuthURL:         u.Auth,
		ReauthURL:       u.Reauth,
		EntitlementsURL: u.Entitlements,
		UserinfoURL:     u.Userinfo,
		GeoURL:          u.Geo,
		VersionURL:      u.Version,
		ClientVersion:   "release-pinned",
		UserAgent:       "pinned-agent",
	})
	if err != nil {
		t.Fatal(err)
	}
	if err := c.Login(context.Background()); err != nil {
		t.Fatal(err)
	}
	if c.ClientVersion() != "release-pinned" {
		t.Fatalf("expected pinned version, got %q", c.ClientVersion())
	}
	if r.VersionReqs != 0 {
		t.Fatalf("expected no version fetch with pinned metadata, got %d", r.VersionReqs)
	}
}
