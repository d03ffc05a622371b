package credstore

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/go-test/deep"
)

func testSession() *Session {
	return &Session{
		PUUID:            "5a2f12dd-41b0-4b4e-a55c-65b0c09a3c3c",
		GameName:         "Player",
		TagLine:          "NA1",
		Affinity:         "na1",
		AccessToken:      "ACCESS",
		IDToken:          "ID",
		EntitlementToken: "ENT",
		ExpiresAt:        time.Now().Add(time.Hour).UTC().Truncate(time.Second),
		Cookies: []Cookie{
			{Name: "ssid", Value: "sessioncookie"},
			{Name: "clid", Value: "ue1"},
		},
		SavedAt: time.Now().UTC().Truncate(time.Second),
	}
}

func TestFileStoreRoundTrip(t *testing.T) {
	t.Parallel()
	fs, err := NewFileStore(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}

	want := testSession()
	if err := fs.Save("user@example.com", want); err != nil {
		t.Fatal(err)
	}
	got, err := fs.Load("user@example.com")
	if err != nil {
		t.Fatal(err)
	}
	if diff := deep.Equal(got, want); diff != nil {
		t.Fatal(diff)
	}
}

func TestFileStoreStableNameAndPerms(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	fs, err := NewFileStore(dir)
	if err != nil {
		t.Fatal(err)
	}

	if fs.path("user@example.com") != fs.path("user@example.com") {
		t.Fatal("expected stable filename for a username")
	}
	if fs.path("user@example.com") == fs.path("other@example.com") {
		t.Fatal("expected distinct filenames per username")
	}

	if err := fs.Save("user@example.com", testSession()); err != nil {
		t.Fatal(err)
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 {
		t.Fatalf("expected 1 session file, got %d", len(entries))
	}
	info, err := os.Stat(filepath.Join(dir, entries[0].Name()))
	if err != nil {
		t.Fatal(err)
	}
	if perm := info.Mode().Perm(); perm != 0600 {
		t.Fatalf("expected 0600 session file, got %o", perm)
	}
}

func TestFileStoreNotFound(t *testing.T) {
	t.Parallel()
	fs, err := NewFileStore(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	if _, err := fs.Load("nobody"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if err := fs.Delete("nobody"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestFileStoreDelete(t *testing.T) {
	t.Parallel()
	fs, err := NewFileStore(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	if err := fs.Save("user", testSession()); err != nil {
		t.Fatal(err)
	}
	if err := fs.Delete("user"); err != nil {
		t.Fatal(err)
	}
	if _, err := fs.Load("user"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound after delete, got %v", err)
	}
}
