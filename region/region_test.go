package region

import (
	"errors"
	"net/url"
	"testing"

	"github.com/go-test/deep"
)

func TestFromAffinity(t *testing.T) {
	t.Parallel()
	tests := []struct {
		code string
		want Info
	}{
		{
			code: "na1",
			want: Info{Region: "na1", Shard: "na1", ChatRegion: "na1", ChatHost: "na2.chat.si.riotgames.com"},
		},
		{
			code: "euw1",
			want: Info{Region: "euw1", Shard: "euw1", ChatRegion: "eu1", ChatHost: "euw1.chat.si.riotgames.com"},
		},
		{
			code: "us",
			want: Info{Region: "us", Shard: "us", ChatRegion: "la1", ChatHost: "la1.chat.si.riotgames.com"},
		},
	}
	for _, test := range tests {
		got, err := FromAffinity(test.code)
		if err != nil {
			t.Fatal(err)
		}
		if diff := deep.Equal(got, test.want); diff != nil {
			t.Fatal(diff)
		}
	}
}

func TestFromAffinityUnknown(t *testing.T) {
	t.Parallel()
	_, err := FromAffinity("moon1")
	if !errors.Is(err, ErrUnknownRegion) {
		t.Fatalf("expected ErrUnknownRegion, got %v", err)
	}
}

func TestRoutes(t *testing.T) {
	t.Parallel()
	r, err := FromAffinity("na1")
	if err != nil {
		t.Fatal(err)
	}
	got := Routes(r)
	want := Endpoints{
		PD:  "https://pd.na1.a.pvp.net",
		GLZ: "https://glz-na1-1.na1.a.pvp.net",
	}
	if diff := deep.Equal(got, want); diff != nil {
		t.Fatal(diff)
	}
}

func TestRoutesDeterministic(t *testing.T) {
	t.Parallel()
	r := Info{Region: "eu", Shard: "eu"}
	first := Routes(r)
	for i := 0; i < 10; i++ {
		if diff := deep.Equal(Routes(r), first); diff != nil {
			t.Fatal(diff)
		}
	}
}

func TestTableWellFormed(t *testing.T) {
	t.Parallel()
	for _, code := range Affinities() {
		r, err := FromAffinity(code)
		if err != nil {
			t.Fatal(err)
		}
		ep := Routes(r)
		for _, raw := range []string{ep.PD, ep.GLZ} {
			u, err := url.Parse(raw)
			if err != nil {
				t.Fatalf("%s: %v", code, err)
			}
			if u.Scheme != "https" || u.Host == "" {
				t.Fatalf("%s: malformed base url %q", code, raw)
			}
		}
		if r.ChatHost == "" || r.ChatRegion == "" {
			t.Fatalf("%s: missing chat identifiers", code)
		}
	}
}
