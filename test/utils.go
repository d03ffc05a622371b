// Package test provides shared fixtures: a fake Riot auth and metadata
// backend plus canned payload helpers used by the client, api and cli
// tests.
package test

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var jwtKey = []byte("valgo-test-key")

// SignedToken mints an HS256 JWT with the given subject and expiry. The
// client never verifies signatures, it only reads claims, but a real JWT
// shape is required for the claim parse to succeed.
func SignedToken(sub string, exp time.Time) string {
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": sub,
		"iss": "https://auth.riotgames.com",
		"exp": exp.Unix(),
		"iat": time.Now().Unix(),
	})
	s, err := t.SignedString(jwtKey)
	if err != nil {
		panic(err)
	}
	return s
}

type RiotOpts struct {
	Username string
	Password string
	PUUID    string
	GameName string
	TagLine  string
	Affinity string
	// TokenTTL is the lifetime of issued access tokens. Defaults to one
	// hour; set it negative to issue already-expired tokens.
	TokenTTL time.Duration
	// Multifactor makes credential submission demand a second factor.
	Multifactor bool
}

// Riot is a fake Riot auth stack: authorization flow, cookie reauth,
// entitlements, userinfo, geolocation and version metadata on one server.
// Request counters are atomic so concurrent dispatcher tests can assert on
// them.
type Riot struct {
	*httptest.Server
	Opts RiotOpts

	InitReqs    int32
	LoginReqs   int32
	ReauthReqs  int32
	EntReqs     int32
	UserReqs    int32
	GeoReqs     int32
	VersionReqs int32
}

const riotSessionCookie = "ssid"

// NewRiot starts the fake stack. Callers own Close.
func NewRiot(opts RiotOpts) *Riot {
	if opts.PUUID == "" {
		opts.PUUID = "5a2f12dd-41b0-4b4e-a55c-65b0c09a3c3c"
	}
	if opts.GameName == "" {
		opts.GameName = "Player"
	}
	if opts.TagLine == "" {
		opts.TagLine = "NA1"
	}
	if opts.Affinity == "" {
		opts.Affinity = "na1"
	}
	if opts.TokenTTL == 0 {
		opts.TokenTTL = time.Hour
	}
	r := &Riot{Opts: opts}

	mux := http.NewServeMux()
	mux.HandleFunc("/api/v1/authorization", r.handleAuthorization)
	mux.HandleFunc("/authorize", r.handleReauth)
	mux.HandleFunc("/entitlements", r.handleEntitlements)
	mux.HandleFunc("/userinfo", r.handleUserinfo)
	mux.HandleFunc("/geo", r.handleGeo)
	mux.HandleFunc("/version", r.handleVersion)
	r.Server = httptest.NewServer(mux)
	return r
}

// AccessToken mints a token like the ones the stack issues.
func (r *Riot) AccessToken() string {
	return SignedToken(r.Opts.PUUID, time.Now().Add(r.Opts.TokenTTL))
}

// Reauths reads the cookie-reauth counter.
func (r *Riot) Reauths() int32 {
	return atomic.LoadInt32(&r.ReauthReqs)
}

func (r *Riot) redirectURI() string {
	access := r.AccessToken()
	id := SignedToken(r.Opts.PUUID, time.Now().Add(time.Hour))
	return fmt.Sprintf(
		"https://playvalorant.com/opt_in#access_token=%s&id_token=%s&expires_in=%d&token_type=Bearer",
		access, id, int(r.Opts.TokenTTL.Seconds()),
	)
}

func (r *Riot) handleAuthorization(w http.ResponseWriter, req *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	switch req.Method {
	case http.MethodPost:
		atomic.AddInt32(&r.InitReqs, 1)
		http.SetCookie(w, &http.Cookie{Name: "asid", Value: "flowcookie", Path: "/"})
		fmt.Fprint(w, `{"type":"auth"}`)
	case http.MethodPut:
		atomic.AddInt32(&r.LoginReqs, 1)
		var body struct {
			Type     string `json:"type"`
			Username string `json:"username"`
			Password string `json:"password"`
		}
		if err := json.NewDecoder(req.Body).Decode(&body); err != nil {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		if r.Opts.Multifactor {
			fmt.Fprint(w, `{"type":"multifactor","multifactor":{"method":"email"}}`)
			return
		}
		if body.Username != r.Opts.Username || body.Password != r.Opts.Password {
			fmt.Fprint(w, `{"type":"auth","error":"auth_failure"}`)
			return
		}
		http.SetCookie(w, &http.Cookie{Name: riotSessionCookie, Value: "sessioncookie", Path: "/"})
		resp := map[string]any{
			"type": "response",
			"response": map[string]any{
				"parameters": map[string]any{"uri": r.redirectURI()},
			},
		}
		json.NewEncoder(w).Encode(resp)
	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

func (r *Riot) handleReauth(w http.ResponseWriter, req *http.Request) {
	atomic.AddInt32(&r.ReauthReqs, 1)
	if ck, err := req.Cookie(riotSessionCookie); err != nil || ck.Value == "" {
		// Rejected jar: bounce to the login page, no token fragment.
		w.Header().Set("Location", "https://auth.riotgames.com/login")
		w.WriteHeader(http.StatusSeeOther)
		return
	}
	w.Header().Set("Location", r.redirectURI())
	w.WriteHeader(http.StatusSeeOther)
}

func (r *Riot) handleEntitlements(w http.ResponseWriter, req *http.Request) {
	atomic.AddInt32(&r.EntReqs, 1)
	if req.Header.Get("Authorization") == "" {
		w.WriteHeader(http.StatusUnauthorized)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	fmt.Fprintf(w, `{"entitlements_token":"%s"}`, SignedToken("entitlements", time.Now().Add(time.Hour)))
}

func (r *Riot) handleUserinfo(w http.ResponseWriter, req *http.Request) {
	atomic.AddInt32(&r.UserReqs, 1)
	if req.Header.Get("Authorization") == "" {
		w.WriteHeader(http.StatusUnauthorized)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{
		"country": "usa",
		"sub":     r.Opts.PUUID,
		"acct": map[string]any{
			"type":       0,
			"state":      "ENABLED",
			"game_name":  r.Opts.GameName,
			"tag_line":   r.Opts.TagLine,
			"created_at": 1546300800000,
		},
	})
}

func (r *Riot) handleGeo(w http.ResponseWriter, req *http.Request) {
	atomic.AddInt32(&r.GeoReqs, 1)
	var body struct {
		IDToken string `json:"id_token"`
	}
	if err := json.NewDecoder(req.Body).Decode(&body); err != nil || body.IDToken == "" {
		w.WriteHeader(http.StatusBadRequest)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	fmt.Fprintf(w, `{"token":"x","affinities":{"pbe":"na1","live":"%s"}}`, r.Opts.Affinity)
}

func (r *Riot) handleVersion(w http.ResponseWriter, req *http.Request) {
	atomic.AddInt32(&r.VersionReqs, 1)
	w.Header().Set("Content-Type", "application/json")
	fmt.Fprint(w, `{"status":200,"data":{"riotClientVersion":"release-08.05-shipping-6-2323321","riotClientBuild":"83.0.1.240.2452"}}`)
}

// URLs are the auth-family endpoint overrides pointing at the fake stack.
type URLs struct {
	Auth         string
	Reauth       string
	Entitlements string
	Userinfo     string
	Geo          string
	Version      string
}

func (r *Riot) URLs() URLs {
	return URLs{
		Auth:         r.URL + "/api/v1/authorization",
		Reauth:       r.URL + "/authorize",
		Entitlements: r.URL + "/entitlements",
		Userinfo:     r.URL + "/userinfo",
		Geo:          r.URL + "/geo",
		Version:      r.URL + "/version",
	}
}
