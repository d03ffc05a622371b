package valorant

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"golang.org/x/oauth2"

	"pedro.to/valgo/region"
	"pedro.to/valgo/utils"
)

const (
	authClientID    = "play-valorant-web-prod"
	authRedirectURI = "https://playvalorant.com/opt_in"
	authScope       = "account openid"
)

// Tokens is the public snapshot of the session token set.
type Tokens struct {
	AccessToken      string
	IDToken          string
	EntitlementToken string
	ExpiresAt        time.Time
}

type authInitBody struct {
	ClientID     string `json:"client_id"`
	Nonce        string `json:"nonce"`
	RedirectURI  string `json:"redirect_uri"`
	ResponseType string `json:"response_type"`
	Scope        string `json:"scope"`
}

type authSubmitBody struct {
	Type     string `json:"type"`
	Username string `json:"username"`
	Password string `json:"password"`
	Remember bool   `json:"remember"`
}

type authResponse struct {
	Type     string `json:"type"`
	Error    string `json:"error"`
	Response struct {
		Parameters struct {
			URI string `json:"uri"`
		} `json:"parameters"`
	} `json:"response"`
}

type entitlementsResponse struct {
	EntitlementsToken string `json:"entitlements_token"`
}

// loginTokens runs the credential handshake: initiate the auth flow, submit
// username/password, parse the tokens out of the redirect fragment and
// exchange the access token for an entitlement token. The returned token is
// only built once every exchange succeeded, so a partially-completed
// handshake never installs anything.
func (c *Client) loginTokens(ctx context.Context) (*oauth2.Token, error) {
	l := log.With().Str("ctx", "valorant").Logger()

	init := &authInitBody{
		ClientID:     authClientID,
		Nonce:        uuid.NewString(),
		RedirectURI:  authRedirectURI,
		ResponseType: "token id_token",
		Scope:        authScope,
	}
	if _, err := exchange[authResponse](c, ctx, http.MethodPost, c.opts.AuthURL, init, ""); err != nil {
		return nil, fmt.Errorf("auth initiate: %w", err)
	}

	submit := &authSubmitBody{
		Type:     "auth",
		Username: c.opts.Username,
		Password: c.opts.Password,
		Remember: true,
	}
	ar, err := exchange[authResponse](c, ctx, http.MethodPut, c.opts.AuthURL, submit, "")
	if err != nil {
		return nil, fmt.Errorf("auth submit: %w", err)
	}

	switch ar.Type {
	case "response":
	case "multifactor":
		return nil, ErrChallengeRequired
	case "auth":
		if ar.Error == "auth_failure" || ar.Error == "" {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("%w: provider error %q", ErrTokenParse, ar.Error)
	default:
		return nil, fmt.Errorf("%w: unexpected flow type %q", ErrTokenParse, ar.Type)
	}

	access, id, expiresIn, err := tokensFromRedirect(ar.Response.Parameters.URI)
	if err != nil {
		return nil, err
	}
	l.Debug().Msgf("access token: %s", utils.TruncateSecret(access, 8))

	ent, err := c.entitlement(ctx, access)
	if err != nil {
		return nil, err
	}
	return buildToken(access, id, ent, expiresIn), nil
}

// reauthTokens renews the token set using the existing cookie jar: the
// authorize endpoint redirects straight back with fresh tokens in the
// Location fragment. A rejected jar (no fragment in the redirect) falls back
// to a full credential login.
func (c *Client) reauthTokens(ctx context.Context) (*oauth2.Token, error) {
	l := log.With().Str("ctx", "valorant").Logger()

	q := url.Values{}
	q.Set("client_id", authClientID)
	q.Set("redirect_uri", authRedirectURI)
	q.Set("response_type", "token id_token")
	q.Set("nonce", uuid.NewString())
	q.Set("scope", authScope)

	resp, err := c.send(ctx, http.MethodGet, c.opts.ReauthURL+"?"+q.Encode(), nil, 0, "", "")
	if err != nil {
		return nil, err
	}
	access, id, expiresIn, err := tokensFromRedirect(resp.Header.Get("Location"))
	if err != nil {
		if c.opts.Username == "" {
			return nil, err
		}
		l.Debug().Msg("cookie session rejected, falling back to full login")
		return c.loginTokens(ctx)
	}

	ent, err := c.entitlement(ctx, access)
	if err != nil {
		return nil, err
	}
	return buildToken(access, id, ent, expiresIn), nil
}

// entitlement exchanges a valid access token for the entitlement token
// required alongside it on the game-data endpoints.
func (c *Client) entitlement(ctx context.Context, access string) (string, error) {
	er, err := exchange[entitlementsResponse](c, ctx, http.MethodPost, c.opts.EntitlementsURL, map[string]any{}, access)
	if err != nil {
		return "", err
	}
	if er.EntitlementsToken == "" {
		return "", fmt.Errorf("%w: empty entitlements token", ErrTokenParse)
	}
	return er.EntitlementsToken, nil
}

// tokensFromRedirect extracts the access and identity tokens from the
// fragment of the redirect target produced by the auth flow.
func tokensFromRedirect(raw string) (access, id string, expiresIn int, err error) {
	if raw == "" {
		return "", "", 0, fmt.Errorf("%w: missing redirect target", ErrTokenParse)
	}
	u, err := url.Parse(raw)
	if err != nil {
		return "", "", 0, fmt.Errorf("%w: %s", ErrTokenParse, err)
	}
	frag, err := url.ParseQuery(u.Fragment)
	if err != nil {
		return "", "", 0, fmt.Errorf("%w: %s", ErrTokenParse, err)
	}
	access, id = frag.Get("access_token"), frag.Get("id_token")
	if access == "" || id == "" {
		return "", "", 0, fmt.Errorf("%w: redirect fragment has no tokens", ErrTokenParse)
	}
	expiresIn, _ = strconv.Atoi(frag.Get("expires_in"))
	return access, id, expiresIn, nil
}

// buildToken assembles the full token set. Expiry prefers the access token's
// own exp claim over the fragment's expires_in.
func buildToken(access, id, ent string, expiresIn int) *oauth2.Token {
	expiry := tokenExpiry(access)
	if expiry.IsZero() && expiresIn > 0 {
		expiry = time.Now().Add(time.Duration(expiresIn) * time.Second)
	}
	return (&oauth2.Token{
		AccessToken: access,
		TokenType:   "Bearer",
		Expiry:      expiry,
	}).WithExtra(map[string]any{
		"id_token":           id,
		"entitlements_token": ent,
	})
}

// tokenExpiry reads the exp claim without verifying the signature. The
// client only needs the timestamp, trust comes from the TLS channel.
func tokenExpiry(access string) time.Time {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(access, claims); err != nil {
		return time.Time{}
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return time.Time{}
	}
	return exp.Time
}

// tokenSubject reads the sub claim (the account uuid) without verifying the
// signature.
func tokenSubject(access string) string {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(access, claims); err != nil {
		return ""
	}
	sub, err := claims.GetSubject()
	if err != nil {
		return ""
	}
	return sub
}

func tokenExtra(t *oauth2.Token, key string) string {
	if t == nil {
		return ""
	}
	if v, ok := t.Extra(key).(string); ok {
		return v
	}
	return ""
}

type geoBody struct {
	IDToken string `json:"id_token"`
}

type geoResponse struct {
	Affinities struct {
		Live string `json:"live"`
	} `json:"affinities"`
}

// resolveRegion asks the geolocation service for the account's live affinity
// and maps it through the static region table. Same identity token, same
// table, same result; an unknown affinity means the table is stale and is
// not retried.
func (c *Client) resolveRegion(ctx context.Context) (region.Info, error) {
	if c.opts.Affinity != "" {
		return region.FromAffinity(c.opts.Affinity)
	}
	tok := c.ts.current()
	if tok == nil {
		return region.Info{}, ErrNotAuthenticated
	}
	geo, err := fetch[geoResponse](c, ctx, http.MethodPut, c.opts.GeoURL, &geoBody{
		IDToken: tokenExtra(tok, "id_token"),
	}, hdrJSON)
	if err != nil {
		return region.Info{}, err
	}
	return region.FromAffinity(geo.Affinities.Live)
}

type UserInfoParams struct {
	Context context.Context
}

type UserAcct struct {
	Type      int    `json:"type"`
	State     string `json:"state"`
	GameName  string `json:"game_name"`
	TagLine   string `json:"tag_line"`
	CreatedAt int64  `json:"created_at"`
}

type UserInfo struct {
	Country      string   `json:"country"`
	Sub          string   `json:"sub"`
	EmailV       bool     `json:"email_verified"`
	PlayerLocale string   `json:"player_locale"`
	Acct         UserAcct `json:"acct"`
	JTI          string   `json:"jti"`
}

// UserInfo fetches the account identity behind the current access token.
func (c *Client) UserInfo(p *UserInfoParams) (*UserInfo, error) {
	if p.Context == nil {
		p.Context = context.Background()
	}
	return fetch[UserInfo](c, p.Context, http.MethodPost, c.opts.UserinfoURL, map[string]any{}, hdrJSON)
}
