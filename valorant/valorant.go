package valorant

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/http/cookiejar"
	"time"

	"github.com/rs/zerolog/log"

	"pedro.to/valgo/region"
)

// Production endpoints for the auth family. Routed game-data servers are
// derived per region, see region.Routes.
const (
	AuthURL         = "https://auth.riotgames.com/api/v1/authorization"
	ReauthURL       = "https://auth.riotgames.com/authorize"
	EntitlementsURL = "https://entitlements.auth.riotgames.com/api/token/v1"
	UserinfoURL     = "https://auth.riotgames.com/userinfo"
	GeoURL          = "https://riot-geo.pas.si.riotgames.com/pas/v1/product/valorant"
	VersionURL      = "https://valorant-api.com/v1/version"
)

const (
	// RespMaxBytes is the response body read limit. The content service can
	// return payloads well over a megabyte.
	RespMaxBytes = 16 << 20

	DefaultTimeout = 15 * time.Second
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrChallengeRequired  = errors.New("auth challenge required")
	ErrTokenParse         = errors.New("unexpected auth response shape")
	ErrNotAuthenticated   = errors.New("client is not authenticated")

	ErrUnauthorized      = errors.New("unauthorized")
	ErrMalformedResponse = errors.New("malformed response body")
	ErrTimeout           = errors.New("request timed out")
)

// StatusError is returned for any non-2xx response that is not handled by
// the reauth policy. Body keeps the raw payload for the caller.
type StatusError struct {
	Code int
	Body []byte
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("unexpected status code %d: %.256s", e.Code, e.Body)
}

type Opts struct {
	Username string
	Password string

	// Endpoint overrides for the auth family. Empty values use production.
	AuthURL         string
	ReauthURL       string
	EntitlementsURL string
	UserinfoURL     string
	GeoURL          string
	VersionURL      string

	// Affinity pins the region, skipping the geolocation lookup.
	Affinity string
	// ClientVersion pins the X-Riot-ClientVersion header, skipping the
	// version metadata fetch when UserAgent is also set.
	ClientVersion string
	// UserAgent overrides the RiotClient user agent.
	UserAgent string

	// Timeout applies uniformly to every request. Zero means DefaultTimeout.
	Timeout time.Duration

	// Notify is invoked with every new token set, both from Login and from
	// reauth. Returning an error aborts the call that produced the tokens.
	Notify NotifyHandler

	Client *http.Client
}

type Client struct {
	opts *Opts
	c    *http.Client
	ts   *reauthTokenSource

	region  region.Info
	routes  region.Endpoints
	puuid   string
	user    *UserInfo
	version string
	ua      string
}

// Response is the raw result of a dispatched request.
type Response struct {
	Body       []byte
	StatusCode int
	Header     http.Header
}

// headerSet selects the extra headers a routed endpoint requires. The bearer
// access token is always attached.
type headerSet uint8

const (
	hdrEnt headerSet = 1 << iota
	hdrPlatform
	hdrVersion
	hdrJSON
)

func New(opts *Opts) (*Client, error) {
	if opts.AuthURL == "" {
		opts.AuthURL = AuthURL
	}
	if opts.ReauthURL == "" {
		opts.ReauthURL = ReauthURL
	}
	if opts.EntitlementsURL == "" {
		opts.EntitlementsURL = EntitlementsURL
	}
	if opts.UserinfoURL == "" {
		opts.UserinfoURL = UserinfoURL
	}
	if opts.GeoURL == "" {
		opts.GeoURL = GeoURL
	}
	if opts.VersionURL == "" {
		opts.VersionURL = VersionURL
	}
	if opts.Timeout == 0 {
		opts.Timeout = DefaultTimeout
	}

	c := opts.Client
	if c == nil {
		c = &http.Client{}
	}
	if c.Jar == nil {
		jar, err := cookiejar.New(nil)
		if err != nil {
			return nil, err
		}
		c.Jar = jar
	}
	c.Timeout = opts.Timeout
	// The cookie reauth redirect carries the tokens in its Location
	// fragment, so redirects are never followed.
	c.CheckRedirect = func(req *http.Request, via []*http.Request) error {
		return http.ErrUseLastResponse
	}

	cl := &Client{
		opts:    opts,
		c:       c,
		version: opts.ClientVersion,
		ua:      opts.UserAgent,
	}
	cl.ts = newReauthTokenSource(cl.reauthTokens, opts.Notify)
	return cl, nil
}

// Login runs the full startup flow: version metadata, credential handshake,
// entitlements, region resolution and the user-info fetch. It must complete
// before any routed endpoint call.
func (c *Client) Login(ctx context.Context) error {
	l := log.With().Str("ctx", "valorant").Logger()

	if err := c.ensureVersion(ctx); err != nil {
		return err
	}
	tok, err := c.loginTokens(ctx)
	if err != nil {
		return err
	}
	if err := c.ts.set(tok); err != nil {
		return err
	}
	c.puuid = tokenSubject(tok.AccessToken)

	info, err := c.resolveRegion(ctx)
	if err != nil {
		return err
	}
	c.region = info
	c.routes = region.Routes(info)

	u, err := c.UserInfo(&UserInfoParams{Context: ctx})
	if err != nil {
		return err
	}
	c.user = u
	c.puuid = u.Sub

	l.Info().Msgf(
		"authenticated as %s#%s [%s]",
		u.Acct.GameName, u.Acct.TagLine, c.region.Region,
	)
	return nil
}

// Region reports the resolved routing info. Zero before Login.
func (c *Client) Region() region.Info {
	return c.region
}

// Endpoints reports the routed base URLs. Zero before Login.
func (c *Client) Endpoints() region.Endpoints {
	return c.routes
}

// SetRoutes overrides the routed base URLs, e.g. to point the client at a
// local proxy. Login resets them from the resolved region.
func (c *Client) SetRoutes(pd, glz string) {
	if pd != "" {
		c.routes.PD = pd
	}
	if glz != "" {
		c.routes.GLZ = glz
	}
}

// PUUID is the authenticated account id.
func (c *Client) PUUID() string {
	return c.puuid
}

// User is the cached user-info payload from Login.
func (c *Client) User() *UserInfo {
	return c.user
}

// ClientVersion is the value sent as X-Riot-ClientVersion.
func (c *Client) ClientVersion() string {
	return c.version
}

// Tokens returns a snapshot of the current token set.
func (c *Client) Tokens() (Tokens, error) {
	t := c.ts.current()
	if t == nil {
		return Tokens{}, ErrNotAuthenticated
	}
	return Tokens{
		AccessToken:      t.AccessToken,
		IDToken:          tokenExtra(t, "id_token"),
		EntitlementToken: tokenExtra(t, "entitlements_token"),
		ExpiresAt:        t.Expiry,
	}, nil
}

// do dispatches one routed request. A 401/403 triggers exactly one forced
// token reauth and one retry; a second auth failure is final.
func (c *Client) do(ctx context.Context, method, url string, body []byte, h headerSet) (*Response, error) {
	tok, err := c.ts.token(ctx)
	if err != nil {
		return nil, err
	}
	resp, err := c.send(ctx, method, url, body, h, tok.AccessToken, tokenExtra(tok, "entitlements_token"))
	if err != nil {
		return nil, err
	}
	if resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden {
		log.Debug().
			Str("ctx", "valorant").
			Msgf("got %d from %s %s, reauthenticating", resp.StatusCode, method, url)
		tok, err = c.ts.force(ctx, tok)
		if err != nil {
			return nil, err
		}
		resp, err = c.send(ctx, method, url, body, h, tok.AccessToken, tokenExtra(tok, "entitlements_token"))
		if err != nil {
			return nil, err
		}
		if resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden {
			return nil, fmt.Errorf("%w: status %d: %.256s", ErrUnauthorized, resp.StatusCode, resp.Body)
		}
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &StatusError{Code: resp.StatusCode, Body: resp.Body}
	}
	return resp, nil
}

// send issues a single HTTP exchange with the standard header set. No
// status-code policy is applied here.
func (c *Client) send(ctx context.Context, method, url string, body []byte, h headerSet, access, ent string) (*Response, error) {
	var rd io.Reader
	if body != nil {
		rd = bytes.NewReader(body)
	}
	req, err := http.NewRequestWithContext(ctx, method, url, rd)
	if err != nil {
		return nil, err
	}
	if c.ua != "" {
		req.Header.Set("User-Agent", c.ua)
	}
	req.Header.Set("Accept", "application/json, text/plain, */*")
	req.Header.Set("Accept-Language", "en-US,en;q=0.9")
	if access != "" {
		req.Header.Set("Authorization", "Bearer "+access)
	}
	if h&hdrEnt != 0 {
		req.Header.Set("X-Riot-Entitlements-JWT", ent)
	}
	if h&hdrPlatform != 0 {
		req.Header.Set("X-Riot-ClientPlatform", clientPlatform)
	}
	if h&hdrVersion != 0 {
		req.Header.Set("X-Riot-ClientVersion", c.version)
	}
	if h&hdrJSON != 0 || body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.c.Do(req)
	if err != nil {
		if isTimeout(err) {
			return nil, fmt.Errorf("%w: %s", ErrTimeout, err)
		}
		return nil, err
	}
	defer resp.Body.Close()
	b, err := io.ReadAll(io.LimitReader(resp.Body, RespMaxBytes))
	if err != nil {
		return nil, err
	}
	return &Response{
		Body:       b,
		StatusCode: resp.StatusCode,
		Header:     resp.Header,
	}, nil
}

func isTimeout(err error) bool {
	var ne net.Error
	if errors.As(err, &ne) && ne.Timeout() {
		return true
	}
	return errors.Is(err, context.DeadlineExceeded)
}

// fetch dispatches through do and decodes into T.
func fetch[T any](c *Client, ctx context.Context, method, url string, body any, h headerSet) (*T, error) {
	payload, err := marshalBody(body)
	if err != nil {
		return nil, err
	}
	resp, err := c.do(ctx, method, url, payload, h)
	if err != nil {
		return nil, err
	}
	return decode[T](resp.Body)
}

// exchange issues one auth-family request outside the dispatcher: no reauth
// policy applies and the bearer token, if any, is the caller's.
func exchange[T any](c *Client, ctx context.Context, method, url string, body any, access string) (*T, error) {
	payload, err := marshalBody(body)
	if err != nil {
		return nil, err
	}
	resp, err := c.send(ctx, method, url, payload, hdrJSON, access, "")
	if err != nil {
		return nil, err
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &StatusError{Code: resp.StatusCode, Body: resp.Body}
	}
	return decode[T](resp.Body)
}

func marshalBody(body any) ([]byte, error) {
	if body == nil {
		return nil, nil
	}
	return json.Marshal(body)
}

func decode[T any](body []byte) (*T, error) {
	v := new(T)
	if len(body) == 0 {
		return v, nil
	}
	if err := json.Unmarshal(body, v); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrMalformedResponse, err)
	}
	return v, nil
}

// Server selects one of the two routed base URLs for Raw calls.
type Server int

const (
	PD Server = iota
	GLZ
)

type RawParams struct {
	Server Server
	Method string
	// Path is appended verbatim to the routed base URL and must start
	// with a slash.
	Path string
	Body any

	Context context.Context
}

// Raw dispatches an arbitrary routed call with the full header set and
// returns the raw JSON payload. Meant for endpoints without a typed wrapper.
func (c *Client) Raw(p *RawParams) (json.RawMessage, error) {
	if p.Context == nil {
		p.Context = context.Background()
	}
	if p.Method == "" {
		p.Method = http.MethodGet
	}
	base := c.routes.PD
	if p.Server == GLZ {
		base = c.routes.GLZ
	}
	var payload []byte
	if p.Body != nil {
		b, err := json.Marshal(p.Body)
		if err != nil {
			return nil, err
		}
		payload = b
	}
	resp, err := c.do(p.Context, p.Method, base+p.Path, payload, hdrEnt|hdrPlatform|hdrVersion)
	if err != nil {
		return nil, err
	}
	if len(resp.Body) == 0 {
		return json.RawMessage("null"), nil
	}
	if !json.Valid(resp.Body) {
		return nil, fmt.Errorf("%w: not json", ErrMalformedResponse)
	}
	return json.RawMessage(resp.Body), nil
}
