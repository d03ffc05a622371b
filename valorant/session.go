package valorant

import (
	"context"
	"net/http"
	"net/url"
	"time"

	"pedro.to/valgo/credstore"
	"pedro.to/valgo/region"
)

// Restore rebuilds the session from a saved snapshot without sending
// credentials. The restored token set is validated against the user-info
// endpoint: a locally expired token renews through the restored cookie jar
// and a rejected jar surfaces the auth error (falling back to a full login
// when Opts carries credentials).
func (c *Client) Restore(ctx context.Context, s *credstore.Session) error {
	if err := c.ensureVersion(ctx); err != nil {
		return err
	}
	u, err := url.Parse(c.opts.AuthURL)
	if err != nil {
		return err
	}
	cookies := make([]*http.Cookie, 0, len(s.Cookies))
	for _, ck := range s.Cookies {
		cookies = append(cookies, &http.Cookie{
			Name:  ck.Name,
			Value: ck.Value,
			Path:  "/",
		})
	}
	c.c.Jar.SetCookies(u, cookies)

	info, err := region.FromAffinity(s.Affinity)
	if err != nil {
		return err
	}
	c.region = info
	c.routes = region.Routes(info)
	c.puuid = s.PUUID

	tok := buildToken(s.AccessToken, s.IDToken, s.EntitlementToken, 0)
	if tok.Expiry.IsZero() {
		tok.Expiry = s.ExpiresAt
	}
	if err := c.ts.set(tok); err != nil {
		return err
	}

	usr, err := c.UserInfo(&UserInfoParams{Context: ctx})
	if err != nil {
		return err
	}
	c.user = usr
	c.puuid = usr.Sub
	return nil
}

// Session snapshots the current session for persistence. Fails with
// ErrNotAuthenticated before a completed Login or Restore.
func (c *Client) Session() (*credstore.Session, error) {
	tok := c.ts.current()
	if tok == nil || c.user == nil {
		return nil, ErrNotAuthenticated
	}
	u, err := url.Parse(c.opts.AuthURL)
	if err != nil {
		return nil, err
	}
	raw := c.c.Jar.Cookies(u)
	cookies := make([]credstore.Cookie, 0, len(raw))
	for _, ck := range raw {
		cookies = append(cookies, credstore.Cookie{
			Name:  ck.Name,
			Value: ck.Value,
		})
	}
	return &credstore.Session{
		PUUID:            c.puuid,
		GameName:         c.user.Acct.GameName,
		TagLine:          c.user.Acct.TagLine,
		Affinity:         c.region.Region,
		AccessToken:      tok.AccessToken,
		IDToken:          tokenExtra(tok, "id_token"),
		EntitlementToken: tokenExtra(tok, "entitlements_token"),
		ExpiresAt:        tok.Expiry,
		Cookies:          cookies,
		SavedAt:          time.Now(),
	}, nil
}
