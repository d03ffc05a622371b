package valorant

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
)

type AccountXPParams struct {
	// PlayerID defaults to the session's own account.
	PlayerID string

	Context context.Context
}

type AccountXPProgress struct {
	Level int `json:"Level"`
	XP    int `json:"XP"`
}

type AccountXPResponse struct {
	Version  int               `json:"Version"`
	Subject  string            `json:"Subject"`
	Progress AccountXPProgress `json:"Progress"`
	History  json.RawMessage   `json:"History"`
}

// AccountXP fetches the account level and experience progress.
func (c *Client) AccountXP(p *AccountXPParams) (*AccountXPResponse, error) {
	if p.Context == nil {
		p.Context = context.Background()
	}
	pid := p.PlayerID
	if pid == "" {
		pid = c.puuid
	}
	return fetch[AccountXPResponse](
		c, p.Context, http.MethodGet,
		fmt.Sprintf("%s/account-xp/v1/players/%s", c.routes.PD, pid),
		nil, hdrEnt,
	)
}

type LoadoutParams struct {
	PlayerID string

	Context context.Context
}

type LoadoutIdentity struct {
	PlayerCardID     string `json:"PlayerCardID"`
	PlayerTitleID    string `json:"PlayerTitleID"`
	AccountLevel     int    `json:"AccountLevel"`
	HideAccountLevel bool   `json:"HideAccountLevel"`
}

type LoadoutResponse struct {
	Subject   string          `json:"Subject"`
	Version   int             `json:"Version"`
	Guns      json.RawMessage `json:"Guns"`
	Sprays    json.RawMessage `json:"Sprays"`
	Identity  LoadoutIdentity `json:"Identity"`
	Incognito bool            `json:"Incognito"`
}

// Loadout fetches the equipped guns, sprays and identity of a player.
func (c *Client) Loadout(p *LoadoutParams) (*LoadoutResponse, error) {
	if p.Context == nil {
		p.Context = context.Background()
	}
	pid := p.PlayerID
	if pid == "" {
		pid = c.puuid
	}
	return fetch[LoadoutResponse](
		c, p.Context, http.MethodGet,
		fmt.Sprintf("%s/personalization/v2/players/%s/playerloadout", c.routes.PD, pid),
		nil, hdrEnt,
	)
}

type SetLoadoutParams struct {
	// Loadout is sent verbatim as the new loadout document. Fetch the
	// current one with Loadout, mutate and send it back.
	Loadout any

	Context context.Context
}

// SetLoadout replaces the session account's loadout. The endpoint only
// accepts the authenticated player's own loadout.
func (c *Client) SetLoadout(p *SetLoadoutParams) error {
	if p.Context == nil {
		p.Context = context.Background()
	}
	payload, err := marshalBody(p.Loadout)
	if err != nil {
		return err
	}
	_, err = c.do(
		p.Context, http.MethodPut,
		fmt.Sprintf("%s/personalization/v2/players/%s/playerloadout", c.routes.PD, c.puuid),
		payload, hdrEnt,
	)
	return err
}
