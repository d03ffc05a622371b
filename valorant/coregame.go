package valorant

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
)

type LiveGamePlayerParams struct {
	PlayerID string

	Context context.Context
}

type LiveGamePlayerResponse struct {
	Subject string `json:"Subject"`
	MatchID string `json:"MatchID"`
	Version int64  `json:"Version"`
}

// LiveGamePlayer fetches the running match the player currently plays in.
// 404 when the player is not in a match.
func (c *Client) LiveGamePlayer(p *LiveGamePlayerParams) (*LiveGamePlayerResponse, error) {
	if p.Context == nil {
		p.Context = context.Background()
	}
	pid := p.PlayerID
	if pid == "" {
		pid = c.puuid
	}
	return fetch[LiveGamePlayerResponse](
		c, p.Context, http.MethodGet,
		fmt.Sprintf("%s/core-game/v1/players/%s", c.routes.GLZ, pid),
		nil, hdrEnt,
	)
}

type LiveGameMatchParams struct {
	// MatchID defaults to the session player's current match.
	MatchID string

	Context context.Context
}

type LiveGameMatchResponse struct {
	MatchID         string          `json:"MatchID"`
	Version         int64           `json:"Version"`
	State           string          `json:"State"`
	MapID           string          `json:"MapID"`
	ModeID          string          `json:"ModeID"`
	Players         json.RawMessage `json:"Players"`
	MatchmakingData json.RawMessage `json:"MatchmakingData"`
}

// LiveGameMatch fetches the state of a running match.
func (c *Client) LiveGameMatch(p *LiveGameMatchParams) (*LiveGameMatchResponse, error) {
	if p.Context == nil {
		p.Context = context.Background()
	}
	mid, err := c.liveMatchID(p.Context, p.MatchID)
	if err != nil {
		return nil, err
	}
	return fetch[LiveGameMatchResponse](
		c, p.Context, http.MethodGet,
		fmt.Sprintf("%s/core-game/v1/matches/%s", c.routes.GLZ, mid),
		nil, hdrEnt,
	)
}

type LiveGameLoadoutParams struct {
	MatchID string

	Context context.Context
}

type LiveGameLoadoutResponse struct {
	Loadouts json.RawMessage `json:"Loadouts"`
}

// LiveGameLoadout fetches the loadouts of a running match.
func (c *Client) LiveGameLoadout(p *LiveGameLoadoutParams) (*LiveGameLoadoutResponse, error) {
	if p.Context == nil {
		p.Context = context.Background()
	}
	mid, err := c.liveMatchID(p.Context, p.MatchID)
	if err != nil {
		return nil, err
	}
	return fetch[LiveGameLoadoutResponse](
		c, p.Context, http.MethodGet,
		fmt.Sprintf("%s/core-game/v1/matches/%s/loadouts", c.routes.GLZ, mid),
		nil, hdrEnt,
	)
}

// liveMatchID resolves an empty match id to the session player's current
// match.
func (c *Client) liveMatchID(ctx context.Context, mid string) (string, error) {
	if mid != "" {
		return mid, nil
	}
	lp, err := c.LiveGamePlayer(&LiveGamePlayerParams{Context: ctx})
	if err != nil {
		return "", err
	}
	return lp.MatchID, nil
}
