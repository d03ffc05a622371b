package valorant

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
)

type PregamePlayerParams struct {
	PlayerID string

	Context context.Context
}

type PregamePlayerResponse struct {
	Subject string `json:"Subject"`
	MatchID string `json:"MatchID"`
	Version int64  `json:"Version"`
}

// PregamePlayer fetches the agent-select match the player currently sits
// in. 404 when the player is not in agent select.
func (c *Client) PregamePlayer(p *PregamePlayerParams) (*PregamePlayerResponse, error) {
	if p.Context == nil {
		p.Context = context.Background()
	}
	pid := p.PlayerID
	if pid == "" {
		pid = c.puuid
	}
	return fetch[PregamePlayerResponse](
		c, p.Context, http.MethodGet,
		fmt.Sprintf("%s/pregame/v1/players/%s", c.routes.GLZ, pid),
		nil, hdrEnt,
	)
}

type PregameMatchParams struct {
	// MatchID defaults to the session player's current pregame match.
	MatchID string

	Context context.Context
}

type PregameMatchResponse struct {
	ID                   string          `json:"ID"`
	Version              int64           `json:"Version"`
	Teams                json.RawMessage `json:"Teams"`
	AllyTeam             json.RawMessage `json:"AllyTeam"`
	EnemyTeam            json.RawMessage `json:"EnemyTeam"`
	Mode                 string          `json:"Mode"`
	MapID                string          `json:"MapID"`
	QueueID              string          `json:"QueueID"`
	PregameState         string          `json:"PregameState"`
	PhaseTimeRemainingNS int64           `json:"PhaseTimeRemainingNS"`
}

// PregameMatch fetches the agent-select state of a match.
func (c *Client) PregameMatch(p *PregameMatchParams) (*PregameMatchResponse, error) {
	if p.Context == nil {
		p.Context = context.Background()
	}
	mid, err := c.pregameMatchID(p.Context, p.MatchID)
	if err != nil {
		return nil, err
	}
	return fetch[PregameMatchResponse](
		c, p.Context, http.MethodGet,
		fmt.Sprintf("%s/pregame/v1/matches/%s", c.routes.GLZ, mid),
		nil, hdrEnt,
	)
}

type PregameLoadoutParams struct {
	MatchID string

	Context context.Context
}

type PregameLoadoutResponse struct {
	Loadouts      json.RawMessage `json:"Loadouts"`
	LoadoutsValid bool            `json:"LoadoutsValid"`
}

// PregameLoadout fetches the visible loadouts during agent select.
func (c *Client) PregameLoadout(p *PregameLoadoutParams) (*PregameLoadoutResponse, error) {
	if p.Context == nil {
		p.Context = context.Background()
	}
	mid, err := c.pregameMatchID(p.Context, p.MatchID)
	if err != nil {
		return nil, err
	}
	return fetch[PregameLoadoutResponse](
		c, p.Context, http.MethodGet,
		fmt.Sprintf("%s/pregame/v1/matches/%s/loadouts", c.routes.GLZ, mid),
		nil, hdrEnt,
	)
}

type SelectAgentParams struct {
	AgentID string
	MatchID string

	Context context.Context
}

// SelectAgent hovers an agent in agent select.
func (c *Client) SelectAgent(p *SelectAgentParams) (*PregameMatchResponse, error) {
	if p.Context == nil {
		p.Context = context.Background()
	}
	mid, err := c.pregameMatchID(p.Context, p.MatchID)
	if err != nil {
		return nil, err
	}
	return fetch[PregameMatchResponse](
		c, p.Context, http.MethodPost,
		fmt.Sprintf("%s/pregame/v1/matches/%s/select/%s", c.routes.GLZ, mid, p.AgentID),
		nil, hdrEnt,
	)
}

type LockAgentParams struct {
	AgentID string
	MatchID string

	Context context.Context
}

// LockAgent locks the hovered agent. Irreversible for the round.
func (c *Client) LockAgent(p *LockAgentParams) (*PregameMatchResponse, error) {
	if p.Context == nil {
		p.Context = context.Background()
	}
	mid, err := c.pregameMatchID(p.Context, p.MatchID)
	if err != nil {
		return nil, err
	}
	return fetch[PregameMatchResponse](
		c, p.Context, http.MethodPost,
		fmt.Sprintf("%s/pregame/v1/matches/%s/lock/%s", c.routes.GLZ, mid, p.AgentID),
		nil, hdrEnt,
	)
}

type QuitPregameParams struct {
	MatchID string

	Context context.Context
}

// QuitPregame dodges the current agent select. The backend applies queue
// penalties.
func (c *Client) QuitPregame(p *QuitPregameParams) error {
	if p.Context == nil {
		p.Context = context.Background()
	}
	mid, err := c.pregameMatchID(p.Context, p.MatchID)
	if err != nil {
		return err
	}
	_, err = c.do(
		p.Context, http.MethodPost,
		fmt.Sprintf("%s/pregame/v1/matches/%s/quit", c.routes.GLZ, mid),
		nil, hdrEnt,
	)
	return err
}

// pregameMatchID resolves an empty match id to the session player's current
// pregame match.
func (c *Client) pregameMatchID(ctx context.Context, mid string) (string, error) {
	if mid != "" {
		return mid, nil
	}
	pp, err := c.PregamePlayer(&PregamePlayerParams{Context: ctx})
	if err != nil {
		return "", err
	}
	return pp.MatchID, nil
}
