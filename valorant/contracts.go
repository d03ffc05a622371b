package valorant

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
)

type ContractsParams struct {
	PlayerID string

	Context context.Context
}

type ContractsResponse struct {
	Version               int             `json:"Version"`
	Subject               string          `json:"Subject"`
	Contracts             json.RawMessage `json:"Contracts"`
	ActiveSpecialContract string          `json:"ActiveSpecialContract"`
	Missions              json.RawMessage `json:"Missions"`
	MissionMetadata       json.RawMessage `json:"MissionMetadata"`
}

// Contracts fetches agent contract and mission progress of a player.
func (c *Client) Contracts(p *ContractsParams) (*ContractsResponse, error) {
	if p.Context == nil {
		p.Context = context.Background()
	}
	pid := p.PlayerID
	if pid == "" {
		pid = c.puuid
	}
	return fetch[ContractsResponse](
		c, p.Context, http.MethodGet,
		fmt.Sprintf("%s/contracts/v1/contracts/%s", c.routes.PD, pid),
		nil, hdrEnt|hdrVersion,
	)
}
