package valorant

import (
	"context"
	"fmt"
	"net/http"
)

type ContentParams struct {
	Context context.Context
}

type ContentSeason struct {
	ID        string `json:"ID"`
	Name      string `json:"Name"`
	Type      string `json:"Type"`
	StartTime string `json:"StartTime"`
	EndTime   string `json:"EndTime"`
	IsActive  bool   `json:"IsActive"`
}

type ContentEvent struct {
	ID        string `json:"ID"`
	Name      string `json:"Name"`
	StartTime string `json:"StartTime"`
	EndTime   string `json:"EndTime"`
	IsActive  bool   `json:"IsActive"`
}

type ContentResponse struct {
	DisabledIDs []string        `json:"DisabledIDs"`
	Seasons     []ContentSeason `json:"Seasons"`
	Events      []ContentEvent  `json:"Events"`
}

// Content fetches the season and event catalog for the resolved region.
// The payload is large, see RespMaxBytes.
func (c *Client) Content(p *ContentParams) (*ContentResponse, error) {
	if p.Context == nil {
		p.Context = context.Background()
	}
	return fetch[ContentResponse](
		c, p.Context, http.MethodGet,
		c.routes.PD+"/content-service/v3/content",
		nil, hdrEnt|hdrPlatform|hdrVersion,
	)
}

type GameConfigParams struct {
	Context context.Context
}

type GameConfigResponse struct {
	LastApplication string            `json:"LastApplication"`
	Collapsed       map[string]string `json:"Collapsed"`
}

// GameConfig fetches the regional client configuration flags.
func (c *Client) GameConfig(p *GameConfigParams) (*GameConfigResponse, error) {
	if p.Context == nil {
		p.Context = context.Background()
	}
	return fetch[GameConfigResponse](
		c, p.Context, http.MethodGet,
		fmt.Sprintf("%s/v1/config/%s", c.routes.PD, c.region.Region),
		nil, hdrEnt,
	)
}
