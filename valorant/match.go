package valorant

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
)

type MatchHistoryParams struct {
	PlayerID   string
	StartIndex int
	// EndIndex defaults to 20. The backend caps pages at 25 entries.
	EndIndex int
	// Queue filters by queue id (competitive, unrated, deathmatch...).
	Queue string

	Context context.Context
}

type MatchHistoryEntry struct {
	MatchID       string `json:"MatchID"`
	GameStartTime int64  `json:"GameStartTime"`
	QueueID       string `json:"QueueID"`
}

type MatchHistoryResponse struct {
	Subject    string              `json:"Subject"`
	BeginIndex int                 `json:"BeginIndex"`
	EndIndex   int                 `json:"EndIndex"`
	Total      int                 `json:"Total"`
	History    []MatchHistoryEntry `json:"History"`
}

// MatchHistory fetches a window of a player's recent matches, newest first.
func (c *Client) MatchHistory(p *MatchHistoryParams) (*MatchHistoryResponse, error) {
	if p.Context == nil {
		p.Context = context.Background()
	}
	pid := p.PlayerID
	if pid == "" {
		pid = c.puuid
	}
	if p.EndIndex == 0 {
		p.EndIndex = 20
	}
	params := url.Values{}
	params.Set("startIndex", fmt.Sprint(p.StartIndex))
	params.Set("endIndex", fmt.Sprint(p.EndIndex))
	if p.Queue != "" {
		params.Set("queue", p.Queue)
	}
	return fetch[MatchHistoryResponse](
		c, p.Context, http.MethodGet,
		fmt.Sprintf("%s/match-history/v1/history/%s?%s", c.routes.PD, pid, params.Encode()),
		nil, hdrEnt,
	)
}

type MatchDetailsParams struct {
	MatchID string

	Context context.Context
}

// MatchDetailsResponse keeps the heavy sections raw. Note the match-details
// endpoint uses camelCase keys unlike most pd payloads.
type MatchDetailsResponse struct {
	MatchInfo    json.RawMessage `json:"matchInfo"`
	Players      json.RawMessage `json:"players"`
	Teams        json.RawMessage `json:"teams"`
	RoundResults json.RawMessage `json:"roundResults"`
	Kills        json.RawMessage `json:"kills"`
}

// MatchDetails fetches the full scoreboard of a finished match.
func (c *Client) MatchDetails(p *MatchDetailsParams) (*MatchDetailsResponse, error) {
	if p.Context == nil {
		p.Context = context.Background()
	}
	return fetch[MatchDetailsResponse](
		c, p.Context, http.MethodGet,
		fmt.Sprintf("%s/match-details/v1/matches/%s", c.routes.PD, p.MatchID),
		nil, hdrEnt,
	)
}
