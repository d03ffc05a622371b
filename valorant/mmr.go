package valorant

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
)

type MMRParams struct {
	PlayerID string

	Context context.Context
}

type MMRResponse struct {
	Version                 int64           `json:"Version"`
	Subject                 string          `json:"Subject"`
	QueueSkills             json.RawMessage `json:"QueueSkills"`
	LatestCompetitiveUpdate json.RawMessage `json:"LatestCompetitiveUpdate"`
	IsLeaderboardAnonymized bool            `json:"IsLeaderboardAnonymized"`
	IsActRankBadgeHidden    bool            `json:"IsActRankBadgeHidden"`
}

// MMR fetches the ranked skill data of a player.
func (c *Client) MMR(p *MMRParams) (*MMRResponse, error) {
	if p.Context == nil {
		p.Context = context.Background()
	}
	pid := p.PlayerID
	if pid == "" {
		pid = c.puuid
	}
	return fetch[MMRResponse](
		c, p.Context, http.MethodGet,
		fmt.Sprintf("%s/mmr/v1/players/%s", c.routes.PD, pid),
		nil, hdrEnt|hdrPlatform|hdrVersion,
	)
}

type LeaderboardParams struct {
	SeasonID   string
	StartIndex int
	// Size defaults to 510, the page size the in-game leaderboard uses.
	Size int
	// Query filters by game name when non-empty.
	Query string

	Context context.Context
}

type LeaderboardPlayer struct {
	PlayerCardID    string `json:"PlayerCardID"`
	TitleID         string `json:"TitleID"`
	IsBanned        bool   `json:"IsBanned"`
	IsAnonymized    bool   `json:"IsAnonymized"`
	PUUID           string `json:"puuid"`
	GameName        string `json:"gameName"`
	TagLine         string `json:"tagLine"`
	LeaderboardRank int    `json:"leaderboardRank"`
	RankedRating    int    `json:"rankedRating"`
	NumberOfWins    int    `json:"numberOfWins"`
	CompetitiveTier int    `json:"competitiveTier"`
}

type LeaderboardResponse struct {
	Deployment   string              `json:"Deployment"`
	QueueID      string              `json:"QueueID"`
	SeasonID     string              `json:"SeasonID"`
	Players      []LeaderboardPlayer `json:"Players"`
	TotalPlayers int                 `json:"TotalPlayers"`
}

// Leaderboard fetches a page of the competitive leaderboard for a season.
func (c *Client) Leaderboard(p *LeaderboardParams) (*LeaderboardResponse, error) {
	if p.Context == nil {
		p.Context = context.Background()
	}
	if p.Size == 0 {
		p.Size = 510
	}
	params := url.Values{}
	params.Set("startIndex", fmt.Sprint(p.StartIndex))
	params.Set("size", fmt.Sprint(p.Size))
	if p.Query != "" {
		params.Set("query", p.Query)
	}
	return fetch[LeaderboardResponse](
		c, p.Context, http.MethodGet,
		fmt.Sprintf("%s/mmr/v1/leaderboards/%s?%s", c.routes.PD, p.SeasonID, params.Encode()),
		nil, hdrEnt|hdrVersion,
	)
}

type PenaltiesParams struct {
	Context context.Context
}

type PenaltiesResponse struct {
	Subject   string            `json:"Subject"`
	Penalties []json.RawMessage `json:"Penalties"`
	Version   int64             `json:"Version"`
}

// Penalties fetches the active matchmaking restrictions of the session
// account.
func (c *Client) Penalties(p *PenaltiesParams) (*PenaltiesResponse, error) {
	if p.Context == nil {
		p.Context = context.Background()
	}
	return fetch[PenaltiesResponse](
		c, p.Context, http.MethodGet,
		c.routes.PD+"/restrictions/v3/penalties",
		nil, hdrEnt|hdrPlatform,
	)
}
