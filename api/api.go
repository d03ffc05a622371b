package api

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"pedro.to/valgo/region"
	"pedro.to/valgo/valorant"
)

// Provider is the slice of the valorant client the handlers consume. Kept
// narrow so tests can stub it without a network.
type Provider interface {
	Storefront(p *valorant.StorefrontParams) (*valorant.StorefrontResponse, error)
	Wallet(p *valorant.WalletParams) (*valorant.WalletResponse, error)
	MatchHistory(p *valorant.MatchHistoryParams) (*valorant.MatchHistoryResponse, error)
	MMR(p *valorant.MMRParams) (*valorant.MMRResponse, error)
	User() *valorant.UserInfo
	PUUID() string
	Region() region.Info
}

type APIOpts struct {
	Client Provider
}

type API struct {
	client Provider
}

type APIResponse[T any] struct {
	Data   T        `json:"data"`
	Errors []string `json:"errors"`
}

func NewResponse[T any](data T) *APIResponse[T] {
	return &APIResponse[T]{
		Data:   data,
		Errors: make([]string, 0, 2),
	}
}

type ProfileResponse struct {
	PUUID    string `json:"puuid"`
	GameName string `json:"game_name"`
	TagLine  string `json:"tag_line"`
	Region   string `json:"region"`
	Shard    string `json:"shard"`
}

func (a *API) Profile(c *fiber.Ctx) error {
	resp := NewResponse(&ProfileResponse{})
	u := a.client.User()
	if u == nil {
		resp.Errors = append(resp.Errors, "Not authenticated")
		return c.Status(http.StatusServiceUnavailable).JSON(resp)
	}
	r := a.client.Region()
	resp.Data = &ProfileResponse{
		PUUID:    a.client.PUUID(),
		GameName: u.Acct.GameName,
		TagLine:  u.Acct.TagLine,
		Region:   r.Region,
		Shard:    r.Shard,
	}
	return c.Status(http.StatusOK).JSON(resp)
}

type StorefrontResponse struct {
	Storefront *valorant.StorefrontResponse `json:"storefront"`
}

func (a *API) Storefront(c *fiber.Ctx) error {
	resp := NewResponse(&StorefrontResponse{})
	sf, err := a.client.Storefront(&valorant.StorefrontParams{
		Context: c.UserContext(),
	})
	if err != nil {
		return a.fail(c, resp, err)
	}
	resp.Data.Storefront = sf
	return c.Status(http.StatusOK).JSON(resp)
}

type WalletResponse struct {
	Balances map[string]int `json:"balances"`
}

func (a *API) Wallet(c *fiber.Ctx) error {
	resp := NewResponse(&WalletResponse{
		Balances: make(map[string]int),
	})
	w, err := a.client.Wallet(&valorant.WalletParams{
		Context: c.UserContext(),
	})
	if err != nil {
		return a.fail(c, resp, err)
	}
	resp.Data.Balances = w.Balances
	return c.Status(http.StatusOK).JSON(resp)
}

type HistoryResponse struct {
	Matches []valorant.MatchHistoryEntry `json:"matches"`
	Total   int                          `json:"total"`
}

// History
// - `start` int first match index
// - `end` int last match index (capped by the backend at 25 per page)
// - `queue` string optional queue filter
func (a *API) History(c *fiber.Ctx) error {
	resp := NewResponse(&HistoryResponse{
		Matches: make([]valorant.MatchHistoryEntry, 0, 20),
	})
	start, err := strconv.Atoi(c.Query("start", "0"))
	if err != nil {
		resp.Errors = append(resp.Errors, "Bad start value")
		return c.Status(http.StatusBadRequest).JSON(resp)
	}
	end, err := strconv.Atoi(c.Query("end", "20"))
	if err != nil {
		resp.Errors = append(resp.Errors, "Bad end value")
		return c.Status(http.StatusBadRequest).JSON(resp)
	}

	h, err := a.client.MatchHistory(&valorant.MatchHistoryParams{
		StartIndex: start,
		EndIndex:   end,
		Queue:      c.Query("queue"),
		Context:    c.UserContext(),
	})
	if err != nil {
		return a.fail(c, resp, err)
	}
	resp.Data.Matches = append(resp.Data.Matches, h.History...)
	resp.Data.Total = h.Total
	return c.Status(http.StatusOK).JSON(resp)
}

type MMRResponse struct {
	MMR *valorant.MMRResponse `json:"mmr"`
}

func (a *API) MMR(c *fiber.Ctx) error {
	resp := NewResponse(&MMRResponse{})
	m, err := a.client.MMR(&valorant.MMRParams{
		PlayerID: c.Query("player"),
		Context:  c.UserContext(),
	})
	if err != nil {
		return a.fail(c, resp, err)
	}
	resp.Data.MMR = m
	return c.Status(http.StatusOK).JSON(resp)
}

// fail maps client errors to gateway-style responses: the viewer proxies a
// remote API, so upstream failures are 502/504, not 500.
func (a *API) fail(c *fiber.Ctx, resp any, err error) error {
	code := http.StatusInternalServerError
	msg := "Unexpected error"

	var se *valorant.StatusError
	switch {
	case errors.Is(err, valorant.ErrUnauthorized):
		code = http.StatusBadGateway
		msg = "Riot session rejected"
	case errors.Is(err, valorant.ErrTimeout):
		code = http.StatusGatewayTimeout
		msg = "Riot API timed out"
	case errors.As(err, &se):
		code = http.StatusBadGateway
		msg = "Riot API error " + strconv.Itoa(se.Code)
	case errors.Is(err, valorant.ErrMalformedResponse):
		code = http.StatusBadGateway
		msg = "Riot API returned garbage"
	}
	return c.Status(code).JSON(withError(resp, msg))
}

// withError appends msg to the Errors slice of an APIResponse without
// knowing its type parameter.
func withError(resp any, msg string) any {
	switch r := resp.(type) {
	case *APIResponse[*ProfileResponse]:
		r.Errors = append(r.Errors, msg)
	case *APIResponse[*StorefrontResponse]:
		r.Errors = append(r.Errors, msg)
	case *APIResponse[*WalletResponse]:
		r.Errors = append(r.Errors, msg)
	case *APIResponse[*HistoryResponse]:
		r.Errors = append(r.Errors, msg)
	case *APIResponse[*MMRResponse]:
		r.Errors = append(r.Errors, msg)
	}
	return resp
}

func New(opts APIOpts) *API {
	return &API{client: opts.Client}
}
