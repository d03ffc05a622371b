package valorant

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
)

// Owned item type ids for OwnedItems.
const (
	ItemTypeAgents       = "01bb38e1-da47-4e6a-9b3d-945fe4655707"
	ItemTypeContracts    = "f85cb6f7-33e5-4dc8-b609-ec7212301948"
	ItemTypeSprays       = "d5f120f8-ff8c-4aac-92ea-f2b5acbe9475"
	ItemTypeGunBuddies   = "dd3bf334-87f3-40bd-b043-682a57a8dc3a"
	ItemTypePlayerCards  = "3f296c07-64c3-494c-923b-fe692a4fa1bd"
	ItemTypeSkins        = "e7c63390-eda7-46e0-bb7a-a6abdacd2433"
	ItemTypeSkinVariants = "3ad1b2b2-acdb-4524-852f-954a76ddae0a"
	ItemTypePlayerTitles = "de7caa6b-adf7-4588-bbd1-143831e786c6"
)

type StorefrontParams struct {
	PlayerID string

	Context context.Context
}

type SkinsPanelLayout struct {
	SingleItemOffers                           []string `json:"SingleItemOffers"`
	SingleItemOffersRemainingDurationInSeconds int      `json:"SingleItemOffersRemainingDurationInSeconds"`
}

type StorefrontResponse struct {
	FeaturedBundle   json.RawMessage  `json:"FeaturedBundle"`
	SkinsPanelLayout SkinsPanelLayout `json:"SkinsPanelLayout"`
	BonusStore       json.RawMessage  `json:"BonusStore"`
}

// Storefront fetches the daily rotating shop of a player.
func (c *Client) Storefront(p *StorefrontParams) (*StorefrontResponse, error) {
	if p.Context == nil {
		p.Context = context.Background()
	}
	pid := p.PlayerID
	if pid == "" {
		pid = c.puuid
	}
	return fetch[StorefrontResponse](
		c, p.Context, http.MethodGet,
		fmt.Sprintf("%s/store/v2/storefront/%s", c.routes.PD, pid),
		nil, hdrEnt|hdrPlatform|hdrVersion,
	)
}

type WalletParams struct {
	PlayerID string

	Context context.Context
}

type WalletResponse struct {
	// Balances maps currency id to amount (VP, radianite, kingdom
	// credits).
	Balances map[string]int `json:"Balances"`
}

// Wallet fetches the currency balances of a player.
func (c *Client) Wallet(p *WalletParams) (*WalletResponse, error) {
	if p.Context == nil {
		p.Context = context.Background()
	}
	pid := p.PlayerID
	if pid == "" {
		pid = c.puuid
	}
	return fetch[WalletResponse](
		c, p.Context, http.MethodGet,
		fmt.Sprintf("%s/store/v1/wallet/%s", c.routes.PD, pid),
		nil, hdrEnt,
	)
}

type PricesParams struct {
	Context context.Context
}

type OfferReward struct {
	ItemTypeID string `json:"ItemTypeID"`
	ItemID     string `json:"ItemID"`
	Quantity   int    `json:"Quantity"`
}

type Offer struct {
	OfferID          string         `json:"OfferID"`
	IsDirectPurchase bool           `json:"IsDirectPurchase"`
	StartDate        string         `json:"StartDate"`
	Cost             map[string]int `json:"Cost"`
	Rewards          []OfferReward  `json:"Rewards"`
}

type PricesResponse struct {
	Offers []Offer `json:"Offers"`
}

// Prices fetches the full store offer catalog with costs.
func (c *Client) Prices(p *PricesParams) (*PricesResponse, error) {
	if p.Context == nil {
		p.Context = context.Background()
	}
	return fetch[PricesResponse](
		c, p.Context, http.MethodGet,
		c.routes.PD+"/store/v1/offers/",
		nil, hdrEnt,
	)
}

type OwnedItemsParams struct {
	PlayerID string
	// ItemType is one of the ItemType constants.
	ItemType string

	Context context.Context
}

type OwnedItem struct {
	TypeID     string `json:"TypeID"`
	ItemID     string `json:"ItemID"`
	InstanceID string `json:"InstanceID"`
}

type OwnedItemsResponse struct {
	ItemTypeID   string      `json:"ItemTypeID"`
	Entitlements []OwnedItem `json:"Entitlements"`
}

// OwnedItems fetches the items of one type owned by a player.
func (c *Client) OwnedItems(p *OwnedItemsParams) (*OwnedItemsResponse, error) {
	if p.Context == nil {
		p.Context = context.Background()
	}
	pid := p.PlayerID
	if pid == "" {
		pid = c.puuid
	}
	return fetch[OwnedItemsResponse](
		c, p.Context, http.MethodGet,
		fmt.Sprintf("%s/store/v1/entitlements/%s/%s", c.routes.PD, pid, p.ItemType),
		nil, hdrEnt,
	)
}

type ItemUpgradesParams struct {
	Context context.Context
}

type ItemUpgradesResponse struct {
	Definitions []json.RawMessage `json:"Definitions"`
}

// ItemUpgrades fetches the upgradeable item definitions (radianite
// upgrades).
func (c *Client) ItemUpgrades(p *ItemUpgradesParams) (*ItemUpgradesResponse, error) {
	if p.Context == nil {
		p.Context = context.Background()
	}
	return fetch[ItemUpgradesResponse](
		c, p.Context, http.MethodGet,
		c.routes.PD+"/contract-definitions/v3/item-upgrades",
		nil, hdrEnt,
	)
}
