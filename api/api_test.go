package api

import (
	"io"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/nsf/jsondiff"

	"pedro.to/valgo/region"
	"pedro.to/valgo/valorant"
)

// fakeClient stubs the Provider surface with canned payloads.
type fakeClient struct {
	storefront *valorant.StorefrontResponse
	wallet     *valorant.WalletResponse
	history    *valorant.MatchHistoryResponse
	mmr        *valorant.MMRResponse
	user       *valorant.UserInfo
	err        error

	historyParams *valorant.MatchHistoryParams
}

func (f *fakeClient) Storefront(p *valorant.StorefrontParams) (*valorant.StorefrontResponse, error) {
	return f.storefront, f.err
}

func (f *fakeClient) Wallet(p *valorant.WalletParams) (*valorant.WalletResponse, error) {
	return f.wallet, f.err
}

func (f *fakeClient) MatchHistory(p *valorant.MatchHistoryParams) (*valorant.MatchHistoryResponse, error) {
	f.historyParams = p
	return f.history, f.err
}

func (f *fakeClient) MMR(p *valorant.MMRParams) (*valorant.MMRResponse, error) {
	return f.mmr, f.err
}

func (f *fakeClient) User() *valorant.UserInfo {
	return f.user
}

func (f *fakeClient) PUUID() string {
	if f.user == nil {
		return ""
	}
	return f.user.Sub
}

func (f *fakeClient) Region() region.Info {
	r, _ := region.FromAffinity("na1")
	return r
}

func jsonBody(t *testing.T, app *fiber.App, path string, wantStatus int) []byte {
	t.Helper()
	req := httptest.NewRequest("GET", path, nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != wantStatus {
		t.Fatalf("expected http %d, got %d", wantStatus, resp.StatusCode)
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatal(err)
	}
	return body
}

func diffJSON(t *testing.T, body, wantJson []byte) {
	t.Helper()
	opts := jsondiff.DefaultConsoleOptions()
	if res, diff := jsondiff.Compare(body, wantJson, &opts); res != jsondiff.FullMatch {
		t.Fatal(diff)
	}
}

func TestWallet(t *testing.T) {
	t.Parallel()
	wantJson := []byte(`{"data":{"balances":{"85ad13f7-3d1b-5128-9eb2-7cd8ee0b5741":475,"e59aa87c-4cbf-517a-5983-6e81511be9b7":80}},"errors":[]}`)

	api := New(APIOpts{Client: &fakeClient{
		wallet: &valorant.WalletResponse{Balances: map[string]int{
			"85ad13f7-3d1b-5128-9eb2-7cd8ee0b5741": 475,
			"e59aa87c-4cbf-517a-5983-6e81511be9b7": 80,
		}},
	}})

	app := fiber.New()
	app.Get("/wallet", api.Wallet)

	diffJSON(t, jsonBody(t, app, "/wallet", 200), wantJson)
}

func TestWalletUpstreamError(t *testing.T) {
	t.Parallel()
	wantJson := []byte(`{"data":{"balances":{}},"errors":["Riot session rejected"]}`)

	api := New(APIOpts{Client: &fakeClient{err: valorant.ErrUnauthorized}})

	app := fiber.New()
	app.Get("/wallet", api.Wallet)

	diffJSON(t, jsonBody(t, app, "/wallet", 502), wantJson)
}

func TestStorefront(t *testing.T) {
	t.Parallel()
	wantJson := []byte(`{"data":{"storefront":{"FeaturedBundle":null,"SkinsPanelLayout":{"SingleItemOffers":["offer-1","offer-2"],"SingleItemOffersRemainingDurationInSeconds":37143},"BonusStore":null}},"errors":[]}`)

	api := New(APIOpts{Client: &fakeClient{
		storefront: &valorant.StorefrontResponse{
			SkinsPanelLayout: valorant.SkinsPanelLayout{
				SingleItemOffers: []string{"offer-1", "offer-2"},
				SingleItemOffersRemainingDurationInSeconds: 37143,
			},
		},
	}})

	app := fiber.New()
	app.Get("/storefront", api.Storefront)

	diffJSON(t, jsonBody(t, app, "/storefront", 200), wantJson)
}

func TestHistoryQueryParams(t *testing.T) {
	t.Parallel()
	fake := &fakeClient{
		history: &valorant.MatchHistoryResponse{
			Total: 42,
			History: []valorant.MatchHistoryEntry{
				{MatchID: "m-1", GameStartTime: 1700000000000, QueueID: "competitive"},
			},
		},
	}
	api := New(APIOpts{Client: fake})

	app := fiber.New()
	app.Get("/history", api.History)

	wantJson := []byte(`{"data":{"matches":[{"MatchID":"m-1","GameStartTime":1700000000000,"QueueID":"competitive"}],"total":42},"errors":[]}`)
	diffJSON(t, jsonBody(t, app, "/history?start=5&end=10&queue=competitive", 200), wantJson)

	if fake.historyParams.StartIndex != 5 || fake.historyParams.EndIndex != 10 || fake.historyParams.Queue != "competitive" {
		t.Fatalf("query params not forwarded: %+v", fake.historyParams)
	}
}

func TestHistoryBadPaging(t *testing.T) {
	t.Parallel()
	api := New(APIOpts{Client: &fakeClient{}})

	app := fiber.New()
	app.Get("/history", api.History)

	wantJson := []byte(`{"data":{"matches":[],"total":0},"errors":["Bad start value"]}`)
	diffJSON(t, jsonBody(t, app, "/history?start=five", 400), wantJson)
}

func TestProfile(t *testing.T) {
	t.Parallel()
	wantJson := []byte(`{"data":{"puuid":"p-1","game_name":"Jett","tag_line":"NA1","region":"na1","shard":"na1"},"errors":[]}`)

	api := New(APIOpts{Client: &fakeClient{
		user: &valorant.UserInfo{
			Sub: "p-1",
			Acct: valorant.UserAcct{
				GameName: "Jett",
				TagLine:  "NA1",
			},
		},
	}})

	app := fiber.New()
	app.Get("/profile", api.Profile)

	diffJSON(t, jsonBody(t, app, "/profile", 200), wantJson)
}

func TestProfileUnauthenticated(t *testing.T) {
	t.Parallel()
	api := New(APIOpts{Client: &fakeClient{}})

	app := fiber.New()
	app.Get("/profile", api.Profile)

	wantJson := []byte(`{"data":{"puuid":"","game_name":"","tag_line":"","region":"","shard":""},"errors":["Not authenticated"]}`)
	diffJSON(t, jsonBody(t, app, "/profile", 503), wantJson)
}
