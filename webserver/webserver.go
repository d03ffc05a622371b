package webserver

import (
	"net/http"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/template/handlebars/v2"
	"github.com/rs/zerolog/log"

	"pedro.to/valgo/api"
	cfg "pedro.to/valgo/config"
	"pedro.to/valgo/logger"
	"pedro.to/valgo/valorant"
)

// WebServer is the local storefront viewer: a handlebars page on / and the
// JSON api under /api. Meant to be bound to localhost, there is no web
// login.
type WebServer struct {
	sv     *fiber.App
	api    *api.API
	client *valorant.Client
}

// StartAndListen starts the web server. Shutdown() must be handled.
func (sv *WebServer) StartAndListen(port string) error {
	l := log.With().Str("ctx", "webserver").Logger()

	l.Info().Msg("initializing webserver...")
	app := sv.newServer()
	if err := app.Listen(":" + port); err != nil {
		return err
	}
	return nil
}

// Shutdown stops the server.
func (sv *WebServer) Shutdown() error {
	l := log.With().Str("ctx", "webserver").Logger()
	l.Info().Msg("shutting down webserver...")
	return sv.sv.Shutdown()
}

func (sv *WebServer) newServer() *fiber.App {
	l := log.With().Str("ctx", "webserver").Logger()

	engine := handlebars.New(cfg.WebserverViewsDir, ".hbs")
	app := fiber.New(fiber.Config{
		ReadTimeout:     10 * time.Second,
		WriteTimeout:    20 * time.Second,
		ReadBufferSize:  4096,
		WriteBufferSize: 4096,
		BodyLimit:       1 * 1024 * 1024,
		Concurrency:     256,
		Views:           engine,
	})
	app.Use(logger.Fiber())
	if cfg.IsProd {
		l.Info().Msgf("websv: ratelimit set to hits:%d, exp:%ds", cfg.WebRateLimitMaxConns, cfg.WebRateLimitExpSeconds)
		app.Use(limiter.New(limiter.Config{
			Next: func(c *fiber.Ctx) bool {
				return c.IP() == "127.0.0.1"
			},
			Max:               cfg.WebRateLimitMaxConns,
			Expiration:        time.Duration(cfg.WebRateLimitExpSeconds) * time.Second,
			LimiterMiddleware: limiter.SlidingWindow{},
			LimitReached: func(c *fiber.Ctx) error {
				l.Warn().Msgf("ratelimit reached (%s)", c.IP())
				return c.SendStatus(http.StatusTooManyRequests)
			},
		}))
	}

	l.Info().Msg("websv: setting up request handlers")
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.Status(http.StatusOK).Send([]byte("ok"))
	})
	app.Get("/", sv.Index)

	apiGroup := app.Group("/api")
	apiGroup.Get("/profile", sv.api.Profile)
	apiGroup.Get("/storefront", sv.api.Storefront)
	apiGroup.Get("/wallet", sv.api.Wallet)
	apiGroup.Get("/history", sv.api.History)
	apiGroup.Get("/mmr", sv.api.MMR)

	sv.sv = app
	return app
}

// Index renders the daily storefront page.
func (sv *WebServer) Index(c *fiber.Ctx) error {
	u := sv.client.User()
	if u == nil {
		return c.Status(http.StatusServiceUnavailable).SendString("not authenticated")
	}
	sf, err := sv.client.Storefront(&valorant.StorefrontParams{
		Context: c.UserContext(),
	})
	if err != nil {
		return c.Status(http.StatusBadGateway).SendString("storefront unavailable")
	}
	return c.Render("index", fiber.Map{
		"GameName":  u.Acct.GameName,
		"TagLine":   u.Acct.TagLine,
		"Region":    sv.client.Region().Region,
		"Offers":    sf.SkinsPanelLayout.SingleItemOffers,
		"ResetsIn":  sf.SkinsPanelLayout.SingleItemOffersRemainingDurationInSeconds / 3600,
	})
}

func New(client *valorant.Client) *WebServer {
	return &WebServer{
		client: client,
		api:    api.New(api.APIOpts{Client: client}),
	}
}
