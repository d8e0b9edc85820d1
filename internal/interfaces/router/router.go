package router

import (
	"context"
	"errors"
	"net/http"

	"launchpad-backend/internal/application/platform"
	"launchpad-backend/internal/clock"
	"launchpad-backend/internal/config"
	"launchpad-backend/internal/constants"
	"launchpad-backend/internal/infrastructure/database"
	"launchpad-backend/internal/infrastructure/redisstore"
	authhandler "launchpad-backend/internal/interfaces/handlers/auth"
	healthhandler "launchpad-backend/internal/interfaces/handlers/health"
	invhandler "launchpad-backend/internal/interfaces/handlers/investments"
	minthandler "launchpad-backend/internal/interfaces/handlers/minting"
	prophandler "launchpad-backend/internal/interfaces/handlers/proposals"
	tokenhandler "launchpad-backend/internal/interfaces/handlers/tokens"
	vesthandler "launchpad-backend/internal/interfaces/handlers/vesting"
	votehandler "launchpad-backend/internal/interfaces/handlers/voting"
	"launchpad-backend/internal/middleware"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

type gormDBPinger struct {
	db *gorm.DB
}

func (g *gormDBPinger) Ping() error {
	if g == nil || g.db == nil {
		return nil
	}
	sqlDB, err := g.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Ping()
}

// CreateApp opens the database and Redis from cfg and builds the app on them.
func CreateApp(cfg *config.Config) (*fiber.App, *gorm.DB, *redis.Client, error) {
	if cfg.DatabaseURL == "" {
		return nil, nil, nil, errors.New("DATABASE_URL is required")
	}
	rdb, err := redisstore.Open(cfg.RedisURL)
	if err != nil {
		return nil, nil, nil, err
	}
	db, err := database.Open(cfg.DatabaseURL)
	if err != nil {
		return nil, nil, nil, err
	}
	if err := database.AutoMigrate(db); err != nil {
		return nil, nil, nil, err
	}
	p, err := platform.New(db, rdb, clock.NewMonotonic(), cfg.PlatformSettings())
	if err != nil {
		return nil, nil, nil, err
	}
	if err := p.Auth.EnsureAdmin(context.Background(), cfg.AdminAddress, cfg.AdminSecret); err != nil {
		return nil, nil, nil, err
	}
	return Build(cfg, p, rdb), db, rdb, nil
}

// Build mounts middleware and routes over an already wired platform.
func Build(cfg *config.Config, p *platform.Platform, rdb *redis.Client) *fiber.App {
	app := fiber.New(fiber.Config{
		DisableStartupMessage:   true,
		ErrorHandler:            middleware.ErrorHandler,
		EnableTrustedProxyCheck: true,
	})

	app.Use(middleware.CORS(middleware.CORSConfig{
		AllowedSuffix: cfg.FrontendURLEndsWith,
		DevPassword:   cfg.DevPassword,
	}))
	app.Use(middleware.Session(rdb))
	app.Use(middleware.Tracing())
	app.Use(middleware.HealthMarker(rdb))
	app.Use(middleware.RouteLogger())

	hh := &healthhandler.Handlers{
		Rdb:            rdb,
		DB:             &gormDBPinger{db: p.DB},
		HealthAdminKey: cfg.HealthAdminKey,
	}
	app.Get("/", hh.Index)
	app.Get("/reset", hh.Reset)
	app.Get("/health/json", hh.JSON)
	app.Get("/health/errors", hh.Errors)

	sessionCfg := middleware.SessionConfig{
		Secret:            cfg.SessionSecret,
		AllowCrossSiteDev: cfg.AllowCrossSiteDev,
		IsProduction:      cfg.IsProduction(),
	}
	ah := &authhandler.Handlers{Finder: p.Auth, Accounts: p.Auth, Rdb: rdb, Config: sessionCfg}
	authGroup := app.Group("/api/v1/auth")
	authGroup.Post("/login", ah.Login)
	authGroup.Get("/me", ah.Me)
	authGroup.Delete("/logout", ah.Logout)
	authGroup.Post("/register", middleware.RequireAuth(), middleware.AuthorizePermission(constants.RegisterAccount), ah.Register)
	authGroup.Patch("/accounts/:address/role", middleware.RequireAuth(), middleware.AuthorizePermission(constants.AssignRole), ah.UpdateRole)

	perm := middleware.AuthorizePermission
	api := app.Group("/api/v1", middleware.RequireAuth())

	// Proposals, voting and escrow share the /proposals/:id space.
	ph := &prophandler.Handlers{Registry: p.Registry, Events: p.Events, Liquidity: p.Liquidity}
	vh := &votehandler.Handlers{Service: p.Voting}
	ih := &invhandler.Handlers{Service: p.Escrow}
	pg := api.Group("/proposals")
	pg.Post("/", perm(constants.CreateProposal), ph.Create)
	pg.Get("/", perm(constants.ViewData), ph.ListByStatus)
	pg.Get("/voting", perm(constants.ViewData), ph.ListVoting)
	pg.Get("/investing", perm(constants.ViewData), ph.ListInvesting)
	pg.Get("/minted", perm(constants.ViewData), ph.ListMinted)
	pg.Get("/mine", perm(constants.ViewData), ph.ListMine)
	pg.Get("/voted", perm(constants.ViewData), ph.ListVoted)
	pg.Get("/invested", perm(constants.ViewData), ph.ListInvested)
	pg.Get("/:id", perm(constants.ViewData), ph.Get)
	pg.Get("/:id/events", perm(constants.ViewData), ph.ListEvents)
	pg.Get("/:id/position", perm(constants.ViewData), ph.GetPosition)
	pg.Post("/:id/vote", perm(constants.CastVote), vh.Vote)
	pg.Post("/:id/finalize", perm(constants.FinalizeProposal), vh.Finalize)
	pg.Get("/:id/passed", perm(constants.ViewData), vh.IsPassed)
	pg.Get("/:id/votes/:account", perm(constants.ViewData), vh.GetVote)
	pg.Post("/:id/invest", perm(constants.Invest), ih.Invest)
	pg.Post("/:id/refund", perm(constants.ClaimRefund), ih.Refund)
	pg.Post("/:id/expire", perm(constants.ExpireFunding), ih.ExpireFunding)
	pg.Get("/:id/contributions", perm(constants.ViewData), ih.ListContributions)
	pg.Get("/:id/contributions/:account", perm(constants.ViewData), ih.GetContribution)

	api.Get("/events", perm(constants.ViewData), ph.Feed)

	mh := &minthandler.Handlers{Service: p.Minting}
	api.Post("/minting/mint", perm(constants.MintProposal), mh.Mint)

	vsh := &vesthandler.Handlers{Service: p.Vesting, Clock: p.Clock}
	vg := api.Group("/vesting")
	vg.Get("/mine", perm(constants.ViewData), vsh.Mine)
	vg.Post("/:id/release", perm(constants.ReleaseVesting), vsh.Release)
	vg.Get("/:id/releasable", perm(constants.ViewData), vsh.Releasable)
	vg.Get("/:id/schedules", perm(constants.ViewData), vsh.Schedules)

	th := &tokenhandler.Handlers{Ledger: p.Ledger}
	tg := api.Group("/tokens")
	tg.Post("/approve", perm(constants.MoveTokens), th.Approve)
	tg.Post("/send", perm(constants.MoveTokens), th.Send)
	tg.Post("/faucet", perm(constants.FaucetTokens), th.Faucet)
	tg.Get("/balance", perm(constants.ViewData), th.Balance)
	tg.Get("/allowance", perm(constants.ViewData), th.Allowance)
	tg.Get("/balances", perm(constants.ViewData), th.Balances)
	tg.Get("/info", perm(constants.ViewData), th.Info)

	log.Info().Int("routes", len(app.GetRoutes())).Msg("router ready")
	return app
}

func Handler(app *fiber.App) http.Handler {
	return adaptor.FiberApp(app)
}
