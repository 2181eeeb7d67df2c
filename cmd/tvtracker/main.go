package main

import (
	"context"
	"os"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/example/tv-tracker/internal/catalog"
	"github.com/example/tv-tracker/internal/handlers"
	"github.com/example/tv-tracker/internal/history"
	"github.com/example/tv-tracker/internal/platform/analytics"
	"github.com/example/tv-tracker/internal/platform/auth"
	"github.com/example/tv-tracker/internal/platform/config"
	"github.com/example/tv-tracker/internal/platform/db"
	"github.com/example/tv-tracker/internal/platform/httpserver"
	"github.com/example/tv-tracker/internal/platform/logging"
	"github.com/example/tv-tracker/internal/platform/natsconn"
	"github.com/example/tv-tracker/internal/platform/run"
	"github.com/example/tv-tracker/internal/store"
	"github.com/example/tv-tracker/internal/tokens"
	"github.com/example/tv-tracker/internal/users"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}
	log, err := logging.New(cfg.LogLevel, cfg.ServiceName)
	if err != nil {
		panic(err)
	}
	defer func() { _ = log.Sync() }()

	stores, closePool := initStores(cfg, log)
	if closePool != nil {
		defer closePool()
	}

	events, closeNATS := initAnalytics(cfg, log)
	if closeNATS != nil {
		defer closeNATS()
	}

	usersSvc := users.NewService(stores.users)
	catalogSvc := catalog.NewService(stores.shows)
	historySvc := history.NewService(stores.users, stores.shows, stores.history)
	toks := tokens.Service{Secret: cfg.Auth.JWTSecret, AccessTokenTTL: cfg.Auth.AccessTokenTTL}

	bootstrapAdmin(cfg, log, stores.users)

	verifier := auth.JWTVerifier{Secret: cfg.Auth.JWTSecret}
	requireUser := auth.RequireUser(verifier, usersSvc)

	r := chi.NewRouter()
	httpserver.SetupRouter(r, httpserver.RouterConfig{ReadyFunc: stores.ready})

	r.Post("/auth/register", handlers.Register(usersSvc, events))
	r.Post("/auth/login", handlers.Login(usersSvc, toks, events))

	r.Route("/api", func(r chi.Router) {
		r.Use(requireUser)

		r.Get("/shows", handlers.ListShows(catalogSvc))
		r.Get("/shows/search", handlers.SearchShows(catalogSvc))
		r.Get("/shows/{id}", handlers.GetShow(catalogSvc))

		r.Get("/watch-history", handlers.ListWatchHistory(historySvc))
		r.Post("/watch-history", handlers.AddWatchHistory(historySvc, events))
		r.Put("/watch-history", handlers.UpdateWatchHistory(historySvc, events))
		r.Get("/watch-history/{showId}", handlers.ContainsWatchHistory(historySvc))
		r.Delete("/watch-history/{showId}", handlers.DeleteWatchHistory(historySvc, events))

		r.Group(func(r chi.Router) {
			r.Use(auth.RequireAdmin)

			r.Post("/shows", handlers.CreateShow(catalogSvc, events))
			r.Put("/shows/{id}", handlers.UpdateShow(catalogSvc))
			r.Delete("/shows/{id}", handlers.DeleteShow(catalogSvc, events))

			r.Get("/users", handlers.ListUsers(usersSvc))
			r.Get("/users/{id}", handlers.GetUser(usersSvc))
			r.Get("/users/by-username/{username}", handlers.GetUserByUsername(usersSvc))
			r.Put("/users/{id}", handlers.UpdateUser(usersSvc))
			r.Delete("/users/{id}", handlers.DeleteUser(usersSvc))
		})
	})

	srv := httpserver.New(httpserver.Options{Addr: cfg.HTTP.Addr, Router: r})

	runner := run.New(log)
	code := runner.WithSignals(func(ctx context.Context) error {
		go func() {
			<-ctx.Done()
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			_ = srv.Shutdown(shutdownCtx)
		}()
		return srv.Start(log)
	})

	log.Info("exit", zap.Int("code", code))
	run.Exit(code)
}

// backends bundles the three store interfaces plus a readiness probe for
// whichever backend was selected.
type backends struct {
	shows   store.ShowStore
	users   store.UserStore
	history store.WatchHistoryStore
	ready   func() error
}

// initStores selects the storage backend. Production requires a working
// Postgres connection and terminates the process otherwise; development
// falls back to the in-memory stores.
func initStores(cfg config.AppConfig, log *zap.Logger) (backends, func()) {
	memory := func() backends {
		shows := store.NewMemoryShowStore()
		return backends{
			shows:   shows,
			users:   store.NewMemoryUserStore(),
			history: store.NewMemoryWatchHistoryStore(shows),
			ready:   func() error { return nil },
		}
	}

	if cfg.DatabaseURL == "" {
		if cfg.IsProduction() {
			log.Error("DATABASE_URL is required in production")
			_ = log.Sync()
			os.Exit(1)
		}
		log.Warn("DATABASE_URL not set, using in-memory stores (development only)")
		return memory(), nil
	}

	pool, err := db.Open(context.Background(), cfg.DatabaseURL)
	if err != nil {
		if cfg.IsProduction() {
			log.Error("postgres is required in production but unavailable", zap.Error(err))
			_ = log.Sync()
			os.Exit(1)
		}
		log.Warn("postgres unavailable, falling back to in-memory stores", zap.Error(err))
		return memory(), nil
	}

	log.Info("store backend: postgres")
	return backends{
		shows:   store.NewPostgresShowStore(pool),
		users:   store.NewPostgresUserStore(pool),
		history: store.NewPostgresWatchHistoryStore(pool),
		ready: func() error {
			ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
			defer cancel()
			return pool.Ping(ctx)
		},
	}, pool.Close
}

// initAnalytics wires the fire-and-forget event publisher. NATS being
// down is never fatal; the nil publisher is a no-op.
func initAnalytics(cfg config.AppConfig, log *zap.Logger) (*analytics.Publisher, func()) {
	nc, err := natsconn.Connect(natsconn.Options{URL: cfg.NATSURL})
	if err != nil {
		log.Warn("nats unavailable, analytics disabled", zap.Error(err))
		return nil, nil
	}
	js, err := nc.JetStream()
	if err != nil {
		log.Warn("jetstream unavailable, analytics disabled", zap.Error(err))
		nc.Close()
		return nil, nil
	}
	log.Info("analytics publisher connected")
	return analytics.New(js, log), nc.Close
}

// bootstrapAdmin promotes the configured username to the admin role. The
// user must already exist; a failed promotion is logged, not fatal.
func bootstrapAdmin(cfg config.AppConfig, log *zap.Logger, userStore store.UserStore) {
	if cfg.BootstrapAdminUsername == "" {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := userStore.SetRoleByUsername(ctx, cfg.BootstrapAdminUsername, auth.RoleAdmin); err != nil {
		log.Warn("bootstrap admin promotion failed",
			zap.String("username", cfg.BootstrapAdminUsername), zap.Error(err))
		return
	}
	log.Info("bootstrap admin promoted", zap.String("username", cfg.BootstrapAdminUsername))
}
