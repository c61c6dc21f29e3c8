package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	httpSwagger "github.com/swaggo/http-swagger/v2"
	"golang.org/x/sync/errgroup"

	"articles-api/internal/config"
	pgRepo "articles-api/internal/infra/adapter/persistence/postgres"
	"articles-api/internal/infra/db"
	"articles-api/internal/observability/logging"
	"articles-api/internal/observability/tracing"
	"articles-api/internal/resilience/circuitbreaker"
	artUC "articles-api/internal/usecase/article"

	hhttp "articles-api/internal/handler/http"
	harticle "articles-api/internal/handler/http/article"
	"articles-api/internal/handler/http/middleware"
	"articles-api/internal/handler/http/requestid"

	_ "articles-api/docs" // swagger docs
)

// @title           Articles API
// @version         1.0
// @description     REST API for creating, reading and updating articles.

// @contact.name   API Support

// @license.name  MIT
// @license.url   https://opensource.org/licenses/MIT

// @host      localhost:8080
// @BasePath  /

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", slog.Any("error", err))
		os.Exit(1)
	}

	logger := initLogger(cfg)
	if err := run(logger, cfg); err != nil {
		logger.Error("server exited", slog.Any("error", err))
		os.Exit(1)
	}
}

// initLogger builds the JSON logger and installs it as the slog default.
func initLogger(cfg config.Config) *slog.Logger {
	logger := logging.NewLogger(cfg.LogLevel)
	slog.SetDefault(logger)
	return logger
}

func run(logger *slog.Logger, cfg config.Config) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	shutdownTracing := tracing.Init()
	defer func() {
		if err := shutdownTracing(context.Background()); err != nil {
			logger.Warn("tracer shutdown failed", slog.Any("error", err))
		}
	}()

	st, err := initDatabase(ctx, logger, cfg)
	if err != nil {
		return err
	}
	defer func() {
		if err := st.db.Close(); err != nil {
			logger.Error("failed to close database", slog.Any("error", err))
		}
	}()

	handler, err := setupServer(logger, st, cfg)
	if err != nil {
		return err
	}
	return runServer(ctx, logger, handler, cfg)
}

// storeConn is what the repository and the migration need from the database.
type storeConn interface {
	pgRepo.Querier
	db.Execer
}

// store bundles the pool with the (possibly breaker-guarded) handle used for
// every statement.
type store struct {
	db      *sql.DB
	conn    storeConn
	breaker hhttp.BreakerState
}

// initDatabase opens the pool, bootstraps the schema and optionally seeds
// the demo articles.
func initDatabase(ctx context.Context, logger *slog.Logger, cfg config.Config) (*store, error) {
	database, err := db.Open(ctx, cfg.Database)
	if err != nil {
		return nil, err
	}

	st := &store{db: database, conn: database}
	if cfg.Database.BreakerEnabled {
		dcb := circuitbreaker.NewDBCircuitBreaker(database)
		st.conn = dcb
		st.breaker = dcb
		logger.Info("database circuit breaker enabled", slog.String("name", dcb.Name()))
	}

	if err := db.MigrateUp(ctx, st.conn); err != nil {
		_ = database.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}
	if cfg.SeedArticles {
		if err := db.SeedDemoArticles(ctx, database); err != nil {
			_ = database.Close()
			return nil, fmt.Errorf("failed to seed articles: %w", err)
		}
		logger.Info("demo articles seeded", slog.Int("count", len(db.DemoArticles)))
	}
	return st, nil
}

// setupServer wires the repository, service, routes and middleware chain.
func setupServer(logger *slog.Logger, st *store, cfg config.Config) (http.Handler, error) {
	artSvc := artUC.Service{Repo: pgRepo.NewArticleRepo(st.conn)}

	mux := setupRoutes(logger, st.db, st.breaker, artSvc, cfg.Version)

	rateLimit, err := rateLimitMiddleware(logger, cfg.RateLimit)
	if err != nil {
		return nil, err
	}

	logger.Info("CORS configured", slog.Any("allowed_origins", cfg.CORS.AllowedOrigins))

	// Order: CORS → Request ID → Rate Limit → Recovery → Logging → Tracing → Body Limit → Metrics
	return hhttp.Chain(mux,
		middleware.CORS(cfg.CORS.AllowedOrigins),
		requestid.Middleware,
		rateLimit,
		hhttp.Recover(logger),
		hhttp.Logging(logger),
		tracing.Middleware,
		hhttp.LimitRequestBody(cfg.Server.MaxBodyBytes),
		hhttp.MetricsMiddleware,
	), nil
}

// setupRoutes registers the article resource and the operational endpoints.
func setupRoutes(
	logger *slog.Logger,
	database *sql.DB,
	breaker hhttp.BreakerState,
	artSvc artUC.Service,
	version string,
) *http.ServeMux {
	mux := http.NewServeMux()
	harticle.Register(mux, artSvc, logger)

	mux.Handle("GET /health", &hhttp.HealthHandler{
		DB:       database,
		Breaker:  breaker,
		Articles: &artSvc,
		Version:  version,
	})
	mux.Handle("GET /ready", &hhttp.ReadyHandler{DB: database})
	mux.Handle("GET /live", &hhttp.LiveHandler{})
	mux.Handle("GET /metrics", hhttp.MetricsHandler())
	mux.Handle("GET /swagger/", httpSwagger.WrapHandler)
	return mux
}

func rateLimitMiddleware(logger *slog.Logger, cfg config.RateLimitConfig) (func(http.Handler) http.Handler, error) {
	if !cfg.Enabled {
		logger.Warn("rate limiting is DISABLED - not recommended for production")
		return func(next http.Handler) http.Handler { return next }, nil
	}

	var extractor middleware.IPExtractor = middleware.RemoteAddrExtractor{}
	if len(cfg.TrustedProxies) > 0 {
		tp, err := middleware.NewTrustedProxyExtractor(cfg.TrustedProxies)
		if err != nil {
			return nil, fmt.Errorf("invalid trusted proxies: %w", err)
		}
		extractor = tp
		logger.Info("rate limiting: trusted proxy mode enabled",
			slog.Int("trusted_proxies_count", len(cfg.TrustedProxies)))
	}

	limiter := middleware.NewIPRateLimiter(middleware.IPRateLimiterConfig{
		RPS:   cfg.RPS,
		Burst: cfg.Burst,
	}, extractor)

	logger.Info("rate limiting initialized",
		slog.Float64("rps", cfg.RPS),
		slog.Int("burst", cfg.Burst))
	return limiter.Middleware, nil
}

// runServer serves until ctx is cancelled, then shuts down gracefully.
func runServer(ctx context.Context, logger *slog.Logger, handler http.Handler, cfg config.Config) error {
	srv := &http.Server{
		Addr:              cfg.Server.Addr,
		Handler:           handler,
		ReadHeaderTimeout: cfg.Server.ReadHeaderTimeout,
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logger.Info("server starting",
			slog.String("addr", cfg.Server.Addr),
			slog.String("version", cfg.Version))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		logger.Info("shutting down server...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("server shutdown failed: %w", err)
		}
		logger.Info("server stopped")
		return nil
	})

	return g.Wait()
}
