package app

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"ngnfx/internal/adapters"
	"ngnfx/internal/adapters/alert"
	"ngnfx/internal/adapters/cache"
	"ngnfx/internal/adapters/httpclient"
	"ngnfx/internal/adapters/postgres"
	"ngnfx/internal/adapters/ratelimit"
	"ngnfx/internal/api"
	"ngnfx/internal/config"
	"ngnfx/internal/domain"
	"ngnfx/internal/metrics"
	"ngnfx/internal/platform/db"
	httpserver "ngnfx/internal/platform/http"
	"ngnfx/internal/rate"
	"ngnfx/internal/rate/handler"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/sirupsen/logrus"
)

const startupTimeout = 10 * time.Second

type App struct {
	cfg *config.AppConfig
}

func New(cfg *config.AppConfig) *App {
	return &App{cfg: cfg}
}

// Serve wires the application components, starts HTTP server and scheduler.
// It blocks until ctx is canceled.
func (a *App) Serve(ctx context.Context, migrate bool) error {
	pool, err := a.connect(ctx)
	if err != nil {
		return err
	}
	defer pool.Close()

	if migrate {
		if err = a.migrate(ctx, pool); err != nil {
			return err
		}
	}

	m := metrics.New(nil)
	latestCache, err := cache.NewLatestRateCache(a.cfg.Engine.CacheMaxAge)
	if err != nil {
		return err
	}
	defer latestCache.Close()

	engine := a.buildEngine(pool, latestCache, m)

	// Rate limit store
	limiter, closeLimiter, err := a.buildRateLimitStore(ctx)
	if err != nil {
		return err
	}
	defer closeLimiter()

	// Scheduler stops before the DB pool closes
	if a.cfg.Scheduler.Enabled {
		scheduler := rate.NewScheduler(engine, a.cfg.Scheduler.Interval)
		defer func() {
			if shutDownErr := scheduler.Shutdown(); shutDownErr != nil {
				logrus.Errorf("Scheduler shutdown error: %v", shutDownErr)
			}
		}()
		if startErr := scheduler.Start(ctx); startErr != nil {
			logrus.WithError(startErr).Error("Failed to start scheduler")
			return startErr
		}
		logrus.Info("✅ Scheduler activation successful")
	}

	// Handlers and router
	service := rate.NewService(
		postgres.NewCalculationRepository(pool),
		postgres.NewCryptoRateRepository(pool),
		postgres.NewOTCDeskRepository(pool),
		postgres.NewCalculationLogRepository(pool),
	)
	rateHandler := handler.NewRateHandler(engine, service, rate.NewValidator())
	router := api.NewRouter(rateHandler, a.cfg.Auth, limiter, m)

	logrus.Info("Starting http server")
	if serverErr := httpserver.Start(ctx, a.cfg.HTTPServer, router); serverErr != nil {
		logrus.Errorf("HTTP server error: %v", serverErr)
		return serverErr
	}
	return nil
}

// Calculate runs a single engine cycle against the configured database and sources.
func (a *App) Calculate(ctx context.Context) (domain.FinalRate, error) {
	pool, err := a.connect(ctx)
	if err != nil {
		return domain.FinalRate{}, err
	}
	defer pool.Close()

	latestCache, err := cache.NewLatestRateCache(a.cfg.Engine.CacheMaxAge)
	if err != nil {
		return domain.FinalRate{}, err
	}
	defer latestCache.Close()

	return a.buildEngine(pool, latestCache, metrics.New(nil)).Calculate(ctx)
}

// Migrate applies the embedded schema migrations.
func (a *App) Migrate(ctx context.Context) error {
	pool, err := a.connect(ctx)
	if err != nil {
		return err
	}
	defer pool.Close()
	return a.migrate(ctx, pool)
}

func (a *App) connect(ctx context.Context) (*pgxpool.Pool, error) {
	startupCtx, cancel := context.WithTimeout(ctx, startupTimeout)
	defer cancel()

	pool, err := db.CreatePoolAndPing(startupCtx, a.cfg.DbServer)
	if err != nil {
		logrus.WithError(err).Error("Error connecting to db")
		return nil, err
	}
	logrus.Info("✅ Postgres connection successful")
	return pool, nil
}

func (a *App) migrate(ctx context.Context, pool *pgxpool.Pool) error {
	if err := db.Migrate(ctx, pool); err != nil {
		logrus.WithError(err).Error("Failed to apply migrations")
		return err
	}
	logrus.Info("✅ Migrations applied")
	return nil
}

func (a *App) buildEngine(pool *pgxpool.Pool, latestCache adapters.LatestRateCache, m *metrics.Registry) *rate.Engine {
	engineCfg := a.cfg.Engine

	// Repositories
	calcRepo := postgres.NewCalculationRepository(pool)
	cryptoRepo := postgres.NewCryptoRateRepository(pool)
	logger := rate.NewCalculationLogger(postgres.NewCalculationLogRepository(pool))

	crypto := rate.NewCryptoImpliedCalculator(cryptoRepo)
	fallbackOpts := []rate.FallbackOption{
		rate.WithMaxCacheAge(engineCfg.CacheMaxAge),
		rate.WithEmergencyRate(engineCfg.EmergencyRate),
		rate.WithFallbackCache(latestCache),
		rate.WithFallbackMetrics(m),
	}
	if notifier := a.buildNotifier(); notifier != nil {
		fallbackOpts = append(fallbackOpts, rate.WithAlertNotifier(notifier))
	}

	return rate.NewEngine(rate.EngineDeps{
		Collector:    rate.NewCollector(a.buildSources(), engineCfg.SourceTimeout, m),
		Baseline:     rate.NewBaselineCalculator(engineCfg.StablecoinWeight),
		Crypto:       crypto,
		Liquidity:    rate.NewLiquidityAdjuster(postgres.NewOTCDeskRepository(pool), engineCfg.LiquiditySpreadMin, engineCfg.LiquiditySpreadMax),
		Fallback:     rate.NewFallbackResolver(calcRepo, crypto, logger, fallbackOpts...),
		ExternalRepo: postgres.NewExternalRateRepository(pool),
		CalcRepo:     calcRepo,
		Cache:        latestCache,
		Logger:       logger,
		Metrics:      m,
	})
}

// buildSources registers the market-data vendors, each behind its own circuit breaker.
func (a *App) buildSources() []adapters.RateSource {
	vendors := a.cfg.Vendors

	// Base HTTP client (configurable timeout)
	httpTimeout := time.Duration(a.cfg.HTTPClient.TimeoutSeconds) * time.Second
	if httpTimeout <= 0 {
		httpTimeout = 10 * time.Second
	}
	baseHTTPClient := &http.Client{Timeout: httpTimeout}

	opts := func(baseURL string) httpclient.Options {
		return httpclient.Options{HTTPClient: baseHTTPClient, BaseURL: baseURL, MaxRPS: vendors.MaxRPS}
	}

	sources := []adapters.RateSource{
		httpclient.NewCryptoCompareSource(opts(vendors.CryptoCompareURL)),
		httpclient.NewCoinGeckoSource(opts(vendors.CoinGeckoURL)),
		httpclient.NewCoinMarketCapSource(opts(vendors.CoinMarketCapURL), vendors.CoinMarketCapKey),
		httpclient.NewBinanceUSDTSource(opts(vendors.BinanceURL)),
		httpclient.NewBinanceUSDCSource(opts(vendors.BinanceURL)),
	}

	breakerSettings := httpclient.BreakerSettings{
		MaxFailures: vendors.Breaker.MaxFailures,
		OpenTimeout: vendors.Breaker.OpenTimeout,
	}
	wrapped := make([]adapters.RateSource, 0, len(sources))
	for _, s := range sources {
		wrapped = append(wrapped, httpclient.WithBreaker(s, breakerSettings))
	}
	return wrapped
}

func (a *App) buildNotifier() adapters.AlertNotifier {
	tg := a.cfg.Alert.Telegram
	if !tg.Enabled {
		return nil
	}
	if tg.BotToken == "" || tg.ChatID == "" {
		logrus.Warn("Telegram alerts enabled without bot token or chat id, alerts disabled")
		return nil
	}
	return alert.NewTelegramNotifier(tg.BotToken, tg.ChatID, tg.BaseURL, 0)
}

func (a *App) buildRateLimitStore(ctx context.Context) (adapters.RateLimitStore, func(), error) {
	rl := a.cfg.RateLimit
	switch rl.Backend {
	case "", "memory":
		return ratelimit.NewMemoryStore(rl.Limit, rl.Window, rl.MaxKeys), func() {}, nil
	case "redis":
		startupCtx, cancel := context.WithTimeout(ctx, startupTimeout)
		defer cancel()

		client, err := ratelimit.NewRedisClient(startupCtx, a.cfg.Redis.Addr, a.cfg.Redis.Password, a.cfg.Redis.DB)
		if err != nil {
			return nil, nil, err
		}
		logrus.Info("✅ Redis connection successful")
		closeFn := func() {
			if closeErr := client.Close(); closeErr != nil {
				logrus.WithError(closeErr).Warn("Failed to close redis client")
			}
		}
		return ratelimit.NewRedisStore(client, rl.Limit, rl.Window), closeFn, nil
	default:
		return nil, nil, fmt.Errorf("unknown rate limit backend %q", rl.Backend)
	}
}
