package app

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jmoiron/sqlx"
	goredis "github.com/redis/go-redis/v9"

	"github.com/MrSnakeDoc/wander/internal/cache"
	"github.com/MrSnakeDoc/wander/internal/config"
	"github.com/MrSnakeDoc/wander/internal/gazetteer"
	"github.com/MrSnakeDoc/wander/internal/httpserver"
	"github.com/MrSnakeDoc/wander/internal/httpserver/deps"
	"github.com/MrSnakeDoc/wander/internal/index"
	"github.com/MrSnakeDoc/wander/internal/logger"
	"github.com/MrSnakeDoc/wander/internal/metrics"
	"github.com/MrSnakeDoc/wander/internal/provider"
	"github.com/MrSnakeDoc/wander/internal/redis"
	"github.com/MrSnakeDoc/wander/internal/resolver"
	"github.com/MrSnakeDoc/wander/internal/scheduler"
	"github.com/MrSnakeDoc/wander/internal/utils"
	"github.com/MrSnakeDoc/wander/internal/version"
)

// memoryCacheEntries bounds the in-process cache.
const memoryCacheEntries = 10_000

type App struct {
	cfg         *config.Config
	logger      logger.Logger
	server      *httpserver.Server
	redisClient *goredis.Client
	db          *sqlx.DB
	reloader    *scheduler.GazetteerReloader
	janitor     *scheduler.CacheJanitor
}

func New() (*App, error) {
	cfg := config.Load()
	log := logger.New(cfg.LogLevel, cfg.PrettyLog)
	m := metrics.New()

	respCache, redisClient, err := newCache(cfg, log)
	if err != nil {
		return nil, err
	}

	source, db, err := newGazetteerSource(cfg, log)
	if err != nil {
		return nil, err
	}

	memIndex := index.NewMemoryIndex()
	reloadTrigger := make(chan struct{}, 1)
	reloader := scheduler.NewGazetteerReloader(
		source,
		memIndex,
		respCache,
		m,
		log,
		cfg.ReloadInterval,
		reloadTrigger,
	)

	var janitor *scheduler.CacheJanitor
	if mem, ok := respCache.(*cache.Memory); ok {
		janitor = scheduler.NewCacheJanitor(mem, log, cfg.JanitorPeriod)
	}

	places := provider.New(provider.Config{
		BaseURL: cfg.ProviderBaseURL,
		APIKey:  cfg.ProviderAPIKey,
		Timeout: cfg.ProviderTimeout,
		Limit:   cfg.ProviderLimit,
	})
	if !places.Enabled() {
		log.Warn("places provider not configured, serving local results only")
	}

	res := resolver.New(memIndex, places, respCache, m, log, resolver.Options{
		SuggestionTTL: cfg.SuggestionTTL,
		PopularTTL:    cfg.PopularTTL,
		TransferTTL:   cfg.TransferTTL,
	})

	d := deps.Deps{
		Logger:             log,
		StartTime:          time.Now(),
		Version:            version.Version,
		Commit:             version.Commit,
		BuildDate:          version.BuildDate,
		GoVersion:          version.GoVersion,
		AllowedHosts:       cfg.AllowedHosts,
		AllowedCIDRS:       cfg.AllowedCIDRS,
		TrustProxy:         cfg.TrustProxy,
		CORSOrigins:        cfg.CORSOrigins,
		RateLimitBurst:     cfg.RateLimitBurst,
		RateLimitPerMinute: cfg.RateLimitPerMinute,
		Resolver:           res,
		MemoryIndex:        memIndex,
		Cache:              respCache,
		ProviderEnabled:    places.Enabled(),
		Metrics:            m,
		ReloadTrigger:      reloadTrigger,
	}

	return &App{
		cfg:         cfg,
		logger:      log,
		server:      httpserver.New(cfg, log, d),
		redisClient: redisClient,
		db:          db,
		reloader:    reloader,
		janitor:     janitor,
	}, nil
}

// newCache picks the response cache backend. A Redis that cannot be reached
// at startup downgrades to the memory cache unless fallback is disabled.
func newCache(cfg *config.Config, log logger.Logger) (cache.Cache, *goredis.Client, error) {
	switch cfg.CacheBackend {
	case config.CacheNone:
		log.Info("response cache disabled")
		return cache.Noop{}, nil, nil
	case config.CacheMemory:
		log.Info("using in-memory response cache")
		return cache.NewMemory(memoryCacheEntries), nil, nil
	}

	log.Infof("Connecting to Redis at %s", cfg.RedisAddr)
	client, err := redis.New(redis.ConnectOptions{
		URL:            cfg.RedisURL,
		Addr:           cfg.RedisAddr,
		User:           cfg.RedisUser,
		Password:       cfg.RedisPassword,
		RedisDB:        cfg.RedisDB,
		DialTimeout:    cfg.RedisDT,
		ReadTimeout:    cfg.RedisRT,
		WriteTimeout:   cfg.RedisWT,
		PoolSize:       cfg.RedisPoolSize,
		ConnectTimeout: cfg.RedisConnectTimeout,
		RetryInterval:  cfg.RedisRetryInterval,
		MaxWait:        cfg.RedisMaxWait,
		PingTimeout:    cfg.RedisPingTimeout,
		WarnThreshold:  cfg.RedisWarnThreshold,
	}, log)
	if err != nil {
		if !cfg.RedisFallback {
			return nil, nil, fmt.Errorf("failed to connect to redis: %w", err)
		}
		log.Warn("redis unavailable, falling back to in-memory response cache", logger.Error(err))
		return cache.NewMemory(memoryCacheEntries), nil, nil
	}
	log.Info("Redis initialized successfully")
	return cache.NewRedis(client, cfg.CacheKeyPrefix), client, nil
}

func newGazetteerSource(cfg *config.Config, log logger.Logger) (gazetteer.Source, *sqlx.DB, error) {
	switch cfg.GazetteerSource {
	case config.GazetteerFile:
		log.Info("gazetteer from file", logger.String("file", cfg.GazetteerFile))
		return gazetteer.NewFileLoader(cfg.GazetteerFile), nil, nil
	case config.GazetteerSQL:
		return newSQLSource(cfg, log)
	}
	return gazetteer.NewEmbeddedLoader(), nil, nil
}

func newSQLSource(cfg *config.Config, log logger.Logger) (gazetteer.Source, *sqlx.DB, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	db, err := gazetteer.Connect(ctx, cfg.GazetteerDriver, cfg.GazetteerDSN)
	if err != nil {
		return nil, nil, err
	}
	if cfg.AutoMigrate {
		if err := gazetteer.Migrate(db, cfg.GazetteerDriver); err != nil {
			utils.Close(db, log, "gazetteer database")
			return nil, nil, err
		}
		log.Info("gazetteer schema up to date")
	}
	log.Info("gazetteer from database", logger.String("driver", cfg.GazetteerDriver))
	return gazetteer.NewSQLStore(db), db, nil
}

func (a *App) Run() error {
	a.logger.Infof("🚀 Starting %s on %s", version.String(), a.cfg.ListenPort)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := a.reloader.Start(ctx); err != nil {
		return fmt.Errorf("failed to start gazetteer reloader: %w", err)
	}
	a.logger.Info("gazetteer reloader started",
		logger.Duration("interval", a.cfg.ReloadInterval))

	if a.janitor != nil {
		if err := a.janitor.Start(ctx); err != nil {
			return fmt.Errorf("failed to start cache janitor: %w", err)
		}
	}

	errCh := make(chan error, 1)
	go func() {
		if err := a.server.Start(); err != nil {
			errCh <- fmt.Errorf("http server error: %w", err)
		}
	}()

	select {
	case <-ctx.Done():
		a.logger.Info("⏳ Shutting down gracefully...")
	case err := <-errCh:
		return err
	}

	a.reloader.Stop()
	if a.janitor != nil {
		a.janitor.Stop()
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), a.cfg.ShutdownTimeout)
	defer cancel()
	if err := a.server.Stop(shutdownCtx); err != nil {
		return fmt.Errorf("failed to stop server: %w", err)
	}

	if a.redisClient != nil {
		utils.Close(a.redisClient, a.logger, "redis client")
	}
	if a.db != nil {
		utils.Close(a.db, a.logger, "gazetteer database")
	}

	a.logger.Info("✅ wander stopped cleanly")
	_ = a.logger.Sync()
	return nil
}
