package app

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/redis/go-redis/v9"
	"go.uber.org/dig"

	"courier-delivery-service/internal/auth"
	"courier-delivery-service/internal/cache"
	"courier-delivery-service/internal/config"
	"courier-delivery-service/internal/http/handlers"
	"courier-delivery-service/internal/http/middleware"
	"courier-delivery-service/internal/http/pprofserver"
	"courier-delivery-service/internal/http/router"
	"courier-delivery-service/internal/logx"
	"courier-delivery-service/internal/repository"
	"courier-delivery-service/internal/service/accounts"
	"courier-delivery-service/internal/service/booking"
	"courier-delivery-service/internal/service/trackingfeed"
)

// ContainerBuilder is a dig container builder.
type ContainerBuilder struct {
	dbConnect func(context.Context, string, int, time.Duration) (*pgxpool.Pool, error)
	logFatalf func(string, ...interface{})
}

// NewContainerBuilder returns a new dig container builder
func NewContainerBuilder() *ContainerBuilder {
	return &ContainerBuilder{
		dbConnect: connectDbWithRetry,
		logFatalf: log.Fatalf,
	}
}

// WithDBConnect sets the database connection function
func (b *ContainerBuilder) WithDBConnect(
	fn func(context.Context, string, int, time.Duration) (*pgxpool.Pool, error),
) *ContainerBuilder {
	if fn != nil {
		b.dbConnect = fn
	}
	return b
}

// WithLogFatalf sets the log.Fatalf function
func (b *ContainerBuilder) WithLogFatalf(fn func(string, ...interface{})) *ContainerBuilder {
	if fn != nil {
		b.logFatalf = fn
	}
	return b
}

// MustBuild builds and returns the API server container
func (b *ContainerBuilder) MustBuild(ctx context.Context) *dig.Container {
	container, err := b.build(ctx)
	if err != nil {
		b.logFatalf("failed to build container: %v", err)
	}
	return container
}

// MustBuildWorker builds and returns the Kafka worker container
func (b *ContainerBuilder) MustBuildWorker(ctx context.Context) *dig.Container {
	container, err := b.buildWorker(ctx)
	if err != nil {
		b.logFatalf("failed to build worker container: %v", err)
	}
	return container
}

func (b *ContainerBuilder) build(ctx context.Context) (*dig.Container, error) {
	container := dig.New()

	if err := registerCore(container, ctx); err != nil {
		return nil, fmt.Errorf("core: %w", err)
	}
	if err := registerDb(container, b.dbConnect); err != nil {
		return nil, fmt.Errorf("DB: %w", err)
	}
	if err := registerMetrics(container); err != nil {
		return nil, fmt.Errorf("metrics: %w", err)
	}
	if err := registerServices(container); err != nil {
		return nil, fmt.Errorf("service: %w", err)
	}
	if err := registerHTTP(container); err != nil {
		return nil, fmt.Errorf("http: %w", err)
	}
	return container, nil
}

func (b *ContainerBuilder) buildWorker(ctx context.Context) (*dig.Container, error) {
	container := dig.New()

	if err := registerCore(container, ctx); err != nil {
		return nil, fmt.Errorf("core: %w", err)
	}
	if err := registerDb(container, b.dbConnect); err != nil {
		return nil, fmt.Errorf("DB: %w", err)
	}
	if err := registerMetrics(container); err != nil {
		return nil, fmt.Errorf("metrics: %w", err)
	}
	if err := registerServices(container); err != nil {
		return nil, fmt.Errorf("service: %w", err)
	}
	if err := registerWorker(container); err != nil {
		return nil, fmt.Errorf("worker: %w", err)
	}
	return container, nil
}

// MustBuildContainer builds and returns the API server container
func MustBuildContainer(ctx context.Context) *dig.Container {
	return NewContainerBuilder().MustBuild(ctx)
}

// MustBuildWorkerContainer builds and returns the Kafka worker container
func MustBuildWorkerContainer(ctx context.Context) *dig.Container {
	return NewContainerBuilder().MustBuildWorker(ctx)
}

func provideAll(container *dig.Container, providers ...any) error {
	for _, provider := range providers {
		if err := container.Provide(provider); err != nil {
			return fmt.Errorf("provide %T: %w", provider, err)
		}
	}
	return nil
}

func registerCore(container *dig.Container, ctx context.Context) error {
	return provideAll(container,
		func() context.Context { return ctx },
		NewLogger,
		config.Load,
	)
}

func registerDb(
	container *dig.Container,
	dbConnect func(context.Context, string, int, time.Duration) (*pgxpool.Pool, error),
) error {
	providerDB := func(ctx context.Context, cfg *config.Config) (*pgxpool.Pool, error) {
		return dbConnect(ctx, cfg.DB.DSN(), 10, time.Second)
	}
	return provideAll(container, providerDB)
}

func newTrackingCache(cfg *config.Config) cache.TrackingCache {
	if cfg.Redis.Addr == "" {
		return cache.Nop()
	}
	client := redis.NewClient(&redis.Options{Addr: cfg.Redis.Addr})
	return cache.NewRedisTrackingCache(client, cfg.Redis.CacheTTL)
}

type bookingIn struct {
	dig.In

	Packages *repository.PackageRepo
	Tracking *repository.TrackingRepo
	Cache    cache.TrackingCache
	Logger   logx.Logger
	Timeout  time.Duration

	PackagesCreated prometheus.Counter `name:"packages_created_total"`
	QuotesServed    prometheus.Counter `name:"quotes_served_total"`
	CacheHits       prometheus.Counter `name:"tracking_cache_hits_total"`
	CacheMisses     prometheus.Counter `name:"tracking_cache_misses_total"`
}

func newBookingService(in bookingIn) *booking.Service {
	return booking.NewService(in.Packages, in.Tracking, in.Logger, in.Timeout, booking.Deps{
		Cache:           in.Cache,
		PackagesCreated: in.PackagesCreated,
		QuotesServed:    in.QuotesServed,
		CacheHits:       in.CacheHits,
		CacheMisses:     in.CacheMisses,
	})
}

type trackingFeedIn struct {
	dig.In

	Packages *repository.PackageRepo
	Cache    cache.TrackingCache
	Logger   logx.Logger
	Timeout  time.Duration

	StatusUpdates prometheus.Counter `name:"status_updates_total"`
}

func newTrackingFeedService(in trackingFeedIn) *trackingfeed.Service {
	return trackingfeed.NewService(in.Packages, in.Cache, in.Logger, in.Timeout, in.StatusUpdates)
}

func registerServices(container *dig.Container) error {
	return provideAll(container,
		repository.NewUserRepo,
		repository.NewPackageRepo,
		repository.NewTrackingRepo,
		func() time.Duration { return 3 * time.Second },
		auth.NewHasher,
		func(cfg *config.Config) *auth.TokenManager {
			return auth.NewTokenManager(cfg.Auth.Secret, cfg.Auth.TokenTTL)
		},
		newTrackingCache,
		func(repo *repository.UserRepo, hasher auth.Hasher, tokens *auth.TokenManager, logger logx.Logger, timeout time.Duration) *accounts.Service {
			return accounts.NewService(repo, hasher, tokens, logger, timeout)
		},
		newBookingService,
		newTrackingFeedService,
	)
}

func newAuthenticator(tokens *auth.TokenManager, users *accounts.Service, logger logx.Logger) *middleware.Authenticator {
	return middleware.NewAuthenticator(tokens, users, logger)
}

func newPprofServer(cfg *config.Config) *http.Server {
	if cfg.Pprof.Port <= 0 {
		return nil
	}
	return &http.Server{
		Addr: fmt.Sprintf(":%d", cfg.Pprof.Port),
		Handler: pprofserver.Handler(pprofserver.Config{
			User: cfg.Pprof.User,
			Pass: cfg.Pprof.Pass,
		}),
		ReadHeaderTimeout: 5 * time.Second,
	}
}

func registerHTTP(container *dig.Container) error {
	serverProvider := func(cfg *config.Config, mux http.Handler) *http.Server {
		return &http.Server{
			Addr:              fmt.Sprintf(":%d", cfg.Port),
			Handler:           mux,
			ReadHeaderTimeout: 5 * time.Second,
			ReadTimeout:       15 * time.Second,
			WriteTimeout:      15 * time.Second,
			IdleTimeout:       60 * time.Second,
		}
	}
	if err := provideAll(container,
		handlers.New,
		handlers.NewAccountsUsecase,
		handlers.NewBookingUsecase,
		handlers.NewFeedUsecase,
		handlers.NewAuthHandler,
		handlers.NewPackageHandler,
		handlers.NewAdminHandler,
		newAuthenticator,
		newRateLimitClock,
		newRateLimiter,
		newRateLimitMiddleware,
		router.New,
		serverProvider,
	); err != nil {
		return err
	}
	return container.Provide(newPprofServer, dig.Name("pprof_server"))
}
