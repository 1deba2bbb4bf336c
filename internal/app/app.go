package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	goredis "github.com/redis/go-redis/v9"
	"github.com/robfig/cron/v3"
	"golang.org/x/sync/errgroup"

	"github.com/kirinyoku/courtbook/internal/auth"
	"github.com/kirinyoku/courtbook/internal/config"
	"github.com/kirinyoku/courtbook/internal/events"
	"github.com/kirinyoku/courtbook/internal/postgres"
	"github.com/kirinyoku/courtbook/internal/redis"
	postgresrepo "github.com/kirinyoku/courtbook/internal/repository/postgres"
	redisrepo "github.com/kirinyoku/courtbook/internal/repository/redis"
	"github.com/kirinyoku/courtbook/internal/service"
	"github.com/kirinyoku/courtbook/internal/service/booking"
	"github.com/kirinyoku/courtbook/internal/service/facility"
	"github.com/kirinyoku/courtbook/internal/service/query"
	httpgin "github.com/kirinyoku/courtbook/internal/transport/http/gin"
	"github.com/kirinyoku/courtbook/internal/upload"
)

type App struct {
	cfg        *config.Config
	logger     *slog.Logger
	httpServer *http.Server
	cron       *cron.Cron
	pool       *pgxpool.Pool
	rdb        *goredis.Client
	publisher  *events.Publisher
}

func New(cfg *config.Config, logger *slog.Logger) (*App, error) {
	ctx := context.Background()

	// Initialize dependencies
	pgxPool, err := postgres.New(ctx, postgres.Config{
		User:     cfg.Postgres.User,
		Password: cfg.Postgres.Password,
		Host:     cfg.Postgres.Host,
		Port:     cfg.Postgres.Port,
		Database: cfg.Postgres.DB,
		SSLMode:  cfg.Postgres.SSLMode,
		MaxConns: cfg.Postgres.MaxConns,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to initialize postgres: %w", err)
	}

	rdb, err := redis.New(ctx, redis.Config{Addr: cfg.Redis.Addr, Password: cfg.Redis.Password, DB: cfg.Redis.DB})
	if err != nil {
		pgxPool.Close()
		return nil, fmt.Errorf("failed to initialize redis: %w", err)
	}

	a := &App{cfg: cfg, logger: logger, pool: pgxPool, rdb: rdb}

	var publisher booking.EventPublisher
	if cfg.RabbitMQ.URL != "" {
		p, err := events.NewPublisher(cfg.RabbitMQ.URL, cfg.RabbitMQ.Exchange)
		if err != nil {
			a.close()
			return nil, fmt.Errorf("failed to initialize rabbitmq: %w", err)
		}
		a.publisher = p
		publisher = p
	} else {
		logger.Warn("RABBITMQ_URL is empty, domain events are disabled")
	}

	var uploader upload.Uploader
	if cfg.S3.Bucket != "" {
		s3u, err := upload.NewS3Uploader(ctx, upload.S3Config{
			Endpoint:      cfg.S3.Endpoint,
			Region:        cfg.S3.Region,
			Bucket:        cfg.S3.Bucket,
			AccessKey:     cfg.S3.AccessKey,
			SecretKey:     cfg.S3.SecretKey,
			PublicBaseURL: cfg.S3.PublicBaseURL,
			UsePathStyle:  cfg.S3.UsePathStyle,
		})
		if err != nil {
			a.close()
			return nil, fmt.Errorf("failed to initialize s3: %w", err)
		}
		uploader = upload.NewRetrying(s3u, cfg.Upload.Timeout)
	} else {
		logger.Warn("S3_BUCKET is empty, image uploads are disabled")
	}

	// Initialize repositories
	store := postgresrepo.NewStore(pgxPool)
	cache := redisrepo.New(rdb, cfg.CacheTTL)
	pubsub := redisrepo.NewCourtsPubSub(rdb)
	idempotencyStore := redisrepo.NewIdempotencyStore(rdb, cfg.IdempotencyTTL)

	var limiter booking.RateLimiter
	if cfg.BookingRate.Limit > 0 {
		limiter = redisrepo.NewSlidingWindowLimiter(rdb, "booking", cfg.BookingRate.Limit, cfg.BookingRate.Window)
	}

	// Initialize services
	services := service.NewServices(service.Deps{
		Store:   store,
		Cache:   cache,
		PubSub:  pubsub,
		Limiter: limiter,
		Events:  publisher,
		Logger:  logger,
	}, service.Config{
		Facility: facility.Config{
			SavePolicy:       cfg.Slots.SavePolicy,
			AllowLegacyClaim: cfg.Slots.AllowLegacyClaim,
		},
		Query: query.Config{
			FacilityListTTL:    cfg.CacheTTL,
			FacilityDetailsTTL: cfg.CacheTTL,
			CourtSlotsTTL:      cfg.CacheTTL,
		},
	})

	if cfg.Reconcile.Schedule != "" {
		c, err := newReconciler(cfg.Reconcile.Schedule, services.Booking.Reconcile, logger)
		if err != nil {
			a.close()
			return nil, fmt.Errorf("failed to schedule reconciler: %w", err)
		}
		a.cron = c
	}

	// Initialize Gin router
	router := httpgin.NewRouter(httpgin.Deps{
		Services:       services,
		Auth:           auth.New(cfg.Auth.JWTSecret),
		Idem:           idempotencyStore,
		Uploader:       uploader,
		PubSub:         pubsub,
		Logger:         logger,
		CORSOrigins:    cfg.Server.CORSOrigins,
		MaxUploadBytes: cfg.Upload.MaxBytes,
	})

	a.httpServer = &http.Server{
		Addr:              net.JoinHostPort(cfg.Server.Host, strconv.Itoa(cfg.Server.Port)),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	return a, nil
}

func (a *App) Run(ctx context.Context) error {
	ctx, cancel := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer cancel()

	defer a.close()

	g, gCtx := errgroup.WithContext(ctx)

	// Start HTTP server
	g.Go(func() error {
		a.logger.Info("HTTP server listening", "host", a.cfg.Server.Host, "port", a.cfg.Server.Port)
		if err := a.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("failed to start HTTP server: %w", err)
		}
		return nil
	})

	if a.cron != nil {
		a.cron.Start()
		a.logger.Info("reconciler scheduled", "schedule", a.cfg.Reconcile.Schedule)
	}

	// Graceful shutdown
	g.Go(func() error {
		<-gCtx.Done()
		a.logger.Info("shutting down HTTP server")

		ctx, cancel := context.WithTimeout(context.Background(), a.cfg.Server.ShutdownTimeout)
		defer cancel()

		err := a.httpServer.Shutdown(ctx)

		if a.cron != nil {
			select {
			case <-a.cron.Stop().Done():
			case <-ctx.Done():
				a.logger.Warn("reconciler did not stop in time")
			}
		}

		return err
	})

	return g.Wait()
}

func (a *App) close() {
	if err := a.publisher.Close(); err != nil {
		a.logger.Warn("failed to close rabbitmq publisher", "error", err)
	}
	if a.rdb != nil {
		if err := a.rdb.Close(); err != nil {
			a.logger.Warn("failed to close redis", "error", err)
		}
	}
	if a.pool != nil {
		a.pool.Close()
	}
}
