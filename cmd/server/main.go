// Command server runs the laserworks HTTP API.
//
// @title                       Laserworks API
// @version                     1.0
// @description                 Accounts, catalog, orders and reviews for a laser engraving shop.
// @BasePath                    /
// @securityDefinitions.apikey  BearerAuth
// @in                          header
// @name                        Authorization
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/joho/godotenv/autoload"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/deadeye/laserworks/internal/api"
	"github.com/deadeye/laserworks/internal/api/handler"
	"github.com/deadeye/laserworks/internal/core/ports"
	"github.com/deadeye/laserworks/internal/core/service"
	mongostore "github.com/deadeye/laserworks/internal/infrastructure/db/mongo"
	"github.com/deadeye/laserworks/internal/infrastructure/db/postgres"
	redisstore "github.com/deadeye/laserworks/internal/infrastructure/db/redis"
	"github.com/deadeye/laserworks/internal/infrastructure/mail"
	"github.com/deadeye/laserworks/internal/infrastructure/queue"
	"github.com/deadeye/laserworks/internal/pkg/config"
	"github.com/deadeye/laserworks/internal/pkg/password"
	"github.com/deadeye/laserworks/internal/pkg/token"
	"github.com/deadeye/laserworks/pkg/logger"
)

const shutdownTimeout = 15 * time.Second

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(ctx)
	if err != nil {
		l := logger.Init(logger.Options{})
		l.Fatal().Err(err).Msg("invalid configuration")
	}

	log := logger.Init(logger.Options{
		Level:   cfg.LogLevel,
		Pretty:  cfg.IsDevelopment(),
		Service: "laserworks",
	})

	if err := run(ctx, cfg, log); err != nil {
		log.Fatal().Err(err).Msg("server stopped")
	}
	log.Info().Msg("server stopped")
}

func run(ctx context.Context, cfg *config.Config, log zerolog.Logger) error {
	// --- Relational store ---
	pool, err := postgres.Connect(ctx, postgres.Config{URL: cfg.Postgres.URL}, log)
	if err != nil {
		return err
	}
	defer pool.Close()

	if cfg.Postgres.Migrate {
		if err := postgres.Migrate(ctx, pool, log); err != nil {
			return err
		}
	}

	// --- Confirmation tokens ---
	rdb, err := redisstore.Connect(ctx, redisstore.Config{Addr: cfg.Redis.Addr, DB: cfg.Redis.DB})
	if err != nil {
		return err
	}
	defer rdb.Close()

	readiness := []handler.Dependency{
		{Name: "postgres", Ping: pool.Ping},
		{Name: "redis", Ping: func(ctx context.Context) error { return rdb.Ping(ctx).Err() }},
	}

	// --- Audit trail (optional) ---
	var audit ports.AuditRecorder
	if cfg.Mongo.URI != "" {
		client, db, err := mongostore.Connect(ctx, mongostore.Config{URI: cfg.Mongo.URI, Database: cfg.Mongo.Database})
		if err != nil {
			return err
		}
		defer func() { _ = client.Disconnect(context.Background()) }()

		repo := mongostore.NewAuditRepository(db)
		if err := repo.EnsureIndexes(ctx); err != nil {
			return err
		}
		audit = repo
		readiness = append(readiness, handler.Dependency{
			Name: "mongodb",
			Ping: func(ctx context.Context) error { return client.Ping(ctx, nil) },
		})
	} else {
		log.Warn().Msg("MONGO_URI not set, audit trail disabled")
	}

	// --- Mail ---
	mailer := mail.New(cfg.Mail.ResendAPIKey, cfg.Mail.From, log)
	dispatcher := queue.NewDispatcher(cfg.Mail.Workers, mailer, log)

	// --- Core ---
	users := postgres.NewUserRepository(pool)
	services := postgres.NewServiceRepository(pool)
	orders := postgres.NewUserServiceRepository(pool)
	reviews := postgres.NewReviewRepository(pool)

	userManager := service.NewUserManager(users, password.NewBcrypt(cfg.Auth.BcryptWorkFactor), audit, log)
	verifier := service.NewVerifier(
		userManager,
		token.NewConfirmations(cfg.Auth.EmailSecretKey, cfg.Auth.EmailTokenTTL),
		redisstore.NewConfirmationStore(rdb),
		dispatcher,
		cfg.Auth.VerificationURL,
		log,
	)

	e := api.NewRouter(api.Dependencies{
		Users:        userManager,
		Services:     service.NewServiceManager(services, reviews, audit, log),
		UserServices: service.NewUserServiceManager(orders, users, services, audit, log),
		Reviews:      service.NewReviewManager(reviews, users, services, audit, log),
		Verifier:     verifier,
		Tokens:       token.NewCodec(cfg.Auth.SecretKey, cfg.Auth.TokenTTL),
		Readiness:    readiness,
		Logger:       log,
	})

	// Workers outlive the HTTP server so mail queued by in-flight requests
	// is still delivered during shutdown.
	workerCtx, stopWorkers := context.WithCancel(context.Background())
	defer stopWorkers()
	dispatcher.Start(workerCtx)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("http server listening")
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		log.Info().Msg("shutting down")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return e.Shutdown(shutdownCtx)
	})

	err = g.Wait()
	stopWorkers()
	dispatcher.Wait()
	return err
}
