// AngelaMos | 2026
// main.go

package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/jdstudio/backoffice/internal/admin"
	"github.com/jdstudio/backoffice/internal/audit"
	"github.com/jdstudio/backoffice/internal/catalog"
	"github.com/jdstudio/backoffice/internal/config"
	"github.com/jdstudio/backoffice/internal/core"
	"github.com/jdstudio/backoffice/internal/health"
	"github.com/jdstudio/backoffice/internal/identity"
	"github.com/jdstudio/backoffice/internal/intake"
	"github.com/jdstudio/backoffice/internal/invite"
	"github.com/jdstudio/backoffice/internal/mailer"
	"github.com/jdstudio/backoffice/internal/middleware"
	"github.com/jdstudio/backoffice/internal/server"
	"github.com/jdstudio/backoffice/internal/upload"
	"github.com/jdstudio/backoffice/internal/user"
)

const (
	drainDelay = 5 * time.Second
)

func main() {
	configPath := flag.String("config", "config.yaml", "path to config file")
	flag.Parse()

	if err := run(*configPath); err != nil {
		slog.Error("application error", "error", err)
		os.Exit(1)
	}
}

//nolint:funlen // bootstrap code is inherently verbose
func run(configPath string) error {
	ctx, stop := signal.NotifyContext(
		context.Background(),
		syscall.SIGINT,
		syscall.SIGTERM,
	)
	defer stop()

	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	logger := setupLogger(cfg.Log)
	slog.SetDefault(logger)

	logger.Info("starting application",
		"name", cfg.App.Name,
		"version", cfg.App.Version,
		"environment", cfg.App.Environment,
	)

	var telemetry *core.Telemetry
	if cfg.Otel.Enabled {
		tel, telErr := core.NewTelemetry(ctx, cfg.Otel, cfg.App)
		if telErr != nil {
			logger.Warn("failed to initialize telemetry", "error", telErr)
		} else {
			telemetry = tel
			logger.Info("OpenTelemetry tracer initialized",
				"endpoint", cfg.Otel.Endpoint,
			)
		}
	}

	db, err := core.NewDatabase(ctx, cfg.Database)
	if err != nil {
		return err
	}
	logger.Info("database connected",
		"max_open_conns", cfg.Database.MaxOpenConns,
		"max_idle_conns", cfg.Database.MaxIdleConns,
	)

	redis, err := core.NewRedis(ctx, cfg.Redis)
	if err != nil {
		return err
	}
	logger.Info("redis connected",
		"pool_size", cfg.Redis.PoolSize,
	)

	sessions, err := identity.NewSessionManager(cfg.Auth)
	if err != nil {
		return err
	}
	logger.Info("session manager initialized",
		"algorithm", "ES256",
		"key_id", sessions.GetKeyID(),
	)

	auditRepo := audit.NewRepository(db.DB)
	auditRecorder := audit.NewRecorder(auditRepo, logger)
	auditHandler := audit.NewHandler(auditRepo)

	identityRepo := identity.NewRepository(db.DB)
	identitySvc := identity.NewService(identityRepo, sessions, redis.Client)
	identityHandler := identity.NewHandler(identitySvc, cfg.IsProduction())

	// The founder's role claim is seeded at boot so sessions issued to
	// the configured founder identity always carry the right role.
	err = identitySvc.SetRoleClaim(ctx, cfg.Auth.FounderUID, user.RoleFounder)
	if err != nil {
		return err
	}

	userRepo := user.NewRepository(db.DB)
	userSvc := user.NewService(
		userRepo,
		identitySvc,
		auditRecorder,
		cfg.Auth.FounderUID,
	)
	userHandler := user.NewHandler(userSvc)

	var notifier *mailer.Mailer
	if cfg.Email.Enabled {
		notifier, err = mailer.New(cfg.Email)
		if err != nil {
			return err
		}
		logger.Info("mailer initialized", "from", cfg.Email.FromAddress)
	}

	inviteRepo := invite.NewRepository(db.DB)
	var inviteMailer invite.Mailer
	if notifier != nil {
		inviteMailer = notifier
	}
	inviteSvc := invite.NewService(
		inviteRepo,
		userSvc,
		identitySvc,
		auditRecorder,
		inviteMailer,
		logger,
		cfg.Invite.Expiry,
		cfg.Invite.AcceptURL,
	)
	inviteHandler := invite.NewHandler(inviteSvc, identitySvc, cfg.IsProduction())

	catalogRepo := catalog.NewRepository(db.DB)
	invalidator := catalog.NewRedisInvalidator(redis.Client, logger)
	catalogMgr := catalog.NewManager(db.DB, catalogRepo, auditRecorder, invalidator)
	catalogHandler := catalog.NewHandler(catalogMgr)

	intakeRepo := intake.NewRepository(db.DB)
	var intakeNotifier intake.Notifier
	if notifier != nil {
		intakeNotifier = notifier
	}
	intakeSvc := intake.NewService(intakeRepo, auditRecorder, intakeNotifier, logger)
	intakeHandler := intake.NewHandler(intakeSvc)

	var uploadHandler *upload.Handler
	if cfg.Upload.Enabled {
		presigner, presignErr := upload.NewPresigner(ctx, cfg.Upload)
		if presignErr != nil {
			return presignErr
		}
		uploadHandler = upload.NewHandler(presigner)
		logger.Info("upload presigner initialized", "bucket", cfg.Upload.Bucket)
	}

	healthHandler := health.NewHandler(db, redis)

	adminHandler := admin.NewHandler(admin.HandlerConfig{
		DBStats:    db.Stats,
		RedisStats: redis.PoolStats,
		DBPing:     db.Ping,
		RedisPing:  redis.Ping,
		Counters: admin.DashboardCounters{
			Users:          userSvc.Count,
			PendingInvites: inviteSvc.CountPending,
			Services:       catalogMgr.Count,
			NewMessages:    intakeSvc.CountNewMessages,
			NewQuotes:      intakeSvc.CountNewQuotes,
		},
		Logger: logger,
	})

	srv := server.New(server.Config{
		ServerConfig:  cfg.Server,
		HealthHandler: healthHandler,
		Logger:        logger,
	})

	router := srv.Router()

	router.Use(middleware.RequestID)
	router.Use(middleware.Logger(logger))
	router.Use(
		middleware.NewRateLimiter(redis.Client, middleware.RateLimitConfig{
			Limit: middleware.PerMinute(
				cfg.RateLimit.Requests,
				cfg.RateLimit.Burst,
			),
			FailOpen: true,
		}).Handler,
	)
	router.Use(middleware.SecurityHeaders(cfg.IsProduction()))
	router.Use(middleware.CORS(cfg.CORS))

	healthHandler.RegisterRoutes(router)

	router.Get("/.well-known/jwks.json", sessions.GetJWKSHandler())

	authenticator := middleware.Authenticator(identitySvc)
	managerOnly := middleware.RequireManager
	staffOnly := middleware.RequireStaff

	// Public intake endpoints get a tighter per-IP limit than the
	// global one.
	intakeLimiter := middleware.NewRateLimiter(
		redis.Client,
		middleware.RateLimitConfig{
			Limit: middleware.PerMinute(
				cfg.RateLimit.IntakeRequests,
				cfg.RateLimit.IntakeBurst,
			),
			FailOpen: true,
		},
	).Handler

	router.Route("/v1", func(r chi.Router) {
		identityHandler.RegisterRoutes(r, authenticator)
		inviteHandler.RegisterRoutes(r, authenticator, managerOnly)
		userHandler.RegisterRoutes(r, authenticator, managerOnly)
		catalogHandler.RegisterRoutes(r, authenticator, managerOnly)
		intakeHandler.RegisterRoutes(r, intakeLimiter, authenticator, staffOnly)
		auditHandler.RegisterRoutes(r, authenticator, managerOnly)
		adminHandler.RegisterRoutes(r, authenticator, managerOnly)

		if uploadHandler != nil {
			uploadHandler.RegisterRoutes(r, authenticator, staffOnly)
		}
	})

	errChan := make(chan error, 1)
	go func() {
		errChan <- srv.Start()
	}()

	select {
	case err := <-errChan:
		return err
	case <-ctx.Done():
		logger.Info("shutdown signal received")
	}

	shutdownCtx, cancel := context.WithTimeout(
		context.Background(),
		cfg.Server.ShutdownTimeout+drainDelay+5*time.Second,
	)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx, drainDelay); err != nil {
		logger.Error("server shutdown error", "error", err)
	}

	if telemetry != nil {
		if err := telemetry.Shutdown(shutdownCtx); err != nil {
			logger.Error("telemetry shutdown error", "error", err)
		}
	}

	if err := redis.Close(); err != nil {
		logger.Error("redis close error", "error", err)
	}

	if err := db.Close(); err != nil {
		logger.Error("database close error", "error", err)
	}

	logger.Info("application stopped")
	return nil
}

func setupLogger(cfg config.LogConfig) *slog.Logger {
	var handler slog.Handler

	level := slog.LevelInfo
	switch cfg.Level {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	}

	opts := &slog.HandlerOptions{Level: level}

	if cfg.Format == "json" {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	} else {
		handler = slog.NewTextHandler(os.Stdout, opts)
	}

	return slog.New(handler)
}
