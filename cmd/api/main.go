package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"golang.org/x/sync/errgroup"

	"github.com/diagnosis/patrol-checkpoints/internal/database"
	"github.com/diagnosis/patrol-checkpoints/internal/http/handlers"
	"github.com/diagnosis/patrol-checkpoints/internal/report"
	"github.com/diagnosis/patrol-checkpoints/internal/repository"
	"github.com/diagnosis/patrol-checkpoints/internal/security"
	"github.com/diagnosis/patrol-checkpoints/internal/service"
	"github.com/diagnosis/patrol-checkpoints/pkg/auth"
	"github.com/diagnosis/patrol-checkpoints/pkg/config"
	pgdb "github.com/diagnosis/patrol-checkpoints/pkg/database"
	"github.com/diagnosis/patrol-checkpoints/pkg/events"
	"github.com/diagnosis/patrol-checkpoints/pkg/logger"
)

func main() {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		logger.Warn("Failed to load .env", "error", err)
	}
	logger.SetOutput(os.Stdout, os.Getenv("LOG_LEVEL"))

	if err := run(); err != nil {
		logger.Error("Server stopped with error", "error", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	pool, err := pgdb.Connect(ctx, cfg.Database)
	if err != nil {
		return err
	}
	defer pool.Close()

	if err := database.Migrate(ctx, pool); err != nil {
		return err
	}

	var publisher events.Publisher = events.Noop{}
	if cfg.NATS.URL != "" {
		nats, err := events.NewNATSPublisher(cfg.NATS.URL)
		if err != nil {
			logger.Warn("NATS unavailable, events disabled", "error", err)
		} else {
			publisher = nats
		}
	}
	defer publisher.Close()

	redisClient, err := repository.ConnectRedis(ctx, cfg.Redis.URL)
	if err != nil {
		logger.Warn("Redis unavailable, login throttling disabled", "error", err)
		redisClient = nil
	}
	if redisClient != nil {
		defer redisClient.Close()
	}

	policy, err := report.ParseMatchPolicy(cfg.Report.MatchPolicy)
	if err != nil {
		return err
	}

	// Initialize repositories
	userRepo := repository.NewUserRepository(pool)
	roleRepo := repository.NewRoleRepository(pool)
	checkpointRepo := repository.NewCheckpointRepository(pool)
	attendanceRepo := repository.NewAttendanceRepository(pool)
	scheduleRepo := repository.NewScheduleRepository(pool)
	rateLimitRepo := repository.NewRateLimitRepository(redisClient)

	hasher := security.NewPasswordHasher()
	issuer := auth.NewIssuer(cfg.Auth.JWTSecret, cfg.Auth.AccessTokenTTL)

	// Initialize services
	h := handlers.New(handlers.Services{
		Auth:       service.NewAuthService(userRepo, roleRepo, rateLimitRepo, hasher, issuer, cfg.Auth),
		Users:      service.NewUserService(userRepo, roleRepo, hasher),
		Checkpoint: service.NewCheckpointService(checkpointRepo),
		Roles:      service.NewRoleService(roleRepo),
		Schedule:   service.NewScheduleService(scheduleRepo),
		Scan:       service.NewScanService(checkpointRepo, userRepo, attendanceRepo, publisher),
		Attendance: service.NewAttendanceService(attendanceRepo),
		Reports:    service.NewReportService(checkpointRepo, attendanceRepo, scheduleRepo, cfg.ReportLocation(), policy),
	})

	router := handlers.NewRouter(h, handlers.RouterConfig{
		Tokens:         issuer,
		DB:             pool,
		AllowedOrigins: cfg.Server.AllowedOrigins,
		TrustProxy:     cfg.Server.TrustProxy,
		PublicDir:      cfg.Static.PublicDir,
		LoginLimiter:   rateLimitRepo,
		LoginLimit:     cfg.Auth.LoginRateLimit,
		LoginWindow:    cfg.Auth.LoginWindow,
	})

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	pruner := service.NewRetentionPruner(attendanceRepo, publisher, cfg.Retention.Months, cfg.Retention.Interval)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info("Starting patrol API", "port", cfg.Server.Port, "env", cfg.Env, "report_zone", cfg.ReportLocation().String())
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		pruner.Start(gctx)
		<-gctx.Done()
		pruner.Stop()
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		logger.Info("Shutting down server...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		return err
	}
	logger.Info("Server exited")
	return nil
}
