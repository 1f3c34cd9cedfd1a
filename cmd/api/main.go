package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"castmatch_backend/internal/castings"
	castingsrepo "castmatch_backend/internal/castings/repository"
	"castmatch_backend/internal/coverletter"
	"castmatch_backend/internal/email"
	"castmatch_backend/internal/events"
	apphttp "castmatch_backend/internal/http"
	"castmatch_backend/internal/http/router"
	"castmatch_backend/internal/matching"
	"castmatch_backend/internal/notification"
	"castmatch_backend/internal/profiles"
	profilesrepo "castmatch_backend/internal/profiles/repository"
	"castmatch_backend/internal/scheduler"
	"castmatch_backend/internal/submissions"
	submissionsrepo "castmatch_backend/internal/submissions/repository"
	"castmatch_backend/platform/config"
	"castmatch_backend/platform/db"
	"castmatch_backend/platform/logger"
	"castmatch_backend/platform/validator"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	// Initialize structured logger
	log := logger.New(cfg.Env)
	log.Info("starting server", "env", cfg.Env, "addr", cfg.HTTPAddr)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// ========================================================================
	// Infrastructure Layer
	// ========================================================================

	if err := withRetry(ctx, log, "database migrations", 5, 2*time.Second, func() error {
		return db.RunMigrations(ctx, cfg, "migrations")
	}); err != nil {
		log.Error("failed to run database migrations", "error", err)
		panic("failed to run database migrations: " + err.Error())
	}
	log.Info("database migrations complete")

	var pool *pgxpool.Pool
	if err := withRetry(ctx, log, "database connection", 5, 2*time.Second, func() error {
		p, err := db.NewPool(ctx, cfg)
		if err != nil {
			return err
		}
		pool = p
		return nil
	}); err != nil {
		log.Error("failed to connect to database", "error", err)
		panic("failed to connect to database: " + err.Error())
	}
	defer pool.Close()
	log.Info("database connection established")

	// Event bus for decoupled communication between modules
	eventBus := events.NewInMemoryBus(log)

	sender, err := email.NewSender(cfg)
	if err != nil {
		log.Error("failed to initialize email sender", "error", err)
		panic("failed to initialize email sender: " + err.Error())
	}

	// Shared validator instance for dependency injection
	val := validator.New()

	// ========================================================================
	// Domain Modules (Composition Root)
	// ========================================================================

	// The three repositories are shared between their modules and the
	// matching engine, so they are built here.
	profileRepo := profilesrepo.New(pool)
	castingRepo := castingsrepo.New(pool)
	submissionRepo := submissionsrepo.New(pool)

	engine := matching.NewEngine(profileRepo, castingRepo, submissionRepo, eventBus, log, cfg)

	// Fanouts run on asynq when Redis is configured; otherwise they fall
	// back to in-process goroutines.
	enqueuer, closeEnqueuer := initFanoutEnqueuer(cfg, log)
	if closeEnqueuer != nil {
		defer closeEnqueuer()
	}

	matchingModule := matching.NewModule(engine, enqueuer, log)
	matchingModule.RegisterHandlers(eventBus)

	// Notification module subscribes to domain events (not HTTP-facing)
	letterWriter := initCoverLetterWriter(ctx, cfg, log)
	notificationModule := notification.NewModule(sender, letterWriter, log)
	notificationModule.RegisterHandlers(eventBus)

	profilesModule := profiles.NewModule(profileRepo, castingRepo, submissionRepo, engine, eventBus, val, log)
	castingsModule := castings.NewModule(castingRepo, profileRepo, eventBus, val, log)
	submissionsModule := submissions.NewModule(submissionRepo, profileRepo, castingRepo, eventBus, val, log)

	// ========================================================================
	// HTTP Layer
	// ========================================================================

	app := &apphttp.App{
		Config:   cfg,
		Logger:   log,
		Health:   db.NewPoolAdapter(pool),
		EventBus: eventBus,
		Modules: []apphttp.Module{
			profilesModule,
			castingsModule,
			submissionsModule,
		},
	}

	srv := &http.Server{
		Addr:    cfg.HTTPAddr,
		Handler: router.New(app),
	}

	srvErr := make(chan error, 1)
	go func() {
		log.Info("server listening", "addr", cfg.HTTPAddr)
		srvErr <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		log.Info("shutdown signal received, gracefully shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Error("server shutdown failed", "error", err)
		}
	case err := <-srvErr:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("server error", "error", err)
			panic("server error: " + err.Error())
		}
	}
}

func initFanoutEnqueuer(cfg config.SchedulerConfig, log *logger.Logger) (matching.FanoutEnqueuer, func()) {
	if cfg.GetRedisURL() == "" {
		log.Warn("REDIS_URL not configured; fanouts run in-process")
		return nil, nil
	}

	client, err := scheduler.NewClient(cfg)
	if err != nil {
		log.Error("failed to initialize fanout scheduler client", "error", err)
		return nil, nil
	}

	return client, func() {
		_ = client.Close()
	}
}

func initCoverLetterWriter(ctx context.Context, cfg config.CoverLetterConfig, log *logger.Logger) *coverletter.Writer {
	if !cfg.IsCoverLetterEnabled() {
		log.Warn("GEMINI_API_KEY not configured; cover letters disabled")
		return coverletter.NewWriter(nil, log)
	}

	generator, err := coverletter.NewGeminiGenerator(ctx, cfg)
	if err != nil {
		log.Error("failed to initialize cover letter generator", "error", err)
		return coverletter.NewWriter(nil, log)
	}

	return coverletter.NewWriter(generator, log)
}

func withRetry(ctx context.Context, log *logger.Logger, name string, attempts int, baseDelay time.Duration, fn func() error) error {
	if attempts < 1 {
		return fmt.Errorf("%s: invalid retry attempts", name)
	}

	var lastErr error
	for attempt := 1; attempt <= attempts; attempt++ {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if err := fn(); err == nil {
			return nil
		} else {
			lastErr = err
			log.Warn("retryable operation failed", "operation", name, "attempt", attempt, "error", err)
		}

		if attempt < attempts {
			delay := time.Duration(attempt*attempt) * baseDelay
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(delay):
			}
		}
	}

	return errors.New(name + ": " + lastErr.Error())
}
