package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	castingsrepo "castmatch_backend/internal/castings/repository"
	"castmatch_backend/internal/coverletter"
	"castmatch_backend/internal/email"
	"castmatch_backend/internal/events"
	"castmatch_backend/internal/matching"
	"castmatch_backend/internal/notification"
	profilesrepo "castmatch_backend/internal/profiles/repository"
	"castmatch_backend/internal/scheduler"
	submissionsrepo "castmatch_backend/internal/submissions/repository"
	"castmatch_backend/platform/config"
	"castmatch_backend/platform/db"
	"castmatch_backend/platform/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	log := logger.New(cfg.Env)
	log.Info("starting match worker", "env", cfg.Env, "queue", cfg.AsynqQueueName)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

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

	eventBus := events.NewInMemoryBus(log)

	sender, err := email.NewSender(cfg)
	if err != nil {
		log.Error("failed to initialize email sender", "error", err)
		panic("failed to initialize email sender: " + err.Error())
	}

	// Notifications fire from this process too: the worker records the
	// submissions, so it publishes the events.
	letterWriter := initCoverLetterWriter(ctx, cfg, log)
	notificationModule := notification.NewModule(sender, letterWriter, log)
	notificationModule.RegisterHandlers(eventBus)

	engine := matching.NewEngine(
		profilesrepo.New(pool),
		castingsrepo.New(pool),
		submissionsrepo.New(pool),
		eventBus,
		log,
		cfg,
	)

	worker, err := scheduler.NewWorker(cfg, engine, log)
	if err != nil {
		log.Error("failed to initialize scheduler worker", "error", err)
		panic("failed to initialize scheduler worker: " + err.Error())
	}

	worker.Run(ctx)
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
