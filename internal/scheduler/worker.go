package scheduler

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/hibiken/asynq"

	"castmatch_backend/internal/matching"
	"castmatch_backend/platform/apperr"
	"castmatch_backend/platform/config"
	"castmatch_backend/platform/logger"
)

// Worker consumes fanout tasks and runs them through the matching engine.
type Worker struct {
	server *asynq.Server
	mux    *asynq.ServeMux
	engine *matching.Engine
	log    *logger.Logger
}

// NewWorker creates an asynq server bound to the matching engine.
func NewWorker(cfg config.SchedulerConfig, engine *matching.Engine, log *logger.Logger) (*Worker, error) {
	redisURL := cfg.GetRedisURL()
	if redisURL == "" {
		return nil, fmt.Errorf("redis url not configured")
	}

	opt, err := redisClientOpt(redisURL, cfg.GetRedisTLSInsecure())
	if err != nil {
		return nil, err
	}

	queue := cfg.GetAsynqQueueName()
	if queue == "" {
		queue = "default"
	}

	concurrency := cfg.GetAsynqConcurrency()
	if concurrency < 1 {
		concurrency = 10
	}

	server := asynq.NewServer(opt, asynq.Config{
		Concurrency: concurrency,
		Queues: map[string]int{
			queue: 1,
		},
	})

	mux := asynq.NewServeMux()
	w := &Worker{
		server: server,
		mux:    mux,
		engine: engine,
		log:    log,
	}

	mux.HandleFunc(TaskCallFanout, w.handleCallFanout)
	mux.HandleFunc(TaskProfileFanout, w.handleProfileFanout)

	return w, nil
}

// Run serves tasks until the context is canceled.
func (w *Worker) Run(ctx context.Context) {
	if w == nil || w.server == nil {
		return
	}

	go func() {
		<-ctx.Done()
		w.server.Shutdown()
	}()

	if err := w.server.Run(w.mux); err != nil {
		w.log.Error("scheduler worker stopped", "error", err)
	}
}

func (w *Worker) handleCallFanout(ctx context.Context, task *asynq.Task) error {
	payload, err := ParseCallFanoutPayload(task)
	if err != nil {
		return err
	}

	callID, err := uuid.Parse(payload.CallID)
	if err != nil {
		return err
	}

	_, err = w.engine.CallFanout(ctx, callID)
	return benignIfStale(err)
}

func (w *Worker) handleProfileFanout(ctx context.Context, task *asynq.Task) error {
	payload, err := ParseProfileFanoutPayload(task)
	if err != nil {
		return err
	}

	profileID, err := uuid.Parse(payload.ProfileID)
	if err != nil {
		return err
	}

	_, err = w.engine.ProfileFanout(ctx, profileID)
	return benignIfStale(err)
}

// benignIfStale completes the task instead of retrying when the entity was
// deleted, closed, or expired between enqueue and execution.
func benignIfStale(err error) error {
	if err == nil {
		return nil
	}
	switch apperr.GetKind(err) {
	case apperr.KindNotFound, apperr.KindGone, apperr.KindValidation:
		return nil
	}
	return err
}
