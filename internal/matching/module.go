package matching

import (
	"context"

	"castmatch_backend/internal/events"
	"castmatch_backend/platform/logger"

	"github.com/google/uuid"
)

// Module wires the engine to its triggers. Publishing a casting call or
// changing a profile enqueues a background fanout; the triggering request
// never waits for it.
type Module struct {
	engine   *Engine
	enqueuer FanoutEnqueuer
	log      *logger.Logger
}

// NewModule creates the matching module. enqueuer may be nil, in which case
// fanouts run in a detached goroutine inside this process.
func NewModule(engine *Engine, enqueuer FanoutEnqueuer, log *logger.Logger) *Module {
	return &Module{
		engine:   engine,
		enqueuer: enqueuer,
		log:      log,
	}
}

// Engine exposes the engine for the worker and the recheck path.
func (m *Module) Engine() *Engine {
	return m.engine
}

// RegisterHandlers subscribes the fanout triggers to the event bus.
func (m *Module) RegisterHandlers(bus events.Bus) {
	bus.Subscribe(events.CastingCallPublished{}.EventName(), events.HandlerFunc(func(ctx context.Context, event events.Event) error {
		e, ok := event.(events.CastingCallPublished)
		if !ok {
			return nil
		}
		m.dispatchCallFanout(ctx, e.CallID)
		return nil
	}))

	bus.Subscribe(events.ProfileChanged{}.EventName(), events.HandlerFunc(func(ctx context.Context, event events.Event) error {
		e, ok := event.(events.ProfileChanged)
		if !ok {
			return nil
		}
		m.dispatchProfileFanout(ctx, e.ProfileID)
		return nil
	}))
}

func (m *Module) dispatchCallFanout(ctx context.Context, callID uuid.UUID) {
	if m.enqueuer != nil {
		if err := m.enqueuer.EnqueueCallFanout(ctx, callID); err == nil {
			return
		} else {
			m.log.Error("enqueue call fanout failed, running in-process", "callId", callID, "error", err)
		}
	}

	go func() {
		if _, err := m.engine.CallFanout(context.Background(), callID); err != nil {
			m.log.Error("call fanout failed", "callId", callID, "error", err)
		}
	}()
}

func (m *Module) dispatchProfileFanout(ctx context.Context, profileID uuid.UUID) {
	if m.enqueuer != nil {
		if err := m.enqueuer.EnqueueProfileFanout(ctx, profileID); err == nil {
			return
		} else {
			m.log.Error("enqueue profile fanout failed, running in-process", "profileId", profileID, "error", err)
		}
	}

	go func() {
		if _, err := m.engine.ProfileFanout(context.Background(), profileID); err != nil {
			m.log.Error("profile fanout failed", "profileId", profileID, "error", err)
		}
	}()
}
