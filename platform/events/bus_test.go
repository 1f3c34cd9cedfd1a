package events

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"castmatch_backend/platform/logger"
)

type testEvent struct {
	BaseEvent
	name string
}

func (e testEvent) EventName() string { return e.name }

func TestPublishDeliversAsynchronously(t *testing.T) {
	bus := NewInMemoryBus(logger.New("development"))

	var wg sync.WaitGroup
	wg.Add(2)
	var mu sync.Mutex
	calls := 0

	handler := HandlerFunc(func(context.Context, Event) error {
		mu.Lock()
		calls++
		mu.Unlock()
		wg.Done()
		return nil
	})

	bus.Subscribe("test.event", handler)
	bus.Subscribe("test.event", handler)
	bus.Publish(context.Background(), testEvent{BaseEvent: NewBaseEvent(), name: "test.event"})

	done := make(chan struct{})
	go func() {
		wg.Wait()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("handlers were not invoked")
	}

	mu.Lock()
	defer mu.Unlock()
	if calls != 2 {
		t.Fatalf("expected 2 handler calls, got %d", calls)
	}
}

func TestPublishSurvivesHandlerPanic(t *testing.T) {
	bus := NewInMemoryBus(logger.New("development"))

	panicked := make(chan struct{})
	bus.Subscribe("test.event", HandlerFunc(func(context.Context, Event) error {
		close(panicked)
		panic("boom")
	}))

	bus.Publish(context.Background(), testEvent{BaseEvent: NewBaseEvent(), name: "test.event"})

	select {
	case <-panicked:
	case <-time.After(2 * time.Second):
		t.Fatal("handler was not invoked")
	}
}

func TestPublishSyncJoinsErrors(t *testing.T) {
	bus := NewInMemoryBus(logger.New("development"))

	firstErr := errors.New("first failed")
	bus.Subscribe("test.event", HandlerFunc(func(context.Context, Event) error {
		return firstErr
	}))
	bus.Subscribe("test.event", HandlerFunc(func(context.Context, Event) error {
		return nil
	}))

	err := bus.PublishSync(context.Background(), testEvent{BaseEvent: NewBaseEvent(), name: "test.event"})
	if !errors.Is(err, firstErr) {
		t.Fatalf("expected joined error to wrap handler error, got %v", err)
	}
}

func TestPublishNoSubscribersIsNoop(t *testing.T) {
	bus := NewInMemoryBus(logger.New("development"))
	bus.Publish(context.Background(), testEvent{BaseEvent: NewBaseEvent(), name: "nobody.listens"})

	if err := bus.PublishSync(context.Background(), testEvent{BaseEvent: NewBaseEvent(), name: "nobody.listens"}); err != nil {
		t.Fatalf("expected nil error with no subscribers, got %v", err)
	}
}
