package scheduler

import (
	"context"
	"strings"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	"github.com/hibiken/asynq"
)

type testSchedulerConfig struct {
	redisURL string
	queue    string
}

func (c testSchedulerConfig) GetRedisURL() string       { return c.redisURL }
func (c testSchedulerConfig) GetRedisTLSInsecure() bool { return false }
func (c testSchedulerConfig) GetAsynqQueueName() string { return c.queue }
func (c testSchedulerConfig) GetAsynqConcurrency() int  { return 1 }

func TestClientEnqueuesFanoutTasks(t *testing.T) {
	mr := miniredis.RunT(t)

	client, err := NewClient(testSchedulerConfig{
		redisURL: "redis://" + mr.Addr(),
		queue:    "matching",
	})
	if err != nil {
		t.Fatalf("NewClient failed: %v", err)
	}
	defer client.Close()

	if err := client.EnqueueCallFanout(context.Background(), uuid.New()); err != nil {
		t.Fatalf("EnqueueCallFanout failed: %v", err)
	}
	if err := client.EnqueueProfileFanout(context.Background(), uuid.New()); err != nil {
		t.Fatalf("EnqueueProfileFanout failed: %v", err)
	}

	var queued bool
	for _, key := range mr.Keys() {
		if strings.Contains(key, "asynq:{matching}") {
			queued = true
			break
		}
	}
	if !queued {
		t.Fatalf("expected tasks in the matching queue, keys: %v", mr.Keys())
	}
}

func TestClientRequiresRedisURL(t *testing.T) {
	if _, err := NewClient(testSchedulerConfig{}); err == nil {
		t.Fatal("expected error when redis url is not configured")
	}
}

func TestCallFanoutPayloadRoundTrip(t *testing.T) {
	id := uuid.New()

	task, err := NewCallFanoutTask(CallFanoutPayload{CallID: id.String()})
	if err != nil {
		t.Fatalf("NewCallFanoutTask failed: %v", err)
	}
	if task.Type() != TaskCallFanout {
		t.Fatalf("unexpected task type %q", task.Type())
	}

	payload, err := ParseCallFanoutPayload(task)
	if err != nil {
		t.Fatalf("ParseCallFanoutPayload failed: %v", err)
	}
	if payload.CallID != id.String() {
		t.Fatalf("payload round trip mismatch: %q", payload.CallID)
	}
}

func TestProfileFanoutPayloadRejectsGarbage(t *testing.T) {
	task := asynq.NewTask(TaskProfileFanout, []byte("not json"))
	if _, err := ParseProfileFanoutPayload(task); err == nil {
		t.Fatal("expected parse error for invalid payload")
	}
}
