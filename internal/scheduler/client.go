// Package scheduler moves matching fanouts onto asynq over Redis, so the
// requests that trigger them return immediately.
package scheduler

import (
	"context"
	"crypto/tls"
	"fmt"

	"github.com/google/uuid"
	"github.com/hibiken/asynq"
	"github.com/redis/go-redis/v9"

	"castmatch_backend/internal/matching"
	"castmatch_backend/platform/config"
)

// Client enqueues fanout tasks. It implements matching.FanoutEnqueuer.
type Client struct {
	client *asynq.Client
	queue  string
}

var _ matching.FanoutEnqueuer = (*Client)(nil)

// NewClient creates an asynq client from the scheduler configuration.
func NewClient(cfg config.SchedulerConfig) (*Client, error) {
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

	return &Client{
		client: asynq.NewClient(opt),
		queue:  queue,
	}, nil
}

// Close releases the underlying Redis connection.
func (c *Client) Close() error {
	if c == nil || c.client == nil {
		return nil
	}
	return c.client.Close()
}

// EnqueueCallFanout queues a call fanout task.
func (c *Client) EnqueueCallFanout(ctx context.Context, callID uuid.UUID) error {
	if c == nil || c.client == nil {
		return nil
	}

	task, err := NewCallFanoutTask(CallFanoutPayload{CallID: callID.String()})
	if err != nil {
		return err
	}

	_, err = c.client.EnqueueContext(ctx, task, asynq.Queue(c.queue))
	return err
}

// EnqueueProfileFanout queues a profile fanout task.
func (c *Client) EnqueueProfileFanout(ctx context.Context, profileID uuid.UUID) error {
	if c == nil || c.client == nil {
		return nil
	}

	task, err := NewProfileFanoutTask(ProfileFanoutPayload{ProfileID: profileID.String()})
	if err != nil {
		return err
	}

	_, err = c.client.EnqueueContext(ctx, task, asynq.Queue(c.queue))
	return err
}

func redisClientOpt(redisURL string, tlsInsecure bool) (asynq.RedisClientOpt, error) {
	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		return asynq.RedisClientOpt{}, err
	}

	var tlsConfig *tls.Config
	if opt.TLSConfig != nil {
		clone := opt.TLSConfig.Clone()
		if tlsInsecure {
			clone.InsecureSkipVerify = true
		}
		tlsConfig = clone
	} else if tlsInsecure {
		tlsConfig = &tls.Config{InsecureSkipVerify: true}
	}

	return asynq.RedisClientOpt{
		Addr:      opt.Addr,
		Password:  opt.Password,
		DB:        opt.DB,
		TLSConfig: tlsConfig,
	}, nil
}
