package infra_redis_flow

import (
	"context"
	"fmt"
	"time"

	"github.com/go-redis/redis"
	"github.com/goccy/go-json"
	"github.com/humanbelnik/popchoice/internal/service/wizard"
)

// Driver keeps flows as JSON documents under <key>:<flow id>. Every save
// refreshes the TTL, so idle flows expire on their own.
type Driver struct {
	client *redis.Client
	key    string
	ttl    time.Duration
}

func New(
	client *redis.Client,
	key string,
	ttl time.Duration,
) *Driver {
	return &Driver{
		client: client,
		key:    key,
		ttl:    ttl,
	}
}

func (d *Driver) Save(ctx context.Context, f *wizard.Flow) error {
	value, err := json.Marshal(f)
	if err != nil {
		return fmt.Errorf("failed to encode flow: %w", err)
	}

	if err := d.client.WithContext(ctx).Set(d.getFullKey(f.ID), value, d.ttl).Err(); err != nil {
		return fmt.Errorf("failed to save flow: %w", err)
	}
	return nil
}

// Load returns nil, nil for an unknown or expired flow.
func (d *Driver) Load(ctx context.Context, id string) (*wizard.Flow, error) {
	val, err := d.client.WithContext(ctx).Get(d.getFullKey(id)).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to load flow: %w", err)
	}

	var f wizard.Flow
	if err := json.Unmarshal(val, &f); err != nil {
		return nil, fmt.Errorf("failed to decode flow: %w", err)
	}
	return &f, nil
}

func (d *Driver) Delete(ctx context.Context, id string) error {
	if err := d.client.WithContext(ctx).Del(d.getFullKey(id)).Err(); err != nil {
		return fmt.Errorf("failed to delete flow: %w", err)
	}
	return nil
}

func (d *Driver) getFullKey(key string) string {
	if d.key != "" {
		return d.key + ":" + key
	}
	return key
}
