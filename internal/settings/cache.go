package settings

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/ariefcatur/zenzee-admin/internal/events"
	"github.com/ariefcatur/zenzee-admin/internal/redisx"
	"github.com/redis/go-redis/v9"
	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// CachedStore puts a redis read-through cache in front of Next and announces
// every write on the settings change feed. Redis trouble degrades to Next.
type CachedStore struct {
	Next     Store
	Redis    *redis.Client
	TTL      time.Duration
	Feed     events.Publisher // optional
	Producer string
	Log      *zap.Logger
}

func (c *CachedStore) Get(ctx context.Context, key string) ([]byte, error) {
	ck := fmt.Sprintf(redisx.KeySetting, key)
	b, err := c.Redis.Get(ctx, ck).Bytes()
	if err == nil {
		return b, nil
	}
	if !errors.Is(err, redis.Nil) {
		c.Log.Warn("settings cache read", zap.String("key", key), zap.Error(err))
	}

	b, err = c.Next.Get(ctx, key)
	if err != nil {
		return nil, err
	}
	if err := c.Redis.Set(ctx, ck, b, c.TTL).Err(); err != nil {
		c.Log.Warn("settings cache fill", zap.String("key", key), zap.Error(err))
	}
	return b, nil
}

func (c *CachedStore) Put(ctx context.Context, key string, value []byte) error {
	if err := c.Next.Put(ctx, key, value); err != nil {
		return err
	}
	ck := fmt.Sprintf(redisx.KeySetting, key)
	if err := c.Redis.Set(ctx, ck, value, c.TTL).Err(); err != nil {
		// a stale entry would outlive the write; drop it instead
		c.Log.Warn("settings cache write", zap.String("key", key), zap.Error(err))
		_ = c.Redis.Del(ctx, ck).Err()
	}
	if c.Feed != nil {
		env, err := events.New(events.TypeSettingChanged, c.Producer, key, events.SettingChangedPayload{Key: key})
		if err == nil {
			err = events.Emit(c.Feed, env)
		}
		if err != nil {
			c.Log.Warn("publish setting change", zap.String("key", key), zap.Error(err))
		}
	}
	return nil
}

// Invalidate drops the cached copy of key, used when another instance
// announces a change.
func (c *CachedStore) Invalidate(ctx context.Context, key string) error {
	return c.Redis.Del(ctx, fmt.Sprintf(redisx.KeySetting, key)).Err()
}

// HandleSettingChanged consumes settings.changed and drops the cached copy of
// the key. Dropping after our own write-through also clears a stale value a
// concurrent Get may have filled in between.
func (c *CachedStore) HandleSettingChanged(ctx context.Context, m kafkago.Message) error {
	var env events.Envelope
	if err := json.Unmarshal(m.Value, &env); err != nil {
		c.Log.Warn("drop undecodable setting event", zap.Error(err))
		return nil
	}
	if env.EventType != events.TypeSettingChanged {
		return nil
	}
	p, err := events.Decode[events.SettingChangedPayload](env)
	if err != nil || p.Key == "" {
		c.Log.Warn("drop setting event with bad payload", zap.String("event_id", env.EventID))
		return nil
	}
	return c.Invalidate(ctx, p.Key)
}
