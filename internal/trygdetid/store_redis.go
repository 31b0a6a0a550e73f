package trygdetid

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	platformredis "sedprefill/internal/platform/redis"
)

const timelineKeyPrefix = "trygdetid:timeline:"

// RedisStore caches assembled timelines in Redis with a TTL, so repeated
// caseworker views of the same case do not refetch every document.
type RedisStore struct {
	client *platformredis.Client
	ttl    time.Duration
}

func NewRedisStore(client *platformredis.Client, ttl time.Duration) *RedisStore {
	return &RedisStore{client: client, ttl: ttl}
}

func (s *RedisStore) Get(ctx context.Context, rinaCaseID, claimantPIN string) (Timeline, bool, error) {
	raw, err := s.client.Get(ctx, timelineKeyPrefix+cacheKey(rinaCaseID, claimantPIN)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return Timeline{}, false, nil
		}
		return Timeline{}, false, fmt.Errorf("get timeline: %w", err)
	}
	var timeline Timeline
	if err := json.Unmarshal(raw, &timeline); err != nil {
		// Corrupt entry: treat as a miss, the next Set overwrites it.
		return Timeline{}, false, nil
	}
	return timeline, true, nil
}

func (s *RedisStore) Set(ctx context.Context, timeline Timeline) error {
	raw, err := json.Marshal(timeline)
	if err != nil {
		return fmt.Errorf("marshal timeline: %w", err)
	}
	key := timelineKeyPrefix + cacheKey(timeline.RinaCaseID, timeline.ClaimantPIN)
	if err := s.client.Set(ctx, key, raw, s.ttl).Err(); err != nil {
		return fmt.Errorf("set timeline: %w", err)
	}
	return nil
}
