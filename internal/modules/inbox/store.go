// README: Inbound message de-duplication backed by Redis SETNX with TTL.
package inbox

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	messageKeyPrefix = "inbox:message:"
	// DefaultTTL outlives WhatsApp's redelivery window.
	DefaultTTL = 24 * time.Hour
)

type Store struct {
	redis *redis.Client
	ttl   time.Duration
}

func NewStore(redis *redis.Client, ttl time.Duration) *Store {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Store{redis: redis, ttl: ttl}
}

// Claim marks messageID as being processed. It returns false when the id was already claimed.
func (s *Store) Claim(ctx context.Context, messageID string) (bool, error) {
	if messageID == "" {
		return true, nil
	}
	return s.redis.SetNX(ctx, messageKey(messageID), time.Now().UTC().Format(time.RFC3339), s.ttl).Result()
}

// Release forgets messageID so a redelivery is processed again.
func (s *Store) Release(ctx context.Context, messageID string) error {
	if messageID == "" {
		return nil
	}
	return s.redis.Del(ctx, messageKey(messageID)).Err()
}

// ClaimedAt reports when messageID was claimed, and whether it is claimed.
func (s *Store) ClaimedAt(ctx context.Context, messageID string) (time.Time, bool, error) {
	val, err := s.redis.Get(ctx, messageKey(messageID)).Result()
	if err == redis.Nil {
		return time.Time{}, false, nil
	}
	if err != nil {
		return time.Time{}, false, err
	}
	t, err := time.Parse(time.RFC3339, val)
	if err != nil {
		return time.Time{}, false, err
	}
	return t, true, nil
}

func messageKey(messageID string) string {
	return messageKeyPrefix + messageID
}
