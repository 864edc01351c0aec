package redis

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

// RevocationStore records per-user token revocation cut-offs in Redis.
// Key format: pwchange:<user_id> → unix timestamp of the password change.
// Entries expire with the token TTL: once every token minted before the
// change has expired anyway, the marker is useless.
type RevocationStore struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRevocationStore wraps the given Redis client. ttl should match the
// issuer's token lifetime.
func NewRevocationStore(client *redis.Client, ttl time.Duration) *RevocationStore {
	return &RevocationStore{client: client, ttl: ttl}
}

// Revoke marks every token for userID issued before at as invalid.
func (s *RevocationStore) Revoke(ctx context.Context, userID string, at time.Time) error {
	if err := s.client.Set(ctx, s.key(userID), at.Unix(), s.ttl).Err(); err != nil {
		return fmt.Errorf("record revocation: %w", err)
	}
	return nil
}

// RevokedAt returns the revocation cut-off for userID, or the zero time when
// no revocation is recorded.
func (s *RevocationStore) RevokedAt(ctx context.Context, userID string) (time.Time, error) {
	val, err := s.client.Get(ctx, s.key(userID)).Result()
	if err == redis.Nil {
		return time.Time{}, nil
	}
	if err != nil {
		return time.Time{}, fmt.Errorf("revocation lookup: %w", err)
	}
	ts, err := strconv.ParseInt(val, 10, 64)
	if err != nil {
		return time.Time{}, fmt.Errorf("revocation lookup: bad timestamp %q", val)
	}
	return time.Unix(ts, 0).UTC(), nil
}

func (s *RevocationStore) key(userID string) string {
	return "pwchange:" + userID
}
