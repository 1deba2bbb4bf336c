package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	idemNS      = ns + ":idem"
	idemPending = "PENDING"
)

var ErrIdempotencyKeyReused = errors.New("idempotency key reused with a different request")

func KeyIdemBooking(userID string, idemKey string) string {
	return fmt.Sprintf("%s:bookings:%s:%s", idemNS, userID, idemKey)
}

// IdemRecord is the stored outcome of a completed request.
type IdemRecord struct {
	Fingerprint string          `json:"fp"`
	Status      int             `json:"status"`
	Body        json.RawMessage `json:"body"`
}

type IdempotencyStore struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewIdempotencyStore(rdb *redis.Client, ttl time.Duration) *IdempotencyStore {
	return &IdempotencyStore{rdb: rdb, ttl: ttl}
}

// Acquire claims key for a new request. When the key already holds a
// completed response it is returned for replay. acquired is false and rec
// nil while another request with the same key is in flight.
//
// Returns:
//   - error: ErrIdempotencyKeyReused if the stored response belongs to a
//     request with a different fingerprint.
func (s *IdempotencyStore) Acquire(
	ctx context.Context,
	key string,
	fingerprint string,
	lockTTL time.Duration,
) (rec *IdemRecord, acquired bool, err error) {
	const op = "redis.IdempotencyStore.Acquire"

	ok, err := s.rdb.SetNX(ctx, key, idemPending, lockTTL).Result()
	if err != nil {
		return nil, false, fmt.Errorf("%s:%w", op, err)
	}
	if ok {
		return nil, true, nil
	}

	v, err := s.rdb.Get(ctx, key).Result()
	if errors.Is(err, redis.Nil) || v == idemPending {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("%s:%w", op, err)
	}

	var stored IdemRecord
	if err := json.Unmarshal([]byte(v), &stored); err != nil {
		return nil, false, fmt.Errorf("%s:%w", op, err)
	}

	if stored.Fingerprint != fingerprint {
		return nil, false, fmt.Errorf("%s:%w", op, ErrIdempotencyKeyReused)
	}

	return &stored, false, nil
}

// Save stores the response for replay and releases the in-flight marker.
func (s *IdempotencyStore) Save(ctx context.Context, key string, rec IdemRecord) error {
	b, err := json.Marshal(rec)
	if err != nil {
		return err
	}
	return s.rdb.Set(ctx, key, b, s.ttl).Err()
}

// Release forgets key so the request can be retried.
func (s *IdempotencyStore) Release(ctx context.Context, key string) error {
	return s.rdb.Del(ctx, key).Err()
}
