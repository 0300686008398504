package services

import (
	"context"
	"crypto/subtle"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/Udilainer/referral-project/domain"
)

// otpKeyPrefix namespaces one-time codes in Redis.
const otpKeyPrefix = "auth_code:"

// OTPStoreImpl implements domain.OTPStore on Redis. Entries are
// best-effort ephemeral: eviction or restart reads as no-match, never
// as a distinct error.
type OTPStoreImpl struct {
	redisClient *redis.Client
	ttl         time.Duration
}

// NewOTPStore creates a Redis-backed OTP store with the given TTL.
func NewOTPStore(redisClient *redis.Client, ttl time.Duration) domain.OTPStore {
	return &OTPStoreImpl{
		redisClient: redisClient,
		ttl:         ttl,
	}
}

// Put implements domain.OTPStore. Writing replaces any prior entry for
// the phone and resets its TTL.
func (s *OTPStoreImpl) Put(ctx context.Context, phone, code string) error {
	key := otpKeyPrefix + phone
	if err := s.redisClient.Set(ctx, key, code, s.ttl).Err(); err != nil {
		return fmt.Errorf("failed to store auth code: %w", err)
	}
	return nil
}

// TakeIfMatch implements domain.OTPStore. The entry is deleted only on
// a successful match, so a wrong guess never consumes the code. Beyond
// the boolean outcome the comparison leaks nothing: it is constant-time
// and absent/expired/mismatched all report false.
func (s *OTPStoreImpl) TakeIfMatch(ctx context.Context, phone, code string) (bool, error) {
	key := otpKeyPrefix + phone

	stored, err := s.redisClient.Get(ctx, key).Result()
	if err == redis.Nil {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to read auth code: %w", err)
	}

	if subtle.ConstantTimeCompare([]byte(stored), []byte(code)) != 1 {
		return false, nil
	}

	if err := s.redisClient.Del(ctx, key).Err(); err != nil {
		return false, fmt.Errorf("failed to consume auth code: %w", err)
	}
	return true, nil
}
