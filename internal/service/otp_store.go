package service

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// OTPStore limits how long and how many times an emailed code can be tried.
// The code itself lives on the user row; the store only keeps the window.
type OTPStore interface {
	Start(ctx context.Context, userID int64) error
	Attempt(ctx context.Context, userID int64) (bool, error)
	Clear(ctx context.Context, userID int64) error
}

type redisOTPStore struct {
	client      *redis.Client
	ttl         time.Duration
	maxAttempts int
}

func NewOTPStore(client *redis.Client, ttl time.Duration, maxAttempts int) OTPStore {
	return &redisOTPStore{client: client, ttl: ttl, maxAttempts: maxAttempts}
}

// attemptScript bumps the counter only while the window key exists, so a
// lapsed window is never recreated without a TTL.
var attemptScript = redis.NewScript(`
if redis.call("EXISTS", KEYS[1]) == 0 then
	return -1
end
return redis.call("INCR", KEYS[1])
`)

func otpKey(userID int64) string {
	return fmt.Sprintf("otp_attempts:%d", userID)
}

// Start opens a fresh window, discarding earlier attempts.
func (s *redisOTPStore) Start(ctx context.Context, userID int64) error {
	return s.client.Set(ctx, otpKey(userID), 0, s.ttl).Err()
}

// Attempt records one try and reports whether it falls inside the window.
func (s *redisOTPStore) Attempt(ctx context.Context, userID int64) (bool, error) {
	n, err := attemptScript.Run(ctx, s.client, []string{otpKey(userID)}).Int64()
	if err != nil {
		return false, err
	}
	return n > 0 && n <= int64(s.maxAttempts), nil
}

func (s *redisOTPStore) Clear(ctx context.Context, userID int64) error {
	return s.client.Del(ctx, otpKey(userID)).Err()
}
