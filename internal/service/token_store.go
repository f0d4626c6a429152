package service

import (
	"context"
	"fmt"
	"time"

	"eventplanner/pkg/jwt"

	"github.com/redis/go-redis/v9"
)

// TokenStore tracks issued tokens in redis. A token is valid only while
// its key exists.
type TokenStore interface {
	Store(ctx context.Context, userID int64, tokenType jwt.TokenType, tokenID string, ttl time.Duration) error
	IsValid(ctx context.Context, userID int64, tokenType jwt.TokenType, tokenID string) (bool, error)
	Revoke(ctx context.Context, userID int64, tokenType jwt.TokenType, tokenID string) error
	RevokeAll(ctx context.Context, userID int64) error
}

type redisTokenStore struct {
	client *redis.Client
}

func NewTokenStore(client *redis.Client) TokenStore {
	return &redisTokenStore{client: client}
}

func tokenKey(userID int64, tokenType jwt.TokenType, tokenID string) string {
	return fmt.Sprintf("%s_token:%d:%s", tokenType, userID, tokenID)
}

func (s *redisTokenStore) Store(ctx context.Context, userID int64, tokenType jwt.TokenType, tokenID string, ttl time.Duration) error {
	return s.client.Set(ctx, tokenKey(userID, tokenType, tokenID), "valid", ttl).Err()
}

func (s *redisTokenStore) IsValid(ctx context.Context, userID int64, tokenType jwt.TokenType, tokenID string) (bool, error) {
	exists, err := s.client.Exists(ctx, tokenKey(userID, tokenType, tokenID)).Result()
	if err != nil {
		return false, err
	}
	return exists > 0, nil
}

func (s *redisTokenStore) Revoke(ctx context.Context, userID int64, tokenType jwt.TokenType, tokenID string) error {
	if tokenID == "" {
		return nil
	}
	return s.client.Del(ctx, tokenKey(userID, tokenType, tokenID)).Err()
}

// RevokeAll deletes every access and refresh token of a user.
func (s *redisTokenStore) RevokeAll(ctx context.Context, userID int64) error {
	for _, tokenType := range []jwt.TokenType{jwt.AccessToken, jwt.RefreshToken} {
		pattern := fmt.Sprintf("%s_token:%d:*", tokenType, userID)
		iter := s.client.Scan(ctx, 0, pattern, 100).Iterator()
		var keys []string
		for iter.Next(ctx) {
			keys = append(keys, iter.Val())
		}
		if err := iter.Err(); err != nil {
			return fmt.Errorf("scan %s tokens: %w", tokenType, err)
		}
		if len(keys) > 0 {
			if err := s.client.Del(ctx, keys...).Err(); err != nil {
				return fmt.Errorf("delete %s tokens: %w", tokenType, err)
			}
		}
	}
	return nil
}
