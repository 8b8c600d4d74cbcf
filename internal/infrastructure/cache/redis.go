package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/borderpass/borderpass-backend/internal/domain/entities"
	"github.com/borderpass/borderpass-backend/pkg/config"
)

// scoreTTL bounds how long a cached score outlives its write. Scores are
// immutable, so the TTL only caps memory, not staleness.
const scoreTTL = 24 * time.Hour

// NewRedisClient connects to Redis and verifies the connection
func NewRedisClient(cfg *config.Config) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.GetRedisAddr(),
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	return client, nil
}

// ScoreCache is a Redis read-through cache for session scores
type ScoreCache struct {
	client *redis.Client
}

// NewScoreCache creates a score cache on top of a connected Redis client
func NewScoreCache(client *redis.Client) *ScoreCache {
	return &ScoreCache{client: client}
}

func scoreKey(sessionID uuid.UUID) string {
	return fmt.Sprintf("score:session:%s", sessionID)
}

// GetScore retrieves a cached score (nil on miss)
func (c *ScoreCache) GetScore(ctx context.Context, sessionID uuid.UUID) (*entities.Score, error) {
	raw, err := c.client.Get(ctx, scoreKey(sessionID)).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read cached score: %w", err)
	}

	var score entities.Score
	if err := json.Unmarshal(raw, &score); err != nil {
		return nil, fmt.Errorf("failed to decode cached score: %w", err)
	}
	return &score, nil
}

// SetScore caches a score
func (c *ScoreCache) SetScore(ctx context.Context, score *entities.Score) error {
	raw, err := json.Marshal(score)
	if err != nil {
		return fmt.Errorf("failed to encode score: %w", err)
	}
	if err := c.client.Set(ctx, scoreKey(score.SessionID), raw, scoreTTL).Err(); err != nil {
		return fmt.Errorf("failed to cache score: %w", err)
	}
	return nil
}
