package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/Navya28shree/Smart-Presentation-Speech-Analyzer/internal/model"
)

// ProgressCache holds computed progress stats so dashboard reads do not
// rescan the whole history. A cache miss returns (nil, nil).
type ProgressCache interface {
	Set(ctx context.Context, userID string, stats *model.ProgressStats) error
	Get(ctx context.Context, userID string) (*model.ProgressStats, error)
	Invalidate(ctx context.Context, userID string) error
}

type progressCache struct {
	client *redis.Client
}

func NewProgressCache(client *redis.Client) ProgressCache {
	return &progressCache{
		client: client,
	}
}

func (c *progressCache) Set(ctx context.Context, userID string, stats *model.ProgressStats) error {
	data, err := json.Marshal(stats)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, "progress:"+userID, data, 10*time.Minute).Err()
}

func (c *progressCache) Get(ctx context.Context, userID string) (*model.ProgressStats, error) {
	data, err := c.client.Get(ctx, "progress:"+userID).Result()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var stats model.ProgressStats
	if err := json.Unmarshal([]byte(data), &stats); err != nil {
		return nil, err
	}
	return &stats, nil
}

func (c *progressCache) Invalidate(ctx context.Context, userID string) error {
	return c.client.Del(ctx, "progress:"+userID).Err()
}
