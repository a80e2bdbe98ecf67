package services

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"main/model"

	"github.com/redis/go-redis/v9"
)

const dashboardCacheTTL = 5 * time.Minute

// DashboardCache keeps a user's ranked top goals in Redis so the dashboard
// doesn't rescore on every request. It is best-effort: any cache failure
// degrades to recomputation against Mongo.
type DashboardCache struct {
	client *redis.Client
}

// GlobalDashboardCache is set during startup and may be nil.
var GlobalDashboardCache *DashboardCache

func NewDashboardCache(redisURL string) (*DashboardCache, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse Redis URL: %v", err)
	}

	client := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %v", err)
	}

	return &DashboardCache{client: client}, nil
}

// GetTopGoals returns the cached ranking for (userID, limit), or nil on a miss
func (dc *DashboardCache) GetTopGoals(ctx context.Context, userID string, limit int) ([]*model.Goal, error) {
	data, err := dc.client.Get(ctx, dashboardKey(userID, limit)).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var goals []*model.Goal
	if err := json.Unmarshal(data, &goals); err != nil {
		return nil, fmt.Errorf("failed to unmarshal cached dashboard: %v", err)
	}
	return goals, nil
}

// SetTopGoals caches a freshly computed ranking
func (dc *DashboardCache) SetTopGoals(ctx context.Context, userID string, limit int, goals []*model.Goal) error {
	data, err := json.Marshal(goals)
	if err != nil {
		return fmt.Errorf("failed to marshal dashboard: %v", err)
	}
	return dc.client.Set(ctx, dashboardKey(userID, limit), data, dashboardCacheTTL).Err()
}

// Invalidate drops every cached ranking for the user. Called after any goal
// mutation since all of them can change scores.
func (dc *DashboardCache) Invalidate(ctx context.Context, userID string) error {
	iter := dc.client.Scan(ctx, 0, fmt.Sprintf("dashboard:%s:*", userID), 0).Iterator()
	for iter.Next(ctx) {
		if err := dc.client.Del(ctx, iter.Val()).Err(); err != nil {
			return err
		}
	}
	return iter.Err()
}

func dashboardKey(userID string, limit int) string {
	return fmt.Sprintf("dashboard:%s:%d", userID, limit)
}
