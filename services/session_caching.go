package services

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"main/model"

	"github.com/redis/go-redis/v9"
)

const sessionCacheTTL = 30 * time.Minute

type SessionCache struct {
	client *redis.Client
}

// GlobalSessionCache is set during startup; repositories treat it as
// optional and fall back to Mongo when it is nil or errors.
var GlobalSessionCache *SessionCache

// NewSessionCache creates and initializes a new session cache
func NewSessionCache(redisURL string) (*SessionCache, error) {
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

	return &SessionCache{client: client}, nil
}

// SetSession caches an individual session
func (sc *SessionCache) SetSession(session *model.Session) error {
	if session == nil {
		return fmt.Errorf("cannot cache nil session")
	}

	data, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("failed to marshal session: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	return sc.client.Set(ctx, sessionKey(session.SessionID), data, sessionCacheTTL).Err()
}

// GetSession retrieves a cached session, or nil on a miss
func (sc *SessionCache) GetSession(sessionID string) (*model.Session, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	data, err := sc.client.Get(ctx, sessionKey(sessionID)).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var session model.Session
	if err := json.Unmarshal(data, &session); err != nil {
		return nil, fmt.Errorf("failed to unmarshal cached session: %v", err)
	}
	return &session, nil
}

// DeleteSession drops a session from the cache
func (sc *SessionCache) DeleteSession(sessionID string) error {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	return sc.client.Del(ctx, sessionKey(sessionID)).Err()
}

func sessionKey(sessionID string) string {
	return "session:" + sessionID
}
