package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"VinylFM/model"
)

// Read queries against the backing store are memoized for a short, fixed
// window. Writes always go straight to the store and do not invalidate
// these keys, so a read right after an insert may observe stale data until
// the TTL runs out.

const (
	inventoryKey = "collection:inventory"
	historyKey   = "collection:history"
)

// GetCachedRecords returns the memoized inventory, or (nil, false) on a
// miss or any cache failure.
func GetCachedRecords(ctx context.Context) ([]*model.Record, bool) {
	if RedisClient == nil {
		return nil, false
	}
	data, err := RedisClient.Get(ctx, inventoryKey).Bytes()
	if err != nil {
		return nil, false
	}
	var records []*model.Record
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, false
	}
	return records, true
}

// CacheRecords memoizes the inventory for ttl. Errors are returned for
// logging but callers treat them as non-fatal.
func CacheRecords(ctx context.Context, records []*model.Record, ttl time.Duration) error {
	if RedisClient == nil {
		return fmt.Errorf("Redis client not initialized")
	}
	data, err := json.Marshal(records)
	if err != nil {
		return fmt.Errorf("failed to marshal records: %w", err)
	}
	return RedisClient.Set(ctx, inventoryKey, data, ttl).Err()
}

// GetCachedSessions returns the memoized listening history, or (nil, false)
// on a miss or any cache failure.
func GetCachedSessions(ctx context.Context) ([]*model.ListeningSession, bool) {
	if RedisClient == nil {
		return nil, false
	}
	data, err := RedisClient.Get(ctx, historyKey).Bytes()
	if err != nil {
		return nil, false
	}
	var sessions []*model.ListeningSession
	if err := json.Unmarshal(data, &sessions); err != nil {
		return nil, false
	}
	return sessions, true
}

// CacheSessions memoizes the listening history for ttl.
func CacheSessions(ctx context.Context, sessions []*model.ListeningSession, ttl time.Duration) error {
	if RedisClient == nil {
		return fmt.Errorf("Redis client not initialized")
	}
	data, err := json.Marshal(sessions)
	if err != nil {
		return fmt.Errorf("failed to marshal sessions: %w", err)
	}
	return RedisClient.Set(ctx, historyKey, data, ttl).Err()
}
