package service

import (
	"encoding/json"
	"fmt"
	"time"

	"cre-commission-api/internal/dal"
)

const (
	dealCacheTTL   = 10 * time.Minute
	totalsCacheTTL = 30 * time.Second
)

func dealCacheKey(dealID uint64) string   { return fmt.Sprintf("deal:%d", dealID) }
func totalsCacheKey(dealID uint64) string { return fmt.Sprintf("deal_totals:%d", dealID) }

// Redis is best effort here: a cold or absent cache only costs a DB read.

func cacheSet(key string, v interface{}, ttl time.Duration) {
	if dal.RedisClient == nil {
		return
	}
	b, err := json.Marshal(v)
	if err != nil {
		return
	}
	_ = dal.RedisClient.Set(dal.RedisCtx, key, b, ttl).Err()
}

func cacheGet(key string, out interface{}) bool {
	if dal.RedisClient == nil {
		return false
	}
	s, err := dal.RedisClient.Get(dal.RedisCtx, key).Result()
	if err != nil {
		return false
	}
	return json.Unmarshal([]byte(s), out) == nil
}

func cacheDel(keys ...string) {
	if dal.RedisClient == nil || len(keys) == 0 {
		return
	}
	_ = dal.RedisClient.Del(dal.RedisCtx, keys...).Err()
}

func invalidateDeal(dealID uint64) {
	cacheDel(dealCacheKey(dealID), totalsCacheKey(dealID))
}
