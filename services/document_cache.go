package services

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"main/config"
	"main/model"
	"main/utils"

	"github.com/redis/go-redis/v9"
)

// DocumentCache memoizes list, single-document and category reads per
// user. Mutations call InvalidateUser so subsequent reads observe the
// change; a read already in flight may still return pre-mutation data,
// which is acceptable staleness for this domain.
type DocumentCache struct {
	client  *redis.Client
	listTTL time.Duration
	docTTL  time.Duration
}

// GlobalDocumentCache is wired at startup; a nil cache is a valid
// configuration and every lookup degrades to the store.
var GlobalDocumentCache *DocumentCache

func NewDocumentCache(cfg config.CacheConfig) (*DocumentCache, error) {
	opts, err := redis.ParseURL(cfg.RedisURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse Redis URL: %w", err)
	}

	client := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return &DocumentCache{
		client:  client,
		listTTL: cfg.ListTTL,
		docTTL:  cfg.DocTTL,
	}, nil
}

func listKey(userID, search, category string) string {
	return fmt.Sprintf("docs:%s:list:%s:%s", userID, search, category)
}

func docKey(userID, id string) string {
	return fmt.Sprintf("docs:%s:doc:%s", userID, id)
}

func categoriesKey(userID string) string {
	return fmt.Sprintf("docs:%s:categories", userID)
}

// GetDocumentList returns the cached result for a list query. The
// second return reports whether the cache held an entry.
func (dc *DocumentCache) GetDocumentList(ctx context.Context, userID, search, category string) ([]*model.Document, bool) {
	data, err := dc.client.Get(ctx, listKey(userID, search, category)).Bytes()
	if err == redis.Nil {
		utils.TrackCacheRequest("list", "miss")
		return nil, false
	}
	if err != nil {
		utils.TrackCacheRequest("list", "error")
		utils.Sugar.Errorf("document list cache read failed: %v", err)
		return nil, false
	}

	var docs []*model.Document
	if err := json.Unmarshal(data, &docs); err != nil {
		utils.TrackCacheRequest("list", "error")
		return nil, false
	}
	utils.TrackCacheRequest("list", "hit")
	return docs, true
}

func (dc *DocumentCache) SetDocumentList(ctx context.Context, userID, search, category string, docs []*model.Document) {
	data, err := json.Marshal(docs)
	if err != nil {
		return
	}
	if err := dc.client.Set(ctx, listKey(userID, search, category), data, dc.listTTL).Err(); err != nil {
		utils.Sugar.Errorf("document list cache write failed: %v", err)
	}
}

func (dc *DocumentCache) GetDocument(ctx context.Context, userID, id string) (*model.Document, bool) {
	data, err := dc.client.Get(ctx, docKey(userID, id)).Bytes()
	if err == redis.Nil {
		utils.TrackCacheRequest("doc", "miss")
		return nil, false
	}
	if err != nil {
		utils.TrackCacheRequest("doc", "error")
		utils.Sugar.Errorf("document cache read failed: %v", err)
		return nil, false
	}

	var doc model.Document
	if err := json.Unmarshal(data, &doc); err != nil {
		utils.TrackCacheRequest("doc", "error")
		return nil, false
	}
	utils.TrackCacheRequest("doc", "hit")
	return &doc, true
}

func (dc *DocumentCache) SetDocument(ctx context.Context, userID string, doc *model.Document) {
	data, err := json.Marshal(doc)
	if err != nil {
		return
	}
	if err := dc.client.Set(ctx, docKey(userID, doc.ID), data, dc.docTTL).Err(); err != nil {
		utils.Sugar.Errorf("document cache write failed: %v", err)
	}
}

func (dc *DocumentCache) GetCategories(ctx context.Context, userID string) ([]string, bool) {
	data, err := dc.client.Get(ctx, categoriesKey(userID)).Bytes()
	if err == redis.Nil {
		utils.TrackCacheRequest("categories", "miss")
		return nil, false
	}
	if err != nil {
		utils.TrackCacheRequest("categories", "error")
		utils.Sugar.Errorf("categories cache read failed: %v", err)
		return nil, false
	}

	var categories []string
	if err := json.Unmarshal(data, &categories); err != nil {
		utils.TrackCacheRequest("categories", "error")
		return nil, false
	}
	utils.TrackCacheRequest("categories", "hit")
	return categories, true
}

func (dc *DocumentCache) SetCategories(ctx context.Context, userID string, categories []string) {
	data, err := json.Marshal(categories)
	if err != nil {
		return
	}
	if err := dc.client.Set(ctx, categoriesKey(userID), data, dc.listTTL).Err(); err != nil {
		utils.Sugar.Errorf("categories cache write failed: %v", err)
	}
}

// InvalidateUser drops every cached read for the user. Called after
// each successful mutation; failures are logged and never surfaced,
// the TTLs bound the staleness window.
func (dc *DocumentCache) InvalidateUser(ctx context.Context, userID string) {
	pattern := fmt.Sprintf("docs:%s:*", userID)

	iter := dc.client.Scan(ctx, 0, pattern, 0).Iterator()
	var keys []string
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		utils.TrackError("cache")
		utils.Sugar.Errorf("cache invalidation scan failed for user %s: %v", userID, err)
		return
	}

	if len(keys) == 0 {
		return
	}
	if err := dc.client.Del(ctx, keys...).Err(); err != nil {
		utils.TrackError("cache")
		utils.Sugar.Errorf("cache invalidation failed for user %s: %v", userID, err)
	}
}

// Close closes the Redis connection
func (dc *DocumentCache) Close() error {
	return dc.client.Close()
}
