package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math/rand"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

// QuestionLoader fetches raw question records from a backing store.
type QuestionLoader interface {
	LoadQuestionSet(ctx context.Context, setID string) ([]any, error)
}

// QuestionRepository caches raw question sets in Redis and falls back to a loader on cache miss.
// Records are stored as the JSON array the source returned:
//
//	SET quiz:set:{setID}:records <json> EX <ttl>
type QuestionRepository struct {
	client *redis.Client
	loader QuestionLoader
	ttl    time.Duration
	log    *zap.Logger
	sf     singleflight.Group
}

func NewQuestionRepository(client *redis.Client, loader QuestionLoader, ttl time.Duration, log *zap.Logger) *QuestionRepository {
	return &QuestionRepository{
		client: client,
		loader: loader,
		ttl:    ttl,
		log:    log,
	}
}

func (r *QuestionRepository) GetQuestionSet(ctx context.Context, setID string) ([]any, error) {
	key := r.recordsKey(setID)
	if records, ok := r.cached(ctx, key); ok {
		return records, nil
	}

	result, err, _ := r.sf.Do(setID, func() (interface{}, error) {
		// Re-check cache in case another goroutine filled it.
		if records, ok := r.cached(ctx, key); ok {
			return records, nil
		}

		records, err := r.loader.LoadQuestionSet(ctx, setID)
		if err != nil {
			return nil, err
		}
		if len(records) == 0 {
			return records, nil
		}

		data, err := json.Marshal(records)
		if err != nil {
			return nil, fmt.Errorf("marshal question set: %w", err)
		}
		// Cache writes are best effort; the loaded records are still served.
		if err := r.client.Set(ctx, key, data, r.ttlWithJitter()).Err(); err != nil {
			r.log.Warn("failed to cache question set", zap.String("set", setID), zap.Error(err))
		}
		return records, nil
	})
	if err != nil {
		return nil, err
	}
	return result.([]any), nil
}

func (r *QuestionRepository) cached(ctx context.Context, key string) ([]any, bool) {
	data, err := r.client.Get(ctx, key).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			r.log.Warn("question cache read failed", zap.String("key", key), zap.Error(err))
		}
		return nil, false
	}
	var records []any
	if err := json.Unmarshal(data, &records); err != nil || len(records) == 0 {
		return nil, false
	}
	return records, true
}

func (r *QuestionRepository) recordsKey(setID string) string {
	return "quiz:set:" + setID + ":records"
}

func (r *QuestionRepository) ttlWithJitter() time.Duration {
	if r.ttl <= 0 {
		return 0
	}
	jitterMax := int64(r.ttl) / 10
	return r.ttl + time.Duration(rand.Int63n(jitterMax+1))
}
