package memory

import (
	"context"
	"math/rand"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	"image-quiz-service/internal/domain"
)

// QuestionLoader fetches raw question records from a backing store (Postgres, HTTP, file).
type QuestionLoader interface {
	LoadQuestionSet(ctx context.Context, setID string) ([]any, error)
}

// QuestionRepository caches raw question sets with TTL to avoid repeated source hits.
type QuestionRepository struct {
	loader QuestionLoader
	ttl    time.Duration
	clock  func() time.Time
	sf     singleflight.Group

	mu    sync.RWMutex
	cache map[string]cachedSet
}

type cachedSet struct {
	records   []any
	expiresAt time.Time
}

func NewQuestionRepository(loader QuestionLoader, ttl time.Duration) *QuestionRepository {
	return &QuestionRepository{
		loader: loader,
		ttl:    ttl,
		clock:  time.Now,
		cache:  make(map[string]cachedSet),
	}
}

func (r *QuestionRepository) GetQuestionSet(ctx context.Context, setID string) ([]any, error) {
	if records, ok := r.cached(setID, r.clock()); ok {
		return records, nil
	}

	result, err, _ := r.sf.Do(setID, func() (interface{}, error) {
		now := r.clock()
		if records, ok := r.cached(setID, now); ok {
			return records, nil
		}

		records, err := r.loader.LoadQuestionSet(ctx, setID)
		if err != nil {
			return nil, err
		}
		// Empty sets are not cached so a fixed source is picked up on the next session.
		if len(records) == 0 {
			return records, nil
		}

		r.mu.Lock()
		r.cache[setID] = cachedSet{
			records:   records,
			expiresAt: now.Add(r.ttlWithJitter()),
		}
		r.mu.Unlock()
		return records, nil
	})
	if err != nil {
		return nil, err
	}
	return result.([]any), nil
}

func (r *QuestionRepository) cached(setID string, now time.Time) ([]any, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	entry, ok := r.cache[setID]
	if !ok || !entry.expiresAt.After(now) {
		return nil, false
	}
	return entry.records, true
}

func (r *QuestionRepository) ttlWithJitter() time.Duration {
	if r.ttl <= 0 {
		return 0
	}
	// add up to 10% jitter to spread expirations
	jitterMax := int64(r.ttl) / 10
	return r.ttl + time.Duration(rand.Int63n(jitterMax+1))
}

// StaticQuestionLoader serves question sets from memory (useful for tests/demos).
type StaticQuestionLoader struct {
	sets map[string][]any
}

func NewStaticQuestionLoader(sets map[string][]any) *StaticQuestionLoader {
	return &StaticQuestionLoader{sets: sets}
}

func (l *StaticQuestionLoader) LoadQuestionSet(_ context.Context, setID string) ([]any, error) {
	if records, ok := l.sets[setID]; ok {
		return records, nil
	}
	return nil, domain.ErrQuestionSetNotFound
}
