package recs

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
)

// Service fronts the engine with a Redis cache keyed by (k, title). The
// catalog is immutable for the process lifetime, so cached results can
// never go stale; the TTL just bounds memory. A nil client disables
// caching, and cache outages fall through to computing the result.
type Service struct {
	Engine *Engine
	RDB    *redis.Client
	TTL    time.Duration
}

func NewService(engine *Engine, rdb *redis.Client) *Service {
	return &Service{Engine: engine, RDB: rdb, TTL: 10 * time.Minute}
}

func (s *Service) Recommend(ctx context.Context, title string, k int) ([]Recommendation, error) {
	key := fmt.Sprintf("recs:%d:%s", k, title)

	if s.RDB != nil {
		if cached, err := s.RDB.Get(ctx, key).Result(); err == nil {
			var out []Recommendation
			if json.Unmarshal([]byte(cached), &out) == nil {
				return out, nil
			}
		}
	}

	out, err := s.Engine.Recommend(title, k)
	if err != nil {
		return nil, err
	}

	if s.RDB != nil {
		if b, err := json.Marshal(out); err == nil {
			if err := s.RDB.Set(ctx, key, b, s.TTL).Err(); err != nil {
				slog.Debug("recommendation cache write failed", "error", err)
			}
		}
	}
	return out, nil
}
