package record

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	redisv8 "github.com/go-redis/redis/v8"

	"trendscraper/internal/errs"
)

const (
	recordPrefix = "run:"
	createdIndex = "runs:by_created"
)

// RedisStore keeps each record as JSON under run:<id> and indexes ids in a
// sorted set scored by creation time in milliseconds.
type RedisStore struct {
	client *redisv8.Client
	prefix string
	index  string
	now    func() time.Time
}

func NewRedisStore(client *redisv8.Client) *RedisStore {
	return &RedisStore{client: client, prefix: recordPrefix, index: createdIndex, now: time.Now}
}

func (s *RedisStore) Save(ctx context.Context, r *RunRecord) error {
	if err := prepare(r, s.now()); err != nil {
		return err
	}
	b, err := json.Marshal(r)
	if err != nil {
		return errs.NewStorage("record", "encode", err)
	}
	ok, err := s.client.SetNX(ctx, s.prefix+r.RunID, b, 0).Result()
	if err != nil {
		return errs.NewStorage("record", "write", err)
	}
	if !ok {
		return duplicate(r.RunID)
	}
	score := float64(r.CreatedAt.UnixMilli())
	if err := s.client.ZAdd(ctx, s.index, &redisv8.Z{Score: score, Member: r.RunID}).Err(); err != nil {
		// An unindexed body would block a retry under the same id.
		s.client.Del(ctx, s.prefix+r.RunID)
		return errs.NewStorage("record", "index", err)
	}
	return nil
}

func (s *RedisStore) Get(ctx context.Context, runID string) (*RunRecord, error) {
	b, err := s.client.Get(ctx, s.prefix+runID).Bytes()
	if errors.Is(err, redisv8.Nil) {
		return nil, notFound(runID)
	}
	if err != nil {
		return nil, errs.NewStorage("record", "read", err)
	}
	var r RunRecord
	if err := json.Unmarshal(b, &r); err != nil {
		return nil, errs.NewStorage("record", "decode "+runID, err)
	}
	return &r, nil
}

func (s *RedisStore) Latest(ctx context.Context, limit int) ([]RunRecord, error) {
	if limit <= 0 {
		return nil, nil
	}
	ids, err := s.client.ZRevRange(ctx, s.index, 0, int64(limit-1)).Result()
	if err != nil {
		return nil, errs.NewStorage("record", "read index", err)
	}
	return s.load(ctx, ids)
}

func (s *RedisStore) Stats(ctx context.Context) (Stats, error) {
	total, err := s.client.ZCard(ctx, s.index).Result()
	if err != nil {
		return Stats{}, errs.NewStorage("record", "count", err)
	}
	stats := Stats{TotalRecords: total}
	if total == 0 {
		return stats, nil
	}
	if stats.LatestRun, err = s.edge(ctx, true); err != nil {
		return Stats{}, err
	}
	if stats.OldestRun, err = s.edge(ctx, false); err != nil {
		return Stats{}, err
	}
	return stats, nil
}

func (s *RedisStore) edge(ctx context.Context, newest bool) (*Summary, error) {
	rng := s.client.ZRange
	if newest {
		rng = s.client.ZRevRange
	}
	ids, err := rng(ctx, s.index, 0, 0).Result()
	if err != nil {
		return nil, errs.NewStorage("record", "read index", err)
	}
	recs, err := s.load(ctx, ids)
	if err != nil || len(recs) == 0 {
		return nil, err
	}
	sum := recs[0].Summary()
	return &sum, nil
}

// load fetches ids in order, skipping entries whose body has expired or been
// removed out of band.
func (s *RedisStore) load(ctx context.Context, ids []string) ([]RunRecord, error) {
	if len(ids) == 0 {
		return []RunRecord{}, nil
	}
	keys := make([]string, len(ids))
	for i, id := range ids {
		keys[i] = s.prefix + id
	}
	vals, err := s.client.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, errs.NewStorage("record", "read", err)
	}
	out := make([]RunRecord, 0, len(vals))
	for i, v := range vals {
		str, ok := v.(string)
		if !ok {
			continue
		}
		var r RunRecord
		if err := json.Unmarshal([]byte(str), &r); err != nil {
			return nil, errs.NewStorage("record", "decode "+ids[i], err)
		}
		out = append(out, r)
	}
	return out, nil
}
