package record

import (
	"context"
	"testing"
	"time"

	redisv8 "github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"trendscraper/internal/errs"
)

// Requires a running redis; skipped otherwise.
func TestRedisStore(t *testing.T) {
	ctx := context.Background()
	client := redisv8.NewClient(&redisv8.Options{Addr: "localhost:6379"})
	defer client.Close()
	if err := client.Ping(ctx).Err(); err != nil {
		t.Skip("Redis is not available, skipping test")
	}

	s := NewRedisStore(client)
	s.prefix = "test:" + recordPrefix
	s.index = "test:" + createdIndex
	t.Cleanup(func() {
		client.Del(ctx, s.index, s.prefix+"old", s.prefix+"new")
	})
	client.Del(ctx, s.index, s.prefix+"old", s.prefix+"new")

	base := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	require.NoError(t, s.Save(ctx, &RunRecord{RunID: "old", Trends: fiveTrends, IPAddress: "1.1.1.1", CreatedAt: base}))
	require.NoError(t, s.Save(ctx, &RunRecord{RunID: "new", Trends: fiveTrends, IPAddress: "2.2.2.2", CreatedAt: base.Add(time.Hour)}))

	err := s.Save(ctx, &RunRecord{RunID: "old", Trends: fiveTrends, IPAddress: "3.3.3.3"})
	assert.Equal(t, errs.TypeValidation, errs.TypeOf(err))

	got, err := s.Get(ctx, "old")
	require.NoError(t, err)
	assert.Equal(t, "1.1.1.1", got.IPAddress)

	latest, err := s.Latest(ctx, 5)
	require.NoError(t, err)
	require.Len(t, latest, 2)
	assert.Equal(t, "new", latest[0].RunID)

	stats, err := s.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(2), stats.TotalRecords)
	assert.Equal(t, "new", stats.LatestRun.RunID)
	assert.Equal(t, "old", stats.OldestRun.RunID)

	_, err = s.Get(ctx, "absent")
	assert.Equal(t, errs.TypeNotFound, errs.TypeOf(err))
}

func TestRedisStore_IndexFailureRemovesBody(t *testing.T) {
	ctx := context.Background()
	client := redisv8.NewClient(&redisv8.Options{Addr: "localhost:6379"})
	defer client.Close()
	if err := client.Ping(ctx).Err(); err != nil {
		t.Skip("Redis is not available, skipping test")
	}

	s := NewRedisStore(client)
	s.prefix = "test:broken:" + recordPrefix
	s.index = "test:broken:" + createdIndex
	t.Cleanup(func() { client.Del(ctx, s.index, s.prefix+"orphan") })

	// A plain string under the index key makes ZADD fail with WRONGTYPE.
	require.NoError(t, client.Set(ctx, s.index, "not-a-zset", 0).Err())

	err := s.Save(ctx, &RunRecord{RunID: "orphan", Trends: fiveTrends, IPAddress: "1.1.1.1"})
	assert.Equal(t, errs.TypeStorage, errs.TypeOf(err))

	n, err := client.Exists(ctx, s.prefix+"orphan").Result()
	require.NoError(t, err)
	assert.Zero(t, n)
}
