package record

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"trendscraper/internal/errs"
)

var fiveTrends = []string{"#Bitcoin", "#AI", "#OpenAI", "Elon Musk", "#Technology"}

func TestRunRecord_Validate(t *testing.T) {
	tests := []struct {
		name string
		rec  RunRecord
		ok   bool
	}{
		{"valid", RunRecord{RunID: "a", Trends: fiveTrends, IPAddress: "1.2.3.4"}, true},
		{"missing id", RunRecord{Trends: fiveTrends, IPAddress: "1.2.3.4"}, false},
		{"four trends", RunRecord{RunID: "a", Trends: fiveTrends[:4], IPAddress: "1.2.3.4"}, false},
		{"six trends", RunRecord{RunID: "a", Trends: append(append([]string{}, fiveTrends...), "#Extra"), IPAddress: "1.2.3.4"}, false},
		{"blank trend", RunRecord{RunID: "a", Trends: []string{"#A", " ", "#C", "#D", "#E"}, IPAddress: "1.2.3.4"}, false},
		{"missing ip", RunRecord{RunID: "a", Trends: fiveTrends}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.rec.Validate()
			if tt.ok {
				assert.NoError(t, err)
				return
			}
			assert.Equal(t, errs.TypeValidation, errs.TypeOf(err))
		})
	}
}

func TestRunRecord_Summary(t *testing.T) {
	at := time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC)
	r := RunRecord{RunID: "a", Trends: fiveTrends, IPAddress: "1.2.3.4", CreatedAt: at}

	assert.Equal(t, Summary{RunID: "a", TrendCount: 5, IPAddress: "1.2.3.4", CreatedAt: at}, r.Summary())
}

func TestMemoryStore(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()
	clock := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	s.now = func() time.Time { clock = clock.Add(time.Minute); return clock }

	empty, err := s.Stats(ctx)
	require.NoError(t, err)
	assert.Zero(t, empty.TotalRecords)
	assert.Nil(t, empty.LatestRun)

	for _, id := range []string{"first", "second", "third"} {
		require.NoError(t, s.Save(ctx, &RunRecord{RunID: id, Trends: fiveTrends, IPAddress: "1.2.3.4"}))
	}

	err = s.Save(ctx, &RunRecord{RunID: "second", Trends: fiveTrends, IPAddress: "1.2.3.4"})
	assert.Equal(t, errs.TypeValidation, errs.TypeOf(err))

	latest, err := s.Latest(ctx, 2)
	require.NoError(t, err)
	require.Len(t, latest, 2)
	assert.Equal(t, "third", latest[0].RunID)
	assert.Equal(t, "second", latest[1].RunID)

	got, err := s.Get(ctx, "first")
	require.NoError(t, err)
	assert.False(t, got.CreatedAt.IsZero())

	_, err = s.Get(ctx, "missing")
	assert.Equal(t, errs.TypeNotFound, errs.TypeOf(err))

	stats, err := s.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(3), stats.TotalRecords)
	assert.Equal(t, "third", stats.LatestRun.RunID)
	assert.Equal(t, "first", stats.OldestRun.RunID)
}

func TestMemoryStore_RejectsInvalid(t *testing.T) {
	s := NewMemoryStore()
	err := s.Save(context.Background(), &RunRecord{RunID: "x", Trends: []string{"#A"}, IPAddress: "1.2.3.4"})
	assert.Equal(t, errs.TypeValidation, errs.TypeOf(err))

	stats, _ := s.Stats(context.Background())
	assert.Zero(t, stats.TotalRecords)
}

func TestMemoryStore_SavedRecordIsCopied(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()
	trends := append([]string{}, fiveTrends...)
	require.NoError(t, s.Save(ctx, &RunRecord{RunID: "a", Trends: trends, IPAddress: "1.2.3.4"}))

	trends[0] = "#Mutated"
	got, err := s.Get(ctx, "a")
	require.NoError(t, err)
	assert.Equal(t, "#Bitcoin", got.Trends[0])
}
