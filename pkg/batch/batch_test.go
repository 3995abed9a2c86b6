package batch_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/plugsync/pkg/batch"
)

// recorder tracks which indexes ran and how many delays occurred.
type recorder struct {
	mu      sync.Mutex
	ran     []int
	batches [][]int
	current []int
	delays  int
}

func (r *recorder) run(_ context.Context, i int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.ran = append(r.ran, i)
	r.current = append(r.current, i)
}

func (r *recorder) sleep(_ context.Context, _ time.Duration) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.delays++
	r.batches = append(r.batches, r.current)
	r.current = nil
	return nil
}

func TestRunTwelveEntriesBatchSizeFive(t *testing.T) {
	rec := &recorder{}
	s := batch.New(batch.WithSize(5), batch.WithSleep(rec.sleep))

	err := s.Run(context.Background(), 12, rec.run)
	require.NoError(t, err)

	// 3 batches of 5, 5, 2 and exactly 2 inter-batch delays.
	assert.Equal(t, 2, rec.delays)
	assert.Equal(t, 3, s.Count(12))
	assert.Len(t, rec.ran, 12)

	seen := make(map[int]int)
	for _, i := range rec.ran {
		seen[i]++
	}
	for i := 0; i < 12; i++ {
		assert.Equal(t, 1, seen[i], "index %d attempted exactly once", i)
	}

	require.Len(t, rec.batches, 2)
	assert.Len(t, rec.batches[0], 5)
	assert.Len(t, rec.batches[1], 5)
}

func TestRunBatchOrdering(t *testing.T) {
	rec := &recorder{}
	s := batch.New(batch.WithSize(2), batch.WithSleep(rec.sleep))

	require.NoError(t, s.Run(context.Background(), 6, rec.run))

	// Every index of batch N precedes every index of batch N+1.
	pos := make(map[int]int)
	for p, i := range rec.ran {
		pos[i] = p
	}
	for _, pair := range [][2]int{{0, 2}, {1, 2}, {2, 4}, {3, 4}} {
		assert.Less(t, pos[pair[0]], pos[pair[1]])
	}
}

func TestRunNoDelayAfterLastBatch(t *testing.T) {
	rec := &recorder{}
	s := batch.New(batch.WithSize(5), batch.WithSleep(rec.sleep))

	require.NoError(t, s.Run(context.Background(), 5, rec.run))
	assert.Zero(t, rec.delays)

	require.NoError(t, s.Run(context.Background(), 0, rec.run))
	assert.Zero(t, rec.delays)
}

func TestRunCancelledDuringDelay(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	s := batch.New(
		batch.WithSize(1),
		batch.WithSleep(func(ctx context.Context, _ time.Duration) error {
			cancel()
			return ctx.Err()
		}),
	)

	var mu sync.Mutex
	ran := 0
	err := s.Run(ctx, 3, func(_ context.Context, _ int) {
		mu.Lock()
		ran++
		mu.Unlock()
	})
	require.Error(t, err)
	assert.Equal(t, 1, ran)
}

func TestCount(t *testing.T) {
	s := batch.New(batch.WithSize(5))
	assert.Equal(t, 0, s.Count(0))
	assert.Equal(t, 1, s.Count(5))
	assert.Equal(t, 2, s.Count(6))
	assert.Equal(t, 3, s.Count(12))
}
