// Package batch runs a large ordered list of independent operations in
// fixed-size concurrent chunks with a pacing delay between chunks. The
// chunking bounds the number of in-flight external calls; the delay keeps
// sustained throughput under provider rate limits.
package batch

import (
	"context"
	"sync"
	"time"

	"github.com/agentstation/plugsync/pkg/logging"
)

const (
	// DefaultSize is the number of entries processed concurrently per chunk.
	DefaultSize = 5

	// DefaultDelay is the pause between chunks.
	DefaultDelay = 1500 * time.Millisecond
)

// Scheduler partitions work into contiguous chunks and paces them. Chunks
// run strictly in order: chunk N+1 never starts before chunk N has fully
// settled. Entries within a chunk run concurrently and complete in
// unspecified order.
type Scheduler struct {
	size  int
	delay time.Duration
	sleep func(ctx context.Context, d time.Duration) error
}

// Option configures a Scheduler.
type Option func(*Scheduler)

// WithSize sets the chunk size. Values below 1 are ignored.
func WithSize(size int) Option {
	return func(s *Scheduler) {
		if size >= 1 {
			s.size = size
		}
	}
}

// WithDelay sets the pause inserted between chunks.
func WithDelay(delay time.Duration) Option {
	return func(s *Scheduler) {
		if delay >= 0 {
			s.delay = delay
		}
	}
}

// WithSleep replaces the sleep function. Tests use this to count delays
// without waiting.
func WithSleep(sleep func(ctx context.Context, d time.Duration) error) Option {
	return func(s *Scheduler) {
		if sleep != nil {
			s.sleep = sleep
		}
	}
}

// New creates a Scheduler with options applied over defaults.
func New(opts ...Option) *Scheduler {
	s := &Scheduler{
		size:  DefaultSize,
		delay: DefaultDelay,
		sleep: sleepContext,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Run invokes fn once for every index in [0, n), chunked and paced. Every
// index is attempted exactly once; fn must contain its own failures. Run
// returns early only when the context is cancelled during an inter-chunk
// delay, never because of anything fn did.
func (s *Scheduler) Run(ctx context.Context, n int, fn func(ctx context.Context, i int)) error {
	logger := logging.FromContext(ctx)

	for start := 0; start < n; start += s.size {
		end := start + s.size
		if end > n {
			end = n
		}

		logger.Debug().
			Int("from", start).
			Int("to", end-1).
			Msg("Running batch")

		var wg sync.WaitGroup
		for i := start; i < end; i++ {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()
				fn(ctx, i)
			}(i)
		}
		wg.Wait()

		if end < n {
			if err := s.sleep(ctx, s.delay); err != nil {
				return err
			}
		}
	}

	return nil
}

// Count returns the number of chunks Run will form for n entries.
func (s *Scheduler) Count(n int) int {
	if n <= 0 {
		return 0
	}
	return (n + s.size - 1) / s.size
}

// sleepContext sleeps for d or until the context is cancelled.
func sleepContext(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
