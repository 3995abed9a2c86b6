package reconciler

import (
	"fmt"
	"sync"
	"time"
)

// Failure records one entry that could not be synced and why.
type Failure struct {
	Name   string
	Reason string
}

// Result is the outcome of a reconciliation run. The name lists accumulate
// in completion order; entries within a batch complete in unspecified order
// relative to each other. A Result is safe for the concurrent appends the
// batch scheduler produces.
type Result struct {
	Created []string
	Updated []string
	Deleted []string
	Failed  []Failure

	// Unchanged counts entries whose stored fields already matched; they are
	// not itemized because nothing happened to them.
	Unchanged int

	StartTime time.Time
	EndTime   time.Time
	Duration  time.Duration

	mu sync.Mutex
}

// NewResult creates an empty Result with the start time set.
func NewResult() *Result {
	return &Result{StartTime: time.Now()}
}

func (r *Result) created(name string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Created = append(r.Created, name)
}

func (r *Result) updated(name string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Updated = append(r.Updated, name)
}

func (r *Result) deleted(name string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Deleted = append(r.Deleted, name)
}

func (r *Result) fail(name, reason string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Failed = append(r.Failed, Failure{Name: name, Reason: reason})
}

func (r *Result) unchanged() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Unchanged++
}

// Finalize stamps the end time and duration.
func (r *Result) Finalize() {
	r.EndTime = time.Now()
	r.Duration = r.EndTime.Sub(r.StartTime)
}

// HasChanges reports whether any store mutation happened.
func (r *Result) HasChanges() bool {
	return len(r.Created)+len(r.Updated)+len(r.Deleted) > 0
}

// Summary returns a one-line human-readable summary of the run.
func (r *Result) Summary() string {
	if !r.HasChanges() && len(r.Failed) == 0 {
		return fmt.Sprintf("No changes (%d entries unchanged)", r.Unchanged)
	}
	return fmt.Sprintf("%d created, %d updated, %d deleted, %d failed, %d unchanged",
		len(r.Created), len(r.Updated), len(r.Deleted), len(r.Failed), r.Unchanged)
}
