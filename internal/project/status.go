package project

import (
	"context"
	"sync"
	"sync/atomic"

	"github.com/arbor-sh/arbor/internal/git"

	"golang.org/x/sync/errgroup"
)

var isDirty = git.IsDirty

// dirtyBatchSize bounds how many `git status` subprocesses run at once.
// Batches are processed strictly sequentially.
const dirtyBatchSize = 5

// DirtyPoller computes dirty status for many worktrees in fixed-size
// concurrent batches. Cancellation is cooperative: once Cancel is called no
// further checks start and no further results are committed, but checks
// already in flight are left to finish on their own.
type DirtyPoller struct {
	cancelled atomic.Bool
}

// Cancel abandons the poll. Safe to call from any goroutine; never an error.
func (p *DirtyPoller) Cancel() {
	p.cancelled.Store(true)
}

// Poll checks every path and returns the collected states. After each batch
// completes, its results are merged into the map and onBatch (if non-nil) is
// called with the merged map so callers can render incrementally.
func (p *DirtyPoller) Poll(ctx context.Context, paths []string, onBatch func(map[string]git.DirtyState)) map[string]git.DirtyState {
	statuses := make(map[string]git.DirtyState, len(paths))

	for start := 0; start < len(paths); start += dirtyBatchSize {
		if p.cancelled.Load() {
			break
		}

		end := min(start+dirtyBatchSize, len(paths))
		batch := paths[start:end]

		var mu sync.Mutex
		results := make(map[string]git.DirtyState, len(batch))

		g, gctx := errgroup.WithContext(ctx)
		for _, path := range batch {
			g.Go(func() error {
				if p.cancelled.Load() {
					return nil
				}
				state := git.NotDirty
				if isDirty(gctx, path) {
					state = git.Dirty
				}
				mu.Lock()
				results[path] = state
				mu.Unlock()
				return nil
			})
		}
		_ = g.Wait()

		if p.cancelled.Load() {
			break
		}
		for path, state := range results {
			statuses[path] = state
		}
		if onBatch != nil {
			onBatch(statuses)
		}
	}

	return statuses
}
