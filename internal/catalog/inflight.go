package catalog

import (
	"context"
	"sync"
)

// Inflight tracks the current fetch for one consuming view. Starting a
// new fetch cancels the previous one, and results from superseded
// fetches are discarded, so a stale response can never overwrite newer
// state.
type Inflight struct {
	mu     sync.Mutex
	seq    uint64
	cancel context.CancelFunc
}

// Start derives a cancellable context for a new fetch, cancelling any
// fetch previously started on this guard. The returned token identifies
// the fetch for Commit.
func (f *Inflight) Start(ctx context.Context) (context.Context, uint64) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.cancel != nil {
		f.cancel()
	}
	ctx, cancel := context.WithCancel(ctx)
	f.cancel = cancel
	f.seq++
	return ctx, f.seq
}

// Commit runs fn only if token still identifies the latest fetch, and
// reports whether fn ran. A superseded fetch commits nothing.
func (f *Inflight) Commit(token uint64, fn func()) bool {
	f.mu.Lock()
	defer f.mu.Unlock()

	if token != f.seq {
		return false
	}
	fn()
	return true
}

// Current reports whether token still identifies the latest fetch.
func (f *Inflight) Current(token uint64) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return token == f.seq
}
