// Package viewmodels holds the per-screen state machines of the client.
// Each view-model publishes its state through a state.Store and runs at most
// one operation per job at a time: starting a new one cancels the previous,
// and a superseded operation never publishes its result.
package viewmodels

import (
	"context"
	"sync"
)

type job struct {
	mu     sync.Mutex
	gen    uint64
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// launch cancels the running operation and starts fn in a goroutine. The
// function returned by fn is applied only if no newer operation started
// in the meantime.
func (j *job) launch(parent context.Context, fn func(ctx context.Context) func()) {
	j.mu.Lock()
	if j.cancel != nil {
		j.cancel()
	}
	j.gen++
	gen := j.gen
	ctx, cancel := context.WithCancel(parent)
	j.cancel = cancel
	j.wg.Add(1)
	j.mu.Unlock()

	go func() {
		defer j.wg.Done()
		defer cancel()

		apply := fn(ctx)

		j.mu.Lock()
		defer j.mu.Unlock()
		if apply != nil && gen == j.gen {
			apply()
		}
	}()
}

func (j *job) stop() {
	j.mu.Lock()
	defer j.mu.Unlock()
	if j.cancel != nil {
		j.cancel()
		j.cancel = nil
	}
	j.gen++
}

func (j *job) wait() {
	j.wg.Wait()
}
