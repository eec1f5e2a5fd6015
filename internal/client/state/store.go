// Package state holds observable values for view-models.
package state

import (
	"context"
	"sync"
)

// Store holds a value of type T and notifies subscribers of changes.
// Subscribers receive the current value first and then later values;
// a slow subscriber only sees the most recent one.
type Store[T any] struct {
	mu   sync.Mutex
	val  T
	subs map[chan T]struct{}
}

func NewStore[T any](initial T) *Store[T] {
	return &Store[T]{val: initial, subs: map[chan T]struct{}{}}
}

func (s *Store[T]) Get() T {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.val
}

func (s *Store[T]) Set(v T) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.val = v
	s.publish(v)
}

// Update replaces the value with fn(current) atomically and returns it.
func (s *Store[T]) Update(fn func(T) T) T {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.val = fn(s.val)
	s.publish(s.val)
	return s.val
}

// Subscribe returns a channel of values that is closed when ctx is done.
func (s *Store[T]) Subscribe(ctx context.Context) <-chan T {
	ch := make(chan T, 1)

	s.mu.Lock()
	ch <- s.val
	s.subs[ch] = struct{}{}
	s.mu.Unlock()

	go func() {
		<-ctx.Done()
		s.mu.Lock()
		delete(s.subs, ch)
		close(ch)
		s.mu.Unlock()
	}()
	return ch
}

// publish must be called with mu held.
func (s *Store[T]) publish(v T) {
	for ch := range s.subs {
		select {
		case <-ch:
		default:
		}
		ch <- v
	}
}
