// Package observable implements the value/list subject primitives the
// player exposes its state through: a current value plus a set of
// subscribers notified synchronously, on the calling goroutine, whenever
// the value changes.
package observable

import "sync"

// Subscription is returned by Subscribe; Unsubscribe removes the callback.
// Destroying (garbage-collecting) a Subscription does nothing on its own —
// callers must call Unsubscribe explicitly, same as the teacher's explicit
// Close()-style cleanup elsewhere in this codebase.
type Subscription struct {
	unsubscribe func()
}

// Unsubscribe removes the associated callback. Safe to call more than
// once; subsequent calls are no-ops.
func (s *Subscription) Unsubscribe() {
	if s == nil || s.unsubscribe == nil {
		return
	}
	s.unsubscribe()
	s.unsubscribe = nil
}

type subscriber[T any] struct {
	id int
	fn func(T)
}

// ValueSubject holds a current value of T and notifies subscribers
// whenever SetIfChanged observes a new value. Not safe for concurrent
// mutation from multiple goroutines without external synchronization — the
// player serializes all calls onto its own tick thread or the caller's
// thread, per spec §4.1.
type ValueSubject[T comparable] struct {
	mu          sync.Mutex
	value       T
	subscribers []subscriber[T]
	nextID      int
}

// NewValue constructs a ValueSubject with an initial value.
func NewValue[T comparable](initial T) *ValueSubject[T] {
	return &ValueSubject[T]{value: initial}
}

// Get returns the current value.
func (s *ValueSubject[T]) Get() T {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.value
}

// SetIfChanged updates the value and notifies subscribers iff v differs
// from the current value (invariant 1 in spec §8). Notification happens
// synchronously on the calling goroutine, after the lock is released, so a
// subscriber is free to call back into this subject (e.g. to Subscribe or
// Unsubscribe) without deadlocking.
func (s *ValueSubject[T]) SetIfChanged(v T) bool {
	s.mu.Lock()
	if s.value == v {
		s.mu.Unlock()
		return false
	}
	s.value = v
	subs := make([]subscriber[T], len(s.subscribers))
	copy(subs, s.subscribers)
	s.mu.Unlock()

	for _, sub := range subs {
		sub.fn(v)
	}
	return true
}

// Subscribe registers fn to be called with the new value on every change.
// It does not fire immediately with the current value.
func (s *ValueSubject[T]) Subscribe(fn func(T)) *Subscription {
	s.mu.Lock()
	id := s.nextID
	s.nextID++
	s.subscribers = append(s.subscribers, subscriber[T]{id: id, fn: fn})
	s.mu.Unlock()

	return &Subscription{unsubscribe: func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		for i, sub := range s.subscribers {
			if sub.id == id {
				s.subscribers = append(s.subscribers[:i:i], s.subscribers[i+1:]...)
				break
			}
		}
	}}
}
