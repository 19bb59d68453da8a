package store

import (
	"sync"
	"time"
)

// Source records where a snapshot's current value came from.
type Source string

const (
	// SourceLive is data from a REST fetch or WebSocket push.
	SourceLive Source = "live"
	// SourceCache is a persisted last-known-good value loaded at startup.
	SourceCache Source = "cache"
	// SourceFallback is a static placeholder used when nothing better exists.
	SourceFallback Source = "fallback"
)

// Snapshot holds one domain's current value together with its source and
// timestamp. Apply enforces two rules: an older update never overwrites a
// newer one (a slow REST response cannot clobber a fresher WebSocket push),
// and fallback data never replaces real data of any age.
type Snapshot[T any] struct {
	mu        sync.RWMutex
	value     T
	source    Source
	updatedAt time.Time
	set       bool
}

func NewSnapshot[T any]() *Snapshot[T] {
	return &Snapshot[T]{}
}

// Apply installs value if it is at least as fresh as the current one.
// Returns whether the value was accepted.
func (s *Snapshot[T]) Apply(value T, source Source, ts time.Time) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.set {
		if ts.Before(s.updatedAt) {
			return false
		}
		if source == SourceFallback && s.source != SourceFallback {
			return false
		}
	}

	s.value = value
	s.source = source
	s.updatedAt = ts
	s.set = true
	return true
}

// Get returns the current value, its source, its timestamp, and whether a
// value has been set at all.
func (s *Snapshot[T]) Get() (T, Source, time.Time, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.value, s.source, s.updatedAt, s.set
}

// Update rewrites the current value in place while keeping its timestamp
// monotonic. Used for targeted patches like a single agent status change.
// The source label is preserved: patching placeholder data does not make it
// look live.
func (s *Snapshot[T]) Update(ts time.Time, fn func(T) T) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.set || ts.Before(s.updatedAt) {
		return false
	}

	s.value = fn(s.value)
	s.updatedAt = ts
	return true
}
