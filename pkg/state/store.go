package state

import (
	"context"
	"io"
	"sync"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/contentstack/pkg/observability"
)

// Store serializes event dispatch over a [State] and hands out snapshots.
//
// Dispatch holds the write lock only while reducing; Snapshot returns the
// current value without copying, which is safe because states are never
// modified in place.
type Store struct {
	mu      sync.RWMutex
	state   State
	version uint64
	logger  *log.Logger
}

// NewStore returns a store holding initial. A nil logger discards output.
func NewStore(initial State, logger *log.Logger) *Store {
	if logger == nil {
		logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	return &Store{state: initial, logger: logger}
}

// Dispatch applies ev and reports whether the state changed. Gated events
// dispatched before feeds and spocs have both loaded are dropped.
func (s *Store) Dispatch(ctx context.Context, ev Event) bool {
	s.mu.Lock()
	prev := s.state
	next, applied := Reduce(prev, ev)
	if applied {
		s.state = next
		s.version++
	}
	s.mu.Unlock()

	hooks := observability.Store()
	hooks.OnDispatch(ctx, ev.Type(), applied)
	if !applied {
		s.logger.Debug("dropped event", "type", ev.Type(), "ready", IsReady(prev))
		return false
	}
	s.logger.Debug("applied event", "type", ev.Type())
	if was, is := IsReady(prev), IsReady(next); was != is {
		s.logger.Info("readiness changed", "ready", is)
		hooks.OnReadyChange(ctx, is)
	}
	return true
}

// DispatchAll applies events in order and returns how many were applied.
func (s *Store) DispatchAll(ctx context.Context, events []Event) int {
	n := 0
	for _, ev := range events {
		if s.Dispatch(ctx, ev) {
			n++
		}
	}
	return n
}

// Snapshot returns the current state. The result must not be modified.
func (s *Store) Snapshot() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

// Version returns the number of applied events. It increases with every
// state change.
func (s *Store) Version() uint64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.version
}

// SnapshotVersion returns the current state together with its version, read
// under one lock so the pair always matches.
func (s *Store) SnapshotVersion() (State, uint64) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state, s.version
}

// Replace swaps the whole state, e.g. after loading a snapshot.
func (s *Store) Replace(st State) {
	s.mu.Lock()
	s.state = st
	s.version++
	s.mu.Unlock()
}
