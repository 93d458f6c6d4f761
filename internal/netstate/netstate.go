// Package netstate exposes the host connectivity signal as a boolean flag.
// Transitions are taken at face value: no debounce, no retry probe. The flag
// never gates writes; callers consult it only to decide whether a mutation is
// additionally recorded in the offline outbox.
package netstate

import "sync"

type Signal struct {
	mu        sync.RWMutex
	online    bool
	listeners []func(online bool)
}

// New returns a signal starting in the given state.
func New(online bool) *Signal {
	return &Signal{online: online}
}

func (s *Signal) IsOnline() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.online
}

// Set records a transition. Listeners fire only on actual state changes.
func (s *Signal) Set(online bool) {
	s.mu.Lock()
	changed := s.online != online
	s.online = online
	listeners := s.listeners
	s.mu.Unlock()
	if !changed {
		return
	}
	for _, fn := range listeners {
		fn(online)
	}
}

// OnChange registers a callback invoked on every transition.
func (s *Signal) OnChange(fn func(online bool)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.listeners = append(s.listeners, fn)
}
