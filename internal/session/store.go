package session

import (
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
)

// ErrNotFound is returned for unknown or expired session ids.
var ErrNotFound = errors.New("session: not found")

type entry struct {
	state   State
	touched time.Time
}

// Store keeps sessions in memory, keyed by UUID, and sweeps idle ones
// after the TTL. Artifacts never outlive the session.
type Store struct {
	mu      sync.Mutex
	ttl     time.Duration
	entries map[string]*entry
	stop    chan struct{}
	once    sync.Once
}

func NewStore(ttl time.Duration) *Store {
	st := &Store{
		ttl:     ttl,
		entries: make(map[string]*entry),
		stop:    make(chan struct{}),
	}
	go st.sweep()
	return st
}

// Close stops the background sweeper.
func (st *Store) Close() {
	st.once.Do(func() { close(st.stop) })
}

func (st *Store) sweep() {
	interval := st.ttl / 2
	if interval < time.Second {
		interval = time.Second
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-st.stop:
			return
		case now := <-ticker.C:
			st.mu.Lock()
			for id, e := range st.entries {
				if now.Sub(e.touched) > st.ttl {
					delete(st.entries, id)
				}
			}
			st.mu.Unlock()
		}
	}
}

// Create opens a fresh session and returns its id.
func (st *Store) Create() string {
	id := uuid.NewString()
	st.mu.Lock()
	st.entries[id] = &entry{touched: time.Now()}
	st.mu.Unlock()
	return id
}

// Get returns the current state of a session.
func (st *Store) Get(id string) (State, bool) {
	st.mu.Lock()
	defer st.mu.Unlock()
	e, ok := st.entries[id]
	if !ok {
		return State{}, false
	}
	e.touched = time.Now()
	return e.state, true
}

// Update applies a transition under the store lock. When fn returns an
// error the state is left unchanged.
func (st *Store) Update(id string, fn func(State) (State, error)) (State, error) {
	st.mu.Lock()
	defer st.mu.Unlock()
	e, ok := st.entries[id]
	if !ok {
		return State{}, ErrNotFound
	}
	next, err := fn(e.state)
	if err != nil {
		return e.state, err
	}
	e.state = next
	e.touched = time.Now()
	return next, nil
}

// Delete removes a session and its in-memory artifacts.
func (st *Store) Delete(id string) {
	st.mu.Lock()
	delete(st.entries, id)
	st.mu.Unlock()
}
