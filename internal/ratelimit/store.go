package ratelimit

import (
	"sync"
	"time"
)

// Record is the per-identity bookkeeping for one rate-limit window.
type Record struct {
	Count       int
	WindowStart time.Time
}

// expired reports whether the record's window has fully elapsed at now.
func (r Record) expired(now time.Time, window time.Duration) bool {
	return now.Sub(r.WindowStart) > window
}

// Store holds rate-limit records. Increment must be atomic with respect to
// concurrent callers for the same id.
type Store interface {
	Get(id string) (Record, bool)
	Increment(id string, now time.Time, p Policy) (Record, bool)
	Sweep(now time.Time, window time.Duration) int
}

// MemoryStore keeps records in process memory. Counters are lost on restart.
type MemoryStore struct {
	mu      sync.Mutex
	records map[string]*Record
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{records: make(map[string]*Record)}
}

func (s *MemoryStore) Get(id string) (Record, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	r, ok := s.records[id]
	if !ok {
		return Record{}, false
	}
	return *r, true
}

// Increment counts one attempt for id and reports whether it is admitted.
// A rejected attempt leaves the record untouched.
func (s *MemoryStore) Increment(id string, now time.Time, p Policy) (Record, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	r, ok := s.records[id]
	if !ok || r.expired(now, p.Window) {
		r = &Record{Count: 1, WindowStart: now}
		s.records[id] = r
		return *r, true
	}

	if r.Count < p.Ceiling {
		r.Count++
		return *r, true
	}
	return *r, false
}

// Sweep drops every record whose window has elapsed and returns how many
// were removed.
func (s *MemoryStore) Sweep(now time.Time, window time.Duration) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	removed := 0
	for id, r := range s.records {
		if r.expired(now, window) {
			delete(s.records, id)
			removed++
		}
	}
	return removed
}

// Len returns the number of tracked identities
func (s *MemoryStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.records)
}
