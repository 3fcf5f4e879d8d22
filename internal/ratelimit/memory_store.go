package ratelimit

import "sync"

type record struct {
	count     int
	resetTime int64
}

// MemoryStore keeps window counters in an in-process map guarded by a single
// mutex. Counters do not survive restarts and are not shared across
// instances; that is a documented limitation of the in-memory limiter.
type MemoryStore struct {
	mu      sync.Mutex
	records map[string]*record
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{records: make(map[string]*record)}
}

func (s *MemoryStore) Increment(key string, windowMS, now int64) (int, int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec, ok := s.records[key]
	if !ok || rec.resetTime < now {
		rec = &record{count: 1, resetTime: now + windowMS}
		s.records[key] = rec
		return rec.count, rec.resetTime, nil
	}

	rec.count++
	return rec.count, rec.resetTime, nil
}

func (s *MemoryStore) Sweep(now int64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for key, rec := range s.records {
		if rec.resetTime < now {
			delete(s.records, key)
		}
	}
}

// Len reports the number of live records, for tests and debugging.
func (s *MemoryStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.records)
}
