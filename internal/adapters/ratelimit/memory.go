package ratelimit

import (
	"context"
	"sync"
	"time"
)

const (
	DefaultLimit   = 60
	DefaultWindow  = time.Minute
	defaultMaxKeys = 10000
)

type window struct {
	count   int64
	resetAt time.Time
}

// MemoryStore is a process-local fixed window counter. The window of a key starts at its first request.
type MemoryStore struct {
	mu      sync.Mutex
	windows map[string]*window
	limit   int64
	period  time.Duration
	maxKeys int
	now     func() time.Time
}

func (s *MemoryStore) Increment(_ context.Context, key string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	w, ok := s.windows[key]
	if !ok || now.After(w.resetAt) {
		if !ok && len(s.windows) >= s.maxKeys {
			s.sweep(now)
			if len(s.windows) >= s.maxKeys {
				s.evictOldest()
			}
		}
		s.windows[key] = &window{count: 1, resetAt: now.Add(s.period)}
		return true, nil
	}

	if w.count >= s.limit {
		return false, nil
	}
	w.count++
	return true, nil
}

// sweep drops expired windows. Called with mu held.
func (s *MemoryStore) sweep(now time.Time) {
	for k, w := range s.windows {
		if now.After(w.resetAt) {
			delete(s.windows, k)
		}
	}
}

// evictOldest drops the window closest to its reset. Called with mu held.
func (s *MemoryStore) evictOldest() {
	var oldestKey string
	var oldest *window
	for k, w := range s.windows {
		if oldest == nil || w.resetAt.Before(oldest.resetAt) {
			oldestKey, oldest = k, w
		}
	}
	if oldest != nil {
		delete(s.windows, oldestKey)
	}
}

func NewMemoryStore(limit int64, period time.Duration, maxKeys int) *MemoryStore {
	if limit <= 0 {
		limit = DefaultLimit
	}
	if period <= 0 {
		period = DefaultWindow
	}
	if maxKeys <= 0 {
		maxKeys = defaultMaxKeys
	}
	return &MemoryStore{
		windows: make(map[string]*window),
		limit:   limit,
		period:  period,
		maxKeys: maxKeys,
		now:     time.Now,
	}
}
