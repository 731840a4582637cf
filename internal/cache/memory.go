package cache

import (
	"context"
	"sync"
	"time"
)

var memoryNow = time.Now

type entry struct {
	value     []byte
	expiresAt time.Time // zero means permanent
}

// Memory is the default process-local store. Expiry is lazy: entries past
// their deadline are dropped on the Get that observes them, no sweeper runs.
type Memory struct {
	mu      sync.RWMutex
	entries map[string]entry
}

func NewMemory() *Memory {
	return &Memory{entries: map[string]entry{}}
}

func (m *Memory) Get(_ context.Context, key string) ([]byte, bool, error) {
	m.mu.RLock()
	e, ok := m.entries[key]
	m.mu.RUnlock()

	if !ok {
		return nil, false, nil
	}
	if !e.expiresAt.IsZero() && memoryNow().After(e.expiresAt) {
		m.mu.Lock()
		// only drop the entry we saw expire, not a concurrent rewrite
		if cur, still := m.entries[key]; still && cur.expiresAt.Equal(e.expiresAt) {
			delete(m.entries, key)
		}
		m.mu.Unlock()
		return nil, false, nil
	}
	return e.value, true, nil
}

func (m *Memory) Put(_ context.Context, key string, value []byte, ttl time.Duration) error {
	e := entry{value: value}
	if ttl > 0 {
		e.expiresAt = memoryNow().Add(ttl)
	}

	m.mu.Lock()
	m.entries[key] = e
	m.mu.Unlock()
	return nil
}
