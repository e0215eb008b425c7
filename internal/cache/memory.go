// memory.go implements an in-process cache backend.
//
// This mirrors the pattern used by the rate limiter: a mutex-guarded map
// plus a background ticker that sweeps expired entries so the map doesn't
// grow without bound.
package cache

import (
	"context"
	"sync"
	"time"
)

// Memory is a process-local cache backend. Safe for concurrent use.
type Memory struct {
	// Go Pattern: sync.RWMutex allows many concurrent readers. Cache
	// lookups vastly outnumber writes, so RWMutex beats plain Mutex here.
	mu      sync.RWMutex
	entries map[string]memoryEntry
}

type memoryEntry struct {
	value  []byte
	expiry time.Time
}

// NewMemory creates an in-memory cache backend and starts its sweeper.
func NewMemory() *Memory {
	m := &Memory{entries: make(map[string]memoryEntry)}
	go m.sweep()
	return m
}

// Get returns the value for key if present and not expired.
func (m *Memory) Get(ctx context.Context, key string) ([]byte, bool) {
	m.mu.RLock()
	e, ok := m.entries[key]
	m.mu.RUnlock()

	if !ok || time.Now().After(e.expiry) {
		return nil, false
	}

	// Return a copy so callers can't mutate the cached bytes.
	out := make([]byte, len(e.value))
	copy(out, e.value)
	return out, true
}

// Set stores value under key. A zero or negative TTL stores nothing.
func (m *Memory) Set(ctx context.Context, key string, value []byte, ttl time.Duration) {
	if ttl <= 0 {
		return
	}

	stored := make([]byte, len(value))
	copy(stored, value)

	m.mu.Lock()
	m.entries[key] = memoryEntry{value: stored, expiry: time.Now().Add(ttl)}
	m.mu.Unlock()
}

// sweep periodically removes expired entries to prevent memory leaks.
func (m *Memory) sweep() {
	ticker := time.NewTicker(10 * time.Minute)
	defer ticker.Stop()

	for range ticker.C {
		now := time.Now()
		m.mu.Lock()
		for key, e := range m.entries {
			if now.After(e.expiry) {
				delete(m.entries, key)
			}
		}
		m.mu.Unlock()
	}
}
