// Package cache provides the key/value backends used for content-addressed
// summary caching.
//
// Go Pattern: The Backend interface is deliberately tiny (Get/Set) so any
// key/value store can satisfy it — an in-memory map for development, Redis
// in production, or Null when caching is disabled. Callers never special-case
// "no cache"; they always talk to a Backend.
//
// Failure semantics: a backend must never make caching fatal. Errors degrade
// to a miss on Get and a no-op on Set.
package cache

import (
	"context"
	"time"
)

// Backend is the contract every cache store satisfies.
type Backend interface {
	// Get returns the stored value and true on a hit. Backend failures
	// are reported as a miss, never as an error.
	Get(ctx context.Context, key string) ([]byte, bool)

	// Set stores value under key with the given TTL. Failures are silent
	// no-ops — caching is best-effort by design.
	Set(ctx context.Context, key string, value []byte, ttl time.Duration)
}

// Null is the "caching disabled" backend. Every Get misses and every Set
// is discarded. Using a null object keeps the orchestrator free of nil
// checks.
type Null struct{}

// NewNull creates a disabled cache backend.
func NewNull() Null { return Null{} }

// Get always misses.
func (Null) Get(ctx context.Context, key string) ([]byte, bool) { return nil, false }

// Set discards the value.
func (Null) Set(ctx context.Context, key string, value []byte, ttl time.Duration) {}
