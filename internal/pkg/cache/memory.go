package cache

import (
	"context"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
)

// Memory is a per-process LRU cache whose entries expire after a fixed TTL
type Memory struct {
	lru *expirable.LRU[string, []byte]
}

// NewMemory creates an LRU cache holding at most size entries for ttl each
func NewMemory(size int, ttl time.Duration) *Memory {
	return &Memory{lru: expirable.NewLRU[string, []byte](size, nil, ttl)}
}

// Get returns a copy of the cached value
func (m *Memory) Get(_ context.Context, key string) ([]byte, bool) {
	val, ok := m.lru.Get(key)
	if !ok {
		return nil, false
	}
	return append([]byte(nil), val...), true
}

// Set stores a copy of value, replacing any previous entry
func (m *Memory) Set(_ context.Context, key string, value []byte) {
	m.lru.Add(key, append([]byte(nil), value...))
}

// Delete drops key from the cache
func (m *Memory) Delete(_ context.Context, key string) {
	m.lru.Remove(key)
}

// Len reports the number of live entries
func (m *Memory) Len() int {
	return m.lru.Len()
}
