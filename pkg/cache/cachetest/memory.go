// Package cachetest provides an in-memory cache.Cache for unit tests.
package cachetest

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"sync"
	"time"
)

// Memory stores JSON-encoded values like RedisCache does, without TTL expiry.
type Memory struct {
	mu   sync.Mutex
	data map[string][]byte

	// FailWith, when set, is returned by every operation.
	FailWith error
}

func NewMemory() *Memory {
	return &Memory{data: make(map[string][]byte)}
}

func (m *Memory) Get(_ context.Context, key string, dest interface{}) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.FailWith != nil {
		return false, m.FailWith
	}
	raw, ok := m.data[key]
	if !ok {
		return false, nil
	}
	return true, json.Unmarshal(raw, dest)
}

func (m *Memory) Set(_ context.Context, key string, value interface{}, _ time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.FailWith != nil {
		return m.FailWith
	}
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	m.data[key] = raw
	return nil
}

func (m *Memory) Delete(_ context.Context, keys ...string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.FailWith != nil {
		return m.FailWith
	}
	for _, k := range keys {
		delete(m.data, k)
	}
	return nil
}

// DeletePattern only understands a trailing "*".
func (m *Memory) DeletePattern(_ context.Context, pattern string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.FailWith != nil {
		return m.FailWith
	}
	if !strings.HasSuffix(pattern, "*") {
		return errors.New("cachetest: only prefix patterns are supported")
	}
	prefix := strings.TrimSuffix(pattern, "*")
	for k := range m.data {
		if strings.HasPrefix(k, prefix) {
			delete(m.data, k)
		}
	}
	return nil
}

func (m *Memory) Ping(context.Context) error {
	return m.FailWith
}

// Has reports whether key is cached.
func (m *Memory) Has(key string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	_, ok := m.data[key]
	return ok
}
