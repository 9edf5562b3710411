package storage

import (
	"context"
	"sync"
)

// Memory is the in-process Store used by tests and the simulator.
type Memory struct {
	mu   sync.RWMutex
	docs map[string]string
}

func NewMemory() *Memory {
	return &Memory{docs: make(map[string]string)}
}

func (m *Memory) Get(ctx context.Context, key string) (string, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.docs[key]
	return v, ok, nil
}

func (m *Memory) Set(ctx context.Context, key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.docs[key] = value
	return nil
}

func (m *Memory) Remove(ctx context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.docs, key)
	return nil
}
