package cartstorage

import (
	"context"
	"sync"
)

// Memory is a process-local Storage, used in tests and as the fallback when
// no Redis address is configured. Carts stored here do not survive a
// restart.
type Memory struct {
	mu    sync.RWMutex
	slots map[string][]byte
}

func NewMemory() *Memory {
	return &Memory{slots: make(map[string][]byte)}
}

func (m *Memory) Save(_ context.Context, key string, data []byte) error {
	cp := make([]byte, len(data))
	copy(cp, data)

	m.mu.Lock()
	m.slots[key] = cp
	m.mu.Unlock()
	return nil
}

func (m *Memory) Load(_ context.Context, key string) ([]byte, error) {
	m.mu.RLock()
	data, ok := m.slots[key]
	m.mu.RUnlock()
	if !ok {
		return nil, ErrNotFound
	}
	cp := make([]byte, len(data))
	copy(cp, data)
	return cp, nil
}

func (m *Memory) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	delete(m.slots, key)
	m.mu.Unlock()
	return nil
}
