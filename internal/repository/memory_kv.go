package repository

import (
	"context"
	"fmt"
	"sync"

	"github.com/nikolayk812/marketcart/internal/port"
)

type memoryKV struct {
	mu     sync.RWMutex
	values map[string]string
}

// NewMemoryKV keeps values in process memory; nothing survives a restart.
func NewMemoryKV() port.KeyValueStore {
	return &memoryKV{
		values: make(map[string]string),
	}
}

func (m *memoryKV) Get(ctx context.Context, key string) (string, bool, error) {
	if key == "" {
		return "", false, fmt.Errorf("key is empty")
	}
	if err := ctx.Err(); err != nil {
		return "", false, err
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	value, ok := m.values[key]
	return value, ok, nil
}

func (m *memoryKV) Set(ctx context.Context, key, value string) error {
	if key == "" {
		return fmt.Errorf("key is empty")
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	m.values[key] = value
	return nil
}
