package store

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/cockroachdb/errors"
)

type memoryItem struct {
	value   string
	expires time.Time
}

func (i memoryItem) expired(now time.Time) bool {
	return !i.expires.IsZero() && !now.Before(i.expires)
}

type inMemory struct {
	mu      sync.RWMutex
	storage map[string]memoryItem
	now     func() time.Time
}

// NewMemoryStore returns a Store kept in process memory.
func NewMemoryStore() Store {
	return &inMemory{now: time.Now}
}

func (m *inMemory) Get(_ context.Context, key string) (string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	item, ok := m.storage[key]
	if !ok || item.expired(m.now()) {
		return "", errors.Wrapf(ErrNotFound, "key %q", key)
	}
	return item.value, nil
}

func (m *inMemory) Set(_ context.Context, key, value string, ttl time.Duration) error {
	if key == "" {
		return errors.New("empty key")
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.storage == nil {
		// create on first use
		m.storage = make(map[string]memoryItem)
	}
	item := memoryItem{value: value}
	if ttl > 0 {
		item.expires = m.now().Add(ttl)
	}
	m.storage[key] = item
	return nil
}

func (m *inMemory) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.storage, key)
	return nil
}

func (m *inMemory) List(_ context.Context, prefix string) ([]string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	now := m.now()
	var keys []string
	for k, item := range m.storage {
		if strings.HasPrefix(k, prefix) && !item.expired(now) {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)
	return keys, nil
}
