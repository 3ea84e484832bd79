package memory

import "sync"

// orderedMap keeps values in first-insertion order. Replacing a key keeps its position.
type orderedMap[T any] struct {
	mu     sync.RWMutex
	values map[string]T
	keys   []string
	clone  func(T) T
}

func newOrderedMap[T any](clone func(T) T) *orderedMap[T] {
	return &orderedMap[T]{values: make(map[string]T), clone: clone}
}

func (m *orderedMap[T]) get(key string) (T, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	value, ok := m.values[key]
	if !ok {
		return value, false
	}
	return m.clone(value), true
}

func (m *orderedMap[T]) put(key string, value T) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.values[key]; !ok {
		m.keys = append(m.keys, key)
	}
	m.values[key] = m.clone(value)
}

func (m *orderedMap[T]) remove(key string) (T, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	value, ok := m.values[key]
	if !ok {
		return value, false
	}
	delete(m.values, key)
	for i, k := range m.keys {
		if k == key {
			m.keys = append(m.keys[:i], m.keys[i+1:]...)
			break
		}
	}
	return value, true
}

func (m *orderedMap[T]) snapshot() []T {
	m.mu.RLock()
	defer m.mu.RUnlock()
	items := make([]T, 0, len(m.keys))
	for _, key := range m.keys {
		items = append(items, m.clone(m.values[key]))
	}
	return items
}
