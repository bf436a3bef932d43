package persistence

import (
	"encoding/json"
	"sync"
)

// MemStore is an in-memory Store used in tests.
type MemStore struct {
	values map[string]json.RawMessage
	mutex  sync.RWMutex
}

func NewMemStore() *MemStore {
	return &MemStore{
		values: make(map[string]json.RawMessage),
	}
}

func (ms *MemStore) Load(key string, out any) bool {
	ms.mutex.RLock()
	defer ms.mutex.RUnlock()

	raw, ok := ms.values[key]
	if !ok {
		return false
	}
	return unmarshal(key, raw, out)
}

func (ms *MemStore) Save(key string, v any) {
	raw, ok := marshal(key, v)
	if !ok {
		return
	}

	ms.mutex.Lock()
	defer ms.mutex.Unlock()
	ms.values[key] = raw
}

func (ms *MemStore) Remove(key string) {
	ms.mutex.Lock()
	defer ms.mutex.Unlock()
	delete(ms.values, key)
}

// Keys returns the stored keys, for assertions in tests.
func (ms *MemStore) Keys() []string {
	ms.mutex.RLock()
	defer ms.mutex.RUnlock()

	keys := make([]string, 0, len(ms.values))
	for k := range ms.values {
		keys = append(keys, k)
	}
	return keys
}
