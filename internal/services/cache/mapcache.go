package cache

import "sync"

type mapCache struct {
	locker sync.Mutex
	keys   map[string]struct{}
}

func NewMapCache() Cache {
	return &mapCache{
		keys: make(map[string]struct{}),
	}
}

func (m *mapCache) Acquire(key string) error {
	m.locker.Lock()
	defer m.locker.Unlock()

	if _, ok := m.keys[key]; ok {
		return ErrExists
	}

	m.keys[key] = struct{}{}
	return nil
}

func (m *mapCache) Release(key string) {
	m.locker.Lock()
	defer m.locker.Unlock()

	delete(m.keys, key)
}
