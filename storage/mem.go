package storage

import (
	"sync"
)

// memStore is the fallback backend when no persistent store is available.
// Enumeration follows insertion order so callers iterating by index see a
// stable sequence.
type memStore struct {
	l sync.RWMutex

	values map[string]string
	order  []string
}

// NewMemStore builds an empty in-memory backend. Exported because tests and
// the migration CLI use it directly as a scratch store.
func NewMemStore() Backend {
	return &memStore{
		values: make(map[string]string),
		order:  make([]string, 0),
	}
}

func (s *memStore) GetItem(key string) (value string, found bool, err error) {
	s.l.RLock()
	defer s.l.RUnlock()

	value, found = s.values[key]
	return value, found, nil
}

func (s *memStore) SetItem(key, value string) error {
	s.l.Lock()
	defer s.l.Unlock()

	if _, ok := s.values[key]; !ok {
		s.order = append(s.order, key)
	}
	s.values[key] = value
	return nil
}

func (s *memStore) RemoveItem(key string) error {
	s.l.Lock()
	defer s.l.Unlock()

	if _, ok := s.values[key]; !ok {
		return nil
	}
	delete(s.values, key)
	for i, k := range s.order {
		if k == key {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	return nil
}

func (s *memStore) Clear() error {
	s.l.Lock()
	defer s.l.Unlock()

	s.values = make(map[string]string)
	s.order = make([]string, 0)
	return nil
}

func (s *memStore) Keys() ([]string, error) {
	s.l.RLock()
	defer s.l.RUnlock()

	keys := make([]string, len(s.order))
	copy(keys, s.order)
	return keys, nil
}

func (s *memStore) Len() (int, error) {
	s.l.RLock()
	defer s.l.RUnlock()

	return len(s.values), nil
}

func (s *memStore) Close() error {
	return nil
}
