package memory

import (
	"context"
	"encoding/json"
	"sync"

	"horse-control/internal/ports/store"
)

// Store guarda cada documento serializado como JSON en un map.
// Serializar aísla a los callers entre sí (nadie comparte punteros).
type Store struct {
	mu   sync.RWMutex
	docs map[string][]byte
}

func NewStore() *Store {
	return &Store{
		docs: make(map[string][]byte),
	}
}

func (s *Store) Load(ctx context.Context, key string, v any) error {
	s.mu.RLock()
	raw, ok := s.docs[key]
	s.mu.RUnlock()

	if !ok {
		return store.ErrNoDocument
	}
	return json.Unmarshal(raw, v)
}

func (s *Store) Save(ctx context.Context, key string, v any) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.docs[key] = raw
	return nil
}
