package db

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/Atharvasurya/punjab-alumni-sih/internal/app/models"
)

// MemoryStore keeps the serialized snapshot in process memory. Useful for
// tests and throwaway runs.
type MemoryStore struct {
	mu       sync.Mutex
	snapshot []byte
	saves    int
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (s *MemoryStore) Load(_ context.Context) (*models.DatabaseData, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.snapshot == nil {
		return nil, ErrNoSnapshot
	}
	data := &models.DatabaseData{}
	if err := json.Unmarshal(s.snapshot, data); err != nil {
		return nil, err
	}
	return data, nil
}

func (s *MemoryStore) Save(_ context.Context, data *models.DatabaseData) error {
	raw, err := json.Marshal(data)
	if err != nil {
		return err
	}
	s.mu.Lock()
	s.snapshot = raw
	s.saves++
	s.mu.Unlock()
	return nil
}

// Saves reports how many snapshots have been written.
func (s *MemoryStore) Saves() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.saves
}

func (s *MemoryStore) Close() error { return nil }
