package memory

import (
	"sync"

	"civmap/internal/app/ports"
)

type Store struct {
	// txMu serializes transactions; mu guards the maps themselves.
	txMu   sync.Mutex
	mu     sync.RWMutex
	worlds map[string]ports.WorldRecord
}

func NewStore() *Store {
	return &Store{
		worlds: make(map[string]ports.WorldRecord),
	}
}

// SeedWorld installs rec as-is, bypassing the duplicate check in Create.
func (s *Store) SeedWorld(rec ports.WorldRecord) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.worlds[rec.ID] = detach(rec)
}

// detach copies the record so callers never share a grid with the store.
func detach(rec ports.WorldRecord) ports.WorldRecord {
	if rec.World != nil {
		rec.World = rec.World.Clone()
	}
	return rec
}
