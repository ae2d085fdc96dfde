package memory

import (
	"context"

	"civmap/internal/app/ports"
)

type WorldRepo struct {
	store *Store
}

func NewWorldRepo(store *Store) WorldRepo {
	return WorldRepo{store: store}
}

func (r WorldRepo) Create(_ context.Context, rec ports.WorldRecord) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if _, exists := r.store.worlds[rec.ID]; exists {
		return ports.ErrConflict
	}
	r.store.worlds[rec.ID] = detach(rec)
	return nil
}

func (r WorldRepo) Get(_ context.Context, id string) (ports.WorldRecord, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	rec, ok := r.store.worlds[id]
	if !ok {
		return ports.WorldRecord{}, ports.ErrNotFound
	}
	return detach(rec), nil
}

func (r WorldRepo) SaveWithVersion(_ context.Context, rec ports.WorldRecord, expectedVersion int64) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	current, ok := r.store.worlds[rec.ID]
	if !ok {
		return ports.ErrNotFound
	}
	if current.Version != expectedVersion {
		return ports.ErrConflict
	}
	r.store.worlds[rec.ID] = detach(rec)
	return nil
}
