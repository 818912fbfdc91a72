package identity

import (
	"context"
	"sync"
)

type memoryRepository struct {
	mu         sync.RWMutex
	byCustomer map[string]Owner
	byID       map[string]Owner
}

// NewMemoryRepository builds an in-memory owner store for tests and local runs.
func NewMemoryRepository() Repository {
	return &memoryRepository{
		byCustomer: make(map[string]Owner),
		byID:       make(map[string]Owner),
	}
}

func (r *memoryRepository) Create(_ context.Context, owner Owner) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.byCustomer[owner.CustomerXID]; exists {
		return ErrCustomerExists
	}
	r.byCustomer[owner.CustomerXID] = owner
	r.byID[owner.ID] = owner
	return nil
}

func (r *memoryRepository) FindByCustomerXID(_ context.Context, customerXID string) (Owner, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	owner, ok := r.byCustomer[customerXID]
	if !ok {
		return Owner{}, ErrUnknownCustomer
	}
	return owner, nil
}

func (r *memoryRepository) FindByID(_ context.Context, id string) (Owner, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	owner, ok := r.byID[id]
	if !ok {
		return Owner{}, ErrUnknownCustomer
	}
	return owner, nil
}
