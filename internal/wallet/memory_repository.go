package wallet

import (
	"context"
	"sync"
	"time"
)

// MemoryRepository is an in-memory wallet store for tests and local runs.
// Besides Repository it exposes Mutate, which the in-memory ledger uses to
// post balance deltas under the store's write lock.
type MemoryRepository struct {
	mu      sync.RWMutex
	byOwner map[string]Wallet
}

// NewMemoryRepository constructs an empty in-memory repository.
func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{byOwner: make(map[string]Wallet)}
}

func (r *MemoryRepository) Create(_ context.Context, wallet Wallet) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.byOwner[wallet.OwnerID]; exists {
		return ErrDuplicateWallet
	}
	r.byOwner[wallet.OwnerID] = wallet
	return nil
}

func (r *MemoryRepository) GetByOwner(_ context.Context, ownerID string) (Wallet, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	wallet, ok := r.byOwner[ownerID]
	if !ok {
		return Wallet{}, ErrWalletNotFound
	}
	return wallet, nil
}

func (r *MemoryRepository) SetStatus(_ context.Context, ownerID string, status Status, at time.Time) (Wallet, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	wallet, ok := r.byOwner[ownerID]
	if !ok {
		return Wallet{}, ErrWalletNotFound
	}
	wallet.transition(status, at)
	r.byOwner[ownerID] = wallet
	return wallet, nil
}

// Mutate runs fn against a copy of the owner's wallet while holding the write
// lock and stores the copy only if fn succeeds.
func (r *MemoryRepository) Mutate(_ context.Context, ownerID string, fn func(*Wallet) error) (Wallet, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	wallet, ok := r.byOwner[ownerID]
	if !ok {
		return Wallet{}, ErrWalletNotFound
	}
	if err := fn(&wallet); err != nil {
		return Wallet{}, err
	}
	r.byOwner[ownerID] = wallet
	return wallet, nil
}
