package ledger

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/congo-pay/mini_wallet/internal/wallet"
)

// WalletMutator is the wallet-store capability the in-memory ledger needs:
// run a read-modify-write against one wallet under the store's lock.
type WalletMutator interface {
	Mutate(ctx context.Context, ownerID string, fn func(*wallet.Wallet) error) (wallet.Wallet, error)
}

type inMemoryLedger struct {
	wallets WalletMutator

	mu       sync.RWMutex
	byRef    map[string]Transaction
	byWallet map[string][]Transaction
	now      func() time.Time
}

// NewInMemory creates a concurrency-safe in-memory ledger posting into wallets.
func NewInMemory(wallets WalletMutator) Ledger {
	return &inMemoryLedger{
		wallets:  wallets,
		byRef:    make(map[string]Transaction),
		byWallet: make(map[string][]Transaction),
		now:      time.Now,
	}
}

func (l *inMemoryLedger) Exists(_ context.Context, referenceID string) (bool, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	_, ok := l.byRef[referenceID]
	return ok, nil
}

// Post holds the wallet store lock for the whole posting; the ledger lock is
// always taken second.
func (l *inMemoryLedger) Post(ctx context.Context, entry Entry) (Posting, error) {
	if err := entry.validate(); err != nil {
		return Posting{}, err
	}

	var record Transaction
	updated, err := l.wallets.Mutate(ctx, entry.OwnerID, func(w *wallet.Wallet) error {
		delta := entry.Kind.Delta(entry.Amount)
		if err := checkPosting(*w, delta); err != nil {
			return err
		}

		l.mu.Lock()
		defer l.mu.Unlock()
		if _, dup := l.byRef[entry.ReferenceID]; dup {
			return ErrDuplicateReference
		}

		record = Transaction{
			ID:          uuid.New().String(),
			WalletID:    w.ID,
			OwnerID:     w.OwnerID,
			ReferenceID: entry.ReferenceID,
			Kind:        entry.Kind,
			Amount:      entry.Amount,
			Status:      StatusSuccess,
			AppliedAt:   l.now().UTC(),
		}
		l.byRef[record.ReferenceID] = record
		l.byWallet[w.ID] = append(l.byWallet[w.ID], record)
		w.Balance += delta
		return nil
	})
	if err != nil {
		return Posting{}, err
	}
	return Posting{Transaction: record, Wallet: updated}, nil
}

func (l *inMemoryLedger) History(_ context.Context, walletID string) ([]Transaction, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	txs := l.byWallet[walletID]
	out := make([]Transaction, len(txs))
	copy(out, txs)
	return out, nil
}
